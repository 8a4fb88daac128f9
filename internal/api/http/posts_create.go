package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/pixelfeedhq/pixelfeed/internal/api/service"
	"github.com/pixelfeedhq/pixelfeed/pkg/apisdk"
	"github.com/pixelfeedhq/pixelfeed/pkg/httpx"
	"github.com/pixelfeedhq/pixelfeed/pkg/slogx"
)

// multipartMemoryLimit bounds how much of the form is buffered in memory;
// the rest spills to temp files.
const multipartMemoryLimit = 8 << 20

type CreatePostHandler struct {
	PostService *service.PostService
}

// ServeHTTP handles post creation with an image upload.
//
//	@Summary		Create a post
//	@Description	Uploads a jpeg/png image (max 5 MiB) with an optional caption and creates the post.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file				true	"Image file (jpg, jpeg, png)"
//	@Param			body	formData	string				false	"Caption"
//	@Success		201		{object}	apisdk.PostResponse	"Created post"
//	@Failure		401		{object}	apisdk.APIError		"Invalid or missing token"
//	@Failure		413		{object}	apisdk.APIError		"File too large"
//	@Failure		415		{object}	apisdk.APIError		"Not a supported image type"
//	@Router			/v1/posts [post].
func (h *CreatePostHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		apisdk.ErrInvalidToken.WriteError(w)
		return
	}

	// Cap the request body slightly above the media limit so oversized
	// uploads fail fast instead of buffering gigabytes.
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxMediaBytes+multipartMemoryLimit)

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			apisdk.ErrPayloadTooLarge.WriteError(w)
			return
		}
		apisdk.NewValidationError(map[string]string{"body": "expected multipart form"}).WriteError(w)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apisdk.NewValidationError(map[string]string{"file": "image file is required"}).WriteError(w)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error("reading upload failed", "err", err)
		apisdk.ErrServerError.WriteError(w)
		return
	}

	var body *string
	if caption := r.FormValue("body"); caption != "" {
		body = &caption
	}

	post, err := h.PostService.CreatePost(ctx, service.CreatePostInput{
		AuthorID:    userID,
		Body:        body,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toPostResponse(post))
}
