package service

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/pixelfeedhq/pixelfeed/internal/api/domain"
	"github.com/pixelfeedhq/pixelfeed/internal/api/store"
	"github.com/pixelfeedhq/pixelfeed/pkg/cryptox"
	"github.com/pixelfeedhq/pixelfeed/pkg/idx"
	"github.com/pixelfeedhq/pixelfeed/pkg/jwtx"
	"github.com/pixelfeedhq/pixelfeed/pkg/slogx"
)

// MinPasswordBytes is the shortest acceptable password after trimming
// surrounding whitespace. The upper bound is bcrypt's input limit.
const MinPasswordBytes = 8

// AuthService owns registration, login and request-to-identity resolution.
// It holds no state of its own; every call runs fresh against the store.
type AuthService struct {
	Store store.Store
	Codec *jwtx.HS256Codec

	// DefaultRoleID is assigned to new accounts when set. The role is
	// passthrough only; nothing in this service interprets it.
	DefaultRoleID string
}

// RegisterInput is the validated payload of a registration attempt.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// Validate enforces the request shape before any store call is made.
// Password length is measured in bytes after trimming, matching what the
// hasher will actually see.
func (in RegisterInput) Validate() error {
	trimmed := strings.TrimSpace(in.Password)
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Username,
			validation.Required,
			validation.Length(3, 32),
			is.Alphanumeric,
		),
		validation.Field(&in.Password,
			validation.Required,
			validation.By(func(any) error {
				if len(trimmed) < MinPasswordBytes {
					return errors.New("must be at least 8 characters")
				}
				if len(trimmed) > cryptox.MaxPasswordBytes {
					return errors.New("must be at most 72 bytes")
				}
				return nil
			}),
		),
	)
}

// Register creates a new account. The existence checks and the insert run
// in one transaction; the checks are still a fast pre-filter only, since a
// competing registration committed in between surfaces through the store's
// unique constraints, which stay authoritative. A constraint violation at
// insert surfaces as the same conflict kind as the pre-check.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if err := in.Validate(); err != nil {
		return domain.User{}, validationError(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.TrimSpace(in.Username)

	// Hash before opening the transaction; bcrypt is slow on purpose and
	// must not hold the write lock.
	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	}
	if s.DefaultRoleID != "" {
		user.RoleID = &s.DefaultRoleID
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		taken, err := tx.Users().ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}

		taken, err = tx.Users().ExistsByUsername(ctx, username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}

		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost the race; report it the same way as the pre-check. The
			// email check reruns outside the rolled-back transaction to
			// pick the right conflict kind.
			if taken, checkErr := s.Store.Users().ExistsByEmail(ctx, email); checkErr == nil && taken {
				return domain.User{}, ErrEmailTaken
			}
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	return s.Store.Users().GetUserByID(ctx, user.ID)
}

// Login verifies the credentials and issues a session token. Unknown email
// and wrong password produce the identical failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredential
		}
		return "", err
	}

	if !cryptox.VerifyPassword(password, user.PasswordHash) {
		log.Info("login password mismatch", "user_id", user.ID)
		return "", ErrInvalidCredential
	}

	return s.Codec.Issue(user.ID, user.Username)
}

// ResolveIdentity runs the request-to-identity pipeline: verify the bearer
// token, extract the subject claim, and load the identity it references.
// Stateless; nothing is cached or retried.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) (domain.User, error) {
	claims, err := s.Codec.Verify(token)
	if err != nil {
		return domain.User{}, ErrInvalidToken
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	return user, nil
}

// validationError flattens ozzo's per-field errors into a ValidationError.
func validationError(err error) error {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for name, fieldErr := range fieldErrs {
			fields[strings.ToLower(name)] = fieldErr.Error()
		}
		return &ValidationError{Fields: fields}
	}
	return &ValidationError{Fields: map[string]string{"request": err.Error()}}
}
