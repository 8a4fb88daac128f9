// Package media stores uploaded post images in an S3-compatible bucket and
// hands back public URLs for them.
package media

import "context"

// Store is the object-storage boundary. The service layer depends on this
// so tests can substitute an in-memory implementation.
type Store interface {
	// Upload writes the object under key with the given content type and
	// returns its public URL.
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}
