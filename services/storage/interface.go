package storage

import (
	"context"
	"time"
)

// Bucket names the logical destinations for uploads. Avatars and job images
// are public; verification documents are restricted and only reachable
// through short-lived signed URLs.
const (
	BucketAvatars          = "avatars"
	BucketJobImages        = "job-images"
	BucketVerificationDocs = "verification-docs"
)

// StorageService defines the interface for storage operations.
type StorageService interface {
	// UploadFile stores a file under the bucket folder and returns its
	// permanent identifier.
	UploadFile(ctx context.Context, localFilePath, bucket string) (string, error)
	// DeleteFile removes a stored file.
	DeleteFile(ctx context.Context, publicID string) error
	// PublicURL returns the stable URL of a file in a public bucket.
	PublicURL(publicID string) (string, error)
	// SignedURL returns a short-lived URL for a file in the restricted
	// bucket.
	SignedURL(publicID string, expires time.Duration) (string, error)
}
