package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"fixkaro/services/storage"

	"github.com/gin-gonic/gin"
)

// allowedBuckets defines permitted upload destinations.
var allowedBuckets = map[string]bool{
	storage.BucketAvatars:          true,
	storage.BucketJobImages:        true,
	storage.BucketVerificationDocs: true,
}

// UploadFileHandler stores a multipart upload and returns its identifier.
// Public buckets also return the stable URL; verification documents only
// return the ID, reachable later through a signed URL.
func UploadFileHandler(svc storage.StorageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bucket := c.Param("bucket")
		if !allowedBuckets[bucket] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bucket"})
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
			return
		}

		tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
		if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "detail": err.Error()})
			return
		}
		defer os.Remove(tempFilePath)

		publicID, err := svc.UploadFile(c.Request.Context(), tempFilePath, bucket)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file", "detail": err.Error()})
			return
		}

		resp := gin.H{"file_id": publicID}
		if bucket != storage.BucketVerificationDocs {
			if url, err := svc.PublicURL(publicID); err == nil {
				resp["url"] = url
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}

// SignedURLHandler returns a short-lived URL for a restricted document.
// Admin only; worker documents never get stable public URLs.
func SignedURLHandler(svc storage.StorageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileID := c.Query("file_id")
		if fileID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file_id is required"})
			return
		}

		expiry := 15 * time.Minute
		if expStr := c.Query("expires"); expStr != "" {
			if exp, err := time.ParseDuration(expStr); err == nil && exp > 0 {
				expiry = exp
			}
		}

		url, err := svc.SignedURL(fileID, expiry)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate signed URL", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url, "expires_in": expiry.String()})
	}
}
