package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recipe-backend/internal/shared/server/respond"
	"recipe-backend/internal/shared/storage/object"
)

// fileHandler streams stored objects for the local backend. The remote
// backends hand out URLs that resolve against the provider instead.
func fileHandler(store object.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		if key == "" {
			respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
			return
		}

		body, err := store.Open(c.Request.Context(), key)
		if err != nil {
			respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
			return
		}
		defer body.Close()

		var sniff [512]byte
		n, readErr := io.ReadFull(body, sniff[:])
		if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read file", nil)
			return
		}

		c.Header("Content-Type", http.DetectContentType(sniff[:n]))
		c.Header("Cache-Control", "public, max-age=86400")
		c.Status(http.StatusOK)
		if _, err := c.Writer.Write(sniff[:n]); err != nil {
			return
		}
		_, _ = io.Copy(c.Writer, body)
	}
}
