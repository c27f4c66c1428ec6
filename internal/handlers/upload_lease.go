package handlers

import (
	"errors"
	"net/http"

	"recipebox/internal/uploads"

	"github.com/gin-gonic/gin"
)

// imageLease scopes an accepted upload to the current request. The file is
// deleted on every exit path unless Commit ran, so rejected requests never
// leave files behind.
type imageLease struct {
	store     *uploads.Store
	url       string
	committed bool
}

// acquireImage reads the optional "image" form file and writes it to the
// upload store. A missing file yields an empty lease. On a rejected or
// failed upload the response is already written and ok is false.
func (h *Handler) acquireImage(c *gin.Context) (*imageLease, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return &imageLease{store: h.uploads}, true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image field: " + err.Error()})
		return nil, false
	}

	url, err := h.uploads.Save(fh)
	if err != nil {
		if errors.Is(err, uploads.ErrImageTooLarge) || errors.Is(err, uploads.ErrNotAnImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, false
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to store image", "image_save_failed", err)
		return nil, false
	}

	return &imageLease{store: h.uploads, url: url}, true
}

// URL returns the relative URL of the written file, or "" when no file
// came with the request.
func (l *imageLease) URL() string {
	if l == nil {
		return ""
	}
	return l.url
}

// Commit keeps the file; Release becomes a no-op.
func (l *imageLease) Commit() {
	if l != nil {
		l.committed = true
	}
}

// Release deletes the written file unless the request committed it.
func (l *imageLease) Release() {
	if l == nil || l.committed || l.url == "" {
		return
	}
	_ = l.store.Remove(l.url)
}
