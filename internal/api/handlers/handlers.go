// internal/api/handlers/handlers.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/udyamhq/udyam-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// respondError maps domain client errors to 400 and everything else to 500.
// Ledger and storage failures pass through without retry.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if domain.IsClientError(err) {
		status = http.StatusBadRequest
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(status, gin.H{"error": err.Error()})
}

// parseDate parses a YYYY-MM-DD query value, returning the fallback when the
// value is absent. A malformed value returns ok=false after writing a 400.
func parseDate(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}

	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be formatted as YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}
