package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// queryTime parses an optional ISO-8601 query parameter. A naive timestamp
// (no offset) is taken as UTC, matching how clients already send them.
func queryTime(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		utc := t.UTC()
		return &utc, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", raw, time.UTC); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("invalid %q timestamp: %s", name, raw)
}
