package services

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// newID returns a prefixed short id, e.g. "sess_3fa8c12b". Eight hex chars of
// a v4 uuid are plenty for a single process lifetime.
func newID(prefix string) string {
	u := uuid.New()
	return prefix + "_" + hex.EncodeToString(u[:])[:8]
}

func utcNow() time.Time {
	return time.Now().UTC()
}
