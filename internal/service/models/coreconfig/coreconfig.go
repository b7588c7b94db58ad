package coreconfig

import (
	"encoding/json"
	"time"
)

// Setting is one staff-managed configuration entry.
type Setting struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedBy string          `json:"updatedBy"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
