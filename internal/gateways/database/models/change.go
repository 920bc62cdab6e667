package models

import "github.com/carrybid/carrybid/internal/feed"

// ChangeChannel is the LISTEN/NOTIFY channel repositories write to.
const ChangeChannel = "carrybid_changes"

// Change is the NOTIFY payload. Documents are reloaded by id on the
// receiving side, keeping payloads under the 8000 byte limit.
type Change struct {
	Collection feed.Collection `json:"c"`
	Kind       feed.Kind       `json:"k"`
	ID         string          `json:"id"`
}
