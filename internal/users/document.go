package users

import (
	"encoding/json"

	"github.com/recordkit/recordsvc/internal/models"
	"github.com/recordkit/recordsvc/internal/store"
)

// Document is the persisted record list: {"users": [...]}.
type Document struct {
	Users []models.User `json:"users"`
}

func newDocument() *Document { return &Document{Users: []models.User{}} }

// NewStore wraps b in a Store of the users document.
func NewStore(b store.Backend) *store.Store[*Document] {
	return store.New(b, newDocument)
}

func (d *Document) find(username string) int {
	for i := range d.Users {
		if d.Users[i].Username == username {
			return i
		}
	}
	return -1
}

func normalizeFavorites(f []json.RawMessage) []json.RawMessage {
	if f == nil {
		return []json.RawMessage{}
	}
	return f
}
