package models

import (
	"encoding/json"
	"time"
)

// User is one record of the users document. Password is stored verbatim.
type User struct {
	Username  string            `json:"username"`
	Password  string            `json:"password"`
	Email     string            `json:"email,omitempty"`
	Favorites []json.RawMessage `json:"favorites"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt *time.Time        `json:"updatedAt,omitempty"`
}

// Public is the subset of a user returned to clients after login.
type Public struct {
	Username  string            `json:"username"`
	Favorites []json.RawMessage `json:"favorites"`
}

// Public strips credentials from u.
func (u *User) Public() Public {
	fav := u.Favorites
	if fav == nil {
		fav = []json.RawMessage{}
	}
	return Public{Username: u.Username, Favorites: fav}
}
