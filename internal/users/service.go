// Package users implements registration, login and favorites sync over a
// single persisted list of user records.
package users

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/recordkit/recordsvc/internal/models"
	"github.com/recordkit/recordsvc/internal/store"
)

var (
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// Service encapsulates user-related business logic
type Service struct {
	store *store.Store[*Document]
	now   func() time.Time
}

func NewService(s *store.Store[*Document]) *Service {
	return &Service{store: s, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the timestamp source; used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Register appends a new user with no favorites.
func (s *Service) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	var created models.User
	_, err := s.store.Update(ctx, func(doc *Document) (*Document, error) {
		if doc.find(username) >= 0 {
			return nil, ErrUserExists
		}
		created = models.User{
			Username:  username,
			Password:  password,
			Email:     email,
			Favorites: []json.RawMessage{},
			CreatedAt: s.now(),
		}
		doc.Users = append(doc.Users, created)
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Login returns the user whose username and password both match exactly.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doc.Users {
		u := &doc.Users[i]
		if u.Username == username && u.Password == password {
			u.Favorites = normalizeFavorites(u.Favorites)
			return u, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// SyncFavorites replaces the user's favorites and stamps updatedAt.
func (s *Service) SyncFavorites(ctx context.Context, username string, favorites []json.RawMessage) error {
	_, err := s.store.Update(ctx, func(doc *Document) (*Document, error) {
		i := doc.find(username)
		if i < 0 {
			return nil, ErrUserNotFound
		}
		now := s.now()
		doc.Users[i].Favorites = normalizeFavorites(favorites)
		doc.Users[i].UpdatedAt = &now
		return doc, nil
	})
	return err
}

// Favorites returns the stored favorites of username.
func (s *Service) Favorites(ctx context.Context, username string) ([]json.RawMessage, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := doc.find(username)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	return normalizeFavorites(doc.Users[i].Favorites), nil
}
