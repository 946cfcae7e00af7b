package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type HotelRepository interface {
	// Write paths
	InsertHotel(ctx context.Context, h Hotel) error
	// UpdateHotel overwrites the base fields of the hotel matching (h.ID, h.UserID).
	// A nil h.ImageURLs keeps the stored list. Returns ErrNotFound when no row matches.
	UpdateHotel(ctx context.Context, h Hotel) (Hotel, error)
	SetImageURLs(ctx context.Context, id, owner string, urls []string) error

	// Read paths
	GetHotel(ctx context.Context, id, owner string) (Hotel, error)
	ListHotels(ctx context.Context, owner string) ([]Hotel, error)
}

type UserRepository interface {
	InsertUser(ctx context.Context, u User) error
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id string) (User, error)
}

// ImageHost stores one image given as a data URL and returns its public URL.
type ImageHost interface {
	Upload(ctx context.Context, dataURL string) (string, error)
}

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
