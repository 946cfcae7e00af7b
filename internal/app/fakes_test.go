package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"hotel_booking/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	mu      sync.Mutex
	hotels  map[string]domain.Hotel
	inserts int
	lists   int
	failIns error
}

func newFakeRepo() *fakeRepo { return &fakeRepo{hotels: map[string]domain.Hotel{}} }

func cloneHotel(h domain.Hotel) domain.Hotel {
	h.Facilities = append([]string(nil), h.Facilities...)
	if h.ImageURLs != nil {
		h.ImageURLs = append([]string{}, h.ImageURLs...)
	}
	return h
}

func (f *fakeRepo) InsertHotel(ctx context.Context, h domain.Hotel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIns != nil {
		return f.failIns
	}
	f.inserts++
	f.hotels[h.ID] = cloneHotel(h)
	return nil
}

func (f *fakeRepo) UpdateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.hotels[h.ID]
	if !ok || cur.UserID != h.UserID {
		return domain.Hotel{}, domain.ErrNotFound
	}
	if h.ImageURLs == nil {
		h.ImageURLs = cur.ImageURLs
	}
	f.hotels[h.ID] = cloneHotel(h)
	return cloneHotel(h), nil
}

func (f *fakeRepo) SetImageURLs(ctx context.Context, id, owner string, urls []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.hotels[id]
	if !ok || cur.UserID != owner {
		return domain.ErrNotFound
	}
	cur.ImageURLs = append([]string{}, urls...)
	f.hotels[id] = cur
	return nil
}

func (f *fakeRepo) GetHotel(ctx context.Context, id, owner string) (domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.hotels[id]
	if !ok || h.UserID != owner {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return cloneHotel(h), nil
}

func (f *fakeRepo) ListHotels(ctx context.Context, owner string) ([]domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	out := []domain.Hotel{}
	for _, h := range f.hotels {
		if h.UserID == owner {
			out = append(out, cloneHotel(h))
		}
	}
	return out, nil
}

// fakeHost returns "https://img.test/<payload>" and fails for any data URL containing failOn.
type fakeHost struct {
	failOn string
	calls  int32
}

func (h *fakeHost) Upload(ctx context.Context, dataURL string) (string, error) {
	atomic.AddInt32(&h.calls, 1)
	if h.failOn != "" && strings.Contains(dataURL, h.failOn) {
		return "", errors.New("media service unavailable")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	i := strings.Index(dataURL, ",")
	return "https://img.test/" + dataURL[i+1:], nil
}

// fakeCache stores JSON like the redis adapter so decoded values never alias.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

type fakeUsers struct {
	mu    sync.Mutex
	byID  map[string]domain.User
	ident map[string]string // email -> id
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]domain.User{}, ident: map[string]string{}}
}

func (f *fakeUsers) InsertUser(ctx context.Context, u domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ident[u.Email]; ok {
		return domain.ErrConflict
	}
	f.byID[u.ID] = u
	f.ident[u.Email] = u.ID
	return nil
}

func (f *fakeUsers) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.ident[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return f.byID[id], nil
}

func (f *fakeUsers) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(userID string) (string, error) { return "token-" + userID, nil }

// ---- helpers ----

func img(payload string) domain.ImageFile {
	return domain.ImageFile{Name: payload + ".png", MimeType: "image/png", Data: []byte(payload)}
}

func hostedURL(s string) string {
	return "https://img.test/" + encode(s)
}
