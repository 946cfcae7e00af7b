package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hotel_booking/internal/domain"
)

type HotelService struct {
	repo        domain.HotelRepository
	images      domain.ImageHost
	cache       domain.Cache
	cacheTTL    time.Duration
	uploadLimit int
	now         func() time.Time
}

func NewHotelService(r domain.HotelRepository, img domain.ImageHost, c domain.Cache, ttl time.Duration, uploadLimit int) *HotelService {
	return &HotelService{repo: r, images: img, cache: c, cacheTTL: ttl, uploadLimit: uploadLimit, now: time.Now}
}

// CreateHotel uploads the images, stamps owner and timestamp, and stores a new hotel.
// Nothing is persisted when an upload fails.
func (s *HotelService) CreateHotel(ctx context.Context, owner string, h domain.Hotel, files []domain.ImageFile) (domain.Hotel, error) {
	urls, err := UploadImages(ctx, s.images, files, s.uploadLimit)
	if err != nil {
		return domain.Hotel{}, err
	}

	h.ID = uuid.NewString()
	h.UserID = owner
	h.ImageURLs = urls
	h.LastUpdated = s.stamp()
	if err := s.repo.InsertHotel(ctx, h); err != nil {
		return domain.Hotel{}, fmt.Errorf("insert hotel: %w", err)
	}

	if s.cache != nil {
		s.invalidateOwner(ctx, owner, h.ID)
	}
	return h, nil
}

// UpdateHotel overwrites the base fields of the caller's hotel, then uploads the new
// files and prepends their URLs to the image list. A nil h.ImageURLs keeps the stored
// list. Returns domain.ErrNotFound when (h.ID, owner) matches nothing.
func (s *HotelService) UpdateHotel(ctx context.Context, owner string, h domain.Hotel, files []domain.ImageFile) (domain.Hotel, error) {
	h.UserID = owner
	h.LastUpdated = s.stamp()

	updated, err := s.repo.UpdateHotel(ctx, h)
	if err != nil {
		return domain.Hotel{}, err
	}
	// base fields are already written; drop stale reads before anything else can fail
	if s.cache != nil {
		s.invalidateOwner(ctx, owner, h.ID)
	}

	urls, err := UploadImages(ctx, s.images, files, s.uploadLimit)
	if err != nil {
		return domain.Hotel{}, err
	}
	if len(urls) == 0 {
		return updated, nil
	}

	merged := make([]string, 0, len(urls)+len(updated.ImageURLs))
	merged = append(merged, urls...)
	merged = append(merged, updated.ImageURLs...)
	if err := s.repo.SetImageURLs(ctx, updated.ID, owner, merged); err != nil {
		return domain.Hotel{}, fmt.Errorf("save image urls: %w", err)
	}
	updated.ImageURLs = merged

	if s.cache != nil {
		s.invalidateOwner(ctx, owner, h.ID)
	}
	return updated, nil
}

// stamp returns now truncated to the precision stored by DATETIME(3).
func (s *HotelService) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *HotelService) invalidateOwner(ctx context.Context, owner, id string) {
	_ = s.cache.Del(ctx, listKey(owner))
	if id != "" {
		_ = s.cache.Del(ctx, hotelKey(owner, id))
	}
}

func listKey(owner string) string      { return "hotels:" + owner }
func hotelKey(owner, id string) string { return "hotel:" + owner + ":" + id }
