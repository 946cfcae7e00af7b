package app

import (
	"context"
	"errors"

	"hotel_booking/internal/domain"
)

// ListHotels returns every hotel owned by owner; never nil.
func (s *HotelService) ListHotels(ctx context.Context, owner string) ([]domain.Hotel, error) {
	key := listKey(owner)
	if s.cache != nil {
		var cached []domain.Hotel
		// a value that fails to decode is treated as a miss
		if ok, err := s.cache.Get(ctx, key, &cached); err == nil && ok && cached != nil {
			return cached, nil
		}
	}

	hs, err := s.repo.ListHotels(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Hotel, len(hs))
	copy(out, hs)

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

// GetHotel returns the hotel with id owned by owner, or nil when there is none.
// A hotel owned by someone else is reported exactly like a missing one.
func (s *HotelService) GetHotel(ctx context.Context, owner, id string) (*domain.Hotel, error) {
	key := hotelKey(owner, id)
	if s.cache != nil {
		var cached domain.Hotel
		if ok, err := s.cache.Get(ctx, key, &cached); err == nil && ok && cached.ID != "" {
			return &cached, nil
		}
	}

	h, err := s.repo.GetHotel(ctx, id, owner)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return &h, nil
}
