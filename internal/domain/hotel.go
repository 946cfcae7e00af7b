package domain

import "time"

// Hotel is a lodging property owned by exactly one user.
type Hotel struct {
	ID            string    `json:"_id"`
	UserID        string    `json:"userId"`
	Name          string    `json:"name"`
	City          string    `json:"city"`
	Country       string    `json:"country"`
	Description   string    `json:"description"`
	Type          string    `json:"type"`
	PricePerNight float64   `json:"pricePerNight"`
	Facilities    []string  `json:"facilities"`
	ImageURLs     []string  `json:"imageUrls"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// ImageFile is an uploaded image held in memory.
type ImageFile struct {
	Name     string
	MimeType string
	Data     []byte
}
