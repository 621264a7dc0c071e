package entity

import "github.com/google/uuid"

type Hotel struct {
	Base
	OwnerID      uuid.UUID `db:"owner_id"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	City         string    `db:"city"`
	Country      string    `db:"country"`
	Amenities    []string  `db:"amenities"`
	Rating       float64   `db:"rating"`
	TotalReviews int       `db:"total_reviews"`
}

// AddRating folds one more score into the running mean.
func (h *Hotel) AddRating(score int) {
	h.Rating = (h.Rating*float64(h.TotalReviews) + float64(score)) / float64(h.TotalReviews+1)
	h.TotalReviews++
}

// HotelSummary is a listed hotel together with its cheapest room price.
type HotelSummary struct {
	Hotel
	MinPricePerNight float64 `db:"min_price_per_night"`
}

// HotelFilter narrows the hotel listing. Nil bounds are not applied.
type HotelFilter struct {
	City      string
	Country   string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
}
