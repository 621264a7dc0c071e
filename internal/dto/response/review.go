package response

import (
	"time"

	"hotel-booking/internal/data/entity"
)

type ReviewResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	HotelID   string    `json:"hotelId"`
	BookingID string    `json:"bookingId"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		UserID:    review.UserID.String(),
		HotelID:   review.HotelID.String(),
		BookingID: review.BookingID.String(),
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}
