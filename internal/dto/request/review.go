package request

type CreateReviewRequest struct {
	BookingID string  `json:"bookingId" validate:"required,uuid"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}
