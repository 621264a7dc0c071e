package request

type CreateBookingRequest struct {
	RoomID       string `json:"roomId" validate:"required,uuid"`
	CheckInDate  string `json:"checkInDate" validate:"required"`
	CheckOutDate string `json:"checkOutDate" validate:"required"`
	Guests       int    `json:"guests" validate:"required,gt=0"`
}
