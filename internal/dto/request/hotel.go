package request

type CreateHotelRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	City        string   `json:"city" validate:"required,max=100"`
	Country     string   `json:"country" validate:"required,max=100"`
	Amenities   []string `json:"amenities,omitempty" validate:"omitempty,dive,required"`
}

type CreateRoomRequest struct {
	RoomNumber    string  `json:"roomNumber" validate:"required,max=20"`
	RoomType      string  `json:"roomType" validate:"required,max=50"`
	PricePerNight float64 `json:"pricePerNight" validate:"required,gt=0"`
	MaxOccupancy  int     `json:"maxOccupancy" validate:"required,gt=0"`
}

// HotelFilterRequest is built from the listing query string. The numeric
// bounds stay raw until the service knows which of them the filter mode reads.
type HotelFilterRequest struct {
	City      string
	Country   string
	MinPrice  string
	MaxPrice  string
	MinRating string
}
