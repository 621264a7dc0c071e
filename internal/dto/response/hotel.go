package response

import "hotel-booking/internal/data/entity"

type HotelResponse struct {
	ID           string   `json:"id"`
	OwnerID      string   `json:"ownerId"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	City         string   `json:"city"`
	Country      string   `json:"country"`
	Amenities    []string `json:"amenities"`
	Rating       float64  `json:"rating"`
	TotalReviews int      `json:"totalReviews"`
}

type HotelSummaryResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	City             string   `json:"city"`
	Country          string   `json:"country"`
	Amenities        []string `json:"amenities"`
	Rating           float64  `json:"rating"`
	TotalReviews     int      `json:"totalReviews"`
	MinPricePerNight float64  `json:"minPricePerNight"`
}

type HotelRoom struct {
	ID            string  `json:"id"`
	RoomNumber    string  `json:"roomNumber"`
	RoomType      string  `json:"roomType"`
	PricePerNight float64 `json:"pricePerNight"`
	MaxOccupancy  int     `json:"maxOccupancy"`
}

type HotelDetailResponse struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	City         string      `json:"city"`
	Country      string      `json:"country"`
	Amenities    []string    `json:"amenities"`
	Rating       float64     `json:"rating"`
	TotalReviews int         `json:"totalReviews"`
	Rooms        []HotelRoom `json:"rooms"`
}

type RoomResponse struct {
	ID            string  `json:"id"`
	HotelID       string  `json:"hotelId"`
	RoomNumber    string  `json:"roomNumber"`
	RoomType      string  `json:"roomType"`
	PricePerNight float64 `json:"pricePerNight"`
	MaxOccupancy  int     `json:"maxOccupancy"`
}

func amenities(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func HotelToResponse(hotel *entity.Hotel) HotelResponse {
	return HotelResponse{
		ID:           hotel.ID.String(),
		OwnerID:      hotel.OwnerID.String(),
		Name:         hotel.Name,
		Description:  hotel.Description,
		City:         hotel.City,
		Country:      hotel.Country,
		Amenities:    amenities(hotel.Amenities),
		Rating:       hotel.Rating,
		TotalReviews: hotel.TotalReviews,
	}
}

func HotelToSummary(hotel *entity.HotelSummary) HotelSummaryResponse {
	return HotelSummaryResponse{
		ID:               hotel.ID.String(),
		Name:             hotel.Name,
		Description:      hotel.Description,
		City:             hotel.City,
		Country:          hotel.Country,
		Amenities:        amenities(hotel.Amenities),
		Rating:           hotel.Rating,
		TotalReviews:     hotel.TotalReviews,
		MinPricePerNight: hotel.MinPricePerNight,
	}
}

func HotelToDetail(hotel *entity.Hotel, rooms []*entity.Room) HotelDetailResponse {
	detail := HotelDetailResponse{
		ID:           hotel.ID.String(),
		Name:         hotel.Name,
		Description:  hotel.Description,
		City:         hotel.City,
		Country:      hotel.Country,
		Amenities:    amenities(hotel.Amenities),
		Rating:       hotel.Rating,
		TotalReviews: hotel.TotalReviews,
		Rooms:        make([]HotelRoom, len(rooms)),
	}
	for i, room := range rooms {
		detail.Rooms[i] = HotelRoom{
			ID:            room.ID.String(),
			RoomNumber:    room.RoomNumber,
			RoomType:      room.RoomType,
			PricePerNight: room.PricePerNight,
			MaxOccupancy:  room.MaxOccupancy,
		}
	}
	return detail
}

func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:            room.ID.String(),
		HotelID:       room.HotelID.String(),
		RoomNumber:    room.RoomNumber,
		RoomType:      room.RoomType,
		PricePerNight: room.PricePerNight,
		MaxOccupancy:  room.MaxOccupancy,
	}
}
