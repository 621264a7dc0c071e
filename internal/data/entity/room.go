package entity

import "github.com/google/uuid"

type Room struct {
	Base
	HotelID       uuid.UUID `db:"hotel_id"`
	RoomNumber    string    `db:"room_number"`
	RoomType      string    `db:"room_type"`
	PricePerNight float64   `db:"price_per_night"`
	MaxOccupancy  int       `db:"max_occupancy"`
}
