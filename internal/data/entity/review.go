package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	HotelID   uuid.UUID `db:"hotel_id"`
	BookingID uuid.UUID `db:"booking_id"`
	Rating    int       `db:"rating"` // 1-5
	Comment   *string   `db:"comment"`
}
