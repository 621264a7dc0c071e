package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	return s == BookingStatusConfirmed || s == BookingStatusCancelled
}

const msPerDay = 24 * 60 * 60 * 1000

type Booking struct {
	Base
	UserID       uuid.UUID     `db:"user_id"`
	HotelID      uuid.UUID     `db:"hotel_id"`
	RoomID       uuid.UUID     `db:"room_id"`
	CheckInDate  time.Time     `db:"check_in_date"`
	CheckOutDate time.Time     `db:"check_out_date"`
	Guests       int           `db:"guests"`
	TotalPrice   float64       `db:"total_price"`
	Status       BookingStatus `db:"status"`
	BookingDate  time.Time     `db:"booking_date"`
}

// Overlaps applies the half-open interval test against [checkIn, checkOut).
// Only confirmed bookings occupy a room.
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return b.Status == BookingStatusConfirmed &&
		b.CheckInDate.Before(checkOut) &&
		b.CheckOutDate.After(checkIn)
}

// Nights is the stay length in days, fractional when the dates are not
// aligned to midnight.
func Nights(checkIn, checkOut time.Time) float64 {
	return float64(checkOut.Sub(checkIn).Milliseconds()) / msPerDay
}

// TotalPrice is nights times the nightly rate, unrounded.
func TotalPrice(checkIn, checkOut time.Time, pricePerNight float64) float64 {
	return Nights(checkIn, checkOut) * pricePerNight
}

// BookingDetail is a booking joined with its hotel and room for listings.
type BookingDetail struct {
	Booking
	HotelName  string `db:"hotel_name"`
	RoomNumber string `db:"room_number"`
	RoomType   string `db:"room_type"`
}
