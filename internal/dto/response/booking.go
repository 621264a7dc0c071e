package response

import (
	"time"

	"hotel-booking/internal/data/entity"
)

type BookingResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	RoomID       string    `json:"roomId"`
	HotelID      string    `json:"hotelId"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
	Guests       int       `json:"guests"`
	TotalPrice   float64   `json:"totalPrice"`
	Status       string    `json:"status"`
	BookingDate  time.Time `json:"bookingDate"`
}

// BookingListItem is one row of the caller's booking history.
type BookingListItem struct {
	ID           string    `json:"id"`
	RoomID       string    `json:"roomId"`
	HotelID      string    `json:"hotelId"`
	HotelName    string    `json:"hotelName"`
	RoomNumber   string    `json:"roomNumber"`
	RoomType     string    `json:"roomType"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
	Guests       int       `json:"guests"`
	TotalPrice   float64   `json:"totalPrice"`
	Status       string    `json:"status"`
	BookingDate  time.Time `json:"bookingDate"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:           booking.ID.String(),
		UserID:       booking.UserID.String(),
		RoomID:       booking.RoomID.String(),
		HotelID:      booking.HotelID.String(),
		CheckInDate:  booking.CheckInDate,
		CheckOutDate: booking.CheckOutDate,
		Guests:       booking.Guests,
		TotalPrice:   booking.TotalPrice,
		Status:       string(booking.Status),
		BookingDate:  booking.BookingDate,
	}
}

func BookingToListItem(detail *entity.BookingDetail) BookingListItem {
	return BookingListItem{
		ID:           detail.ID.String(),
		RoomID:       detail.RoomID.String(),
		HotelID:      detail.HotelID.String(),
		HotelName:    detail.HotelName,
		RoomNumber:   detail.RoomNumber,
		RoomType:     detail.RoomType,
		CheckInDate:  detail.CheckInDate,
		CheckOutDate: detail.CheckOutDate,
		Guests:       detail.Guests,
		TotalPrice:   detail.TotalPrice,
		Status:       string(detail.Status),
		BookingDate:  detail.BookingDate,
	}
}
