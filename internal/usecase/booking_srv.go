package usecase

import (
	"context"
	"errors"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/database"
	"hotel-booking/pkg/metrics"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, identity utils.Identity, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, identity utils.Identity, status string) ([]response.BookingListItem, error)
	CancelBooking(ctx context.Context, identity utils.Identity, bookingID string) (*response.BookingResponse, error)
}

type bookingService struct {
	clock
	repo           *repository.Repository
	capacityPolicy string
	log            *zap.Logger
}

func NewBookingService(repo *repository.Repository, capacityPolicy string, log *zap.Logger) BookingService {
	if capacityPolicy == "" {
		capacityPolicy = utils.CapacityPolicyLegacy
	}
	return &bookingService{
		clock:          newClock(),
		repo:           repo,
		capacityPolicy: capacityPolicy,
		log:            log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, identity utils.Identity, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	booking, err := s.admit(ctx, identity, req)
	if err != nil {
		metrics.ObserveBooking(apperror.From(err).Code)
		return nil, err
	}

	metrics.ObserveBooking(string(entity.BookingStatusConfirmed))
	s.log.Info("Booking confirmed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("room_id", booking.RoomID.String()),
		zap.String("user_id", booking.UserID.String()))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) admit(ctx context.Context, identity utils.Identity, req *request.CreateBookingRequest) (*entity.Booking, error) {
	// 1. Caller must be a customer
	if err := Authorize(identity, entity.RoleCustomer); err != nil {
		return nil, err
	}

	// 2. Validate request
	if err := validate(req); err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}

	// 3. Dates are part of the request shape
	checkIn, err := utils.ParseDate(req.CheckInDate)
	if err != nil {
		return nil, apperror.ErrInvalidDates.WithCause(err)
	}
	checkOut, err := utils.ParseDate(req.CheckOutDate)
	if err != nil {
		return nil, apperror.ErrInvalidDates.WithCause(err)
	}
	if !checkOut.After(checkIn) {
		return nil, apperror.ErrInvalidRequest.WithCause(errors.New("checkOutDate must be after checkInDate"))
	}

	// 4. Room must exist
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, apperror.ErrInvalidRequest.WithCause(err)
	}
	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if room == nil {
		return nil, apperror.ErrRoomNotFound
	}

	// 5. Capacity
	if !s.fits(req.Guests, room.MaxOccupancy) {
		return nil, apperror.ErrInvalidCapacity
	}

	now := s.now()
	booking := &entity.Booking{
		Base:         entity.NewBase(now),
		UserID:       identity.UserID,
		HotelID:      room.HotelID,
		RoomID:       room.ID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Guests:       req.Guests,
		TotalPrice:   entity.TotalPrice(checkIn, checkOut, room.PricePerNight),
		Status:       entity.BookingStatusConfirmed,
		BookingDate:  now,
	}

	// 6. Check and insert under the room lock
	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := s.repo.Room.FindByIDForUpdate(ctx, room.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return apperror.ErrRoomNotFound
		}

		overlapping, err := s.repo.Booking.FindOverlapping(ctx, room.ID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if overlapping != nil {
			return apperror.ErrRoomNotAvailable
		}

		return s.repo.Booking.Create(ctx, booking)
	})
	if err != nil {
		if database.IsExclusionViolation(err) {
			return nil, apperror.ErrRoomNotAvailable.WithCause(err)
		}
		return nil, appError(err)
	}

	return booking, nil
}

// fits applies the configured capacity policy. The legacy policy admits only
// parties of at least maxOccupancy guests.
func (s *bookingService) fits(guests, maxOccupancy int) bool {
	if s.capacityPolicy == utils.CapacityPolicyMaxOccupancy {
		return guests <= maxOccupancy
	}
	return guests >= maxOccupancy
}

func (s *bookingService) ListBookings(ctx context.Context, identity utils.Identity, status string) ([]response.BookingListItem, error) {
	if err := Authorize(identity, entity.RoleCustomer); err != nil {
		return nil, err
	}

	var filter *entity.BookingStatus
	if status != "" {
		st := entity.BookingStatus(status)
		if !st.Valid() {
			return nil, apperror.ErrInvalidRequest.WithCause(fmt.Errorf("unknown status %q", status))
		}
		filter = &st
	}

	bookings, err := s.repo.Booking.ListByUser(ctx, identity.UserID, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	result := make([]response.BookingListItem, len(bookings))
	for i, booking := range bookings {
		result[i] = response.BookingToListItem(booking)
	}

	return result, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, identity utils.Identity, bookingID string) (*response.BookingResponse, error) {
	if err := Authorize(identity, entity.RoleCustomer); err != nil {
		return nil, err
	}

	id, err := parseID(bookingID, apperror.ErrBookingNotFound)
	if err != nil {
		return nil, err
	}

	var booking *entity.Booking
	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		found, err := s.repo.Booking.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if found == nil {
			return apperror.ErrBookingNotFound
		}
		if found.UserID != identity.UserID {
			return apperror.ErrForbidden
		}
		if found.Status != entity.BookingStatusConfirmed {
			return apperror.ErrBookingNotCancellable
		}

		found.Status = entity.BookingStatusCancelled
		found.UpdatedAt = s.now()
		if err := s.repo.Booking.UpdateStatus(ctx, found.ID, found.Status, found.UpdatedAt); err != nil {
			return err
		}

		booking = found
		return nil
	})
	if err != nil {
		return nil, appError(err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", identity.UserID.String()))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}
