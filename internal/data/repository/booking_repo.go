package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	// FindOverlapping returns a confirmed booking of roomID intersecting
	// [checkIn, checkOut), or nil.
	FindOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (*entity.Booking, error)
	// ListByUser returns the user's bookings, newest first. A nil status
	// lists every status.
	ListByUser(ctx context.Context, userID uuid.UUID, status *entity.BookingStatus) ([]*entity.BookingDetail, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, updatedAt time.Time) error
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `b.id, b.user_id, b.hotel_id, b.room_id, b.check_in_date, b.check_out_date,
	b.guests, b.total_price, b.status, b.booking_date, b.created_at, b.updated_at`

func bookingDest(b *entity.Booking) []any {
	return []any{
		&b.ID,
		&b.UserID,
		&b.HotelID,
		&b.RoomID,
		&b.CheckInDate,
		&b.CheckOutDate,
		&b.Guests,
		&b.TotalPrice,
		&b.Status,
		&b.BookingDate,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, hotel_id, room_id, check_in_date, check_out_date,
			guests, total_price, status, booking_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.HotelID,
		booking.RoomID,
		booking.CheckInDate,
		booking.CheckOutDate,
		booking.Guests,
		booking.TotalPrice,
		booking.Status,
		booking.BookingDate,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		if !database.IsExclusionViolation(err) && !database.IsRetryable(err) {
			r.log.Error("Failed to create booking",
				zap.Error(err),
				zap.String("user_id", booking.UserID.String()),
				zap.String("room_id", booking.RoomID.String()),
			)
		}
		return fmt.Errorf("create booking for room %s: %w", booking.RoomID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.findOne(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id = $1`, id)
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.findOne(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id = $1 FOR UPDATE`, id)
}

func (r *bookingRepository) FindOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.room_id = $1
		  AND b.status = 'confirmed'
		  AND b.check_in_date < $3
		  AND b.check_out_date > $2
		LIMIT 1
	`
	return r.findOne(ctx, query, roomID, checkIn, checkOut)
}

func (r *bookingRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Booking, error) {
	var booking entity.Booking
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(bookingDest(&booking)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		if !database.IsRetryable(err) {
			r.log.Error("Failed to find booking", zap.Error(err), zap.Any("args", args))
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID uuid.UUID, status *entity.BookingStatus) ([]*entity.BookingDetail, error) {
	query := `
		SELECT ` + bookingColumns + `, h.name, r.room_number, r.room_type
		FROM bookings b
		JOIN hotels h ON h.id = b.hotel_id
		JOIN rooms r ON r.id = b.room_id
		WHERE b.user_id = $1
		  AND ($2::text IS NULL OR b.status = $2)
		ORDER BY b.booking_date DESC
	`

	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, userID, statusArg)
	if err != nil {
		r.log.Error("Failed to list bookings by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list bookings of user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	bookings := []*entity.BookingDetail{}
	for rows.Next() {
		var detail entity.BookingDetail
		dest := append(bookingDest(&detail.Booking), &detail.HotelName, &detail.RoomNumber, &detail.RoomType)
		if err := rows.Scan(dest...); err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, updatedAt time.Time) error {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}
