package repository

import (
	"context"
	"errors"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ReviewBookingConstraint allows one review per booking.
const ReviewBookingConstraint = "reviews_booking_id_key"

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error)
	FindByHotelID(ctx context.Context, hotelID uuid.UUID) ([]*entity.Review, error)
}

type reviewRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewReviewRepository(db database.Querier, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `id, user_id, hotel_id, booking_id, rating, comment, created_at`

func scanReview(row scanner) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.HotelID,
		&review.BookingID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, hotel_id, booking_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		review.ID,
		review.UserID,
		review.HotelID,
		review.BookingID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)
	if err != nil {
		if !database.IsUniqueViolation(err, ReviewBookingConstraint) && !database.IsRetryable(err) {
			r.log.Error("Failed to create review",
				zap.Error(err),
				zap.String("user_id", review.UserID.String()),
				zap.String("booking_id", review.BookingID.String()),
			)
		}
		return fmt.Errorf("create review for booking %s: %w", review.BookingID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE booking_id = $1`

	review, err := scanReview(database.Conn(ctx, r.db).QueryRow(ctx, query, bookingID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find review by booking ID %s: %w", bookingID.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) FindByHotelID(ctx context.Context, hotelID uuid.UUID) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE hotel_id = $1
		ORDER BY created_at DESC
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, hotelID)
	if err != nil {
		r.log.Error("Failed to find reviews by hotel ID",
			zap.Error(err),
			zap.String("hotel_id", hotelID.String()),
		)
		return nil, fmt.Errorf("find reviews by hotel ID %s: %w", hotelID.String(), err)
	}
	defer rows.Close()

	reviews := []*entity.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}
