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

type HotelRepository interface {
	Create(ctx context.Context, hotel *entity.Hotel) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error)
	// FindByIDForUpdate locks the hotel row until the surrounding
	// transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Hotel, error)
	// ListWithRooms returns hotels that have at least one room, each with its
	// cheapest nightly price. Only the city and country filters apply here.
	ListWithRooms(ctx context.Context, filter entity.HotelFilter) ([]*entity.HotelSummary, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64, totalReviews int, updatedAt time.Time) error
}

type hotelRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewHotelRepository(db database.Querier, log *zap.Logger) HotelRepository {
	return &hotelRepository{
		db:  db,
		log: log.With(zap.String("repository", "hotel")),
	}
}

const hotelColumns = `h.id, h.owner_id, h.name, h.description, h.city, h.country,
	h.amenities, h.rating, h.total_reviews, h.created_at, h.updated_at`

func hotelDest(h *entity.Hotel) []any {
	return []any{
		&h.ID,
		&h.OwnerID,
		&h.Name,
		&h.Description,
		&h.City,
		&h.Country,
		&h.Amenities,
		&h.Rating,
		&h.TotalReviews,
		&h.CreatedAt,
		&h.UpdatedAt,
	}
}

func (r *hotelRepository) Create(ctx context.Context, hotel *entity.Hotel) error {
	query := `
		INSERT INTO hotels (id, owner_id, name, description, city, country, amenities,
			rating, total_reviews, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	amenities := hotel.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		hotel.ID,
		hotel.OwnerID,
		hotel.Name,
		hotel.Description,
		hotel.City,
		hotel.Country,
		amenities,
		hotel.Rating,
		hotel.TotalReviews,
		hotel.CreatedAt,
		hotel.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create hotel",
			zap.Error(err),
			zap.String("owner_id", hotel.OwnerID.String()),
		)
		return fmt.Errorf("create hotel for owner %s: %w", hotel.OwnerID.String(), err)
	}

	return nil
}

func (r *hotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error) {
	return r.findByID(ctx, id, `SELECT `+hotelColumns+` FROM hotels h WHERE h.id = $1`)
}

func (r *hotelRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Hotel, error) {
	return r.findByID(ctx, id, `SELECT `+hotelColumns+` FROM hotels h WHERE h.id = $1 FOR UPDATE`)
}

func (r *hotelRepository) findByID(ctx context.Context, id uuid.UUID, query string) (*entity.Hotel, error) {
	var hotel entity.Hotel
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(hotelDest(&hotel)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hotel by ID", zap.Error(err), zap.String("hotel_id", id.String()))
		return nil, fmt.Errorf("find hotel by ID %s: %w", id.String(), err)
	}

	return &hotel, nil
}

func (r *hotelRepository) ListWithRooms(ctx context.Context, filter entity.HotelFilter) ([]*entity.HotelSummary, error) {
	query := `
		SELECT ` + hotelColumns + `, MIN(r.price_per_night) AS min_price_per_night
		FROM hotels h
		JOIN rooms r ON r.hotel_id = h.id
		WHERE ($1::text = '' OR h.city = $1)
		  AND ($2::text = '' OR h.country = $2)
		GROUP BY h.id
		ORDER BY h.created_at, h.id
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, filter.City, filter.Country)
	if err != nil {
		r.log.Error("Failed to list hotels",
			zap.Error(err),
			zap.String("city", filter.City),
			zap.String("country", filter.Country),
		)
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	defer rows.Close()

	var hotels []*entity.HotelSummary
	for rows.Next() {
		var summary entity.HotelSummary
		dest := append(hotelDest(&summary.Hotel), &summary.MinPricePerNight)
		if err := rows.Scan(dest...); err != nil {
			r.log.Error("Failed to scan hotel row", zap.Error(err))
			return nil, fmt.Errorf("scan hotel row: %w", err)
		}
		hotels = append(hotels, &summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hotel rows: %w", err)
	}

	return hotels, nil
}

func (r *hotelRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64, totalReviews int, updatedAt time.Time) error {
	query := `
		UPDATE hotels
		SET rating = $2, total_reviews = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, rating, totalReviews, updatedAt)
	if err != nil {
		r.log.Error("Failed to update hotel rating",
			zap.Error(err),
			zap.String("hotel_id", id.String()),
		)
		return fmt.Errorf("update rating of hotel %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("hotel %s not found", id.String())
	}

	return nil
}
