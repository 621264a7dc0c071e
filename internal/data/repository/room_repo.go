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

// RoomNumberConstraint is the unique constraint on (hotel_id, room_number).
const RoomNumberConstraint = "rooms_hotel_room_number_key"

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	// FindByIDForUpdate serializes bookings of one room inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindByHotelID(ctx context.Context, hotelID uuid.UUID) ([]*entity.Room, error)
	FindByHotelAndNumber(ctx context.Context, hotelID uuid.UUID, roomNumber string) (*entity.Room, error)
}

type roomRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewRoomRepository(db database.Querier, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

const roomColumns = `id, hotel_id, room_number, room_type, price_per_night, max_occupancy, created_at, updated_at`

func scanRoom(row scanner) (*entity.Room, error) {
	var room entity.Room
	err := row.Scan(
		&room.ID,
		&room.HotelID,
		&room.RoomNumber,
		&room.RoomType,
		&room.PricePerNight,
		&room.MaxOccupancy,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	query := `
		INSERT INTO rooms (id, hotel_id, room_number, room_type, price_per_night, max_occupancy, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		room.ID,
		room.HotelID,
		room.RoomNumber,
		room.RoomType,
		room.PricePerNight,
		room.MaxOccupancy,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if err != nil {
		if !database.IsUniqueViolation(err, RoomNumberConstraint) {
			r.log.Error("Failed to create room",
				zap.Error(err),
				zap.String("hotel_id", room.HotelID.String()),
				zap.String("room_number", room.RoomNumber),
			)
		}
		return fmt.Errorf("create room %s in hotel %s: %w", room.RoomNumber, room.HotelID.String(), err)
	}

	return nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	return r.findOne(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)
}

func (r *roomRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	return r.findOne(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1 FOR UPDATE`, id)
}

func (r *roomRepository) FindByHotelAndNumber(ctx context.Context, hotelID uuid.UUID, roomNumber string) (*entity.Room, error) {
	return r.findOne(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE hotel_id = $1 AND room_number = $2`,
		hotelID, roomNumber)
}

func (r *roomRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Room, error) {
	room, err := scanRoom(database.Conn(ctx, r.db).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room", zap.Error(err), zap.Any("args", args))
		return nil, fmt.Errorf("find room: %w", err)
	}
	return room, nil
}

func (r *roomRepository) FindByHotelID(ctx context.Context, hotelID uuid.UUID) ([]*entity.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE hotel_id = $1
		ORDER BY created_at, room_number
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, hotelID)
	if err != nil {
		r.log.Error("Failed to find rooms by hotel ID",
			zap.Error(err),
			zap.String("hotel_id", hotelID.String()),
		)
		return nil, fmt.Errorf("find rooms by hotel ID %s: %w", hotelID.String(), err)
	}
	defer rows.Close()

	rooms := []*entity.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			r.log.Error("Failed to scan room row", zap.Error(err))
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room rows: %w", err)
	}

	return rooms, nil
}
