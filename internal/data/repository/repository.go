package repository

import (
	"hotel-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Tx      database.TxManager
	User    UserRepository
	Hotel   HotelRepository
	Room    RoomRepository
	Booking BookingRepository
	Review  ReviewRepository
}

// NewRepository builds every repository over one pool. Statements issued
// with a context from Tx.WithinTx run inside that transaction.
func NewRepository(db database.PgxIface, tx database.TxManager, log *zap.Logger) *Repository {
	return &Repository{
		Tx:      tx,
		User:    NewUserRepository(db, log),
		Hotel:   NewHotelRepository(db, log),
		Room:    NewRoomRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Review:  NewReviewRepository(db, log),
	}
}

// scanner is satisfied by pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}
