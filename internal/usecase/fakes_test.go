package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memStore is an in-memory stand-in for the postgres repositories. WithinTx
// holds txMu for the whole unit of work and restores a snapshot on failure.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	users    map[uuid.UUID]entity.User
	hotels   map[uuid.UUID]entity.Hotel
	rooms    map[uuid.UUID]entity.Room
	bookings map[uuid.UUID]entity.Booking
	reviews  map[uuid.UUID]entity.Review

	failBookingCreate error
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uuid.UUID]entity.User{},
		hotels:   map[uuid.UUID]entity.Hotel{},
		rooms:    map[uuid.UUID]entity.Room{},
		bookings: map[uuid.UUID]entity.Booking{},
		reviews:  map[uuid.UUID]entity.Review{},
	}
}

type memSnapshot struct {
	users    map[uuid.UUID]entity.User
	hotels   map[uuid.UUID]entity.Hotel
	rooms    map[uuid.UUID]entity.Room
	bookings map[uuid.UUID]entity.Booking
	reviews  map[uuid.UUID]entity.Review
}

func cloneMap[V any](m map[uuid.UUID]V) map[uuid.UUID]V {
	out := make(map[uuid.UUID]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memSnapshot{
		users:    cloneMap(s.users),
		hotels:   cloneMap(s.hotels),
		rooms:    cloneMap(s.rooms),
		bookings: cloneMap(s.bookings),
		reviews:  cloneMap(s.reviews),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users, s.hotels, s.rooms, s.bookings, s.reviews =
		snap.users, snap.hotels, snap.rooms, snap.bookings, snap.reviews
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Tx:      &memTx{store: s},
		User:    &memUserRepo{s},
		Hotel:   &memHotelRepo{s},
		Room:    &memRoomRepo{s},
		Booking: &memBookingRepo{s},
		Review:  &memReviewRepo{s},
	}
}

// ==================== TX ====================

type memTxKey struct{}

type memTx struct {
	store *memStore
}

func (m *memTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	snap := m.store.snapshot()
	defer func() {
		if p := recover(); p != nil {
			m.store.restore(snap)
			panic(p)
		}
		if err != nil {
			m.store.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, memTxKey{}, true))
}

// ==================== USERS ====================

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return errors.New("duplicate email")
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

// ==================== HOTELS ====================

type memHotelRepo struct{ s *memStore }

func (r *memHotelRepo) Create(_ context.Context, hotel *entity.Hotel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.hotels[hotel.ID] = *hotel
	return nil
}

func (r *memHotelRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Hotel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if h, ok := r.s.hotels[id]; ok {
		return &h, nil
	}
	return nil, nil
}

func (r *memHotelRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Hotel, error) {
	return r.FindByID(ctx, id)
}

func (r *memHotelRepo) ListWithRooms(_ context.Context, filter entity.HotelFilter) ([]*entity.HotelSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []*entity.HotelSummary
	for _, h := range r.s.hotels {
		if filter.City != "" && h.City != filter.City {
			continue
		}
		if filter.Country != "" && h.Country != filter.Country {
			continue
		}
		minPrice, found := 0.0, false
		for _, room := range r.s.rooms {
			if room.HotelID != h.ID {
				continue
			}
			if !found || room.PricePerNight < minPrice {
				minPrice, found = room.PricePerNight, true
			}
		}
		if found {
			result = append(result, &entity.HotelSummary{Hotel: h, MinPricePerNight: minPrice})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *memHotelRepo) UpdateRating(_ context.Context, id uuid.UUID, rating float64, totalReviews int, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h, ok := r.s.hotels[id]
	if !ok {
		return errors.New("hotel not found")
	}
	h.Rating, h.TotalReviews, h.UpdatedAt = rating, totalReviews, updatedAt
	r.s.hotels[id] = h
	return nil
}

// ==================== ROOMS ====================

type memRoomRepo struct{ s *memStore }

func (r *memRoomRepo) Create(_ context.Context, room *entity.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.rooms[room.ID] = *room
	return nil
}

func (r *memRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if room, ok := r.s.rooms[id]; ok {
		return &room, nil
	}
	return nil, nil
}

func (r *memRoomRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	return r.FindByID(ctx, id)
}

func (r *memRoomRepo) FindByHotelID(_ context.Context, hotelID uuid.UUID) ([]*entity.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rooms := []*entity.Room{}
	for _, room := range r.s.rooms {
		if room.HotelID == hotelID {
			room := room
			rooms = append(rooms, &room)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomNumber < rooms[j].RoomNumber })
	return rooms, nil
}

func (r *memRoomRepo) FindByHotelAndNumber(_ context.Context, hotelID uuid.UUID, roomNumber string) (*entity.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, room := range r.s.rooms {
		if room.HotelID == hotelID && room.RoomNumber == roomNumber {
			return &room, nil
		}
	}
	return nil, nil
}

// ==================== BOOKINGS ====================

type memBookingRepo struct{ s *memStore }

func (r *memBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failBookingCreate != nil {
		return r.s.failBookingCreate
	}
	r.s.bookings[booking.ID] = *booking
	return nil
}

func (r *memBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.bookings[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (r *memBookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r *memBookingRepo) FindOverlapping(_ context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bookings {
		if b.RoomID == roomID && b.Overlaps(checkIn, checkOut) {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *memBookingRepo) ListByUser(_ context.Context, userID uuid.UUID, status *entity.BookingStatus) ([]*entity.BookingDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := []*entity.BookingDetail{}
	for _, b := range r.s.bookings {
		if b.UserID != userID || (status != nil && b.Status != *status) {
			continue
		}
		room := r.s.rooms[b.RoomID]
		result = append(result, &entity.BookingDetail{
			Booking:    b,
			HotelName:  r.s.hotels[b.HotelID].Name,
			RoomNumber: room.RoomNumber,
			RoomType:   room.RoomType,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].BookingDate.After(result[j].BookingDate) })
	return result, nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	b.Status, b.UpdatedAt = status, updatedAt
	r.s.bookings[id] = b
	return nil
}

// ==================== REVIEWS ====================

type memReviewRepo struct{ s *memStore }

func (r *memReviewRepo) Create(_ context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.reviews {
		if existing.BookingID == review.BookingID {
			return errors.New("duplicate review")
		}
	}
	r.s.reviews[review.ID] = *review
	return nil
}

func (r *memReviewRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, review := range r.s.reviews {
		if review.BookingID == bookingID {
			return &review, nil
		}
	}
	return nil, nil
}

func (r *memReviewRepo) FindByHotelID(_ context.Context, hotelID uuid.UUID) ([]*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reviews := []*entity.Review{}
	for _, review := range r.s.reviews {
		if review.HotelID == hotelID {
			review := review
			reviews = append(reviews, &review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return reviews, nil
}

// ==================== ENV ====================

type fakeTokens struct{}

func (fakeTokens) GenerateToken(userID uuid.UUID, role string) (string, error) {
	return "token-" + role + "-" + userID.String(), nil
}

type testEnv struct {
	store   *memStore
	now     time.Time
	auth    *authService
	user    *userService
	hotel   *hotelService
	booking *bookingService
	review  *reviewService
}

func newTestEnv(t *testing.T, capacityPolicy, filterMode string) *testEnv {
	t.Helper()

	store := newMemStore()
	repo := store.repository()
	log := zap.NewNop()

	env := &testEnv{
		store:   store,
		now:     time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		auth:    NewAuthService(repo, fakeTokens{}, log).(*authService),
		user:    NewUserService(repo.User, log).(*userService),
		hotel:   NewHotelService(repo, filterMode, log).(*hotelService),
		booking: NewBookingService(repo, capacityPolicy, log).(*bookingService),
		review:  NewReviewService(repo, log).(*reviewService),
	}

	clock := func() time.Time { return env.now }
	env.auth.now = clock
	env.hotel.now = clock
	env.booking.now = clock
	env.review.now = clock

	return env
}

func (e *testEnv) addUser(role entity.UserRole) utils.Identity {
	user := entity.User{
		Base:         entity.NewBase(e.now),
		Name:         string(role),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	e.store.users[user.ID] = user
	return utils.Identity{UserID: user.ID, Role: string(role)}
}

func (e *testEnv) addHotel(owner utils.Identity, city string) *entity.Hotel {
	hotel := entity.Hotel{
		Base:        entity.NewBase(e.now),
		OwnerID:     owner.UserID,
		Name:        "Hotel " + city,
		Description: "desc",
		City:        city,
		Country:     "FR",
		Amenities:   []string{},
	}
	e.store.hotels[hotel.ID] = hotel
	return &hotel
}

func (e *testEnv) addRoom(hotel *entity.Hotel, number string, price float64, maxOccupancy int) *entity.Room {
	room := entity.Room{
		Base:          entity.NewBase(e.now),
		HotelID:       hotel.ID,
		RoomNumber:    number,
		RoomType:      "double",
		PricePerNight: price,
		MaxOccupancy:  maxOccupancy,
	}
	e.store.rooms[room.ID] = room
	return &room
}
