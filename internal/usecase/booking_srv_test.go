package usecase

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/dto/request"
	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/metrics"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	env      *testEnv
	customer utils.Identity
	owner    utils.Identity
	hotel    *entity.Hotel
	room     *entity.Room
}

func newBookingFixture(t *testing.T, policy string) bookingFixture {
	env := newTestEnv(t, policy, utils.HotelFilterLegacy)
	owner := env.addUser(entity.RoleOwner)
	hotel := env.addHotel(owner, "Paris")
	return bookingFixture{
		env:      env,
		customer: env.addUser(entity.RoleCustomer),
		owner:    owner,
		hotel:    hotel,
		room:     env.addRoom(hotel, "101", 100, 2),
	}
}

func (f bookingFixture) book(identity utils.Identity, in, out string, guests int) (*entity.Booking, error) {
	resp, err := f.env.booking.CreateBooking(context.Background(), identity, &request.CreateBookingRequest{
		RoomID:       f.room.ID.String(),
		CheckInDate:  in,
		CheckOutDate: out,
		Guests:       guests,
	})
	if err != nil {
		return nil, err
	}
	return f.env.store.repository().Booking.FindByID(context.Background(), uuid.MustParse(resp.ID))
}

func TestBookingService_Scenario(t *testing.T) {
	f := newBookingFixture(t, utils.CapacityPolicyLegacy)
	ctx := context.Background()

	resp, err := f.env.booking.CreateBooking(ctx, f.customer, &request.CreateBookingRequest{
		RoomID:       f.room.ID.String(),
		CheckInDate:  "2024-01-01",
		CheckOutDate: "2024-01-03",
		Guests:       2,
	})
	require.NoError(t, err)
	assert.Equal(t, 200.0, resp.TotalPrice)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, f.hotel.ID.String(), resp.HotelID)
	assert.Equal(t, f.env.now, resp.BookingDate)

	rejectedBefore := testutil.ToFloat64(metrics.BookingOutcomes.WithLabelValues("ROOM_NOT_AVAILABLE"))
	_, err = f.book(f.customer, "2024-01-02", "2024-01-04", 2)
	assert.ErrorIs(t, err, apperror.ErrRoomNotAvailable)
	assert.Equal(t, rejectedBefore+1, testutil.ToFloat64(metrics.BookingOutcomes.WithLabelValues("ROOM_NOT_AVAILABLE")))

	_, err = f.book(f.customer, "2024-01-05", "2024-01-06", 2)
	require.NoError(t, err)

	// adjacent stays do not overlap
	_, err = f.book(f.customer, "2024-01-03", "2024-01-05", 2)
	require.NoError(t, err)
}

func TestBookingService_CreateBookingRejections(t *testing.T) {
	f := newBookingFixture(t, utils.CapacityPolicyLegacy)
	ctx := context.Background()

	tests := []struct {
		name     string
		identity utils.Identity
		req      request.CreateBookingRequest
		want     *apperror.Error
	}{
		{
			name: "anonymous",
			req:  request.CreateBookingRequest{RoomID: f.room.ID.String(), CheckInDate: "2024-03-01", CheckOutDate: "2024-03-02", Guests: 2},
			want: apperror.ErrUnauthorized,
		},
		{
			name:     "owner",
			identity: f.owner,
			req:      request.CreateBookingRequest{RoomID: f.room.ID.String(), CheckInDate: "2024-03-01", CheckOutDate: "2024-03-02", Guests: 2},
			want:     apperror.ErrForbidden,
		},
		{
			name:     "missing guests",
			identity: f.customer,
			req:      request.CreateBookingRequest{RoomID: f.room.ID.String(), CheckInDate: "2024-03-01", CheckOutDate: "2024-03-02"},
			want:     apperror.ErrInvalidRequest,
		},
		{
			name:     "unknown room",
			identity: f.customer,
			req:      request.CreateBookingRequest{RoomID: uuid.NewString(), CheckInDate: "2024-03-01", CheckOutDate: "2024-03-02", Guests: 2},
			want:     apperror.ErrRoomNotFound,
		},
		{
			name:     "unparseable date",
			identity: f.customer,
			req:      request.CreateBookingRequest{RoomID: f.room.ID.String(), CheckInDate: "tomorrow", CheckOutDate: "2024-03-02", Guests: 2},
			want:     apperror.ErrInvalidDates,
		},
		{
			name:     "check-out before check-in",
			identity: f.customer,
			req:      request.CreateBookingRequest{RoomID: f.room.ID.String(), CheckInDate: "2024-03-05", CheckOutDate: "2024-03-02", Guests: 2},
			want:     apperror.ErrInvalidRequest,
		},
		{
			name:     "reversed dates on unknown room",
			identity: f.customer,
			req:      request.CreateBookingRequest{RoomID: uuid.NewString(), CheckInDate: "2024-01-03", CheckOutDate: "2024-01-01", Guests: 2},
			want:     apperror.ErrInvalidRequest,
		},
		{
			name:     "unparseable date on unknown room",
			identity: f.customer,
			req:      request.CreateBookingRequest{RoomID: uuid.NewString(), CheckInDate: "2024-01-01", CheckOutDate: "someday", Guests: 2},
			want:     apperror.ErrInvalidDates,
		},
		{
			name:     "empty stay",
			identity: f.customer,
			req:      request.CreateBookingRequest{RoomID: f.room.ID.String(), CheckInDate: "2024-03-02", CheckOutDate: "2024-03-02", Guests: 2},
			want:     apperror.ErrInvalidRequest,
		},
		{
			name:     "legacy capacity rejects a small party",
			identity: f.customer,
			req:      request.CreateBookingRequest{RoomID: f.room.ID.String(), CheckInDate: "2024-03-01", CheckOutDate: "2024-03-02", Guests: 1},
			want:     apperror.ErrInvalidCapacity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.env.booking.CreateBooking(ctx, tt.identity, &req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Empty(t, f.env.store.bookings)
}

func TestBookingService_MaxOccupancyPolicy(t *testing.T) {
	f := newBookingFixture(t, utils.CapacityPolicyMaxOccupancy)

	_, err := f.book(f.customer, "2024-03-01", "2024-03-02", 1)
	require.NoError(t, err)

	_, err = f.book(f.customer, "2024-03-05", "2024-03-06", 3)
	assert.ErrorIs(t, err, apperror.ErrInvalidCapacity)
}

func TestBookingService_FractionalNights(t *testing.T) {
	f := newBookingFixture(t, utils.CapacityPolicyLegacy)

	booking, err := f.book(f.customer, "2024-03-01T12:00:00Z", "2024-03-02T00:00:00Z", 2)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, booking.TotalPrice, 1e-9)
}

func TestBookingService_StoreFailureIsInternal(t *testing.T) {
	f := newBookingFixture(t, utils.CapacityPolicyLegacy)
	f.env.store.failBookingCreate = errors.New("connection reset")

	_, err := f.book(f.customer, "2024-03-01", "2024-03-02", 2)
	assert.ErrorIs(t, err, apperror.ErrInternal)
}

func TestBookingService_ConcurrentAdmissionAdmitsOne(t *testing.T) {
	f := newBookingFixture(t, utils.CapacityPolicyLegacy)

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.book(f.customer, "2024-04-01", "2024-04-04", 2)
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, err := range errs {
		if err == nil {
			admitted++
			continue
		}
		assert.ErrorIs(t, err, apperror.ErrRoomNotAvailable)
	}
	assert.Equal(t, 1, admitted)
}

func TestBookingService_ConfirmedBookingsNeverOverlap(t *testing.T) {
	f := newBookingFixture(t, utils.CapacityPolicyLegacy)
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		start := rng.Intn(60)
		length := 1 + rng.Intn(5)
		in := base.AddDate(0, 0, start).Format("2006-01-02")
		out := base.AddDate(0, 0, start+length).Format("2006-01-02")

		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.book(f.customer, in, out, 2)
			if err != nil {
				assert.ErrorIs(t, err, apperror.ErrRoomNotAvailable)
			}
		}()
	}
	wg.Wait()

	var confirmed []entity.Booking
	for _, b := range f.env.store.bookings {
		if b.Status == entity.BookingStatusConfirmed {
			confirmed = append(confirmed, b)
		}
	}
	require.NotEmpty(t, confirmed)

	for i := range confirmed {
		for j := i + 1; j < len(confirmed); j++ {
			assert.False(t, confirmed[i].Overlaps(confirmed[j].CheckInDate, confirmed[j].CheckOutDate),
				"%s-%s overlaps %s-%s",
				confirmed[i].CheckInDate, confirmed[i].CheckOutDate,
				confirmed[j].CheckInDate, confirmed[j].CheckOutDate)
		}
	}
}

func TestBookingService_ListBookings(t *testing.T) {
	f := newBookingFixture(t, utils.CapacityPolicyLegacy)
	ctx := context.Background()

	first, err := f.book(f.customer, "2024-03-01", "2024-03-02", 2)
	require.NoError(t, err)
	f.env.now = f.env.now.Add(time.Hour)
	second, err := f.book(f.customer, "2024-03-05", "2024-03-06", 2)
	require.NoError(t, err)

	// another customer's booking is not listed
	_, err = f.book(f.env.addUser(entity.RoleCustomer), "2024-03-10", "2024-03-11", 2)
	require.NoError(t, err)

	list, err := f.env.booking.ListBookings(ctx, f.customer, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID.String(), list[0].ID)
	assert.Equal(t, first.ID.String(), list[1].ID)
	assert.Equal(t, "Hotel Paris", list[0].HotelName)
	assert.Equal(t, "101", list[0].RoomNumber)

	_, err = f.env.booking.CancelBooking(ctx, f.customer, first.ID.String())
	require.NoError(t, err)

	cancelled, err := f.env.booking.ListBookings(ctx, f.customer, "cancelled")
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, first.ID.String(), cancelled[0].ID)

	_, err = f.env.booking.ListBookings(ctx, f.customer, "pending")
	assert.ErrorIs(t, err, apperror.ErrInvalidRequest)

	_, err = f.env.booking.ListBookings(ctx, f.owner, "")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestBookingService_CancelBooking(t *testing.T) {
	f := newBookingFixture(t, utils.CapacityPolicyLegacy)
	ctx := context.Background()

	booking, err := f.book(f.customer, "2024-03-01", "2024-03-03", 2)
	require.NoError(t, err)

	stranger := f.env.addUser(entity.RoleCustomer)
	_, err = f.env.booking.CancelBooking(ctx, stranger, booking.ID.String())
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.env.booking.CancelBooking(ctx, f.customer, uuid.NewString())
	assert.ErrorIs(t, err, apperror.ErrBookingNotFound)

	resp, err := f.env.booking.CancelBooking(ctx, f.customer, booking.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)

	_, err = f.env.booking.CancelBooking(ctx, f.customer, booking.ID.String())
	assert.ErrorIs(t, err, apperror.ErrBookingNotCancellable)

	// the interval is free again
	_, err = f.book(stranger, "2024-03-01", "2024-03-03", 2)
	require.NoError(t, err)
}
