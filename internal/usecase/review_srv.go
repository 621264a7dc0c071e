package usecase

import (
	"context"

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

type ReviewService interface {
	CreateReview(ctx context.Context, identity utils.Identity, req *request.CreateReviewRequest) error
	ListHotelReviews(ctx context.Context, hotelID string) ([]response.ReviewResponse, error)
}

type reviewService struct {
	clock
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		clock: newClock(),
		repo:  repo,
		log:   log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, identity utils.Identity, req *request.CreateReviewRequest) error {
	review, err := s.submit(ctx, identity, req)
	if err != nil {
		metrics.ObserveReview(apperror.From(err).Code)
		return err
	}

	metrics.ObserveReview("created")
	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("hotel_id", review.HotelID.String()),
		zap.Int("rating", review.Rating))

	return nil
}

func (s *reviewService) submit(ctx context.Context, identity utils.Identity, req *request.CreateReviewRequest) (*entity.Review, error) {
	// 1. Caller must be a customer
	if err := Authorize(identity, entity.RoleCustomer); err != nil {
		return nil, err
	}

	// 2. Validate request
	if err := validate(req); err != nil {
		s.log.Warn("Create review validation failed", zap.Error(err))
		return nil, err
	}

	// 3. Booking must exist and belong to the caller
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, apperror.ErrInvalidRequest.WithCause(err)
	}
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if booking == nil {
		return nil, apperror.ErrBookingNotFound
	}
	if booking.UserID != identity.UserID {
		return nil, apperror.ErrForbidden
	}

	// 4. One review per booking
	existing, err := s.repo.Review.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.ErrAlreadyReviewed
	}

	// 5. Stay must be over and not cancelled
	now := s.now()
	if !booking.CheckOutDate.Before(utils.StartOfDay(now)) || booking.Status != entity.BookingStatusConfirmed {
		return nil, apperror.ErrBookingNotEligible
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		UserID:     identity.UserID,
		HotelID:    booking.HotelID,
		BookingID:  booking.ID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	// 6. Insert and fold the score into the hotel under the hotel lock
	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		hotel, err := s.repo.Hotel.FindByIDForUpdate(ctx, booking.HotelID)
		if err != nil {
			return err
		}
		if hotel == nil {
			return apperror.ErrHotelNotFound
		}

		if err := s.repo.Review.Create(ctx, review); err != nil {
			return err
		}

		hotel.AddRating(review.Rating)
		return s.repo.Hotel.UpdateRating(ctx, hotel.ID, hotel.Rating, hotel.TotalReviews, now)
	})
	if err != nil {
		if database.IsUniqueViolation(err, repository.ReviewBookingConstraint) {
			return nil, apperror.ErrAlreadyReviewed.WithCause(err)
		}
		return nil, appError(err)
	}

	return review, nil
}

func (s *reviewService) ListHotelReviews(ctx context.Context, hotelID string) ([]response.ReviewResponse, error) {
	id, err := parseID(hotelID, apperror.ErrHotelNotFound)
	if err != nil {
		return nil, err
	}

	hotel, err := s.repo.Hotel.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if hotel == nil {
		return nil, apperror.ErrHotelNotFound
	}

	reviews, err := s.repo.Review.FindByHotelID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	result := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		result[i] = response.ReviewToResponse(review)
	}

	return result, nil
}
