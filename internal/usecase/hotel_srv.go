package usecase

import (
	"context"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/database"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type HotelService interface {
	CreateHotel(ctx context.Context, identity utils.Identity, req *request.CreateHotelRequest) (*response.HotelResponse, error)
	ListHotels(ctx context.Context, identity utils.Identity, req *request.HotelFilterRequest) ([]response.HotelSummaryResponse, error)
	GetHotel(ctx context.Context, hotelID string) (*response.HotelDetailResponse, error)
	AddRoom(ctx context.Context, identity utils.Identity, hotelID string, req *request.CreateRoomRequest) (*response.RoomResponse, error)
}

type hotelService struct {
	clock
	repo       *repository.Repository
	filterMode string
	log        *zap.Logger
}

func NewHotelService(repo *repository.Repository, filterMode string, log *zap.Logger) HotelService {
	if filterMode == "" {
		filterMode = utils.HotelFilterLegacy
	}
	return &hotelService{
		clock:      newClock(),
		repo:       repo,
		filterMode: filterMode,
		log:        log.With(zap.String("service", "hotel")),
	}
}

func (s *hotelService) CreateHotel(ctx context.Context, identity utils.Identity, req *request.CreateHotelRequest) (*response.HotelResponse, error) {
	if err := Authorize(identity, entity.RoleOwner); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Create hotel validation failed", zap.Error(err))
		return nil, err
	}

	amenities := req.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	hotel := &entity.Hotel{
		Base:        entity.NewBase(s.now()),
		OwnerID:     identity.UserID,
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		Country:     req.Country,
		Amenities:   amenities,
	}
	if err := s.repo.Hotel.Create(ctx, hotel); err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.Info("Hotel created",
		zap.String("hotel_id", hotel.ID.String()),
		zap.String("owner_id", hotel.OwnerID.String()))

	resp := response.HotelToResponse(hotel)
	return &resp, nil
}

func (s *hotelService) ListHotels(ctx context.Context, identity utils.Identity, req *request.HotelFilterRequest) ([]response.HotelSummaryResponse, error) {
	if err := Authorize(identity, ""); err != nil {
		return nil, err
	}

	filter, err := s.buildFilter(req)
	if err != nil {
		s.log.Warn("List hotels filter rejected", zap.Error(err))
		return nil, err
	}

	hotels, err := s.repo.Hotel.ListWithRooms(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	result := make([]response.HotelSummaryResponse, 0, len(hotels))
	for _, hotel := range hotels {
		if !s.matches(hotel, filter) {
			continue
		}
		result = append(result, response.HotelToSummary(hotel))
	}

	return result, nil
}

// buildFilter parses the numeric bounds the filter mode reads. Legacy mode
// reads minPrice only, so the other bounds are ignored even when malformed.
func (s *hotelService) buildFilter(req *request.HotelFilterRequest) (entity.HotelFilter, error) {
	filter := entity.HotelFilter{City: req.City, Country: req.Country}

	type bound struct {
		value string
		dst   **float64
	}
	bounds := []bound{{req.MinPrice, &filter.MinPrice}}
	if s.filterMode != utils.HotelFilterLegacy {
		bounds = append(bounds,
			bound{req.MaxPrice, &filter.MaxPrice},
			bound{req.MinRating, &filter.MinRating})
	}

	for _, bound := range bounds {
		parsed, err := utils.ParseOptionalFloat(bound.value)
		if err != nil {
			return entity.HotelFilter{}, apperror.ErrInvalidRequest.WithCause(err)
		}
		*bound.dst = parsed
	}

	return filter, nil
}

// matches applies the price and rating bounds. In legacy mode only minPrice
// is honoured: the cheapest room must cost exactly minPrice and the rating
// must be at least minPrice.
func (s *hotelService) matches(hotel *entity.HotelSummary, filter entity.HotelFilter) bool {
	if s.filterMode == utils.HotelFilterLegacy {
		if filter.MinPrice == nil {
			return true
		}
		return hotel.MinPricePerNight == *filter.MinPrice && hotel.Rating >= *filter.MinPrice
	}

	if filter.MinPrice != nil && hotel.MinPricePerNight < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && hotel.MinPricePerNight > *filter.MaxPrice {
		return false
	}
	if filter.MinRating != nil && hotel.Rating < *filter.MinRating {
		return false
	}
	return true
}

func (s *hotelService) GetHotel(ctx context.Context, hotelID string) (*response.HotelDetailResponse, error) {
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

	rooms, err := s.repo.Room.FindByHotelID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	resp := response.HotelToDetail(hotel, rooms)
	return &resp, nil
}

func (s *hotelService) AddRoom(ctx context.Context, identity utils.Identity, hotelID string, req *request.CreateRoomRequest) (*response.RoomResponse, error) {
	if err := Authorize(identity, entity.RoleOwner); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Add room validation failed", zap.Error(err))
		return nil, err
	}

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
	if hotel.OwnerID != identity.UserID {
		s.log.Warn("Room added to foreign hotel",
			zap.String("hotel_id", hotel.ID.String()),
			zap.String("user_id", identity.UserID.String()))
		return nil, apperror.ErrForbidden
	}

	existing, err := s.repo.Room.FindByHotelAndNumber(ctx, hotel.ID, req.RoomNumber)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.ErrRoomAlreadyExists
	}

	room := &entity.Room{
		Base:          entity.NewBase(s.now()),
		HotelID:       hotel.ID,
		RoomNumber:    req.RoomNumber,
		RoomType:      req.RoomType,
		PricePerNight: req.PricePerNight,
		MaxOccupancy:  req.MaxOccupancy,
	}
	if err := s.repo.Room.Create(ctx, room); err != nil {
		if database.IsUniqueViolation(err, repository.RoomNumberConstraint) {
			return nil, apperror.ErrRoomAlreadyExists
		}
		return nil, apperror.Internal(err)
	}

	s.log.Info("Room added",
		zap.String("hotel_id", hotel.ID.String()),
		zap.String("room_id", room.ID.String()))

	resp := response.RoomToResponse(room)
	return &resp, nil
}
