package seats

import (
	"context"

	"github.com/google/uuid"

	"studyseat/internal/shared/apperrors"
	"studyseat/internal/shared/constants"
	"studyseat/pkg/cache"
	"studyseat/pkg/logger"
)

type Service interface {
	Create(ctx context.Context, req CreateSeatRequest) (*Seat, error)
	Get(ctx context.Context, id uuid.UUID) (*Seat, error)
	ListByShop(ctx context.Context, shopID uuid.UUID, zone string) ([]Seat, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateSeatRequest) (*Seat, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// EnsureBookable is the booking flow's gate: the seat must exist, be
	// visible, and be active.
	EnsureBookable(ctx context.Context, id uuid.UUID) (*Seat, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

// NewService builds the seat service. cacheService may be nil; the seat map
// is then read from the store on every request.
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) Create(ctx context.Context, req CreateSeatRequest) (*Seat, error) {
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, apperrors.Validation("invalid shop_id %q", req.ShopID)
	}

	seatType := SeatType(req.Type)
	if req.Type == "" {
		seatType = SeatTypeStandard
	}
	if !seatType.IsValid() {
		return nil, apperrors.Validation("invalid seat type %q", req.Type)
	}

	seat := &Seat{
		ShopID:   shopID,
		Zone:     req.Zone,
		Label:    req.Label,
		Type:     seatType,
		IsActive: true,
		Visible:  true,
	}
	if err := s.repo.Create(ctx, seat); err != nil {
		return nil, err
	}

	s.invalidateSeatMap(ctx, seat.ShopID)
	return seat, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Seat, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByShop(ctx context.Context, shopID uuid.UUID, zone string) ([]Seat, error) {
	if s.cache == nil {
		return s.repo.ListByShop(ctx, shopID, zone)
	}

	var listed []Seat
	err := s.cache.GetOrSet(ctx, constants.CacheKeySeatMap(shopID.String(), zone), constants.TTLSeatMap,
		func() (interface{}, error) {
			return s.repo.ListByShop(ctx, shopID, zone)
		}, &listed)
	if err != nil {
		return nil, err
	}
	return listed, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateSeatRequest) (*Seat, error) {
	seat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Zone != nil {
		seat.Zone = *req.Zone
	}
	if req.Label != nil {
		seat.Label = *req.Label
	}
	if req.Type != nil {
		seatType := SeatType(*req.Type)
		if !seatType.IsValid() {
			return nil, apperrors.Validation("invalid seat type %q", *req.Type)
		}
		seat.Type = seatType
	}
	if req.IsActive != nil {
		seat.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, seat); err != nil {
		return nil, err
	}

	s.invalidateSeatMap(ctx, seat.ShopID)
	return seat, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	seat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Hide(ctx, id); err != nil {
		return err
	}
	s.invalidateSeatMap(ctx, seat.ShopID)
	return nil
}

func (s *service) EnsureBookable(ctx context.Context, id uuid.UUID) (*Seat, error) {
	seat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !seat.IsActive {
		return nil, apperrors.Validation("seat %s is not bookable", id)
	}
	return seat, nil
}

func (s *service) invalidateSeatMap(ctx context.Context, shopID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, constants.CachePatternSeatMap(shopID.String())); err != nil {
		logger.GetDefault().WithError(err).Warn("seat map cache invalidation failed", "shop_id", shopID.String())
	}
}
