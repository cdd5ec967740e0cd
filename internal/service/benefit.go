package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"loadboard/internal/domain"
	"loadboard/internal/redis"
	"loadboard/internal/repository"
)

// BenefitService handles benefit management and per-trucker filtering.
type BenefitService struct {
	benefitRepo repository.BenefitRepository
	userRepo    repository.UserRepository
	cacheStore  redis.CacheStoreInterface
}

// NewBenefitService creates a new BenefitService.
func NewBenefitService(
	benefitRepo repository.BenefitRepository,
	userRepo repository.UserRepository,
	cacheStore redis.CacheStoreInterface,
) *BenefitService {
	return &BenefitService{
		benefitRepo: benefitRepo,
		userRepo:    userRepo,
		cacheStore:  cacheStore,
	}
}

// CreateBenefitRequest contains the parameters for creating a benefit.
type CreateBenefitRequest struct {
	Name        string
	Type        domain.BenefitType
	Description string
	Discount    float64
	Provider    string
	Criteria    domain.EligibilityCriteria
	Category    string
	ValidFrom   time.Time
	ValidUntil  time.Time
}

// CreateBenefit stores a new active benefit.
func (s *BenefitService) CreateBenefit(ctx context.Context, req CreateBenefitRequest) (*domain.Benefit, error) {
	now := time.Now()
	benefit := &domain.Benefit{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Discount:    req.Discount,
		Provider:    req.Provider,
		Criteria:    req.Criteria,
		Category:    req.Category,
		ValidFrom:   req.ValidFrom,
		ValidUntil:  req.ValidUntil,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.benefitRepo.Create(ctx, benefit); err != nil {
		return nil, err
	}

	s.invalidateActiveCache(ctx)

	return benefit, nil
}

// GetBenefit retrieves a benefit by ID.
func (s *BenefitService) GetBenefit(ctx context.Context, benefitID string) (*domain.Benefit, error) {
	benefit, err := s.benefitRepo.GetByID(ctx, benefitID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrBenefitNotFound
		}
		return nil, err
	}
	return benefit, nil
}

// UpdateBenefit replaces a benefit's editable fields.
func (s *BenefitService) UpdateBenefit(ctx context.Context, benefit *domain.Benefit) (*domain.Benefit, error) {
	benefit.UpdatedAt = time.Now()

	if err := s.benefitRepo.Update(ctx, benefit); err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrBenefitNotFound
		}
		return nil, err
	}

	s.invalidateActiveCache(ctx)

	return benefit, nil
}

// DeleteBenefit removes a benefit.
func (s *BenefitService) DeleteBenefit(ctx context.Context, benefitID string) error {
	if err := s.benefitRepo.Delete(ctx, benefitID); err != nil {
		if err == repository.ErrNotFound {
			return ErrBenefitNotFound
		}
		return err
	}

	s.invalidateActiveCache(ctx)

	return nil
}

// ListActiveBenefits retrieves all active benefits, serving from cache
// when the cached copy is fresh.
func (s *BenefitService) ListActiveBenefits(ctx context.Context) ([]*domain.Benefit, error) {
	if s.cacheStore != nil {
		if data, err := s.cacheStore.GetActiveBenefits(ctx); err == nil && data != nil {
			var benefits []*domain.Benefit
			if err := json.Unmarshal(data, &benefits); err == nil {
				return benefits, nil
			}
		}
	}

	benefits, err := s.benefitRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		if data, err := json.Marshal(benefits); err == nil {
			_ = s.cacheStore.SetActiveBenefits(ctx, data)
		}
	}

	return benefits, nil
}

// ListEligibleBenefits retrieves the active benefits whose criteria the
// trucker satisfies. Each benefit is judged on its own criteria only, so
// a trucker who fails the global eligibility policy can still qualify
// here.
func (s *BenefitService) ListEligibleBenefits(ctx context.Context, truckerID string) ([]*domain.Benefit, error) {
	if truckerID == "" {
		return nil, ErrInvalidUserID
	}

	trucker, err := s.userRepo.GetByID(ctx, truckerID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if trucker.Role != domain.RoleTrucker {
		return nil, ErrUnauthorized
	}

	active, err := s.ListActiveBenefits(ctx)
	if err != nil {
		return nil, err
	}

	eligible := make([]*domain.Benefit, 0, len(active))
	for _, b := range active {
		if b.TruckerQualifies(trucker) {
			eligible = append(eligible, b)
		}
	}

	return eligible, nil
}

func (s *BenefitService) invalidateActiveCache(ctx context.Context) {
	if s.cacheStore == nil {
		return
	}
	_ = s.cacheStore.InvalidateActiveBenefits(ctx)
}
