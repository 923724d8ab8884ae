package service

import (
	"context"
	"errors"
	"sync"

	promotionserrors "realty/internal/promotions/errors"
	"realty/internal/promotions/repository"
	"realty/internal/promotions/validator"
	"realty/pkg/auth"
	"realty/pkg/config"
	apperrors "realty/pkg/errors"
	"realty/pkg/model"
	"realty/pkg/sanitizer"
	"realty/pkg/validation"
)

type PromotionService interface {
	List(ctx context.Context, limit int, offset int64) ([]*model.Promotion, int64, error)
	GetByID(ctx context.Context, id string) (*model.Promotion, error)
	Create(ctx context.Context, promotion *model.Promotion) error
	Update(ctx context.Context, id string, updates *model.PromotionUpdate) (*model.Promotion, error)
	Delete(ctx context.Context, id string) error
}

type promotionService struct {
	repo      repository.PromotionRepository
	validator *validator.PromotionValidator
	cfg       *config.Config
}

func NewPromotionService(repo repository.PromotionRepository, validator *validator.PromotionValidator, cfg *config.Config) PromotionService {
	return &promotionService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *promotionService) List(ctx context.Context, limit int, offset int64) ([]*model.Promotion, int64, error) {
	var count int64
	var promotions []*model.Promotion
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
	}()

	go func() {
		defer wg.Done()
		promotions, errFind = s.repo.FindAll(ctx, limit, offset)
	}()

	wg.Wait()
	if err := errors.Join(errCount, errFind); err != nil {
		s.cfg.Log.Error("Failed to list promotions", "error", err)
		return nil, 0, apperrors.Internal("Failed to list promotions", err)
	}
	return promotions, count, nil
}

func (s *promotionService) GetByID(ctx context.Context, id string) (*model.Promotion, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Promotion ID cannot be empty")
	}

	promotion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, id, "Failed to retrieve promotion")
	}
	return promotion, nil
}

func (s *promotionService) Create(ctx context.Context, promotion *model.Promotion) error {
	if err := requirePromotionManager(ctx); err != nil {
		return err
	}

	promotion.Title = sanitizer.TrimAndNormalize(promotion.Title)
	promotion.Description = sanitizer.TrimAndNormalize(promotion.Description)
	if err := s.validator.Validate(promotion); err != nil {
		return validation.AppError("Invalid promotion", err)
	}

	if err := s.repo.Create(ctx, promotion); err != nil {
		s.cfg.Log.Error("Failed to create promotion", "title", promotion.Title, "error", err)
		return apperrors.Internal("Failed to create promotion", err)
	}

	s.cfg.Log.Info("Promotion created successfully", "id", promotion.ID, "discount", promotion.Discount)
	return nil
}

func (s *promotionService) Update(ctx context.Context, id string, updates *model.PromotionUpdate) (*model.Promotion, error) {
	if err := requirePromotionManager(ctx); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Promotion ID cannot be empty")
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		return nil, validation.AppError("Invalid update input", err)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, id, "Failed to check promotion existence")
	}

	merged := *existing
	if updates.Title != "" {
		merged.Title = sanitizer.TrimAndNormalize(updates.Title)
	}
	if updates.Description != nil {
		merged.Description = sanitizer.TrimAndNormalize(*updates.Description)
	}
	if updates.Discount != nil {
		merged.Discount = *updates.Discount
	}
	if err := s.validator.Validate(&merged); err != nil {
		return nil, validation.AppError("Invalid promotion", err)
	}

	if err := s.repo.Update(ctx, id, &merged); err != nil {
		return nil, translateRepoError(err, id, "Failed to update promotion")
	}

	s.cfg.Log.Info("Promotion updated successfully", "id", id)
	return &merged, nil
}

func (s *promotionService) Delete(ctx context.Context, id string) error {
	if err := requirePromotionManager(ctx); err != nil {
		return err
	}
	if id == "" {
		return apperrors.InvalidInput("Promotion ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return translateRepoError(err, id, "Failed to delete promotion")
	}

	s.cfg.Log.Info("Promotion deleted successfully", "id", id)
	return nil
}

func requirePromotionManager(ctx context.Context) error {
	principal := auth.PrincipalFromContext(ctx)
	if principal == nil {
		return apperrors.Unauthorized("Sign in to manage promotions")
	}
	if !principal.Can(auth.CapManagePromotions) {
		return apperrors.Forbidden("Only administrators can manage promotions")
	}
	return nil
}

func translateRepoError(err error, id, message string) error {
	switch {
	case errors.Is(err, promotionserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Promotion", id)
	case errors.Is(err, promotionserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid promotion ID format")
	default:
		return apperrors.Internal(message, err)
	}
}
