package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sync"

	propertieserrors "realty/internal/properties/errors"
	"realty/internal/properties/repository"
	"realty/internal/properties/validator"
	userserrors "realty/internal/users/errors"
	"realty/pkg/auth"
	"realty/pkg/config"
	apperrors "realty/pkg/errors"
	"realty/pkg/model"
	"realty/pkg/sanitizer"
	"realty/pkg/storage"
	"realty/pkg/validation"
)

const maxImagesPerUpload = 10

// AgentLookup resolves the account a listing is assigned to.
type AgentLookup interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type PropertyService interface {
	Search(ctx context.Context, filter model.PropertyFilter, limit int, offset int64) ([]*model.Property, int64, error)
	GetByID(ctx context.Context, id string) (*model.Property, error)
	Create(ctx context.Context, property *model.Property) error
	Update(ctx context.Context, id string, updates *model.PropertyUpdate) (*model.Property, error)
	Delete(ctx context.Context, id string) error
	UploadImages(ctx context.Context, id string, files []*multipart.FileHeader) (*model.Property, error)
}

type propertyService struct {
	repo      repository.PropertyRepository
	agents    AgentLookup
	images    storage.ImageStore
	validator *validator.PropertyValidator
	cfg       *config.Config
}

func NewPropertyService(
	repo repository.PropertyRepository,
	agents AgentLookup,
	images storage.ImageStore,
	validator *validator.PropertyValidator,
	cfg *config.Config,
) PropertyService {
	return &propertyService{
		repo:      repo,
		agents:    agents,
		images:    images,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *propertyService) Search(ctx context.Context, filter model.PropertyFilter, limit int, offset int64) ([]*model.Property, int64, error) {
	filter.Query = sanitizer.NormalizeSearchQuery(filter.Query)
	if err := validateFilter(filter); err != nil {
		return nil, 0, err
	}

	var count int64
	var properties []*model.Property
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountSearch(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count properties", "error", errCount)
			errCount = apperrors.Internal("Failed to count properties", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		properties, errFind = s.repo.Search(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to search properties", "error", errFind)
			errFind = apperrors.Internal("Failed to search properties", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return properties, count, nil
}

func (s *propertyService) GetByID(ctx context.Context, id string) (*model.Property, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Property ID cannot be empty")
	}

	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, id, "Failed to retrieve property")
	}
	return property, nil
}

func (s *propertyService) Create(ctx context.Context, property *model.Property) error {
	if err := requireListingManager(ctx); err != nil {
		return err
	}

	if property.Status == "" {
		property.Status = model.PropertyAvailable
	}
	property.Images = sanitizer.NormalizeImageURLs(property.Images)
	s.sanitize(property)

	if err := s.assignAgent(ctx, property); err != nil {
		return err
	}
	if err := s.validator.Validate(property); err != nil {
		return validation.AppError("Invalid property", err)
	}

	if err := s.repo.Create(ctx, property); err != nil {
		s.cfg.Log.Error("Failed to create property", "title", property.Title, "error", err)
		return apperrors.Internal("Failed to create property", err)
	}

	s.cfg.Log.Info("Property created successfully", "id", property.ID, "title", property.Title, "agent_id", property.AgentID)
	return nil
}

func (s *propertyService) Update(ctx context.Context, id string, updates *model.PropertyUpdate) (*model.Property, error) {
	if err := requireListingManager(ctx); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Property ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, id, "Failed to check property existence")
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Property update validation failed", "id", id, "error", err)
		return nil, validation.AppError("Invalid update input", err)
	}

	merged := mergePropertyUpdates(existing, updates)
	s.sanitize(merged)
	if merged.AgentID != existing.AgentID {
		if err := s.assignAgent(ctx, merged); err != nil {
			return nil, err
		}
	}
	if err := s.validator.Validate(merged); err != nil {
		return nil, validation.AppError("Invalid property", err)
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		return nil, translateRepoError(err, id, "Failed to update property")
	}

	s.cfg.Log.Info("Property updated successfully", "id", id)
	return merged, nil
}

// Delete removes the listing, then its stored images. Image cleanup failures
// are logged and do not resurrect the listing.
func (s *propertyService) Delete(ctx context.Context, id string) error {
	if err := requireListingManager(ctx); err != nil {
		return err
	}
	if id == "" {
		return apperrors.InvalidInput("Property ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return translateRepoError(err, id, "Failed to delete property")
	}

	if err := s.images.RemoveAll(ctx, id); err != nil {
		s.cfg.Log.Warn("Failed to remove property images", "id", id, "error", err)
	}

	s.cfg.Log.Info("Property deleted successfully", "id", id)
	return nil
}

func (s *propertyService) UploadImages(ctx context.Context, id string, files []*multipart.FileHeader) (*model.Property, error) {
	if err := requireListingManager(ctx); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, apperrors.InvalidInput("At least one image is required")
	}
	if len(files) > maxImagesPerUpload {
		return nil, apperrors.InvalidInput(fmt.Sprintf("At most %d images can be uploaded at once", maxImagesPerUpload))
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, translateRepoError(err, id, "Failed to check property existence")
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := s.images.Upload(ctx, id, file)
		if err != nil {
			if errors.Is(err, storage.ErrUnsupportedImage) {
				return nil, apperrors.InvalidInput(fmt.Sprintf("%s is not a supported image", file.Filename))
			}
			s.cfg.Log.Error("Failed to upload property image", "id", id, "filename", file.Filename, "error", err)
			return nil, apperrors.Unavailable("Image storage")
		}
		urls = append(urls, url)
	}

	property, err := s.repo.AppendImages(ctx, id, urls)
	if err != nil {
		return nil, translateRepoError(err, id, "Failed to attach property images")
	}

	s.cfg.Log.Info("Property images uploaded", "id", id, "count", len(urls))
	return property, nil
}

func (s *propertyService) assignAgent(ctx context.Context, property *model.Property) error {
	if property.AgentID == "" {
		return apperrors.Validation("Invalid property", map[string]any{"agent_id": "agent_id is required"})
	}

	agent, err := s.agents.FindByID(ctx, property.AgentID)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) || errors.Is(err, userserrors.ErrInvalidID) {
			return apperrors.Validation("Invalid property", map[string]any{"agent_id": "agent does not exist"})
		}
		s.cfg.Log.Error("Failed to resolve agent", "agent_id", property.AgentID, "error", err)
		return apperrors.Internal("Failed to resolve agent", err)
	}
	if agent.Role != string(auth.RoleAgent) {
		return apperrors.Validation("Invalid property", map[string]any{"agent_id": "user is not an agent"})
	}

	property.AgentName = agent.Name
	return nil
}

func (s *propertyService) sanitize(property *model.Property) {
	property.Title = sanitizer.TrimAndNormalize(property.Title)
	property.Address = sanitizer.TrimAndNormalize(property.Address)
	property.Description = sanitizer.TrimAndNormalize(property.Description)
	property.AgentID = sanitizer.TrimAndNormalize(property.AgentID)
}

func mergePropertyUpdates(existing *model.Property, updates *model.PropertyUpdate) *model.Property {
	merged := *existing
	merged.Images = append([]string(nil), existing.Images...)

	if updates.Title != "" {
		merged.Title = updates.Title
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.Address != nil {
		merged.Address = *updates.Address
	}
	if updates.Price != nil {
		merged.Price = *updates.Price
	}
	if updates.Area != nil {
		merged.Area = *updates.Area
	}
	if updates.Size != nil {
		merged.Size = *updates.Size
	}
	if updates.Status != nil {
		merged.Status = *updates.Status
	}
	if updates.AgentID != "" {
		merged.AgentID = updates.AgentID
	}
	if updates.Images != nil {
		merged.Images = sanitizer.NormalizeImageURLs(*updates.Images)
	}
	return &merged
}

func validateFilter(f model.PropertyFilter) error {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return apperrors.InvalidInput("min_price cannot exceed max_price")
	}
	if f.MinArea != nil && f.MaxArea != nil && *f.MinArea > *f.MaxArea {
		return apperrors.InvalidInput("min_area cannot exceed max_area")
	}
	if f.Status != "" {
		for _, s := range model.PropertyStatuses() {
			if f.Status == s {
				return nil
			}
		}
		return apperrors.InvalidInput(fmt.Sprintf("unknown status %q", f.Status))
	}
	return nil
}

func requireListingManager(ctx context.Context) error {
	principal := auth.PrincipalFromContext(ctx)
	if principal == nil {
		return apperrors.Unauthorized("Sign in to manage listings")
	}
	if !principal.Can(auth.CapManageListings) {
		return apperrors.Forbidden("Only administrators can manage listings")
	}
	return nil
}

func translateRepoError(err error, id, message string) error {
	switch {
	case errors.Is(err, propertieserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Property", id)
	case errors.Is(err, propertieserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid property ID format")
	default:
		return apperrors.Internal(message, err)
	}
}
