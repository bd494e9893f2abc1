package identity

import (
	"context"

	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PageService handles page management inside one tenant database
type PageService struct {
	stores identity.StoreResolver
	logger *zap.Logger
}

// NewPageService creates a new page service
func NewPageService(stores identity.StoreResolver, logger *zap.Logger) *PageService {
	return &PageService{stores: stores, logger: logger}
}

// CreatePageInput contains input for creating a page
type CreatePageInput struct {
	Name     string
	Path     string
	Category string
}

// UpdatePageInput contains input for updating a page; nil fields are kept
type UpdatePageInput struct {
	ID       uuid.UUID
	Name     *string
	Path     *string
	Category *string
	IsActive *bool
}

// Create creates a new page
func (s *PageService) Create(ctx context.Context, tenantDomain string, input CreatePageInput) (*PageDTO, error) {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	nameExists, err := store.Pages().ExistsByName(ctx, input.Name)
	if err != nil {
		s.logger.Error("Failed to check page name existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check page name availability")
	}
	if nameExists {
		return nil, shared.NewDomainError("PAGE_EXISTS", "A page with this name already exists")
	}
	pathExists, err := store.Pages().ExistsByPath(ctx, input.Path)
	if err != nil {
		s.logger.Error("Failed to check page path existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check page path availability")
	}
	if pathExists {
		return nil, shared.NewDomainError("PAGE_EXISTS", "A page with this path already exists")
	}

	page, err := identity.NewPage(input.Name, input.Path, input.Category)
	if err != nil {
		return nil, err
	}

	if err := store.Pages().Create(ctx, page); err != nil {
		s.logger.Error("Failed to create page", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create page")
	}

	s.logger.Info("Page created",
		zap.String("tenant", tenantDomain),
		zap.String("page_id", page.ID.String()),
		zap.String("path", page.Path))

	dto := toPageDTO(page)
	return &dto, nil
}

// Update updates a page's mutable fields
func (s *PageService) Update(ctx context.Context, tenantDomain string, input UpdatePageInput) (*PageDTO, error) {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	page, err := store.Pages().FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != page.Name {
		exists, err := store.Pages().ExistsByName(ctx, *input.Name)
		if err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check page name availability")
		}
		if exists {
			return nil, shared.NewDomainError("PAGE_EXISTS", "A page with this name already exists")
		}
		page.Name = *input.Name
	}
	if input.Path != nil && *input.Path != page.Path {
		exists, err := store.Pages().ExistsByPath(ctx, *input.Path)
		if err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check page path availability")
		}
		if exists {
			return nil, shared.NewDomainError("PAGE_EXISTS", "A page with this path already exists")
		}
		page.Path = *input.Path
	}
	if input.Category != nil {
		page.Category = *input.Category
	}
	if input.IsActive != nil {
		if *input.IsActive {
			page.Activate()
		} else {
			page.Deactivate()
		}
	}
	page.Touch()

	if err := store.Pages().Update(ctx, page); err != nil {
		s.logger.Error("Failed to update page", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update page")
	}

	dto := toPageDTO(page)
	return &dto, nil
}

// Delete removes a page. A page still referenced by role permission entries
// cannot be deleted; the error reports how many roles reference it.
func (s *PageService) Delete(ctx context.Context, tenantDomain string, id uuid.UUID) error {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return err
	}

	count, err := store.Roles().CountReferencingPage(ctx, id)
	if err != nil {
		s.logger.Error("Failed to count roles referencing page", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check page usage")
	}
	if count > 0 {
		return shared.NewDomainErrorf("PAGE_IN_USE", "Page is referenced by %d role(s) and cannot be deleted", count)
	}

	if err := store.Pages().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Page deleted",
		zap.String("tenant", tenantDomain),
		zap.String("page_id", id.String()))
	return nil
}

// Get returns one page
func (s *PageService) Get(ctx context.Context, tenantDomain string, id uuid.UUID) (*PageDTO, error) {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}
	page, err := store.Pages().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toPageDTO(page)
	return &dto, nil
}

// List returns pages matching the filter
func (s *PageService) List(ctx context.Context, tenantDomain string, filter shared.Filter) ([]PageDTO, ListMeta, error) {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, ListMeta{}, err
	}
	filter.Normalize()
	pages, total, err := store.Pages().FindAll(ctx, filter)
	if err != nil {
		return nil, ListMeta{}, err
	}

	dtos := make([]PageDTO, 0, len(pages))
	for _, page := range pages {
		dtos = append(dtos, toPageDTO(page))
	}
	return dtos, NewListMeta(filter.Page, filter.Limit, total), nil
}
