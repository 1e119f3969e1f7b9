package service

import (
	"context"
	"errors"
	"net/http"

	contenterrors "studio/internal/content/errors"
	"studio/internal/content/repository"
	"studio/pkg/config"
	apperrors "studio/pkg/errors"
	"studio/pkg/markup"
	"studio/pkg/model"

	"golang.org/x/sync/errgroup"
)

type PortfolioResult struct {
	Items      []model.PortfolioItem
	Count      int64
	Page       int
	PageSize   int
	Categories []model.PortfolioCategory
	CategoryID *int64
}

type ServicesResult struct {
	Services []model.Service
	Count    int64
	Page     int
	PageSize int
}

type ContentService interface {
	Home(ctx context.Context) (*model.HomePageData, error)
	Contact(ctx context.Context) (*model.ContactData, error)
	Portfolio(ctx context.Context, page int, categoryID *int64) (*PortfolioResult, error)
	Services(ctx context.Context, page int) (*ServicesResult, error)
}

type contentService struct {
	repo   repository.ContentRepository
	policy markup.Policy
	cfg    *config.Config
}

func NewContentService(repo repository.ContentRepository, cfg *config.Config) ContentService {
	return &contentService{
		repo:   repo,
		policy: markup.Policy{TrustSource: cfg.ContentTrusted},
		cfg:    cfg,
	}
}

func (s *contentService) Home(ctx context.Context) (*model.HomePageData, error) {
	var (
		data model.HomePageData
		g    errgroup.Group
	)

	g.Go(func() error {
		company, err := s.company(ctx)
		if err != nil {
			return err
		}
		data.CompanyDetails = *company
		return nil
	})
	g.Go(func() error {
		categories, err := s.repo.FindCategories(ctx, true)
		if err != nil {
			return s.internal("Failed to retrieve portfolio categories", err)
		}
		data.PortfolioCategories = categories
		return nil
	})
	g.Go(func() error {
		items, err := s.repo.FindItems(ctx, repository.ItemFilter{FeaturedOnly: true}, 0, 0)
		if err != nil {
			return s.internal("Failed to retrieve portfolio items", err)
		}
		data.PortfolioItems = items
		return nil
	})
	g.Go(func() error {
		services, err := s.repo.FindServices(ctx, true, 0, 0)
		if err != nil {
			return s.internal("Failed to retrieve services", err)
		}
		data.Services = s.renderServices(services)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *contentService) Contact(ctx context.Context) (*model.ContactData, error) {
	company, err := s.company(ctx)
	if err != nil {
		return nil, err
	}
	contact := company.Contact()
	return &contact, nil
}

func (s *contentService) Portfolio(ctx context.Context, page int, categoryID *int64) (*PortfolioResult, error) {
	size := s.cfg.PortfolioPageSize
	page = config.NormalizePage(page)
	offset := int64(page-1) * int64(size)
	filter := repository.ItemFilter{CategoryID: categoryID}

	result := &PortfolioResult{Page: page, PageSize: size, CategoryID: categoryID}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.repo.CountItems(gctx, filter)
		if err != nil {
			return s.internal("Failed to count portfolio items", err)
		}
		result.Count = count
		return nil
	})
	g.Go(func() error {
		items, err := s.repo.FindItems(gctx, filter, size, offset)
		if err != nil {
			return s.internal("Failed to retrieve portfolio items", err)
		}
		result.Items = items
		return nil
	})
	g.Go(func() error {
		categories, err := s.repo.FindCategories(gctx, false)
		if err != nil {
			return s.internal("Failed to retrieve portfolio categories", err)
		}
		result.Categories = categories
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := checkPage(page, offset, result.Count); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *contentService) Services(ctx context.Context, page int) (*ServicesResult, error) {
	size := s.cfg.ServicesPageSize
	page = config.NormalizePage(page)
	offset := int64(page-1) * int64(size)

	result := &ServicesResult{Page: page, PageSize: size}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.repo.CountServices(gctx, false)
		if err != nil {
			return s.internal("Failed to count services", err)
		}
		result.Count = count
		return nil
	})
	g.Go(func() error {
		services, err := s.repo.FindServices(gctx, false, size, offset)
		if err != nil {
			return s.internal("Failed to retrieve services", err)
		}
		result.Services = s.renderServices(services)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := checkPage(page, offset, result.Count); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *contentService) company(ctx context.Context) (*model.CompanyDetails, error) {
	company, err := s.repo.FindCompany(ctx)
	if err != nil {
		if errors.Is(err, contenterrors.ErrCompanyNotConfigured) {
			return nil, apperrors.NotFound("Company details")
		}
		return nil, s.internal("Failed to retrieve company details", err)
	}
	company.AboutUsDetails = s.policy.Render(company.AboutUsDetails).String()
	return company, nil
}

func (s *contentService) renderServices(services []model.Service) []model.Service {
	for i := range services {
		services[i].Description = s.policy.Render(services[i].Description).String()
	}
	return services
}

func (s *contentService) internal(message string, err error) error {
	s.cfg.Log.Error(message, "error", err)
	return apperrors.Internal(message, err)
}

// checkPage rejects pages past the last one. Page 1 is always valid.
func checkPage(page int, offset, count int64) error {
	if page > 1 && offset >= count {
		return apperrors.Wrap(contenterrors.ErrPageOutOfRange, apperrors.CodeNotFound, "Invalid page.", http.StatusNotFound)
	}
	return nil
}
