package repository

import (
	"context"
	"errors"
	"fmt"

	contenterrors "studio/internal/content/errors"
	"studio/pkg/config"
	mongotx "studio/pkg/db/mongo"
	"studio/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CompanyCollection    = "company_details"
	CategoriesCollection = "portfolio_categories"
	PortfolioCollection  = "portfolio_items"
	ServicesCollection   = "services"
)

// Listing order shared by portfolio items and services.
var byPriority = bson.D{{Key: "priority", Value: -1}, {Key: "created_at", Value: -1}}

// ItemFilter narrows portfolio item queries. The zero value matches every item.
type ItemFilter struct {
	FeaturedOnly bool
	CategoryID   *int64
}

func (f ItemFilter) bson() bson.M {
	filter := bson.M{}
	if f.FeaturedOnly {
		filter["is_featured_in_home_page"] = true
	}
	if f.CategoryID != nil {
		filter["category._id"] = *f.CategoryID
	}
	return filter
}

type ContentRepository interface {
	FindCompany(ctx context.Context) (*model.CompanyDetails, error)
	FindCategories(ctx context.Context, featuredOnly bool) ([]model.PortfolioCategory, error)
	FindItems(ctx context.Context, filter ItemFilter, limit int, offset int64) ([]model.PortfolioItem, error)
	CountItems(ctx context.Context, filter ItemFilter) (int64, error)
	FindServices(ctx context.Context, featuredOnly bool, limit int, offset int64) ([]model.Service, error)
	CountServices(ctx context.Context, featuredOnly bool) (int64, error)
}

type mongoContentRepository struct {
	cfg        *config.Config
	company    *mongo.Collection
	categories *mongo.Collection
	items      *mongo.Collection
	services   *mongo.Collection
}

func NewMongoContentRepository(cfg *config.Config) ContentRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoContentRepository{
		cfg:        cfg,
		company:    db.Collection(CompanyCollection),
		categories: db.Collection(CategoriesCollection),
		items:      db.Collection(PortfolioCollection),
		services:   db.Collection(ServicesCollection),
	}
}

// FindCompany returns the single company details document.
func (r *mongoContentRepository) FindCompany(ctx context.Context) (*model.CompanyDetails, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var details model.CompanyDetails
	err := r.company.FindOne(ctx, bson.M{}).Decode(&details)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, contenterrors.ErrCompanyNotConfigured
		}
		return nil, fmt.Errorf("failed to find company details: %w", err)
	}
	return &details, nil
}

func (r *mongoContentRepository) FindCategories(ctx context.Context, featuredOnly bool) ([]model.PortfolioCategory, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if featuredOnly {
		filter["is_featured_in_home_page"] = true
	}

	cursor, err := r.categories.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find portfolio categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := []model.PortfolioCategory{}
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode portfolio categories: %w", err)
	}
	return categories, nil
}

func (r *mongoContentRepository) FindItems(ctx context.Context, filter ItemFilter, limit int, offset int64) ([]model.PortfolioItem, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.items.Find(ctx, filter.bson(), listOptions(limit, offset))
	if err != nil {
		return nil, fmt.Errorf("failed to find portfolio items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []model.PortfolioItem{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode portfolio items: %w", err)
	}
	return items, nil
}

func (r *mongoContentRepository) CountItems(ctx context.Context, filter ItemFilter) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.items.CountDocuments(ctx, filter.bson())
	if err != nil {
		return 0, fmt.Errorf("failed to count portfolio items: %w", err)
	}
	return count, nil
}

func (r *mongoContentRepository) FindServices(ctx context.Context, featuredOnly bool, limit int, offset int64) ([]model.Service, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.services.Find(ctx, servicesFilter(featuredOnly), listOptions(limit, offset))
	if err != nil {
		return nil, fmt.Errorf("failed to find services: %w", err)
	}
	defer cursor.Close(ctx)

	services := []model.Service{}
	if err = cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

func (r *mongoContentRepository) CountServices(ctx context.Context, featuredOnly bool) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.services.CountDocuments(ctx, servicesFilter(featuredOnly))
	if err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return count, nil
}

func servicesFilter(featuredOnly bool) bson.M {
	if featuredOnly {
		return bson.M{"is_featured": true}
	}
	return bson.M{}
}

// listOptions sorts by priority. A limit of 0 returns every document.
func listOptions(limit int, offset int64) *options.FindOptions {
	opts := options.Find().SetSort(byPriority).SetSkip(offset)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return opts
}
