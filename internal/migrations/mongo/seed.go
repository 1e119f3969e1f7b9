package mongo

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	contentrepo "studio/internal/content/repository"
	mongotx "studio/pkg/db/mongo"
	"studio/pkg/logger"
	"studio/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

//go:embed seed/default.yaml
var defaultSeed []byte

// Seed is the YAML document that populates the content collections. Portfolio items name
// their category by id; Resolve copies the category onto each item.
type Seed struct {
	Company    model.CompanyDetails      `yaml:"company"`
	Categories []model.PortfolioCategory `yaml:"categories"`
	Portfolio  []SeedItem                `yaml:"portfolio"`
	Services   []model.Service           `yaml:"services"`
}

type SeedItem struct {
	ID               int64     `yaml:"id"`
	CategoryID       int64     `yaml:"category_id"`
	File             string    `yaml:"file"`
	FileType         string    `yaml:"file_type"`
	Priority         int       `yaml:"priority"`
	IsFeaturedOnHome bool      `yaml:"is_featured_in_home_page"`
	CreatedAt        time.Time `yaml:"created_at"`
}

func DefaultSeed() (*Seed, error) {
	return LoadSeed(bytes.NewReader(defaultSeed))
}

// LoadSeed decodes and validates a seed document. Unknown keys are rejected.
func LoadSeed(r io.Reader) (*Seed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Seed
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Seed) Validate() error {
	var errs []error

	if strings.TrimSpace(s.Company.LogoName) == "" {
		errs = append(errs, errors.New("company.logo_name is required"))
	}
	if strings.TrimSpace(s.Company.Email) == "" {
		errs = append(errs, errors.New("company.email is required"))
	}

	categories := map[int64]bool{}
	for _, c := range s.Categories {
		if c.ID <= 0 || categories[c.ID] {
			errs = append(errs, fmt.Errorf("category %q has a missing or duplicate id %d", c.Name, c.ID))
		}
		categories[c.ID] = true
	}

	items := map[int64]bool{}
	for _, it := range s.Portfolio {
		if it.ID <= 0 || items[it.ID] {
			errs = append(errs, fmt.Errorf("portfolio item %q has a missing or duplicate id %d", it.File, it.ID))
		}
		items[it.ID] = true
		if !categories[it.CategoryID] {
			errs = append(errs, fmt.Errorf("portfolio item %d references unknown category %d", it.ID, it.CategoryID))
		}
		if it.FileType != "image" && it.FileType != "video" {
			errs = append(errs, fmt.Errorf("portfolio item %d has file_type %q, want image or video", it.ID, it.FileType))
		}
	}

	services := map[int64]bool{}
	for _, svc := range s.Services {
		if svc.ID <= 0 || services[svc.ID] {
			errs = append(errs, fmt.Errorf("service %q has a missing or duplicate id %d", svc.Name, svc.ID))
		}
		services[svc.ID] = true
	}

	return errors.Join(errs...)
}

// Resolve returns the portfolio items with their categories filled in and zero
// created_at values replaced by now.
func (s *Seed) Resolve(now time.Time) ([]model.PortfolioItem, []model.Service) {
	byID := make(map[int64]model.PortfolioCategory, len(s.Categories))
	for _, c := range s.Categories {
		byID[c.ID] = c
	}

	items := make([]model.PortfolioItem, 0, len(s.Portfolio))
	for _, it := range s.Portfolio {
		items = append(items, model.PortfolioItem{
			ID:               it.ID,
			Category:         byID[it.CategoryID],
			File:             it.File,
			FileType:         it.FileType,
			Priority:         it.Priority,
			IsFeaturedOnHome: it.IsFeaturedOnHome,
			CreatedAt:        orNow(it.CreatedAt, now),
		})
	}

	services := make([]model.Service, 0, len(s.Services))
	for _, svc := range s.Services {
		svc.CreatedAt = orNow(svc.CreatedAt, now)
		services = append(services, svc)
	}
	return items, services
}

func orNow(t, now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t.UTC()
}

// ApplySeed upserts every seed document by id and replaces the company details, so
// running it twice leaves the same data. Counters are raised past the seeded ids.
func ApplySeed(ctx context.Context, db *mongo.Database, s *Seed, log *logger.Logger) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	items, services := s.Resolve(now)

	if _, err := db.Collection(contentrepo.CompanyCollection).ReplaceOne(ctx, bson.M{}, s.Company, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to seed company details: %w", err)
	}

	if err := upsertAll(ctx, db, contentrepo.CategoriesCollection, s.Categories, func(c model.PortfolioCategory) int64 { return c.ID }); err != nil {
		return err
	}
	if err := upsertAll(ctx, db, contentrepo.PortfolioCollection, items, func(it model.PortfolioItem) int64 { return it.ID }); err != nil {
		return err
	}
	if err := upsertAll(ctx, db, contentrepo.ServicesCollection, services, func(svc model.Service) int64 { return svc.ID }); err != nil {
		return err
	}

	log.Info("Seed applied",
		"categories", len(s.Categories),
		"portfolio_items", len(items),
		"services", len(services),
	)
	return nil
}

func upsertAll[T any](ctx context.Context, db *mongo.Database, collection string, docs []T, id func(T) int64) error {
	if len(docs) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(docs))
	var maxID int64
	for _, doc := range docs {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": id(doc)}).
			SetReplacement(doc).
			SetUpsert(true))
		maxID = max(maxID, id(doc))
	}

	if _, err := db.Collection(collection).BulkWrite(ctx, models); err != nil {
		return fmt.Errorf("failed to seed %s: %w", collection, err)
	}
	return mongotx.SetSequenceAtLeast(ctx, db, collection, maxID)
}
