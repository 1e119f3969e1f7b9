package mongo

import (
	"context"
	"fmt"

	bookingsrepo "studio/internal/bookings/repository"
	contentrepo "studio/internal/content/repository"
	"studio/internal/migrations/mongo/validators"
	mongotx "studio/pkg/db/mongo"
	"studio/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "email", Value: 1},
			{Key: "event_date", Value: 1},
			{Key: "status", Value: 1},
		}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	PortfolioItemsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "priority", Value: -1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{
			{Key: "category._id", Value: 1},
			{Key: "priority", Value: -1},
			{Key: "created_at", Value: -1},
		}},
		{Keys: bson.D{{Key: "is_featured_in_home_page", Value: 1}}},
	}

	ServicesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "priority", Value: -1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "is_featured", Value: 1}}},
	}
)

type collectionDef struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Collections lists every collection the studio API reads or writes, in creation order.
var Collections = []collectionDef{
	{Name: mongotx.CountersCollection},
	{Name: bookingsrepo.CollectionName, Indexes: BookingsIndexes, Validator: validators.BookingValidator},
	{Name: contentrepo.CompanyCollection, Validator: validators.CompanyDetailsValidator},
	{Name: contentrepo.CategoriesCollection, Validator: validators.PortfolioCategoryValidator},
	{Name: contentrepo.PortfolioCollection, Indexes: PortfolioItemsIndexes, Validator: validators.PortfolioItemValidator},
	{Name: contentrepo.ServicesCollection, Indexes: ServicesIndexes, Validator: validators.ServiceValidator},
}

func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, def := range Collections {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if len(def.Indexes) == 0 {
			continue
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection()
		if validator != nil {
			opts.SetValidator(validator)
		}
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	if validator == nil {
		return nil
	}
	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
