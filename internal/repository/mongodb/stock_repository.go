package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/repository"
)

// StockRepository persists stock records. Sales and purchases are single
// FindOneAndUpdate calls so the guard and the write cannot interleave.
type StockRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

var _ repository.StockRepository = (*StockRepository)(nil)

// FindOne fetches (id, unitID), or the lowest unit_id match when unitID is empty.
func (r *StockRepository) FindOne(ctx context.Context, id, unitID string) (models.StockRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "unit_id", Value: 1}})

	var record models.StockRecord
	err := r.coll.FindOne(ctx, lookupFilter(id, unitID), opts).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.StockRecord{}, repository.ErrNotFound
	}
	if err != nil {
		return models.StockRecord{}, fmt.Errorf("find product %s: %w", id, err)
	}
	return record, nil
}

// Find runs a filtered, optionally sorted query.
func (r *StockRepository) Find(ctx context.Context, filter repository.StockFilter, sort repository.Sort) ([]models.StockRecord, error) {
	opts := options.Find()
	if spec := sortSpec(sort); spec != nil {
		opts.SetSort(spec)
	}

	cursor, err := r.coll.Find(ctx, searchFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	records := []models.StockRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return records, nil
}

// UnitLoad projects quantity and volume of every record in a unit.
func (r *StockRepository) UnitLoad(ctx context.Context, unitID string) ([]models.StockLoad, error) {
	opts := options.Find().SetProjection(bson.D{
		{Key: "id", Value: 1},
		{Key: "quantity", Value: 1},
		{Key: "volume", Value: 1},
		{Key: "_id", Value: 0},
	})

	cursor, err := r.coll.Find(ctx, bson.D{{Key: "unit_id", Value: unitID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("load unit %s: %w", unitID, err)
	}

	var loads []models.StockLoad
	if err := cursor.All(ctx, &loads); err != nil {
		return nil, fmt.Errorf("decode unit %s load: %w", unitID, err)
	}
	return loads, nil
}

// Insert stores one record.
func (r *StockRepository) Insert(ctx context.Context, record models.StockRecord) error {
	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert product %s: %w", record.ID, err)
	}
	return nil
}

// InsertMany stores records in order. When a write fails, the documents
// inserted before it are removed again so the call has no partial effect.
func (r *StockRepository) InsertMany(ctx context.Context, records []models.StockRecord) error {
	if len(records) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(records))
	for _, rec := range records {
		docs = append(docs, rec)
	}

	_, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err == nil {
		return nil
	}

	var bulkErr mongo.BulkWriteException
	if errors.As(err, &bulkErr) && len(bulkErr.WriteErrors) > 0 {
		r.rollback(ctx, records[:bulkErr.WriteErrors[0].Index])
	}

	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return fmt.Errorf("insert products: %w", err)
}

func (r *StockRepository) rollback(ctx context.Context, inserted []models.StockRecord) {
	if len(inserted) == 0 {
		return
	}

	keys := make(bson.A, 0, len(inserted))
	for _, rec := range inserted {
		keys = append(keys, recordKey(rec.ID, rec.UnitID))
	}

	if _, err := r.coll.DeleteMany(ctx, bson.D{{Key: "$or", Value: keys}}); err != nil {
		r.logger.Error("failed to roll back partial insert", zap.Int("documents", len(inserted)), zap.Error(err))
	}
}

// ApplySale decrements stock only when quantity >= requested.
func (r *StockRepository) ApplySale(ctx context.Context, id, unitID string, quantity int, profit float64) (models.StockRecord, error) {
	return r.findAndUpdate(ctx, saleFilter(id, unitID, quantity), saleUpdate(quantity, profit))
}

// ApplyPurchase increments stock and applies the (negative) cost to unit_gain.
func (r *StockRepository) ApplyPurchase(ctx context.Context, id, unitID string, quantity int, gainDelta float64) (models.StockRecord, error) {
	return r.findAndUpdate(ctx, recordKey(id, unitID), purchaseUpdate(quantity, gainDelta))
}

func (r *StockRepository) findAndUpdate(ctx context.Context, filter, update bson.D) (models.StockRecord, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var record models.StockRecord
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.StockRecord{}, repository.ErrNoMatch
	}
	if err != nil {
		return models.StockRecord{}, fmt.Errorf("update product: %w", err)
	}
	return record, nil
}
