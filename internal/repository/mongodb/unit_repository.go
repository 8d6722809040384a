package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/repository"
)

// UnitRepository persists units in a MongoDB collection.
type UnitRepository struct {
	coll *mongo.Collection
}

var _ repository.UnitRepository = (*UnitRepository)(nil)

// GetUnit fetches a unit by its id.
func (r *UnitRepository) GetUnit(ctx context.Context, id string) (models.Unit, error) {
	var unit models.Unit
	err := r.coll.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&unit)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Unit{}, repository.ErrNotFound
	}
	if err != nil {
		return models.Unit{}, fmt.Errorf("find unit %s: %w", id, err)
	}
	return unit, nil
}

// ListUnits returns every unit in natural order.
func (r *UnitRepository) ListUnits(ctx context.Context) ([]models.Unit, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}

	units := []models.Unit{}
	if err := cursor.All(ctx, &units); err != nil {
		return nil, fmt.Errorf("decode units: %w", err)
	}
	return units, nil
}

// UnitIDs returns the ids of every unit.
func (r *UnitRepository) UnitIDs(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.D{{Key: "id", Value: 1}, {Key: "_id", Value: 0}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list unit ids: %w", err)
	}

	var rows []struct {
		ID string `bson:"id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode unit ids: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.ID != "" {
			ids = append(ids, row.ID)
		}
	}
	return ids, nil
}

// InsertUnit stores a new unit.
func (r *UnitRepository) InsertUnit(ctx context.Context, unit models.Unit) error {
	if _, err := r.coll.InsertOne(ctx, unit); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert unit %s: %w", unit.ID, err)
	}
	return nil
}
