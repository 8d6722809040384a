package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/config"
)

// Client owns the MongoDB connection and hands out collection-bound repositories.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    config.MongoDBConfig
	logger *zap.Logger
}

// Connect opens and verifies a MongoDB connection.
func Connect(ctx context.Context, cfg config.MongoDBConfig, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(cfg.URI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("connected to mongodb", zap.String("database", cfg.DBName))

	return &Client{
		client: client,
		db:     client.Database(cfg.DBName),
		cfg:    cfg,
		logger: logger,
	}, nil
}

// EnsureIndexes creates the unique keys the repositories rely on:
// Unit.id and the compound (StockRecord.id, StockRecord.unit_id).
func (c *Client) EnsureIndexes(ctx context.Context) error {
	units := c.db.Collection(c.cfg.UnitsCollection)
	if _, err := units.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_unit_id"),
	}); err != nil {
		return fmt.Errorf("create units index: %w", err)
	}

	stock := c.db.Collection(c.cfg.StockCollection)
	if _, err := stock.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}, {Key: "unit_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_product_unit"),
		},
		{
			Keys:    bson.D{{Key: "unit_id", Value: 1}, {Key: "quantity", Value: 1}},
			Options: options.Index().SetName("unit_quantity"),
		},
	}); err != nil {
		return fmt.Errorf("create stock indexes: %w", err)
	}

	c.logger.Debug("mongodb indexes ensured")
	return nil
}

// Units returns the unit repository.
func (c *Client) Units() *UnitRepository {
	return &UnitRepository{coll: c.db.Collection(c.cfg.UnitsCollection)}
}

// Stock returns the stock repository.
func (c *Client) Stock() *StockRepository {
	return &StockRepository{coll: c.db.Collection(c.cfg.StockCollection), logger: c.logger.Named("stock")}
}

// Close closes the MongoDB connection.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
