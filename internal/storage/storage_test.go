package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/inventory/internal/config"
	"github.com/mamadbah2/inventory/internal/repository/memory"
)

func TestOpenMemory(t *testing.T) {
	backend, err := Open(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: config.DriverMemory}}, nil)
	require.NoError(t, err)

	assert.IsType(t, &memory.UnitStore{}, backend.Units)
	assert.IsType(t, &memory.StockStore{}, backend.Stock)
	assert.NoError(t, backend.Close(context.Background()))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: "sqlite"}}, nil)
	assert.ErrorContains(t, err, "sqlite")
}
