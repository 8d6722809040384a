package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/inventory/internal/repository/memory"
	"github.com/mamadbah2/inventory/internal/service/inventory"
	unitsvc "github.com/mamadbah2/inventory/internal/service/units"
)

func memoryOpener(t *testing.T) (Opener, *Runtime) {
	t.Helper()
	unitStore := memory.NewUnitStore()
	rt := &Runtime{
		Units:     unitsvc.NewService(unitStore, nil),
		Inventory: inventory.NewService(unitStore, memory.NewStockStore(), nil, nil),
	}
	return func(context.Context, string) (*Runtime, error) { return rt, nil }, rt
}

func run(t *testing.T, open Opener, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(open)
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestSeedUnitsIsIdempotent(t *testing.T) {
	open, rt := memoryOpener(t)

	assert.Contains(t, run(t, open, "units", "--volume", "50"), "Inserted 3 units")

	out := run(t, open, "units")
	assert.Contains(t, out, "unit u1 exists, skipped")
	assert.Contains(t, out, "Inserted 0 units")

	unit, err := rt.Units.Get(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, 50.0, unit.Volume)
}

func TestSeedAll(t *testing.T) {
	open, rt := memoryOpener(t)

	out := run(t, open, "all")
	assert.Contains(t, out, "Inserted 3 units")
	assert.Contains(t, out, "Inserted 5 products")

	records, err := rt.Inventory.ListInUnit(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, records, 3)

	usage, err := rt.Inventory.Usage(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 50.0, usage.Used)

	assert.Contains(t, run(t, open, "products"), "product p1 exists, skipped")
}

func TestSeedProductsReplicated(t *testing.T) {
	open, rt := memoryOpener(t)
	run(t, open, "units")

	out := run(t, open, "products", "--replicate")
	assert.Contains(t, out, "Inserted 15 products")

	rec, err := rt.Inventory.GetByID(context.Background(), "p3", "u1")
	require.NoError(t, err)
	assert.Zero(t, rec.Quantity)
}

func TestSeedProductsReportsOverflow(t *testing.T) {
	open, _ := memoryOpener(t)
	run(t, open, "units", "--volume", "20")

	out := run(t, open, "products")
	assert.Contains(t, out, "product p4 skipped")
	assert.Contains(t, out, "Inserted 3 products")
}
