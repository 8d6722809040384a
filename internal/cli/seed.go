// Package cli provides the Cobra-based provisioning CLI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/inventory/internal/config"
	"github.com/mamadbah2/inventory/internal/domain/apperror"
	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/lock"
	"github.com/mamadbah2/inventory/internal/service/inventory"
	unitsvc "github.com/mamadbah2/inventory/internal/service/units"
	"github.com/mamadbah2/inventory/internal/storage"
	"github.com/mamadbah2/inventory/pkg/logger"
)

// Runtime is what the seed commands operate on.
type Runtime struct {
	Units     *unitsvc.Service
	Inventory *inventory.Service
	Close     func(ctx context.Context) error
}

// Opener builds a Runtime from an env file path.
type Opener func(ctx context.Context, envFile string) (*Runtime, error)

// NewRootCommand assembles the seed command tree around open.
func NewRootCommand(open Opener) *cobra.Command {
	var (
		envFile string
		rt      *Runtime
	)

	root := &cobra.Command{
		Use:           "seed",
		Short:         "Provision units and a sample catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			rt, err = open(cmd.Context(), envFile)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if rt == nil || rt.Close == nil {
				return nil
			}
			return rt.Close(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "path to an env file (defaults to .env)")

	var volume float64
	unitsCmd := &cobra.Command{
		Use:   "units",
		Short: "Create units u1..u3",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seedUnits(cmd.Context(), rt, cmd.OutOrStdout(), volume)
		},
	}
	unitsCmd.Flags().Float64Var(&volume, "volume", 100, "volume of each unit")

	var replicate bool
	productsCmd := &cobra.Command{
		Use:   "products",
		Short: "Insert the sample catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seedProducts(cmd.Context(), rt, cmd.OutOrStdout(), replicate)
		},
	}
	productsCmd.Flags().BoolVar(&replicate, "replicate", false, "insert every product into all units with empty stock")

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Create units then insert the sample catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := seedUnits(cmd.Context(), rt, cmd.OutOrStdout(), volume); err != nil {
				return err
			}
			return seedProducts(cmd.Context(), rt, cmd.OutOrStdout(), replicate)
		},
	}
	allCmd.Flags().Float64Var(&volume, "volume", 100, "volume of each unit")
	allCmd.Flags().BoolVar(&replicate, "replicate", false, "insert every product into all units with empty stock")

	root.AddCommand(unitsCmd, productsCmd, allCmd)
	return root
}

// OpenFromConfig loads configuration and wires services over the configured storage.
func OpenFromConfig(ctx context.Context, envFile string) (*Runtime, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(ctx, cfg, log.Named("repo"))
	if err != nil {
		return nil, err
	}

	locker, closeLocker, err := lock.FromConfig(ctx, cfg.Redis, log.Named("lock"))
	if err != nil {
		_ = backend.Close(ctx)
		return nil, err
	}

	return &Runtime{
		Units:     unitsvc.NewService(backend.Units, log.Named("svc.units")),
		Inventory: inventory.NewService(backend.Units, backend.Stock, locker, log.Named("svc.inventory")),
		Close: func(ctx context.Context) error {
			_ = log.Sync()
			return errors.Join(closeLocker(), backend.Close(ctx))
		},
	}, nil
}

var sampleUnits = []models.Unit{
	{ID: "u1", Name: "unit_1"},
	{ID: "u2", Name: "unit_2"},
	{ID: "u3", Name: "unit_3"},
}

func seedUnits(ctx context.Context, rt *Runtime, out io.Writer, volume float64) error {
	created := 0
	for _, u := range sampleUnits {
		u.Volume = volume
		_, err := rt.Units.Create(ctx, u)
		switch {
		case errors.Is(err, apperror.ErrDuplicate):
			fmt.Fprintf(out, "unit %s exists, skipped\n", u.ID)
		case err != nil:
			return fmt.Errorf("create unit %s: %w", u.ID, err)
		default:
			created++
		}
	}
	fmt.Fprintf(out, "Inserted %d units\n", created)
	return nil
}

type sampleProduct struct {
	id, name, category   string
	quantity, sold       int
	weight, volume       float64
	purchase, sell, gain float64
	unitID               string
}

var sampleProducts = []sampleProduct{
	{"p1", "pr1", "Electronics", 4, 1, 12, 3, 100, 150, 100, "u1"},
	{"p2", "pr2", "Clothing", 5, 2, 5, 2, 20, 50, 100, "u2"},
	{"p3", "pr3", "Book", 6, 3, 3, 1, 10, 20, 100, "u3"},
	{"p4", "pr4", "Electronics", 7, 4, 12, 2, 30, 40, 100, "u1"},
	{"p5", "pr5", "Electronics", 8, 5, 12, 3, 40, 50, 100, "u1"},
}

func (p sampleProduct) draft(replicate bool) models.ProductDraft {
	d := models.ProductDraft{
		ID:            p.id,
		Name:          p.name,
		Weight:        &p.weight,
		Volume:        &p.volume,
		Category:      p.category,
		PurchasePrice: &p.purchase,
		SellingPrice:  &p.sell,
		Manufacturer:  "Acme",
	}
	if !replicate {
		d.Quantity, d.SoldQuantity, d.UnitGain = &p.quantity, &p.sold, &p.gain
		d.UnitID = p.unitID
	}
	return d
}

func seedProducts(ctx context.Context, rt *Runtime, out io.Writer, replicate bool) error {
	inserted := 0
	for _, p := range sampleProducts {
		records, err := rt.Inventory.Insert(ctx, p.draft(replicate))
		switch {
		case errors.Is(err, apperror.ErrDuplicate):
			fmt.Fprintf(out, "product %s exists, skipped\n", p.id)
		case errors.Is(err, apperror.ErrDoesNotFit), errors.Is(err, apperror.ErrNotFound):
			fmt.Fprintf(out, "product %s skipped: %v\n", p.id, err)
		case err != nil:
			return fmt.Errorf("insert product %s: %w", p.id, err)
		default:
			inserted += len(records)
		}
	}
	fmt.Fprintf(out, "Inserted %d products\n", inserted)
	return nil
}

// Execute runs the seed CLI against the configured storage.
func Execute(ctx context.Context) error {
	return NewRootCommand(OpenFromConfig).ExecuteContext(ctx)
}
