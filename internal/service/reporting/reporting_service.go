package reporting

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/service/inventory"
)

const (
	dateLayout = "2006-01-02 15:04"
	maxWorkers = 4
)

// UnitLister lists registered units.
type UnitLister interface {
	List(ctx context.Context) ([]models.Unit, error)
}

// StockReader reads per-unit occupancy and records.
type StockReader interface {
	Usage(ctx context.Context, unitID string) (inventory.Usage, error)
	ListInUnit(ctx context.Context, unitID string) ([]models.StockRecord, error)
}

// Service builds utilization reports across every unit.
type Service struct {
	units  UnitLister
	stock  StockReader
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(units UnitLister, stock StockReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{units: units, stock: stock, now: time.Now, logger: logger}
}

// Snapshot computes occupancy and gain per unit. Units are read concurrently;
// the first failure cancels the rest.
func (s *Service) Snapshot(ctx context.Context) (models.UtilizationReport, error) {
	units, err := s.units.List(ctx)
	if err != nil {
		return models.UtilizationReport{}, fmt.Errorf("list units: %w", err)
	}

	rows := make([]models.UnitUtilization, len(units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for i, unit := range units {
		i, unit := i, unit
		g.Go(func() error {
			row, err := s.unitRow(gctx, unit)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.UtilizationReport{}, err
	}

	report := models.UtilizationReport{GeneratedAt: s.now().UTC(), Units: rows}
	volume, used, gain := decimal.Zero, decimal.Zero, decimal.Zero
	for _, row := range rows {
		volume = volume.Add(decimal.NewFromFloat(row.Volume))
		used = used.Add(decimal.NewFromFloat(row.Used))
		gain = gain.Add(decimal.NewFromFloat(row.TotalGain))
	}
	report.TotalVolume = volume.InexactFloat64()
	report.TotalUsed = used.InexactFloat64()
	report.TotalGain = gain.InexactFloat64()

	s.logger.Debug("utilization snapshot built", zap.Int("units", len(rows)))
	return report, nil
}

func (s *Service) unitRow(ctx context.Context, unit models.Unit) (models.UnitUtilization, error) {
	usage, err := s.stock.Usage(ctx, unit.ID)
	if err != nil {
		return models.UnitUtilization{}, fmt.Errorf("usage of unit %s: %w", unit.ID, err)
	}
	records, err := s.stock.ListInUnit(ctx, unit.ID)
	if err != nil {
		return models.UnitUtilization{}, fmt.Errorf("records of unit %s: %w", unit.ID, err)
	}

	row := models.UnitUtilization{
		UnitID:   unit.ID,
		UnitName: unit.Name,
		Volume:   unit.Volume,
		Used:     usage.Used,
		Free:     usage.Free,
		Records:  len(records),
	}
	if unit.Volume > 0 {
		row.Utilization = math.Round(usage.Used/unit.Volume*10000) / 100
	}

	gain := decimal.Zero
	for _, r := range records {
		row.TotalQuantity += r.Quantity
		row.TotalSold += r.SoldQuantity
		gain = gain.Add(decimal.NewFromFloat(r.UnitGain))
	}
	row.TotalGain = gain.InexactFloat64()
	return row, nil
}

// Format renders a report as a short plain-text summary.
func Format(report models.UtilizationReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Utilization report (%s UTC)\n", report.GeneratedAt.Format(dateLayout))

	if len(report.Units) == 0 {
		b.WriteString("No units registered.")
		return b.String()
	}

	for _, u := range report.Units {
		fmt.Fprintf(&b, "- %s (%s): %.2f/%.2f used (%.2f%%), %d products, %d in stock, %d sold, gain %.2f\n",
			u.UnitName, u.UnitID, u.Used, u.Volume, u.Utilization, u.Records, u.TotalQuantity, u.TotalSold, u.TotalGain)
	}
	fmt.Fprintf(&b, "Total: %.2f/%.2f used, gain %.2f", report.TotalUsed, report.TotalVolume, report.TotalGain)
	return b.String()
}
