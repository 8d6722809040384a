package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/inventory/internal/config"
	"github.com/mamadbah2/inventory/internal/domain/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// ReportExporter appends utilization reports to a Google spreadsheet, one row per unit.
type ReportExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewReportExporter builds a Sheets backed exporter. Extra client options are
// appended after the credentials file, when one is configured.
func NewReportExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger, opts ...option.ClientOption) (*ReportExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id must not be empty")
	}
	if cfg.Range == "" {
		return nil, fmt.Errorf("sheet range must not be empty")
	}

	clientOpts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}
	if cfg.CredentialsPath != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsPath))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := sheetsapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &ReportExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.Range,
		logger:        logger,
	}, nil
}

// Name identifies the sink in logs.
func (e *ReportExporter) Name() string { return "sheets" }

// Publish appends every unit row of the report in a single call.
func (e *ReportExporter) Publish(ctx context.Context, report models.UtilizationReport) error {
	rows := reportRows(report)
	if len(rows) == 0 {
		e.logger.Debug("empty report, nothing to export")
		return nil
	}

	payload := &sheetsapi.ValueRange{Values: rows}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, e.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append rows into range %s: %w", e.sheetRange, err)
	}

	e.logger.Debug("report appended to sheet", zap.String("range", e.sheetRange), zap.Int("rows", len(rows)))
	return nil
}

// reportRows lays out columns A:I as
// timestamp, unit id, unit name, volume, used, free, utilization %, records, gain.
func reportRows(report models.UtilizationReport) [][]interface{} {
	stamp := report.GeneratedAt.UTC().Format(timestampLayout)

	rows := make([][]interface{}, 0, len(report.Units))
	for _, u := range report.Units {
		rows = append(rows, []interface{}{
			stamp,
			u.UnitID,
			u.UnitName,
			u.Volume,
			u.Used,
			u.Free,
			u.Utilization,
			u.Records,
			u.TotalGain,
		})
	}
	return rows
}
