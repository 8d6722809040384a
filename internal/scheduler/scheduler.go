package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/config"
	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/service/reporting"
	"github.com/mamadbah2/inventory/pkg/clients/webhook"
)

const runTimeout = 2 * time.Minute

// Snapshotter produces a utilization report.
type Snapshotter interface {
	Snapshot(ctx context.Context) (models.UtilizationReport, error)
}

// Sink receives a finished report.
type Sink interface {
	Name() string
	Publish(ctx context.Context, report models.UtilizationReport) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	reports  Snapshotter
	sinks    []Sink
	logger   *zap.Logger
}

// NewScheduler creates a scheduler that runs the utilization report on the
// configured cron schedule, in the configured timezone.
func NewScheduler(cfg config.ReportingConfig, reports Snapshotter, sinks []Sink, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: cfg.CronSchedule,
		reports:  reports,
		sinks:    sinks,
		logger:   logger,
	}, nil
}

// Start registers the report job and starts the cron loop.
func (s *Scheduler) Start() error {
	if len(s.sinks) == 0 {
		s.logger.Info("no report sinks configured, scheduler idle")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runReport); err != nil {
		return fmt.Errorf("schedule utilization report: %w", err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.Int("sinks", len(s.sinks)))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runReport() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if err := s.Deliver(ctx); err != nil {
		s.logger.Error("failed to generate utilization report", zap.Error(err))
	}
}

// Deliver builds one report and hands it to every sink. A failing sink is
// logged and does not stop the others; only a failed snapshot is returned.
func (s *Scheduler) Deliver(ctx context.Context) error {
	s.logger.Info("generating utilization report")

	report, err := s.reports.Snapshot(ctx)
	if err != nil {
		return err
	}

	for _, sink := range s.sinks {
		if err := sink.Publish(ctx, report); err != nil {
			s.logger.Error("failed to publish report", zap.String("sink", sink.Name()), zap.Error(err))
			continue
		}
		s.logger.Info("report published", zap.String("sink", sink.Name()))
	}
	return nil
}

// WebhookSink posts the formatted report and its data to a webhook.
type WebhookSink struct {
	client *webhook.Client
}

// NewWebhookSink wraps a webhook client as a report sink.
func NewWebhookSink(client *webhook.Client) *WebhookSink {
	return &WebhookSink{client: client}
}

func (w *WebhookSink) Name() string { return "webhook" }

func (w *WebhookSink) Publish(ctx context.Context, report models.UtilizationReport) error {
	return w.client.Send(ctx, webhook.Message{
		Event: "utilization.report",
		Text:  reporting.Format(report),
		Data:  report,
	})
}
