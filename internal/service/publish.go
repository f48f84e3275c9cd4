package service

import (
	"context"
	"time"

	"logscope/internal/model"
	"logscope/internal/mq"
	"logscope/pkg/util"

	"github.com/rs/zerolog/log"
)

// PublishService hands finished reports to the optional sinks. A sink
// failure is logged and never fails the run.
type PublishService struct {
	cache     ReportCacheInterface
	summaries SummaryRepositoryInterface
	producer  ReportProducerInterface
	newRunID  func() string
	now       func() time.Time
}

// NewPublishService creates a new Publish Service. Any sink may be nil.
func NewPublishService(cache ReportCacheInterface, summaries SummaryRepositoryInterface, producer ReportProducerInterface) *PublishService {
	return &PublishService{
		cache:     cache,
		summaries: summaries,
		producer:  producer,
		newRunID:  util.GenerateRunID,
		now:       time.Now,
	}
}

// Enabled reports whether at least one sink is configured
func (ps *PublishService) Enabled() bool {
	return ps.cache != nil || ps.summaries != nil || ps.producer != nil
}

// Envelope wraps a report with a fresh run ID
func (ps *PublishService) Envelope(report *model.AnalysisReport) *model.ReportEnvelope {
	generatedAt := ps.now().UTC()
	if report.Analysis != nil && !report.Analysis.GeneratedAt.IsZero() {
		generatedAt = report.Analysis.GeneratedAt
	}
	return &model.ReportEnvelope{
		RunID:       ps.newRunID(),
		GeneratedAt: generatedAt,
		Report:      report,
	}
}

// Publish sends env to every configured sink and returns how many accepted it
func (ps *PublishService) Publish(ctx context.Context, env *model.ReportEnvelope, outputPath string, filtered bool) int {
	published := 0

	if ps.cache != nil {
		if err := ps.cache.SaveReport(ctx, env); err != nil {
			log.Warn().Err(err).Str("run_id", env.RunID).Msg("Failed to cache report in Redis")
		} else {
			published++
		}
	}

	if ps.summaries != nil {
		if err := ps.summaries.SaveSummary(ctx, model.NewReportSummary(env, filtered)); err != nil {
			log.Warn().Err(err).Str("run_id", env.RunID).Msg("Failed to save report summary to MySQL")
		} else {
			published++
		}
	}

	if ps.producer != nil {
		if err := ps.producer.SendReport(ctx, mq.NewReportMessage(env, outputPath)); err != nil {
			log.Warn().Err(err).Str("run_id", env.RunID).Msg("Failed to send report message")
		} else {
			published++
		}
	}

	log.Debug().
		Str("run_id", env.RunID).
		Int("sinks", published).
		Msg("Report published")

	return published
}
