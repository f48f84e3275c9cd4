package service

import (
	"context"

	"logscope/internal/model"
	"logscope/internal/mq"
)

// CountryResolver maps a client IP to a country code (for testing)
type CountryResolver interface {
	Country(ip string) (string, error)
}

// ReportCacheInterface defines the report cache operations used by publishing (for testing)
type ReportCacheInterface interface {
	SaveReport(ctx context.Context, env *model.ReportEnvelope) error
}

// SummaryRepositoryInterface defines the summary storage operations used by publishing (for testing)
type SummaryRepositoryInterface interface {
	SaveSummary(ctx context.Context, summary *model.ReportSummary) error
}

// ReportProducerInterface defines the message operations used by publishing (for testing)
type ReportProducerInterface interface {
	SendReport(ctx context.Context, msg *mq.ReportMessage) error
}
