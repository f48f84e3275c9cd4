package model

import (
	"time"
)

// ReportSummary represents one analysis run stored in MySQL
type ReportSummary struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	RunID         string    `json:"run_id" gorm:"type:varchar(36);uniqueIndex;not null"`
	Path          string    `json:"path" gorm:"type:varchar(1024);not null"`
	TotalRequests int       `json:"total_requests"`
	UniqueIPs     int       `json:"unique_ips"`
	BotRequests   int       `json:"bot_requests"`
	ErrorRequests int       `json:"error_requests" gorm:"comment:4xx and 5xx responses"`
	Filtered      bool      `json:"filtered"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for ReportSummary
func (ReportSummary) TableName() string {
	return "analysis_reports"
}

// NewReportSummary builds the summary row of an envelope
func NewReportSummary(env *ReportEnvelope, filtered bool) *ReportSummary {
	r := env.Report
	errorRequests := 0
	for _, c := range r.Stats.Responses.StatusCodeClassesRate {
		if c.Class == StatusClass4xx || c.Class == StatusClass5xx {
			errorRequests += c.Total
		}
	}
	return &ReportSummary{
		RunID:         env.RunID,
		Path:          r.Path,
		TotalRequests: r.TotalRequests,
		UniqueIPs:     r.Stats.Clients.TotalUniqueIP,
		BotRequests:   r.Stats.Metadatas.BotRate.Total,
		ErrorRequests: errorRequests,
		Filtered:      filtered,
		CreatedAt:     env.GeneratedAt,
	}
}
