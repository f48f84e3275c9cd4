package mq

import (
	"time"

	"logscope/internal/model"
)

// ReportTag tags every report message
const ReportTag = "analysis_report"

// ReportMessage announces a finished analysis run
type ReportMessage struct {
	RunID         string    `json:"run_id"`
	Path          string    `json:"path"`
	OutputPath    string    `json:"output_path"`
	TotalRequests int       `json:"total_requests"`
	UniqueIPs     int       `json:"unique_ips"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// NewReportMessage builds the message announcing env, written to outputPath
func NewReportMessage(env *model.ReportEnvelope, outputPath string) *ReportMessage {
	return &ReportMessage{
		RunID:         env.RunID,
		Path:          env.Report.Path,
		OutputPath:    outputPath,
		TotalRequests: env.Report.TotalRequests,
		UniqueIPs:     env.Report.Stats.Clients.TotalUniqueIP,
		GeneratedAt:   env.GeneratedAt,
	}
}
