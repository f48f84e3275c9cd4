package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportSummary_TableName(t *testing.T) {
	s := ReportSummary{}
	assert.Equal(t, "analysis_reports", s.TableName())
}

func TestNewReportSummary(t *testing.T) {
	now := time.Now()
	env := &ReportEnvelope{
		RunID:       "6f1c1c1e-9a57-4a43-8f3c-1b1a8d0e2f10",
		GeneratedAt: now,
		Report: &AnalysisReport{
			Path:          "access.log",
			TotalRequests: 10,
			Stats: Stats{
				Clients: ClientStats{TotalUniqueIP: 4},
				Responses: ResponseStats{
					StatusCodeClassesRate: []StatusClassStat{
						{Class: StatusClass5xx, Total: 1, Percent: 10},
						{Class: StatusClass4xx, Total: 3, Percent: 30},
						{Class: StatusClass2xx, Total: 6, Percent: 60},
					},
				},
				Metadatas: MetadataStats{BotRate: BotStat{Total: 2, Percent: 20}},
			},
		},
	}

	s := NewReportSummary(env, true)

	assert.Equal(t, env.RunID, s.RunID)
	assert.Equal(t, "access.log", s.Path)
	assert.Equal(t, 10, s.TotalRequests)
	assert.Equal(t, 4, s.UniqueIPs)
	assert.Equal(t, 2, s.BotRequests)
	assert.Equal(t, 4, s.ErrorRequests)
	assert.True(t, s.Filtered)
	assert.Equal(t, now, s.CreatedAt)
}

func TestAnalysisReport_JSONShape(t *testing.T) {
	report := &AnalysisReport{Path: "access.log"}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.NotContains(t, decoded, "analysis", "analysis block is only present in detailed reports")
	stats, ok := decoded["stats"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, stats, "clients")
	assert.Contains(t, stats, "requests")
	assert.Contains(t, stats, "responses")
	assert.Contains(t, stats, "metadatas")

	clients := stats["clients"].(map[string]interface{})
	assert.NotContains(t, clients, "country_rate")
}

func TestStatEntries_NullKey(t *testing.T) {
	data, err := json.Marshal(OSStat{OS: nil, Total: 2, Percent: 100})
	require.NoError(t, err)
	assert.JSONEq(t, `{"os":null,"total":2,"percent":100}`, string(data))
}
