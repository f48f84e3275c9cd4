package filter

import (
	"testing"
	"time"

	"logscope/internal/model"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func newRecord(ip, method string, status int, ts time.Time) *model.LogRecord {
	return &model.LogRecord{
		Client:   model.ClientInfo{ClientIP: strPtr(ip)},
		Request:  model.RequestInfo{Method: strPtr(method), Timestamp: &ts},
		Response: model.ResponseInfo{StatusCode: intPtr(status)},
	}
}

func TestFilter_Passes(t *testing.T) {
	ts := time.Date(2023, time.October, 10, 13, 55, 36, 0, time.UTC)
	rec := newRecord("10.0.0.1", "GET", 200, ts)
	sameInstant := ts.In(time.FixedZone("CEST", 2*3600))

	tests := []struct {
		name     string
		filter   *Filter
		record   *model.LogRecord
		expected bool
	}{
		{name: "nil filter", filter: nil, record: rec, expected: true},
		{name: "empty filter", filter: &Filter{}, record: rec, expected: true},
		{name: "matching status", filter: &Filter{StatusCode: intPtr(200)}, record: rec, expected: true},
		{name: "other status", filter: &Filter{StatusCode: intPtr(404)}, record: rec, expected: false},
		{name: "matching ip", filter: &Filter{ClientIP: strPtr("10.0.0.1")}, record: rec, expected: true},
		{name: "other ip", filter: &Filter{ClientIP: strPtr("10.0.0.2")}, record: rec, expected: false},
		{name: "matching method", filter: &Filter{Method: strPtr("GET")}, record: rec, expected: true},
		{name: "other method", filter: &Filter{Method: strPtr("POST")}, record: rec, expected: false},
		{name: "same instant other zone", filter: &Filter{Timestamp: &sameInstant}, record: rec, expected: true},
		{
			name:     "calendar date only does not match",
			filter:   &Filter{Timestamp: timePtr(time.Date(2023, time.October, 10, 0, 0, 0, 0, time.UTC))},
			record:   rec,
			expected: false,
		},
		{
			name: "all constraints match",
			filter: &Filter{
				StatusCode: intPtr(200),
				Timestamp:  &ts,
				ClientIP:   strPtr("10.0.0.1"),
				Method:     strPtr("GET"),
			},
			record:   rec,
			expected: true,
		},
		{
			name: "one constraint of many fails",
			filter: &Filter{
				StatusCode: intPtr(200),
				ClientIP:   strPtr("10.0.0.1"),
				Method:     strPtr("DELETE"),
			},
			record:   rec,
			expected: false,
		},
		{name: "absent status never matches a status constraint", filter: &Filter{StatusCode: intPtr(200)}, record: &model.LogRecord{}, expected: false},
		{name: "absent timestamp never matches", filter: &Filter{Timestamp: &ts}, record: &model.LogRecord{}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Passes(tt.record))
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestFilter_Apply(t *testing.T) {
	ts := time.Date(2023, time.October, 10, 13, 55, 36, 0, time.UTC)
	records := []*model.LogRecord{
		newRecord("10.0.0.1", "GET", 200, ts),
		newRecord("10.0.0.2", "POST", 201, ts),
		newRecord("10.0.0.1", "GET", 404, ts),
	}

	t.Run("keeps order", func(t *testing.T) {
		got := (&Filter{ClientIP: strPtr("10.0.0.1")}).Apply(records)
		assert.Equal(t, []*model.LogRecord{records[0], records[2]}, got)
	})

	t.Run("empty filter passes every record", func(t *testing.T) {
		assert.Equal(t, records, (&Filter{}).Apply(records))
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		got := (&Filter{Method: strPtr("DELETE")}).Apply(records)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestFilter_Describe(t *testing.T) {
	var nilFilter *Filter
	assert.Equal(t, model.FilterDescription{}, nilFilter.Describe())
	assert.True(t, nilFilter.IsEmpty())

	f := &Filter{StatusCode: intPtr(404), Method: strPtr("GET")}
	d := f.Describe()
	assert.False(t, f.IsEmpty())
	assert.Equal(t, 404, *d.StatusCode)
	assert.Equal(t, "GET", *d.RequestMethod)
	assert.Nil(t, d.ClientIP)
	assert.Nil(t, d.Timestamp)
}
