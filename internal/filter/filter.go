package filter

import (
	"time"

	"logscope/internal/model"
)

// Filter selects records by equality on up to four fields.
// A nil constraint matches anything.
type Filter struct {
	StatusCode *int
	Timestamp  *time.Time
	ClientIP   *string
	Method     *string
}

// IsEmpty reports whether no constraint is set
func (f *Filter) IsEmpty() bool {
	return f == nil || (f.StatusCode == nil && f.Timestamp == nil && f.ClientIP == nil && f.Method == nil)
}

// Passes reports whether the record satisfies every present constraint.
// Timestamps are compared as instants.
func (f *Filter) Passes(r *model.LogRecord) bool {
	if f == nil {
		return true
	}
	if f.StatusCode != nil {
		if r.Response.StatusCode == nil || *r.Response.StatusCode != *f.StatusCode {
			return false
		}
	}
	if f.Timestamp != nil {
		if r.Request.Timestamp == nil || !r.Request.Timestamp.Equal(*f.Timestamp) {
			return false
		}
	}
	if f.ClientIP != nil {
		if r.Client.ClientIP == nil || *r.Client.ClientIP != *f.ClientIP {
			return false
		}
	}
	if f.Method != nil {
		if r.Request.Method == nil || *r.Request.Method != *f.Method {
			return false
		}
	}
	return true
}

// Apply returns the records that pass, in their original order
func (f *Filter) Apply(records []*model.LogRecord) []*model.LogRecord {
	passed := make([]*model.LogRecord, 0, len(records))
	for _, r := range records {
		if f.Passes(r) {
			passed = append(passed, r)
		}
	}
	return passed
}

// Describe echoes the filter for detailed reports
func (f *Filter) Describe() model.FilterDescription {
	if f == nil {
		return model.FilterDescription{}
	}
	return model.FilterDescription{
		StatusCode:    f.StatusCode,
		Timestamp:     f.Timestamp,
		ClientIP:      f.ClientIP,
		RequestMethod: f.Method,
	}
}
