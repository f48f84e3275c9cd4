package parser

import (
	"strconv"
	"time"

	"logscope/internal/model"
)

// TimestampLayout is the layout of the bracketed access log timestamp
const TimestampLayout = "02/Jan/2006:15:04:05 -0700"

// absentToken is what servers log in place of a missing value
const absentToken = "-"

// RecordBuilder converts RawFields into typed records
type RecordBuilder struct {
	layout string
}

// NewRecordBuilder creates a new RecordBuilder
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{layout: TimestampLayout}
}

// Build converts raw fields into a LogRecord. The text argument is the
// original line, used for error context only.
func (b *RecordBuilder) Build(raw RawFields, text string) (*model.LogRecord, error) {
	ts, err := b.timestamp(raw.Timestamp)
	if err != nil {
		return nil, malformedField(ErrMalformedTimestamp, "timestamp", text, err)
	}

	status, err := optionalInt(raw.Status, 31)
	if err != nil {
		return nil, malformedField(ErrMalformedField, "status", text, err)
	}

	size, err := optionalInt(raw.Size, 63)
	if err != nil {
		return nil, malformedField(ErrMalformedField, "size", text, err)
	}

	rec := &model.LogRecord{
		Client: model.ClientInfo{
			ClientIP:   optionalString(raw.IP),
			RFCID:      optionalString(raw.RFC),
			RemoteUser: optionalString(raw.User),
		},
		Request: model.RequestInfo{
			Method:    optionalString(raw.Method),
			URL:       optionalString(raw.URL),
			Protocol:  optionalString(raw.Protocol),
			Timestamp: ts,
		},
		Metadata: model.MetadataInfo{
			Referer:   optionalString(raw.Referer),
			UserAgent: optionalString(raw.UserAgent),
		},
	}
	if status != nil {
		code := int(*status)
		rec.Response.StatusCode = &code
	}
	rec.Response.ResponseSize = size

	return rec, nil
}

func (b *RecordBuilder) timestamp(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(b.layout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// optionalInt parses a non-negative integer token; "-" yields nil
func optionalInt(s string, bitSize int) (*int64, error) {
	if s == absentToken {
		return nil, nil
	}
	u, err := strconv.ParseUint(s, 10, bitSize)
	if err != nil {
		return nil, err
	}
	v := int64(u)
	return &v, nil
}

// optionalString maps empty captures and "-" to nil
func optionalString(s string) *string {
	if s == "" || s == absentToken {
		return nil
	}
	return &s
}
