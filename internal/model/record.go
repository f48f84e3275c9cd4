package model

import (
	"time"
)

// Status classes reported in the status class rate table
const (
	StatusClass1xx     = "1xx"
	StatusClass2xx     = "2xx"
	StatusClass3xx     = "3xx"
	StatusClass4xx     = "4xx"
	StatusClass5xx     = "5xx"
	StatusClassUnknown = "unknown"
)

// ClientInfo represents who issued the request
type ClientInfo struct {
	ClientIP   *string `json:"client_ip"`
	RFCID      *string `json:"rfc_id"`
	RemoteUser *string `json:"remote_user"`
}

// RequestInfo represents the request line and its timestamp
type RequestInfo struct {
	Method    *string    `json:"method"`
	URL       *string    `json:"url"`
	Protocol  *string    `json:"protocol"`
	Timestamp *time.Time `json:"timestamp"`
}

// ResponseInfo represents what the server answered
type ResponseInfo struct {
	StatusCode   *int   `json:"status_code"`
	ResponseSize *int64 `json:"response_size"`
}

// StatusClass returns the class of the status code, or StatusClassUnknown
// when the code was logged as "-".
func (r ResponseInfo) StatusClass() string {
	if r.StatusCode == nil {
		return StatusClassUnknown
	}
	code := *r.StatusCode
	switch {
	case code >= 500:
		return StatusClass5xx
	case code >= 400:
		return StatusClass4xx
	case code >= 300:
		return StatusClass3xx
	case code >= 200:
		return StatusClass2xx
	default:
		return StatusClass1xx
	}
}

// MetadataInfo holds the referer and the raw user agent.
// The user agent is classified later and only for records that need it.
type MetadataInfo struct {
	Referer   *string `json:"referer"`
	UserAgent *string `json:"user_agent"`
}

// LogRecord represents one parsed access log line
type LogRecord struct {
	Line     int          `json:"line"`
	Client   ClientInfo   `json:"client"`
	Request  RequestInfo  `json:"request"`
	Response ResponseInfo `json:"response"`
	Metadata MetadataInfo `json:"metadata"`
}

// LogFile represents a parsed access log file
type LogFile struct {
	Path         string
	Records      []*LogRecord
	LinesRead    int
	LinesSkipped int
}

// NewLogFile creates an empty LogFile for the given path
func NewLogFile(path string) *LogFile {
	return &LogFile{Path: path}
}

// Add appends a record, keeping file order
func (f *LogFile) Add(r *LogRecord) {
	f.Records = append(f.Records, r)
}

// Len returns the number of records
func (f *LogFile) Len() int {
	return len(f.Records)
}
