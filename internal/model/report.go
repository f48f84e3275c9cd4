package model

import (
	"time"
)

// AnalysisReport is the result of analysing one access log file
type AnalysisReport struct {
	Path          string        `json:"path"`
	Analysis      *AnalysisInfo `json:"analysis,omitempty"`
	TotalRequests int           `json:"total_requests"`
	Stats         Stats         `json:"stats"`
}

// AnalysisInfo describes how the report was produced. Only present in detailed reports.
type AnalysisInfo struct {
	Filter       FilterDescription `json:"filter"`
	LinesRead    int               `json:"lines_read"`
	LinesSkipped int               `json:"lines_skipped"`
	GeneratedAt  time.Time         `json:"generated_at"`
}

// FilterDescription echoes the active filter, null for absent constraints
type FilterDescription struct {
	StatusCode    *int       `json:"status_code"`
	Timestamp     *time.Time `json:"timestamp"`
	ClientIP      *string    `json:"client_ip"`
	RequestMethod *string    `json:"request_method"`
}

// Stats groups the statistics of a report
type Stats struct {
	Clients   ClientStats   `json:"clients"`
	Requests  RequestStats  `json:"requests"`
	Responses ResponseStats `json:"responses"`
	Metadatas MetadataStats `json:"metadatas"`
}

// ClientStats represents statistics related to clients
type ClientStats struct {
	TotalUniqueIP int           `json:"total_unique_ip"`
	TopIPs        []IPStat      `json:"top_ips"`
	CountryRate   []CountryStat `json:"country_rate,omitempty"`
}

// RequestStats represents statistics related to requests
type RequestStats struct {
	HTTPMethodRate []MethodStat `json:"http_method_rate"`
	TopURLs        []URLStat    `json:"top_urls"`
}

// ResponseStats represents statistics related to responses
type ResponseStats struct {
	StatusCodeRate        []StatusCodeStat  `json:"status_code_rate"`
	StatusCodeClassesRate []StatusClassStat `json:"status_code_classes_rate"`
}

// MetadataStats represents statistics derived from referer and user agent
type MetadataStats struct {
	OSRate         []OSStat      `json:"os_rate"`
	BrowserRate    []BrowserStat `json:"browser_rate"`
	TypeDeviceRate []DeviceStat  `json:"type_device_rate"`
	BotRate        BotStat       `json:"bot_rate"`
}

// IPStat represents request count for a client IP
type IPStat struct {
	IP      *string `json:"ip"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// URLStat represents request count for a URL
type URLStat struct {
	URL     *string `json:"url"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// MethodStat represents request count for an HTTP method
type MethodStat struct {
	Method  *string `json:"method"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// StatusCodeStat represents request count for a status code
type StatusCodeStat struct {
	Code    *int    `json:"code"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// StatusClassStat represents request count for a status class
type StatusClassStat struct {
	Class   string  `json:"class"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// OSStat represents request count for an OS family
type OSStat struct {
	OS      *string `json:"os"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// BrowserStat represents request count for a browser family
type BrowserStat struct {
	Browser *string `json:"browser"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// DeviceStat represents request count for a device type
type DeviceStat struct {
	TypeDevice *string `json:"type_device"`
	Total      int     `json:"total"`
	Percent    float64 `json:"percent"`
}

// CountryStat represents request count for a client country
type CountryStat struct {
	Country *string `json:"country"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// BotStat represents the share of requests issued by bots
type BotStat struct {
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// ReportEnvelope wraps a report with its run identity for the report sinks
type ReportEnvelope struct {
	RunID       string          `json:"run_id" msgpack:"run_id"`
	GeneratedAt time.Time       `json:"generated_at" msgpack:"generated_at"`
	Report      *AnalysisReport `json:"report" msgpack:"report"`
}
