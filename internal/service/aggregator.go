package service

import (
	"sort"

	"logscope/internal/classifier"
	"logscope/internal/model"

	"github.com/rs/zerolog/log"
)

// Aggregator computes statistics over one fixed, filtered record slice
type Aggregator struct {
	records    []*model.LogRecord
	classifier classifier.Classifier
	// memo holds one classification per distinct user agent
	memo map[string]classifier.Classification
}

// NewAggregator creates an Aggregator over records. Records are not copied
// and must not change while the Aggregator is in use.
func NewAggregator(records []*model.LogRecord, c classifier.Classifier) *Aggregator {
	return &Aggregator{
		records:    records,
		classifier: c,
		memo:       make(map[string]classifier.Classification),
	}
}

// TotalRequests returns the number of records
func (a *Aggregator) TotalRequests() int {
	return len(a.records)
}

// TotalUniqueIP returns the number of distinct client IPs
func (a *Aggregator) TotalUniqueIP() int {
	return CountBy(a.records, clientIP).Distinct()
}

// TopIPs returns the n client IPs with the most requests
func (a *Aggregator) TopIPs(n int) []Rate[string] {
	return CountBy(a.records, clientIP).Top(n)
}

// HTTPMethodRate returns the share of each HTTP method
func (a *Aggregator) HTTPMethodRate() []Rate[string] {
	return CountBy(a.records, func(r *model.LogRecord) (string, bool) {
		return deref(r.Request.Method)
	}).Rates()
}

// TopURLs returns the n most requested URLs
func (a *Aggregator) TopURLs(n int) []Rate[string] {
	return CountBy(a.records, func(r *model.LogRecord) (string, bool) {
		return deref(r.Request.URL)
	}).Top(n)
}

// StatusCodeRate returns the share of each status code, ascending by code.
// Records logged without a status code come last.
func (a *Aggregator) StatusCodeRate() []Rate[int] {
	rates := CountBy(a.records, func(r *model.LogRecord) (int, bool) {
		return deref(r.Response.StatusCode)
	}).Rates()
	sort.SliceStable(rates, func(i, j int) bool {
		if rates[i].Valid != rates[j].Valid {
			return rates[i].Valid
		}
		return rates[i].Value < rates[j].Value
	})
	return rates
}

// StatusClassRate returns the share of each status class, descending by
// label so 5xx comes first. The unknown class comes last.
func (a *Aggregator) StatusClassRate() []Rate[string] {
	rates := CountBy(a.records, func(r *model.LogRecord) (string, bool) {
		return r.Response.StatusClass(), true
	}).Rates()
	sort.SliceStable(rates, func(i, j int) bool {
		iu := rates[i].Value == model.StatusClassUnknown
		ju := rates[j].Value == model.StatusClassUnknown
		if iu != ju {
			return ju
		}
		return rates[i].Value > rates[j].Value
	})
	return rates
}

// OSRate returns the share of each OS family
func (a *Aggregator) OSRate() []Rate[string] {
	return CountBy(a.records, func(r *model.LogRecord) (string, bool) {
		c, ok := a.classify(r)
		return c.OS, ok
	}).Rates()
}

// BrowserRate returns the share of each browser family
func (a *Aggregator) BrowserRate() []Rate[string] {
	return CountBy(a.records, func(r *model.LogRecord) (string, bool) {
		c, ok := a.classify(r)
		return c.Browser, ok
	}).Rates()
}

// DeviceTypeRate returns the share of each device type
func (a *Aggregator) DeviceTypeRate() []Rate[string] {
	return CountBy(a.records, func(r *model.LogRecord) (string, bool) {
		c, ok := a.classify(r)
		return c.DeviceType, ok
	}).Rates()
}

// BotRate returns how many records come from bots and their share.
// Records without a user agent are not bots.
func (a *Aggregator) BotRate() (total int, pct float64) {
	counts := CountBy(a.records, func(r *model.LogRecord) (bool, bool) {
		c, ok := a.classify(r)
		return ok && c.IsBot, true
	})
	for _, rate := range counts.Rates() {
		if rate.Value {
			return rate.Total, rate.Percent
		}
	}
	return 0, 0
}

// CountryRate returns the share of each client country. IPs the resolver
// cannot place fall into the absent bucket.
func (a *Aggregator) CountryRate(resolver CountryResolver) []Rate[string] {
	cache := make(map[string]string)
	return CountBy(a.records, func(r *model.LogRecord) (string, bool) {
		ip, ok := deref(r.Client.ClientIP)
		if !ok {
			return "", false
		}
		country, seen := cache[ip]
		if !seen {
			var err error
			country, err = resolver.Country(ip)
			if err != nil {
				log.Debug().Err(err).Str("ip", ip).Msg("Failed to resolve country")
				country = ""
			}
			cache[ip] = country
		}
		return country, country != ""
	}).Rates()
}

// classify returns the classification of the record's user agent, computing
// it at most once per distinct agent. ok is false when no agent was logged.
func (a *Aggregator) classify(r *model.LogRecord) (classifier.Classification, bool) {
	ua, ok := deref(r.Metadata.UserAgent)
	if !ok || a.classifier == nil {
		return classifier.Classification{}, false
	}
	if c, seen := a.memo[ua]; seen {
		return c, true
	}
	c := a.classifier.Classify(ua)
	a.memo[ua] = c
	return c, true
}

func clientIP(r *model.LogRecord) (string, bool) {
	return deref(r.Client.ClientIP)
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
