package service

import (
	"time"

	"logscope/internal/classifier"
	"logscope/internal/filter"
	"logscope/internal/model"

	"github.com/rs/zerolog/log"
)

// DefaultTopN is the size of the top IP and top URL rankings
const DefaultTopN = 3

// AnalysisService assembles analysis reports
type AnalysisService struct {
	classifier classifier.Classifier
	countries  CountryResolver
	topN       int
	now        func() time.Time
}

// NewAnalysisService creates a new Analysis Service. countries may be nil,
// in which case the report has no country rate table.
func NewAnalysisService(c classifier.Classifier, countries CountryResolver, topN int) *AnalysisService {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &AnalysisService{
		classifier: c,
		countries:  countries,
		topN:       topN,
		now:        time.Now,
	}
}

// Analyze filters the file once and computes every statistic over the result
func (s *AnalysisService) Analyze(file *model.LogFile, f *filter.Filter, detailed bool) *model.AnalysisReport {
	records := f.Apply(file.Records)
	agg := NewAggregator(records, s.classifier)

	log.Debug().
		Str("path", file.Path).
		Int("records", file.Len()).
		Int("filtered", len(records)).
		Msg("Analysing records")

	report := &model.AnalysisReport{
		Path:          file.Path,
		TotalRequests: agg.TotalRequests(),
	}
	if detailed {
		report.Analysis = &model.AnalysisInfo{
			Filter:       f.Describe(),
			LinesRead:    file.LinesRead,
			LinesSkipped: file.LinesSkipped,
			GeneratedAt:  s.now(),
		}
	}

	report.Stats.Clients = model.ClientStats{
		TotalUniqueIP: agg.TotalUniqueIP(),
		TopIPs: convert(agg.TopIPs(s.topN), func(r Rate[string]) model.IPStat {
			return model.IPStat{IP: r.Ptr(), Total: r.Total, Percent: r.Percent}
		}),
	}
	if s.countries != nil {
		report.Stats.Clients.CountryRate = convert(agg.CountryRate(s.countries), func(r Rate[string]) model.CountryStat {
			return model.CountryStat{Country: r.Ptr(), Total: r.Total, Percent: r.Percent}
		})
	}

	report.Stats.Requests = model.RequestStats{
		HTTPMethodRate: convert(agg.HTTPMethodRate(), func(r Rate[string]) model.MethodStat {
			return model.MethodStat{Method: r.Ptr(), Total: r.Total, Percent: r.Percent}
		}),
		TopURLs: convert(agg.TopURLs(s.topN), func(r Rate[string]) model.URLStat {
			return model.URLStat{URL: r.Ptr(), Total: r.Total, Percent: r.Percent}
		}),
	}

	report.Stats.Responses = model.ResponseStats{
		StatusCodeRate: convert(agg.StatusCodeRate(), func(r Rate[int]) model.StatusCodeStat {
			return model.StatusCodeStat{Code: r.Ptr(), Total: r.Total, Percent: r.Percent}
		}),
		StatusCodeClassesRate: convert(agg.StatusClassRate(), func(r Rate[string]) model.StatusClassStat {
			return model.StatusClassStat{Class: r.Value, Total: r.Total, Percent: r.Percent}
		}),
	}

	botTotal, botPercent := agg.BotRate()
	report.Stats.Metadatas = model.MetadataStats{
		OSRate: convert(agg.OSRate(), func(r Rate[string]) model.OSStat {
			return model.OSStat{OS: r.Ptr(), Total: r.Total, Percent: r.Percent}
		}),
		BrowserRate: convert(agg.BrowserRate(), func(r Rate[string]) model.BrowserStat {
			return model.BrowserStat{Browser: r.Ptr(), Total: r.Total, Percent: r.Percent}
		}),
		TypeDeviceRate: convert(agg.DeviceTypeRate(), func(r Rate[string]) model.DeviceStat {
			return model.DeviceStat{TypeDevice: r.Ptr(), Total: r.Total, Percent: r.Percent}
		}),
		BotRate: model.BotStat{Total: botTotal, Percent: botPercent},
	}

	return report
}

func convert[K comparable, E any](rates []Rate[K], fn func(Rate[K]) E) []E {
	out := make([]E, 0, len(rates))
	for _, r := range rates {
		out = append(out, fn(r))
	}
	return out
}
