package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logscope/internal/classifier"
	"logscope/internal/config"
	"logscope/internal/export"
	"logscope/internal/geoip"
	"logscope/internal/mq"
	"logscope/internal/parser"
	"logscope/internal/repository"
	"logscope/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// publishTimeout bounds the time spent handing the report to the sinks
const publishTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one analysis and returns the process exit code
func run(ctx context.Context, args []string, stderr io.Writer) int {
	setupLogger(stderr, false)

	fs := config.NewFlagSet("logscope")
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		log.Error().Err(err).Msg("Error with the arguments given")
		return exitUsage
	}

	cfg, err := config.Load(fs)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return exitUsage
	}

	setupLogger(stderr, cfg.Log.Verbose)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("Error with the arguments given")
		return exitUsage
	}
	f, err := cfg.BuildFilter()
	if err != nil {
		log.Error().Err(err).Msg("Error with the arguments given")
		return exitUsage
	}

	// Check the output before spending time on the input
	exporter, err := export.NewJSONExporter(cfg.Output.Path, !cfg.Output.NoOverride)
	if err != nil {
		log.Error().Err(err).Msg("Error in the analysis exportation")
		return exitFailure
	}

	log.Info().Str("file", cfg.FilePath).Msg("Start of the analysis")

	p := parser.New(
		parser.WithWorkers(cfg.Parse.Workers),
		parser.WithChunkSize(cfg.Parse.ChunkSize),
		parser.WithSkipMalformed(cfg.Parse.SkipMalformed),
	)
	file, err := p.ParseFile(ctx, cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("Error with the Apache log file")
		return exitFailure
	}

	log.Info().
		Int("records", file.Len()).
		Int("skipped", file.LinesSkipped).
		Msg("Lines analysed")

	var countries service.CountryResolver
	if cfg.GeoIP.Database != "" {
		resolver, err := geoip.Open(cfg.GeoIP.Database)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to open GeoIP database, running without country rate")
		} else {
			defer resolver.Close()
			countries = resolver
		}
	}

	analysisSvc := service.NewAnalysisService(classifier.NewUserAgentClassifier(), countries, cfg.Analysis.Top)
	report := analysisSvc.Analyze(file, f, cfg.Output.Details)

	if err := exporter.Export(report); err != nil {
		log.Error().Err(err).Msg("Error in the analysis exportation")
		return exitFailure
	}

	log.Info().
		Str("output", exporter.Path()).
		Int("total_requests", report.TotalRequests).
		Msg("Analysis exported")

	publishSvc, closeSinks := newPublishService(&cfg.Sinks)
	defer closeSinks()

	if publishSvc.Enabled() {
		pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()

		env := publishSvc.Envelope(report)
		publishSvc.Publish(pubCtx, env, exporter.Path(), !f.IsEmpty())
	}

	return exitOK
}

// newPublishService connects the configured sinks. A sink that cannot be
// reached is left out with a warning.
func newPublishService(cfg *config.SinksConfig) (*service.PublishService, func()) {
	var (
		cache     service.ReportCacheInterface
		summaries service.SummaryRepositoryInterface
		producer  service.ReportProducerInterface
		closers   []func() error
	)

	if cfg.Redis.Enabled {
		redisRepo, err := repository.NewRedisRepository(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize Redis, running without report cache")
		} else {
			cache = redisRepo
			closers = append(closers, redisRepo.Close)
		}
	}

	if cfg.MySQL.Enabled {
		mysqlRepo, err := repository.NewMySQLRepository(&cfg.MySQL)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize MySQL, running without report summaries")
		} else {
			summaries = mysqlRepo
			closers = append(closers, mysqlRepo.Close)
		}
	}

	if cfg.RocketMQ.Enabled {
		mqProducer, err := mq.NewProducer(&cfg.RocketMQ)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize RocketMQ producer, running without MQ")
		} else {
			producer = mqProducer
			closers = append(closers, mqProducer.Close)
		}
	}

	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.Warn().Err(err).Msg("Failed to close sink")
			}
		}
	}
	return service.NewPublishService(cache, summaries, producer), closeAll
}

// setupLogger configures the logger
func setupLogger(out io.Writer, verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Use console writer for pretty output
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen})
}
