package config

import (
	"fmt"
	"net/netip"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"logscope/internal/filter"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DateLayout is the layout of the date filter argument (DD/MM/YYYY)
const DateLayout = "02/01/2006"

// EnvPrefix prefixes every environment override, e.g. LOGSCOPE_OUTPUT_PATH
const EnvPrefix = "LOGSCOPE"

// AllowedMethods lists the HTTP methods accepted by the method filter
var AllowedMethods = []string{"GET", "POST", "PUT", "DELETE"}

// Config represents the application configuration
type Config struct {
	FilePath string         `mapstructure:"file_path"`
	Output   OutputConfig   `mapstructure:"output"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Parse    ParseConfig    `mapstructure:"parse"`
	Log      LogConfig      `mapstructure:"log"`
	GeoIP    GeoIPConfig    `mapstructure:"geoip"`
	Sinks    SinksConfig    `mapstructure:"sinks"`
}

// OutputConfig represents the report file configuration
type OutputConfig struct {
	Path       string `mapstructure:"path"`
	Format     string `mapstructure:"format"`
	NoOverride bool   `mapstructure:"no_override"`
	Details    bool   `mapstructure:"details"`
}

// FilterConfig holds the raw filter arguments. Empty means unset.
type FilterConfig struct {
	Status string `mapstructure:"status"`
	Date   string `mapstructure:"date"`
	IP     string `mapstructure:"ip"`
	Method string `mapstructure:"method"`
}

// AnalysisConfig represents analysis configuration
type AnalysisConfig struct {
	Top int `mapstructure:"top"`
}

// ParseConfig represents parser configuration
type ParseConfig struct {
	Workers       int  `mapstructure:"workers"`
	ChunkSize     int  `mapstructure:"chunk_size"`
	SkipMalformed bool `mapstructure:"skip_malformed"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// GeoIPConfig represents the country database configuration
type GeoIPConfig struct {
	Database string `mapstructure:"database"`
}

// SinksConfig groups the optional report sinks
type SinksConfig struct {
	Redis    RedisConfig    `mapstructure:"redis"`
	MySQL    MySQLConfig    `mapstructure:"mysql"`
	RocketMQ RocketMQConfig `mapstructure:"rocketmq"`
}

// RedisConfig represents Redis configuration
type RedisConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	TTL         time.Duration `mapstructure:"ttl"`
	RecentLimit int64         `mapstructure:"recent_limit"`
}

// MySQLConfig represents MySQL configuration
type MySQLConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}

// RocketMQConfig represents RocketMQ configuration
type RocketMQConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	NameServer string `mapstructure:"nameserver"`
	Topic      string `mapstructure:"topic"`
	Group      string `mapstructure:"group"`
}

// ArgumentError reports an invalid command-line or configuration value
type ArgumentError struct {
	Arg    string
	Value  string
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid argument %s: %s", e.Arg, e.Reason)
	}
	return fmt.Sprintf("invalid argument %s %q: %s", e.Arg, e.Value, e.Reason)
}

// NewFlagSet declares every command-line flag
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false

	fs.StringP("output", "o", "./apache_stats.json", "output file")
	fs.StringP("format", "f", "json", "output format (json)")
	fs.BoolP("verbose", "v", false, "enable verbose mode")
	fs.BoolP("nooverride", "n", false, "fail if the output file already exists")
	fs.Bool("details", false, "include the analysis details in the output file")

	fs.StringP("status", "s", "", "keep only this status code (100-599)")
	fs.StringP("date", "d", "", "keep only this date (DD/MM/YYYY)")
	fs.StringP("ip", "i", "", "keep only this client IPv4")
	fs.StringP("method", "m", "", "keep only this method (GET, POST, PUT, DELETE)")

	fs.StringP("config", "c", "", "YAML configuration file")
	fs.Int("top", 3, "size of the top IP and top URL rankings")
	fs.Int("workers", 1, "parser goroutines")
	fs.Bool("skip-malformed", false, "skip malformed lines instead of aborting")
	return fs
}

// flagKeys maps flag names to configuration keys
var flagKeys = map[string]string{
	"output":         "output.path",
	"format":         "output.format",
	"nooverride":     "output.no_override",
	"details":        "output.details",
	"verbose":        "log.verbose",
	"status":         "filter.status",
	"date":           "filter.date",
	"ip":             "filter.ip",
	"method":         "filter.method",
	"top":            "analysis.top",
	"workers":        "parse.workers",
	"skip-malformed": "parse.skip_malformed",
}

// Load builds the configuration from defaults, the optional YAML file named
// by --config, LOGSCOPE_ environment variables and parsed flags, in
// increasing order of precedence. fs must already be parsed.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if f := fs.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if args := fs.Args(); len(args) > 0 {
		v.Set("file_path", args[0])
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Sinks.Redis.Password = expandEnv(cfg.Sinks.Redis.Password)
	cfg.Sinks.MySQL.DSN = expandEnv(cfg.Sinks.MySQL.DSN)

	return cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("file_path", "")
	v.SetDefault("output.path", "./apache_stats.json")
	v.SetDefault("output.format", "json")
	v.SetDefault("output.no_override", false)
	v.SetDefault("output.details", false)
	v.SetDefault("filter.status", "")
	v.SetDefault("filter.date", "")
	v.SetDefault("filter.ip", "")
	v.SetDefault("filter.method", "")
	v.SetDefault("analysis.top", 3)
	v.SetDefault("parse.workers", 1)
	v.SetDefault("parse.chunk_size", 4096)
	v.SetDefault("parse.skip_malformed", false)
	v.SetDefault("log.verbose", false)
	v.SetDefault("geoip.database", "")
	v.SetDefault("sinks.redis.enabled", false)
	v.SetDefault("sinks.redis.addr", "localhost:6379")
	v.SetDefault("sinks.redis.password", "")
	v.SetDefault("sinks.redis.db", 0)
	v.SetDefault("sinks.redis.ttl", "168h")
	v.SetDefault("sinks.redis.recent_limit", 100)
	v.SetDefault("sinks.mysql.enabled", false)
	v.SetDefault("sinks.mysql.dsn", "")
	v.SetDefault("sinks.rocketmq.enabled", false)
	v.SetDefault("sinks.rocketmq.nameserver", "127.0.0.1:9876")
	v.SetDefault("sinks.rocketmq.topic", "analysis_report")
	v.SetDefault("sinks.rocketmq.group", "logscope")
}

// Validate checks every argument, returning the first *ArgumentError found
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return &ArgumentError{Arg: "file_path", Reason: "a log file path is required"}
	}
	if c.Output.Format != "json" {
		return &ArgumentError{Arg: "--format", Value: c.Output.Format, Reason: "only json is supported"}
	}
	if !strings.HasSuffix(c.Output.Path, "."+c.Output.Format) {
		return &ArgumentError{Arg: "--output", Value: c.Output.Path, Reason: "not a " + c.Output.Format + " file"}
	}
	if c.Analysis.Top < 1 {
		return &ArgumentError{Arg: "--top", Value: strconv.Itoa(c.Analysis.Top), Reason: "must be at least 1"}
	}
	if c.Parse.Workers < 1 {
		return &ArgumentError{Arg: "--workers", Value: strconv.Itoa(c.Parse.Workers), Reason: "must be at least 1"}
	}
	if c.Sinks.MySQL.Enabled && c.Sinks.MySQL.DSN == "" {
		return &ArgumentError{Arg: "sinks.mysql.dsn", Reason: "required when the MySQL sink is enabled"}
	}
	if _, err := c.BuildFilter(); err != nil {
		return err
	}
	return nil
}

// BuildFilter turns the filter arguments into a filter.Filter. The date
// becomes midnight UTC of that day and is matched as an exact instant.
func (c *Config) BuildFilter() (*filter.Filter, error) {
	f := &filter.Filter{}
	fc := c.Filter

	if fc.Status != "" {
		code, err := strconv.Atoi(fc.Status)
		if err != nil || code < 100 || code > 599 {
			return nil, &ArgumentError{Arg: "--status", Value: fc.Status, Reason: "status code must be between 100 and 599"}
		}
		f.StatusCode = &code
	}

	if fc.Date != "" {
		date, err := time.ParseInLocation(DateLayout, fc.Date, time.UTC)
		if err != nil {
			return nil, &ArgumentError{Arg: "--date", Value: fc.Date, Reason: "date must use the DD/MM/YYYY format"}
		}
		f.Timestamp = &date
	}

	if fc.IP != "" {
		addr, err := netip.ParseAddr(fc.IP)
		if err != nil || !addr.Is4() {
			return nil, &ArgumentError{Arg: "--ip", Value: fc.IP, Reason: "only IPv4 addresses can be used to filter"}
		}
		ip := addr.String()
		f.ClientIP = &ip
	}

	if fc.Method != "" {
		if !slices.Contains(AllowedMethods, fc.Method) {
			return nil, &ArgumentError{
				Arg:    "--method",
				Value:  fc.Method,
				Reason: "method must be one of " + strings.Join(AllowedMethods, ", "),
			}
		}
		method := fc.Method
		f.Method = &method
	}

	return f, nil
}

// expandEnv expands a value of the form ${VAR} from the environment
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	return s
}
