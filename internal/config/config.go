package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. OSPLUGIN_SERVER_GRPC_ADDR.
const EnvPrefix = "OSPLUGIN"

// Config represents the complete service configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Packages  PackagesConfig  `mapstructure:"packages"`
	Config    HostConfig      `mapstructure:"config"`
	Reconcile ReconcileConfig `mapstructure:"reconcile"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Auth      AuthConfig      `mapstructure:"auth"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Log       LogConfig       `mapstructure:"log"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

// ServerConfig holds the listen addresses and request limits
type ServerConfig struct {
	GRPCAddr    string `mapstructure:"grpc_addr"`
	HTTPAddr    string `mapstructure:"http_addr"`
	MetricsAddr string `mapstructure:"metrics_addr"`
	// MaxMessageBytes caps a single gRPC message in both directions
	MaxMessageBytes int `mapstructure:"max_message_bytes"`
	// MaxConcurrentRequests bounds RPCs handled at once
	MaxConcurrentRequests int64 `mapstructure:"max_concurrent_requests"`
}

type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// PackagesConfig controls where uploaded packages are extracted
type PackagesConfig struct {
	Dir string `mapstructure:"dir"`
	// MaxExtractedBytes caps the uncompressed size of one package (0 = unlimited)
	MaxExtractedBytes int64 `mapstructure:"max_extracted_bytes"`
	// MaxUploadBytes caps the archive size accepted on the upload stream (0 = unlimited)
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
	// SpoolDir holds uploads in flight; empty uses the OS temp dir
	SpoolDir string `mapstructure:"spool_dir"`
}

// HostConfig controls the per-host backend rc files
type HostConfig struct {
	Dir          string `mapstructure:"dir"`
	MaxFileBytes int64  `mapstructure:"max_file_bytes"`
}

type ReconcileConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// BackendConfig controls calls to the orchestration backend
type BackendConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	ClientCacheSize int64         `mapstructure:"client_cache_size"`
	// StackTimeoutMinutes is handed to the backend on stack create (0 = backend default)
	StackTimeoutMinutes int `mapstructure:"stack_timeout_minutes"`
}

// AuthConfig controls access token verification
type AuthConfig struct {
	// JWTPublicKeyFile is a PEM RSA public key; without it tokens are only checked for shape and expiry
	JWTPublicKeyFile string `mapstructure:"jwt_public_key_file"`
}

// NATSConfig controls lifecycle event publishing; an empty URL disables it
type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

// LogConfig controls the logger; File enables rotation through lumberjack
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			GRPCAddr:              ":8234",
			HTTPAddr:              ":8080",
			MetricsAddr:           ":9090",
			MaxMessageBytes:       50 << 20,
			MaxConcurrentRequests: 200,
		},
		Storage: StorageConfig{DBPath: "./data/badger"},
		Packages: PackagesConfig{
			Dir:               "./data/packages",
			MaxExtractedBytes: 1 << 30,
			MaxUploadBytes:    512 << 20,
		},
		Config: HostConfig{
			Dir:          "./data/config",
			MaxFileBytes: 64 << 10,
		},
		Reconcile: ReconcileConfig{Interval: 5 * time.Second},
		Backend: BackendConfig{
			Timeout:         30 * time.Second,
			ClientCacheSize: 64,
		},
		NATS: NATSConfig{Subject: "osplugin.instances"},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.grpc_addr", d.Server.GRPCAddr)
	v.SetDefault("server.http_addr", d.Server.HTTPAddr)
	v.SetDefault("server.metrics_addr", d.Server.MetricsAddr)
	v.SetDefault("server.max_message_bytes", d.Server.MaxMessageBytes)
	v.SetDefault("server.max_concurrent_requests", d.Server.MaxConcurrentRequests)

	v.SetDefault("storage.db_path", d.Storage.DBPath)

	v.SetDefault("packages.dir", d.Packages.Dir)
	v.SetDefault("packages.max_extracted_bytes", d.Packages.MaxExtractedBytes)
	v.SetDefault("packages.max_upload_bytes", d.Packages.MaxUploadBytes)
	v.SetDefault("packages.spool_dir", d.Packages.SpoolDir)

	v.SetDefault("config.dir", d.Config.Dir)
	v.SetDefault("config.max_file_bytes", d.Config.MaxFileBytes)

	v.SetDefault("reconcile.interval", d.Reconcile.Interval)

	v.SetDefault("backend.timeout", d.Backend.Timeout)
	v.SetDefault("backend.client_cache_size", d.Backend.ClientCacheSize)
	v.SetDefault("backend.stack_timeout_minutes", d.Backend.StackTimeoutMinutes)

	v.SetDefault("auth.jwt_public_key_file", d.Auth.JWTPublicKeyFile)

	v.SetDefault("nats.url", d.NATS.URL)
	v.SetDefault("nats.subject", d.NATS.Subject)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)

	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"grpc-addr":    "server.grpc_addr",
	"http-addr":    "server.http_addr",
	"metrics-addr": "server.metrics_addr",
	"db":           "storage.db_path",
	"packages-dir": "packages.dir",
	"config-dir":   "config.dir",
	"log-level":    "log.level",
}

// RegisterFlags adds the server flags to fs. --config names an optional YAML file.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("config", "", "path to a YAML configuration file")
	fs.String("grpc-addr", d.Server.GRPCAddr, "gRPC listen address")
	fs.String("http-addr", d.Server.HTTPAddr, "HTTP shim listen address")
	fs.String("metrics-addr", d.Server.MetricsAddr, "Prometheus metrics listen address")
	fs.String("db", d.Storage.DBPath, "Badger DB path")
	fs.String("packages-dir", d.Packages.Dir, "directory for uploaded packages")
	fs.String("config-dir", d.Config.Dir, "directory for per-host backend rc files")
	fs.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
}

// Load resolves the configuration from defaults, the optional file named by
// --config, OSPLUGIN_* environment variables and flags set on fs, in
// increasing order of precedence. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
		if path, err := fs.GetString("config"); err == nil && path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every setting that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.GRPCAddr == "" {
		errs = append(errs, errors.New("server.grpc_addr is required"))
	}
	if c.Server.MaxMessageBytes <= 0 {
		errs = append(errs, errors.New("server.max_message_bytes must be positive"))
	}
	if c.Server.MaxConcurrentRequests <= 0 {
		errs = append(errs, errors.New("server.max_concurrent_requests must be positive"))
	}
	if c.Storage.DBPath == "" {
		errs = append(errs, errors.New("storage.db_path is required"))
	}
	if c.Packages.Dir == "" {
		errs = append(errs, errors.New("packages.dir is required"))
	}
	if c.Config.Dir == "" {
		errs = append(errs, errors.New("config.dir is required"))
	}
	if c.Reconcile.Interval <= 0 {
		errs = append(errs, errors.New("reconcile.interval must be positive"))
	}
	if c.Backend.Timeout <= 0 {
		errs = append(errs, errors.New("backend.timeout must be positive"))
	}
	if c.NATS.URL != "" && c.NATS.Subject == "" {
		errs = append(errs, errors.New("nats.subject is required when nats.url is set"))
	}
	return errors.Join(errs...)
}
