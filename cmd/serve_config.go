package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/giantswarm/kube-panel/internal/k8s"
	"github.com/giantswarm/kube-panel/internal/logging"
	"github.com/giantswarm/kube-panel/internal/server"
	"github.com/giantswarm/kube-panel/internal/server/middleware"
)

// envPrefix is prepended to every setting's environment variable, e.g.
// KUBE_PANEL_HTTP_ADDR for --http-addr.
const envPrefix = "KUBE_PANEL"

// Flag names. They double as viper keys and, upper-cased with dashes
// replaced, as environment variable suffixes.
const (
	flagConfig               = "config"
	flagTransport            = "transport"
	flagHTTPAddr             = "http-addr"
	flagSSEEndpoint          = "sse-endpoint"
	flagMessageEndpoint      = "message-endpoint"
	flagHTTPEndpoint         = "http-endpoint"
	flagAllowedOrigins       = "allowed-origins"
	flagEnableHSTS           = "enable-hsts"
	flagMaxRequestSize       = "max-request-size"
	flagKubeconfig           = "kubeconfig"
	flagContext              = "context"
	flagInCluster            = "in-cluster"
	flagDefaultNamespace     = "default-namespace"
	flagNonDestructive       = "non-destructive"
	flagDryRun               = "dry-run"
	flagAllowedOperations    = "allowed-operations"
	flagRestrictedNamespaces = "restricted-namespaces"
	flagQPSLimit             = "qps-limit"
	flagBurstLimit           = "burst-limit"
	flagDebug                = "debug"
	flagLogLevel             = "log-level"
	flagLogFormat            = "log-format"
	flagMetricsAddr          = "metrics-addr"
	flagMetricsEnabled       = "metrics-enabled"
)

// ServeConfig holds all configuration for the serve command.
type ServeConfig struct {
	// Transport settings
	Transport string
	HTTPAddr  string

	// Endpoint paths
	SSEEndpoint     string
	MessageEndpoint string
	HTTPEndpoint    string

	// HTTP hardening
	AllowedOrigins []string
	EnableHSTS     bool
	MaxRequestSize int64

	// Kubernetes client settings
	Kubeconfig           string
	Context              string
	InCluster            bool
	DefaultNamespace     string
	NonDestructiveMode   bool
	DryRun               bool
	AllowedOperations    []string
	RestrictedNamespaces []string
	QPSLimit             float32
	BurstLimit           int

	// Logging
	DebugMode bool
	LogLevel  string
	LogFormat string

	// Metrics server
	Metrics MetricsServeConfig
}

// MetricsServeConfig configures the dedicated metrics server.
type MetricsServeConfig struct {
	Enabled bool
	Addr    string
}

// newViper returns a viper instance reading KUBE_PANEL_* environment variables.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// loadServeConfig reads the serve settings from v. Flags must already be
// bound. A non-empty configFile is read as YAML first.
func loadServeConfig(v *viper.Viper, configFile string) (ServeConfig, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return ServeConfig{}, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	origins, err := middleware.ParseAllowedOrigins(strings.Join(v.GetStringSlice(flagAllowedOrigins), ","))
	if err != nil {
		return ServeConfig{}, err
	}

	config := ServeConfig{
		Transport:            v.GetString(flagTransport),
		HTTPAddr:             v.GetString(flagHTTPAddr),
		SSEEndpoint:          v.GetString(flagSSEEndpoint),
		MessageEndpoint:      v.GetString(flagMessageEndpoint),
		HTTPEndpoint:         v.GetString(flagHTTPEndpoint),
		AllowedOrigins:       origins,
		EnableHSTS:           v.GetBool(flagEnableHSTS),
		MaxRequestSize:       v.GetInt64(flagMaxRequestSize),
		Kubeconfig:           v.GetString(flagKubeconfig),
		Context:              v.GetString(flagContext),
		InCluster:            v.GetBool(flagInCluster),
		DefaultNamespace:     v.GetString(flagDefaultNamespace),
		NonDestructiveMode:   v.GetBool(flagNonDestructive),
		DryRun:               v.GetBool(flagDryRun),
		AllowedOperations:    splitList(v.GetStringSlice(flagAllowedOperations)),
		RestrictedNamespaces: splitList(v.GetStringSlice(flagRestrictedNamespaces)),
		QPSLimit:             float32(v.GetFloat64(flagQPSLimit)),
		BurstLimit:           v.GetInt(flagBurstLimit),
		DebugMode:            v.GetBool(flagDebug),
		LogLevel:             v.GetString(flagLogLevel),
		LogFormat:            v.GetString(flagLogFormat),
		Metrics: MetricsServeConfig{
			Enabled: v.GetBool(flagMetricsEnabled),
			Addr:    v.GetString(flagMetricsAddr),
		},
	}

	if config.DebugMode {
		config.LogLevel = "debug"
	}

	return config, config.Validate()
}

// splitList flattens comma-separated entries. Environment variables arrive
// as a single comma-separated string.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// Validate checks the configuration for unsupported values.
func (c ServeConfig) Validate() error {
	var errs []error

	switch c.Transport {
	case transportStdio, transportSSE, transportStreamableHTTP:
	default:
		errs = append(errs, fmt.Errorf("unsupported transport type: %s (supported: stdio, sse, streamable-http)", c.Transport))
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}

	for _, op := range c.AllowedOperations {
		if !slices.Contains(knownOperations, op) {
			errs = append(errs, fmt.Errorf("unknown operation %q in --%s", op, flagAllowedOperations))
		}
	}

	if c.QPSLimit < 0 || c.BurstLimit < 0 {
		errs = append(errs, errors.New("qps and burst limits must not be negative"))
	}

	return errors.Join(errs...)
}

var knownOperations = []string{k8s.OperationGet, k8s.OperationList, k8s.OperationDelete, k8s.OperationApply}

// k8sAllowedOperations returns the Kubernetes client's allow list. Reads
// always stay allowed; an empty result allows every operation.
func (c ServeConfig) k8sAllowedOperations() []string {
	if len(c.AllowedOperations) == 0 {
		return nil
	}
	ops := []string{k8s.OperationGet, k8s.OperationList}
	for _, op := range c.AllowedOperations {
		if !slices.Contains(ops, op) {
			ops = append(ops, op)
		}
	}
	return ops
}

// k8sClientConfig builds the Kubernetes client configuration.
func (c ServeConfig) k8sClientConfig(logger k8s.Logger, recorder k8s.OperationRecorder) *k8s.ClientConfig {
	return &k8s.ClientConfig{
		KubeconfigPath:       c.Kubeconfig,
		Context:              c.Context,
		InCluster:            c.InCluster,
		NonDestructiveMode:   c.NonDestructiveMode,
		DryRun:               c.DryRun,
		AllowedOperations:    c.k8sAllowedOperations(),
		RestrictedNamespaces: c.RestrictedNamespaces,
		QPSLimit:             c.QPSLimit,
		BurstLimit:           c.BurstLimit,
		Timeout:              k8s.DefaultTimeout * time.Second,
		DebugMode:            c.DebugMode,
		Logger:               logger,
		Recorder:             recorder,
	}
}

// serverConfig builds the tool-facing server configuration.
func (c ServeConfig) serverConfig(version string) *server.Config {
	cfg := server.NewDefaultConfig()
	cfg.Version = version
	if c.DefaultNamespace != "" {
		cfg.DefaultNamespace = c.DefaultNamespace
	}
	cfg.KubeConfigPath = c.Kubeconfig
	cfg.DefaultContext = c.Context
	cfg.InClusterMode = c.InCluster
	cfg.NonDestructiveMode = c.NonDestructiveMode
	cfg.DryRun = c.DryRun
	cfg.LogLevel = c.LogLevel
	cfg.LogFormat = c.LogFormat
	cfg.AllowedOperations = c.AllowedOperations
	cfg.RestrictedNamespaces = c.RestrictedNamespaces
	return cfg
}
