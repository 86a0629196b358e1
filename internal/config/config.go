package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/rawblock/washtrade-engine/internal/patterns"
	"github.com/rawblock/washtrade-engine/internal/pool"
	"github.com/rawblock/washtrade-engine/internal/relationship"
)

// Config holds every tunable of the analysis engine. Thresholds default
// to the values the detectors were calibrated with; deployments override
// via config.yaml or environment variables (APP_LOG_LEVEL and friends).
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Detectors DetectorConfig  `mapstructure:"detectors"`
	Mapping   MappingConfig   `mapstructure:"mapping"`
}

// AppConfig is process-level configuration.
type AppConfig struct {
	LogLevel       string `mapstructure:"log_level"`
	WorkerPoolSize int    `mapstructure:"worker_pool_size"`
	BatchPath      string `mapstructure:"batch_path"` // Transfer batch file for the CLI entrypoint
}

// DetectorConfig tunes the independent pattern detectors.
type DetectorConfig struct {
	MaxCycleLength           int     `mapstructure:"max_cycle_length"`
	PingPongMinCount         int     `mapstructure:"ping_pong_min_count"`
	IntervalThresholdSeconds float64 `mapstructure:"interval_threshold_seconds"`
	PriceThreshold           float64 `mapstructure:"price_threshold"`
	ZScoreThreshold          float64 `mapstructure:"z_score_threshold"`
	BurstWindowSeconds       int64   `mapstructure:"burst_window_seconds"`
	FeeRatioThreshold        float64 `mapstructure:"fee_ratio_threshold"`
}

// MappingConfig tunes the relationship mapper and scorer.
type MappingConfig struct {
	MinSharedPartners   int     `mapstructure:"min_shared_partners"`
	TimeWindowSeconds   int64   `mapstructure:"time_window_seconds"`
	FeeOverlapThreshold float64 `mapstructure:"fee_overlap_threshold"`
	MaxHops             int     `mapstructure:"max_hops"`
}

// Load reads configuration from config.yaml (working directory or
// ./config) and the environment, on top of the defaults.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration without touching files or
// the environment. Tests and library embedders start here.
func Default() *Config {
	return &Config{
		App: AppConfig{
			LogLevel:       "info",
			WorkerPoolSize: pool.DefaultWorkers,
			BatchPath:      "transactions.json",
		},
		Detectors: DetectorConfig{
			MaxCycleLength:           patterns.DefaultMaxCycleLength,
			PingPongMinCount:         patterns.DefaultPingPongMinCount,
			IntervalThresholdSeconds: patterns.DefaultIntervalThreshold,
			PriceThreshold:           patterns.DefaultPriceThreshold,
			ZScoreThreshold:          patterns.DefaultZScoreThreshold,
			BurstWindowSeconds:       patterns.DefaultBurstWindowSeconds,
			FeeRatioThreshold:        patterns.DefaultFeeRatioThreshold,
		},
		Mapping: MappingConfig{
			MinSharedPartners:   relationship.DefaultMinSharedPartners,
			TimeWindowSeconds:   relationship.DefaultTimeWindowSeconds,
			FeeOverlapThreshold: relationship.DefaultFeeOverlapThreshold,
			MaxHops:             relationship.DefaultMaxHops,
		},
	}
}

func setDefaults() {
	def := Default()

	viper.SetDefault("app.log_level", def.App.LogLevel)
	viper.SetDefault("app.worker_pool_size", def.App.WorkerPoolSize)
	viper.SetDefault("app.batch_path", def.App.BatchPath)

	viper.SetDefault("detectors.max_cycle_length", def.Detectors.MaxCycleLength)
	viper.SetDefault("detectors.ping_pong_min_count", def.Detectors.PingPongMinCount)
	viper.SetDefault("detectors.interval_threshold_seconds", def.Detectors.IntervalThresholdSeconds)
	viper.SetDefault("detectors.price_threshold", def.Detectors.PriceThreshold)
	viper.SetDefault("detectors.z_score_threshold", def.Detectors.ZScoreThreshold)
	viper.SetDefault("detectors.burst_window_seconds", def.Detectors.BurstWindowSeconds)
	viper.SetDefault("detectors.fee_ratio_threshold", def.Detectors.FeeRatioThreshold)

	viper.SetDefault("mapping.min_shared_partners", def.Mapping.MinSharedPartners)
	viper.SetDefault("mapping.time_window_seconds", def.Mapping.TimeWindowSeconds)
	viper.SetDefault("mapping.fee_overlap_threshold", def.Mapping.FeeOverlapThreshold)
	viper.SetDefault("mapping.max_hops", def.Mapping.MaxHops)
}
