package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	DatabaseURL  string
	RedisURL     string
	KafkaBrokers []string
	JWTSecret    string

	MaxDBConns int32

	KafkaTopicRoleChanged      string
	KafkaTopicProductPublished string
	KafkaTopicBuyerRated       string
	KafkaTopicSellerRated      string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int

	ReportCacheTTL  time.Duration
	ReportsUpstream string
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL                string   `yaml:"postgres_url"`
		RedisURL                   string   `yaml:"redis_url"`
		KafkaBrokers               []string `yaml:"kafka_brokers"`
		KafkaTopicRoleChanged      string   `yaml:"kafka_topic_role_changed"`
		KafkaTopicProductPublished string   `yaml:"kafka_topic_product_published"`
		KafkaTopicBuyerRated       string   `yaml:"kafka_topic_buyer_rated"`
		KafkaTopicSellerRated      string   `yaml:"kafka_topic_seller_rated"`
	} `yaml:"dependencies"`
	Reports struct {
		Upstream        string `yaml:"upstream"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	} `yaml:"reports"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:                  "marketplace",
		HTTPPort:                   8080,
		GRPCPort:                   9090,
		MaxDBConns:                 20,
		KafkaTopicRoleChanged:      "marketplace.role_changed",
		KafkaTopicProductPublished: "marketplace.product_published",
		KafkaTopicBuyerRated:       "marketplace.buyer_rated",
		KafkaTopicSellerRated:      "marketplace.seller_rated",
		OutboxPollInterval:         2 * time.Second,
		OutboxBatchSize:            100,
		ReportCacheTTL:             30 * time.Second,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		cfg.DatabaseURL = f.Dependencies.PostgresURL
		cfg.RedisURL = f.Dependencies.RedisURL
		if len(f.Dependencies.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
		}
		if f.Dependencies.KafkaTopicRoleChanged != "" {
			cfg.KafkaTopicRoleChanged = f.Dependencies.KafkaTopicRoleChanged
		}
		if f.Dependencies.KafkaTopicProductPublished != "" {
			cfg.KafkaTopicProductPublished = f.Dependencies.KafkaTopicProductPublished
		}
		if f.Dependencies.KafkaTopicBuyerRated != "" {
			cfg.KafkaTopicBuyerRated = f.Dependencies.KafkaTopicBuyerRated
		}
		if f.Dependencies.KafkaTopicSellerRated != "" {
			cfg.KafkaTopicSellerRated = f.Dependencies.KafkaTopicSellerRated
		}
		cfg.ReportsUpstream = f.Reports.Upstream
		if f.Reports.CacheTTLSeconds > 0 {
			cfg.ReportCacheTTL = time.Duration(f.Reports.CacheTTLSeconds) * time.Second
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.JWTSecret = envOrDefault("JWT_SECRET", cfg.JWTSecret)
	cfg.KafkaTopicRoleChanged = envOrDefault("KAFKA_TOPIC_ROLE_CHANGED", cfg.KafkaTopicRoleChanged)
	cfg.KafkaTopicProductPublished = envOrDefault("KAFKA_TOPIC_PRODUCT_PUBLISHED", cfg.KafkaTopicProductPublished)
	cfg.KafkaTopicBuyerRated = envOrDefault("KAFKA_TOPIC_BUYER_RATED", cfg.KafkaTopicBuyerRated)
	cfg.KafkaTopicSellerRated = envOrDefault("KAFKA_TOPIC_SELLER_RATED", cfg.KafkaTopicSellerRated)
	cfg.ReportsUpstream = envOrDefault("REPORTS_UPSTREAM", cfg.ReportsUpstream)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))
	cfg.OutboxPollInterval = time.Duration(envInt("OUTBOX_POLL_SECONDS", int(cfg.OutboxPollInterval.Seconds()))) * time.Second
	cfg.OutboxBatchSize = envInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)
	cfg.ReportCacheTTL = time.Duration(envInt("REPORT_CACHE_SECONDS", int(cfg.ReportCacheTTL.Seconds()))) * time.Second

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("missing JWT_SECRET")
	}
	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return trimNonEmpty(strings.Split(raw, ","))
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
