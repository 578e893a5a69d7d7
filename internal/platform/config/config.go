package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"surety/pkg/platform/strings"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string `env:"SURETY_ADDR" envDefault:":8080"`
	LogFormat     string `env:"SURETY_LOG_FORMAT" envDefault:"json"`
	LogLevel      string `env:"SURETY_LOG_LEVEL" envDefault:"info"`
	JWTSigningKey string `env:"SURETY_JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	JWTIssuer     string `env:"SURETY_JWT_ISSUER" envDefault:"surety"`

	Registry Registry
	Database Database
	Redis    RedisConfig
	Kafka    Kafka

	RateLimit RateLimit

	ReadTimeout     time.Duration `env:"SURETY_HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SURETY_HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SURETY_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Registry holds the admission rules and the bootstrap identities.
type Registry struct {
	Owner              string `env:"SURETY_OWNER" envDefault:"0xowner"`
	Genesis            string `env:"SURETY_GENESIS_AIRLINE" envDefault:"0xgenesis"`
	FundingThreshold   uint64 `env:"SURETY_FUNDING_THRESHOLD" envDefault:"10"`
	ConsensusThreshold int    `env:"SURETY_CONSENSUS_THRESHOLD" envDefault:"4"`

	// StatusBackend is "memory", "postgres" or "redis". Unset, it follows the
	// ledger: "postgres" when SURETY_DATABASE_URL is set, "memory" otherwise.
	StatusBackend string `env:"SURETY_STATUS_BACKEND"`
}

// Database selects the durable ledger. An empty URL keeps state in memory.
type Database struct {
	URL       string        `env:"SURETY_DATABASE_URL"`
	Migrate   bool          `env:"SURETY_DB_MIGRATE" envDefault:"true"`
	TxTimeout time.Duration `env:"SURETY_DB_TX_TIMEOUT" envDefault:"5s"`
	MaxConns  int           `env:"SURETY_DB_MAX_CONNS" envDefault:"10"`
}

// RedisConfig configures the shared operational flag store.
type RedisConfig struct {
	URL          string        `env:"SURETY_REDIS_URL"`
	Key          string        `env:"SURETY_REDIS_STATUS_KEY" envDefault:"surety:operational"`
	PoolSize     int           `env:"SURETY_REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"SURETY_REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"SURETY_REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"SURETY_REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"SURETY_REDIS_WRITE_TIMEOUT" envDefault:"3s"`

	// Breaker thresholds for the last-known-value fallback on status reads.
	BreakerFailures  int `env:"SURETY_REDIS_BREAKER_FAILURES" envDefault:"5"`
	BreakerSuccesses int `env:"SURETY_REDIS_BREAKER_SUCCESSES" envDefault:"3"`
}

// Kafka configures the outbox relay. No brokers means no relay.
type Kafka struct {
	Brokers           []string      `env:"SURETY_KAFKA_BROKERS" envSeparator:","`
	Topic             string        `env:"SURETY_KAFKA_TOPIC" envDefault:"surety.ledger-events"`
	ClientID          string        `env:"SURETY_KAFKA_CLIENT_ID" envDefault:"surety"`
	Partitions        int32         `env:"SURETY_KAFKA_PARTITIONS" envDefault:"3"`
	ReplicationFactor int16         `env:"SURETY_KAFKA_REPLICATION_FACTOR" envDefault:"1"`
	PollInterval      time.Duration `env:"SURETY_OUTBOX_POLL_INTERVAL" envDefault:"1s"`
	BatchSize         int           `env:"SURETY_OUTBOX_BATCH_SIZE" envDefault:"100"`
}

// RateLimit throttles mutations per caller. Zero requests disables it.
type RateLimit struct {
	Requests int           `env:"SURETY_RATE_LIMIT_REQUESTS" envDefault:"60"`
	Window   time.Duration `env:"SURETY_RATE_LIMIT_WINDOW" envDefault:"1m"`
	Backend  string        `env:"SURETY_RATE_LIMIT_BACKEND" envDefault:"memory"`
}

const (
	StatusBackendMemory   = "memory"
	StatusBackendPostgres = "postgres"
	StatusBackendRedis    = "redis"
)

// Load builds a Server config from environment variables so main stays lean.
func Load() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Kafka.Brokers = strings.DedupeAndTrim(cfg.Kafka.Brokers)
	if cfg.Registry.StatusBackend == "" {
		cfg.Registry.StatusBackend = StatusBackendMemory
		if cfg.Database.URL != "" {
			cfg.Registry.StatusBackend = StatusBackendPostgres
		}
	}
	if err := cfg.validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (c Server) validate() error {
	switch c.Registry.StatusBackend {
	case StatusBackendMemory:
		// The flag must commit with the ledger it gates.
		if c.Database.URL != "" {
			return fmt.Errorf("status backend %q cannot be used with SURETY_DATABASE_URL", c.Registry.StatusBackend)
		}
	case StatusBackendPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("status backend %q requires SURETY_DATABASE_URL", c.Registry.StatusBackend)
		}
	case StatusBackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("status backend %q requires SURETY_REDIS_URL", c.Registry.StatusBackend)
		}
	default:
		return fmt.Errorf("unknown status backend %q", c.Registry.StatusBackend)
	}
	switch c.RateLimit.Backend {
	case StatusBackendMemory:
	case StatusBackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("rate limit backend %q requires SURETY_REDIS_URL", c.RateLimit.Backend)
		}
	default:
		return fmt.Errorf("unknown rate limit backend %q", c.RateLimit.Backend)
	}
	if c.Registry.FundingThreshold == 0 {
		return fmt.Errorf("funding threshold must be positive")
	}
	if c.Registry.ConsensusThreshold <= 0 {
		return fmt.Errorf("consensus threshold must be positive")
	}
	if len(c.Kafka.Brokers) > 0 && c.Database.URL == "" {
		return fmt.Errorf("outbox relay requires SURETY_DATABASE_URL")
	}
	return nil
}
