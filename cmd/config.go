package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"myinventory/adapters/myredis"
)

const (
	SourceAWS   = "aws"
	SourceRedis = "redis"
	SourceFile  = "file"
)

type MyInventoryConfig struct {
	HTTPPort int
	Source   string

	Redis         myredis.RedisConfig
	InventoryFile string
	AWSRegion     string

	WindowSize        int
	CacheCapacity     int
	CacheTTL          time.Duration
	ValidationTimeout time.Duration
	LockStriping      bool

	PrewarmRegions  []string
	PrewarmInterval time.Duration

	TLSCertFile string
	TLSKeyFile  string
}

// LoadConfig loads configuration from environment variables.
// SERVICE_PORT_HTTP and INVENTORY_SOURCE are required; the source decides which of
// REDIS_ADDR, INVENTORY_FILE and AWS_REGION is required as well.
func LoadConfig() (*MyInventoryConfig, error) {
	httpPortStr := os.Getenv("SERVICE_PORT_HTTP")
	if httpPortStr == "" {
		return nil, fmt.Errorf("SERVICE_PORT_HTTP is required")
	}
	httpPort, err := strconv.Atoi(httpPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVICE_PORT_HTTP: %w", err)
	}

	cfg := &MyInventoryConfig{
		HTTPPort:    httpPort,
		Source:      os.Getenv("INVENTORY_SOURCE"),
		TLSCertFile: os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:  os.Getenv("TLS_KEY_FILE"),
	}

	switch cfg.Source {
	case "":
		return nil, fmt.Errorf("INVENTORY_SOURCE is required")
	case SourceRedis:
		cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required for INVENTORY_SOURCE=redis")
		}
	case SourceFile:
		cfg.InventoryFile = os.Getenv("INVENTORY_FILE")
		if cfg.InventoryFile == "" {
			return nil, fmt.Errorf("INVENTORY_FILE is required for INVENTORY_SOURCE=file")
		}
	case SourceAWS:
		cfg.AWSRegion = os.Getenv("AWS_REGION")
		if cfg.AWSRegion == "" {
			return nil, fmt.Errorf("AWS_REGION is required for INVENTORY_SOURCE=aws")
		}
	default:
		return nil, fmt.Errorf("invalid INVENTORY_SOURCE %q: want aws, redis or file", cfg.Source)
	}

	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return nil, fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}

	if cfg.WindowSize, err = positiveInt("WINDOW_SIZE", 500); err != nil {
		return nil, err
	}
	if cfg.CacheCapacity, err = positiveInt("CACHE_CAPACITY", 100); err != nil {
		return nil, err
	}
	ttlMs, err := positiveInt("CACHE_TTL_MS", 60000)
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = time.Duration(ttlMs) * time.Millisecond
	timeoutMs, err := positiveInt("VALIDATION_TIMEOUT_MS", 30000)
	if err != nil {
		return nil, err
	}
	cfg.ValidationTimeout = time.Duration(timeoutMs) * time.Millisecond

	if s := os.Getenv("LOCK_STRIPING"); s != "" {
		if cfg.LockStriping, err = strconv.ParseBool(s); err != nil {
			return nil, fmt.Errorf("invalid LOCK_STRIPING: %w", err)
		}
	}

	for _, r := range strings.Split(os.Getenv("PREWARM_REGIONS"), ",") {
		if r = strings.TrimSpace(r); r != "" {
			cfg.PrewarmRegions = append(cfg.PrewarmRegions, r)
		}
	}
	intervalMs, err := positiveInt("PREWARM_INTERVAL_MS", ttlMs)
	if err != nil {
		return nil, err
	}
	cfg.PrewarmInterval = time.Duration(intervalMs) * time.Millisecond

	return cfg, nil
}

func positiveInt(name string, def int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %d", name, n)
	}
	return n, nil
}
