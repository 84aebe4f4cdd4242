package bootstrap

import (
	"context"
	"crypto/tls"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chatloop/chat-api/config"
	"github.com/chatloop/chat-api/internal/data"
)

// DatabaseConfig contains configuration for database connections.
type DatabaseConfig struct {
	DBConfig    config.DBConfig
	RedisConfig config.RedisConfig
	Logger      *slog.Logger
}

const (
	connectTimeout  = 5 * time.Second
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
)

// ConnectDB opens and verifies a connection pool to PostgreSQL.
func ConnectDB(cfg DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", postgresDSN(cfg.DBConfig))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close database connection: %w", closeErr))
		}
		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("database connected",
			"host", cfg.DBConfig.Host,
			"port", cfg.DBConfig.Port,
			"database", cfg.DBConfig.Name,
		)
	}

	return db, nil
}

// postgresDSN builds the connection string through url.URL so credentials
// with special characters survive intact.
func postgresDSN(cfg config.DBConfig) string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	q := u.Query()
	q.Set("sslmode", cfg.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// redisEndpoint pairs a constructed client with a loggable description of
// where it points.
type redisEndpoint struct {
	client redis.UniversalClient
	desc   string
}

// ConnectRedis builds and verifies a Redis client. Direct, sentinel, and
// cluster topologies are all supported; the returned UniversalClient hides
// which one was picked.
//
//nolint:ireturn // returning redis.UniversalClient lets us pick single, sentinel, or cluster clients at runtime.
func ConnectRedis(cfg DatabaseConfig) (redis.UniversalClient, error) {
	var (
		ep  redisEndpoint
		err error
	)
	switch {
	case cfg.RedisConfig.UseCluster:
		ep, err = newClusterClient(cfg.RedisConfig)
	case cfg.RedisConfig.UseSentinel:
		ep, err = newSentinelClient(cfg.RedisConfig)
	default:
		ep, err = newDirectClient(cfg.RedisConfig)
	}
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if pingErr := ep.client.Ping(ctx).Err(); pingErr != nil {
		if closeErr := ep.client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("redis connected", "addr", redactCredentials(ep.desc))
	}

	return ep.client, nil
}

// redactCredentials strips user info from an address description before it
// hits the logs.
func redactCredentials(addr string) string {
	if u, err := url.Parse(addr); err == nil && u.User != nil {
		u.User = url.User("*")
		return u.Redacted()
	}
	if i := strings.LastIndex(addr, "@"); i > -1 {
		return addr[i+1:]
	}
	return addr
}

func newClusterClient(cfg config.RedisConfig) (redisEndpoint, error) {
	addrs := normalizeAddrs(cfg.ClusterNodes)
	password := cfg.Password
	username := ""
	var tlsConfig *tls.Config

	// Fall back to the single URI when no explicit cluster nodes were set.
	if len(addrs) == 0 {
		fallback, err := clusterFallbackFromURI(cfg.URI, password)
		if err != nil {
			return redisEndpoint{}, err
		}
		if fallback.addr != "" {
			addrs = []string{fallback.addr}
			username = fallback.username
			password = fallback.password
			tlsConfig = fallback.tlsConfig
		}
	}
	if len(addrs) == 0 {
		return redisEndpoint{}, errors.New("redis cluster configuration requires at least one address")
	}

	opts := &redis.ClusterOptions{
		Addrs:    addrs,
		Username: username,
		Password: password,
	}
	if tlsConfig != nil {
		opts.TLSConfig = tlsConfig
	}

	return redisEndpoint{
		client: redis.NewClusterClient(opts),
		desc:   "cluster:" + strings.Join(addrs, ","),
	}, nil
}

func newSentinelClient(cfg config.RedisConfig) (redisEndpoint, error) {
	if len(cfg.SentinelNodes) == 0 {
		return redisEndpoint{}, errors.New("redis sentinel configuration requires at least one sentinel node")
	}

	client := redis.NewFailoverClient(&redis.FailoverOptions{
		MasterName:       cfg.SentinelMasterName,
		SentinelAddrs:    cfg.SentinelNodes,
		Password:         cfg.Password,
		SentinelPassword: cfg.SentinelPassword,
		DB:               0,
	})
	return redisEndpoint{client: client, desc: "sentinel:" + cfg.SentinelMasterName}, nil
}

func newDirectClient(cfg config.RedisConfig) (redisEndpoint, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return redisEndpoint{}, errors.New("redis direct configuration requires a URI")
	}

	if isRedisURL(uri) {
		opt, err := redis.ParseURL(uri)
		if err != nil {
			return redisEndpoint{}, fmt.Errorf("parse redis url: %w", err)
		}
		return redisEndpoint{client: redis.NewClient(opt), desc: opt.Addr}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     uri,
		Password: cfg.Password,
		DB:       0,
	})
	return redisEndpoint{client: client, desc: uri}, nil
}

func normalizeAddrs(raw []string) []string {
	result := make([]string, 0, len(raw))
	for _, addr := range raw {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

type clusterFallback struct {
	addr      string
	username  string
	password  string
	tlsConfig *tls.Config
}

func clusterFallbackFromURI(uri, defaultPassword string) (clusterFallback, error) {
	trimmed := strings.TrimSpace(uri)
	if trimmed == "" {
		return clusterFallback{password: defaultPassword}, nil
	}
	if !isRedisURL(trimmed) {
		return clusterFallback{addr: trimmed, password: defaultPassword}, nil
	}

	opt, err := redis.ParseURL(trimmed)
	if err != nil {
		return clusterFallback{}, fmt.Errorf("parse redis cluster url: %w", err)
	}

	password := defaultPassword
	if opt.Password != "" {
		password = opt.Password
	}
	return clusterFallback{
		addr:      opt.Addr,
		username:  opt.Username,
		password:  password,
		tlsConfig: opt.TLSConfig,
	}, nil
}

func isRedisURL(value string) bool {
	return strings.HasPrefix(value, "redis://") || strings.HasPrefix(value, "rediss://")
}

// RunMigrations brings the schema up to date at startup.
func RunMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if err := data.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if logger != nil {
		logger.InfoContext(ctx, "database migrations completed")
	}
	return nil
}
