package readiness

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"

	redis "github.com/go-redis/redis/v8"
	// Registers the "postgres" database/sql driver used by NewPostgresProbe.
	_ "github.com/lib/pq"
)

// NewTCPProbe returns a probe that reports ready when a TCP connection to addr
// succeeds.
func NewTCPProbe(addr string) Probe {
	return func(ctx context.Context) (bool, error) {
		var dialer net.Dialer

		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return false, fmt.Errorf("dial %s: %w", addr, err)
		}

		_ = conn.Close()

		return true, nil
	}
}

// NewHTTPProbe returns a probe that reports ready when a GET against url
// yields a 2xx status. A non-2xx response is unready without error; transport
// failures are transient errors.
func NewHTTPProbe(url string, httpClient *http.Client) Probe {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return func(ctx context.Context) (bool, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return false, fmt.Errorf("build request for %s: %w", url, err)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			return false, fmt.Errorf("request %s: %w", url, err)
		}

		defer func() { _ = resp.Body.Close() }()

		return resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices, nil
	}
}

// NewCommandProbe returns a probe that reports ready when run returns nil.
// This is used for in-container health commands such as pg_isready.
func NewCommandProbe(run func(ctx context.Context) error) Probe {
	return func(ctx context.Context) (bool, error) {
		err := run(ctx)
		if err != nil {
			return false, err
		}

		return true, nil
	}
}

// NewPostgresProbe returns a probe that reports ready when the database behind
// dsn answers a ping. Each attempt opens a fresh connection so a crashed and
// restarted database is observed correctly.
func NewPostgresProbe(dsn string) Probe {
	return func(ctx context.Context) (bool, error) {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return false, fmt.Errorf("open database: %w", err)
		}

		defer func() { _ = db.Close() }()

		err = db.PingContext(ctx)
		if err != nil {
			return false, fmt.Errorf("ping database: %w", err)
		}

		return true, nil
	}
}

// NewRedisProbe returns a probe that reports ready when the Redis server at
// addr answers PING.
func NewRedisProbe(addr string) Probe {
	return func(ctx context.Context) (bool, error) {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		defer func() { _ = rdb.Close() }()

		err := rdb.Ping(ctx).Err()
		if err != nil {
			return false, fmt.Errorf("ping redis at %s: %w", addr, err)
		}

		return true, nil
	}
}
