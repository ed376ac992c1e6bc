// Package redis opens the go-redis client behind the redis store backend,
// retrying with capped exponential backoff until the server answers.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/index/internal/logger"
)

const clientName = "index"

// ConnectOptions configures the client and the startup retry policy.
type ConnectOptions struct {
	Addr         string // ex: "localhost:6379"
	User         string // optional
	Password     string // optional
	RedisDB      int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int

	ConnectTimeout time.Duration // total time allowed for startup attempts (ex: 30s)
	RetryInterval  time.Duration // first wait between attempts, doubled each time (ex: 2s)
	MaxWait        time.Duration // cap on the wait between attempts (ex: 10s)
	PingTimeout    time.Duration // deadline of a single ping (ex: 5s)
	WarnThreshold  int           // attempts logged at warn level before escalating to error
}

// Validate reports every invalid field at once.
func (o ConnectOptions) Validate() error {
	var errs []error
	if o.Addr == "" {
		errs = append(errs, errors.New("Addr must be set when the redis backend is selected"))
	}
	for _, d := range []struct {
		name string
		v    time.Duration
	}{
		{"ConnectTimeout", o.ConnectTimeout},
		{"RetryInterval", o.RetryInterval},
		{"MaxWait", o.MaxWait},
		{"PingTimeout", o.PingTimeout},
	} {
		if d.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", d.name, d.v))
		}
	}
	if o.WarnThreshold < 0 {
		errs = append(errs, fmt.Errorf("WarnThreshold must be >= 0, got %d", o.WarnThreshold))
	}
	return errors.Join(errs...)
}

// New returns a connected client. It keeps pinging until ConnectTimeout
// expires or ctx is cancelled; the client is closed on failure.
func New(ctx context.Context, opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	if err := opts.Validate(); err != nil {
		log.Error("invalid redis options", logger.Error(err))
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		ClientName:   clientName,
		Username:     opts.User,
		Password:     opts.Password,
		DB:           opts.RedisDB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
	})

	if err := waitReady(ctx, client, opts, log.With(logger.String("addr", opts.Addr))); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

type pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// waitReady pings until the server answers or the connect budget runs out.
func waitReady(parent context.Context, p pinger, opts ConnectOptions, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(parent, opts.ConnectTimeout)
	defer cancel()

	log.Info("connecting to redis", logger.Duration("timeout", opts.ConnectTimeout))
	start := time.Now()
	wait := backoff{next: opts.RetryInterval, max: opts.MaxWait}

	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, opts.PingTimeout)
		err := p.Ping(pingCtx).Err()
		pingCancel()

		if err == nil {
			if attempt > 1 {
				log.Warn("connected to redis after retry",
					logger.Int("attempts", attempt),
					logger.Duration("elapsed", time.Since(start)))
			} else {
				log.Info("connected to redis")
			}
			return nil
		}

		delay := wait.step()
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			log.Error("redis unavailable, giving up",
				logger.Int("attempts", attempt),
				logger.Duration("timeout", opts.ConnectTimeout),
				logger.Error(err))
			return fmt.Errorf("redis unavailable at %s after %d attempts (timeout: %v): %w",
				opts.Addr, attempt, opts.ConnectTimeout, err)
		case <-t.C:
			logAttempt(log, attempt, opts.WarnThreshold, timeLeft(ctx), delay, err)
		}
	}
}

// logAttempt escalates from warn to error once the threshold is passed or
// the deadline gets close.
func logAttempt(log logger.Logger, attempt, warnThreshold int, remaining, delay time.Duration, err error) {
	fields := []logger.Field{
		logger.Int("attempt", attempt),
		logger.Duration("remaining", remaining),
		logger.Duration("next_retry_in", delay),
		logger.Error(err),
	}
	switch {
	case remaining < 10*time.Second:
		log.Error("redis still down, timeout approaching", fields...)
	case attempt <= warnThreshold:
		log.Warn("redis connection failed, retrying", fields...)
	default:
		log.Error("redis still unavailable", fields...)
	}
}

// backoff doubles the wait after every step, up to max.
type backoff struct {
	next time.Duration
	max  time.Duration
}

func (b *backoff) step() time.Duration {
	d := min(b.next, b.max)
	b.next = min(b.next*2, b.max)
	return d
}

func timeLeft(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	return time.Until(deadline)
}
