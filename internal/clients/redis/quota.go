package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/inneratlas/inneratlas-backend/internal/logger"
	"github.com/inneratlas/inneratlas-backend/internal/utils"
)

// QuotaClient tracks per-user daily counters for guided session
// messages. Counters live under a per-day key that expires on its own,
// so there is no reset job.
type QuotaClient interface {
	IncrDailyMessages(ctx context.Context, userID string) (int64, error)
	DailyMessageCount(ctx context.Context, userID string) (int64, error)
	DailyLimit() int64
	Close() error
}

type quotaClient struct {
	log   *logger.Logger
	rdb   *goredis.Client
	limit int64
}

func NewQuotaClient(log *logger.Logger) (QuotaClient, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	limit := int64(utils.GetEnvAsInt("DAILY_MESSAGE_LIMIT", 10, log))

	return &quotaClient{
		log:   log.With("service", "RedisQuota"),
		rdb:   rdb,
		limit: limit,
	}, nil
}

func dailyKey(userID string, now time.Time) string {
	return "quota:messages:" + userID + ":" + now.UTC().Format("2006-01-02")
}

func (q *quotaClient) IncrDailyMessages(ctx context.Context, userID string) (int64, error) {
	if q == nil || q.rdb == nil {
		return 0, fmt.Errorf("redis quota client not initialized")
	}
	key := dailyKey(userID, time.Now())
	count, err := q.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		// First message of the day owns setting the expiry.
		if err := q.rdb.Expire(ctx, key, 48*time.Hour).Err(); err != nil {
			q.log.Warn("failed to set quota key expiry", "key", key, "error", err)
		}
	}
	return count, nil
}

func (q *quotaClient) DailyMessageCount(ctx context.Context, userID string) (int64, error) {
	if q == nil || q.rdb == nil {
		return 0, fmt.Errorf("redis quota client not initialized")
	}
	count, err := q.rdb.Get(ctx, dailyKey(userID, time.Now())).Int64()
	if err == goredis.Nil {
		return 0, nil
	}
	return count, err
}

func (q *quotaClient) DailyLimit() int64 {
	return q.limit
}

func (q *quotaClient) Close() error {
	if q == nil || q.rdb == nil {
		return nil
	}
	return q.rdb.Close()
}
