package lib

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"
	"triphub/src/monitoring"
	"triphub/src/types"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

type RoleSource interface {
	RoleOf(ctx context.Context, email string) (types.Role, error)
}

// RoleCache resolves roles from the store and keeps them in redis for ttl.
// A redis outage degrades to reading the store on every request.
type RoleCache struct {
	rdb    *redis.Client
	source RoleSource
	ttl    time.Duration
}

func NewRoleCache(rdb *redis.Client, source RoleSource, ttl time.Duration) *RoleCache {
	return &RoleCache{rdb: rdb, source: source, ttl: ttl}
}

func roleKey(email string) string {
	return fmt.Sprintf("role:%s", email)
}

func (c *RoleCache) Resolve(ctx context.Context, email string) (types.Role, error) {
	if c.rdb != nil {
		val, err := c.rdb.Get(ctx, roleKey(email)).Result()
		switch {
		case err == nil && types.Role(val).Valid():
			monitoring.RoleCacheLookups.WithLabelValues("hit").Inc()
			return types.Role(val), nil
		case err != nil && !errors.Is(err, redis.Nil):
			log.Printf("[RoleCache] Error reading %s: %s\n", email, err.Error())
		}
	}
	monitoring.RoleCacheLookups.WithLabelValues("miss").Inc()

	role, err := c.source.RoleOf(ctx, email)
	if err != nil {
		return "", err
	}
	if c.rdb != nil {
		if err := c.rdb.Set(ctx, roleKey(email), string(role), c.ttl).Err(); err != nil {
			log.Printf("[RoleCache] Error caching %s: %s\n", email, err.Error())
		}
	}
	return role, nil
}

func (c *RoleCache) Invalidate(ctx context.Context, email string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, roleKey(email)).Err()
}
