package lib

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
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

const carLockTTL = 10 * time.Second

func carLockKey(carID uint) string {
	return fmt.Sprintf("lock:car:%d", carID)
}

// AcquireCarLock serializes booking writes per car. The returned token must be
// passed back to ReleaseCarLock so a lock that expired mid-operation cannot
// release a lock now held by someone else.
func AcquireCarLock(ctx context.Context, carID uint) (string, error) {
	rdb := GetRedisClient()
	if rdb == nil {
		return "", fmt.Errorf("redis client unavailable")
	}
	token := uuid.NewString()
	deadline := time.Now().Add(5 * time.Second)
	for {
		ok, err := rdb.SetNX(ctx, carLockKey(carID), token, carLockTTL).Result()
		if err != nil {
			return "", err
		}
		if ok {
			return token, nil
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("car %d is locked by another booking operation", carID)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func ReleaseCarLock(ctx context.Context, carID uint, token string) {
	rdb := GetRedisClient()
	if rdb == nil {
		return
	}
	key := carLockKey(carID)
	val, err := rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[redis] Error reading lock %s: %s\n", key, err.Error())
		}
		return
	}
	if val != token {
		return
	}
	if err := rdb.Del(ctx, key).Err(); err != nil {
		log.Printf("[redis] Error releasing lock %s: %s\n", key, err.Error())
	}
}

const earningsCacheTTL = 5 * time.Minute

func earningsCacheKey(carID uint) string {
	return fmt.Sprintf("earnings:car:%d", carID)
}

func CacheCarEarnings(ctx context.Context, carID uint, payload string) {
	rdb := GetRedisClient()
	if rdb == nil {
		return
	}
	if err := rdb.Set(ctx, earningsCacheKey(carID), payload, earningsCacheTTL).Err(); err != nil {
		log.Printf("[redis] Error caching earnings for car %d: %s\n", carID, err.Error())
	}
}

func GetCachedCarEarnings(ctx context.Context, carID uint) (string, bool) {
	rdb := GetRedisClient()
	if rdb == nil {
		return "", false
	}
	val, err := rdb.Get(ctx, earningsCacheKey(carID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[redis] Error reading earnings cache for car %d: %s\n", carID, err.Error())
		}
		return "", false
	}
	return val, true
}

func InvalidateCarEarnings(ctx context.Context, carID uint) {
	rdb := GetRedisClient()
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, earningsCacheKey(carID)).Err(); err != nil {
		log.Printf("[redis] Error invalidating earnings cache for car %d: %s\n", carID, err.Error())
	}
}
