package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *redis.Client

// NewRedis returns a client of a process-wide miniredis server.
func NewRedis() *redis.Client {
	redisConnOnce.Do(
		func() {
			redisConn = openRedisConn()
		},
	)

	return redisConn
}

func openRedisConn() *redis.Client {
	miniRedis, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	return redis.NewClient(
		&redis.Options{
			Addr: miniRedis.Addr(),
		},
	)
}

func ClearRedis(redis *redis.Client) error {
	return redis.FlushAll(context.TODO()).Err()
}

// CountKeys returns the number of keys matching pattern.
func CountKeys(redis *redis.Client, pattern string) (int, error) {
	keys, err := redis.Keys(context.TODO(), pattern).Result()
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}
