package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// GetValue 获取字符串类型的值
func GetValue(ctx context.Context, key string) (string, error) {
	if Rdb == nil {
		return "", nil
	}
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// GetInt64 获取整型值，键不存在视为错误，由调用方回源
func GetInt64(ctx context.Context, key string) (int64, error) {
	if Rdb == nil {
		return 0, redis.Nil
	}
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}

// DeleteKey 删除一个键
func DeleteKey(ctx context.Context, key string) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Del(ctx, key).Err()
}

// Publish 向频道发布消息
func Publish(ctx context.Context, channel string, payload interface{}) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Publish(ctx, channel, payload).Err()
}

// Subscribe 订阅一个或多个频道，未初始化时返回 nil，调用方需判空
func Subscribe(ctx context.Context, channels ...string) *redis.PubSub {
	if Rdb == nil {
		return nil
	}
	return Rdb.Subscribe(ctx, channels...)
}
