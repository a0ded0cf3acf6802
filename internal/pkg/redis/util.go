package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Available 判断 Redis 是否已初始化。
// 未初始化时各工具函数直接降级为 no-op，计数一律回源数据库。
func Available() bool {
	return Rdb != nil
}

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

// IncrBy 对计数键做增量
func IncrBy(ctx context.Context, key string, delta int64) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.IncrBy(ctx, key, delta).Err()
}

// HIncrBy 对哈希字段做增量，用于分类型的表态计数
func HIncrBy(ctx context.Context, key, field string, delta int64) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.HIncrBy(ctx, key, field, delta).Err()
}

// HGetAllInt 取出哈希的全部整型字段
func HGetAllInt(ctx context.Context, key string) (map[string]int64, error) {
	if Rdb == nil {
		return nil, nil
	}
	raw, err := Rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(raw))
	for field, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		result[field] = n
	}
	return result, nil
}

// TryLock 自旋获取分布式锁，retryTimes 为 -1 时无限重试
func TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	if Rdb == nil {
		return true, nil
	}
	for i := 0; i < retryTimes || retryTimes == -1; i++ {
		success, err := Rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		time.Sleep(time.Millisecond * 200)
	}
	return false, nil
}

// UnLock 释放锁，仅当持有者一致时删除
func UnLock(ctx context.Context, key string, value interface{}) {
	if Rdb == nil {
		return
	}
	Rdb.Eval(ctx, "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end", []string{key}, value)
}

// DeleteKey 删除一个键
func DeleteKey(ctx context.Context, key string) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Del(ctx, key).Err()
}

// GetRdbClient 获取redis客户端
func GetRdbClient() *redis.Client {
	return Rdb
}
