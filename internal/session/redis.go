package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const redisOpTimeout = 2 * time.Second

// RedisBackend keeps session state in Redis so it survives frontend restarts.
// Keys are written without expiry; a session ends only by explicit deletion,
// matching the durable-until-cleared storage contract.
type RedisBackend struct {
	client *redis.Client
	log    logrus.FieldLogger
}

func NewRedisBackend(addr string, log logrus.FieldLogger) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisBackend{client: client, log: log}, nil
}

func (b *RedisBackend) ForSession(sessionID string) KeyValueStore {
	return &redisKV{backend: b, prefix: "session:" + sessionID + ":"}
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}

type redisKV struct {
	backend *RedisBackend
	prefix  string
}

func (kv *redisKV) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	v, err := kv.backend.client.Get(ctx, kv.prefix+key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		kv.backend.log.WithField("error", err).WithField("key", key).Warn("redis get failed")
		return "", false
	}
	return v, true
}

func (kv *redisKV) Set(key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := kv.backend.client.Set(ctx, kv.prefix+key, value, 0).Err(); err != nil {
		kv.backend.log.WithField("error", err).WithField("key", key).Warn("redis set failed")
	}
}

func (kv *redisKV) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := kv.backend.client.Del(ctx, kv.prefix+key).Err(); err != nil {
		kv.backend.log.WithField("error", err).WithField("key", key).Warn("redis del failed")
	}
}
