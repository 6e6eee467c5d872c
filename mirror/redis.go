package mirror

import (
	"time"

	rediscache "github.com/go-redis/cache"
	"github.com/go-redis/redis"
	"github.com/vmihailenco/msgpack"
)

// Redis mirrors values into a redis instance through a msgpack codec.
type Redis struct {
	codec *rediscache.Codec
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{
		codec: &rediscache.Codec{
			Redis: client,
			Marshal: func(v interface{}) ([]byte, error) {
				return msgpack.Marshal(v)
			},
			Unmarshal: func(b []byte, v interface{}) error {
				return msgpack.Unmarshal(b, v)
			},
		},
	}
}

func (r *Redis) Get(key string, dst interface{}) error {
	err := r.codec.Get(key, dst)
	if err == rediscache.ErrCacheMiss {
		return ErrNotFound
	}
	return err
}

func (r *Redis) Set(key string, value interface{}, ttl time.Duration) error {
	return r.codec.Set(&rediscache.Item{
		Key:        key,
		Object:     value,
		Expiration: ttl,
	})
}
