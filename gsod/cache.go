package gsod

import(
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skypies/flightwx"
)

// An ObservationCache holds parsed station files, keyed by file and month. A station with
// no data is cached as an empty (non-nil) slice.
type ObservationCache interface {
	Get(ctx context.Context, key string) ([]flightwx.WeatherObservation, bool, error)
	Put(ctx context.Context, key string, obs []flightwx.WeatherObservation) error
}

func cacheKey(stationFile string, ym flightwx.YearMonth) string {
	return fmt.Sprintf("gsod:%s:%s", ym, stationFile)
}

// {{{ MemoryCache

type MemoryCache struct {
	sync.RWMutex
	m map[string][]flightwx.WeatherObservation
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{m: map[string][]flightwx.WeatherObservation{}}
}

func (mc *MemoryCache)Get(ctx context.Context, key string) ([]flightwx.WeatherObservation, bool, error) {
	mc.RLock()
	defer mc.RUnlock()
	obs,exists := mc.m[key]
	return obs, exists, nil
}

func (mc *MemoryCache)Put(ctx context.Context, key string, obs []flightwx.WeatherObservation) error {
	mc.Lock()
	defer mc.Unlock()
	mc.m[key] = obs
	return nil
}

func (mc *MemoryCache)Len() int {
	mc.RLock()
	defer mc.RUnlock()
	return len(mc.m)
}

// }}}
// {{{ RedisCache

// RedisCache shares parsed station files between runs (and between processes), as JSON.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(redisURL string, ttl time.Duration) (*RedisCache, error) {
	opts,err := redis.ParseURL(redisURL)
	if err != nil { return nil, fmt.Errorf("redis url: %w", err) }
	return &RedisCache{Client:redis.NewClient(opts), TTL:ttl}, nil
}

func (rc *RedisCache)Get(ctx context.Context, key string) ([]flightwx.WeatherObservation, bool, error) {
	data,err := rc.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	obs := []flightwx.WeatherObservation{}
	if err := json.Unmarshal(data, &obs); err != nil {
		return nil, false, fmt.Errorf("redis decode %s: %w", key, err)
	}
	return obs, true, nil
}

func (rc *RedisCache)Put(ctx context.Context, key string, obs []flightwx.WeatherObservation) error {
	data,err := json.Marshal(obs)
	if err != nil { return err }
	return rc.Client.Set(ctx, key, data, rc.TTL).Err()
}

func (rc *RedisCache)Close() error { return rc.Client.Close() }

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
