// Package rankcache keeps running per-student score totals in Redis so the
// leaderboard can be served without aggregating every result.
package rankcache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrDisabled is returned by Nop.Top so callers fall back to the database.
	ErrDisabled = errors.New("rank cache disabled")
	// ErrStale is returned by Top until Rebuild has loaded the totals, and
	// again after Invalidate. Callers rebuild from the database.
	ErrStale = errors.New("rank cache not built")
)

// Entry is one student's aggregate.
type Entry struct {
	UserID     string
	Name       string
	Quizzes    int
	TotalScore int
}

// Average returns TotalScore / Quizzes, or 0 for no quizzes.
func (e Entry) Average() float64 {
	if e.Quizzes == 0 {
		return 0
	}
	return float64(e.TotalScore) / float64(e.Quizzes)
}

// Cache is the leaderboard cache.
type Cache interface {
	// Record adds one result's score to the student's totals.
	Record(ctx context.Context, userID, name string, score int) error
	// Top returns up to n entries ordered by average score, highest first.
	// n <= 0 returns all entries.
	Top(ctx context.Context, n int) ([]Entry, error)
	// Rebuild replaces the cached totals with entries and marks the cache
	// as built.
	Rebuild(ctx context.Context, entries []Entry) error
	// Invalidate drops the totals so the next Top reports ErrStale.
	Invalidate(ctx context.Context) error
	Close() error
}

// Options configures the Redis connection.
type Options struct {
	Addr       string
	Password   string
	DB         int
	Prefix     string
	MaxRetries int
	Timeout    time.Duration
}

// Redis implements Cache with a sorted set keyed by average score and
// hashes for sums, counts and display names. A marker key records that the
// totals were loaded by Rebuild; without it Record is skipped and Top
// reports ErrStale, so a partial cache is never served.
type Redis struct {
	client *redis.Client
	keys   keys
}

type keys struct {
	avg, sum, count, names, built string
}

func (k keys) all() []string {
	return []string{k.avg, k.sum, k.count, k.names, k.built}
}

func newKeys(prefix string) keys {
	if prefix == "" {
		prefix = "quizup:leaderboard"
	}
	return keys{
		avg:   prefix + ":avg",
		sum:   prefix + ":sum",
		count: prefix + ":count",
		names: prefix + ":names",
		built: prefix + ":built",
	}
}

// Connect returns a Nop cache when opts.Addr is empty, otherwise a Redis
// cache after a successful ping.
func Connect(ctx context.Context, opts Options) (Cache, error) {
	if opts.Addr == "" {
		return Nop{}, nil
	}
	r, err := NewRedis(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// NewRedis dials Redis and verifies the connection.
func NewRedis(ctx context.Context, opts Options) (*Redis, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		MaxRetries:   opts.MaxRetries,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}
	return &Redis{client: client, keys: newKeys(opts.Prefix)}, nil
}

// recordScript updates sum, count and name atomically and re-scores the
// member in the average set. It does nothing until the cache is built.
var recordScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[5]) == 0 then
  return 0
end
local sum = redis.call('HINCRBY', KEYS[2], ARGV[1], ARGV[2])
local n = redis.call('HINCRBY', KEYS[3], ARGV[1], 1)
redis.call('HSET', KEYS[4], ARGV[1], ARGV[3])
redis.call('ZADD', KEYS[1], sum / n, ARGV[1])
return n
`)

func (r *Redis) Record(ctx context.Context, userID, name string, score int) error {
	k := r.keys
	err := recordScript.Run(ctx, r.client,
		k.all(),
		userID, score, name,
	).Err()
	if err != nil {
		return fmt.Errorf("record score for %s: %w", userID, err)
	}
	return nil
}

func (r *Redis) Top(ctx context.Context, n int) ([]Entry, error) {
	stop := int64(-1)
	if n > 0 {
		stop = int64(n - 1)
	}
	built, err := r.client.Exists(ctx, r.keys.built).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	if built == 0 {
		return nil, ErrStale
	}
	members, err := r.client.ZRevRange(ctx, r.keys.avg, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	if len(members) == 0 {
		return nil, nil
	}

	pipe := r.client.Pipeline()
	sums := pipe.HMGet(ctx, r.keys.sum, members...)
	counts := pipe.HMGet(ctx, r.keys.count, members...)
	names := pipe.HMGet(ctx, r.keys.names, members...)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("read leaderboard totals: %w", err)
	}

	return assemble(members, sums.Val(), counts.Val(), names.Val()), nil
}

func (r *Redis) Rebuild(ctx context.Context, entries []Entry) error {
	k := r.keys
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, k.all()...)
		for _, e := range entries {
			if e.Quizzes == 0 {
				continue
			}
			pipe.HSet(ctx, k.sum, e.UserID, e.TotalScore)
			pipe.HSet(ctx, k.count, e.UserID, e.Quizzes)
			pipe.HSet(ctx, k.names, e.UserID, e.Name)
			pipe.ZAdd(ctx, k.avg, redis.Z{Score: e.Average(), Member: e.UserID})
		}
		pipe.Set(ctx, k.built, time.Now().Unix(), 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("rebuild leaderboard: %w", err)
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, r.keys.all()...).Err(); err != nil {
		return fmt.Errorf("invalidate leaderboard: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// assemble zips HMGET replies into entries. Missing fields read as zero.
func assemble(members []string, sums, counts, names []any) []Entry {
	out := make([]Entry, 0, len(members))
	for i, id := range members {
		out = append(out, Entry{
			UserID:     id,
			Name:       stringAt(names, i),
			TotalScore: intAt(sums, i),
			Quizzes:    intAt(counts, i),
		})
	}
	return out
}

func stringAt(vals []any, i int) string {
	if i >= len(vals) {
		return ""
	}
	s, _ := vals[i].(string)
	return s
}

func intAt(vals []any, i int) int {
	n, _ := strconv.Atoi(stringAt(vals, i))
	return n
}

// Nop is the cache used when Redis is not configured.
type Nop struct{}

func (Nop) Record(context.Context, string, string, int) error { return nil }
func (Nop) Top(context.Context, int) ([]Entry, error)         { return nil, ErrDisabled }
func (Nop) Rebuild(context.Context, []Entry) error            { return nil }
func (Nop) Invalidate(context.Context) error                  { return nil }
func (Nop) Close() error                                      { return nil }
