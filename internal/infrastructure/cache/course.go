package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/waste3d/vod-platform/internal/domain"
)

// ErrStale is returned by Set when the course was invalidated after the version was read.
var ErrStale = errors.New("cached course is stale")

// CourseCache holds fully hydrated courses keyed by id. Entitlement is never cached.
//
// Readers take Version before loading a course and hand it to Set, so a load that
// raced with Invalidate is never stored.
type CourseCache interface {
	Get(ctx context.Context, id int) (*domain.Course, bool)
	Version(ctx context.Context, id int) int64
	Set(ctx context.Context, c *domain.Course, version int64) error
	Invalidate(ctx context.Context, ids ...int) error
}

func CourseKey(id int) string {
	return "course:detail:" + strconv.Itoa(id)
}

func VersionKey(id int) string {
	return "course:version:" + strconv.Itoa(id)
}

type RedisCourseCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCourseCache(client *redis.Client, ttl time.Duration) *RedisCourseCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisCourseCache{client: client, ttl: ttl}
}

// Get treats any redis or decode failure as a miss.
func (c *RedisCourseCache) Get(ctx context.Context, id int) (*domain.Course, bool) {
	val, err := c.client.Get(ctx, CourseKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var course domain.Course
	if json.Unmarshal(val, &course) != nil {
		return nil, false
	}
	return &course, true
}

// Version is 0 for a course never invalidated, and also when redis fails.
func (c *RedisCourseCache) Version(ctx context.Context, id int) int64 {
	v, err := c.client.Get(ctx, VersionKey(id)).Int64()
	if err != nil {
		return 0
	}
	return v
}

func (c *RedisCourseCache) Set(ctx context.Context, course *domain.Course, version int64) error {
	data, err := json.Marshal(course)
	if err != nil {
		return err
	}
	vkey := VersionKey(course.ID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return ErrStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, CourseKey(course.ID), data, c.ttl)
			return nil
		})
		return err
	}, vkey)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStale
	}
	return err
}

// Invalidate drops the cached courses and bumps their versions in one transaction.
func (c *RedisCourseCache) Invalidate(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			pipe.Del(ctx, CourseKey(id))
			pipe.Incr(ctx, VersionKey(id))
		}
		return nil
	})
	return err
}

// Nop is used when no redis address is configured.
type Nop struct{}

func (Nop) Get(context.Context, int) (*domain.Course, bool)  { return nil, false }
func (Nop) Version(context.Context, int) int64               { return 0 }
func (Nop) Set(context.Context, *domain.Course, int64) error { return nil }
func (Nop) Invalidate(context.Context, ...int) error         { return nil }
