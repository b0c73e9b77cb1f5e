package repository

import (
	"context"

	"github.com/pkg/errors"

	"github.com/waste3d/vod-platform/internal/domain"
	"github.com/waste3d/vod-platform/internal/infrastructure/cache"
	"github.com/waste3d/vod-platform/internal/infrastructure/store"
	"github.com/waste3d/vod-platform/internal/platform/logger"
)

var courseIncludes = []string{"Instructor", "Modules", "Modules.Videos", "Modules.Downloads"}

type SQLReadRepository struct {
	store *store.Store
	cache cache.CourseCache
	log   *logger.Logger
}

func NewSQLReadRepository(s *store.Store, c cache.CourseCache, log *logger.Logger) *SQLReadRepository {
	if c == nil {
		c = cache.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SQLReadRepository{store: s, cache: c, log: log.With("component", "sql_read_repository")}
}

func (r *SQLReadRepository) GetCourse(ctx context.Context, userID string, courseID int) (*domain.Course, error) {
	if err := r.authorize(ctx, userID, courseID, func() error {
		_, err := store.ByID[domain.Course](ctx, r.store, courseID, false)
		return err
	}); err != nil {
		return nil, err
	}

	if c, ok := r.cache.Get(ctx, courseID); ok {
		r.log.Debug("course cache hit", "course_id", courseID)
		return c, nil
	}

	version := r.cache.Version(ctx, courseID)
	c, err := store.All[domain.Course](r.store).
		Where("id = ?", courseID).
		Include(courseIncludes...).
		First(ctx)
	if err != nil {
		return nil, err
	}
	sortCourse(c)

	switch err := r.cache.Set(ctx, c, version); {
	case errors.Is(err, cache.ErrStale):
		r.log.Debug("course changed while loading, not cached", "course_id", courseID)
	case err != nil:
		r.log.Warn("course cache write failed", "course_id", courseID, "error", err)
	}
	return c, nil
}

func (r *SQLReadRepository) GetCourses(ctx context.Context, userID string) ([]domain.Course, error) {
	courses, err := store.All[domain.Course](r.store).
		Where("id IN (?)", r.grantedCourseIDs(userID)).
		Include("Instructor", "Modules").
		Order("id").
		Find(ctx)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		sortCourse(&courses[i])
	}
	return courses, nil
}

func (r *SQLReadRepository) GetVideo(ctx context.Context, userID string, videoID int) (*domain.Video, error) {
	v, err := store.ByID[domain.Video](ctx, r.store, videoID, false)
	if err != nil {
		return nil, err
	}
	if err := r.authorize(ctx, userID, v.CourseID, nil); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *SQLReadRepository) GetVideos(ctx context.Context, userID string, moduleID int) ([]domain.Video, error) {
	q := store.All[domain.Video](r.store)
	if moduleID == 0 {
		q = q.Where("course_id IN (?)", r.grantedCourseIDs(userID))
	} else {
		m, err := store.ByID[domain.Module](ctx, r.store, moduleID, false)
		if err != nil {
			return nil, err
		}
		if err := r.authorize(ctx, userID, m.CourseID, nil); err != nil {
			return nil, err
		}
		q = q.Where("module_id = ?", moduleID)
	}

	videos, err := q.Order("course_id, module_id, position, id").Find(ctx)
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *SQLReadRepository) grantedCourseIDs(userID string) interface{} {
	return r.store.DB().Model(&domain.UserCourse{}).Select("course_id").Where("user_id = ?", userID)
}

// authorize fails with ErrUnauthorized when no grant exists. exists, when set, is consulted
// first on a missing grant so an absent record still reports ErrNotFound.
func (r *SQLReadRepository) authorize(ctx context.Context, userID string, courseID int, exists func() error) error {
	_, err := store.ByCompositeKey[domain.UserCourse](ctx, r.store, userID, courseID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if exists != nil {
		if err := exists(); err != nil {
			return err
		}
	}
	return errors.Wrapf(domain.ErrUnauthorized, "user %s course %d", userID, courseID)
}
