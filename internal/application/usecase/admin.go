package usecase

import (
	"context"

	"github.com/pkg/errors"

	"github.com/waste3d/vod-platform/internal/domain"
	"github.com/waste3d/vod-platform/internal/infrastructure/cache"
	"github.com/waste3d/vod-platform/internal/infrastructure/store"
	"github.com/waste3d/vod-platform/internal/platform/logger"
)

// AdminUseCase is the catalog write side. Every write drops the cached detail
// of the courses it touches.
type AdminUseCase struct {
	store *store.Store
	cache cache.CourseCache
	log   *logger.Logger
}

func NewAdminUseCase(s *store.Store, c cache.CourseCache, log *logger.Logger) *AdminUseCase {
	if c == nil {
		c = cache.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AdminUseCase{store: s, cache: c, log: log.With("component", "admin")}
}

func (uc *AdminUseCase) Counts(ctx context.Context) (domain.Counts, error) {
	return uc.store.CountAll(ctx)
}

func (uc *AdminUseCase) Cards(ctx context.Context) ([]Card, error) {
	counts, err := uc.store.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildCards(counts), nil
}

// Options returns the choice list for the named collection.
func (uc *AdminUseCase) Options(ctx context.Context, kind string) ([]store.Option, error) {
	switch kind {
	case "instructors":
		return store.Options[domain.Instructor](ctx, uc.store, "ID", "Name")
	case "courses":
		return store.Options[domain.Course](ctx, uc.store, "ID", "Title")
	case "modules":
		return store.Options[domain.Module](ctx, uc.store, "ID", "Title")
	case "users":
		return store.Options[domain.User](ctx, uc.store, "ID", "Email")
	default:
		return nil, errors.Wrapf(domain.ErrInvalidInput, "no option list for %q", kind)
	}
}

func (uc *AdminUseCase) Instructors(ctx context.Context) ([]domain.Instructor, error) {
	return store.AllWithIncludes[domain.Instructor](ctx, uc.store)
}

func (uc *AdminUseCase) Courses(ctx context.Context) ([]domain.Course, error) {
	return store.AllWithIncludes[domain.Course](ctx, uc.store)
}

func (uc *AdminUseCase) Modules(ctx context.Context) ([]domain.Module, error) {
	return store.AllWithIncludes[domain.Module](ctx, uc.store)
}

func (uc *AdminUseCase) Videos(ctx context.Context) ([]domain.Video, error) {
	return store.AllWithIncludes[domain.Video](ctx, uc.store)
}

func (uc *AdminUseCase) Downloads(ctx context.Context) ([]domain.Download, error) {
	return store.AllWithIncludes[domain.Download](ctx, uc.store)
}

func (uc *AdminUseCase) UserCourses(ctx context.Context) ([]domain.UserCourse, error) {
	return store.AllWithIncludes[domain.UserCourse](ctx, uc.store)
}

// Instructors

func (uc *AdminUseCase) CreateInstructor(ctx context.Context, in *domain.Instructor) error {
	in.ID = 0
	if err := store.Create(ctx, uc.store, in); err != nil {
		return err
	}
	uc.log.Info("instructor created", "instructor_id", in.ID)
	return nil
}

func (uc *AdminUseCase) UpdateInstructor(ctx context.Context, id int, in *domain.Instructor) error {
	in.ID = id
	if err := store.Update(ctx, uc.store, in); err != nil {
		return err
	}
	taught, err := store.All[domain.Course](uc.store).Where("instructor_id = ?", id).Find(ctx)
	if err != nil {
		return err
	}
	ids := make([]int, len(taught))
	for i, c := range taught {
		ids[i] = c.ID
	}
	uc.invalidate(ctx, ids...)
	return nil
}

func (uc *AdminUseCase) DeleteInstructor(ctx context.Context, id int) error {
	return store.Delete[domain.Instructor](ctx, uc.store, id)
}

// Courses

func (uc *AdminUseCase) CreateCourse(ctx context.Context, c *domain.Course) error {
	c.ID = 0
	if err := uc.exists("instructor", func() error {
		_, err := store.ByID[domain.Instructor](ctx, uc.store, c.InstructorID, false)
		return err
	}); err != nil {
		return err
	}
	if err := store.Create(ctx, uc.store, c); err != nil {
		return err
	}
	uc.log.Info("course created", "course_id", c.ID)
	return nil
}

func (uc *AdminUseCase) UpdateCourse(ctx context.Context, id int, c *domain.Course) error {
	c.ID = id
	if err := uc.exists("instructor", func() error {
		_, err := store.ByID[domain.Instructor](ctx, uc.store, c.InstructorID, false)
		return err
	}); err != nil {
		return err
	}
	if err := store.Update(ctx, uc.store, c); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

func (uc *AdminUseCase) DeleteCourse(ctx context.Context, id int) error {
	if err := store.Delete[domain.Course](ctx, uc.store, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

// Modules

func (uc *AdminUseCase) CreateModule(ctx context.Context, m *domain.Module) error {
	m.ID = 0
	if err := uc.courseExists(ctx, m.CourseID); err != nil {
		return err
	}
	if err := store.Create(ctx, uc.store, m); err != nil {
		return err
	}
	uc.invalidate(ctx, m.CourseID)
	return nil
}

// UpdateModule may move a module to another course only while it has no videos or
// downloads, since those carry the course id too.
func (uc *AdminUseCase) UpdateModule(ctx context.Context, id int, m *domain.Module) error {
	old, err := store.ByID[domain.Module](ctx, uc.store, id, true)
	if err != nil {
		return err
	}
	if err := uc.courseExists(ctx, m.CourseID); err != nil {
		return err
	}
	if old.CourseID != m.CourseID && (len(old.Videos) > 0 || len(old.Downloads) > 0) {
		return errors.Wrapf(domain.ErrRestricted, "module %d has content and cannot change course", id)
	}
	m.ID = id
	if err := store.Update(ctx, uc.store, m); err != nil {
		return err
	}
	uc.invalidate(ctx, old.CourseID, m.CourseID)
	return nil
}

func (uc *AdminUseCase) DeleteModule(ctx context.Context, id int) error {
	old, err := store.ByID[domain.Module](ctx, uc.store, id, false)
	if err != nil {
		return err
	}
	if err := store.Delete[domain.Module](ctx, uc.store, id); err != nil {
		return err
	}
	uc.invalidate(ctx, old.CourseID)
	return nil
}

// Videos

func (uc *AdminUseCase) CreateVideo(ctx context.Context, v *domain.Video) error {
	v.ID = 0
	courseID, err := uc.moduleCourse(ctx, v.ModuleID)
	if err != nil {
		return err
	}
	v.CourseID = courseID
	if err := store.Create(ctx, uc.store, v); err != nil {
		return err
	}
	uc.invalidate(ctx, courseID)
	return nil
}

func (uc *AdminUseCase) UpdateVideo(ctx context.Context, id int, v *domain.Video) error {
	old, err := store.ByID[domain.Video](ctx, uc.store, id, false)
	if err != nil {
		return err
	}
	courseID, err := uc.moduleCourse(ctx, v.ModuleID)
	if err != nil {
		return err
	}
	v.ID, v.CourseID = id, courseID
	if err := store.Update(ctx, uc.store, v); err != nil {
		return err
	}
	uc.invalidate(ctx, old.CourseID, courseID)
	return nil
}

func (uc *AdminUseCase) DeleteVideo(ctx context.Context, id int) error {
	old, err := store.ByID[domain.Video](ctx, uc.store, id, false)
	if err != nil {
		return err
	}
	if err := store.Delete[domain.Video](ctx, uc.store, id); err != nil {
		return err
	}
	uc.invalidate(ctx, old.CourseID)
	return nil
}

// Downloads

func (uc *AdminUseCase) CreateDownload(ctx context.Context, d *domain.Download) error {
	d.ID = 0
	courseID, err := uc.moduleCourse(ctx, d.ModuleID)
	if err != nil {
		return err
	}
	d.CourseID = courseID
	if err := store.Create(ctx, uc.store, d); err != nil {
		return err
	}
	uc.invalidate(ctx, courseID)
	return nil
}

func (uc *AdminUseCase) UpdateDownload(ctx context.Context, id int, d *domain.Download) error {
	old, err := store.ByID[domain.Download](ctx, uc.store, id, false)
	if err != nil {
		return err
	}
	courseID, err := uc.moduleCourse(ctx, d.ModuleID)
	if err != nil {
		return err
	}
	d.ID, d.CourseID = id, courseID
	if err := store.Update(ctx, uc.store, d); err != nil {
		return err
	}
	uc.invalidate(ctx, old.CourseID, courseID)
	return nil
}

func (uc *AdminUseCase) DeleteDownload(ctx context.Context, id int) error {
	old, err := store.ByID[domain.Download](ctx, uc.store, id, false)
	if err != nil {
		return err
	}
	if err := store.Delete[domain.Download](ctx, uc.store, id); err != nil {
		return err
	}
	uc.invalidate(ctx, old.CourseID)
	return nil
}

// Entitlements

// Grant gives userID access to courseID. Granting an existing pair is a no-op.
// Unknown users are registered on first grant.
func (uc *AdminUseCase) Grant(ctx context.Context, userID string, courseID int) error {
	if userID == "" {
		return errors.Wrap(domain.ErrInvalidInput, "user id is required")
	}
	if err := uc.courseExists(ctx, courseID); err != nil {
		return err
	}

	if _, err := store.Ensure(ctx, uc.store, &domain.User{ID: userID}); err != nil {
		return errors.Wrapf(err, "register user %s", userID)
	}
	inserted, err := store.Ensure(ctx, uc.store, &domain.UserCourse{UserID: userID, CourseID: courseID})
	if err != nil {
		return err
	}
	if !inserted {
		return nil
	}
	uc.log.Info("course granted", "user_id", userID, "course_id", courseID)
	return nil
}

func (uc *AdminUseCase) Revoke(ctx context.Context, userID string, courseID int) error {
	if err := store.DeleteByCompositeKey[domain.UserCourse](ctx, uc.store, userID, courseID); err != nil {
		return err
	}
	uc.log.Info("course revoked", "user_id", userID, "course_id", courseID)
	return nil
}

func (uc *AdminUseCase) courseExists(ctx context.Context, courseID int) error {
	return uc.exists("course", func() error {
		_, err := store.ByID[domain.Course](ctx, uc.store, courseID, false)
		return err
	})
}

func (uc *AdminUseCase) moduleCourse(ctx context.Context, moduleID int) (int, error) {
	var courseID int
	err := uc.exists("module", func() error {
		m, err := store.ByID[domain.Module](ctx, uc.store, moduleID, false)
		if err == nil {
			courseID = m.CourseID
		}
		return err
	})
	return courseID, err
}

// exists turns a missing parent into an input error.
func (uc *AdminUseCase) exists(what string, load func() error) error {
	err := load()
	if errors.Is(err, domain.ErrNotFound) {
		return errors.Wrapf(domain.ErrInvalidInput, "unknown %s", what)
	}
	return err
}

func (uc *AdminUseCase) invalidate(ctx context.Context, courseIDs ...int) {
	if err := uc.cache.Invalidate(ctx, courseIDs...); err != nil {
		uc.log.Warn("course cache invalidation failed", "course_ids", courseIDs, "error", err)
	}
}
