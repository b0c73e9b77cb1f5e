package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waste3d/vod-platform/internal/domain"
	"github.com/waste3d/vod-platform/internal/infrastructure/database"
	"github.com/waste3d/vod-platform/internal/infrastructure/seed"
	"github.com/waste3d/vod-platform/internal/infrastructure/store"
)

func newSeededStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)

	s := store.New(db, store.MustRegistry(store.Entities()...))
	ctx := context.Background()
	require.NoError(t, s.Migrate(ctx))
	applied, err := seed.Apply(ctx, s, seed.Demo())
	require.NoError(t, err)
	require.True(t, applied)
	return s
}

func TestSeedApplyOnlyOnce(t *testing.T) {
	s := newSeededStore(t)
	applied, err := seed.Apply(context.Background(), s, seed.Demo())
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestByID(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	t.Run("without relations", func(t *testing.T) {
		c, err := store.ByID[domain.Course](ctx, s, 1, false)
		require.NoError(t, err)
		assert.Equal(t, "C# For Beginners", c.Title)
		assert.Nil(t, c.Instructor)
		assert.Nil(t, c.Modules)
	})

	t.Run("with relations", func(t *testing.T) {
		c, err := store.ByID[domain.Course](ctx, s, 1, true)
		require.NoError(t, err)
		require.NotNil(t, c.Instructor)
		assert.Equal(t, "John Doe", c.Instructor.Name)
		assert.Len(t, c.Modules, 2)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := store.ByID[domain.Course](ctx, s, 99, true)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unregistered type", func(t *testing.T) {
		_, err := store.ByID[Widget](ctx, s, 1, false)
		assert.ErrorIs(t, err, store.ErrUnregistered)
	})
}

func TestIncludeLeavesUnregisteredFieldsEmpty(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	s := store.New(db, store.MustRegistry(
		store.Entity{Collection: "Gadgets", Model: Gadget{}},
		store.Entity{Collection: "Widgets", Model: Widget{}},
	))
	ctx := context.Background()
	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, store.Create(ctx, s, &Gadget{ID: 1, Name: "sprocket"}))
	require.NoError(t, store.Create(ctx, s, &Widget{ID: 1, Name: "w", GadgetID: 1, Foo: &Foo{ID: 7}}))

	w, err := store.ByID[Widget](ctx, s, 1, true)
	require.NoError(t, err)
	require.NotNil(t, w.Gadget)
	assert.Equal(t, "sprocket", w.Gadget.Name)
	assert.Nil(t, w.Foo)
}

func TestByCompositeKey(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	uc, err := store.ByCompositeKey[domain.UserCourse](ctx, s, seed.DemoUserID, 3)
	require.NoError(t, err)
	assert.Equal(t, seed.DemoUserID, uc.UserID)
	assert.Equal(t, 3, uc.CourseID)

	// the user and course 2 both exist, just not together
	_, err = store.ByCompositeKey[domain.UserCourse](ctx, s, seed.DemoUserID, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.ByCompositeKey[domain.Course](ctx, s, 1, 2)
	assert.ErrorIs(t, err, store.ErrRelationConfig)
}

func TestAllWithIncludes(t *testing.T) {
	s := newSeededStore(t)

	modules, err := store.AllWithIncludes[domain.Module](context.Background(), s)
	require.NoError(t, err)
	require.Len(t, modules, 3)

	byID := map[int]domain.Module{}
	for _, m := range modules {
		require.NotNil(t, m.Course)
		assert.Equal(t, m.CourseID, m.Course.ID)
		byID[m.ID] = m
	}
	assert.Len(t, byID[1].Videos, 3)
	assert.Len(t, byID[1].Downloads, 2)
	assert.Empty(t, byID[2].Downloads)
}

func TestQueryIsImmutable(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	moduleOne := store.All[domain.Video](s).Where("module_id = ?", 1)
	latest := moduleOne.Order("position desc").Limit(1)

	n, err := moduleOne.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	v, err := latest.First(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, v.ID)

	all, err := moduleOne.Include("Module").Find(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.NotNil(t, all[0].Module)

	_, err = store.All[domain.Video](s).Where("module_id = ?", 42).First(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOptions(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	opts, err := store.Options[domain.Instructor](ctx, s, "ID", "Name")
	require.NoError(t, err)
	assert.Equal(t, []store.Option{
		{Value: "1", Label: "John Doe"},
		{Value: "2", Label: "Jane Doe"},
	}, opts)

	_, err = store.Options[domain.Instructor](ctx, s, "ID", "Nickname")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCountAll(t *testing.T) {
	s := newSeededStore(t)

	counts, err := s.CountAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Counts{
		Courses:     3,
		Downloads:   3,
		Instructors: 2,
		Modules:     3,
		Videos:      5,
		Users:       2,
		UserCourses: 4,
	}, counts)
}

func TestDeleteRestrict(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	// course 1 has modules
	assert.ErrorIs(t, store.Delete[domain.Course](ctx, s, 1), domain.ErrRestricted)
	// course 3 has no modules but is granted to a user
	assert.ErrorIs(t, store.Delete[domain.Course](ctx, s, 3), domain.ErrRestricted)
	// instructors are referenced by courses
	assert.ErrorIs(t, store.Delete[domain.Instructor](ctx, s, 2), domain.ErrRestricted)
	assert.ErrorIs(t, store.Delete[domain.Module](ctx, s, 1), domain.ErrRestricted)

	require.NoError(t, store.Delete[domain.Download](ctx, s, 3))
	require.NoError(t, store.Delete[domain.Video](ctx, s, 3))
	require.NoError(t, store.Delete[domain.Module](ctx, s, 3))

	_, err := store.ByID[domain.Module](ctx, s, 3, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.Delete[domain.Video](ctx, s, 3), domain.ErrNotFound)
}

func TestCreateAndRevokeUserCourse(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, s, &domain.UserCourse{UserID: seed.GuestUserID, CourseID: 3}))
	_, err := store.ByCompositeKey[domain.UserCourse](ctx, s, seed.GuestUserID, 3)
	require.NoError(t, err)

	require.NoError(t, store.DeleteByCompositeKey[domain.UserCourse](ctx, s, seed.GuestUserID, 3))
	_, err = store.ByCompositeKey[domain.UserCourse](ctx, s, seed.GuestUserID, 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// the other grants of both users are untouched
	n, err := store.All[domain.UserCourse](s).Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}

func TestUpdate(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	v, err := store.ByID[domain.Video](ctx, s, 2, false)
	require.NoError(t, err)
	v.Title = "Renamed"
	v.Position = 9
	require.NoError(t, store.Update(ctx, s, v))

	got, err := store.ByID[domain.Video](ctx, s, 2, false)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, 9, got.Position)
	assert.Equal(t, 1, got.ModuleID)

	err = store.Update(ctx, s, &domain.Instructor{ID: 99, Name: "Nobody"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateAfterSeedGetsFreshID(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()
	require.NoError(t, s.SyncSequences(ctx))

	in := domain.Instructor{Name: "New"}
	require.NoError(t, store.Create(ctx, s, &in))
	assert.Greater(t, in.ID, 2)

	c := domain.Course{Title: "New", InstructorID: in.ID}
	require.NoError(t, store.Create(ctx, s, &c))
	assert.Greater(t, c.ID, 3)

	m := domain.Module{Title: "New", CourseID: c.ID}
	require.NoError(t, store.Create(ctx, s, &m))
	assert.Greater(t, m.ID, 3)

	v := domain.Video{Title: "New", ModuleID: m.ID, CourseID: c.ID}
	require.NoError(t, store.Create(ctx, s, &v))
	assert.Greater(t, v.ID, 5)
}

func TestEnsure(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	inserted, err := store.Ensure(ctx, s, &domain.UserCourse{UserID: seed.DemoUserID, CourseID: 1})
	require.NoError(t, err)
	assert.False(t, inserted)

	inserted, err = store.Ensure(ctx, s, &domain.UserCourse{UserID: seed.GuestUserID, CourseID: 3})
	require.NoError(t, err)
	assert.True(t, inserted)

	n, err := store.All[domain.UserCourse](s).Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
}
