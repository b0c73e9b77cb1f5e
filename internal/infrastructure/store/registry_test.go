package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waste3d/vod-platform/internal/domain"
	"github.com/waste3d/vod-platform/internal/infrastructure/store"
)

type Gadget struct {
	ID   int
	Name string
}

type Foo struct {
	ID int
}

type Widget struct {
	ID       int
	Name     string
	GadgetID int
	Gadget   *Gadget
	Foo      *Foo `gorm:"-"`
}

func TestEntitiesResolveRelations(t *testing.T) {
	r, err := store.NewRegistry(store.Entities()...)
	require.NoError(t, err)

	course, err := r.KindOf(domain.Course{})
	require.NoError(t, err)
	assert.Equal(t, "Courses", course.Collection)
	assert.Equal(t, []string{"Modules"}, course.Collections())
	assert.Equal(t, []string{"Instructor"}, course.References())

	module, ok := r.Collection("Modules")
	require.True(t, ok)
	assert.Equal(t, []string{"Videos", "Downloads"}, module.Collections())
	assert.Equal(t, []string{"Course"}, module.References())

	video, err := r.KindOf(&domain.Video{})
	require.NoError(t, err)
	assert.Empty(t, video.Collections())
	assert.Equal(t, []string{"Module", "Course"}, video.References())

	user, err := r.KindOf(domain.User{})
	require.NoError(t, err)
	assert.Empty(t, user.Relations)

	assert.Equal(t,
		[]string{"Courses", "Downloads", "Instructors", "Modules", "UserCourses", "Users", "Videos"},
		r.CollectionNames())
	assert.Len(t, r.Kinds(), 7)
}

func TestUnregisteredFieldTypeIsIgnored(t *testing.T) {
	r, err := store.NewRegistry(
		store.Entity{Collection: "Gadgets", Model: Gadget{}},
		store.Entity{Collection: "Widgets", Model: Widget{}},
	)
	require.NoError(t, err)

	widget, err := r.KindOf(Widget{})
	require.NoError(t, err)
	require.Len(t, widget.Relations, 1)
	assert.Equal(t, "Gadget", widget.Relations[0].Field)
	assert.Equal(t, store.ReferenceRelation, widget.Relations[0].Kind)
}

func TestRegistryConfigurationErrors(t *testing.T) {
	type misnamed struct {
		ID    int
		Thing *Gadget
	}
	type wrongElement struct {
		ID      int
		Gadgets []Widget
	}
	type misnamedSlice struct {
		ID    int
		Parts []Gadget
	}

	cases := map[string][]store.Entity{
		"reference not named after a collection": {
			{Collection: "Gadgets", Model: Gadget{}},
			{Collection: "Misnamed", Model: misnamed{}},
		},
		"collection holds another entity": {
			{Collection: "Gadgets", Model: Gadget{}},
			{Collection: "Widgets", Model: Widget{}},
			{Collection: "WrongElement", Model: wrongElement{}},
		},
		"collection not named after a collection": {
			{Collection: "Gadgets", Model: Gadget{}},
			{Collection: "MisnamedSlice", Model: misnamedSlice{}},
		},
		"duplicate collection": {
			{Collection: "Gadgets", Model: Gadget{}},
			{Collection: "Gadgets", Model: Foo{}},
		},
		"model is not a struct": {
			{Collection: "Numbers", Model: 42},
		},
	}

	for name, entities := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := store.NewRegistry(entities...)
			assert.ErrorIs(t, err, store.ErrRelationConfig)
		})
	}
}

func TestKindOfUnregistered(t *testing.T) {
	r := store.MustRegistry(store.Entities()...)
	_, err := r.KindOf(Widget{})
	assert.ErrorIs(t, err, store.ErrUnregistered)
}

func TestMustRegistryPanics(t *testing.T) {
	assert.Panics(t, func() {
		store.MustRegistry(store.Entity{Collection: "", Model: Gadget{}})
	})
}
