package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/waste3d/vod-platform/internal/domain"
)

func TestCourseRenamesFields(t *testing.T) {
	got := Course(domain.Course{
		ID:              7,
		Title:           "Go",
		Description:     "desc",
		ImageURL:        "/img.jpg",
		MarqueeImageURL: "/marquee.jpg",
	})
	assert.Equal(t, CourseDTO{
		CourseID:          7,
		CourseTitle:       "Go",
		CourseDescription: "desc",
		MarqueeImageURL:   "/marquee.jpg",
		CourseImageURL:    "/img.jpg",
	}, got)
}

func TestInstructor(t *testing.T) {
	assert.Equal(t, InstructorDTO{}, Instructor(nil))
	assert.Equal(t,
		InstructorDTO{InstructorName: "Ann", InstructorDescription: "bio", InstructorAvatar: "/a.png"},
		Instructor(&domain.Instructor{Name: "Ann", Description: "bio", Thumbnail: "/a.png"}))
}

func TestModuleEmptyListsAreNil(t *testing.T) {
	empty := Module(domain.Module{ID: 1, Title: "Intro", Videos: []domain.Video{}})
	assert.Equal(t, "Intro", empty.ModuleTitle)
	assert.Nil(t, empty.Videos)
	assert.Nil(t, empty.Downloads)

	full := Module(domain.Module{
		ID:        2,
		Title:     "Deep dive",
		Videos:    []domain.Video{{ID: 3, Title: "v", URL: "u", Duration: 4}},
		Downloads: []domain.Download{{ID: 5, Title: "slides", URL: "/s.pdf"}},
	})
	assert.Equal(t, []VideoDTO{{ID: 3, Title: "v", URL: "u", Duration: 4}}, full.Videos)
	assert.Equal(t, []DownloadDTO{{DownloadTitle: "slides", DownloadURL: "/s.pdf"}}, full.Downloads)
}

func TestListsPreserveOrder(t *testing.T) {
	cs := Courses([]domain.Course{{ID: 3}, {ID: 1}})
	assert.Equal(t, 3, cs[0].CourseID)
	assert.Equal(t, 1, cs[1].CourseID)

	assert.NotNil(t, Courses(nil))
	assert.Len(t, Modules([]domain.Module{{ID: 1}, {ID: 2}}), 2)
}
