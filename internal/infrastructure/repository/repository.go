package repository

import (
	"context"
	"sort"

	"github.com/waste3d/vod-platform/internal/domain"
)

// ReadRepository is the entitlement-checked read side of the membership area.
// Every method fails with domain.ErrNotFound when the requested record does not exist
// and with domain.ErrUnauthorized when it exists but the user holds no grant for its course.
type ReadRepository interface {
	GetCourse(ctx context.Context, userID string, courseID int) (*domain.Course, error)
	GetCourses(ctx context.Context, userID string) ([]domain.Course, error)
	GetVideo(ctx context.Context, userID string, videoID int) (*domain.Video, error)
	// GetVideos lists the videos of a module. moduleID 0 lists every video of every
	// course the user is entitled to.
	GetVideos(ctx context.Context, userID string, moduleID int) ([]domain.Video, error)
}

// sortCourse puts modules in id order and their children in lesson order.
func sortCourse(c *domain.Course) {
	sort.SliceStable(c.Modules, func(i, j int) bool { return c.Modules[i].ID < c.Modules[j].ID })
	for i := range c.Modules {
		m := &c.Modules[i]
		sortVideos(m.Videos)
		sort.SliceStable(m.Downloads, func(i, j int) bool { return m.Downloads[i].ID < m.Downloads[j].ID })
	}
}

func sortVideos(videos []domain.Video) {
	sort.SliceStable(videos, func(i, j int) bool {
		a, b := videos[i], videos[j]
		if a.CourseID != b.CourseID {
			return a.CourseID < b.CourseID
		}
		if a.ModuleID != b.ModuleID {
			return a.ModuleID < b.ModuleID
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.ID < b.ID
	})
}
