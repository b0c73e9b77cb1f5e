package repository

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/waste3d/vod-platform/internal/domain"
	"github.com/waste3d/vod-platform/internal/infrastructure/seed"
)

// MockReadRepository serves a fixed data set from memory. Every call builds fresh
// values, so callers may modify what they get back.
type MockReadRepository struct {
	data seed.Data
}

func NewMockReadRepository(data seed.Data) *MockReadRepository {
	return &MockReadRepository{data: data}
}

func (r *MockReadRepository) GetCourse(_ context.Context, userID string, courseID int) (*domain.Course, error) {
	c, ok := r.course(courseID)
	if !ok {
		return nil, errors.Wrapf(domain.ErrNotFound, "Courses [%d]", courseID)
	}
	if !r.granted(userID, courseID) {
		return nil, errors.Wrapf(domain.ErrUnauthorized, "user %s course %d", userID, courseID)
	}
	r.hydrate(&c, true)
	return &c, nil
}

func (r *MockReadRepository) GetCourses(_ context.Context, userID string) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range r.data.Courses {
		if !r.granted(userID, c.ID) {
			continue
		}
		r.hydrate(&c, false)
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MockReadRepository) GetVideo(_ context.Context, userID string, videoID int) (*domain.Video, error) {
	for _, v := range r.data.Videos {
		if v.ID != videoID {
			continue
		}
		if !r.granted(userID, v.CourseID) {
			return nil, errors.Wrapf(domain.ErrUnauthorized, "user %s course %d", userID, v.CourseID)
		}
		return &v, nil
	}
	return nil, errors.Wrapf(domain.ErrNotFound, "Videos [%d]", videoID)
}

func (r *MockReadRepository) GetVideos(_ context.Context, userID string, moduleID int) ([]domain.Video, error) {
	if moduleID != 0 {
		m, ok := r.module(moduleID)
		if !ok {
			return nil, errors.Wrapf(domain.ErrNotFound, "Modules [%d]", moduleID)
		}
		if !r.granted(userID, m.CourseID) {
			return nil, errors.Wrapf(domain.ErrUnauthorized, "user %s course %d", userID, m.CourseID)
		}
	}

	var out []domain.Video
	for _, v := range r.data.Videos {
		if moduleID != 0 && v.ModuleID != moduleID {
			continue
		}
		if moduleID == 0 && !r.granted(userID, v.CourseID) {
			continue
		}
		out = append(out, v)
	}
	sortVideos(out)
	return out, nil
}

func (r *MockReadRepository) granted(userID string, courseID int) bool {
	for _, uc := range r.data.UserCourses {
		if uc.UserID == userID && uc.CourseID == courseID {
			return true
		}
	}
	return false
}

func (r *MockReadRepository) course(id int) (domain.Course, bool) {
	for _, c := range r.data.Courses {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Course{}, false
}

func (r *MockReadRepository) module(id int) (domain.Module, bool) {
	for _, m := range r.data.Modules {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Module{}, false
}

// hydrate attaches the instructor and modules; deep also fills videos and downloads.
func (r *MockReadRepository) hydrate(c *domain.Course, deep bool) {
	for _, in := range r.data.Instructors {
		if in.ID == c.InstructorID {
			in := in
			c.Instructor = &in
			break
		}
	}

	c.Modules = nil
	for _, m := range r.data.Modules {
		if m.CourseID != c.ID {
			continue
		}
		if deep {
			for _, v := range r.data.Videos {
				if v.ModuleID == m.ID {
					m.Videos = append(m.Videos, v)
				}
			}
			for _, d := range r.data.Downloads {
				if d.ModuleID == m.ID {
					m.Downloads = append(m.Downloads, d)
				}
			}
		}
		c.Modules = append(c.Modules, m)
	}
	sortCourse(c)
}
