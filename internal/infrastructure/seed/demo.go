package seed

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/waste3d/vod-platform/internal/domain"
	"github.com/waste3d/vod-platform/internal/infrastructure/store"
)

const (
	DemoUserID  = "3fcd8c17-0a83-4c70-8b1c-9b2d4131a92f"
	GuestUserID = "00000000-0000-0000-0000-000000000000"
)

// Data is a complete, consistent set of catalog rows.
type Data struct {
	Users       []domain.User
	Instructors []domain.Instructor
	Courses     []domain.Course
	Modules     []domain.Module
	Videos      []domain.Video
	Downloads   []domain.Download
	UserCourses []domain.UserCourse
}

// Demo returns a fresh copy of the demo catalog on every call.
func Demo() Data {
	const longText = "A very very long description."
	const videoURL = "https://www.youtube.com/watch?v=BJFyzpBcaCY"
	const pdfURL = "https://1drv.ms/b/s!AuD5OaH0ExAwn48rX9TZZ3kAOX6Peg"

	return Data{
		Users: []domain.User{
			{ID: DemoUserID, Email: "member@example.com"},
			{ID: GuestUserID, Email: "guest@example.com"},
		},
		Instructors: []domain.Instructor{
			{ID: 1, Name: "John Doe", Thumbnail: "/images/Ice-Age-Scrat-icon.png",
				Description: "Lorem ipsum dolor sit amet, consectetur elit."},
			{ID: 2, Name: "Jane Doe", Thumbnail: "/images/Ice-Age-Scrat-icon.png",
				Description: "Lorem ipsum dolor sit, consectetur adipiscing."},
		},
		Courses: []domain.Course{
			{ID: 1, InstructorID: 1, MarqueeImageURL: "/images/laptop.jpg", ImageURL: "/images/course.jpg",
				Title: "C# For Beginners", Description: "Course 1 Description: " + longText},
			{ID: 2, InstructorID: 1, MarqueeImageURL: "/images/laptop.jpg", ImageURL: "/images/course2.jpg",
				Title: "Programming C#", Description: "Course 2 Description: " + longText},
			{ID: 3, InstructorID: 2, MarqueeImageURL: "/images/laptop.jpg", ImageURL: "/images/course3.jpg",
				Title: "MVC 5 For Beginners", Description: "Course 3 Description: " + longText},
		},
		Modules: []domain.Module{
			{ID: 1, Title: "Module 1", CourseID: 1},
			{ID: 2, Title: "Module 2", CourseID: 1},
			{ID: 3, Title: "Module 3", CourseID: 2},
		},
		Downloads: []domain.Download{
			{ID: 1, ModuleID: 1, CourseID: 1, Title: "ADO.NET 1 (PDF)", URL: pdfURL},
			{ID: 2, ModuleID: 1, CourseID: 1, Title: "ADO.NET 2 (PDF)", URL: pdfURL},
			{ID: 3, ModuleID: 3, CourseID: 2, Title: "ADO.NET 1 (PDF)", URL: pdfURL},
		},
		Videos: []domain.Video{
			{ID: 1, ModuleID: 1, CourseID: 1, Position: 1, Title: "Video 1 Title",
				Description: "Video 1 Description: " + longText, Duration: 50, Thumbnail: "/images/video1.jpg", URL: videoURL},
			{ID: 2, ModuleID: 1, CourseID: 1, Position: 2, Title: "Video 2 Title",
				Description: "Video 2 Description: " + longText, Duration: 45, Thumbnail: "/images/video2.jpg", URL: videoURL},
			{ID: 3, ModuleID: 3, CourseID: 2, Position: 1, Title: "Video 3 Title",
				Description: "Video 3 Description: " + longText, Duration: 41, Thumbnail: "/images/video3.jpg", URL: videoURL},
			{ID: 4, ModuleID: 2, CourseID: 1, Position: 1, Title: "Video 4 Title",
				Description: "Video 4 Description: " + longText, Duration: 42, Thumbnail: "/images/video4.jpg", URL: videoURL},
			{ID: 5, ModuleID: 1, CourseID: 1, Position: 3, Title: "Video 5 Title",
				Description: "Video 5 Description: " + longText, Duration: 91, Thumbnail: "/images/video5.jpg", URL: videoURL},
		},
		UserCourses: []domain.UserCourse{
			{UserID: DemoUserID, CourseID: 1},
			{UserID: GuestUserID, CourseID: 2},
			{UserID: DemoUserID, CourseID: 3},
			{UserID: GuestUserID, CourseID: 1},
		},
	}
}

// Apply inserts d in dependency order. It is a no-op when courses already exist.
func Apply(ctx context.Context, s *store.Store, d Data) (bool, error) {
	n, err := store.All[domain.Course](s).Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	err = s.DB().Transaction(func(tx *gorm.DB) error {
		ts := store.New(tx, s.Registry())
		if err := insertAll(ctx, ts, d.Users); err != nil {
			return err
		}
		if err := insertAll(ctx, ts, d.Instructors); err != nil {
			return err
		}
		if err := insertAll(ctx, ts, d.Courses); err != nil {
			return err
		}
		if err := insertAll(ctx, ts, d.Modules); err != nil {
			return err
		}
		if err := insertAll(ctx, ts, d.Videos); err != nil {
			return err
		}
		if err := insertAll(ctx, ts, d.Downloads); err != nil {
			return err
		}
		if err := insertAll(ctx, ts, d.UserCourses); err != nil {
			return err
		}
		return ts.SyncSequences(ctx)
	})
	if err != nil {
		return false, errors.Wrap(err, "seed demo data")
	}
	return true, nil
}

func insertAll[T any](ctx context.Context, s *store.Store, rows []T) error {
	for i := range rows {
		if err := store.Create(ctx, s, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}
