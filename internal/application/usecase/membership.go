package usecase

import (
	"context"

	"github.com/waste3d/vod-platform/internal/application/dto"
	"github.com/waste3d/vod-platform/internal/infrastructure/repository"
)

type DashboardView struct {
	Rows [][]dto.CourseDTO
}

type CourseView struct {
	Course     dto.CourseDTO
	Instructor dto.InstructorDTO
	Modules    []dto.ModuleDTO
}

type VideoView struct {
	Video      dto.VideoDTO
	Course     dto.CourseDTO
	Instructor dto.InstructorDTO
	LessonInfo dto.LessonInfoDTO
}

// MembershipUseCase assembles the view models of the member area. Access checks
// happen in the repository; errors are passed through unchanged.
type MembershipUseCase struct {
	repo repository.ReadRepository
}

func NewMembershipUseCase(repo repository.ReadRepository) *MembershipUseCase {
	return &MembershipUseCase{repo: repo}
}

func (uc *MembershipUseCase) Dashboard(ctx context.Context, userID string) (DashboardView, error) {
	courses, err := uc.repo.GetCourses(ctx, userID)
	if err != nil {
		return DashboardView{}, err
	}
	return DashboardView{Rows: ChunkCourses(dto.Courses(courses), CoursesPerRow)}, nil
}

func (uc *MembershipUseCase) Course(ctx context.Context, userID string, courseID int) (CourseView, error) {
	c, err := uc.repo.GetCourse(ctx, userID, courseID)
	if err != nil {
		return CourseView{}, err
	}
	return CourseView{
		Course:     dto.Course(*c),
		Instructor: dto.Instructor(c.Instructor),
		Modules:    dto.Modules(c.Modules),
	}, nil
}

func (uc *MembershipUseCase) Video(ctx context.Context, userID string, videoID int) (VideoView, error) {
	v, err := uc.repo.GetVideo(ctx, userID, videoID)
	if err != nil {
		return VideoView{}, err
	}
	c, err := uc.repo.GetCourse(ctx, userID, v.CourseID)
	if err != nil {
		return VideoView{}, err
	}
	siblings, err := uc.repo.GetVideos(ctx, userID, v.ModuleID)
	if err != nil {
		return VideoView{}, err
	}
	return VideoView{
		Video:      dto.Video(*v),
		Course:     dto.Course(*c),
		Instructor: dto.Instructor(c.Instructor),
		LessonInfo: Navigate(siblings, v.ID),
	}, nil
}
