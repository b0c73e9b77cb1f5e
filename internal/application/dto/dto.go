package dto

import "github.com/waste3d/vod-platform/internal/domain"

type CourseDTO struct {
	CourseID          int    `json:"course_id"`
	CourseTitle       string `json:"course_title"`
	CourseDescription string `json:"course_description"`
	MarqueeImageURL   string `json:"marquee_image_url"`
	CourseImageURL    string `json:"course_image_url"`
}

type InstructorDTO struct {
	InstructorName        string `json:"instructor_name"`
	InstructorDescription string `json:"instructor_description"`
	InstructorAvatar      string `json:"instructor_avatar"`
}

type VideoDTO struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Thumbnail   string `json:"thumbnail"`
	URL         string `json:"url"`
}

type DownloadDTO struct {
	DownloadTitle string `json:"download_title"`
	DownloadURL   string `json:"download_url"`
}

// ModuleDTO leaves Videos and Downloads nil when the module has none, so views can test for absence.
type ModuleDTO struct {
	ID          int           `json:"id"`
	ModuleTitle string        `json:"module_title"`
	Videos      []VideoDTO    `json:"videos"`
	Downloads   []DownloadDTO `json:"downloads"`
}

// LessonInfoDTO drives the previous/next buttons of the video player.
type LessonInfoDTO struct {
	LessonNumber       int    `json:"lesson_number"`
	NumberOfLessons    int    `json:"number_of_lessons"`
	PreviousVideoID    int    `json:"previous_video_id"`
	NextVideoID        int    `json:"next_video_id"`
	NextVideoTitle     string `json:"next_video_title"`
	NextVideoThumbnail string `json:"next_video_thumbnail"`
}

func Course(c domain.Course) CourseDTO {
	return CourseDTO{
		CourseID:          c.ID,
		CourseTitle:       c.Title,
		CourseDescription: c.Description,
		MarqueeImageURL:   c.MarqueeImageURL,
		CourseImageURL:    c.ImageURL,
	}
}

func Courses(cs []domain.Course) []CourseDTO {
	out := make([]CourseDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, Course(c))
	}
	return out
}

// Instructor maps a missing instructor to the zero value.
func Instructor(in *domain.Instructor) InstructorDTO {
	if in == nil {
		return InstructorDTO{}
	}
	return InstructorDTO{
		InstructorName:        in.Name,
		InstructorDescription: in.Description,
		InstructorAvatar:      in.Thumbnail,
	}
}

func Video(v domain.Video) VideoDTO {
	return VideoDTO{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Duration:    v.Duration,
		Thumbnail:   v.Thumbnail,
		URL:         v.URL,
	}
}

func Download(d domain.Download) DownloadDTO {
	return DownloadDTO{DownloadTitle: d.Title, DownloadURL: d.URL}
}

func Module(m domain.Module) ModuleDTO {
	out := ModuleDTO{ID: m.ID, ModuleTitle: m.Title}
	if len(m.Videos) > 0 {
		out.Videos = make([]VideoDTO, len(m.Videos))
		for i, v := range m.Videos {
			out.Videos[i] = Video(v)
		}
	}
	if len(m.Downloads) > 0 {
		out.Downloads = make([]DownloadDTO, len(m.Downloads))
		for i, d := range m.Downloads {
			out.Downloads[i] = Download(d)
		}
	}
	return out
}

func Modules(ms []domain.Module) []ModuleDTO {
	out := make([]ModuleDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, Module(m))
	}
	return out
}
