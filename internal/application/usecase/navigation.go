package usecase

import (
	"sort"

	"github.com/waste3d/vod-platform/internal/application/dto"
	"github.com/waste3d/vod-platform/internal/domain"
)

// CoursesPerRow is the dashboard grid width.
const CoursesPerRow = 3

// ChunkCourses splits courses into consecutive rows of at most size entries.
// There is always at least one row, so an empty list yields one empty row.
func ChunkCourses(courses []dto.CourseDTO, size int) [][]dto.CourseDTO {
	if size <= 0 {
		size = CoursesPerRow
	}
	rows := make([][]dto.CourseDTO, 0, len(courses)/size+1)
	for start := 0; start < len(courses); start += size {
		end := start + size
		if end > len(courses) {
			end = len(courses)
		}
		rows = append(rows, courses[start:end:end])
	}
	if len(rows) == 0 {
		rows = append(rows, []dto.CourseDTO{})
	}
	return rows
}

// Navigate locates currentID among videos in lesson order (Position, then ID).
// When currentID is not in the list only NumberOfLessons is set.
func Navigate(videos []domain.Video, currentID int) dto.LessonInfoDTO {
	ordered := make([]domain.Video, len(videos))
	copy(ordered, videos)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Position != ordered[j].Position {
			return ordered[i].Position < ordered[j].Position
		}
		return ordered[i].ID < ordered[j].ID
	})

	info := dto.LessonInfoDTO{NumberOfLessons: len(ordered)}
	for i, v := range ordered {
		if v.ID != currentID {
			continue
		}
		info.LessonNumber = i + 1
		if i > 0 {
			info.PreviousVideoID = ordered[i-1].ID
		}
		if i+1 < len(ordered) {
			next := ordered[i+1]
			info.NextVideoID = next.ID
			info.NextVideoTitle = next.Title
			info.NextVideoThumbnail = next.Thumbnail
		}
		break
	}
	return info
}
