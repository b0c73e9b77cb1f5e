package usecase

import "github.com/waste3d/vod-platform/internal/domain"

// Card is one tile of the admin dashboard.
type Card struct {
	Count           int    `json:"count"`
	Description     string `json:"description"`
	Icon            string `json:"icon"`
	URL             string `json:"url"`
	BackgroundColor string `json:"background_color"`
}

// BuildCards lays out the dashboard tiles in display order.
func BuildCards(c domain.Counts) []Card {
	return []Card{
		{Count: c.Instructors, Description: "Instructors", Icon: "user", URL: "/admin/api/instructors", BackgroundColor: "#9c27b0"},
		{Count: c.Users, Description: "Users", Icon: "education", URL: "/admin/api/options/users", BackgroundColor: "#414141"},
		{Count: c.Courses, Description: "Courses", Icon: "blackboard", URL: "/admin/api/courses", BackgroundColor: "#009688"},
		{Count: c.Modules, Description: "Modules", Icon: "list", URL: "/admin/api/modules", BackgroundColor: "#f44336"},
		{Count: c.Videos, Description: "Videos", Icon: "film", URL: "/admin/api/videos", BackgroundColor: "#3f51b5"},
		{Count: c.Downloads, Description: "Downloads", Icon: "file", URL: "/admin/api/downloads", BackgroundColor: "#ffcc00"},
		{Count: c.UserCourses, Description: "User Courses", Icon: "file", URL: "/admin/api/user-courses", BackgroundColor: "#176c37"},
	}
}
