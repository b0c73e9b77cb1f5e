package domain

// User is the identity principal. Everything beyond the id belongs to the identity provider.
type User struct {
	ID    string `gorm:"primaryKey;size:64" json:"id"`
	Email string `gorm:"size:255" json:"email"`
}

// UserCourse is the entitlement record: a row means the user may access the course
// and everything under it. Rows are created on grant and deleted on revoke, never updated.
type UserCourse struct {
	UserID   string  `gorm:"primaryKey;size:64" json:"user_id"`
	CourseID int     `gorm:"primaryKey;autoIncrement:false" json:"course_id"`
	Course   *Course `gorm:"foreignKey:CourseID;constraint:OnDelete:RESTRICT;" json:"course,omitempty"`
}

// Counts is the dashboard snapshot, one figure per entity kind.
// Each figure comes from its own query, so the set is not a consistent snapshot.
type Counts struct {
	Courses     int
	Downloads   int
	Instructors int
	Modules     int
	Videos      int
	Users       int
	UserCourses int
}
