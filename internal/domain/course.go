package domain

type Instructor struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:80;not null" json:"name"`
	Description string `gorm:"size:1024" json:"description"`
	Thumbnail   string `gorm:"size:1024" json:"thumbnail"`
}

type Course struct {
	ID              int    `gorm:"primaryKey" json:"id"`
	Title           string `gorm:"size:255;not null;index" json:"title"`
	Description     string `gorm:"size:2048" json:"description"`
	ImageURL        string `gorm:"size:255" json:"image_url"`
	MarqueeImageURL string `gorm:"size:255" json:"marquee_image_url"`

	InstructorID int         `gorm:"index;not null" json:"instructor_id"`
	Instructor   *Instructor `gorm:"foreignKey:InstructorID;constraint:OnDelete:RESTRICT;" json:"instructor,omitempty"`

	Modules []Module `gorm:"foreignKey:CourseID;constraint:OnDelete:RESTRICT;" json:"modules,omitempty"`
}

type Module struct {
	ID    int    `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:80;not null" json:"title"`

	CourseID int     `gorm:"index;not null" json:"course_id"`
	Course   *Course `gorm:"foreignKey:CourseID;constraint:OnDelete:RESTRICT;" json:"course,omitempty"`

	Videos    []Video    `gorm:"foreignKey:ModuleID;constraint:OnDelete:RESTRICT;" json:"videos,omitempty"`
	Downloads []Download `gorm:"foreignKey:ModuleID;constraint:OnDelete:RESTRICT;" json:"downloads,omitempty"`
}

type Video struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:80;not null" json:"title"`
	Description string `gorm:"size:1024" json:"description"`
	Duration    int    `json:"duration"` // minutes
	Thumbnail   string `gorm:"size:1024" json:"thumbnail"`
	URL         string `gorm:"size:1024" json:"url"`
	Position    int    `gorm:"index" json:"position"` // order inside the module

	ModuleID int     `gorm:"index;not null" json:"module_id"`
	Module   *Module `gorm:"foreignKey:ModuleID;constraint:OnDelete:RESTRICT;" json:"module,omitempty"`
	// CourseID duplicates Module.CourseID so entitlement checks need no join.
	CourseID int     `gorm:"index;not null" json:"course_id"`
	Course   *Course `gorm:"foreignKey:CourseID;constraint:OnDelete:RESTRICT;" json:"course,omitempty"`
}

type Download struct {
	ID    int    `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:80;not null" json:"title"`
	URL   string `gorm:"size:1024" json:"url"`

	ModuleID int     `gorm:"index;not null" json:"module_id"`
	Module   *Module `gorm:"foreignKey:ModuleID;constraint:OnDelete:RESTRICT;" json:"module,omitempty"`
	CourseID int     `gorm:"index;not null" json:"course_id"`
	Course   *Course `gorm:"foreignKey:CourseID;constraint:OnDelete:RESTRICT;" json:"course,omitempty"`
}
