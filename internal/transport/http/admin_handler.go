package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waste3d/vod-platform/internal/application/usecase"
	"github.com/waste3d/vod-platform/internal/domain"
)

type AdminHandler struct {
	uc *usecase.AdminUseCase
}

func NewAdminHandler(uc *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

type instructorReq struct {
	Name        string `json:"name" binding:"required,max=80"`
	Description string `json:"description" binding:"max=1024"`
	Thumbnail   string `json:"thumbnail" binding:"max=1024"`
}

func (r instructorReq) model() *domain.Instructor {
	return &domain.Instructor{Name: r.Name, Description: r.Description, Thumbnail: r.Thumbnail}
}

type courseReq struct {
	Title           string `json:"title" binding:"required,max=255"`
	Description     string `json:"description" binding:"max=2048"`
	ImageURL        string `json:"image_url" binding:"max=255"`
	MarqueeImageURL string `json:"marquee_image_url" binding:"max=255"`
	InstructorID    int    `json:"instructor_id" binding:"required,gt=0"`
}

func (r courseReq) model() *domain.Course {
	return &domain.Course{
		Title:           r.Title,
		Description:     r.Description,
		ImageURL:        r.ImageURL,
		MarqueeImageURL: r.MarqueeImageURL,
		InstructorID:    r.InstructorID,
	}
}

type moduleReq struct {
	Title    string `json:"title" binding:"required,max=80"`
	CourseID int    `json:"course_id" binding:"required,gt=0"`
}

func (r moduleReq) model() *domain.Module {
	return &domain.Module{Title: r.Title, CourseID: r.CourseID}
}

// videoReq has no course id: it is taken from the module.
type videoReq struct {
	Title       string `json:"title" binding:"required,max=80"`
	Description string `json:"description" binding:"max=1024"`
	Duration    int    `json:"duration" binding:"gte=0"`
	Thumbnail   string `json:"thumbnail" binding:"max=1024"`
	URL         string `json:"url" binding:"required,max=1024"`
	Position    int    `json:"position" binding:"gte=0"`
	ModuleID    int    `json:"module_id" binding:"required,gt=0"`
}

func (r videoReq) model() *domain.Video {
	return &domain.Video{
		Title:       r.Title,
		Description: r.Description,
		Duration:    r.Duration,
		Thumbnail:   r.Thumbnail,
		URL:         r.URL,
		Position:    r.Position,
		ModuleID:    r.ModuleID,
	}
}

type downloadReq struct {
	Title    string `json:"title" binding:"required,max=80"`
	URL      string `json:"url" binding:"required,max=1024"`
	ModuleID int    `json:"module_id" binding:"required,gt=0"`
}

func (r downloadReq) model() *domain.Download {
	return &domain.Download{Title: r.Title, URL: r.URL, ModuleID: r.ModuleID}
}

type grantReq struct {
	UserID   string `json:"user_id" binding:"required,max=64"`
	CourseID int    `json:"course_id" binding:"required,gt=0"`
}

type request[T any] interface {
	model() *T
}

func list[T any](fetch func(context.Context) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := fetch(c.Request.Context())
		if err != nil {
			failJSON(c, err)
			return
		}
		if rows == nil {
			rows = []T{}
		}
		c.JSON(http.StatusOK, rows)
	}
}

func create[R request[T], T any](save func(context.Context, *T) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req R
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		rec := req.model()
		if err := save(c.Request.Context(), rec); err != nil {
			failJSON(c, err)
			return
		}
		c.JSON(http.StatusCreated, rec)
	}
}

func update[R request[T], T any](save func(context.Context, int, *T) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		var req R
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		rec := req.model()
		if err := save(c.Request.Context(), id, rec); err != nil {
			failJSON(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func remove(del func(context.Context, int) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		if err := del(c.Request.Context(), id); err != nil {
			failJSON(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// GET /admin
func (h *AdminHandler) Index(c *gin.Context) {
	cards, err := h.uc.Cards(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{
			"Status":  http.StatusInternalServerError,
			"Message": http.StatusText(http.StatusInternalServerError),
		})
		return
	}
	c.HTML(http.StatusOK, "admin.tmpl", gin.H{"Cards": cards})
}

// GET /admin/api/counts
func (h *AdminHandler) Counts(c *gin.Context) {
	counts, err := h.uc.Counts(c.Request.Context())
	if err != nil {
		failJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// GET /admin/api/options/:kind
func (h *AdminHandler) Options(c *gin.Context) {
	opts, err := h.uc.Options(c.Request.Context(), c.Param("kind"))
	if err != nil {
		failJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// POST /admin/api/user-courses
func (h *AdminHandler) Grant(c *gin.Context) {
	var req grantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.uc.Grant(c.Request.Context(), req.UserID, req.CourseID); err != nil {
		failJSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, domain.UserCourse{UserID: req.UserID, CourseID: req.CourseID})
}

// DELETE /admin/api/user-courses/:userId/:courseId
func (h *AdminHandler) Revoke(c *gin.Context) {
	courseID, ok := pathID(c, "courseId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}
	if err := h.uc.Revoke(c.Request.Context(), c.Param("userId"), courseID); err != nil {
		failJSON(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) register(api *gin.RouterGroup, write ...gin.HandlerFunc) {
	with := func(hf gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, write...), hf)
	}

	api.GET("/counts", h.Counts)
	api.GET("/options/:kind", h.Options)

	api.GET("/instructors", list(h.uc.Instructors))
	api.POST("/instructors", with(create[instructorReq](h.uc.CreateInstructor))...)
	api.PUT("/instructors/:id", with(update[instructorReq](h.uc.UpdateInstructor))...)
	api.DELETE("/instructors/:id", with(remove(h.uc.DeleteInstructor))...)

	api.GET("/courses", list(h.uc.Courses))
	api.POST("/courses", with(create[courseReq](h.uc.CreateCourse))...)
	api.PUT("/courses/:id", with(update[courseReq](h.uc.UpdateCourse))...)
	api.DELETE("/courses/:id", with(remove(h.uc.DeleteCourse))...)

	api.GET("/modules", list(h.uc.Modules))
	api.POST("/modules", with(create[moduleReq](h.uc.CreateModule))...)
	api.PUT("/modules/:id", with(update[moduleReq](h.uc.UpdateModule))...)
	api.DELETE("/modules/:id", with(remove(h.uc.DeleteModule))...)

	api.GET("/videos", list(h.uc.Videos))
	api.POST("/videos", with(create[videoReq](h.uc.CreateVideo))...)
	api.PUT("/videos/:id", with(update[videoReq](h.uc.UpdateVideo))...)
	api.DELETE("/videos/:id", with(remove(h.uc.DeleteVideo))...)

	api.GET("/downloads", list(h.uc.Downloads))
	api.POST("/downloads", with(create[downloadReq](h.uc.CreateDownload))...)
	api.PUT("/downloads/:id", with(update[downloadReq](h.uc.UpdateDownload))...)
	api.DELETE("/downloads/:id", with(remove(h.uc.DeleteDownload))...)

	api.GET("/user-courses", list(h.uc.UserCourses))
	api.POST("/user-courses", with(h.Grant)...)
	api.DELETE("/user-courses/:userId/:courseId", with(h.Revoke)...)
}
