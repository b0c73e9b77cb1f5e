package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/waste3d/vod-platform/internal/application/usecase"
	"github.com/waste3d/vod-platform/internal/middleware"
)

type MembershipHandler struct {
	uc              *usecase.MembershipUseCase
	revealForbidden bool
}

func NewMembershipHandler(uc *usecase.MembershipUseCase, revealForbidden bool) *MembershipHandler {
	return &MembershipHandler{uc: uc, revealForbidden: revealForbidden}
}

// GET /membership/dashboard
func (h *MembershipHandler) Dashboard(c *gin.Context) {
	view, err := h.uc.Dashboard(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "dashboard.tmpl", view)
}

// GET /membership/course/:id
func (h *MembershipHandler) Course(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.page(c, http.StatusNotFound)
		return
	}
	view, err := h.uc.Course(c.Request.Context(), c.GetString(middleware.UserIDKey), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "course.tmpl", view)
}

// GET /membership/video/:id
func (h *MembershipHandler) Video(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.page(c, http.StatusNotFound)
		return
	}
	view, err := h.uc.Video(c.Request.Context(), c.GetString(middleware.UserIDKey), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "video.tmpl", view)
}

func (h *MembershipHandler) fail(c *gin.Context, err error) {
	status := statusFor(err, h.revealForbidden)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	h.page(c, status)
}

func (h *MembershipHandler) page(c *gin.Context, status int) {
	c.HTML(status, "error.tmpl", gin.H{"Status": status, "Message": http.StatusText(status)})
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
