package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/waste3d/vod-platform/internal/infrastructure/security"
	"github.com/waste3d/vod-platform/internal/middleware"
	"github.com/waste3d/vod-platform/internal/platform/logger"
)

type RouterDeps struct {
	Membership *MembershipHandler
	Admin      *AdminHandler
	Tokens     *security.TokenManager
	Limiter    *middleware.RateLimiter
	Log        *logger.Logger
	Origins    []string
	// Ready backs /healthz; nil means always ready.
	Ready func(context.Context) error
}

func NewRouter(d RouterDeps) (*gin.Engine, error) {
	initValidator()

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(d.Log))

	if len(d.Origins) > 0 {
		config := cors.DefaultConfig()
		config.AllowOrigins = d.Origins
		config.AllowCredentials = true
		config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
		config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		r.Use(cors.New(config))
	}

	r.GET("/healthz", func(c *gin.Context) {
		if d.Ready != nil {
			if err := d.Ready(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := middleware.AuthMiddleware(d.Tokens, denyPage)

	membership := r.Group("/membership")
	membership.Use(auth)
	{
		membership.GET("/dashboard", d.Membership.Dashboard)
		membership.GET("/course/:id", d.Membership.Course)
		membership.GET("/video/:id", d.Membership.Video)
	}

	admin := r.Group("/admin")
	admin.Use(auth, middleware.RequireRoles(security.RoleAdmin))
	{
		admin.GET("", d.Admin.Index)
		d.Admin.register(admin.Group("/api"), d.Limiter.Limit("admin_write", 60, 1*time.Minute))
	}

	return r, nil
}

// denyPage renders auth failures as the error page when the client asks for HTML.
func denyPage(c *gin.Context, status int, message string) {
	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) != gin.MIMEHTML {
		middleware.DenyJSON(c, status, message)
		return
	}
	c.Abort()
	c.HTML(status, "error.tmpl", gin.H{"Status": status, "Message": message})
}
