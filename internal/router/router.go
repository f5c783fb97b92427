package router

import (
	"net/http"
	"strings"

	"github.com/fixmycity/issue-service/api"
	"github.com/fixmycity/issue-service/internal/handler"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func New(issues *handler.IssueHandler, comments *handler.CommentHandler, stats *handler.StatsHandler, uploadDir string) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", handler.Health)
	r.GET("/ready", handler.Ready)
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/") })
	r.GET("/swagger/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = "/swagger/index.html"
			c.Request.RequestURI = "/swagger/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/openapi.json"))(c)
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/issues", issues.List)
		apiGroup.GET("/issues/:id", issues.Get)
		apiGroup.POST("/issues", issues.Create)
		apiGroup.PUT("/issues/:id/status", issues.UpdateStatus)
		apiGroup.GET("/issues/:id/comments", comments.List)
		apiGroup.POST("/issues/:id/comments", comments.Create)
		apiGroup.GET("/stats", stats.Get)
	}

	// Stored blobs are addressed by generated name only.
	r.Static("/uploads", uploadDir)

	return r
}
