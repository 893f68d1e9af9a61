package handlers

import (
	"lotbook/database"
	"lotbook/middleware"
	"lotbook/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Store       database.Store
	Logger      *zap.Logger
	MapOptions  models.MapOptions
	CORSOrigins []string
	Driver      string
	Version     string
}

// NewRouter wires middleware and the gateway routes.
func NewRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(dep.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(dep.CORSOrigins))
	r.Use(gin.Recovery())

	r.GET("/health", HealthCheck(dep.Store, dep.Driver, dep.Version))
	r.GET("/metrics", middleware.MetricsHandler())

	projects := r.Group("/projects")
	{
		projects.GET("", ListProjects(dep.Store, dep.Logger))
		projects.GET("/:id", GetProject(dep.Store, dep.Logger))
		projects.POST("", CreateProject(dep.Store, dep.MapOptions, dep.Logger))
		projects.PATCH("/:id", UpdateProject(dep.Store, dep.MapOptions, dep.Logger))
		projects.DELETE("/:id", DeleteProject(dep.Store, dep.Logger))
	}

	return r
}
