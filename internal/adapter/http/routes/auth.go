package routes

import (
	"presupuestos_service/internal/adapter/http/handlers"
	"presupuestos_service/internal/adapter/http/middleware"
	"presupuestos_service/internal/domain/access"

	"github.com/gin-gonic/gin"
)

const (
	PathAuth       = "/auth"
	PathNavigation = "/navigation"
)

func addAuthRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler) {
	auth := rg.Group(PathAuth)
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", middleware.RequireView(access.ViewDashboard), h.Logout)
		auth.GET("/session", middleware.RequireView(access.ViewDashboard), h.Session)
	}
}

func addNavigationRoutes(rg *gin.RouterGroup) {
	rg.GET(PathNavigation+"/:view", handlers.Navigation)
}
