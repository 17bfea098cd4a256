package handlers

import (
	"net/http"

	response "presupuestos_service/internal/adapter/http/dto/response"
	"presupuestos_service/internal/adapter/http/middleware"
	"presupuestos_service/internal/domain/access"
	"presupuestos_service/pkg"

	"github.com/gin-gonic/gin"
)

var errUnknownView = pkg.NewDomainErrorSimple("UNKNOWN_VIEW", "Vista desconocida", http.StatusNotFound)

// Navigation answers what the guard would decide for a view, without
// redirecting. Front-ends call it before rendering a route.
//
// @Summary   Guard decision for a view
// @Tags      navigation
// @Produce   json
// @Param     view  path      string  true  "login, dashboard, quotes, new-quote or admin"
// @Success   200   {object}  response.NavigationResponse
// @Failure   404   {object}  pkg.HTTPError
// @Router    /navigation/{view} [get]
func Navigation(c *gin.Context) {
	view, ok := access.LookupView(c.Param("view"))
	if !ok {
		writeError(c, errUnknownView)
		return
	}
	if view == access.ViewLogin {
		c.JSON(http.StatusOK, response.NavigationResponse{
			View:  view.Name,
			Path:  view.Path,
			State: string(access.StateAuthorized),
			Allow: true,
		})
		return
	}

	nav := access.NewNavigation(view)
	d := nav.Resolve(middleware.ProfileFrom(c))
	c.JSON(http.StatusOK, response.FromDecision(view, d))
}
