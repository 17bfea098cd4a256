package handlers

import (
	"net/http"

	response "presupuestos_service/internal/adapter/http/dto/response"
	"presupuestos_service/internal/adapter/http/middleware"
	"presupuestos_service/internal/usecase"
	"presupuestos_service/pkg"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	usecase usecase.IDashboardUseCase
}

func NewDashboardHandler(uc usecase.IDashboardUseCase) *DashboardHandler {
	return &DashboardHandler{usecase: uc}
}

// Stats godoc
// @Summary   Quote totals by status and by seller
// @Tags      dashboard
// @Security  BearerAuth
// @Produce   json
// @Success   200  {object}  response.StatsResponse
// @Failure   500  {object}  pkg.HTTPError
// @Router    /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.usecase.Stats(c.Request.Context())
	if err != nil {
		writeError(c, mapDashboardError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromStats(stats))
}

// AdminPanel godoc
// @Summary   Administrator landing data
// @Tags      admin
// @Security  BearerAuth
// @Produce   json
// @Success   200  {object}  response.AdminPanelResponse
// @Failure   303  {object}  response.NavigationResponse
// @Router    /admin/panel [get]
func (h *DashboardHandler) AdminPanel(c *gin.Context) {
	p := middleware.ProfileFrom(c)
	if p == nil {
		writeError(c, errNoSession)
		return
	}
	stats, err := h.usecase.Stats(c.Request.Context())
	if err != nil {
		writeError(c, mapDashboardError(err))
		return
	}
	c.JSON(http.StatusOK, response.AdminPanelResponse{
		Greeting: "Bienvenido, " + p.Name,
		Profile:  response.FromProfile(*p),
		Stats:    response.FromStats(stats),
	})
}

func mapDashboardError(err error) *pkg.AppError {
	appErr := mapStoreError(err)
	if appErr.Code == "INTERNAL_ERROR" {
		return pkg.NewDomainError("STATS_FAILED", "Error al cargar las estadísticas.", err, http.StatusInternalServerError)
	}
	return appErr
}
