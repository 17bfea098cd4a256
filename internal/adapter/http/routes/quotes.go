package routes

import (
	"presupuestos_service/internal/adapter/http/handlers"
	"presupuestos_service/internal/adapter/http/middleware"
	"presupuestos_service/internal/domain/access"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes    = "/quotes"
	PathSellers   = "/sellers"
	PathDashboard = "/dashboard"
	PathAdmin     = "/admin"
)

func addQuoteRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler, sellerHandler *handlers.SellerHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.GET("", middleware.RequireView(access.ViewQuoteList), quoteHandler.ListQuotes)
		quotes.GET("/:id", middleware.RequireView(access.ViewQuoteList), quoteHandler.GetQuote)
		quotes.POST("", middleware.RequireView(access.ViewNewQuote), quoteHandler.CreateQuote)
		quotes.PATCH("/:id/approve", middleware.RequireView(access.ViewQuoteList), quoteHandler.ApproveQuote)
		quotes.PATCH("/:id/reject", middleware.RequireView(access.ViewQuoteList), quoteHandler.RejectQuote)
	}

	rg.GET(PathSellers, middleware.RequireView(access.ViewNewQuote), sellerHandler.ListSellers)
}

func addDashboardRoutes(rg *gin.RouterGroup, h *handlers.DashboardHandler) {
	rg.GET(PathDashboard+"/stats", middleware.RequireView(access.ViewDashboard), h.Stats)
	rg.GET(PathAdmin+"/panel", middleware.RequireView(access.ViewAdmin), h.AdminPanel)
}
