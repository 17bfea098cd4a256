package handlers

import (
	"net/http"

	response "presupuestos_service/internal/adapter/http/dto/response"
	"presupuestos_service/internal/usecase"

	"github.com/gin-gonic/gin"
)

type SellerHandler struct {
	usecase usecase.ISellerUseCase
}

func NewSellerHandler(uc usecase.ISellerUseCase) *SellerHandler {
	return &SellerHandler{usecase: uc}
}

// ListSellers godoc
// @Summary   Seller directory
// @Tags      sellers
// @Security  BearerAuth
// @Produce   json
// @Success   200  {array}  response.SellerResponse
// @Router    /sellers [get]
func (h *SellerHandler) ListSellers(c *gin.Context) {
	sellers, err := h.usecase.ListSellers(c.Request.Context())
	if err != nil {
		writeError(c, mapStoreError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromSellers(sellers))
}
