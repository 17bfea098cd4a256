package handlers

import (
	"context"
	"errors"
	"net/http"

	request "presupuestos_service/internal/adapter/http/dto/request"
	response "presupuestos_service/internal/adapter/http/dto/response"
	"presupuestos_service/internal/adapter/persistence/repository"
	"presupuestos_service/internal/infrastructure/database"
	"presupuestos_service/internal/usecase"
	"presupuestos_service/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Datos del presupuesto inválidos", http.StatusBadRequest)
	errInvalidQuoteFilter  = pkg.NewDomainErrorSimple("INVALID_FILTER", "Filtro inválido", http.StatusBadRequest)
)

// QuoteHandler serves the quote list, creation and approval flows.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// ListQuotes godoc
// @Summary      List quotes
// @Tags         quotes
// @Produce      json
// @Param        client      query  string  false  "Exact client name"
// @Param        seller_id   query  string  false  "Exact seller id"
// @Param        amount_min  query  string  false  "Minimum amount (inclusive)"
// @Param        amount_max  query  string  false  "Maximum amount (inclusive)"
// @Param        date_from   query  string  false  "First day, YYYY-MM-DD"
// @Param        date_to     query  string  false  "Last day, YYYY-MM-DD"
// @Success      200  {array}   response.QuoteResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	in, ok := bindListQuery(c)
	if !ok {
		return
	}

	quotes, err := h.usecase.ListQuotes(c.Request.Context(), in)
	if err != nil {
		writeError(c, mapQuoteListError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

// GetQuote godoc
// @Summary  Get a quote
// @Tags     quotes
// @Produce  json
// @Param    id   path      string  true  "Quote id"
// @Success  200  {object}  response.QuoteResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	q, err := h.usecase.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// CreateQuote godoc
// @Summary      Create a quote
// @Description  The quote is always created pending. The response carries the listing re-read under the query filters.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        body  body      request.CreateQuoteRequest  true  "Quote"
// @Success      201   {object}  response.QuoteWriteResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Failure      422   {object}  pkg.HTTPError
// @Failure      503   {object}  pkg.HTTPError
// @Router       /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	refresh, ok := bindListQuery(c)
	if !ok {
		return
	}
	var payload request.CreateQuoteRequest
	if !bindAndValidate(c, &payload) {
		return
	}

	res, err := h.usecase.CreateQuote(c.Request.Context(), payload.ToInput(), refresh)
	writeQuoteResult(c, http.StatusCreated, res, err)
}

// ApproveQuote godoc
// @Summary  Approve a quote
// @Tags     quotes
// @Produce  json
// @Param    id   path      string  true  "Quote id"
// @Success  200  {object}  response.QuoteWriteResponse
// @Failure  404  {object}  pkg.HTTPError
// @Failure  409  {object}  pkg.HTTPError
// @Router   /quotes/{id}/approve [patch]
func (h *QuoteHandler) ApproveQuote(c *gin.Context) {
	h.patchQuoteStatus(c, h.usecase.ApproveQuote)
}

// RejectQuote godoc
// @Summary  Reject a quote
// @Tags     quotes
// @Produce  json
// @Param    id   path      string  true  "Quote id"
// @Success  200  {object}  response.QuoteWriteResponse
// @Failure  404  {object}  pkg.HTTPError
// @Failure  409  {object}  pkg.HTTPError
// @Router   /quotes/{id}/reject [patch]
func (h *QuoteHandler) RejectQuote(c *gin.Context) {
	h.patchQuoteStatus(c, h.usecase.RejectQuote)
}

func (h *QuoteHandler) patchQuoteStatus(
	c *gin.Context,
	updater func(ctx context.Context, id string, refresh usecase.ListQuotesInput) (usecase.QuoteWriteResult, error),
) {
	refresh, ok := bindListQuery(c)
	if !ok {
		return
	}
	res, err := updater(c.Request.Context(), c.Param("id"), refresh)
	writeQuoteResult(c, http.StatusOK, res, err)
}

// writeQuoteResult answers a write. A failed refresh after a successful write
// is still a success, reported in refresh_error.
func writeQuoteResult(c *gin.Context, status int, res usecase.QuoteWriteResult, err error) {
	if err != nil && !errors.Is(err, usecase.ErrListingRefresh) {
		writeError(c, mapQuoteError(err))
		return
	}

	body := response.QuoteWriteResponse{
		Quote:  response.FromQuote(res.Quote),
		Quotes: response.FromQuotes(res.Quotes),
	}
	if err != nil {
		_ = c.Error(err)
		body.RefreshError = "No se pudo actualizar el listado de presupuestos."
	}
	c.JSON(status, body)
}

func bindListQuery(c *gin.Context) (usecase.ListQuotesInput, bool) {
	var q request.QuoteListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, errInvalidQuoteFilter)
		return usecase.ListQuotesInput{}, false
	}
	in, err := q.ToInput()
	if err != nil {
		writeError(c, errInvalidQuoteFilter.WithDetails(map[string]string{"filter": err.Error()}))
		return usecase.ListQuotesInput{}, false
	}
	return in, true
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidSellerID):
		return errInvalidQuotePayload.WithDetails(map[string]string{"seller_id": "required"})
	case errors.Is(err, usecase.ErrInvalidClientName):
		return errInvalidQuotePayload.WithDetails(map[string]string{"client.name": "required"})
	case errors.Is(err, usecase.ErrInvalidDescription):
		return errInvalidQuotePayload.WithDetails(map[string]string{"description": "required"})
	case errors.Is(err, usecase.ErrInvalidAmount):
		return errInvalidQuotePayload.WithDetails(map[string]string{"amount": "gte=0"})
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Solicitud inválida", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Presupuesto no encontrado", http.StatusNotFound)
	case errors.Is(err, usecase.ErrStatusUnchanged):
		return pkg.NewDomainErrorSimple("STATUS_UNCHANGED", "El presupuesto ya tiene ese estado", http.StatusConflict)
	case errors.Is(err, usecase.ErrSequenceConflict):
		return pkg.NewDomainError("SEQUENCE_CONFLICT", "Otro presupuesto tomó ese número. Intente de nuevo.", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrSequenceUnavailable):
		return pkg.NewDomainError("SEQUENCE_UNAVAILABLE", "No se pudo generar el número de presupuesto. Verifique el índice o la tabla de contadores.", err, http.StatusServiceUnavailable)
	default:
		return mapStoreError(err)
	}
}

func mapQuoteListError(err error) *pkg.AppError {
	if errors.Is(err, database.ErrStoreUnavailable) || errors.Is(err, repository.ErrMalformedDocument) {
		return mapStoreError(err)
	}
	return pkg.NewDomainError("QUOTE_LIST_FAILED", "Error al cargar presupuestos. Puede que falte un índice en la base de datos.", err, http.StatusInternalServerError)
}

func mapStoreError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, database.ErrStoreUnavailable):
		return pkg.NewDomainError("STORE_UNAVAILABLE", "Base de datos no disponible", err, http.StatusServiceUnavailable)
	case errors.Is(err, repository.ErrMalformedDocument):
		return pkg.NewDomainError("MALFORMED_DOCUMENT", "Documento almacenado inválido", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Error interno del servidor", err, http.StatusInternalServerError)
	}
}
