package handlers

import (
	"errors"
	"net/http"
	"reflect"

	"presupuestos_service/pkg"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// decimal.Decimal is validated as its float value so numeric tags apply.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

var (
	errInvalidJSON = pkg.NewDomainErrorSimple("INVALID_JSON", "JSON inválido", http.StatusBadRequest)
	errValidation  = pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Datos inválidos", http.StatusUnprocessableEntity)
)

// bindAndValidate binds the JSON body and runs the validate tags. On failure it
// writes the error response and returns false.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, errInvalidJSON)
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			writeError(c, errValidation)
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Namespace()] = fe.Tag()
		}
		writeError(c, errValidation.WithDetails(fields))
		return false
	}
	return true
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	if appErr.Err != nil {
		_ = c.Error(appErr)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
