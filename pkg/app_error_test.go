package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		e := NewDomainErrorSimple("QUOTE_NOT_FOUND", "Presupuesto no encontrado", http.StatusNotFound)
		if e.Error() != "QUOTE_NOT_FOUND: Presupuesto no encontrado" {
			t.Fatalf("unexpected message: %s", e.Error())
		}
		if e.Unwrap() != nil {
			t.Fatalf("expected no cause")
		}
	})

	t.Run("wrapped cause is hidden from http body", func(t *testing.T) {
		cause := errors.New("dynamodb timeout")
		e := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)
		if !errors.Is(e, cause) {
			t.Fatalf("expected errors.Is to reach the cause")
		}
		body := e.ToHTTPError()
		if body.Code != "INTERNAL_ERROR" || body.Message != "An internal error occurred" {
			t.Fatalf("unexpected body: %+v", body)
		}
	})

	t.Run("details are copied", func(t *testing.T) {
		base := NewDomainErrorSimple("VALIDATION_ERROR", "Datos inválidos", http.StatusUnprocessableEntity)
		withDetails := base.WithDetails(map[string]string{"amount": "min"})
		if base.Details != nil {
			t.Fatalf("base error must not be mutated")
		}
		if withDetails.ToHTTPError().Details["amount"] != "min" {
			t.Fatalf("expected details in body")
		}
	})
}
