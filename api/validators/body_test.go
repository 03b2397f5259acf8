package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/cpinopacheco/sistema-inventario-BD/pkg/errors"
)

type samplePayload struct {
	Nombre   string `json:"nombre" validate:"required"`
	Cantidad int    `json:"cantidad" validate:"gte=0"`
}

func decodeSample(t *testing.T, body string) (*samplePayload, error) {
	t.Helper()

	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	return &payload, err
}

func TestDecodeJSONBody(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		payload, err := decodeSample(t, `{"nombre":"Mouse","cantidad":5}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payload.Nombre != "Mouse" || payload.Cantidad != 5 {
			t.Fatalf("unexpected payload: %+v", payload)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		_, err := decodeSample(t, `{"nombre":"Mouse","precio":10}`)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("field messages use json names and spanish text", func(t *testing.T) {
		_, err := decodeSample(t, `{"cantidad":-1}`)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}

		details, ok := typed.Details().(map[string]string)
		if !ok {
			t.Fatalf("expected string details, got %T", typed.Details())
		}
		if got := details["nombre"]; got != "es obligatorio" {
			t.Fatalf("nombre message = %q", got)
		}
		if got := details["cantidad"]; got != "debe ser 0 o mayor" {
			t.Fatalf("cantidad message = %q", got)
		}
	})
}
