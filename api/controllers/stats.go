package controllers

import (
	"net/http"

	"github.com/cpinopacheco/sistema-inventario-BD/api/responses"
	statssvc "github.com/cpinopacheco/sistema-inventario-BD/internal/stats"
	pkgerrors "github.com/cpinopacheco/sistema-inventario-BD/pkg/errors"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/logger"
)

// GetStats serves the aggregate inventory statistics.
func GetStats(svc statssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stats service unavailable"))
			return
		}

		dto, err := svc.GetStats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}
