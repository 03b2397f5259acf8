package controllers

import (
	"context"
	"net/http"

	"github.com/cpinopacheco/sistema-inventario-BD/api/responses"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/config"
	pkgerrors "github.com/cpinopacheco/sistema-inventario-BD/pkg/errors"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/logger"
)

const envHeader = "X-Inventario-Env"

// Pinger is a dependency that can report its own liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every registered dependency answers a
// ping. Nil entries (an unconfigured cache, say) are skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
