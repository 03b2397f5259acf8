package controllers

import (
	"net/http"
	"time"

	"github.com/cpinopacheco/sistema-inventario-BD/api/responses"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/config"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/db"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/logger"
)

type diagnosticsReport struct {
	Status      string             `json:"status"`
	Environment string             `json:"environment"`
	Database    diagnosticsDB      `json:"database"`
	Config      diagnosticsSummary `json:"config"`
}

type diagnosticsDB struct {
	Status     string     `json:"status"`
	Error      *string    `json:"error,omitempty"`
	ServerTime *time.Time `json:"serverTime,omitempty"`
}

// diagnosticsSummary reports which settings are present without echoing any
// of their values.
type diagnosticsSummary struct {
	DatabaseConfigured bool `json:"databaseConfigured"`
	RedisConfigured    bool `json:"redisConfigured"`
}

// Diagnostics probes the database connection and summarizes configuration.
func Diagnostics(cfg *config.Config, dbClient *db.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := diagnosticsReport{
			Status:      "ok",
			Environment: cfg.App.Env,
			Config: diagnosticsSummary{
				DatabaseConfigured: cfg.DB.DSN != "",
				RedisConfigured:    cfg.Redis.Enabled(),
			},
		}

		var probe struct{ ServerTime time.Time }
		err := dbClient.Raw(r.Context(), "SELECT CURRENT_TIMESTAMP AS server_time").Scan(&probe).Error
		if err != nil {
			msg := err.Error()
			report.Database = diagnosticsDB{Status: "error de conexión", Error: &msg}
			if logg != nil {
				logg.Error(r.Context(), "diagnostics db probe failed", err)
			}
		} else {
			report.Database = diagnosticsDB{Status: "conectado", ServerTime: &probe.ServerTime}
		}

		responses.WriteSuccess(w, report)
	}
}
