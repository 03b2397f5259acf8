package config

// EnvPrefix is passed to envconfig; individual fields carry explicit
// envconfig tags, so the prefix only matters for fields without one.
const EnvPrefix = "INVENTARIO"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "INVENTARIO_APP_ENV"
	EnvPort   = "INVENTARIO_APP_PORT"
	EnvDBDSN  = "INVENTARIO_DB_DSN"

	EnvDBHost = "POSTGRES_HOST"
	EnvDBUser = "POSTGRES_USER"
	EnvDBName = "POSTGRES_DB"

	EnvRedisURL = "INVENTARIO_REDIS_URL"
)

// legacyDBEnvVars are the original deployment's connection variables; the DSN
// is assembled from them when INVENTARIO_DB_DSN is not set.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
