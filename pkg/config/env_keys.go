package config

// EnvPrefix is the envconfig prefix shared by every FieldOps binary.
const EnvPrefix = "fieldops"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names referenced outside the struct tags (tests,
// error messages).
const (
	EnvAppEnv     = "FIELDOPS_APP_ENV"
	EnvPort       = "FIELDOPS_APP_PORT"
	EnvDBDSN      = "FIELDOPS_DB_DSN"
	EnvDBHost     = "FIELDOPS_DB_HOST"
	EnvDBUser     = "FIELDOPS_DB_USER"
	EnvDBName     = "FIELDOPS_DB_NAME"
	EnvRedisURL   = "FIELDOPS_REDIS_URL"
	EnvJWTSecret  = "FIELDOPS_JWT_SECRET"
	EnvJWTIssuer  = "FIELDOPS_JWT_ISSUER"
	EnvJWTExpMins = "FIELDOPS_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
