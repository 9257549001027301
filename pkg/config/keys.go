package config

// Environment variable names shared between Load, tests, and ops tooling.
const (
	EnvPrefix = "easemart"

	EnvAppEnv   = "EASEMART_APP_ENV"
	EnvPort     = "EASEMART_APP_PORT"
	EnvLogLevel = "EASEMART_LOG_LEVEL"

	EnvDBDSN    = "EASEMART_DB_DSN"
	EnvDBDriver = "EASEMART_DB_DRIVER"

	EnvJWTSecret  = "EASEMART_JWT_SECRET"
	EnvJWTIssuer  = "EASEMART_JWT_ISSUER"
	EnvJWTExpMins = "EASEMART_JWT_EXPIRATION_MINUTES"

	EnvRehashOnEveryUpdate = "EASEMART_REHASH_ON_EVERY_UPDATE"
	EnvUseSQLite           = "EASEMART_USE_SQLITE"
	EnvAutoMigrate         = "EASEMART_AUTO_MIGRATE"

	AppEnvDev  = "dev"
	AppEnvProd = "production"
)
