package constants

// Application Information
const (
	AppName    = "Catalog Service"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "8080"
	DefaultEnvironment = EnvDevelopment
)

// Cache Key Prefixes
const (
	CacheKeyPrefix      = "catalog:"
	CacheKeyProductList = CacheKeyPrefix + "products:list:"
	CacheKeyProduct     = CacheKeyPrefix + "products:id:"
	CacheKeyUser        = CacheKeyPrefix + "users:id:"
	CacheKeyRateLimit   = CacheKeyPrefix + "ratelimit:"
)

// Log Levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
	LogLevelFatal = "fatal"
)
