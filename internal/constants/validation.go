package constants

// Field Length Limits
const (
	MinPasswordLength = 8
	MaxPasswordLength = 100
	MinNameLength     = 2
	MaxNameLength     = 120
	MinSKULength      = 3
	MaxSKULength      = 64
	MaxEmailLength    = 255
	MaxDescLength     = 500
)

// Token Settings (in seconds)
const (
	AccessTokenExpiry  = 15 * 60          // 15 minutes
	RefreshTokenExpiry = 7 * 24 * 60 * 60 // 7 days
)
