package constants

// Pagination Query Parameters
const (
	QueryParamPage   = "page"
	QueryParamLimit  = "limit"
	QueryParamSearch = "search"
	QueryParamSort   = "sort"
)

// Default Pagination Values
const (
	DefaultPage   = 1
	DefaultLimit  = 10
	DefaultSearch = ""
)

// Pagination Limits
const (
	MinPage       = 1
	MinLimit      = 1
	MaxLimit      = 100
	DefaultOffset = 0
)

// Sort Direction Tokens accepted at the HTTP boundary
const (
	SortDirectionAsc  = "asc"
	SortDirectionDesc = "desc"
)
