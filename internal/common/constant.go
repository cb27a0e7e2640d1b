package common

const (
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "
	RequestIDHeaderName     = "X-Request-ID"
)

// Keys of the local metadata store.
const (
	MetaAccessToken  = "access_token"
	MetaRefreshToken = "refresh_token"
	MetaUsername     = "username"
	MetaProfileCache = "profile_cache"
)
