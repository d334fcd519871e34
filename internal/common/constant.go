package common

// AuthorizationHeaderName is the HTTP header carrying the access token on
// authenticated requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the scheme prefix expected in the Authorization header.
const BearerPrefix = "Bearer "

// TokenType is the token_type value returned by the login endpoint.
const TokenType = "bearer"
