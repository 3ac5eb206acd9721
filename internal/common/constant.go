package common

// AuthHeaderName is the HTTP header used to carry the bearer access token
// on outbound requests.
const AuthHeaderName = "Authorization"

// BearerPrefix prefixes the access token in the Authorization header.
const BearerPrefix = "Bearer "

// RequestIDHeaderName carries a per-request correlation id for log matching.
const RequestIDHeaderName = "X-Request-Id"
