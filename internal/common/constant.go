package common

const (
	// AccessTokenHeaderName carries the issued access token on login
	// responses and on authenticated requests.
	AccessTokenHeaderName = "authorization"

	// UserIDHeaderName carries the identity reference on login responses.
	UserIDHeaderName = "userid"
)
