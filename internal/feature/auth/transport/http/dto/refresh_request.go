package dto

// RefreshReq represents the request for token refresh.
type RefreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshRes represents the response for a successful token refresh.
type RefreshRes struct {
	AccessToken string `json:"access_token"`
	Status      int    `json:"status"`
}

// LogoutReq carries the refresh token to revoke.
type LogoutReq struct {
	RefreshToken string `json:"refresh_token"`
}
