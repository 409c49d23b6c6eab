// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginReq は/loginエンドポイントのリクエストボディを表します。
// 空の値はユースケース側でErrMissingCredentialsとして扱うため、必須タグは付けません。
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserDetail is the user summary returned on password login.
type UserDetail struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// TokenRes carries the issued token pair.
type TokenRes struct {
	RefreshToken string `json:"refresh_token"`
	AccessToken  string `json:"access_token"`
}

// LoginRes is the response body for a successful password login.
type LoginRes struct {
	Message    string     `json:"message"`
	UserDetail UserDetail `json:"user_detail"`
	Token      TokenRes   `json:"token"`
	Status     int        `json:"status"`
}

// MessageRes is the {message, status} envelope used by every non-data response.
type MessageRes struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}
