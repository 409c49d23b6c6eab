package dto

// OTPRequestReq asks for a one-time code to be delivered to the user with Email.
type OTPRequestReq struct {
	Email   string `json:"email" binding:"required,email"`
	Channel string `json:"channel" binding:"omitempty,oneof=email sms"`
}

// OTPLoginReq carries the code to exchange for tokens.
type OTPLoginReq struct {
	OTP string `json:"otp" binding:"required"`
}

// OTPUser is the user summary returned on OTP login.
type OTPUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OTPLoginRes is the response body for a successful OTP login.
type OTPLoginRes struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         OTPUser `json:"user"`
}
