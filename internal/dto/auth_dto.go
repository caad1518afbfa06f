package dto

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100" msg:"Missing details"`
	Email    string `json:"email" validate:"required,email" msg:"Missing details"`
	Password string `json:"password" validate:"required,strongpassword" msg:"Missing details"`
	Address  string `json:"address" validate:"max=300"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"email and password are required"`
	Password string `json:"password" validate:"required" msg:"email and password are required"`
}

type VerifyAccountRequest struct {
	Otp string `json:"otp" validate:"required,len=6" msg:"missing details"`
}

type SendResetOtpRequest struct {
	Email string `json:"email" validate:"required,email" msg:"Email is required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email" msg:"email,OTP and new password are required"`
	Otp         string `json:"otp" validate:"required,len=6" msg:"email,OTP and new password are required"`
	NewPassword string `json:"newPassword" validate:"required,strongpassword" msg:"email,OTP and new password are required"`
}

type AuthResponse struct {
	Token string           `json:"token"`
	User  UserDataResponse `json:"user"`
}

type UserDataResponse struct {
	Id                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	IsAccountVerified bool   `json:"isAccountVerified"`
}
