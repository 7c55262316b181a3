package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister = "User registered successfully!"
	MessageSuccessLogin    = "Login successful"
	MessageSuccessGetMe    = "success get user"

	MessageFailedRegister = "failed to register user"
	MessageFailedLogin    = "failed to login"
	MessageFailedGetMe    = "failed to get user"

	MessageEmailAlreadyExists = "Email already exists!"
	MessageInvalidCredentials = "Invalid email or password!"

	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type (
	SignupRequest struct {
		Email    string `json:"email" validate:"required,email"`
		FullName string `json:"fullName" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	SignupResponse struct {
		ID       uint   `json:"id"`
		Email    string `json:"email"`
		FullName string `json:"fullName"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token     string    `json:"token"`
		TokenType string    `json:"tokenType"`
		ExpiresAt time.Time `json:"expiresAt"`
	}

	UserResponse struct {
		ID        uint      `json:"id"`
		Email     string    `json:"email"`
		FullName  string    `json:"fullName"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// AuthClaims is what a verified token asserts about its holder.
	AuthClaims struct {
		Email    string
		FullName string
		UserID   uint
	}
)
