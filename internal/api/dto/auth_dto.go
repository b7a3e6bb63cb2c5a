package dto

import "time"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	StaffID   int64     `json:"staff_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
}
