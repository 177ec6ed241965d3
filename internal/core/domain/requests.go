package domain

// SignupRequest carries the raw signup form fields.
type SignupRequest struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// LoginRequest carries the raw login form fields.
type LoginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}
