package dto

import "time"

// RegisterCompanyRequest body for POST /api/auth/register-company: creates
// the shop and its first admin user in one step.
type RegisterCompanyRequest struct {
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address,omitempty"`
	CompanyPhone   string `json:"company_phone,omitempty"`
	CompanyGSTIN   string `json:"company_gstin,omitempty"`
	AdminName      string `json:"admin_name"`
	AdminEmail     string `json:"admin_email"`
	AdminPassword  string `json:"admin_password"`
}

// RegisterRequest body for POST /api/auth/register (admin adds a user).
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"` // defaults to salesperson
}

// LoginRequest body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse user in responses (never carries the password hash).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token + user for POST /api/auth/login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
