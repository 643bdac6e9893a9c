package dto

import "time"

// RegisterCompanyRequest alta de agencia: crea Company + cuenta + agente
// owner en una sola transacción.
type RegisterCompanyRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=1,max=200"`
	Country     string `json:"country"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	OwnerName   string `json:"owner_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de una cuenta (sin hash).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id,omitempty"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterCompanyResponse resultado del alta de agencia.
type RegisterCompanyResponse struct {
	Company CompanyResponse `json:"company"`
	Owner   AgentResponse   `json:"owner"`
	User    UserResponse    `json:"user"`
}
