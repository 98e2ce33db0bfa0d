package dto

// RegisterRequest captures self-service signup payloads.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Password    string `json:"password" validate:"required"`
	Role        string `json:"role" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	State       string `json:"state" validate:"required"`
}

// Input converts the request into the registration input, field by field.
func (r RegisterRequest) Input() RegisterInput {
	return RegisterInput{
		Username:    r.Username,
		Email:       r.Email,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Password:    r.Password,
		Role:        r.Role,
		PhoneNumber: r.PhoneNumber,
		State:       r.State,
	}
}

// RegisterInput is the named-field argument of the registration operation.
type RegisterInput struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Password    string
	Role        string
	PhoneNumber string
	State       string
}

// LoginRequest captures credential input.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenType is the fixed label attached to issued access tokens.
const TokenType = "bearer"

// LoginResponse contains the issued access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MessageResponse is the body of plain confirmation responses.
type MessageResponse struct {
	Message string `json:"message"`
}
