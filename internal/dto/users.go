package dto

// UpdateUserRequest captures administrator-triggered partial updates.
type UpdateUserRequest struct {
	Username    *string `json:"username,omitempty"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Password    *string `json:"password,omitempty"`
	Role        *string `json:"role,omitempty"`
}

// SearchUsersQuery holds the optional filters of the admin user search.
type SearchUsersQuery struct {
	Username  string `query:"username"`
	Email     string `query:"email"`
	FirstName string `query:"first_name"`
}

// UserResponse represents user data returned to clients.
type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phone_number"`
	State       string `json:"state"`
}
