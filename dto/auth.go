package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=3"`
}

type AuthResponse struct {
	Token    string   `json:"token"`
	Type     string   `json:"type"`
	Username string   `json:"username"`
	Email    *string  `json:"email"`
	Roles    []string `json:"roles"`
}

// UserProjection is the public profile of a user.
type UserProjection struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
