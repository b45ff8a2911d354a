package handler

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=donor receiver volunteer admin"`
	Location string `json:"location" validate:"required"`
	Phone    string `json:"phone"    validate:"required,phone"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=donor receiver volunteer admin"`
}

// userResponse is the public projection of an account. The password hash
// never appears here.
type userResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

type volunteersResponse struct {
	Success    bool           `json:"success"`
	Volunteers []userResponse `json:"volunteers"`
}
