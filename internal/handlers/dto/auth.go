package dto

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type BootstrapProfileRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Location string `json:"location"`
	About    string `json:"about"`
}
