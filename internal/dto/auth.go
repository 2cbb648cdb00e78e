package dto

type AuthRequestDTO struct {
	Login    string `json:"login" example:"mrivera"`
	Password string `json:"password" example:"s3cret-pass"`
}

type AuthResponseDTO struct {
	Token string `json:"token"`
}
