package dto

type ValidateCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

type ValidateCodeResponse struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message"`
}
