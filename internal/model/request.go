package model

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,max=72"`
}

type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=150"`
	DisplayName string `json:"display_name" validate:"max=200"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Role        string `json:"role" validate:"required,oneof=admin clinician guest"`
}

type CreatePatientRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Age  int    `json:"age" validate:"gte=0,lte=150"`
}

type CreateNoteRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}
