package dto

// RegisterRequest — тело POST /users/createUsuario
type RegisterRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	AcceptedTerms []uint `json:"acceptedTerms" binding:"required"`
}

// LoginRequest — тело POST /users/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest — тело PUT /users/updateUsuario; nil-поля не изменяются
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// NotifyRequest — тело POST /users/enviar-emails; пустые поля заменяются
// стандартным уведомлением
type NotifyRequest struct {
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// AcceptedTermDTO — принятый термин в ответах login/profile
type AcceptedTermDTO struct {
	ID        uint   `json:"id"`
	Content   string `json:"content"`
	Version   string `json:"version"`
	Mandatory bool   `json:"mandatory"`
}

// ProfileResponse — ответ GET /users/profile.
// ID нужен фронтенду для удаления аккаунта.
type ProfileResponse struct {
	ID            uint              `json:"id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	AcceptedTerms []AcceptedTermDTO `json:"acceptedTerms"`
}
