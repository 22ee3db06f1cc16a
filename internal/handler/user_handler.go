package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/consent-api/internal/domain/entity"
	"github.com/yourusername/consent-api/internal/handler/dto"
	"github.com/yourusername/consent-api/internal/service"
)

// UserHandler обрабатывает запросы, связанные с пользователями
type UserHandler struct {
	authService         *service.AuthService
	notificationService *service.NotificationService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(authService *service.AuthService, notificationService *service.NotificationService) *UserHandler {
	return &UserHandler{
		authService:         authService,
		notificationService: notificationService,
	}
}

// Register обрабатывает POST /users/createUsuario
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Erro ao criar usuário.", "details": err.Error()})
		return
	}

	user, err := h.authService.RegisterUser(service.RegisterInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		AcceptedTerms: req.AcceptedTerms,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login обрабатывает POST /users/login.
// Токен выдается при верном пароле; при непройденной сверке согласий
// ответ несет redirectToTerms и списки терминов вместо профиля.
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados de login inválidos.", "details": err.Error()})
		return
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if result.RedirectToTerms {
		if len(result.TermsToUpdate) > 0 {
			c.JSON(http.StatusOK, gin.H{
				"message":         "Alguns termos foram atualizados. Por favor, aceite-os novamente.",
				"redirectToTerms": true,
				"termsToUpdate":   result.TermsToUpdate,
				"token":           result.Token,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":         "Você deve aceitar todos os termos obrigatórios.",
			"redirectToTerms": true,
			"mandatoryTerms":  result.MandatoryTerms,
			"token":           result.Token,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"user": gin.H{
			"name":          result.User.Name,
			"email":         result.User.Email,
			"acceptedTerms": toAcceptedTermDTOs(result.AcceptedTerms),
		},
	})
}

// GetProfile обрабатывает GET /users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	user, accepted, err := h.authService.GetProfile(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		AcceptedTerms: toAcceptedTermDTOs(accepted),
	})
}

// UpdateUser обрабатывает PUT /users/updateUsuario
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos.", "details": err.Error()})
		return
	}

	user, err := h.authService.UpdateUser(userID, service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuário atualizado com sucesso.", "user": user})
}

// DeleteUser обрабатывает DELETE /users/deleteUser/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	if err := h.authService.DeleteUser(userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuário deletado com sucesso."})
}

// ListUsers обрабатывает GET /users/
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// NotifyUsers обрабатывает POST /users/enviar-emails — рассылка всем
// пользователям; сбои по отдельным адресам не прерывают батч
func (h *UserHandler) NotifyUsers(c *gin.Context) {
	var req dto.NotifyRequest
	// Тело опционально: пустое тело дает стандартное уведомление
	_ = c.ShouldBindJSON(&req)

	sent, err := h.notificationService.NotifyAllUsers(c.Request.Context(), service.NotificationInput{
		Subject: req.Subject,
		Text:    req.Text,
		HTML:    req.HTML,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Emails enviados com sucesso!", "sent": sent})
}

func toAcceptedTermDTOs(acceptances []entity.UserTerm) []dto.AcceptedTermDTO {
	result := make([]dto.AcceptedTermDTO, len(acceptances))
	for i, acceptance := range acceptances {
		result[i] = dto.AcceptedTermDTO{
			ID:        acceptance.Term.ID,
			Content:   acceptance.Term.Content,
			Version:   acceptance.Term.Version,
			Mandatory: acceptance.Term.Mandatory,
		}
	}
	return result
}
