package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/consent-api/internal/pkg/errors"
)

// handleServiceError транслирует ошибки сервисного слоя в HTTP-статусы.
// Первопричина логируется здесь, наружу уходит только вид ошибки и сообщение.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation_error"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Senha incorreta.", "error_type": "unauthorized"})
	case errors.Is(err, apperrors.ErrAccountDeleted):
		c.JSON(http.StatusForbidden, gin.H{"error": "Conta excluída. Por favor, crie uma nova conta para acessar.", "error_type": "account_deleted"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Acesso negado.", "error_type": "forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Registro não encontrado.", "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "E-mail já cadastrado.", "error_type": "conflict"})
	default:
		log.Printf("[Handler] Внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor.", "error_type": "internal_server_error"})
	}
}
