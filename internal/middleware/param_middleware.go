package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExtractUintParam извлекает числовой параметр URL и кладет его в контекст
// Gin под ключом contextKey. Нечисловое значение — сразу 400, до обработчика
// запрос не доходит.
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(paramName)
		value, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"message": "Parâmetro inválido: " + paramName,
			})
			return
		}
		c.Set(contextKey, uint(value))
		c.Next()
	}
}
