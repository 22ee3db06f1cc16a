package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/consent-api/internal/handler/dto"
	"github.com/yourusername/consent-api/internal/service"
)

// TermsHandler обрабатывает запросы, связанные с каталогом терминов и согласиями
type TermsHandler struct {
	termsService   *service.TermsService
	consentService *service.ConsentService
	reportService  *service.ReportService
}

// NewTermsHandler создает новый обработчик терминов
func NewTermsHandler(
	termsService *service.TermsService,
	consentService *service.ConsentService,
	reportService *service.ReportService,
) *TermsHandler {
	return &TermsHandler{
		termsService:   termsService,
		consentService: consentService,
		reportService:  reportService,
	}
}

// GetActiveLatest обрабатывает GET /terms/pegartermos —
// активные термины самой свежей версии
func (h *TermsHandler) GetActiveLatest(c *gin.Context) {
	terms, err := h.termsService.GetActiveLatestVersion()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, terms)
}

// PublishBatch обрабатывает POST /terms/cadastrartermos —
// публикация нового поколения терминов
func (h *TermsHandler) PublishBatch(c *gin.Context) {
	var req []dto.PublishTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido.", "details": err.Error()})
		return
	}

	entries := make([]service.PublishTermInput, len(req))
	for i, entry := range req {
		entries[i] = service.PublishTermInput{
			Version:   entry.Version,
			Content:   entry.Content,
			Mandatory: entry.Mandatory,
		}
	}

	published, err := h.termsService.PublishBatch(entries)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, published)
}

// UpdateAcceptances обрабатывает PUT /terms/atualizartermos —
// клиент присылает ПОЛНЫЙ набор принятых терминов, не дельту
func (h *TermsHandler) UpdateAcceptances(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var termIDs []uint
	if err := c.ShouldBindJSON(&termIDs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lista de termos inválida.", "details": err.Error()})
		return
	}

	if err := h.consentService.RecordAcceptances(userID, termIDs); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Termos atualizados com sucesso."})
}

// GetHistory обрабатывает GET /terms/termos-aceitos —
// полный аудиторский след согласий пользователя
func (h *TermsHandler) GetHistory(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	history, err := h.consentService.GetHistory(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result := make([]dto.AcceptanceHistoryDTO, len(history))
	for i, acceptance := range history {
		result[i] = dto.AcceptanceHistoryDTO{
			TermID:     acceptance.TermID,
			Content:    acceptance.Term.Content,
			Version:    acceptance.Term.Version,
			Mandatory:  acceptance.Term.Mandatory,
			AcceptedAt: acceptance.AcceptedAt,
			IsActive:   acceptance.IsActive,
		}
	}

	c.JSON(http.StatusOK, result)
}

// ExportReport обрабатывает GET /terms/export — выгрузка реестра согласий в XLSX
func (h *TermsHandler) ExportReport(c *gin.Context) {
	report, err := h.reportService.BuildAcceptanceReport()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("acceptances-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", report)
}
