package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/consent-api/internal/domain/repository"
)

// ReportService builds the XLSX export of the acceptance audit trail.
type ReportService struct {
	userTermRepo repository.UserTermRepository
	userRepo     repository.UserRepository
}

func NewReportService(userTermRepo repository.UserTermRepository, userRepo repository.UserRepository) (*ReportService, error) {
	if userTermRepo == nil {
		return nil, fmt.Errorf("UserTermRepository is required for ReportService")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for ReportService")
	}
	return &ReportService{userTermRepo: userTermRepo, userRepo: userRepo}, nil
}

// BuildAcceptanceReport renders the full acceptance ledger (active and
// superseded rows) into a spreadsheet. Emails are resolved where the user
// still exists; purged accounts keep only the raw user id.
func (s *ReportService) BuildAcceptanceReport() ([]byte, error) {
	history, err := s.userTermRepo.GetHistory()
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.List()
	if err != nil {
		return nil, err
	}

	emails := make(map[uint]string, len(users))
	for _, user := range users {
		emails[user.ID] = user.Email
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Acceptances"
	f.SetSheetName("Sheet1", sheet)

	header := []interface{}{"User ID", "Email", "Term ID", "Version", "Content", "Mandatory", "Accepted At", "Active"}
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, acceptance := range history {
		row := []interface{}{
			acceptance.UserID,
			emails[acceptance.UserID],
			acceptance.TermID,
			acceptance.Term.Version,
			acceptance.Term.Content,
			acceptance.Term.Mandatory,
			acceptance.AcceptedAt.Format("2006-01-02 15:04:05"),
			acceptance.IsActive,
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
