package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fadilmartias/resume-api/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	CandidateSheet = "Candidates"
	XLSXMediaType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var candidateHeaders = []string{"Candidate ID", "Introduction", "Skills"}

type CandidateExportService struct {
	logger *slog.Logger
}

func NewCandidateExportService(logger *slog.Logger) *CandidateExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CandidateExportService{logger: logger}
}

// WorkbookXLSX writes one row per candidate summary under a header row.
func (s *CandidateExportService) WorkbookXLSX(rows []model.CandidateSummary) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", CandidateSheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, h := range candidateHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(CandidateSheet, cell, h)
	}

	for i, r := range rows {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(CandidateSheet, cell, v)
		}
		write(1, r.CandidateID)
		write(2, r.Introduction)
		write(3, strings.Join(r.Skills, ", "))
	}

	_ = f.SetColWidth(CandidateSheet, "A", "A", 38)
	_ = f.SetColWidth(CandidateSheet, "B", "B", 80)
	_ = f.SetColWidth(CandidateSheet, "C", "C", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
