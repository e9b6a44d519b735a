package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SebJones333/Receipt-Scanner/internal/repository"
)

// Service is a tiny façade over the receipts repository that produces XLSX
// bytes for exports.
type Service struct {
	receipts repository.ReceiptRepository
	logger   *slog.Logger
}

func NewService(receipts repository.ReceiptRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{receipts: receipts, logger: logger}
}

// ExportReceiptsXLSX returns an XLSX workbook (as bytes) for the date window.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither is provided   -> all receipts.
func (s *Service) ExportReceiptsXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}

	recs, err := s.receipts.List(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query receipts: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Receipts"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"Store", "Transaction Date", "Total", "Total Source", "Saved At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.Store)
		if !r.TxDate.IsZero() {
			write(2, r.TxDate.Format("2006-01-02"))
		} else {
			write(2, "")
		}
		write(3, r.Total.StringFixed(2))
		write(4, r.TotalSource)
		write(5, r.CreatedAt.UTC().Format(time.RFC3339))
		row++
	}

	// Drop the default sheet when it is not ours.
	if defIdx, _ := f.GetSheetIndex("Sheet1"); defIdx != -1 && sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.ok", "rows", len(recs), "duration_ms", time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}
