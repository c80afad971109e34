// Package export renders the admin review queue as an XLSX workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/bill-review/internal/domain/bill"
	"github.com/garyjia/bill-review/internal/domain/entity"
)

// ContentType is the MIME type of the produced workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const defaultSheet = "Sheet1"

var header = []interface{}{"Date", "Type", "Nom", "Montant", "TVA", "%", "Email", "Commentaire", "Commentaire admin", "Justificatif"}

// columns widths, by header position
var widths = []float64{12, 22, 28, 10, 8, 6, 24, 36, 36, 48}

var sheetOrder = []entity.Status{entity.StatusPending, entity.StatusAccepted, entity.StatusRefused}

// ReviewExporter writes one sheet per review column
type ReviewExporter struct {
	logger *zap.Logger
}

// NewReviewExporter creates a new exporter
func NewReviewExporter(logger *zap.Logger) *ReviewExporter {
	return &ReviewExporter{logger: logger}
}

// Write encodes the grouped bills as XLSX into w
func (e *ReviewExporter) Write(w io.Writer, groups bill.Groups) error {
	file, err := e.Build(groups)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Build creates the workbook; sheets are named after the review column titles
func (e *ReviewExporter) Build(groups bill.Groups) (*excelize.File, error) {
	file := excelize.NewFile()

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, status := range sheetOrder {
		sheet := bill.ColumnTitle(status)
		if i == 0 {
			if err := file.SetSheetName(defaultSheet, sheet); err != nil {
				_ = file.Close()
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := file.NewSheet(sheet); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}

		if err := e.fillSheet(file, sheet, groups.Get(status), headerStyle); err != nil {
			_ = file.Close()
			return nil, err
		}
	}

	file.SetActiveSheet(0)

	e.logger.Info("Review queue workbook built",
		zap.Int("pending", len(groups.Pending)),
		zap.Int("accepted", len(groups.Accepted)),
		zap.Int("refused", len(groups.Refused)))

	return file, nil
}

func (e *ReviewExporter) fillSheet(file *excelize.File, sheet string, bills []entity.Bill, headerStyle int) error {
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to set header of %s: %w", sheet, err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := file.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", sheet, err)
	}
	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := file.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, b := range bills {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := rowFor(b)
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to set row %d of %s: %w", i+2, sheet, err)
		}
	}
	return nil
}

func rowFor(b entity.Bill) []interface{} {
	var amount interface{} = ""
	if b.Amount != nil {
		amount = *b.Amount
	}
	return []interface{}{
		b.Date,
		b.Type,
		b.Name,
		amount,
		b.VAT,
		b.Pct,
		b.Email,
		b.Commentary,
		b.CommentAdmin,
		b.ProofURL(),
	}
}
