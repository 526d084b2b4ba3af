package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"parkhub/internal/domain"
	"parkhub/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Reservations"

// Export builds XLSX workbooks of reservations for administrators.
// When dir is non-empty, a copy of every workbook is kept there.
type Export struct {
	store domain.Store
	dir   string
	log   zerolog.Logger
}

func NewExport(store domain.Store, dir string, logger *zerolog.Logger) *Export {
	return &Export{
		store: store,
		dir:   dir,
		log:   logger.With().Str("component", "export_service").Logger(),
	}
}

// ReservationsWorkbook renders all reservations overlapping [from, to]
// into an XLSX file and returns the bytes plus a suggested file name.
func (s *Export) ReservationsWorkbook(ctx context.Context, actorRole string, from, to time.Time) ([]byte, string, error) {
	if actorRole != models.RoleAdmin {
		return nil, "", ErrForbidden
	}
	if from.IsZero() || to.IsZero() {
		return nil, "", Validationf("from and to are required")
	}
	if !from.Before(to) {
		return nil, "", Validationf("to must be after from")
	}

	reservations, err := s.store.ListReservationsInWindow(ctx, from, to)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load reservations: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(exportSheetName, "A1", fmt.Sprintf("Period: %s - %s",
		from.Format("2006-01-02"), to.Format("2006-01-02")))
	_ = f.MergeCell(exportSheetName, "A1", "H1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(exportSheetName, "A1", "A1", titleStyle)

	headers := []interface{}{"Code", "User ID", "Slot ID", "Vehicle ID", "Start", "End", "Status", "Created"}
	_ = f.SetSheetRow(exportSheetName, "A2", &headers)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	_ = f.SetCellStyle(exportSheetName, "A2", "H2", headerStyle)

	for i, r := range reservations {
		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		row := []interface{}{
			r.Code,
			r.UserID,
			r.SlotID,
			r.VehicleID,
			r.StartTime.Format(time.RFC3339),
			r.EndTime.Format(time.RFC3339),
			r.Status,
			r.CreatedAt.Format(time.RFC3339),
		}
		_ = f.SetSheetRow(exportSheetName, cell, &row)
	}

	_ = f.SetColWidth(exportSheetName, "A", "H", 22)
	_ = f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	name := fmt.Sprintf("reservations_%s_to_%s.xlsx",
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	s.keepCopy(name, buf.Bytes())

	s.log.Info().Int("rows", len(reservations)).Str("file", name).Msg("export rendered")
	return buf.Bytes(), name, nil
}

// keepCopy stores the workbook on disk for auditing. Best effort: a failed
// write is logged and never fails the export itself.
func (s *Export) keepCopy(name string, data []byte) {
	if s.dir == "" {
		return
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.log.Error().Err(err).Str("dir", s.dir).Msg("failed to create export directory")
		return
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("failed to keep export copy")
	}
}
