package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"urbanreport/internal/repositories"
	"urbanreport/pkg/constants"
	"urbanreport/pkg/types"
)

type ReportExportServiceInterface interface {
	ExportReports(ctx context.Context, filter types.Filter) (*excelize.File, error)
}

type reportExportService struct {
	reportRepo   repositories.ReportRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
}

func NewReportExportService(
	reportRepo repositories.ReportRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
) ReportExportServiceInterface {
	return &reportExportService{reportRepo: reportRepo, categoryRepo: categoryRepo}
}

// categoryName resolves a category id to its display name, memoizing per
// export so each category is fetched once.
func (s *reportExportService) categoryName(ctx context.Context, names map[uuid.UUID]string, id uuid.UUID) string {
	if name, ok := names[id]; ok {
		return name
	}
	name := ""
	if category, err := s.categoryRepo.FindCategory(ctx, id); err == nil {
		name = category.Name
	}
	names[id] = name
	return name
}

var exportHeaders = []string{
	"Código", "Título", "Categoría", "Urgencia", "Estado", "Dirección",
	"Ciudadano", "Correo", "Calificación", "Creado", "Actualizado", "Resuelto",
}

// ExportReports builds an XLSX listing. The admin export is not scoped; it
// covers every report matching the filter.
func (s *reportExportService) ExportReports(ctx context.Context, filter types.Filter) (*excelize.File, error) {
	filter.WithPagination = false
	reports, _, err := s.reportRepo.GetReports(ctx, filter, repositories.ReportScope{})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Reportes"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, header)
	}

	names := make(map[uuid.UUID]string)
	for i := range reports {
		r := &reports[i]
		rating := ""
		if r.CitizenRating.Valid {
			rating = fmt.Sprintf("%d", r.CitizenRating.Int)
		}
		row := []interface{}{
			r.TrackingCode,
			r.Title,
			s.categoryName(ctx, names, r.CategoryID),
			constants.UrgencyLabels[r.UrgencyLevel],
			constants.StatusLabel(r.Status),
			r.LocationAddress,
			r.CitizenName,
			r.CitizenEmail,
			rating,
			formatTime(r.CreatedAt),
			formatTime(r.UpdatedAt),
			formatNullTime(r.ResolvedAt),
		}
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	return f, nil
}
