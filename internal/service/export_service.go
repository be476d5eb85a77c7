package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/campusatlas/scheduling-api/internal/models"
	appErrors "github.com/campusatlas/scheduling-api/pkg/errors"
	"github.com/campusatlas/scheduling-api/pkg/export"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

type exportSectionLister interface {
	ListByRoom(ctx context.Context, roomID string) ([]models.Section, error)
}

type exportRoomReader interface {
	FindByID(ctx context.Context, id string) (*models.Room, error)
}

// ExportPayload is a rendered document ready to be served.
type ExportPayload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportService renders a room's weekly schedule as CSV or PDF.
type ExportService struct {
	sections exportSectionLister
	rooms    exportRoomReader
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService instantiates ExportService.
func NewExportService(sections exportSectionLister, rooms exportRoomReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		sections: sections,
		rooms:    rooms,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// RoomSchedule renders the weekly schedule of one room.
func (s *ExportService) RoomSchedule(ctx context.Context, roomID string, format ExportFormat) (*ExportPayload, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	sections, err := s.sections.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list room sections")
	}

	dataset := export.Dataset{
		Headers: []string{"Day", "Time", "Course", "Section", "Type", "Faculty"},
	}
	for _, section := range sections {
		facultyID := ""
		if section.FacultyID != nil {
			facultyID = *section.FacultyID
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Day":     section.Day,
			"Time":    section.TimeSlot,
			"Course":  section.CourseCode,
			"Section": section.SectionLabel,
			"Type":    section.Type,
			"Faculty": facultyID,
		})
	}

	title := fmt.Sprintf("Room %s Weekly Schedule", room.Number)

	switch format {
	case FormatCSV:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportPayload{
			FileName:    fmt.Sprintf("room-%s-schedule.csv", room.Number),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case FormatPDF:
		data, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportPayload{
			FileName:    fmt.Sprintf("room-%s-schedule.pdf", room.Number),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
