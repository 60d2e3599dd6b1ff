package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Tejkumar2005/solarfaulty-analysis/internal/classifier"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/domain/panel"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/faultinfo"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/offices"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/report"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	// ErrNoOffice means no service office covers the given pincode.
	// Informational: the caller presents it as a message, not a failure.
	ErrNoOffice = errors.New("no service office found for this pincode")
)

// InspectionService runs the image-to-report pipeline. The classifier
// handle is loaded once and shared read-only across requests.
type InspectionService struct {
	repo  *repository.InspectionRepository
	model *classifier.Model
	log   zerolog.Logger
}

func NewInspectionService(repo *repository.InspectionRepository, model *classifier.Model, log zerolog.Logger) *InspectionService {
	return &InspectionService{
		repo:  repo,
		model: model,
		log:   log,
	}
}

// InspectionResult is everything the caller needs to present one
// processed EL image: the stored inspection, the knowledge-base entry
// and the matched office (nil when no pincode was given or none
// matched).
type InspectionResult struct {
	Inspection panel.Inspection     `json:"inspection"`
	Info       panel.FaultInfo      `json:"fault_info"`
	Office     *panel.ServiceOffice `json:"office,omitempty"`
	OfficeText string               `json:"office_contact,omitempty"`
}

// ProcessInspection classifies one decoded EL image, persists the
// result and resolves the nearest office when a pincode is supplied.
func (s *InspectionService) ProcessInspection(ctx context.Context, img image.Image, imageName, imageURL, pincode string) (*InspectionResult, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image is required", ErrInvalidInput)
	}

	pred, err := s.model.Predict(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	info := faultinfo.Get(pred.Label)

	insp := &panel.Inspection{
		Prediction: pred,
		Severity:   info.Severity,
		ImageName:  imageName,
		ImageURL:   imageURL,
		Pincode:    offices.Normalize(pincode),
	}
	if err := s.repo.CreateInspection(ctx, insp); err != nil {
		s.log.Error().
			Err(err).
			Str("fault_type", pred.Label).
			Msg("failed to persist inspection")
		return nil, fmt.Errorf("failed to persist inspection: %w", err)
	}

	s.log.Info().
		Str("inspection_id", insp.ID.String()).
		Str("fault_type", pred.Label).
		Str("confidence", report.FormatConfidence(pred.Confidence)).
		Str("severity", string(info.Severity)).
		Msg("EL image classified")

	result := &InspectionResult{
		Inspection: *insp,
		Info:       info,
	}
	if insp.Pincode != "" {
		if office, ok := offices.FindNearest(insp.Pincode); ok {
			result.Office = &office
			result.OfficeText = offices.FormatContactInfo(office)
		}
	}
	return result, nil
}

// FindOffice resolves a pincode to the nearest service office.
func (s *InspectionService) FindOffice(pincode string) (panel.ServiceOffice, string, error) {
	if offices.Normalize(pincode) == "" {
		return panel.ServiceOffice{}, "", fmt.Errorf("%w: pincode is required", ErrInvalidInput)
	}
	office, ok := offices.FindNearest(pincode)
	if !ok {
		return panel.ServiceOffice{}, "", ErrNoOffice
	}
	return office, offices.FormatContactInfo(office), nil
}

// ReportRequest carries everything needed to assemble a fault report
// for a stored inspection.
type ReportRequest struct {
	InspectionID string               `json:"inspection_id"`
	Contact      panel.ContactDetails `json:"contact"`
}

// BuildReport validates the request, matches a service office, and
// assembles and persists the fault report.
func (s *InspectionService) BuildReport(ctx context.Context, req ReportRequest) (*panel.Report, error) {
	inspID, err := uuid.Parse(req.InspectionID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid inspection_id", ErrInvalidInput)
	}

	row, err := s.repo.GetInspection(ctx, inspID)
	if err != nil {
		return nil, lookupError(err, "inspection", inspID)
	}

	office, ok := offices.FindNearest(req.Contact.Pincode)
	if !ok {
		return nil, ErrNoOffice
	}

	pred := panel.FaultPrediction{
		Label:      row.FaultType,
		Confidence: row.Confidence,
	}
	info := faultinfo.Get(row.FaultType)

	rep, err := report.Assemble(pred, info, req.Contact, office, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateReport(ctx, rep, &inspID); err != nil {
		s.log.Error().
			Err(err).
			Str("inspection_id", inspID.String()).
			Msg("failed to persist fault report")
		return nil, fmt.Errorf("failed to persist fault report: %w", err)
	}

	s.log.Info().
		Str("report_id", rep.ID.String()).
		Str("inspection_id", inspID.String()).
		Str("fault_type", rep.FaultType).
		Str("office", office.Name).
		Msg("fault report assembled")

	return rep, nil
}

// GetReportText returns the stored plain-text rendering of a report.
func (s *InspectionService) GetReportText(ctx context.Context, id string) (string, time.Time, error) {
	reportID, err := uuid.Parse(id)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: invalid report id", ErrInvalidInput)
	}
	row, err := s.repo.GetReport(ctx, reportID)
	if err != nil {
		return "", time.Time{}, lookupError(err, "report", reportID)
	}
	return row.ReportText, row.CreatedAt, nil
}

// InspectionInfo is the history view of one stored inspection.
type InspectionInfo struct {
	ID         string    `json:"id"`
	FaultType  string    `json:"fault_type"`
	Confidence float64   `json:"confidence"`
	Severity   *string   `json:"severity,omitempty"`
	ImageName  *string   `json:"image_name,omitempty"`
	ImageURL   *string   `json:"image_url,omitempty"`
	Pincode    *string   `json:"pincode,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// FindInspections lists stored inspections, newest first.
func (s *InspectionService) FindInspections(ctx context.Context, faultType *string, from, to *string, limit, offset int) ([]InspectionInfo, error) {
	var fromTime, toTime *time.Time
	if from != nil && *from != "" {
		t, err := time.Parse(time.RFC3339, *from)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from time format", ErrInvalidInput)
		}
		fromTime = &t
	}
	if to != nil && *to != "" {
		t, err := time.Parse(time.RFC3339, *to)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to time format", ErrInvalidInput)
		}
		toTime = &t
	}

	limit, offset = clampPaging(limit, offset)

	rows, err := s.repo.FindInspections(ctx, faultType, fromTime, toTime, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to find inspections: %w", err)
	}

	result := make([]InspectionInfo, 0, len(rows))
	for _, row := range rows {
		result = append(result, InspectionInfo{
			ID:         row.ID.String(),
			FaultType:  row.FaultType,
			Confidence: row.Confidence,
			Severity:   row.Severity,
			ImageName:  row.ImageName,
			ImageURL:   row.ImageURL,
			Pincode:    row.Pincode,
			CreatedAt:  row.CreatedAt,
		})
	}
	return result, nil
}

// FindReports lists stored fault reports for export.
func (s *InspectionService) FindReports(ctx context.Context, from, to *string) ([]repository.FaultReport, error) {
	var fromTime, toTime *time.Time
	if from != nil && *from != "" {
		t, err := time.Parse(time.RFC3339, *from)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from time format", ErrInvalidInput)
		}
		fromTime = &t
	}
	if to != nil && *to != "" {
		t, err := time.Parse(time.RFC3339, *to)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to time format", ErrInvalidInput)
		}
		toTime = &t
	}

	rows, err := s.repo.FindReports(ctx, fromTime, toTime)
	if err != nil {
		return nil, fmt.Errorf("failed to find reports: %w", err)
	}
	return rows, nil
}

// Cleanup удаляет результаты инспекций старше указанного количества дней
func (s *InspectionService) Cleanup(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("%w: days must be positive", ErrInvalidInput)
	}
	deleted, err := s.repo.DeleteOldInspections(ctx, days)
	if err != nil {
		s.log.Error().Err(err).Int("days", days).Msg("failed to cleanup old inspections")
		return 0, err
	}
	if deleted > 0 {
		s.log.Info().Int64("deleted_count", deleted).Int("days", days).Msg("cleaned up old inspections")
	}
	return deleted, nil
}

// lookupError keeps record absence distinct from real database
// failures: only gorm.ErrRecordNotFound maps to ErrNotFound.
func lookupError(err error, what string, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, what, id)
	}
	return fmt.Errorf("failed to load %s %s: %w", what, id, err)
}

func clampPaging(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
