package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Tejkumar2005/solarfaulty-analysis/internal/domain/panel"
)

type InspectionRepository struct {
	db *gorm.DB
}

func NewInspectionRepository(db *gorm.DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

func (Inspection) TableName() string {
	return "el_inspections"
}

func (FaultReport) TableName() string {
	return "fault_reports"
}

type Inspection struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	FaultType    string         `gorm:"not null"`
	Confidence   float64        `gorm:"not null"`
	Distribution datatypes.JSON `gorm:"type:jsonb;not null"`
	Severity     *string
	ImageName    *string
	ImageURL     *string
	Pincode      *string
	CreatedAt    time.Time
}

type FaultReport struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	InspectionID  *uuid.UUID `gorm:"type:uuid"`
	ReporterName  string     `gorm:"not null"`
	ReporterPhone string     `gorm:"not null"`
	ReporterEmail string     `gorm:"not null"`
	Pincode       *string
	PanelLocation *string
	Notes         *string
	FaultType     string  `gorm:"not null"`
	Confidence    float64 `gorm:"not null"`
	Severity      *string
	OfficeName    string `gorm:"not null"`
	OfficeEmail   string `gorm:"not null"`
	OfficePhone   string `gorm:"not null"`
	OfficeAddress string `gorm:"not null"`
	ReportText    string `gorm:"not null"`
	CreatedAt     time.Time
}

func (r *InspectionRepository) CreateInspection(ctx context.Context, insp *panel.Inspection) error {
	dist, err := json.Marshal(insp.Prediction.Distribution)
	if err != nil {
		return fmt.Errorf("marshal distribution: %w", err)
	}

	row := Inspection{
		ID:           uuid.New(),
		FaultType:    insp.Prediction.Label,
		Confidence:   insp.Prediction.Confidence,
		Distribution: datatypes.JSON(dist),
		CreatedAt:    time.Now(),
	}
	if insp.Severity != "" {
		s := string(insp.Severity)
		row.Severity = &s
	}
	if insp.ImageName != "" {
		row.ImageName = &insp.ImageName
	}
	if insp.ImageURL != "" {
		row.ImageURL = &insp.ImageURL
	}
	if insp.Pincode != "" {
		row.Pincode = &insp.Pincode
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create inspection: %w", err)
	}

	insp.ID = row.ID
	insp.CreatedAt = row.CreatedAt
	return nil
}

func (r *InspectionRepository) GetInspection(ctx context.Context, id uuid.UUID) (*Inspection, error) {
	var row Inspection
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *InspectionRepository) FindInspections(ctx context.Context, faultType *string, from, to *time.Time, limit, offset int) ([]Inspection, error) {
	query := r.db.WithContext(ctx).Model(&Inspection{})

	if faultType != nil {
		query = query.Where("fault_type = ?", *faultType)
	}
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}

	query = query.Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []Inspection
	err := query.Find(&rows).Error
	return rows, err
}

func (r *InspectionRepository) CreateReport(ctx context.Context, rep *panel.Report, inspectionID *uuid.UUID) error {
	row := FaultReport{
		ID:            rep.ID,
		InspectionID:  inspectionID,
		ReporterName:  rep.User.Name,
		ReporterPhone: rep.User.Phone,
		ReporterEmail: rep.User.Email,
		FaultType:     rep.FaultType,
		Confidence:    rep.Confidence,
		OfficeName:    rep.Office.Name,
		OfficeEmail:   rep.Office.Email,
		OfficePhone:   rep.Office.Phone,
		OfficeAddress: rep.Office.Address,
		ReportText:    rep.Text,
		CreatedAt:     rep.Timestamp,
	}
	if rep.User.Pincode != "" {
		row.Pincode = &rep.User.Pincode
	}
	if rep.User.PanelLocation != "" {
		row.PanelLocation = &rep.User.PanelLocation
	}
	if rep.User.Notes != "" {
		row.Notes = &rep.User.Notes
	}
	if rep.Severity != "" {
		s := string(rep.Severity)
		row.Severity = &s
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create fault report: %w", err)
	}
	return nil
}

func (r *InspectionRepository) GetReport(ctx context.Context, id uuid.UUID) (*FaultReport, error) {
	var row FaultReport
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *InspectionRepository) FindReports(ctx context.Context, from, to *time.Time) ([]FaultReport, error) {
	query := r.db.WithContext(ctx).Model(&FaultReport{})
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}
	var rows []FaultReport
	err := query.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// DeleteOldInspections удаляет результаты старше указанного количества дней
func (r *InspectionRepository) DeleteOldInspections(ctx context.Context, days int) (int64, error) {
	cutoffTime := time.Now().AddDate(0, 0, -days)
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoffTime).
		Delete(&Inspection{})

	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
