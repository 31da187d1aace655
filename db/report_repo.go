package db

import (
	"time"

	"github.com/ecosenseai/ecosense/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type WasteReportRepository interface {
	CreateReport(tx *gorm.DB, report *models.WasteReport) error
	GetReportByID(reportID uuid.UUID) (*models.WasteReport, error)
	GetReportForUpdate(tx *gorm.DB, reportID uuid.UUID) (*models.WasteReport, error)
	UpdateReportStatus(tx *gorm.DB, reportID uuid.UUID, status string) error
	ListReports(filter models.ReportFilter) ([]models.WasteReport, int64, error)
	GetReportStats() (*models.ReportStats, error)
}

type wasteReportRepo struct {
	DB *gorm.DB
}

func NewWasteReportRepo(db *GormDB) WasteReportRepository {
	return &wasteReportRepo{db.DB}
}

func (r *wasteReportRepo) CreateReport(tx *gorm.DB, report *models.WasteReport) error {
	if err := tx.Create(report).Error; err != nil {
		return errors.Wrap(err, "creating waste report")
	}
	return nil
}

func (r *wasteReportRepo) GetReportByID(reportID uuid.UUID) (*models.WasteReport, error) {
	var report models.WasteReport
	if err := r.DB.Preload("Reporter").First(&report, "id = ?", reportID).Error; err != nil {
		return nil, err
	}
	report.ReporterName = report.Reporter.FullName
	return &report, nil
}

// GetReportForUpdate locks the report row for the rest of the caller's
// transaction so concurrent status updates serialise.
func (r *wasteReportRepo) GetReportForUpdate(tx *gorm.DB, reportID uuid.UUID) (*models.WasteReport, error) {
	var report models.WasteReport
	if err := LockForUpdate(tx).First(&report, "id = ?", reportID).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *wasteReportRepo) UpdateReportStatus(tx *gorm.DB, reportID uuid.UUID, status string) error {
	err := tx.Model(&models.WasteReport{}).
		Where("id = ?", reportID).
		Update("status", status).Error
	if err != nil {
		return errors.Wrap(err, "updating report status")
	}
	return nil
}

func (r *wasteReportRepo) ListReports(filter models.ReportFilter) ([]models.WasteReport, int64, error) {
	query := r.DB.Model(&models.WasteReport{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.WasteType != "" {
		query = query.Where("waste_type = ?", filter.WasteType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "counting waste reports")
	}

	offset := (filter.Page - 1) * filter.Limit
	var reports []models.WasteReport
	err := query.Preload("Reporter").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(offset).
		Find(&reports).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "listing waste reports")
	}

	for i := range reports {
		reports[i].ReporterName = reports[i].Reporter.FullName
	}
	return reports, total, nil
}

func (r *wasteReportRepo) GetReportStats() (*models.ReportStats, error) {
	stats := &models.ReportStats{}

	if err := r.DB.Model(&models.WasteReport{}).Count(&stats.TotalReports).Error; err != nil {
		return nil, errors.Wrap(err, "counting reports")
	}

	startOfDay := time.Now().Truncate(24 * time.Hour)
	err := r.DB.Model(&models.WasteReport{}).
		Where("created_at >= ?", startOfDay).
		Count(&stats.TodayReports).Error
	if err != nil {
		return nil, errors.Wrap(err, "counting today's reports")
	}

	err = r.DB.Model(&models.WasteReport{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&stats.ByStatus).Error
	if err != nil {
		return nil, errors.Wrap(err, "grouping reports by status")
	}

	err = r.DB.Model(&models.WasteReport{}).
		Select("waste_type, COUNT(*) as count").
		Group("waste_type").
		Scan(&stats.ByWasteType).Error
	if err != nil {
		return nil, errors.Wrap(err, "grouping reports by waste type")
	}

	return stats, nil
}
