package services

import (
	"fmt"
	"log"
	"net/http"

	"github.com/ecosenseai/ecosense/config"
	"github.com/ecosenseai/ecosense/db"
	"github.com/ecosenseai/ecosense/models"
	"github.com/google/uuid"
	"gorm.io/gorm"

	errs "github.com/ecosenseai/ecosense/errors"
)

type WasteReportService interface {
	CreateReport(reporterID uuid.UUID, actorRole string, req *models.CreateReportRequest, imageURLs string) (*models.WasteReport, error)
	UpdateReportStatus(actorRole string, reportID uuid.UUID, status string) (*models.WasteReport, error)
	GetReport(reportID uuid.UUID) (*models.WasteReport, error)
	ListReports(filter models.ReportFilter) (*models.ReportList, error)
	GetReportStats() (*models.ReportStats, error)
}

type wasteReportService struct {
	Config     *config.Config
	gormDB     *db.GormDB
	reportRepo db.WasteReportRepository
	ledgerRepo db.LedgerRepository
}

func NewWasteReportService(gormDB *db.GormDB, reportRepo db.WasteReportRepository, ledgerRepo db.LedgerRepository, conf *config.Config) WasteReportService {
	return &wasteReportService{
		Config:     conf,
		gormDB:     gormDB,
		reportRepo: reportRepo,
		ledgerRepo: ledgerRepo,
	}
}

// CreateReport inserts the report and credits the reporter's earned
// points in one transaction. A report never exists without its ledger
// entry and points are never earned without a report.
func (s *wasteReportService) CreateReport(reporterID uuid.UUID, actorRole string, req *models.CreateReportRequest, imageURLs string) (*models.WasteReport, error) {
	if err := Authorize(OpCreateReport, actorRole); err != nil {
		return nil, err
	}

	if req.Latitude == nil || req.Longitude == nil {
		return nil, errs.New("latitude and longitude are required", http.StatusBadRequest)
	}
	if *req.Latitude < -90 || *req.Latitude > 90 || *req.Longitude < -180 || *req.Longitude > 180 {
		return nil, errs.New("coordinates out of range", http.StatusBadRequest)
	}

	wasteType := req.WasteType
	if wasteType == "" {
		wasteType = "other"
	}
	if !models.IsValidWasteType(wasteType) {
		return nil, errs.New(fmt.Sprintf("unknown waste type: %s", wasteType), http.StatusBadRequest)
	}
	severity := req.Severity
	if severity == "" {
		severity = models.SeverityMedium
	}
	if !models.IsValidSeverity(severity) {
		return nil, errs.New(fmt.Sprintf("unknown severity: %s", severity), http.StatusBadRequest)
	}

	report := &models.WasteReport{
		ReporterID:    reporterID,
		Latitude:      *req.Latitude,
		Longitude:     *req.Longitude,
		Address:       req.Address,
		Description:   req.Description,
		WasteType:     wasteType,
		Severity:      severity,
		Status:        models.StatusPending,
		ImageURLs:     imageURLs,
		PointsAwarded: s.Config.PointsPerReport,
	}

	err := s.gormDB.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.reportRepo.CreateReport(tx, report); err != nil {
			return err
		}
		return s.ledgerRepo.Credit(tx, reporterID, s.Config.PointsPerReport,
			models.TransactionEarned, models.ReferenceWasteReport, report.ID,
			"Points earned for waste report")
	})
	if err != nil {
		return nil, translateTxError(err)
	}

	log.Printf("report created: %s by user %s", report.ID, reporterID)
	return report, nil
}

// UpdateReportStatus moves a report through its lifecycle. Entering
// verified credits the bonus exactly once per report; the ledger is
// checked for an existing bonus inside the same transaction, so moving
// a report out of verified and back never credits twice.
func (s *wasteReportService) UpdateReportStatus(actorRole string, reportID uuid.UUID, status string) (*models.WasteReport, error) {
	if err := Authorize(OpUpdateReportStatus, actorRole); err != nil {
		return nil, err
	}
	if !models.IsValidStatusTarget(status) {
		return nil, errs.New(fmt.Sprintf("invalid status: %s", status), http.StatusBadRequest)
	}

	var updated *models.WasteReport
	err := s.gormDB.DB.Transaction(func(tx *gorm.DB) error {
		report, err := s.reportRepo.GetReportForUpdate(tx, reportID)
		if err != nil {
			return err
		}
		if models.IsTerminalStatus(report.Status) {
			return errs.New(fmt.Sprintf("report is already %s", report.Status), http.StatusConflict)
		}

		if err := s.reportRepo.UpdateReportStatus(tx, reportID, status); err != nil {
			return err
		}

		if status == models.StatusVerified {
			bonus := s.Config.PointsPerVerifiedReport - s.Config.PointsPerReport
			if bonus > 0 {
				credited, err := s.ledgerRepo.HasBonusForReport(tx, report.ReporterID, report.ID)
				if err != nil {
					return err
				}
				if !credited {
					err = s.ledgerRepo.Credit(tx, report.ReporterID, bonus,
						models.TransactionBonus, models.ReferenceWasteReport, report.ID,
						"Bonus points for verified report")
					if err != nil {
						return err
					}
				}
			}
		}

		report.Status = status
		updated = report
		return nil
	})
	if err != nil {
		return nil, translateTxError(err)
	}

	log.Printf("report %s status updated to %s", reportID, status)
	return updated, nil
}

func (s *wasteReportService) GetReport(reportID uuid.UUID) (*models.WasteReport, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		return nil, translateTxError(err)
	}
	return report, nil
}

func (s *wasteReportService) ListReports(filter models.ReportFilter) (*models.ReportList, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Status != "" && filter.Status != models.StatusPending && !models.IsValidStatusTarget(filter.Status) {
		return nil, errs.New(fmt.Sprintf("invalid status filter: %s", filter.Status), http.StatusBadRequest)
	}

	reports, total, err := s.reportRepo.ListReports(filter)
	if err != nil {
		return nil, err
	}
	return &models.ReportList{
		Reports: reports,
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
	}, nil
}

func (s *wasteReportService) GetReportStats() (*models.ReportStats, error) {
	return s.reportRepo.GetReportStats()
}
