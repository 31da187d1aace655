package db

import (
	"github.com/ecosenseai/ecosense/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type HotspotRepository interface {
	GetHotspots(limit int) ([]models.Hotspot, error)
	GetHotspotByID(hotspotID uuid.UUID) (*models.Hotspot, error)
	GetReportsNearHotspot(hotspot *models.Hotspot, limit int) ([]models.WasteReport, error)
}

type hotspotRepo struct {
	DB *gorm.DB
}

func NewHotspotRepo(db *GormDB) HotspotRepository {
	return &hotspotRepo{db.DB}
}

func (r *hotspotRepo) GetHotspots(limit int) ([]models.Hotspot, error) {
	var hotspots []models.Hotspot
	err := r.DB.Order("risk_score DESC").Limit(limit).Find(&hotspots).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing hotspots")
	}
	return hotspots, nil
}

func (r *hotspotRepo) GetHotspotByID(hotspotID uuid.UUID) (*models.Hotspot, error) {
	var hotspot models.Hotspot
	if err := r.DB.First(&hotspot, "id = ?", hotspotID).Error; err != nil {
		return nil, err
	}
	return &hotspot, nil
}

func (r *hotspotRepo) GetReportsNearHotspot(hotspot *models.Hotspot, limit int) ([]models.WasteReport, error) {
	var reports []models.WasteReport
	err := r.DB.Where("ABS(latitude - ?) < 0.01 AND ABS(longitude - ?) < 0.01",
		hotspot.Latitude, hotspot.Longitude).
		Order("created_at DESC").
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing reports near hotspot")
	}
	return reports, nil
}
