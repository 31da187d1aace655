package models

import (
	"github.com/google/uuid"
)

// Report lifecycle. A report starts pending; resolved and rejected are
// terminal. Admins and field agents may move a report to any of the five
// non-initial statuses, but never out of a terminal one.
const (
	StatusPending    = "pending"
	StatusVerified   = "verified"
	StatusAssigned   = "assigned"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusRejected   = "rejected"
)

const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

var wasteTypes = map[string]bool{
	"plastic": true, "organic": true, "electronic": true, "hazardous": true,
	"construction": true, "medical": true, "textile": true, "mixed": true, "other": true,
}

var statusTargets = map[string]bool{
	StatusVerified:   true,
	StatusAssigned:   true,
	StatusInProgress: true,
	StatusResolved:   true,
	StatusRejected:   true,
}

var severities = map[string]bool{
	SeverityLow: true, SeverityMedium: true, SeverityHigh: true, SeverityCritical: true,
}

// WasteReport is a citizen-submitted geotagged report. PointsAwarded is
// the amount credited at creation time and never changes afterwards.
// The ai_* columns are written by the external classifier service only.
type WasteReport struct {
	Model
	ReporterID    uuid.UUID `json:"reporter_id" gorm:"type:uuid;not null;index"`
	Reporter      User      `json:"-" gorm:"foreignKey:ReporterID;constraint:OnDelete:CASCADE"`
	Latitude      float64   `json:"latitude" gorm:"not null"`
	Longitude     float64   `json:"longitude" gorm:"not null"`
	Address       string    `json:"address,omitempty"`
	Description   string    `json:"description,omitempty" gorm:"type:varchar(1000)"`
	WasteType     string    `json:"waste_type" gorm:"default:other"`
	AIWasteType   string    `json:"ai_waste_type,omitempty"`
	AIConfidence  float32   `json:"ai_confidence,omitempty"`
	Severity      string    `json:"severity" gorm:"not null;default:medium"`
	Status        string    `json:"status" gorm:"not null;default:pending;index"`
	ImageURLs     string    `json:"image_urls"`
	PointsAwarded int       `json:"points_awarded" gorm:"not null;default:0"`
	ReporterName  string    `json:"reporter_name,omitempty" gorm:"-"`
}

func IsValidWasteType(t string) bool { return wasteTypes[t] }

func IsValidSeverity(s string) bool { return severities[s] }

// IsValidStatusTarget reports whether s is a status a report may be
// moved to. The initial pending status is not a valid target.
func IsValidStatusTarget(s string) bool { return statusTargets[s] }

func IsTerminalStatus(s string) bool {
	return s == StatusResolved || s == StatusRejected
}

// Coordinates are pointers so a report on the equator or prime meridian
// (0 is a valid coordinate) is not mistaken for a missing field by the
// required binding.
type CreateReportRequest struct {
	Latitude    *float64 `json:"latitude" form:"latitude" binding:"required,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" form:"longitude" binding:"required,min=-180,max=180"`
	Address     string   `json:"address" form:"address" conform:"trim"`
	Description string   `json:"description" form:"description" conform:"trim"`
	WasteType   string   `json:"waste_type" form:"waste_type"`
	Severity    string   `json:"severity" form:"severity"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ReportFilter struct {
	Status    string
	WasteType string
	Page      int
	Limit     int
}

type ReportList struct {
	Reports []WasteReport `json:"reports"`
	Total   int64         `json:"total"`
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type WasteTypeCount struct {
	WasteType string `json:"waste_type"`
	Count     int64  `json:"count"`
}

type ReportStats struct {
	TotalReports int64            `json:"total_reports"`
	TodayReports int64            `json:"today_reports"`
	ByStatus     []StatusCount    `json:"by_status"`
	ByWasteType  []WasteTypeCount `json:"by_waste_type"`
}
