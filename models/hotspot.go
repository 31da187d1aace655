package models

import "time"

// Hotspot is an AI-predicted waste accumulation area. Rows are written
// by the external prediction service; this API only reads them.
type Hotspot struct {
	Model
	Latitude        float64   `json:"latitude" gorm:"not null"`
	Longitude       float64   `json:"longitude" gorm:"not null"`
	RadiusMeters    float32   `json:"radius_meters" gorm:"not null;default:500"`
	RiskScore       float32   `json:"risk_score" gorm:"not null;default:0.5"`
	ReportCount     int       `json:"report_count" gorm:"not null;default:0"`
	LastPredictedAt time.Time `json:"last_predicted_at"`
}

type HotspotDetail struct {
	Hotspot       Hotspot       `json:"hotspot"`
	NearbyReports []WasteReport `json:"nearby_reports"`
}
