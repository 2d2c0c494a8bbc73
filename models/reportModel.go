package models

import (
	"time"

	"gorm.io/datatypes"
)

// ReportSnapshot keeps one day's statistics as produced by the scheduled report.
type ReportSnapshot struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Day       string         `gorm:"size:10;uniqueIndex;not null" json:"day"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `json:"createdAt"`
}
