// Package entity defines the domain entities for the bugs feature.
package entity

import "time"

// BugRecord is one reported bug, scoped to a device and its creator.
// JSON field names preserve the dashboard's wire format.
type BugRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// DeviceID partitions bugs between test devices; CreatedBy is the
	// owning user. Together with ScenarioID they form the uniqueness
	// scope: a partial unique index on (device_id, scenario_id,
	// created_by) rejects duplicates whenever ScenarioID is non-empty.
	DeviceID  string `gorm:"size:128;not null;index" json:"deviceId"`
	CreatedBy uint   `gorm:"not null;index" json:"createdBy"`

	ScenarioID      string   `gorm:"size:255" json:"ScenarioID"`
	TestCaseID      string   `gorm:"size:255" json:"TestCaseID"`
	Category        string   `gorm:"size:128" json:"Category"`
	Description     string   `json:"Description"`
	Status          string   `gorm:"size:64" json:"Status"`
	Priority        string   `gorm:"size:64" json:"Priority"`
	Severity        string   `gorm:"size:64" json:"Severity"`
	PreCondition    string   `json:"PreCondition"`
	StepsToExecute  []string `gorm:"serializer:json" json:"StepsToExecute"`
	ExpectedResult  string   `json:"ExpectedResult"`
	ActualResult    string   `json:"ActualResult"`
	Comments        string   `json:"Comments"`
	SuggestionToFix string   `json:"SuggestionToFix"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for GORM.
func (BugRecord) TableName() string {
	return "bugs"
}
