// Package dto defines data transfer objects for the bugs feature's HTTP
// transport layer. Field names preserve the dashboard's wire format.
package dto

import "bugdash_backend/internal/feature/bugs/usecase"

// BugFields carries the mutable bug attributes. Pointers distinguish
// absent fields from fields set to the empty string, so the same shape
// serves both create and partial update. StepsToExecute deliberately
// stays untyped: clients send either a newline-delimited string or an
// array, and normalization happens in the usecase.
type BugFields struct {
	ScenarioID      *string `json:"ScenarioID"`
	TestCaseID      *string `json:"TestCaseID"`
	Category        *string `json:"Category"`
	Description     *string `json:"Description"`
	Status          *string `json:"Status"`
	Priority        *string `json:"Priority"`
	Severity        *string `json:"Severity"`
	PreCondition    *string `json:"PreCondition"`
	StepsToExecute  any     `json:"StepsToExecute"`
	ExpectedResult  *string `json:"ExpectedResult"`
	ActualResult    *string `json:"ActualResult"`
	Comments        *string `json:"Comments"`
	SuggestionToFix *string `json:"SuggestionToFix"`
}

// CreateBugReq is the request body for POST /api/bugs.
type CreateBugReq struct {
	DeviceID string `json:"deviceId" binding:"required"`
	BugFields
}

// UpdateBugReq is the request body for PATCH /api/bugs/:id.
type UpdateBugReq struct {
	BugFields
}

// ToFields converts the DTO into the usecase's field set.
func (f *BugFields) ToFields() usecase.Fields {
	return usecase.Fields{
		ScenarioID:      f.ScenarioID,
		TestCaseID:      f.TestCaseID,
		Category:        f.Category,
		Description:     f.Description,
		Status:          f.Status,
		Priority:        f.Priority,
		Severity:        f.Severity,
		PreCondition:    f.PreCondition,
		StepsToExecute:  f.StepsToExecute,
		ExpectedResult:  f.ExpectedResult,
		ActualResult:    f.ActualResult,
		Comments:        f.Comments,
		SuggestionToFix: f.SuggestionToFix,
	}
}
