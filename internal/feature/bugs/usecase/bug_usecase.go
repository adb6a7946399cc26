package usecase

import (
	"context"
	"strings"

	"bugdash_backend/internal/feature/bugs/domain/entity"
)

// GroupField names a bug attribute the summary can aggregate over.
type GroupField string

// Aggregatable fields. The adapter maps these to column names; nothing
// else is accepted, which keeps raw SQL fragments out of the usecase.
const (
	GroupByStatus   GroupField = "status"
	GroupByPriority GroupField = "priority"
	GroupBySeverity GroupField = "severity"
	GroupByCategory GroupField = "category"
)

// FieldCount is one bucket of a grouped count.
type FieldCount struct {
	Value string
	Count int64
}

// BugRepository abstracts the persistence layer for bug records.
// Following Go convention, interfaces are defined by the consumer
// (usecase), not the provider (adapters).
type BugRepository interface {
	// Create persists a new record. A unique-constraint violation on the
	// (device, scenario, owner) triple maps to ErrDuplicateBug.
	Create(ctx context.Context, bug *entity.BugRecord) error

	// FindByID retrieves a record by ID. Returns ErrBugNotFound if absent.
	FindByID(ctx context.Context, id uint) (*entity.BugRecord, error)

	// ListByDevice returns the owner's records for a device, ordered by
	// scenario id ascending.
	ListByDevice(ctx context.Context, deviceID string, ownerID uint) ([]*entity.BugRecord, error)

	// ExistsScenario reports whether a record other than excludeID
	// (0 for none) holds the same (deviceID, scenarioID, ownerID) triple.
	ExistsScenario(ctx context.Context, deviceID, scenarioID string, ownerID, excludeID uint) (bool, error)

	// Update persists the full record. Duplicate-key maps to ErrDuplicateBug.
	Update(ctx context.Context, bug *entity.BugRecord) error

	// Delete removes a record. Returns ErrBugNotFound when nothing matched.
	Delete(ctx context.Context, id uint) error

	// DeleteByDevice removes all of the owner's records for a device and
	// returns how many were removed.
	DeleteByDevice(ctx context.Context, deviceID string, ownerID uint) (int64, error)

	// CountByDevice counts the owner's records for a device.
	CountByDevice(ctx context.Context, deviceID string, ownerID uint) (int64, error)

	// GroupCount aggregates occurrences of each distinct value of a field
	// within the device+owner scope. Missing and empty values are
	// normalized to "Unknown"; buckets come back count-descending.
	GroupCount(ctx context.Context, deviceID string, ownerID uint, field GroupField) ([]FieldCount, error)
}

// Fields carries the mutable attributes of a bug record. Pointer fields
// distinguish "absent" from "set to empty", which is what makes partial
// updates possible. StepsToExecute accepts whatever shape the client
// sent and is canonicalized by NormalizeSteps.
type Fields struct {
	ScenarioID      *string
	TestCaseID      *string
	Category        *string
	Description     *string
	Status          *string
	Priority        *string
	Severity        *string
	PreCondition    *string
	StepsToExecute  any
	ExpectedResult  *string
	ActualResult    *string
	Comments        *string
	SuggestionToFix *string
}

// Summary is the aggregated view of a device's bugs.
type Summary struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"byStatus"`
	ByPriority map[string]int64 `json:"byPriority"`
	BySeverity map[string]int64 `json:"bySeverity"`
	ByArea     map[string]int64 `json:"byArea"`
}

// BugUsecase implements bug CRUD with the ownership and duplicate
// prevention invariants.
type BugUsecase struct {
	bugs BugRepository
}

// NewBugUsecase creates a new BugUsecase.
func NewBugUsecase(bugs BugRepository) *BugUsecase {
	return &BugUsecase{bugs: bugs}
}

// NormalizeSteps canonicalizes the steps field before it is stored.
// A newline-delimited string or a slice of strings becomes a trimmed
// sequence with empty lines dropped; any other input yields no steps.
func NormalizeSteps(input any) []string {
	steps := []string{}
	appendLine := func(line string) {
		if line = strings.TrimSpace(line); line != "" {
			steps = append(steps, line)
		}
	}

	switch v := input.(type) {
	case string:
		for _, line := range strings.Split(v, "\n") {
			appendLine(line)
		}
	case []string:
		for _, line := range v {
			appendLine(line)
		}
	case []any:
		for _, item := range v {
			if line, ok := item.(string); ok {
				appendLine(line)
			}
		}
	}
	return steps
}

// List returns the owner's bugs for a device, scenario id ascending.
func (u *BugUsecase) List(ctx context.Context, deviceID string, ownerID uint) ([]*entity.BugRecord, error) {
	return u.bugs.ListByDevice(ctx, deviceID, ownerID)
}

// Create adds a bug for the owner. When a non-empty scenario id is given,
// a pre-check produces the friendly conflict error before the insert; the
// storage constraint remains the final arbiter under concurrent writers,
// and its violation surfaces as the same ErrDuplicateBug.
func (u *BugUsecase) Create(ctx context.Context, ownerID uint, deviceID string, fields Fields) (*entity.BugRecord, error) {
	bug := &entity.BugRecord{
		DeviceID:       deviceID,
		CreatedBy:      ownerID,
		StepsToExecute: NormalizeSteps(fields.StepsToExecute),
	}
	if fields.ScenarioID != nil {
		bug.ScenarioID = strings.TrimSpace(*fields.ScenarioID)
	}
	applyFields(bug, fields)

	if bug.ScenarioID != "" {
		exists, err := u.bugs.ExistsScenario(ctx, deviceID, bug.ScenarioID, ownerID, 0)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateBug
		}
	}

	if err := u.bugs.Create(ctx, bug); err != nil {
		return nil, err
	}
	return bug, nil
}

// Update applies a partial field merge to an owned record. Ownership is
// checked before any mutation; a scenario id change re-runs the clash
// check against the record's own device+owner scope, excluding itself.
func (u *BugUsecase) Update(ctx context.Context, id, ownerID uint, fields Fields) (*entity.BugRecord, error) {
	bug, err := u.bugs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bug.CreatedBy != ownerID {
		return nil, ErrForbidden
	}

	if fields.ScenarioID != nil {
		scenario := strings.TrimSpace(*fields.ScenarioID)
		if scenario != "" {
			clash, err := u.bugs.ExistsScenario(ctx, bug.DeviceID, scenario, bug.CreatedBy, bug.ID)
			if err != nil {
				return nil, err
			}
			if clash {
				return nil, ErrDuplicateBug
			}
		}
		bug.ScenarioID = scenario
	}

	if fields.StepsToExecute != nil {
		bug.StepsToExecute = NormalizeSteps(fields.StepsToExecute)
	}
	applyFields(bug, fields)

	if err := u.bugs.Update(ctx, bug); err != nil {
		return nil, err
	}
	return bug, nil
}

// Delete removes an owned record.
func (u *BugUsecase) Delete(ctx context.Context, id, ownerID uint) error {
	bug, err := u.bugs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if bug.CreatedBy != ownerID {
		return ErrForbidden
	}
	return u.bugs.Delete(ctx, id)
}

// DeleteAll removes every record in the owner's device scope. Zero
// deletions is a valid outcome, not an error.
func (u *BugUsecase) DeleteAll(ctx context.Context, deviceID string, ownerID uint) (int64, error) {
	return u.bugs.DeleteByDevice(ctx, deviceID, ownerID)
}

// Summary aggregates the owner's device scope by status, priority,
// severity and category. All maps are present and empty when the scope
// holds no bugs.
func (u *BugUsecase) Summary(ctx context.Context, deviceID string, ownerID uint) (*Summary, error) {
	summary := &Summary{
		ByStatus:   map[string]int64{},
		ByPriority: map[string]int64{},
		BySeverity: map[string]int64{},
		ByArea:     map[string]int64{},
	}

	total, err := u.bugs.CountByDevice(ctx, deviceID, ownerID)
	if err != nil {
		return nil, err
	}
	summary.Total = total
	if total == 0 {
		return summary, nil
	}

	groups := []struct {
		field GroupField
		dst   map[string]int64
	}{
		{GroupByStatus, summary.ByStatus},
		{GroupByPriority, summary.ByPriority},
		{GroupBySeverity, summary.BySeverity},
		{GroupByCategory, summary.ByArea},
	}
	for _, g := range groups {
		counts, err := u.bugs.GroupCount(ctx, deviceID, ownerID, g.field)
		if err != nil {
			return nil, err
		}
		for _, fc := range counts {
			g.dst[fc.Value] = fc.Count
		}
	}
	return summary, nil
}

// applyFields merges the non-nil scalar fields into the record.
// ScenarioID and StepsToExecute are handled by the callers because both
// need extra processing.
func applyFields(bug *entity.BugRecord, fields Fields) {
	if fields.TestCaseID != nil {
		bug.TestCaseID = *fields.TestCaseID
	}
	if fields.Category != nil {
		bug.Category = *fields.Category
	}
	if fields.Description != nil {
		bug.Description = *fields.Description
	}
	if fields.Status != nil {
		bug.Status = *fields.Status
	}
	if fields.Priority != nil {
		bug.Priority = *fields.Priority
	}
	if fields.Severity != nil {
		bug.Severity = *fields.Severity
	}
	if fields.PreCondition != nil {
		bug.PreCondition = *fields.PreCondition
	}
	if fields.ExpectedResult != nil {
		bug.ExpectedResult = *fields.ExpectedResult
	}
	if fields.ActualResult != nil {
		bug.ActualResult = *fields.ActualResult
	}
	if fields.Comments != nil {
		bug.Comments = *fields.Comments
	}
	if fields.SuggestionToFix != nil {
		bug.SuggestionToFix = *fields.SuggestionToFix
	}
}
