/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

DATES:
  All dates cross the wire as "YYYY-MM-DD" strings. Parsing happens in
  the handlers; DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/warp/quota-engine/quota"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ComputeRequest is the request to compute accounts for a case. When the
// case already has a stored computation, the new one is reconciled
// against it.
type ComputeRequest struct {
	CaseID          string `json:"case_id"`
	CoveragePercent int    `json:"coverage_percent"`
	Rights          string `json:"rights"`
	Role            string `json:"role"`
	Children        int    `json:"children,omitempty"`
	MotherDisabled  bool   `json:"mother_disabled,omitempty"`
	BirthDate       string `json:"birth_date,omitempty"`
	DueDate         string `json:"due_date,omitempty"`
	AdoptionDate    string `json:"adoption_date,omitempty"`
	NextCaseEvent   string `json:"next_case_event,omitempty"`
	RuleChoiceDate  string `json:"rule_choice_date,omitempty"`
}

// LegacyComputeRequest carries a stored historical rule input to replay.
type LegacyComputeRequest struct {
	CaseID   string          `json:"case_id"`
	Snapshot json.RawMessage `json:"snapshot"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// AccountDTO is one account entry with its week equivalent (5 benefit
// days per week).
type AccountDTO struct {
	Account  string `json:"account"`
	Category string `json:"category"`
	Days     int    `json:"days"`
	Weeks    string `json:"weeks"`
}

// ComputationDTO represents one computation in API responses.
type ComputationDTO struct {
	ID        string `json:"id"`
	CaseID    string `json:"case_id"`
	CreatedAt string `json:"created_at,omitempty"`

	Accounts     []AccountDTO `json:"accounts"`
	KeepOriginal []AccountDTO `json:"keep_original"`
	BeforeMerge  []AccountDTO `json:"before_merge"`

	TotalDays  int    `json:"total_days"`
	TotalWeeks string `json:"total_weeks"`

	ExtraMultipleBirthDays int `json:"extra_multiple_birth_days"`
	ExtraPrematureDays     int `json:"extra_premature_days"`

	Version string          `json:"version"`
	Audit   json.RawMessage `json:"audit,omitempty"`
}

// MinimumRightsDTO is the response of the minimum-rights endpoint.
type MinimumRightsDTO struct {
	CaseID   string       `json:"case_id,omitempty"`
	Accounts []AccountDTO `json:"accounts"`
}

// DayCountDTO is the response of the single-figure day-counter endpoints.
type DayCountDTO struct {
	Days  int    `json:"days"`
	Weeks string `json:"weeks"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// MAPPING HELPERS
// =============================================================================

var fiveDayWeek = decimal.NewFromInt(5)

// weeksOf renders a day count as weeks with the trailing zeros trimmed
// ("16" rather than "16.0", "16.2" for 81 days).
func weeksOf(days int) string {
	return decimal.NewFromInt(int64(days)).Div(fiveDayWeek).String()
}

// accountDTOs renders an account map in the engine's stable order.
func accountDTOs(accounts map[quota.AccountType]int) []AccountDTO {
	out := make([]AccountDTO, 0, len(accounts))
	for _, acct := range quota.AllAccountTypes {
		days, ok := accounts[acct]
		if !ok {
			continue
		}
		out = append(out, AccountDTO{
			Account:  string(acct),
			Category: string(acct.Category()),
			Days:     days,
			Weeks:    weeksOf(days),
		})
	}
	return out
}

func totalDays(accounts map[quota.AccountType]int) int {
	total := 0
	for _, days := range accounts {
		total += days
	}
	return total
}
