/*
handlers.go - HTTP API handlers for the quota engine

PURPOSE:
  Exposes the quota engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Computations:
    POST   /api/computations                  Compute accounts for a case
    POST   /api/computations/legacy           Replay a stored historical input
    GET    /api/computations/{id}             Get one computation
    GET    /api/cases/{caseID}/computations   Computation history, newest first
    GET    /api/cases/{caseID}/computations/latest

  Minimum rights:
    POST   /api/minimum-rights                Floor accounts for a case

  Day counters:
    GET    /api/days/premature                Premature-birth bonus
    GET    /api/days/multiple-birth           Multiple-birth extension
    GET    /api/days/father-around-birth      Days around the birth
    GET    /api/days/close-cases              Closely-spaced-case floor
    GET    /api/days/father-only-floor        Father-only floor

  Health:
    GET    /api/healthz

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (engine, day counter, store)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 422: Facts the rule pipeline rejects
  - 500: Internal errors, configuration gaps

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/quota-engine/legacy"
	"github.com/warp/quota-engine/quota"
	"github.com/warp/quota-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Engine  *quota.Engine
	Counter *quota.DayCounter
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	engine := quota.NewEngine()
	return &Handler{
		Store:   store,
		Engine:  engine,
		Counter: quota.NewDayCounter(engine),
	}
}

// =============================================================================
// COMPUTATION HANDLERS
// =============================================================================

// Compute handles POST /api/computations.
func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.CaseID == "" {
		writeError(w, http.StatusBadRequest, "case_id is required", nil)
		return
	}

	facts, err := h.factsFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid case facts", err)
		return
	}

	// Reconcile against the latest stored computation, if any.
	prior, err := h.Store.LatestByCase(r.Context(), req.CaseID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load prior computation", err)
		return
	}
	if prior != nil {
		rebuilt, err := quota.NewFactsBuilderFrom(facts).PriorAccounts(prior.Accounts).Build()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to attach prior computation", err)
			return
		}
		facts = rebuilt
	}

	h.computeAndStore(w, r, req.CaseID, facts, rawFacts(req))
}

// ComputeLegacy handles POST /api/computations/legacy.
func (h *Handler) ComputeLegacy(w http.ResponseWriter, r *http.Request) {
	var req LegacyComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.CaseID == "" {
		writeError(w, http.StatusBadRequest, "case_id is required", nil)
		return
	}

	facts, err := legacy.Decode(req.Snapshot)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid legacy snapshot", err)
		return
	}

	h.computeAndStore(w, r, req.CaseID, facts, req.Snapshot)
}

func (h *Handler) computeAndStore(w http.ResponseWriter, r *http.Request, caseID string, facts quota.CaseFacts, rawInput json.RawMessage) {
	result, err := h.Engine.ComputeAccounts(facts)
	if err != nil {
		if quota.IsInputError(err) {
			writeError(w, http.StatusUnprocessableEntity, "Facts rejected", err)
		} else {
			writeError(w, http.StatusInternalServerError, "Computation failed", err)
		}
		return
	}

	rec := sqlite.ComputationRecord{
		ID:                     fmt.Sprintf("comp-%d", time.Now().UnixNano()),
		CaseID:                 caseID,
		CreatedAt:              time.Now().UTC(),
		Facts:                  rawInput,
		Accounts:               result.Accounts,
		KeepOriginal:           result.KeepOriginal,
		BeforeMerge:            result.BeforeMerge,
		ExtraMultipleBirthDays: result.ExtraMultipleBirthDays,
		ExtraPrematureDays:     result.ExtraPrematureDays,
		Version:                result.Version,
		Audit:                  result.Audit,
	}
	if err := h.Store.SaveComputation(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store computation", err)
		return
	}

	writeJSON(w, http.StatusCreated, computationDTO(rec))
}

// GetComputation handles GET /api/computations/{id}.
func (h *Handler) GetComputation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.Store.GetComputation(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get computation", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Computation not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, computationDTO(*rec))
}

// ListComputations handles GET /api/cases/{caseID}/computations.
func (h *Handler) ListComputations(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "caseID")
	recs, err := h.Store.ListByCase(r.Context(), caseID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list computations", err)
		return
	}

	dtos := make([]ComputationDTO, 0, len(recs))
	for _, rec := range recs {
		dtos = append(dtos, computationDTO(rec))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// LatestComputation handles GET /api/cases/{caseID}/computations/latest.
func (h *Handler) LatestComputation(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "caseID")
	rec, err := h.Store.LatestByCase(r.Context(), caseID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get computation", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Case has no computations", nil)
		return
	}
	writeJSON(w, http.StatusOK, computationDTO(*rec))
}

// MinimumRights handles POST /api/minimum-rights.
func (h *Handler) MinimumRights(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	facts, err := h.factsFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid case facts", err)
		return
	}

	accounts, err := h.Engine.MinimumRights(facts)
	if err != nil {
		if quota.IsInputError(err) {
			writeError(w, http.StatusUnprocessableEntity, "Facts rejected", err)
		} else {
			writeError(w, http.StatusInternalServerError, "Computation failed", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, MinimumRightsDTO{
		CaseID:   req.CaseID,
		Accounts: accountDTOs(accounts),
	})
}

// =============================================================================
// DAY COUNTER HANDLERS
// =============================================================================

// PrematureDays handles GET /api/days/premature?birth_date=&due_date=.
func (h *Handler) PrematureDays(w http.ResponseWriter, r *http.Request) {
	birth, err := queryDate(r, "birth_date")
	if err != nil || birth == nil {
		writeError(w, http.StatusBadRequest, "birth_date is required (YYYY-MM-DD)", err)
		return
	}
	due, err := queryDate(r, "due_date")
	if err != nil || due == nil {
		writeError(w, http.StatusBadRequest, "due_date is required (YYYY-MM-DD)", err)
		return
	}

	days, err := h.Counter.PrematureExtraDays(*birth, *due)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count days", err)
		return
	}
	writeJSON(w, http.StatusOK, DayCountDTO{Days: days, Weeks: weeksOf(days)})
}

// MultipleBirthDays handles GET /api/days/multiple-birth?children=&coverage_percent=&date=.
func (h *Handler) MultipleBirthDays(w http.ResponseWriter, r *http.Request) {
	children, err := strconv.Atoi(r.URL.Query().Get("children"))
	if err != nil || children < 1 {
		writeError(w, http.StatusBadRequest, "children must be a positive integer", err)
		return
	}
	coverage, err := queryCoverage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "coverage_percent must be 100 or 80", err)
		return
	}
	at, err := requiredQueryDate(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "date is required (YYYY-MM-DD)", err)
		return
	}

	days, err := h.Counter.MultipleBirthExtraDays(children, coverage, at)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count days", err)
		return
	}
	writeJSON(w, http.StatusOK, DayCountDTO{Days: days, Weeks: weeksOf(days)})
}

// FatherAroundBirthDays handles GET /api/days/father-around-birth?date=.
func (h *Handler) FatherAroundBirthDays(w http.ResponseWriter, r *http.Request) {
	at, err := requiredQueryDate(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "date is required (YYYY-MM-DD)", err)
		return
	}

	days, err := h.Counter.FatherAroundBirthDays(at)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count days", err)
		return
	}
	writeJSON(w, http.StatusOK, DayCountDTO{Days: days, Weeks: weeksOf(days)})
}

// CloseCasesDays handles GET /api/days/close-cases?role=&birth=&date=.
func (h *Handler) CloseCasesDays(w http.ResponseWriter, r *http.Request) {
	role, err := parseRole(r.URL.Query().Get("role"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "role must be mother, father or co_mother", err)
		return
	}
	birth := r.URL.Query().Get("birth") == "true"
	at, err := requiredQueryDate(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "date is required (YYYY-MM-DD)", err)
		return
	}

	days, err := h.Counter.CloseCasesMinimumDays(role, birth, at)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count days", err)
		return
	}
	writeJSON(w, http.StatusOK, DayCountDTO{Days: days, Weeks: weeksOf(days)})
}

// FatherOnlyFloorDays handles GET /api/days/father-only-floor?children=&mother_disabled=&coverage_percent=&date=.
func (h *Handler) FatherOnlyFloorDays(w http.ResponseWriter, r *http.Request) {
	children := 1
	if raw := r.URL.Query().Get("children"); raw != "" {
		var err error
		children, err = strconv.Atoi(raw)
		if err != nil || children < 1 {
			writeError(w, http.StatusBadRequest, "children must be a positive integer", err)
			return
		}
	}
	disabled := r.URL.Query().Get("mother_disabled") == "true"
	coverage, err := queryCoverage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "coverage_percent must be 100 or 80", err)
		return
	}
	at, err := requiredQueryDate(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "date is required (YYYY-MM-DD)", err)
		return
	}

	days, err := h.Counter.FatherOnlyFloorDays(children, disabled, coverage, at)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count days", err)
		return
	}
	writeJSON(w, http.StatusOK, DayCountDTO{Days: days, Weeks: weeksOf(days)})
}

// Healthz handles GET /api/healthz.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": quota.Version,
	})
}

// =============================================================================
// REQUEST PARSING
// =============================================================================

func (h *Handler) factsFromRequest(req ComputeRequest) (quota.CaseFacts, error) {
	coverage, err := quota.CoverageFromPercent(req.CoveragePercent)
	if err != nil {
		return quota.CaseFacts{}, err
	}
	rights, err := parseRights(req.Rights)
	if err != nil {
		return quota.CaseFacts{}, err
	}
	role, err := parseRole(req.Role)
	if err != nil {
		return quota.CaseFacts{}, err
	}

	b := quota.NewFactsBuilder().
		Coverage(coverage).
		Rights(rights).
		Role(role).
		MotherDisabled(req.MotherDisabled)
	if req.Children > 0 {
		b.Children(req.Children)
	}

	dates := []struct {
		value string
		apply func(time.Time) *quota.FactsBuilder
	}{
		{req.BirthDate, b.BirthDate},
		{req.DueDate, b.DueDate},
		{req.AdoptionDate, b.AdoptionDate},
		{req.NextCaseEvent, b.NextCaseEvent},
		{req.RuleChoiceDate, b.RuleChoiceDate},
	}
	for _, d := range dates {
		if d.value == "" {
			continue
		}
		parsed, err := time.Parse("2006-01-02", d.value)
		if err != nil {
			return quota.CaseFacts{}, fmt.Errorf("invalid date %q: %w", d.value, err)
		}
		d.apply(parsed)
	}

	return b.Build()
}

func parseRights(s string) (quota.Rights, error) {
	switch quota.Rights(s) {
	case quota.RightsBoth, quota.RightsSoleApplicant, quota.RightsAloneCare:
		return quota.Rights(s), nil
	}
	return "", fmt.Errorf("unknown rights %q", s)
}

func parseRole(s string) (quota.Role, error) {
	switch quota.Role(s) {
	case quota.RoleMother, quota.RoleFather, quota.RoleCoMother:
		return quota.Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func queryCoverage(r *http.Request) (quota.Coverage, error) {
	percent, err := strconv.Atoi(r.URL.Query().Get("coverage_percent"))
	if err != nil {
		return quota.CoverageNone, err
	}
	return quota.CoverageFromPercent(percent)
}

func queryDate(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func requiredQueryDate(r *http.Request, key string) (time.Time, error) {
	d, err := queryDate(r, key)
	if err != nil {
		return time.Time{}, err
	}
	if d == nil {
		return time.Time{}, fmt.Errorf("missing query parameter %q", key)
	}
	return *d, nil
}

// rawFacts re-encodes the request body for storage alongside the result.
func rawFacts(req ComputeRequest) json.RawMessage {
	data, err := json.Marshal(req)
	if err != nil {
		return json.RawMessage("{}")
	}
	return data
}

func computationDTO(rec sqlite.ComputationRecord) ComputationDTO {
	total := totalDays(rec.Accounts)
	dto := ComputationDTO{
		ID:                     rec.ID,
		CaseID:                 rec.CaseID,
		Accounts:               accountDTOs(rec.Accounts),
		KeepOriginal:           accountDTOs(rec.KeepOriginal),
		BeforeMerge:            accountDTOs(rec.BeforeMerge),
		TotalDays:              total,
		TotalWeeks:             weeksOf(total),
		ExtraMultipleBirthDays: rec.ExtraMultipleBirthDays,
		ExtraPrematureDays:     rec.ExtraPrematureDays,
		Version:                rec.Version,
		Audit:                  rec.Audit,
	}
	if !rec.CreatedAt.IsZero() {
		dto.CreatedAt = rec.CreatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
