/*
handlers.go - HTTP API handlers for the time-tracking platform

PURPOSE:
  Exposes the platform via REST. Handles HTTP request/response, JSON
  serialization and validation, and delegates to the domain logic.

ENDPOINTS:
  Platform:
    GET    /api/companies                                List companies
    POST   /api/companies                                Provision company
    GET    /api/companies/{companyID}                    Company details
    PATCH  /api/companies/{companyID}                    Update company
    DELETE /api/companies/{companyID}                    Soft-delete company

  Tenant admin (under /api/companies/{companyID}):
    GET/POST          /employees, /projects, /workplaces
    GET/PATCH/DELETE  /employees/{id}; PATCH/DELETE /projects/{id}, /workplaces/{id}
    GET/PUT           /working-hours
    GET               /time-entries
    PATCH             /time-entries/{id}/approve
    GET               /time-entries/{id}/audit-log
    POST              /reports/generate

  Employee (under /api/companies/{companyID}/employees/{employeeID}):
    GET/POST          /time-entries
    PATCH/DELETE      /time-entries/{entryID}
    GET               /calendar/{year}/{month}

REQUEST FLOW:
  1. Decode JSON body
  2. Validate with go-playground/validator
  3. Call domain logic (engine, sequence allocator, store)
  4. Serialize response envelope

ERROR HANDLING:
  Typed engine errors map to HTTP statuses:
  - 400: invalid interval, validation errors
  - 403: approved-entry mutation
  - 404: missing records
  - 409: overlap conflicts, allocation contention
  - 500: everything else

SECURITY NOTE:
  Authentication and authorization are intentionally absent; tenancy is
  carried explicitly in the path. Passwords are still bcrypt-hashed at rest.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/warp/timeclock/engine"
	"github.com/warp/timeclock/sequence"
	"github.com/warp/timeclock/store/sqlite"
	"github.com/warp/timeclock/timeentry"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Entries  *timeentry.Service
	Codes    *sequence.Allocator
	Log      zerolog.Logger
	validate *validator.Validate
}

// NewHandler creates a new handler wired to the given store.
func NewHandler(store *sqlite.Store, log zerolog.Logger) *Handler {
	return &Handler{
		Store:    store,
		Entries:  timeentry.NewService(store),
		Codes:    sequence.NewAllocator(store),
		Log:      log,
		validate: validator.New(),
	}
}

// decodeAndValidate decodes the body into dst and runs struct validation.
// It writes the error response itself and reports whether to continue.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

// writeDomainError maps typed engine errors onto HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidInterval):
		writeError(w, http.StatusBadRequest, message, err)
	case errors.Is(err, engine.ErrApprovedImmutable):
		writeError(w, http.StatusForbidden, message, err)
	case errors.Is(err, engine.ErrNotFound):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, engine.ErrOverlap), errors.Is(err, engine.ErrAllocationContention):
		writeError(w, http.StatusConflict, message, err)
	default:
		h.Log.Error().Err(err).Msg(message)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func parsePage(r *http.Request) sqlite.Page {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return sqlite.Page{Page: page, Limit: limit, Search: q.Get("search")}
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(hash), err
}

// =============================================================================
// COMPANY HANDLERS
// =============================================================================

// ListCompanies returns a page of companies.
// GET /api/companies
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)
	companies, total, err := h.Store.ListCompanies(r.Context(), p)
	if err != nil {
		h.writeDomainError(w, "Failed to list companies", err)
		return
	}

	dtos := make([]CompanyDTO, len(companies))
	for i, c := range companies {
		dtos[i] = toCompanyDTO(c)
	}
	writePage(w, dtos, newPagination(p.Page, p.Limit, total))
}

// CreateCompany provisions a tenant: COM code, first admin, default
// boundary configuration.
// POST /api/companies
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req CreateCompanyRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	ctx := r.Context()

	code, err := h.Codes.NextCompanyCode(ctx)
	if err != nil {
		h.writeDomainError(w, "Failed to allocate company code", err)
		return
	}

	company := sqlite.Company{
		ID:      uuid.NewString(),
		Code:    code,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := h.Store.SaveCompany(ctx, company); err != nil {
		h.writeDomainError(w, "Failed to create company", err)
		return
	}

	passwordHash, err := hashPassword(req.Admin.Password)
	if err != nil {
		h.writeDomainError(w, "Failed to hash password", err)
		return
	}
	admin := sqlite.Admin{
		ID:           uuid.NewString(),
		CompanyID:    company.ID,
		Name:         req.Admin.Name,
		Email:        req.Admin.Email,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
	if err := h.Store.SaveAdmin(ctx, admin); err != nil {
		h.writeDomainError(w, "Failed to create admin", err)
		return
	}

	if err := h.Store.SaveBoundaryConfig(ctx, company.ID, engine.DefaultBoundaries()); err != nil {
		h.writeDomainError(w, "Failed to seed working hours", err)
		return
	}

	writeSuccess(w, http.StatusCreated, toCompanyDTO(company), "Company created successfully")
}

// GetCompany returns one company.
// GET /api/companies/{companyID}
func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	c, err := h.Store.GetCompany(r.Context(), chi.URLParam(r, "companyID"))
	if err != nil {
		h.writeDomainError(w, "Failed to get company", err)
		return
	}
	writeSuccess(w, http.StatusOK, toCompanyDTO(*c), "")
}

// UpdateCompany updates company details.
// PATCH /api/companies/{companyID}
func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	var req UpdateCompanyRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.Store.UpdateCompany(r.Context(), sqlite.Company{
		ID:      chi.URLParam(r, "companyID"),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		h.writeDomainError(w, "Failed to update company", err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "Company updated successfully")
}

// DeleteCompany soft-deletes a company.
// DELETE /api/companies/{companyID}
func (h *Handler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteCompany(r.Context(), chi.URLParam(r, "companyID")); err != nil {
		h.writeDomainError(w, "Failed to delete company", err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "Company deleted successfully")
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns a page of a company's employees.
// GET /api/companies/{companyID}/employees
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)
	employees, total, err := h.Store.ListEmployees(r.Context(), chi.URLParam(r, "companyID"), p)
	if err != nil {
		h.writeDomainError(w, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writePage(w, dtos, newPagination(p.Page, p.Limit, total))
}

// CreateEmployee creates an employee with an allocated EMP code.
// POST /api/companies/{companyID}/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	ctx := r.Context()
	companyID := chi.URLParam(r, "companyID")

	code, err := h.Codes.NextEmployeeCode(ctx, companyID)
	if err != nil {
		h.writeDomainError(w, "Failed to allocate employee code", err)
		return
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		h.writeDomainError(w, "Failed to hash password", err)
		return
	}

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hire_date", err)
		return
	}
	emp := sqlite.Employee{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		Code:         code,
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		HireDate:     hireDate,
		IsActive:     true,
	}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		h.writeDomainError(w, "Failed to create employee", err)
		return
	}
	writeSuccess(w, http.StatusCreated, toEmployeeDTO(emp), "Employee created successfully")
}

// GetEmployee returns one employee.
// GET /api/companies/{companyID}/employees/{employeeID}
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := h.Store.GetEmployee(r.Context(),
		chi.URLParam(r, "companyID"), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.writeDomainError(w, "Failed to get employee", err)
		return
	}
	writeSuccess(w, http.StatusOK, toEmployeeDTO(*e), "")
}

// UpdateEmployee updates an employee's details.
// PATCH /api/companies/{companyID}/employees/{employeeID}
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req UpdateEmployeeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	ctx := r.Context()
	companyID := chi.URLParam(r, "companyID")
	employeeID := chi.URLParam(r, "employeeID")

	existing, err := h.Store.GetEmployee(ctx, companyID, employeeID)
	if err != nil {
		h.writeDomainError(w, "Failed to get employee", err)
		return
	}

	existing.Email = req.Email
	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.Phone = req.Phone
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if req.Password != "" {
		hash, err := hashPassword(req.Password)
		if err != nil {
			h.writeDomainError(w, "Failed to hash password", err)
			return
		}
		existing.PasswordHash = hash
	}

	if err := h.Store.UpdateEmployee(ctx, *existing); err != nil {
		h.writeDomainError(w, "Failed to update employee", err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "Employee updated successfully")
}

// DeleteEmployee soft-deletes an employee.
// DELETE /api/companies/{companyID}/employees/{employeeID}
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteEmployee(r.Context(),
		chi.URLParam(r, "companyID"), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.writeDomainError(w, "Failed to delete employee", err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "Employee deleted successfully")
}

// =============================================================================
// PROJECT HANDLERS
// =============================================================================

// ListProjects returns a page of a company's projects.
// GET /api/companies/{companyID}/projects
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)
	activeOnly := r.URL.Query().Get("active") == "true"
	projects, total, err := h.Store.ListProjects(r.Context(), chi.URLParam(r, "companyID"), p, activeOnly)
	if err != nil {
		h.writeDomainError(w, "Failed to list projects", err)
		return
	}

	dtos := make([]ProjectDTO, len(projects))
	for i, pr := range projects {
		dtos[i] = toProjectDTO(pr)
	}
	writePage(w, dtos, newPagination(p.Page, p.Limit, total))
}

// CreateProject creates a project with an allocated PRO code.
// POST /api/companies/{companyID}/projects
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	ctx := r.Context()
	companyID := chi.URLParam(r, "companyID")

	code, err := h.Codes.NextProjectCode(ctx, companyID)
	if err != nil {
		h.writeDomainError(w, "Failed to allocate project code", err)
		return
	}

	pr := sqlite.Project{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		Code:        code,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := h.Store.SaveProject(ctx, pr); err != nil {
		h.writeDomainError(w, "Failed to create project", err)
		return
	}
	writeSuccess(w, http.StatusCreated, toProjectDTO(pr), "Project created successfully")
}

// UpdateProject updates a project.
// PATCH /api/companies/{companyID}/projects/{projectID}
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req UpdateProjectRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	ctx := r.Context()
	companyID := chi.URLParam(r, "companyID")
	projectID := chi.URLParam(r, "projectID")

	existing, err := h.Store.GetProject(ctx, companyID, projectID)
	if err != nil {
		h.writeDomainError(w, "Failed to get project", err)
		return
	}
	existing.Name = req.Name
	existing.Description = req.Description
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := h.Store.UpdateProject(ctx, *existing); err != nil {
		h.writeDomainError(w, "Failed to update project", err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "Project updated successfully")
}

// DeleteProject soft-deletes a project.
// DELETE /api/companies/{companyID}/projects/{projectID}
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteProject(r.Context(),
		chi.URLParam(r, "companyID"), chi.URLParam(r, "projectID"))
	if err != nil {
		h.writeDomainError(w, "Failed to delete project", err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "Project deleted successfully")
}

// =============================================================================
// WORKPLACE HANDLERS
// =============================================================================

// ListWorkplaces returns a page of a company's workplaces.
// GET /api/companies/{companyID}/workplaces
func (h *Handler) ListWorkplaces(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)
	activeOnly := r.URL.Query().Get("active") == "true"
	workplaces, total, err := h.Store.ListWorkplaces(r.Context(), chi.URLParam(r, "companyID"), p, activeOnly)
	if err != nil {
		h.writeDomainError(w, "Failed to list workplaces", err)
		return
	}

	dtos := make([]WorkplaceDTO, len(workplaces))
	for i, wp := range workplaces {
		dtos[i] = toWorkplaceDTO(wp)
	}
	writePage(w, dtos, newPagination(p.Page, p.Limit, total))
}

// CreateWorkplace creates a workplace with an allocated LOC code.
// POST /api/companies/{companyID}/workplaces
func (h *Handler) CreateWorkplace(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkplaceRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	ctx := r.Context()
	companyID := chi.URLParam(r, "companyID")

	code, err := h.Codes.NextWorkplaceCode(ctx, companyID)
	if err != nil {
		h.writeDomainError(w, "Failed to allocate workplace code", err)
		return
	}

	wp := sqlite.Workplace{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Code:      code,
		Name:      req.Name,
		Location:  req.Location,
		IsActive:  true,
	}
	if err := h.Store.SaveWorkplace(ctx, wp); err != nil {
		h.writeDomainError(w, "Failed to create workplace", err)
		return
	}
	writeSuccess(w, http.StatusCreated, toWorkplaceDTO(wp), "Workplace created successfully")
}

// UpdateWorkplace updates a workplace.
// PATCH /api/companies/{companyID}/workplaces/{workplaceID}
func (h *Handler) UpdateWorkplace(w http.ResponseWriter, r *http.Request) {
	var req UpdateWorkplaceRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	ctx := r.Context()
	companyID := chi.URLParam(r, "companyID")
	workplaceID := chi.URLParam(r, "workplaceID")

	existing, err := h.Store.GetWorkplace(ctx, companyID, workplaceID)
	if err != nil {
		h.writeDomainError(w, "Failed to get workplace", err)
		return
	}
	existing.Name = req.Name
	existing.Location = req.Location
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := h.Store.UpdateWorkplace(ctx, *existing); err != nil {
		h.writeDomainError(w, "Failed to update workplace", err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "Workplace updated successfully")
}

// DeleteWorkplace soft-deletes a workplace.
// DELETE /api/companies/{companyID}/workplaces/{workplaceID}
func (h *Handler) DeleteWorkplace(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteWorkplace(r.Context(),
		chi.URLParam(r, "companyID"), chi.URLParam(r, "workplaceID"))
	if err != nil {
		h.writeDomainError(w, "Failed to delete workplace", err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "Workplace deleted successfully")
}

// =============================================================================
// WORKING HOURS HANDLERS
// =============================================================================

// GetWorkingHours returns a company's boundary configuration, falling back
// to the documented defaults when none is stored.
// GET /api/companies/{companyID}/working-hours
func (h *Handler) GetWorkingHours(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Store.BoundaryConfig(r.Context(), chi.URLParam(r, "companyID"))
	if err != nil {
		h.writeDomainError(w, "Failed to load working hours", err)
		return
	}
	writeSuccess(w, http.StatusOK, WorkingHoursDTO{
		DayStart:     engine.FormatClockTime(cfg.DayStart),
		DayEnd:       engine.FormatClockTime(cfg.DayEnd),
		EveningStart: engine.FormatClockTime(cfg.EveningStart),
		EveningEnd:   engine.FormatClockTime(cfg.EveningEnd),
		NightStart:   engine.FormatClockTime(cfg.NightStart),
		NightEnd:     engine.FormatClockTime(cfg.NightEnd),
	}, "")
}

// UpdateWorkingHours upserts a company's boundary configuration.
// PUT /api/companies/{companyID}/working-hours
func (h *Handler) UpdateWorkingHours(w http.ResponseWriter, r *http.Request) {
	var req WorkingHoursDTO
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	cfg := engine.BoundaryConfig{}
	for _, m := range []struct {
		value string
		dst   *int
	}{
		{req.DayStart, &cfg.DayStart},
		{req.DayEnd, &cfg.DayEnd},
		{req.EveningStart, &cfg.EveningStart},
		{req.EveningEnd, &cfg.EveningEnd},
		{req.NightStart, &cfg.NightStart},
		{req.NightEnd, &cfg.NightEnd},
	} {
		minutes, err := engine.ParseClockTime(m.value)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid boundary time", err)
			return
		}
		*m.dst = minutes
	}

	if err := h.Store.SaveBoundaryConfig(r.Context(), chi.URLParam(r, "companyID"), cfg); err != nil {
		h.writeDomainError(w, "Failed to save working hours", err)
		return
	}
	writeSuccess(w, http.StatusOK, req, "Working hours updated successfully")
}

// =============================================================================
// TIME ENTRY HANDLERS - employee surface
// =============================================================================

// ListEmployeeTimeEntries returns an employee's entries, optionally
// filtered by date range, project and workplace.
// GET /api/companies/{companyID}/employees/{employeeID}/time-entries
func (h *Handler) ListEmployeeTimeEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := sqlite.TimeEntryFilter{
		CompanyID:   chi.URLParam(r, "companyID"),
		EmployeeID:  chi.URLParam(r, "employeeID"),
		ProjectID:   q.Get("project_id"),
		WorkplaceID: q.Get("workplace_id"),
		FromDate:    q.Get("start_date"),
		ToDate:      q.Get("end_date"),
		Page:        parsePage(r),
	}

	entries, total, err := h.Store.ListTimeEntries(r.Context(), f)
	if err != nil {
		h.writeDomainError(w, "Failed to list time entries", err)
		return
	}

	dtos := make([]TimeEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toTimeEntryDTO(e)
	}
	writePage(w, dtos, newPagination(f.Page.Page, f.Page.Limit, total))
}

// CreateTimeEntry records a clock-in/clock-out interval: overlap gate,
// midnight split, one persisted row per calendar day.
// POST /api/companies/{companyID}/employees/{employeeID}/time-entries
func (h *Handler) CreateTimeEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateTimeEntryRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	timeIn, err := time.Parse(time.RFC3339Nano, req.TimeIn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid time_in", err)
		return
	}
	timeOut, err := time.Parse(time.RFC3339Nano, req.TimeOut)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid time_out", err)
		return
	}

	entries, err := h.Entries.Create(r.Context(), timeentry.CreateInput{
		CompanyID:   chi.URLParam(r, "companyID"),
		EmployeeID:  chi.URLParam(r, "employeeID"),
		ProjectID:   req.ProjectID,
		WorkplaceID: req.WorkplaceID,
		TimeIn:      timeIn,
		TimeOut:     timeOut,
		Notes:       req.Notes,
		IsFullDay:   req.IsFullDay,
	})
	if err != nil {
		h.writeDomainError(w, "Failed to create time entry", err)
		return
	}

	dtos := make([]TimeEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toTimeEntryDTO(e)
	}

	message := "Time entry created successfully"
	if len(entries) > 1 {
		message = "Time entry split into " + strconv.Itoa(len(entries)) + " entries across days"
	}
	writeSuccess(w, http.StatusCreated, dtos, message)
}

// UpdateTimeEntry changes the editable fields of an unapproved entry.
// PATCH /api/companies/{companyID}/employees/{employeeID}/time-entries/{entryID}
func (h *Handler) UpdateTimeEntry(w http.ResponseWriter, r *http.Request) {
	var req UpdateTimeEntryRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.Entries.UpdateDetails(r.Context(),
		chi.URLParam(r, "employeeID"), chi.URLParam(r, "entryID"),
		req.ProjectID, req.WorkplaceID, req.Notes)
	if err != nil {
		h.writeDomainError(w, "Failed to update time entry", err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "Time entry updated successfully")
}

// DeleteTimeEntry soft-deletes an unapproved entry.
// DELETE /api/companies/{companyID}/employees/{employeeID}/time-entries/{entryID}
func (h *Handler) DeleteTimeEntry(w http.ResponseWriter, r *http.Request) {
	err := h.Entries.Delete(r.Context(),
		chi.URLParam(r, "employeeID"), chi.URLParam(r, "entryID"))
	if err != nil {
		h.writeDomainError(w, "Failed to delete time entry", err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "Time entry deleted successfully")
}

// GetCalendar groups one month of an employee's entries per day.
// GET /api/companies/{companyID}/employees/{employeeID}/calendar/{year}/{month}
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	entries, _, err := h.Store.ListTimeEntries(r.Context(), sqlite.TimeEntryFilter{
		CompanyID:  chi.URLParam(r, "companyID"),
		EmployeeID: chi.URLParam(r, "employeeID"),
		FromDate:   first.Format("2006-01-02"),
		ToDate:     last.Format("2006-01-02"),
		Page:       sqlite.Page{Limit: 1000},
	})
	if err != nil {
		h.writeDomainError(w, "Failed to load calendar", err)
		return
	}

	byDate := make(map[string]*CalendarDayDTO)
	for _, e := range entries {
		day, ok := byDate[e.EntryDate]
		if !ok {
			day = &CalendarDayDTO{Date: e.EntryDate}
			byDate[e.EntryDate] = day
		}
		day.TotalHours = day.TotalHours.Add(e.TotalHours)
		day.EntryCount++
		day.Entries = append(day.Entries, CalendarItemDTO{
			ID:         e.ID,
			TimeIn:     e.TimeIn.Format(time.RFC3339Nano),
			TimeOut:    e.TimeOut.Format(time.RFC3339Nano),
			Hours:      e.TotalHours,
			IsApproved: e.IsApproved,
		})
	}

	days := make([]CalendarDayDTO, 0, len(byDate))
	for _, d := range byDate {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	writeSuccess(w, http.StatusOK, map[string]any{"days": days}, "")
}

// =============================================================================
// TIME ENTRY HANDLERS - admin surface
// =============================================================================

// ListCompanyTimeEntries returns a page of a company's entries, optionally
// narrowed to pending or approved rows via ?approved=true|false.
// GET /api/companies/{companyID}/time-entries
func (h *Handler) ListCompanyTimeEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := parsePage(r)

	var approved *bool
	if v := q.Get("approved"); v != "" {
		b := v == "true"
		approved = &b
	}

	entries, total, err := h.Store.ListTimeEntries(r.Context(), sqlite.TimeEntryFilter{
		CompanyID:  chi.URLParam(r, "companyID"),
		EmployeeID: q.Get("employee_id"),
		FromDate:   q.Get("start_date"),
		ToDate:     q.Get("end_date"),
		Approved:   approved,
		Page:       p,
	})
	if err != nil {
		h.writeDomainError(w, "Failed to list time entries", err)
		return
	}

	dtos := make([]TimeEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toTimeEntryDTO(e)
	}
	writePage(w, dtos, newPagination(p.Page, p.Limit, total))
}

// ApproveTimeEntry records an approval decision.
// PATCH /api/companies/{companyID}/time-entries/{entryID}/approve
func (h *Handler) ApproveTimeEntry(w http.ResponseWriter, r *http.Request) {
	var req ApproveTimeEntryRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.Entries.Approve(r.Context(),
		chi.URLParam(r, "companyID"), chi.URLParam(r, "entryID"),
		req.Approve, req.ActorID)
	if err != nil {
		h.writeDomainError(w, "Failed to record approval", err)
		return
	}

	message := "Time entry approved successfully"
	if !req.Approve {
		message = "Time entry rejected successfully"
	}
	writeSuccess(w, http.StatusOK, nil, message)
}

// GetAuditLog returns a time entry's audit trail.
// GET /api/companies/{companyID}/time-entries/{entryID}/audit-log
func (h *Handler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.AuditTrail(r.Context(), chi.URLParam(r, "entryID"))
	if err != nil {
		h.writeDomainError(w, "Failed to load audit log", err)
		return
	}

	dtos := make([]AuditRecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = toAuditDTO(rec)
	}
	writeSuccess(w, http.StatusOK, dtos, "")
}

// GenerateReport sums hour buckets grouped by employee or project, or
// returns the raw rows for a detailed report.
// POST /api/companies/{companyID}/reports/generate
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req GenerateReportRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	ctx := r.Context()
	companyID := chi.URLParam(r, "companyID")

	if req.ReportType == "detailed" {
		entries, _, err := h.Store.ListTimeEntries(ctx, sqlite.TimeEntryFilter{
			CompanyID: companyID,
			FromDate:  req.StartDate,
			ToDate:    req.EndDate,
			Page:      sqlite.Page{Limit: 10000},
		})
		if err != nil {
			h.writeDomainError(w, "Failed to generate report", err)
			return
		}
		dtos := make([]TimeEntryDTO, len(entries))
		for i, e := range entries {
			dtos[i] = toTimeEntryDTO(e)
		}
		writeSuccess(w, http.StatusOK, map[string]any{"report_type": req.ReportType, "rows": dtos}, "")
		return
	}

	summaries, err := h.Store.SummarizeHours(ctx, sqlite.SummaryFilter{
		CompanyID:    companyID,
		GroupBy:      req.ReportType,
		FromDate:     req.StartDate,
		ToDate:       req.EndDate,
		EmployeeIDs:  req.EmployeeIDs,
		ProjectIDs:   req.ProjectIDs,
		WorkplaceIDs: req.WorkplaceIDs,
	})
	if err != nil {
		h.writeDomainError(w, "Failed to generate report", err)
		return
	}

	dtos := make([]HourSummaryDTO, len(summaries))
	for i, s := range summaries {
		dtos[i] = HourSummaryDTO{
			GroupID:      s.GroupID,
			TotalHours:   s.TotalHours,
			DayHours:     s.DayHours,
			EveningHours: s.EveningHours,
			NightHours:   s.NightHours,
		}
	}
	writeSuccess(w, http.StatusOK, map[string]any{"report_type": req.ReportType, "groups": dtos}, "")
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeSuccess(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, Response{Success: true, Data: data, Message: message})
}

func writePage(w http.ResponseWriter, data any, p *PaginationDTO) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data, Pagination: p})
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := Response{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
