/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

ENVELOPE:
  Every response is wrapped as {success, data, message, pagination?} for
  success and {success: false, error, details?} for failure.

VALIDATION:
  Request types carry go-playground/validator tags; handlers run the shared
  validator before touching domain logic.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/timeclock/store/sqlite"
)

// =============================================================================
// ENVELOPE
// =============================================================================

// Response is the uniform JSON envelope.
type Response struct {
	Success    bool           `json:"success"`
	Data       any            `json:"data,omitempty"`
	Message    string         `json:"message,omitempty"`
	Pagination *PaginationDTO `json:"pagination,omitempty"`
	Error      string         `json:"error,omitempty"`
	Details    string         `json:"details,omitempty"`
}

// PaginationDTO echoes list paging back to the client.
type PaginationDTO struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// =============================================================================
// COMPANIES
// =============================================================================

type CompanyDTO struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Admin   struct {
		Name     string `json:"name" validate:"required,min=2"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	} `json:"admin"`
}

type UpdateCompanyRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// =============================================================================
// EMPLOYEES
// =============================================================================

type EmployeeDTO struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	HireDate  string `json:"hire_date"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
}

type CreateEmployeeRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone"`
	HireDate  string `json:"hire_date" validate:"required,datetime=2006-01-02"`
}

type UpdateEmployeeRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone"`
	IsActive  *bool  `json:"is_active"`
	Password  string `json:"password" validate:"omitempty,min=8"`
}

// =============================================================================
// PROJECTS AND WORKPLACES
// =============================================================================

type ProjectDTO struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type WorkplaceDTO struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Location  string `json:"location,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
}

type CreateWorkplaceRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Location string `json:"location"`
}

type UpdateWorkplaceRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Location string `json:"location"`
	IsActive *bool  `json:"is_active"`
}

// =============================================================================
// WORKING HOURS
// =============================================================================

// WorkingHoursDTO carries the six boundary markers as "HH:MM:SS" strings.
type WorkingHoursDTO struct {
	DayStart     string `json:"day_start" validate:"required,datetime=15:04:05"`
	DayEnd       string `json:"day_end" validate:"required,datetime=15:04:05"`
	EveningStart string `json:"evening_start" validate:"required,datetime=15:04:05"`
	EveningEnd   string `json:"evening_end" validate:"required,datetime=15:04:05"`
	NightStart   string `json:"night_start" validate:"required,datetime=15:04:05"`
	NightEnd     string `json:"night_end" validate:"required,datetime=15:04:05"`
}

// =============================================================================
// TIME ENTRIES
// =============================================================================

type TimeEntryDTO struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	ProjectID    string          `json:"project_id"`
	WorkplaceID  string          `json:"workplace_id"`
	EntryDate    string          `json:"entry_date"`
	TimeIn       string          `json:"time_in"`
	TimeOut      string          `json:"time_out"`
	TotalHours   decimal.Decimal `json:"total_hours"`
	DayHours     decimal.Decimal `json:"day_hours"`
	EveningHours decimal.Decimal `json:"evening_hours"`
	NightHours   decimal.Decimal `json:"night_hours"`
	Notes        string          `json:"notes,omitempty"`
	IsFullDay    bool            `json:"is_full_day"`
	IsApproved   *bool           `json:"is_approved"`
	CreatedAt    string          `json:"created_at,omitempty"`
}

type CreateTimeEntryRequest struct {
	ProjectID   string `json:"project_id" validate:"required,uuid4"`
	WorkplaceID string `json:"workplace_id" validate:"required,uuid4"`
	TimeIn      string `json:"time_in" validate:"required"`
	TimeOut     string `json:"time_out" validate:"required"`
	Notes       string `json:"notes"`
	IsFullDay   bool   `json:"is_full_day"`
}

type UpdateTimeEntryRequest struct {
	ProjectID   string `json:"project_id" validate:"required,uuid4"`
	WorkplaceID string `json:"workplace_id" validate:"required,uuid4"`
	Notes       string `json:"notes"`
}

type ApproveTimeEntryRequest struct {
	Approve bool   `json:"approve"`
	ActorID string `json:"actor_id" validate:"required"`
}

type AuditRecordDTO struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	ActorID   string         `json:"actor_id"`
	ActorType string         `json:"actor_type"`
	OldValues map[string]any `json:"old_values,omitempty"`
	NewValues map[string]any `json:"new_values,omitempty"`
	At        string         `json:"at"`
}

// =============================================================================
// REPORTS AND CALENDAR
// =============================================================================

type GenerateReportRequest struct {
	ReportType   string   `json:"report_type" validate:"required,oneof=employee project detailed"`
	StartDate    string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	EmployeeIDs  []string `json:"employee_ids"`
	ProjectIDs   []string `json:"project_ids"`
	WorkplaceIDs []string `json:"workplace_ids"`
}

type HourSummaryDTO struct {
	GroupID      string          `json:"group_id"`
	TotalHours   decimal.Decimal `json:"total_hours"`
	DayHours     decimal.Decimal `json:"day_hours"`
	EveningHours decimal.Decimal `json:"evening_hours"`
	NightHours   decimal.Decimal `json:"night_hours"`
}

type CalendarDayDTO struct {
	Date       string            `json:"date"`
	TotalHours decimal.Decimal   `json:"total_hours"`
	EntryCount int               `json:"entry_count"`
	Entries    []CalendarItemDTO `json:"entries"`
}

type CalendarItemDTO struct {
	ID         string          `json:"id"`
	TimeIn     string          `json:"time_in"`
	TimeOut    string          `json:"time_out"`
	Hours      decimal.Decimal `json:"hours"`
	IsApproved *bool           `json:"is_approved"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toCompanyDTO(c sqlite.Company) CompanyDTO {
	return CompanyDTO{
		ID: c.ID, Code: c.Code, Name: c.Name, Email: c.Email,
		Phone: c.Phone, Address: c.Address,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func toEmployeeDTO(e sqlite.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID: e.ID, Code: e.Code, Email: e.Email,
		FirstName: e.FirstName, LastName: e.LastName, Phone: e.Phone,
		HireDate: e.HireDate.Format("2006-01-02"), IsActive: e.IsActive,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

func toProjectDTO(p sqlite.Project) ProjectDTO {
	return ProjectDTO{
		ID: p.ID, Code: p.Code, Name: p.Name, Description: p.Description,
		IsActive: p.IsActive, CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

func toWorkplaceDTO(w sqlite.Workplace) WorkplaceDTO {
	return WorkplaceDTO{
		ID: w.ID, Code: w.Code, Name: w.Name, Location: w.Location,
		IsActive: w.IsActive, CreatedAt: w.CreatedAt.Format(time.RFC3339),
	}
}

func toTimeEntryDTO(e sqlite.TimeEntry) TimeEntryDTO {
	return TimeEntryDTO{
		ID: e.ID, EmployeeID: e.EmployeeID, ProjectID: e.ProjectID,
		WorkplaceID: e.WorkplaceID, EntryDate: e.EntryDate,
		TimeIn:  e.TimeIn.Format(time.RFC3339Nano),
		TimeOut: e.TimeOut.Format(time.RFC3339Nano),
		TotalHours: e.TotalHours, DayHours: e.DayHours,
		EveningHours: e.EveningHours, NightHours: e.NightHours,
		Notes: e.Notes, IsFullDay: e.IsFullDay, IsApproved: e.IsApproved,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

func toAuditDTO(r sqlite.AuditRecord) AuditRecordDTO {
	return AuditRecordDTO{
		ID: r.ID, Action: r.Action, ActorID: r.ActorID, ActorType: r.ActorType,
		OldValues: r.OldValues, NewValues: r.NewValues,
		At: r.At.Format(time.RFC3339),
	}
}

func newPagination(page, limit, total int) *PaginationDTO {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return &PaginationDTO{Page: page, Limit: limit, Total: total, Pages: pages}
}
