/*
Package sqlite provides the SQLite-backed persistence layer.

PURPOSE:
  Implements storage for every tenant-scoped record the platform keeps:
  companies, admins, employees, projects, workplaces, boundary
  configurations, classified time entries, sequence counters, and the
  time-entry audit log. In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  companies / admins:       Tenant provisioning
  employees:                Workforce records, bcrypt password hashes
  projects / workplaces:    Assignable work targets
  working_hour_configs:     One row of boundary markers per company
  time_entries:             One row per classified per-day segment
  entity_code_counters:     (company, kind) -> last issued sequence value
  time_entry_audit_log:     Append-only change trail

SOFT DELETES:
  Tenant-scoped rows carry deleted_at. Deletes set it; every read and
  update filters on deleted_at IS NULL. Nothing is ever hard-deleted.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. Counter increments additionally run
  inside a single SQL transaction under the write lock, so the
  read-increment-write is indivisible per scope key. With PostgreSQL,
  SELECT ... FOR UPDATE replaces the mutex.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block, single writer at a time.

USAGE:
  store, err := sqlite.New("./data/timeclock.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - engine: classification/splitting logic that produces time entry rows
  - sequence: CounterStore port this package implements
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/timeclock/engine"
	"github.com/warp/timeclock/sequence"
)

// timeLayout keeps millisecond precision and the wall-clock offset.
const timeLayout = time.RFC3339Nano

// Store implements all persistence used by the API layer.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS companies (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		address TEXT,
		created_at TEXT NOT NULL,
		deleted_at TEXT
	);

	CREATE TABLE IF NOT EXISTS admins (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL REFERENCES companies(id),
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		deleted_at TEXT
	);

	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL REFERENCES companies(id),
		code TEXT NOT NULL,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone TEXT,
		hire_date TEXT NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		deleted_at TEXT,
		UNIQUE(company_id, code)
	);
	CREATE INDEX IF NOT EXISTS idx_employees_company
		ON employees(company_id);

	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL REFERENCES companies(id),
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		deleted_at TEXT,
		UNIQUE(company_id, code)
	);
	CREATE INDEX IF NOT EXISTS idx_projects_company
		ON projects(company_id);

	CREATE TABLE IF NOT EXISTS workplaces (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL REFERENCES companies(id),
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		location TEXT,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		deleted_at TEXT,
		UNIQUE(company_id, code)
	);
	CREATE INDEX IF NOT EXISTS idx_workplaces_company
		ON workplaces(company_id);

	-- One boundary configuration per company. Absence means defaults.
	CREATE TABLE IF NOT EXISTS working_hour_configs (
		company_id TEXT PRIMARY KEY REFERENCES companies(id),
		day_start TEXT NOT NULL,
		day_end TEXT NOT NULL,
		evening_start TEXT NOT NULL,
		evening_end TEXT NOT NULL,
		night_start TEXT NOT NULL,
		night_end TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- One row per classified per-day segment.
	CREATE TABLE IF NOT EXISTS time_entries (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL REFERENCES companies(id),
		employee_id TEXT NOT NULL REFERENCES employees(id),
		project_id TEXT NOT NULL REFERENCES projects(id),
		workplace_id TEXT NOT NULL REFERENCES workplaces(id),
		entry_date TEXT NOT NULL,
		time_in TEXT NOT NULL,
		time_out TEXT NOT NULL,
		total_hours TEXT NOT NULL,
		day_hours TEXT NOT NULL,
		evening_hours TEXT NOT NULL,
		night_hours TEXT NOT NULL,
		notes TEXT,
		is_full_day INTEGER NOT NULL DEFAULT 0,
		is_approved INTEGER,
		approved_by TEXT,
		approved_at TEXT,
		created_at TEXT NOT NULL,
		deleted_at TEXT
	);

	-- CRITICAL: feeds the overlap predicate (hot path)
	CREATE INDEX IF NOT EXISTS idx_time_entries_employee_date
		ON time_entries(employee_id, entry_date);
	CREATE INDEX IF NOT EXISTS idx_time_entries_company_date
		ON time_entries(company_id, entry_date);

	-- Sequence counters. Global scope is stored as company_id = ''.
	CREATE TABLE IF NOT EXISTS entity_code_counters (
		company_id TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		prefix TEXT NOT NULL,
		current_value INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (company_id, entity_type)
	);

	CREATE TABLE IF NOT EXISTS time_entry_audit_log (
		id TEXT PRIMARY KEY,
		time_entry_id TEXT NOT NULL,
		action TEXT NOT NULL,
		actor_id TEXT NOT NULL,
		actor_type TEXT NOT NULL,
		old_values TEXT,
		new_values TEXT,
		at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_audit_time_entry
		ON time_entry_audit_log(time_entry_id, at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// Page describes list pagination plus an optional search term.
type Page struct {
	Page   int
	Limit  int
	Search string
}

func (p Page) normalize() (limit, offset int) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	limit = p.Limit
	if limit < 1 {
		limit = 10
	}
	return limit, (page - 1) * limit
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func likePattern(s string) string {
	return "%" + s + "%"
}

// =============================================================================
// COMPANIES
// =============================================================================

type Company struct {
	ID        string
	Code      string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
}

// SaveCompany inserts a new company.
func (s *Store) SaveCompany(ctx context.Context, c Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO companies (id, code, name, email, phone, address, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Code, c.Name, c.Email, nullString(c.Phone), nullString(c.Address),
		time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save company: %w", err)
	}
	return nil
}

// GetCompany returns a company by id, or ErrNotFound.
func (s *Store) GetCompany(ctx context.Context, id string) (*Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, code, name, email, COALESCE(phone, ''), COALESCE(address, ''), created_at
		FROM companies WHERE id = ? AND deleted_at IS NULL`, id)

	var c Company
	var createdAt string
	if err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Email, &c.Phone, &c.Address, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("company %s: %w", id, engine.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	c.CreatedAt = parseTime(createdAt)
	return &c, nil
}

// ListCompanies returns a page of companies plus the total match count.
func (s *Store) ListCompanies(ctx context.Context, p Page) ([]Company, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where := "deleted_at IS NULL"
	args := []any{}
	if p.Search != "" {
		where += " AND (name LIKE ? OR email LIKE ? OR code LIKE ?)"
		pat := likePattern(p.Search)
		args = append(args, pat, pat, pat)
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM companies WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	limit, offset := p.normalize()
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, code, name, email, COALESCE(phone, ''), COALESCE(address, ''), created_at
		FROM companies WHERE `+where+`
		ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		var c Company
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Email, &c.Phone, &c.Address, &createdAt); err != nil {
			return nil, 0, err
		}
		c.CreatedAt = parseTime(createdAt)
		companies = append(companies, c)
	}
	return companies, total, rows.Err()
}

// UpdateCompany updates mutable fields of a non-deleted company.
func (s *Store) UpdateCompany(ctx context.Context, c Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE companies SET name = ?, email = ?, phone = ?, address = ?
		WHERE id = ? AND deleted_at IS NULL`,
		c.Name, c.Email, nullString(c.Phone), nullString(c.Address), c.ID)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	return requireRowAffected(res, "company "+c.ID)
}

// DeleteCompany soft-deletes a company.
func (s *Store) DeleteCompany(ctx context.Context, id string) error {
	return s.softDelete(ctx, "companies", "id = ?", "company "+id, id)
}

// =============================================================================
// ADMINS
// =============================================================================

type Admin struct {
	ID           string
	CompanyID    string
	Name         string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

// SaveAdmin inserts a tenant admin.
func (s *Store) SaveAdmin(ctx context.Context, a Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admins (id, company_id, name, email, password_hash, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.CompanyID, a.Name, a.Email, a.PasswordHash, boolToInt(a.IsActive),
		time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save admin: %w", err)
	}
	return nil
}

// ListAdmins returns the non-deleted admins of a company.
func (s *Store) ListAdmins(ctx context.Context, companyID string) ([]Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company_id, name, email, password_hash, is_active, created_at
		FROM admins WHERE company_id = ? AND deleted_at IS NULL
		ORDER BY created_at ASC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	var admins []Admin
	for rows.Next() {
		var a Admin
		var active int
		var createdAt string
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Name, &a.Email, &a.PasswordHash, &active, &createdAt); err != nil {
			return nil, err
		}
		a.IsActive = active != 0
		a.CreatedAt = parseTime(createdAt)
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// =============================================================================
// EMPLOYEES
// =============================================================================

type Employee struct {
	ID           string
	CompanyID    string
	Code         string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	HireDate     time.Time
	IsActive     bool
	CreatedAt    time.Time
}

// SaveEmployee inserts a new employee.
func (s *Store) SaveEmployee(ctx context.Context, e Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees
		(id, company_id, code, email, password_hash, first_name, last_name, phone, hire_date, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CompanyID, e.Code, e.Email, e.PasswordHash, e.FirstName, e.LastName,
		nullString(e.Phone), e.HireDate.Format("2006-01-02"), boolToInt(e.IsActive),
		time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

const employeeColumns = `id, company_id, code, email, password_hash, first_name, last_name,
	COALESCE(phone, ''), hire_date, is_active, created_at`

func scanEmployee(row interface{ Scan(...any) error }) (Employee, error) {
	var e Employee
	var hireDate, createdAt string
	var active int
	err := row.Scan(&e.ID, &e.CompanyID, &e.Code, &e.Email, &e.PasswordHash,
		&e.FirstName, &e.LastName, &e.Phone, &hireDate, &active, &createdAt)
	if err != nil {
		return Employee{}, err
	}
	e.HireDate, _ = time.Parse("2006-01-02", hireDate)
	e.IsActive = active != 0
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

// GetEmployee returns one employee scoped to a company, or ErrNotFound.
func (s *Store) GetEmployee(ctx context.Context, companyID, id string) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT `+employeeColumns+` FROM employees
		WHERE id = ? AND company_id = ? AND deleted_at IS NULL`, id, companyID)

	e, err := scanEmployee(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("employee %s: %w", id, engine.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &e, nil
}

// ListEmployees returns a page of a company's employees plus the total count.
func (s *Store) ListEmployees(ctx context.Context, companyID string, p Page) ([]Employee, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where := "company_id = ? AND deleted_at IS NULL"
	args := []any{companyID}
	if p.Search != "" {
		where += " AND (first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR code LIKE ?)"
		pat := likePattern(p.Search)
		args = append(args, pat, pat, pat, pat)
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM employees WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	limit, offset := p.normalize()
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+employeeColumns+` FROM employees WHERE `+where+`
		ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

// UpdateEmployee updates mutable fields of a non-deleted employee.
func (s *Store) UpdateEmployee(ctx context.Context, e Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE employees
		SET email = ?, first_name = ?, last_name = ?, phone = ?, is_active = ?, password_hash = ?
		WHERE id = ? AND company_id = ? AND deleted_at IS NULL`,
		e.Email, e.FirstName, e.LastName, nullString(e.Phone), boolToInt(e.IsActive),
		e.PasswordHash, e.ID, e.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return requireRowAffected(res, "employee "+e.ID)
}

// DeleteEmployee soft-deletes an employee within a company.
func (s *Store) DeleteEmployee(ctx context.Context, companyID, id string) error {
	return s.softDelete(ctx, "employees", "id = ? AND company_id = ?", "employee "+id, id, companyID)
}

// =============================================================================
// PROJECTS
// =============================================================================

type Project struct {
	ID          string
	CompanyID   string
	Code        string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}

// SaveProject inserts a new project.
func (s *Store) SaveProject(ctx context.Context, pr Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, company_id, code, name, description, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		pr.ID, pr.CompanyID, pr.Code, pr.Name, nullString(pr.Description),
		boolToInt(pr.IsActive), time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// GetProject returns one project scoped to a company, or ErrNotFound.
func (s *Store) GetProject(ctx context.Context, companyID, id string) (*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, company_id, code, name, COALESCE(description, ''), is_active, created_at
		FROM projects WHERE id = ? AND company_id = ? AND deleted_at IS NULL`, id, companyID)

	pr, err := scanProject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project %s: %w", id, engine.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &pr, nil
}

func scanProject(row interface{ Scan(...any) error }) (Project, error) {
	var pr Project
	var active int
	var createdAt string
	err := row.Scan(&pr.ID, &pr.CompanyID, &pr.Code, &pr.Name, &pr.Description, &active, &createdAt)
	if err != nil {
		return Project{}, err
	}
	pr.IsActive = active != 0
	pr.CreatedAt = parseTime(createdAt)
	return pr, nil
}

// ListProjects returns a page of a company's projects plus the total count.
// When activeOnly is set, inactive projects are excluded (employee surface).
func (s *Store) ListProjects(ctx context.Context, companyID string, p Page, activeOnly bool) ([]Project, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where := "company_id = ? AND deleted_at IS NULL"
	args := []any{companyID}
	if activeOnly {
		where += " AND is_active = 1"
	}
	if p.Search != "" {
		where += " AND (name LIKE ? OR code LIKE ?)"
		pat := likePattern(p.Search)
		args = append(args, pat, pat)
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM projects WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	limit, offset := p.normalize()
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company_id, code, name, COALESCE(description, ''), is_active, created_at
		FROM projects WHERE `+where+`
		ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		pr, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, pr)
	}
	return projects, total, rows.Err()
}

// UpdateProject updates mutable fields of a non-deleted project.
func (s *Store) UpdateProject(ctx context.Context, pr Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE projects SET name = ?, description = ?, is_active = ?
		WHERE id = ? AND company_id = ? AND deleted_at IS NULL`,
		pr.Name, nullString(pr.Description), boolToInt(pr.IsActive), pr.ID, pr.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return requireRowAffected(res, "project "+pr.ID)
}

// DeleteProject soft-deletes a project within a company.
func (s *Store) DeleteProject(ctx context.Context, companyID, id string) error {
	return s.softDelete(ctx, "projects", "id = ? AND company_id = ?", "project "+id, id, companyID)
}

// =============================================================================
// WORKPLACES
// =============================================================================

type Workplace struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	Location  string
	IsActive  bool
	CreatedAt time.Time
}

// SaveWorkplace inserts a new workplace.
func (s *Store) SaveWorkplace(ctx context.Context, w Workplace) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO workplaces (id, company_id, code, name, location, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.CompanyID, w.Code, w.Name, nullString(w.Location),
		boolToInt(w.IsActive), time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save workplace: %w", err)
	}
	return nil
}

// GetWorkplace returns one workplace scoped to a company, or ErrNotFound.
func (s *Store) GetWorkplace(ctx context.Context, companyID, id string) (*Workplace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, company_id, code, name, COALESCE(location, ''), is_active, created_at
		FROM workplaces WHERE id = ? AND company_id = ? AND deleted_at IS NULL`, id, companyID)

	w, err := scanWorkplace(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("workplace %s: %w", id, engine.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get workplace: %w", err)
	}
	return &w, nil
}

func scanWorkplace(row interface{ Scan(...any) error }) (Workplace, error) {
	var w Workplace
	var active int
	var createdAt string
	err := row.Scan(&w.ID, &w.CompanyID, &w.Code, &w.Name, &w.Location, &active, &createdAt)
	if err != nil {
		return Workplace{}, err
	}
	w.IsActive = active != 0
	w.CreatedAt = parseTime(createdAt)
	return w, nil
}

// ListWorkplaces returns a page of a company's workplaces plus the total count.
func (s *Store) ListWorkplaces(ctx context.Context, companyID string, p Page, activeOnly bool) ([]Workplace, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where := "company_id = ? AND deleted_at IS NULL"
	args := []any{companyID}
	if activeOnly {
		where += " AND is_active = 1"
	}
	if p.Search != "" {
		where += " AND (name LIKE ? OR code LIKE ?)"
		pat := likePattern(p.Search)
		args = append(args, pat, pat)
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM workplaces WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count workplaces: %w", err)
	}

	limit, offset := p.normalize()
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company_id, code, name, COALESCE(location, ''), is_active, created_at
		FROM workplaces WHERE `+where+`
		ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workplaces: %w", err)
	}
	defer rows.Close()

	var workplaces []Workplace
	for rows.Next() {
		w, err := scanWorkplace(rows)
		if err != nil {
			return nil, 0, err
		}
		workplaces = append(workplaces, w)
	}
	return workplaces, total, rows.Err()
}

// UpdateWorkplace updates mutable fields of a non-deleted workplace.
func (s *Store) UpdateWorkplace(ctx context.Context, w Workplace) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE workplaces SET name = ?, location = ?, is_active = ?
		WHERE id = ? AND company_id = ? AND deleted_at IS NULL`,
		w.Name, nullString(w.Location), boolToInt(w.IsActive), w.ID, w.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update workplace: %w", err)
	}
	return requireRowAffected(res, "workplace "+w.ID)
}

// DeleteWorkplace soft-deletes a workplace within a company.
func (s *Store) DeleteWorkplace(ctx context.Context, companyID, id string) error {
	return s.softDelete(ctx, "workplaces", "id = ? AND company_id = ?", "workplace "+id, id, companyID)
}

// =============================================================================
// BOUNDARY CONFIGURATION
// =============================================================================

// BoundaryConfig loads a company's boundary markers. A company without a
// stored row gets engine.DefaultBoundaries(); that is not an error.
func (s *Store) BoundaryConfig(ctx context.Context, companyID string) (engine.BoundaryConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT day_start, day_end, evening_start, evening_end, night_start, night_end
		FROM working_hour_configs WHERE company_id = ?`, companyID)

	var markers [6]string
	err := row.Scan(&markers[0], &markers[1], &markers[2], &markers[3], &markers[4], &markers[5])
	if err == sql.ErrNoRows {
		return engine.DefaultBoundaries(), nil
	}
	if err != nil {
		return engine.BoundaryConfig{}, fmt.Errorf("failed to load boundary config: %w", err)
	}

	var minutes [6]int
	for i, m := range markers {
		minutes[i], err = engine.ParseClockTime(m)
		if err != nil {
			return engine.BoundaryConfig{}, fmt.Errorf("stored boundary config for %s: %w", companyID, err)
		}
	}
	return engine.BoundaryConfig{
		DayStart: minutes[0], DayEnd: minutes[1],
		EveningStart: minutes[2], EveningEnd: minutes[3],
		NightStart: minutes[4], NightEnd: minutes[5],
	}, nil
}

// SaveBoundaryConfig upserts a company's boundary markers.
func (s *Store) SaveBoundaryConfig(ctx context.Context, companyID string, cfg engine.BoundaryConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO working_hour_configs
		(company_id, day_start, day_end, evening_start, evening_end, night_start, night_end, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(company_id) DO UPDATE SET
			day_start = excluded.day_start,
			day_end = excluded.day_end,
			evening_start = excluded.evening_start,
			evening_end = excluded.evening_end,
			night_start = excluded.night_start,
			night_end = excluded.night_end,
			updated_at = excluded.updated_at`,
		companyID,
		engine.FormatClockTime(cfg.DayStart), engine.FormatClockTime(cfg.DayEnd),
		engine.FormatClockTime(cfg.EveningStart), engine.FormatClockTime(cfg.EveningEnd),
		engine.FormatClockTime(cfg.NightStart), engine.FormatClockTime(cfg.NightEnd),
		time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save boundary config: %w", err)
	}
	return nil
}

// =============================================================================
// TIME ENTRIES
// =============================================================================

type TimeEntry struct {
	ID           string
	CompanyID    string
	EmployeeID   string
	ProjectID    string
	WorkplaceID  string
	EntryDate    string // "2006-01-02"
	TimeIn       time.Time
	TimeOut      time.Time
	TotalHours   decimal.Decimal
	DayHours     decimal.Decimal
	EveningHours decimal.Decimal
	NightHours   decimal.Decimal
	Notes        string
	IsFullDay    bool
	IsApproved   *bool
	ApprovedBy   string
	ApprovedAt   *time.Time
	CreatedAt    time.Time
}

const timeEntryColumns = `id, company_id, employee_id, project_id, workplace_id,
	entry_date, time_in, time_out, total_hours, day_hours, evening_hours, night_hours,
	COALESCE(notes, ''), is_full_day, is_approved, COALESCE(approved_by, ''), approved_at, created_at`

func scanTimeEntry(row interface{ Scan(...any) error }) (TimeEntry, error) {
	var e TimeEntry
	var timeIn, timeOut, createdAt string
	var total, day, evening, night string
	var fullDay int
	var approved sql.NullInt64
	var approvedAt sql.NullString

	err := row.Scan(&e.ID, &e.CompanyID, &e.EmployeeID, &e.ProjectID, &e.WorkplaceID,
		&e.EntryDate, &timeIn, &timeOut, &total, &day, &evening, &night,
		&e.Notes, &fullDay, &approved, &e.ApprovedBy, &approvedAt, &createdAt)
	if err != nil {
		return TimeEntry{}, err
	}

	e.TimeIn = parseTime(timeIn)
	e.TimeOut = parseTime(timeOut)
	e.TotalHours = parseDecimal(total)
	e.DayHours = parseDecimal(day)
	e.EveningHours = parseDecimal(evening)
	e.NightHours = parseDecimal(night)
	e.IsFullDay = fullDay != 0
	if approved.Valid {
		v := approved.Int64 != 0
		e.IsApproved = &v
	}
	if approvedAt.Valid {
		t := parseTime(approvedAt.String)
		e.ApprovedAt = &t
	}
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

// InsertTimeEntries persists the rows produced by one split atomically.
// Either every segment row lands or none does.
func (s *Store) InsertTimeEntries(ctx context.Context, entries []TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(timeLayout)
	for _, e := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO time_entries
			(id, company_id, employee_id, project_id, workplace_id, entry_date,
			 time_in, time_out, total_hours, day_hours, evening_hours, night_hours,
			 notes, is_full_day, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.CompanyID, e.EmployeeID, e.ProjectID, e.WorkplaceID, e.EntryDate,
			e.TimeIn.Format(timeLayout), e.TimeOut.Format(timeLayout),
			e.TotalHours.String(), e.DayHours.String(), e.EveningHours.String(), e.NightHours.String(),
			nullString(e.Notes), boolToInt(e.IsFullDay), now)
		if err != nil {
			return fmt.Errorf("failed to insert time entry: %w", err)
		}
	}
	return tx.Commit()
}

// SameDayEntries returns the conflict-candidate set for one employee and
// date, shaped for the overlap predicate. Soft-deleted rows are excluded.
func (s *Store) SameDayEntries(ctx context.Context, employeeID, date string) ([]engine.ExistingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, time_in, time_out FROM time_entries
		WHERE employee_id = ? AND entry_date = ? AND deleted_at IS NULL`,
		employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query same-day entries: %w", err)
	}
	defer rows.Close()

	var existing []engine.ExistingEntry
	for rows.Next() {
		var e engine.ExistingEntry
		var timeIn, timeOut string
		if err := rows.Scan(&e.ID, &timeIn, &timeOut); err != nil {
			return nil, err
		}
		e.TimeIn = parseTime(timeIn)
		e.TimeOut = parseTime(timeOut)
		existing = append(existing, e)
	}
	return existing, rows.Err()
}

// GetTimeEntry returns one time entry, or ErrNotFound.
func (s *Store) GetTimeEntry(ctx context.Context, id string) (*TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT `+timeEntryColumns+` FROM time_entries
		WHERE id = ? AND deleted_at IS NULL`, id)

	e, err := scanTimeEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("time entry %s: %w", id, engine.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}
	return &e, nil
}

// TimeEntryFilter narrows ListTimeEntries. Zero fields are ignored.
type TimeEntryFilter struct {
	CompanyID   string
	EmployeeID  string
	ProjectID   string
	WorkplaceID string
	FromDate    string // inclusive, "2006-01-02"
	ToDate      string // inclusive
	Approved    *bool  // nil ignores; false also matches never-reviewed rows
	Page        Page
}

// ListTimeEntries returns a filtered page of entries plus the total count,
// newest entry date first.
func (s *Store) ListTimeEntries(ctx context.Context, f TimeEntryFilter) ([]TimeEntry, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conds := []string{"deleted_at IS NULL"}
	var args []any
	if f.CompanyID != "" {
		conds = append(conds, "company_id = ?")
		args = append(args, f.CompanyID)
	}
	if f.EmployeeID != "" {
		conds = append(conds, "employee_id = ?")
		args = append(args, f.EmployeeID)
	}
	if f.ProjectID != "" {
		conds = append(conds, "project_id = ?")
		args = append(args, f.ProjectID)
	}
	if f.WorkplaceID != "" {
		conds = append(conds, "workplace_id = ?")
		args = append(args, f.WorkplaceID)
	}
	if f.FromDate != "" {
		conds = append(conds, "entry_date >= ?")
		args = append(args, f.FromDate)
	}
	if f.ToDate != "" {
		conds = append(conds, "entry_date <= ?")
		args = append(args, f.ToDate)
	}
	if f.Approved != nil {
		if *f.Approved {
			conds = append(conds, "is_approved = 1")
		} else {
			conds = append(conds, "(is_approved IS NULL OR is_approved = 0)")
		}
	}
	where := strings.Join(conds, " AND ")

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM time_entries WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time entries: %w", err)
	}

	limit, offset := f.Page.normalize()
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+timeEntryColumns+` FROM time_entries WHERE `+where+`
		ORDER BY entry_date DESC, time_in DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var entries []TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

// UpdateTimeEntryDetails updates the caller-editable fields. Classified
// hours are engine output and never mutated here; a changed interval is a
// delete-and-recreate at the service layer.
func (s *Store) UpdateTimeEntryDetails(ctx context.Context, id, projectID, workplaceID, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE time_entries SET project_id = ?, workplace_id = ?, notes = ?
		WHERE id = ? AND deleted_at IS NULL`,
		projectID, workplaceID, nullString(notes), id)
	if err != nil {
		return fmt.Errorf("failed to update time entry: %w", err)
	}
	return requireRowAffected(res, "time entry "+id)
}

// ApproveTimeEntry records an approval decision on a company's entry.
func (s *Store) ApproveTimeEntry(ctx context.Context, companyID, id string, approve bool, actorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE time_entries SET is_approved = ?, approved_by = ?, approved_at = ?
		WHERE id = ? AND company_id = ? AND deleted_at IS NULL`,
		boolToInt(approve), actorID, time.Now().UTC().Format(timeLayout), id, companyID)
	if err != nil {
		return fmt.Errorf("failed to approve time entry: %w", err)
	}
	return requireRowAffected(res, "time entry "+id)
}

// DeleteTimeEntry soft-deletes one entry.
func (s *Store) DeleteTimeEntry(ctx context.Context, id string) error {
	return s.softDelete(ctx, "time_entries", "id = ?", "time entry "+id, id)
}

// =============================================================================
// REPORTS
// =============================================================================

// SummaryFilter selects the rows feeding a grouped hour report.
type SummaryFilter struct {
	CompanyID    string
	GroupBy      string // "employee" or "project"
	FromDate     string
	ToDate       string
	EmployeeIDs  []string
	ProjectIDs   []string
	WorkplaceIDs []string
}

// HourSummary is one group's summed buckets.
type HourSummary struct {
	GroupID      string
	TotalHours   decimal.Decimal
	DayHours     decimal.Decimal
	EveningHours decimal.Decimal
	NightHours   decimal.Decimal
}

// SummarizeHours sums the hour buckets grouped by employee or project.
// Sums are accumulated as decimals in Go rather than SQL floats so totals
// stay exact.
func (s *Store) SummarizeHours(ctx context.Context, f SummaryFilter) ([]HourSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groupCol := "employee_id"
	if f.GroupBy == "project" {
		groupCol = "project_id"
	}

	conds := []string{"company_id = ?", "deleted_at IS NULL"}
	args := []any{f.CompanyID}
	if f.FromDate != "" {
		conds = append(conds, "entry_date >= ?")
		args = append(args, f.FromDate)
	}
	if f.ToDate != "" {
		conds = append(conds, "entry_date <= ?")
		args = append(args, f.ToDate)
	}
	for _, filter := range []struct {
		col string
		ids []string
	}{
		{"employee_id", f.EmployeeIDs},
		{"project_id", f.ProjectIDs},
		{"workplace_id", f.WorkplaceIDs},
	} {
		if len(filter.ids) == 0 {
			continue
		}
		conds = append(conds, filter.col+" IN (?"+strings.Repeat(", ?", len(filter.ids)-1)+")")
		for _, id := range filter.ids {
			args = append(args, id)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+groupCol+`, total_hours, day_hours, evening_hours, night_hours
		FROM time_entries WHERE `+strings.Join(conds, " AND ")+`
		ORDER BY `+groupCol,
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query report rows: %w", err)
	}
	defer rows.Close()

	byGroup := make(map[string]*HourSummary)
	var order []string
	for rows.Next() {
		var groupID, total, day, evening, night string
		if err := rows.Scan(&groupID, &total, &day, &evening, &night); err != nil {
			return nil, err
		}
		sum, ok := byGroup[groupID]
		if !ok {
			sum = &HourSummary{GroupID: groupID}
			byGroup[groupID] = sum
			order = append(order, groupID)
		}
		sum.TotalHours = sum.TotalHours.Add(parseDecimal(total))
		sum.DayHours = sum.DayHours.Add(parseDecimal(day))
		sum.EveningHours = sum.EveningHours.Add(parseDecimal(evening))
		sum.NightHours = sum.NightHours.Add(parseDecimal(night))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	summaries := make([]HourSummary, 0, len(order))
	for _, id := range order {
		summaries = append(summaries, *byGroup[id])
	}
	return summaries, nil
}

// =============================================================================
// SEQUENCE COUNTERS
// =============================================================================

// Compile-time check that Store implements sequence.CounterStore.
var _ sequence.CounterStore = (*Store)(nil)

// counterScopeID maps the tagged scope onto the row key. Only here does the
// global scope become an empty string.
func counterScopeID(scope sequence.Scope) string {
	if scope.IsGlobal() {
		return ""
	}
	return scope.TenantID()
}

// Increment implements sequence.CounterStore. The counter row is created at
// zero on first use and bumped inside the same transaction; the store-wide
// write lock plus the transaction make the read-increment-write indivisible
// per scope key. A value is returned only after the commit succeeds.
func (s *Store) Increment(ctx context.Context, scope sequence.Scope, kind sequence.Kind, prefix string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scopeID := counterScopeID(scope)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", engine.ErrAllocationContention, err)
	}
	defer tx.Rollback()

	var current int64
	err = tx.QueryRowContext(ctx, `
		SELECT current_value FROM entity_code_counters
		WHERE company_id = ? AND entity_type = ?`, scopeID, string(kind)).Scan(&current)
	switch {
	case err == sql.ErrNoRows:
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO entity_code_counters (company_id, entity_type, prefix, current_value)
			VALUES (?, ?, ?, 0)`, scopeID, string(kind), prefix); err != nil {
			return 0, fmt.Errorf("%w: %v", engine.ErrAllocationContention, err)
		}
		current = 0
	case err != nil:
		return 0, fmt.Errorf("failed to read counter: %w", err)
	}

	next := current + 1
	if _, err := tx.ExecContext(ctx, `
		UPDATE entity_code_counters SET current_value = ?
		WHERE company_id = ? AND entity_type = ?`, next, scopeID, string(kind)); err != nil {
		return 0, fmt.Errorf("%w: %v", engine.ErrAllocationContention, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %v", engine.ErrAllocationContention, err)
	}
	return next, nil
}

// =============================================================================
// AUDIT LOG
// =============================================================================

// AuditRecord is one append-only entry in the time-entry change trail.
type AuditRecord struct {
	ID          string
	TimeEntryID string
	Action      string // "created", "updated", "deleted", "approved", "rejected"
	ActorID     string
	ActorType   string // "employee", "admin"
	OldValues   map[string]any
	NewValues   map[string]any
	At          time.Time
}

// AppendAudit writes one audit record. The log has no update or delete.
func (s *Store) AppendAudit(ctx context.Context, rec AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	oldJSON, err := json.Marshal(rec.OldValues)
	if err != nil {
		return fmt.Errorf("failed to marshal audit old values: %w", err)
	}
	newJSON, err := json.Marshal(rec.NewValues)
	if err != nil {
		return fmt.Errorf("failed to marshal audit new values: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO time_entry_audit_log
		(id, time_entry_id, action, actor_id, actor_type, old_values, new_values, at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.TimeEntryID, rec.Action, rec.ActorID, rec.ActorType,
		string(oldJSON), string(newJSON), time.Now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}
	return nil
}

// AuditTrail returns a time entry's audit records, newest first.
func (s *Store) AuditTrail(ctx context.Context, timeEntryID string) ([]AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, time_entry_id, action, actor_id, actor_type, old_values, new_values, at
		FROM time_entry_audit_log WHERE time_entry_id = ? ORDER BY at DESC`, timeEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit trail: %w", err)
	}
	defer rows.Close()

	var records []AuditRecord
	for rows.Next() {
		var rec AuditRecord
		var oldJSON, newJSON, at string
		if err := rows.Scan(&rec.ID, &rec.TimeEntryID, &rec.Action, &rec.ActorID,
			&rec.ActorType, &oldJSON, &newJSON, &at); err != nil {
			return nil, err
		}
		json.Unmarshal([]byte(oldJSON), &rec.OldValues)
		json.Unmarshal([]byte(newJSON), &rec.NewValues)
		rec.At = parseTime(at)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// =============================================================================
// INTERNAL HELPERS
// =============================================================================

func (s *Store) softDelete(ctx context.Context, table, cond, what string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := "UPDATE " + table + " SET deleted_at = ? WHERE " + cond + " AND deleted_at IS NULL"
	res, err := s.db.ExecContext(ctx, query,
		append([]any{time.Now().UTC().Format(timeLayout)}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return requireRowAffected(res, what)
}

func requireRowAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, engine.ErrNotFound)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
