package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/majifix/service-request/internal/domain"
)

// Reference repositories resolve the classification entities owned by
// collaborator services. Lookups return (nil, nil) when nothing matches;
// the pre-validation pipeline decides whether a missing entity is fatal.

// JurisdictionRepository resolves jurisdictions.
type JurisdictionRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Jurisdiction, error)
	List(ctx context.Context) ([]domain.Jurisdiction, error)
}

// ServiceGroupRepository resolves service groups (categories).
type ServiceGroupRepository interface {
	FindByID(ctx context.Context, id string) (*domain.ServiceGroup, error)
}

// ServiceRepository resolves services with their nested jurisdiction,
// group, priority and SLA.
type ServiceRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
}

// StatusRepository resolves statuses and the system default status.
type StatusRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Status, error)
	FindDefault(ctx context.Context) (*domain.Status, error)
	List(ctx context.Context) ([]domain.Status, error)
}

// PriorityRepository resolves priorities and the system default priority.
type PriorityRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Priority, error)
	FindDefault(ctx context.Context) (*domain.Priority, error)
	List(ctx context.Context) ([]domain.Priority, error)
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows, so the scan helpers
// below serve single-row and list queries alike. Optional columns are
// scanned through pointers; a NULL must never fail the scan.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJurisdiction(row rowScanner) (*domain.Jurisdiction, error) {
	var (
		j                   domain.Jurisdiction
		phone, email, color *string
	)
	if err := row.Scan(&j.ID, &j.Code, &j.Name, &phone, &email, &color); err != nil {
		return nil, err
	}
	j.Phone = deref(phone)
	j.Email = deref(email)
	j.Color = deref(color)
	return &j, nil
}

func scanServiceGroup(row rowScanner) (*domain.ServiceGroup, error) {
	var (
		g     domain.ServiceGroup
		color *string
	)
	if err := row.Scan(&g.ID, &g.Code, &g.Name, &color); err != nil {
		return nil, err
	}
	g.Color = deref(color)
	return &g, nil
}

func scanStatus(row rowScanner) (*domain.Status, error) {
	var (
		s     domain.Status
		color *string
	)
	if err := row.Scan(&s.ID, &s.Name, &color, &s.Weight, &s.IsDefault); err != nil {
		return nil, err
	}
	s.Color = deref(color)
	return &s, nil
}

func scanPriority(row rowScanner) (*domain.Priority, error) {
	var (
		p     domain.Priority
		color *string
	)
	if err := row.Scan(&p.ID, &p.Name, &color, &p.Weight, &p.IsDefault); err != nil {
		return nil, err
	}
	p.Color = deref(color)
	return &p, nil
}

type jurisdictionRepository struct {
	pool *pgxpool.Pool
}

// NewJurisdictionRepository instantiates the repository.
func NewJurisdictionRepository(pool *pgxpool.Pool) JurisdictionRepository {
	return &jurisdictionRepository{pool: pool}
}

const jurisdictionSelect = `SELECT id, code, name, phone, email, color FROM jurisdictions`

func (r *jurisdictionRepository) FindByID(ctx context.Context, id string) (*domain.Jurisdiction, error) {
	if id == "" {
		return nil, nil
	}
	j, err := scanJurisdiction(r.pool.QueryRow(ctx, jurisdictionSelect+` WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (r *jurisdictionRepository) List(ctx context.Context) ([]domain.Jurisdiction, error) {
	rows, err := r.pool.Query(ctx, jurisdictionSelect+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Jurisdiction
	for rows.Next() {
		j, err := scanJurisdiction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *j)
	}
	return result, rows.Err()
}

type serviceGroupRepository struct {
	pool *pgxpool.Pool
}

// NewServiceGroupRepository instantiates the repository.
func NewServiceGroupRepository(pool *pgxpool.Pool) ServiceGroupRepository {
	return &serviceGroupRepository{pool: pool}
}

func (r *serviceGroupRepository) FindByID(ctx context.Context, id string) (*domain.ServiceGroup, error) {
	if id == "" {
		return nil, nil
	}
	const query = `SELECT id, code, name, color FROM service_groups WHERE id=$1`
	g, err := scanServiceGroup(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

type serviceRepository struct {
	pool *pgxpool.Pool
}

// NewServiceRepository instantiates the repository.
func NewServiceRepository(pool *pgxpool.Pool) ServiceRepository {
	return &serviceRepository{pool: pool}
}

const serviceSelect = `
        SELECT s.id, s.code, s.name, s.color, s.is_external, s.sla_ttr_hours,
               j.id, j.code, j.name, j.color,
               g.id, g.code, g.name, g.color,
               p.id, p.name, p.color, p.weight
        FROM services s
        LEFT JOIN jurisdictions j ON j.id = s.jurisdiction_id
        LEFT JOIN service_groups g ON g.id = s.group_id
        LEFT JOIN priorities p ON p.id = s.priority_id`

func (r *serviceRepository) FindByID(ctx context.Context, id string) (*domain.Service, error) {
	if id == "" {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, serviceSelect+` WHERE s.id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services, err := scanServices(rows)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, nil
	}
	return &services[0], nil
}

func (r *serviceRepository) List(ctx context.Context) ([]domain.Service, error) {
	rows, err := r.pool.Query(ctx, serviceSelect+` ORDER BY s.code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanServices(rows)
}

func scanServices(rows pgx.Rows) ([]domain.Service, error) {
	var result []domain.Service
	for rows.Next() {
		var (
			svc      domain.Service
			svcColor *string
			slaTTR   *int
			jurID    *string
			jurCode  *string
			jurName  *string
			jurColor *string
			grpID    *string
			grpCode  *string
			grpName  domain.LocalizedString
			grpColor *string
			priID    *string
			priName  domain.LocalizedString
			priColor *string
			priWght  *int
		)
		if err := rows.Scan(
			&svc.ID, &svc.Code, &svc.Name, &svcColor, &svc.IsExternal, &slaTTR,
			&jurID, &jurCode, &jurName, &jurColor,
			&grpID, &grpCode, &grpName, &grpColor,
			&priID, &priName, &priColor, &priWght,
		); err != nil {
			return nil, err
		}
		svc.Color = deref(svcColor)
		if slaTTR != nil {
			svc.SLA = &domain.SLA{TTR: *slaTTR}
		}
		if jurID != nil {
			svc.Jurisdiction = &domain.Jurisdiction{
				ID:    *jurID,
				Code:  deref(jurCode),
				Name:  deref(jurName),
				Color: deref(jurColor),
			}
		}
		if grpID != nil {
			svc.Group = &domain.ServiceGroup{
				ID:    *grpID,
				Code:  deref(grpCode),
				Name:  grpName,
				Color: deref(grpColor),
			}
		}
		if priID != nil {
			svc.Priority = &domain.Priority{
				ID:     *priID,
				Name:   priName,
				Color:  deref(priColor),
				Weight: derefInt(priWght),
			}
		}
		result = append(result, svc)
	}
	return result, rows.Err()
}

type statusRepository struct {
	pool *pgxpool.Pool
}

// NewStatusRepository instantiates the repository.
func NewStatusRepository(pool *pgxpool.Pool) StatusRepository {
	return &statusRepository{pool: pool}
}

const statusSelect = `SELECT id, name, color, weight, is_default FROM statuses`

func (r *statusRepository) FindByID(ctx context.Context, id string) (*domain.Status, error) {
	if id == "" {
		return nil, nil
	}
	s, err := scanStatus(r.pool.QueryRow(ctx, statusSelect+` WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *statusRepository) FindDefault(ctx context.Context) (*domain.Status, error) {
	s, err := scanStatus(r.pool.QueryRow(ctx, statusSelect+` WHERE is_default ORDER BY weight LIMIT 1`))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *statusRepository) List(ctx context.Context) ([]domain.Status, error) {
	rows, err := r.pool.Query(ctx, statusSelect+` ORDER BY weight`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Status
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

type priorityRepository struct {
	pool *pgxpool.Pool
}

// NewPriorityRepository instantiates the repository.
func NewPriorityRepository(pool *pgxpool.Pool) PriorityRepository {
	return &priorityRepository{pool: pool}
}

const prioritySelect = `SELECT id, name, color, weight, is_default FROM priorities`

func (r *priorityRepository) FindByID(ctx context.Context, id string) (*domain.Priority, error) {
	if id == "" {
		return nil, nil
	}
	p, err := scanPriority(r.pool.QueryRow(ctx, prioritySelect+` WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *priorityRepository) FindDefault(ctx context.Context) (*domain.Priority, error) {
	p, err := scanPriority(r.pool.QueryRow(ctx, prioritySelect+` WHERE is_default ORDER BY weight LIMIT 1`))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *priorityRepository) List(ctx context.Context) ([]domain.Priority, error) {
	rows, err := r.pool.Query(ctx, prioritySelect+` ORDER BY weight`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Priority
	for rows.Next() {
		p, err := scanPriority(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
