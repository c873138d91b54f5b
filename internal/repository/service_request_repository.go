package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/majifix/service-request/internal/domain"
)

// ServiceRequestFilter captures listing parameters.
type ServiceRequestFilter struct {
	Jurisdiction string
	Service      string
	Status       string
	Priority     string
	Resolved     *bool
	SearchTerm   string
	Limit        int
	Offset       int
}

// ServiceRequestRepository encapsulates service request persistence.
// Reads hydrate the classification references so callers always observe
// populated requests.
type ServiceRequestRepository interface {
	Create(ctx context.Context, req *domain.ServiceRequest) error
	Update(ctx context.Context, req *domain.ServiceRequest) error
	GetByID(ctx context.Context, id string) (*domain.ServiceRequest, error)
	GetByCode(ctx context.Context, code string) (*domain.ServiceRequest, error)
	List(ctx context.Context, filter ServiceRequestFilter) ([]domain.ServiceRequest, error)
	Delete(ctx context.Context, id string) error
}

type serviceRequestRepository struct {
	pool *pgxpool.Pool
}

// NewServiceRequestRepository instantiates the repository.
func NewServiceRequestRepository(pool *pgxpool.Pool) ServiceRequestRepository {
	return &serviceRequestRepository{pool: pool}
}

func (r *serviceRequestRepository) Create(ctx context.Context, req *domain.ServiceRequest) error {
	const query = `
        INSERT INTO service_requests
            (id, code, jurisdiction_id, group_id, service_id, priority_id, status_id,
             operator, assignee, reporter, method_name, method_workspace,
             description, address, location, attachments,
             call_started_at, call_ended_at, ttr_ms, expected_at, resolved_at, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
        RETURNING created_at, updated_at`
	var callStarted, callEnded *time.Time
	if req.Call != nil {
		callStarted, callEnded = &req.Call.StartedAt, &req.Call.EndedAt
	}
	createdAt := any(nil)
	if !req.CreatedAt.IsZero() {
		createdAt = req.CreatedAt
	}
	err := r.pool.QueryRow(ctx, query,
		req.ID,
		req.Code,
		nullable(req.Jurisdiction.Ref()),
		nullable(req.Group.Ref()),
		nullable(req.Service.Ref()),
		nullable(req.Priority.Ref()),
		nullable(req.Status.Ref()),
		req.Operator,
		req.Assignee,
		req.Reporter,
		req.Method.Name,
		req.Method.Workspace,
		req.Description,
		req.Address,
		req.Location,
		req.Attachments,
		callStarted,
		callEnded,
		ttrMillis(req.TTR),
		req.ExpectedAt,
		req.ResolvedAt,
		createdAt,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return err
	}
	return r.insertChangeLogs(ctx, req.ID, req.ChangeLogs)
}

func (r *serviceRequestRepository) Update(ctx context.Context, req *domain.ServiceRequest) error {
	const query = `
        UPDATE service_requests SET
            jurisdiction_id=$1, group_id=$2, service_id=$3, priority_id=$4, status_id=$5,
            operator=$6, assignee=$7, reporter=$8, method_name=$9, method_workspace=$10,
            description=$11, address=$12, location=$13, attachments=$14,
            call_started_at=$15, call_ended_at=$16, ttr_ms=$17,
            expected_at=$18, resolved_at=$19, updated_at=NOW()
        WHERE id=$20`
	var callStarted, callEnded *time.Time
	if req.Call != nil {
		callStarted, callEnded = &req.Call.StartedAt, &req.Call.EndedAt
	}
	cmd, err := r.pool.Exec(ctx, query,
		nullable(req.Jurisdiction.Ref()),
		nullable(req.Group.Ref()),
		nullable(req.Service.Ref()),
		nullable(req.Priority.Ref()),
		nullable(req.Status.Ref()),
		req.Operator,
		req.Assignee,
		req.Reporter,
		req.Method.Name,
		req.Method.Workspace,
		req.Description,
		req.Address,
		req.Location,
		req.Attachments,
		callStarted,
		callEnded,
		ttrMillis(req.TTR),
		req.ExpectedAt,
		req.ResolvedAt,
		req.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	fresh := make([]domain.ChangeLog, 0)
	for _, entry := range req.ChangeLogs {
		if entry.ID == "" {
			fresh = append(fresh, entry)
		}
	}
	return r.insertChangeLogs(ctx, req.ID, fresh)
}

func (r *serviceRequestRepository) insertChangeLogs(ctx context.Context, requestID string, entries []domain.ChangeLog) error {
	const query = `
        INSERT INTO changelogs
            (request_id, status_id, priority_id, assignee, changer, comment,
             should_notify, was_notification_sent, visibility)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`
	for i := range entries {
		entry := &entries[i]
		if err := r.pool.QueryRow(ctx, query,
			requestID,
			nullable(entry.Status.Ref()),
			nullable(entry.Priority.Ref()),
			entry.Assignee,
			entry.Changer,
			entry.Comment,
			entry.ShouldNotify,
			entry.WasNotificationSent,
			entry.Visibility,
		).Scan(&entry.ID, &entry.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

const requestSelect = `
        SELECT r.id, r.code, r.description, r.address, r.location,
               r.operator, r.assignee, r.reporter, r.method_name, r.method_workspace,
               r.attachments, r.call_started_at, r.call_ended_at, r.ttr_ms,
               r.expected_at, r.resolved_at, r.created_at, r.updated_at,
               j.id, j.code, j.name, j.color,
               g.id, g.code, g.name, g.color,
               s.id, s.code, s.name, s.color, s.is_external, s.sla_ttr_hours,
               p.id, p.name, p.color, p.weight,
               st.id, st.name, st.color, st.weight
        FROM service_requests r
        LEFT JOIN jurisdictions j ON j.id = r.jurisdiction_id
        LEFT JOIN service_groups g ON g.id = r.group_id
        LEFT JOIN services s ON s.id = r.service_id
        LEFT JOIN priorities p ON p.id = r.priority_id
        LEFT JOIN statuses st ON st.id = r.status_id`

func (r *serviceRequestRepository) GetByID(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	return r.fetchSingle(ctx, requestSelect+` WHERE r.id=$1`, id)
}

func (r *serviceRequestRepository) GetByCode(ctx context.Context, code string) (*domain.ServiceRequest, error) {
	return r.fetchSingle(ctx, requestSelect+` WHERE r.code=$1`, strings.ToUpper(code))
}

func (r *serviceRequestRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.ServiceRequest, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests, err := scanServiceRequests(rows)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, pgx.ErrNoRows
	}
	req := &requests[0]
	if err := r.loadChangeLogs(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *serviceRequestRepository) List(ctx context.Context, filter ServiceRequestFilter) ([]domain.ServiceRequest, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Jurisdiction != "" {
		args = append(args, filter.Jurisdiction)
		clauses = append(clauses, fmt.Sprintf("r.jurisdiction_id=$%d", len(args)))
	}
	if filter.Service != "" {
		args = append(args, filter.Service)
		clauses = append(clauses, fmt.Sprintf("r.service_id=$%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("r.status_id=$%d", len(args)))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		clauses = append(clauses, fmt.Sprintf("r.priority_id=$%d", len(args)))
	}
	if filter.Resolved != nil {
		if *filter.Resolved {
			clauses = append(clauses, "r.resolved_at IS NOT NULL")
		} else {
			clauses = append(clauses, "r.resolved_at IS NULL")
		}
	}
	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		args = append(args, "%"+strings.ToLower(term)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(r.code) LIKE %s OR LOWER(r.description) LIKE %s OR LOWER(r.address) LIKE %s)",
			placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY r.created_at DESC LIMIT %d OFFSET %d`,
		requestSelect, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanServiceRequests(rows)
}

func (r *serviceRequestRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM service_requests WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceRequestRepository) loadChangeLogs(ctx context.Context, req *domain.ServiceRequest) error {
	const query = `
        SELECT c.id, c.assignee, c.changer, c.comment,
               c.should_notify, c.was_notification_sent, c.visibility, c.created_at,
               st.id, st.name, st.color, st.weight,
               p.id, p.name, p.color, p.weight
        FROM changelogs c
        LEFT JOIN statuses st ON st.id = c.status_id
        LEFT JOIN priorities p ON p.id = c.priority_id
        WHERE c.request_id=$1
        ORDER BY c.created_at`
	rows, err := r.pool.Query(ctx, query, req.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var entries []domain.ChangeLog
	for rows.Next() {
		var (
			entry    domain.ChangeLog
			stID     *string
			stName   domain.LocalizedString
			stColor  *string
			stWght   *int
			priID    *string
			priName  domain.LocalizedString
			priColor *string
			priWght  *int
		)
		if err := rows.Scan(
			&entry.ID, &entry.Assignee, &entry.Changer, &entry.Comment,
			&entry.ShouldNotify, &entry.WasNotificationSent, &entry.Visibility, &entry.CreatedAt,
			&stID, &stName, &stColor, &stWght,
			&priID, &priName, &priColor, &priWght,
		); err != nil {
			return err
		}
		if stID != nil {
			entry.Status = &domain.Status{ID: *stID, Name: stName, Color: deref(stColor), Weight: derefInt(stWght)}
		}
		if priID != nil {
			entry.Priority = &domain.Priority{ID: *priID, Name: priName, Color: deref(priColor), Weight: derefInt(priWght)}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	req.ChangeLogs = entries
	return nil
}

func scanServiceRequests(rows pgx.Rows) ([]domain.ServiceRequest, error) {
	var result []domain.ServiceRequest
	for rows.Next() {
		var (
			req         domain.ServiceRequest
			callStarted *time.Time
			callEnded   *time.Time
			ttrMs       *int64
			jurID       *string
			jurCode     *string
			jurName     *string
			jurColor    *string
			grpID       *string
			grpCode     *string
			grpName     domain.LocalizedString
			grpColor    *string
			svcID       *string
			svcCode     *string
			svcName     domain.LocalizedString
			svcColor    *string
			svcExternal *bool
			svcSLA      *int
			priID       *string
			priName     domain.LocalizedString
			priColor    *string
			priWght     *int
			stID        *string
			stName      domain.LocalizedString
			stColor     *string
			stWght      *int
		)
		if err := rows.Scan(
			&req.ID, &req.Code, &req.Description, &req.Address, &req.Location,
			&req.Operator, &req.Assignee, &req.Reporter, &req.Method.Name, &req.Method.Workspace,
			&req.Attachments, &callStarted, &callEnded, &ttrMs,
			&req.ExpectedAt, &req.ResolvedAt, &req.CreatedAt, &req.UpdatedAt,
			&jurID, &jurCode, &jurName, &jurColor,
			&grpID, &grpCode, &grpName, &grpColor,
			&svcID, &svcCode, &svcName, &svcColor, &svcExternal, &svcSLA,
			&priID, &priName, &priColor, &priWght,
			&stID, &stName, &stColor, &stWght,
		); err != nil {
			return nil, err
		}
		if jurID != nil {
			req.Jurisdiction = &domain.Jurisdiction{ID: *jurID, Code: deref(jurCode), Name: deref(jurName), Color: deref(jurColor)}
		}
		if grpID != nil {
			req.Group = &domain.ServiceGroup{ID: *grpID, Code: deref(grpCode), Name: grpName, Color: deref(grpColor)}
		}
		if svcID != nil {
			req.Service = &domain.Service{
				ID:           *svcID,
				Code:         deref(svcCode),
				Name:         svcName,
				Color:        deref(svcColor),
				IsExternal:   svcExternal != nil && *svcExternal,
				Jurisdiction: req.Jurisdiction,
				Group:        req.Group,
			}
			if svcSLA != nil {
				req.Service.SLA = &domain.SLA{TTR: *svcSLA}
			}
		}
		if priID != nil {
			req.Priority = &domain.Priority{ID: *priID, Name: priName, Color: deref(priColor), Weight: derefInt(priWght)}
		}
		if stID != nil {
			req.Status = &domain.Status{ID: *stID, Name: stName, Color: deref(stColor), Weight: derefInt(stWght)}
		}
		if callStarted != nil || callEnded != nil {
			req.Call = &domain.Call{}
			if callStarted != nil {
				req.Call.StartedAt = *callStarted
			}
			if callEnded != nil {
				req.Call.EndedAt = *callEnded
			}
			_ = req.Call.Normalize()
		}
		if ttrMs != nil {
			req.TTR = &domain.Duration{Milliseconds: *ttrMs}
			_ = domain.ParseDuration(req.TTR)
		}
		result = append(result, req)
	}
	return result, rows.Err()
}

func ttrMillis(d *domain.Duration) *int64 {
	if d == nil {
		return nil
	}
	ms := d.Milliseconds
	return &ms
}

func nullable(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
