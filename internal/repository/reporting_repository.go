package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/majifix/service-request/internal/domain"
)

// Criteria narrows reporting queries. Only jurisdiction filtering is
// supported; an empty value means all jurisdictions.
type Criteria struct {
	Jurisdiction string
}

// NamedCount is a per-group tally projecting the group display name.
type NamedCount struct {
	Name  string `json:"name"`
	Code  string `json:"code,omitempty"`
	Color string `json:"color,omitempty"`
	Count int64  `json:"count"`
}

// StandingRef projects the fields of a grouped reference entity.
type StandingRef struct {
	Name   string `json:"name"`
	Code   string `json:"code,omitempty"`
	Color  string `json:"color,omitempty"`
	Weight int    `json:"weight,omitempty"`
}

// Standing is one row of the cross-tabulated
// jurisdiction/group/service/status/priority counts.
type Standing struct {
	Jurisdiction StandingRef `json:"jurisdiction"`
	Group        StandingRef `json:"group"`
	Service      StandingRef `json:"service"`
	Status       StandingRef `json:"status"`
	Priority     StandingRef `json:"priority"`
	Count        int64       `json:"count"`
}

// SummaryDimension selects which reference a summary count keys on.
type SummaryDimension string

const (
	SummaryByService      SummaryDimension = "service"
	SummaryByStatus       SummaryDimension = "status"
	SummaryByPriority     SummaryDimension = "priority"
	SummaryByJurisdiction SummaryDimension = "jurisdiction"
)

var summaryColumns = map[SummaryDimension]string{
	SummaryByService:      "service_id",
	SummaryByStatus:       "status_id",
	SummaryByPriority:     "priority_id",
	SummaryByJurisdiction: "jurisdiction_id",
}

// ReportingRepository runs the read-only aggregations over persisted
// service requests. All queries are side-effect free; failures propagate
// unchanged.
type ReportingRepository interface {
	Total(ctx context.Context, criteria Criteria) (int64, error)
	CountResolved(ctx context.Context, criteria Criteria) (int64, error)
	CountUnResolved(ctx context.Context, criteria Criteria) (int64, error)
	CountPerJurisdiction(ctx context.Context, criteria Criteria) ([]NamedCount, error)
	CountPerMethod(ctx context.Context, criteria Criteria) ([]NamedCount, error)
	CountPerGroup(ctx context.Context, criteria Criteria) ([]NamedCount, error)
	CountPerService(ctx context.Context, criteria Criteria) ([]NamedCount, error)
	CountPerOperator(ctx context.Context, criteria Criteria) ([]NamedCount, error)
	CountPerStatus(ctx context.Context, criteria Criteria) ([]NamedCount, error)
	CountPerPriority(ctx context.Context, criteria Criteria) ([]NamedCount, error)
	AverageCallDuration(ctx context.Context, criteria Criteria) (*domain.Duration, error)
	Standings(ctx context.Context, criteria Criteria) ([]Standing, error)
	CountUnresolvedFor(ctx context.Context, dim SummaryDimension, id string, criteria Criteria) (int64, error)
	GetPhones(ctx context.Context, criteria Criteria) ([]string, error)
}

type reportingRepository struct {
	pool   *pgxpool.Pool
	locale string
}

// NewReportingRepository instantiates the repository. Localized reference
// names are projected in the given locale.
func NewReportingRepository(pool *pgxpool.Pool, locale string) ReportingRepository {
	if locale == "" {
		locale = domain.DefaultLocale
	}
	return &reportingRepository{pool: pool, locale: locale}
}

func (r *reportingRepository) where(criteria Criteria, args *[]any) string {
	clause := "1=1"
	if criteria.Jurisdiction != "" {
		*args = append(*args, criteria.Jurisdiction)
		clause += fmt.Sprintf(" AND r.jurisdiction_id=$%d", len(*args))
	}
	return clause
}

func (r *reportingRepository) count(ctx context.Context, condition string, criteria Criteria) (int64, error) {
	args := []any{}
	where := r.where(criteria, &args)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM service_requests r WHERE %s AND %s`, where, condition)
	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *reportingRepository) Total(ctx context.Context, criteria Criteria) (int64, error) {
	return r.count(ctx, "TRUE", criteria)
}

func (r *reportingRepository) CountResolved(ctx context.Context, criteria Criteria) (int64, error) {
	return r.count(ctx, "r.resolved_at IS NOT NULL", criteria)
}

func (r *reportingRepository) CountUnResolved(ctx context.Context, criteria Criteria) (int64, error) {
	return r.count(ctx, "r.resolved_at IS NULL", criteria)
}

func (r *reportingRepository) groupBy(ctx context.Context, projection, joins, grouping string, criteria Criteria) ([]NamedCount, error) {
	args := []any{}
	where := r.where(criteria, &args)
	query := fmt.Sprintf(`
        SELECT %s, COUNT(*) AS count
        FROM service_requests r
        %s
        WHERE %s
        GROUP BY %s
        ORDER BY count DESC`, projection, joins, where, grouping)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []NamedCount
	for rows.Next() {
		var (
			item  NamedCount
			name  *string
			code  *string
			color *string
		)
		if err := rows.Scan(&name, &code, &color, &item.Count); err != nil {
			return nil, err
		}
		item.Name = deref(name)
		item.Code = deref(code)
		item.Color = deref(color)
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *reportingRepository) CountPerJurisdiction(ctx context.Context, criteria Criteria) ([]NamedCount, error) {
	return r.groupBy(ctx,
		"j.name, j.code, j.color",
		"LEFT JOIN jurisdictions j ON j.id = r.jurisdiction_id",
		"j.name, j.code, j.color", criteria)
}

func (r *reportingRepository) CountPerMethod(ctx context.Context, criteria Criteria) ([]NamedCount, error) {
	return r.groupBy(ctx,
		"r.method_name, NULL::text, NULL::text",
		"", "r.method_name", criteria)
}

func (r *reportingRepository) CountPerGroup(ctx context.Context, criteria Criteria) ([]NamedCount, error) {
	return r.groupBy(ctx,
		fmt.Sprintf("g.name->>'%s', g.code, g.color", r.locale),
		"LEFT JOIN service_groups g ON g.id = r.group_id",
		fmt.Sprintf("g.name->>'%s', g.code, g.color", r.locale), criteria)
}

func (r *reportingRepository) CountPerService(ctx context.Context, criteria Criteria) ([]NamedCount, error) {
	return r.groupBy(ctx,
		fmt.Sprintf("s.name->>'%s', s.code, s.color", r.locale),
		"LEFT JOIN services s ON s.id = r.service_id",
		fmt.Sprintf("s.name->>'%s', s.code, s.color", r.locale), criteria)
}

func (r *reportingRepository) CountPerOperator(ctx context.Context, criteria Criteria) ([]NamedCount, error) {
	return r.groupBy(ctx,
		"r.operator->>'name', NULL::text, NULL::text",
		"", "r.operator->>'name'", criteria)
}

func (r *reportingRepository) CountPerStatus(ctx context.Context, criteria Criteria) ([]NamedCount, error) {
	return r.groupBy(ctx,
		fmt.Sprintf("st.name->>'%s', NULL::text, st.color", r.locale),
		"LEFT JOIN statuses st ON st.id = r.status_id",
		fmt.Sprintf("st.name->>'%s', st.color", r.locale), criteria)
}

func (r *reportingRepository) CountPerPriority(ctx context.Context, criteria Criteria) ([]NamedCount, error) {
	return r.groupBy(ctx,
		fmt.Sprintf("p.name->>'%s', NULL::text, p.color", r.locale),
		"LEFT JOIN priorities p ON p.id = r.priority_id",
		fmt.Sprintf("p.name->>'%s', p.color", r.locale), criteria)
}

// AverageCallDuration computes the mean call duration across matching
// requests, returned as a decomposed duration.
func (r *reportingRepository) AverageCallDuration(ctx context.Context, criteria Criteria) (*domain.Duration, error) {
	args := []any{}
	where := r.where(criteria, &args)
	query := fmt.Sprintf(`
        SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (r.call_ended_at - r.call_started_at)) * 1000), 0)
        FROM service_requests r
        WHERE %s AND r.call_started_at IS NOT NULL AND r.call_ended_at IS NOT NULL`, where)

	var avg float64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&avg); err != nil {
		return nil, err
	}
	duration := &domain.Duration{Milliseconds: int64(avg)}
	if err := domain.ParseDuration(duration); err != nil {
		return nil, err
	}
	return duration, nil
}

func (r *reportingRepository) Standings(ctx context.Context, criteria Criteria) ([]Standing, error) {
	args := []any{}
	where := r.where(criteria, &args)
	query := fmt.Sprintf(`
        SELECT j.name, j.code, j.color,
               g.name->>'%[1]s', g.code, g.color,
               s.name->>'%[1]s', s.code, s.color,
               st.name->>'%[1]s', st.color, st.weight,
               p.name->>'%[1]s', p.color, p.weight,
               COUNT(*) AS count
        FROM service_requests r
        LEFT JOIN jurisdictions j ON j.id = r.jurisdiction_id
        LEFT JOIN service_groups g ON g.id = r.group_id
        LEFT JOIN services s ON s.id = r.service_id
        LEFT JOIN statuses st ON st.id = r.status_id
        LEFT JOIN priorities p ON p.id = r.priority_id
        WHERE %[2]s
        GROUP BY j.name, j.code, j.color,
                 g.name->>'%[1]s', g.code, g.color,
                 s.name->>'%[1]s', s.code, s.color,
                 st.name->>'%[1]s', st.color, st.weight,
                 p.name->>'%[1]s', p.color, p.weight
        ORDER BY count DESC`, r.locale, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Standing
	for rows.Next() {
		var (
			standing                   Standing
			jurName, jurCode, jurColor *string
			grpName, grpCode, grpColor *string
			svcName, svcCode, svcColor *string
			stName, stColor            *string
			stWeight                   *int
			priName, priColor          *string
			priWeight                  *int
		)
		if err := rows.Scan(
			&jurName, &jurCode, &jurColor,
			&grpName, &grpCode, &grpColor,
			&svcName, &svcCode, &svcColor,
			&stName, &stColor, &stWeight,
			&priName, &priColor, &priWeight,
			&standing.Count,
		); err != nil {
			return nil, err
		}
		standing.Jurisdiction = StandingRef{Name: deref(jurName), Code: deref(jurCode), Color: deref(jurColor)}
		standing.Group = StandingRef{Name: deref(grpName), Code: deref(grpCode), Color: deref(grpColor)}
		standing.Service = StandingRef{Name: deref(svcName), Code: deref(svcCode), Color: deref(svcColor)}
		standing.Status = StandingRef{Name: deref(stName), Color: deref(stColor), Weight: derefInt(stWeight)}
		standing.Priority = StandingRef{Name: deref(priName), Color: deref(priColor), Weight: derefInt(priWeight)}
		result = append(result, standing)
	}
	return result, rows.Err()
}

// CountUnresolvedFor tallies unresolved requests referencing one entity.
func (r *reportingRepository) CountUnresolvedFor(ctx context.Context, dim SummaryDimension, id string, criteria Criteria) (int64, error) {
	column, ok := summaryColumns[dim]
	if !ok {
		return 0, fmt.Errorf("unknown summary dimension: %s", dim)
	}
	args := []any{id}
	where := r.where(criteria, &args)
	query := fmt.Sprintf(
		`SELECT COUNT(*) FROM service_requests r WHERE r.%s=$1 AND r.resolved_at IS NULL AND %s`,
		column, where)
	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// GetPhones pulls the distinct reporter phone numbers matching criteria,
// with empties removed.
func (r *reportingRepository) GetPhones(ctx context.Context, criteria Criteria) ([]string, error) {
	args := []any{}
	where := r.where(criteria, &args)
	query := fmt.Sprintf(`
        SELECT DISTINCT r.reporter->>'phone'
        FROM service_requests r
        WHERE %s AND COALESCE(r.reporter->>'phone', '') <> ''
        ORDER BY 1`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var phones []string
	for rows.Next() {
		var phone string
		if err := rows.Scan(&phone); err != nil {
			return nil, err
		}
		phones = append(phones, phone)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return phones, nil
}
