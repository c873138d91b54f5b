package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/majifix/service-request/internal/domain"
	"github.com/majifix/service-request/internal/repository"
)

// Overview is the aggregate operational picture: headline counts, an
// average call duration and per-dimension breakdowns.
type Overview struct {
	Total               int64                   `json:"total"`
	Resolved            int64                   `json:"resolved"`
	Unresolved          int64                   `json:"unresolved"`
	AverageCallDuration *domain.Duration        `json:"averageCallDuration,omitempty"`
	Jurisdictions       []repository.NamedCount `json:"jurisdictions"`
	Methods             []repository.NamedCount `json:"methods"`
	Groups              []repository.NamedCount `json:"groups"`
	Services            []repository.NamedCount `json:"services"`
	Operators           []repository.NamedCount `json:"operators"`
	Statuses            []repository.NamedCount `json:"statuses"`
	Priorities          []repository.NamedCount `json:"priorities"`
}

// SummaryItem carries one reference entity with its unresolved tally.
type SummaryItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code,omitempty"`
	Color  string `json:"color,omitempty"`
	Weight int    `json:"weight,omitempty"`
	Count  int64  `json:"count"`
}

// Summary breaks unresolved requests down per known reference entity,
// including entities with zero open requests.
type Summary struct {
	Jurisdictions []SummaryItem `json:"jurisdictions"`
	Services      []SummaryItem `json:"services"`
	Statuses      []SummaryItem `json:"statuses"`
	Priorities    []SummaryItem `json:"priorities"`
}

// ReportingService serves the read-only analytics endpoints.
type ReportingService struct {
	reports       repository.ReportingRepository
	jurisdictions repository.JurisdictionRepository
	services      repository.ServiceRepository
	statuses      repository.StatusRepository
	priorities    repository.PriorityRepository
	locale        string
}

// ReportingDependencies bundles collaborators for the reporting service.
type ReportingDependencies struct {
	ReportingRepo    repository.ReportingRepository
	JurisdictionRepo repository.JurisdictionRepository
	ServiceRepo      repository.ServiceRepository
	StatusRepo       repository.StatusRepository
	PriorityRepo     repository.PriorityRepository
	Locale           string
}

// NewReportingService constructs the service.
func NewReportingService(deps ReportingDependencies) *ReportingService {
	locale := deps.Locale
	if locale == "" {
		locale = domain.DefaultLocale
	}
	return &ReportingService{
		reports:       deps.ReportingRepo,
		jurisdictions: deps.JurisdictionRepo,
		services:      deps.ServiceRepo,
		statuses:      deps.StatusRepo,
		priorities:    deps.PriorityRepo,
		locale:        locale,
	}
}

// Overviews gathers the headline counts and every per-dimension breakdown
// concurrently. Any query failure fails the whole overview.
func (s *ReportingService) Overviews(ctx context.Context, criteria repository.Criteria) (*Overview, error) {
	overview := &Overview{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		overview.Total, err = s.reports.Total(gctx, criteria)
		return
	})
	g.Go(func() (err error) {
		overview.Resolved, err = s.reports.CountResolved(gctx, criteria)
		return
	})
	g.Go(func() (err error) {
		overview.Unresolved, err = s.reports.CountUnResolved(gctx, criteria)
		return
	})
	g.Go(func() (err error) {
		overview.AverageCallDuration, err = s.reports.AverageCallDuration(gctx, criteria)
		return
	})
	g.Go(func() (err error) {
		overview.Jurisdictions, err = s.reports.CountPerJurisdiction(gctx, criteria)
		return
	})
	g.Go(func() (err error) {
		overview.Methods, err = s.reports.CountPerMethod(gctx, criteria)
		return
	})
	g.Go(func() (err error) {
		overview.Groups, err = s.reports.CountPerGroup(gctx, criteria)
		return
	})
	g.Go(func() (err error) {
		overview.Services, err = s.reports.CountPerService(gctx, criteria)
		return
	})
	g.Go(func() (err error) {
		overview.Operators, err = s.reports.CountPerOperator(gctx, criteria)
		return
	})
	g.Go(func() (err error) {
		overview.Statuses, err = s.reports.CountPerStatus(gctx, criteria)
		return
	})
	g.Go(func() (err error) {
		overview.Priorities, err = s.reports.CountPerPriority(gctx, criteria)
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}

// Standings returns the cross-tabulated counts straight from storage.
func (s *ReportingService) Standings(ctx context.Context, criteria repository.Criteria) ([]repository.Standing, error) {
	return s.reports.Standings(ctx, criteria)
}

// Phones returns the distinct reporter phone numbers.
func (s *ReportingService) Phones(ctx context.Context, criteria repository.Criteria) ([]string, error) {
	return s.reports.GetPhones(ctx, criteria)
}

// Summary tallies unresolved requests per reference entity. A failing
// reference listing degrades to an empty section rather than failing the
// whole summary; counting failures still propagate.
func (s *ReportingService) Summary(ctx context.Context, criteria repository.Criteria) (*Summary, error) {
	jurisdictions, err := s.jurisdictions.List(ctx)
	if err != nil {
		jurisdictions = nil
	}
	services, err := s.services.List(ctx)
	if err != nil {
		services = nil
	}
	statuses, err := s.statuses.List(ctx)
	if err != nil {
		statuses = nil
	}
	priorities, err := s.priorities.List(ctx)
	if err != nil {
		priorities = nil
	}

	summary := &Summary{
		Jurisdictions: make([]SummaryItem, len(jurisdictions)),
		Services:      make([]SummaryItem, len(services)),
		Statuses:      make([]SummaryItem, len(statuses)),
		Priorities:    make([]SummaryItem, len(priorities)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, jurisdiction := range jurisdictions {
		summary.Jurisdictions[i] = SummaryItem{
			ID:    jurisdiction.ID,
			Name:  jurisdiction.Name,
			Code:  jurisdiction.Code,
			Color: jurisdiction.Color,
		}
		item := &summary.Jurisdictions[i]
		g.Go(func() (err error) {
			item.Count, err = s.reports.CountUnresolvedFor(gctx, repository.SummaryByJurisdiction, item.ID, criteria)
			return
		})
	}
	for i, svc := range services {
		summary.Services[i] = SummaryItem{
			ID:    svc.ID,
			Name:  svc.Name.Localized(s.locale),
			Code:  svc.Code,
			Color: svc.Color,
		}
		item := &summary.Services[i]
		g.Go(func() (err error) {
			item.Count, err = s.reports.CountUnresolvedFor(gctx, repository.SummaryByService, item.ID, criteria)
			return
		})
	}
	for i, status := range statuses {
		summary.Statuses[i] = SummaryItem{
			ID:     status.ID,
			Name:   status.Name.Localized(s.locale),
			Color:  status.Color,
			Weight: status.Weight,
		}
		item := &summary.Statuses[i]
		g.Go(func() (err error) {
			item.Count, err = s.reports.CountUnresolvedFor(gctx, repository.SummaryByStatus, item.ID, criteria)
			return
		})
	}
	for i, priority := range priorities {
		summary.Priorities[i] = SummaryItem{
			ID:     priority.ID,
			Name:   priority.Name.Localized(s.locale),
			Color:  priority.Color,
			Weight: priority.Weight,
		}
		item := &summary.Priorities[i]
		g.Go(func() (err error) {
			item.Count, err = s.reports.CountUnresolvedFor(gctx, repository.SummaryByPriority, item.ID, criteria)
			return
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
