package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/majifix/service-request/internal/counter"
	"github.com/majifix/service-request/internal/domain"
	"github.com/majifix/service-request/internal/events"
	"github.com/majifix/service-request/internal/repository"
	"github.com/majifix/service-request/pkg/util"
)

// RequestService coordinates service request workflows. Its heart is the
// pre-validation pipeline run before every persistence: derive the expected
// resolution deadline from the service SLA, normalize the time to resolve,
// cascade classification from the linked service, resolve missing defaults
// and mint a ticket code.
type RequestService struct {
	requests      repository.ServiceRequestRepository
	jurisdictions repository.JurisdictionRepository
	groups        repository.ServiceGroupRepository
	services      repository.ServiceRepository
	statuses      repository.StatusRepository
	priorities    repository.PriorityRepository
	codes         counter.Generator
	dispatcher    events.Dispatcher
}

// RequestDependencies bundles collaborators for the request service.
type RequestDependencies struct {
	RequestRepo      repository.ServiceRequestRepository
	JurisdictionRepo repository.JurisdictionRepository
	GroupRepo        repository.ServiceGroupRepository
	ServiceRepo      repository.ServiceRepository
	StatusRepo       repository.StatusRepository
	PriorityRepo     repository.PriorityRepository
	CodeGenerator    counter.Generator
	Dispatcher       events.Dispatcher
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests:      deps.RequestRepo,
		jurisdictions: deps.JurisdictionRepo,
		groups:        deps.GroupRepo,
		services:      deps.ServiceRepo,
		statuses:      deps.StatusRepo,
		priorities:    deps.PriorityRepo,
		codes:         deps.CodeGenerator,
		dispatcher:    deps.Dispatcher,
	}
}

// PreValidate derives the cross-field state of a request immediately before
// persistence. It is idempotent: a second run on a fully derived request
// changes nothing.
func (s *RequestService) PreValidate(ctx context.Context, req *domain.ServiceRequest) error {
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}

	if req.Call != nil {
		if err := req.Call.Normalize(); err != nil {
			return util.NewValidationError(err.Error(), nil)
		}
	}
	for i := range req.Attachments {
		req.Attachments[i].Normalize()
	}
	for i := range req.ChangeLogs {
		req.ChangeLogs[i].Normalize()
	}

	// expected resolution time from the service level agreement
	if req.ExpectedAt == nil && req.Service != nil && req.Service.SLA != nil && req.Service.SLA.TTR > 0 {
		expectedAt := req.CreatedAt.Add(time.Duration(req.Service.SLA.TTR) * time.Hour)
		req.ExpectedAt = &expectedAt
	}

	// time to resolve; resolution is never recorded before creation
	if req.ResolvedAt != nil {
		ttr := req.ResolvedAt.Sub(req.CreatedAt).Milliseconds()
		if ttr <= 0 {
			ttr = -ttr
			resolvedAt := req.CreatedAt.Add(time.Duration(ttr) * time.Millisecond)
			req.ResolvedAt = &resolvedAt
		}
		req.TTR = &domain.Duration{Milliseconds: ttr}
		if err := domain.ParseDuration(req.TTR); err != nil {
			return util.NewValidationError(err.Error(), nil)
		}
	}

	// cascade classification from the linked service
	if req.Service != nil {
		if req.Jurisdiction == nil && req.Service.Jurisdiction != nil {
			req.Jurisdiction = req.Service.Jurisdiction
		}
		if req.Group == nil && req.Service.Group != nil {
			req.Group = req.Service.Group
		}
		if req.Priority == nil && req.Service.Priority != nil {
			req.Priority = req.Service.Priority
		}
	}

	if req.Status != nil && req.Priority != nil && req.Code != "" {
		return nil
	}

	return s.resolveDefaults(ctx, req)
}

// resolveDefaults looks up the referenced jurisdiction, group and service
// together with the system default status and priority, backfills whatever
// the request is missing and mints a ticket code. All five lookups run
// concurrently; the first failure wins.
func (s *RequestService) resolveDefaults(ctx context.Context, req *domain.ServiceRequest) error {
	var (
		jurisdiction *domain.Jurisdiction
		group        *domain.ServiceGroup
		svc          *domain.Service
		status       *domain.Status
		priority     *domain.Priority
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jurisdiction, err = s.jurisdictions.FindByID(gctx, req.Jurisdiction.Ref())
		return err
	})
	g.Go(func() error {
		var err error
		group, err = s.groups.FindByID(gctx, req.Group.Ref())
		return err
	})
	g.Go(func() error {
		var err error
		svc, err = s.services.FindByID(gctx, req.Service.Ref())
		return err
	})
	g.Go(func() error {
		var err error
		status, err = s.statuses.FindDefault(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		priority, err = s.priorities.FindDefault(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if jurisdiction == nil && svc != nil {
		jurisdiction = svc.Jurisdiction
	}
	if jurisdiction == nil {
		return util.NewBadRequest("Jurisdiction Not Found")
	}
	if svc == nil {
		return util.NewBadRequest("Service Not Found")
	}

	// resolved entities replace bare shells; missing refs fall back to the
	// service's own classification, then to system defaults
	req.Service = svc
	req.Jurisdiction = jurisdiction
	if group != nil {
		req.Group = group
	} else if req.Group == nil {
		req.Group = svc.Group
	}
	if req.Priority == nil {
		req.Priority = svc.Priority
	}
	if req.Priority == nil {
		req.Priority = priority
	}
	if req.Status == nil {
		req.Status = status
	}
	if req.ExpectedAt == nil && svc.SLA != nil && svc.SLA.TTR > 0 {
		expectedAt := req.CreatedAt.Add(time.Duration(svc.SLA.TTR) * time.Hour)
		req.ExpectedAt = &expectedAt
	}

	if req.Code == "" {
		code, err := s.codes.Generate(ctx, jurisdiction.Code, svc.Code)
		if err != nil {
			return err
		}
		req.Code = strings.ToUpper(code)
	}
	return nil
}

// Create validates then persists a new service request.
func (s *RequestService) Create(ctx context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if err := s.PreValidate(ctx, req); err != nil {
		return nil, err
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventRequestCreated, req)
	return req, nil
}

// Update re-validates then persists changes to an existing request.
// New changelog entries are appended; the ticket code is never rewritten.
// The resolved event fires once, on the unresolved to resolved transition.
func (s *RequestService) Update(ctx context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	existing, err := s.requests.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	wasResolved := existing != nil && existing.IsResolved()

	if err := s.PreValidate(ctx, req); err != nil {
		return nil, err
	}
	if err := s.requests.Update(ctx, req); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventRequestUpdated, req)
	if !wasResolved && req.IsResolved() {
		s.publish(ctx, events.EventRequestResolved, req)
	}
	return req, nil
}

// Get fetches a populated request by id.
func (s *RequestService) Get(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	return s.requests.GetByID(ctx, id)
}

// GetByCode fetches a populated request by ticket code.
func (s *RequestService) GetByCode(ctx context.Context, code string) (*domain.ServiceRequest, error) {
	return s.requests.GetByCode(ctx, code)
}

// List returns requests matching the filter.
func (s *RequestService) List(ctx context.Context, filter repository.ServiceRequestFilter) ([]domain.ServiceRequest, error) {
	return s.requests.List(ctx, filter)
}

// Delete removes a request. Missing records surface the repository's own
// not-found error unchanged.
func (s *RequestService) Delete(ctx context.Context, id string) error {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requests.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.EventRequestDeleted, req)
	return nil
}

func (s *RequestService) publish(ctx context.Context, eventType events.EventType, req *domain.ServiceRequest) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		RequestID: req.ID,
		Code:      req.Code,
		Timestamp: time.Now(),
		Request:   req,
	})
}
