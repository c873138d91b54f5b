package service

import (
	"context"
	"sync"

	"github.com/majifix/service-request/internal/domain"
	"github.com/majifix/service-request/internal/events"
	"github.com/majifix/service-request/internal/repository"
)

type fakeJurisdictions struct {
	byID    map[string]*domain.Jurisdiction
	items   []domain.Jurisdiction
	listErr error
}

func (f *fakeJurisdictions) FindByID(_ context.Context, id string) (*domain.Jurisdiction, error) {
	return f.byID[id], nil
}

func (f *fakeJurisdictions) List(context.Context) ([]domain.Jurisdiction, error) {
	return f.items, f.listErr
}

type fakeGroups struct {
	byID map[string]*domain.ServiceGroup
}

func (f *fakeGroups) FindByID(_ context.Context, id string) (*domain.ServiceGroup, error) {
	return f.byID[id], nil
}

type fakeServices struct {
	byID    map[string]*domain.Service
	items   []domain.Service
	listErr error
}

func (f *fakeServices) FindByID(_ context.Context, id string) (*domain.Service, error) {
	return f.byID[id], nil
}

func (f *fakeServices) List(context.Context) ([]domain.Service, error) {
	return f.items, f.listErr
}

type fakeStatuses struct {
	byID       map[string]*domain.Status
	defaultOne *domain.Status
	items      []domain.Status
	listErr    error
}

func (f *fakeStatuses) FindByID(_ context.Context, id string) (*domain.Status, error) {
	return f.byID[id], nil
}

func (f *fakeStatuses) FindDefault(context.Context) (*domain.Status, error) {
	return f.defaultOne, nil
}

func (f *fakeStatuses) List(context.Context) ([]domain.Status, error) {
	return f.items, f.listErr
}

type fakePriorities struct {
	byID       map[string]*domain.Priority
	defaultOne *domain.Priority
	items      []domain.Priority
	listErr    error
}

func (f *fakePriorities) FindByID(_ context.Context, id string) (*domain.Priority, error) {
	return f.byID[id], nil
}

func (f *fakePriorities) FindDefault(context.Context) (*domain.Priority, error) {
	return f.defaultOne, nil
}

func (f *fakePriorities) List(context.Context) ([]domain.Priority, error) {
	return f.items, f.listErr
}

type fakeCounter struct {
	calls [][2]string
}

func (f *fakeCounter) Generate(_ context.Context, jurisdictionCode, serviceCode string) (string, error) {
	f.calls = append(f.calls, [2]string{jurisdictionCode, serviceCode})
	return jurisdictionCode + serviceCode + "170001", nil
}

type fakeDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (f *fakeDispatcher) Publish(_ context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, event)
	return nil
}

func (f *fakeDispatcher) Subscribe(events.EventType, events.EventHandler) {}

type fakeRequests struct {
	stored  *domain.ServiceRequest
	created []*domain.ServiceRequest
	updated []*domain.ServiceRequest
}

func (f *fakeRequests) Create(_ context.Context, req *domain.ServiceRequest) error {
	f.created = append(f.created, req)
	return nil
}

func (f *fakeRequests) Update(_ context.Context, req *domain.ServiceRequest) error {
	f.updated = append(f.updated, req)
	return nil
}

func (f *fakeRequests) GetByID(context.Context, string) (*domain.ServiceRequest, error) {
	return f.stored, nil
}

func (f *fakeRequests) GetByCode(context.Context, string) (*domain.ServiceRequest, error) {
	return nil, nil
}

func (f *fakeRequests) List(context.Context, repository.ServiceRequestFilter) ([]domain.ServiceRequest, error) {
	return nil, nil
}

func (f *fakeRequests) Delete(context.Context, string) error {
	return nil
}

type fakeReports struct {
	total      int64
	resolved   int64
	perStatus  []repository.NamedCount
	unresolved map[repository.SummaryDimension]map[string]int64
}

func (f *fakeReports) Total(context.Context, repository.Criteria) (int64, error) {
	return f.total, nil
}

func (f *fakeReports) CountResolved(context.Context, repository.Criteria) (int64, error) {
	return f.resolved, nil
}

func (f *fakeReports) CountUnResolved(context.Context, repository.Criteria) (int64, error) {
	return f.total - f.resolved, nil
}

func (f *fakeReports) CountPerJurisdiction(context.Context, repository.Criteria) ([]repository.NamedCount, error) {
	return nil, nil
}

func (f *fakeReports) CountPerMethod(context.Context, repository.Criteria) ([]repository.NamedCount, error) {
	return nil, nil
}

func (f *fakeReports) CountPerGroup(context.Context, repository.Criteria) ([]repository.NamedCount, error) {
	return nil, nil
}

func (f *fakeReports) CountPerService(context.Context, repository.Criteria) ([]repository.NamedCount, error) {
	return nil, nil
}

func (f *fakeReports) CountPerOperator(context.Context, repository.Criteria) ([]repository.NamedCount, error) {
	return nil, nil
}

func (f *fakeReports) CountPerStatus(context.Context, repository.Criteria) ([]repository.NamedCount, error) {
	return f.perStatus, nil
}

func (f *fakeReports) CountPerPriority(context.Context, repository.Criteria) ([]repository.NamedCount, error) {
	return nil, nil
}

func (f *fakeReports) AverageCallDuration(context.Context, repository.Criteria) (*domain.Duration, error) {
	d := &domain.Duration{Milliseconds: 60000}
	return d, domain.ParseDuration(d)
}

func (f *fakeReports) Standings(context.Context, repository.Criteria) ([]repository.Standing, error) {
	return nil, nil
}

func (f *fakeReports) CountUnresolvedFor(_ context.Context, dim repository.SummaryDimension, id string, _ repository.Criteria) (int64, error) {
	return f.unresolved[dim][id], nil
}

func (f *fakeReports) GetPhones(context.Context, repository.Criteria) ([]string, error) {
	return []string{"255714000111"}, nil
}
