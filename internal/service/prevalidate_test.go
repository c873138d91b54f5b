package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majifix/service-request/internal/domain"
	"github.com/majifix/service-request/internal/events"
	"github.com/majifix/service-request/pkg/util"
)

func fixtureService() *domain.Service {
	return &domain.Service{
		ID:   "svc-1",
		Code: "LK",
		Name: domain.LocalizedString{"en": "Water Leakage"},
		Jurisdiction: &domain.Jurisdiction{
			ID:   "jur-1",
			Code: "IL",
			Name: "Ilala",
		},
		Group: &domain.ServiceGroup{
			ID:   "grp-1",
			Code: "WS",
			Name: domain.LocalizedString{"en": "Water Supply"},
		},
		SLA: &domain.SLA{TTR: 48},
	}
}

func newTestRequestService(svc *domain.Service) (*RequestService, *fakeCounter, *fakeRequests, *fakeDispatcher) {
	counter := &fakeCounter{}
	requests := &fakeRequests{}
	dispatcher := &fakeDispatcher{}
	jurisdictions := map[string]*domain.Jurisdiction{}
	services := map[string]*domain.Service{}
	if svc != nil {
		services[svc.ID] = svc
		if svc.Jurisdiction != nil {
			jurisdictions[svc.Jurisdiction.ID] = svc.Jurisdiction
		}
	}
	rs := NewRequestService(RequestDependencies{
		RequestRepo:      requests,
		JurisdictionRepo: &fakeJurisdictions{byID: jurisdictions},
		GroupRepo:        &fakeGroups{byID: map[string]*domain.ServiceGroup{}},
		ServiceRepo:      &fakeServices{byID: services},
		StatusRepo: &fakeStatuses{defaultOne: &domain.Status{
			ID: "status-open", Name: domain.LocalizedString{"en": "Open"}, IsDefault: true,
		}},
		PriorityRepo: &fakePriorities{defaultOne: &domain.Priority{
			ID: "priority-normal", Name: domain.LocalizedString{"en": "Normal"}, IsDefault: true,
		}},
		CodeGenerator: counter,
		Dispatcher:    dispatcher,
	})
	return rs, counter, requests, dispatcher
}

func TestPreValidateResolvesDefaults(t *testing.T) {
	rs, counter, _, _ := newTestRequestService(fixtureService())

	req := &domain.ServiceRequest{
		Service:  &domain.Service{ID: "svc-1"},
		Reporter: domain.Reporter{Phone: "255714000111"},
		Method:   domain.ContactMethod{Name: domain.MethodPhoneCall},
	}

	require.NoError(t, rs.PreValidate(context.Background(), req))

	assert.Equal(t, "ILLK170001", req.Code)
	require.Len(t, counter.calls, 1)
	assert.Equal(t, [2]string{"IL", "LK"}, counter.calls[0])

	require.NotNil(t, req.Jurisdiction)
	assert.Equal(t, "jur-1", req.Jurisdiction.ID)
	require.NotNil(t, req.Group)
	assert.Equal(t, "grp-1", req.Group.ID)
	require.NotNil(t, req.Status)
	assert.Equal(t, "status-open", req.Status.ID)
	require.NotNil(t, req.Priority)
	assert.Equal(t, "priority-normal", req.Priority.ID)

	require.NotNil(t, req.ExpectedAt)
	assert.Equal(t, req.CreatedAt.Add(48*time.Hour), *req.ExpectedAt)
}

func TestPreValidateIsIdempotent(t *testing.T) {
	rs, counter, _, _ := newTestRequestService(fixtureService())

	req := &domain.ServiceRequest{
		Service:  &domain.Service{ID: "svc-1"},
		Reporter: domain.Reporter{Phone: "255714000111"},
		Method:   domain.ContactMethod{Name: domain.MethodPhoneCall},
	}
	require.NoError(t, rs.PreValidate(context.Background(), req))
	first := *req

	require.NoError(t, rs.PreValidate(context.Background(), req))
	assert.Equal(t, first.Code, req.Code)
	assert.Equal(t, first.ExpectedAt, req.ExpectedAt)
	assert.Equal(t, first.Status, req.Status)
	assert.Equal(t, first.Priority, req.Priority)
	assert.Len(t, counter.calls, 1, "code is minted once")
}

func TestPreValidateCorrectsResolvedBeforeCreated(t *testing.T) {
	rs, _, _, _ := newTestRequestService(fixtureService())

	createdAt := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	resolvedAt := createdAt.Add(-5 * time.Second)
	req := &domain.ServiceRequest{
		Service:    &domain.Service{ID: "svc-1"},
		Reporter:   domain.Reporter{Phone: "255714000111"},
		Method:     domain.ContactMethod{Name: domain.MethodPhoneCall},
		CreatedAt:  createdAt,
		ResolvedAt: &resolvedAt,
	}

	require.NoError(t, rs.PreValidate(context.Background(), req))

	require.NotNil(t, req.ResolvedAt)
	assert.Equal(t, createdAt.Add(5*time.Second), *req.ResolvedAt)
	require.NotNil(t, req.TTR)
	assert.Equal(t, int64(5000), req.TTR.Milliseconds)
	assert.Equal(t, "5s", req.TTR.Human)
}

func TestPreValidateCascadesFromPopulatedService(t *testing.T) {
	rs, _, _, _ := newTestRequestService(fixtureService())

	svc := fixtureService()
	svc.Priority = &domain.Priority{ID: "priority-high", Weight: 5}
	req := &domain.ServiceRequest{
		Service:  svc,
		Code:     "ILLK170009",
		Status:   &domain.Status{ID: "status-open"},
		Reporter: domain.Reporter{Phone: "255714000111"},
		Method:   domain.ContactMethod{Name: domain.MethodPhoneCall},
	}

	require.NoError(t, rs.PreValidate(context.Background(), req))

	require.NotNil(t, req.Jurisdiction)
	assert.Equal(t, "jur-1", req.Jurisdiction.ID)
	require.NotNil(t, req.Priority)
	assert.Equal(t, "priority-high", req.Priority.ID)
}

func TestPreValidateUnknownServiceFails(t *testing.T) {
	rs, _, _, _ := newTestRequestService(fixtureService())

	req := &domain.ServiceRequest{
		Jurisdiction: &domain.Jurisdiction{ID: "jur-1"},
		Service:      &domain.Service{ID: "svc-missing"},
		Reporter:     domain.Reporter{Phone: "255714000111"},
		Method:       domain.ContactMethod{Name: domain.MethodPhoneCall},
	}

	err := rs.PreValidate(context.Background(), req)
	require.Error(t, err)
	domainErr := util.ToDomainError(err)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "Service Not Found", domainErr.Message)
	assert.Empty(t, req.Code)
}

func TestPreValidateAllLookupsMissingFails(t *testing.T) {
	rs, _, _, _ := newTestRequestService(nil)

	req := &domain.ServiceRequest{
		Service:  &domain.Service{ID: "svc-missing"},
		Reporter: domain.Reporter{Phone: "255714000111"},
		Method:   domain.ContactMethod{Name: domain.MethodPhoneCall},
	}

	err := rs.PreValidate(context.Background(), req)
	require.Error(t, err)
	domainErr := util.ToDomainError(err)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "Jurisdiction Not Found", domainErr.Message)
	assert.Empty(t, req.Code)
}

func TestPreValidateUnknownJurisdictionFails(t *testing.T) {
	svc := fixtureService()
	svc.Jurisdiction = nil
	rs, _, _, _ := newTestRequestService(svc)

	req := &domain.ServiceRequest{
		Jurisdiction: &domain.Jurisdiction{ID: "jur-missing"},
		Service:      &domain.Service{ID: "svc-1"},
		Reporter:     domain.Reporter{Phone: "255714000111"},
		Method:       domain.ContactMethod{Name: domain.MethodPhoneCall},
	}

	err := rs.PreValidate(context.Background(), req)
	require.Error(t, err)
	domainErr := util.ToDomainError(err)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "Jurisdiction Not Found", domainErr.Message)
}

func TestCreatePublishesEvent(t *testing.T) {
	rs, _, requests, dispatcher := newTestRequestService(fixtureService())

	req := &domain.ServiceRequest{
		Service:  &domain.Service{ID: "svc-1"},
		Reporter: domain.Reporter{Phone: "255714000111"},
		Method:   domain.ContactMethod{Name: domain.MethodPhoneCall},
	}

	created, err := rs.Create(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	require.Len(t, requests.created, 1)
	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, created.ID, dispatcher.published[0].RequestID)
	assert.Equal(t, created.Code, dispatcher.published[0].Code)
}

func TestUpdatePublishesResolvedOnTransitionOnly(t *testing.T) {
	rs, _, requests, dispatcher := newTestRequestService(fixtureService())

	createdAt := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	resolvedAt := createdAt.Add(2 * time.Hour)
	stored := &domain.ServiceRequest{
		ID:        "req-1",
		Code:      "ILLK170001",
		Service:   fixtureService(),
		Status:    &domain.Status{ID: "status-open"},
		Priority:  &domain.Priority{ID: "priority-normal"},
		Reporter:  domain.Reporter{Phone: "255714000111"},
		Method:    domain.ContactMethod{Name: domain.MethodPhoneCall},
		CreatedAt: createdAt,
	}
	requests.stored = stored

	update := *stored
	update.ResolvedAt = &resolvedAt
	_, err := rs.Update(context.Background(), &update)
	require.NoError(t, err)

	types := eventTypes(dispatcher)
	assert.Contains(t, types, events.EventRequestUpdated)
	assert.Contains(t, types, events.EventRequestResolved)

	// a later patch of the already resolved request must not re-announce
	// the resolution to partners
	requests.stored = &update
	dispatcher.published = nil
	patched := update
	patched.Address = "Mtaa wa Kwanza"
	_, err = rs.Update(context.Background(), &patched)
	require.NoError(t, err)

	types = eventTypes(dispatcher)
	assert.Contains(t, types, events.EventRequestUpdated)
	assert.NotContains(t, types, events.EventRequestResolved)
}

func eventTypes(d *fakeDispatcher) []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	types := make([]events.EventType, 0, len(d.published))
	for _, event := range d.published {
		types = append(types, event.Type)
	}
	return types
}
