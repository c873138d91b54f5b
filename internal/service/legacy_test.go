package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majifix/service-request/internal/domain"
)

func legacyFixture() *domain.ServiceRequest {
	resolvedAt := time.Date(2026, 5, 3, 8, 0, 0, 0, time.UTC)
	return &domain.ServiceRequest{
		ID:   "req-1",
		Code: "ILLK170001",
		Jurisdiction: &domain.Jurisdiction{
			ID: "jur-1", Code: "IL", Name: "Ilala",
		},
		Group: &domain.ServiceGroup{
			ID: "grp-1", Code: "WS",
			Name: domain.LocalizedString{"en": "Water Supply", "sw": "Huduma ya Maji"},
		},
		Service: &domain.Service{
			ID: "svc-1", Code: "LK",
			Name: domain.LocalizedString{"en": "Water Leakage"},
			Group: &domain.ServiceGroup{
				ID: "grp-1", Code: "WS",
				Name: domain.LocalizedString{"en": "Water Supply"},
			},
			SLA:        &domain.SLA{TTR: 48},
			IsExternal: true,
		},
		Status: &domain.Status{
			ID: "status-open", Name: domain.LocalizedString{"en": "Open"}, Weight: -5,
		},
		Priority: &domain.Priority{
			ID: "priority-normal", Name: domain.LocalizedString{"en": "Normal"},
		},
		Reporter: domain.Reporter{Name: "Juma", Phone: "255714000111"},
		Method:   domain.ContactMethod{Name: domain.MethodPhoneCall},
		TTR:      &domain.Duration{Milliseconds: 5000, Human: "5s"},
		ChangeLogs: []domain.ChangeLog{{
			ID:         "log-1",
			Status:     &domain.Status{ID: "status-open", Name: domain.LocalizedString{"en": "Open"}},
			Visibility: domain.VisibilityPublic,
		}},
		ResolvedAt: &resolvedAt,
		CreatedAt:  resolvedAt.Add(-48 * time.Hour),
	}
}

func TestMapToLegacyFlattensNames(t *testing.T) {
	legacy := MapToLegacy(legacyFixture(), "sw")
	require.NotNil(t, legacy)

	assert.Equal(t, "Huduma ya Maji", legacy.Group.Name)
	// missing locale entries fall back to the default locale
	assert.Equal(t, "Water Leakage", legacy.Service.Name)
	assert.Equal(t, "Open", legacy.Status.Name)
	require.Len(t, legacy.ChangeLogs, 1)
	assert.Equal(t, "Open", legacy.ChangeLogs[0].Status.Name)
}

func TestMapToLegacyNarrowsService(t *testing.T) {
	legacy := MapToLegacy(legacyFixture(), "en")
	require.NotNil(t, legacy.Service)

	assert.Equal(t, "svc-1", legacy.Service.ID)
	assert.Equal(t, "LK", legacy.Service.Code)
	assert.True(t, legacy.Service.IsExternal)
	require.NotNil(t, legacy.Service.Group)
	assert.Equal(t, "grp-1", legacy.Service.Group.ID)
}

func TestMapToLegacyDetachesFromSource(t *testing.T) {
	source := legacyFixture()
	legacy := MapToLegacy(source, "en")

	legacy.Jurisdiction.Name = "changed"
	legacy.TTR.Milliseconds = 0
	*legacy.ResolvedAt = time.Time{}
	legacy.ChangeLogs[0].Comment = "changed"

	assert.Equal(t, "Ilala", source.Jurisdiction.Name)
	assert.Equal(t, int64(5000), source.TTR.Milliseconds)
	assert.False(t, source.ResolvedAt.IsZero())
	assert.Empty(t, source.ChangeLogs[0].Comment)
}

func TestMapToLegacyNil(t *testing.T) {
	assert.Nil(t, MapToLegacy(nil, "en"))
}
