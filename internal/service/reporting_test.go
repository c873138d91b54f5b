package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majifix/service-request/internal/domain"
	"github.com/majifix/service-request/internal/repository"
)

func newTestReportingService(reports *fakeReports, jurisdictions *fakeJurisdictions) *ReportingService {
	return NewReportingService(ReportingDependencies{
		ReportingRepo:    reports,
		JurisdictionRepo: jurisdictions,
		ServiceRepo: &fakeServices{items: []domain.Service{{
			ID: "svc-1", Code: "LK", Name: domain.LocalizedString{"en": "Water Leakage"},
		}}},
		StatusRepo: &fakeStatuses{items: []domain.Status{{
			ID: "status-open", Name: domain.LocalizedString{"en": "Open"},
		}}},
		PriorityRepo: &fakePriorities{items: []domain.Priority{{
			ID: "priority-normal", Name: domain.LocalizedString{"en": "Normal"},
		}}},
		Locale: "en",
	})
}

func TestOverviewsCountsAddUp(t *testing.T) {
	reports := &fakeReports{
		total:    10,
		resolved: 7,
		perStatus: []repository.NamedCount{
			{Name: "Open", Count: 3},
			{Name: "Closed", Count: 7},
		},
	}
	rs := newTestReportingService(reports, &fakeJurisdictions{})

	overview, err := rs.Overviews(context.Background(), repository.Criteria{})
	require.NoError(t, err)

	assert.Equal(t, int64(10), overview.Total)
	assert.Equal(t, overview.Total, overview.Resolved+overview.Unresolved)
	assert.Len(t, overview.Statuses, 2)
	require.NotNil(t, overview.AverageCallDuration)
	assert.Equal(t, "1m", overview.AverageCallDuration.Human)
}

func TestSummaryCountsPerEntity(t *testing.T) {
	reports := &fakeReports{
		unresolved: map[repository.SummaryDimension]map[string]int64{
			repository.SummaryByJurisdiction: {"jur-1": 4},
			repository.SummaryByService:      {"svc-1": 2},
			repository.SummaryByStatus:       {"status-open": 4},
			repository.SummaryByPriority:     {"priority-normal": 1},
		},
	}
	jurisdictions := &fakeJurisdictions{items: []domain.Jurisdiction{{
		ID: "jur-1", Code: "IL", Name: "Ilala",
	}}}
	rs := newTestReportingService(reports, jurisdictions)

	summary, err := rs.Summary(context.Background(), repository.Criteria{})
	require.NoError(t, err)

	require.Len(t, summary.Jurisdictions, 1)
	assert.Equal(t, "Ilala", summary.Jurisdictions[0].Name)
	assert.Equal(t, int64(4), summary.Jurisdictions[0].Count)

	require.Len(t, summary.Services, 1)
	assert.Equal(t, "Water Leakage", summary.Services[0].Name)
	assert.Equal(t, int64(2), summary.Services[0].Count)

	require.Len(t, summary.Statuses, 1)
	assert.Equal(t, int64(4), summary.Statuses[0].Count)
	require.Len(t, summary.Priorities, 1)
	assert.Equal(t, int64(1), summary.Priorities[0].Count)
}

func TestSummaryToleratesFailedReferenceListing(t *testing.T) {
	reports := &fakeReports{unresolved: map[repository.SummaryDimension]map[string]int64{}}
	jurisdictions := &fakeJurisdictions{listErr: errors.New("jurisdiction service down")}
	rs := newTestReportingService(reports, jurisdictions)

	summary, err := rs.Summary(context.Background(), repository.Criteria{})
	require.NoError(t, err)

	assert.Empty(t, summary.Jurisdictions)
	assert.Len(t, summary.Services, 1, "other sections are unaffected")
}
