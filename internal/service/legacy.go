package service

import (
	"time"

	"github.com/majifix/service-request/internal/domain"
)

// Legacy shapes mirror the wire format consumed by older majifix clients:
// localized names flattened to a single locale and the service narrowed to
// its identifying fields.

// LegacyGroup is the flattened service group projection.
type LegacyGroup struct {
	ID    string `json:"_id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// LegacyService is the narrowed service projection.
type LegacyService struct {
	ID         string       `json:"_id"`
	Code       string       `json:"code"`
	Name       string       `json:"name"`
	Color      string       `json:"color,omitempty"`
	Group      *LegacyGroup `json:"group,omitempty"`
	IsExternal bool         `json:"isExternal"`
}

// LegacyStatus is the flattened status projection.
type LegacyStatus struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
	Weight int    `json:"weight"`
}

// LegacyPriority is the flattened priority projection.
type LegacyPriority struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
	Weight int    `json:"weight"`
}

// LegacyChangeLog is a changelog entry with flattened references.
type LegacyChangeLog struct {
	ID                  string            `json:"_id,omitempty"`
	Status              *LegacyStatus     `json:"status,omitempty"`
	Priority            *LegacyPriority   `json:"priority,omitempty"`
	Assignee            *domain.Party     `json:"assignee,omitempty"`
	Changer             *domain.Party     `json:"changer,omitempty"`
	Comment             string            `json:"comment,omitempty"`
	ShouldNotify        bool              `json:"shouldNotify"`
	WasNotificationSent bool              `json:"wasNotificationSent"`
	Visibility          domain.Visibility `json:"visibility"`
	CreatedAt           time.Time         `json:"createdAt"`
}

// LegacyServiceRequest is the full legacy wire shape of a request.
type LegacyServiceRequest struct {
	ID           string               `json:"_id"`
	Code         string               `json:"code"`
	Jurisdiction *domain.Jurisdiction `json:"jurisdiction,omitempty"`
	Group        *LegacyGroup         `json:"group,omitempty"`
	Service      *LegacyService       `json:"service,omitempty"`
	Priority     *LegacyPriority      `json:"priority,omitempty"`
	Status       *LegacyStatus        `json:"status,omitempty"`
	Operator     *domain.Party        `json:"operator,omitempty"`
	Assignee     *domain.Party        `json:"assignee,omitempty"`
	Reporter     domain.Reporter      `json:"reporter"`
	Method       domain.ContactMethod `json:"method"`
	Description  string               `json:"description,omitempty"`
	Address      string               `json:"address,omitempty"`
	Location     *domain.Point        `json:"location,omitempty"`
	Call         *domain.Call         `json:"call,omitempty"`
	TTR          *domain.Duration     `json:"ttr,omitempty"`
	Attachments  []domain.Media       `json:"attachments,omitempty"`
	ChangeLogs   []LegacyChangeLog    `json:"changelogs,omitempty"`
	ExpectedAt   *time.Time           `json:"expectedAt,omitempty"`
	ResolvedAt   *time.Time           `json:"resolvedAt,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// MapToLegacy projects a request into the legacy wire shape. The result is
// fully detached: mutating it never touches the source request.
func MapToLegacy(req *domain.ServiceRequest, locale string) *LegacyServiceRequest {
	if req == nil {
		return nil
	}
	if locale == "" {
		locale = domain.DefaultLocale
	}

	legacy := &LegacyServiceRequest{
		ID:           req.ID,
		Code:         req.Code,
		Jurisdiction: copyJurisdiction(req.Jurisdiction),
		Group:        legacyGroup(req.Group, locale),
		Service:      legacyService(req.Service, locale),
		Priority:     legacyPriority(req.Priority, locale),
		Status:       legacyStatus(req.Status, locale),
		Operator:     copyParty(req.Operator),
		Assignee:     copyParty(req.Assignee),
		Reporter:     req.Reporter,
		Method:       req.Method,
		Description:  req.Description,
		Address:      req.Address,
		CreatedAt:    req.CreatedAt,
		UpdatedAt:    req.UpdatedAt,
	}
	if req.Location != nil {
		location := *req.Location
		legacy.Location = &location
	}
	if req.Call != nil {
		call := *req.Call
		if req.Call.Duration != nil {
			duration := *req.Call.Duration
			call.Duration = &duration
		}
		legacy.Call = &call
	}
	if req.TTR != nil {
		ttr := *req.TTR
		legacy.TTR = &ttr
	}
	if len(req.Attachments) > 0 {
		legacy.Attachments = append([]domain.Media{}, req.Attachments...)
	}
	for _, entry := range req.ChangeLogs {
		legacy.ChangeLogs = append(legacy.ChangeLogs, LegacyChangeLog{
			ID:                  entry.ID,
			Status:              legacyStatus(entry.Status, locale),
			Priority:            legacyPriority(entry.Priority, locale),
			Assignee:            copyParty(entry.Assignee),
			Changer:             copyParty(entry.Changer),
			Comment:             entry.Comment,
			ShouldNotify:        entry.ShouldNotify,
			WasNotificationSent: entry.WasNotificationSent,
			Visibility:          entry.Visibility,
			CreatedAt:           entry.CreatedAt,
		})
	}
	if req.ExpectedAt != nil {
		expectedAt := *req.ExpectedAt
		legacy.ExpectedAt = &expectedAt
	}
	if req.ResolvedAt != nil {
		resolvedAt := *req.ResolvedAt
		legacy.ResolvedAt = &resolvedAt
	}
	return legacy
}

func copyJurisdiction(j *domain.Jurisdiction) *domain.Jurisdiction {
	if j == nil {
		return nil
	}
	jurisdiction := *j
	return &jurisdiction
}

func copyParty(p *domain.Party) *domain.Party {
	if p == nil {
		return nil
	}
	party := *p
	return &party
}

func legacyGroup(g *domain.ServiceGroup, locale string) *LegacyGroup {
	if g == nil {
		return nil
	}
	return &LegacyGroup{
		ID:    g.ID,
		Code:  g.Code,
		Name:  g.Name.Localized(locale),
		Color: g.Color,
	}
}

func legacyService(s *domain.Service, locale string) *LegacyService {
	if s == nil {
		return nil
	}
	return &LegacyService{
		ID:         s.ID,
		Code:       s.Code,
		Name:       s.Name.Localized(locale),
		Color:      s.Color,
		Group:      legacyGroup(s.Group, locale),
		IsExternal: s.IsExternal,
	}
}

func legacyStatus(s *domain.Status, locale string) *LegacyStatus {
	if s == nil {
		return nil
	}
	return &LegacyStatus{
		ID:     s.ID,
		Name:   s.Name.Localized(locale),
		Color:  s.Color,
		Weight: s.Weight,
	}
}

func legacyPriority(p *domain.Priority, locale string) *LegacyPriority {
	if p == nil {
		return nil
	}
	return &LegacyPriority{
		ID:     p.ID,
		Name:   p.Name.Localized(locale),
		Color:  p.Color,
		Weight: p.Weight,
	}
}
