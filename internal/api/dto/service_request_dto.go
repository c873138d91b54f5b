package dto

import (
	"time"

	"github.com/majifix/service-request/internal/domain"
)

// ReporterPayload describes the reporting civilian.
type ReporterPayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Account string `json:"account,omitempty"`
}

// MethodPayload describes how the issue reached the system.
type MethodPayload struct {
	Name      string `json:"name"`
	Workspace string `json:"workspace,omitempty"`
}

// CallPayload carries the call center timestamps.
type CallPayload struct {
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"`
}

// AttachmentPayload describes one attached file.
type AttachmentPayload struct {
	Name    string `json:"name"`
	Caption string `json:"caption,omitempty"`
	Content string `json:"content,omitempty"`
	URL     string `json:"url,omitempty"`
	Mime    string `json:"mime,omitempty"`
	Storage string `json:"storage,omitempty"`
}

// ChangeLogPayload describes one history entry to append.
type ChangeLogPayload struct {
	Status       string `json:"status,omitempty"`
	Priority     string `json:"priority,omitempty"`
	Assignee     string `json:"assignee,omitempty"`
	Changer      string `json:"changer,omitempty"`
	Comment      string `json:"comment,omitempty"`
	ShouldNotify bool   `json:"shouldNotify,omitempty"`
	Visibility   string `json:"visibility,omitempty"`
}

// CreateServiceRequestRequest is the payload to open a request.
// Classification fields carry bare identifiers; the service resolves and
// cascades the full references.
type CreateServiceRequestRequest struct {
	Jurisdiction string              `json:"jurisdiction,omitempty"`
	Group        string              `json:"group,omitempty"`
	Service      string              `json:"service"`
	Priority     string              `json:"priority,omitempty"`
	Status       string              `json:"status,omitempty"`
	Operator     string              `json:"operator,omitempty"`
	Assignee     string              `json:"assignee,omitempty"`
	Reporter     ReporterPayload     `json:"reporter"`
	Method       MethodPayload       `json:"method"`
	Description  string              `json:"description,omitempty"`
	Address      string              `json:"address,omitempty"`
	Longitude    *float64            `json:"longitude,omitempty"`
	Latitude     *float64            `json:"latitude,omitempty"`
	Call         *CallPayload        `json:"call,omitempty"`
	Attachments  []AttachmentPayload `json:"attachments,omitempty"`
	ResolvedAt   *time.Time          `json:"resolvedAt,omitempty"`
}

// UpdateServiceRequestRequest is the payload to amend a request. Nil fields
// leave the stored value untouched; changelogs are append-only.
type UpdateServiceRequestRequest struct {
	Status      *string             `json:"status,omitempty"`
	Priority    *string             `json:"priority,omitempty"`
	Assignee    *string             `json:"assignee,omitempty"`
	Operator    *string             `json:"operator,omitempty"`
	Description *string             `json:"description,omitempty"`
	Address     *string             `json:"address,omitempty"`
	Longitude   *float64            `json:"longitude,omitempty"`
	Latitude    *float64            `json:"latitude,omitempty"`
	Attachments []AttachmentPayload `json:"attachments,omitempty"`
	ChangeLogs  []ChangeLogPayload  `json:"changelogs,omitempty"`
	ResolvedAt  *time.Time          `json:"resolvedAt,omitempty"`
}

// ToDomain converts the create payload into a fresh request aggregate with
// shell classification references.
func (r *CreateServiceRequestRequest) ToDomain() *domain.ServiceRequest {
	req := &domain.ServiceRequest{
		Jurisdiction: shellJurisdiction(r.Jurisdiction),
		Group:        shellGroup(r.Group),
		Service:      shellService(r.Service),
		Priority:     shellPriority(r.Priority),
		Status:       shellStatus(r.Status),
		Operator:     shellParty(r.Operator),
		Assignee:     shellParty(r.Assignee),
		Reporter: domain.Reporter{
			Name:    r.Reporter.Name,
			Phone:   r.Reporter.Phone,
			Email:   r.Reporter.Email,
			Account: r.Reporter.Account,
		},
		Method: domain.ContactMethod{
			Name:      domain.ContactMethodName(r.Method.Name),
			Workspace: r.Method.Workspace,
		},
		Description: r.Description,
		Address:     r.Address,
		ResolvedAt:  r.ResolvedAt,
	}
	if r.Longitude != nil && r.Latitude != nil {
		req.Location = domain.NewPoint(*r.Longitude, *r.Latitude)
	}
	if r.Call != nil {
		req.Call = &domain.Call{StartedAt: r.Call.StartedAt, EndedAt: r.Call.EndedAt}
	}
	for _, att := range r.Attachments {
		req.Attachments = append(req.Attachments, toMedia(att))
	}
	return req
}

// ApplyTo layers the update payload onto an existing request.
func (r *UpdateServiceRequestRequest) ApplyTo(req *domain.ServiceRequest) {
	if r.Status != nil {
		req.Status = shellStatus(*r.Status)
	}
	if r.Priority != nil {
		req.Priority = shellPriority(*r.Priority)
	}
	if r.Assignee != nil {
		req.Assignee = shellParty(*r.Assignee)
	}
	if r.Operator != nil {
		req.Operator = shellParty(*r.Operator)
	}
	if r.Description != nil {
		req.Description = *r.Description
	}
	if r.Address != nil {
		req.Address = *r.Address
	}
	if r.Longitude != nil && r.Latitude != nil {
		req.Location = domain.NewPoint(*r.Longitude, *r.Latitude)
	}
	for _, att := range r.Attachments {
		req.Attachments = append(req.Attachments, toMedia(att))
	}
	for _, entry := range r.ChangeLogs {
		req.ChangeLogs = append(req.ChangeLogs, domain.ChangeLog{
			Status:       shellStatus(entry.Status),
			Priority:     shellPriority(entry.Priority),
			Assignee:     shellParty(entry.Assignee),
			Changer:      shellParty(entry.Changer),
			Comment:      entry.Comment,
			ShouldNotify: entry.ShouldNotify,
			Visibility:   domain.Visibility(entry.Visibility),
		})
	}
	if r.ResolvedAt != nil {
		req.ResolvedAt = r.ResolvedAt
	}
}

func toMedia(att AttachmentPayload) domain.Media {
	return domain.Media{
		Name:    att.Name,
		Caption: att.Caption,
		Content: att.Content,
		URL:     att.URL,
		Mime:    att.Mime,
		Storage: domain.MediaStorage(att.Storage),
	}
}

func shellJurisdiction(id string) *domain.Jurisdiction {
	if id == "" {
		return nil
	}
	return &domain.Jurisdiction{ID: id}
}

func shellGroup(id string) *domain.ServiceGroup {
	if id == "" {
		return nil
	}
	return &domain.ServiceGroup{ID: id}
}

func shellService(id string) *domain.Service {
	if id == "" {
		return nil
	}
	return &domain.Service{ID: id}
}

func shellPriority(id string) *domain.Priority {
	if id == "" {
		return nil
	}
	return &domain.Priority{ID: id}
}

func shellStatus(id string) *domain.Status {
	if id == "" {
		return nil
	}
	return &domain.Status{ID: id}
}

func shellParty(id string) *domain.Party {
	if id == "" {
		return nil
	}
	return &domain.Party{ID: id}
}
