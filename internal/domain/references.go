package domain

// Reference entities classify a service request. They are owned by separate
// collaborator services; this module only reads them through repository
// interfaces and carries resolved copies on a populated request.

// Party is an actor (operator, assignee, changer) known to the external
// party service.
type Party struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Ref returns the party identifier, tolerating nil.
func (p *Party) Ref() string {
	if p == nil {
		return ""
	}
	return p.ID
}

// Jurisdiction is the administrative area responsible for a request.
type Jurisdiction struct {
	ID    string `json:"_id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Color string `json:"color,omitempty"`
}

// ServiceGroup is a service category, e.g. Sanitation.
type ServiceGroup struct {
	ID    string          `json:"_id"`
	Code  string          `json:"code"`
	Name  LocalizedString `json:"name"`
	Color string          `json:"color,omitempty"`
}

// SLA carries the service level agreement attached to a service.
// TTR is the expected hours to resolve.
type SLA struct {
	TTR int `json:"ttr"`
}

// Service is the concrete offering a request is filed under. A populated
// service carries its own jurisdiction, group and priority, which the
// pre-validation pipeline cascades down onto the request.
type Service struct {
	ID           string          `json:"_id"`
	Code         string          `json:"code"`
	Name         LocalizedString `json:"name"`
	Color        string          `json:"color,omitempty"`
	Jurisdiction *Jurisdiction   `json:"jurisdiction,omitempty"`
	Group        *ServiceGroup   `json:"group,omitempty"`
	Priority     *Priority       `json:"priority,omitempty"`
	SLA          *SLA            `json:"sla,omitempty"`
	IsExternal   bool            `json:"isExternal"`
}

// Priority weighs a request relative to others.
type Priority struct {
	ID        string          `json:"_id"`
	Name      LocalizedString `json:"name"`
	Color     string          `json:"color,omitempty"`
	Weight    int             `json:"weight"`
	IsDefault bool            `json:"isDefault,omitempty"`
}

// Status tracks a request through its pipeline.
type Status struct {
	ID        string          `json:"_id"`
	Name      LocalizedString `json:"name"`
	Color     string          `json:"color,omitempty"`
	Weight    int             `json:"weight"`
	IsDefault bool            `json:"isDefault,omitempty"`
}

// Ref returns the jurisdiction identifier, tolerating nil.
func (j *Jurisdiction) Ref() string {
	if j == nil {
		return ""
	}
	return j.ID
}

// Ref returns the group identifier, tolerating nil.
func (g *ServiceGroup) Ref() string {
	if g == nil {
		return ""
	}
	return g.ID
}

// Ref returns the service identifier, tolerating nil.
func (s *Service) Ref() string {
	if s == nil {
		return ""
	}
	return s.ID
}

// Ref returns the priority identifier, tolerating nil.
func (p *Priority) Ref() string {
	if p == nil {
		return ""
	}
	return p.ID
}

// Ref returns the status identifier, tolerating nil.
func (s *Status) Ref() string {
	if s == nil {
		return ""
	}
	return s.ID
}
