package domain

import "time"

// Point is a GeoJSON point locating where the issue happened.
type Point struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// NewPoint builds a GeoJSON point from longitude and latitude.
func NewPoint(longitude, latitude float64) *Point {
	return &Point{Type: "Point", Coordinates: [2]float64{longitude, latitude}}
}

// ServiceRequest is a civic issue (e.g. water leakage) reported by a
// civilian, tracked from reporting through resolution.
//
// Classification references may be held as bare shells (only ID set) until
// the pre-validation pipeline resolves or cascades them.
type ServiceRequest struct {
	ID           string        `json:"_id"`
	Code         string        `json:"code"`
	Jurisdiction *Jurisdiction `json:"jurisdiction,omitempty"`
	Group        *ServiceGroup `json:"group,omitempty"`
	Service      *Service      `json:"service,omitempty"`
	Priority     *Priority     `json:"priority,omitempty"`
	Status       *Status       `json:"status,omitempty"`
	Operator     *Party        `json:"operator,omitempty"`
	Assignee     *Party        `json:"assignee,omitempty"`
	Reporter     Reporter      `json:"reporter"`
	Method       ContactMethod `json:"method"`
	Description  string        `json:"description,omitempty"`
	Address      string        `json:"address,omitempty"`
	Location     *Point        `json:"location,omitempty"`
	Call         *Call         `json:"call,omitempty"`
	TTR          *Duration     `json:"ttr,omitempty"`
	Attachments  []Media       `json:"attachments,omitempty"`
	ChangeLogs   []ChangeLog   `json:"changelogs,omitempty"`
	ExpectedAt   *time.Time    `json:"expectedAt,omitempty"`
	ResolvedAt   *time.Time    `json:"resolvedAt,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// IsResolved reports whether the request has a resolution time recorded.
func (r *ServiceRequest) IsResolved() bool {
	return r.ResolvedAt != nil && !r.ResolvedAt.IsZero()
}
