package domain

import "time"

// Visibility controls who may view a changelog entry.
type Visibility string

const (
	VisibilityPublic  Visibility = "Public"
	VisibilityPrivate Visibility = "Private"
)

// ChangeLog is an append-only history entry on a service request: a status,
// priority or assignee change, or a plain comment.
type ChangeLog struct {
	ID                  string     `json:"_id,omitempty"`
	Status              *Status    `json:"status,omitempty"`
	Priority            *Priority  `json:"priority,omitempty"`
	Assignee            *Party     `json:"assignee,omitempty"`
	Changer             *Party     `json:"changer,omitempty"`
	Comment             string     `json:"comment,omitempty"`
	ShouldNotify        bool       `json:"shouldNotify"`
	WasNotificationSent bool       `json:"wasNotificationSent"`
	Visibility          Visibility `json:"visibility"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// Normalize applies changelog defaults. Status changes always notify the
// reporter and are always public viewable.
func (c *ChangeLog) Normalize() {
	if c.Visibility == "" {
		c.Visibility = VisibilityPrivate
	}
	if c.Status != nil {
		c.ShouldNotify = true
		c.Visibility = VisibilityPublic
	}
}
