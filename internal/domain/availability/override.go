package availability

import (
	"slices"
	"time"
)

// Override is a per-date deviation from the default, fully available state.
type Override struct {
	ID        string    `json:"id"`
	Date      DateKey   `json:"date"`
	TimeSlots []string  `json:"timeSlots"`
	IsBlocked bool      `json:"isBlocked"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OverrideInput is the replaceable content of an Override.
type OverrideInput struct {
	TimeSlots []string
	IsBlocked bool
	Notes     string
}

// Input returns the replaceable content of o.
func (o *Override) Input() OverrideInput {
	return OverrideInput{
		TimeSlots: slices.Clone(o.TimeSlots),
		IsBlocked: o.IsBlocked,
		Notes:     o.Notes,
	}
}

// SameContent reports whether writing in over o would change nothing.
func (o *Override) SameContent(in OverrideInput) bool {
	return o.IsBlocked == in.IsBlocked &&
		o.Notes == in.Notes &&
		slices.Equal(o.TimeSlots, in.TimeSlots)
}
