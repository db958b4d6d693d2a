package availability

import (
	"fmt"
	"strings"
)

// DefaultSlots is the catalog used when none is configured.
var DefaultSlots = []string{
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
	"05:00 PM",
}

// SlotCatalog is the ordered set of bookable slot labels. Catalog order is
// the display and comparison order for every slot list in the system.
type SlotCatalog struct {
	labels []string
	index  map[string]int
}

func NewSlotCatalog(labels []string) (*SlotCatalog, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: empty slot catalog", ErrInvalidInput)
	}

	c := &SlotCatalog{
		labels: make([]string, 0, len(labels)),
		index:  make(map[string]int, len(labels)),
	}

	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			return nil, fmt.Errorf("%w: blank slot label", ErrInvalidInput)
		}
		if _, dup := c.index[l]; dup {
			return nil, fmt.Errorf("%w: duplicate slot label %q", ErrInvalidInput, l)
		}
		c.index[l] = len(c.labels)
		c.labels = append(c.labels, l)
	}

	return c, nil
}

// MustSlotCatalog panics on an invalid list. Meant for package-level values.
func MustSlotCatalog(labels []string) *SlotCatalog {
	c, err := NewSlotCatalog(labels)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *SlotCatalog) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

func (c *SlotCatalog) Len() int { return len(c.labels) }

func (c *SlotCatalog) Contains(label string) bool {
	_, ok := c.index[label]
	return ok
}

// Canonicalize returns the catalog labels present in slots, deduplicated and
// in catalog order, plus the labels the catalog does not know.
func (c *SlotCatalog) Canonicalize(slots []string) (valid []string, unknown []string) {
	seen := make([]bool, len(c.labels))
	for _, s := range slots {
		i, ok := c.index[s]
		if !ok {
			unknown = append(unknown, s)
			continue
		}
		seen[i] = true
	}

	valid = make([]string, 0, len(slots))
	for i, l := range c.labels {
		if seen[i] {
			valid = append(valid, l)
		}
	}
	return valid, unknown
}

// Difference returns the catalog labels not in slots, catalog order.
func (c *SlotCatalog) Difference(slots []string) []string {
	taken := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		taken[s] = struct{}{}
	}

	out := make([]string, 0, len(c.labels))
	for _, l := range c.labels {
		if _, ok := taken[l]; !ok {
			out = append(out, l)
		}
	}
	return out
}
