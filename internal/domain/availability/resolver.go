package availability

// Resolution is the effective slot partition of one calendar day.
type Resolution struct {
	Date           DateKey  `json:"date"`
	AvailableSlots []string `json:"availableSlots"`
	BusySlots      []string `json:"busySlots"`
	IsBlocked      bool     `json:"isBlocked"`
	TotalSlots     int      `json:"totalSlots"`
	AvailableCount int      `json:"availableCount"`
	Notes          *string  `json:"notes"`
}

// Resolve computes the partition for key given its override, which may be
// nil. It has no side effects.
func Resolve(catalog *SlotCatalog, key DateKey, override *Override) Resolution {
	res := Resolution{
		Date:       key,
		TotalSlots: catalog.Len(),
	}

	switch {
	case override == nil:
		res.AvailableSlots = catalog.Labels()
		res.BusySlots = []string{}

	case override.IsBlocked:
		res.AvailableSlots = []string{}
		res.BusySlots = catalog.Labels()
		res.IsBlocked = true
		res.Notes = notesOf(override)

	default:
		// stored labels outside the catalog are ignored
		res.AvailableSlots, _ = catalog.Canonicalize(override.TimeSlots)
		res.BusySlots = catalog.Difference(res.AvailableSlots)
		res.Notes = notesOf(override)
	}

	res.AvailableCount = len(res.AvailableSlots)
	return res
}

func notesOf(o *Override) *string {
	if o.Notes == "" {
		return nil
	}
	n := o.Notes
	return &n
}
