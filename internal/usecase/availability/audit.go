package availability

import "github.com/elinspetor87/ai-vision-studio-sub000/internal/audit"

func dispatch(d *audit.Dispatcher, ev audit.Event) {
	if d == nil {
		return
	}
	ev.Entity = audit.EntityAvailability
	d.Dispatch(ev)
}
