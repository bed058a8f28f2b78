package observability

import "context"

// MultiObserver forwards each engine event to every attached sink, letting
// a deployment combine local logging with an exported destination behind a
// single Observer.
type MultiObserver struct {
	sinks []Observer
}

// NewMultiObserver combines observers into one. Nil entries are ignored.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	sinks := make([]Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			sinks = append(sinks, o)
		}
	}
	return &MultiObserver{sinks: sinks}
}

func (m *MultiObserver) OnEvent(ctx context.Context, event Event) {
	for _, o := range m.sinks {
		o.OnEvent(ctx, event)
	}
}
