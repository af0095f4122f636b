package notify

import "context"

// Sink receives the notifications produced for one event.
type Sink func(Notification)

// Bridge drains a single user's event channel. Every event, including ones
// that raise no notification, is followed by a refresh.
type Bridge struct {
	sink    Sink
	refresh func()
}

func NewBridge(sink Sink, refresh func()) *Bridge {
	if sink == nil {
		sink = func(Notification) {}
	}
	if refresh == nil {
		refresh = func() {}
	}
	return &Bridge{sink: sink, refresh: refresh}
}

// Run blocks until ctx is done or events is closed.
func (b *Bridge) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			b.Handle(ev)
		}
	}
}

func (b *Bridge) Handle(ev Event) {
	for _, n := range Reduce(ev) {
		b.sink(n)
	}
	b.refresh()
}
