package alert

import (
	"sync"
	"time"
)

// Colors
const (
	ColorSuccess = "teal"
	ColorError   = "red"
)

var NowFunc = time.Now // mockable

// Alert is a transient notification shown to whoever looks at the roster.
type Alert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Color   string `json:"color"`
	Show    bool   `json:"show"`
}

func Success(title, message string) Alert {
	return Alert{Title: title, Message: message, Color: ColorSuccess, Show: true}
}

func Error(title, message string) Alert {
	return Alert{Title: title, Message: message, Color: ColorError, Show: true}
}

// Sink is anything alerts can be raised on.
type Sink interface {
	Raise(a Alert)
}

// Box holds the latest raised Alert. An alert is hidden once ttl has elapsed.
// A zero ttl keeps alerts visible until dismissed.
type Box struct {
	ttl time.Duration

	mu       sync.RWMutex
	current  Alert
	raisedAt time.Time
}

var _ Sink = (*Box)(nil)

func NewBox(ttl time.Duration) *Box {
	return &Box{ttl: ttl}
}

func (b *Box) Raise(a Alert) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = a
	b.raisedAt = NowFunc()
}

// Current returns the latest alert; Show is false once it expired or was dismissed.
func (b *Box) Current() Alert {
	b.mu.RLock()
	defer b.mu.RUnlock()
	a := b.current
	if a.Show && b.ttl > 0 && NowFunc().Sub(b.raisedAt) >= b.ttl {
		a.Show = false
	}
	return a
}

func (b *Box) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current.Show = false
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(a Alert)

func (f SinkFunc) Raise(a Alert) { f(a) }
