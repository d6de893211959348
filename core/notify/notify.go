// Package notify is the toast surface of the catalog view. State logic only sees
// the Notifier interface; front ends decide how a toast is shown.
package notify

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Level string

const (
	Info    Level = "info"
	Success Level = "success"
	Error   Level = "error"
)

type Notifier interface {
	Notify(message string, level Level)
}

// Func adapts a plain function to Notifier.
type Func func(message string, level Level)

func (f Func) Notify(message string, level Level) { f(message, level) }

// Discard drops every notification.
var Discard Notifier = Func(func(string, Level) {})

// LogNotifier writes toasts to the process log.
type LogNotifier struct {
	logger *logrus.Entry
}

func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.WithField("component", "toast")}
}

func (n *LogNotifier) Notify(message string, level Level) {
	entry := n.logger.WithField("level_hint", string(level))
	if level == Error {
		entry.Warn(message)
		return
	}
	entry.Info(message)
}

// Toast is one queued notification.
type Toast struct {
	Message   string
	Level     Level
	CreatedAt time.Time
}

// DefaultToastTTL is how long a toast stays visible.
const DefaultToastTTL = 3 * time.Second

// Queue keeps recent toasts for page renders; entries older than ttl are dropped on
// read.
type Queue struct {
	mu     sync.Mutex
	toasts []Toast
	ttl    time.Duration
	now    func() time.Time
}

func NewQueue(ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return &Queue{ttl: ttl, now: time.Now}
}

func (q *Queue) Notify(message string, level Level) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.toasts = append(q.toasts, Toast{Message: message, Level: level, CreatedAt: q.now()})
}

// Active returns the toasts that have not expired yet, oldest first.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	cutoff := q.now().Add(-q.ttl)
	kept := q.toasts[:0]
	for _, t := range q.toasts {
		if t.CreatedAt.After(cutoff) {
			kept = append(kept, t)
		}
	}
	q.toasts = kept
	out := make([]Toast, len(kept))
	copy(out, kept)
	return out
}

// Multi fans a notification out to several sinks.
type Multi []Notifier

func (m Multi) Notify(message string, level Level) {
	for _, n := range m {
		n.Notify(message, level)
	}
}
