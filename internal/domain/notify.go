package domain

// NotifyKind classifies user-facing notifications
type NotifyKind int

const (
	NotifyInfo NotifyKind = iota
	NotifyFailure
)

// String returns the lowercase kind name
func (k NotifyKind) String() string {
	switch k {
	case NotifyFailure:
		return "failure"
	default:
		return "info"
	}
}

// Notifier receives fire-and-forget user notifications.
type Notifier interface {
	Notify(kind NotifyKind, message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(kind NotifyKind, message string)

// Notify calls f(kind, message).
func (f NotifierFunc) Notify(kind NotifyKind, message string) { f(kind, message) }

// NoOpNotifier discards notifications (for testing/batch operations).
type NoOpNotifier struct{}

func (NoOpNotifier) Notify(NotifyKind, string) {}
