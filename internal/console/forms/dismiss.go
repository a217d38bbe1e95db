package forms

import "sync"

// DismissSource identifies which input path asked to close a dialog. All
// sources feed the same cancel handler; none of them gets special
// treatment, and none of them asks for confirmation.
type DismissSource int

const (
	DismissCancel DismissSource = iota
	DismissEscape
	DismissBackdrop
)

func (s DismissSource) String() string {
	switch s {
	case DismissCancel:
		return "cancel"
	case DismissEscape:
		return "escape"
	case DismissBackdrop:
		return "backdrop"
	default:
		return "unknown"
	}
}

// Dismisser funnels every dismissal path of one dialog into a single cancel
// handler, invoked at most once. The draft is discarded unconditionally.
type Dismisser struct {
	once     sync.Once
	onCancel func(DismissSource)
}

func NewDismisser(onCancel func(DismissSource)) *Dismisser {
	return &Dismisser{onCancel: onCancel}
}

// Dismiss triggers the cancel handler. Repeat calls, from any source, are
// no-ops.
func (d *Dismisser) Dismiss(source DismissSource) {
	d.once.Do(func() {
		if d.onCancel != nil {
			d.onCancel(source)
		}
	})
}
