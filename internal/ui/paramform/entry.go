package paramform

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"pigstimer/internal/core/distribution"
)

// boundEntry is a numeric entry for one distribution bound. It commits on
// Enter or focus loss and reverts on Esc.
type boundEntry struct {
	widget.Entry

	field    distribution.Field
	onCommit func(*boundEntry)
	onRevert func(*boundEntry)
}

func newBoundEntry(field distribution.Field, onCommit, onRevert func(*boundEntry)) *boundEntry {
	entry := &boundEntry{field: field, onCommit: onCommit, onRevert: onRevert}
	entry.ExtendBaseWidget(entry)
	entry.OnSubmitted = func(string) {
		entry.onCommit(entry)
	}
	return entry
}

// FocusLost implements fyne.Focusable.
func (entry *boundEntry) FocusLost() {
	entry.Entry.FocusLost()
	entry.onCommit(entry)
}

// TypedKey implements fyne.Focusable.
func (entry *boundEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape {
		entry.onRevert(entry)
		return
	}
	entry.Entry.TypedKey(key)
}
