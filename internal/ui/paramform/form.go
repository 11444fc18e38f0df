package paramform

import (
	"fmt"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pigstimer/internal/core/distribution"
)

var fields = []distribution.Field{distribution.FieldMin, distribution.FieldMean, distribution.FieldMax}

// Form edits the min, mean and max of the duration distribution and shows
// the derived parameters.
type Form struct {
	editor   *distribution.Editor
	entries  map[distribution.Field]*boundEntry
	hints    map[distribution.Field]*widget.Label
	location *widget.Label
	scale    *widget.Label
	shape    *widget.Label
	content  fyne.CanvasObject
}

// New builds the form around editor.
func New(editor *distribution.Editor) *Form {
	form := &Form{
		editor:   editor,
		entries:  make(map[distribution.Field]*boundEntry, len(fields)),
		hints:    make(map[distribution.Field]*widget.Label, len(fields)),
		location: widget.NewLabel(""),
		scale:    widget.NewLabel(""),
		shape:    widget.NewLabel(""),
	}

	rows := container.New(&formGrid{})
	for _, field := range fields {
		entry := newBoundEntry(field, form.commit, form.revert)
		entry.Validator = func(text string) error {
			return editor.Check(field, text)
		}
		entry.SetText(editor.Revert(field))

		hint := widget.NewLabel("")
		hint.Importance = widget.LowImportance

		form.entries[field] = entry
		form.hints[field] = hint
		rows.Add(widget.NewLabel(fieldTitle(field)))
		rows.Add(entry)
		rows.Add(hint)
	}

	derived := container.NewGridWithColumns(3, form.location, form.scale, form.shape)
	form.content = container.NewVBox(
		widget.NewLabelWithStyle("Duration (minutes)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		rows,
		derived,
	)

	form.refreshDerived()
	return form
}

// Content returns the form's canvas object.
func (form *Form) Content() fyne.CanvasObject {
	return form.content
}

func (form *Form) commit(entry *boundEntry) {
	text, _ := form.editor.Commit(entry.field, entry.Text)
	if entry.Text != text {
		entry.SetText(text)
	}
	form.refreshDerived()
}

func (form *Form) revert(entry *boundEntry) {
	entry.SetText(form.editor.Revert(entry.field))
	form.refreshDerived()
}

func (form *Form) refreshDerived() {
	params := form.editor.Parameters()
	form.location.SetText(fmt.Sprintf("μ %.2f", params.Location))
	form.scale.SetText(fmt.Sprintf("σ %.2f", params.Scale))
	form.shape.SetText(fmt.Sprintf("ξ %.3f", params.Shape))

	for _, field := range fields {
		form.hints[field].SetText(rangeHint(form.editor.Range(field)))
		_ = form.entries[field].Validate()
	}
}

func fieldTitle(field distribution.Field) string {
	switch field {
	case distribution.FieldMin:
		return "Min"
	case distribution.FieldMean:
		return "Mean"
	default:
		return "Max"
	}
}

func rangeHint(r distribution.Range) string {
	low := distribution.FormatValue(r.Low)
	if math.IsInf(r.High, 1) {
		return "≥ " + low
	}
	return low + " – " + distribution.FormatValue(r.High)
}
