package paramform

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pigstimer/internal/core/distribution"
)

func newTestForm(t *testing.T) (*Form, *distribution.Editor) {
	t.Helper()
	test.NewTempApp(t)
	editor, err := distribution.NewEditor(distribution.Bounds{Min: 1, Mean: 5, Max: 10})
	require.NoError(t, err)
	return New(editor), editor
}

func TestForm_InitialValues(t *testing.T) {
	form, _ := newTestForm(t)

	assert.Equal(t, "1", form.entries[distribution.FieldMin].Text)
	assert.Equal(t, "5", form.entries[distribution.FieldMean].Text)
	assert.Equal(t, "10", form.entries[distribution.FieldMax].Text)
	assert.Equal(t, "μ 1.00", form.location.Text)
	assert.Equal(t, "σ 7.20", form.scale.Text)
	assert.Equal(t, "ξ -0.800", form.shape.Text)
	assert.Equal(t, "0 – 4.9", form.hints[distribution.FieldMin].Text)
	assert.Equal(t, "≥ 5.1", form.hints[distribution.FieldMax].Text)
}

func TestForm_SubmitAccepted(t *testing.T) {
	form, editor := newTestForm(t)
	var published []distribution.Parameters
	editor.SetOnChange(func(_ distribution.Bounds, params distribution.Parameters) {
		published = append(published, params)
	})

	mean := form.entries[distribution.FieldMean]
	mean.SetText("3.04")
	mean.OnSubmitted(mean.Text)

	assert.Equal(t, "3", mean.Text)
	assert.Len(t, published, 1)
	assert.Equal(t, "0 – 2.9", form.hints[distribution.FieldMin].Text)
}

func TestForm_FocusLostRejectsInvalid(t *testing.T) {
	form, editor := newTestForm(t)

	minEntry := form.entries[distribution.FieldMin]
	minEntry.SetText("7")
	assert.Error(t, minEntry.Validate())
	minEntry.FocusLost()

	assert.Equal(t, "1", minEntry.Text)
	assert.Equal(t, distribution.Bounds{Min: 1, Mean: 5, Max: 10}, editor.Bounds())
}

func TestForm_ValidatorsCheckTheirOwnField(t *testing.T) {
	form, _ := newTestForm(t)

	tests := []struct {
		field distribution.Field
		good  string
		bad   string
	}{
		{field: distribution.FieldMin, good: "4.9", bad: "5"},
		{field: distribution.FieldMean, good: "1.1", bad: "1"},
		{field: distribution.FieldMax, good: "5.1", bad: "5"},
	}
	for _, tt := range tests {
		t.Run(tt.field.String(), func(t *testing.T) {
			validator := form.entries[tt.field].Validator
			assert.NoError(t, validator(tt.good))
			assert.ErrorIs(t, validator(tt.bad), distribution.ErrOutOfRange)
		})
	}
}

func TestForm_EscapeReverts(t *testing.T) {
	form, _ := newTestForm(t)

	maxEntry := form.entries[distribution.FieldMax]
	maxEntry.SetText("abc")
	maxEntry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})

	assert.Equal(t, "10", maxEntry.Text)
	assert.NoError(t, maxEntry.Validate())
}

func TestFormGrid_MinSize(t *testing.T) {
	form, _ := newTestForm(t)
	size := form.Content().MinSize()

	assert.Greater(t, size.Width, formMinEntryW)
	assert.Greater(t, size.Height, float32(0))
}
