package distribution

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
)

var (
	// ErrNotNumeric indicates a field value that does not parse as a number.
	ErrNotNumeric = errors.New("value is not a number")
	// ErrOutOfRange indicates a field value outside the range allowed by the other fields.
	ErrOutOfRange = errors.New("value out of range")
)

// Field identifies one of the three editable bounds.
type Field int

const (
	FieldMin Field = iota
	FieldMean
	FieldMax
)

func (field Field) String() string {
	switch field {
	case FieldMin:
		return "min"
	case FieldMean:
		return "mean"
	case FieldMax:
		return "max"
	default:
		return "unknown"
	}
}

// Range is the closed interval a field may take.
type Range struct {
	Low  float64
	High float64
}

// Contains reports whether value lies inside the range.
func (r Range) Contains(value float64) bool {
	return value >= r.Low-epsilon && value <= r.High+epsilon
}

// Editor keeps the last accepted bounds and validates edits against them.
type Editor struct {
	mu       sync.Mutex
	lastGood Bounds
	params   Parameters
	onChange func(Bounds, Parameters)
}

// NewEditor creates an editor seeded with initial bounds.
func NewEditor(initial Bounds) (*Editor, error) {
	initial = initial.Rounded()
	if initial.Min < 0 {
		return nil, fmt.Errorf("new editor: %w: min %.1f is negative", ErrInvalidBounds, initial.Min)
	}
	params, err := Derive(initial)
	if err != nil {
		return nil, fmt.Errorf("new editor: %w", err)
	}
	return &Editor{lastGood: initial, params: params}, nil
}

// SetOnChange registers the observer notified after each accepted edit.
func (editor *Editor) SetOnChange(handler func(Bounds, Parameters)) {
	editor.mu.Lock()
	defer editor.mu.Unlock()
	editor.onChange = handler
}

// Bounds returns the last accepted bounds.
func (editor *Editor) Bounds() Bounds {
	editor.mu.Lock()
	defer editor.mu.Unlock()
	return editor.lastGood
}

// Parameters returns the parameters derived from the last accepted bounds.
func (editor *Editor) Parameters() Parameters {
	editor.mu.Lock()
	defer editor.mu.Unlock()
	return editor.params
}

// Range returns the editable range of field given the other two fields.
func (editor *Editor) Range(field Field) Range {
	editor.mu.Lock()
	defer editor.mu.Unlock()
	return rangeFor(editor.lastGood, field)
}

// Check validates text for field without committing it.
func (editor *Editor) Check(field Field, text string) error {
	value, err := parseValue(text)
	if err != nil {
		return err
	}
	editor.mu.Lock()
	allowed := rangeFor(editor.lastGood, field)
	editor.mu.Unlock()
	if !allowed.Contains(value) {
		return fmt.Errorf("%w: %s must be within %s", ErrOutOfRange, field, formatRange(allowed))
	}
	return nil
}

// Commit accepts text for field when valid and returns the normalised text.
//
// Rejected edits return the last good text and false.
func (editor *Editor) Commit(field Field, text string) (string, bool) {
	editor.mu.Lock()
	value, err := parseValue(text)
	if err != nil || !rangeFor(editor.lastGood, field).Contains(value) {
		previous := FormatValue(valueOf(editor.lastGood, field))
		editor.mu.Unlock()
		return previous, false
	}

	next := withValue(editor.lastGood, field, value)
	params, err := Derive(next)
	if err != nil {
		previous := FormatValue(valueOf(editor.lastGood, field))
		editor.mu.Unlock()
		return previous, false
	}
	editor.lastGood = next
	editor.params = params
	handler := editor.onChange
	editor.mu.Unlock()

	if handler != nil {
		handler(next, params)
	}
	return FormatValue(value), true
}

// Revert returns the last good text for field.
func (editor *Editor) Revert(field Field) string {
	editor.mu.Lock()
	defer editor.mu.Unlock()
	return FormatValue(valueOf(editor.lastGood, field))
}

// FormatValue renders a bound with at most one decimal.
func FormatValue(value float64) string {
	return strconv.FormatFloat(RoundToTenth(value), 'f', -1, 64)
}

func parseValue(text string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, text)
	}
	return RoundToTenth(value), nil
}

func rangeFor(bounds Bounds, field Field) Range {
	switch field {
	case FieldMin:
		return Range{Low: 0, High: RoundToTenth(bounds.Mean - MinSeparation)}
	case FieldMean:
		return Range{Low: RoundToTenth(bounds.Min + MinSeparation), High: RoundToTenth(bounds.Max - MinSeparation)}
	default:
		return Range{Low: RoundToTenth(bounds.Mean + MinSeparation), High: math.Inf(1)}
	}
}

func valueOf(bounds Bounds, field Field) float64 {
	switch field {
	case FieldMin:
		return bounds.Min
	case FieldMean:
		return bounds.Mean
	default:
		return bounds.Max
	}
}

func withValue(bounds Bounds, field Field, value float64) Bounds {
	switch field {
	case FieldMin:
		bounds.Min = value
	case FieldMean:
		bounds.Mean = value
	default:
		bounds.Max = value
	}
	return bounds
}

func formatRange(r Range) string {
	if math.IsInf(r.High, 1) {
		return fmt.Sprintf("[%s, ∞)", FormatValue(r.Low))
	}
	return fmt.Sprintf("[%s, %s]", FormatValue(r.Low), FormatValue(r.High))
}
