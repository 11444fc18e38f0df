package timerview

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"pigstimer/internal/core/timer"
)

const dialMinSide = float32(160)

var (
	dialFaceColor   = color.NRGBA{R: 246, G: 196, B: 200, A: 255}
	dialRimColor    = color.NRGBA{R: 196, G: 94, B: 112, A: 255}
	dialHandColor   = color.NRGBA{R: 90, G: 40, B: 52, A: 255}
	dialIdleColor   = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	dialMarkerColor = color.NRGBA{R: 90, G: 40, B: 52, A: 255}
)

// Dial draws a clock face whose hand sweeps in the current direction.
// Tapping it runs OnTapped.
type Dial struct {
	widget.BaseWidget

	OnTapped func()

	elapsed   float64
	active    bool
	direction timer.Direction
}

// NewDial creates a dial with the hand at twelve o'clock.
func NewDial(onTapped func()) *Dial {
	dial := &Dial{OnTapped: onTapped, direction: timer.Clockwise}
	dial.ExtendBaseWidget(dial)
	return dial
}

// SetProgress moves the hand to the elapsed share of the interval.
func (dial *Dial) SetProgress(elapsed float64, active bool) {
	dial.elapsed = clampFraction(elapsed)
	dial.active = active
	dial.Refresh()
}

// SetDirection changes the sweep direction.
func (dial *Dial) SetDirection(direction timer.Direction) {
	dial.direction = direction
	dial.Refresh()
}

// Tapped implements fyne.Tappable.
func (dial *Dial) Tapped(*fyne.PointEvent) {
	if dial.OnTapped != nil {
		dial.OnTapped()
	}
}

// CreateRenderer implements fyne.Widget.
func (dial *Dial) CreateRenderer() fyne.WidgetRenderer {
	face := canvas.NewCircle(dialFaceColor)
	face.StrokeColor = dialRimColor
	face.StrokeWidth = 4

	hand := canvas.NewLine(dialHandColor)
	hand.StrokeWidth = 4

	hub := canvas.NewCircle(dialHandColor)

	marker := canvas.NewText("", dialMarkerColor)
	marker.Alignment = fyne.TextAlignCenter
	marker.TextStyle = fyne.TextStyle{Bold: true}
	marker.TextSize = 22

	renderer := &dialRenderer{
		dial:    dial,
		face:    face,
		hand:    hand,
		hub:     hub,
		marker:  marker,
		objects: []fyne.CanvasObject{face, hand, hub, marker},
	}
	renderer.applyState()
	return renderer
}

type dialRenderer struct {
	dial    *Dial
	face    *canvas.Circle
	hand    *canvas.Line
	hub     *canvas.Circle
	marker  *canvas.Text
	objects []fyne.CanvasObject
}

func (renderer *dialRenderer) Layout(size fyne.Size) {
	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	center := fyne.NewPos(size.Width/2, size.Height/2)
	radius := side / 2

	renderer.face.Move(fyne.NewPos(center.X-radius, center.Y-radius))
	renderer.face.Resize(fyne.NewSize(side, side))

	renderer.hand.Position1 = center
	renderer.hand.Position2 = handEnd(center, radius*0.8, renderer.dial.elapsed, renderer.dial.direction)

	hubRadius := side * 0.04
	renderer.hub.Move(fyne.NewPos(center.X-hubRadius, center.Y-hubRadius))
	renderer.hub.Resize(fyne.NewSize(hubRadius*2, hubRadius*2))

	markerSize := renderer.marker.MinSize()
	renderer.marker.Move(fyne.NewPos(center.X-markerSize.Width/2, center.Y+radius*0.35))
	renderer.marker.Resize(markerSize)
}

func (renderer *dialRenderer) MinSize() fyne.Size {
	return fyne.NewSize(dialMinSide, dialMinSide)
}

func (renderer *dialRenderer) Refresh() {
	renderer.applyState()
	renderer.Layout(renderer.dial.Size())
	for _, object := range renderer.objects {
		canvas.Refresh(object)
	}
}

func (renderer *dialRenderer) Objects() []fyne.CanvasObject {
	return renderer.objects
}

func (renderer *dialRenderer) Destroy() {}

func (renderer *dialRenderer) applyState() {
	if renderer.dial.active {
		renderer.hand.StrokeColor = dialHandColor
	} else {
		renderer.hand.StrokeColor = dialIdleColor
	}
	renderer.marker.Text = directionGlyph(renderer.dial.direction)
}

// handEnd returns the tip of a hand of the given length that has swept the
// elapsed share of a full turn from twelve o'clock.
func handEnd(center fyne.Position, length float32, elapsed float64, direction timer.Direction) fyne.Position {
	angle := 2 * math.Pi * clampFraction(elapsed)
	dx := float32(math.Sin(angle)) * length
	dy := float32(math.Cos(angle)) * length
	if direction == timer.Anticlockwise {
		dx = -dx
	}
	return fyne.NewPos(center.X+dx, center.Y-dy)
}

func directionGlyph(direction timer.Direction) string {
	if direction == timer.Anticlockwise {
		return "↺"
	}
	return "↻"
}

func clampFraction(value float64) float64 {
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
