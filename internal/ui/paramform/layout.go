package paramform

import "fyne.io/fyne/v2"

const (
	formColumns   = 3
	formCellGap   = float32(6)
	formMinEntryW = float32(80)
)

// formGrid lays out rows of title, entry and hint. Titles and hints keep
// their minimum width; the entry takes the rest.
type formGrid struct{}

func (grid *formGrid) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	titleWidth, hintWidth := grid.sideWidths(objects)
	entryWidth := size.Width - titleWidth - hintWidth - 2*formCellGap
	if entryWidth < formMinEntryW {
		entryWidth = formMinEntryW
	}

	y := float32(0)
	for row := 0; row+formColumns <= len(objects); row += formColumns {
		title, entry, hint := objects[row], objects[row+1], objects[row+2]
		height := rowHeight(title, entry, hint)

		title.Move(fyne.NewPos(0, y))
		title.Resize(fyne.NewSize(titleWidth, height))

		entry.Move(fyne.NewPos(titleWidth+formCellGap, y))
		entry.Resize(fyne.NewSize(entryWidth, height))

		hint.Move(fyne.NewPos(titleWidth+entryWidth+2*formCellGap, y))
		hint.Resize(fyne.NewSize(hintWidth, height))

		y += height + formCellGap
	}
}

func (grid *formGrid) MinSize(objects []fyne.CanvasObject) fyne.Size {
	titleWidth, hintWidth := grid.sideWidths(objects)
	height := float32(0)
	rows := 0
	for row := 0; row+formColumns <= len(objects); row += formColumns {
		height += rowHeight(objects[row], objects[row+1], objects[row+2])
		rows++
	}
	if rows > 1 {
		height += float32(rows-1) * formCellGap
	}
	return fyne.NewSize(titleWidth+formMinEntryW+hintWidth+2*formCellGap, height)
}

func (grid *formGrid) sideWidths(objects []fyne.CanvasObject) (float32, float32) {
	titleWidth := float32(0)
	hintWidth := float32(0)
	for row := 0; row+formColumns <= len(objects); row += formColumns {
		if width := objects[row].MinSize().Width; width > titleWidth {
			titleWidth = width
		}
		if width := objects[row+2].MinSize().Width; width > hintWidth {
			hintWidth = width
		}
	}
	return titleWidth, hintWidth
}

func rowHeight(objects ...fyne.CanvasObject) float32 {
	height := float32(0)
	for _, object := range objects {
		if h := object.MinSize().Height; h > height {
			height = h
		}
	}
	return height
}
