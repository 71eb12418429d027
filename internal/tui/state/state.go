package state

// ClampCursor keeps cursor inside [0, size).
func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// PageStep is how many rows a page up/down jumps given the terminal height.
// The header, hint line, message panel and footer eat fixed rows.
func PageStep(height int, hasMessage bool) int {
	if height <= 0 {
		return 10
	}
	chromeLines := 6
	if hasMessage {
		chromeLines += 2
	}
	step := height - chromeLines
	if step < 3 {
		step = 3
	}
	return step
}

// CenteredWindow returns the [start, end) slice of totalRows that keeps
// cursor near the middle of a height-row viewport.
func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}
