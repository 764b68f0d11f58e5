package tui

// Column width layout for the table view. Every column gets a minimum width;
// leftover space is spread evenly. Columns that cannot fit at all are dropped
// from the right, with the selected column kept in view.

const minColumnWidth = 8
const maxColumnWidth = 40

// layoutColumns returns the width for each header column and the first
// visible column index, given the terminal width and current selection.
func layoutColumns(headers []string, totalWidth, selected int) (widths []int, firstVisible int) {
	n := len(headers)
	if n == 0 || totalWidth <= 0 {
		return nil, 0
	}

	// Natural width per column: widest of min width and header label
	widths = make([]int, n)
	for i, h := range headers {
		w := len(h) + 4 // room for padding and a sort indicator
		if w < minColumnWidth {
			w = minColumnWidth
		}
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		widths[i] = w
	}

	// How many columns fit from firstVisible on; shift right until the
	// selected column is inside the window.
	firstVisible = 0
	for {
		used := 0
		last := firstVisible - 1
		for i := firstVisible; i < n; i++ {
			if used+widths[i] > totalWidth {
				break
			}
			used += widths[i]
			last = i
		}
		if selected <= last || firstVisible >= selected {
			break
		}
		firstVisible++
	}

	return widths, firstVisible
}

// visibleRange returns the inclusive range of columns shown given the layout.
func visibleRange(widths []int, totalWidth, firstVisible int) (int, int) {
	used := 0
	last := firstVisible - 1
	for i := firstVisible; i < len(widths); i++ {
		if used+widths[i] > totalWidth {
			break
		}
		used += widths[i]
		last = i
	}
	return firstVisible, last
}
