package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gridsift/app/interfaces"
)

func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.view == nil {
		return appStyle.Render("no data")
	}

	tableWidth := m.width - 6
	if tableWidth < minColumnWidth {
		tableWidth = minColumnWidth
	}

	widths, first := layoutColumns(m.view.Headers, tableWidth, m.selectedCol)
	lo, hi := visibleRange(widths, tableWidth, first)

	header := m.headerView(widths, lo, hi)
	body := tableStyle.Render(m.tableView(widths, lo, hi))
	footer := m.footerView()

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, body, footer))
}

// headerView renders the column titles with sort indicators and filter badges.
func (m *Model) headerView(widths []int, lo, hi int) string {
	var cells []string
	for i := lo; i <= hi && i < len(m.view.Headers); i++ {
		label := m.view.Headers[i]

		if m.view.Sort.Column == label {
			switch m.view.Sort.Direction {
			case interfaces.SortAsc:
				label += " " + sortIndicatorStyle.Render("▲")
			case interfaces.SortDesc:
				label += " " + sortIndicatorStyle.Render("▼")
			}
		}
		if m.view.Filters[m.view.Headers[i]] != "" {
			label += filterBadgeStyle.Render("*")
		}

		style := headerStyle
		if i == m.selectedCol {
			style = headerSelectedStyle
		}
		cells = append(cells, cellStyle.Width(widths[i]).Render(style.Render(label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// tableView renders the current page of rows.
func (m *Model) tableView(widths []int, lo, hi int) string {
	if len(m.view.Rows) == 0 {
		return statusStyle.Render("no rows match")
	}

	var b strings.Builder
	for rowIdx, row := range m.view.Rows {
		var cells []string
		for i := lo; i <= hi && i < len(row); i++ {
			cells = append(cells, cellStyle.Width(widths[i]).Render(truncate(row[i], widths[i]-2)))
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		if rowIdx == m.cursor {
			line = rowSelectedStyle.Render(line)
		} else {
			line = rowTextStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// footerView renders the status line, active input box, last error or notice,
// and the key help.
func (m *Model) footerView() string {
	var sb strings.Builder

	status := fmt.Sprintf("%s | page %d/%d | %d of %d rows",
		m.view.FileName, m.view.Page, m.view.TotalPages, m.view.TotalFiltered, m.view.TotalLoaded)
	if n := m.view.Filters.Active(); n > 0 {
		status += fmt.Sprintf(" | %d filters", n)
	}
	if pos, total := m.app.TabPosition(); total > 1 {
		status += fmt.Sprintf(" | tab %d/%d", pos, total)
	}
	sb.WriteString(statusStyle.Render(status))
	sb.WriteByte('\n')

	switch m.currentMode {
	case modeFilter:
		sb.WriteString(inputStyle.Render(fmt.Sprintf("filter %s: %s", m.selectedColumnName(), m.filterInput.View())))
	case modeJump:
		sb.WriteString(inputStyle.Render(m.jumpInput.View()))
	default:
		if m.lastErr != nil {
			sb.WriteString(errorStyle.Render("error: " + m.lastErr.Error()))
			sb.WriteByte('\n')
		} else if m.notice != "" {
			sb.WriteString(noticeStyle.Render(m.notice))
			sb.WriteByte('\n')
		}
		sb.WriteString("(q)uit  (←/→)column  (s)ort  (/)filter  (F)clear-filters  ([/])page  (g)oto  (tab)switch-tab  (x)close-tab  (e)xport  (c)opy  (r)eload")
	}

	return sb.String()
}

// truncate shortens a cell value to fit its column, marking the cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
