package app

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"gridsift/app/fileloader"
)

// Export writes the active tab's filtered and sorted rows to the default
// export filename in the current directory. Returns the path written, or an
// empty string when there was nothing to export.
func (a *App) Export() (string, error) {
	path := a.exportFilename
	if path == "" {
		path = "export.csv"
	}
	wrote, err := a.ExportTo(path)
	if err != nil {
		return "", err
	}
	if !wrote {
		return "", nil
	}
	return path, nil
}

// ExportTo writes every filtered and sorted row of the active tab to path as
// CSV, not just the visible page. An empty filtered result is a no-op and
// leaves no file behind. Returns whether a file was written.
func (a *App) ExportTo(path string) (bool, error) {
	tab := a.GetActiveTab()
	if tab == nil {
		return false, fmt.Errorf("no file loaded")
	}

	result, err := a.filteredRows(tab)
	if err != nil {
		return false, err
	}
	if len(result.Rows) == 0 {
		a.Log("info", "export skipped: no rows match the current filters")
		return false, nil
	}

	if err := fileloader.WriteCSVFile(path, result.Header, result.Rows, tab.Options); err != nil {
		return false, fmt.Errorf("export failed: %w", err)
	}

	a.Log("info", fmt.Sprintf("exported %d rows to %s", len(result.Rows), filepath.Base(path)))
	return true, nil
}

// CopyPageToClipboard puts the current page on the system clipboard as
// tab-separated text, one line per row with a header line first.
// Returns the number of rows copied.
func (a *App) CopyPageToClipboard() (int, error) {
	view, err := a.View()
	if err != nil {
		return 0, err
	}
	if len(view.Rows) == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	buf.WriteString(strings.Join(view.Headers, "\t"))
	buf.WriteByte('\n')
	for _, row := range view.Rows {
		buf.WriteString(strings.Join(row, "\t"))
		buf.WriteByte('\n')
	}

	if err := a.writeClipboardText(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(view.Rows), nil
}
