package app

import (
	"gridsift/app/interfaces"
	"gridsift/types"
)

// FileTab holds one loaded dataset and its view state. All view state
// (filters, sort, page) belongs to the tab so switching tabs restores the
// exact view the user left.
type FileTab struct {
	ID       string
	FilePath string
	FileName string            // Display name for the tab
	FileHash string            // Hash of the file content
	Options  types.FileOptions // Parse options used when loading

	// Loaded dataset, immutable after load
	Header []string
	Rows   []*interfaces.Row

	// View state
	Filters interfaces.FilterSet
	Sort    interfaces.SortState
	Page    int // 1-based

	// Non-fatal load diagnostics (truncated compressed input etc.)
	Warning string
}

// resetViewState returns filters, sort and page to their initial values.
// Called when a dataset is (re)loaded into the tab.
func (t *FileTab) resetViewState() {
	t.Filters = make(interfaces.FilterSet)
	t.Sort = interfaces.SortState{}
	t.Page = 1
}
