package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"gridsift/app/fileloader"
	"gridsift/app/interfaces"
	"gridsift/app/query"
	"gridsift/types"
)

// OpenFile loads a file into a new tab and makes it active.
// On any load error no tab is created and existing state is untouched.
func (a *App) OpenFile(path string, options types.FileOptions) (*FileTab, error) {
	result, err := fileloader.Load(path, options)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)
	}

	fileHash, err := CalculateFileHash(path)
	if err != nil {
		return nil, fmt.Errorf("failed to hash %s: %w", filepath.Base(path), err)
	}

	tab := &FileTab{
		ID:       uuid.NewString(),
		FilePath: path,
		FileName: filepath.Base(path),
		FileHash: fileHash,
		Options:  options,
		Header:   result.Header,
		Rows:     result.Rows,
		Warning:  result.Warning,
	}
	tab.resetViewState()
	a.addTab(tab)

	a.Log("info", fmt.Sprintf("loaded %s: %d rows, %d columns", tab.FileName, len(tab.Rows), len(tab.Header)))
	return tab, nil
}

// OpenBytes loads an in-memory dataset into a new tab. The name is used for
// format detection and as the tab title.
func (a *App) OpenBytes(name string, data []byte, options types.FileOptions) (*FileTab, error) {
	result, err := fileloader.LoadBytes(name, data, options)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}

	fileHash, err := CalculateBytesHash(data)
	if err != nil {
		return nil, err
	}

	tab := &FileTab{
		ID:       uuid.NewString(),
		FileName: name,
		FileHash: fileHash,
		Options:  options,
		Header:   result.Header,
		Rows:     result.Rows,
		Warning:  result.Warning,
	}
	tab.resetViewState()
	a.addTab(tab)

	return tab, nil
}

// OpenDirectory discovers files matching the pattern and opens each in its
// own tab, up to the configured file limit. The first opened tab becomes
// active. Files that fail to load are skipped with a warning.
func (a *App) OpenDirectory(dirPath string, options types.FileOptions) ([]*FileTab, error) {
	if !fileloader.IsDirectory(dirPath) {
		return nil, fmt.Errorf("%s is not a directory", dirPath)
	}

	pattern := options.FilePattern
	if pattern == "" {
		pattern = "*.csv"
	}
	info, err := fileloader.DiscoverFiles(dirPath, fileloader.DirectoryDiscoveryOptions{
		Pattern:  pattern,
		MaxFiles: a.maxDirFiles,
	})
	if err != nil {
		return nil, err
	}
	if len(info.Files) == 0 {
		return nil, fmt.Errorf("no files matching %s in %s", pattern, dirPath)
	}

	fileOpts := options
	fileOpts.IsDirectory = false
	fileOpts.FilePattern = ""

	var opened []*FileTab
	var firstID string
	for _, path := range info.Files {
		tab, err := a.OpenFile(path, fileOpts)
		if err != nil {
			a.Log("warn", fmt.Sprintf("skipping %s: %v", filepath.Base(path), err))
			continue
		}
		if firstID == "" {
			firstID = tab.ID
		}
		opened = append(opened, tab)
	}
	if len(opened) == 0 {
		return nil, fmt.Errorf("no loadable files in %s", dirPath)
	}
	a.SetActiveTab(firstID)
	return opened, nil
}

// ReloadTab re-reads the tab's file from disk. View state resets only when
// the reload succeeds; a failed reload leaves the tab exactly as it was.
func (a *App) ReloadTab(tabID string) error {
	tab := a.GetTab(tabID)
	if tab == nil {
		return fmt.Errorf("no such tab")
	}
	if tab.FilePath == "" {
		return fmt.Errorf("%s was not loaded from a file", tab.FileName)
	}

	result, err := fileloader.Load(tab.FilePath, tab.Options)
	if err != nil {
		return fmt.Errorf("failed to reload %s: %w", tab.FileName, err)
	}
	fileHash, err := CalculateFileHash(tab.FilePath)
	if err != nil {
		return err
	}

	oldHash := tab.FileHash
	tab.Header = result.Header
	tab.Rows = result.Rows
	tab.Warning = result.Warning
	tab.FileHash = fileHash
	tab.resetViewState()

	if oldHash != fileHash && !a.fileHashInUse(oldHash) {
		a.queryCache.InvalidateFile(oldHash)
	}
	return nil
}

// SetFilter sets the substring constraint for a column on the active tab.
// An empty needle removes the constraint. Any filter edit returns the view
// to the first page.
func (a *App) SetFilter(column, needle string) error {
	tab := a.GetActiveTab()
	if tab == nil {
		return fmt.Errorf("no file loaded")
	}

	// Only a truly empty needle clears; whitespace is a searchable substring.
	if needle == "" {
		delete(tab.Filters, column)
	} else {
		tab.Filters[column] = needle
	}
	tab.Page = 1
	return nil
}

// ClearFilters removes all filter constraints on the active tab.
func (a *App) ClearFilters() {
	tab := a.GetActiveTab()
	if tab == nil {
		return
	}
	tab.Filters = make(interfaces.FilterSet)
	tab.Page = 1
}

// ToggleSort advances the sort state for a column on the active tab.
// The current page is kept; sorting reorders rows but not the page position.
func (a *App) ToggleSort(column string) {
	tab := a.GetActiveTab()
	if tab == nil {
		return
	}
	tab.Sort.Toggle(column)
}

// ChangePage moves the active tab's page by delta, staying within bounds.
func (a *App) ChangePage(delta int) error {
	tab := a.GetActiveTab()
	if tab == nil {
		return fmt.Errorf("no file loaded")
	}

	result, err := a.filteredRows(tab)
	if err != nil {
		return err
	}
	totalPages := query.TotalPages(len(result.Rows), a.pageSize)

	page := tab.Page + delta
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	tab.Page = page
	return nil
}

// SetPage jumps the active tab to an absolute 1-based page.
// Out-of-range pages are repaired on the next View call.
func (a *App) SetPage(page int) {
	tab := a.GetActiveTab()
	if tab == nil {
		return
	}
	if page < 1 {
		page = 1
	}
	tab.Page = page
}

// View renders the active tab's current page after applying filters, sort
// and pagination. A page number beyond the shrunken result is repaired to
// the first page before slicing, so the returned view is always valid.
func (a *App) View() (*interfaces.View, error) {
	tab := a.GetActiveTab()
	if tab == nil {
		return &interfaces.View{
			Page:       1,
			TotalPages: 1,
			Filters:    make(interfaces.FilterSet),
		}, nil
	}

	result, err := a.filteredRows(tab)
	if err != nil {
		return nil, err
	}

	totalPages := query.TotalPages(len(result.Rows), a.pageSize)
	tab.Page = query.ClampPage(tab.Page, totalPages)
	pageRows := query.PageSlice(result.Rows, tab.Page, a.pageSize)

	rows := make([][]string, len(pageRows))
	for i, row := range pageRows {
		cells := make([]string, len(result.Header))
		for c := range cells {
			cells[c] = row.Value(c)
		}
		rows[i] = cells
	}

	return &interfaces.View{
		Headers:       result.Header,
		Rows:          rows,
		TotalFiltered: len(result.Rows),
		TotalLoaded:   len(tab.Rows),
		Page:          tab.Page,
		TotalPages:    totalPages,
		Sort:          tab.Sort,
		Filters:       tab.Filters.Clone(),
		FileName:      tab.FileName,
	}, nil
}

// progressCallback returns a logging callback for datasets large enough that
// query stages take noticeable time, nil otherwise.
func (a *App) progressCallback(rowCount int) query.ProgressCallback {
	if rowCount < query.MinRowsForProgress {
		return nil
	}
	return query.ThrottledProgressCallback(query.LogProgressCallback(a.Log), time.Second)
}

// filteredRows runs the filter and sort stages for a tab, serving from the
// query cache whenever the same combination has been computed before.
func (a *App) filteredRows(tab *FileTab) (*query.QueryResult, error) {
	pipeline := query.NewPipelineBuilder(a.context(), tab.FileHash, tab.Options, a.queryCache, a.progressCallback(len(tab.Rows)), a.cacheConfig).
		AddFilter(tab.Filters).
		AddSort(tab.Sort).
		Build()

	return pipeline.Execute(&interfaces.StageResult{
		Header: tab.Header,
		Rows:   tab.Rows,
	})
}
