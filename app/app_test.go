package app

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"gridsift/app/fileloader"
	"gridsift/types"
)

func writeTestCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newTestApp() *App {
	a := NewApp()
	a.pageSize = 100
	return a
}

func TestOpenFile_LoadsAndActivates(t *testing.T) {
	a := newTestApp()
	path := writeTestCSV(t, "people.csv", "name,age\nAlice,30\nBob,25\n")

	tab, err := a.OpenFile(path, types.FileOptions{})
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}

	if a.GetActiveTab() != tab {
		t.Errorf("Opened tab should be active")
	}
	if len(tab.Rows) != 2 || len(tab.Header) != 2 {
		t.Errorf("Expected 2 rows / 2 columns, got %d/%d", len(tab.Rows), len(tab.Header))
	}
	if tab.Page != 1 || tab.Filters.Active() != 0 || tab.Sort.IsActive() {
		t.Errorf("New tab should start with clean view state")
	}
	if tab.FileHash == "" {
		t.Errorf("Tab should carry a content hash")
	}
}

func TestOpenFile_FailureLeavesStateUntouched(t *testing.T) {
	a := newTestApp()
	path := writeTestCSV(t, "a.csv", "name\nAlice\n")
	if _, err := a.OpenFile(path, types.FileOptions{}); err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	before := a.GetActiveTab()

	if _, err := a.OpenFile(filepath.Join(t.TempDir(), "missing.csv"), types.FileOptions{}); err == nil {
		t.Fatalf("Expected error for missing file")
	}

	if a.GetActiveTab() != before {
		t.Errorf("Failed load must not change the active tab")
	}
	if len(a.ListTabs()) != 1 {
		t.Errorf("Failed load must not create a tab")
	}
}

func TestNewLoadResetsViewState(t *testing.T) {
	a := newTestApp()
	pathA := writeTestCSV(t, "a.csv", "name,age\nAlice,30\nBob,25\n")
	pathB := writeTestCSV(t, "b.csv", "name,age\nCara,22\n")

	if _, err := a.OpenFile(pathA, types.FileOptions{}); err != nil {
		t.Fatalf("OpenFile A failed: %v", err)
	}
	if err := a.SetFilter("name", "al"); err != nil {
		t.Fatalf("SetFilter failed: %v", err)
	}
	a.ToggleSort("age")
	a.SetPage(3)

	tabB, err := a.OpenFile(pathB, types.FileOptions{})
	if err != nil {
		t.Fatalf("OpenFile B failed: %v", err)
	}

	if a.GetActiveTab() != tabB {
		t.Fatalf("Dataset B should be active after load")
	}
	if tabB.Filters.Active() != 0 {
		t.Errorf("Filters must reset on new load, got %v", tabB.Filters)
	}
	if tabB.Sort.IsActive() {
		t.Errorf("Sort must reset on new load, got %+v", tabB.Sort)
	}
	if tabB.Page != 1 {
		t.Errorf("Page must reset to 1 on new load, got %d", tabB.Page)
	}
}

func TestFilterEditResetsPageSortToggleDoesNot(t *testing.T) {
	a := newTestApp()
	a.pageSize = 1 // 3 rows -> 3 pages
	path := writeTestCSV(t, "a.csv", "name\nAlice\nBob\nCara\n")
	if _, err := a.OpenFile(path, types.FileOptions{}); err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	tab := a.GetActiveTab()

	if err := a.ChangePage(1); err != nil {
		t.Fatalf("ChangePage failed: %v", err)
	}
	if tab.Page != 2 {
		t.Fatalf("Expected page 2, got %d", tab.Page)
	}

	a.ToggleSort("name")
	if tab.Page != 2 {
		t.Errorf("Sort toggle must keep the current page, got %d", tab.Page)
	}

	if err := a.SetFilter("name", "a"); err != nil {
		t.Fatalf("SetFilter failed: %v", err)
	}
	if tab.Page != 1 {
		t.Errorf("Filter edit must return to page 1, got %d", tab.Page)
	}
}

func TestView_PageRepairAfterShrinkingFilter(t *testing.T) {
	a := newTestApp()
	a.pageSize = 2
	path := writeTestCSV(t, "a.csv", "name\nAlice\nBob\nCara\nDave\nEve\n")
	if _, err := a.OpenFile(path, types.FileOptions{}); err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	tab := a.GetActiveTab()

	// Jump past the end, then render: View repairs the page to 1
	tab.Page = 9
	view, err := a.View()
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if view.Page != 1 {
		t.Errorf("Out-of-range page should repair to 1, got %d", view.Page)
	}
	if view.TotalPages != 3 {
		t.Errorf("Expected 3 pages for 5 rows at size 2, got %d", view.TotalPages)
	}
	if len(view.Rows) != 2 {
		t.Errorf("Expected first page of 2 rows, got %d", len(view.Rows))
	}
}

func TestChangePage_ClampsAtBounds(t *testing.T) {
	a := newTestApp()
	a.pageSize = 2
	path := writeTestCSV(t, "a.csv", "name\nAlice\nBob\nCara\nDave\nEve\n")
	if _, err := a.OpenFile(path, types.FileOptions{}); err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	tab := a.GetActiveTab()

	// Next three times from page 1 lands on the last page and stays there
	for i := 0; i < 3; i++ {
		if err := a.ChangePage(1); err != nil {
			t.Fatalf("ChangePage failed: %v", err)
		}
	}
	if tab.Page != 3 {
		t.Errorf("Expected to clamp at page 3, got %d", tab.Page)
	}

	for i := 0; i < 5; i++ {
		if err := a.ChangePage(-1); err != nil {
			t.Fatalf("ChangePage failed: %v", err)
		}
	}
	if tab.Page != 1 {
		t.Errorf("Expected to clamp at page 1, got %d", tab.Page)
	}
}

func TestView_FilterSortPaginate(t *testing.T) {
	a := newTestApp()
	path := writeTestCSV(t, "a.csv", "name,age\nAlice,30\nBOB,25\nAlfred,40\n")
	if _, err := a.OpenFile(path, types.FileOptions{}); err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}

	if err := a.SetFilter("name", "al"); err != nil {
		t.Fatalf("SetFilter failed: %v", err)
	}
	a.ToggleSort("age") // ascending

	view, err := a.View()
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}

	if view.TotalFiltered != 2 || view.TotalLoaded != 3 {
		t.Fatalf("Expected 2 of 3 rows, got %d of %d", view.TotalFiltered, view.TotalLoaded)
	}
	if view.Rows[0][0] != "Alice" || view.Rows[1][0] != "Alfred" {
		t.Errorf("Expected [Alice Alfred] by ascending age, got %v", view.Rows)
	}

	a.ToggleSort("age") // descending
	view, err = a.View()
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if view.Rows[0][0] != "Alfred" || view.Rows[1][0] != "Alice" {
		t.Errorf("Expected [Alfred Alice] by descending age, got %v", view.Rows)
	}

	a.ToggleSort("age") // back to none: source order
	view, err = a.View()
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if view.Rows[0][0] != "Alice" || view.Rows[1][0] != "Alfred" {
		t.Errorf("Expected source order after sort reset, got %v", view.Rows)
	}
}

func TestExportRoundTrip(t *testing.T) {
	a := newTestApp()
	path := writeTestCSV(t, "a.csv", "name,age\nAlice,30\nBob,25\n")
	if _, err := a.OpenFile(path, types.FileOptions{}); err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	a.ToggleSort("age") // ascending

	exportPath := filepath.Join(t.TempDir(), "out.csv")
	wrote, err := a.ExportTo(exportPath)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !wrote {
		t.Fatalf("Expected a file to be written")
	}

	reparsed, err := fileloader.Load(exportPath, types.FileOptions{})
	if err != nil {
		t.Fatalf("Reparse failed: %v", err)
	}

	if len(reparsed.Header) != 2 || reparsed.Header[0] != "name" || reparsed.Header[1] != "age" {
		t.Fatalf("Header order must survive the round-trip, got %v", reparsed.Header)
	}
	if len(reparsed.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(reparsed.Rows))
	}
	// Sorted by age ascending: Bob (25) before Alice (30)
	if reparsed.Rows[0].Value(0) != "Bob" || reparsed.Rows[1].Value(0) != "Alice" {
		t.Errorf("Expected [Bob Alice], got [%s %s]",
			reparsed.Rows[0].Value(0), reparsed.Rows[1].Value(0))
	}
}

func TestExportIncludesAllPages(t *testing.T) {
	a := newTestApp()
	a.pageSize = 2
	path := writeTestCSV(t, "a.csv", "n\n1\n2\n3\n4\n5\n")
	if _, err := a.OpenFile(path, types.FileOptions{}); err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}

	exportPath := filepath.Join(t.TempDir(), "out.csv")
	if _, err := a.ExportTo(exportPath); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	reparsed, err := fileloader.Load(exportPath, types.FileOptions{})
	if err != nil {
		t.Fatalf("Reparse failed: %v", err)
	}
	if len(reparsed.Rows) != 5 {
		t.Errorf("Export must cover every page, got %d of 5 rows", len(reparsed.Rows))
	}
}

func TestExportEmptyResultIsNoOp(t *testing.T) {
	a := newTestApp()
	path := writeTestCSV(t, "a.csv", "name\nAlice\n")
	if _, err := a.OpenFile(path, types.FileOptions{}); err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if err := a.SetFilter("name", "zzz"); err != nil {
		t.Fatalf("SetFilter failed: %v", err)
	}

	exportPath := filepath.Join(t.TempDir(), "out.csv")
	wrote, err := a.ExportTo(exportPath)
	if err != nil {
		t.Fatalf("Export returned error for empty result: %v", err)
	}
	if wrote {
		t.Errorf("Empty result must be a no-op")
	}
	if _, statErr := os.Stat(exportPath); statErr == nil {
		t.Errorf("No file should exist after an empty export")
	}
}

func TestReloadTab_FailureKeepsState(t *testing.T) {
	a := newTestApp()
	path := writeTestCSV(t, "a.csv", "name\nAlice\nBob\n")
	tab, err := a.OpenFile(path, types.FileOptions{})
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if err := a.SetFilter("name", "al"); err != nil {
		t.Fatalf("SetFilter failed: %v", err)
	}

	os.Remove(path)
	if err := a.ReloadTab(tab.ID); err == nil {
		t.Fatalf("Expected reload error after file removal")
	}

	if tab.Filters.Active() != 1 {
		t.Errorf("Failed reload must keep filters, got %v", tab.Filters)
	}
	if len(tab.Rows) != 2 {
		t.Errorf("Failed reload must keep the dataset, got %d rows", len(tab.Rows))
	}
}

func TestCloseTab_SwitchesActive(t *testing.T) {
	a := newTestApp()
	pathA := writeTestCSV(t, "a.csv", "n\n1\n")
	pathB := writeTestCSV(t, "b.csv", "n\n2\n")

	tabA, _ := a.OpenFile(pathA, types.FileOptions{})
	tabB, _ := a.OpenFile(pathB, types.FileOptions{})

	a.CloseTab(tabB.ID)
	if a.GetActiveTab() != tabA {
		t.Errorf("Closing the active tab should fall back to a remaining tab")
	}

	a.CloseTab(tabA.ID)
	if a.GetActiveTab() != nil {
		t.Errorf("No tab should be active after closing everything")
	}
}

func TestTabCycling(t *testing.T) {
	a := newTestApp()
	tabA, _ := a.OpenFile(writeTestCSV(t, "a.csv", "n\n1\n"), types.FileOptions{})
	tabB, _ := a.OpenFile(writeTestCSV(t, "b.csv", "n\n2\n"), types.FileOptions{})
	tabC, _ := a.OpenFile(writeTestCSV(t, "c.csv", "n\n3\n"), types.FileOptions{})

	ids := a.ListTabs()
	want := []string{tabA.ID, tabB.ID, tabC.ID}
	if len(ids) != len(want) {
		t.Fatalf("Expected %d tabs, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("Tab %d out of open order", i)
		}
	}

	if pos, total := a.TabPosition(); pos != 3 || total != 3 {
		t.Fatalf("Expected tab 3/3 after opening three files, got %d/%d", pos, total)
	}

	a.CycleTab(1)
	if a.GetActiveTab() != tabA {
		t.Errorf("Cycling forward from the last tab should wrap to the first")
	}
	a.CycleTab(-1)
	if a.GetActiveTab() != tabC {
		t.Errorf("Cycling back should wrap to the last tab")
	}
	a.CycleTab(1)
	a.CycleTab(1)
	if a.GetActiveTab() != tabB {
		t.Errorf("Expected the middle tab after two forward cycles")
	}

	a.CloseTab(tabB.ID)
	if a.GetActiveTab() != tabC {
		t.Errorf("Closing the active tab should activate the next one in order")
	}
	if pos, total := a.TabPosition(); pos != 2 || total != 2 {
		t.Errorf("Expected tab 2/2 after close, got %d/%d", pos, total)
	}
}

func TestOpenDirectory_AllTabsReachable(t *testing.T) {
	a := newTestApp()
	dir := t.TempDir()
	for i, name := range []string{"one.csv", "two.csv", "three.csv"} {
		content := []byte(fmt.Sprintf("n\n%d\n", i))
		if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	opened, err := a.OpenDirectory(dir, types.FileOptions{IsDirectory: true})
	if err != nil {
		t.Fatalf("OpenDirectory failed: %v", err)
	}
	if len(opened) != 3 {
		t.Fatalf("Expected 3 tabs, got %d", len(opened))
	}
	if a.GetActiveTab() != opened[0] {
		t.Errorf("First opened tab should be active")
	}

	seen := make(map[string]bool)
	for range opened {
		seen[a.GetActiveTab().FileName] = true
		a.CycleTab(1)
	}
	if len(seen) != len(opened) {
		t.Errorf("Cycling visited %d of %d tabs", len(seen), len(opened))
	}
}

func TestSetFilter_WhitespaceNeedleIsSearchable(t *testing.T) {
	a := newTestApp()
	path := writeTestCSV(t, "names.csv", "name\nMary Ann\nBob\n")
	if _, err := a.OpenFile(path, types.FileOptions{}); err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}

	if err := a.SetFilter("name", " "); err != nil {
		t.Fatalf("SetFilter failed: %v", err)
	}
	view, err := a.View()
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if view.TotalFiltered != 1 || view.Rows[0][0] != "Mary Ann" {
		t.Errorf("A space needle should match only values containing a space, got %d rows", view.TotalFiltered)
	}

	if err := a.SetFilter("name", ""); err != nil {
		t.Fatalf("SetFilter failed: %v", err)
	}
	view, err = a.View()
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if view.TotalFiltered != 2 {
		t.Errorf("An empty needle should clear the constraint, got %d rows", view.TotalFiltered)
	}
}

func TestView_NoFileLoaded(t *testing.T) {
	a := newTestApp()
	view, err := a.View()
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if view.Page != 1 || view.TotalPages != 1 {
		t.Errorf("Empty view should still report page 1/1, got %d/%d", view.Page, view.TotalPages)
	}
	if len(view.Rows) != 0 {
		t.Errorf("Empty view should have no rows")
	}
}

func TestCalculateFileHash_Stable(t *testing.T) {
	path := writeTestCSV(t, "a.csv", "n\n1\n")

	h1, err := CalculateFileHash(path)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	h2, err := CalculateFileHash(path)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if h1 != h2 {
		t.Errorf("Hash must be stable for identical content")
	}

	other := writeTestCSV(t, "b.csv", "n\n2\n")
	h3, err := CalculateFileHash(other)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if h1 == h3 {
		t.Errorf("Different content must hash differently")
	}
}
