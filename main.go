package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"gridsift/app"
	"gridsift/app/fileloader"
	"gridsift/app/settings"
	"gridsift/logging"
	"gridsift/tui"
	"gridsift/types"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	logFile     = flag.String("debug", "", "Write debug logs to file")
	delimiter   = flag.String("delimiter", "", "Field delimiter for delimited text files (default comma)")
	noHeader    = flag.Bool("no-header", false, "Treat the first row as data; synthesize column names")
	sheetName   = flag.String("sheet", "", "Worksheet name for XLSX files (default first sheet)")
	filePattern = flag.String("pattern", "", "Glob pattern when opening a directory (e.g. **/*.csv)")
)

func main() {
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println("Version:", Version)
		os.Exit(0)
	}

	cleanup, err := logging.SetupLogging(*logFile)
	if err != nil {
		log.Fatalf("Failed to setup logging %v", err)
	}
	defer cleanup()

	log.Println("gridsift: started")

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: gridsift [--debug debug.log] [--delimiter ';'] [--no-header] <file.csv|file.xlsx|file.json|dir>")
		os.Exit(1)
	}
	inputPath := args[0]

	settingsService := settings.NewSettingsService()
	if err := settingsService.EnsureInstanceID(); err != nil {
		log.Printf("could not persist instance id: %v", err)
	}

	a := app.NewApp()
	settingsService.SetCacheManager(a)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.Startup(ctx)

	options := types.FileOptions{
		Delimiter:   *delimiter,
		NoHeaderRow: *noHeader,
		SheetName:   *sheetName,
	}

	if fileloader.IsDirectory(inputPath) {
		options.IsDirectory = true
		options.FilePattern = *filePattern
		if _, err := a.OpenDirectory(inputPath, options); err != nil {
			log.Fatalf("failed to open %q: %v", inputPath, err)
		}
	} else {
		if _, err := a.OpenFile(inputPath, options); err != nil {
			log.Fatalf("failed to open %q: %v", inputPath, err)
		}
	}

	m := tui.New(a)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Printf("tea program error: %v", err)
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
