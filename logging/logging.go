package logging

import (
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

// SetupLogging configures logging.
// With no filename, logging is disabled (except log.Fatal/panic).
// With a filename, tea.LogToFile opens the file once and points the stdlib
// logger at the same handle, so stdlib and Bubble Tea writes never interleave
// through separate descriptors.
func SetupLogging(filename string) (cleanup func(), err error) {
	if filename == "" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := tea.LogToFile(filename, "debug")
	if err != nil {
		return nil, err
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	return func() { f.Close() }, nil
}
