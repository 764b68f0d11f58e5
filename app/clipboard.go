package app

import (
	"fmt"

	clipboard "golang.design/x/clipboard"
)

// Maximum clipboard size in bytes (10MB) - helps avoid X11 BadLength errors on Linux
const maxClipboardSize = 10 * 1024 * 1024

// writeClipboardText puts text on the system clipboard, lazily initializing
// the clipboard on first use. Initialization failure (e.g. headless session)
// is remembered so later copies fail fast.
func (a *App) writeClipboardText(data []byte) error {
	a.clipOnce.Do(func() {
		if err := clipboard.Init(); err == nil {
			a.clipOK = true
		}
	})
	if !a.clipOK {
		return fmt.Errorf("clipboard not available")
	}
	return safeClipboardWrite(clipboard.FmtText, data)
}

// safeClipboardWrite attempts to write data to clipboard with panic recovery.
// Returns an error if the write fails or data is too large.
func safeClipboardWrite(format clipboard.Format, data []byte) (err error) {
	if len(data) > maxClipboardSize {
		return fmt.Errorf("data too large for clipboard (%d bytes, max %d bytes / %.1f MB)",
			len(data), maxClipboardSize, float64(maxClipboardSize)/(1024*1024))
	}

	// Use defer/recover to catch panics from clipboard operations
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clipboard write failed: %v", r)
		}
	}()

	clipboard.Write(format, data)
	return nil
}
