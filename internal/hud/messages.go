package hud

import (
	"errors"
	"strings"

	"voiceterm/internal/logging"
)

// ImageCaptureFailed renders an image-capture failure for the status line.
// The root cause is shown inline; when it is empty the log-path form is
// used so the toast is never a bare "failed".
func ImageCaptureFailed(err error) string {
	reason := rootCause(err)
	if strings.TrimSpace(reason) == "" {
		return logging.WithLogPath("Image capture failed")
	}
	return "Image capture failed: " + reason
}

func rootCause(err error) string {
	if err == nil {
		return ""
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
