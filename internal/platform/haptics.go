package platform

import (
	"io"
	"os"
)

// Haptics signals success or failure feedback to the user. The terminal
// equivalent of vibration is the bell.
type Haptics interface {
	Success()
	Error()
}

// TerminalBell implements [Haptics] by ringing the terminal bell.
type TerminalBell struct {
	W io.Writer
}

var _ Haptics = TerminalBell{}

func (t TerminalBell) writer() io.Writer {
	if t.W != nil {
		return t.W
	}
	return os.Stdout
}

func (t TerminalBell) Success() { t.writer().Write([]byte("\a")) }

func (t TerminalBell) Error() { t.writer().Write([]byte("\a\a")) }

// SilentHaptics is the no-op used in tests.
type SilentHaptics struct{}

var _ Haptics = SilentHaptics{}

func (SilentHaptics) Success() {}
func (SilentHaptics) Error()   {}
