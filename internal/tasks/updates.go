package tasks

// ProgressUpdate represents a progress event during a generation run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	PreparePhoto Phase = iota
	RequestVideo
	ResolveResult
	Download
)

func (p Phase) String() string {
	switch p {
	case PreparePhoto:
		return "prepare_photo"
	case RequestVideo:
		return "request_video"
	case ResolveResult:
		return "resolve_result"
	case Download:
		return "download"
	default:
		return "unknown"
	}
}

// emit sends an update without blocking when the channel is nil or full.
func emit(progress chan<- ProgressUpdate, u ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- u:
	default:
	}
}
