package graphics

import "github.com/spaghettifunk/vitrail/engine/core"

// DebugSeverity ranks driver debug messages.
type DebugSeverity uint32

const (
	SeverityNotification DebugSeverity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
)

func (s DebugSeverity) String() string {
	switch s {
	case SeverityNotification:
		return "notification"
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	}
	return "unknown"
}

// DebugMessage is one message from the driver's debug channel.
type DebugMessage struct {
	Source   string
	Type     string
	Severity DebugSeverity
	Message  string
}

// LogDebugMessages routes the driver's debug output into the engine log,
// mapped by severity. Returns false when the driver has no debug channel.
// The callback may fire from inside any driver call; keep handlers cheap.
func LogDebugMessages(d Driver) bool {
	if !d.SetDebugCallback(logDebugMessage) {
		core.LogWarn("driver offers no debug output channel")
		return false
	}
	Enable(d, CapDebugOutput)
	return true
}

func logDebugMessage(msg DebugMessage) {
	switch msg.Severity {
	case SeverityHigh:
		core.LogError("[%s/%s] %s", msg.Source, msg.Type, msg.Message)
	case SeverityMedium:
		core.LogWarn("[%s/%s] %s", msg.Source, msg.Type, msg.Message)
	default:
		core.LogDebug("[%s/%s] %s", msg.Source, msg.Type, msg.Message)
	}
}
