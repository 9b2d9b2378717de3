package hmi

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

var (
	// debugPrintln is set by platform code, no-op by default
	debugPrintln DebugWriter = func(s string) {}

	debugEnabled bool

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// InitAsyncDebug starts the async debug output goroutine.
// Call this from main() after SetDebugWriter.
func InitAsyncDebug() {
	debugChan = make(chan string, 16)
	go debugOutputWorker()
}

func debugOutputWorker() {
	for msg := range debugChan {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer.
// Blocks if debug is enabled (use DebugAsync for non-blocking).
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output.
// Drops the message if the channel is full.
func DebugAsync(msg string) {
	if !debugEnabled {
		return
	}
	if debugChan == nil {
		DebugPrintln(msg)
		return
	}
	select {
	case debugChan <- msg:
	default:
	}
}

// Debug emits a controller diagnostic line
func (c *Controller) Debug(msg string) {
	DebugAsync("[HMI] " + msg)
}
