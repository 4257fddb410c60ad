package scenescroller

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the minimal structured logging interface used in debug mode.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NewSlogLogger adapts l to Logger. *slog.Logger already has the right
// method set; this only guards against nil.
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return l
}

// NewTextLogger returns a Logger writing slog text records at level to w,
// tagged with component=scenescroller.
func NewTextLogger(w io.Writer, level slog.Level) Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("component", "scenescroller")
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// globalDebug gates the mutation logging and tree checks. Tree operations
// have no handle to a Scene, so the flag is package-wide; the last call to
// SetDebugMode wins.
var globalDebug bool

// debugLogger receives debug output. Defaults to stderr at debug level.
var debugLogger Logger = NewTextLogger(os.Stderr, slog.LevelDebug)

// SetDebugMode enables or disables debug mode. When enabled, structural
// mutations are logged and tree depth and child count warnings are emitted.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug mode is on.
func DebugMode() bool {
	return globalDebug
}

// SetLogger replaces the debug logger. nil silences it.
func SetLogger(l Logger) {
	if l == nil {
		debugLogger = noopLogger{}
		return
	}
	debugLogger = l
}

// debugLogMutation records a structural change.
func debugLogMutation(op string, n *Node, other *Node) {
	if !globalDebug {
		return
	}
	debugLogger.Debug("tree mutation",
		"op", op,
		"node", n.String(),
		"other", other.String(),
	)
}

// debugMaxTreeDepth is the depth above which a warning is logged.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := n.Depth() + 1
	if depth > debugMaxTreeDepth {
		debugLogger.Warn("tree depth exceeds threshold",
			"depth", depth,
			"threshold", debugMaxTreeDepth,
			"node", n.String(),
		)
	}
}

// debugMaxChildCount is the child count above which a warning is logged.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugLogger.Warn("node child count exceeds threshold",
			"children", len(n.children),
			"threshold", debugMaxChildCount,
			"node", n.String(),
		)
	}
}
