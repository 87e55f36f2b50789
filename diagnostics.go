package gridmix

// Diagnostic severities. Fatal conditions are returned as errors instead of
// being logged, so only warning and info appear here.
const (
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// DiagnosticEvent describes a non-fatal condition hit while rebuilding a
// market.
type DiagnosticEvent struct {
	Severity   string
	Market     string
	Location   string
	Technology string
	Year       int
	Message    string
}

// DiagnosticLogger records reconstruction diagnostics.
type DiagnosticLogger interface {
	LogDiagnostic(DiagnosticEvent)
}

// DiagnosticLoggerFunc adapts a function to DiagnosticLogger.
type DiagnosticLoggerFunc func(DiagnosticEvent)

// LogDiagnostic implements DiagnosticLogger.
func (f DiagnosticLoggerFunc) LogDiagnostic(event DiagnosticEvent) {
	if f != nil {
		f(event)
	}
}

type noopDiagnosticLogger struct{}

func (noopDiagnosticLogger) LogDiagnostic(DiagnosticEvent) {}
