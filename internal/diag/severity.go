package diag

// Severity ranks how serious a diagnostic is.
type Severity uint8

const (
	// SevInfo marks purely informational diagnostics.
	SevInfo Severity = iota
	// SevWarning marks conditions worth reporting that do not fail a binding
	// or a scan.
	SevWarning
	// SevError marks failed bindings and scans.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
