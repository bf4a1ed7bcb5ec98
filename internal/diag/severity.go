package diag

// Severity ranks a diagnostic. Errors stop the build before legalization
// and code emission; warnings mark constructs the compiler skips (functions,
// rules, WHERE tails); info entries carry machine-readable payloads such as
// timing reports.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}
