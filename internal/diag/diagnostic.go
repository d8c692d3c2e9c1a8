package diag

import "fmt"

// Diagnostic describes one reportable condition found while binding members
// or scanning modules. Subject carries the dotted type or namespace path the
// condition applies to; Member is empty for module-level diagnostics.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Subject  string
	Member   string
}

// Error is the taxonomy error carried inside rule bodies. It satisfies the
// error interface so callers can match codes with errors.As after a rule
// replays.
type Error struct {
	Code    Code
	Subject string
	Member  string
	Message string
}

func (e *Error) Error() string {
	if e.Member != "" {
		return fmt.Sprintf("%s: %s.%s: %s", e.Code, e.Subject, e.Member, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Subject, e.Message)
}

// Errorf builds a taxonomy error for subject.member.
func Errorf(code Code, subject, member, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Subject: subject,
		Member:  member,
		Message: fmt.Sprintf(format, args...),
	}
}

// CodeOf extracts the taxonomy code from err, or UnknownCode when err was not
// produced by this package.
func CodeOf(err error) Code {
	if err == nil {
		return UnknownCode
	}
	if de, ok := err.(*Error); ok {
		return de.Code
	}
	return UnknownCode
}
