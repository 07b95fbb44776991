package tzdate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimezone matches every *TimezoneError.
	ErrInvalidTimezone = errors.New("tzdate: invalid timezone")
	// ErrDateParse matches every *DateParseError.
	ErrDateParse = errors.New("tzdate: unparseable instant")
)

// TimezoneError reports an empty or unrecognized IANA identifier.
type TimezoneError struct {
	Zone string
	Err  error
}

func (e *TimezoneError) Error() string {
	if e.Zone == "" {
		return "tzdate: empty timezone identifier"
	}
	if e.Err != nil {
		return fmt.Sprintf("tzdate: unknown timezone %q: %v", e.Zone, e.Err)
	}
	return fmt.Sprintf("tzdate: unknown timezone %q", e.Zone)
}

func (e *TimezoneError) Is(target error) bool { return target == ErrInvalidTimezone }

func (e *TimezoneError) Unwrap() error { return e.Err }

// DateParseError reports an instant string that could not be parsed even
// after UTC-designator normalization.
type DateParseError struct {
	Input string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("tzdate: cannot parse instant %q", e.Input)
}

func (e *DateParseError) Is(target error) bool { return target == ErrDateParse }

func (e *DateParseError) Unwrap() error { return e.Err }
