package roi

import "errors"

// Errors returned by the engine. Callers match them with errors.Is.
var (
	ErrInvalidCountry = errors.New("invalid country")
	ErrInvalidMode    = errors.New("invalid mode")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidRates   = errors.New("invalid rate table")
)

// ErrorKind returns a short label for err, suitable for metrics and logs.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCountry):
		return "invalid_country"
	case errors.Is(err, ErrInvalidMode):
		return "invalid_mode"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrInvalidRates):
		return "invalid_rates"
	default:
		return "internal"
	}
}
