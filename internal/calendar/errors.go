package calendar

import "errors"

var (
	// ErrInvalidDate is returned when a date string is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidTimezone is returned when a timezone is neither an IANA name nor a UTC offset.
	ErrInvalidTimezone = errors.New("invalid timezone")
)
