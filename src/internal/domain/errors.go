package domain

import "errors"

// ErrNoRateData is returned when a calculation is requested while the rate
// schedule is empty. Distinct from an empty date range, which is a normal
// zero-interest result.
var ErrNoRateData = errors.New("no key-rate data available")
