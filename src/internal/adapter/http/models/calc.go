package models

import (
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

const (
	DayCount365    = "365"
	DayCountAct365 = "ACT/365"
)

// CalcRequest carries the raw query parameters of GET /calc395.
type CalcRequest struct {
	Amount       string
	StartDate    string
	EndDate      string
	EndInclusive string
	DayCount     string
}

// CalcInput is the validated form of CalcRequest. EndDate is always
// exclusive here: the end_inclusive flag has already been folded in by
// adding one calendar day.
type CalcInput struct {
	Amount    decimal.Decimal
	StartDate civil.Date
	EndDate   civil.Date
	DayCount  string
}

// ValidationError distinguishes bad request parameters from the
// availability errors the calculation itself can produce.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Parse validates the raw parameters and folds the end_inclusive flag into
// the end date. All parameter problems are reported together.
func (r CalcRequest) Parse() (CalcInput, error) {
	var errs []string

	var amount decimal.Decimal
	rawAmount := strings.TrimSpace(r.Amount)
	if rawAmount == "" {
		errs = append(errs, "amount is required")
	} else if parsed, err := decimal.NewFromString(rawAmount); err != nil {
		errs = append(errs, "amount must be a number")
	} else if parsed.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	} else {
		amount = parsed
	}

	startDate, err := civil.ParseDate(strings.TrimSpace(r.StartDate))
	if err != nil {
		errs = append(errs, "start_date must be an ISO date (YYYY-MM-DD)")
	}

	endDate, err := civil.ParseDate(strings.TrimSpace(r.EndDate))
	if err != nil {
		errs = append(errs, "end_date must be an ISO date (YYYY-MM-DD)")
	}

	endInclusive := false
	if raw := strings.TrimSpace(r.EndInclusive); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, "end_inclusive must be true or false")
		}
		endInclusive = parsed
	}

	dayCount := strings.TrimSpace(r.DayCount)
	if dayCount == "" {
		dayCount = DayCount365
	}
	if dayCount != DayCount365 && dayCount != DayCountAct365 {
		errs = append(errs, "day_count must be one of: 365, ACT/365")
	}

	if len(errs) > 0 {
		return CalcInput{}, &ValidationError{Message: strings.Join(errs, "; ")}
	}

	if endInclusive {
		endDate = endDate.AddDays(1)
	}

	return CalcInput{
		Amount:    amount,
		StartDate: startDate,
		EndDate:   endDate,
		DayCount:  dayCount,
	}, nil
}

// PeriodItem is one rate-homogeneous slice of the requested range.
// End is exclusive.
type PeriodItem struct {
	Start    civil.Date `json:"start"`
	End      civil.Date `json:"end"`
	Rate     float64    `json:"rate"`
	Days     int        `json:"days"`
	Interest float64    `json:"interest"`
}

type CalcResponse struct {
	Periods []PeriodItem `json:"periods"`
	Total   float64      `json:"total"`
}

type RateItem struct {
	DateFrom civil.Date `json:"date_from"`
	KeyRate  float64    `json:"key_rate"`
}

type HealthResponse struct {
	OK                 bool   `json:"ok"`
	Version            string `json:"version"`
	RatesURLConfigured bool   `json:"rates_url_configured"`
}
