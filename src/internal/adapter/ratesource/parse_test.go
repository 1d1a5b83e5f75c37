package ratesource_test

import (
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/api-sage/statutory-interest-service/src/internal/adapter/ratesource"
	"github.com/api-sage/statutory-interest-service/src/internal/domain"
)

func date(year int, month time.Month, day int) civil.Date {
	return civil.Date{Year: year, Month: month, Day: day}
}

func requireSteps(t *testing.T, raw string) []domain.RateStep {
	t.Helper()
	steps, err := ratesource.ParseSteps([]byte(raw))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	return steps
}

func TestParseStepsCSV(t *testing.T) {
	steps := requireSteps(t, "date_from,key_rate\n2024-07-26,15.0\n2024-03-01,16.0\n")

	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	// sorted ascending regardless of source order
	if steps[0].DateFrom != date(2024, time.March, 1) {
		t.Fatalf("expected sorted steps, got %s first", steps[0].DateFrom)
	}
	if !steps[1].KeyRate.Equal(decimal.RequireFromString("15.0")) {
		t.Fatalf("expected 15.0, got %s", steps[1].KeyRate)
	}
}

func TestParseStepsTSV(t *testing.T) {
	steps := requireSteps(t, "date_from\tkey_rate\n2024-03-01\t16.0\n")

	if len(steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(steps))
	}
	if steps[0].DateFrom != date(2024, time.March, 1) {
		t.Fatalf("unexpected date %s", steps[0].DateFrom)
	}
}

func TestParseStepsJSON(t *testing.T) {
	steps := requireSteps(t, `[
		{"date_from": "2024-03-01", "key_rate": 16},
		{"date_from": "2024-07-26", "key_rate": "15.0"}
	]`)

	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if !steps[0].KeyRate.Equal(decimal.RequireFromString("16")) {
		t.Fatalf("expected 16, got %s", steps[0].KeyRate)
	}
}

func TestParseStepsToleratesMessyValues(t *testing.T) {
	// decimal commas force the tab-delimited strategy: the comma parser
	// cannot find the headers in this document
	raw := "\uFEFFDate_From \tKey_Rate\n" +
		" 2024-03-01T00:00:00 \t 16,5% \n" +
		"\uFEFF2024-07-26\t15%\n"

	steps := requireSteps(t, raw)
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if steps[0].DateFrom != date(2024, time.March, 1) {
		t.Fatalf("expected time suffix to be ignored, got %s", steps[0].DateFrom)
	}
	if !steps[0].KeyRate.Equal(decimal.RequireFromString("16.5")) {
		t.Fatalf("expected decimal comma 16,5%% to parse as 16.5, got %s", steps[0].KeyRate)
	}
	if steps[1].DateFrom != date(2024, time.July, 26) {
		t.Fatalf("expected BOM-prefixed date value to survive cleaning, got %s", steps[1].DateFrom)
	}
}

func TestParseStepsDropsUnparseableRows(t *testing.T) {
	raw := "date_from,key_rate\n" +
		"not-a-date,16.0\n" +
		"2024-07-26,no rate\n" +
		"2024-03-01,16.0\n"

	steps := requireSteps(t, raw)
	if len(steps) != 1 {
		t.Fatalf("expected bad rows to be dropped, got %d steps", len(steps))
	}
	if steps[0].DateFrom != date(2024, time.March, 1) {
		t.Fatalf("unexpected surviving row: %s", steps[0].DateFrom)
	}
}

func TestParseStepsZeroValidRowsIsNotAnError(t *testing.T) {
	steps := requireSteps(t, "date_from,key_rate\n")
	if len(steps) != 0 {
		t.Fatalf("expected no steps, got %d", len(steps))
	}
}

func TestParseStepsMissingColumnsIsSchemaError(t *testing.T) {
	_, err := ratesource.ParseSteps([]byte("effective_date,rate\n2024-03-01,16.0\n"))
	if !errors.Is(err, ratesource.ErrBadSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if err == nil || err.Error() != "rates source must have columns: date_from, key_rate" {
		t.Fatalf("expected the error to name the required columns, got %v", err)
	}
}

func TestParseStepsGarbageIsSchemaError(t *testing.T) {
	if _, err := ratesource.ParseSteps([]byte("<html>not rates</html>")); !errors.Is(err, ratesource.ErrBadSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
}
