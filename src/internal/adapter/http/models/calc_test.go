package models_test

import (
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/api-sage/statutory-interest-service/src/internal/adapter/http/models"
)

func TestCalcRequestParseValid(t *testing.T) {
	input, err := models.CalcRequest{
		Amount:    "10000000",
		StartDate: "2024-03-01",
		EndDate:   "2024-09-01",
	}.Parse()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if input.StartDate != (civil.Date{Year: 2024, Month: time.March, Day: 1}) {
		t.Fatalf("unexpected start date %s", input.StartDate)
	}
	if input.DayCount != models.DayCount365 {
		t.Fatalf("expected default day count 365, got %q", input.DayCount)
	}
}

func TestCalcRequestParseEndInclusiveShiftsEndDate(t *testing.T) {
	input, err := models.CalcRequest{
		Amount:       "100",
		StartDate:    "2024-03-01",
		EndDate:      "2024-03-31",
		EndInclusive: "true",
	}.Parse()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if input.EndDate != (civil.Date{Year: 2024, Month: time.April, Day: 1}) {
		t.Fatalf("expected end date shifted to 2024-04-01, got %s", input.EndDate)
	}
}

func TestCalcRequestParseRejectsBadParameters(t *testing.T) {
	cases := []struct {
		name string
		req  models.CalcRequest
		want string
	}{
		{
			name: "missing amount",
			req:  models.CalcRequest{StartDate: "2024-03-01", EndDate: "2024-04-01"},
			want: "amount is required",
		},
		{
			name: "non-numeric amount",
			req:  models.CalcRequest{Amount: "lots", StartDate: "2024-03-01", EndDate: "2024-04-01"},
			want: "amount must be a number",
		},
		{
			name: "non-positive amount",
			req:  models.CalcRequest{Amount: "0", StartDate: "2024-03-01", EndDate: "2024-04-01"},
			want: "amount must be greater than zero",
		},
		{
			name: "bad start date",
			req:  models.CalcRequest{Amount: "100", StartDate: "01.03.2024", EndDate: "2024-04-01"},
			want: "start_date must be an ISO date",
		},
		{
			name: "bad end date",
			req:  models.CalcRequest{Amount: "100", StartDate: "2024-03-01", EndDate: "soon"},
			want: "end_date must be an ISO date",
		},
		{
			name: "bad end_inclusive",
			req:  models.CalcRequest{Amount: "100", StartDate: "2024-03-01", EndDate: "2024-04-01", EndInclusive: "maybe"},
			want: "end_inclusive must be true or false",
		},
		{
			name: "unknown day count",
			req:  models.CalcRequest{Amount: "100", StartDate: "2024-03-01", EndDate: "2024-04-01", DayCount: "ACT/360"},
			want: "day_count must be one of",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.req.Parse()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error to contain %q, got %q", tc.want, err.Error())
			}
		})
	}
}
