package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/api-sage/statutory-interest-service/src/internal/adapter/http/models"
	"github.com/api-sage/statutory-interest-service/src/internal/domain"
	"github.com/api-sage/statutory-interest-service/src/internal/logger"
	"github.com/api-sage/statutory-interest-service/src/internal/usecase/service_interfaces"
)

// Verify that CalcService implements the service_interfaces.CalcService interface
var _ service_interfaces.CalcService = (*CalcService)(nil)

var (
	hundred     = decimal.NewFromInt(100)
	daysPerYear = decimal.NewFromInt(365)
)

// CalcService computes statutory interest (Art. 395 RF Civil Code) on a
// principal over a date range, prorated per key-rate validity segment.
type CalcService struct {
	schedule service_interfaces.ScheduleService
}

func NewCalcService(schedule service_interfaces.ScheduleService) *CalcService {
	return &CalcService{schedule: schedule}
}

func (s *CalcService) Calculate(ctx context.Context, req models.CalcRequest) (models.CalcResponse, error) {
	input, err := req.Parse()
	if err != nil {
		logger.Error("calc service validation failed", err, nil)
		return models.CalcResponse{}, err
	}

	// degenerate range after the inclusive-end shift: a valid zero result
	if !input.StartDate.Before(input.EndDate) {
		return models.CalcResponse{Periods: []models.PeriodItem{}, Total: 0}, nil
	}

	schedule, err := s.schedule.Steps(ctx)
	if err != nil {
		logger.Error("calc service schedule refresh failed", err, nil)
		return models.CalcResponse{}, fmt.Errorf("refresh rate schedule: %w", err)
	}
	if len(schedule) == 0 {
		return models.CalcResponse{}, domain.ErrNoRateData
	}

	pieces := schedule.Split(input.StartDate, input.EndDate)
	if len(pieces) == 0 && schedule[0].DateFrom.After(input.StartDate) {
		// the whole range predates the first known step: apply the earliest
		// known rate to the entire range
		pieces = []domain.Segment{{
			Start: input.StartDate,
			End:   input.EndDate,
			Rate:  schedule[0].KeyRate,
		}}
	}

	response := accumulate(pieces, input.Amount, input.DayCount)

	logger.Info("calc service calculation success", logger.Fields{
		"start":   input.StartDate.String(),
		"end":     input.EndDate.String(),
		"periods": len(response.Periods),
		"total":   response.Total,
	})
	return response, nil
}

func (s *CalcService) Rates(ctx context.Context) ([]models.RateItem, error) {
	schedule, err := s.schedule.Steps(ctx)
	if err != nil {
		logger.Error("calc service rates refresh failed", err, nil)
		return nil, fmt.Errorf("refresh rate schedule: %w", err)
	}

	items := make([]models.RateItem, 0, len(schedule))
	for _, step := range schedule {
		items = append(items, models.RateItem{
			DateFrom: step.DateFrom,
			KeyRate:  step.KeyRate.InexactFloat64(),
		})
	}
	return items, nil
}

// accumulate turns segments into day counts and prorated interest amounts.
// Each segment's interest is rounded to 2 decimals on its own, and the
// total is the sum of those rounded values, rounded again. Summing raw
// values first would change totals, so the order here is load-bearing.
func accumulate(segments []domain.Segment, amount decimal.Decimal, dayCount string) models.CalcResponse {
	periods := make([]models.PeriodItem, 0, len(segments))
	total := decimal.Zero

	for _, segment := range segments {
		days := segment.End.DaysSince(segment.Start)
		if days <= 0 {
			continue
		}

		interest := amount.
			Mul(segment.Rate).
			Div(hundred).
			Mul(yearFraction(days, dayCount)).
			Round(2)

		periods = append(periods, models.PeriodItem{
			Start:    segment.Start,
			End:      segment.End,
			Rate:     segment.Rate.InexactFloat64(),
			Days:     days,
			Interest: interest.InexactFloat64(),
		})
		total = total.Add(interest)
	}

	return models.CalcResponse{
		Periods: periods,
		Total:   total.Round(2).InexactFloat64(),
	}
}

// yearFraction converts a day count to a fraction of a year. Both accepted
// bases currently use a fixed 365-day year; ACT/365 is kept as a separate
// label for forward compatibility.
func yearFraction(days int, _ string) decimal.Decimal {
	return decimal.NewFromInt(int64(days)).Div(daysPerYear)
}
