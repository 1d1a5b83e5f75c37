package ratesource

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/api-sage/statutory-interest-service/src/internal/domain"
	"github.com/api-sage/statutory-interest-service/src/internal/logger"
)

const (
	fieldDateFrom = "date_from"
	fieldKeyRate  = "key_rate"
)

// ErrBadSchema is returned when no parser strategy can find the two
// required columns in the fetched document.
var ErrBadSchema = errors.New("rates source must have columns: date_from, key_rate")

// rawRow is the untyped intermediate record the parsers emit; cleaning
// either turns it into a RateStep or rejects it.
type rawRow struct {
	date string
	rate string
}

// ParseSteps parses the raw rates document, trying comma-delimited CSV,
// then tab-delimited, then a JSON array of records. A strategy counts as
// successful only when it yields both required fields after header
// normalization; otherwise the next one is tried. Rows that fail value
// cleaning are dropped individually and never fail the whole parse.
func ParseSteps(raw []byte) ([]domain.RateStep, error) {
	parsers := []func([]byte) ([]rawRow, bool){
		func(b []byte) ([]rawRow, bool) { return parseDelimited(b, ',') },
		func(b []byte) ([]rawRow, bool) { return parseDelimited(b, '\t') },
		parseJSON,
	}

	for _, parse := range parsers {
		rows, ok := parse(raw)
		if !ok {
			continue
		}
		return []domain.RateStep(domain.NewSchedule(cleanRows(rows))), nil
	}

	return nil, ErrBadSchema
}

func parseDelimited(raw []byte, comma rune) ([]rawRow, bool) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = comma
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil || len(records) < 1 {
		return nil, false
	}

	dateIdx, rateIdx := -1, -1
	for i, header := range records[0] {
		switch normalizeField(header) {
		case fieldDateFrom:
			dateIdx = i
		case fieldKeyRate:
			rateIdx = i
		}
	}
	if dateIdx < 0 || rateIdx < 0 {
		return nil, false
	}

	rows := make([]rawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if dateIdx >= len(record) || rateIdx >= len(record) {
			continue
		}
		rows = append(rows, rawRow{date: record[dateIdx], rate: record[rateIdx]})
	}
	return rows, true
}

func parseJSON(raw []byte) ([]rawRow, bool) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var records []map[string]any
	if err := decoder.Decode(&records); err != nil || len(records) == 0 {
		return nil, false
	}

	rows := make([]rawRow, 0, len(records))
	sawFields := false
	for _, record := range records {
		var row rawRow
		hasDate, hasRate := false, false
		for key, value := range record {
			switch normalizeField(key) {
			case fieldDateFrom:
				row.date, hasDate = fieldString(value), true
			case fieldKeyRate:
				row.rate, hasRate = fieldString(value), true
			}
		}
		if hasDate && hasRate {
			sawFields = true
			rows = append(rows, row)
		}
	}
	if !sawFields {
		return nil, false
	}
	return rows, true
}

func cleanRows(rows []rawRow) []domain.RateStep {
	steps := make([]domain.RateStep, 0, len(rows))
	for _, row := range rows {
		date := normalizeValue(row.date)
		if len(date) > 10 {
			// tolerate embedded time components, only the date part matters
			date = date[:10]
		}
		parsedDate, err := civil.ParseDate(date)
		if err != nil {
			logger.Warn("rates row dropped: bad date", logger.Fields{"date": row.date})
			continue
		}

		rate := strings.ReplaceAll(normalizeValue(row.rate), "%", "")
		rate = strings.ReplaceAll(rate, ",", ".")
		parsedRate, err := decimal.NewFromString(rate)
		if err != nil {
			logger.Warn("rates row dropped: bad rate", logger.Fields{"rate": row.rate})
			continue
		}

		steps = append(steps, domain.RateStep{DateFrom: parsedDate, KeyRate: parsedRate})
	}
	return steps
}

func normalizeField(name string) string {
	return strings.ToLower(normalizeValue(name))
}

func normalizeValue(value string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), "\uFEFF"))
}

func fieldString(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case json.Number:
		return typed.String()
	case nil:
		return ""
	default:
		return ""
	}
}
