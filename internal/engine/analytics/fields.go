package analytics

import (
	"math"
	"time"

	"formflow/internal/model"
)

// choiceStats counts scalar and multi-select answers against the configured
// options. Percentages are relative to the submissions that answered.
func choiceStats(field *model.FieldDefinition, values []any, stats *model.FieldStats) {
	counts := make([]int, len(field.Options))
	for _, v := range values {
		for _, picked := range model.AsStrings(v) {
			for i, opt := range field.Options {
				if opt == picked {
					counts[i]++
					break
				}
			}
		}
	}

	out := &model.ChoiceStats{Distribution: make([]model.OptionCount, len(field.Options))}
	best := 0
	for i, opt := range field.Options {
		out.Distribution[i] = model.OptionCount{
			Option:     opt,
			Count:      counts[i],
			Percentage: percent(counts[i], stats.Responses),
		}
		if counts[i] > best {
			best = counts[i]
			out.MostPopular = opt
		}
	}
	stats.Choice = out
}

// ratingStats buckets whole-number ratings into 1..MaxRating
func ratingStats(field *model.FieldDefinition, values []any, stats *model.FieldStats) {
	maxRating := field.MaxRating()
	counts := make([]int, maxRating)
	sum, n := 0.0, 0
	for _, v := range values {
		r, ok := model.AsNumber(v)
		if !ok {
			continue
		}
		sum += r
		n++
		if b := int(r); float64(b) == r && b >= 1 && b <= maxRating {
			counts[b-1]++
		}
	}

	out := &model.RatingStats{Count: n, Max: maxRating, Distribution: make([]model.OptionCount, maxRating)}
	if n > 0 {
		out.Average = round(sum/float64(n), 1)
	}
	for i := range counts {
		out.Distribution[i] = model.OptionCount{
			Option:     model.Stringify(float64(i + 1)),
			Count:      counts[i],
			Percentage: percent(counts[i], n),
		}
	}
	stats.Rating = out
}

func scaleStats(field *model.FieldDefinition, values []any, stats *model.FieldStats) {
	var rows, cols []model.Item
	if field.Scale != nil {
		rows, cols = field.Scale.Statements, field.Scale.Labels
	}
	stats.Scale = gridStats(rows, cols, values)
}

func matrixStats(field *model.FieldDefinition, values []any, stats *model.FieldStats) {
	var rows, cols []model.Item
	if field.Matrix != nil {
		rows, cols = field.Matrix.Rows, field.Matrix.Columns
	}
	stats.Matrix = gridStats(rows, cols, values)
}

// gridStats distributes each row's answers over the columns. An answer is a
// map keyed by row id or label whose values name a column, or several
// columns for checkbox grids.
func gridStats(rows, cols []model.Item, values []any) *model.GridStats {
	out := &model.GridStats{Rows: make([]model.RowDistribution, len(rows))}
	for r, row := range rows {
		counts := make([]int, len(cols))
		answered := 0
		for _, v := range values {
			m, ok := model.AsMap(v)
			if !ok {
				continue
			}
			cell, found := rowValue(m, row)
			if !found || model.IsBlank(cell) {
				continue
			}
			answered++
			for _, picked := range model.AsStrings(cell) {
				for c, col := range cols {
					if col.Matches(picked) {
						counts[c]++
						break
					}
				}
			}
		}

		dist := make([]model.OptionCount, len(cols))
		for c, col := range cols {
			dist[c] = model.OptionCount{Option: col.Label, Count: counts[c], Percentage: percent(counts[c], answered)}
		}
		out.Rows[r] = model.RowDistribution{ID: row.ID, Label: row.Label, Responses: answered, Distribution: dist}
	}
	return out
}

func rowValue(m map[string]any, row model.Item) (any, bool) {
	if v, ok := m[row.ID]; ok {
		return v, true
	}
	v, ok := m[row.Label]
	return v, ok
}

func numericStats(_ *model.FieldDefinition, values []any, stats *model.FieldStats) {
	out := &model.NumericStats{}
	for _, v := range values {
		n, ok := model.AsNumber(v)
		if !ok {
			continue
		}
		if out.Count == 0 {
			out.Min, out.Max = n, n
		}
		out.Min = math.Min(out.Min, n)
		out.Max = math.Max(out.Max, n)
		out.Sum += n
		out.Count++
	}
	if out.Count > 0 {
		out.Average = round(out.Sum/float64(out.Count), 2)
	}
	stats.Numeric = out
}

// dateStats accepts YYYY-MM-DD or RFC 3339 values and reports the earliest
// and latest as entered
func dateStats(_ *model.FieldDefinition, values []any, stats *model.FieldStats) {
	out := &model.DateStats{}
	var lo, hi time.Time
	for _, v := range values {
		s, ok := model.AsString(v)
		if !ok {
			continue
		}
		t, ok := parseDate(s)
		if !ok {
			continue
		}
		if out.Earliest == "" || t.Before(lo) {
			lo, out.Earliest = t, s
		}
		if out.Latest == "" || t.After(hi) {
			hi, out.Latest = t, s
		}
	}
	stats.Date = out
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// fileStats counts stored upload references. Their content is opaque.
func fileStats(_ *model.FieldDefinition, values []any, stats *model.FieldStats) {
	out := &model.FileStats{}
	for _, v := range values {
		out.Uploads += len(model.AsStrings(v))
	}
	stats.File = out
}
