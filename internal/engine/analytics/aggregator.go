// Package analytics derives reporting statistics from a form schema and its
// submissions. Every call recomputes from scratch; nothing is retained.
package analytics

import (
	"math"
	"strconv"
	"time"

	"formflow/internal/model"
)

const trailingDays = 30

// fieldHandler builds the type-specific block of a field's stats from the
// raw responses collected for it, one entry per submission (nil when absent).
type fieldHandler func(field *model.FieldDefinition, values []any, stats *model.FieldStats)

// handlers has one entry per field kind. Layout kinds map to nil and get no
// stat block.
var handlers = map[model.FieldType]fieldHandler{
	model.FieldShortText:   textStats,
	model.FieldLongText:    textStats,
	model.FieldNumeric:     numericStats,
	model.FieldChoice:      choiceStats,
	model.FieldMultiChoice: choiceStats,
	model.FieldDropdown:    choiceStats,
	model.FieldDate:        dateStats,
	model.FieldFile:        fileStats,
	model.FieldMatrix:      matrixStats,
	model.FieldRating:      ratingStats,
	model.FieldScale:       scaleStats,
	model.FieldSection:     nil,
	model.FieldHeading:     nil,
	model.FieldImage:       nil,
}

// Aggregate computes the snapshot relative to the current local time
func Aggregate(schema *model.FormSchema, subs []model.Submission) model.AnalyticsSnapshot {
	return AggregateAt(schema, subs, time.Now())
}

// AggregateAt computes the snapshot relative to now. Day boundaries are taken
// in now's location.
func AggregateAt(schema *model.FormSchema, subs []model.Submission, now time.Time) model.AnalyticsSnapshot {
	snap := model.AnalyticsSnapshot{
		Overview:       overview(subs, now),
		FieldAnalytics: make(map[string]model.FieldStats),
		TimeAnalytics:  timeAnalytics(subs, now),
		CompletionRate: CompletionRate(schema, subs),
		GeneratedAt:    now,
	}

	for i := range schema.Fields {
		field := &schema.Fields[i]
		handle := handlers[field.Type]
		if handle == nil {
			continue
		}
		values := make([]any, len(subs))
		answered := 0
		for j, sub := range subs {
			v := sub.Responses[field.ID]
			values[j] = v
			if !model.IsBlank(v) {
				answered++
			}
		}
		stats := model.FieldStats{
			FieldID:   field.ID,
			Label:     field.Label,
			Type:      field.Type,
			Responses: answered,
		}
		handle(field, values, &stats)
		snap.FieldAnalytics[field.ID] = stats
	}
	return snap
}

// CompletionRate is the share of submissions that answered every required
// input field, as a percentage with one decimal. It is "100" when there is
// nothing to measure.
func CompletionRate(schema *model.FormSchema, subs []model.Submission) string {
	var required []string
	for _, f := range schema.Fields {
		if f.Required && f.Type.IsInput() {
			required = append(required, f.ID)
		}
	}
	if len(required) == 0 || len(subs) == 0 {
		return "100"
	}

	complete := 0
	for _, sub := range subs {
		ok := true
		for _, id := range required {
			if model.IsEmpty(sub.Responses[id]) {
				ok = false
				break
			}
		}
		if ok {
			complete++
		}
	}
	return strconv.FormatFloat(float64(complete)/float64(len(subs))*100, 'f', 1, 64)
}

func overview(subs []model.Submission, now time.Time) model.Overview {
	loc := now.Location()
	today := dayKey(now)
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, -1, 0)

	o := model.Overview{TotalSubmissions: len(subs)}
	for _, sub := range subs {
		at := sub.SubmittedAt.In(loc)
		if dayKey(at) == today {
			o.Today++
		}
		if !at.Before(weekAgo) {
			o.ThisWeek++
		}
		if !at.Before(monthAgo) {
			o.ThisMonth++
		}
	}
	return o
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return round(float64(count)/float64(total)*100, 1)
}
