package analytics

import (
	"time"

	"formflow/internal/model"
)

// timeAnalytics builds the trailing 30-day histogram (oldest first, zero
// filled) and the hour-of-day histogram over all submissions.
func timeAnalytics(subs []model.Submission, now time.Time) model.TimeAnalytics {
	loc := now.Location()
	ta := model.TimeAnalytics{Daily: make([]model.DayCount, trailingDays)}

	index := make(map[string]int, trailingDays)
	for i := 0; i < trailingDays; i++ {
		key := dayKey(now.AddDate(0, 0, i-(trailingDays-1)))
		ta.Daily[i] = model.DayCount{Date: key}
		index[key] = i
	}

	for _, sub := range subs {
		at := sub.SubmittedAt.In(loc)
		if i, ok := index[dayKey(at)]; ok {
			ta.Daily[i].Count++
		}
		ta.Hourly[at.Hour()]++
	}

	peak := 0
	for i, d := range ta.Daily {
		if d.Count > ta.Daily[peak].Count {
			peak = i
		}
	}
	ta.PeakDay = ta.Daily[peak].Date

	for h, c := range ta.Hourly {
		if c > ta.Hourly[ta.PeakHour] {
			ta.PeakHour = h
		}
	}
	return ta
}
