package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"formflow/internal/model"
)

var now = time.Date(2026, 5, 20, 15, 30, 0, 0, time.UTC)

func sub(at time.Time, responses model.ResponseMap) model.Submission {
	return model.Submission{Responses: responses, SubmittedAt: at}
}

func TestHandlersCoverEveryFieldType(t *testing.T) {
	for _, ft := range model.AllFieldTypes {
		if _, ok := handlers[ft]; !ok {
			t.Errorf("no analytics handler entry for %s", ft)
		}
	}
	for ft, h := range handlers {
		if ft.IsInput() != (h != nil) {
			t.Errorf("handler for %s: input=%v handler=%v", ft, ft.IsInput(), h != nil)
		}
	}
}

func TestAggregate_ChoiceDistribution(t *testing.T) {
	schema := &model.FormSchema{Fields: []model.FieldDefinition{
		{ID: "pick", Type: model.FieldChoice, Label: "Pick one", Options: []string{"A", "B", "C"}},
	}}
	var subs []model.Submission
	for _, v := range []string{"A", "A", "B", "C", "A"} {
		subs = append(subs, sub(now, model.ResponseMap{"pick": v}))
	}

	stats := AggregateAt(schema, subs, now).FieldAnalytics["pick"]
	if stats.Responses != 5 {
		t.Errorf("Responses = %d, want 5", stats.Responses)
	}
	want := []model.OptionCount{
		{Option: "A", Count: 3, Percentage: 60},
		{Option: "B", Count: 1, Percentage: 20},
		{Option: "C", Count: 1, Percentage: 20},
	}
	for i, w := range want {
		if got := stats.Choice.Distribution[i]; got != w {
			t.Errorf("distribution[%d] = %+v, want %+v", i, got, w)
		}
	}
	if stats.Choice.MostPopular != "A" {
		t.Errorf("MostPopular = %q, want A", stats.Choice.MostPopular)
	}
}

func TestAggregate_MultiChoiceAndTies(t *testing.T) {
	schema := &model.FormSchema{Fields: []model.FieldDefinition{
		{ID: "pets", Type: model.FieldMultiChoice, Options: []string{"Cat", "Dog", "Fish"}},
	}}
	subs := []model.Submission{
		sub(now, model.ResponseMap{"pets": []any{"Dog", "Cat"}}),
		sub(now, model.ResponseMap{"pets": "Dog"}),
		sub(now, model.ResponseMap{"pets": []any{"Cat"}}),
		sub(now, model.ResponseMap{}),
	}
	stats := AggregateAt(schema, subs, now).FieldAnalytics["pets"]
	if stats.Responses != 3 {
		t.Errorf("Responses = %d, want 3", stats.Responses)
	}
	if got := stats.Choice.Distribution[0]; got.Count != 2 || got.Percentage != 66.7 {
		t.Errorf("Cat = %+v, want 2 / 66.7%%", got)
	}
	if stats.Choice.MostPopular != "Cat" {
		t.Errorf("MostPopular = %q, want Cat (first of the tie)", stats.Choice.MostPopular)
	}
}

func TestAggregate_EmptyFieldsKeepShape(t *testing.T) {
	schema := &model.FormSchema{Fields: []model.FieldDefinition{
		{ID: "pick", Type: model.FieldDropdown, Options: []string{"A"}},
		{ID: "num", Type: model.FieldNumeric},
		{ID: "essay", Type: model.FieldLongText},
		{ID: "stars", Type: model.FieldRating},
		{ID: "intro", Type: model.FieldHeading},
	}}
	snap := AggregateAt(schema, nil, now)
	if len(snap.FieldAnalytics) != 4 {
		t.Fatalf("FieldAnalytics has %d entries, want 4", len(snap.FieldAnalytics))
	}
	if c := snap.FieldAnalytics["pick"].Choice; c == nil || c.MostPopular != "" || c.Distribution[0].Count != 0 {
		t.Errorf("empty choice stats = %+v", c)
	}
	if n := snap.FieldAnalytics["num"].Numeric; n == nil || n.Count != 0 {
		t.Errorf("empty numeric stats = %+v", n)
	}
	if tx := snap.FieldAnalytics["essay"].Text; tx == nil || tx.TopWords == nil {
		t.Errorf("empty text stats = %+v", tx)
	}
	if r := snap.FieldAnalytics["stars"].Rating; r == nil || len(r.Distribution) != 5 {
		t.Errorf("empty rating stats = %+v", r)
	}
	if snap.CompletionRate != "100" {
		t.Errorf("CompletionRate = %q, want 100", snap.CompletionRate)
	}
}

func TestAggregate_Rating(t *testing.T) {
	schema := &model.FormSchema{Fields: []model.FieldDefinition{
		{ID: "stars", Type: model.FieldRating, Rating: &model.RatingConfig{Max: 10}},
	}}
	subs := []model.Submission{
		sub(now, model.ResponseMap{"stars": float64(8)}),
		sub(now, model.ResponseMap{"stars": "9"}),
		sub(now, model.ResponseMap{"stars": float64(10)}),
		sub(now, model.ResponseMap{"stars": "n/a"}),
		sub(now, model.ResponseMap{"stars": "Inf"}),
		sub(now, model.ResponseMap{"stars": "NaN"}),
	}
	r := AggregateAt(schema, subs, now).FieldAnalytics["stars"].Rating
	if r.Count != 3 || r.Average != 9 || r.Max != 10 {
		t.Errorf("rating = %+v", r)
	}
	if len(r.Distribution) != 10 || r.Distribution[9].Count != 1 || r.Distribution[9].Option != "10" {
		t.Errorf("distribution = %+v", r.Distribution)
	}
}

func TestAggregate_Numeric(t *testing.T) {
	schema := &model.FormSchema{Fields: []model.FieldDefinition{{ID: "age", Type: model.FieldNumeric}}}
	subs := []model.Submission{
		sub(now, model.ResponseMap{"age": float64(10)}),
		sub(now, model.ResponseMap{"age": "20"}),
		sub(now, model.ResponseMap{"age": float64(3)}),
		sub(now, model.ResponseMap{"age": "abc"}),
		sub(now, model.ResponseMap{"age": "NaN"}),
		sub(now, model.ResponseMap{"age": "-infinity"}),
	}
	snap := AggregateAt(schema, subs, now)
	n := snap.FieldAnalytics["age"].Numeric
	want := model.NumericStats{Average: 11, Min: 3, Max: 20, Sum: 33, Count: 3}
	if *n != want {
		t.Errorf("numeric = %+v, want %+v", *n, want)
	}
	if _, err := json.Marshal(snap); err != nil {
		t.Errorf("snapshot does not encode: %v", err)
	}
}

func TestAggregate_Text(t *testing.T) {
	schema := &model.FormSchema{Fields: []model.FieldDefinition{{ID: "why", Type: model.FieldLongText}}}
	subs := []model.Submission{
		sub(now, model.ResponseMap{"why": "Cats are great, cats purr"}),
		sub(now, model.ResponseMap{"why": "Dogs bark"}),
		sub(now, model.ResponseMap{"why": "   "}),
	}
	tx := AggregateAt(schema, subs, now).FieldAnalytics["why"].Text
	if tx.AverageWords != 3.5 || tx.LongestWords != 5 || tx.ShortestWords != 2 {
		t.Errorf("word counts = %+v", tx)
	}
	if len(tx.TopWords) == 0 || tx.TopWords[0] != (model.WordCount{Word: "cats", Count: 2}) {
		t.Errorf("TopWords = %+v", tx.TopWords)
	}
	for _, w := range tx.TopWords {
		if len(w.Word) <= 3 {
			t.Errorf("short word %q in TopWords", w.Word)
		}
	}
	if tx.TopWords[1].Word != "great" {
		t.Errorf("ties should keep first appearance, got %+v", tx.TopWords)
	}
}

func TestAggregate_ScaleAndMatrix(t *testing.T) {
	schema := &model.FormSchema{Fields: []model.FieldDefinition{
		{ID: "likert", Type: model.FieldScale, Scale: &model.ScaleConfig{
			Statements: []model.Item{{ID: "s1", Label: "Easy to use"}},
			Labels:     []model.Item{{ID: "agree", Label: "Agree"}, {ID: "disagree", Label: "Disagree"}},
		}},
		{ID: "grid", Type: model.FieldMatrix, Matrix: &model.MatrixConfig{
			Rows:    []model.Item{{ID: "Mon", Label: "Mon"}, {ID: "Tue", Label: "Tue"}},
			Columns: []model.Item{{ID: "am", Label: "Morning"}, {ID: "pm", Label: "Evening"}},
		}},
	}}
	subs := []model.Submission{
		sub(now, model.ResponseMap{
			"likert": map[string]any{"s1": "agree"},
			"grid":   map[string]any{"Mon": []any{"am", "pm"}, "Tue": "Evening"},
		}),
		sub(now, model.ResponseMap{
			"likert": map[string]any{"Easy to use": "Disagree"},
			"grid":   map[string]any{"Mon": "am"},
		}),
	}
	snap := AggregateAt(schema, subs, now)

	row := snap.FieldAnalytics["likert"].Scale.Rows[0]
	if row.Responses != 2 || row.Distribution[0].Count != 1 || row.Distribution[1].Count != 1 {
		t.Errorf("scale row = %+v", row)
	}

	rows := snap.FieldAnalytics["grid"].Matrix.Rows
	if rows[0].Responses != 2 || rows[0].Distribution[0].Count != 2 || rows[0].Distribution[1].Count != 1 {
		t.Errorf("Mon row = %+v", rows[0])
	}
	if rows[1].Responses != 1 || rows[1].Distribution[1].Count != 1 || rows[1].Distribution[1].Percentage != 100 {
		t.Errorf("Tue row = %+v", rows[1])
	}
}

func TestAggregate_DateAndFile(t *testing.T) {
	schema := &model.FormSchema{Fields: []model.FieldDefinition{
		{ID: "when", Type: model.FieldDate},
		{ID: "upload", Type: model.FieldFile},
	}}
	subs := []model.Submission{
		sub(now, model.ResponseMap{"when": "2026-02-01", "upload": "https://files.example/a.png"}),
		sub(now, model.ResponseMap{"when": "2025-12-24", "upload": []any{"u1", "u2"}}),
		sub(now, model.ResponseMap{"when": "not a date"}),
	}
	snap := AggregateAt(schema, subs, now)
	if d := snap.FieldAnalytics["when"].Date; d.Earliest != "2025-12-24" || d.Latest != "2026-02-01" {
		t.Errorf("date = %+v", d)
	}
	if f := snap.FieldAnalytics["upload"].File; f.Uploads != 3 {
		t.Errorf("uploads = %d, want 3", f.Uploads)
	}
}

func TestCompletionRate(t *testing.T) {
	schema := &model.FormSchema{Fields: []model.FieldDefinition{
		{ID: "name", Type: model.FieldShortText, Required: true},
		{ID: "S1", Type: model.FieldSection, Required: true},
		{ID: "age", Type: model.FieldNumeric, Required: true},
		{ID: "notes", Type: model.FieldLongText},
	}}
	subs := []model.Submission{
		sub(now, model.ResponseMap{"name": "Ada", "age": float64(36)}),
		sub(now, model.ResponseMap{"name": "Bob", "age": ""}),
		sub(now, model.ResponseMap{"name": "Cy", "age": float64(0)}),
	}
	if got := CompletionRate(schema, subs); got != "66.7" {
		t.Errorf("CompletionRate = %q, want 66.7", got)
	}
	if got := CompletionRate(schema, nil); got != "100" {
		t.Errorf("CompletionRate without submissions = %q, want 100", got)
	}

	optional := &model.FormSchema{Fields: []model.FieldDefinition{{ID: "notes", Type: model.FieldLongText}}}
	if got := CompletionRate(optional, []model.Submission{sub(now, nil)}); got != "100" {
		t.Errorf("CompletionRate without required fields = %q, want 100", got)
	}
}

func TestOverviewAndTime(t *testing.T) {
	schema := &model.FormSchema{}
	// today at 14h and 13h, this week at 15h and 16h, this month at 15h,
	// and one outside every window at 15h
	subs := []model.Submission{
		sub(now.Add(-time.Hour), nil),
		sub(now.Add(-2*time.Hour), nil),
		sub(now.AddDate(0, 0, -3), nil),
		sub(now.AddDate(0, 0, -20), nil),
		sub(now.AddDate(0, 0, -45), nil),
		sub(now.AddDate(0, 0, -3).Add(time.Hour), nil),
	}
	snap := AggregateAt(schema, subs, now)

	want := model.Overview{TotalSubmissions: 6, Today: 2, ThisWeek: 4, ThisMonth: 5}
	if snap.Overview != want {
		t.Errorf("Overview = %+v, want %+v", snap.Overview, want)
	}

	ta := snap.TimeAnalytics
	if len(ta.Daily) != 30 {
		t.Fatalf("Daily has %d buckets, want 30", len(ta.Daily))
	}
	if ta.Daily[29].Date != "2026-05-20" || ta.Daily[0].Date != "2026-04-21" {
		t.Errorf("window = %s..%s", ta.Daily[0].Date, ta.Daily[29].Date)
	}
	if ta.Daily[29].Count != 2 || ta.Daily[26].Count != 2 {
		t.Errorf("daily counts = %+v", ta.Daily)
	}
	if ta.PeakDay != "2026-05-17" {
		t.Errorf("PeakDay = %s, want the earlier of the tied days", ta.PeakDay)
	}
	if ta.PeakHour != 15 || ta.Hourly[15] != 3 {
		t.Errorf("PeakHour = %d hourly = %v", ta.PeakHour, ta.Hourly)
	}
}

func TestTimeAnalytics_NoSubmissions(t *testing.T) {
	ta := AggregateAt(&model.FormSchema{}, nil, now).TimeAnalytics
	if ta.PeakDay != ta.Daily[0].Date || ta.PeakHour != 0 {
		t.Errorf("empty peaks = %s / %d, want first buckets", ta.PeakDay, ta.PeakHour)
	}
}
