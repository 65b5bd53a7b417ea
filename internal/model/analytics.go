package model

import "time"

// AnalyticsSnapshot is derived on demand from a schema and its submissions.
// It is cached but never persisted.
type AnalyticsSnapshot struct {
	FormID         string                `json:"formId,omitempty"`
	Overview       Overview              `json:"overview"`
	FieldAnalytics map[string]FieldStats `json:"fieldAnalytics"`
	TimeAnalytics  TimeAnalytics         `json:"timeAnalytics"`
	CompletionRate string                `json:"completionRate"` // percent, one decimal
	GeneratedAt    time.Time             `json:"generatedAt"`
}

// Overview counts submissions relative to evaluation time
type Overview struct {
	TotalSubmissions int `json:"totalSubmissions"`
	Today            int `json:"today"`
	ThisWeek         int `json:"thisWeek"`
	ThisMonth        int `json:"thisMonth"`
}

// FieldStats is a tagged union: Type says which block is set
type FieldStats struct {
	FieldID string    `json:"fieldId"`
	Label   string    `json:"label"`
	Type    FieldType `json:"type"`

	// Responses is the number of submissions with a non-empty value
	Responses int `json:"responses"`

	Choice  *ChoiceStats  `json:"choice,omitempty"`
	Rating  *RatingStats  `json:"rating,omitempty"`
	Scale   *GridStats    `json:"scale,omitempty"`
	Matrix  *GridStats    `json:"matrix,omitempty"`
	Numeric *NumericStats `json:"numeric,omitempty"`
	Text    *TextStats    `json:"text,omitempty"`
	Date    *DateStats    `json:"date,omitempty"`
	File    *FileStats    `json:"file,omitempty"`
}

// OptionCount is one bucket of a distribution
type OptionCount struct {
	Option     string  `json:"option"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ChoiceStats covers choice-single, choice-multi and dropdown fields
type ChoiceStats struct {
	Distribution []OptionCount `json:"distribution"`
	MostPopular  string        `json:"mostPopular"`
}

// RatingStats covers rating fields
type RatingStats struct {
	Average      float64       `json:"average"`
	Count        int           `json:"count"`
	Max          int           `json:"max"`
	Distribution []OptionCount `json:"distribution"` // 1..Max
}

// RowDistribution is the column/label distribution of one matrix row or scale statement
type RowDistribution struct {
	ID           string        `json:"id"`
	Label        string        `json:"label"`
	Responses    int           `json:"responses"`
	Distribution []OptionCount `json:"distribution"`
}

// GridStats covers matrix and scale fields
type GridStats struct {
	Rows []RowDistribution `json:"rows"`
}

// NumericStats covers numeric fields
type NumericStats struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Sum     float64 `json:"sum"`
	Count   int     `json:"count"`
}

// WordCount is a frequent word
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TextStats covers short and long text fields
type TextStats struct {
	AverageWords  float64     `json:"averageWords"`
	LongestWords  int         `json:"longestWords"`
	ShortestWords int         `json:"shortestWords"`
	TopWords      []WordCount `json:"topWords"`
}

// DateStats covers date fields
type DateStats struct {
	Earliest string `json:"earliest,omitempty"`
	Latest   string `json:"latest,omitempty"`
}

// FileStats covers file uploads. URLs are opaque.
type FileStats struct {
	Uploads int `json:"uploads"`
}

// DayCount is one day of the trailing histogram
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// TimeAnalytics holds the daily and hourly submission histograms
type TimeAnalytics struct {
	Daily    []DayCount `json:"daily"`  // 30 days, oldest first
	Hourly   [24]int    `json:"hourly"` // local hour of day
	PeakDay  string     `json:"peakDay"`
	PeakHour int        `json:"peakHour"`
}
