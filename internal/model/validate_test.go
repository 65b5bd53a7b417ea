package model

import "testing"

func TestValidate_RatingMax(t *testing.T) {
	cases := []struct {
		name   string
		rating *RatingConfig
		issues int
	}{
		{"unset", nil, 0},
		{"default", &RatingConfig{}, 0},
		{"ten", &RatingConfig{Max: 10}, 0},
		{"too large", &RatingConfig{Max: 2000000000}, 1},
		{"negative", &RatingConfig{Max: -3}, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := FormSchema{Fields: []FieldDefinition{{ID: "stars", Type: FieldRating, Rating: c.rating}}}
			issues := s.Validate()
			if len(issues) != c.issues {
				t.Fatalf("issues = %v, want %d", issues, c.issues)
			}
			if c.issues > 0 && issues[0].Check != "rating" {
				t.Errorf("check = %q, want rating", issues[0].Check)
			}
		})
	}
}

func TestMaxRating(t *testing.T) {
	cases := []struct {
		rating *RatingConfig
		want   int
	}{
		{nil, 5},
		{&RatingConfig{Max: 0}, 5},
		{&RatingConfig{Max: 7}, 7},
		{&RatingConfig{Max: 2000000000}, RatingLimit},
	}
	for _, c := range cases {
		f := FieldDefinition{ID: "stars", Type: FieldRating, Rating: c.rating}
		if got := f.MaxRating(); got != c.want {
			t.Errorf("MaxRating(%+v) = %d, want %d", c.rating, got, c.want)
		}
	}
}
