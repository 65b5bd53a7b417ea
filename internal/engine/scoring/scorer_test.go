package scoring

import (
	"math"
	"strings"
	"testing"

	"formflow/internal/model"
)

const tolerance = 1e-9

func TestNormalizeAndWords(t *testing.T) {
	if got := Normalize("  Hello,   World!! it's\tFINE "); got != "hello world its fine" {
		t.Errorf("Normalize = %q", got)
	}
	got := Words("An ox is at the big barn")
	want := []string{"the", "big", "barn"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Words = %v, want %v", got, want)
	}
}

func TestJaccard(t *testing.T) {
	if got := Jaccard(nil, nil); got != 0 {
		t.Errorf("Jaccard(empty, empty) = %v, want 0", got)
	}
	got := Jaccard([]string{"the", "quick", "brown", "fox"}, []string{"quick", "brown", "fox"})
	if math.Abs(got-0.75) > tolerance {
		t.Errorf("Jaccard = %v, want 0.75", got)
	}
}

func TestCosine(t *testing.T) {
	if got := Cosine([]string{"x"}, nil); got != 0 {
		t.Errorf("Cosine with empty side = %v, want 0", got)
	}
	got := Cosine([]string{"xx", "xx", "yy"}, []string{"xx", "yy"})
	want := 3 / math.Sqrt(10)
	if math.Abs(got-want) > tolerance {
		t.Errorf("Cosine = %v, want %v", got, want)
	}
	a, b := []string{"red", "red", "blue"}, []string{"blue", "green"}
	if math.Abs(Cosine(a, b)-Cosine(b, a)) > tolerance {
		t.Error("Cosine is not symmetric")
	}
}

func TestGradeEssay_IdenticalAnswer(t *testing.T) {
	text := "Photosynthesis converts sunlight into chemical energy stored in glucose"
	res := GradeEssay(text, text, nil, Options{Mode: model.GradingSimilarity, PassingThreshold: 100})
	if math.Abs(res.SimilarityScore-1) > 1e-6 {
		t.Errorf("SimilarityScore = %v, want 1", res.SimilarityScore)
	}
	if res.Score != 100 || !res.Passed {
		t.Errorf("Score = %d passed=%v, want 100 passed", res.Score, res.Passed)
	}
}

func TestGradeEssay_IdenticalWithKeywordsCombined(t *testing.T) {
	text := "Photosynthesis converts sunlight into chemical energy"
	res := GradeEssay(text, text, []string{"sunlight", "Energy"}, Options{Mode: model.GradingCombined, PassingThreshold: 100})
	if res.Score != 100 || !res.Passed {
		t.Errorf("Score = %d passed=%v, want 100 passed", res.Score, res.Passed)
	}
}

func TestGradeEssay_DisjointAnswer(t *testing.T) {
	res := GradeEssay("apples oranges bananas", "cars trucks planes", nil, Options{Mode: model.GradingSimilarity})
	if res.SimilarityScore != 0 {
		t.Errorf("SimilarityScore = %v, want 0", res.SimilarityScore)
	}
	if res.Score != 0 {
		t.Errorf("Score = %d, want 0", res.Score)
	}
}

func TestGradeEssay_QuickBrownFox(t *testing.T) {
	res := GradeEssay("The quick brown fox", "quick brown fox", []string{"fox", "quick"}, Options{Mode: model.GradingSimilarity})
	if res.SimilarityScore <= 0.5 {
		t.Errorf("SimilarityScore = %v, want > 0.5", res.SimilarityScore)
	}
	if len(res.KeywordsFound) != 2 || len(res.KeywordsMissing) != 0 {
		t.Errorf("found=%v missing=%v, want both found", res.KeywordsFound, res.KeywordsMissing)
	}
	if res.Score != 81 {
		t.Errorf("Score = %d, want 81", res.Score)
	}
}

func TestGradeEssay_WordCountPenalties(t *testing.T) {
	text := "quick brown foxes jumping"
	cases := []struct {
		name     string
		min, max int
		want     int
	}{
		{"within bounds", 2, 10, 100},
		{"too short", 10, 0, 70},
		{"too long", 0, 2, 90},
		{"both", 10, 2, 63},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := GradeEssay(text, text, nil, Options{Mode: model.GradingSimilarity, MinWords: c.min, MaxWords: c.max})
			if res.Score != c.want {
				t.Errorf("Score = %d, want %d", res.Score, c.want)
			}
			if res.WordCount != 4 {
				t.Errorf("WordCount = %d, want 4", res.WordCount)
			}
		})
	}
}

func TestGradeEssay_KeywordMode(t *testing.T) {
	res := GradeEssay("Photosynthesis needs SUNLIGHT, water.", "", []string{"sunlight", "Chlorophyll"}, Options{Mode: model.GradingKeywords, PassingThreshold: 60})
	if res.Score != 50 || res.Passed {
		t.Errorf("Score = %d passed=%v, want 50 failed", res.Score, res.Passed)
	}
	if len(res.KeywordsFound) != 1 || res.KeywordsFound[0] != "sunlight" {
		t.Errorf("KeywordsFound = %v", res.KeywordsFound)
	}
	if len(res.KeywordsMissing) != 1 || res.KeywordsMissing[0] != "Chlorophyll" {
		t.Errorf("KeywordsMissing = %v", res.KeywordsMissing)
	}
	if !strings.Contains(res.Feedback, "Missing keywords: Chlorophyll.") {
		t.Errorf("Feedback = %q", res.Feedback)
	}
}

func TestGradeEssay_DegenerateInputs(t *testing.T) {
	res := GradeEssay("anything at all", "", nil, Options{})
	if res.Score != 0 || res.SimilarityScore != 0 {
		t.Errorf("Score = %d similarity = %v, want zeros", res.Score, res.SimilarityScore)
	}
	want := "Your answer differs significantly from the expected response. Several key concepts are missing."
	if res.Feedback != want {
		t.Errorf("Feedback = %q, want %q", res.Feedback, want)
	}
	if res.KeywordsFound == nil || res.KeywordsMissing == nil {
		t.Error("keyword lists should be empty, not nil")
	}
}

func TestGradeEssay_FeedbackKeepsBothTiers(t *testing.T) {
	text := "cats sleep through the afternoon"

	res := GradeEssay(text, text, nil, Options{Mode: model.GradingSimilarity})
	want := "Excellent! Your answer closely matches the expected response. Several key concepts are missing."
	if res.Feedback != want {
		t.Errorf("no keywords: Feedback = %q, want %q", res.Feedback, want)
	}

	res = GradeEssay(text, "", []string{"cats"}, Options{Mode: model.GradingKeywords})
	want = "Your answer differs significantly from the expected response. You covered nearly all of the key concepts."
	if res.Feedback != want {
		t.Errorf("no reference: Feedback = %q, want %q", res.Feedback, want)
	}
}

func TestGradeEssay_FeedbackOrder(t *testing.T) {
	text := "quick brown foxes jumping"
	res := GradeEssay(text, text, []string{"foxes", "wolves"}, Options{Mode: model.GradingCombined, MinWords: 10})
	want := "Excellent! Your answer closely matches the expected response. " +
		"You covered some of the key concepts. " +
		"Missing keywords: wolves. " +
		"Your answer is too short (4 words, minimum 10)."
	if res.Feedback != want {
		t.Errorf("Feedback =\n%q\nwant\n%q", res.Feedback, want)
	}
}

func TestGradeEssay_Points(t *testing.T) {
	res := GradeEssay("alpha beta gamma delta", "alpha beta gamma delta", nil, Options{Mode: model.GradingSimilarity, Points: 20, MinWords: 10})
	if res.PointsAwarded != 14 {
		t.Errorf("PointsAwarded = %d, want 14", res.PointsAwarded)
	}
}

func TestGradeField(t *testing.T) {
	cfg := &model.GradingConfig{
		Enabled:          true,
		ReferenceAnswer:  "Water boils at one hundred degrees",
		Keywords:         []string{"hundred"},
		Mode:             model.GradingCombined,
		PassingThreshold: 50,
		Points:           10,
	}
	res := GradeField(cfg, "Water boils at one hundred degrees")
	if !res.Passed || res.PointsAwarded != 10 {
		t.Errorf("GradeField = %+v", res)
	}
}
