// Package scoring grades free-text answers against a reference answer and a
// keyword list. Grading is deterministic and side-effect free.
package scoring

import (
	"math"
	"strings"

	"formflow/internal/model"
)

const (
	similarityWeight = 0.6
	keywordWeight    = 0.4

	shortPenalty = 0.7
	longPenalty  = 0.9
)

// Options are the grading knobs besides the texts themselves
type Options struct {
	MinWords         int // 0 = no lower bound
	MaxWords         int // 0 = no upper bound
	PassingThreshold int // 0-100
	Mode             model.GradingMode
	Points           int
}

// OptionsFromConfig lifts a field's grading config into Options
func OptionsFromConfig(cfg *model.GradingConfig) Options {
	return Options{
		MinWords:         cfg.MinWords,
		MaxWords:         cfg.MaxWords,
		PassingThreshold: cfg.PassingThreshold,
		Mode:             cfg.Mode,
		Points:           cfg.Points,
	}
}

// GradeField grades an answer with a field's answer key
func GradeField(cfg *model.GradingConfig, answer string) model.ScoreResult {
	return GradeEssay(answer, cfg.ReferenceAnswer, cfg.Keywords, OptionsFromConfig(cfg))
}

// GradeEssay scores answer against reference and keywords. An empty reference
// or keyword list contributes zero instead of failing.
func GradeEssay(answer, reference string, keywords []string, opts Options) model.ScoreResult {
	hasReference := strings.TrimSpace(reference) != ""
	similarity := 0.0
	if hasReference {
		similarity = Similarity(answer, reference)
	}
	found, missing := MatchKeywords(answer, keywords)
	coverage := 0.0
	if total := len(found) + len(missing); total > 0 {
		coverage = float64(len(found)) / float64(total)
	}

	var raw float64
	switch opts.Mode {
	case model.GradingKeywords:
		raw = coverage * 100
	case model.GradingSimilarity:
		raw = similarity * 100
	default:
		raw = (similarityWeight*similarity + keywordWeight*coverage) * 100
	}

	wordCount := CountWords(answer)
	if opts.MinWords > 0 && wordCount < opts.MinWords {
		raw *= shortPenalty
	}
	if opts.MaxWords > 0 && wordCount > opts.MaxWords {
		raw *= longPenalty
	}

	score := int(math.Round(clamp(raw, 0, 100)))
	return model.ScoreResult{
		Score:           score,
		Percentage:      score,
		PointsAwarded:   int(math.Round(float64(opts.Points) * float64(score) / 100)),
		KeywordsFound:   found,
		KeywordsMissing: missing,
		SimilarityScore: similarity,
		Feedback:        buildFeedback(similarity, coverage, missing, wordCount, opts),
		WordCount:       wordCount,
		Passed:          score >= opts.PassingThreshold,
	}
}

// MatchKeywords splits keywords into those present in the normalized answer
// and those absent, keeping their original spelling. Keywords that normalize
// to nothing are ignored.
func MatchKeywords(answer string, keywords []string) (found, missing []string) {
	found, missing = []string{}, []string{}
	text := Normalize(answer)
	for _, kw := range keywords {
		norm := Normalize(kw)
		if norm == "" {
			continue
		}
		if strings.Contains(text, norm) {
			found = append(found, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	return found, missing
}
