package scoring

import (
	"fmt"
	"strings"
)

func similarityMessage(similarity float64) string {
	switch {
	case similarity >= 0.8:
		return "Excellent! Your answer closely matches the expected response."
	case similarity >= 0.6:
		return "Good answer with solid overlap with the expected response."
	case similarity >= 0.4:
		return "Your answer partially matches the expected response."
	}
	return "Your answer differs significantly from the expected response."
}

func keywordMessage(coverage float64) string {
	switch {
	case coverage >= 0.8:
		return "You covered nearly all of the key concepts."
	case coverage >= 0.5:
		return "You covered some of the key concepts."
	}
	return "Several key concepts are missing."
}

func lengthMessage(wordCount int, opts Options) string {
	switch {
	case opts.MinWords > 0 && wordCount < opts.MinWords:
		return fmt.Sprintf("Your answer is too short (%d words, minimum %d).", wordCount, opts.MinWords)
	case opts.MaxWords > 0 && wordCount > opts.MaxWords:
		return fmt.Sprintf("Your answer is too long (%d words, maximum %d).", wordCount, opts.MaxWords)
	}
	return "Your answer length is appropriate."
}

// buildFeedback joins, in order: the similarity tier, the keyword tier, the
// missing keyword list and the length verdict. A part whose input is not
// configured is left out.
// buildFeedback always carries both tier messages; an empty reference or
// keyword list lands in the lowest tier.
func buildFeedback(similarity, coverage float64, missing []string, wordCount int, opts Options) string {
	parts := []string{similarityMessage(similarity), keywordMessage(coverage)}
	if len(missing) > 0 {
		parts = append(parts, "Missing keywords: "+strings.Join(missing, ", ")+".")
	}
	if opts.MinWords > 0 || opts.MaxWords > 0 {
		parts = append(parts, lengthMessage(wordCount, opts))
	}
	return strings.Join(parts, " ")
}
