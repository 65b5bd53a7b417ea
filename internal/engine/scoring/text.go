package scoring

import (
	"math"
	"regexp"
	"strings"
)

var (
	nonWord    = regexp.MustCompile(`[^\w\s]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Normalize lowercases text, strips non-word characters and collapses whitespace
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = nonWord.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Words returns the normalized tokens longer than two characters, in order
func Words(text string) []string {
	var out []string
	for _, w := range strings.Fields(Normalize(text)) {
		if len(w) > 2 {
			out = append(out, w)
		}
	}
	return out
}

// CountWords is the raw whitespace-separated word count used for length bounds
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// Jaccard is |A ∩ B| / |A ∪ B| over the word sets, 0 when both are empty
func Jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)
	union := len(setA)
	inter := 0
	for w := range setB {
		if setA[w] {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Cosine compares term-frequency vectors over the joint vocabulary,
// 0 when either vector has no magnitude
func Cosine(a, b []string) float64 {
	tfA := termFrequency(a)
	tfB := termFrequency(b)

	var dot, magA, magB float64
	for w, fa := range tfA {
		dot += fa * tfB[w]
		magA += fa * fa
	}
	for _, fb := range tfB {
		magB += fb * fb
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// Similarity is the mean of Jaccard and Cosine over the two texts' words, in [0,1]
func Similarity(a, b string) float64 {
	wa, wb := Words(a), Words(b)
	return clamp((Jaccard(wa, wb)+Cosine(wa, wb))/2, 0, 1)
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func termFrequency(words []string) map[string]float64 {
	tf := make(map[string]float64, len(words))
	for _, w := range words {
		tf[w]++
	}
	return tf
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
