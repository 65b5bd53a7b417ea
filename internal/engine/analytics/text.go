package analytics

import (
	"sort"
	"strings"

	"formflow/internal/engine/scoring"
	"formflow/internal/model"
)

const topWordLimit = 10

func textStats(_ *model.FieldDefinition, values []any, stats *model.FieldStats) {
	out := &model.TextStats{TopWords: []model.WordCount{}}

	counts := make(map[string]int)
	var order []string
	total, n := 0, 0
	for _, v := range values {
		if model.IsBlank(v) {
			continue
		}
		text := model.Stringify(v)
		words := scoring.CountWords(text)
		if n == 0 || words > out.LongestWords {
			out.LongestWords = words
		}
		if n == 0 || words < out.ShortestWords {
			out.ShortestWords = words
		}
		total += words
		n++

		for _, w := range strings.Fields(scoring.Normalize(text)) {
			if len(w) <= 3 {
				continue
			}
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}
	if n > 0 {
		out.AverageWords = round(float64(total)/float64(n), 1)
	}

	// order holds first appearance, so a stable sort keeps ties in that order
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > topWordLimit {
		order = order[:topWordLimit]
	}
	for _, w := range order {
		out.TopWords = append(out.TopWords, model.WordCount{Word: w, Count: counts[w]})
	}
	stats.Text = out
}
