package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

const (
	titleWeight   = 2.0
	summaryWeight = 1.0
)

// rank scores documents by term frequency of q in title and summary and
// orders them by descending score. Server order breaks ties.
func rank(q string, docs []domain.Document) []domain.SearchResult {
	terms := strings.Fields(strings.ToLower(q))
	results := make([]domain.SearchResult, 0, len(docs))

	for _, doc := range docs {
		title := strings.ToLower(doc.Title)
		summary := strings.ToLower(doc.Summary)

		var score float64
		for _, term := range terms {
			score += titleWeight * float64(strings.Count(title, term))
			score += summaryWeight * float64(strings.Count(summary, term))
		}

		snippet := doc.Title
		if doc.Summary != "" && !containsAny(title, terms) && containsAny(summary, terms) {
			snippet = doc.Summary
		}

		results = append(results, domain.SearchResult{
			Document:   doc,
			Score:      score,
			Snippet:    snippet,
			Highlights: highlight(snippet, terms),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// highlight returns the non-overlapping ranges of text matching any term,
// compared case-insensitively, in ascending order.
func highlight(text string, terms []string) []domain.Span {
	if len(terms) == 0 {
		return nil
	}
	lower := strings.ToLower(text)
	if len(lower) != len(text) {
		// Byte offsets only line up when lowering keeps the length.
		return nil
	}

	var spans []domain.Span
	for i := 0; i < len(lower); {
		best := 0
		for _, t := range terms {
			if len(t) > best && strings.HasPrefix(lower[i:], t) {
				best = len(t)
			}
		}
		if best == 0 {
			i++
			continue
		}
		spans = append(spans, domain.Span{Start: i, End: i + best})
		i += best
	}
	return spans
}
