package survey

import (
	"math"
	"sort"
)

const (
	// topN bounds the strengths and problems rankings.
	topN = 5

	yesWeight   = 100
	maybeWeight = 50
)

// Aggregator computes summaries against a fixed catalog.
type Aggregator struct {
	catalog *Catalog
}

// NewAggregator returns an Aggregator over c.
func NewAggregator(c *Catalog) *Aggregator {
	return &Aggregator{catalog: c}
}

// Catalog returns the catalog the aggregator scores against.
func (a *Aggregator) Catalog() *Catalog { return a.catalog }

// Aggregate never fails. Ids outside the catalog and values outside
// Yes/Maybe/No are ignored for both question and section tallies.
func (a *Aggregator) Aggregate(submissions []Answers) Summary {
	questionCounts := make(map[int]*Counts, a.catalog.Len())
	for _, id := range a.catalog.ids {
		questionCounts[id] = &Counts{}
	}
	sections := a.catalog.sections
	sectionCounts := make([]Counts, len(sections))

	for _, answers := range submissions {
		for id, value := range answers {
			if !value.Valid() {
				continue
			}
			qc, ok := questionCounts[id]
			if !ok {
				continue
			}
			qc.add(value)
			for i := range sections {
				if sections[i].Contains(id) {
					sectionCounts[i].add(value)
					break
				}
			}
		}
	}

	questions := make([]QuestionSummary, 0, len(a.catalog.ids))
	for _, id := range a.catalog.ids {
		c := questionCounts[id]
		questions = append(questions, QuestionSummary{
			ID:         id,
			Text:       a.catalog.questions[id],
			YesCount:   c.Yes,
			NoCount:    c.No,
			MaybeCount: c.Maybe,
		})
	}

	summary := Summary{
		SectionScores: make(map[string]int, len(sections)),
		SectionCounts: make(map[string]Counts, len(sections)),
		TopStrengths:  rankQuestions(questions, func(q QuestionSummary) int { return q.YesCount }),
		TopProblems:   rankQuestions(questions, func(q QuestionSummary) int { return q.NoCount }),
		AllQuestions:  questions,
	}

	scoreSum := 0
	highest := SectionScore{Name: NotAvailable, Score: -1}
	lowest := SectionScore{Name: NotAvailable, Score: 101}
	for i, s := range sections {
		score := SectionScoreOf(sectionCounts[i])
		summary.SectionScores[s.Name] = score
		summary.SectionCounts[s.Name] = sectionCounts[i]
		scoreSum += score
		if score > highest.Score {
			highest = SectionScore{Name: s.Name, Score: score}
		}
		if score < lowest.Score {
			lowest = SectionScore{Name: s.Name, Score: score}
		}
	}
	if len(sections) > 0 {
		summary.OverallScore = roundHalfUp(float64(scoreSum) / float64(len(sections)))
	}

	if len(submissions) == 0 {
		highest = SectionScore{Name: NotAvailable, Score: 0}
		lowest = SectionScore{Name: NotAvailable, Score: 0}
	}
	summary.HighestScoringSection = highest
	summary.LowestScoringSection = lowest

	return summary
}

// SectionScoreOf is round((Yes*100 + Maybe*50) / total), or 0 with no answers.
func SectionScoreOf(c Counts) int {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return roundHalfUp(float64(c.Yes*yesWeight+c.Maybe*maybeWeight) / float64(total))
}

// rankQuestions keeps catalog order among equal counts.
func rankQuestions(questions []QuestionSummary, count func(QuestionSummary) int) []QuestionSummary {
	sorted := append([]QuestionSummary(nil), questions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return count(sorted[i]) > count(sorted[j])
	})
	if len(sorted) > topN {
		sorted = sorted[:topN]
	}
	out := make([]QuestionSummary, 0, len(sorted))
	for _, q := range sorted {
		if count(q) > 0 {
			out = append(out, q)
		}
	}
	return out
}

// roundHalfUp rounds .5 towards +Inf.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
