package survey

// Counts tallies answers for one question or section.
type Counts struct {
	Yes   int `json:"Yes"`
	No    int `json:"No"`
	Maybe int `json:"Maybe"`
}

// Total returns Yes+No+Maybe.
func (c Counts) Total() int { return c.Yes + c.No + c.Maybe }

func (c *Counts) add(a Answer) {
	switch a {
	case Yes:
		c.Yes++
	case No:
		c.No++
	case Maybe:
		c.Maybe++
	}
}

// QuestionSummary is one row of the strengths/problems rankings.
type QuestionSummary struct {
	ID         int    `json:"id"`
	Text       string `json:"text"`
	YesCount   int    `json:"yesCount"`
	NoCount    int    `json:"noCount"`
	MaybeCount int    `json:"maybeCount"`
}

// SectionScore names a section and its score.
type SectionScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// NotAvailable is the section name reported when there is nothing to rank.
const NotAvailable = "N/A"

// Summary is the aggregated view of a set of submissions.
type Summary struct {
	SectionScores         map[string]int    `json:"sectionScores"`
	OverallScore          int               `json:"overallScore"`
	SectionCounts         map[string]Counts `json:"sectionCounts"`
	TopStrengths          []QuestionSummary `json:"topStrengths"`
	TopProblems           []QuestionSummary `json:"topProblems"`
	HighestScoringSection SectionScore      `json:"highestScoringSection"`
	LowestScoringSection  SectionScore      `json:"lowestScoringSection"`
	// AllQuestions is every catalog question in id order; nil on the empty dashboard.
	AllQuestions []QuestionSummary `json:"allQuestions,omitempty"`
}

// Dashboard is the dashboard-stats payload. PerformanceByDept is nil when a
// department filter is active and is omitted from JSON in that case.
type Dashboard struct {
	TotalSubmissions int `json:"totalSubmissions"`
	Summary
	PerformanceByDept map[string]int `json:"performanceByDept,omitzero"`
}

// EmptyDashboard is returned when no submissions match a filter.
func EmptyDashboard() *Dashboard {
	return &Dashboard{
		TotalSubmissions: 0,
		Summary: Summary{
			SectionScores:         map[string]int{},
			OverallScore:          0,
			SectionCounts:         map[string]Counts{},
			TopStrengths:          []QuestionSummary{},
			TopProblems:           []QuestionSummary{},
			HighestScoringSection: SectionScore{Name: NotAvailable, Score: 0},
			LowestScoringSection:  SectionScore{Name: NotAvailable, Score: 0},
		},
		PerformanceByDept: map[string]int{},
	}
}
