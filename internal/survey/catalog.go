// Package survey holds the team-effectiveness questionnaire and the aggregation
// that turns submitted answers into dashboard scores.
package survey

import (
	"fmt"
	"sort"
)

// Section is a named, contiguous range of question ids.
type Section struct {
	Name  string
	Start int
	End   int
}

// Contains reports whether the question id falls inside the section range.
func (s Section) Contains(id int) bool {
	return id >= s.Start && id <= s.End
}

// Catalog is the read-only question table. Build one with NewCatalog or use
// DefaultCatalog; it has no mutation API.
type Catalog struct {
	questions map[int]string
	sections  []Section
	ids       []int
}

// NewCatalog validates that the sections partition 1..len(questions) with no
// gaps or overlaps and that every id has text.
func NewCatalog(questions map[int]string, sections []Section) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("catalog has no questions")
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("catalog has no sections")
	}

	next := 1
	seen := make(map[string]bool, len(sections))
	for _, s := range sections {
		if s.Name == "" {
			return nil, fmt.Errorf("section at id %d has no name", s.Start)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate section %q", s.Name)
		}
		seen[s.Name] = true
		if s.Start != next {
			return nil, fmt.Errorf("section %q starts at %d, expected %d", s.Name, s.Start, next)
		}
		if s.End < s.Start {
			return nil, fmt.Errorf("section %q has empty range [%d,%d]", s.Name, s.Start, s.End)
		}
		next = s.End + 1
	}
	if last := next - 1; last != len(questions) {
		return nil, fmt.Errorf("sections cover 1..%d but catalog has %d questions", last, len(questions))
	}

	ids := make([]int, 0, len(questions))
	qs := make(map[int]string, len(questions))
	for id, text := range questions {
		if id < 1 || id > len(questions) {
			return nil, fmt.Errorf("question id %d out of range 1..%d", id, len(questions))
		}
		if text == "" {
			return nil, fmt.Errorf("question %d has no text", id)
		}
		qs[id] = text
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return &Catalog{
		questions: qs,
		sections:  append([]Section(nil), sections...),
		ids:       ids,
	}, nil
}

// Len returns the number of questions.
func (c *Catalog) Len() int { return len(c.ids) }

// IDs returns question ids in ascending order.
func (c *Catalog) IDs() []int { return append([]int(nil), c.ids...) }

// Question returns the text for id.
func (c *Catalog) Question(id int) (string, bool) {
	text, ok := c.questions[id]
	return text, ok
}

// Has reports whether id is a catalog question.
func (c *Catalog) Has(id int) bool {
	_, ok := c.questions[id]
	return ok
}

// Sections returns the sections in declaration order.
func (c *Catalog) Sections() []Section { return append([]Section(nil), c.sections...) }

// SectionOf returns the section containing id.
func (c *Catalog) SectionOf(id int) (Section, bool) {
	for _, s := range c.sections {
		if s.Contains(id) {
			return s, true
		}
	}
	return Section{}, false
}

// Section names as shown on the dashboard.
const (
	SectionGoals                 = "Goals"
	SectionRoles                 = "Roles"
	SectionProcedures            = "Procedures"
	SectionInternalRelationships = "Internal Relationships"
	SectionExternalRelationships = "External Relationships"
)

var defaultQuestions = map[int]string{
	1:  "Clear mission statement",
	2:  "Measurable objectives",
	3:  "Objectives are prioritized",
	4:  "Goals are set in all key task areas",
	5:  "Individual roles, relationships, and accountabilities are clear",
	6:  "Style of leadership is appropriate for the team tasks",
	7:  "Each individual is competent to perform key tasks",
	8:  "The mix of roles is appropriate to the team tasks",
	9:  "Decisions reached are effective",
	10: "Management information is effectively shared",
	11: "Key activities are effectively coordinated",
	12: "Product and services are of a high quality",
	13: "Conflict is managed effectively within the team",
	14: "Adequate resources are available",
	15: "People work in a disciplined way",
	16: "There are no areas of mistrust",
	17: "Feedback is constructive",
	18: "Relationships are not competitive and unsupportive",
	19: "There is no sub-grouping",
	20: "There are no personal or hidden agendas",
	21: "People don’t fear sharing ideas and asking for help",
	22: "Honest mistakes are seen as learning opportunities",
	23: "Relationship with key external groups are effective",
	24: "Mechanisms are in place to integrate with each group",
	25: "Time and effort is spent on identifying, building and monitoring key external relationships",
}

var defaultSections = []Section{
	{Name: SectionGoals, Start: 1, End: 4},
	{Name: SectionRoles, Start: 5, End: 8},
	{Name: SectionProcedures, Start: 9, End: 15},
	{Name: SectionInternalRelationships, Start: 16, End: 22},
	{Name: SectionExternalRelationships, Start: 23, End: 25},
}

var defaultCatalog = mustCatalog(defaultQuestions, defaultSections)

func mustCatalog(questions map[int]string, sections []Section) *Catalog {
	c, err := NewCatalog(questions, sections)
	if err != nil {
		panic(fmt.Sprintf("survey: invalid built-in catalog: %v", err))
	}
	return c
}

// DefaultCatalog returns the built-in 25-question catalog.
func DefaultCatalog() *Catalog { return defaultCatalog }
