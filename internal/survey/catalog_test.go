package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_PartitionsAllQuestions(t *testing.T) {
	c := DefaultCatalog()
	require.Equal(t, 25, c.Len())

	for _, id := range c.IDs() {
		text, ok := c.Question(id)
		assert.True(t, ok, "question %d missing", id)
		assert.NotEmpty(t, text)

		matches := 0
		for _, s := range c.Sections() {
			if s.Contains(id) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "question %d should belong to exactly one section", id)
	}
}

func TestDefaultCatalog_SectionOrder(t *testing.T) {
	var names []string
	for _, s := range DefaultCatalog().Sections() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		SectionGoals, SectionRoles, SectionProcedures,
		SectionInternalRelationships, SectionExternalRelationships,
	}, names)
}

func TestCatalog_SectionOf(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		id   int
		want string
		ok   bool
	}{
		{1, SectionGoals, true},
		{4, SectionGoals, true},
		{5, SectionRoles, true},
		{15, SectionProcedures, true},
		{16, SectionInternalRelationships, true},
		{25, SectionExternalRelationships, true},
		{0, "", false},
		{26, "", false},
	}
	for _, tt := range tests {
		s, ok := c.SectionOf(tt.id)
		assert.Equal(t, tt.ok, ok, "id %d", tt.id)
		assert.Equal(t, tt.want, s.Name, "id %d", tt.id)
	}
}

func TestNewCatalog_Rejects(t *testing.T) {
	three := map[int]string{1: "a", 2: "b", 3: "c"}

	tests := []struct {
		name      string
		questions map[int]string
		sections  []Section
		errSubstr string
	}{
		{
			name:      "no questions",
			questions: map[int]string{},
			sections:  []Section{{Name: "A", Start: 1, End: 1}},
			errSubstr: "no questions",
		},
		{
			name:      "gap",
			questions: three,
			sections:  []Section{{Name: "A", Start: 1, End: 1}, {Name: "B", Start: 3, End: 3}},
			errSubstr: "expected 2",
		},
		{
			name:      "overlap",
			questions: three,
			sections:  []Section{{Name: "A", Start: 1, End: 2}, {Name: "B", Start: 2, End: 3}},
			errSubstr: "expected 3",
		},
		{
			name:      "short coverage",
			questions: three,
			sections:  []Section{{Name: "A", Start: 1, End: 2}},
			errSubstr: "cover 1..2",
		},
		{
			name:      "duplicate name",
			questions: three,
			sections:  []Section{{Name: "A", Start: 1, End: 1}, {Name: "A", Start: 2, End: 3}},
			errSubstr: "duplicate",
		},
		{
			name:      "missing text",
			questions: map[int]string{1: "a", 2: ""},
			sections:  []Section{{Name: "A", Start: 1, End: 2}},
			errSubstr: "no text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.questions, tt.sections)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestCatalog_SectionsReturnsCopy(t *testing.T) {
	c := DefaultCatalog()
	s := c.Sections()
	s[0].Name = "changed"
	assert.Equal(t, SectionGoals, c.Sections()[0].Name)
}
