package orgstructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDegree(t *testing.T) {
	tests := []struct {
		program string
		want    DegreeType
	}{
		{"B.Tech", Bachelor},
		{"BBA", Bachelor},
		{"BA LLB", Bachelor},
		{"MBBS", Bachelor},
		{"BPT BOT", Bachelor},
		{"MBA", Bachelor}, // contains "BA"
		{"M.Tech", Master},
		{"MD/MS", Master},
		{"MCA", Master},
		{"LLM", Master},
		{"MSW", Master},
		{"PhD", PhD},
		{"Ph.D in Law", PhD},
		{"PG Diploma in Computer Applications", Diploma},
		{"Diploma", Diploma},
		{"Nursing", Certificate},
		{"", Certificate},
	}
	for _, tt := range tests {
		t.Run(tt.program, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDegree(tt.program))
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	assert.NoError(t, err)
	assert.Len(t, c.GoverningBodies, 4)
	assert.Len(t, c.Schools, 11)
	assert.Len(t, c.Sections, 9)
	assert.Len(t, c.Cells, 8)

	var depts int
	for _, s := range c.Schools {
		depts += len(s.Departments)
	}
	assert.Equal(t, 88, depts)
}

func TestParseCatalogRejectsMalformedYAML(t *testing.T) {
	_, err := ParseCatalog([]byte("schools: [unclosed"))
	assert.Error(t, err)
}
