package orgstructure

import "strings"

// degreePatterns is checked in order; the first rule with a matching substring wins.
// Matching is case-sensitive, so "MBA" is a bachelor because it contains "BA".
var degreePatterns = []struct {
	degree   DegreeType
	patterns []string
}{
	{Bachelor, []string{"B.", "BA", "B.Sc", "B.Com", "BBA", "BCA", "B.Ed", "B.Pharm", "D.Pharm", "LLB", "MBBS", "BPT"}},
	{Master, []string{"M.", "MA", "M.Sc", "M.Com", "MBA", "MCA", "M.Ed", "M.Pharm", "LLM", "MD", "MS"}},
	{PhD, []string{"PhD", "Ph.D"}},
	{Diploma, []string{"Diploma", "PG Diploma"}},
}

// ClassifyDegree derives the degree type of a program from its name.
func ClassifyDegree(program string) DegreeType {
	for _, rule := range degreePatterns {
		for _, p := range rule.patterns {
			if strings.Contains(program, p) {
				return rule.degree
			}
		}
	}
	return Certificate
}
