package suggestion

import "strings"

// categoryRule maps an Adzuna category tag to the title and skill keywords
// that select it. A rule fires when the lowercased title contains any title
// keyword, or any lowercased skill contains any skill keyword.
type categoryRule struct {
	category     string
	titleWords   []string
	titleExclude string // a title containing this word does not count as a title match
	skillWords   []string
}

// categoryRules are checked in order, IT first and hospitality last. Chef
// titles still land on hospitality because none of the earlier rules match
// kitchen vocabulary.
var categoryRules = []categoryRule{
	{"it-jobs",
		[]string{"desenvolvedor", "programador", "engenheiro de software", "analista de sistemas", "devops", "dba", "qa", "cientista de dados", "arquiteto de software"},
		"",
		[]string{"programação", "java", "python", "javascript", "react", "node"}},
	{"engineering-jobs",
		[]string{"engenheiro", "engenharia", "projetista"},
		"software",
		nil},
	{"healthcare-nursing-jobs",
		[]string{"médico", "enfermeiro", "enfermagem", "fisioterapeuta", "nutricionista", "farmacêutico", "psicólogo", "dentista", "odontologia"},
		"",
		[]string{"saúde", "medicina", "enfermagem"}},
	{"accounting-finance-jobs",
		[]string{"contador", "contabilidade", "analista financeiro", "financeiro", "auditor", "tesoureiro"},
		"",
		[]string{"contabilidade", "finanças", "fiscal"}},
	{"sales-jobs",
		[]string{"marketing", "vendedor", "vendas", "comercial", "publicidade"},
		"",
		[]string{"marketing", "vendas", "seo"}},
	{"hr-recruitment-jobs",
		[]string{"recursos humanos", "rh", "recrutador", "dp"},
		"",
		[]string{"recursos humanos", "recrutamento"}},
	{"teaching-jobs",
		[]string{"professor", "educação", "pedagogo", "instrutor"},
		"",
		[]string{"ensino", "educação", "aula"}},
	{"legal-jobs",
		[]string{"advogado", "jurídico", "direito"},
		"",
		[]string{"jurídico", "direito"}},
	{"admin-secretarial-jobs",
		[]string{"administrativo", "secretário", "assistente administrativo"},
		"",
		[]string{"administrativo", "secretariado"}},
	{"customer-service-jobs",
		[]string{"atendimento", "call center", "suporte", "sac"},
		"",
		[]string{"atendimento", "call center"}},
	{"hospitality-catering-jobs",
		[]string{"chef", "cozinha", "cozinheiro", "gastronomia", "culinária", "confeiteiro", "padeiro"},
		"",
		[]string{"culinária", "gastronomia", "chef", "haccp", "kitchen brigade", "sous-vide"}},
}

// InferCategory guesses an Adzuna category from a suggested title and the
// skill list. Returns "" when nothing matches: an unknown area searches
// without a category filter rather than with a wrong one.
func InferCategory(title string, skills []string) string {
	if strings.TrimSpace(title) == "" {
		return ""
	}
	titleLower := strings.ToLower(title)
	skillsLower := make([]string, len(skills))
	for i, s := range skills {
		skillsLower[i] = strings.ToLower(s)
	}
	for _, rule := range categoryRules {
		if rule.matchesTitle(titleLower) || rule.matchesSkills(skillsLower) {
			return rule.category
		}
	}
	return ""
}

func (r categoryRule) matchesTitle(title string) bool {
	if r.titleExclude != "" && strings.Contains(title, r.titleExclude) {
		return false
	}
	for _, kw := range r.titleWords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}

func (r categoryRule) matchesSkills(skills []string) bool {
	for _, kw := range r.skillWords {
		for _, skill := range skills {
			if strings.Contains(skill, kw) {
				return true
			}
		}
	}
	return false
}
