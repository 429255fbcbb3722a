package suggestion

import "strings"

// culinaryTriggers route a résumé to a chef title before any other rule and
// before the model is consulted. A single matching skill is enough; kitchen
// vocabulary overlaps too easily with management and logistics terms to risk
// the pair tables or a generative guess.
var culinaryTriggers = []string{
	"culinária", "gastronomia", "chef", "cozinha", "haccp", "kitchen brigade",
	"sous-vide", "massas", "risotos", "confeitaria", "panificação",
}

// titleRule maps alternative keyword sets to a job title. The rule fires
// when every keyword of any single alternative appears among the skills.
type titleRule struct {
	alternatives [][]string
	title        string
}

var titleRules = []titleRule{
	{[][]string{{"java", "spring"}, {"java", "spring boot"}}, "Desenvolvedor Java Backend"},
	{[][]string{{"python", "django"}, {"python", "flask"}}, "Desenvolvedor Python Backend"},
	{[][]string{{"javascript", "react"}, {"typescript", "react"}}, "Desenvolvedor Frontend React"},
	{[][]string{{"angular"}, {"typescript", "angular"}}, "Desenvolvedor Frontend Angular"},
	{[][]string{{"node", "express"}, {"node.js"}}, "Desenvolvedor Node.js"},
	{[][]string{{"aws", "cloud"}, {"devops", "kubernetes"}, {"docker", "ci/cd"}}, "Engenheiro DevOps"},
	{[][]string{{"contabilidade", "fiscal"}, {"contabilidade", "balanço"}}, "Contador"},
	{[][]string{{"finanças", "investimentos"}, {"financeiro", "controle"}}, "Analista Financeiro"},
	{[][]string{{"recrutamento", "seleção"}, {"recursos humanos", "gestão de pessoas"}}, "Analista de Recursos Humanos"},
	{[][]string{{"marketing", "redes sociais"}, {"marketing digital", "campanhas"}}, "Analista de Marketing Digital"},
	{[][]string{{"vendas", "negociação"}, {"comercial", "prospecção"}}, "Executivo de Vendas"},
	{[][]string{{"enfermagem", "hospitalar"}}, "Enfermeiro"},
	{[][]string{{"nutrição", "dietética"}}, "Nutricionista"},
	{[][]string{{"administrativo", "secretariado"}, {"atendimento", "arquivo"}}, "Assistente Administrativo"},
	{[][]string{{"professor", "ensino"}, {"educação", "aula"}}, "Professor"},
}

// containsAny reports whether any keyword occurs, case-insensitively, in at
// least one of the skills.
func containsAny(skills []string, keywords []string) bool {
	for _, kw := range keywords {
		for _, skill := range skills {
			if strings.Contains(strings.ToLower(skill), kw) {
				return true
			}
		}
	}
	return false
}

// containsAll reports whether every keyword occurs, case-insensitively, in
// at least one of the skills.
func containsAll(skills []string, keywords []string) bool {
	for _, kw := range keywords {
		found := false
		for _, skill := range skills {
			if strings.Contains(strings.ToLower(skill), kw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchTitleRules resolves the skills deterministically, or returns "" when
// no rule fires. Culinary skills win outright, with seniority sub-checks for
// the executive and sous-chef variants.
func matchTitleRules(skills []string) string {
	if containsAny(skills, culinaryTriggers) {
		switch {
		case containsAny(skills, []string{"executivo", "chef executivo"}):
			return "Chef Executivo"
		case containsAny(skills, []string{"sous chef", "subchef"}):
			return "Sous Chef"
		}
		return "Chef de Cozinha"
	}
	for _, rule := range titleRules {
		for _, alt := range rule.alternatives {
			if containsAll(skills, alt) {
				return rule.title
			}
		}
	}
	return ""
}

// areaTitles back the keyword-count heuristic applied when neither the rule
// table nor the model produces a usable title. Slice order breaks count
// ties. The culinary area sits first: two hits there claim the résumé
// immediately, and it is the only area accepted on a single hit.
var areaTitles = []struct {
	title    string
	keywords []string
}{
	{"Chef de Cozinha", []string{"culinária", "gastronomia", "chef", "cozinha", "haccp", "kitchen brigade", "sous-vide", "massas", "risotos", "confeitaria", "panificação", "culinária italiana", "culinária francesa", "desenvolvimento de cardápios", "gestão de estoque", "seleção de ingredientes"}},
	{"Desenvolvedor Frontend", []string{"javascript", "html", "css", "react", "vue", "angular", "frontend", "ui", "ux"}},
	{"Desenvolvedor Backend", []string{"java", "c#", ".net", "python", "nodejs", "php", "backend", "api", "rest"}},
	{"Cientista de Dados", []string{"python", "r", "machine learning", "ml", "ai", "data science", "analytics", "estatística", "big data", "pandas", "numpy", "tensorflow", "pytorch"}},
	{"DBA", []string{"sql", "oracle", "mysql", "postgresql", "banco de dados", "database", "dba"}},
	{"DevOps", []string{"aws", "azure", "gcp", "docker", "kubernetes", "ci/cd", "jenkins", "devops", "terraform"}},
	{"QA", []string{"teste", "testing", "automation", "selenium", "qa", "qualidade"}},
	{"Analista Financeiro", []string{"finanças", "contabilidade", "fluxo de caixa", "investimentos", "orçamento", "excel", "fiscal", "tributário", "controle financeiro"}},
	{"Profissional de Marketing", []string{"marketing", "publicidade", "redes sociais", "seo", "google ads", "facebook ads", "e-commerce", "campanhas", "branding", "estratégia de marca"}},
	{"Analista de Recursos Humanos", []string{"recursos humanos", "recrutamento", "seleção", "dp", "departamento pessoal", "gestão de pessoas", "treinamento", "folha de pagamento", "benefícios"}},
	{"Profissional de Vendas", []string{"vendas", "comercial", "negociação", "prospecção", "crm", "atendimento ao cliente", "contas", "relacionamento", "vendedor"}},
	{"Gerente de Projetos", []string{"gestão de projetos", "pmbok", "pmp", "scrum", "kanban", "agile", "projetos", "cronograma", "planejamento estratégico"}},
	{"Profissional de Saúde", []string{"saúde", "medicina", "enfermagem", "farmacêutico", "fisioterapia", "nutricionista", "odontologia", "psicologia", "terapêutico"}},
	{"Profissional Jurídico", []string{"direito", "jurídico", "advogado", "legislação", "contrato", "assessoria jurídica", "compliance", "normas regulatórias"}},
	{"Profissional de Educação", []string{"educação", "ensino", "professor", "treinamento", "instrução", "aula", "pedagogia", "licenciatura"}},
	{"Profissional de Engenharia", []string{"engenharia", "produção", "manutenção", "logística", "industrial", "manufatura", "automação"}},
	{"Profissional de Atendimento", []string{"atendimento", "suporte", "call center", "help desk", "customer service", "sac", "atendimento ao cliente"}},
}

func countKeywordHits(skills []string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		for _, skill := range skills {
			if strings.Contains(strings.ToLower(skill), kw) {
				hits++
				break
			}
		}
	}
	return hits
}

// matchArea picks the area with the most keyword hits. Areas need at least
// two hits to win, except the culinary area which also wins as the best
// single-hit match.
func matchArea(skills []string) string {
	if countKeywordHits(skills, areaTitles[0].keywords) >= 2 {
		return areaTitles[0].title
	}
	bestTitle, bestHits := "", 0
	for _, area := range areaTitles {
		if hits := countKeywordHits(skills, area.keywords); hits > bestHits {
			bestTitle, bestHits = area.title, hits
		}
	}
	if bestHits >= 2 || (bestHits >= 1 && bestTitle == areaTitles[0].title) {
		return bestTitle
	}
	return ""
}
