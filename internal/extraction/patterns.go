package extraction

import "regexp"

// allowedShortSkills are acronyms and short names exempt from the minimum
// length rules of the relevance filter.
var allowedShortSkills = map[string]struct{}{
	"c":    {},
	"c#":   {},
	"c++":  {},
	"sql":  {},
	"bi":   {},
	"ux":   {},
	"ui":   {},
	"go":   {},
	"aws":  {},
	".net": {},
	"php":  {},
	"java": {},
}

// technicalPatterns is the ordered regex table scanned against raw résumé
// text. Order is part of the contract: earlier tables cover more specific
// vocabularies and their matches surface first among candidates.
var technicalPatterns = []*regexp.Regexp{
	// Programming languages and core technologies
	regexp.MustCompile(`(?i)\b(Java|Python|JavaScript|TypeScript|C#|C\+\+|C\b|Go|Rust|Kotlin|Swift)\b`),
	regexp.MustCompile(`(?i)\b(React|Angular|Vue\.js?|Node\.js?|Next\.js?|Nuxt\.js?)\b`),
	regexp.MustCompile(`(?i)\b(Spring Boot|Spring|Django|Flask|Laravel|\.NET Core|ASP\.NET)\b`),
	regexp.MustCompile(`(?i)\b(MySQL|PostgreSQL|MongoDB|SQL Server|Oracle|Redis|Elasticsearch)\b`),
	regexp.MustCompile(`(?i)\b(AWS|Azure|Google Cloud|GCP|Docker|Kubernetes|Terraform|Ansible)\b`),
	regexp.MustCompile(`(?i)\b(Git|GitHub|GitLab|CI/CD|Jenkins|Agile|Scrum|Kanban)\b`),
	regexp.MustCompile(`(?i)\b(HTML|CSS|Sass|Less|REST|GraphQL|gRPC|SOAP|JSON|XML)\b`),
	regexp.MustCompile(`(?i)\b(Power BI|Tableau|Looker|Excel|ETL|Data Lake|Data Warehouse)\b`),

	// Office and administrative tooling
	regexp.MustCompile(`(?i)\b(Microsoft Office|Excel|Word|PowerPoint|Outlook)\b`),
	regexp.MustCompile(`(?i)\b(SAP|CRM|ERP|Gestão de Projetos)\b`),

	// Interpersonal skills
	regexp.MustCompile(`(?i)\b(Comunicação|Liderança|Negociação|Oratória|Trabalho em Equipe)\b`),

	// Languages and proficiency levels
	regexp.MustCompile(`(?i)\b(Inglês|Espanhol|Francês|Alemão|Italiano|Português|Mandarim)\b`),
	regexp.MustCompile(`(?i)\b(Fluente|Avançado|Intermediário|Básico)\b`),

	// Finance and accounting
	regexp.MustCompile(`(?i)\b(Contabilidade|Finanças|Orçamento|Controladoria|Tesouraria|Fiscal)\b`),
	regexp.MustCompile(`(?i)\b(Impostos|Tributos|Auditoria|Compliance|Folha de Pagamento)\b`),

	// Sales and marketing
	regexp.MustCompile(`(?i)\b(Marketing Digital|SEO|Google Ads|Meta Ads|Redes Sociais|E-commerce)\b`),
	regexp.MustCompile(`(?i)\b(Vendas|Atendimento ao Cliente|Negociação|CRM|SAC)\b`),

	// Healthcare
	regexp.MustCompile(`(?i)\b(Enfermagem|Medicina|Fisioterapia|Nutrição|Farmácia)\b`),

	// Industry and manufacturing
	regexp.MustCompile(`(?i)\b(Lean|Six Sigma|Gestão de Qualidade|ISO|5S|Kaizen|Manufatura)\b`),

	// Culinary
	regexp.MustCompile(`(?i)\b(Gastronomia|Culinária|Chef|Cozinha|Cozinheiro|Confeitaria|Panificação)\b`),
	regexp.MustCompile(`(?i)\b(Culinária Italiana|Culinária Francesa|Culinária Brasileira|Cozinha Contemporânea)\b`),
	regexp.MustCompile(`(?i)\b(Massas|Risotos|Molhos|Sous-vide|Fermentação|Churrascaria)\b`),
	regexp.MustCompile(`(?i)\b(Kitchen Brigade|Mise en Place|HACCP|Segurança Alimentar)\b`),
	regexp.MustCompile(`(?i)\b(Desenvolvimento de Cardápios|Gestão de Estoque|Seleção de Ingredientes)\b`),
	regexp.MustCompile(`(?i)\b(Técnicas de Corte|Brunoise|Julienne|Chiffonade|Cozinha Vegetariana|Vegana)\b`),
}

// matchPatterns collects every regex match verbatim as a candidate skill.
func matchPatterns(text string) []string {
	var matches []string
	for _, re := range technicalPatterns {
		for _, m := range re.FindAllString(text, -1) {
			if m != "" {
				matches = append(matches, m)
			}
		}
	}
	return matches
}
