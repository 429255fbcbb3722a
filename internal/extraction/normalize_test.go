package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkill(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  java  ", "Java"},
		{"strips surrounding punctuation", "(python)", "Python"},
		{"capitalizes first rune", "inglês avançado", "Inglês avançado"},
		{"keeps inner casing", "javaScript", "JavaScript"},
		{"accented first rune", "água", "Água"},
		{"leading dot stripped", ".NET", "NET"},
		{"only punctuation", "---", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSkill(tt.input))
		})
	}
}

func TestNormalizeSkillIdempotent(t *testing.T) {
	for _, s := range []string{"  spring boot!  ", "C++", "gestão de projetos"} {
		once := NormalizeSkill(s)
		assert.Equal(t, once, NormalizeSkill(once))
	}
}

func TestIsRelevantSkill(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"normal skill", "Java", true},
		{"composite skill", "Spring Boot", true},
		{"bare proficiency rejected", "Avançado", false},
		{"proficiency with language kept", "Inglês Avançado", true},
		{"proficiency unaccented rejected", "intermediario", false},
		{"single char rejected", "x", false},
		{"short allowlisted", "C#", true},
		{"go allowlisted", "Go", true},
		{"short vowelless rejected", "xyz", false},
		{"short with vowel kept", "Sap", true},
		{"two chars not allowlisted", "Qt", false},
		{"education leftover rejected", "Faculdade de Engenharia", false},
		{"sentence rejected", "Responsável por todas as rotinas administrativas da empresa", false},
		{"six words kept", "Gestão de Projetos e Processos Ágeis", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRelevantSkill(tt.input))
		})
	}
}

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"são paulo", "São Paulo"},
		{"RIO DE JANEIRO", "Rio De Janeiro"},
		{"  belo ##horizonte ", "Belo Horizonte"},
		{"", ""},
		{"##", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeLocation(tt.input))
	}
}

func TestParseSkillList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "last comma line wins",
			input: "Extraia as habilidades do currículo.\nHabilidades:\njava, python, sql",
			want:  []string{"Java", "Python", "Sql"},
		},
		{
			name:  "semicolons split too",
			input: "Docker; Kubernetes, Terraform",
			want:  []string{"Docker", "Kubernetes", "Terraform"},
		},
		{
			name:  "no comma takes whole output",
			input: "Comunicação",
			want:  []string{"Comunicação"},
		},
		{
			name:  "blank entries dropped",
			input: "java,, ,python",
			want:  []string{"Java", "Python"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSkillList(tt.input))
		})
	}
}
