package suggestion

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
)

const (
	suggestionPromptSkills = 10
	suggestionTokens       = 150
)

// TitleGenerator produces free text from a prompt. The extraction model
// client satisfies it.
type TitleGenerator interface {
	Generate(ctx context.Context, model, prompt string, maxNewTokens int, temperature float64) (string, error)
}

// Suggester turns a skill list into a Brazilian job title, preferring the
// deterministic rule table and only consulting the model when no rule fires.
type Suggester struct {
	generator TitleGenerator
	model     string
}

func NewSuggester(generator TitleGenerator, model string) *Suggester {
	return &Suggester{generator: generator, model: model}
}

// SuggestTitle never fails: every fallback layer degrades to the next one,
// ending with the first skill itself. Empty input returns an empty title
// without touching the model.
func (s *Suggester) SuggestTitle(ctx context.Context, skills []string) string {
	if len(skills) == 0 {
		return ""
	}
	if title := matchTitleRules(skills); title != "" {
		return title
	}
	if title := s.generateTitle(ctx, skills); title != "" {
		return title
	}
	if title := matchArea(skills); title != "" {
		return title
	}
	return skills[0]
}

func (s *Suggester) generateTitle(ctx context.Context, skills []string) string {
	if s.generator == nil || s.model == "" {
		return ""
	}
	prompt := titlePrompt(skills)
	out, err := s.generator.Generate(ctx, s.model, prompt, suggestionTokens, 0.7)
	if err != nil {
		log.Printf("[suggestion] title generation failed: %v", err)
		return ""
	}
	return cleanTitle(out, prompt)
}

func titlePrompt(skills []string) string {
	if len(skills) > suggestionPromptSkills {
		skills = skills[:suggestionPromptSkills]
	}
	return fmt.Sprintf(
		"Com base nas habilidades a seguir, sugira um único cargo em português do Brasil. "+
			"Responda apenas com o nome do cargo.\n\nHabilidades: %s\n\nCargo:",
		strings.Join(skills, ", "),
	)
}

var (
	titleLabelRe = regexp.MustCompile(`(?i)^(Cargo sugerido|Cargo|O cargo é|É|Sugestão):\s*`)
	titleParenRe = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	titleSpaceRe = regexp.MustCompile(`\s+`)
)

// cleanTitle strips prompt echo, label prefixes and parenthetical asides
// from model output, keeping only a plausibly sized title. The answer is the
// last non-empty line: the models echo the prompt ahead of it.
func cleanTitle(out, prompt string) string {
	out = strings.TrimSpace(strings.TrimPrefix(out, prompt))
	last := ""
	for _, line := range strings.Split(out, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			last = t
		}
	}
	out = titleLabelRe.ReplaceAllString(last, "")
	out = titleParenRe.ReplaceAllString(out, " ")
	out = strings.TrimRight(out, ".,;:- ")
	out = strings.TrimSpace(titleSpaceRe.ReplaceAllString(out, " "))
	if n := len([]rune(out)); n <= 3 || n >= 100 {
		return ""
	}
	return out
}
