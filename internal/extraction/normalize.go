package extraction

import (
	"strings"
	"unicode"
)

const vowels = "aeiouáéíóúâêôãõ"

var proficiencyWords = map[string]struct{}{
	"fluente":       {},
	"avançado":      {},
	"intermediário": {},
	"intermediario": {},
	"básico":        {},
	"nativo":        {},
}

// NormalizeSkill trims surrounding non-word characters and capitalizes the
// first letter, keeping the rest of the string as written.
func NormalizeSkill(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// IsRelevantSkill decides whether a normalized candidate is worth keeping.
// Bare proficiency levels, fragments without vowels, education leftovers and
// whole sentences are all noise from the extraction stage.
func IsRelevantSkill(s string) bool {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) < 2 {
		return false
	}
	lower := strings.ToLower(s)
	if _, ok := proficiencyWords[lower]; ok {
		return false
	}
	if len(runes) <= 3 {
		if _, ok := allowedShortSkills[lower]; !ok {
			if len(runes) < 3 || !hasVowel(lower) {
				return false
			}
		}
	}
	if strings.HasPrefix(lower, "faculdade") {
		return false
	}
	if len(strings.Fields(s)) > 6 {
		return false
	}
	return true
}

func hasVowel(lower string) bool {
	return strings.ContainsAny(lower, vowels)
}

// NormalizeLocation lowercases a raw location span, drops subword markers and
// title-cases the result.
func NormalizeLocation(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "##", "")
	if s == "" {
		return ""
	}
	return titleCase(strings.ToLower(s))
}

func titleCase(s string) string {
	prevLetter := false
	return strings.Map(func(r rune) rune {
		isLetter := unicode.IsLetter(r)
		if isLetter && !prevLetter {
			prevLetter = true
			return unicode.ToUpper(r)
		}
		prevLetter = isLetter
		return r
	}, s)
}

// ParseSkillList pulls a comma-separated skill list out of generated model
// text. Models tend to echo the prompt first, so only the last line that
// actually contains a comma is taken; without one, the whole output is
// treated as the list.
func ParseSkillList(generated string) []string {
	list := generated
	lines := strings.Split(generated, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.Contains(lines[i], ",") {
			list = lines[i]
			break
		}
	}
	var skills []string
	for _, part := range strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	}) {
		if s := NormalizeSkill(part); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
