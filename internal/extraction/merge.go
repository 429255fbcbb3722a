package extraction

import (
	"regexp"
	"sort"
	"strings"

	"github.com/matheus/jobmatch/internal/hf"
)

// Span is a contiguous run of model tokens over the original text.
type Span struct {
	Group string
	Start int
	End   int
	Score float64
	Text  string
}

var locationGroups = map[string]struct{}{
	"LOC":      {},
	"GPE":      {},
	"LOCATION": {},
}

// IsLocationGroup reports whether an entity group names a place.
func IsLocationGroup(group string) bool {
	_, ok := locationGroups[normalizeGroup(group)]
	return ok
}

// normalizeGroup strips a BIO scheme prefix ("B-", "I-") and uppercases the
// remaining entity group name.
func normalizeGroup(group string) string {
	if len(group) > 2 && group[1] == '-' {
		group = group[2:]
	}
	return strings.ToUpper(strings.TrimSpace(group))
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// sliceText cuts [start, end) out of the original text by rune offsets,
// collapsing whitespace and dropping subword markers. Out-of-range offsets
// yield an empty string rather than an error: model offsets are advisory.
func sliceText(original []rune, start, end int) string {
	if start < 0 || start >= len(original) || end <= start {
		return ""
	}
	if end > len(original) {
		end = len(original)
	}
	s := string(original[start:end])
	s = strings.ReplaceAll(s, "##", "")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// MergeTokens stitches model tokens back into whole entity spans. Tokens are
// ordered by start offset (longest first on ties), and a token joins the
// previous span when it carries the same entity group and starts at or before
// one past the span's end. The merged span keeps the best score and re-slices
// its text from the original input.
func MergeTokens(tokens []hf.Token, text string) []Span {
	original := []rune(text)
	sorted := make([]hf.Token, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End > sorted[j].End
	})

	var spans []Span
	for _, tok := range sorted {
		group := normalizeGroup(tok.EntityGroup)
		if group == "" {
			continue
		}
		if n := len(spans); n > 0 {
			prev := &spans[n-1]
			if prev.Group == group && tok.Start <= prev.End+1 {
				if tok.End > prev.End {
					prev.End = tok.End
				}
				if tok.Score > prev.Score {
					prev.Score = tok.Score
				}
				prev.Text = sliceText(original, prev.Start, prev.End)
				continue
			}
		}
		txt := sliceText(original, tok.Start, tok.End)
		if txt == "" {
			continue
		}
		spans = append(spans, Span{
			Group: group,
			Start: tok.Start,
			End:   tok.End,
			Score: tok.Score,
			Text:  txt,
		})
	}
	return spans
}
