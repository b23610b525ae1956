package documents

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

type Kind string

const (
	KindSOP Kind = "sop"
	KindLOR Kind = "lor"
)

var wordPattern = regexp.MustCompile(`[A-Za-z']+`)

var strongLORPhrases = []string{
	"strongly recommend",
	"highest recommendation",
	"without reservation",
	"top percentile",
	"outstanding",
	"exceptional",
	"exemplary",
}

// ParseKind accepts "sop", "lor" or empty; anything else is treated as empty.
func ParseKind(s string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindSOP:
		return KindSOP
	case KindLOR:
		return KindLOR
	default:
		return ""
	}
}

// DetectKind honours a declared hint, else guesses from the text.
func DetectKind(text string, hint Kind) Kind {
	if hint != "" {
		return hint
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, "recommend") || strings.Contains(lower, "reference") {
		return KindLOR
	}
	return KindSOP
}

func words(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// sentences splits after '.', '!' or '?' when followed by whitespace.
func sentences(text string) []string {
	var out []string
	runes := []rune(text)
	start := 0
	for i, r := range runes {
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, s)
	}
	return out
}

func lengthScore(wordCount int, kind Kind) float64 {
	lo, hi := 700.0, 1200.0
	if kind == KindLOR {
		lo, hi = 400, 900
	}
	w := float64(wordCount)
	switch {
	case wordCount <= 50:
		return 0
	case w < lo:
		return math.Max(0, (w-50)/(lo-50)) * 0.7
	case w > hi:
		return math.Max(0.3, 1-(w-hi)/hi)
	default:
		return 1
	}
}

// FleschReadingEase is 206.835 - 1.015 words/sentence - 84.6 syllables/word.
func FleschReadingEase(text string) (float64, bool) {
	ws := words(text)
	if len(ws) == 0 {
		return 0, false
	}
	sentenceCount := len(sentences(text))
	if sentenceCount == 0 {
		sentenceCount = 1
	}
	syllableCount := 0
	for _, w := range ws {
		syllableCount += syllables(w)
	}
	n := float64(len(ws))
	return 206.835 - 1.015*(n/float64(sentenceCount)) - 84.6*(float64(syllableCount)/n), true
}

// syllables counts vowel groups, dropping a silent trailing e.
func syllables(word string) int {
	w := strings.ToLower(strings.Trim(word, "'"))
	if w == "" {
		return 0
	}
	count := 0
	prevVowel := false
	for _, r := range w {
		v := strings.ContainsRune("aeiouy", r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}

func readabilityScore(text string) float64 {
	fre, ok := FleschReadingEase(text)
	if !ok {
		return 0.5
	}
	switch {
	case fre <= 0:
		return 0.2
	case fre >= 90:
		return 0.4
	default:
		return math.Max(0, 1-math.Abs(fre-50)/80)
	}
}

func lexicalDiversity(text string) float64 {
	ws := words(strings.ToLower(text))
	if len(ws) < 50 {
		return 0.4
	}
	uniq := make(map[string]struct{}, len(ws))
	for _, w := range ws {
		uniq[w] = struct{}{}
	}
	return math.Min(1, float64(len(uniq))/float64(len(ws))*2)
}

func phraseBoost(text string) float64 {
	lower := strings.ToLower(text)
	hits := 0
	for _, p := range strongLORPhrases {
		if strings.Contains(lower, p) {
			hits++
		}
	}
	return math.Min(0.1*float64(hits), 0.3)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
