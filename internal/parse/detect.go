package parse

import (
	"regexp"
	"strings"
)

var reLogfmtKV = regexp.MustCompile(`(^|\s)[a-zA-Z_][a-zA-Z0-9_]*=`)

type Guess struct {
	Format     Format
	Confidence float64
}

// Detect guesses the input format from a small sample. CSV is chosen when
// every line has the same non-zero number of commas and the header carries
// no key=value pairs; JSON lines and logfmt need at least half the lines.
// Unrecognised input falls back to CSV with zero confidence.
func Detect(sample []string) Guess {
	lines := 0
	jsonCount := 0
	logfmtCount := 0
	commas := -1
	csvConsistent := true
	for _, l := range sample {
		s := strings.TrimSpace(l)
		if s == "" {
			continue
		}
		lines++
		if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
			jsonCount++
		}
		if reLogfmtKV.MatchString(s) {
			logfmtCount++
		}
		n := strings.Count(s, ",")
		if commas == -1 {
			commas = n
		} else if n != commas {
			csvConsistent = false
		}
	}
	if lines == 0 {
		return Guess{Format: FormatJSON}
	}
	if jsonCount > logfmtCount && jsonCount*2 >= lines {
		return Guess{Format: FormatJSON, Confidence: conf(lines, jsonCount)}
	}
	if logfmtCount*2 >= lines && logfmtCount > 0 {
		return Guess{Format: FormatLogfmt, Confidence: conf(lines, logfmtCount)}
	}
	if csvConsistent && commas > 0 {
		return Guess{Format: FormatCSV, Confidence: 0.6}
	}
	return Guess{Format: FormatCSV}
}

func conf(lines, hits int) float64 {
	if lines == 0 {
		return 0
	}
	return float64(hits) / float64(lines)
}
