package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"datagrid/internal/parse"
)

var genFields = []string{"id", "name", "skill", "country", "rate", "hours", "status"}

type generator struct {
	format parse.Format
	rng    *rand.Rand
}

func newGenerator(f parse.Format, rng *rand.Rand) *generator {
	return &generator{format: f, rng: rng}
}

// header is the CSV header line; other formats have none.
func (g *generator) header() string {
	if g.format != parse.FormatCSV {
		return ""
	}
	return strings.Join(genFields, ",")
}

func (g *generator) record() map[string]any {
	first := []string{"Ada", "Bruno", "Chen", "Dana", "Elif", "Farid", "Greta", "Hiro", "Ines", "Jonas"}
	last := []string{"Brooks", "Silva", "Wei", "Okafor", "Kaya", "Haddad", "Lind", "Sato", "Duarte", "Weber"}
	skills := []string{"Go", "React", "Data", "Design", "DevOps", "Mobile"}
	countries := []string{"UK", "BR", "CN", "NG", "TR", "LB", "SE", "JP", "PT", "DE"}
	statuses := []string{"active", "active", "active", "paused", "invited"}
	pick := func(xs []string) string { return xs[g.rng.Intn(len(xs))] }
	return map[string]any{
		"id":      uuid.NewString(),
		"name":    pick(first) + " " + pick(last),
		"skill":   pick(skills),
		"country": pick(countries),
		"rate":    40 + g.rng.Intn(13)*5,
		"hours":   g.rng.Intn(41),
		"status":  pick(statuses),
	}
}

func (g *generator) line() string {
	rec := g.record()
	switch g.format {
	case parse.FormatCSV:
		var b strings.Builder
		w := csv.NewWriter(&b)
		vals := make([]string, len(genFields))
		for i, f := range genFields {
			vals[i] = fmt.Sprint(rec[f])
		}
		_ = w.Write(vals)
		w.Flush()
		return strings.TrimRight(b.String(), "\n")
	case parse.FormatLogfmt:
		parts := make([]string, len(genFields))
		for i, f := range genFields {
			v := fmt.Sprint(rec[f])
			if strings.ContainsAny(v, " =\"") {
				v = `"` + v + `"`
			}
			parts[i] = f + "=" + v
		}
		return strings.Join(parts, " ")
	default:
		b, _ := json.Marshal(rec)
		return string(b)
	}
}
