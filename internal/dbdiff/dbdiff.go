// Package dbdiff compares two tzdata databases.
package dbdiff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/go-tzdb/internal/render"
	"github.com/ngrash/go-tzdb/tzdata"
)

// Diff reports the rule sets, zones and links that differ between a and b,
// one block per record, sorted by kind and name. Added records are marked
// with "+", removed ones with "-" and changed ones with "~" followed by a
// cmp.Diff of the record (-a +b). It returns "" if the databases agree.
func Diff(a, b *tzdata.Database) string {
	da, db := render.NewDocument(a), render.NewDocument(b)

	var sb strings.Builder
	diffRecords(&sb, "rule", ruleSets(da), ruleSets(db))
	diffRecords(&sb, "zone", zones(da), zones(db))
	diffRecords(&sb, "link", links(da), links(db))
	return sb.String()
}

func diffRecords[T any](sb *strings.Builder, kind string, a, b map[string]T) {
	names := make(map[string]bool, len(a)+len(b))
	for name := range a {
		names[name] = true
	}
	for name := range b {
		names[name] = true
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	for _, name := range sorted {
		ra, inA := a[name]
		rb, inB := b[name]
		switch {
		case !inB:
			fmt.Fprintf(sb, "- %s %s\n", kind, name)
		case !inA:
			fmt.Fprintf(sb, "+ %s %s\n", kind, name)
		default:
			if d := cmp.Diff(ra, rb); d != "" {
				fmt.Fprintf(sb, "~ %s %s\n%s", kind, name, d)
			}
		}
	}
}

func ruleSets(d render.Document) map[string][]render.Rule {
	m := make(map[string][]render.Rule, len(d.Rules))
	for _, rs := range d.Rules {
		m[rs.Name] = rs.Rules
	}
	return m
}

func zones(d render.Document) map[string][]render.Segment {
	m := make(map[string][]render.Segment, len(d.Zones))
	for _, z := range d.Zones {
		m[z.Name] = z.Segments
	}
	return m
}

// links maps link names to targets. A later link with the same name wins.
func links(d render.Document) map[string]string {
	m := make(map[string]string, len(d.Links))
	for _, l := range d.Links {
		m[l.Name] = l.Target
	}
	return m
}
