// Package catalog holds the figures of the paper as [figure.Spec] values.
//
// Each figure is a function returning a fresh Spec, so callers may modify
// what they get (for example to point Input at another file) without
// affecting later lookups.
package catalog

import (
	"strings"

	"github.com/eborriello/genfigs/pkg/figure"
)

// Revision identifies the current set of figure definitions. It is part of
// every render cache key; bump it whenever a figure's appearance changes.
const Revision = "3"

// DataDir is the directory default inputs are read from.
const DataDir = "data"

type entry struct {
	id      string
	aliases []string
	spec    func() figure.Spec
}

var entries = []entry{
	{id: "1", spec: figure1},
	{id: "3a", spec: figure3A},
	{id: "3b", spec: figure3B},
	{id: "3c", spec: figure3C},
	{id: "3d", spec: figure3D},
	{id: "3e", spec: figure3E},
	{id: "4", spec: figure4},
	{id: "5", spec: figure5},
	{id: "6", spec: figure6},
	{id: "7", spec: figure7},
	{id: "8", aliases: []string{"8all"}, spec: figure8},
	{id: "8rep", aliases: []string{"8replicates", "8r"}, spec: figure8Replicates},
}

// IDs returns the figure identifiers in paper order.
func IDs() []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.id
	}
	return ids
}

// All returns every figure in paper order.
func All() []figure.Spec {
	specs := make([]figure.Spec, len(entries))
	for i, e := range entries {
		specs[i] = e.spec()
	}
	return specs
}

// Lookup resolves a figure identifier. Matching ignores case, a leading
// "fig" or "figure", and separators, so "3A", "fig3a" and "figure_3a" all
// name the same figure.
func Lookup(id string) (figure.Spec, bool) {
	key := normalize(id)
	for _, e := range entries {
		if key == e.id {
			return e.spec(), true
		}
		for _, a := range e.aliases {
			if key == a {
				return e.spec(), true
			}
		}
	}
	return figure.Spec{}, false
}

func normalize(id string) string {
	s := strings.ToLower(strings.TrimSpace(id))
	s = strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
	for _, prefix := range []string{"figure", "fig"} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimPrefix(s, prefix)
			break
		}
	}
	return s
}
