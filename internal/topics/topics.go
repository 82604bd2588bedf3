// Package topics defines the topical search configurations that drive a
// sync run. Each topic pairs a PubMed query with a Zotero collection.
package topics

import (
	"fmt"

	"github.com/lepvg/pmsync/internal/query"
)

// Topic is a named search configuration mapping to one Zotero collection.
// Topics are built once at startup and never mutated.
type Topic struct {
	Name       string
	Collection string
	Query      string
}

// Builtin returns the default topic set. Collection keys refer to
// subcollections of the lab Zotero library.
func Builtin() []Topic {
	excl := query.Not(query.Excluded)
	return []Topic{
		{
			Name:       "PMC_20Eonly_Vg_Lep",
			Collection: "V6WK5UBC",
			Query:      query.And(query.Lepidoptera, query.Vitellogenin, query.HormoneEcdysone, excl).String(),
		},
		{
			Name:       "PMC_JHonly_Vg_Lep",
			Collection: "V7BG9W57",
			Query:      query.And(query.Lepidoptera, query.Vitellogenin, query.HormoneJH, excl).String(),
		},
		{
			Name:       "PMC_LifeHistory_Vg_Lep",
			Collection: "A44KVBVZ",
			Query:      query.And(query.Lepidoptera, query.Vitellogenin, query.LifeHistory, excl).String(),
		},
		{
			Name:       "PMC_Ovary_Repro_Vg_Lep",
			Collection: "FX77FAZX",
			Query:      query.And(query.Lepidoptera, query.Vitellogenin, query.Ovary, query.Reproduction, excl).String(),
		},
		{
			Name:       "PMC_Nutrition_Hormone_Vg_Lep",
			Collection: "658NHUVA",
			Query:      query.And(query.Lepidoptera, query.Vitellogenin, query.Nutrition, query.Hormone, excl).String(),
		},
		{
			Name:       "PMC_Hormone_LifeHistory_Lep",
			Collection: "XR58SBTF",
			Query:      query.And(query.Lepidoptera, query.Hormone, query.LifeHistory, excl).String(),
		},
		{
			Name:       "PMC_Hormone_Ovary_Lep",
			Collection: "4SPN8P38",
			Query:      query.And(query.Lepidoptera, query.Hormone, query.Ovary, excl).String(),
		},
		{
			Name:       "PMC_Vg_ReproMode_Lep",
			Collection: "EMWGGGQM",
			Query:      query.And(query.Lepidoptera, query.Vitellogenin, query.Reproduction, excl).String(),
		},
		{
			Name:       "PMC_Vg_Ovary_Lep",
			Collection: "5WVANIIZ",
			Query:      query.And(query.Lepidoptera, query.Vitellogenin, query.Ovary, excl).String(),
		},
		{
			Name:       "PMC_Vg_Hormone_Lep",
			Collection: "3JDKU2AH",
			Query:      query.And(query.Lepidoptera, query.Vitellogenin, query.Hormone, excl).String(),
		},
	}
}

// Find returns the topic with the given name from the list.
func Find(list []Topic, name string) (Topic, error) {
	for _, t := range list {
		if t.Name == name {
			return t, nil
		}
	}
	return Topic{}, fmt.Errorf("unknown topic: %s", name)
}

// Names returns the topic names in configured order.
func Names(list []Topic) []string {
	names := make([]string, len(list))
	for i, t := range list {
		names[i] = t.Name
	}
	return names
}
