// Package search implements population search: given a query record,
// find the best-matching population(s) in a dataset via the mutation
// index and parsimony summarizer (spec.md C7 / §4.6).
package search

import (
	"sort"

	"github.com/ktmeaton/rebar-sub000/internal/dataset"
	"github.com/ktmeaton/rebar-sub000/internal/parsimony"
	"github.com/ktmeaton/rebar-sub000/internal/rbrerr"
	"github.com/ktmeaton/rebar-sub000/internal/sequence"
)

// Result is the outcome of a population search (spec.md §4.6).
type Result struct {
	SequenceID   string
	Consensus    string
	TopPopulations []string
	Parsimony    map[string]parsimony.Summary
	// Recombinant is the consensus population's nearest recombinant
	// ancestor (or the consensus itself if it is a recombinant), per
	// spec.md §9 open question (a)'s chosen default.
	Recombinant string
	// ConsensusIsRecombinant exposes the other reading of open question
	// (a): whether the consensus population itself, rather than an
	// ancestor, is the recombinant.
	ConsensusIsRecombinant bool
}

// Search runs population search for query against d, optionally
// restricted to allowedPopulations and/or coords (spec.md §4.6).
// allowedPopulations and coords may be nil to mean "no restriction".
func Search(d *dataset.Dataset, query *sequence.Record, allowedPopulations []string, coords []int) (*Result, error) {
	searchSubs := query.Substitutions
	if coords != nil {
		filter := map[int]bool{}
		for _, c := range coords {
			filter[c] = true
		}
		var filtered []sequence.Substitution
		for _, s := range searchSubs {
			if filter[s.Coord] {
				filtered = append(filtered, s)
			}
		}
		searchSubs = filtered
	}

	candidates := d.Mutations.Lookup(searchSubs)
	if allowedPopulations != nil {
		allowed := map[string]bool{}
		for _, p := range allowedPopulations {
			allowed[p] = true
		}
		var filtered []string
		for _, c := range candidates {
			if allowed[c] {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
	}
	if len(candidates) == 0 {
		return nil, rbrerr.Newf(rbrerr.NoCandidateMatch, "no population in the dataset matches %q", query.ID)
	}

	parsimonyByPop := map[string]parsimony.Summary{}
	for _, c := range candidates {
		rec, ok := d.Populations[c]
		if !ok {
			continue
		}
		parsimonyByPop[c] = parsimony.Summarize(query, rec, coords)
	}

	top := topPopulations(candidates, parsimonyByPop)

	consensus, err := consensusPopulation(d, top)
	if err != nil {
		return nil, err
	}

	if _, ok := parsimonyByPop[consensus]; !ok {
		consensusRec, err := d.ConsensusRecord(consensus, top, true)
		if err != nil {
			return nil, err
		}
		parsimonyByPop[consensus] = parsimony.Summarize(query, consensusRec, coords)
	}

	kept := map[string]parsimony.Summary{}
	for _, p := range top {
		kept[p] = parsimonyByPop[p]
	}
	kept[consensus] = parsimonyByPop[consensus]

	recombinant := consensus
	consensusIsRecombinant := false
	if d.Phylogeny != nil && !d.Phylogeny.IsEmpty() {
		if rec, _ := d.Phylogeny.IsRecombinant(consensus); rec {
			consensusIsRecombinant = true
		}
		if anc, ok := d.Phylogeny.RecombinantAncestor(consensus); ok {
			recombinant = anc
		} else if !consensusIsRecombinant {
			recombinant = ""
		}
	} else {
		recombinant = ""
	}

	return &Result{
		SequenceID:             query.ID,
		Consensus:              consensus,
		TopPopulations:         top,
		Parsimony:              kept,
		Recombinant:            recombinant,
		ConsensusIsRecombinant: consensusIsRecombinant,
	}, nil
}

// topPopulations reduces candidates to those tying for (a) maximum
// score, then (b) maximum support count (spec.md §4.6 step 4).
func topPopulations(candidates []string, summaries map[string]parsimony.Summary) []string {
	maxScore := minInt
	for _, c := range candidates {
		if s := summaries[c].Score(); s > maxScore {
			maxScore = s
		}
	}
	var byScore []string
	for _, c := range candidates {
		if summaries[c].Score() == maxScore {
			byScore = append(byScore, c)
		}
	}

	maxSupport := -1
	for _, c := range byScore {
		if n := len(summaries[c].Support); n > maxSupport {
			maxSupport = n
		}
	}
	var top []string
	for _, c := range byScore {
		if len(summaries[c].Support) == maxSupport {
			top = append(top, c)
		}
	}
	sort.Strings(top)
	return top
}

const minInt = -int(^uint(0)>>1) - 1

// consensusPopulation computes the MRCA of top via the ARG, or the first
// top population if the ARG is empty (spec.md §4.6 step 5).
func consensusPopulation(d *dataset.Dataset, top []string) (string, error) {
	if d.Phylogeny == nil || d.Phylogeny.IsEmpty() {
		return top[0], nil
	}
	return d.Phylogeny.MRCA(top)
}
