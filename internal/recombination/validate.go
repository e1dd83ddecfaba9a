package recombination

import (
	"sort"
	"strings"

	"github.com/ktmeaton/rebar-sub000/internal/dataset"
)

// validate compares discoveredParents against the ARG's designated
// parents for consensus, when consensus is a known recombinant
// (spec.md §4.7 step 7). If the phylogeny has no record of consensus
// being a recombinant, the outcome is Unknown rather than Pass/Fail,
// since there is nothing to compare against.
func validate(d *dataset.Dataset, consensus string, discoveredParents []string) Validation {
	if d.Phylogeny == nil || d.Phylogeny.IsEmpty() {
		return Validation{Status: StatusUnknown, Details: "dataset has no phylogeny to validate against"}
	}
	isRecombinant, err := d.Phylogeny.IsRecombinant(consensus)
	if err != nil || !isRecombinant {
		return Validation{Status: StatusUnknown, Details: "consensus population is not a known recombinant"}
	}

	designated, err := d.Phylogeny.Parents(consensus)
	if err != nil {
		return Validation{Status: StatusUnknown, Details: "failed to read designated parents from phylogeny"}
	}

	sortedDesignated := append([]string(nil), designated...)
	sortedDiscovered := append([]string(nil), discoveredParents...)
	sort.Strings(sortedDesignated)
	sort.Strings(sortedDiscovered)

	if strings.Join(sortedDesignated, ",") == strings.Join(sortedDiscovered, ",") {
		return Validation{Status: StatusPass, Details: "discovered parents match the designated ARG parents"}
	}
	return Validation{
		Status:  StatusFail,
		Details: "discovered parents " + strings.Join(sortedDiscovered, ",") + " do not match designated parents " + strings.Join(sortedDesignated, ","),
	}
}
