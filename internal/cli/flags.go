package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flag names, grouped the way cmd/cue/cmd/flags.go groups its own:
// plain constants rather than scattered string literals, with typed
// accessors that panic if a command forgets to register one of them.
const (
	flagVerbosity  flagName = "verbosity"
	flagThreads    flagName = "threads"
	flagDatasets   flagName = "datasets-dir"
	flagOutput     flagName = "output"
	flagAlignment  flagName = "alignment"
	flagPopulation flagName = "populations"
	flagConfig     flagName = "config"
	flagMinParents flagName = "min-parents"
	flagMaxParents flagName = "max-parents"
	flagMinSubs    flagName = "min-subs"
	flagMinLength  flagName = "min-length"
	flagNaive      flagName = "naive"
)

func addGlobalFlags(f *pflag.FlagSet) {
	f.String(string(flagVerbosity), "info", "log verbosity (debug|info|warn|error)")
	f.Int(string(flagThreads), 1, "number of worker threads over the query stream")
}

type flagName string

func (f flagName) ensureAdded(flags *pflag.FlagSet) {
	if flags.Lookup(string(f)) == nil {
		panic(fmt.Sprintf("flag %q used without being registered on this command", f))
	}
}

func (f flagName) String(flags *pflag.FlagSet) string {
	f.ensureAdded(flags)
	v, _ := flags.GetString(string(f))
	return v
}

func (f flagName) Int(flags *pflag.FlagSet) int {
	f.ensureAdded(flags)
	v, _ := flags.GetInt(string(f))
	return v
}

func (f flagName) Bool(flags *pflag.FlagSet) bool {
	f.ensureAdded(flags)
	v, _ := flags.GetBool(string(f))
	return v
}

func (f flagName) StringArray(flags *pflag.FlagSet) []string {
	f.ensureAdded(flags)
	v, _ := flags.GetStringArray(string(f))
	return v
}
