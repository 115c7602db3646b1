package cmd

import (
	"encoding/json"
	"os"

	"github.com/google/subcommands"
)

// printJSON prints v as indented JSON.
func printJSON(v any) subcommands.ExitStatus {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fail("encoding JSON: %v", err)
	}
	return subcommands.ExitSuccess
}
