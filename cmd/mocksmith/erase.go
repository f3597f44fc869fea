package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mocksmith/internal/diag"
	"mocksmith/internal/diagfmt"
	"mocksmith/internal/erasure"
	"mocksmith/internal/typeexpr"
	"mocksmith/internal/typeparse"
)

var eraseCmd = &cobra.Command{
	Use:   "erase <type>",
	Short: "Show how a type erases outside a generic method",
	Example: `  mocksmith erase '[K: V]' --scope K:Hashable --scope V
  mocksmith erase 'Result<T, Error>' --scope T --where 'T: Codable'`,
	Args: cobra.ExactArgs(1),
	RunE: runErase,
}

func init() {
	eraseCmd.Flags().StringArray("scope", nil, "method generic parameter, `Name` or `Name: Constraint` (repeatable)")
	eraseCmd.Flags().StringArray("where", nil, "requirement `T: P` or `T == U` (repeatable)")
	eraseCmd.Flags().String("std-module", erasure.DefaultStdModule, "module qualifying the standard containers")
	eraseCmd.Flags().Bool("json", false, "print the result as JSON")
}

type erasePayload struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Erased bool   `json:"erased"`
}

func runErase(cmd *cobra.Command, args []string) error {
	scopeSrc, err := cmd.Flags().GetStringArray("scope")
	if err != nil {
		return fmt.Errorf("failed to get scope flag: %w", err)
	}
	whereSrc, err := cmd.Flags().GetStringArray("where")
	if err != nil {
		return fmt.Errorf("failed to get where flag: %w", err)
	}
	stdModule, err := cmd.Flags().GetString("std-module")
	if err != nil {
		return fmt.Errorf("failed to get std-module flag: %w", err)
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}

	bag := diag.NewBag(0)
	t, err := typeparse.ParseType(args[0])
	bag.AddError("", err)
	scope := make([]typeexpr.GenericParam, 0, len(scopeSrc))
	for _, src := range scopeSrc {
		gp, perr := typeparse.ParseGenericParam(src)
		if perr != nil {
			bag.AddError("", perr)
			continue
		}
		scope = append(scope, gp)
	}
	reqs := make([]typeexpr.Requirement, 0, len(whereSrc))
	for _, src := range whereSrc {
		r, perr := typeparse.ParseRequirement(src)
		if perr != nil {
			bag.AddError("", perr)
			continue
		}
		reqs = append(reqs, r)
	}
	if bag.HasErrors() {
		color, cerr := useColor(cmd, os.Stderr)
		if cerr != nil {
			return cerr
		}
		diagfmt.Pretty(cmd.ErrOrStderr(), bag, diagfmt.PrettyOpts{Color: color, ShowNotes: true})
		return errFailed
	}

	res := erasure.New(erasure.Options{StdModule: stdModule}).Erase(t, scope, reqs)
	return writeErase(cmd.OutOrStdout(), erasePayload{
		Input:  typeexpr.String(t),
		Output: typeexpr.String(res.Type),
		Erased: res.Erased,
	}, asJSON)
}

func writeErase(out io.Writer, p erasePayload, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}
	if !p.Erased {
		_, err := fmt.Fprintf(out, "%s (unchanged)\n", p.Output)
		return err
	}
	_, err := fmt.Fprintf(out, "%s\n", p.Output)
	return err
}
