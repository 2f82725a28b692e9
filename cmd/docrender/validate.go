package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"digital.vasic.docrender/pkg/bank"
)

func newValidateCmd() *cobra.Command {
	var (
		results bool
		dir     string
	)

	cmd := &cobra.Command{
		Use:   "validate [file]...",
		Short: "Check suite or result files for structural problems",
		Long: `Validates suite files (or result files with --results). With --dir
every suite in the directory is loaded into one bank, which also catches
unnamed and duplicate suites, and the suite names are listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && dir == "" {
				return fmt.Errorf("requires at least one file or --dir")
			}
			if dir != "" && results {
				return fmt.Errorf("--dir validates suites; it cannot be combined with --results")
			}

			out := cmd.OutOrStdout()
			files := args
			if dir != "" {
				sources, err := validateDir(out, dir)
				if err != nil {
					return err
				}
				files = append(files, sources...)
			}

			problems := 0
			for _, path := range files {
				var errs []bank.ValidationError
				if results {
					errs = bank.ValidateResultsFile(path)
				} else {
					errs = bank.ValidateSuiteFile(path)
				}
				for _, e := range errs {
					fmt.Fprintf(out, "%s: %s\n", path, e.Error())
				}
				problems += len(errs)
			}
			if problems > 0 {
				return fmt.Errorf("%d validation problem(s) found", problems)
			}
			fmt.Fprintf(out, "%d file(s) valid\n", len(files))
			return nil
		},
	}
	cmd.Flags().BoolVar(&results, "results", false, "Validate result files instead of suites")
	cmd.Flags().StringVar(&dir, "dir", "", "Validate every suite file in this directory")
	return cmd
}

// validateDir loads dir into a bank, prints the suite names and
// returns the files it read.
func validateDir(out io.Writer, dir string) ([]string, error) {
	b := bank.New()
	if err := b.LoadDir(dir); err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "%d suite(s) in %s: %s\n", b.Count(), dir, strings.Join(b.Names(), ", "))
	return b.Sources(), nil
}
