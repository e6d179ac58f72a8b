package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"StockAdvisor/internal/thesis"
)

var thesisOpts struct {
	input       string
	from        string
	interactive bool
	formats     []string
	out         string
}

var thesisCmd = &cobra.Command{
	Use:   "thesis",
	Short: "Assemble an investment thesis document",
	Long: `Assemble the investment thesis from a YAML input file, an interactive
prompt session, or both, and write it to the output directory.

Ticker and price are taken from the latest analysis when --from is given.
In the prompt session type + to get one more field in the current section.

  advisor thesis --input ionq.yaml --format md,pdf
  advisor thesis --from last.json --interactive`,
	RunE: runThesis,
}

func init() {
	f := thesisCmd.Flags()
	f.StringVar(&thesisOpts.input, "input", "", "YAML thesis input file")
	f.StringVar(&thesisOpts.from, "from", "", "Analysis JSON used to prefill ticker and price")
	f.BoolVarP(&thesisOpts.interactive, "interactive", "i", false, "Prompt for every section")
	f.StringSliceVar(&thesisOpts.formats, "format", []string{thesis.FormatMarkdown}, "Output formats: md, html, pdf")
	f.StringVar(&thesisOpts.out, "out", "", "Output directory (default from config)")
}

func runThesis(cmd *cobra.Command, args []string) error {
	in := thesis.NewInput(cfg.Author, time.Now())

	if thesisOpts.input != "" {
		loaded, err := thesis.LoadInput(thesisOpts.input, in)
		if err != nil {
			return err
		}
		in = loaded
	}

	a, err := loadAnalysis(thesisOpts.from)
	if err != nil {
		return err
	}
	thesis.Prefill(&in, a)

	if thesisOpts.interactive {
		form := thesis.NewForm(cfg.Thesis.InitialFields)
		if err := thesis.Interactive(cmd.InOrStdin(), cmd.OutOrStdout(), form, &in); err != nil {
			return fmt.Errorf("read answers: %w", err)
		}
	}

	dir := thesisOpts.out
	if dir == "" {
		dir = cfg.OutputDir
	}
	paths, err := thesis.Export(dir, in, thesisOpts.formats)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
