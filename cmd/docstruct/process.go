package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docstruct/docstruct"
	"github.com/docstruct/docstruct/export"
)

var (
	processFormat  string
	processOutput  string
	processWorkers int
	processScale   float64
	processRefine  bool
	processQuiet   bool
)

var processCmd = &cobra.Command{
	Use:   "process <pdf>",
	Short: "Reconstruct a PDF and write its structure",
	Long: `Extract elements with the fallback strategy chain, build the per-page
hierarchy and the document structure, and write the result as JSON, an
indented tree or an HTML outline.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processFormat, "format", "f", "json", "output format: json, tree or html")
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "output file or directory (default stdout)")
	processCmd.Flags().IntVarP(&processWorkers, "workers", "w", 0, "pages assembled in parallel (default from config)")
	processCmd.Flags().Float64Var(&processScale, "scale", 0, "render scale of image-space boxes (default from config)")
	processCmd.Flags().BoolVar(&processRefine, "refine", false, "OCR regions whose text is empty or garbled")
	processCmd.Flags().BoolVarP(&processQuiet, "quiet", "q", false, "no progress bar or summary")
	rootCmd.AddCommand(processCmd)
}

// newProcessor builds a Processor from the loaded config and flags
func newProcessor(path string, workers int, scale float64, refine bool) *docstruct.Processor {
	p := docstruct.Open(path).Config(cfg).Logger(log)
	if workers > 0 {
		p = p.Workers(workers)
	}
	if scale > 0 {
		p = p.Scale(scale)
	}
	if refine {
		p = p.RefineText()
	}
	return p
}

func runProcess(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(processFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := newProcessor(args[0], processWorkers, processScale, processRefine)
	if !processQuiet {
		bar := newPageBar("assembling")
		defer bar.Finish()
		p = p.Progress(pageProgress(bar))
	}

	res, err := p.Process(ctx)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if processOutput != "" {
		f, err := os.Create(outputPath(processOutput, args[0], format))
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := export.Write(out, res, format); err != nil {
		return err
	}

	if !processQuiet {
		printSummary(os.Stderr, res)
	}
	return nil
}

// outputPath resolves --output. A directory gets a file named after the
// input with the format's extension.
func outputPath(output, input string, f export.Format) string {
	if info, err := os.Stat(output); err != nil || !info.IsDir() {
		return output
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(output, base+f.Extension())
}
