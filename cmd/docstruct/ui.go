package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/docstruct/docstruct"
)

// newPageBar creates a progress bar counting assembled pages
func newPageBar(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		-1,
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("pages"),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// pageProgress adapts a bar to docstruct's Progress callback
func pageProgress(bar *progressbar.ProgressBar) func(done, total int) {
	return func(done, total int) {
		if bar.GetMax() != total {
			bar.ChangeMax(total)
		}
		_ = bar.Set(done)
	}
}

// printSummary writes a colored one-screen summary of res
func printSummary(w io.Writer, res *docstruct.Result) {
	bold := color.New(color.Bold).SprintFunc()
	if res.Degraded() {
		fmt.Fprintf(w, "%s %s\n", color.YellowString("degraded:"), res.Err())
		fmt.Fprintf(w, "  pages:    %d\n", res.PageCount)
	} else {
		fmt.Fprintf(w, "%s via %s\n", color.GreenString("reconstructed"), bold(res.MethodUsed))
		fmt.Fprintf(w, "  pages:    %d\n", res.PageCount)
		fmt.Fprintf(w, "  elements: %d\n", res.NodeCount())
		fmt.Fprintf(w, "  sections: %d\n", res.Summary.SectionCount)
		fmt.Fprintf(w, "  type:     %s (confidence %.2f)\n", res.Summary.DocumentType, res.Summary.StructureConfidence)
	}
	for _, a := range res.Attempts {
		mark := color.RedString("✗")
		if a.Success {
			mark = color.GreenString("✓")
		}
		fmt.Fprintf(w, "  %s %-24s %v", mark, a.Strategy, a.Duration.Round(time.Millisecond))
		if a.FailureReason != "" {
			fmt.Fprintf(w, "  %s", color.HiBlackString(a.FailureReason))
		}
		fmt.Fprintln(w)
	}
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "  %s %s\n", color.YellowString("warning:"), warn)
	}
}
