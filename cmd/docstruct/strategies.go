package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/docstruct/docstruct/extraction"
	"github.com/docstruct/docstruct/ocr"
	"github.com/docstruct/docstruct/pdftext"
	"github.com/docstruct/docstruct/preprocess"
	"github.com/docstruct/docstruct/raster"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the extraction strategies in fallback order",
	Args:  cobra.NoArgs,
	RunE:  runStrategies,
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}

func runStrategies(cmd *cobra.Command, args []string) error {
	c := extraction.Collaborators{
		Detector:   pdftext.NewDetector(),
		Rasterizer: raster.NewFitz(),
		DPI:        cfg.Render.DPI,
	}
	if len(cfg.Extraction.Variants) > 0 {
		pre, err := preprocess.New(cfg.Extraction.Variants...)
		if err != nil {
			return err
		}
		c.Preprocessor = pre
	}

	client, err := ocr.NewWithLanguage(cfg.OCR.Language)
	if err == nil {
		defer client.Close()
		c.Recognizer = client
	}

	for i, name := range extraction.Names(extraction.DefaultStrategies(c)) {
		fmt.Printf("%d. %s\n", i+1, name)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s is skipped: %v\n", color.YellowString("note:"), extraction.NameRasterOCR, err)
	}
	fmt.Printf("timeout per strategy: %s\n", cfg.Extraction.StrategyTimeout)
	return nil
}
