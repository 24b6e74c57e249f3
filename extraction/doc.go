// Package extraction turns a document into detected layout elements by
// trying a list of strategies in order until one of them succeeds.
//
// The standard order is:
//
//  1. direct: the detector on the document as given
//  2. normalize+detect: the detector on a structurally normalized copy
//  3. variant:<name>+detect: the detector on other preprocessed copies
//     (repair, decrypt)
//  4. raster+ocr: OCR of rendered pages
//
// A failing strategy never aborts the run. Each attempt is recorded in the
// Outcome, and when every strategy fails the Outcome reports AllFailed
// rather than returning an error:
//
//	orch := extraction.NewOrchestrator(strategies, extraction.DefaultConfig())
//	out := orch.Run(ctx, extraction.Source{Path: "report.pdf"})
//	if err := out.Err(); err != nil {
//		// degraded: out.Attempts explains why
//	}
package extraction
