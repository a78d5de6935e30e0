// Package mdblock recognizes CommonMark block structure.
//
// The package is built around a small set of line-oriented recognizers that an
// outer block dispatcher tries in a fixed priority order. Each recognizer takes
// a Cursor positioned at the start of a line and either returns the exact span
// it consumed together with an advanced Cursor, or reports a recoverable
// no-match. Nothing is consumed on failure.
//
// Core pieces:
//   - Indentation model with tab stops of four columns
//   - Sibling-block probes (thematic break, ATX heading, fence, comment, quote)
//   - List marker detection, list item segmentation and list assembly
//   - The seven CommonMark HTML block kinds
//   - Whole-document reference definition collection and resolution
//
// Parser.Parse drives the recognizers over a whole document and produces a
// Node tree. Reference resolution is a separate, explicit two-step pass:
//
//	doc := mdblock.New().Parse(src)
//	doc.CollectDefinitions()
//	if err := doc.ResolveReferences(); err != nil {
//		log.Fatal(err)
//	}
//	_ = mdblock.Dump(os.Stdout, doc.Root, mdblock.DumpOptions{})
//
// Inline spans other than reference links are left as opaque text for a
// downstream inline parser.
package mdblock
