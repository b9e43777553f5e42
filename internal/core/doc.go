// Package core provides the search pipeline over death-record extracts.
//
// This package holds all domain logic independent of the spreadsheet
// renderer and the command line. A run is built bottom-up:
//
//	refs, err := core.LoadReferences(cantonPath, communesPath)
//	snapshot, err := core.LoadSnapshot(ctx, sourceDir)
//	tr := core.NewTransformer(refs, calendar, core.PolicyStrict)
//	runner := core.NewRunner(core.NewSearcher(snapshot, tr), reporter,
//	    core.RunnerConfig{Workers: 4})
//	results, err := runner.Run(ctx, names)
//
// # Records
//
// Source rows carry a combined "FAMILY*GIVEN/" name, an INSEE sex code,
// YYYYMMDD birth and death dates and INSEE place codes. [Transformer]
// turns each matching row into a [Record] with display dates, an
// approximate age, a department and a resolved death place.
//
// # Sources
//
// [Snapshot] parses the directory once and is shared by every task.
// [DirSource] re-reads it on each search.
//
// # Failures
//
// Failures are tiered fatal, file, row and name; see [Describe] for the
// codes. Only fatal failures stop a run. Row failures follow the
// configured [RowPolicy].
package core
