// Package monitor is the ingestion and normalization engine behind the
// CEU-UIA macroeconomic monitor. It pulls Argentine indicators from public
// statistical agencies (BCRA, INDEC, SIPA, datos.gob.ar) and market feeds,
// reduces every source to a canonical dated series, and derives the
// comparable metrics (monthly and yearly variations, accumulated ranges,
// rebased indices, as-of alignments) that the presentation layer consumes.
//
// Sources are unreliable by nature: paginated JSON APIs that drop pages,
// spreadsheets with headers on arbitrary rows, decimal commas, Spanish
// month names and years printed once per block. The engine's contract is
// that none of that ever surfaces as a crash: rows that cannot be parsed
// are dropped, sources that cannot be fetched degrade to an explicit
// "no data" signal, and every derived value short-circuits to missing
// rather than failing.
package monitor
