// Package archive implements the cbin streaming encoder and parallel decoder.
//
// Encode path: Converter drives a PGN scanner game by game and feeds a
// Serializer, which accumulates deduplicated moves and games into one
// in-memory FlatBuffers block and flushes it to the output as
// [u32 LE length][block bytes] when a games-per-block threshold is hit
// (or on explicit flush).
//
// Decode path: BlockScanner walks the length prefixes of a whole-file buffer
// sequentially; Analyzer fans the resulting block slices out to workers,
// each of which parses its block and replays every game's compact moves
// against a rules engine to reconstruct full moves and per-block statistics,
// merged at the end.
//
// Failure granularity:
//   - A corrupt block is skipped and counted, never fatal to the scan.
//   - A game whose compact move cannot be resolved to a unique legal move is
//     skipped and counted, never fatal to its block.
//   - I/O errors on the output sink propagate to the caller; the encoder's
//     in-memory block state is reset regardless.
package archive
