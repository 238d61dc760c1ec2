package schema

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// AppendMove lays m out as a Move table and returns its offset. Fields at
// their None/zero defaults are not written; presence on the wire is what
// distinguishes "no promotion" from any real value. IsCheck is written only
// alongside an exact origin square, forced into the vtable even when false
// so the reader can tell "not check" from "not recorded".
func AppendMove(b *flatbuffers.Builder, m Move) flatbuffers.UOffsetT {
	b.StartObject(moveNumSlots)
	b.PrependInt8Slot(moveSlotMovedPiece, int8(m.MovedPiece), int8(PieceNone))
	b.PrependInt8Slot(moveSlotTo, int8(m.To), int8(SquareNone))
	b.PrependBoolSlot(moveSlotIsCapture, m.IsCapture, false)
	b.PrependInt8Slot(moveSlotPromotedPiece, int8(m.PromotedPiece), int8(PieceNone))
	b.PrependInt8Slot(moveSlotCastle, int8(m.Castle), int8(CastleNone))
	b.PrependInt8Slot(moveSlotFromFile, int8(m.FromFile), int8(FileNone))
	b.PrependInt8Slot(moveSlotFromRank, int8(m.FromRank), int8(RankNone))
	if m.From != SquareNone {
		b.PrependInt8(int8(m.From))
		b.Slot(moveSlotFrom)
		b.PrependBool(m.IsCheck)
		b.Slot(moveSlotIsCheck)
	}
	return b.EndObject()
}

// AppendGame lays out a Game table referencing already-written moves by
// offset. startFEN may be empty for the standard initial position.
func AppendGame(b *flatbuffers.Builder, result GameResult, startFEN string, moves []flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	var fen flatbuffers.UOffsetT
	if startFEN != "" {
		fen = b.CreateString(startFEN)
	}
	b.StartVector(flatbuffers.SizeUOffsetT, len(moves), flatbuffers.SizeUOffsetT)
	for i := len(moves) - 1; i >= 0; i-- {
		b.PrependUOffsetT(moves[i])
	}
	movesVec := b.EndVector(len(moves))

	b.StartObject(gameNumSlots)
	b.PrependInt8Slot(gameSlotResult, int8(result), int8(ResultUnknown))
	if fen != 0 {
		b.PrependUOffsetTSlot(gameSlotStartPosition, fen, 0)
	}
	b.PrependUOffsetTSlot(gameSlotMoves, movesVec, 0)
	return b.EndObject()
}

// FinishBlock wraps the accumulated games in Archive -> union -> Block,
// finishes the builder, and returns the block payload. The returned slice
// aliases the builder's buffer and is only valid until the builder is next
// written to or reset. A zero-game block is valid.
func FinishBlock(b *flatbuffers.Builder, games []flatbuffers.UOffsetT) []byte {
	b.StartVector(flatbuffers.SizeUOffsetT, len(games), flatbuffers.SizeUOffsetT)
	for i := len(games) - 1; i >= 0; i-- {
		b.PrependUOffsetT(games[i])
	}
	gamesVec := b.EndVector(len(games))

	b.StartObject(archiveNumSlots)
	b.PrependUOffsetTSlot(archiveSlotGames, gamesVec, 0)
	archive := b.EndObject()

	b.StartObject(blockNumSlots)
	b.PrependByteSlot(blockSlotArchiveType, byte(ArchiveTypeArchive), byte(ArchiveTypeNONE))
	b.PrependUOffsetTSlot(blockSlotArchive, archive, 0)
	block := b.EndObject()

	b.Finish(block)
	return b.FinishedBytes()
}
