package backup

import "github.com/m-abdelghani02/libsignal-client-api/backup/signalbackup"

// StickerPackData is the validated, domain-level form of a StickerPack
// frame.
type StickerPackData struct {
	Id       StickerPackId
	Key      []byte
	Stickers map[StickerId]struct{}
}

func convertStickerPack(wire *signalbackup.StickerPack) (StickerPackId, StickerPackData, error) {
	id, err := ParseStickerPackId(wire.PackId)
	if err != nil {
		return StickerPackId{}, StickerPackData{}, err
	}

	stickers := make(map[StickerId]struct{}, len(wire.Stickers))
	for _, s := range wire.Stickers {
		stickers[StickerId(s.Id)] = struct{}{}
	}

	return id, StickerPackData{
		Id:       id,
		Key:      wire.Key,
		Stickers: stickers,
	}, nil
}
