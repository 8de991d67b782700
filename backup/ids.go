package backup

import (
	"fmt"
	"strings"
	"time"
)

// RecipientId identifies a Recipient within a single backup. It is opaque
// to this package beyond uniqueness and equality.
type RecipientId int64

func (id RecipientId) String() string { return fmt.Sprintf("RecipientId(%d)", int64(id)) }

// ChatId identifies a Chat within a single backup.
type ChatId int64

func (id ChatId) String() string { return fmt.Sprintf("ChatId(%d)", int64(id)) }

// CallId identifies a Call within a single backup.
type CallId int64

func (id CallId) String() string { return fmt.Sprintf("CallId(%d)", int64(id)) }

// StickerPackIdLen is the fixed byte length of a StickerPackId.
const StickerPackIdLen = 16

// StickerPackId identifies a StickerPack. It must be exactly
// StickerPackIdLen bytes; ParseStickerPackId enforces that.
type StickerPackId [StickerPackIdLen]byte

func (id StickerPackId) String() string { return fmt.Sprintf("%x", [StickerPackIdLen]byte(id)) }

// ParseStickerPackId converts a raw byte slice into a StickerPackId,
// failing if it isn't exactly StickerPackIdLen bytes long.
func ParseStickerPackId(raw []byte) (StickerPackId, error) {
	var id StickerPackId
	if len(raw) != StickerPackIdLen {
		return id, fmt.Errorf("sticker pack id is %d bytes, want %d", len(raw), StickerPackIdLen)
	}
	copy(id[:], raw)
	return id, nil
}

// StickerId identifies a sticker within a StickerPack.
type StickerId uint32

// Timestamp is a millisecond-resolution Unix timestamp, as carried on the
// wire by signalbackup.BackupInfo.BackupTimeMs and ChatItem timestamps.
type Timestamp int64

// Time converts the Timestamp to a time.Time in UTC.
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t)).UTC()
}

// Purpose is why a backup was created.
type Purpose int

const (
	// PurposeDeviceTransfer marks a backup intended for immediate
	// transfer from one device to another.
	PurposeDeviceTransfer Purpose = iota
	// PurposeRemoteBackup marks a backup intended for remote storage and
	// later restoration.
	PurposeRemoteBackup
)

// String returns the canonical wire representation of p
// ("device_transfer" or "remote_backup").
func (p Purpose) String() string {
	switch p {
	case PurposeDeviceTransfer:
		return "device_transfer"
	case PurposeRemoteBackup:
		return "remote_backup"
	default:
		return fmt.Sprintf("Purpose(%d)", int(p))
	}
}

// ParsePurpose accepts any of the canonical aliases for a Purpose,
// case-sensitively. Unrecognized input is an error.
func ParsePurpose(s string) (Purpose, error) {
	switch s {
	case "device_transfer", "device-transfer", "transfer":
		return PurposeDeviceTransfer, nil
	case "remote_backup", "remote-backup", "backup":
		return PurposeRemoteBackup, nil
	default:
		return 0, fmt.Errorf("unrecognized backup purpose %q", s)
	}
}

// purposeAliases lists every accepted spelling, for documentation and
// for use by callers building help text or flag descriptions.
var purposeAliases = map[Purpose][]string{
	PurposeDeviceTransfer: {"device_transfer", "device-transfer", "transfer"},
	PurposeRemoteBackup:   {"remote_backup", "remote-backup", "backup"},
}

// Aliases returns every accepted spelling of p, canonical form first.
func (p Purpose) Aliases() []string {
	return append([]string(nil), purposeAliases[p]...)
}

// AliasesHelp renders every Purpose's aliases for CLI usage text.
func AliasesHelp() string {
	var b strings.Builder
	for _, p := range []Purpose{PurposeDeviceTransfer, PurposeRemoteBackup} {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strings.Join(p.Aliases(), "/"))
	}
	return b.String()
}
