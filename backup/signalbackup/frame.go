// Package signalbackup holds the Go types for the subset of the backup
// wire schema this module needs. In the real client these are generated
// by protoc-gen-go from the backup.proto schema (an external
// collaborator, out of scope for this module per its specification);
// these hand-written equivalents follow the same oneof-via-interface
// shape protoc-gen-go produces, so the rest of this module can be
// written exactly as it would be against generated code.
package signalbackup

// Frame is one record in a backup stream. Exactly one of the Item oneof
// fields is expected to be set; IsEmpty reports when none is.
type Frame struct {
	Item isFrame_Item
}

// IsEmpty reports whether the frame's oneof has no value set.
func (f *Frame) IsEmpty() bool { return f == nil || f.Item == nil }

type isFrame_Item interface{ isFrame_Item() }

// FrameAccountData wraps an AccountData frame payload.
type FrameAccountData struct{ AccountData *AccountData }

func (*FrameAccountData) isFrame_Item() {}

// FrameRecipient wraps a Recipient frame payload.
type FrameRecipient struct{ Recipient *Recipient }

func (*FrameRecipient) isFrame_Item() {}

// FrameChat wraps a Chat frame payload.
type FrameChat struct{ Chat *Chat }

func (*FrameChat) isFrame_Item() {}

// FrameChatItem wraps a ChatItem frame payload.
type FrameChatItem struct{ ChatItem *ChatItem }

func (*FrameChatItem) isFrame_Item() {}

// FrameStickerPack wraps a StickerPack frame payload.
type FrameStickerPack struct{ StickerPack *StickerPack }

func (*FrameStickerPack) isFrame_Item() {}

// BackupInfo is the header record every backup stream begins with.
type BackupInfo struct {
	Version      uint64
	BackupTimeMs int64
}

// AccountData is the account-metadata payload. Profile/settings fields
// beyond what the validator checks are opaque to this module.
type AccountData struct {
	Username []byte
}

// Recipient is an addressable principal.
type Recipient struct {
	Id                RecipientId
	DestinationE164   string
	DestinationACIBin []byte
}

// RecipientId is the wire representation of a recipient identifier.
type RecipientId uint64

// Chat is a conversation.
type Chat struct {
	Id             ChatId
	RecipientId    RecipientId
	ExpirationTime uint64
}

// ChatId is the wire representation of a chat identifier.
type ChatId uint64

// ChatItem is a single message-like entry in a chat.
type ChatItem struct {
	ChatId      ChatId
	AuthorId    RecipientId
	DateSent    int64
	Call        *IncomingCallDetails
	Text        []byte
}

// IncomingCallDetails is the optional call metadata carried by a
// ChatItem that represents a call.
type IncomingCallDetails struct {
	CallId  CallId
	Type    CallType
	Started bool
}

// CallId is the wire representation of a call identifier.
type CallId uint64

// CallType enumerates the kinds of call a ChatItem may describe.
type CallType int32

const (
	CallTypeUnknown CallType = iota
	CallTypeAudio
	CallTypeVideo
	CallTypeGroup
)

// StickerPack is a collection of stickers the account has installed.
type StickerPack struct {
	PackId   []byte
	Key      []byte
	Stickers []*Sticker
}

// Sticker is one entry in a StickerPack.
type Sticker struct {
	Id StickerId
}

// StickerId is the wire representation of a sticker identifier within
// its pack.
type StickerId uint32
