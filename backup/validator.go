package backup

import (
	"errors"
	"fmt"

	"github.com/m-abdelghani02/libsignal-client-api/backup/method"
	"github.com/m-abdelghani02/libsignal-client-api/backup/signalbackup"
)

// Validator consumes a stream of frames, enforcing the invariants in
// spec.md §3 as each one arrives. Built with NewValidator it retains only
// identifiers (validate-only mode); built with NewAssembler it retains
// full payloads and can produce a Backup via Finalize.
//
// AddFrame is not safe for concurrent use: callers must serialize their
// own calls.
type Validator struct {
	meta BackupMeta

	assembling bool

	accountDataSeen bool
	accountData     *AccountData

	recipients method.Map[RecipientId, RecipientData]
	calls      method.Map[CallId, Call]
	sticker    method.Map[StickerPackId, StickerPackData]
	chats      chatStore

	// recipientValues, callValues, stickerValues and chatValues are only
	// populated in assembling mode, mirroring the payload the
	// corresponding method.Map or chatStore already holds; Finalize reads through these rather than widening the
	// method.Map interface with storage-mode-specific accessors.
	recipientValues *method.Storing[RecipientId, RecipientData]
	callValues      *method.Storing[CallId, Call]
	stickerValues   *method.Storing[StickerPackId, StickerPackData]
	chatValues      *storingChats
}

// NewValidator returns a Validator that retains only identifiers and
// foreign-key indexes, discarding payload content once it has been
// checked. Use this when you only need to confirm a backup stream is
// well-formed.
func NewValidator(meta BackupMeta) *Validator {
	return &Validator{
		meta:       meta,
		recipients: method.NewValidateOnly[RecipientId, RecipientData](),
		calls:      method.NewValidateOnly[CallId, Call](),
		sticker:    method.NewValidateOnly[StickerPackId, StickerPackData](),
		chats:      newValidateOnlyChats(),
	}
}

// NewAssembler returns a Validator that retains every accepted payload,
// so that Finalize can build the complete object graph once input ends.
func NewAssembler(meta BackupMeta) *Validator {
	recipients := method.NewStoring[RecipientId, RecipientData]()
	calls := method.NewStoring[CallId, Call]()
	sticker := method.NewStoring[StickerPackId, StickerPackData]()
	chats := newStoringChats()
	return &Validator{
		meta:            meta,
		assembling:      true,
		recipients:      recipients,
		calls:           calls,
		sticker:         sticker,
		chats:           chats,
		recipientValues: recipients,
		callValues:      calls,
		stickerValues:   sticker,
		chatValues:      chats,
	}
}

// Meta returns the backup's immutable header metadata.
func (v *Validator) Meta() BackupMeta { return v.meta }

func (v *Validator) ContainsRecipient(id RecipientId) bool { return v.recipients.Contains(id) }
func (v *Validator) ContainsCall(id CallId) bool           { return v.calls.Contains(id) }
func (v *Validator) ContainsChat(id ChatId) bool           { return v.chats.Contains(id) }

// AddFrame validates and, in assembler mode, stores a single frame. On
// error, the Validator's state is unchanged: callers may retry, skip, or
// abort.
func (v *Validator) AddFrame(frame *signalbackup.Frame) error {
	if frame.IsEmpty() {
		return ErrEmptyFrame
	}
	switch item := frame.Item.(type) {
	case *signalbackup.FrameAccountData:
		return v.addAccountData(item.AccountData)
	case *signalbackup.FrameRecipient:
		return v.addRecipient(item.Recipient)
	case *signalbackup.FrameChat:
		return v.addChat(item.Chat)
	case *signalbackup.FrameChatItem:
		return v.addChatItem(item.ChatItem)
	case *signalbackup.FrameStickerPack:
		return v.addStickerPack(item.StickerPack)
	default:
		return ErrEmptyFrame
	}
}

func (v *Validator) addAccountData(wire *signalbackup.AccountData) error {
	if v.accountDataSeen {
		return ErrMultipleAccountData
	}
	converted, err := convertAccountData(wire)
	if err != nil {
		return &AccountDataError{Cause: err}
	}
	v.accountDataSeen = true
	if v.assembling {
		v.accountData = &converted
	}
	return nil
}

func (v *Validator) addRecipient(wire *signalbackup.Recipient) error {
	id, converted, err := convertRecipient(wire)
	if err != nil {
		return &RecipientFrameError{Id: id, Cause: err}
	}
	if err := v.recipients.Insert(id, converted); err != nil {
		return &RecipientFrameError{Id: id, Cause: ErrDuplicateRecipient}
	}
	return nil
}

func (v *Validator) addChat(wire *signalbackup.Chat) error {
	id := ChatId(wire.Id)
	_, converted, err := convertChat(wire, v)
	if err != nil {
		return &ChatFrameError{Id: id, Cause: err}
	}
	if err := v.chats.Insert(id, converted); err != nil {
		return &ChatFrameError{Id: id, Cause: err}
	}
	return nil
}

func (v *Validator) addChatItem(wire *signalbackup.ChatItem) error {
	chatId := ChatId(wire.ChatId)
	if !v.chats.Contains(chatId) {
		return &ChatFrameError{Id: chatId, Cause: ErrNoChatForItem}
	}

	ctx := &convertContext{recipients: v, calls: v, chats: v, meta: &v.meta}
	converted, err := convertChatItem(wire, ctx)
	if err != nil {
		return &ChatFrameError{Id: chatId, Cause: err}
	}

	// Delay updates to state until everything has been fallibly
	// converted: the call, if any, is inserted first, and only once that
	// succeeds is the item appended to its chat.
	if converted.call != nil {
		if err := v.calls.Insert(converted.call.Id, *converted.call); err != nil {
			return &CallFrameError{Id: converted.call.Id, Cause: ErrDuplicateId}
		}
	}

	v.chats.AppendItem(chatId, converted.item)
	return nil
}

func (v *Validator) addStickerPack(wire *signalbackup.StickerPack) error {
	id, converted, err := convertStickerPack(wire)
	if err != nil {
		return &StickerError{Cause: fmt.Errorf("%w: %v", ErrInvalidStickerPackId, err)}
	}
	if err := v.sticker.Insert(id, converted); err != nil {
		return &StickerError{Id: id, Cause: ErrDuplicateId}
	}
	return nil
}

// ErrNotAssembling is returned by Finalize when called on a Validator
// built with NewValidator: validate-only mode never retains payloads, so
// there is nothing to assemble.
var ErrNotAssembling = errors.New("validator is in validate-only mode, nothing to finalize")

// Finalize returns the complete object graph accepted so far. It is only
// meaningful for a Validator built with NewAssembler; called on a
// validate-only Validator it returns ErrNotAssembling.
func (v *Validator) Finalize() (*Backup, error) {
	if !v.assembling {
		return nil, ErrNotAssembling
	}
	return &Backup{
		Meta:         v.meta,
		AccountData:  v.accountData,
		Recipients:   v.recipientValues.Values(),
		Chats:        v.chatValues.snapshot(),
		Calls:        v.callValues.Values(),
		StickerPacks: v.stickerValues.Values(),
	}, nil
}
