package backup

import (
	"errors"
	"fmt"
)

// validationError is a sentinel frame-rejection error that is classified
// as an errdefs.ErrValidation.
type validationError struct{ msg string }

func (e *validationError) Error() string      { return e.msg }
func (e *validationError) IsValidation() bool { return true }

// ErrEmptyFrame is returned when a Frame's item oneof carries no value.
var ErrEmptyFrame error = &validationError{"frame.item is a oneof but has no value"}

// ErrMultipleAccountData is returned when a second AccountData frame is
// added to a backup that already has one.
var ErrMultipleAccountData error = &validationError{"multiple AccountData frames found"}

// ErrDuplicateRecipient is the cause wrapped by RecipientFrameError when a
// RecipientId has already been seen.
var ErrDuplicateRecipient = errors.New("duplicate recipient")

// ErrDuplicateId is the cause wrapped by ChatFrameError, CallFrameError,
// and StickerError when an id collides with one already accepted.
var ErrDuplicateId = errors.New("duplicate id")

// ErrNoChatForItem is the cause wrapped by ChatFrameError when a ChatItem
// names a ChatId that hasn't been accepted yet.
var ErrNoChatForItem = errors.New("no chat with this id")

// ErrNoSuchRecipient is the cause wrapped when a frame references a
// RecipientId with no record. Its message must contain "no record" (see
// spec property 3).
var ErrNoSuchRecipient = errors.New("no record of recipient")

// ErrInvalidStickerPackId is returned when a sticker pack frame's id is
// not StickerPackIdLen bytes.
var ErrInvalidStickerPackId = errors.New("sticker pack id is invalid")

// RecipientFrameError wraps an error encountered while processing a
// Recipient frame, with the id it was processing.
type RecipientFrameError struct {
	Id    RecipientId
	Cause error
}

func (e *RecipientFrameError) Error() string {
	return fmt.Sprintf("recipient %s error: %s", e.Id, e.Cause)
}

func (e *RecipientFrameError) Unwrap() error { return e.Cause }

// IsValidation marks RecipientFrameError as an errdefs.ErrValidation.
func (e *RecipientFrameError) IsValidation() bool { return true }

// ChatFrameError wraps an error encountered while processing a Chat or
// ChatItem frame, with the ChatId it was processing.
type ChatFrameError struct {
	Id    ChatId
	Cause error
}

func (e *ChatFrameError) Error() string {
	return fmt.Sprintf("chat frame %s error: %s", e.Id, e.Cause)
}

func (e *ChatFrameError) Unwrap() error { return e.Cause }

// IsValidation marks ChatFrameError as an errdefs.ErrValidation.
func (e *ChatFrameError) IsValidation() bool { return true }

// CallFrameError wraps an error encountered while processing the Call
// side-effect of a ChatItem frame, with the CallId it was processing.
type CallFrameError struct {
	Id    CallId
	Cause error
}

func (e *CallFrameError) Error() string {
	return fmt.Sprintf("call data %s error: %s", e.Id, e.Cause)
}

func (e *CallFrameError) Unwrap() error { return e.Cause }

// IsValidation marks CallFrameError as an errdefs.ErrValidation.
func (e *CallFrameError) IsValidation() bool { return true }

// StickerError wraps an error encountered while processing a StickerPack
// frame. Id is the zero value when Cause is ErrInvalidStickerPackId,
// since no valid id could be parsed.
type StickerError struct {
	Id    StickerPackId
	Cause error
}

func (e *StickerError) Error() string {
	if errors.Is(e.Cause, ErrInvalidStickerPackId) {
		return "sticker pack error: " + e.Cause.Error()
	}
	return fmt.Sprintf("sticker pack %s error: %s", e.Id, e.Cause)
}

func (e *StickerError) Unwrap() error { return e.Cause }

// IsValidation marks StickerError as an errdefs.ErrValidation.
func (e *StickerError) IsValidation() bool { return true }

// AccountDataError wraps an error encountered while converting an
// AccountData frame.
type AccountDataError struct {
	Cause error
}

func (e *AccountDataError) Error() string { return "account data error: " + e.Cause.Error() }
func (e *AccountDataError) Unwrap() error { return e.Cause }

// IsValidation marks AccountDataError as an errdefs.ErrValidation.
func (e *AccountDataError) IsValidation() bool { return true }
