package backup

import (
	"fmt"

	"github.com/m-abdelghani02/libsignal-client-api/backup/signalbackup"
)

// ChatData is the validated, domain-level form of a Chat frame, plus the
// ChatItems accepted into it so far, in arrival order.
type ChatData struct {
	Id          ChatId
	RecipientId RecipientId
	Items       []ChatItemData
}

// ChatItemData is the validated, domain-level form of a ChatItem frame.
type ChatItemData struct {
	ChatId   ChatId
	AuthorId RecipientId
	DateSent Timestamp
	Text     []byte
	CallId   CallId
	HasCall  bool
}

func convertChat(wire *signalbackup.Chat, recipients recipientSet) (ChatId, ChatData, error) {
	id := ChatId(wire.Id)
	recipientId := RecipientId(wire.RecipientId)
	if !recipients.ContainsRecipient(recipientId) {
		return id, ChatData{}, fmt.Errorf("%w: recipient %s", ErrNoSuchRecipient, recipientId)
	}
	return id, ChatData{Id: id, RecipientId: recipientId}, nil
}

// maybeWithCall is the result of converting a ChatItem: the item itself,
// plus the Call it produced as a side effect, if any. Mirrors the
// two-phase commit spec.md requires: the call must be validated and
// inserted before the item is appended to its chat.
type maybeWithCall struct {
	item ChatItemData
	call *Call
}

func convertChatItem(wire *signalbackup.ChatItem, ctx *convertContext) (maybeWithCall, error) {
	authorId := RecipientId(wire.AuthorId)
	if !ctx.ContainsRecipient(authorId) {
		return maybeWithCall{}, fmt.Errorf("%w: author %s", ErrNoSuchRecipient, authorId)
	}

	item := ChatItemData{
		ChatId:   ChatId(wire.ChatId),
		AuthorId: authorId,
		DateSent: Timestamp(wire.DateSent),
		Text:     wire.Text,
	}

	var call *Call
	if wire.Call != nil {
		converted, err := convertCall(wire.Call, item.ChatId)
		if err != nil {
			return maybeWithCall{}, err
		}
		call = &converted
		item.CallId = call.Id
		item.HasCall = true
	}

	return maybeWithCall{item: item, call: call}, nil
}
