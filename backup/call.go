package backup

import "github.com/m-abdelghani02/libsignal-client-api/backup/signalbackup"

// CallType mirrors signalbackup.CallType at the domain level.
type CallType int32

const (
	CallTypeUnknown CallType = iota
	CallTypeAudio
	CallTypeVideo
	CallTypeGroup
)

// Call is the validated, domain-level form of the call a ChatItem may
// produce as a side effect.
type Call struct {
	Id      CallId
	ChatId  ChatId
	Type    CallType
	Started bool
}

func convertCall(wire *signalbackup.IncomingCallDetails, chatId ChatId) (Call, error) {
	return Call{
		Id:      CallId(wire.CallId),
		ChatId:  chatId,
		Type:    CallType(wire.Type),
		Started: wire.Started,
	}, nil
}
