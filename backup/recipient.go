package backup

import "github.com/m-abdelghani02/libsignal-client-api/backup/signalbackup"

// RecipientData is the validated, domain-level form of a Recipient
// frame.
type RecipientData struct {
	Id              RecipientId
	DestinationE164 string
	DestinationACI  []byte
}

func convertRecipient(wire *signalbackup.Recipient) (RecipientId, RecipientData, error) {
	id := RecipientId(wire.Id)
	return id, RecipientData{
		Id:              id,
		DestinationE164: wire.DestinationE164,
		DestinationACI:  wire.DestinationACIBin,
	}, nil
}
