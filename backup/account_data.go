package backup

import "github.com/m-abdelghani02/libsignal-client-api/backup/signalbackup"

// AccountData is the validated, domain-level form of the (at most one)
// AccountData frame in a backup.
type AccountData struct {
	Username []byte
}

func convertAccountData(wire *signalbackup.AccountData) (AccountData, error) {
	return AccountData{Username: wire.Username}, nil
}
