package backup

// BackupMeta is the fixed header metadata of a backup, set once when the
// validator is created and immutable afterward.
type BackupMeta struct {
	Version    uint64
	BackupTime Timestamp
	Purpose    Purpose
}

// Backup is the fully materialized object graph produced by
// Validator.Finalize in assembler mode.
type Backup struct {
	Meta         BackupMeta
	AccountData  *AccountData
	Recipients   map[RecipientId]RecipientData
	Chats        map[ChatId]ChatData
	Calls        map[CallId]Call
	StickerPacks map[StickerPackId]StickerPackData
}
