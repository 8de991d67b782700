package backup

// recipientSet, callSet, and chatSet are the narrow read-only views a
// frame converter needs into the validator's own collections. Splitting
// them out (rather than handing converters the collections directly)
// keeps conversion code from depending on how the validator stores its
// state, and avoids aliasing the validator's mutable maps into code that
// must not be able to mutate them.
type recipientSet interface {
	ContainsRecipient(RecipientId) bool
}

type callSet interface {
	ContainsCall(CallId) bool
}

type chatSet interface {
	ContainsChat(ChatId) bool
}

// convertContext is the immutable, per-frame view into the validator's
// own state, handed to conversions that need to resolve foreign keys. It
// is built fresh for each frame from borrows of the validator's own
// collections and is read-only from the converter's perspective.
type convertContext struct {
	recipients recipientSet
	calls      callSet
	chats      chatSet
	meta       *BackupMeta
}

func (c *convertContext) ContainsRecipient(id RecipientId) bool { return c.recipients.ContainsRecipient(id) }
func (c *convertContext) ContainsCall(id CallId) bool           { return c.calls.ContainsCall(id) }
func (c *convertContext) ContainsChat(id ChatId) bool           { return c.chats.ContainsChat(id) }
