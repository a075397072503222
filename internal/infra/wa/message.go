package wa

import (
	"context"

	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
)

type LIDResolver interface {
	ResolveLIDToPhone(ctx context.Context, lid string) string
}

// SenderPhone returns a stable id for the sender. Hidden-number senders
// (LIDs) are resolved to their phone number when the mapping is known.
func SenderPhone(ctx context.Context, info types.MessageInfo, r LIDResolver) string {
	sender := info.Sender
	if sender.Server == types.HiddenUserServer || (sender.Server == types.DefaultUserServer && len(sender.User) > 15) {
		return r.ResolveLIDToPhone(ctx, sender.User)
	}
	return sender.User
}

// Content extracts the text of a message. Images carry their caption as text
// and a photo reference pointing back at the WhatsApp message.
func Content(evt *events.Message) (text, photoRef string) {
	m := evt.Message
	if m == nil {
		return "", ""
	}
	switch {
	case m.GetImageMessage() != nil:
		return m.GetImageMessage().GetCaption(), "wa:" + evt.Info.ID
	case m.Conversation != nil:
		return m.GetConversation(), ""
	case m.GetExtendedTextMessage() != nil:
		return m.GetExtendedTextMessage().GetText(), ""
	}
	return "", ""
}
