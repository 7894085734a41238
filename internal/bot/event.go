package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"support-relay-backend/internal/features/ticket/models"
)

// EventKind tags the inbound event union.
type EventKind int

const (
	EventCommand EventKind = iota
	EventText
	EventMedia
	EventButtonPress
)

// ButtonAction is a decoded inline-button action tag.
type ButtonAction int

const (
	ActionUnknown ButtonAction = iota
	ActionReadTicket
	ActionReplyTicket
	ActionBlockUser
	ActionCheckUser
)

// Button payload wire format: "action|argument", pipe-delimited, two fields.
const (
	payloadReadTicket  = "read_ticket"
	payloadReplyTicket = "reply_ticket"
	payloadBlockUser   = "block_user"
	payloadCheckUser   = "check_user"
	payloadSeparator   = "|"
)

// MessageRef addresses an already-sent message for editing.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Media is an inbound media attachment reference.
type Media struct {
	Kind    models.MediaKind
	FileID  string
	Caption string
}

// Event is one decoded inbound transport event. Exactly the fields for the
// tagged Kind are set.
type Event struct {
	Kind EventKind

	SenderID  int64
	ChatID    int64
	Username  string
	FirstName string
	LastName  string

	// EventCommand
	Command string
	Args    string

	// EventText
	Text string

	// EventMedia
	Media *Media

	// EventButtonPress
	Action     ButtonAction
	ActionArg  string
	MessageRef MessageRef
}

// DisplayName is the best-effort human-readable label for the sender:
// username, else first+last name, else empty.
func (e *Event) DisplayName() string {
	if e.Username != "" {
		return e.Username
	}
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// ParseButtonPayload decodes an "action|argument" callback payload. Unknown
// tags and malformed payloads return ok=false and are ignored by callers.
func ParseButtonPayload(data string) (ButtonAction, string, bool) {
	parts := strings.SplitN(data, payloadSeparator, 2)
	if len(parts) != 2 {
		return ActionUnknown, "", false
	}
	switch parts[0] {
	case payloadReadTicket:
		return ActionReadTicket, parts[1], true
	case payloadReplyTicket:
		return ActionReplyTicket, parts[1], true
	case payloadBlockUser:
		return ActionBlockUser, parts[1], true
	case payloadCheckUser:
		return ActionCheckUser, parts[1], true
	}
	return ActionUnknown, "", false
}

// ButtonPayload builds the wire payload for an action button.
func ButtonPayload(action ButtonAction, arg string) string {
	var tag string
	switch action {
	case ActionReadTicket:
		tag = payloadReadTicket
	case ActionReplyTicket:
		tag = payloadReplyTicket
	case ActionBlockUser:
		tag = payloadBlockUser
	case ActionCheckUser:
		tag = payloadCheckUser
	default:
		return ""
	}
	return tag + payloadSeparator + arg
}

// DecodeUpdate maps a raw transport update onto an Event. Returns false for
// update types the router does not consume (edits, channel posts, etc.).
func DecodeUpdate(update tgbotapi.Update) (*Event, bool) {
	if cq := update.CallbackQuery; cq != nil && cq.Message != nil {
		action, arg, ok := ParseButtonPayload(cq.Data)
		ev := &Event{
			Kind:      EventButtonPress,
			SenderID:  cq.From.ID,
			ChatID:    cq.Message.Chat.ID,
			Username:  cq.From.UserName,
			FirstName: cq.From.FirstName,
			LastName:  cq.From.LastName,
			Action:    action,
			ActionArg: arg,
			MessageRef: MessageRef{
				ChatID:    cq.Message.Chat.ID,
				MessageID: cq.Message.MessageID,
			},
		}
		if !ok {
			ev.Action = ActionUnknown
		}
		return ev, true
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return nil, false
	}

	ev := &Event{
		SenderID:  msg.From.ID,
		ChatID:    msg.Chat.ID,
		Username:  msg.From.UserName,
		FirstName: msg.From.FirstName,
		LastName:  msg.From.LastName,
	}

	switch {
	case msg.IsCommand():
		ev.Kind = EventCommand
		ev.Command = msg.Command()
		ev.Args = msg.CommandArguments()
	case len(msg.Photo) > 0:
		ev.Kind = EventMedia
		// Largest photo size is last.
		ev.Media = &Media{
			Kind:    models.MediaPhoto,
			FileID:  msg.Photo[len(msg.Photo)-1].FileID,
			Caption: msg.Caption,
		}
	case msg.Voice != nil:
		ev.Kind = EventMedia
		ev.Media = &Media{
			Kind:    models.MediaVoice,
			FileID:  msg.Voice.FileID,
			Caption: msg.Caption,
		}
	case msg.Video != nil:
		ev.Kind = EventMedia
		ev.Media = &Media{
			Kind:    models.MediaVideo,
			FileID:  msg.Video.FileID,
			Caption: msg.Caption,
		}
	case msg.Text != "":
		ev.Kind = EventText
		ev.Text = msg.Text
	default:
		return nil, false
	}

	return ev, true
}
