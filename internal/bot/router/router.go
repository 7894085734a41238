package router

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"support-relay-backend/internal/bot"
	apperrors "support-relay-backend/internal/common/errors"
	"support-relay-backend/internal/common/logger"
	blocksvc "support-relay-backend/internal/features/blocklist/service"
	"support-relay-backend/internal/features/directory"
	"support-relay-backend/internal/features/ticket/models"
	ticketsvc "support-relay-backend/internal/features/ticket/service"
)

// Router is the routing engine: it maps each inbound event onto a ticket,
// a state transition and outbound sends. Safe for concurrent use; the reply
// bindings are the only shared mutable state and carry their own lock.
type Router struct {
	adminID   int64
	tickets   ticketsvc.TicketService
	blocks    blocksvc.BlockService
	directory directory.Directory
	sender    bot.Sender
	bindings  *ReplyBindings

	now func() time.Time
}

func New(adminID int64, tickets ticketsvc.TicketService, blocks blocksvc.BlockService, dir directory.Directory, sender bot.Sender) *Router {
	return &Router{
		adminID:   adminID,
		tickets:   tickets,
		blocks:    blocks,
		directory: dir,
		sender:    sender,
		bindings:  NewReplyBindings(),
		now:       time.Now,
	}
}

func (r *Router) isAdmin(userID int64) bool {
	return userID == r.adminID
}

// HandleEvent processes one inbound event. Never panics the process: every
// failure is logged and the next event proceeds independently.
func (r *Router) HandleEvent(ctx context.Context, ev *bot.Event) {
	switch ev.Kind {
	case bot.EventCommand:
		r.handleCommand(ctx, ev)
	case bot.EventButtonPress:
		r.handleButton(ctx, ev)
	case bot.EventText, bot.EventMedia:
		r.handleMessage(ctx, ev)
	}
}

func (r *Router) handleCommand(ctx context.Context, ev *bot.Event) {
	switch ev.Command {
	case "start":
		if r.isAdmin(ev.SenderID) {
			r.bindings.Clear(ev.ChatID)
		}
		r.send(ctx, ev.ChatID, msgGreeting)
	case "reply":
		r.handleReplyCommand(ctx, ev)
	case "testadmin":
		r.bindings.Clear(ev.ChatID)
		if err := r.sender.SendText(ctx, r.adminID, msgTestAdmin); err != nil {
			logger.Error().Err(err).Int64("admin_id", r.adminID).Msg("Failed to send test message to admin")
			return
		}
		logger.Info().Int64("admin_id", r.adminID).Msg("Sent test message to admin")
	}
	// Unknown commands are ignored.
}

// handleReplyCommand is the privileged one-shot reply directive:
// /reply <ticket_id> <message>. It clears any active binding and does not
// set a new one.
func (r *Router) handleReplyCommand(ctx context.Context, ev *bot.Event) {
	if !r.isAdmin(ev.SenderID) {
		r.send(ctx, ev.ChatID, msgUnauthorized)
		return
	}

	r.bindings.Clear(ev.ChatID)

	parts := strings.SplitN(strings.TrimSpace(ev.Args), " ", 2)
	if len(parts) < 2 || parts[0] == "" || strings.TrimSpace(parts[1]) == "" {
		r.send(ctx, ev.ChatID, msgReplyUsage)
		return
	}
	ticketID, replyText := parts[0], parts[1]

	ticket, err := r.tickets.Find(ctx, ticketID)
	if err != nil {
		r.send(ctx, ev.ChatID, ticketFailureText(err))
		return
	}

	if err := r.sender.SendText(ctx, ticket.UserChatID, replyPrefix+replyText); err != nil {
		logger.Error().Err(err).Str("ticket_id", ticket.ID).Msg("Failed to deliver reply to user")
		return
	}
	r.send(ctx, ev.ChatID, msgReplySent)
}

func (r *Router) handleButton(ctx context.Context, ev *bot.Event) {
	switch ev.Action {
	case bot.ActionReadTicket:
		r.handleReadTicket(ctx, ev)
	case bot.ActionReplyTicket:
		r.bindings.Bind(ev.ChatID, ev.ActionArg)
		r.send(ctx, ev.ChatID, msgReplyPrompt)
	case bot.ActionBlockUser:
		r.handleBlockUser(ctx, ev)
	case bot.ActionCheckUser:
		r.handleCheckUser(ctx, ev)
	}
	// Unknown action tags are a no-op.
}

// handleReadTicket marks the ticket read and notifies its user. The button
// message is edited to the closed label even when the ticket is missing, so
// the admin view always settles.
func (r *Router) handleReadTicket(ctx context.Context, ev *bot.Event) {
	ticket, err := r.tickets.MarkRead(ctx, ev.ActionArg)
	switch {
	case err == nil:
		if sendErr := r.sender.SendText(ctx, ticket.UserChatID, msgTicketClosed); sendErr != nil {
			logger.Error().Err(sendErr).Str("ticket_id", ticket.ID).Msg("Failed to notify user about closed ticket")
		}
	case isNotFound(err):
		logger.Warn().Str("ticket_id", ev.ActionArg).Msg("Read action for unknown ticket")
	default:
		logger.Error().Err(err).Str("ticket_id", ev.ActionArg).Msg("Failed to mark ticket read")
	}

	if err := r.sender.EditMessage(ctx, ev.MessageRef, msgClosedLabel); err != nil {
		logger.Error().Err(err).Msg("Failed to edit ticket message")
	}
}

func (r *Router) handleBlockUser(ctx context.Context, ev *bot.Event) {
	userID, err := strconv.ParseInt(ev.ActionArg, 10, 64)
	if err != nil {
		logger.Warn().Str("arg", ev.ActionArg).Msg("Block action with non-numeric user id")
		return
	}

	if err := r.blocks.Block(ctx, userID); err != nil {
		logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to block user")
		return
	}

	if err := r.sender.EditMessage(ctx, ev.MessageRef, fmt.Sprintf("User %d has been blocked.", userID)); err != nil {
		logger.Error().Err(err).Msg("Failed to edit block message")
	}
}

func (r *Router) handleCheckUser(ctx context.Context, ev *bot.Event) {
	userID, err := strconv.ParseInt(ev.ActionArg, 10, 64)
	if err != nil {
		logger.Warn().Str("arg", ev.ActionArg).Msg("Check action with non-numeric user id")
		return
	}

	if r.directory == nil {
		r.send(ctx, ev.ChatID, fmt.Sprintf("User %d not found in directory.", userID))
		return
	}

	record, err := r.directory.FindByID(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", userID).Msg("Directory lookup failed")
		r.send(ctx, ev.ChatID, fmt.Sprintf("Directory lookup failed for user %d.", userID))
		return
	}
	if record == nil {
		r.send(ctx, ev.ChatID, fmt.Sprintf("User %d not found in directory.", userID))
		return
	}

	r.send(ctx, ev.ChatID, record.Summary(r.now()))
}

func (r *Router) handleMessage(ctx context.Context, ev *bot.Event) {
	if r.isAdmin(ev.SenderID) {
		r.handleAdminMessage(ctx, ev)
		return
	}

	blocked, err := r.blocks.IsBlocked(ctx, ev.SenderID)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", ev.SenderID).Msg("Failed to check block list")
		return
	}
	if blocked {
		r.send(ctx, ev.ChatID, msgBlocked)
		return
	}

	r.createTicket(ctx, ev)
}

// handleAdminMessage forwards the admin's plain message to the bound ticket's
// user. An active binding always wins over the usage hint.
func (r *Router) handleAdminMessage(ctx context.Context, ev *bot.Event) {
	ticketID, ok := r.bindings.Consume(ev.ChatID)
	if !ok {
		r.send(ctx, ev.ChatID, msgAdminUsageHint)
		return
	}

	ticket, err := r.tickets.Find(ctx, ticketID)
	if err != nil {
		// Binding is already cleared by Consume.
		r.send(ctx, ev.ChatID, ticketFailureText(err))
		return
	}

	if err := r.forward(ctx, ticket.UserChatID, ev); err != nil {
		logger.Error().Err(err).Str("ticket_id", ticket.ID).Msg("Failed to deliver admin reply")
		return
	}
	r.send(ctx, ev.ChatID, msgReplyDone)
}

func (r *Router) forward(ctx context.Context, userChatID int64, ev *bot.Event) error {
	if ev.Kind == bot.EventMedia {
		caption := ev.Media.Caption
		if caption != "" {
			caption = replyPrefix + caption
		}
		return r.sender.SendMedia(ctx, userChatID, ev.Media.Kind, ev.Media.FileID, caption)
	}
	return r.sender.SendText(ctx, userChatID, replyPrefix+ev.Text)
}

// createTicket persists the ticket, notifies the admin with the action
// keyboard, and acknowledges the user. Notification failures are logged and
// never roll the ticket back.
func (r *Router) createTicket(ctx context.Context, ev *bot.Event) {
	in := ticketsvc.CreateInput{
		UserID:      ev.SenderID,
		UserChatID:  ev.ChatID,
		DisplayName: ev.DisplayName(),
		Body:        ev.Text,
	}
	if ev.Kind == bot.EventMedia {
		in.Body = ev.Media.Caption
		in.Attachment = &models.Attachment{Kind: ev.Media.Kind, FileID: ev.Media.FileID}
	}

	ticket, err := r.tickets.Create(ctx, in)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", ev.SenderID).Msg("Failed to create ticket")
		return
	}

	r.notifyAdmin(ctx, ev, ticket)
	r.send(ctx, ev.ChatID, msgTicketAck)
}

func (r *Router) notifyAdmin(ctx context.Context, ev *bot.Event, ticket *models.Ticket) {
	rows := [][]bot.Button{
		{{Label: "Mark as Read", Payload: bot.ButtonPayload(bot.ActionReadTicket, ticket.ID)}},
		{{Label: "Reply", Payload: bot.ButtonPayload(bot.ActionReplyTicket, ticket.ID)}},
		{{Label: "Block User", Payload: bot.ButtonPayload(bot.ActionBlockUser, strconv.FormatInt(ticket.UserID, 10))}},
	}
	if r.directory != nil {
		rows = append(rows, []bot.Button{
			{Label: "Check User", Payload: bot.ButtonPayload(bot.ActionCheckUser, strconv.FormatInt(ticket.UserID, 10))},
		})
	}

	text := adminNotificationText(ev, ticket)
	if err := r.sender.SendMarkdown(ctx, r.adminID, text, rows...); err != nil {
		logger.Error().Err(err).Int64("admin_id", r.adminID).Int64("user_id", ticket.UserID).
			Msg("Failed to send message to admin")
	} else {
		logger.Info().Int64("admin_id", r.adminID).Int64("user_id", ticket.UserID).
			Str("ticket_id", ticket.ID).Msg("Sent ticket notification to admin")
	}

	if ticket.Attachment != nil {
		if err := r.sender.SendMedia(ctx, r.adminID, ticket.Attachment.Kind, ticket.Attachment.FileID, ""); err != nil {
			logger.Error().Err(err).Str("ticket_id", ticket.ID).Msg("Failed to forward attachment to admin")
		}
	}
}

func adminNotificationText(ev *bot.Event, ticket *models.Ticket) string {
	var b strings.Builder
	b.WriteString("📩 *New Message from User*\n")
	fmt.Fprintf(&b, "👤 *User:* %s (@%s)\n", ev.FirstName, ticket.DisplayName)
	fmt.Fprintf(&b, "🆔 *UID:* `%d`\n\n", ticket.UserID)
	b.WriteString("💬 *Message:*\n")
	b.WriteString(ticket.Body)
	if ticket.Attachment != nil {
		fmt.Fprintf(&b, "\n📎 *Attachment:* %s", ticket.Attachment.Kind)
	}
	fmt.Fprintf(&b, "\n\n📝 *Ticket ID:* `%s`", ticket.ID)
	return b.String()
}

// send delivers a plain text message and logs a failure instead of
// surfacing it; a failed send never aborts event processing.
func (r *Router) send(ctx context.Context, chatID int64, text string) {
	if err := r.sender.SendText(ctx, chatID, text); err != nil {
		logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

func ticketFailureText(err error) string {
	if appErr, ok := apperrors.AsAppError(err); ok {
		if appErr.Code == apperrors.ErrCodeMalformedID {
			return msgInvalidTicketID
		}
		if appErr.Code == apperrors.ErrCodeTicketNotFound {
			return msgTicketNotFound
		}
	}
	return msgTicketNotFound
}

func isNotFound(err error) bool {
	appErr, ok := apperrors.AsAppError(err)
	return ok && appErr.IsNotFound()
}
