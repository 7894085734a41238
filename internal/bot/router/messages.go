package router

// Fixed user- and admin-facing texts. User-facing strings are Georgian,
// matching the audience of the support channel.
const (
	msgGreeting     = "მოგესალმებით! რით შეგვიძლია დაგეხმაროთ? გთხოვთ მოიწერეთ სრული ტექსტი."
	msgBlocked      = "თქვენ დაბლოკილი ხართ და აღარ შეგიძლიათ შეტყობინებების გაგზავნა"
	msgTicketAck    = "შეტყობინება გაგზავნილია ადმინისტრაციაში, გთოხვ დაელოდო პასუხს!"
	msgTicketClosed = "თქვენი მოთხოვნა განიხილა და საკითხი დახურულია!"
	msgClosedLabel  = "ბილეთი დახურულია!"
	msgReplyPrompt  = "შეიყვანე შეტყობინება: "
	msgReplyDone    = "შეტყობინება გაიგზავნა მომხმარებელთან!"

	msgAdminUsageHint  = "Use the Reply button to respond to tickets."
	msgUnauthorized    = "Unauthorized command."
	msgReplyUsage      = "Usage: /reply <ticket_id> <message>"
	msgInvalidTicketID = "Invalid ticket ID."
	msgTicketNotFound  = "Ticket not found."
	msgReplySent       = "Reply sent to the user."
	msgTestAdmin       = "🔧 Admin test message."

	replyPrefix = "Admin: "
)
