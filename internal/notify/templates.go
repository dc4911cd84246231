package notify

import (
	"fmt"
	"strings"
)

const notProvided = "(not provided)"

func contactEmail(msg ContactMessage) (subject, text string) {
	subject = fmt.Sprintf("New Contact Form Message from %s", msg.Email)
	text = fmt.Sprintf(`New message from: %s

Message:
%s
`, msg.Email, msg.Message)
	return subject, text
}

func subscriptionEmail(req SubscriptionRequest) (subject, text string) {
	subject = fmt.Sprintf("New Newsletter Subscription from %s", req.Email)
	text = fmt.Sprintf(`New newsletter subscription request.

Email: %s
`, req.Email)
	return subject, text
}

func teamUpEmail(req TeamUpRequest) (subject, text string) {
	sender := strings.TrimSpace(req.FirstName + " " + req.LastName)
	if sender == "" {
		sender = req.Email
	}

	subject = fmt.Sprintf("New Team Up Request from %s", sender)
	text = fmt.Sprintf(`New team up request.

First name: %s
Last name: %s
Email: %s
Phone: %s

Message:
%s
`,
		orNotProvided(req.FirstName),
		orNotProvided(req.LastName),
		req.Email,
		orNotProvided(req.Phone),
		req.Message,
	)
	return subject, text
}

func orNotProvided(s string) string {
	if s == "" {
		return notProvided
	}
	return s
}
