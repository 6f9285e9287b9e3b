package notify

import (
	"crypto-storefront/internal/model"
	"fmt"
	"html"
	"strings"
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// OrderPlaced is sent to the operator chat when a buyer registers a payment.
func OrderPlaced(order *model.Order, buyerName string) string {
	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("• %s (x%d)", html.EscapeString(item.Name), item.Quantity))
	}

	return strings.Join([]string{
		"<b>[NEW ASSET ACQUISITION]</b>",
		fmt.Sprintf("Order ID: <code>%s</code>", html.EscapeString(order.ID)),
		"User: " + html.EscapeString(buyerName),
		"Email: " + html.EscapeString(order.UserEmail),
		fmt.Sprintf("Total: <b>$%s</b>", order.TotalPrice.StringFixed(2)),
		"Currency: " + html.EscapeString(order.Network),
		"\n<b>Items:</b>\n" + strings.Join(lines, "\n"),
		"\n<i>Status: Pending Confirmation</i>",
	}, "\n")
}

func OperatorJoined(user *model.User) string {
	return fmt.Sprintf("<b>[NEW OPERATOR JOINED]</b>\nAlias: %s\nEmail: %s\nUID: %s",
		html.EscapeString(user.DisplayName),
		html.EscapeString(user.Email),
		shortID(user.ID),
	)
}

func ProposalSubmitted(p *model.Proposal) string {
	return fmt.Sprintf("<b>[NEW ASSET PROPOSAL]</b>\nUser: %s\nEmail: %s\nTier: %s\n\nDescription: %s\n\nReference: %s\nWA: %s",
		html.EscapeString(p.UserName),
		html.EscapeString(p.UserEmail),
		p.Tier(),
		html.EscapeString(p.Description),
		html.EscapeString(p.ReferenceURL),
		html.EscapeString(p.WhatsApp),
	)
}

func Heartbeat(appName string) string {
	return fmt.Sprintf("<b>[SYSTEM HEARTBEAT]</b>\nTerminal: %s\nStatus: Verified", html.EscapeString(appName))
}
