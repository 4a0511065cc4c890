package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// OrderGreeting opens every order message sent through WhatsApp.
const OrderGreeting = "Olá! Gostaria de pedir os seguintes produtos:"

// OrderLineText renders a single cart line for the order message:
// "- {name}" for single units, "- {qty}x {name}" otherwise.
func OrderLineText(name string, qty int) string {
	if qty > 1 {
		return fmt.Sprintf("- %dx %s", qty, name)
	}
	return "- " + name
}

// OrderMessage builds the full order text: greeting, blank line, then one
// line per cart entry.
func OrderMessage(lines []string) string {
	return OrderGreeting + "\n\n" + strings.Join(lines, "\n")
}

// WhatsAppLink builds the wa.me deep link that opens a chat with the store
// number and the order text pre-filled.
func WhatsAppLink(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(message))
}
