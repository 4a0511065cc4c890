package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderLineText(t *testing.T) {
	assert.Equal(t, "- Anel", OrderLineText("Anel", 1))
	assert.Equal(t, "- Anel", OrderLineText("Anel", 0))
	assert.Equal(t, "- 3x Botão pérola", OrderLineText("Botão pérola", 3))
}

func TestOrderMessage(t *testing.T) {
	msg := OrderMessage([]string{"- Anel", "- 2x Botão"})
	assert.Equal(t, "Olá! Gostaria de pedir os seguintes produtos:\n\n- Anel\n- 2x Botão", msg)
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("5519988822112", OrderMessage([]string{"- Anel"}))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/5519988822112", u.Path)

	// The message must survive the query-escape round trip intact.
	assert.Equal(t, OrderGreeting+"\n\n- Anel", u.Query().Get("text"))
}
