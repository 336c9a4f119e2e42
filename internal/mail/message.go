package mail

import (
	"encoding/base64"
	"fmt"

	"github.com/go-loremipsum/loremipsum"
)

var lorem = loremipsum.New()

// BuildMessage produces a base64-encoded RFC 2822 style message with a
// lorem-ipsum subject and body, matching what the provider's raw message
// endpoints expect.
func BuildMessage(from, to string) string {
	subject := lorem.Words(5)
	body := lorem.Paragraphs(6)
	message := fmt.Sprintf("From: %s\nTo: %s\nSubject: %s\n\n%s", from, to, subject, body)
	return base64.StdEncoding.EncodeToString([]byte(message))
}
