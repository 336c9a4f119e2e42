// Package seed populates a test mailbox by driving the mail operations
// repeatedly: sent messages, labels, trash, drafts and inbox messages.
package seed

import (
	"context"
	"log"
	"math/rand"
)

const (
	numSentMessages = 10
	numLabels       = 5
	numTrash        = 10
	numDrafts       = 10
	numInbox        = 25

	labelNameLen = 12
)

// Mailer is the subset of mail operations the seeder drives.
type Mailer interface {
	SendMessage(ctx context.Context, mailbox, toEmail string) (map[string]interface{}, error)
	CreateMessage(ctx context.Context, mailbox, toEmail string) (map[string]interface{}, error)
	CreateTrashMessage(ctx context.Context, mailbox, toEmail string) (map[string]interface{}, error)
	CreateDraftMessage(ctx context.Context, mailbox, toEmail string) (map[string]interface{}, error)
	CreateLabel(ctx context.Context, mailbox, labelName string) (map[string]interface{}, error)
}

// Run generates test data in the given mailbox. Individual failures are
// logged and skipped so one bad call does not abort the whole run.
func Run(ctx context.Context, svc Mailer, mailbox, toEmail string) {
	log.Printf("🌱 Seeding mailbox %s (to %s)", mailbox, toEmail)

	for i := 0; i < numSentMessages; i++ {
		if _, err := svc.SendMessage(ctx, mailbox, toEmail); err != nil {
			log.Printf("❌ Seed send %d/%d: %v", i+1, numSentMessages, err)
		}
	}

	for i := 0; i < numLabels; i++ {
		if _, err := svc.CreateLabel(ctx, mailbox, randomLabelName()); err != nil {
			log.Printf("❌ Seed label %d/%d: %v", i+1, numLabels, err)
		}
	}

	for i := 0; i < numTrash; i++ {
		if _, err := svc.CreateTrashMessage(ctx, mailbox, toEmail); err != nil {
			log.Printf("❌ Seed trash %d/%d: %v", i+1, numTrash, err)
		}
	}

	for i := 0; i < numDrafts; i++ {
		if _, err := svc.CreateDraftMessage(ctx, mailbox, toEmail); err != nil {
			log.Printf("❌ Seed draft %d/%d: %v", i+1, numDrafts, err)
		}
	}

	for i := 0; i < numInbox; i++ {
		if _, err := svc.CreateMessage(ctx, mailbox, toEmail); err != nil {
			log.Printf("❌ Seed inbox %d/%d: %v", i+1, numInbox, err)
		}
	}

	log.Printf("🌱 Seeding complete for %s", mailbox)
}

const labelAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func randomLabelName() string {
	b := make([]byte, labelNameLen)
	for i := range b {
		b[i] = labelAlphabet[rand.Intn(len(labelAlphabet))]
	}
	return string(b)
}
