package seed

import (
	"context"
	"errors"
	"testing"
)

type countingMailer struct {
	sent, inbox, trash, drafts int
	labels                     []string
	failSends                  bool
}

func (c *countingMailer) SendMessage(ctx context.Context, mailbox, toEmail string) (map[string]interface{}, error) {
	c.sent++
	if c.failSends {
		return nil, errors.New("boom")
	}
	return nil, nil
}

func (c *countingMailer) CreateMessage(ctx context.Context, mailbox, toEmail string) (map[string]interface{}, error) {
	c.inbox++
	return nil, nil
}

func (c *countingMailer) CreateTrashMessage(ctx context.Context, mailbox, toEmail string) (map[string]interface{}, error) {
	c.trash++
	return nil, nil
}

func (c *countingMailer) CreateDraftMessage(ctx context.Context, mailbox, toEmail string) (map[string]interface{}, error) {
	c.drafts++
	return nil, nil
}

func (c *countingMailer) CreateLabel(ctx context.Context, mailbox, labelName string) (map[string]interface{}, error) {
	c.labels = append(c.labels, labelName)
	return nil, nil
}

func TestRun_Counts(t *testing.T) {
	m := &countingMailer{}
	Run(context.Background(), m, "devtest@zmail.com", "dev@example.com")

	if m.sent != numSentMessages {
		t.Fatalf("sent = %d, want %d", m.sent, numSentMessages)
	}
	if len(m.labels) != numLabels {
		t.Fatalf("labels = %d, want %d", len(m.labels), numLabels)
	}
	if m.trash != numTrash {
		t.Fatalf("trash = %d, want %d", m.trash, numTrash)
	}
	if m.drafts != numDrafts {
		t.Fatalf("drafts = %d, want %d", m.drafts, numDrafts)
	}
	if m.inbox != numInbox {
		t.Fatalf("inbox = %d, want %d", m.inbox, numInbox)
	}

	for _, name := range m.labels {
		if len(name) != labelNameLen {
			t.Fatalf("label %q should be %d chars", name, labelNameLen)
		}
	}
}

func TestRun_ContinuesPastFailures(t *testing.T) {
	m := &countingMailer{failSends: true}
	Run(context.Background(), m, "devtest@zmail.com", "dev@example.com")

	if m.sent != numSentMessages {
		t.Fatalf("expected all sends attempted, got %d", m.sent)
	}
	if m.inbox != numInbox {
		t.Fatalf("later groups should still run, inbox = %d", m.inbox)
	}
}
