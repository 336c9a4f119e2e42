package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MailService is the forwarder the mail endpoints delegate to.
type MailService interface {
	SendMessage(ctx context.Context, mailbox, toEmail string) (map[string]interface{}, error)
	CreateMessage(ctx context.Context, mailbox, toEmail string) (map[string]interface{}, error)
	CreateTrashMessage(ctx context.Context, mailbox, toEmail string) (map[string]interface{}, error)
	CreateDraftMessage(ctx context.Context, mailbox, toEmail string) (map[string]interface{}, error)
	CreateLabel(ctx context.Context, mailbox, labelName string) (map[string]interface{}, error)
	GetMailboxProfile(ctx context.Context, mailbox string) (map[string]interface{}, error)
}

type mailBody struct {
	ToEmail   string `json:"toEmail"`
	LabelName string `json:"labelName"`
}

func decodeMailBody(r *http.Request) (mailBody, error) {
	var body mailBody
	err := json.NewDecoder(r.Body).Decode(&body)
	return body, err
}

// messageOp builds a handler for the three message-creation endpoints, which
// differ only in the service call.
func messageOp(svc MailService, op func(ctx context.Context, mailbox, toEmail string) (map[string]interface{}, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mailbox := chi.URLParam(r, "mailbox")
		body, err := decodeMailBody(r)
		if err != nil {
			writeBadRequest(w, "request body must be JSON")
			return
		}

		resp, err := op(r.Context(), mailbox, body.ToEmail)
		if err != nil {
			writeInternalError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// SendMessageHandler handles POST /mail/{mailbox}/messages/send.
func SendMessageHandler(svc MailService) http.HandlerFunc {
	return messageOp(svc, svc.SendMessage)
}

// CreateMessageHandler handles POST /mail/{mailbox}/messages.
func CreateMessageHandler(svc MailService) http.HandlerFunc {
	return messageOp(svc, svc.CreateMessage)
}

// TrashMessageHandler handles POST /mail/{mailbox}/messages/trash.
func TrashMessageHandler(svc MailService) http.HandlerFunc {
	return messageOp(svc, svc.CreateTrashMessage)
}

// DraftMessageHandler handles POST /mail/{mailbox}/messages/draft.
func DraftMessageHandler(svc MailService) http.HandlerFunc {
	return messageOp(svc, svc.CreateDraftMessage)
}

// CreateLabelHandler handles POST /mail/{mailbox}/labels.
func CreateLabelHandler(svc MailService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mailbox := chi.URLParam(r, "mailbox")
		body, err := decodeMailBody(r)
		if err != nil {
			writeBadRequest(w, "request body must be JSON")
			return
		}

		resp, err := svc.CreateLabel(r.Context(), mailbox, body.LabelName)
		if err != nil {
			writeInternalError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// MailboxProfileHandler handles GET /mail/{mailbox}/profile.
func MailboxProfileHandler(svc MailService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mailbox := chi.URLParam(r, "mailbox")

		resp, err := svc.GetMailboxProfile(r.Context(), mailbox)
		if err != nil {
			writeInternalError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
