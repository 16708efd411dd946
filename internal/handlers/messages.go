package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"agrocore/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SendMessageHandler handles POST /api/messages, either as JSON or as a
// multipart form carrying an image. The message is durable before anything is
// pushed; an absent receiver is not an error.
func (h *Handler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	var msg models.Message

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if !h.decodeMultipartMessage(w, r, &msg) {
			return
		}
	} else if !h.decodeBody(w, r, &msg) {
		return
	}

	if msg.SenderID == msg.ReceiverID {
		writeError(w, http.StatusBadRequest, "cannot message yourself")
		return
	}
	if msg.Content == "" && msg.ImageURL == nil {
		writeError(w, http.StatusBadRequest, "message content is required")
		return
	}

	if err := h.Store.CreateMessage(r.Context(), &msg); err != nil {
		writeStorageError(w, err, "user not found")
		return
	}

	// Live delivery and the notification are both best-effort extras on top
	// of the durable row.
	h.Live.Push(msg.ReceiverID, "new_message", msg)
	h.notify(r.Context(), msg.ReceiverID, msg.SenderID, models.NotifyMessage, msg.ID)

	writeJSON(w, http.StatusCreated, msg)
}

func (h *Handler) decodeMultipartMessage(w http.ResponseWriter, r *http.Request, msg *models.Message) bool {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return false
	}

	var err1, err2 error
	msg.SenderID, err1 = strconv.Atoi(r.FormValue("senderId"))
	msg.ReceiverID, err2 = strconv.Atoi(r.FormValue("receiverId"))
	if err1 != nil || err2 != nil || msg.SenderID <= 0 || msg.ReceiverID <= 0 {
		writeError(w, http.StatusBadRequest, "missing or invalid senderId/receiverId")
		return false
	}
	msg.Content = r.FormValue("content")

	file, header, err := r.FormFile("image")
	if err != nil {
		// No image attached; content-only multipart is fine.
		return true
	}
	defer file.Close()

	name := uuid.New().String() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(h.UploadDir, name))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store image")
		return false
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store image")
		return false
	}

	url := "/uploads/" + name
	msg.ImageURL = &url
	return true
}

// GetConversationMessagesHandler handles
// GET /api/messages/{contactId}?currentUserId=: the full two-party thread in
// insertion order.
func (h *Handler) GetConversationMessagesHandler(w http.ResponseWriter, r *http.Request) {
	contactID, err := strconv.Atoi(chi.URLParam(r, "contactId"))
	if err != nil || contactID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid contactId")
		return
	}
	userID, ok := queryUserID(w, r, "currentUserId")
	if !ok {
		return
	}

	messages, err := h.Store.GetConversationMessages(r.Context(), userID, contactID)
	if err != nil {
		writeStorageError(w, err, "messages not found")
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// GetConversationsHandler handles GET /api/messages/conversations?userId=.
func (h *Handler) GetConversationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r, "userId")
	if !ok {
		return
	}

	conversations, err := h.Store.GetConversations(r.Context(), userID)
	if err != nil {
		writeStorageError(w, err, "conversations not found")
		return
	}

	writeJSON(w, http.StatusOK, conversations)
}
