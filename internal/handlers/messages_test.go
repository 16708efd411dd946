package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agrocore/internal/handlers/testutils"
	"agrocore/models"

	"github.com/stretchr/testify/require"
)

func TestSendMessageToOnlineReceiver(t *testing.T) {
	store := &MockStorage{}
	push := newMockPusher(2)
	h := newTestHandler(store, push)

	body := `{"senderId": 1, "receiverId": 2, "content": "price still on?"}`
	req := httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.SendMessageHandler(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	events := push.events()
	require.Len(t, events, 2)
	require.Equal(t, pushedEvent{UserID: 2, Event: "new_message"}, events[0])
	require.Equal(t, pushedEvent{UserID: 2, Event: "new_notification"}, events[1])
	require.Len(t, store.notifications, 1)
	require.Equal(t, models.NotifyMessage, store.notifications[0].Type)
}

// The live push carries the same resolved actor name the notification list
// shows, so the client never renders a blank actor.
func TestNotificationPushCarriesActorName(t *testing.T) {
	store := &MockStorage{}
	push := newMockPusher(2)
	h := newTestHandler(store, push)

	body := `{"senderId": 1, "receiverId": 2, "content": "offer updated"}`
	req := httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.SendMessageHandler(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	payloads := push.payloads()
	require.Len(t, payloads, 2)
	n, ok := payloads[1].(*models.Notification)
	require.True(t, ok)
	require.Equal(t, "Test User", n.ActorName)
}

// An offline receiver still gets a durable message row and a notification;
// only the live pushes are skipped.
func TestSendMessageToOfflineReceiver(t *testing.T) {
	store := &MockStorage{}
	push := newMockPusher() // nobody online
	h := newTestHandler(store, push)

	body := `{"senderId": 1, "receiverId": 3, "content": "see you at the fair"}`
	req := httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.SendMessageHandler(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Empty(t, push.events())
	require.Len(t, store.notifications, 1)
}

func TestSendMessageToSelfRejected(t *testing.T) {
	h := newTestHandler(&MockStorage{}, nil)

	body := `{"senderId": 1, "receiverId": 1, "content": "note to self"}`
	req := httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.SendMessageHandler(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendEmptyMessageRejected(t *testing.T) {
	h := newTestHandler(&MockStorage{}, nil)

	body := `{"senderId": 1, "receiverId": 2, "content": ""}`
	req := httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.SendMessageHandler(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetConversationMessagesHandler(t *testing.T) {
	h := newTestHandler(&MockStorage{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/messages/2?currentUserId=1", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"contactId": "2"})
	w := httptest.NewRecorder()

	h.GetConversationMessagesHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "hello")
}

func TestGetConversationsUnreadCount(t *testing.T) {
	store := &MockStorage{
		GetConversationsFunc: func(ctx context.Context, userID int) ([]models.Conversation, error) {
			return []models.Conversation{
				{ID: 2, Name: "Maria Santos", LastMessage: "see you at the fair", UnreadCount: 3},
			}, nil
		},
	}
	h := newTestHandler(store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/messages/conversations?userId=1", nil)
	w := httptest.NewRecorder()

	h.GetConversationsHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"unread_count":3`)
}

func TestGetConversationsMissingUser(t *testing.T) {
	h := newTestHandler(&MockStorage{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/messages/conversations", nil)
	w := httptest.NewRecorder()

	h.GetConversationsHandler(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
