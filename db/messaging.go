package db

import (
	"context"

	"agrocore/models"
)

// Messages

func (s *Storage) CreateMessage(ctx context.Context, m *models.Message) error {
	query := `
        INSERT INTO messages (sender_id, receiver_id, content, image_url)
        VALUES ($1, $2, $3, $4)
        RETURNING id, is_read, created_at`
	return s.db.QueryRowContext(ctx, query,
		m.SenderID, m.ReceiverID, m.Content, m.ImageURL).
		Scan(&m.ID, &m.IsRead, &m.CreatedAt)
}

// GetConversationMessages returns both directions of a two-party thread in
// insertion order.
func (s *Storage) GetConversationMessages(ctx context.Context, userID, contactID int) ([]models.Message, error) {
	query := `
        SELECT * FROM messages
        WHERE (sender_id = $1 AND receiver_id = $2)
           OR (sender_id = $2 AND receiver_id = $1)
        ORDER BY created_at ASC, id ASC`
	messages := []models.Message{}
	err := s.db.SelectContext(ctx, &messages, query, userID, contactID)
	return messages, err
}

// MarkMessagesRead flips every unread message from sender to receiver in one
// update and reports how many rows changed.
func (s *Storage) MarkMessagesRead(ctx context.Context, senderID, receiverID int) (int64, error) {
	query := `
        UPDATE messages SET is_read = TRUE
        WHERE sender_id = $1 AND receiver_id = $2 AND is_read = FALSE`
	res, err := s.db.ExecContext(ctx, query, senderID, receiverID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetConversations groups the user's messages by counterpart: latest snippet,
// its timestamp and the unread count, most recent activity first.
func (s *Storage) GetConversations(ctx context.Context, userID int) ([]models.Conversation, error) {
	query := `
        WITH peers AS (
            SELECT CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END AS peer_id
            FROM messages
            WHERE sender_id = $1 OR receiver_id = $1
            GROUP BY 1
        )
        SELECT u.id,
               u.name,
               last.content AS last_message,
               last.created_at,
               (SELECT COUNT(*) FROM messages x
                WHERE x.sender_id = u.id AND x.receiver_id = $1 AND x.is_read = FALSE) AS unread_count
        FROM peers
        JOIN users u ON u.id = peers.peer_id
        JOIN LATERAL (
            SELECT content, created_at FROM messages
            WHERE (sender_id = $1 AND receiver_id = u.id)
               OR (sender_id = u.id AND receiver_id = $1)
            ORDER BY created_at DESC, id DESC
            LIMIT 1
        ) last ON TRUE
        ORDER BY last.created_at DESC`
	conversations := []models.Conversation{}
	err := s.db.SelectContext(ctx, &conversations, query, userID)
	return conversations, err
}

// Notifications

// CreateNotification persists a notification unless actor and recipient are
// the same user; self-notifications are suppressed and report created=false.
// The actor's name is joined in so the live push renders like a listed row.
func (s *Storage) CreateNotification(ctx context.Context, n *models.Notification) (bool, error) {
	if n.UserID == n.ActorID {
		return false, nil
	}
	query := `
        WITH created AS (
            INSERT INTO notifications (user_id, actor_id, type, reference_id)
            VALUES ($1, $2, $3, $4)
            RETURNING *
        )
        SELECT created.*, u.name AS actor_name
        FROM created
        JOIN users u ON u.id = created.actor_id`
	err := s.db.QueryRowxContext(ctx, query,
		n.UserID, n.ActorID, n.Type, n.ReferenceID).StructScan(n)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Storage) GetUserNotifications(ctx context.Context, userID int) ([]models.Notification, error) {
	query := `
        SELECT n.*, u.name AS actor_name
        FROM notifications n
        JOIN users u ON u.id = n.actor_id
        WHERE n.user_id = $1
        ORDER BY n.created_at DESC`
	notifications := []models.Notification{}
	err := s.db.SelectContext(ctx, &notifications, query, userID)
	return notifications, err
}

func (s *Storage) MarkNotificationsRead(ctx context.Context, userID int) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE user_id = $1`
	_, err := s.db.ExecContext(ctx, query, userID)
	return err
}

func (s *Storage) DeleteUserNotifications(ctx context.Context, userID int) error {
	query := `DELETE FROM notifications WHERE user_id = $1`
	_, err := s.db.ExecContext(ctx, query, userID)
	return err
}
