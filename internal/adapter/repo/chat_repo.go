package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// ChatRepositoryPG persists coaching conversation turns per user.
type ChatRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewChatRepository creates a new ChatRepositoryPG.
func NewChatRepository(pool *pgxpool.Pool) *ChatRepositoryPG {
	return &ChatRepositoryPG{pool: pool}
}

// Append stores one conversation turn.
func (r *ChatRepositoryPG) Append(ctx context.Context, userID string, msg domain.ChatMessage) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO chat_messages (user_id, role, text)
VALUES ($1, $2, $3);
`, userID, msg.Role, msg.Text)
	return err
}

// History returns the most recent turns in chronological order.
func (r *ChatRepositoryPG) History(ctx context.Context, userID string, limit int) ([]domain.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT role, text
FROM (
    SELECT id, role, text
    FROM chat_messages
    WHERE user_id = $1
    ORDER BY id DESC
    LIMIT $2
) recent
ORDER BY id ASC;
`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.ChatMessage{}
	for rows.Next() {
		var msg domain.ChatMessage
		if err := rows.Scan(&msg.Role, &msg.Text); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

// Clear removes the user's conversation history.
func (r *ChatRepositoryPG) Clear(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM chat_messages WHERE user_id = $1`, userID)
	return err
}
