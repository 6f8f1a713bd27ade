package messageRepo

import "github.com/Pratik-911/skillswap/models"

// MessageRepository defines methods for direct-message data access.
type MessageRepository interface {
	// Create inserts a new message record.
	Create(msg *models.Message) error
	// FindBetween pages through the conversation between two users,
	// newest first.
	FindBetween(userA, userB string, page, limit int64) ([]models.Message, error)
	// MarkRead marks every message from sender to receiver as read.
	MarkRead(senderID, receiverID string) error
	// Conversations summarizes the user's conversations: partner, last
	// message and unread count, most recent first.
	Conversations(userID string) ([]models.ConversationSummary, error)
}
