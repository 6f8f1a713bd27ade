package models

import "time"

// Message is a direct message between two users.
type Message struct {
	ID         string    `bson:"id" json:"id"`
	SenderID   string    `bson:"senderId" json:"senderId"`
	ReceiverID string    `bson:"receiverId" json:"receiverId"`
	Content    string    `bson:"content" json:"content"`
	IsRead     bool      `bson:"isRead" json:"isRead"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// MessageInput is the send-message payload.
type MessageInput struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// ConversationSummary is one row of the conversation list: the partner, the
// most recent message and how many of their messages are still unread.
type ConversationSummary struct {
	PartnerID   string      `bson:"_id" json:"partnerId"`
	Partner     UserSummary `bson:"partner" json:"partner"`
	LastMessage Message     `bson:"lastMessage" json:"lastMessage"`
	UnreadCount int         `bson:"unreadCount" json:"unreadCount"`
}
