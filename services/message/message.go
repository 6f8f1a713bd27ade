package message

import (
	"context"

	messageRepo "github.com/Pratik-911/skillswap/database/repository/message"
	userRepo "github.com/Pratik-911/skillswap/database/repository/user"
	"github.com/Pratik-911/skillswap/models"
	"github.com/Pratik-911/skillswap/utils"

	"github.com/google/uuid"
)

const defaultPageSize = 50

// MessageService defines business logic for direct messaging.
type MessageService interface {
	// ListConversations summarizes the user's conversations, newest first.
	ListConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error)
	// GetConversation pages through the history with a partner, newest
	// first, and marks the partner's messages as read.
	GetConversation(ctx context.Context, userID, partnerID string, page, limit int64) ([]models.Message, error)
	// Send delivers a message from sender to receiver.
	Send(ctx context.Context, senderID, receiverID, content string) (*models.Message, error)
}

// DefaultMessageService is the production implementation.
type DefaultMessageService struct {
	Repo     messageRepo.MessageRepository
	UserRepo userRepo.UserRepository
}

func (s *DefaultMessageService) ListConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	convs, err := s.Repo.Conversations(userID)
	if err != nil {
		return nil, utils.NewInfrastructure("failed to list conversations", err)
	}
	if convs == nil {
		convs = []models.ConversationSummary{}
	}
	return convs, nil
}

func (s *DefaultMessageService) GetConversation(ctx context.Context, userID, partnerID string, page, limit int64) ([]models.Message, error) {
	partner, err := s.UserRepo.GetByID(partnerID)
	if err != nil {
		return nil, utils.NewInfrastructure("failed to load user", err)
	}
	if partner == nil {
		return nil, utils.NewNotFound("User not found")
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}

	msgs, err := s.Repo.FindBetween(userID, partnerID, page, limit)
	if err != nil {
		return nil, utils.NewInfrastructure("failed to load messages", err)
	}

	// Everything the partner sent is now read.
	if err := s.Repo.MarkRead(partnerID, userID); err != nil {
		return nil, utils.NewInfrastructure("failed to mark messages read", err)
	}

	if msgs == nil {
		msgs = []models.Message{}
	}
	return msgs, nil
}

func (s *DefaultMessageService) Send(ctx context.Context, senderID, receiverID, content string) (*models.Message, error) {
	if content == "" {
		return nil, utils.NewValidation("message content is required")
	}
	if len(content) > 1000 {
		return nil, utils.NewValidation("message content must be at most 1000 characters")
	}
	if receiverID == senderID {
		return nil, utils.NewValidation("cannot message yourself")
	}

	receiver, err := s.UserRepo.GetByID(receiverID)
	if err != nil {
		return nil, utils.NewInfrastructure("failed to load user", err)
	}
	if receiver == nil {
		return nil, utils.NewNotFound("User not found")
	}

	msg := &models.Message{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.Repo.Create(msg); err != nil {
		return nil, utils.NewInfrastructure("failed to send message", err)
	}
	return msg, nil
}
