package service

import (
	"context"

	"github.com/cwrk-planet/club-service/internal/domain"
	"github.com/cwrk-planet/club-service/internal/repository"
)

type ChatService struct {
	store repository.Store
}

func NewChatService(store repository.Store) *ChatService {
	return &ChatService{store: store}
}

// Append сохраняет сообщение; автор без имени пишется как Anon.
func (s *ChatService) Append(ctx context.Context, name, text string) (*domain.Message, error) {
	if name == "" {
		name = "Anon"
	}
	return s.store.AppendMessage(ctx, name, text)
}

// History возвращает всю историю в порядке вставки.
func (s *ChatService) History(ctx context.Context) ([]domain.Message, error) {
	return s.store.ListMessages(ctx)
}
