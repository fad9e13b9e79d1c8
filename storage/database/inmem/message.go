package inmemdb

import (
	"context"
	"time"

	"github.com/buildbytes/lms/core/message"
)

type messageRepository struct {
	db *DB
}

var _ message.Repository = (*messageRepository)(nil) // interface compliance check

func NewMessageRepository(db *DB) *messageRepository {
	return &messageRepository{db: db}
}

func (repo *messageRepository) CreateMessage(_ context.Context, msg message.Message) (message.Message, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.messages[msg.ID] = &msg
	return msg, nil
}

func (repo *messageRepository) GetMessageByID(_ context.Context, id string) (message.Message, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if msg, ok := repo.db.messages[id]; ok {
		return *msg, nil
	}
	return message.Message{}, message.ErrNotFound
}

func (repo *messageRepository) QueryMessagesForUser(_ context.Context, userID string) ([]message.Message, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	msgs := make([]message.Message, 0)
	for _, msg := range repo.db.messages {
		if msg.SenderID == userID || msg.RecipientID == userID {
			msgs = append(msgs, *msg)
		}
	}
	return msgs, nil
}

func (repo *messageRepository) MarkMessageRead(_ context.Context, id string, readAt time.Time) (message.Message, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	msg, ok := repo.db.messages[id]
	if !ok {
		return message.Message{}, message.ErrNotFound
	}
	msg.Read = true
	msg.ReadAt = &readAt
	return *msg, nil
}

func (repo *messageRepository) DeleteMessage(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.messages[id]; !ok {
		return message.ErrNotFound
	}
	delete(repo.db.messages, id)
	return nil
}
