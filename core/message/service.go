package message

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/buildbytes/lms/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("message not found")
)

type (
	Repository interface {
		CreateMessage(ctx context.Context, msg Message) (Message, error)
		GetMessageByID(ctx context.Context, id string) (Message, error)
		QueryMessagesForUser(ctx context.Context, userID string) ([]Message, error)
		MarkMessageRead(ctx context.Context, id string, readAt time.Time) (Message, error)
		DeleteMessage(ctx context.Context, id string) error
	}

	// UserDirectory is the slice of the user service this package needs.
	UserDirectory interface {
		GetByID(ctx context.Context, id string) (user.User, error)
	}

	Service struct {
		repo  Repository
		users UserDirectory
	}
)

func NewService(repo Repository, users UserDirectory) *Service {
	return &Service{repo: repo, users: users}
}

// Send delivers a message after confirming the recipient exists.
func (svc *Service) Send(ctx context.Context, nm NewMessage, senderID string) (Message, error) {
	if _, err := svc.users.GetByID(ctx, nm.RecipientID); err != nil {
		return Message{}, err
	}

	msg := Message{
		ID:          uuid.New().String(),
		SenderID:    senderID,
		RecipientID: nm.RecipientID,
		ProjectID:   nm.ProjectID,
		Subject:     nm.Subject,
		Body:        nm.Body,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateMessage(ctx, msg)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Message, error) {
	return svc.repo.GetMessageByID(ctx, id)
}

// QueryForUser returns all messages sent or received by the given user.
func (svc *Service) QueryForUser(ctx context.Context, userID string) ([]Message, error) {
	return svc.repo.QueryMessagesForUser(ctx, userID)
}

func (svc *Service) MarkRead(ctx context.Context, id string) (Message, error) {
	return svc.repo.MarkMessageRead(ctx, id, time.Now().UTC())
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteMessage(ctx, id)
}
