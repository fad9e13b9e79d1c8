package mongorepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/buildbytes/lms/core/message"
)

type messageRepository struct {
	coll *mongo.Collection
}

var _ message.Repository = (*messageRepository)(nil) // interface compliance check

func NewMessageRepository(db *mongo.Database) *messageRepository {
	return &messageRepository{coll: db.Collection("messages")}
}

func (repo *messageRepository) CreateMessage(ctx context.Context, msg message.Message) (message.Message, error) {
	if _, err := repo.coll.InsertOne(ctx, msg); err != nil {
		return message.Message{}, errors.Wrap(err, "inserting message")
	}
	return msg, nil
}

func (repo *messageRepository) GetMessageByID(ctx context.Context, id string) (message.Message, error) {
	var msg message.Message
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&msg); err != nil {
		if err == mongo.ErrNoDocuments {
			return message.Message{}, message.ErrNotFound
		}
		return message.Message{}, errors.Wrap(err, "finding message")
	}
	return msg, nil
}

func (repo *messageRepository) QueryMessagesForUser(ctx context.Context, userID string) ([]message.Message, error) {
	query := bson.M{"$or": bson.A{
		bson.M{"sender_id": userID},
		bson.M{"recipient_id": userID},
	}}

	cursor, err := repo.coll.Find(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "querying messages")
	}
	msgs := make([]message.Message, 0)
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, errors.Wrap(err, "decoding messages")
	}
	return msgs, nil
}

func (repo *messageRepository) MarkMessageRead(ctx context.Context, id string, readAt time.Time) (message.Message, error) {
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"read": true, "read_at": readAt}})
	if err != nil {
		return message.Message{}, errors.Wrap(err, "marking message read")
	}
	if res.MatchedCount == 0 {
		return message.Message{}, message.ErrNotFound
	}
	return repo.GetMessageByID(ctx, id)
}

func (repo *messageRepository) DeleteMessage(ctx context.Context, id string) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return errors.Wrap(err, "deleting message")
	}
	if res.DeletedCount == 0 {
		return message.ErrNotFound
	}
	return nil
}
