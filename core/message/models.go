package message

import (
	"time"

	"github.com/buildbytes/lms/core"
)

// Message is a directed sender→recipient note, optionally scoped to a
// project. Only the sender or the recipient may read it.
type Message struct {
	ID          string     `bson:"id" json:"id"`
	SenderID    string     `bson:"sender_id" json:"sender_id"`
	RecipientID string     `bson:"recipient_id" json:"recipient_id"`
	ProjectID   string     `bson:"project_id,omitempty" json:"project_id,omitempty"`
	Subject     string     `bson:"subject,omitempty" json:"subject,omitempty"`
	Body        string     `bson:"body" json:"body"`
	Read        bool       `bson:"read" json:"read"`
	ReadAt      *time.Time `bson:"read_at,omitempty" json:"read_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"` // UTC
}

type NewMessage struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	ProjectID   string `json:"project_id"`
	Subject     string `json:"subject"`
	Body        string `json:"body" validate:"required"`
}

func (nm *NewMessage) Validate() error {
	nm.Subject = core.CleanString(nm.Subject)
	nm.Body = core.CleanString(nm.Body)
	return core.Validate.Struct(nm)
}
