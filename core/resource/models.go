package resource

import (
	"time"

	"github.com/buildbytes/lms/core"
)

// Resource is a learning material (link, doc) shared by a mentor,
// optionally scoped to a project. It is owned by its creator.
type Resource struct {
	ID          string    `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	URL         string    `bson:"url" json:"url"`
	ProjectID   string    `bson:"project_id,omitempty" json:"project_id,omitempty"`
	CreatedBy   string    `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"` // UTC
}

type NewResource struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"required,url"`
	ProjectID   string `json:"project_id"`
}

func (nr *NewResource) Validate() error {
	nr.Title = core.CleanString(nr.Title)
	nr.Description = core.CleanString(nr.Description)
	nr.URL = core.CleanString(nr.URL)
	return core.Validate.Struct(nr)
}

type UpdateResource struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
}

func (ur *UpdateResource) Validate() error {
	if ur.Title != nil {
		title := core.CleanString(*ur.Title)
		if title == "" {
			return core.NewValidationError(nil, core.FieldError{Field: "title", Error: "must not be blank"})
		}
		ur.Title = &title
	}
	if ur.URL != nil {
		if err := core.Validate.Var(*ur.URL, "url"); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "url", Error: "must be a valid URL"})
		}
	}
	return nil
}

type QueryFilter struct {
	ProjectID string `query:"project_id"`
}
