package sdk_records

import (
	"time"

	"github.com/mattiabonardi/endor-records/pkg/sdk"
)

const (
	DefaultBlogAuthorID = 0
	DefaultBlogTitle    = "Default Blog Title"
	DefaultBlogContent  = "Default blog content."
)

// Blog.AuthorID is not checked against the users collection.
type Blog struct {
	ID          sdk.ObjectID `json:"_id" bson:"_id,omitempty"`
	AuthorID    float64      `json:"authorId" bson:"authorId"`
	Title       string       `json:"title" bson:"title"`
	Content     string       `json:"content" bson:"content"`
	CreatedDate time.Time    `json:"createdDate" bson:"createdDate"`
}

type BlogPatch struct {
	AuthorID    *Number    `json:"authorId,omitempty" yaml:"authorId"`
	Title       *string    `json:"title,omitempty" yaml:"title"`
	Content     *string    `json:"content,omitempty" yaml:"content"`
	CreatedDate *time.Time `json:"createdDate,omitempty" yaml:"createdDate"`
}

func (p BlogPatch) Resolve(now time.Time) Blog {
	return Blog{
		AuthorID:    numberOr(p.AuthorID, DefaultBlogAuthorID),
		Title:       valueOr(p.Title, DefaultBlogTitle),
		Content:     valueOr(p.Content, DefaultBlogContent),
		CreatedDate: timestamp(valueOr(p.CreatedDate, now)),
	}
}

// Changes never includes createdDate: it is fixed at insert.
func (p BlogPatch) Changes() map[string]any {
	changes := map[string]any{}
	setNumberIfPresent(changes, "authorId", p.AuthorID)
	setIfPresent(changes, "title", p.Title)
	setIfPresent(changes, "content", p.Content)
	return changes
}

var _ Patch[Blog] = BlogPatch{}
