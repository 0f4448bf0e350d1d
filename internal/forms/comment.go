package forms

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CommentForm holds the submitted fields for adding a comment.
type CommentForm struct {
	Text   string
	Errors map[string]string
}

// ParseCommentForm reads the comment fields from a form submission.
func ParseCommentForm(c *fiber.Ctx) *CommentForm {
	return &CommentForm{
		Text:   strings.TrimSpace(c.FormValue("text")),
		Errors: make(map[string]string),
	}
}

// Validate checks the parsed fields. Returns true when valid.
func (f *CommentForm) Validate() bool {
	if f.Text == "" {
		f.Errors["text"] = "This field is required."
	}
	return len(f.Errors) == 0
}
