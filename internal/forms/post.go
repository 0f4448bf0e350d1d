// Package forms validates user-submitted form data before any mutation
// happens. A form collects field errors instead of failing fast so the
// view can redisplay every problem at once.
package forms

import (
	"image"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	// Registered decoders determine which upload formats count as images.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// PostForm holds the submitted fields for creating or editing a post.
type PostForm struct {
	Text    string
	GroupID *uint
	Image   *multipart.FileHeader
	Errors  map[string]string
}

// ParsePostForm reads the post fields from a form submission.
func ParsePostForm(c *fiber.Ctx) *PostForm {
	f := &PostForm{
		Text:   strings.TrimSpace(c.FormValue("text")),
		Errors: make(map[string]string),
	}

	if raw := c.FormValue("group"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			f.Errors["group"] = "Select a valid group."
		} else {
			gid := uint(id)
			f.GroupID = &gid
		}
	}

	if fh, err := c.FormFile("image"); err == nil && fh != nil && fh.Size > 0 {
		f.Image = fh
	}

	return f
}

// Validate checks the parsed fields and records field errors.
// Returns true when the form is valid.
func (f *PostForm) Validate() bool {
	if f.Text == "" {
		f.Errors["text"] = "This field is required."
	}
	if f.Image != nil && !IsImage(f.Image) {
		f.Errors["image"] = "Upload a valid image."
	}
	return len(f.Errors) == 0
}

// IsImage reports whether the uploaded file decodes as a known image
// format (jpeg, png, gif or webp). Content is sniffed, not the filename.
func IsImage(fh *multipart.FileHeader) bool {
	file, err := fh.Open()
	if err != nil {
		return false
	}
	defer file.Close()

	_, _, err = image.DecodeConfig(file)
	return err == nil
}
