package server

import (
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"yatube/internal/cache"
	"yatube/internal/feed"
	"yatube/internal/forms"
	"yatube/internal/models"
	"yatube/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// feedPage is the cached payload for a feed page.
type feedPage struct {
	Posts []models.Post `json:"posts"`
	Page  feed.Page     `json:"page"`
}

// Index handles GET / — the global feed. Pages are cached for a short
// time; a new post may lag behind in the cached index until expiry.
func (s *Server) Index(c *fiber.Ctx) error {
	ctx := c.Context()
	pageParam := c.Query("page")

	cacheKey := "page:index:" + pageParam
	if pageParam == "" {
		cacheKey = "page:index:1"
	}

	var data feedPage
	err := cache.CacheAside(ctx, cacheKey, &data, indexCacheTTL, func() error {
		count, err := s.postRepo.Count(ctx)
		if err != nil {
			return err
		}
		page := feed.Paginate(pageParam, count, feed.PerPage)
		posts, err := s.postRepo.List(ctx, page.PerPage, page.Offset())
		if err != nil {
			return err
		}
		data = feedPage{Posts: posts, Page: page}
		return nil
	})
	if err != nil {
		return err
	}

	return c.Render("index", fiber.Map{
		"User":  currentUsername(c),
		"Posts": data.Posts,
		"Page":  data.Page,
	})
}

// GroupPosts handles GET /group/<slug>/ — the group feed.
func (s *Server) GroupPosts(c *fiber.Ctx) error {
	ctx := c.Context()

	group, err := s.groupRepo.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return err
	}

	count, err := s.postRepo.CountByGroup(ctx, group.ID)
	if err != nil {
		return err
	}
	page := feed.Paginate(c.Query("page"), count, feed.PerPage)
	posts, err := s.postRepo.ListByGroup(ctx, group.ID, page.PerPage, page.Offset())
	if err != nil {
		return err
	}

	return c.Render("group", fiber.Map{
		"User":  currentUsername(c),
		"Group": group,
		"Posts": posts,
		"Page":  page,
	})
}

// NewPostPage handles GET /new/ — the post creation form.
func (s *Server) NewPostPage(c *fiber.Ctx) error {
	groups, err := s.groupRepo.List(c.Context())
	if err != nil {
		return err
	}
	return c.Render("post_form", fiber.Map{
		"User":          currentUsername(c),
		"Form":          &forms.PostForm{Errors: map[string]string{}},
		"Groups":        groups,
		"SelectedGroup": uint(0),
		"Edit":          false,
	})
}

// NewPost handles POST /new/ — creates a post owned by the current
// actor and redirects to the global feed. On validation failure the
// form is redisplayed and nothing is persisted.
func (s *Server) NewPost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	form := forms.ParsePostForm(c)
	if form.Validate() && form.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *form.GroupID); err != nil {
			form.Errors["group"] = "Select a valid group."
		}
	}

	if len(form.Errors) > 0 {
		groups, err := s.groupRepo.List(ctx)
		if err != nil {
			return err
		}
		selected := uint(0)
		if form.GroupID != nil {
			selected = *form.GroupID
		}
		return c.Render("post_form", fiber.Map{
			"User":          currentUsername(c),
			"Form":          form,
			"Groups":        groups,
			"SelectedGroup": selected,
			"Edit":          false,
		})
	}

	post := &models.Post{
		Text:     form.Text,
		AuthorID: userID,
		GroupID:  form.GroupID,
	}

	if form.Image != nil {
		imagePath, err := s.saveImage(c, form.Image)
		if err != nil {
			return models.NewInternalError(err)
		}
		post.Image = imagePath
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return err
	}
	observability.PostsCreated.Inc()

	return c.Redirect("/", fiber.StatusFound)
}

// PostView handles GET /<username>/<post_id>/ — the single post page
// with its comments and an empty comment form.
func (s *Server) PostView(c *fiber.Ctx) error {
	ctx := c.Context()
	username := c.Params("username")

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError("User", username)
	}

	postID, err := c.ParamsInt("postID")
	if err != nil {
		return models.NewNotFoundError("Post", c.Params("postID"))
	}

	post, err := s.postRepo.GetByID(ctx, uint(postID))
	if err != nil {
		return err
	}

	overall, err := s.postRepo.CountByAuthor(ctx, user.ID)
	if err != nil {
		return err
	}

	comments, err := s.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return err
	}

	return c.Render("post", fiber.Map{
		"User":     currentUsername(c),
		"Author":   user,
		"Post":     post,
		"Overall":  overall,
		"Comments": comments,
		"IsAuthor": currentUsername(c) == post.Author.Username,
	})
}

// PostEditPage handles GET /<username>/<post_id>/edit/ — prefills the
// form with the post's current values. Non-authors are bounced to the
// post view instead of getting an error.
func (s *Server) PostEditPage(c *fiber.Ctx) error {
	ctx := c.Context()

	post, redirectURL, err := s.postForEdit(c)
	if err != nil {
		return err
	}
	if redirectURL != "" {
		return c.Redirect(redirectURL, fiber.StatusFound)
	}

	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return err
	}

	form := &forms.PostForm{
		Text:    post.Text,
		GroupID: post.GroupID,
		Errors:  map[string]string{},
	}
	selected := uint(0)
	if post.GroupID != nil {
		selected = *post.GroupID
	}

	return c.Render("post_form", fiber.Map{
		"User":          currentUsername(c),
		"Form":          form,
		"Groups":        groups,
		"SelectedGroup": selected,
		"Edit":          true,
	})
}

// PostEdit handles POST /<username>/<post_id>/edit/ — overwrites text,
// group and image in place, then redirects to the post view.
func (s *Server) PostEdit(c *fiber.Ctx) error {
	ctx := c.Context()

	post, redirectURL, err := s.postForEdit(c)
	if err != nil {
		return err
	}
	if redirectURL != "" {
		return c.Redirect(redirectURL, fiber.StatusFound)
	}

	form := forms.ParsePostForm(c)

	// A non-image upload on edit is treated as a not-found failure
	// rather than a field error.
	if form.Image != nil && !forms.IsImage(form.Image) {
		return models.NewNotFoundError("Image", form.Image.Filename)
	}

	if !form.Validate() {
		groups, gerr := s.groupRepo.List(ctx)
		if gerr != nil {
			return gerr
		}
		selected := uint(0)
		if form.GroupID != nil {
			selected = *form.GroupID
		}
		return c.Render("post_form", fiber.Map{
			"User":          currentUsername(c),
			"Form":          form,
			"Groups":        groups,
			"SelectedGroup": selected,
			"Edit":          true,
		})
	}

	post.Text = form.Text
	post.GroupID = form.GroupID
	if form.Image != nil {
		imagePath, err := s.saveImage(c, form.Image)
		if err != nil {
			return models.NewInternalError(err)
		}
		post.Image = imagePath
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return err
	}

	return c.Redirect("/"+post.Author.Username+"/"+c.Params("postID")+"/", fiber.StatusFound)
}

// postForEdit resolves the edit target through the composite
// (author username, post id) lookup. A mismatch is a 404. When the
// requester is not the author it returns the post view URL to redirect
// to instead of a post.
func (s *Server) postForEdit(c *fiber.Ctx) (*models.Post, string, error) {
	ctx := c.Context()
	username := c.Params("username")

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", models.NewNotFoundError("User", username)
	}

	postID, err := c.ParamsInt("postID")
	if err != nil {
		return nil, "", models.NewNotFoundError("Post", c.Params("postID"))
	}

	post, err := s.postRepo.GetByAuthorAndID(ctx, user.ID, uint(postID))
	if err != nil {
		return nil, "", err
	}

	if userID, _ := c.Locals("userID").(uint); userID != post.AuthorID {
		return nil, "/" + username + "/" + c.Params("postID") + "/", nil
	}

	return post, "", nil
}

// saveImage stores an uploaded image under the media root with a
// generated name and returns the media-relative path.
func (s *Server) saveImage(c *fiber.Ctx, fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := uuid.NewString() + ext

	dir := filepath.Join(s.config.MediaRoot, "posts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := c.SaveFile(fh, filepath.Join(dir, name)); err != nil {
		return "", err
	}
	return path.Join("posts", name), nil
}
