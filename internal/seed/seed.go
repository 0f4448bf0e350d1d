// Package seed fills the database with fake development data.
package seed

import (
	"context"
	"fmt"
	"log"

	"yatube/internal/models"
	"yatube/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data the seeder creates.
type Options struct {
	Users    int
	Groups   int
	Posts    int
	Comments int
	Follows  int
}

// DefaultOptions returns a reasonable development data volume.
func DefaultOptions() Options {
	return Options{Users: 10, Groups: 4, Posts: 60, Comments: 120, Follows: 20}
}

// Run populates the database. All seeded users share the password
// "password123" for convenient local logins.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    gofakeit.Email(),
			Password: string(hashed),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	groups := make([]*models.Group, 0, opts.Groups)
	for i := 0; i < opts.Groups; i++ {
		group := &models.Group{
			Title:       gofakeit.BookTitle(),
			Slug:        fmt.Sprintf("%s-%d", gofakeit.Word(), i),
			Description: gofakeit.Sentence(12),
		}
		if err := groupRepo.Create(ctx, group); err != nil {
			return fmt.Errorf("seed group: %w", err)
		}
		groups = append(groups, group)
	}

	for i := 0; i < opts.Posts; i++ {
		post := &models.Post{
			Text:     gofakeit.Paragraph(1, 3, 12, " "),
			AuthorID: users[gofakeit.Number(0, len(users)-1)].ID,
		}
		if gofakeit.Bool() && len(groups) > 0 {
			gid := groups[gofakeit.Number(0, len(groups)-1)].ID
			post.GroupID = &gid
		}
		if err := postRepo.Create(ctx, post); err != nil {
			return fmt.Errorf("seed post: %w", err)
		}

		if i < opts.Comments {
			comment := &models.Comment{
				Text:     gofakeit.Sentence(8),
				AuthorID: users[gofakeit.Number(0, len(users)-1)].ID,
				PostID:   post.ID,
			}
			if err := commentRepo.Create(ctx, comment); err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
		}
	}

	created := 0
	for created < opts.Follows {
		userID := users[gofakeit.Number(0, len(users)-1)].ID
		authorID := users[gofakeit.Number(0, len(users)-1)].ID
		if userID == authorID {
			continue
		}
		if _, _, err := followRepo.GetOrCreate(ctx, userID, authorID); err != nil {
			return fmt.Errorf("seed follow: %w", err)
		}
		created++
	}

	log.Printf("Seeded %d users, %d groups, %d posts", len(users), len(groups), opts.Posts)
	return nil
}
