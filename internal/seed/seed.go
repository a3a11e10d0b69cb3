// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var categories = []string{
	"Technology", "Travel", "Food", "Music", "Books",
	"Programming", "Science", "Art", "Fitness", "Gaming",
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := createEngagement(db, users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	log.Println("Database seeding completed successfully")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, posts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, count int) ([]*models.User, error) {
	// All seed users share one password so bcrypt runs once.
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		users = append(users, &models.User{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password: string(hashed),
			Bio:      gofakeit.Sentence(10),
		})
	}

	if err := db.CreateInBatches(&users, 100).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []*models.User, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		post := &models.Post{
			Title:    gofakeit.Sentence(5),
			Content:  gofakeit.Paragraph(2, 4, 8, "\n\n"),
			Image:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
			Category: categories[r.Intn(len(categories))],
			AuthorID: author.ID,
		}
		// realistic created_at spread over the last 90 days
		daysBack := r.Intn(90)
		hoursBack := r.Intn(24)
		post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
		posts = append(posts, post)
	}

	if err := db.CreateInBatches(&posts, 100).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// createEngagement adds likes and comments so seeded feeds look lived-in.
func createEngagement(db *gorm.DB, users []*models.User, posts []*models.Post) error {
	if len(users) == 0 || len(posts) == 0 {
		return nil
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	likes := make([]*models.Like, 0)
	comments := make([]*models.Comment, 0)
	for _, post := range posts {
		// a random subset of users likes each post
		for _, user := range users {
			if r.Intn(100) < 15 {
				likes = append(likes, &models.Like{UserID: user.ID, PostID: post.ID})
			}
		}

		numComments := r.Intn(5)
		for i := 0; i < numComments; i++ {
			commenter := users[r.Intn(len(users))]
			comments = append(comments, &models.Comment{
				Text:     gofakeit.Sentence(gofakeit.Number(4, 15)),
				AuthorID: commenter.ID,
				PostID:   post.ID,
			})
		}
	}

	if len(likes) > 0 {
		if err := db.CreateInBatches(&likes, 500).Error; err != nil {
			return err
		}
	}
	if len(comments) > 0 {
		if err := db.CreateInBatches(&comments, 500).Error; err != nil {
			return err
		}
	}

	log.Printf("%d likes and %d comments created", len(likes), len(comments))
	return nil
}
