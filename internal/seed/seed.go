package seed

import (
	"fmt"
	"log"

	"bookclub/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumAuthors  int
	NumPosts    int
	BatchSize   int
	MaxDays     int
	ShouldClean bool
	SkipBcrypt  bool
	DryRun      bool
}

// Seeder populates the database with demo data using a Factory.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	return &Seeder{db: db, opts: opts, factory: NewFactory(db, opts)}
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users, %d authors and %d posts...",
		opts.NumUsers, opts.NumAuthors, opts.NumPosts)

	s := NewSeeder(db, opts)

	// Clear existing data to avoid conflicts if requested
	if opts.ShouldClean {
		if err := s.clearData(); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	if err := Libraries(db); err != nil {
		return fmt.Errorf("failed to seed built-in libraries: %w", err)
	}

	authors, books, err := s.SeedCatalog(opts.NumAuthors)
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	log.Printf("✓ %d authors with %d books created", len(authors), len(books))

	if err := s.ShelveBooks(books); err != nil {
		return fmt.Errorf("failed to shelve books: %w", err)
	}

	users, err := s.SeedSocialMesh(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to seed social mesh: %w", err)
	}
	log.Printf("✓ %d users with follow graph created", len(users))

	posts, err := s.SeedActivity(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to seed activity: %w", err)
	}
	log.Printf("✓ %d posts with comments and likes created", len(posts))

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func (s *Seeder) clearData() error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE notifications, likes, comments, posts, follows,
		librarians, library_books, libraries, books, authors, users
		RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// SeedCatalog creates authors, each with between one and four books.
func (s *Seeder) SeedCatalog(numAuthors int) ([]*models.Author, []*models.Book, error) {
	authors := make([]*models.Author, 0, numAuthors)
	books := make([]*models.Book, 0, numAuthors*2)

	for i := 0; i < numAuthors; i++ {
		author, err := s.factory.CreateAuthor()
		if err != nil {
			return nil, nil, err
		}
		authors = append(authors, author)

		numBooks := s.factory.rng.Intn(4) + 1
		for j := 0; j < numBooks; j++ {
			book, err := s.factory.CreateBook(author)
			if err != nil {
				return nil, nil, err
			}
			books = append(books, book)
		}
	}

	return authors, books, nil
}

// ShelveBooks distributes books across the built-in libraries, each book
// landing in one or two libraries.
func (s *Seeder) ShelveBooks(books []*models.Book) error {
	if s.opts.DryRun {
		return nil
	}

	var libraries []models.Library
	if err := s.db.Find(&libraries).Error; err != nil {
		return err
	}
	if len(libraries) == 0 {
		return nil
	}

	for _, book := range books {
		copies := s.factory.rng.Intn(2) + 1
		start := s.factory.rng.Intn(len(libraries))
		for c := 0; c < copies && c < len(libraries); c++ {
			lib := libraries[(start+c)%len(libraries)]
			if err := s.factory.AttachBook(&lib, book); err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedSocialMesh creates users and a follow graph between them. Each user
// follows roughly a third of the others; no self-follows, no duplicates.
func (s *Seeder) SeedSocialMesh(numUsers int) ([]*models.User, error) {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	if s.opts.DryRun {
		return users, nil
	}

	for _, follower := range users {
		for _, followed := range users {
			if follower.ID == followed.ID {
				continue
			}
			if s.factory.rng.Intn(3) != 0 {
				continue
			}
			if err := s.factory.CreateFollow(follower, followed); err != nil {
				return nil, err
			}
		}
	}

	return users, nil
}

// SeedActivity creates posts for the given users, then sprinkles comments,
// likes and the notifications those actions would have produced.
func (s *Seeder) SeedActivity(users []*models.User, numPosts int) ([]*models.Post, error) {
	if len(users) == 0 || numPosts == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, numPosts)
	batch := make([]*models.Post, 0, s.opts.BatchSize)
	for i := 0; i < numPosts; i++ {
		user := users[s.factory.rng.Intn(len(users))]
		batch = append(batch, s.factory.BuildPost(user))

		if len(batch) >= s.opts.BatchSize || i == numPosts-1 {
			if err := s.factory.CreatePostsBatch(batch); err != nil {
				return nil, err
			}
			posts = append(posts, batch...)
			batch = batch[:0]
		}
	}

	if s.opts.DryRun {
		return posts, nil
	}

	for _, post := range posts {
		author := userByID(users, post.UserID)

		numComments := s.factory.rng.Intn(4)
		for c := 0; c < numComments; c++ {
			commenter := users[s.factory.rng.Intn(len(users))]
			comment, err := s.factory.CreateComment(commenter, post)
			if err != nil {
				return nil, err
			}
			if author != nil && commenter.ID != author.ID {
				if err := s.factory.CreateNotification(author, commenter,
					"commented on", models.TargetComment, comment.ID); err != nil {
					return nil, err
				}
			}
		}

		numLikes := s.factory.rng.Intn(6)
		start := s.factory.rng.Intn(len(users))
		for l := 0; l < numLikes && l < len(users); l++ {
			liker := users[(start+l)%len(users)]
			if liker.ID == post.UserID {
				continue
			}
			if err := s.factory.CreateLike(liker, post); err != nil {
				return nil, err
			}
			if author != nil {
				if err := s.factory.CreateNotification(author, liker,
					"liked", models.TargetPost, post.ID); err != nil {
					return nil, err
				}
			}
		}
	}

	return posts, nil
}

func userByID(users []*models.User, id uint) *models.User {
	for _, u := range users {
		if u.ID == id {
			return u
		}
	}
	return nil
}
