// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"bookclub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rng: rng, nextID: 1000}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Role:     models.RoleMember,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateAuthor constructs and persists a sample `models.Author`.
func (f *Factory) CreateAuthor(overrides ...func(*models.Author)) (*models.Author, error) {
	author := &models.Author{
		Name: gofakeit.Name(),
	}

	for _, override := range overrides {
		override(author)
	}

	if f.opts.DryRun {
		f.nextID++
		author.ID = f.nextID
		log.Printf("[dry-run] CreateAuthor: %s", author.Name)
		return author, nil
	}

	if err := f.db.Create(author).Error; err != nil {
		return nil, err
	}
	return author, nil
}

// BuildBook constructs a book for the given author without persisting it.
// Titles carry a short random suffix so the (title, author) unique index
// never trips during bulk seeding.
func (f *Factory) BuildBook(author *models.Author, overrides ...func(*models.Book)) *models.Book {
	currentYear := time.Now().Year()
	book := &models.Book{
		Title:           fmt.Sprintf("%s %s", gofakeit.BookTitle(), gofakeit.LetterN(4)),
		PublicationYear: currentYear - f.rng.Intn(80),
		AuthorID:        author.ID,
	}

	for _, override := range overrides {
		override(book)
	}
	return book
}

// CreateBook constructs and persists a sample `models.Book` for the author.
func (f *Factory) CreateBook(author *models.Author, overrides ...func(*models.Book)) (*models.Book, error) {
	book := f.BuildBook(author, overrides...)

	if f.opts.DryRun {
		f.nextID++
		book.ID = f.nextID
		log.Printf("[dry-run] CreateBook: %q by author %d", book.Title, book.AuthorID)
		return book, nil
	}

	if err := f.db.Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

// CreateLibrary constructs and persists a sample `models.Library`.
func (f *Factory) CreateLibrary(overrides ...func(*models.Library)) (*models.Library, error) {
	library := &models.Library{
		Name: fmt.Sprintf("%s %s Library", gofakeit.City(), gofakeit.LetterN(3)),
	}

	for _, override := range overrides {
		override(library)
	}

	if f.opts.DryRun {
		f.nextID++
		library.ID = f.nextID
		log.Printf("[dry-run] CreateLibrary: %s", library.Name)
		return library, nil
	}

	if err := f.db.Create(library).Error; err != nil {
		return nil, err
	}
	return library, nil
}

// AssignLibrarian persists a head librarian for the given library.
func (f *Factory) AssignLibrarian(library *models.Library, overrides ...func(*models.Librarian)) (*models.Librarian, error) {
	librarian := &models.Librarian{
		Name:      gofakeit.Name(),
		LibraryID: library.ID,
	}

	for _, override := range overrides {
		override(librarian)
	}

	if f.opts.DryRun {
		f.nextID++
		librarian.ID = f.nextID
		return librarian, nil
	}

	if err := f.db.Create(librarian).Error; err != nil {
		return nil, err
	}
	return librarian, nil
}

// AttachBook places a book on a library's shelf.
func (f *Factory) AttachBook(library *models.Library, book *models.Book) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Exec(
		"INSERT INTO library_books (library_id, book_id) VALUES (?, ?)",
		library.ID, book.ID,
	).Error
}

// CreateFollow persists a follow edge between two users.
func (f *Factory) CreateFollow(follower, followed *models.User) error {
	if f.opts.DryRun {
		return nil
	}
	edge := &models.Follow{
		FollowerID: follower.ID,
		FollowedID: followed.ID,
	}
	return f.db.Create(edge).Error
}

// BuildPost constructs a post struct populated like CreatePost but does
// not persist it. Useful for batching.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Title:   gofakeit.Sentence(5),
		Content: gofakeit.Paragraph(1, 3, 5, "\n"),
		UserID:  user.ID,
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a sample `models.Post` for the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, overrides...)

	if f.opts.DryRun {
		f.nextID++
		post.ID = f.nextID
		log.Printf("[dry-run] CreatePost: user=%d title=%q", post.UserID, post.Title)
		return post, nil
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePostsBatch persists multiple posts in a single DB call when possible.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if f.opts.DryRun {
		for _, p := range posts {
			f.nextID++
			p.ID = f.nextID
		}
		log.Printf("[dry-run] CreatePostsBatch: %d posts (no DB write)", len(posts))
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided post authored by the provided user.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(8),
		UserID:  user.ID,
		PostID:  post.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		return comment, nil
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from `user` on `post`.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	if f.opts.DryRun {
		return nil
	}
	like := &models.Like{
		UserID: user.ID,
		PostID: post.ID,
	}
	return f.db.Create(like).Error
}

// CreateNotification persists a notification for the recipient about an
// action the actor took on the target.
func (f *Factory) CreateNotification(recipient, actor *models.User, verb string, targetType models.NotificationTarget, targetID uint) error {
	if f.opts.DryRun {
		return nil
	}
	n := &models.Notification{
		RecipientID: recipient.ID,
		ActorID:     actor.ID,
		Verb:        verb,
		TargetType:  targetType,
		TargetID:    targetID,
	}
	return f.db.Create(n).Error
}
