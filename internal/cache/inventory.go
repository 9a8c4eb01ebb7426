package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	PostKeyPrefix      = "post:%d"
	PostsListPrefix    = "posts:list:%d:%d:%d"
	FeedKeyPrefix      = "feed:user:%d:%d:%d"
	BookKeyPrefix      = "book:%d"
	AuthorKeyPrefix    = "author:%d"
	LibraryKeyPrefix   = "library:%d"
	BooksListKeyConst  = "books:list"
	NotifCountPrefix   = "notifications:unread:%d"
)

const (
	UserTTL       = 5 * time.Minute
	PostTTL       = 30 * time.Minute
	ListTTL       = 1 * time.Minute
	FeedTTL       = 30 * time.Second
	BookTTL       = 30 * time.Minute
	LibraryTTL    = 10 * time.Minute
	NotifCountTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// PostsListKey keys the paginated posts list per viewer, since the list
// carries the viewer-specific liked flag.
func PostsListKey(viewerID uint, limit, offset int) string {
	return fmt.Sprintf(PostsListPrefix, viewerID, limit, offset)
}

func FeedKey(userID uint, limit, offset int) string {
	return fmt.Sprintf(FeedKeyPrefix, userID, limit, offset)
}

func BookKey(bookID uint) string {
	return fmt.Sprintf(BookKeyPrefix, bookID)
}

func AuthorKey(authorID uint) string {
	return fmt.Sprintf(AuthorKeyPrefix, authorID)
}

func LibraryKey(libraryID uint) string {
	return fmt.Sprintf(LibraryKeyPrefix, libraryID)
}

func UnreadCountKey(userID uint) string {
	return fmt.Sprintf(NotifCountPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateBook(ctx context.Context, bookID uint) {
	Invalidate(ctx, BookKey(bookID))
}

func InvalidateLibrary(ctx context.Context, libraryID uint) {
	Invalidate(ctx, LibraryKey(libraryID))
}

func InvalidateUnreadCount(ctx context.Context, userID uint) {
	Invalidate(ctx, UnreadCountKey(userID))
}

// InvalidatePattern best-effort deletes all keys matching the pattern
// using SCAN, so post and feed list entries can be dropped on writes.
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

func InvalidatePostsList(ctx context.Context) {
	InvalidatePattern(ctx, "posts:list:*")
}

func InvalidateFeeds(ctx context.Context) {
	InvalidatePattern(ctx, "feed:user:*")
}
