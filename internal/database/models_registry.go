package database

import "bookclub/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
		&models.Author{},
		&models.Book{},
		&models.Library{},
		&models.Librarian{},
	}
}
