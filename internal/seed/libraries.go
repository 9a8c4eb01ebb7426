package seed

import (
	"errors"
	"fmt"

	"bookclub/internal/models"

	"gorm.io/gorm"
)

// BuiltInLibrary is a permanent system library.
type BuiltInLibrary struct {
	Name      string
	Librarian string
}

// BuiltInLibraries defines the permanent system libraries, each with a
// default head librarian.
var BuiltInLibraries = []BuiltInLibrary{
	{Name: "Central Library", Librarian: "Margaret Ferro"},
	{Name: "Riverside Branch", Librarian: "Tomas Albrecht"},
	{Name: "Old Town Reading Room", Librarian: "Iris Delacroix"},
	{Name: "Harbor Annex", Librarian: "Samuel Okafor"},
	{Name: "University Stacks", Librarian: "Nadia Rahim"},
}

// Libraries seeds the permanent built-in libraries and their head
// librarians. Running it twice is a no-op.
func Libraries(db *gorm.DB) error {
	for _, item := range BuiltInLibraries {
		err := db.Transaction(func(tx *gorm.DB) error {
			var library models.Library
			if err := tx.Where(models.Library{Name: item.Name}).
				FirstOrCreate(&library).Error; err != nil {
				return err
			}

			var existing models.Librarian
			queryErr := tx.Where("library_id = ?", library.ID).First(&existing).Error
			switch {
			case queryErr == nil:
				return nil
			case !errors.Is(queryErr, gorm.ErrRecordNotFound):
				return queryErr
			}

			librarian := models.Librarian{
				Name:      item.Librarian,
				LibraryID: library.ID,
			}
			return tx.Create(&librarian).Error
		})
		if err != nil {
			return fmt.Errorf("seed built-in library %s: %w", item.Name, err)
		}
	}

	return nil
}
