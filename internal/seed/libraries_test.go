package seed

import (
	"testing"

	"bookclub/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestLibraries_Idempotent(t *testing.T) {
	t.Parallel()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(&models.Library{}, &models.Librarian{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	err = Libraries(db)
	if err != nil {
		t.Fatalf("first seed: %v", err)
	}
	err = Libraries(db)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var libraryCount int64
	err = db.Model(&models.Library{}).Count(&libraryCount).Error
	if err != nil {
		t.Fatalf("count libraries: %v", err)
	}
	if libraryCount != int64(len(BuiltInLibraries)) {
		t.Fatalf("expected %d libraries, got %d", len(BuiltInLibraries), libraryCount)
	}

	var librarianCount int64
	err = db.Model(&models.Librarian{}).Count(&librarianCount).Error
	if err != nil {
		t.Fatalf("count librarians: %v", err)
	}
	if librarianCount != int64(len(BuiltInLibraries)) {
		t.Fatalf("expected %d librarians, got %d", len(BuiltInLibraries), librarianCount)
	}

	for _, item := range BuiltInLibraries {
		var lib models.Library
		err = db.Where("name = ?", item.Name).First(&lib).Error
		if err != nil {
			t.Fatalf("missing library %s: %v", item.Name, err)
		}

		var head models.Librarian
		err = db.Where("library_id = ?", lib.ID).First(&head).Error
		if err != nil {
			t.Fatalf("missing librarian for %s: %v", item.Name, err)
		}
		if head.Name != item.Librarian {
			t.Fatalf("expected librarian %s for %s, got %s", item.Librarian, item.Name, head.Name)
		}
	}

	rows, err := db.Raw(`
		SELECT library_id
		FROM librarians
		GROUP BY library_id
		HAVING COUNT(*) > 1
	`).Rows()
	if err != nil {
		t.Fatalf("duplicate librarian check query failed: %v", err)
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		t.Fatal("found duplicate librarians for a library")
	}
}
