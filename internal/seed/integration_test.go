//go:build integration

package seed

import (
	"net/url"
	"os"
	"strings"
	"testing"

	"bookclub/internal/config"
	"bookclub/internal/database"
	"bookclub/internal/models"
)

func parseDatabaseURLToConfig(dsn string) (*config.Config, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, err
	}
	password := ""
	if u.User != nil {
		password, _ = u.User.Password()
	}
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	dbname := strings.TrimPrefix(u.Path, "/")
	cfg := &config.Config{
		DBHost:       host,
		DBPort:       port,
		DBUser:       u.User.Username(),
		DBPassword:   password,
		DBName:       dbname,
		DBSSLMode:    "disable",
		Env:          "test",
		DBSchemaMode: "auto",

		DBConnMaxLifetimeMinutes: 30,
	}
	return cfg, nil
}

func TestIntegration_SeedFullRun(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integration seed test")
	}
	cfg, err := parseDatabaseURLToConfig(dsn)
	if err != nil {
		t.Fatalf("failed parse dsn: %v", err)
	}

	// Connect applies the schema for us.
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("db connect failed: %v", err)
	}

	err = Seed(db, Options{
		NumUsers:    10,
		NumAuthors:  5,
		NumPosts:    30,
		BatchSize:   50,
		MaxDays:     30,
		ShouldClean: true,
		SkipBcrypt:  true,
	})
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	var postCount int64
	if err := db.Model(&models.Post{}).Count(&postCount).Error; err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if postCount == 0 {
		t.Fatal("expected seeded posts, got 0")
	}

	var bookCount int64
	if err := db.Model(&models.Book{}).Count(&bookCount).Error; err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if bookCount == 0 {
		t.Fatal("expected seeded books, got 0")
	}
}
