// Command main runs the database seeder for Bookclub.
package main

import (
	"flag"
	"log"

	"bookclub/internal/config"
	"bookclub/internal/database"
	"bookclub/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	numAuthors := flag.Int("authors", 20, "Number of authors to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	maxDays := flag.Int("max-days", 90, "Spread post timestamps over this many days")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext passwords for faster seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d authors, %d posts, clean=%v\n",
		*numUsers, *numAuthors, *numPosts, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumAuthors:  *numAuthors,
		NumPosts:    *numPosts,
		MaxDays:     *maxDays,
		ShouldClean: *shouldClean,
		SkipBcrypt:  *skipBcrypt,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
