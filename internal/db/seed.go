package db

import (
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedTestData resets the database and populates it with demo profiles and
// connection requests.
//
// Behavior:
//  1. Clears `connection_requests` and `users`.
//  2. Creates 20 users across genders and interests, all sharing the password
//     "Password@1" (hashed once and reused so seeding stays fast).
//  3. Spreads ~40 requests across all four statuses so feeds, the requests
//     inbox and the connections list all have data out of the box.
//
// Compatible with both MySQL and SQLite.
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(42))

	if err := db.Exec("DELETE FROM connection_requests").Error; err != nil {
		return fmt.Errorf("failed to clear connection_requests: %w", err)
	}
	if err := db.Exec("DELETE FROM users").Error; err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	switch db.Dialector.Name() {
	case "mysql":
		db.Exec("ALTER TABLE connection_requests AUTO_INCREMENT = 1")
		db.Exec("ALTER TABLE users AUTO_INCREMENT = 1")
	case "sqlite":
		db.Exec("DELETE FROM sqlite_sequence WHERE name = 'connection_requests'")
		db.Exec("DELETE FROM sqlite_sequence WHERE name = 'users'")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Password@1"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	firstNames := []string{
		"Aarav", "Bianca", "Carlos", "Divya", "Elena", "Farhan", "Grace", "Hiro",
		"Isla", "Jonas", "Kavya", "Liam", "Mara", "Nikhil", "Olga", "Pedro",
		"Qiara", "Rohan", "Sofia", "Tariq",
	}
	skills := []string{"Go", "React", "SQL", "Docker", "Kubernetes", "Python", "Rust", "GraphQL"}

	users := make([]User, 0, len(firstNames))
	for i, name := range firstNames {
		gender := "Male"
		interest := "Female"
		if i%2 == 1 {
			gender = "Female"
			interest = "Male"
		}
		if i%7 == 0 {
			interest = "All"
		}
		age := 21 + r.Intn(20)

		users = append(users, User{
			FirstName:    name,
			LastName:     "Demo",
			Email:        fmt.Sprintf("%s%d@example.com", name, i+1),
			PasswordHash: string(hash),
			Age:          &age,
			Gender:       gender,
			InterestedIn: interest,
			About:        "Hey there! I am using this app.",
			PhotoURL:     fmt.Sprintf("https://i.pravatar.cc/300?img=%d", i+1),
			Skills:       []string{skills[r.Intn(len(skills))], skills[r.Intn(len(skills))]},
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	// Requests across all statuses. The pair pre-check mirrors the engine: at
	// most one record per unordered pair, ever.
	statuses := []string{StatusInterested, StatusInterested, StatusIgnored, StatusAccepted, StatusRejected}
	seeded := map[[2]uint64]bool{}
	created := 0
	for attempts := 0; created < 40 && attempts < 400; attempts++ {
		from := users[r.Intn(len(users))].ID
		to := users[r.Intn(len(users))].ID
		if from == to {
			continue
		}
		key := [2]uint64{min64(from, to), max64(from, to)}
		if seeded[key] {
			continue
		}
		seeded[key] = true

		req := ConnectionRequest{
			FromUserID: from,
			ToUserID:   to,
			Status:     statuses[r.Intn(len(statuses))],
			CreatedAt:  time.Now().Add(-time.Duration(r.Intn(72)) * time.Hour),
		}
		if err := db.Create(&req).Error; err != nil {
			return fmt.Errorf("failed to seed request: %w", err)
		}
		created++
	}

	return nil
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
