package main

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"communew/internal/database"
	"communew/internal/domain"
)

// Seeds a local database with demo users, events and studios.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "communew.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	anna := domain.User{
		ID:           uuid.NewString(),
		Email:        "anna@example.com",
		PasswordHash: string(hash),
		Name:         "Anna",
		City:         "Berlin",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	mehmet := domain.User{
		ID:           uuid.NewString(),
		Email:        "mehmet@example.com",
		PasswordHash: string(hash),
		Name:         "Mehmet",
		City:         "Berlin",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	for _, u := range []domain.User{anna, mehmet} {
		if err := db.Create(&u).Error; err != nil {
			log.Fatal(err)
		}
	}

	studio := domain.Studio{
		ID:          uuid.NewString(),
		OwnerID:     anna.ID,
		Name:        "Kreuzberg Pottery Studio",
		Description: "Fully equipped ceramics workshop with two kilns.",
		Address:     "Oranienstraße 12",
		City:        "Berlin",
		HourlyRate:  25,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := db.Create(&studio).Error; err != nil {
		log.Fatal(err)
	}

	nextSaturday := time.Now().AddDate(0, 0, (13-int(time.Now().Weekday()))%7+1)
	event := domain.Event{
		ID:          uuid.NewString(),
		HostID:      mehmet.ID,
		Title:       "Beginner Wheel Throwing",
		Description: "Two hours on the wheel, clay included.",
		Category:    "crafts",
		City:        "Berlin",
		Venue:       "Kreuzberg Pottery Studio",
		StartTime:   nextSaturday.Truncate(time.Hour),
		EndTime:     nextSaturday.Truncate(time.Hour).Add(2 * time.Hour),
		Capacity:    8,
		Price:       35,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := db.Create(&event).Error; err != nil {
		log.Fatal(err)
	}

	log.Printf("seeded: users=%s,%s studio=%s event=%s", anna.Email, mehmet.Email, studio.Name, event.Title)
}
