package main

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"apartmentbooking/internal/config"
	"apartmentbooking/internal/database"
	"apartmentbooking/internal/domain"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	db, err := database.Connect(cfg.DatabaseURL, database.Options{})
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (children first)
	log.Println("Cleaning old data...")
	for _, table := range []string{"reviews", "bookings", "apartments", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("cleanup %s failed: %v", table, err)
		}
	}

	// ================== USERS ==================
	log.Println("Creating users...")

	mkUser := func(first, last, phone, password string, role domain.UserRole) domain.User {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("bcrypt:", err)
		}
		u := domain.User{
			FirstName:    first,
			LastName:     last,
			Phone:        phone,
			BirthDate:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			PasswordHash: string(hash),
			Role:         role,
			Status:       domain.ApprovalApproved,
		}
		if err := db.Create(&u).Error; err != nil {
			log.Fatalf("create user %s failed: %v", phone, err)
		}
		log.Printf("%s created: %s / %s", role, phone, password)
		return u
	}

	mkUser("Admin", "Root", "+77000000000", "admin12345", domain.RoleAdmin)

	owners := []domain.User{
		mkUser("Aigerim", "Sadykova", "+77011112233", "owner12345", domain.RoleOwner),
		mkUser("Nurlan", "Ospanov", "+77022223344", "owner12345", domain.RoleOwner),
	}
	for i := 1; i <= 3; i++ {
		mkUser(fmt.Sprintf("Tenant%d", i), "Demo", fmt.Sprintf("+7705000000%d", i), "tenant12345", domain.RoleTenant)
	}

	// ================== APARTMENTS ==================
	log.Println("Creating apartments...")

	samples := []struct {
		province, city, address string
		bedrooms, maxGuests     int
		price                   float64
		wifi, parking           bool
	}{
		{"Almaty", "Almaty", "Abay Ave 10, apt 5", 1, 2, 45, true, false},
		{"Almaty", "Almaty", "Dostyk Ave 120, apt 31", 2, 4, 70, true, true},
		{"Almaty Region", "Talgar", "Lesnaya 3", 3, 6, 90, false, true},
		{"Astana", "Astana", "Kabanbay Batyr 15, apt 88", 2, 3, 60, true, true},
		{"Astana", "Astana", "Mangilik El 40, apt 12", 1, 2, 50, true, false},
	}
	for i, s := range samples {
		apt := domain.Apartment{
			OwnerID:       owners[i%len(owners)].ID,
			Province:      s.province,
			City:          s.city,
			Address:       s.address,
			Bedrooms:      s.bedrooms,
			Bathrooms:     1,
			MaxGuests:     s.maxGuests,
			PricePerNight: s.price,
			HasWifi:       s.wifi,
			HasParking:    s.parking,
			IsAvailable:   true,
		}
		if err := db.Create(&apt).Error; err != nil {
			log.Fatalf("create apartment failed: %v", err)
		}
	}

	log.Printf("Seed completed: %d users, %d apartments", 1+len(owners)+3, len(samples))
}
