package main

import (
	"fmt"
	"log"

	"studyseat/internal/seats"
	"studyseat/internal/shared/config"
	"studyseat/internal/shared/database"
	"studyseat/internal/shops"
	"studyseat/internal/users"

	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting StudySeat Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{"reviews", "schedules", "orders", "seats", "shops", "users"}
	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return err
	}
	return s.seedShopsAndSeats()
}

func (s *Seeder) seedUsers() error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	seedUsers := []users.User{
		{Name: "Admin", Email: "admin@studyseat.local", Password: string(hash), Role: users.RoleAdmin},
		{Name: "Alice Chen", Email: "alice@example.com", Password: string(hash), Role: users.RoleUser},
		{Name: "Bob Park", Email: "bob@example.com", Password: string(hash), Role: users.RoleUser},
	}
	for i := range seedUsers {
		if err := s.db.PostgreSQL.Create(&seedUsers[i]).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", seedUsers[i].Email, err)
		}
	}
	fmt.Printf("   👤 %d users\n", len(seedUsers))
	return nil
}

func (s *Seeder) seedShopsAndSeats() error {
	shop := shops.Shop{
		Name:         "Quiet Corner Study Lounge",
		Address:      "12 Library Lane",
		Description:  "24 desks across window, standard and vip zones",
		OpenTime:     "08:00",
		CloseTime:    "22:00",
		PricePerHour: 10,
		Visible:      true,
	}
	if err := s.db.PostgreSQL.Create(&shop).Error; err != nil {
		return fmt.Errorf("failed to seed shop: %w", err)
	}

	zones := []struct {
		name     string
		seatType seats.SeatType
		count    int
	}{
		{"A", seats.SeatTypeWindow, 8},
		{"B", seats.SeatTypeStandard, 12},
		{"C", seats.SeatTypeVIP, 4},
	}

	total := 0
	for _, zone := range zones {
		for i := 1; i <= zone.count; i++ {
			seat := seats.Seat{
				ShopID:   shop.ID,
				Zone:     zone.name,
				Label:    fmt.Sprintf("%s%d", zone.name, i),
				Type:     zone.seatType,
				IsActive: true,
				Visible:  true,
			}
			if err := s.db.PostgreSQL.Create(&seat).Error; err != nil {
				return fmt.Errorf("failed to seed seat %s: %w", seat.Label, err)
			}
			total++
		}
	}

	fmt.Printf("   🏪 1 shop, %d seats\n", total)
	return nil
}
