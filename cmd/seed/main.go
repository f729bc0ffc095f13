package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sibiria/internal/config"
	"sibiria/internal/database"
	"sibiria/internal/domain"
	"sibiria/internal/pkg/decimal"
	"sibiria/internal/repository"
)

// Seeds the reference data the booking flow expects: room types, a
// starter room inventory, the service catalog and the admin account.
// Safe to run repeatedly; existing data is left alone.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db connect failed: ", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("migrate failed: ", err)
	}

	ctx := context.Background()

	roomTypeRepo := repository.NewRoomTypeRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	userRepo := repository.NewUserRepository(db)

	types, err := roomTypeRepo.GetAll(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if len(types) == 0 {
		log.Println("seeding room types...")
		names := []struct{ name, desc string }{
			{"Single", "One guest, one bed"},
			{"Double", "Two guests, queen bed"},
			{"Suite", "Separate living room, up to three guests"},
			{"Deluxe", "Premium finish, terrace view"},
			{"Family", "Two rooms, up to five guests"},
		}
		for _, n := range names {
			rt := domain.RoomType{Name: n.name, Description: n.desc}
			if err := roomTypeRepo.Create(ctx, &rt); err != nil {
				log.Fatal(err)
			}
			types = append(types, rt)
		}
	}
	typeID := func(name string) int64 {
		for _, t := range types {
			if t.Name == name {
				return t.ID
			}
		}
		return types[0].ID
	}

	rooms, err := roomRepo.GetAll(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if len(rooms) == 0 {
		log.Println("seeding rooms...")
		seedRooms := []domain.Room{
			{
				RoomTypeID:  typeID("Single"),
				Title:       "Taiga 101",
				Description: "Compact single room on the first floor",
				Price:       decimal.FromInt(3500),
				Capacity:    1,
				Amenities:   []string{"WiFi", "TV", "Kettle"},
				ImageURLs:   []string{"/static/rooms/taiga-101.jpg"},
				Status:      domain.RoomAvailable,
			},
			{
				RoomTypeID:  typeID("Double"),
				Title:       "Baikal 201",
				Description: "Double room with lake-side windows",
				Price:       decimal.FromInt(5200),
				Capacity:    2,
				Amenities:   []string{"WiFi", "TV", "Mini-bar", "Air conditioning"},
				ImageURLs:   []string{"/static/rooms/baikal-201.jpg"},
				Status:      domain.RoomAvailable,
			},
			{
				RoomTypeID:  typeID("Suite"),
				Title:       "Yenisei Suite",
				Description: "Suite with a separate living room",
				Price:       decimal.FromInt(9800),
				Capacity:    3,
				Amenities:   []string{"WiFi", "TV", "Mini-bar", "Bathtub", "Balcony"},
				ImageURLs:   []string{"/static/rooms/yenisei-suite.jpg"},
				Status:      domain.RoomAvailable,
			},
			{
				RoomTypeID:  typeID("Family"),
				Title:       "Sayan Family",
				Description: "Two connected rooms for families",
				Price:       decimal.FromInt(8400),
				Capacity:    5,
				Amenities:   []string{"WiFi", "TV", "Kitchenette", "Crib on request"},
				ImageURLs:   []string{"/static/rooms/sayan-family.jpg"},
				Status:      domain.RoomAvailable,
			},
		}
		for i := range seedRooms {
			if err := roomRepo.Create(ctx, &seedRooms[i]); err != nil {
				log.Fatal(err)
			}
		}
	}

	services, err := serviceRepo.GetAll(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if len(services) == 0 {
		log.Println("seeding services...")
		seedServices := []domain.Service{
			{Name: "Breakfast", Description: "Buffet breakfast, 8:00-11:00", Price: decimal.FromInt(600)},
			{Name: "Airport transfer", Description: "One-way transfer from the airport", Price: decimal.FromInt(1500)},
			{Name: "Sauna", Description: "Two hours, up to four guests", Price: decimal.FromInt(2500)},
			{Name: "Late checkout", Description: "Checkout until 18:00", Price: decimal.FromInt(1200)},
		}
		for i := range seedServices {
			if err := serviceRepo.Create(ctx, &seedServices[i]); err != nil {
				log.Fatal(err)
			}
		}
	}

	const adminEmail = "admin@sibiria.ru"
	if _, err := userRepo.GetByEmail(ctx, adminEmail); err == gorm.ErrRecordNotFound {
		log.Println("seeding admin user...")
		hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		admin := domain.User{
			FullName:     "Hotel Administrator",
			Email:        adminEmail,
			Phone:        "+73912000000",
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
			CreatedAt:    time.Now().UTC(),
		}
		if err := userRepo.Create(ctx, &admin); err != nil {
			log.Fatal(err)
		}
	} else if err != nil {
		log.Fatal(err)
	}

	log.Println("seed complete")
}
