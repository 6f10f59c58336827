package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/amey40375/getshiny-mobile-care/events"
	"github.com/amey40375/getshiny-mobile-care/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Order{},
		&models.MitraProfile{},
		&models.ChatMessage{},
		&models.Service{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	// Seed the catalog the order intake validates against.
	catalog := []models.Service{
		{ServiceKey: "cleaning", ServiceName: "Cleaning", Description: "Home and office cleaning", Price: "Rp 50.000/jam"},
		{ServiceKey: "laundry", ServiceName: "Laundry", Description: "Pickup laundry service", Price: "Rp 8.000/kg"},
	}
	if err := db.Create(&catalog).Error; err != nil {
		t.Fatalf("Failed to seed service catalog: %v", err)
	}

	return db
}

func newOrderService(t *testing.T) (*OrderService, *MitraService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	mitras := NewMitraService(db)
	return NewOrderService(db, events.New(), mitras), mitras, db
}

// acceptedMitra registers and accepts an application for userID.
func acceptedMitra(t *testing.T, mitras *MitraService, userID string) *models.MitraProfile {
	t.Helper()

	profile, err := mitras.Register(userID, MitraRegistration{
		Name:         "Mitra " + userID,
		Address:      "Jl. Mitra No. 1",
		WhatsApp:     "0812000000",
		Email:        userID + "@example.com",
		WorkLocation: "Jakarta Selatan",
	})
	if err != nil {
		t.Fatalf("Failed to register mitra: %v", err)
	}

	profile, err = mitras.Decide(profile.ID, models.ApplicationAccepted)
	if err != nil {
		t.Fatalf("Failed to accept mitra: %v", err)
	}
	return profile
}

func submitTestOrder(t *testing.T, orders *OrderService) *models.Order {
	t.Helper()

	order, err := orders.Submit(OrderDraft{
		CustomerName:     "Budi",
		CustomerAddress:  "Jl. A",
		CustomerWhatsApp: "081234567890",
		ServiceType:      "cleaning",
	})
	if err != nil {
		t.Fatalf("Failed to submit order: %v", err)
	}
	return order
}
