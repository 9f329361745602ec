// internal/store/seed.go
package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shoplite/shoplite-backend/internal/models"
)

// Seed loads the demo dataset: a handful of categories and products, plus an
// admin account. Passwords here are demo credentials, printed in the README.
func Seed(s *Store, adminPassword string) error {
	base := time.Now().UTC().Add(-30 * 24 * time.Hour)

	electronics := seedCategory(base, "Electronics", "Phones, audio and accessories")
	apparel := seedCategory(base, "Apparel", "Clothing and footwear")
	home := seedCategory(base, "Home & Kitchen", "Everyday household goods")
	for _, c := range []models.Category{electronics, apparel, home} {
		if err := s.Categories.Create(c); err != nil {
			return fmt.Errorf("seed category %q: %w", c.Name, err)
		}
	}

	products := []models.Product{
		seedProduct(base, 0, "Wireless Earbuds", "Bluetooth 5.3 earbuds with charging case", 59.99, &electronics.ID, 120, 4.3, 89),
		seedProduct(base, 1, "USB-C Charger 65W", "Compact GaN fast charger with two ports", 34.50, &electronics.ID, 200, 4.6, 154),
		seedProduct(base, 2, "Mechanical Keyboard", "Hot-swappable TKL keyboard, brown switches", 89.00, &electronics.ID, 45, 4.7, 211),
		seedProduct(base, 3, "Classic Hoodie", "Mid-weight fleece hoodie in heather grey", 42.00, &apparel.ID, 80, 4.1, 63),
		seedProduct(base, 4, "Canvas Sneakers", "Low-top sneakers with rubber sole", 55.00, &apparel.ID, 0, 3.9, 40),
		seedProduct(base, 5, "Running Socks 3-Pack", "Moisture-wicking crew socks", 14.99, &apparel.ID, 300, 4.4, 97),
		seedProduct(base, 6, "Pour-Over Kettle", "Gooseneck kettle with thermometer, 1L", 38.75, &home.ID, 60, 4.8, 132),
		seedProduct(base, 7, "Chef Knife 8in", "High-carbon stainless steel chef knife", 74.90, &home.ID, 35, 4.5, 78),
		seedProduct(base, 8, "Ceramic Mug Set", "Set of four 350ml stoneware mugs", 28.00, &home.ID, 150, 4.2, 51),
		seedProduct(base, 9, "Desk Lamp", "Dimmable LED lamp with USB port", 31.20, &electronics.ID, 90, 4.0, 44),
	}
	for _, p := range products {
		if err := s.Products.Create(p); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}

	admin := models.User{
		BaseModel: models.NewBaseModel(),
		Username:  "admin",
		Email:     "admin@shoplite.test",
		Role:      models.UserRoleAdmin,
		Status:    models.UserStatusActive,
	}
	if err := admin.SetPassword(adminPassword); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := s.Users.Create(admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	return nil
}

func seedCategory(base time.Time, name, description string) models.Category {
	return models.Category{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: base,
			UpdatedAt: base,
		},
		Name:        name,
		Description: description,
	}
}

// seedProduct staggers CreatedAt so the default "newest" ordering is visible
// in the demo without every product tying on timestamp.
func seedProduct(base time.Time, offsetDays int, name, description string, price float64, categoryID *uuid.UUID, stock int, rating float64, reviews int) models.Product {
	created := base.Add(time.Duration(offsetDays) * 24 * time.Hour)
	return models.Product{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: created,
			UpdatedAt: created,
		},
		Name:        name,
		Description: description,
		Price:       price,
		CategoryID:  categoryID,
		Stock:       stock,
		Rating:      rating,
		ReviewCount: reviews,
	}
}
