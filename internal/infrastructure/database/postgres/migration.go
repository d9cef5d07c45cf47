// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/your-org/boutique-store/internal/config"
	"github.com/your-org/boutique-store/internal/domain/order"
	"github.com/your-org/boutique-store/internal/domain/product"
	"github.com/your-org/boutique-store/internal/domain/user"
	"github.com/your-org/boutique-store/internal/pkg/auth"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// Models lists every persisted model in dependency order
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&product.Category{},
		&product.Product{},
		&order.Order{},
		&order.OrderItem{},
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	for _, model := range Models() {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for the storefront queries
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// Category page: active products of a category, filtered
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_category_filters ON products(category_id, brand, size, color)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Admin order list
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	if failCount > 0 {
		return fmt.Errorf("%d indexes failed", failCount)
	}
	return nil
}

// SeedInitialData creates the admin account and, on an empty catalog, the
// default categories.
func (m *Migration) SeedInitialData(ctx context.Context, seed config.SeedConfig, passwords *auth.PasswordManager) error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedCategories(ctx, seed); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if err := m.seedAdminUser(ctx, seed, passwords); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedCategories(ctx context.Context, seed config.SeedConfig) error {
	log.Println("🏷️ Seeding categories...")

	var count int64
	if err := m.db.WithContext(ctx).Model(&product.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("⏭️ %d categories already exist", count)
		return nil
	}

	categories := product.NewCategoryService(m.db)
	for _, pair := range seed.SeedCategories() {
		if err := categories.EnsureCategory(ctx, pair[0], pair[1]); err != nil {
			return err
		}
		log.Printf("✅ Created category: %s", pair[1])
	}
	return nil
}

func (m *Migration) seedAdminUser(ctx context.Context, seed config.SeedConfig, passwords *auth.PasswordManager) error {
	log.Println("👤 Seeding admin user...")

	users := user.NewService(m.db, passwords, nil)
	admin, created, err := users.EnsureAdmin(ctx, seed.AdminUsername, seed.AdminEmail, seed.AdminPassword)
	if err != nil {
		return err
	}

	if created {
		log.Printf("✅ Created admin user: %s", admin.Username)
	} else {
		log.Printf("⏭️ Admin user already exists with ID: %d", admin.ID)
	}
	return nil
}

// GetTableInfo logs the row count of every table
func (m *Migration) GetTableInfo() error {
	log.Println("📊 Database Tables Information:")
	log.Println("================================")

	totalRecords := int64(0)
	for _, model := range Models() {
		stmt := &gorm.Statement{DB: m.db}
		if err := stmt.Parse(model); err != nil {
			return err
		}

		var count int64
		if err := m.db.Table(stmt.Table).Count(&count).Error; err != nil {
			return err
		}
		totalRecords += count

		status := "✅"
		if count == 0 {
			status = "📭"
		}
		log.Printf("%s %-25s | %d records", status, stmt.Table, count)
	}

	log.Println("================================")
	log.Printf("📈 Total records across all tables: %d", totalRecords)
	return nil
}
