// internal/domain/analytics/service.go
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/your-org/boutique-store/internal/domain/order"
	"github.com/your-org/boutique-store/internal/domain/product"
)

// Service handles analytics business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new analytics service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db: db,
	}
}

// DashboardStats represents the admin dashboard figures
type DashboardStats struct {
	ProductCount   int64           `json:"product_count"`
	ActiveProducts int64           `json:"active_products"`
	OrderCount     int64           `json:"order_count"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"` // sum of every order total
	OrdersByStatus []StatusData    `json:"orders_by_status"`
	LatestOrders   []order.Order   `json:"latest_orders"`
}

// StatusData represents order counts per status
type StatusData struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// Dashboard gathers the dashboard figures. latest bounds the recent orders list.
func (s *Service) Dashboard(ctx context.Context, latest int) (*DashboardStats, error) {
	db := s.db.WithContext(ctx)
	stats := &DashboardStats{}

	if err := db.Model(&product.Product{}).Count(&stats.ProductCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := db.Model(&product.Product{}).Where("is_active = ?", true).Count(&stats.ActiveProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count active products: %w", err)
	}
	if err := db.Model(&order.Order{}).Count(&stats.OrderCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	revenue, err := s.totalRevenue(db)
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = revenue

	if err := db.Model(&order.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("count DESC, status ASC").
		Scan(&stats.OrdersByStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to group orders by status: %w", err)
	}

	if err := db.Order("created_at DESC, id DESC").Limit(latest).Find(&stats.LatestOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve latest orders: %w", err)
	}

	return stats, nil
}

func (s *Service) totalRevenue(db *gorm.DB) (decimal.Decimal, error) {
	var revenue decimal.NullDecimal
	if err := db.Model(&order.Order{}).
		Select("SUM(total_amount)").
		Row().
		Scan(&revenue); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if !revenue.Valid {
		return decimal.Zero, nil
	}
	return revenue.Decimal, nil
}
