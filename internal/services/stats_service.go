package services

import (
	"keyshop-backend/internal/database"
	"keyshop-backend/internal/models"
)

// StoreStats is the admin dashboard summary.
type StoreStats struct {
	TotalProducts int64   `json:"total_products"`
	TotalUsers    int64   `json:"total_users"`
	TotalOrders   int64   `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// GetStoreStats aggregates catalog and sales counters. Revenue only counts
// completed orders.
func GetStoreStats() (*StoreStats, error) {
	var stats StoreStats

	if err := database.DB.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}

	var revenue *float64
	if err := database.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusCompleted).
		Select("SUM(amount)").Scan(&revenue).Error; err != nil {
		return nil, err
	}
	if revenue != nil {
		stats.TotalRevenue = *revenue
	}

	return &stats, nil
}
