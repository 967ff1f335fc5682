//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package gold

import (
	"time"

	"github.com/metroretail/metro-pipeline/internal/silver"
)

// Dimension rows are natural-key projections of the conformed layer;
// the surrogate keys are assigned by the database on insert.

type ProductDimRow struct {
	SKU           string
	VersionNumber int
	ProductName   *string
	Category      *string
	SubCategory   *string
	UnitPrice     *float64
	CostPrice     *float64
	SupplierID    *string
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	IsCurrent     bool
	DQScore       int
	BatchID       string
}

type StoreDimRow struct {
	StoreID       string
	StoreName     *string
	City          *string
	Region        *string
	StoreType     *string
	SquareFootage *int
	OpeningDate   *time.Time
	DQScore       int
	BatchID       string
}

type CustomerDimRow struct {
	CustomerID  string
	FirstName   *string
	LastName    *string
	Email       *string
	City        *string
	LoyaltyTier *string
	JoinDate    *time.Time
	DQScore     int
	BatchID     string
}

type PromotionDimRow struct {
	PromotionID   string
	PromotionName *string
	PromoType     *string
	StartDate     *time.Time
	EndDate       *time.Time
	DiscountPct   *float64
	StoreScope    *string
	DQScore       int
	BatchID       string
}

// BuildProductDim carries the full version history into the product
// dimension, current and closed versions alike.
func BuildProductDim(versions []silver.ProductVersion) []ProductDimRow {
	out := make([]ProductDimRow, 0, len(versions))
	for _, v := range versions {
		out = append(out, ProductDimRow{
			SKU:           v.SKU,
			VersionNumber: v.VersionNumber,
			ProductName:   v.ProductName,
			Category:      v.Category,
			SubCategory:   v.SubCategory,
			UnitPrice:     v.UnitPrice,
			CostPrice:     v.CostPrice,
			SupplierID:    v.SupplierID,
			EffectiveFrom: v.EffectiveFrom,
			EffectiveTo:   v.EffectiveTo,
			IsCurrent:     v.IsCurrent,
			DQScore:       v.DQScore,
			BatchID:       v.BatchID,
		})
	}
	return out
}

func BuildStoreDim(stores []silver.ConformedStore) []StoreDimRow {
	out := make([]StoreDimRow, 0, len(stores))
	for _, s := range stores {
		out = append(out, StoreDimRow{
			StoreID:       s.StoreID,
			StoreName:     s.StoreName,
			City:          s.City,
			Region:        s.Region,
			StoreType:     s.StoreType,
			SquareFootage: s.SquareFootage,
			OpeningDate:   s.OpeningDate,
			DQScore:       s.DQScore,
			BatchID:       s.BatchID,
		})
	}
	return out
}

func BuildCustomerDim(customers []silver.ConformedCustomer) []CustomerDimRow {
	out := make([]CustomerDimRow, 0, len(customers))
	for _, c := range customers {
		out = append(out, CustomerDimRow{
			CustomerID:  c.CustomerID,
			FirstName:   c.FirstName,
			LastName:    c.LastName,
			Email:       c.Email,
			City:        c.City,
			LoyaltyTier: c.LoyaltyTier,
			JoinDate:    c.JoinDate,
			DQScore:     c.DQScore,
			BatchID:     c.BatchID,
		})
	}
	return out
}

func BuildPromotionDim(promotions []silver.ConformedPromotion) []PromotionDimRow {
	out := make([]PromotionDimRow, 0, len(promotions))
	for _, p := range promotions {
		out = append(out, PromotionDimRow{
			PromotionID:   p.PromotionID,
			PromotionName: p.PromotionName,
			PromoType:     p.PromoType,
			StartDate:     p.StartDate,
			EndDate:       p.EndDate,
			DiscountPct:   p.DiscountPct,
			StoreScope:    p.StoreScope,
			DQScore:       p.DQScore,
			BatchID:       p.BatchID,
		})
	}
	return out
}
