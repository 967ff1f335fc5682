//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package silver

import "time"

// Conformed records: one per natural key, quality scored. IsValid is
// the silver admission predicate result; only valid records are
// persisted to the conformed tables.

type ConformedProduct struct {
	SKU         string
	ProductName *string
	Category    *string
	SubCategory *string
	UnitPrice   *float64
	CostPrice   *float64
	SupplierID  *string
	LaunchDate  *time.Time
	LastUpdated *time.Time
	DQScore     int
	IsValid     bool
	BatchID     string
}

// ProductVersion is one SCD Type 2 version of a product. At most one
// version per SKU is current, and a current version has a nil
// EffectiveTo.
type ProductVersion struct {
	SKU           string
	VersionNumber int
	ProductName   *string
	Category      *string
	SubCategory   *string
	UnitPrice     *float64
	CostPrice     *float64
	SupplierID    *string
	LaunchDate    *time.Time
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	IsCurrent     bool
	DQScore       int
	IsValid       bool
	BatchID       string
}

type ConformedStore struct {
	StoreID       string
	StoreName     *string
	City          *string
	Region        *string
	StoreType     *string
	SquareFootage *int
	OpeningDate   *time.Time
	DQScore       int
	IsValid       bool
	BatchID       string
}

type ConformedCustomer struct {
	CustomerID  string
	FirstName   *string
	LastName    *string
	Email       *string
	Phone       *string
	City        *string
	LoyaltyTier *string
	JoinDate    *time.Time
	DQScore     int
	IsValid     bool
	BatchID     string
}

type ConformedPromotion struct {
	PromotionID   string
	PromotionName *string
	PromoType     *string
	StartDate     *time.Time
	EndDate       *time.Time
	DiscountPct   *float64
	EligibleSKUs  *string
	StoreScope    *string
	DQScore       int
	IsValid       bool
	BatchID       string
}

type ConformedInventory struct {
	ProductSKU       string
	StoreID          string
	SnapshotDate     time.Time
	QuantityOnHand   *int
	QuantityReserved *int
	ReorderPoint     *int
	ProductExists    bool
	StoreExists      bool
	DQScore          int
	IsValid          bool
	BatchID          string
}

type ConformedWeather struct {
	StoreID          string
	WeatherDate      time.Time
	TempHighC        *float64
	TempLowC         *float64
	PrecipitationMM  *float64
	HumidityPct      *float64
	WeatherCondition *string
	StoreExists      bool
	DQScore          int
	IsValid          bool
	BatchID          string
}

type ConformedHeader struct {
	TransactionID   string
	StoreID         *string
	CustomerID      *string
	TransactionDate *time.Time
	PaymentMethod   *string
	TotalAmount     *float64
	LoyaltyPoints   *int
	StoreExists     bool
	CustomerExists  bool
	DQScore         int
	IsValid         bool
	BatchID         string
}

type ConformedLine struct {
	LineID            string
	TransactionID     *string
	ProductSKU        *string
	StoreID           *string
	Quantity          *int
	UnitPrice         *float64
	DiscountAmount    *float64
	SalesAmount       *float64
	PromotionID       *string
	IsReturn          bool
	IsOutlierQty      bool
	HasDiscount       bool
	HasPromotion      bool
	TransactionExists bool
	ProductExists     bool
	StoreExists       bool
	PromotionExists   bool
	DQScore           int
	IsValid           bool
	BatchID           string
}

// RefSet is the set of natural keys of an already-conformed dimension,
// used for foreign-key existence checks.
type RefSet map[string]bool

// Has reports key existence; a nil reference (optional FK left null)
// counts as absent.
func (r RefSet) Has(key *string) bool {
	if key == nil {
		return false
	}
	return r[*key]
}
