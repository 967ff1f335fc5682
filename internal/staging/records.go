//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package staging

import "time"

// RecordMeta is the lineage metadata carried on every record from raw
// onward.
type RecordMeta struct {
	BatchID    string
	SourceFile string
	LoadTS     time.Time
}

// Raw records: untyped string-only projections of the source tables.
// A nil field is a database NULL.

type RawTransactionHeader struct {
	TransactionID   *string
	StoreID         *string
	CustomerID      *string
	TransactionDate *string
	PaymentMethod   *string
	TotalAmount     *string
	LoyaltyPoints   *string
	LastUpdated     *string
	RecordMeta
}

type RawTransactionLine struct {
	LineID         *string
	TransactionID  *string
	ProductSKU     *string
	StoreID        *string
	Quantity       *string
	UnitPrice      *string
	DiscountAmount *string
	SalesAmount    *string
	PromotionID    *string
	LastUpdated    *string
	RecordMeta
}

type RawProduct struct {
	SKU         *string
	ProductName *string
	Category    *string
	SubCategory *string
	UnitPrice   *string
	CostPrice   *string
	SupplierID  *string
	LaunchDate  *string
	LastUpdated *string
	RecordMeta
}

type RawStore struct {
	StoreID       *string
	StoreName     *string
	City          *string
	Region        *string
	StoreType     *string
	SquareFootage *string
	OpeningDate   *string
	LastUpdated   *string
	RecordMeta
}

type RawInventory struct {
	InventoryID      *string
	ProductSKU       *string
	StoreID          *string
	SnapshotDate     *string
	QuantityOnHand   *string
	QuantityReserved *string
	ReorderPoint     *string
	LastUpdated      *string
	RecordMeta
}

type RawCustomer struct {
	CustomerID  *string
	FirstName   *string
	LastName    *string
	Email       *string
	Phone       *string
	City        *string
	LoyaltyTier *string
	JoinDate    *string
	LastUpdated *string
	RecordMeta
}

type RawPromotion struct {
	PromotionID   *string
	PromotionName *string
	PromoType     *string
	StartDate     *string
	EndDate       *string
	DiscountPct   *string
	EligibleSKUs  *string
	StoreScope    *string
	LastUpdated   *string
	RecordMeta
}

type RawWeather struct {
	RetailLocationID *string
	WeatherDate      *string
	TempHighC        *string
	TempLowC         *string
	PrecipitationMM  *string
	HumidityPct      *string
	WeatherCondition *string
	LastUpdated      *string
	RecordMeta
}

// Staged records: typed projections with per-field DQ flags and an
// aggregate flag over the entity's critical field set.

type StagedTransactionHeader struct {
	TransactionID   *string
	StoreID         *string
	CustomerID      *string
	TransactionDate *time.Time
	PaymentMethod   *string
	TotalAmount     *float64
	LoyaltyPoints   *int
	LastUpdated     *time.Time

	DQTransactionIDValid bool
	DQStoreIDValid       bool
	DQCustomerIDValid    bool
	DQDateValid          bool
	DQAmountValid        bool
	DQPaymentValid       bool
	DQIsValid            bool

	RecordMeta
}

type StagedTransactionLine struct {
	LineID         *string
	TransactionID  *string
	ProductSKU     *string
	StoreID        *string
	Quantity       *int
	UnitPrice      *float64
	DiscountAmount *float64
	SalesAmount    *float64
	PromotionID    *string
	LastUpdated    *time.Time

	// Business-rule flags computed in staging and passed through to
	// silver unmodified; they do not participate in DQ scoring.
	IsReturn     bool
	IsOutlierQty bool
	HasDiscount  bool
	HasPromotion bool

	DQLineIDValid        bool
	DQTransactionIDValid bool
	DQProductSKUValid    bool
	DQStoreIDValid       bool
	DQQuantityValid      bool
	DQUnitPriceValid     bool
	DQSalesAmountValid   bool
	DQIsValid            bool

	RecordMeta
}

type StagedProduct struct {
	SKU         *string
	ProductName *string
	Category    *string
	SubCategory *string
	UnitPrice   *float64
	CostPrice   *float64
	SupplierID  *string
	LaunchDate  *time.Time
	LastUpdated *time.Time

	DQSKUValid         bool
	DQNameValid        bool
	DQCategoryValid    bool
	DQSubCategoryValid bool
	DQUnitPriceValid   bool
	DQCostPriceValid   bool
	DQSupplierValid    bool
	DQIsValid          bool

	RecordMeta
}

type StagedStore struct {
	StoreID       *string
	StoreName     *string
	City          *string
	Region        *string
	StoreType     *string
	SquareFootage *int
	OpeningDate   *time.Time
	LastUpdated   *time.Time

	DQStoreIDValid     bool
	DQNameValid        bool
	DQCityValid        bool
	DQRegionValid      bool
	DQTypeValid        bool
	DQOpeningDateValid bool
	DQIsValid          bool

	RecordMeta
}

type StagedInventory struct {
	InventoryID      *string
	ProductSKU       *string
	StoreID          *string
	SnapshotDate     *time.Time
	QuantityOnHand   *int
	QuantityReserved *int
	ReorderPoint     *int
	LastUpdated      *time.Time

	DQInventoryIDValid  bool
	DQProductSKUValid   bool
	DQStoreIDValid      bool
	DQSnapshotDateValid bool
	DQOnHandValid       bool
	DQIsValid           bool

	RecordMeta
}

type StagedCustomer struct {
	CustomerID  *string
	FirstName   *string
	LastName    *string
	Email       *string
	Phone       *string
	City        *string
	LoyaltyTier *string
	JoinDate    *time.Time
	LastUpdated *time.Time

	DQCustomerIDValid bool
	DQNameValid       bool
	DQEmailValid      bool
	DQPhoneValid      bool
	DQTierValid       bool
	DQJoinDateValid   bool
	DQIsValid         bool

	RecordMeta
}

type StagedPromotion struct {
	PromotionID   *string
	PromotionName *string
	PromoType     *string
	StartDate     *time.Time
	EndDate       *time.Time
	DiscountPct   *float64
	EligibleSKUs  *string
	StoreScope    *string
	LastUpdated   *time.Time

	DQPromotionIDValid bool
	DQNameValid        bool
	DQTypeValid        bool
	DQDatesValid       bool
	DQDiscountValid    bool
	DQSKUsValid        bool
	DQIsValid          bool

	RecordMeta
}

type StagedWeather struct {
	RetailLocationID *string
	WeatherDate      *time.Time
	TempHighC        *float64
	TempLowC         *float64
	PrecipitationMM  *float64
	HumidityPct      *float64
	WeatherCondition *string
	LastUpdated      *time.Time

	DQLocationValid  bool
	DQDateValid      bool
	DQTempsValid     bool
	DQPrecipValid    bool
	DQConditionValid bool
	DQIsValid        bool

	RecordMeta
}
