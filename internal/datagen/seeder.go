package datagen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metroretail/metro-pipeline/internal/config"
	"github.com/metroretail/metro-pipeline/internal/db"
	"github.com/metroretail/metro-pipeline/internal/logging"
	"github.com/metroretail/metro-pipeline/internal/warehouse"
)

const (
	numStores      = 12
	numProducts    = 200
	numPromotions  = 20
	weatherDays    = 30
	snapshotDays   = 3
	linesPerTxnMax = 4
)

// Reference data.
var regions = []string{"Northeast", "Southeast", "Midwest", "Southwest", "West"}
var storeTypes = []string{"Flagship", "Standard", "Express", "Outlet"}
var categories = []string{"Electronics", "Beverages", "Groceries", "Household",
	"Personal Care", "Snacks", "Frozen Foods", "Dairy", "Bakery", "Produce"}
var categoryTypos = []string{"Electroncs", "electronic", "beverage", "Bevrages",
	"grocey", "GROCERY", "house hold", "personalcare", "snack", "frozen foods "}
var subCategories = []string{"Premium", "Value", "Organic", "Imported", "Seasonal", "Private Label"}
var promoTypes = []string{"BOGO", "Percentage Discount", "Fixed Discount", "Clearance", "Seasonal", "Loyalty"}
var promoTypeVariants = []string{"bogo offer", "Buy One Get One", "percent off", "20% off", "amount off", "clearence", "season"}
var paymentMethods = []string{"Cash", "Credit Card", "Debit Card", "Mobile Payment", "Gift Card"}
var paymentVariants = []string{"cash", "CC", "creditcard", "debit", "mobile", "giftcard", "voucher"}
var loyaltyTiers = []string{"Bronze", "Silver", "Gold", "Platinum", "Standard"}
var loyaltyVariants = []string{"bronze", "GOLD", "plat", "none", "basic", "silver "}
var weatherConditions = []string{"Sunny", "Partly Cloudy", "Cloudy", "Rain", "Storm", "Snow", "Fog"}
var weatherVariants = []string{"clear", "partly sunny", "overcast", "drizzle", "thunderstorms", "sleet", "mist"}

// Seeder populates the raw layer with generated source extracts. The
// defect rate controls how many rows get a deliberate quality problem:
// duplicate keys, typos, currency formatting, sentinels, unparseable
// dates, dangling references.
type Seeder struct {
	faker *Faker
	cfg   config.SeedConfig
	now   time.Time
}

func NewSeeder(cfg config.SeedConfig) *Seeder {
	faker := NewFaker()
	if cfg.RandomSeed != 0 {
		faker = NewFakerWithSeed(cfg.RandomSeed)
	}
	return &Seeder{
		faker: faker,
		cfg:   cfg,
		now:   time.Now().UTC(),
	}
}

// dirty decides whether the next row gets a defect.
func (s *Seeder) dirty() bool {
	return s.faker.Int(1, 100) <= s.cfg.DirtyPct
}

// fmtDate renders a date in one of the formats the upstream systems
// actually emit.
func (s *Seeder) fmtDate(t time.Time) string {
	switch s.faker.Int(0, 2) {
	case 0:
		return t.Format("2006-01-02")
	case 1:
		return t.Format("01/02/2006")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// fmtAmount renders a monetary amount, sometimes with the currency
// formatting the POS export carries.
func (s *Seeder) fmtAmount(v float64) string {
	if s.faker.Bool() {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("$%s", commaFmt(v))
}

func commaFmt(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	plain := fmt.Sprintf("%.2f", v)
	dot := strings.Index(plain, ".")
	intPart, fracPart := plain[:dot], plain[dot:]
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String() + fracPart
	}
	return b.String() + fracPart
}

func (s *Seeder) lastUpdated() string {
	return s.faker.DateRange(s.now.AddDate(0, -1, 0), s.now).Format("2006-01-02 15:04:05")
}

type rawBatch struct {
	table warehouse.Table
	rows  [][]any
}

func (s *Seeder) store(ctx context.Context, pool *pgxpool.Pool, b rawBatch) error {
	n, err := warehouse.Materialize(ctx, pool, b.table, config.StrategyFullRefresh, b.rows)
	if err != nil {
		return fmt.Errorf("seed %s: %w", b.table.Name, err)
	}
	logging.Info().
		Str("table", b.table.Name).
		Int64("rows", n).
		Msg("Seeded raw table")
	return nil
}

func (s *Seeder) meta(source, entityName string) (string, string) {
	batchID := db.GenerateBatchID(source, entityName, s.now)
	sourceFile := fmt.Sprintf("%s_%s.csv", entityName, s.now.Format("20060102"))
	return batchID, sourceFile
}

// Seed generates and loads all eight raw extracts. Dimension entities
// come first so fact rows can reference real keys.
func (s *Seeder) Seed(ctx context.Context, pool *pgxpool.Pool) error {
	if err := warehouse.CreateSchemas(ctx, pool); err != nil {
		return err
	}
	if err := db.EnsureManifest(ctx, pool); err != nil {
		return err
	}

	logging.Info().
		Int("transactions", s.cfg.Transactions).
		Int("dirty_pct", s.cfg.DirtyPct).
		Uint64("random_seed", s.cfg.RandomSeed).
		Msg("Generating sample source data")

	storeIDs := s.storeIDs()
	skus := s.skus()
	customerIDs := s.customerIDs()

	batches := []rawBatch{
		s.genStores(storeIDs),
		s.genProducts(skus),
		s.genCustomers(customerIDs),
		s.genPromotions(skus),
		s.genInventory(skus, storeIDs),
		s.genWeather(storeIDs),
	}
	headerBatch, txnIDs := s.genHeaders(storeIDs, customerIDs)
	batches = append(batches, headerBatch, s.genLines(txnIDs, skus, storeIDs))

	for _, b := range batches {
		if err := s.store(ctx, pool, b); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) storeIDs() []string {
	ids := make([]string, numStores)
	for i := range ids {
		ids[i] = fmt.Sprintf("S%03d", i+1)
	}
	return ids
}

func (s *Seeder) skus() []string {
	skus := make([]string, numProducts)
	for i := range skus {
		skus[i] = fmt.Sprintf("P%03d", i+1)
	}
	return skus
}

func (s *Seeder) customerIDs() []string {
	n := max(s.cfg.Transactions/5, 50)
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("C%05d", i+1)
	}
	return ids
}

var rawStoresTable = warehouse.Table{
	Name: "raw.erp_stores",
	Columns: []string{"store_id", "store_name", "city", "region", "store_type",
		"square_footage", "opening_date", "last_updated", "batch_id", "source_file"},
}

func (s *Seeder) genStores(storeIDs []string) rawBatch {
	batchID, sourceFile := s.meta("ERP", "stores")
	var rows [][]any
	for _, id := range storeIDs {
		region := s.faker.Pick(regions)
		if s.dirty() {
			region = strings.ToLower(region)
		}
		row := []any{
			id,
			"MetroRetail " + s.faker.City(),
			s.faker.City(),
			region,
			s.faker.Pick(storeTypes),
			fmt.Sprintf("%d", s.faker.Int(3000, 45000)),
			s.fmtDate(s.faker.DateRange(s.now.AddDate(-15, 0, 0), s.now.AddDate(-1, 0, 0))),
			s.lastUpdated(),
			batchID, sourceFile,
		}
		rows = append(rows, row)
		// Occasional duplicate feed row with a newer update stamp.
		if s.dirty() {
			dup := make([]any, len(row))
			copy(dup, row)
			dup[7] = s.now.Format("2006-01-02 15:04:05")
			rows = append(rows, dup)
		}
	}
	return rawBatch{rawStoresTable, rows}
}

var rawProductsTable = warehouse.Table{
	Name: "raw.erp_products",
	Columns: []string{"sku", "product_name", "category", "sub_category",
		"unit_price", "cost_price", "supplier_id", "launch_date", "last_updated",
		"batch_id", "source_file"},
}

func (s *Seeder) genProducts(skus []string) rawBatch {
	batchID, sourceFile := s.meta("ERP", "products")
	var rows [][]any
	for _, sku := range skus {
		category := s.faker.Pick(categories)
		if s.dirty() {
			category = s.faker.Pick(categoryTypos)
		}
		price := s.faker.Price(1, 250)
		cost := price * s.faker.Float64(0.4, 0.8)
		row := []any{
			sku,
			s.faker.ProductName(),
			category,
			s.faker.Pick(subCategories),
			s.fmtAmount(price),
			s.fmtAmount(cost),
			fmt.Sprintf("SUP%03d", s.faker.Int(1, 40)),
			s.fmtDate(s.faker.DateRange(s.now.AddDate(-5, 0, 0), s.now)),
			s.lastUpdated(),
			batchID, sourceFile,
		}
		if s.dirty() {
			row[1] = "N/A"
		}
		rows = append(rows, row)
		if s.dirty() {
			dup := make([]any, len(row))
			copy(dup, row)
			dup[4] = s.fmtAmount(price * 1.05) // price change in the later extract
			dup[8] = s.now.Format("2006-01-02 15:04:05")
			rows = append(rows, dup)
		}
	}
	return rawBatch{rawProductsTable, rows}
}

var rawCustomersTable = warehouse.Table{
	Name: "raw.crm_customers",
	Columns: []string{"customer_id", "first_name", "last_name", "email", "phone",
		"city", "loyalty_tier", "join_date", "last_updated", "batch_id",
		"source_file"},
}

func (s *Seeder) genCustomers(customerIDs []string) rawBatch {
	batchID, sourceFile := s.meta("CRM", "customers")
	var rows [][]any
	for _, id := range customerIDs {
		email := s.faker.Email()
		if s.dirty() {
			email = strings.Replace(email, "@", " at ", 1)
		}
		phone := s.faker.Phone()
		if s.dirty() {
			phone = "NA"
		}
		tier := s.faker.Pick(loyaltyTiers)
		if s.dirty() {
			tier = s.faker.Pick(loyaltyVariants)
		}
		rows = append(rows, []any{
			id,
			s.faker.FirstName(),
			s.faker.LastName(),
			email,
			phone,
			s.faker.City(),
			tier,
			s.fmtDate(s.faker.DateRange(s.now.AddDate(-6, 0, 0), s.now)),
			s.lastUpdated(),
			batchID, sourceFile,
		})
	}
	return rawBatch{rawCustomersTable, rows}
}

var rawPromotionsTable = warehouse.Table{
	Name: "raw.mkt_promotions",
	Columns: []string{"promotion_id", "promotion_name", "promo_type", "start_date",
		"end_date", "discount_pct", "eligible_skus", "store_scope", "last_updated",
		"batch_id", "source_file"},
}

func (s *Seeder) genPromotions(skus []string) rawBatch {
	batchID, sourceFile := s.meta("MKT", "promotions")
	var rows [][]any
	for i := 0; i < numPromotions; i++ {
		promoType := s.faker.Pick(promoTypes)
		if s.dirty() {
			promoType = s.faker.Pick(promoTypeVariants)
		}

		eligible := "N/A"
		if s.faker.Int(1, 100) > 30 {
			n := s.faker.Int(1, 5)
			picked := make([]string, 0, n)
			for j := 0; j < n; j++ {
				picked = append(picked, s.faker.Pick(skus))
			}
			if s.dirty() {
				picked = append(picked, fmt.Sprintf("P%03d", numProducts+s.faker.Int(1, 50)))
			}
			eligible = strings.Join(picked, "|")
		}

		start := s.faker.DateRange(s.now.AddDate(0, -2, 0), s.now)
		end := start.AddDate(0, 0, s.faker.Int(7, 45))
		if s.dirty() {
			start, end = end, start
		}

		discount := s.faker.Float64(5, 50)
		if s.dirty() {
			discount = s.faker.Float64(101, 150)
		}

		rows = append(rows, []any{
			fmt.Sprintf("PROMO%03d", i+1),
			s.faker.Company() + " " + promoType,
			promoType,
			s.fmtDate(start),
			s.fmtDate(end),
			fmt.Sprintf("%.1f", discount),
			eligible,
			s.faker.Pick([]string{"ALL", "REGIONAL", "SELECTED"}),
			s.lastUpdated(),
			batchID, sourceFile,
		})
	}
	return rawBatch{rawPromotionsTable, rows}
}

var rawInventoryTable = warehouse.Table{
	Name: "raw.erp_inventory",
	Columns: []string{"inventory_id", "product_sku", "store_id", "snapshot_date",
		"quantity_on_hand", "quantity_reserved", "reorder_point", "last_updated",
		"batch_id", "source_file"},
}

func (s *Seeder) genInventory(skus, storeIDs []string) rawBatch {
	batchID, sourceFile := s.meta("ERP", "inventory")
	var rows [][]any
	seq := 0
	for day := 0; day < snapshotDays; day++ {
		snapshot := s.now.AddDate(0, 0, -day)
		for _, sku := range skus {
			for _, storeID := range storeIDs {
				seq++
				onHand := fmt.Sprintf("%d", s.faker.Int(0, 500))
				if s.dirty() {
					onHand = fmt.Sprintf("%d", -s.faker.Int(1, 20))
				}
				rows = append(rows, []any{
					fmt.Sprintf("INV%07d", seq),
					sku,
					storeID,
					snapshot.Format("2006-01-02"),
					onHand,
					fmt.Sprintf("%d", s.faker.Int(0, 40)),
					fmt.Sprintf("%d", s.faker.Int(10, 60)),
					s.lastUpdated(),
					batchID, sourceFile,
				})
			}
		}
	}
	return rawBatch{rawInventoryTable, rows}
}

var rawWeatherTable = warehouse.Table{
	Name: "raw.api_weather",
	Columns: []string{"retail_location_id", "weather_date", "temp_high_c",
		"temp_low_c", "precipitation_mm", "humidity_pct", "weather_condition",
		"last_updated", "batch_id", "source_file"},
}

func (s *Seeder) genWeather(storeIDs []string) rawBatch {
	batchID, sourceFile := s.meta("API", "weather")
	var rows [][]any
	for _, storeID := range storeIDs {
		// The weather provider keys locations with its own prefix.
		locationID := "LOC_" + storeID
		for day := 0; day < weatherDays; day++ {
			date := s.now.AddDate(0, 0, -day)
			low := s.faker.Float64(-10, 20)
			high := low + s.faker.Float64(2, 15)
			if s.dirty() {
				low, high = high, low
			}
			condition := s.faker.Pick(weatherConditions)
			if s.dirty() {
				condition = s.faker.Pick(weatherVariants)
			}
			rows = append(rows, []any{
				locationID,
				date.Format("2006-01-02"),
				fmt.Sprintf("%.1f", high),
				fmt.Sprintf("%.1f", low),
				fmt.Sprintf("%.1f", s.faker.Float64(0, 30)),
				fmt.Sprintf("%.1f", s.faker.Float64(20, 100)),
				condition,
				s.lastUpdated(),
				batchID, sourceFile,
			})
		}
	}
	return rawBatch{rawWeatherTable, rows}
}

var rawHeadersTable = warehouse.Table{
	Name: "raw.pos_transactions_header",
	Columns: []string{"transaction_id", "store_id", "customer_id",
		"transaction_date", "payment_method", "total_amount", "loyalty_points",
		"last_updated", "batch_id", "source_file"},
}

func (s *Seeder) genHeaders(storeIDs, customerIDs []string) (rawBatch, []string) {
	batchID, sourceFile := s.meta("POS", "transactions_header")
	var rows [][]any
	txnIDs := make([]string, 0, s.cfg.Transactions)
	for i := 0; i < s.cfg.Transactions; i++ {
		txnID := fmt.Sprintf("TXN%07d", i+1)
		txnIDs = append(txnIDs, txnID)

		var customerID string
		if s.faker.Int(1, 100) <= 70 {
			customerID = s.faker.Pick(customerIDs)
		}
		payment := s.faker.Pick(paymentMethods)
		if s.dirty() {
			payment = s.faker.Pick(paymentVariants)
		}
		date := s.fmtDate(s.faker.DateRange(s.now.AddDate(0, -1, 0), s.now))
		if s.dirty() {
			date = "13/45/2025"
		}
		amount := s.fmtAmount(s.faker.Price(5, 800))
		row := []any{
			txnID,
			s.faker.Pick(storeIDs),
			customerID,
			date,
			payment,
			amount,
			fmt.Sprintf("%d", s.faker.Int(0, 120)),
			s.lastUpdated(),
			batchID, sourceFile,
		}
		rows = append(rows, row)
		// Duplicate POS export with a corrected total.
		if s.dirty() {
			dup := make([]any, len(row))
			copy(dup, row)
			dup[5] = s.fmtAmount(s.faker.Price(5, 800))
			dup[7] = s.now.Format("2006-01-02 15:04:05")
			rows = append(rows, dup)
		}
	}
	return rawBatch{rawHeadersTable, rows}, txnIDs
}

var rawLinesTable = warehouse.Table{
	Name: "raw.pos_transactions_lines",
	Columns: []string{"line_id", "transaction_id", "product_sku", "store_id",
		"quantity", "unit_price", "discount_amount", "sales_amount",
		"promotion_id", "last_updated", "batch_id", "source_file"},
}

func (s *Seeder) genLines(txnIDs, skus, storeIDs []string) rawBatch {
	batchID, sourceFile := s.meta("POS", "transactions_lines")
	var rows [][]any
	seq := 0
	for _, txnID := range txnIDs {
		n := s.faker.Int(1, linesPerTxnMax)
		for j := 0; j < n; j++ {
			seq++
			qty := s.faker.Int(1, 8)
			if s.faker.Int(1, 100) <= 3 {
				qty = -qty // return
			}
			if s.dirty() {
				switch s.faker.Int(0, 2) {
				case 0:
					qty = 0
				case 1:
					qty = s.faker.Int(150, 600)
				}
			}
			price := s.faker.Price(1, 250)
			discount := 0.0
			if s.faker.Int(1, 100) <= 25 {
				discount = price * s.faker.Float64(0.05, 0.3)
			}
			sales := float64(qty)*price - discount
			salesStr := s.fmtAmount(sales)
			if sales < 0 && s.faker.Bool() {
				salesStr = fmt.Sprintf("(%.2f)", -sales)
			}

			var promotionID string
			if s.faker.Int(1, 100) <= 20 {
				promotionID = fmt.Sprintf("PROMO%03d", s.faker.Int(1, numPromotions))
				if s.dirty() {
					promotionID = fmt.Sprintf("PROMO%03d", numPromotions+s.faker.Int(1, 20))
				}
			}
			sku := s.faker.Pick(skus)
			if s.dirty() {
				sku = ""
			}

			rows = append(rows, []any{
				fmt.Sprintf("L%09d", seq),
				txnID,
				sku,
				s.faker.Pick(storeIDs),
				fmt.Sprintf("%d", qty),
				fmt.Sprintf("%.2f", price),
				fmt.Sprintf("%.2f", discount),
				salesStr,
				promotionID,
				s.lastUpdated(),
				batchID, sourceFile,
			})
		}
	}
	return rawBatch{rawLinesTable, rows}
}
