//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package pipeline

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/metroretail/metro-pipeline/internal/config"
	"github.com/metroretail/metro-pipeline/internal/db"
	"github.com/metroretail/metro-pipeline/internal/gold"
	"github.com/metroretail/metro-pipeline/internal/logging"
	"github.com/metroretail/metro-pipeline/internal/report"
	"github.com/metroretail/metro-pipeline/internal/silver"
	"github.com/metroretail/metro-pipeline/internal/staging"
	"github.com/metroretail/metro-pipeline/internal/warehouse"
)

// Runner executes one end-to-end pipeline run against the warehouse.
type Runner struct {
	pool *pgxpool.Pool
	cfg  *config.Config
}

func NewRunner(pool *pgxpool.Pool, cfg *config.Config) *Runner {
	return &Runner{pool: pool, cfg: cfg}
}

// Run executes Raw through Gold and returns the run report. A failed
// stage aborts the stages that depend on it.
func (r *Runner) Run(ctx context.Context) (*report.RunReport, error) {
	return r.RunStages(ctx, AllStages)
}

// RunStages executes the selected layers in order and returns the run
// report. The caller is responsible for a valid layer-ordered subset;
// see ParseStages.
func (r *Runner) RunStages(ctx context.Context, stages []Stage) (*report.RunReport, error) {
	rc := NewRunContext()

	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = string(s)
	}

	logging.Info().
		Str("run_id", rc.RunID).
		Strs("stages", names).
		Str("fk_policy", r.cfg.Pipeline.FKPolicy).
		Str("strategy", r.cfg.Pipeline.Strategy).
		Msg("Starting pipeline run")

	if err := warehouse.CreateSchemas(ctx, r.pool); err != nil {
		return nil, err
	}
	if err := db.EnsureManifest(ctx, r.pool); err != nil {
		return nil, err
	}

	for _, stage := range stages {
		var err error
		switch stage {
		case StageStaging:
			err = r.runStaging(ctx, rc)
		case StageSilver:
			err = r.runSilver(ctx, rc)
		case StageGold:
			err = r.runGold(ctx, rc)
		default:
			err = fmt.Errorf("unknown stage: %s", stage)
		}
		if err != nil {
			return nil, err
		}
	}

	rep, err := report.Collect(ctx, r.pool, rc.RunID, rc.BatchID("PIPE", "run"), rc.StartedAt)
	if err != nil {
		return nil, err
	}
	rep.Log(r.cfg.Pipeline)
	return rep, nil
}

// requireUpstream aborts a load whose upstream tables have no rows. An
// empty or missing upstream is a structural failure of the feed, not a
// row-level quality problem, so the dependent load fails outright.
func requireUpstream(ctx context.Context, q warehouse.Querier, tables []string) error {
	for _, table := range tables {
		empty, err := warehouse.TableEmpty(ctx, q, table)
		if err != nil {
			return err
		}
		if empty {
			return fmt.Errorf("upstream table %s is empty", table)
		}
	}
	return nil
}

// tracked wraps one logical load with manifest bookkeeping. The load
// runs only when every upstream table has rows; a failed structural
// check is recorded in the manifest like any other load failure.
func (r *Runner) tracked(ctx context.Context, rc RunContext, source, entity, target string, load func(context.Context) (int64, error), upstream ...string) error {
	manifestID, err := db.StartLoad(ctx, r.pool, rc.BatchID(source, entity), source, entity, target)
	if err != nil {
		return err
	}

	var n int64
	if err = requireUpstream(ctx, r.pool, upstream); err == nil {
		n, err = load(ctx)
	}
	if err != nil {
		if ferr := db.FailLoad(ctx, r.pool, manifestID, err); ferr != nil {
			logging.Warn().Err(ferr).Str("entity", entity).Msg("Could not record load failure")
		}
		return fmt.Errorf("%s %s: %w", source, entity, err)
	}

	logging.Debug().
		Str("source", source).
		Str("entity", entity).
		Int64("rows", n).
		Msg("Load completed")
	return db.CompleteLoad(ctx, r.pool, manifestID, n)
}

// runStaging fans the eight staging transforms out concurrently. Each
// transform is independent: read raw rows, coerce and flag, rewrite
// the staged table in full.
func (r *Runner) runStaging(ctx context.Context, rc RunContext) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.tracked(ctx, rc, "STAGING", "transactions_header", "staging.transactions_header",
			func(ctx context.Context) (int64, error) {
				raws, err := staging.FetchRawHeaders(ctx, r.pool)
				if err != nil {
					return 0, err
				}
				return staging.StoreHeaders(ctx, r.pool, staging.NormalizeHeaders(raws))
			},
			"raw.pos_transactions_header")
	})
	g.Go(func() error {
		return r.tracked(ctx, rc, "STAGING", "transactions_lines", "staging.transactions_lines",
			func(ctx context.Context) (int64, error) {
				raws, err := staging.FetchRawLines(ctx, r.pool)
				if err != nil {
					return 0, err
				}
				return staging.StoreLines(ctx, r.pool, staging.NormalizeLines(raws, r.cfg.Pipeline.OutlierQuantity))
			},
			"raw.pos_transactions_lines")
	})
	g.Go(func() error {
		return r.tracked(ctx, rc, "STAGING", "products", "staging.products",
			func(ctx context.Context) (int64, error) {
				raws, err := staging.FetchRawProducts(ctx, r.pool)
				if err != nil {
					return 0, err
				}
				return staging.StoreProducts(ctx, r.pool, staging.NormalizeProducts(raws))
			},
			"raw.erp_products")
	})
	g.Go(func() error {
		return r.tracked(ctx, rc, "STAGING", "stores", "staging.stores",
			func(ctx context.Context) (int64, error) {
				raws, err := staging.FetchRawStores(ctx, r.pool)
				if err != nil {
					return 0, err
				}
				return staging.StoreStores(ctx, r.pool, staging.NormalizeStores(raws))
			},
			"raw.erp_stores")
	})
	g.Go(func() error {
		return r.tracked(ctx, rc, "STAGING", "inventory", "staging.inventory",
			func(ctx context.Context) (int64, error) {
				raws, err := staging.FetchRawInventory(ctx, r.pool)
				if err != nil {
					return 0, err
				}
				return staging.StoreInventory(ctx, r.pool, staging.NormalizeInventory(raws))
			},
			"raw.erp_inventory")
	})
	g.Go(func() error {
		return r.tracked(ctx, rc, "STAGING", "customers", "staging.customers",
			func(ctx context.Context) (int64, error) {
				raws, err := staging.FetchRawCustomers(ctx, r.pool)
				if err != nil {
					return 0, err
				}
				return staging.StoreCustomers(ctx, r.pool, staging.NormalizeCustomers(raws))
			},
			"raw.crm_customers")
	})
	g.Go(func() error {
		return r.tracked(ctx, rc, "STAGING", "promotions", "staging.promotions",
			func(ctx context.Context) (int64, error) {
				raws, err := staging.FetchRawPromotions(ctx, r.pool)
				if err != nil {
					return 0, err
				}
				return staging.StorePromotions(ctx, r.pool, staging.NormalizePromotions(raws))
			},
			"raw.mkt_promotions")
	})
	g.Go(func() error {
		return r.tracked(ctx, rc, "STAGING", "weather", "staging.weather",
			func(ctx context.Context) (int64, error) {
				raws, err := staging.FetchRawWeather(ctx, r.pool)
				if err != nil {
					return 0, err
				}
				return staging.StoreWeather(ctx, r.pool, staging.NormalizeWeather(raws))
			},
			"raw.api_weather")
	})

	return g.Wait()
}

// runSilver conforms the entities in dependency order: dimensions
// first so downstream entities can validate their references against
// freshly conformed keys.
func (r *Runner) runSilver(ctx context.Context, rc RunContext) error {
	strategy := r.cfg.Pipeline.Strategy
	enforce := r.cfg.Pipeline.FKPolicy == config.FKEnforce

	err := r.tracked(ctx, rc, "SILVER", "stores", "silver.stores",
		func(ctx context.Context) (int64, error) {
			staged, err := staging.FetchValidStores(ctx, r.pool)
			if err != nil {
				return 0, err
			}
			return silver.StoreStores(ctx, r.pool, strategy, silver.ConformStores(staged))
		},
		"staging.stores")
	if err != nil {
		return err
	}

	err = r.tracked(ctx, rc, "SILVER", "products", "silver.products",
		func(ctx context.Context) (int64, error) {
			staged, err := staging.FetchValidProducts(ctx, r.pool)
			if err != nil {
				return 0, err
			}
			current, err := silver.FetchCurrentProducts(ctx, r.pool)
			if err != nil {
				return 0, err
			}
			delta := silver.AdvanceHistory(current, silver.ConformProducts(staged), rc.StartedAt)
			return silver.ApplySCD(ctx, r.pool, delta)
		},
		"staging.products")
	if err != nil {
		return err
	}

	err = r.tracked(ctx, rc, "SILVER", "customers", "silver.customers",
		func(ctx context.Context) (int64, error) {
			staged, err := staging.FetchValidCustomers(ctx, r.pool)
			if err != nil {
				return 0, err
			}
			return silver.StoreCustomers(ctx, r.pool, strategy, silver.ConformCustomers(staged))
		},
		"staging.customers")
	if err != nil {
		return err
	}

	err = r.tracked(ctx, rc, "SILVER", "promotions", "silver.promotions",
		func(ctx context.Context) (int64, error) {
			staged, err := staging.FetchValidPromotions(ctx, r.pool)
			if err != nil {
				return 0, err
			}
			return silver.StorePromotions(ctx, r.pool, strategy, silver.ConformPromotions(staged))
		},
		"staging.promotions")
	if err != nil {
		return err
	}

	storeRefs, err := silver.FetchStoreRefs(ctx, r.pool)
	if err != nil {
		return err
	}
	productRefs, err := silver.FetchProductRefs(ctx, r.pool)
	if err != nil {
		return err
	}
	customerRefs, err := silver.FetchCustomerRefs(ctx, r.pool)
	if err != nil {
		return err
	}
	promotionRefs, err := silver.FetchPromotionRefs(ctx, r.pool)
	if err != nil {
		return err
	}

	err = r.tracked(ctx, rc, "SILVER", "inventory", "silver.inventory",
		func(ctx context.Context) (int64, error) {
			staged, err := staging.FetchValidInventory(ctx, r.pool)
			if err != nil {
				return 0, err
			}
			recs := silver.ConformInventory(staged, productRefs, storeRefs, enforce)
			return silver.StoreInventory(ctx, r.pool, strategy, recs)
		},
		"staging.inventory")
	if err != nil {
		return err
	}

	err = r.tracked(ctx, rc, "SILVER", "weather", "silver.weather",
		func(ctx context.Context) (int64, error) {
			staged, err := staging.FetchValidWeather(ctx, r.pool)
			if err != nil {
				return 0, err
			}
			recs := silver.ConformWeather(staged, storeRefs, enforce)
			return silver.StoreWeather(ctx, r.pool, strategy, recs)
		},
		"staging.weather")
	if err != nil {
		return err
	}

	err = r.tracked(ctx, rc, "SILVER", "transactions_header", "silver.transactions_header",
		func(ctx context.Context) (int64, error) {
			staged, err := staging.FetchValidHeaders(ctx, r.pool)
			if err != nil {
				return 0, err
			}
			recs := silver.ConformHeaders(staged, storeRefs, customerRefs, enforce)
			return silver.StoreHeaders(ctx, r.pool, strategy, recs)
		},
		"staging.transactions_header")
	if err != nil {
		return err
	}

	headerRefs, err := silver.FetchHeaderRefs(ctx, r.pool)
	if err != nil {
		return err
	}

	return r.tracked(ctx, rc, "SILVER", "transactions_lines", "silver.transactions_lines",
		func(ctx context.Context) (int64, error) {
			staged, err := staging.FetchValidLines(ctx, r.pool)
			if err != nil {
				return 0, err
			}
			recs := silver.ConformLines(staged, headerRefs, productRefs, storeRefs, promotionRefs, enforce)
			return silver.StoreLines(ctx, r.pool, strategy, recs)
		},
		"staging.transactions_lines")
}

// runGold rebuilds the star schema from the conformed layer.
func (r *Runner) runGold(ctx context.Context, rc RunContext) error {
	strategy := r.cfg.Pipeline.Strategy

	err := r.tracked(ctx, rc, "GOLD", "dim_date", "gold.dim_date",
		func(ctx context.Context) (int64, error) {
			rows := gold.GenerateDateDim(r.cfg.Pipeline.DateDimStartYear,
				r.cfg.Pipeline.DateDimYearsAhead, rc.StartedAt)
			return gold.StoreDateDim(ctx, r.pool, rows)
		})
	if err != nil {
		return err
	}

	versions, err := gold.FetchProductVersions(ctx, r.pool)
	if err != nil {
		return err
	}

	err = r.tracked(ctx, rc, "GOLD", "dim_product", "gold.dim_product",
		func(ctx context.Context) (int64, error) {
			return gold.StoreProductDim(ctx, r.pool, strategy, gold.BuildProductDim(versions))
		},
		"silver.products")
	if err != nil {
		return err
	}

	err = r.tracked(ctx, rc, "GOLD", "dim_store", "gold.dim_store",
		func(ctx context.Context) (int64, error) {
			stores, err := gold.FetchConformedStores(ctx, r.pool)
			if err != nil {
				return 0, err
			}
			return gold.StoreStoreDim(ctx, r.pool, strategy, gold.BuildStoreDim(stores))
		},
		"silver.stores")
	if err != nil {
		return err
	}

	err = r.tracked(ctx, rc, "GOLD", "dim_customer", "gold.dim_customer",
		func(ctx context.Context) (int64, error) {
			customers, err := gold.FetchConformedCustomers(ctx, r.pool)
			if err != nil {
				return 0, err
			}
			return gold.StoreCustomerDim(ctx, r.pool, strategy, gold.BuildCustomerDim(customers))
		},
		"silver.customers")
	if err != nil {
		return err
	}

	promotions, err := gold.FetchConformedPromotions(ctx, r.pool)
	if err != nil {
		return err
	}

	err = r.tracked(ctx, rc, "GOLD", "dim_promotion", "gold.dim_promotion",
		func(ctx context.Context) (int64, error) {
			return gold.StorePromotionDim(ctx, r.pool, strategy, gold.BuildPromotionDim(promotions))
		},
		"silver.promotions")
	if err != nil {
		return err
	}

	err = r.tracked(ctx, rc, "GOLD", "bridge_promotion_product", "gold.bridge_promotion_product",
		func(ctx context.Context) (int64, error) {
			rows := gold.BuildBridge(promotions, gold.CurrentProductRefs(versions))
			return gold.StoreBridge(ctx, r.pool, strategy, rows)
		},
		"silver.promotions", "silver.products")
	if err != nil {
		return err
	}

	headers, err := gold.FetchConformedHeaders(ctx, r.pool)
	if err != nil {
		return err
	}
	lines, err := gold.FetchConformedLines(ctx, r.pool)
	if err != nil {
		return err
	}
	facts := gold.BuildSalesFacts(lines, gold.HeadersByID(headers), gold.CurrentCostBySKU(versions))

	err = r.tracked(ctx, rc, "GOLD", "fact_sales", "gold.fact_sales",
		func(ctx context.Context) (int64, error) {
			return gold.StoreSalesFacts(ctx, r.pool, strategy, facts)
		},
		"silver.transactions_lines", "silver.transactions_header")
	if err != nil {
		return err
	}

	err = r.tracked(ctx, rc, "GOLD", "fact_inventory", "gold.fact_inventory",
		func(ctx context.Context) (int64, error) {
			snapshots, err := gold.FetchConformedInventory(ctx, r.pool)
			if err != nil {
				return 0, err
			}
			return gold.StoreInventoryFacts(ctx, r.pool, strategy, gold.BuildInventoryFacts(snapshots))
		},
		"silver.inventory")
	if err != nil {
		return err
	}

	err = r.tracked(ctx, rc, "GOLD", "fact_store_weather", "gold.fact_store_weather",
		func(ctx context.Context) (int64, error) {
			observations, err := gold.FetchConformedWeather(ctx, r.pool)
			if err != nil {
				return 0, err
			}
			return gold.StoreWeatherFacts(ctx, r.pool, strategy, gold.BuildWeatherFacts(observations))
		},
		"silver.weather")
	if err != nil {
		return err
	}

	err = r.tracked(ctx, rc, "GOLD", "agg_daily_sales", "gold.agg_daily_sales",
		func(ctx context.Context) (int64, error) {
			rows := gold.BuildDailySales(facts, rc.BatchID("GOLD", "agg_daily_sales"))
			return gold.StoreDailySales(ctx, r.pool, strategy, rows)
		},
		"gold.fact_sales")
	if err != nil {
		return err
	}

	err = r.tracked(ctx, rc, "GOLD", "agg_monthly_sales", "gold.agg_monthly_sales",
		func(ctx context.Context) (int64, error) {
			rows := gold.BuildMonthlySales(facts, rc.BatchID("GOLD", "agg_monthly_sales"))
			return gold.StoreMonthlySales(ctx, r.pool, strategy, rows)
		},
		"gold.fact_sales")
	if err != nil {
		return err
	}

	return r.tracked(ctx, rc, "GOLD", "agg_product_performance", "gold.agg_product_performance",
		func(ctx context.Context) (int64, error) {
			rows := gold.BuildProductPerformance(facts,
				gold.CurrentCategoryBySKU(versions), rc.BatchID("GOLD", "agg_product_performance"))
			return gold.StoreProductPerformance(ctx, r.pool, strategy, rows)
		},
		"gold.fact_sales")
}
