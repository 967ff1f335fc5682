//-------------------------------------------------------------------------
//
// MetroRetail Warehouse Pipeline
//
// Copyright (c) 2025 - 2026, MetroRetail, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package silver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityWeightsSumTo100(t *testing.T) {
	cards := map[string][]WeightedFlag{
		"product":   productFlags(true, true, true, true, true, true, true),
		"store":     storeFlags(true, true, true, true, true, true),
		"customer":  customerFlags(true, true, true, true, true, true),
		"promotion": promotionFlags(true, true, true, true, true, true),
		"inventory": inventoryFlags(true, true, true, true, true),
		"weather":   weatherFlags(true, true, true, true, true),
		"header":    headerFlags(true, true, true, true, true, true),
		"line":      lineFlags(true, true, true, true, true, true, true),
	}

	for entity, flags := range cards {
		assert.Equal(t, 100, TotalWeight(flags), "%s weights must sum to 100", entity)
	}
}

func TestCompositeScoreBounds(t *testing.T) {
	assert.Equal(t, 100, CompositeScore(productFlags(true, true, true, true, true, true, true)))
	assert.Equal(t, 0, CompositeScore(productFlags(false, false, false, false, false, false, false)))
}

func TestCompositeScorePartial(t *testing.T) {
	// Missing supplier (10) and sub-category (10) on a product.
	flags := productFlags(true, true, true, false, true, true, false)
	assert.Equal(t, 80, CompositeScore(flags))

	// Header missing only the optional customer id (10).
	assert.Equal(t, 90, CompositeScore(headerFlags(true, true, false, true, true, true)))
}
