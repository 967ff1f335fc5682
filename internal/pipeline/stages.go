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
	"fmt"
	"strings"
)

// Stage names one pipeline layer.
type Stage string

const (
	StageStaging Stage = "staging"
	StageSilver  Stage = "silver"
	StageGold    Stage = "gold"
)

// AllStages is the full pipeline in layer order.
var AllStages = []Stage{StageStaging, StageSilver, StageGold}

var stageRank = map[Stage]int{
	StageStaging: 0,
	StageSilver:  1,
	StageGold:    2,
}

// ParseStages parses a comma-separated stage subset such as
// "staging,silver". Stage names must be known, appear at most once,
// and follow layer order; skipping a layer is allowed, the skipped
// layer keeps its tables from the previous run. An empty spec selects
// every stage.
func ParseStages(spec string) ([]Stage, error) {
	if strings.TrimSpace(spec) == "" {
		return AllStages, nil
	}

	var out []Stage
	last := -1
	for _, part := range strings.Split(spec, ",") {
		stage := Stage(strings.ToLower(strings.TrimSpace(part)))
		rank, ok := stageRank[stage]
		if !ok {
			return nil, fmt.Errorf("unknown stage %q (expected staging, silver or gold)", strings.TrimSpace(part))
		}
		if rank == last {
			return nil, fmt.Errorf("duplicate stage: %s", stage)
		}
		if rank < last {
			return nil, fmt.Errorf("stage %s must run before %s", stage, out[len(out)-1])
		}
		last = rank
		out = append(out, stage)
	}
	return out, nil
}
