package consolidation

import "math"

type bundleResult struct {
	members []int // candidate positions, in insertion order
	eval    evaluation
}

// buildBundle. greedy seed-and-expand over the vehicle's candidates, keep the best seed's bundle.
// nil when no seed fits the available capacity.
func buildBundle(cfg Config, vv *vehicleView) *bundleResult {
	numSeeds := len(vv.candidates)
	if numSeeds > cfg.MaxSeeds {
		numSeeds = cfg.MaxSeeds
	}

	var best *bundleResult
	for seed := 0; seed < numSeeds; seed++ {
		res := growFromSeed(cfg, vv, seed)
		if res == nil {
			continue
		}
		if best == nil || res.eval.score > best.eval.score {
			best = res
		}
	}
	return best
}

// growFromSeed. add the candidate with the best boosted score while it beats the running best by
// more than ImprovementThreshold, up to MaxBundleSize.
func growFromSeed(cfg Config, vv *vehicleView, seed int) *bundleResult {
	seedWeight := vv.candidates[seed].delivery.Weight
	if seedWeight > vv.available {
		return nil
	}

	members := []int{seed}
	inBundle := make([]bool, len(vv.candidates))
	inBundle[seed] = true
	weight := seedWeight

	current := evaluate(cfg, vv, members)
	runningBest := current.score

	for len(members) < cfg.MaxBundleSize {
		bestCand, bestBoosted := -1, math.Inf(-1)
		var bestEval evaluation

		for c := range vv.candidates {
			if inBundle[c] {
				continue
			}
			if weight+vv.candidates[c].delivery.Weight > vv.available {
				continue
			}
			trial := append(append(make([]int, 0, len(members)+1), members...), c)
			ev := evaluate(cfg, vv, trial)
			bonus := math.Min(cfg.SavingsBonusCap, vv.savings.meanSavingsTo(c, members)/cfg.SavingsBonusDivisor)
			boosted := ev.score + bonus
			if boosted > bestBoosted {
				bestCand, bestBoosted, bestEval = c, boosted, ev
			}
		}

		if bestCand < 0 || bestBoosted <= runningBest+cfg.ImprovementThreshold {
			break
		}

		members = append(members, bestCand)
		inBundle[bestCand] = true
		weight += vv.candidates[bestCand].delivery.Weight
		current = bestEval
		runningBest = bestBoosted
	}

	return &bundleResult{members: members, eval: current}
}
