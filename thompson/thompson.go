// Package thompson provides a sequential Thompson Sampling simulator for the
// Bernoulli multi-armed bandit, with a uniform-random static baseline for
// regret comparison.
//
// Package thompson は ベルヌーイ多腕バンディットに対する Thompson Sampling の
// 逐次シミュレーターを提供します。リグレット比較用に一様ランダムな
// 静的ベースラインも計算します。
package thompson

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/sw965/omw/mathx/randx"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Result は1回のシミュレーションの出力。
// 返却後、シミュレーターは一切の状態を保持しない。
type Result struct {
	Choices                []int
	Rewards                []int
	CumulativeRegret       []float64
	StaticCumulativeRegret []float64
	Alphas                 []float64
	Betas                  []float64
	TrueProbs              []float64
}

func (r *Result) SelectionCounts() []int {
	counts := make([]int, len(r.TrueProbs))
	for _, c := range r.Choices {
		counts[c] += 1
	}
	return counts
}

func (r *Result) SelectionProportions() []float64 {
	n := len(r.Choices)
	counts := r.SelectionCounts()
	ps := make([]float64, len(counts))
	for i, c := range counts {
		ps[i] = float64(c) / float64(n)
	}
	return ps
}

func (r *Result) PosteriorMeans() []float64 {
	ms := make([]float64, len(r.Alphas))
	for i := range ms {
		ms[i] = r.Alphas[i] / (r.Alphas[i] + r.Betas[i])
	}
	return ms
}

func validateArgs(trueProbs []float64, nTrials int) error {
	if len(trueProbs) == 0 {
		return fmt.Errorf("trueProbsが空であるため、シミュレーション出来ません。")
	}

	for i, p := range trueProbs {
		if p < 0.0 || p > 1.0 || math.IsNaN(p) {
			return fmt.Errorf("trueProbs[%d]が不正(0.0 <= p <= 1.0 でなければならない): p=%.6g", i, p)
		}
	}

	if nTrials <= 0 {
		return fmt.Errorf("nTrialsが不正(<=0): nTrials=%d", nTrials)
	}
	return nil
}

// SimulateBernoulli simulates Thompson Sampling for a Bernoulli bandit.
// Each arm starts from a uniform Beta(1, 1) prior. Per trial, one Beta sample
// is drawn per arm in arm order, the first arm attaining the maximum sample
// is pulled, one Bernoulli reward is drawn against the arm's true
// probability, and that arm's posterior is updated. The static baseline
// consumes one uniform index draw per trial from the same rng, strictly
// after the adaptive loop. Identical arguments and an identically seeded rng
// give identical results.
//
// SimulateBernoulli は ベルヌーイバンディットに対する Thompson Sampling を
// シミュレートします。乱数は全て渡されたrngから固定の順序で消費されるため、
// 同じシードなら結果は完全に再現されます。
func SimulateBernoulli(trueProbs []float64, nTrials int, rng *rand.Rand) (*Result, error) {
	if err := validateArgs(trueProbs, nTrials); err != nil {
		return nil, err
	}

	nArms := len(trueProbs)
	alphas := make([]float64, nArms)
	betas := make([]float64, nArms)
	for i := 0; i < nArms; i++ {
		alphas[i] = 1.0
		betas[i] = 1.0
	}

	choices := make([]int, nTrials)
	rewards := make([]int, nTrials)
	realizedRegret := make([]float64, nTrials)
	bestProb := floats.Max(trueProbs)

	for t := 0; t < nTrials; t++ {
		chosen := 0
		maxSampled := -1.0
		for i := 0; i < nArms; i++ {
			sampled := distuv.Beta{Alpha: alphas[i], Beta: betas[i], Src: rng}.Rand()
			// 同値の場合は先頭の腕を維持する
			if sampled > maxSampled {
				maxSampled = sampled
				chosen = i
			}
		}
		choices[t] = chosen

		reward := distuv.Bernoulli{P: trueProbs[chosen], Src: rng}.Rand()
		if reward == 1.0 {
			rewards[t] = 1
			alphas[chosen] += 1.0
		} else {
			betas[chosen] += 1.0
		}

		realizedRegret[t] = bestProb - trueProbs[chosen]
	}

	cumRegret := floats.CumSum(make([]float64, nTrials), realizedRegret)

	// 静的ベースラインは適応ループの後に同じrngから乱数を消費する。
	// ベースラインは報酬を観測せず、事後分布も更新しない。
	armIdxs := make([]int, nArms)
	for i := range armIdxs {
		armIdxs[i] = i
	}

	staticRealized := make([]float64, nTrials)
	for t := 0; t < nTrials; t++ {
		arm, err := randx.Choice(armIdxs, rng)
		if err != nil {
			return nil, err
		}
		staticRealized[t] = bestProb - trueProbs[arm]
	}
	staticCumRegret := floats.CumSum(make([]float64, nTrials), staticRealized)

	return &Result{
		Choices:                choices,
		Rewards:                rewards,
		CumulativeRegret:       cumRegret,
		StaticCumulativeRegret: staticCumRegret,
		Alphas:                 alphas,
		Betas:                  betas,
		TrueProbs:              slices.Clone(trueProbs),
	}, nil
}
