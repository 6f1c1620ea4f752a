package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/sw965/mab/chart"
	"github.com/sw965/mab/thompson"
)

const OUTPUT_PATH = ".output"

func main() {
	rng := rand.New(rand.NewPCG(666, 0))
	trueProbs := []float64{0.25, 0.18, 0.13, 0.22, 0.02}
	nTrials := 2000

	result, err := thompson.SimulateBernoulli(trueProbs, nTrials, rng)
	if err != nil {
		panic(err)
	}

	err = os.MkdirAll(OUTPUT_PATH, 0o755)
	if err != nil {
		panic(err)
	}

	saves := []struct {
		fileName string
		f        func(*thompson.Result, string) error
	}{
		{"cumulative_regret.png", chart.SaveCumulativeRegret},
		{"selection_proportions.png", chart.SaveSelectionProportions},
		{"posterior_distributions.png", chart.SavePosteriorDistributions},
	}

	for _, s := range saves {
		path := filepath.Join(OUTPUT_PATH, s.fileName)
		err := s.f(result, path)
		if err != nil {
			panic(err)
		}
		fmt.Println("saved:", path)
	}

	counts := result.SelectionCounts()
	means := result.PosteriorMeans()
	for i, p := range result.TrueProbs {
		fmt.Printf("arm %d: true=%.2f selected=%d posteriorMean=%.4f\n", i, p, counts[i], means[i])
	}
	fmt.Printf("final cumulative regret: ts=%.2f static=%.2f\n",
		result.CumulativeRegret[nTrials-1], result.StaticCumulativeRegret[nTrials-1])
}
