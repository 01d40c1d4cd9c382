package fit_test

import (
	"fmt"

	"github.com/cwbudde/algo-xspec/fit"
	"github.com/cwbudde/algo-xspec/internal/testutil"
	"github.com/cwbudde/algo-xspec/model"
)

// Example fits a power law to a spectrum simulated from known parameters.
func Example() {
	truth, _ := model.NewPowerLaw(3e-3, 2.0, 1000)
	binLo, binHi := testutil.UniformGrid(0.2, 10, 8000)
	sp, _ := fit.Simulate(truth, binLo, binHi, 1, 42)

	m, _ := model.NewPowerLaw(0.3, 2.5, 1000)
	res, err := fit.Run(m, sp)
	if err != nil {
		fmt.Println("fit failed:", err)
		return
	}
	fmt.Printf("converged=%v improved=%v\n", res.Converged, res.Stat < res.InitialStat)

	// Output:
	// converged=true improved=true
}
