package response_test

import (
	"fmt"

	"github.com/cwbudde/algo-xspec/response"
)

func ExampleMatrix_Apply() {
	// Two true-energy bins redistributing into three channels.
	m, _ := response.NewMatrix(3,
		[]int{0, 1},
		[][]float64{
			{0.5, 0.5},
			{0.25, 0.75},
		})
	out, _ := m.Apply([]float64{10, 4})
	fmt.Println(out)

	// Output:
	// [5 6 3]
}

func ExampleEffectiveArea_Resample() {
	arf, _ := response.NewEffectiveArea(
		[]float64{0, 1},
		[]float64{1, 2},
		[]float64{10, 30},
	)
	area, uncovered, _ := arf.Resample([]float64{0.5, 5}, []float64{1.5, 6})
	fmt.Println(area, uncovered)

	// Output:
	// [20 0] 1
}
