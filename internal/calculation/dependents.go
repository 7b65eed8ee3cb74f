package calculation

import (
	"github.com/DavidGslade86/VCFEstimator/internal/domain"
)

const (
	// DependentAgeCutoff is the age at which a dependent stops counting
	DependentAgeCutoff = 23
	// MaxCountedDependents caps the count used for consumption column selection
	MaxCountedDependents = 2
)

// CountDependents returns how many dependents are still under the cutoff age
// offset years from now, capped at MaxCountedDependents.
func CountDependents(dependents []domain.Dependent, offset int) int {
	count := 0
	for _, d := range dependents {
		if d.IsNone() {
			continue
		}
		if *d.Age+offset < DependentAgeCutoff {
			count++
		}
	}
	if count > MaxCountedDependents {
		return MaxCountedDependents
	}
	return count
}
