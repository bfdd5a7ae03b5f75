package sensor

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/ecs"
)

// FindClosest returns the candidate nearest to ref by squared distance,
// skipping ref's own entity, anything in exclude, and static scenery unless
// includeStatic is set. Ties go to the earlier candidate.
func FindClosest(ref ecs.Entity, refPos mgl64.Vec3, candidates []Candidate, exclude []ecs.Entity, includeStatic bool) (Candidate, bool) {
	var (
		best     Candidate
		bestDist float64
		found    bool
	)
	for _, c := range candidates {
		if c.Entity == ref || contains(exclude, c.Entity) {
			continue
		}
		if c.Static && !includeStatic {
			continue
		}
		d := c.Position.Sub(refPos).LenSqr()
		if !found || d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, found
}

func contains(list []ecs.Entity, e ecs.Entity) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}
