package coverage

const (
	innerRadius = 24
	outerRadius = 128
	innerR2     = int64(innerRadius * innerRadius)
	outerR2     = int64(outerRadius * outerRadius)

	monXMinOff = -29
	monXMaxOff = 28
	monZMinOff = -29
	monZMaxOff = 28
	monYMin    = 39
	monYMax    = 61

	// fixedAFKY is the height empirically found to maximize coverage; the
	// optimizer never searches Y, matching §4.8's "fixed Y" note.
	fixedAFKY = 50
)

// monumentBox is a monument's fixed 58x58 spawnable footprint in block
// coordinates (inclusive bounds), centered on its monument's center.
type monumentBox struct {
	x0, x1 int32
	z0, z1 int32
}

func boxesFor(centers []Center) []monumentBox {
	boxes := make([]monumentBox, len(centers))
	for i, c := range centers {
		boxes[i] = monumentBox{
			x0: c.X + monXMinOff,
			x1: c.X + monXMaxOff,
			z0: c.Z + monZMinOff,
			z1: c.Z + monZMaxOff,
		}
	}
	return boxes
}

// Center is a monument's horizontal center, the only coordinate the
// coverage model needs (Y is fixed at the monument's known build height).
type Center struct {
	X, Z int32
}

// score holds the total covered-block count plus a per-monument breakdown,
// in the same order as the Center slice the boxes were built from.
type score struct {
	total  int64
	perMon []int64
}

// scoreAt counts, for every monument box, how many of its spawnable blocks
// (every Y in [monYMin, monYMax] over its 58x58 columns) lie in the mob-spawn
// annulus around (x, fixedAFKY, z). requireOutside24 enforces the inner
// radius exclusion; disabling it scores the outer sphere alone.
func scoreAt(boxes []monumentBox, x, z int32, requireOutside24 bool) score {
	s := score{perMon: make([]int64, len(boxes))}

	for i, b := range boxes {
		var count int64
		for bx := b.x0; bx <= b.x1; bx++ {
			dx := int64(bx - x)
			dx2 := dx * dx
			if dx2 > outerR2 {
				continue
			}
			for bz := b.z0; bz <= b.z1; bz++ {
				dz := int64(bz - z)
				d2h := dx2 + dz*dz
				if d2h > outerR2 {
					continue
				}

				upper := outerR2 - d2h
				maxAbsDy := isqrtFloor(upper)

				var minAbsDy int64
				if requireOutside24 {
					lower := innerR2 - d2h
					if lower > 0 {
						root := isqrtFloor(lower)
						if root*root == lower {
							minAbsDy = root
						} else {
							minAbsDy = root + 1
						}
					}
				}

				count += countYInAnnulus(fixedAFKY, minAbsDy, maxAbsDy)
			}
		}
		s.perMon[i] = count
		s.total += count
	}
	return s
}

// countYInAnnulus counts integers by in [monYMin, monYMax] with
// minAbsDy <= |by-y| <= maxAbsDy, via two interval-intersection counts
// rather than a per-block loop over the 23 candidate Y values.
func countYInAnnulus(y, minAbsDy, maxAbsDy int64) int64 {
	if maxAbsDy < 0 {
		return 0
	}
	if minAbsDy < 0 {
		minAbsDy = 0
	}
	if minAbsDy > maxAbsDy {
		return 0
	}

	outerCount := intersectCount(y-maxAbsDy, y+maxAbsDy, monYMin, monYMax)
	if outerCount == 0 {
		return 0
	}
	if minAbsDy == 0 {
		return outerCount
	}

	holeR := minAbsDy - 1
	holeCount := intersectCount(y-holeR, y+holeR, monYMin, monYMax)

	res := outerCount - holeCount
	if res < 0 {
		return 0
	}
	return res
}

// intersectCount returns the size of the inclusive intersection of
// [a0,a1] and [b0,b1].
func intersectCount(a0, a1, b0, b1 int64) int64 {
	lo := max(a0, b0)
	hi := min(a1, b1)
	if hi < lo {
		return 0
	}
	return hi - lo + 1
}
