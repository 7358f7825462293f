package fonts

import "sort"

// UnknownBucket is the reserved font name under which unresolved runs are
// aggregated, so decks relying entirely on inherited defaults still show
// up in the report. It is never matched against the inventory.
const UnknownBucket = "(unknown)"

// SlideUsage records what one font does on one slide: whether any of its
// runs carried visible (non-whitespace) text, and the point sizes observed
// on visible runs. Sizes from whitespace-only runs are excluded.
type SlideUsage struct {
	Visible bool
	Sizes   map[float64]struct{}
}

// UsageRecord maps slide numbers to that slide's usage of one font.
type UsageRecord struct {
	Slides map[int]*SlideUsage
}

// SlideNumbers returns the slides using this font in ascending order.
func (r *UsageRecord) SlideNumbers() []int {
	nums := make([]int, 0, len(r.Slides))
	for n := range r.Slides {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// AnyVisible reports whether the font is visible on at least one slide.
func (r *UsageRecord) AnyVisible() bool {
	for _, su := range r.Slides {
		if su.Visible {
			return true
		}
	}
	return false
}

// AllSizes returns the union of visible point sizes across all slides,
// ascending.
func (r *UsageRecord) AllSizes() []float64 {
	seen := map[float64]struct{}{}
	for _, su := range r.Slides {
		for s := range su.Sizes {
			seen[s] = struct{}{}
		}
	}
	sizes := make([]float64, 0, len(seen))
	for s := range seen {
		sizes = append(sizes, s)
	}
	sort.Float64s(sizes)
	return sizes
}

// Usage maps each distinct resolved font name to its per-slide record.
type Usage map[string]*UsageRecord

// Observation is one resolved run attributed to a slide.
type Observation struct {
	Slide int
	Font  Resolved
}

// Add folds one observation into the usage map. Visibility is
// OR-combined; sizes are unioned only from visible observations. The fold
// is commutative and associative, so processing order never changes the
// result.
func (u Usage) Add(slide int, f Resolved) {
	name := UnknownBucket
	if f.Known {
		name = f.Name
	}
	rec := u[name]
	if rec == nil {
		rec = &UsageRecord{Slides: map[int]*SlideUsage{}}
		u[name] = rec
	}
	su := rec.Slides[slide]
	if su == nil {
		su = &SlideUsage{Sizes: map[float64]struct{}{}}
		rec.Slides[slide] = su
	}
	su.Visible = su.Visible || f.Visible
	if f.Visible && f.HasSize {
		su.Sizes[f.SizePts] = struct{}{}
	}
}

// Merge folds another usage map into this one. Merging partial aggregates
// produced from any partition of the observations equals aggregating the
// whole sequence at once.
func (u Usage) Merge(other Usage) {
	for name, rec := range other {
		for slide, su := range rec.Slides {
			u.Add(slide, Resolved{Name: name, Known: name != UnknownBucket, Visible: su.Visible})
			for size := range su.Sizes {
				u.Add(slide, Resolved{
					Name:    name,
					Known:   name != UnknownBucket,
					Visible: true,
					SizePts: size,
					HasSize: true,
				})
			}
		}
	}
}

// Aggregate folds a sequence of observations into a fresh usage map.
func Aggregate(obs []Observation) Usage {
	u := Usage{}
	for _, o := range obs {
		u.Add(o.Slide, o.Font)
	}
	return u
}

// Names returns the aggregated font names sorted, with the unknown bucket
// always last.
func (u Usage) Names() []string {
	names := make([]string, 0, len(u))
	for name := range u {
		if name != UnknownBucket {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := u[UnknownBucket]; ok {
		names = append(names, UnknownBucket)
	}
	return names
}
