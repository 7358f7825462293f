package fonts

import (
	"math/rand"
	"reflect"
	"testing"
)

func obs(slide int, name string, visible bool, sizes ...float64) []Observation {
	if len(sizes) == 0 {
		return []Observation{{Slide: slide, Font: Resolved{Name: name, Known: name != UnknownBucket, Visible: visible}}}
	}
	var out []Observation
	for _, s := range sizes {
		out = append(out, Observation{Slide: slide, Font: Resolved{
			Name: name, Known: name != UnknownBucket, Visible: visible, SizePts: s, HasSize: true,
		}})
	}
	return out
}

func TestAggregate_VisibleAndWhitespaceRuns(t *testing.T) {
	// One visible 18pt Calibri run and one whitespace-only 10pt Calibri
	// run on the same slide: visible, sizes = {18}.
	seq := append(obs(3, "Calibri", true, 18), obs(3, "Calibri", false, 10)...)
	u := Aggregate(seq)

	rec := u["Calibri"]
	if rec == nil {
		t.Fatal("Calibri not aggregated")
	}
	su := rec.Slides[3]
	if su == nil || !su.Visible {
		t.Fatalf("slide 3 usage = %+v, want visible", su)
	}
	if got := rec.AllSizes(); !reflect.DeepEqual(got, []float64{18}) {
		t.Fatalf("sizes = %v, want [18]", got)
	}
}

func TestAggregate_UnknownBucket(t *testing.T) {
	u := Aggregate([]Observation{
		{Slide: 1, Font: Resolved{Visible: true}},
		{Slide: 2, Font: Resolved{Visible: false}},
	})
	rec := u[UnknownBucket]
	if rec == nil {
		t.Fatal("unknown runs were discarded")
	}
	if got := rec.SlideNumbers(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("slides = %v, want [1 2]", got)
	}
	if !rec.Slides[1].Visible || rec.Slides[2].Visible {
		t.Fatal("visibility not tracked per slide")
	}
}

func usageEqual(a, b Usage) bool {
	if len(a) != len(b) {
		return false
	}
	for name, ra := range a {
		rb := b[name]
		if rb == nil || len(ra.Slides) != len(rb.Slides) {
			return false
		}
		for n, sa := range ra.Slides {
			sb := rb.Slides[n]
			if sb == nil || sa.Visible != sb.Visible || !reflect.DeepEqual(sa.Sizes, sb.Sizes) {
				return false
			}
		}
	}
	return true
}

func sampleObservations() []Observation {
	var seq []Observation
	seq = append(seq, obs(1, "Arial", true, 12, 24)...)
	seq = append(seq, obs(1, "Arial", false, 8)...)
	seq = append(seq, obs(2, "Arial", true, 12)...)
	seq = append(seq, obs(2, "Cambria", true)...)
	seq = append(seq, obs(3, UnknownBucket, true)...)
	seq = append(seq, obs(3, "Cambria", false, 9)...)
	return seq
}

func TestAggregate_OrderIndependent(t *testing.T) {
	seq := sampleObservations()
	want := Aggregate(seq)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]Observation, len(seq))
		copy(shuffled, seq)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := Aggregate(shuffled); !usageEqual(got, want) {
			t.Fatalf("permutation %d changed the aggregate", i)
		}
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	seq := sampleObservations()
	once := Aggregate(seq)

	twice := Aggregate(seq)
	twice.Merge(Aggregate(seq))
	if !usageEqual(once, twice) {
		t.Fatal("aggregating twice and merging differs from aggregating once")
	}
}

func TestUsage_MergeEqualsWholeSequence(t *testing.T) {
	seq := sampleObservations()
	want := Aggregate(seq)

	// Partition the sequence, aggregate the parts, merge.
	left := Aggregate(seq[:len(seq)/2])
	right := Aggregate(seq[len(seq)/2:])
	left.Merge(right)
	if !usageEqual(left, want) {
		t.Fatal("merge of partial aggregates differs from whole-sequence aggregate")
	}
}

func TestUsage_NamesSortedUnknownLast(t *testing.T) {
	u := Aggregate(sampleObservations())
	got := u.Names()
	want := []string{"Arial", "Cambria", UnknownBucket}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}
