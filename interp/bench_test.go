package interp_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/timbretag/interp"
	"github.com/katalvlaran/timbretag/patch"
	"github.com/katalvlaran/timbretag/rank"
)

func BenchmarkInterpolate_Temporal(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	vs := make([]patch.Vector, 256)
	for i := range vs {
		v := make(patch.Vector, patch.Width(patch.Temporal))
		for ch := range v {
			v[ch] = rng.Float64()
		}
		vs[i] = v
	}
	r, err := rank.Rank(vs)
	if err != nil {
		b.Fatal(err)
	}
	in := interp.NewTemporal()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := in.Interpolate(r, 3); err != nil {
			b.Fatal(err)
		}
	}
}
