package testing

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/ValentinKolb/ipfinder/lib/registry"
)

// RunRegistryBenchmarks runs all benchmarks for an IRegistry implementation
func RunRegistryBenchmarks(b *testing.B, name string, factory RegistryFactory) {
	b.Run(name, func(b *testing.B) {
		b.Run("Add", func(b *testing.B) {
			benchmarkAdd(b, factory())
		})

		b.Run("AddExisting", func(b *testing.B) {
			benchmarkAddExisting(b, factory())
		})

		b.Run("SearchHot", func(b *testing.B) {
			benchmarkSearchHot(b, factory())
		})

		b.Run("SearchUniform", func(b *testing.B) {
			benchmarkSearchUniform(b, factory())
		})

		b.Run("Delete", func(b *testing.B) {
			benchmarkDelete(b, factory())
		})

		b.Run("MixedUsage", func(b *testing.B) {
			benchmarkMixedUsage(b, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

func benchIP(i int) string {
	return fmt.Sprintf("10.%d.%d.%d", (i>>16)&0xff, (i>>8)&0xff, i&0xff)
}

func fill(b *testing.B, reg registry.IRegistry, n int) {
	b.Helper()
	packet := "PKT-1000"
	for i := 0; i < n; i++ {
		if _, err := reg.Add(benchIP(i), "", &packet); err != nil {
			b.Fatalf("Add failed: %v", err)
		}
	}
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

func benchmarkAdd(b *testing.B, reg registry.IRegistry) {
	packet := "PKT-1000"
	var counter atomic.Int64

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			reg.Add(benchIP(int(counter.Add(1))), "", &packet)
		}
	})
}

func benchmarkAddExisting(b *testing.B, reg registry.IRegistry) {
	const keys = 1000
	fill(b, reg, keys)
	packet := "PKT-2000"

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			reg.Add(benchIP(i%keys), "", &packet)
			i++
		}
	})
}

// a few devices are looked up over and over, which keeps them near the root
func benchmarkSearchHot(b *testing.B, reg registry.IRegistry) {
	const keys = 10_000
	fill(b, reg, keys)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			reg.Search(benchIP(i % 8))
			i++
		}
	})
}

func benchmarkSearchUniform(b *testing.B, reg registry.IRegistry) {
	const keys = 10_000
	fill(b, reg, keys)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(rand.Int63()))
		for pb.Next() {
			reg.Search(benchIP(r.Intn(keys)))
		}
	})
}

func benchmarkDelete(b *testing.B, reg registry.IRegistry) {
	fill(b, reg, b.N)
	var counter atomic.Int64

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			reg.Delete(benchIP(int(counter.Add(1) - 1)))
		}
	})
}

func benchmarkMixedUsage(b *testing.B, reg registry.IRegistry) {
	const keys = 5_000
	fill(b, reg, keys)
	packet := "PKT-3000"

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(rand.Int63()))
		for pb.Next() {
			ip := benchIP(r.Intn(keys))
			switch r.Intn(10) {
			case 0, 1, 2, 3, 4, 5:
				reg.Search(ip)
			case 6, 7:
				reg.Add(ip, "", &packet)
			case 8:
				reg.Delete(ip)
			case 9:
				reg.Update(ip, nil, &packet)
			}
		}
	})
}
