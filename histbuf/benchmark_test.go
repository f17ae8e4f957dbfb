package histbuf

import (
	"fmt"
	"testing"
)

// BenchmarkWrite benchmarks single writes across buffer sizes.
func BenchmarkWrite(b *testing.B) {
	for _, capacity := range []int{8, 100, 1000} {
		b.Run(fmt.Sprintf("Capacity_%d", capacity), func(b *testing.B) {
			buf, err := New[int](capacity)
			if err != nil {
				b.Fatal(err)
			}
			defer buf.Close()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = buf.Write(i)
			}
		})
	}
}

// BenchmarkWriteWithFinalizer measures the overhead of the finalizer hook.
func BenchmarkWriteWithFinalizer(b *testing.B) {
	var sink int

	buf, err := New[int](100, WithFinalizer[int](func(v int) {
		sink += v
	}))
	if err != nil {
		b.Fatal(err)
	}
	defer buf.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = buf.Write(i)
	}
	_ = sink
}

// BenchmarkExtendFromSlice benchmarks bulk writes of varying batch sizes.
func BenchmarkExtendFromSlice(b *testing.B) {
	for _, batchSize := range []int{1, 10, 100, 1000} {
		b.Run(fmt.Sprintf("BatchSize_%d", batchSize), func(b *testing.B) {
			buf, err := New[int](100)
			if err != nil {
				b.Fatal(err)
			}
			defer buf.Close()

			batch := make([]int, batchSize)
			for i := range batch {
				batch[i] = i
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = buf.ExtendFromSlice(batch)
			}
		})
	}
}

// BenchmarkRecent benchmarks most-recent access on a full buffer.
func BenchmarkRecent(b *testing.B) {
	buf, err := New[int](100)
	if err != nil {
		b.Fatal(err)
	}
	defer buf.Close()

	for i := 0; i < 100; i++ {
		_ = buf.Write(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = buf.Recent()
	}
}

// BenchmarkSlice benchmarks snapshot cost across fill levels.
func BenchmarkSlice(b *testing.B) {
	for _, fill := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("Fill_%d", fill), func(b *testing.B) {
			buf, err := New[int](1000)
			if err != nil {
				b.Fatal(err)
			}
			defer buf.Close()

			for i := 0; i < fill; i++ {
				_ = buf.Write(i)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = buf.Slice()
			}
		})
	}
}
