package pool

import "testing"

func TestBucketIndex(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{"zero", 0, 0},
		{"exact 256B", Size256B, 0},
		{"just over 256B", Size256B + 1, 1},
		{"exact 1K", Size1K, 1},
		{"exact 4K", Size4K, 2},
		{"exact 16K", Size16K, 3},
		{"exact 64K", Size64K, 4},
		{"exact 256K", Size256K, 5},
		{"exact 1M", Size1M, 6},
		{"over 1M", Size1M + 1, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bucketIndex(tt.size); got != tt.want {
				t.Errorf("bucketIndex(%d) = %d, want %d", tt.size, got, tt.want)
			}
		})
	}
}

func TestGetFloat64_Length(t *testing.T) {
	for _, n := range []int{0, 1, 7, 32, 4096, 100000} {
		s := GetFloat64(n)
		if len(s) != n {
			t.Errorf("GetFloat64(%d): len = %d, want %d", n, len(s), n)
		}
		PutFloat64(s)
	}
}

func TestGetFloat64_Reuse(t *testing.T) {
	s := GetFloat64(64)
	for i := range s {
		s[i] = float64(i)
	}
	PutFloat64(s)

	s2 := GetFloat64(64)
	if len(s2) != 64 {
		t.Fatalf("len = %d, want 64", len(s2))
	}
}

func TestPutFloat64_SmallSliceIgnored(t *testing.T) {
	s := make([]float64, 1)
	PutFloat64(s) // must not panic; too small to bucket

	got := GetFloat64(1)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
}

func TestGetFloat64_Concurrency(t *testing.T) {
	const goroutines = 32
	const iterations = 100
	done := make(chan struct{})
	for g := 0; g < goroutines; g++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < iterations; i++ {
				size := 1 + (n+i)%8192
				s := GetFloat64(size)
				if len(s) != size {
					t.Errorf("GetFloat64(%d): len = %d", size, len(s))
				}
				PutFloat64(s)
			}
		}(g)
	}
	for g := 0; g < goroutines; g++ {
		<-done
	}
}

func BenchmarkGetFloat64(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := GetFloat64(4096)
		PutFloat64(s)
	}
}

func BenchmarkGetFloat64Parallel(b *testing.B) {
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			s := GetFloat64(4096)
			PutFloat64(s)
		}
	})
}
