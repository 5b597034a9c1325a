package parallel

import "runtime"
import "strconv"
import "strings"

import "github.com/klauspost/cpuid/v2"

// Threads reports the default number of worker goroutines, based on the
// logical cores detected by cpuid.
func Threads() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Describe returns a one line description of the CPU the process runs on.
func Describe() string {
	var feats []string
	for _, f := range []struct {
		id   cpuid.FeatureID
		name string
	}{
		{cpuid.SSE4, "sse4"},
		{cpuid.AVX, "avx"},
		{cpuid.AVX2, "avx2"},
		{cpuid.FMA3, "fma3"},
		{cpuid.AVX512F, "avx512f"},
		{cpuid.ASIMD, "asimd"},
	} {
		if cpuid.CPU.Supports(f.id) {
			feats = append(feats, f.name)
		}
	}
	brand := cpuid.CPU.BrandName
	if brand == "" {
		brand = runtime.GOARCH
	}
	return brand + " threads=" + strconv.Itoa(Threads()) + " features=" + strings.Join(feats, ",")
}
