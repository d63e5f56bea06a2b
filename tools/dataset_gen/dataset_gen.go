// dataset_gen.go generates deterministic byte-string corpora for
// standalone benchmarking of strpool (outside `go test`). It emits
// newline-separated strings which external load-testers can read back in
// for repeatable performance regression hunting (bench/ builds its own key
// set in memory and does not read this output).
//
// Usage:
//
//	go run ./tools/dataset_gen -n 1000000 -dist=zipf -seed=42 -out strings.txt
//
// Flags:
//
//	-n        number of strings to generate (default 1e6)
//	-dist     distribution over which of a fixed pool of distinct strings
//	          each line draws from: "uniform" or "zipf" (default uniform)
//	-distinct number of distinct strings in the underlying pool (default 10000)
//	-minlen   minimum string length (default 4)
//	-maxlen   maximum string length (default 64)
//	-zipfs    Zipf s parameter (>1)  (default 1.2)
//	-zipfv    Zipf v parameter (>=1) (default 1.0)
//	-seed     RNG seed (default current time)
//	-out      output file (default stdout)
//
// The program is placed under version control so any contributor can
// regenerate the exact dataset used in a past benchmark run.
//
// © 2025 strpool authors. MIT License.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-"

func randomString(rnd *rand.Rand, minLen, maxLen int) string {
	n := minLen
	if maxLen > minLen {
		n += rnd.Intn(maxLen - minLen + 1)
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rnd.Intn(len(alphabet))]
	}
	return string(b)
}

func main() {
	var (
		n        = flag.Int("n", 1_000_000, "number of strings to generate")
		dist     = flag.String("dist", "uniform", "distribution: uniform or zipf")
		distinct = flag.Int("distinct", 10_000, "number of distinct strings in the underlying pool")
		minLen   = flag.Int("minlen", 4, "minimum string length")
		maxLen   = flag.Int("maxlen", 64, "maximum string length")
		zipfS    = flag.Float64("zipfs", 1.2, "zipf s parameter (>1)")
		zipfV    = flag.Float64("zipfv", 1.0, "zipf v parameter (>=1)")
		seedVal  = flag.Int64("seed", time.Now().UnixNano(), "PRNG seed")
		outPath  = flag.String("out", "", "output file (default stdout)")
	)
	flag.Parse()

	if *distinct <= 0 {
		fmt.Fprintln(os.Stderr, "distinct must be > 0")
		os.Exit(1)
	}

	rnd := rand.New(rand.NewSource(*seedVal))

	pool := make([]string, *distinct)
	for i := range pool {
		pool[i] = randomString(rnd, *minLen, *maxLen)
	}

	var pick func() string
	switch *dist {
	case "uniform":
		pick = func() string { return pool[rnd.Intn(len(pool))] }
	case "zipf":
		if *zipfS <= 1.0 || *zipfV < 1 {
			fmt.Fprintln(os.Stderr, "zipfs must be >1 and zipfv >=1")
			os.Exit(1)
		}
		z := rand.NewZipf(rnd, *zipfS, *zipfV, uint64(len(pool)-1))
		pick = func() string { return pool[z.Uint64()] }
	default:
		fmt.Fprintln(os.Stderr, "unknown dist:", *dist)
		os.Exit(1)
	}

	var out *os.File
	var err error
	if *outPath == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(*outPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot create file:", err)
			os.Exit(1)
		}
		defer out.Close()
	}

	w := bufio.NewWriterSize(out, 1<<20)
	defer w.Flush()

	for i := 0; i < *n; i++ {
		fmt.Fprintln(w, pick())
	}
}
