// Package main provides a command-line utility to compare pooled buffer
// throughput against plain per-instance allocation. It is a diagnostic
// tool for tuning payload sizes against the default pool's size classes.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/scigolib/membuf"
)

func main() {
	// Define command-line flags
	size := flag.Int("size", 4096, "Payload size in bytes per buffer")
	iters := flag.Int("iters", 100000, "Number of rent/write/release cycles")
	writes := flag.Int("writes", 4, "Writes of the payload per cycle")
	flag.Parse()

	// Validate parameters
	if *size < 1 {
		log.Fatalf("Invalid size: %d", *size)
	}
	if *iters < 1 {
		log.Fatalf("Invalid iteration count: %d", *iters)
	}
	if *writes < 1 {
		log.Fatalf("Invalid writes per cycle: %d", *writes)
	}

	payload := make([]byte, *size)
	for i := range payload {
		payload[i] = byte(i)
	}

	fmt.Printf("membench: %d cycles, %d writes of %d bytes each\n\n", *iters, *writes, *size)

	pooled := runPooled(payload, *iters, *writes)
	report("pooled (membuf)", pooled, *iters, *writes, *size)

	plain := runPlain(payload, *iters, *writes)
	report("plain (make)", plain, *iters, *writes, *size)

	if plain > 0 {
		fmt.Printf("\nspeedup: %.2fx\n", float64(plain)/float64(pooled))
	}
}

func runPooled(payload []byte, iters, writes int) time.Duration {
	start := time.Now()
	for i := 0; i < iters; i++ {
		buf := membuf.New()
		for j := 0; j < writes; j++ {
			if _, err := buf.Write(payload); err != nil {
				log.Fatalf("pooled write failed: %v", err)
			}
		}
		buf.Release()
	}
	return time.Since(start)
}

func runPlain(payload []byte, iters, writes int) time.Duration {
	start := time.Now()
	for i := 0; i < iters; i++ {
		buf := make([]byte, 0, len(payload))
		for j := 0; j < writes; j++ {
			buf = append(buf, payload...)
		}
		_ = buf
	}
	return time.Since(start)
}

func report(label string, elapsed time.Duration, iters, writes, size int) {
	total := int64(iters) * int64(writes) * int64(size)
	mbps := float64(total) / elapsed.Seconds() / (1 << 20)
	fmt.Printf("%-16s %12v  %8.1f ns/cycle  %10.1f MB/s\n",
		label, elapsed, float64(elapsed.Nanoseconds())/float64(iters), mbps)
}
