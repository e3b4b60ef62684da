// Package entropy computes Shannon entropy of byte data, in bits per byte.
// Values range from 0 (constant data) to 8 (uniformly random data). High
// values usually mean packed, compressed, or encrypted content.
package entropy

import (
	"io"
	"math"
	"os"
)

// Shannon returns the entropy of buf. An empty buffer yields 0. Callers
// commonly pass a size-bounded prefix; the result is whatever the given
// bytes say, no whole-file assumption.
func Shannon(buf []byte) float64 {
	if len(buf) == 0 {
		return 0
	}
	var freq [256]int
	for _, b := range buf {
		freq[b]++
	}
	return fromCounts(freq[:], len(buf))
}

// Reader folds the same frequency tally over r so large inputs never need to
// be held in memory.
func Reader(r io.Reader) (float64, error) {
	var freq [256]int
	var total int
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			freq[b]++
		}
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	if total == 0 {
		return 0, nil
	}
	return fromCounts(freq[:], total), nil
}

// File streams the named file through Reader.
func File(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return Reader(f)
}

func fromCounts(freq []int, total int) float64 {
	var e float64
	n := float64(total)
	for _, c := range freq {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		e -= p * math.Log2(p)
	}
	return e
}
