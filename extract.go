package ghost

import "golang.org/x/sync/errgroup"

// A candidate is a repeated pattern found by the extractor: its bytes, the
// exact number of occurrences in the buffer (overlapping occurrences all
// counted), and the offset of its first occurrence.
type candidate struct {
	pattern []byte
	count   int
	first   int
}

// extractRepeats counts every distinct subsequence of buf with length
// 1..maxLength and returns, per length, the ones occurring at least twice.
// Counting is exact; selection downstream compares net savings and cannot
// tolerate approximation. The per-length passes are independent of each other
// and run on a worker pool bounded by workers.
func extractRepeats(buf []byte, maxLength, workers int) [][]candidate {
	if maxLength > len(buf) {
		maxLength = len(buf)
	}
	perLength := make([][]candidate, maxLength)

	var g errgroup.Group
	g.SetLimit(workers)
	for length := 1; length <= maxLength; length++ {
		length := length
		g.Go(func() error {
			perLength[length-1] = countLength(buf, length)
			return nil
		})
	}
	g.Wait()

	return perLength
}

// countLength returns the patterns of exactly the given length that occur at
// least twice in buf. Singletons are discarded immediately; nothing is
// retained for them.
func countLength(buf []byte, length int) []candidate {
	type stat struct {
		count int
		first int
	}
	seen := make(map[string]*stat)
	for i := 0; i+length <= len(buf); i++ {
		key := string(buf[i : i+length])
		if s, ok := seen[key]; ok {
			s.count++
		} else {
			seen[key] = &stat{count: 1, first: i}
		}
	}

	var repeats []candidate
	for key, s := range seen {
		if s.count < 2 {
			continue
		}
		repeats = append(repeats, candidate{
			pattern: []byte(key),
			count:   s.count,
			first:   s.first,
		})
	}
	return repeats
}
