package ghost

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/flate"
	"github.com/pierrec/lz4/v4"
)

// benchData builds deterministic word-salad input with heavy repetition, the
// kind of data the substitution transform is meant for.
func benchData(n int) []byte {
	rng := rand.New(rand.NewSource(1))
	words := []string{"the ", "quick ", "brown ", "fox ", "jumps ", "over ", "a ", "lazy ", "dog ", "again "}
	var buf bytes.Buffer
	for buf.Len() < n {
		buf.WriteString(words[rng.Intn(len(words))])
	}
	return buf.Bytes()[:n]
}

func BenchmarkCompress(b *testing.B) {
	data := benchData(1 << 14)
	opts := &Options{Iterations: 16, MaxLength: 6}
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()

	var size int
	for i := 0; i < b.N; i++ {
		c, _, err := Compress(context.Background(), data, opts)
		if err != nil {
			b.Fatal(err)
		}
		enc, err := c.MarshalBinary()
		if err != nil {
			b.Fatal(err)
		}
		size = len(enc)
	}
	b.ReportMetric(float64(len(data))/float64(size), "ratio")
}

func BenchmarkDecompress(b *testing.B) {
	data := benchData(1 << 14)
	c, _, err := Compress(context.Background(), data, &Options{Iterations: 16, MaxLength: 6})
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		out, err := Decompress(c)
		if err != nil {
			b.Fatal(err)
		}
		if !bytes.Equal(out, data) {
			b.Fatal("round-trip mismatch")
		}
	}
}

// Reference codecs on the same input, for ratio comparison.

func BenchmarkEncodeSnappy(b *testing.B) {
	data := benchData(1 << 14)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()

	var size int
	for i := 0; i < b.N; i++ {
		size = len(snappy.Encode(nil, data))
	}
	b.ReportMetric(float64(len(data))/float64(size), "ratio")
}

func BenchmarkEncodeFlate(b *testing.B) {
	data := benchData(1 << 14)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()

	buf := new(bytes.Buffer)
	for i := 0; i < b.N; i++ {
		buf.Reset()
		w, err := flate.NewWriter(buf, flate.BestCompression)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := w.Write(data); err != nil {
			b.Fatal(err)
		}
		if err := w.Close(); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportMetric(float64(len(data))/float64(buf.Len()), "ratio")
}

func BenchmarkEncodeLZ4(b *testing.B) {
	data := benchData(1 << 14)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()

	var c lz4.Compressor
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	var size int
	for i := 0; i < b.N; i++ {
		n, err := c.CompressBlock(data, dst)
		if err != nil {
			b.Fatal(err)
		}
		size = n
	}
	b.ReportMetric(float64(len(data))/float64(size), "ratio")
}
