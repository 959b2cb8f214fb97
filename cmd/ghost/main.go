// ghost - dictionary-substitution compressor CLI
//
// Usage:
//
//	ghost compress [-n iterations] [-l maxLength] [-o out] file
//	ghost decompress [-o out] file
//	ghost info file
//
// compress accepts either raw bytes or a previously produced .boo container;
// a container gains additional layers on top of its existing ones. -n -1
// (the default) runs until no further reduction is possible. Interrupting a
// run (Ctrl-C) stops at the next round boundary and writes the partial,
// fully decodable result.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/andybalholm/ghost"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "compress":
		cmdCompress(os.Args[2:])
	case "decompress":
		cmdDecompress(os.Args[2:])
	case "info":
		cmdInfo(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "ghost: unknown command %q\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage:
  ghost compress [-n iterations] [-l maxLength] [-o out] file
  ghost decompress [-o out] file
  ghost info file`)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ghost: "+format+"\n", args...)
	os.Exit(1)
}

func cmdCompress(args []string) {
	fs := flag.NewFlagSet("compress", flag.ExitOnError)
	iterations := fs.Int("n", -1, "maximum substitution rounds (-1 = unbounded)")
	maxLength := fs.Int("l", 8, "longest pattern length considered")
	outPath := fs.String("o", "", "output path (default: input with .boo extension)")
	fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	inPath := fs.Arg(0)

	data, err := os.ReadFile(inPath)
	if err != nil {
		fatal("read %s: %v", inPath, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := &ghost.Options{Iterations: 0, MaxLength: *maxLength}
	var c *ghost.Container
	inputSize := len(data)
	if ghost.IsContainer(data) {
		c, err = ghost.ParseContainer(data)
		if err != nil {
			fatal("load %s: %v", inPath, err)
		}
	} else {
		c, _, err = ghost.Compress(ctx, data, opts)
		if err != nil {
			fatal("compress %s: %v", inPath, err)
		}
	}

	// Run one round at a time so progress can be reported; stacking
	// single-round runs is equivalent to one multi-round run.
	start := time.Now()
	rounds := 0
	stopReason := ghost.StopRounds
	perRound := &ghost.Options{Iterations: 1, MaxLength: *maxLength}
	for *iterations < 0 || rounds < *iterations {
		info, err := ghost.Recompress(ctx, c, perRound)
		if err != nil {
			fatal("compress %s: %v", inPath, err)
		}
		if info.Rounds == 0 {
			stopReason = info.Stop
			break
		}
		rounds += info.Rounds
		fmt.Fprintf(os.Stderr, "[%s] round %d: %d layers, payload %d bytes (%.3f)\n",
			time.Since(start).Round(time.Millisecond), rounds,
			len(c.Layers), len(c.Payload), float64(len(c.Payload))/float64(inputSize))
	}

	out, err := c.MarshalBinary()
	if err != nil {
		fatal("encode container: %v", err)
	}
	dest := *outPath
	if dest == "" {
		dest = booPath(inPath)
	}
	if err := os.WriteFile(dest, out, 0o644); err != nil {
		fatal("write %s: %v", dest, err)
	}
	fmt.Printf("%s: %d rounds (%s), %d -> %d bytes\n",
		dest, rounds, stopReason, inputSize, len(out))
}

func cmdDecompress(args []string) {
	fs := flag.NewFlagSet("decompress", flag.ExitOnError)
	outPath := fs.String("o", "", "output path (default: input without .boo extension)")
	fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	inPath := fs.Arg(0)

	data, err := os.ReadFile(inPath)
	if err != nil {
		fatal("read %s: %v", inPath, err)
	}
	if !ghost.IsContainer(data) {
		fatal("%s is not a ghost container", inPath)
	}
	c, err := ghost.ParseContainer(data)
	if err != nil {
		fatal("load %s: %v", inPath, err)
	}
	out, err := ghost.Decompress(c)
	if err != nil {
		fatal("decompress %s: %v", inPath, err)
	}

	dest := *outPath
	if dest == "" {
		dest = rawPath(inPath)
	}
	if err := os.WriteFile(dest, out, 0o644); err != nil {
		fatal("write %s: %v", dest, err)
	}
	fmt.Printf("%s: %d bytes\n", dest, len(out))
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	inPath := fs.Arg(0)

	data, err := os.ReadFile(inPath)
	if err != nil {
		fatal("read %s: %v", inPath, err)
	}
	if !ghost.IsContainer(data) {
		fatal("%s is not a ghost container", inPath)
	}
	c, err := ghost.ParseContainer(data)
	if err != nil {
		fatal("load %s: %v", inPath, err)
	}

	fmt.Printf("%s: %d layers, payload %d bytes, original %d bytes\n",
		inPath, len(c.Layers), len(c.Payload), c.OriginalLen())
	for i, l := range c.Layers {
		fmt.Printf("  layer %3d: token 0x%02x  pattern %3d bytes  maxLength %d\n",
			i, l.Token, len(l.Pattern), l.MaxLength)
	}
}

// booPath swaps the input's extension for .boo, the container extension.
func booPath(path string) string {
	ext := filepath.Ext(path)
	if ext == ".boo" {
		return path
	}
	return strings.TrimSuffix(path, ext) + ".boo"
}

// rawPath derives a decompressed output name from a container name.
func rawPath(path string) string {
	if strings.HasSuffix(path, ".boo") {
		return strings.TrimSuffix(path, ".boo") + ".out"
	}
	return path + ".out"
}
