package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/kdgo"
	"github.com/hupe1980/kdgo/codec"
	"github.com/hupe1980/kdgo/testutil"
)

// CLI executes a command script against a store, one command per line.
type CLI struct {
	scanner     *bufio.Scanner
	out         io.Writer
	store       *kdgo.Store
	codec       codec.Codec
	compression codec.Compression
	k           int
	rng         *testutil.RNG
	seeded      int
}

// NewCLI creates a CLI reading commands from s and writing JSON results to out.
func NewCLI(s *bufio.Scanner, out io.Writer, store *kdgo.Store, k int, c codec.Codec, comp codec.Compression, seed int64) *CLI {
	return &CLI{
		scanner:     s,
		out:         out,
		store:       store,
		codec:       c,
		compression: comp,
		k:           k,
		rng:         testutil.NewRNG(seed),
	}
}

type opResult struct {
	Op    string `json:"op"`
	Code  string `json:"code,omitempty"`
	Count int    `json:"count,omitempty"`
	Len   int    `json:"len"`
	Error string `json:"error,omitempty"`
}

// Run processes commands until the input ends or an exit command is read.
// Command failures are reported inline; only write failures abort the run.
func (c *CLI) Run(ctx context.Context) error {
	for c.scanner.Scan() {
		done, err := c.processInput(ctx, c.scanner.Text())
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return c.scanner.Err()
}

func (c *CLI) processInput(ctx context.Context, line string) (bool, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return false, nil
	}
	command := strings.ToLower(fields[0])
	args := fields[1:]

	switch command {
	case "insert":
		return false, c.processInsertCommand(ctx, args)
	case "delete":
		return false, c.processDeleteCommand(ctx, args)
	case "knn":
		return false, c.processKNNCommand(ctx, args)
	case "dump":
		return false, c.processDumpCommand(ctx)
	case "seed":
		return false, c.processSeedCommand(ctx, args)
	case "stats":
		return false, c.processStatsCommand()
	case "help":
		return false, c.printHelp()
	case "exit":
		return true, nil
	default:
		return false, c.writeResult(opResult{Op: command, Len: c.store.Len(), Error: "unknown command"})
	}
}

func (c *CLI) printHelp() error {
	_, err := fmt.Fprintf(c.out, `KD-Tree CLI (k=%d)

Available Commands:
  insert <code> <c1> ... <ck>  Insert a point
  delete <c1> ... <ck>         Remove the point with these coords
  knn <n> <c1> ... <ck>        Print the n nearest neighbors
  dump                         Print the tree structure
  seed <count> <max>           Insert count random points with coords in [0, max)
  stats                        Print the tree shape
  exit                         Stop processing
`, c.k)
	return err
}

func (c *CLI) processInsertCommand(ctx context.Context, args []string) error {
	if len(args) != c.k+1 {
		return c.usage("insert", fmt.Sprintf("insert <code> <%d coords>", c.k))
	}
	point, err := parsePoint(args[1:])
	if err != nil {
		return c.fail("insert", err)
	}
	if err := c.store.Insert(ctx, point, args[0]); err != nil {
		return c.fail("insert", err)
	}
	return c.writeResult(opResult{Op: "insert", Code: args[0], Len: c.store.Len()})
}

func (c *CLI) processDeleteCommand(ctx context.Context, args []string) error {
	if len(args) != c.k {
		return c.usage("delete", fmt.Sprintf("delete <%d coords>", c.k))
	}
	point, err := parsePoint(args)
	if err != nil {
		return c.fail("delete", err)
	}
	if err := c.store.Delete(ctx, point); err != nil {
		return c.fail("delete", err)
	}
	return c.writeResult(opResult{Op: "delete", Len: c.store.Len()})
}

func (c *CLI) processKNNCommand(ctx context.Context, args []string) error {
	if len(args) != c.k+1 {
		return c.usage("knn", fmt.Sprintf("knn <n> <%d coords>", c.k))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return c.fail("knn", err)
	}
	point, err := parsePoint(args[1:])
	if err != nil {
		return c.fail("knn", err)
	}
	b, err := c.store.KNNJSON(ctx, n, point)
	if err != nil {
		return c.fail("knn", err)
	}
	return c.writeLine(b)
}

func (c *CLI) processDumpCommand(ctx context.Context) error {
	if err := c.store.DumpTo(ctx, c.out, c.compression); err != nil {
		return c.fail("dump", err)
	}
	if c.compression == codec.CompressionNone {
		_, err := io.WriteString(c.out, "\n")
		return err
	}
	return nil
}

func (c *CLI) processSeedCommand(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return c.usage("seed", "seed <count> <max>")
	}
	count, err := strconv.Atoi(args[0])
	if err != nil {
		return c.fail("seed", err)
	}
	maxVal, err := strconv.Atoi(args[1])
	if err != nil {
		return c.fail("seed", err)
	}
	if count < 0 || maxVal <= 0 {
		return c.fail("seed", errors.New("count must be >= 0 and max > 0"))
	}

	inserted := 0
	for attempts := 0; inserted < count && attempts < count*10; attempts++ {
		err := c.store.Insert(ctx, c.rng.Point(c.k, maxVal), testutil.RandomCode(c.seeded))
		if errors.Is(err, kdgo.ErrDuplicatePoint) {
			continue
		}
		if err != nil {
			return c.fail("seed", err)
		}
		c.seeded++
		inserted++
	}
	return c.writeResult(opResult{Op: "seed", Count: inserted, Len: c.store.Len()})
}

func (c *CLI) processStatsCommand() error {
	stats, err := c.store.Stats()
	if err != nil {
		return c.fail("stats", err)
	}
	b, err := codec.MarshalIndent(c.codec, stats)
	if err != nil {
		return err
	}
	return c.writeLine(b)
}

func (c *CLI) usage(op, usage string) error {
	return c.writeResult(opResult{Op: op, Len: c.store.Len(), Error: "usage: " + usage})
}

func (c *CLI) fail(op string, err error) error {
	return c.writeResult(opResult{Op: op, Len: c.store.Len(), Error: err.Error()})
}

func (c *CLI) writeResult(r opResult) error {
	b, err := c.codec.Marshal(r)
	if err != nil {
		return err
	}
	return c.writeLine(b)
}

func (c *CLI) writeLine(b []byte) error {
	if _, err := c.out.Write(b); err != nil {
		return err
	}
	_, err := io.WriteString(c.out, "\n")
	return err
}

func parsePoint(fields []string) ([]int, error) {
	point := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", f)
		}
		point[i] = v
	}
	return point, nil
}
