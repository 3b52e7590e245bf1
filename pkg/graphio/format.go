// Package graphio reads and writes the plain-text, line-oriented formats the
// engine exchanges with the outside world: edge lists, community assignments
// and target lists.
package graphio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-conceal/pkg/graph"
	"github.com/dd0wney/cluso-conceal/pkg/logging"
)

// LoadOptions controls edge-list parsing.
type LoadOptions struct {
	// DropSelfLoops silently skips "a a" lines. When false such lines are
	// rejected as malformed, since the graph cannot hold them.
	DropSelfLoops bool
	Logger        logging.Logger
}

// maxLineBytes bounds a single input line
const maxLineBytes = 1 << 20

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	return sc
}

func malformed(op string, line int, text string, cause error) error {
	if cause == nil {
		cause = graph.ErrMalformedInput
	} else {
		cause = fmt.Errorf("%w: %v", graph.ErrMalformedInput, cause)
	}
	return graph.NewError(op).Line(line).Token(text).Cause(cause).Build()
}

// pairFields splits a line into exactly two whitespace-separated tokens.
// Blank lines report ok=false with no error.
func pairFields(op string, lineNo int, text string) (string, string, bool, error) {
	fields := strings.Fields(text)
	switch len(fields) {
	case 0:
		return "", "", false, nil
	case 2:
		return fields[0], fields[1], true, nil
	}
	return "", "", false, malformed(op, lineNo, text, fmt.Errorf("expected 2 fields, got %d", len(fields)))
}

// LoadEdgeList parses "<src> <dest>" lines into an undirected simple graph.
// Any malformed line aborts the load.
func LoadEdgeList(r io.Reader, opts LoadOptions) (*graph.Graph, error) {
	logger := logging.OrNop(opts.Logger)
	g := graph.New()
	dropped := 0

	sc := newScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		src, dst, ok, err := pairFields("LoadEdgeList", lineNo, sc.Text())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if src == dst {
			if opts.DropSelfLoops {
				dropped++
				continue
			}
			return nil, malformed("LoadEdgeList", lineNo, sc.Text(), graph.ErrSelfLoop)
		}
		g.AddEdge(src, dst)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read edge list: %w", err)
	}

	logger.Debug("edge list loaded",
		logging.Nodes(g.NodeCount()),
		logging.Edges(g.EdgeCount()),
		logging.Int("self_loops_dropped", dropped),
	)
	return g, nil
}

// WriteEdgeList writes one "u v" line per edge in canonical order.
func WriteEdgeList(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)
	for _, e := range g.Edges() {
		if _, err := fmt.Fprintf(bw, "%s %s\n", e.U, e.V); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadAssignment parses "<node> <label>" lines. A later line for the same
// node overrides an earlier one.
func LoadAssignment(r io.Reader) (graph.Partition, error) {
	p := graph.Partition{}

	sc := newScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		node, raw, ok, err := pairFields("LoadAssignment", lineNo, sc.Text())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		label, err := strconv.Atoi(raw)
		if err != nil {
			return nil, malformed("LoadAssignment", lineNo, sc.Text(), fmt.Errorf("label %q is not an integer", raw))
		}
		p[node] = label
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read assignment: %w", err)
	}
	return p, nil
}

// LoadTargets parses one whitespace-separated target set per line.
// Blank lines are skipped; duplicates within a line collapse.
func LoadTargets(r io.Reader) ([]graph.TargetSet, error) {
	sets := make([]graph.TargetSet, 0)
	sc := newScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		sets = append(sets, graph.NewTargetSet(fields...))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read targets: %w", err)
	}
	return sets, nil
}

// WriteTargets writes one target set per line.
func WriteTargets(w io.Writer, sets []graph.TargetSet) error {
	bw := bufio.NewWriter(w)
	for _, set := range sets {
		if _, err := fmt.Fprintln(bw, strings.Join(set, " ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}
