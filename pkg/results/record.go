// Package results records trial outcomes and summarizes them.
package results

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-conceal/pkg/concealment"
	"github.com/dd0wney/cluso-conceal/pkg/graph"
)

// Record is the outcome of one trial against one target set.
type Record struct {
	ID          string
	Targets     graph.TargetSet
	Mu1         float64
	Mu2         float64
	Alpha       float64
	Concealment float64
	Detected    bool
	CreatedAt   time.Time
}

// NewRecord builds a record for eval with a fresh ID.
func NewRecord(targets graph.TargetSet, eval *concealment.Evaluation) *Record {
	return &Record{
		ID:          uuid.New().String(),
		Targets:     targets,
		Mu1:         eval.Mu1,
		Mu2:         eval.Mu2,
		Alpha:       eval.Alpha,
		Concealment: eval.Concealment,
		Detected:    eval.Detected,
		CreatedAt:   time.Now().UTC(),
	}
}

// Store persists trial records.
type Store interface {
	Append(ctx context.Context, rec *Record) error
	List(ctx context.Context) ([]*Record, error)
	Close() error
}

// FormatResultLine renders the one-line result format, without newline.
func FormatResultLine(concealment float64, detected bool) string {
	d := 0
	if detected {
		d = 1
	}
	return fmt.Sprintf("concealment=%.4f,detected=%d", concealment, d)
}

// ParseResultLine reads a line written by FormatResultLine. Surrounding
// whitespace is ignored.
func ParseResultLine(line string) (float64, bool, error) {
	text := strings.TrimSpace(line)
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return 0, false, resultLineError(text, fmt.Errorf("expected 2 fields, got %d", len(parts)))
	}

	rawConcealment, ok := strings.CutPrefix(parts[0], "concealment=")
	if !ok {
		return 0, false, resultLineError(text, errors.New("missing concealment field"))
	}
	value, err := strconv.ParseFloat(rawConcealment, 64)
	if err != nil {
		return 0, false, resultLineError(text, err)
	}

	switch parts[1] {
	case "detected=0":
		return value, false, nil
	case "detected=1":
		return value, true, nil
	}
	return 0, false, resultLineError(text, fmt.Errorf("invalid detected field %q", parts[1]))
}

func resultLineError(text string, cause error) error {
	return graph.NewError("ParseResultLine").
		Entity("result").
		Token(text).
		Cause(fmt.Errorf("%w: %v", graph.ErrMalformedInput, cause)).
		Build()
}
