package simulation

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/vmsim/mem/vm"
)

// OpKind is the kind of a trace operation.
type OpKind int

// Trace operation kinds.
const (
	OpRead OpKind = iota
	OpWrite
)

// An Op is a single line of an access trace.
type Op struct {
	Line        int
	Kind        OpKind
	Addr        uint64
	Value       vm.Word
	HasExpected bool
}

// A Mismatch is a read that did not return the value the trace expected.
type Mismatch struct {
	Line     int
	Addr     uint64
	Expected vm.Word
	Got      vm.Word
}

// TraceResult summarizes a trace replay.
type TraceResult struct {
	Reads      uint64
	Writes     uint64
	Rejected   uint64
	Mismatches []Mismatch
}

// ParseTrace reads a trace. Each line is one of
//
//	R <addr> [expected]
//	W <addr> <value>
//
// Numbers may be written in any base strconv accepts with base 0. Everything
// after a # is ignored.
func ParseTrace(r io.Reader) ([]Op, error) {
	var ops []Op

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		op, err := parseOp(lineNo, fields)
		if err != nil {
			return nil, err
		}

		ops = append(ops, op)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}

	return ops, nil
}

func parseOp(lineNo int, fields []string) (Op, error) {
	op := Op{Line: lineNo}

	switch strings.ToUpper(fields[0]) {
	case "R":
		op.Kind = OpRead
		if len(fields) != 2 && len(fields) != 3 {
			return op, fmt.Errorf("line %d: read takes an address "+
				"and an optional expected value", lineNo)
		}

		op.HasExpected = len(fields) == 3
	case "W":
		op.Kind = OpWrite
		if len(fields) != 3 {
			return op, fmt.Errorf("line %d: write takes an address "+
				"and a value", lineNo)
		}
	default:
		return op, fmt.Errorf("line %d: unknown operation %q", lineNo, fields[0])
	}

	addr, err := strconv.ParseUint(fields[1], 0, 64)
	if err != nil {
		return op, fmt.Errorf("line %d: parse address: %w", lineNo, err)
	}

	op.Addr = addr

	if len(fields) == 3 {
		value, err := strconv.ParseInt(fields[2], 0, 64)
		if err != nil {
			return op, fmt.Errorf("line %d: parse value: %w", lineNo, err)
		}

		op.Value = vm.Word(value)
	}

	return op, nil
}

// RunTrace parses a trace and replays it on the MMU. Rejected accesses are
// counted and the replay continues.
func (s *Simulation) RunTrace(r io.Reader) (TraceResult, error) {
	ops, err := ParseTrace(r)
	if err != nil {
		return TraceResult{}, err
	}

	return s.Replay(ops), nil
}

// Replay applies the operations in order.
func (s *Simulation) Replay(ops []Op) TraceResult {
	var result TraceResult

	if s.monitor != nil {
		bar := s.monitor.CreateProgressBar("Trace "+s.id, uint64(len(ops)))
		defer s.monitor.CompleteProgressBar(bar)

		s.replay(ops, &result, func(rejected bool) {
			if rejected {
				bar.IncrementRejected(1)
			} else {
				bar.IncrementFinished(1)
			}
		})
	} else {
		s.replay(ops, &result, func(bool) {})
	}

	s.logger.Info("trace replayed",
		"ops", len(ops),
		"reads", result.Reads,
		"writes", result.Writes,
		"rejected", result.Rejected,
		"mismatches", len(result.Mismatches))

	return result
}

func (s *Simulation) replay(
	ops []Op,
	result *TraceResult,
	tick func(rejected bool),
) {
	for _, op := range ops {
		ok := true

		switch op.Kind {
		case OpRead:
			result.Reads++

			var got vm.Word

			got, ok = s.Read(op.Addr)
			if !ok {
				result.Rejected++
				s.logger.Warn("read rejected", "line", op.Line, "addr", op.Addr)

				break
			}

			if op.HasExpected && got != op.Value {
				result.Mismatches = append(result.Mismatches, Mismatch{
					Line:     op.Line,
					Addr:     op.Addr,
					Expected: op.Value,
					Got:      got,
				})
			}
		case OpWrite:
			result.Writes++

			ok = s.Write(op.Addr, op.Value)
			if !ok {
				result.Rejected++
				s.logger.Warn("write rejected", "line", op.Line, "addr", op.Addr)
			}
		}

		tick(!ok)
	}
}
