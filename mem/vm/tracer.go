package vm

import (
	"fmt"
	"io"
)

// A TranslationTracer writes a line for every page fault, zero-frame reuse,
// and eviction that happens in an MMU.
type TranslationTracer struct {
	writer io.Writer
	count  uint64
}

// NewTranslationTracer produce a new TranslationTracer, injecting the
// dependency of a writer.
func NewTranslationTracer(w io.Writer) *TranslationTracer {
	t := new(TranslationTracer)
	t.writer = w

	return t
}

// Func prints the translation trace information.
func (t *TranslationTracer) Func(ctx HookCtx) {
	vAddr, ok := ctx.Item.(uint64)
	if !ok {
		return
	}

	var err error

	switch detail := ctx.Detail.(type) {
	case FaultDetail:
		_, err = fmt.Fprintf(t.writer, "%d,%s,%d,level=%d frame=%d leaf=%t\n",
			t.count, ctx.Pos.Name, vAddr,
			detail.Level, detail.Frame, detail.IsLeaf)
	case ReuseDetail:
		_, err = fmt.Fprintf(t.writer, "%d,%s,%d,frame=%d parent=%d offset=%d\n",
			t.count, ctx.Pos.Name, vAddr,
			detail.Frame, detail.Parent, detail.Offset)
	case EvictionDetail:
		_, err = fmt.Fprintf(t.writer, "%d,%s,%d,frame=%d vpn=%d distance=%d\n",
			t.count, ctx.Pos.Name, vAddr,
			detail.Frame, detail.VPN, detail.Distance)
	default:
		return
	}

	if err != nil {
		panic(err)
	}

	t.count++
}
