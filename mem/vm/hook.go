package vm

// HookPos defines the enum of possible hooking positions
type HookPos struct {
	Name string
}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable defines an object that accept Hooks
type Hookable interface {
	// AcceptHook registers a hook
	AcceptHook(hook Hook)
}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// HookPosPageFault triggers when a walk creates a frame for an absent entry.
// The Item is the virtual address and the Detail is a FaultDetail.
var HookPosPageFault = &HookPos{Name: "PageFault"}

// HookPosZeroFrameReuse triggers when an empty table is detached for reuse.
// The Item is the virtual address and the Detail is a ReuseDetail.
var HookPosZeroFrameReuse = &HookPos{Name: "ZeroFrameReuse"}

// HookPosEviction triggers after a data frame is flushed and detached. The
// Item is the virtual address under service and the Detail is an
// EvictionDetail.
var HookPosEviction = &HookPos{Name: "Eviction"}

// HookPosRestore triggers when a translation asks the store to load the
// target page. The Item is the virtual address and the Detail is the frame.
var HookPosRestore = &HookPos{Name: "Restore"}

// FaultDetail describes a frame created during a walk.
type FaultDetail struct {
	Level  uint64
	Frame  FrameNumber
	IsLeaf bool
}

// ReuseDetail describes an empty table taken back from the tree.
type ReuseDetail struct {
	Frame  FrameNumber
	Parent FrameNumber
	Offset uint64
}

// EvictionDetail describes a data frame taken back from the tree.
type EvictionDetail struct {
	Frame     FrameNumber
	VPN       uint64
	TargetVPN uint64
	Distance  uint64
}

// A HookableBase provides some utility function for other type that implement
// the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// NewHookableBase creates a HookableBase object
func NewHookableBase() *HookableBase {
	h := new(HookableBase)
	h.Hooks = make([]Hook, 0)
	return h
}

// AcceptHook register a hook
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// NumHooks returns the number of registered hooks.
func (h *HookableBase) NumHooks() int {
	return len(h.Hooks)
}

// InvokeHook triggers the register Hooks
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
