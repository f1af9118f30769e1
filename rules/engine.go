package rules

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/gophergun/scorch/physics"
)

// Action is what gameplay should do about one contact, as decided by the
// collision script. Self is the queried body, other the second participant.
type Action string

const (
	ActionNone         Action = "none"
	ActionDestroySelf  Action = "destroy_self"
	ActionDestroyOther Action = "destroy_other"
	ActionDestroyBoth  Action = "destroy_both"
	ActionBoom         Action = "boom"
)

const dispatchScript = `
__action = react(__a, __b)
`

// Engine evaluates the collision script. The script defines
// react(a, b) over tag names and returns an action string; the compiled
// program is reused across dispatches with fresh tag bindings.
type Engine struct {
	compiled *tengo.Compiled
}

// NewEngine compiles the default embedded collision script.
func NewEngine() (*Engine, error) {
	src, err := LoadScript("collision.tengo")
	if err != nil {
		return nil, fmt.Errorf("rules: load script: %w", err)
	}
	return NewEngineFromSource(src)
}

// NewEngineFromSource compiles a collision script from source.
func NewEngineFromSource(src []byte) (*Engine, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), dispatchScript...))
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	for _, name := range []string{"__a", "__b", "__action"} {
		if err := script.Add(name, ""); err != nil {
			return nil, fmt.Errorf("rules: bind %s: %w", name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("rules: compile: %w", err)
	}
	return &Engine{compiled: compiled}, nil
}

// React maps a contact's tag pair to an action. Script failures are data
// errors, not invariant violations; callers log them and fall back to
// ActionNone.
func (e *Engine) React(pair physics.TagPair) (Action, error) {
	if err := e.compiled.Set("__a", pair.First.String()); err != nil {
		return ActionNone, fmt.Errorf("rules: bind tags: %w", err)
	}
	if err := e.compiled.Set("__b", pair.Second.String()); err != nil {
		return ActionNone, fmt.Errorf("rules: bind tags: %w", err)
	}
	if err := e.compiled.Run(); err != nil {
		return ActionNone, fmt.Errorf("rules: react(%s, %s): %w", pair.First, pair.Second, err)
	}
	return Action(e.compiled.Get("__action").String()), nil
}
