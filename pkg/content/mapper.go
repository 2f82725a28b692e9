package content

import (
	"fmt"

	"digital.vasic.docrender/pkg/document"
	"digital.vasic.docrender/pkg/inspect"
)

// Mapper converts items into content blocks using a Registry. A
// Mapper holds no mutable state and may be shared across
// goroutines.
type Mapper struct {
	registry *Registry
}

// NewMapper creates a Mapper. A nil registry selects the built-in
// renderers.
func NewMapper(registry *Registry) *Mapper {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Mapper{registry: registry}
}

// Registry returns the registry the mapper dispatches on.
func (m *Mapper) Registry() *Registry {
	return m.registry
}

// Map renders one item. It never fails and never returns an empty
// block slice: unknown kinds, missing context, malformed results
// and panicking renderers all degrade to a block plus a warning.
func (m *Mapper) Map(
	item Item,
	mode document.Mode,
	lookup inspect.Inspectable,
) (blocks []document.Block, warnings []document.Warning) {
	if lookup == nil {
		lookup = inspect.Empty{}
	}
	exp := item.Expectation

	renderer, ok := m.registry.Lookup(exp.Kind)
	if !ok {
		return fallback(item, mode, document.Warning{
			Code:    document.WarnUnsupportedKind,
			Kind:    exp.Kind,
			Column:  exp.TargetColumn(),
			Message: fmt.Sprintf("no renderer for expectation type %q", exp.Kind),
		})
	}

	defer func() {
		if r := recover(); r != nil {
			blocks, warnings = fallback(item, mode, document.Warning{
				Code:    document.WarnUnsupportedKind,
				Kind:    exp.Kind,
				Column:  exp.TargetColumn(),
				Message: fmt.Sprintf("renderer for %q failed: %v", exp.Kind, r),
			})
		}
	}()

	c := &Context{
		Expectation: exp,
		Column:      exp.TargetColumn(),
		Lookup:      lookup,
	}
	c.Statement = renderer.Statement(c)

	if mode == document.ModeDescriptive {
		blocks = describe(c, item)
	} else {
		blocks = prescribe(c, renderer)
	}

	status := statusOf(item, mode)
	for i := range blocks {
		blocks[i].ExpectationType = exp.Kind
		blocks[i].Status = status
	}
	return blocks, c.warnings
}

func prescribe(c *Context, renderer Renderer) []document.Block {
	if renderer.Blocks == nil {
		return []document.Block{document.NewText(c.Statement)}
	}
	blocks := renderer.Blocks(c)
	if len(blocks) == 0 {
		return []document.Block{document.NewText(c.Statement)}
	}
	return blocks
}

// statusOf derives the block status from the success flag only.
func statusOf(item Item, mode document.Mode) document.Status {
	if mode != document.ModeDescriptive {
		return document.StatusNone
	}
	if item.Result != nil && item.Result.Succeeded() {
		return document.StatusSuccess
	}
	return document.StatusFailure
}
