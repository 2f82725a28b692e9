package content

import (
	"fmt"

	"digital.vasic.docrender/pkg/document"
)

// fallback renders an item the registry cannot handle as a single
// unsupported block carrying the raw kind and a canonical JSON
// view of its parameters and, in descriptive mode, its result.
func fallback(
	item Item,
	mode document.Mode,
	warning document.Warning,
) ([]document.Block, []document.Warning) {
	exp := item.Expectation

	payload := map[string]any{"kwargs": exp.Kwargs}
	if mode == document.ModeDescriptive && item.Result != nil {
		payload["success"] = item.Result.Success
		payload["result"] = item.Result.Result
		payload["error"] = item.Result.Error
	}

	block := document.Block{
		Kind:            document.KindUnsupported,
		ExpectationType: exp.Kind,
		Status:          statusOf(item, mode),
		Text:            fmt.Sprintf("Unsupported expectation type: %s", exp.Kind),
		Raw: &document.Raw{
			Kind:    exp.Kind,
			Payload: canonicalJSON(payload),
		},
	}
	return []document.Block{block}, []document.Warning{warning}
}
