package content

import (
	"fmt"
	"strings"

	"digital.vasic.docrender/pkg/document"
)

// describe renders an evaluation outcome: the statement with its
// verdict and observed value, followed on failure by a list of
// sample unexpected values.
func describe(c *Context, item Item) []document.Block {
	evr := item.Result
	success := evr != nil && evr.Succeeded()

	var sb strings.Builder
	sb.WriteString(c.Statement)
	if success {
		sb.WriteString(" Passed.")
	} else {
		sb.WriteString(" Failed.")
	}

	if evr == nil || (!success && evr.Result.IsEmpty()) {
		c.warnings = append(c.warnings, document.Warning{
			Code:    document.WarnMalformedResult,
			Kind:    c.Expectation.Kind,
			Column:  c.Column,
			Message: "failed result carries no result details",
		})
		if evr != nil && evr.Error != "" {
			fmt.Fprintf(&sb, " Error: %s", evr.Error)
		} else {
			sb.WriteString(" No result details available.")
		}
		return []document.Block{document.NewText(sb.String())}
	}

	d := evr.Result
	if d != nil {
		if d.ObservedValue != nil {
			fmt.Fprintf(&sb, " Observed value: %s.", formatValue(d.ObservedValue))
		}
		if d.UnexpectedCount != nil {
			fmt.Fprintf(&sb, " %d unexpected %s", *d.UnexpectedCount,
				plural(*d.UnexpectedCount, "value", "values"))
			if d.UnexpectedPercent != nil {
				fmt.Fprintf(&sb, " (%s%%", formatFloat(*d.UnexpectedPercent))
				if d.ElementCount != nil {
					fmt.Fprintf(&sb, " of %d", *d.ElementCount)
				}
				sb.WriteString(")")
			}
			sb.WriteString(".")
		}
	}
	if evr.Error != "" {
		fmt.Fprintf(&sb, " Error: %s", evr.Error)
	}

	blocks := []document.Block{document.NewText(sb.String())}
	if !success && d != nil && len(d.PartialUnexpectedList) > 0 {
		blocks = append(blocks, document.NewValueList(
			"Sample unexpected values", formatList(d.PartialUnexpectedList),
		))
	}
	return blocks
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
