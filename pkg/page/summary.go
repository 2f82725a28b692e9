package page

import (
	"fmt"

	"github.com/google/uuid"

	"digital.vasic.docrender/pkg/content"
	"digital.vasic.docrender/pkg/document"
)

// Namespace seeds document IDs.
var Namespace = uuid.MustParse("6f1c2a4e-5d3b-4c8a-9e7f-2b1d0c9a8e76")

// DocumentID derives a stable ID from the mode and title.
func DocumentID(mode document.Mode, title string) string {
	return uuid.NewSHA1(Namespace, []byte(mode.String()+"/"+title)).String()
}

// summarize counts the input items and the composed tree. Outcome
// counts cover every input item, including filtered ones.
func summarize(
	items []content.Item,
	filtered int,
	doc *document.Document,
) document.Summary {
	s := document.Summary{
		Expectations: len(items),
		Filtered:     filtered,
		Sections:     len(doc.Sections),
		Blocks:       doc.BlockCount(),
	}

	for _, item := range items {
		if item.Result == nil || !item.Result.HasOutcome() {
			continue
		}
		s.Evaluated++
		if item.Result.Succeeded() {
			s.Successful++
		} else {
			s.Unsuccessful++
		}
	}

	if s.Evaluated > 0 {
		s.SuccessPercent = float64(s.Successful) / float64(s.Evaluated) * 100
	}
	return s
}

// header builds the page header block.
func header(mode document.Mode, doc *document.Document) document.Block {
	s := doc.Summary
	var sub string
	if mode == document.ModeDescriptive {
		sub = fmt.Sprintf(
			"%d evaluated, %d successful, %d unsuccessful (%.0f%% success)",
			s.Evaluated, s.Successful, s.Unsuccessful, s.SuccessPercent,
		)
	} else {
		sub = fmt.Sprintf("%d %s in %d %s",
			s.Expectations, plural(s.Expectations, "expectation", "expectations"),
			s.Sections, plural(s.Sections, "section", "sections"))
	}
	if s.Filtered > 0 {
		sub += fmt.Sprintf(", %d filtered", s.Filtered)
	}
	return document.NewHeader(doc.Title, sub)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
