// Package section groups mapped content blocks into document
// sections.
package section

import (
	"golang.org/x/sync/errgroup"

	"digital.vasic.docrender/pkg/content"
	"digital.vasic.docrender/pkg/document"
	"digital.vasic.docrender/pkg/inspect"
)

// Composer partitions items by target column and maps each item to
// content blocks. The zero value renders prescriptively with the
// built-in renderers.
type Composer struct {
	// Mapper maps a single item. When nil a Mapper with the
	// built-in registry is used.
	Mapper *content.Mapper

	// Mode selects prescriptive or descriptive mapping.
	Mode document.Mode

	// Lookup provides contextual statistics to the mapper.
	Lookup inspect.Inspectable

	// Parallelism is the number of sections mapped concurrently.
	// Values below 2 map sections serially.
	Parallelism int

	// KeepBlock, when set, drops every block it returns false for.
	KeepBlock func(document.Block) bool
}

// Group is the set of items that belong to one section.
type Group struct {
	Label  string
	Column string
	Items  []content.Item
}

// Partition assigns items to groups. The Table-Level group comes
// first when non-empty, then one group per column in the order the
// column was first seen. Item order within a group is input order.
// A column named like the reserved label joins the Table-Level
// group, so labels stay unique.
func Partition(items []content.Item) []Group {
	tableLevel := Group{Label: document.TableLevelLabel}
	var columns []Group
	index := make(map[string]int)

	for _, item := range items {
		exp := item.Expectation
		col := exp.TargetColumn()
		if exp.IsTableLevel() || col == document.TableLevelLabel {
			tableLevel.Items = append(tableLevel.Items, item)
			continue
		}
		i, ok := index[col]
		if !ok {
			i = len(columns)
			index[col] = i
			columns = append(columns, Group{Label: col, Column: col})
		}
		columns[i].Items = append(columns[i].Items, item)
	}

	groups := make([]Group, 0, len(columns)+1)
	if len(tableLevel.Items) > 0 {
		groups = append(groups, tableLevel)
	}
	return append(groups, columns...)
}

// composed is the outcome of mapping one group.
type composed struct {
	section  document.Section
	warnings []document.Warning
}

// Compose maps items into ordered sections. Sections left without
// blocks after KeepBlock are omitted. Warnings are returned in
// section order regardless of Parallelism.
func (c *Composer) Compose(items []content.Item) ([]document.Section, []document.Warning) {
	mapper := c.Mapper
	if mapper == nil {
		mapper = content.NewMapper(nil)
	}
	mode := c.Mode
	if !mode.Valid() {
		mode = document.ModePrescriptive
	}

	groups := Partition(items)
	results := make([]composed, len(groups))

	if c.Parallelism > 1 && len(groups) > 1 {
		var g errgroup.Group
		g.SetLimit(c.Parallelism)
		for i, grp := range groups {
			g.Go(func() error {
				results[i] = c.composeGroup(mapper, mode, grp)
				return nil
			})
		}
		// Group mapping cannot fail.
		_ = g.Wait()
	} else {
		for i, grp := range groups {
			results[i] = c.composeGroup(mapper, mode, grp)
		}
	}

	sections := make([]document.Section, 0, len(results))
	var warnings []document.Warning
	for _, r := range results {
		warnings = append(warnings, r.warnings...)
		if len(r.section.Blocks) == 0 {
			continue
		}
		sections = append(sections, r.section)
	}
	return sections, warnings
}

func (c *Composer) composeGroup(
	mapper *content.Mapper,
	mode document.Mode,
	grp Group,
) composed {
	out := composed{
		section: document.Section{Label: grp.Label, Column: grp.Column},
	}
	for _, item := range grp.Items {
		blocks, warnings := mapper.Map(item, mode, c.Lookup)
		out.warnings = append(out.warnings, warnings...)
		for _, b := range blocks {
			if c.KeepBlock != nil && !c.KeepBlock(b) {
				continue
			}
			out.section.Blocks = append(out.section.Blocks, b)
		}
	}
	return out
}
