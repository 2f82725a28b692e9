package document

// BlockKind tags the payload a Block carries.
type BlockKind string

const (
	KindText        BlockKind = "text"
	KindTable       BlockKind = "table"
	KindValueList   BlockKind = "value_list"
	KindBulletList  BlockKind = "bullet_list"
	KindHeader      BlockKind = "header"
	KindGraph       BlockKind = "graph"
	KindUnsupported BlockKind = "unsupported"
)

// Status marks the evaluation outcome a block was derived from.
// Prescriptive blocks carry no status.
type Status string

const (
	StatusNone    Status = ""
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// NotAvailable is shown in place of contextual data that could
// not be looked up.
const NotAvailable = "not available"

// Block is the smallest renderable unit.
type Block struct {
	Kind            BlockKind `json:"content_block_type" yaml:"content_block_type"`
	ExpectationType string    `json:"expectation_type,omitempty" yaml:"expectation_type,omitempty"`
	Status          Status    `json:"status,omitempty" yaml:"status,omitempty"`

	Text      string   `json:"text,omitempty" yaml:"text,omitempty"`
	Header    string   `json:"header,omitempty" yaml:"header,omitempty"`
	Subheader string   `json:"subheader,omitempty" yaml:"subheader,omitempty"`
	Items     []string `json:"items,omitempty" yaml:"items,omitempty"`
	Table     *Table   `json:"table,omitempty" yaml:"table,omitempty"`
	Graph     *Graph   `json:"graph,omitempty" yaml:"graph,omitempty"`
	Raw       *Raw     `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// Failed reports whether the block carries the failure marker.
func (b Block) Failed() bool {
	return b.Status == StatusFailure
}

// Table is a titled grid of strings.
type Table struct {
	Title  string     `json:"title,omitempty" yaml:"title,omitempty"`
	Header []string   `json:"header,omitempty" yaml:"header,omitempty"`
	Rows   [][]string `json:"rows" yaml:"rows"`
}

// Graph is a minimal chart specification left for the emitter to
// draw.
type Graph struct {
	Title string       `json:"title,omitempty" yaml:"title,omitempty"`
	Mark  string       `json:"mark" yaml:"mark"`
	X     string       `json:"x" yaml:"x"`
	Y     string       `json:"y" yaml:"y"`
	Data  []GraphPoint `json:"data" yaml:"data"`
}

// GraphPoint is one labeled value of a Graph.
type GraphPoint struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

// Raw is the payload of a fallback block for a kind the renderer
// does not know. Payload is canonical JSON.
type Raw struct {
	Kind    string `json:"kind" yaml:"kind"`
	Payload string `json:"payload" yaml:"payload"`
}

// NewText creates a text block.
func NewText(text string) Block {
	return Block{Kind: KindText, Text: text}
}

// NewHeader creates a header block.
func NewHeader(header, subheader string) Block {
	return Block{Kind: KindHeader, Header: header, Subheader: subheader}
}

// NewTable creates a table block.
func NewTable(title string, header []string, rows [][]string) Block {
	return Block{
		Kind:  KindTable,
		Table: &Table{Title: title, Header: header, Rows: rows},
	}
}

// NewValueList creates a value list block.
func NewValueList(header string, items []string) Block {
	return Block{Kind: KindValueList, Header: header, Items: items}
}

// NewBulletList creates a bullet list block.
func NewBulletList(header string, items []string) Block {
	return Block{Kind: KindBulletList, Header: header, Items: items}
}
