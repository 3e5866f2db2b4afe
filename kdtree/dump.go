package kdtree

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DumpKind identifies the shape of a DumpNode.
type DumpKind uint8

const (
	// DumpEmpty is the dump of an empty tree. It serializes as {}.
	DumpEmpty DumpKind = iota
	// DumpLeaf is a leaf bucket. It serializes as {"p": "<listing>"}.
	DumpLeaf
	// DumpInternal is a split node. It serializes as
	// {"splitindex", "splitvalue", "l", "r"}; an absent child is null.
	DumpInternal
)

// SplitValue is a split threshold. It always serializes with a fractional
// part (5 becomes 5.0) so integral medians stay recognizable as reals.
type SplitValue float64

// MarshalJSON implements json.Marshaler.
func (v SplitValue) MarshalJSON() ([]byte, error) {
	s := strconv.FormatFloat(float64(v), 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return []byte(s), nil
}

// DumpNode is a serializable snapshot of a subtree.
type DumpNode struct {
	Kind DumpKind

	// Data is set for DumpLeaf.
	Data []Datum

	// Set for DumpInternal.
	SplitIndex int
	SplitValue SplitValue
	Left       *DumpNode
	Right      *DumpNode
}

type leafJSON struct {
	P string `json:"p"`
}

type internalJSON struct {
	SplitIndex int        `json:"splitindex"`
	SplitValue SplitValue `json:"splitvalue"`
	L          *DumpNode  `json:"l"`
	R          *DumpNode  `json:"r"`
}

// MarshalJSON implements json.Marshaler.
func (d DumpNode) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case DumpLeaf:
		return json.Marshal(leafJSON{P: FormatListing(d.Data)})
	case DumpInternal:
		return json.Marshal(internalJSON{
			SplitIndex: d.SplitIndex,
			SplitValue: d.SplitValue,
			L:          d.Left,
			R:          d.Right,
		})
	default:
		return []byte("{}"), nil
	}
}

// Dump returns a snapshot of the whole tree.
func (t *Tree) Dump() DumpNode {
	if t.root == nil {
		return DumpNode{Kind: DumpEmpty}
	}
	return *dumpNode(t.root)
}

func dumpNode(n *node) *DumpNode {
	if n == nil {
		return nil
	}
	if n.isLeaf() {
		data := make([]Datum, len(n.data))
		copy(data, n.data)
		return &DumpNode{Kind: DumpLeaf, Data: data}
	}
	return &DumpNode{
		Kind:       DumpInternal,
		SplitIndex: n.splitIndex,
		SplitValue: SplitValue(n.splitValue),
		Left:       dumpNode(n.left),
		Right:      dumpNode(n.right),
	}
}

// FormatListing renders leaf data as a textual listing, e.g.
//
//	[{'coords': (0, 0), 'code': 'a'}, {'coords': (3,), 'code': 'b'}]
func FormatListing(data []Datum) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, d := range data {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("{'coords': (")
		for j, c := range d.Coords {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Itoa(c))
		}
		if len(d.Coords) == 1 {
			sb.WriteByte(',')
		}
		sb.WriteString("), 'code': ")
		sb.WriteString(quoteCode(d.Code))
		sb.WriteByte('}')
	}
	sb.WriteByte(']')
	return sb.String()
}

// quoteCode single-quotes s, switching to double quotes when s contains a
// single quote but no double quote.
func quoteCode(s string) string {
	q := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		q = '"'
	}
	var sb strings.Builder
	sb.WriteByte(q)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' || c == q:
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c == '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}
