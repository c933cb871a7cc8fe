package document

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind classifies a Node.
type Kind int

const (
	_ Kind = iota // skip zero value, an untyped node is invalid

	KindDocument  // document
	KindElement   // element
	KindText      // text
	KindCData     // cdata
	KindComment   // comment
	KindEntity    // entity
	KindProcInst  // proc_inst
	KindDirective // directive
	KindMapping   // mapping
	KindSequence  // sequence
	KindScalar    // scalar
	KindNull      // null
)

// IsMarkup reports node kinds produced by tree-markup backends.
func (k Kind) IsMarkup() bool {
	return k >= KindDocument && k <= KindDirective
}

// IsCharData reports kinds that contribute to an element's text content.
func (k Kind) IsCharData() bool {
	switch k {
	default:
		return false
	case KindText, KindCData, KindEntity:
		return true
	}
}
