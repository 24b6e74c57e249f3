package model

// Kind is the ingestion-time variant of a detected element. It is decided
// once from the detector's type hint and never re-probed.
type Kind int

const (
	KindText Kind = iota
	KindTable
	KindTableCell
	KindFigure
	KindFormula
)

func (k Kind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindTableCell:
		return "table-cell"
	case KindFigure:
		return "figure"
	case KindFormula:
		return "formula"
	default:
		return "text"
	}
}

// TableCellRef locates a cell inside its table grid
type TableCellRef struct {
	Row          int  `json:"row"`
	Col          int  `json:"col"`
	RowSpan      int  `json:"row_span,omitempty"`
	ColSpan      int  `json:"col_span,omitempty"`
	ColumnHeader bool `json:"column_header,omitempty"`
	RowHeader    bool `json:"row_header,omitempty"`
}

// PageGeometry is the size of a page in the detector's native units
// (PDF points, origin at the bottom-left corner).
type PageGeometry struct {
	Index  int     `json:"index"` // 0-based
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DetectedElement is a single record emitted by the layout detector for
// one page. BBox is in PDF space.
type DetectedElement struct {
	Kind  Kind          `json:"kind"`
	Hint  string        `json:"type_hint"`
	BBox  BBox          `json:"bbox_pdf"`
	Text  string        `json:"text"`
	Cell  *TableCellRef `json:"table_cell,omitempty"`
	Order int           `json:"order"` // detection order within the page
}

// Ingest builds a DetectedElement, fixing its Kind from the hint
func Ingest(hint string, bbox BBox, text string) DetectedElement {
	return DetectedElement{
		Kind: kindFromHint(hint),
		Hint: hint,
		BBox: bbox,
		Text: text,
	}
}

// IngestCell builds a table-cell element carrying its grid position
func IngestCell(bbox BBox, text string, ref TableCellRef) DetectedElement {
	el := Ingest("table_cell", bbox, text)
	el.Cell = &ref
	return el
}

func kindFromHint(hint string) Kind {
	role, _ := RoleFromHint(hint)
	switch role {
	case RoleTable:
		return KindTable
	case RoleTableCell:
		return KindTableCell
	case RoleFigure:
		return KindFigure
	case RoleFormula:
		return KindFormula
	default:
		return KindText
	}
}

// TextLine is one line of recognized text on a raster image. Box is in
// image pixels, origin at the top-left corner.
type TextLine struct {
	Text       string  `json:"text"`
	Box        BBox    `json:"box"`
	Confidence float64 `json:"confidence"`
}

// Flags records diagnostics attached to an element. None of them cause the
// element to be dropped.
type Flags uint8

const (
	// FlagGarbled marks text that looks like a mis-decoded byte stream
	FlagGarbled Flags = 1 << iota
	// FlagDegenerate marks a bbox with zero or negative area
	FlagDegenerate
	// FlagContinuation marks text that continues a sentence from the previous page
	FlagContinuation
)

// Has reports whether all bits of f2 are set
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// Names returns the set flag names in a stable order
func (f Flags) Names() []string {
	var names []string
	if f.Has(FlagGarbled) {
		names = append(names, "garbled")
	}
	if f.Has(FlagDegenerate) {
		names = append(names, "degenerate")
	}
	if f.Has(FlagContinuation) {
		names = append(names, "continuation")
	}
	return names
}

// ListStyle is the marker family of a list item
type ListStyle int

const (
	ListStyleUnknown ListStyle = iota
	ListStyleBullet
	ListStyleDash
	ListStyleNumbered
	ListStyleCircled
	ListStyleRoman
	ListStyleLettered
	ListStyleArrow
	ListStyleNote
	ListStyleClause
)

func (s ListStyle) String() string {
	switch s {
	case ListStyleBullet:
		return "bullet"
	case ListStyleDash:
		return "dash"
	case ListStyleNumbered:
		return "numbered"
	case ListStyleCircled:
		return "circled"
	case ListStyleRoman:
		return "roman"
	case ListStyleLettered:
		return "lettered"
	case ListStyleArrow:
		return "arrow"
	case ListStyleNote:
		return "note"
	case ListStyleClause:
		return "clause"
	default:
		return "unknown"
	}
}

// ListInfo describes a list item's marker and indentation
type ListInfo struct {
	IndentLevel int       `json:"indent_level"`
	IsNested    bool      `json:"is_nested"`
	Marker      string    `json:"marker,omitempty"`
	Style       ListStyle `json:"-"`
}

// ClassifiedElement is a detected element with its structural role
type ClassifiedElement struct {
	DetectedElement
	Role  Role      `json:"role"`
	List  *ListInfo `json:"list_info,omitempty"`
	Flags Flags     `json:"-"`
}
