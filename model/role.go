package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is the normalized structural classification of an element
type Role int

const (
	RoleUnknown Role = iota
	RoleTitle
	RoleSectionHeader
	RoleText
	RoleList
	RoleListItem
	RoleTable
	RoleTableCell
	RoleFigure
	RoleCaption
	RoleFormula
	RolePageHeader
	RolePageFooter
	RoleFootnote
)

var roleNames = map[Role]string{
	RoleTitle:         "title",
	RoleSectionHeader: "section-header",
	RoleText:          "text",
	RoleList:          "list",
	RoleListItem:      "list-item",
	RoleTable:         "table",
	RoleTableCell:     "table-cell",
	RoleFigure:        "figure",
	RoleCaption:       "caption",
	RoleFormula:       "formula",
	RolePageHeader:    "page-header",
	RolePageFooter:    "page-footer",
	RoleFootnote:      "footnote",
}

// Roles lists every known role in declaration order
func Roles() []Role {
	return []Role{
		RoleTitle, RoleSectionHeader, RoleText, RoleList, RoleListItem,
		RoleTable, RoleTableCell, RoleFigure, RoleCaption, RoleFormula,
		RolePageHeader, RolePageFooter, RoleFootnote,
	}
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "unknown"
}

// IsHeading reports whether the role opens a section
func (r Role) IsHeading() bool {
	return r == RoleTitle || r == RoleSectionHeader
}

// IsPageFurniture reports whether the role is a running header or footer
func (r Role) IsPageFurniture() bool {
	return r == RolePageHeader || r == RolePageFooter
}

// IsTextLike reports whether elements with this role carry prose that the
// text-pattern rules may reinterpret.
func (r Role) IsTextLike() bool {
	switch r {
	case RoleUnknown, RoleText, RoleTitle, RoleSectionHeader, RoleListItem:
		return true
	}
	return false
}

// MarshalJSON encodes the role as its string name
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a role from its string name
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	role, ok := ParseRole(s)
	if !ok {
		return fmt.Errorf("unknown role %q", s)
	}
	*r = role
	return nil
}

// ParseRole parses a role name as produced by Role.String
func ParseRole(s string) (Role, bool) {
	for r, name := range roleNames {
		if name == s {
			return r, true
		}
	}
	return RoleUnknown, false
}

// hintRoles maps the vocabulary of upstream layout detectors onto roles.
// Keys are lower-cased with '_' and ' ' folded to '-'.
var hintRoles = map[string]Role{
	"title":          RoleTitle,
	"heading":        RoleSectionHeader,
	"section-header": RoleSectionHeader,
	"text":           RoleText,
	"paragraph":      RoleText,
	"plain-text":     RoleText,
	"list":           RoleList,
	"list-item":      RoleListItem,
	"table":          RoleTable,
	"table-cell":     RoleTableCell,
	"cell":           RoleTableCell,
	"figure":         RoleFigure,
	"image":          RoleFigure,
	"picture":        RoleFigure,
	"caption":        RoleCaption,
	"formula":        RoleFormula,
	"equation":       RoleFormula,
	"header":         RolePageHeader,
	"page-header":    RolePageHeader,
	"footer":         RolePageFooter,
	"page-footer":    RolePageFooter,
	"footnote":       RoleFootnote,
}

// RoleFromHint maps a detector type hint to a role. Unrecognized hints
// report false and RoleUnknown.
func RoleFromHint(hint string) (Role, bool) {
	key := strings.ToLower(strings.TrimSpace(hint))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	r, ok := hintRoles[key]
	return r, ok
}
