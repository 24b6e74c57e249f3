package render

import (
	"image/color"

	"github.com/docstruct/docstruct/model"
)

func rgb(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xff}
}

var roleColors = map[model.Role]color.RGBA{
	model.RoleText:          rgb(0x0066CC),
	model.RoleTitle:         rgb(0xFF6600),
	model.RoleSectionHeader: rgb(0xFF6600),
	model.RoleList:          rgb(0x009900),
	model.RoleListItem:      rgb(0x009900),
	model.RoleTable:         rgb(0xCC0099),
	model.RoleTableCell:     rgb(0xCC66CC),
	model.RoleFigure:        rgb(0x990099),
	model.RoleCaption:       rgb(0x666666),
	model.RoleFormula:       rgb(0xFF3366),
	model.RoleFootnote:      rgb(0x996633),
	model.RolePageHeader:    rgb(0x3399CC),
	model.RolePageFooter:    rgb(0x3399CC),
}

// headerCellColor outlines table cells that head a row or column
var headerCellColor = rgb(0xFF0099)

// RoleColor returns the outline color used for a role
func RoleColor(r model.Role) color.RGBA {
	if c, ok := roleColors[r]; ok {
		return c
	}
	return rgb(0x808080)
}
