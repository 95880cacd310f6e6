// Package contentblock translates Mask elements to Content Blocks definitions.
package contentblock

import (
	"fmt"

	"github.com/typo3-migrate/mask2cb/internal/pkg/mask"
)

// FieldType is the Content Blocks field type.
type FieldType string

const (
	FieldTypeText       FieldType = "Text"
	FieldTypeNumber     FieldType = "Number"
	FieldTypeLink       FieldType = "Link"
	FieldTypeDateTime   FieldType = "DateTime"
	FieldTypeTextarea   FieldType = "Textarea"
	FieldTypeCheckbox   FieldType = "Checkbox"
	FieldTypeRadio      FieldType = "Radio"
	FieldTypeSelect     FieldType = "Select"
	FieldTypeEmail      FieldType = "Email"
	FieldTypeCategory   FieldType = "Category"
	FieldTypeFile       FieldType = "File"
	FieldTypeColor      FieldType = "Color"
	FieldTypeFolder     FieldType = "Folder"
	FieldTypeSlug       FieldType = "Slug"
	FieldTypeRelation   FieldType = "Relation"
	FieldTypeCollection FieldType = "Collection"
	FieldTypeTab        FieldType = "Tab"
	FieldTypeLinebreak  FieldType = "Linebreak"
	FieldTypePalette    FieldType = "Palette"
)

var typesMap = map[mask.FieldType]FieldType{ //nolint:gochecknoglobals
	mask.FieldTypeString:      FieldTypeText,
	mask.FieldTypeInteger:     FieldTypeNumber,
	mask.FieldTypeFloat:       FieldTypeNumber,
	mask.FieldTypeLink:        FieldTypeLink,
	mask.FieldTypeDate:        FieldTypeDateTime,
	mask.FieldTypeTimestamp:   FieldTypeDateTime,
	mask.FieldTypeDatetime:    FieldTypeDateTime,
	mask.FieldTypeText:        FieldTypeTextarea,
	mask.FieldTypeRichtext:    FieldTypeTextarea,
	mask.FieldTypeCheck:       FieldTypeCheckbox,
	mask.FieldTypeRadio:       FieldTypeRadio,
	mask.FieldTypeSelect:      FieldTypeSelect,
	mask.FieldTypeEmail:       FieldTypeEmail,
	mask.FieldTypeCategory:    FieldTypeCategory,
	mask.FieldTypeFile:        FieldTypeFile,
	mask.FieldTypeMedia:       FieldTypeFile,
	mask.FieldTypeColorpicker: FieldTypeColor,
	mask.FieldTypeFolder:      FieldTypeFolder,
	mask.FieldTypeSlug:        FieldTypeSlug,
	mask.FieldTypeGroup:       FieldTypeRelation,
	mask.FieldTypeContent:     FieldTypeCollection,
	mask.FieldTypeInline:      FieldTypeCollection,
	mask.FieldTypeTab:         FieldTypeTab,
	mask.FieldTypeLinebreak:   FieldTypeLinebreak,
	mask.FieldTypePalette:     FieldTypePalette,
}

// TypeFor maps the Mask field type to the Content Blocks field type.
// The map covers all Mask types, so a missing entry is a programming error.
func TypeFor(t mask.FieldType) FieldType {
	if v, found := typesMap[t]; found {
		return v
	}
	panic(fmt.Errorf(`no Content Blocks type for the Mask type "%s"`, t))
}

func (t FieldType) String() string {
	return string(t)
}
