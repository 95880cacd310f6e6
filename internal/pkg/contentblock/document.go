package contentblock

import (
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/typo3-migrate/mask2cb/internal/pkg/mask"
)

const (
	DefaultVendor = "mask"
	TypeField     = "CType"
)

// Basics are reusable field sets added to each content element.
var Basics = []string{"TYPO3/Appearance", "TYPO3/Links"} //nolint:gochecknoglobals

// Assembler creates the Content Blocks definition document of an element.
type Assembler struct {
	Vendor string
	Shape  OutputShape
}

func NewAssembler(vendor string, shape OutputShape) Assembler {
	if vendor == "" {
		vendor = DefaultVendor
	}
	return Assembler{Vendor: vendor, Shape: shape}
}

// BlockName returns name of the block without vendor, for example "hero-teaser".
func BlockName(elementKey string) string {
	return strings.ReplaceAll(elementKey, "_", "-")
}

// Name returns the full name, for example "mask/hero-teaser".
func (a Assembler) Name(element *mask.ElementDefinition) string {
	return a.Vendor + "/" + BlockName(element.Key)
}

func (a Assembler) Assemble(element *mask.ElementDefinition, fields []*orderedmap.OrderedMap) *orderedmap.OrderedMap {
	doc := orderedmap.New()
	doc.Set("name", a.Name(element))
	doc.Set("table", mask.ContentTable)
	doc.Set("typeField", TypeField)
	doc.Set("typeName", element.CType())
	if a.Shape.IsFull() {
		doc.Set("prefixFields", false)
	}
	doc.Set("title", element.Label)
	doc.Set("description", element.Description)
	if a.Shape.IsFull() {
		basics := make([]any, 0, len(Basics))
		for _, b := range Basics {
			basics = append(basics, b)
		}
		doc.Set("basics", basics)
	}
	items := make([]any, 0, len(fields))
	for _, f := range fields {
		items = append(items, f)
	}
	doc.Set("fields", items)
	return doc
}
