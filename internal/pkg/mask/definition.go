package mask

import (
	"sort"

	"github.com/keboola/go-utils/pkg/orderedmap"
)

const (
	// ContentTable is the table of the Mask content elements.
	ContentTable = "tt_content"
	// FieldPrefix is the prefix of all fields created by Mask, fields without the prefix are core fields.
	FieldPrefix = "tx_mask_"
	// CTypePrefix is the prefix of the Mask content element types.
	CTypePrefix = "mask_"
)

// ElementDefinition is one Mask content element.
type ElementDefinition struct {
	Key          string   `mapstructure:"key" validate:"required"`
	Label        string   `mapstructure:"label"`
	Description  string   `mapstructure:"description"`
	ShortLabel   string   `mapstructure:"shortLabel"`
	Color        string   `mapstructure:"color"`
	Icon         string   `mapstructure:"icon"`
	Columns      []string `mapstructure:"columns"`
	Labels       []string `mapstructure:"labels"`
	Descriptions []string `mapstructure:"descriptions"`
	Hidden       bool     `mapstructure:"hidden"`
	Sorting      int      `mapstructure:"sorting"`
	// ColumnsOverride contains per element TCA overrides, by the field key.
	ColumnsOverride *TcaDefinition `mapstructure:"-"`
}

// TcaFieldDefinition is TCA of one field and the Mask metadata.
type TcaFieldDefinition struct {
	FullKey string
	Key     string
	// Type may be empty, then it is inferred from the TCA.
	Type FieldType
	// RealTca is the raw TCA, it contains the "config" key.
	RealTca      *orderedmap.OrderedMap
	IsCoreField  bool
	InlineParent PerElement[string]
	Label        PerElement[string]
	Description  PerElement[string]
	Order        PerElement[int]
	CTypes       []string
	// BodytextTypeByElement overrides the type of the core "bodytext" field, for example to "richtext".
	BodytextTypeByElement map[string]FieldType
}

// PerElement is a value defined once, or per element key. Mask uses the second form for tt_content fields in palettes.
type PerElement[T comparable] struct {
	Value     T
	ByElement map[string]T
}

// TcaDefinition is an ordered collection of the field definitions.
type TcaDefinition struct {
	fields []*TcaFieldDefinition
	index  map[string]*TcaFieldDefinition
}

// TableDefinition contains elements and fields of one table.
type TableDefinition struct {
	Table    string
	Elements []*ElementDefinition
	// Tca is nil, if the table has no TCA.
	Tca      *TcaDefinition
	Palettes *orderedmap.OrderedMap
}

func NewTcaDefinition(fields ...*TcaFieldDefinition) *TcaDefinition {
	d := &TcaDefinition{index: make(map[string]*TcaFieldDefinition)}
	for _, f := range fields {
		d.Add(f)
	}
	return d
}

func (d *TcaDefinition) Add(field *TcaFieldDefinition) {
	if _, found := d.index[field.FullKey]; !found {
		d.fields = append(d.fields, field)
	} else {
		for i, f := range d.fields {
			if f.FullKey == field.FullKey {
				d.fields[i] = field
			}
		}
	}
	d.index[field.FullKey] = field
}

func (d *TcaDefinition) HasField(key string) bool {
	if d == nil {
		return false
	}
	_, found := d.index[key]
	return found
}

func (d *TcaDefinition) GetField(key string) (*TcaFieldDefinition, bool) {
	if d == nil {
		return nil, false
	}
	f, found := d.index[key]
	return f, found
}

func (d *TcaDefinition) Fields() []*TcaFieldDefinition {
	if d == nil {
		return nil
	}
	return d.fields
}

func (d *TcaDefinition) Len() int {
	if d == nil {
		return 0
	}
	return len(d.fields)
}

func (e *ElementDefinition) GetColumnsOverride(fieldKey string) (*TcaFieldDefinition, bool) {
	return e.ColumnsOverride.GetField(fieldKey)
}

// ColumnIndex returns index of the field in the columns list, or -1.
func (e *ElementDefinition) ColumnIndex(fieldKey string) int {
	for i, c := range e.Columns {
		if c == fieldKey {
			return i
		}
	}
	return -1
}

// CType returns the content type of the element, for example "mask_my_element".
func (e *ElementDefinition) CType() string {
	return CTypePrefix + e.Key
}

// Config returns a copy of the TCA "config" mapping, or an empty map.
func (f *TcaFieldDefinition) Config() *orderedmap.OrderedMap {
	if f == nil || f.RealTca == nil {
		return orderedmap.New()
	}
	if config, ok := f.RealTca.GetOrNil("config").(*orderedmap.OrderedMap); ok {
		return NormalizeMap(config)
	}
	return orderedmap.New()
}

// HasInlineParent returns true if the field is a child of a palette or of an inline field.
func (f *TcaFieldDefinition) HasInlineParent(elementKey string) bool {
	return f.InlineParent.Get(elementKey) != ""
}

func (v PerElement[T]) Get(elementKey string) T {
	if v.ByElement != nil {
		return v.ByElement[elementKey]
	}
	return v.Value
}

func (t *TableDefinition) GetElement(key string) (*ElementDefinition, bool) {
	for _, e := range t.Elements {
		if e.Key == key {
			return e, true
		}
	}
	return nil, false
}

// sortByOrder sorts fields by the order for the element, the sort is stable.
func sortByOrder(fields []*TcaFieldDefinition, elementKey string) {
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Order.Get(elementKey) < fields[j].Order.Get(elementKey)
	})
}
