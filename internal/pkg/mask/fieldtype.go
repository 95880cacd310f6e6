package mask

// FieldType is the Mask semantic classification of a field.
type FieldType string

const (
	FieldTypeString      FieldType = "string"
	FieldTypeInteger     FieldType = "integer"
	FieldTypeFloat       FieldType = "float"
	FieldTypeLink        FieldType = "link"
	FieldTypeDate        FieldType = "date"
	FieldTypeTimestamp   FieldType = "timestamp"
	FieldTypeDatetime    FieldType = "datetime"
	FieldTypeText        FieldType = "text"
	FieldTypeRichtext    FieldType = "richtext"
	FieldTypeCheck       FieldType = "check"
	FieldTypeRadio       FieldType = "radio"
	FieldTypeSelect      FieldType = "select"
	FieldTypeEmail       FieldType = "email"
	FieldTypeCategory    FieldType = "category"
	FieldTypeFile        FieldType = "file"
	FieldTypeMedia       FieldType = "media"
	FieldTypeColorpicker FieldType = "colorpicker"
	FieldTypeFolder      FieldType = "folder"
	FieldTypeSlug        FieldType = "slug"
	FieldTypeGroup       FieldType = "group"
	FieldTypeContent     FieldType = "content"
	FieldTypeInline      FieldType = "inline"
	FieldTypeTab         FieldType = "tab"
	FieldTypeLinebreak   FieldType = "linebreak"
	FieldTypePalette     FieldType = "palette"
)

// AllFieldTypes returns all known field types.
func AllFieldTypes() []FieldType {
	return []FieldType{
		FieldTypeString,
		FieldTypeInteger,
		FieldTypeFloat,
		FieldTypeLink,
		FieldTypeDate,
		FieldTypeTimestamp,
		FieldTypeDatetime,
		FieldTypeText,
		FieldTypeRichtext,
		FieldTypeCheck,
		FieldTypeRadio,
		FieldTypeSelect,
		FieldTypeEmail,
		FieldTypeCategory,
		FieldTypeFile,
		FieldTypeMedia,
		FieldTypeColorpicker,
		FieldTypeFolder,
		FieldTypeSlug,
		FieldTypeGroup,
		FieldTypeContent,
		FieldTypeInline,
		FieldTypeTab,
		FieldTypeLinebreak,
		FieldTypePalette,
	}
}

func (t FieldType) String() string {
	return string(t)
}

func (t FieldType) IsValid() bool {
	for _, v := range AllFieldTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// IsParentField returns true for fields whose children are field lists.
func (t FieldType) IsParentField() bool {
	return t == FieldTypeContent || t == FieldTypeInline
}

// IsTextareaField returns true for types with the "format" code editor option.
func (t FieldType) IsTextareaField() bool {
	return t == FieldTypeText || t == FieldTypeRichtext
}
