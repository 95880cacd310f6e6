package mask

import (
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"

	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

// InferFieldType resolves the field type from the TCA config, when the type is not stored in the definition.
func InferFieldType(realTca *orderedmap.OrderedMap) (FieldType, error) {
	config := orderedmap.New()
	if realTca != nil {
		if v, ok := realTca.GetOrNil("config").(*orderedmap.OrderedMap); ok {
			config = v
		}
	}

	tcaType := configString(config, "type")
	renderType := configString(config, "renderType")
	dbType := configString(config, "dbType")
	eval := configList(config, "eval")

	switch tcaType {
	case "input":
		switch {
		case renderType == "inputLink":
			return FieldTypeLink, nil
		case renderType == "colorpicker":
			return FieldTypeColorpicker, nil
		case renderType == "inputDateTime":
			return dateTimeType(dbType), nil
		case eval["int"]:
			return FieldTypeInteger, nil
		case eval["double2"]:
			return FieldTypeFloat, nil
		case eval["email"]:
			return FieldTypeEmail, nil
		case eval["date"] || eval["datetime"]:
			return dateTimeType(dbType), nil
		default:
			return FieldTypeString, nil
		}
	case "number":
		if configString(config, "format") == "decimal" {
			return FieldTypeFloat, nil
		}
		return FieldTypeInteger, nil
	case "datetime":
		return dateTimeType(dbType), nil
	case "text":
		if cast.ToBool(config.GetOrNil("enableRichtext")) {
			return FieldTypeRichtext, nil
		}
		return FieldTypeText, nil
	case "color":
		return FieldTypeColorpicker, nil
	case "check":
		return FieldTypeCheck, nil
	case "radio":
		return FieldTypeRadio, nil
	case "select":
		return FieldTypeSelect, nil
	case "group":
		return FieldTypeGroup, nil
	case "folder":
		return FieldTypeFolder, nil
	case "category":
		return FieldTypeCategory, nil
	case "slug":
		return FieldTypeSlug, nil
	case "email":
		return FieldTypeEmail, nil
	case "link":
		return FieldTypeLink, nil
	case "file":
		return fileType(config), nil
	case "inline":
		switch configString(config, "foreign_table") {
		case "sys_file_reference":
			return fileType(config), nil
		case ContentTable:
			return FieldTypeContent, nil
		default:
			return FieldTypeInline, nil
		}
	case "palette":
		return FieldTypePalette, nil
	case "linebreak":
		return FieldTypeLinebreak, nil
	case "tab":
		return FieldTypeTab, nil
	case "":
		return "", errors.New(`TCA config "type" is missing`)
	default:
		return "", errors.Errorf(`unexpected TCA config type "%s"`, tcaType)
	}
}

func dateTimeType(dbType string) FieldType {
	switch dbType {
	case "date":
		return FieldTypeDate
	case "datetime":
		return FieldTypeDatetime
	default:
		return FieldTypeTimestamp
	}
}

func fileType(config *orderedmap.OrderedMap) FieldType {
	if strings.Contains(configString(config, "allowed"), "common-media-types") {
		return FieldTypeMedia
	}
	return FieldTypeFile
}

func configString(config *orderedmap.OrderedMap, key string) string {
	return strings.TrimSpace(cast.ToString(config.GetOrNil(key)))
}

// configList parses a comma separated list, for example "trim,int".
func configList(config *orderedmap.OrderedMap, key string) map[string]bool {
	out := make(map[string]bool)
	for _, item := range strings.Split(configString(config, key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out[item] = true
		}
	}
	return out
}
