package contentblock

import (
	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

// OutputShape defines which optional keys are written to the definitions.
type OutputShape string

const (
	// ShapeFull writes "prefixFields", "basics" and labels/descriptions of the fields.
	ShapeFull OutputShape = "full"
	// ShapeMinimal writes only the keys required by Content Blocks.
	ShapeMinimal OutputShape = "minimal"
)

func ParseOutputShape(v string) (OutputShape, error) {
	switch OutputShape(v) {
	case "", ShapeFull:
		return ShapeFull, nil
	case ShapeMinimal:
		return ShapeMinimal, nil
	default:
		return "", errors.Errorf(`unexpected output shape "%s", expected "%s" or "%s"`, v, ShapeFull, ShapeMinimal)
	}
}

func (s OutputShape) IsFull() bool {
	return s != ShapeMinimal
}

func (s OutputShape) String() string {
	return string(s)
}
