package env

import (
	"github.com/iancoleman/strcase"

	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

const Prefix = "MASK2CB_"

type NamingConvention struct {
	prefix string
}

func NewNamingConvention(prefix string) *NamingConvention {
	return &NamingConvention{prefix: prefix}
}

// FlagToEnv converts flag name to ENV variable name,
// for example "mask-elements-folder" -> "MASK2CB_MASK_ELEMENTS_FOLDER".
func (n *NamingConvention) FlagToEnv(flagName string) string {
	if len(flagName) == 0 {
		panic(errors.New("flag name cannot be empty"))
	}
	return n.prefix + strcase.ToScreamingSnake(flagName)
}

// Files returns names of the supported env files, the first one has the highest priority.
func Files() []string {
	return []string{
		".env.local",
		".env",
	}
}
