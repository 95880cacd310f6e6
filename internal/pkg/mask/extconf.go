package mask

import (
	"context"
	"strings"

	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

const (
	LoaderJSON      = "json"
	LoaderJSONSplit = "json-split"
	// ExtPrefix is prefix of paths relative to an extension, for example "EXT:my_ext/Resources/".
	ExtPrefix = "EXT:"
)

// ErrMissingExtension is returned if the Mask "content" setting doesn't locate the target extension.
var ErrMissingExtension = errors.New("please provide extension where to put Content Blocks in")

// Configuration is the Mask extension configuration.
type Configuration struct {
	// Content is the frontend templates folder, for example "EXT:my_ext/Resources/Private/Mask/Frontend/Templates/".
	Content string `mapstructure:"content"`
	// Backend is the backend preview templates folder.
	Backend string `mapstructure:"backend"`
	// Preview is the preview icons folder.
	Preview               string `mapstructure:"preview"`
	JSON                  string `mapstructure:"json"`
	Loader                string `mapstructure:"loader_identifier" validate:"omitempty,oneof=json json-split"`
	ContentElementsFolder string `mapstructure:"content_elements_folder"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		JSON:   "typo3conf/mask.json",
		Loader: LoaderJSON,
	}
}

func (c Configuration) Validate(ctx context.Context) error {
	return validate.Validate(ctx, c)
}

func (c Configuration) LoaderIdentifier() string {
	if c.Loader == "" {
		return LoaderJSON
	}
	return c.Loader
}

// ExtensionKey returns key of the extension, where Content Blocks are created.
// The key is taken from the "content" setting.
func (c Configuration) ExtensionKey() (string, error) {
	if strings.TrimSpace(c.Content) == "" {
		return "", ErrMissingExtension
	}
	key, _, ok := splitExtPath(c.Content)
	if !ok || key == "" {
		return "", errors.PrefixErrorf(ErrMissingExtension, `the "content" setting "%s" is not in the "EXT:<extension>/<path>" form`, c.Content)
	}
	return key, nil
}

// splitExtPath splits "EXT:my_ext/some/path" to "my_ext" and "some/path".
func splitExtPath(p string) (key, rest string, ok bool) {
	if !strings.HasPrefix(p, ExtPrefix) {
		return "", "", false
	}
	key, rest, _ = strings.Cut(strings.TrimPrefix(p, ExtPrefix), "/")
	return key, rest, true
}
