package mask

import (
	"context"
	_ "embed"
	"sort"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/typo3-migrate/mask2cb/internal/pkg/encoding/json"
	"github.com/typo3-migrate/mask2cb/internal/pkg/encoding/json/schema"
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem"
	"github.com/typo3-migrate/mask2cb/internal/pkg/log"
	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

//go:embed schema.json
var definitionsSchema []byte

// Loader loads Mask definitions from the "json" file or from the "json-split" folder.
type Loader struct {
	fs     filesystem.Fs
	logger log.Logger
	config Configuration
	paths  PathResolver
}

func NewLoader(fs filesystem.Fs, logger log.Logger, config Configuration, paths PathResolver) *Loader {
	return &Loader{fs: fs, logger: logger.WithComponent("mask.loader"), config: config, paths: paths}
}

// Load definitions. A missing definition file is not an error, the collection is empty.
func (l *Loader) Load(ctx context.Context) (*TableDefinitionCollection, error) {
	s, err := schema.Compile(definitionsSchema)
	if err != nil {
		return nil, errors.PrefixError(err, "invalid Mask definitions schema")
	}

	switch l.config.LoaderIdentifier() {
	case LoaderJSON:
		return l.loadJSON(ctx, s)
	case LoaderJSONSplit:
		return l.loadJSONSplit(ctx, s)
	default:
		return nil, errors.Errorf(`unknown Mask loader "%s"`, l.config.Loader)
	}
}

func (l *Loader) loadJSON(ctx context.Context, s *schema.Schema) (*TableDefinitionCollection, error) {
	if l.config.JSON == "" {
		return nil, errors.New(`the "json" setting is empty`)
	}
	path := l.paths.Resolve(l.config.JSON)
	if !l.fs.IsFile(ctx, path) {
		l.logger.Debugf(ctx, `Mask definition file "%s" not found.`, path)
		return NewTableDefinitionCollection(), nil
	}

	collection := NewTableDefinitionCollection()
	if err := l.loadFile(ctx, s, path, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

func (l *Loader) loadJSONSplit(ctx context.Context, s *schema.Schema) (*TableDefinitionCollection, error) {
	if l.config.ContentElementsFolder == "" {
		return nil, errors.New(`the "content_elements_folder" setting is empty`)
	}
	dir := l.paths.Resolve(l.config.ContentElementsFolder)
	collection := NewTableDefinitionCollection()
	if !l.fs.IsDir(ctx, dir) {
		l.logger.Debugf(ctx, `Mask elements folder "%s" not found.`, dir)
		return collection, nil
	}

	files, err := l.fs.Glob(ctx, filesystem.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	errs := errors.NewMultiError()
	for _, path := range files {
		if err := l.loadFile(ctx, s, path, collection); err != nil {
			errs.Append(err)
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return collection, nil
}

func (l *Loader) loadFile(ctx context.Context, s *schema.Schema, path string, collection *TableDefinitionCollection) error {
	file, err := l.fs.ReadFile(ctx, filesystem.NewFileDef(path).SetDescription("Mask definitions"))
	if err != nil {
		return err
	}

	// PHP encodes empty definitions as "[]"
	root := orderedmap.New()
	if content := strings.TrimSpace(file.Content); content == "" || content == "[]" {
		l.logger.Debugf(ctx, `Mask definitions "%s" are empty.`, path)
		return nil
	}
	if err := json.DecodeString(file.Content, root); err != nil {
		return errors.PrefixErrorf(err, `Mask definitions "%s" are not valid JSON`, path)
	}

	if err := s.Validate(ToPlainValue(root)); err != nil {
		return errors.PrefixErrorf(err, `Mask definitions "%s" are not valid`, path)
	}

	loaded, err := ParseCollection(root)
	if err != nil {
		return errors.PrefixErrorf(err, `Mask definitions "%s" are not valid`, path)
	}

	for _, table := range loaded.Tables() {
		collection.AddTable(table)
	}

	l.logger.Debugf(ctx, `Loaded Mask definitions "%s".`, path)
	return nil
}
