// Package fixtures contains Mask definitions shared by tests.
package fixtures

import (
	"fmt"
	"os"
	"runtime"
	"testing"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/stretchr/testify/require"

	"github.com/typo3-migrate/mask2cb/internal/pkg/encoding/json"
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem"
	"github.com/typo3-migrate/mask2cb/internal/pkg/mask"
)

// MaskJSON returns content of the "mask/<name>.json" fixture.
func MaskJSON(t *testing.T, name string) string {
	t.Helper()

	// nolint: dogsled
	_, testFile, _, _ := runtime.Caller(0)
	path := filesystem.Join(filesystem.Dir(testFile), "mask", name+".json")
	data, err := os.ReadFile(path) // nolint: forbidigo
	if err != nil {
		panic(fmt.Errorf(`cannot load Mask fixture "%s": %w`, path, err))
	}
	return string(data)
}

// MaskCollection parses the "mask/<name>.json" fixture.
func MaskCollection(t *testing.T, name string) *mask.TableDefinitionCollection {
	t.Helper()
	root := orderedmap.New()
	require.NoError(t, json.DecodeString(MaskJSON(t, name), root))
	collection, err := mask.ParseCollection(root)
	require.NoError(t, err)
	return collection
}
