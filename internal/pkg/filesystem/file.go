package filesystem

import (
	"strings"
)

// FileDef is a path with a human-readable description, for example "mask configuration".
type FileDef struct {
	desc string
	path string
}

// RawFile is a file with a string content.
type RawFile struct {
	*FileDef
	Content string
}

// File is common abstraction for a file.
type File interface {
	Description() string
	Path() string
	ToRawFile() (*RawFile, error)
}

func NewFileDef(path string) *FileDef {
	return &FileDef{path: path}
}

func (f *FileDef) Path() string {
	return f.path
}

func (f *FileDef) SetPath(v string) *FileDef {
	f.path = v
	return f
}

func (f *FileDef) Description() string {
	return f.desc
}

func (f *FileDef) SetDescription(v string) *FileDef {
	f.desc = v
	return f
}

// String returns description and path for messages, for example `mask configuration "typo3conf/mask.json"`.
func (f *FileDef) String() string {
	return strings.TrimSpace(f.desc+` "`+f.path) + `"`
}

func NewRawFile(path, content string) *RawFile {
	return &RawFile{FileDef: NewFileDef(path), Content: content}
}

func (f *RawFile) SetDescription(desc string) *RawFile {
	f.desc = desc
	return f
}

func (f *RawFile) ToRawFile() (*RawFile, error) {
	return f, nil
}
