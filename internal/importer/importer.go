package importer

import (
	"crypto/sha256"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"

	"github.com/dshills/swotboard/internal/schema"
	"github.com/dshills/swotboard/internal/schema/validate"
)

// File holds an import file read from disk.
type File struct {
	Path     string
	Hash     string // "sha256:<hex>"
	Contents string
	Size     int
}

// LoadFile reads an import file. It does not parse it.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "reading import file", goerr.V("path", path))
	}
	if !utf8.Valid(data) {
		return nil, goerr.New("import file is not valid UTF-8",
			goerr.V("path", path), goerr.T(validate.ErrTagMalformedJSON))
	}

	sum := sha256.Sum256(data)
	return &File{
		Path:     path,
		Hash:     fmt.Sprintf("sha256:%x", sum),
		Contents: string(data),
		Size:     len(data),
	}, nil
}

// Import parses contents and normalizes the result. The only failure is unparseable
// JSON, tagged validate.ErrTagMalformedJSON; any parseable value yields a valid set.
func Import(contents string) (schema.AnalysisSet, error) {
	return ImportWith(&validate.Normalizer{}, contents)
}

// ImportWith is Import with an explicit normalizer.
func ImportWith(n *validate.Normalizer, contents string) (schema.AnalysisSet, error) {
	raw, err := validate.DecodeJSON(contents)
	if err != nil {
		return schema.AnalysisSet{}, goerr.Wrap(err, "import file is not valid JSON")
	}
	return n.Normalize(raw), nil
}
