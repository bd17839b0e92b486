package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/ougirez/wagedash/internal/pkg/constants"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadTable reads a CSV file in the given text encoding and infers column types.
func ReadTable(path, encoding string) (dataframe.DataFrame, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s does not exist", constants.ErrIO, path)
		}
		return dataframe.DataFrame{}, fmt.Errorf("%w: read %s: %w", constants.ErrIO, path, err)
	}

	text, err := decode(raw, encoding)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%s: %w", path, err)
	}

	df := dataframe.ReadCSV(bytes.NewReader(text))
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: %w", constants.ErrSchema, path, df.Err)
	}

	return df, nil
}

func decode(raw []byte, encoding string) ([]byte, error) {
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown encoding %q", constants.ErrDecode, encoding)
	}

	text, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", constants.ErrDecode, encoding, err)
	}

	// decoders substitute U+FFFD for byte sequences invalid in the encoding
	if bytes.ContainsRune(text, '\ufffd') {
		return nil, fmt.Errorf("%w: content is not valid %s", constants.ErrDecode, encoding)
	}

	return bytes.TrimPrefix(text, utf8BOM), nil
}
