package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

type InputFormat string

const (
	FormatCSV  InputFormat = "csv"
	FormatXLSX InputFormat = "xlsx"
)

// ErrUnsupportedInput is returned when the input is neither CSV nor a workbook.
var ErrUnsupportedInput = errors.New("unsupported input file type")

var zipMagic = []byte("PK\x03\x04")

// DetectInputFormat decides how to read path. Known extensions win; anything
// else is sniffed from the first bytes (zip container means workbook, valid
// UTF-8 text means CSV).
func DetectInputFormat(path string) (InputFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".xls":
		return "", fmt.Errorf("%w: legacy .xls workbooks are not supported: %s", ErrUnsupportedInput, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	return sniffFormat(path, head[:n])
}

func sniffFormat(path string, head []byte) (InputFormat, error) {
	if bytes.HasPrefix(head, zipMagic) {
		return FormatXLSX, nil
	}
	if len(head) > 0 && bytes.IndexByte(head, 0) < 0 && utf8.Valid(trimPartialRune(head)) {
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedInput, path)
}

// trimPartialRune drops a multi-byte rune cut off at the end of the sniff window.
func trimPartialRune(b []byte) []byte {
	for i := 0; i < utf8.UTFMax && len(b) > 0; i++ {
		if utf8.Valid(b) {
			return b
		}
		b = b[:len(b)-1]
	}
	return b
}
