package glib

import (
	"bytes"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"unicode/utf8"
)

type Charset string

const (
	UTF8    = Charset("UTF-8")
	UTF16   = Charset("UTF-16")
	GB18030 = Charset("GB18030")
)

// TextDetectCharset picks the decoder for data: any BOM wins, otherwise
// invalid UTF-8 is taken as GB18030.
func TextDetectCharset(data []byte) Charset {

	if bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		return UTF8
	}

	if bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte{0xFE, 0xFF}) {
		return UTF16
	}

	if utf8.Valid(data) {
		return UTF8
	}

	return GB18030
}

// TextDecode turns file bytes into text with any byte order mark removed.
func TextDecode(data []byte) string {

	var xData []byte
	var xErr error

	switch TextDetectCharset(data) {
	case GB18030:
		xData, xErr = simplifiedchinese.GB18030.NewDecoder().Bytes(data)
	default:
		xData, _, xErr = transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	}

	if xErr != nil {
		return string(data)
	}

	return string(xData)
}
