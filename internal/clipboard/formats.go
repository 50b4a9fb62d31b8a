// Package clipboard implements the clipboard-text and clipboard-data
// utilities on top of an interfaces.Clipboard.
package clipboard

import (
	"github.com/Norgate-AV/wintools/internal/apperr"
	"github.com/Norgate-AV/wintools/internal/argv"
)

// Standard clipboard formats.
const (
	CF_TEXT            = 1
	CF_BITMAP          = 2
	CF_METAFILEPICT    = 3
	CF_SYLK            = 4
	CF_DIF             = 5
	CF_TIFF            = 6
	CF_OEMTEXT         = 7
	CF_DIB             = 8
	CF_PALETTE         = 9
	CF_PENDATA         = 10
	CF_RIFF            = 11
	CF_WAVE            = 12
	CF_UNICODETEXT     = 13
	CF_ENHMETAFILE     = 14
	CF_HDROP           = 15
	CF_LOCALE          = 16
	CF_DIBV5           = 17
	CF_OWNERDISPLAY    = 0x0080
	CF_DSPTEXT         = 0x0081
	CF_DSPBITMAP       = 0x0082
	CF_DSPMETAFILEPICT = 0x0083
	CF_DSPENHMETAFILE  = 0x008E
	CF_PRIVATEFIRST    = 0x0200
	CF_PRIVATELAST     = 0x02FF
	CF_GDIOBJFIRST     = 0x0300
	CF_GDIOBJLAST      = 0x03FF
)

// CustomFormatName is reported for formats with no standard or registered name.
const CustomFormatName = "CUSTOM"

var standardNames = map[uint32]string{
	CF_TEXT:            "CF_TEXT",
	CF_BITMAP:          "CF_BITMAP",
	CF_METAFILEPICT:    "CF_METAFILEPICT",
	CF_SYLK:            "CF_SYLK",
	CF_DIF:             "CF_DIF",
	CF_TIFF:            "CF_TIFF",
	CF_OEMTEXT:         "CF_OEMTEXT",
	CF_DIB:             "CF_DIB",
	CF_PALETTE:         "CF_PALETTE",
	CF_PENDATA:         "CF_PENDATA",
	CF_RIFF:            "CF_RIFF",
	CF_WAVE:            "CF_WAVE",
	CF_UNICODETEXT:     "CF_UNICODETEXT",
	CF_ENHMETAFILE:     "CF_ENHMETAFILE",
	CF_HDROP:           "CF_HDROP",
	CF_LOCALE:          "CF_LOCALE",
	CF_DIBV5:           "CF_DIBV5",
	CF_OWNERDISPLAY:    "CF_OWNERDISPLAY",
	CF_DSPTEXT:         "CF_DSPTEXT",
	CF_DSPBITMAP:       "CF_DSPBITMAP",
	CF_DSPMETAFILEPICT: "CF_DSPMETAFILEPICT",
	CF_DSPENHMETAFILE:  "CF_DSPENHMETAFILE",
	CF_PRIVATEFIRST:    "CF_PRIVATEFIRST",
	CF_PRIVATELAST:     "CF_PRIVATELAST",
	CF_GDIOBJFIRST:     "CF_GDIOBJFIRST",
	CF_GDIOBJLAST:      "CF_GDIOBJLAST",
}

// StandardName returns the symbolic name of a predefined format, or "".
func StandardName(format uint32) string {
	return standardNames[format]
}

// ParseFormat parses a positive decimal or 0x-prefixed format code.
func ParseFormat(tok argv.Token) (uint32, error) {
	v, err := argv.ParseInt(tok.Raw)
	if err != nil || v <= 0 || v > 0xFFFFFFFF {
		return 0, apperr.AtToken(apperr.KindInvalidArgument, tok.Raw, tok.Index, "invalid clipboard format")
	}

	return uint32(v), nil
}
