package console

import (
	"encoding/hex"
	"fmt"
	"strings"

	"dekarrin/replaykk/internal/misc"
	"dekarrin/replaykk/internal/replays"
	"dekarrin/replaykk/internal/value"
	"github.com/kballard/go-shellquote"
)

// Output formats understood by FormatValue.
const (
	FormatYAML = "yaml"
	FormatHex  = "hex"
	FormatText = "text"
)

// summaryWidth is the widest a value summary in a listing may be.
const summaryWidth = 60

// FormatValue renders v for display. FormatYAML gives a YAML document,
// FormatHex the hex of its CBOR encoding and FormatText the compact one-line
// form.
func FormatValue(v value.Value, format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatYAML, "":
		data, err := value.ToYAML(v)
		if err != nil {
			return "", err
		}
		return strings.TrimSuffix(string(data), "\n"), nil
	case FormatHex:
		data, err := value.Encode(v)
		if err != nil {
			return "", err
		}
		return hex.EncodeToString(data), nil
	case FormatText:
		return v.String(), nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

// QuoteKey gives key in a form that can be typed back into the shell.
func QuoteKey(key string) string {
	return shellquote.Join(key)
}

// Summarize gives a one-line description of a record. A record with a text
// "name" field is described by that name; anything else by its compact form.
func Summarize(v value.Value) string {
	if name, ok := v.Field("name"); ok {
		if text, ok := name.AsText(); ok {
			return misc.Truncate(text, summaryWidth)
		}
	}
	return misc.Truncate(v.String(), summaryWidth)
}

// FormatInfo renders the details of a record file, one per line.
func FormatInfo(info replays.RecordInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("key:         %s\n", QuoteKey(info.Key)))
	sb.WriteString(fmt.Sprintf("path:        %s\n", info.Path))
	sb.WriteString(fmt.Sprintf("size:        %s\n", misc.CountOf("byte", "bytes", int(info.Size))))
	sb.WriteString(fmt.Sprintf("modified:    %s\n", info.ModTime.Format("2006-01-02T15:04:05Z07:00")))
	sb.WriteString(fmt.Sprintf("blake2b-256: %s", info.Digest))
	return sb.String()
}
