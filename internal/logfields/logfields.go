// Package logfields holds canonical slog attribute keys for the parser.
package logfields

import "log/slog"

// Canonical log field names to avoid drift across files.
const (
	KeyRecognizer = "recognizer"
	KeyLine       = "line"
	KeyOffset     = "offset"
	KeyCeiling    = "ceiling"
	KeyLimit      = "limit"
	KeyKind       = "kind"
	KeyLabel      = "label"
	KeyProbe      = "probe"
	KeyDepth      = "depth"
	KeySections   = "sections"
	KeyError      = "error"
)

func Recognizer(name string) slog.Attr { return slog.String(KeyRecognizer, name) }
func Line(n int) slog.Attr             { return slog.Int(KeyLine, n) }
func Offset(n int) slog.Attr           { return slog.Int(KeyOffset, n) }
func Ceiling(name string) slog.Attr    { return slog.String(KeyCeiling, name) }
func Limit(n int) slog.Attr            { return slog.Int(KeyLimit, n) }
func Kind(k string) slog.Attr          { return slog.String(KeyKind, k) }
func Label(l string) slog.Attr         { return slog.String(KeyLabel, l) }
func Probe(p string) slog.Attr         { return slog.String(KeyProbe, p) }
func Depth(d int) slog.Attr            { return slog.Int(KeyDepth, d) }
func Sections(n int) slog.Attr         { return slog.Int(KeySections, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
