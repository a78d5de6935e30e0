package mdblock

import (
	"bytes"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FrontMatterFormat names the delimiter style of a front matter block.
type FrontMatterFormat uint8

const (
	FrontMatterYAML FrontMatterFormat = iota + 1 // ---
	FrontMatterTOML                              // +++
	FrontMatterJSON                              // ;;;
)

func (f FrontMatterFormat) String() string {
	switch f {
	case FrontMatterYAML:
		return "yaml"
	case FrontMatterTOML:
		return "toml"
	case FrontMatterJSON:
		return "json"
	default:
		return "none"
	}
}

// FrontMatter is a metadata block at the very start of a document.
type FrontMatter struct {
	Format FrontMatterFormat
	// Raw holds the lines between the delimiters.
	Raw []byte
	// End is the offset of the first byte after the closing delimiter line.
	End int
}

// SplitFrontMatter detects a front matter block at the start of src. The
// opening delimiter must be the first line (a byte order mark is allowed),
// the next line must look like metadata, and a matching closing delimiter
// must follow. Anything else is ordinary Markdown: a lone "---" line is a
// thematic break.
func SplitFrontMatter(src []byte) (*FrontMatter, bool) {
	openLine, next, ok := nextLine(src, 0)
	if !ok {
		return nil, false
	}
	delim, format, ok := frontMatterDelimiter(openLine)
	if !ok {
		return nil, false
	}
	second, _, ok := nextLine(src, next)
	if !ok || !frontMatterMetadataLikely(second) {
		return nil, false
	}
	for off := next; off < len(src); {
		line, nx, _ := nextLine(src, off)
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return &FrontMatter{Format: format, Raw: src[next:off], End: nx}, true
		}
		off = nx
	}
	return nil, false
}

// Decode unmarshals the block into a map. YAML and JSON go through the YAML
// decoder, of which JSON is a subset; TOML uses a TOML decoder.
func (fm *FrontMatter) Decode() (map[string]any, error) {
	out := map[string]any{}
	if fm == nil || len(bytes.TrimSpace(fm.Raw)) == 0 {
		return out, nil
	}
	var err error
	switch fm.Format {
	case FrontMatterTOML:
		err = toml.Unmarshal(fm.Raw, &out)
	default:
		err = yaml.Unmarshal(fm.Raw, &out)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s front matter: %w", fm.Format, err)
	}
	return out, nil
}

func nextLine(src []byte, start int) ([]byte, int, bool) {
	if start >= len(src) {
		return nil, start, false
	}
	end, next := lineBounds(src, start)
	return src[start:end], next, true
}

func frontMatterDelimiter(line []byte) ([]byte, FrontMatterFormat, bool) {
	trimmed := bytes.TrimSpace(trimBOM(line))
	switch {
	case bytes.Equal(trimmed, []byte("---")):
		return trimmed, FrontMatterYAML, true
	case bytes.Equal(trimmed, []byte("+++")):
		return trimmed, FrontMatterTOML, true
	case bytes.Equal(trimmed, []byte(";;;")):
		return trimmed, FrontMatterJSON, true
	default:
		return nil, 0, false
	}
}

func frontMatterMetadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return true
	}
	return bytes.ContainsAny(trimmed, ":=")
}

func trimBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
}
