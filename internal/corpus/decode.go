package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
	"gopkg.in/yaml.v3"

	"dotaresponses/internal/domain"
)

// Format names a corpus encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat resolves a format name. The empty string yields "" so callers
// can fall back to FormatFromPath.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return "", nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp", "mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath picks the encoding from the file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".msgpack", ".mp", ".mpk":
		return FormatMsgpack
	default:
		return FormatJSON
	}
}

// docRecord is one response as it appears on disk. The grouped document uses
// text/url, the spider's flat item list uses name/text/sound_url.
type docRecord struct {
	Name     string `json:"name" yaml:"name" msgpack:"name"`
	Text     string `json:"text" yaml:"text" msgpack:"text"`
	URL      string `json:"url" yaml:"url" msgpack:"url"`
	SoundURL string `json:"sound_url" yaml:"sound_url" msgpack:"sound_url"`
}

func (r docRecord) response() domain.Response {
	url := r.URL
	if url == "" {
		url = r.SoundURL
	}
	return domain.Response{Text: r.Text, URL: url}
}

func toResponses(recs []docRecord) []domain.Response {
	out := make([]domain.Response, len(recs))
	for i, r := range recs {
		out[i] = r.response()
	}
	return out
}

// Load reads a corpus file, choosing the encoding from its extension.
func Load(path string) (*Corpus, error) {
	return LoadFormat(path, "")
}

// LoadFormat reads a corpus file in the given encoding. An empty format is
// resolved from the extension. Every failure is a *LoadError.
func LoadFormat(path string, format Format) (*Corpus, error) {
	if format == "" {
		format = FormatFromPath(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()
	c, err := Decode(f, format)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Source = path
			return nil, le
		}
		return nil, &LoadError{Source: path, Err: err}
	}
	return c, nil
}

// LoadOrEmpty is the serving entry point: on failure it returns an empty
// corpus together with the error, leaving the caller to log it.
func LoadOrEmpty(path string, format Format) (*Corpus, error) {
	c, err := LoadFormat(path, format)
	if err != nil {
		return Empty(), err
	}
	return c, nil
}

// Decode parses a corpus document. The top level is either a mapping from
// group name to a list of records, or a flat list of records carrying a
// "name" field. Group and record order follow the document.
func Decode(r io.Reader, format Format) (*Corpus, error) {
	var (
		c   *Corpus
		err error
	)
	switch format {
	case FormatJSON, "":
		c, err = decodeJSON(r)
	case FormatYAML:
		c, err = decodeYAML(r)
	case FormatMsgpack:
		c, err = decodeMsgpack(r)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, &LoadError{Source: string(format), Err: err}
	}
	return c, nil
}

func decodeJSON(r io.Reader) (*Corpus, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyDocument
	}
	if err != nil {
		return nil, err
	}
	b := NewBuilder()
	switch tok {
	case json.Delim('{'):
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := keyTok.(string)
			var recs []docRecord
			if err := dec.Decode(&recs); err != nil {
				return nil, fmt.Errorf("group %q: %w", key, err)
			}
			b.Set(key, toResponses(recs))
		}
	case json.Delim('['):
		for dec.More() {
			var rec docRecord
			if err := dec.Decode(&rec); err != nil {
				return nil, err
			}
			b.Append(rec.Name, rec.response())
		}
	default:
		return nil, fmt.Errorf("unexpected top-level value %v", tok)
	}
	// closing delimiter
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after document")
	}
	return b.Build(), nil
}

func decodeYAML(r io.Reader) (*Corpus, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, ErrEmptyDocument
	}
	root := doc.Content[0]
	b := NewBuilder()
	switch root.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			key := root.Content[i].Value
			var recs []docRecord
			if err := root.Content[i+1].Decode(&recs); err != nil {
				return nil, fmt.Errorf("group %q: %w", key, err)
			}
			b.Set(key, toResponses(recs))
		}
	case yaml.SequenceNode:
		for _, item := range root.Content {
			var rec docRecord
			if err := item.Decode(&rec); err != nil {
				return nil, err
			}
			b.Append(rec.Name, rec.response())
		}
	default:
		return nil, fmt.Errorf("unexpected top-level node at line %d", root.Line)
	}
	return b.Build(), nil
}

func decodeMsgpack(r io.Reader) (*Corpus, error) {
	dec := msgpack.NewDecoder(r)
	code, err := dec.PeekCode()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyDocument
	}
	if err != nil {
		return nil, err
	}
	b := NewBuilder()
	switch {
	case msgpcode.IsFixedMap(code) || code == msgpcode.Map16 || code == msgpcode.Map32:
		n, err := dec.DecodeMapLen()
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			key, err := dec.DecodeString()
			if err != nil {
				return nil, err
			}
			var recs []docRecord
			if err := dec.Decode(&recs); err != nil {
				return nil, fmt.Errorf("group %q: %w", key, err)
			}
			b.Set(key, toResponses(recs))
		}
	case msgpcode.IsFixedArray(code) || code == msgpcode.Array16 || code == msgpcode.Array32:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			var rec docRecord
			if err := dec.Decode(&rec); err != nil {
				return nil, err
			}
			b.Append(rec.Name, rec.response())
		}
	default:
		return nil, fmt.Errorf("unexpected top-level code 0x%02x", code)
	}
	return b.Build(), nil
}
