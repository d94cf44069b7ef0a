package corpus

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotaresponses/internal/domain"
)

const groupedJSON = `{
  "Tidehunter_responses": [{"text": "Ravage!", "url": "t1"}],
  "Axe_Responses": [
    {"text": "Culling Blade!", "url": "a"},
    {"text": "First blood is mine!", "url": "b"},
    {"url": "c"}
  ],
  "Announcer_responses": []
}`

func TestDecodeJSONKeepsDocumentOrder(t *testing.T) {
	c, err := Decode(strings.NewReader(groupedJSON), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, []string{"Tidehunter_responses", "Axe_Responses", "Announcer_responses"}, c.Names())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 4, c.Size())

	axe, ok := c.Group("Axe_Responses")
	require.True(t, ok)
	require.Equal(t, 3, axe.Len())
	assert.Equal(t, domain.Response{Text: "First blood is mine!", URL: "b"}, axe.Response(1))
	assert.Equal(t, "first blood is mine!", axe.FoldedText(1))
	assert.Equal(t, "axe_responses", axe.FoldedName())

	missing := axe.Response(2)
	assert.False(t, missing.HasText())
	assert.Equal(t, "c", missing.AudioRef())
}

func TestDecodeFlatItems(t *testing.T) {
	doc := `[
	  {"name": "Axe", "text": "Culling Blade!", "sound_url": "a", "category": "Killing"},
	  {"name": "Lina", "text": "Fire!", "sound_url": "l"},
	  {"name": "Axe", "text": "Come and get it!", "sound_url": "b"}
	]`
	c, err := Decode(strings.NewReader(doc), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, []string{"Axe", "Lina"}, c.Names())
	axe, _ := c.Group("Axe")
	assert.Equal(t, []domain.Response{
		{Text: "Culling Blade!", URL: "a"},
		{Text: "Come and get it!", URL: "b"},
	}, axe.Responses())
}

func TestDecodeDuplicateKeyKeepsFirstPosition(t *testing.T) {
	doc := `{"A": [{"text": "one"}], "B": [], "A": [{"text": "two"}]}`
	c, err := Decode(strings.NewReader(doc), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, c.Names())
	a, _ := c.Group("A")
	assert.Equal(t, "two", a.Response(0).Text)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":    "",
		"scalar":   `"hello"`,
		"broken":   `{"Axe": [`,
		"bad type": `{"Axe": [{"text": 5}]}`,
		"trailing": `{} {}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc), FormatJSON)
			require.Error(t, err)
			var le *LoadError
			assert.True(t, errors.As(err, &le))
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	doc := `
Zeus_responses:
  - text: Lightning!
    url: z
Axe_responses:
  - text: Culling Blade!
    url: a
`
	c, err := Decode(strings.NewReader(doc), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeus_responses", "Axe_responses"}, c.Names())

	_, err = Decode(strings.NewReader(""), FormatYAML)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestEncodeDecodeAcrossFormats(t *testing.T) {
	src, err := Decode(strings.NewReader(groupedJSON), FormatJSON)
	require.NoError(t, err)

	for _, f := range []Format{FormatJSON, FormatYAML, FormatMsgpack} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, src, f))
			got, err := Decode(&buf, f)
			require.NoError(t, err)
			assert.Equal(t, src.Names(), got.Names())
			for g := range src.Groups() {
				other, ok := got.Group(g.Name())
				require.True(t, ok)
				assert.Equal(t, g.Responses(), other.Responses())
			}
		})
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, Empty(), Format("xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, Format(""), f)

	_, err = ParseFormat("toml")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	assert.Equal(t, FormatMsgpack, FormatFromPath("responses.msgpack"))
	assert.Equal(t, FormatYAML, FormatFromPath("/x/responses.yaml"))
	assert.Equal(t, FormatJSON, FormatFromPath("responses.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("responses"))
}

func TestLoadErrorCarriesSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	_, err := Load(path)
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, path, le.Source)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{nope"), 0o644))
	_, err = Load(bad)
	require.True(t, errors.As(err, &le))
	assert.Equal(t, bad, le.Source)
}

func TestLoadOrEmpty(t *testing.T) {
	c, err := LoadOrEmpty(filepath.Join(t.TempDir(), "missing.json"), "")
	require.Error(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 0, c.Len())

	path := filepath.Join(t.TempDir(), "responses.json")
	require.NoError(t, os.WriteFile(path, []byte(groupedJSON), 0o644))
	c, err = LoadOrEmpty(path, "")
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
}

func TestGroupResponsesIsACopy(t *testing.T) {
	c, err := Decode(strings.NewReader(groupedJSON), FormatJSON)
	require.NoError(t, err)
	axe, _ := c.Group("Axe_Responses")

	rs := axe.Responses()
	rs[0].Text = "changed"
	assert.Equal(t, "Culling Blade!", axe.Response(0).Text)
}

func TestGroupsIteratorStopsEarly(t *testing.T) {
	c, err := Decode(strings.NewReader(groupedJSON), FormatJSON)
	require.NoError(t, err)
	var seen []string
	for g := range c.Groups() {
		seen = append(seen, g.Name())
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"Tidehunter_responses", "Axe_Responses"}, seen)
}
