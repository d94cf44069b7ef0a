package matcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotaresponses/internal/corpus"
	"dotaresponses/internal/domain"
)

func mustCorpus(t *testing.T, doc string) *corpus.Corpus {
	t.Helper()
	c, err := corpus.Decode(strings.NewReader(doc), corpus.FormatJSON)
	require.NoError(t, err)
	return c
}

const axeDoc = `{"Axe_Responses": [
  {"text": "Culling Blade!", "url": "a"},
  {"text": "First blood is mine!", "url": "b"}
]}`

const heroesDoc = `{
  "Axe_responses": [
    {"text": "Culling Blade!", "url": "a1"},
    {"text": "Come and get it!", "url": "a2"},
    {"url": "a3"}
  ],
  "Tidehunter_responses": [
    {"text": "First blood!", "url": "t1"},
    {"text": "Ravage!", "url": "t2"}
  ],
  "Lina_responses": [
    {"text": "First blood, how nice.", "url": "l1"},
    {"text": "Come on, first blood", "url": "l2"}
  ]
}`

func TestWordMatchCount(t *testing.T) {
	cases := []struct {
		query, text string
		want        int
	}{
		{"first blood", "First blood is mine!", 2},
		{"FIRST", "first blood", 1},
		{"blood", "bloodbath", 0},
		{"blood", "a blood-soaked axe", 1},
		{"blood blood", "blood", 1},
		{"  first   blood  ", "First blood", 2},
		{"", "anything", 0},
		{"mine!", "it is mine!", 0},
		{"mine!", "mine!s", 1},
		{"a.c", "abc", 0},
		{"a.c", "a.c", 1},
		{"blood", "", 0},
		{"héros", "les Héros arrivent", 1},
		{"héro", "les héros", 0},
		{"_x", "a _x b", 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, WordMatchCount(tc.query, tc.text), "query %q text %q", tc.query, tc.text)
	}
}

func TestTokensAreDistinctAndFolded(t *testing.T) {
	assert.Equal(t, []string{"first", "blood"}, Tokens("First BLOOD first\tblood"))
	assert.Empty(t, Tokens(" \t\n"))
}

func TestFindBestResponseExamples(t *testing.T) {
	c := mustCorpus(t, axeDoc)

	m, ok := FindBestResponse(c, "first blood", "")
	require.True(t, ok)
	assert.Equal(t, "Axe_Responses", m.Group)
	assert.Equal(t, domain.Response{Text: "First blood is mine!", URL: "b"}, m.Response)
	assert.Equal(t, 2, m.Score)

	_, ok = FindBestResponse(c, "blade", "tide")
	assert.False(t, ok)

	m, ok = FindBestResponse(c, "blade", "AXE")
	require.True(t, ok)
	assert.Equal(t, "a", m.Response.URL)
}

func TestFindBestResponseNoTokens(t *testing.T) {
	c := mustCorpus(t, heroesDoc)
	for _, q := range []string{"", "   ", "\t\n"} {
		_, ok := FindBestResponse(c, q, "")
		assert.False(t, ok, "query %q", q)
	}
	_, ok := FindBestResponse(nil, "blood", "")
	assert.False(t, ok)
	_, ok = FindBestResponse(corpus.Empty(), "blood", "")
	assert.False(t, ok)
}

func TestFindBestResponseZeroScoreNeverQualifies(t *testing.T) {
	c := mustCorpus(t, heroesDoc)
	_, ok := FindBestResponse(c, "roshan", "")
	assert.False(t, ok)
}

func TestFindBestResponseTieKeepsEarliest(t *testing.T) {
	c := mustCorpus(t, heroesDoc)

	// "first blood" scores 2 for t1, l1 and l2; Tidehunter comes first.
	m, ok := FindBestResponse(c, "first blood", "")
	require.True(t, ok)
	assert.Equal(t, "t1", m.Response.URL)

	// inside one group the first record wins
	m, ok = FindBestResponse(c, "first blood", "lina")
	require.True(t, ok)
	assert.Equal(t, "l1", m.Response.URL)

	// a strictly better later record still replaces an earlier one
	m, ok = FindBestResponse(c, "come on first", "")
	require.True(t, ok)
	assert.Equal(t, "l2", m.Response.URL)
	assert.Equal(t, 3, m.Score)
}

func TestFindBestResponseIsMaximal(t *testing.T) {
	c := mustCorpus(t, heroesDoc)
	queries := []string{"first blood", "come get it", "ravage blade", "nice blood", "it on"}
	for _, q := range queries {
		m, ok := FindBestResponse(c, q, "")
		require.True(t, ok, q)
		for g := range c.Groups() {
			for i := 0; i < g.Len(); i++ {
				assert.LessOrEqual(t, WordMatchCount(q, g.Response(i).Text), m.Score, "query %q", q)
			}
		}
		assert.Equal(t, WordMatchCount(q, m.Response.Text), m.Score)
	}
}

func TestFindAllResponses(t *testing.T) {
	c := mustCorpus(t, heroesDoc)

	got := FindAllResponses(c, "FIRST BLOOD", "", DefaultGroupSuffix)
	require.Len(t, got, 2)
	assert.Equal(t, "Tidehunter_responses", got[0].Group)
	assert.Equal(t, "Tidehunter", got[0].Display)
	assert.Equal(t, []domain.Response{{Text: "First blood!", URL: "t1"}}, got[0].Responses)
	assert.Equal(t, "Lina", got[1].Display)
	assert.Equal(t, []string{"l1", "l2"}, urls(got[1].Responses))

	// substring, not whole word
	got = FindAllResponses(c, "rav", "", DefaultGroupSuffix)
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].Responses[0].URL)

	got = FindAllResponses(c, "first", "LIN", DefaultGroupSuffix)
	require.Len(t, got, 1)
	assert.Equal(t, "Lina_responses", got[0].Group)
}

func TestFindAllResponsesEveryRecordMatches(t *testing.T) {
	c := mustCorpus(t, heroesDoc)
	for _, q := range []string{"e", "blood", "!", "come"} {
		got := FindAllResponses(c, q, "", DefaultGroupSuffix)
		for _, gm := range got {
			require.NotEmpty(t, gm.Responses)
			for _, r := range gm.Responses {
				assert.Contains(t, strings.ToLower(r.Text), q)
			}
		}
	}
}

func TestFindAllResponsesEmptyQueryReturnsEverything(t *testing.T) {
	c := mustCorpus(t, `{"A_responses": [{"text": "x"}, {"url": "no text"}], "Empty_responses": [], "B": [{"text": "y"}]}`)

	got := FindAllResponses(c, "", "", DefaultGroupSuffix)
	require.Len(t, got, 2)
	assert.Equal(t, "A_responses", got[0].Group)
	assert.Len(t, got[0].Responses, 2)
	assert.Equal(t, "B", got[1].Display)

	got = FindAllResponses(c, "", "b", DefaultGroupSuffix)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Group)
}

func TestFindAllResponsesNoMatchIsEmpty(t *testing.T) {
	c := mustCorpus(t, heroesDoc)
	got := FindAllResponses(c, "roshan", "", DefaultGroupSuffix)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, FindAllResponses(nil, "x", "", DefaultGroupSuffix))
}

func TestFindAllResponsesDisplayCollision(t *testing.T) {
	c := mustCorpus(t, `{"Axe_responses": [{"text": "hey"}], "Axe": [{"text": "hey there"}]}`)
	got := FindAllResponses(c, "hey", "", DefaultGroupSuffix)
	require.Len(t, got, 2)
	assert.Equal(t, "Axe", got[0].Display)
	assert.Equal(t, "Axe", got[1].Display)

	byDisplay := got.ByDisplayName()
	assert.Len(t, byDisplay, 2)
	assert.Contains(t, byDisplay, "Axe_responses")
	assert.Contains(t, byDisplay, "Axe")
	assert.Equal(t, "hey there", byDisplay["Axe"][0].Text)
}

func TestFindAllResponsesFallbackKeyCollision(t *testing.T) {
	c := mustCorpus(t, `{
  "Axe_responses": [{"text": "hey one"}],
  "Axe": [{"text": "hey two"}],
  "Axe_responses_responses": [{"text": "hey three"}]
}`)
	got := FindAllResponses(c, "hey", "", DefaultGroupSuffix)
	require.Len(t, got, 3)
	assert.Equal(t, "Axe_responses", got[2].Display)

	byDisplay := got.ByDisplayName()
	require.Len(t, byDisplay, 3)
	assert.Equal(t, "hey one", byDisplay["Axe_responses"][0].Text)
	assert.Equal(t, "hey two", byDisplay["Axe"][0].Text)
	assert.Equal(t, "hey three", byDisplay["Axe_responses_responses"][0].Text)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Axe", DisplayName("Axe_Responses", DefaultGroupSuffix))
	assert.Equal(t, "Axe_Responses", DisplayName("Axe_Responses", ""))
	assert.Equal(t, "Announcer", DisplayName("Announcer_pack", "_pack"))
}

func urls(rs []domain.Response) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.URL
	}
	return out
}
