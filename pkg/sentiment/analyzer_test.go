package sentiment

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapLexicon struct {
	entries map[string][]Entry
	err     error
}

func (m *mapLexicon) Lookup(ctx context.Context, word string) ([]Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.entries[word], nil
}

func testLexicon() *mapLexicon {
	return &mapLexicon{entries: map[string][]Entry{
		"happy": {{Word: "happy", Language: "eng", Emotions: map[string]float64{"joy": 1, "positive": 1, "trust": 1}}},
		"sad":   {{Word: "sad", Language: "eng", Emotions: map[string]float64{"sadness": 1, "negative": 1}}},
		"great": {{Word: "great", Language: "eng", Emotions: map[string]float64{"positive": 1}}},
		"heureux": {
			{Word: "heureux", Language: "fra", Emotions: map[string]float64{"joy": 1, "positive": 1}},
		},
		"triste": {
			{Word: "triste", Language: "fra", Emotions: map[string]float64{"sadness": 1}},
			{Word: "triste", Language: "universal", Emotions: map[string]float64{"sadness": 0.5}},
		},
		"lol": {{Word: "lol", Language: "universal", Emotions: map[string]float64{"joy": 1}}},
	}}
}

func failingGuesser(text string) (string, error) {
	return "", errors.New("no guess")
}

func TestAnalyze_AveragesMatchedWords(t *testing.T) {
	a := NewAnalyzer(testLexicon(), WithGuesser(failingGuesser))

	result, err := a.Analyze(context.Background(), "I am happy, not sad!", "auto")
	require.NoError(t, err)

	assert.Equal(t, "eng", result.Language)
	assert.Equal(t, []string{"happy", "sad"}, result.Matched)
	assert.Equal(t, 0.5, result.Emotions["joy"])
	assert.Equal(t, 0.5, result.Emotions["sadness"])
	assert.Equal(t, 0.5, result.Emotions["positive"])
	assert.Equal(t, 0.0, result.Emotions["fear"])
	assert.Len(t, result.Emotions, len(Emotions))
	assert.Equal(t, "joy", result.Dominant, "first highest emotion wins")
	assert.Equal(t, "😊", result.Emoji)
}

func TestAnalyze_RoundsToTwoDecimals(t *testing.T) {
	a := NewAnalyzer(testLexicon(), WithGuesser(failingGuesser))

	result, err := a.Analyze(context.Background(), "happy sad sad", "eng")
	require.NoError(t, err)
	assert.Equal(t, 0.33, result.Emotions["joy"])
	assert.Equal(t, 0.67, result.Emotions["sadness"])
	assert.Equal(t, "sadness", result.Dominant)
	assert.Equal(t, "😔", result.Emoji)
}

func TestAnalyze_NoMatchIsNeutral(t *testing.T) {
	a := NewAnalyzer(testLexicon(), WithGuesser(failingGuesser))

	result, err := a.Analyze(context.Background(), "the weather", "eng")
	require.NoError(t, err)
	assert.Equal(t, EmotionNeutral, result.Dominant)
	assert.Equal(t, NeutralEmoji, result.Emoji)
	assert.Empty(t, result.Matched)
}

func TestAnalyze_FallsBackToUniversalLexicon(t *testing.T) {
	a := NewAnalyzer(testLexicon(), WithGuesser(failingGuesser))

	result, err := a.Analyze(context.Background(), "triste", "eng")
	require.NoError(t, err)
	assert.Equal(t, 0.5, result.Emotions["sadness"])

	result, err = a.Analyze(context.Background(), "triste", "fra")
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Emotions["sadness"])
}

func TestAnalyze_LexiconErrorPropagates(t *testing.T) {
	lex := testLexicon()
	lex.err = errors.New("db down")
	a := NewAnalyzer(lex)

	_, err := a.Analyze(context.Background(), "happy", "eng")
	assert.Error(t, err)
}

func TestResolveLanguage(t *testing.T) {
	guessed := func(code string) Guesser {
		return func(string) (string, error) { return code, nil }
	}

	tests := []struct {
		name      string
		message   string
		requested string
		guesser   Guesser
		expected  string
	}{
		{"explicit supported", "anything", "tun", failingGuesser, "tun"},
		{"explicit unsupported", "anything", "deu", failingGuesser, "eng"},
		{"lexicon majority french", "heureux triste happy", "auto", failingGuesser, "fra"},
		{"tie keeps earlier language", "happy heureux", "auto", failingGuesser, "eng"},
		{"universal only", "lol", "", failingGuesser, "universal"},
		{"short message", "ok", "auto", guessed("fr"), "eng"},
		{"guesser french", "bonjour tout le monde", "auto", guessed("fr"), "fra"},
		{"guesser arabic", "مرحبا بكم جميعا", "auto", guessed("ar"), "ara"},
		{"guesser other", "hallo zusammen", "auto", guessed("de"), "eng"},
		{"guesser failure", "hallo zusammen", "auto", failingGuesser, "eng"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnalyzer(testLexicon(), WithGuesser(tt.guesser))
			lang, err := a.ResolveLanguage(context.Background(), tt.message, tt.requested)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, lang)
		})
	}
}

func TestDominant(t *testing.T) {
	assert.Equal(t, "joy", Dominant(map[string]float64{"positive": 0.8, "joy": 0.2}))
	assert.Equal(t, "sadness", Dominant(map[string]float64{"negative": 0.4}))
	assert.Equal(t, "anger", Dominant(map[string]float64{"anger": 0.3, "fear": 0.3}))
	assert.Equal(t, EmotionNeutral, Dominant(map[string]float64{}))
}

func TestLoadEmojiFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emojis.json")
	content := `[
		{"emoji": "😡", "emotions": {"anger": 1, "negative": 1}},
		{"emoji": "👍", "emotions": {"positive": 1}},
		{"emoji": "🥳", "emotions": {"joy": 1}},
		{"name": "broken"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	emojis, err := LoadEmojiFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"anger":        "😡",
		"joy":          "🥳",
		EmotionNeutral: NeutralEmoji,
	}, emojis)

	a := NewAnalyzer(testLexicon(), WithEmojis(emojis))
	assert.Equal(t, "🥳", a.Emoji("joy"))
	assert.Equal(t, NeutralEmoji, a.Emoji("trust"))
}

func TestLoadEmojiFile_Missing(t *testing.T) {
	_, err := LoadEmojiFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestNeutral(t *testing.T) {
	r := Neutral("eng")
	assert.Equal(t, NeutralEmoji, r.Emoji)
	assert.Len(t, r.Emotions, len(Emotions))
}
