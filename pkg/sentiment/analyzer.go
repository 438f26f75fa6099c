package sentiment

import (
	"context"
	"fmt"
	"math"
	"strings"

	"skill-exchange-ai/pkg/utils"
)

const (
	LanguageAuto      = "auto"
	LanguageEnglish   = "eng"
	LanguageFrench    = "fra"
	LanguageArabic    = "ara"
	LanguageTunisian  = "tun"
	LanguageUniversal = "universal"

	EmotionNeutral = "neutral"
)

// Emotions are the scored dimensions, in reporting order.
var Emotions = []string{
	"anger", "anticipation", "disgust", "fear", "joy",
	"sadness", "surprise", "trust", "positive", "negative",
}

// supportedLanguages may be requested explicitly.
var supportedLanguages = []string{LanguageEnglish, LanguageFrench, LanguageArabic, LanguageTunisian}

// detectionOrder is the order languages are compared in; the first with the most hits wins.
var detectionOrder = []string{LanguageEnglish, LanguageFrench, LanguageArabic, LanguageTunisian, LanguageUniversal}

// Entry is one lexicon word in one language.
type Entry struct {
	Word     string
	Language string
	Emotions map[string]float64
}

// Lexicon returns every entry recorded for a word, across languages.
type Lexicon interface {
	Lookup(ctx context.Context, word string) ([]Entry, error)
}

type Result struct {
	Emotions map[string]float64
	Emoji    string
	Language string
	Dominant string
	// Matched lists the words that were found in the lexicon.
	Matched []string
}

type Analyzer struct {
	lexicon Lexicon
	emojis  map[string]string
	guess   Guesser
}

type Option func(*Analyzer)

// WithEmojis replaces the default emotion to emoji mapping.
func WithEmojis(emojis map[string]string) Option {
	return func(a *Analyzer) {
		if len(emojis) > 0 {
			a.emojis = emojis
		}
	}
}

// WithGuesser replaces the statistical language guesser used when no lexicon word matches.
func WithGuesser(g Guesser) Option {
	return func(a *Analyzer) { a.guess = g }
}

func NewAnalyzer(lexicon Lexicon, opts ...Option) *Analyzer {
	a := &Analyzer{
		lexicon: lexicon,
		emojis:  DefaultEmojis(),
		guess:   GuessLanguage,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ResolveLanguage picks the lexicon language for a message. "auto" runs detection,
// a supported code is used as-is, anything else is English.
func (a *Analyzer) ResolveLanguage(ctx context.Context, message, requested string) (string, error) {
	if requested == "" || requested == LanguageAuto {
		return a.DetectLanguage(ctx, message)
	}
	for _, lang := range supportedLanguages {
		if requested == lang {
			return lang, nil
		}
	}
	return LanguageEnglish, nil
}

// DetectLanguage counts lexicon hits per language. Without any hit it falls back to the
// statistical guesser, except for messages under three characters which are English.
func (a *Analyzer) DetectLanguage(ctx context.Context, message string) (string, error) {
	hits := make(map[string]int, len(detectionOrder))
	for _, word := range utils.Tokenize(message) {
		entries, err := a.lexicon.Lookup(ctx, word)
		if err != nil {
			return "", fmt.Errorf("lexicon lookup %q: %w", word, err)
		}
		for _, lang := range detectionOrder {
			if hasLanguage(entries, lang) {
				hits[lang]++
			}
		}
	}

	best, bestHits := "", 0
	for _, lang := range detectionOrder {
		if hits[lang] > bestHits {
			best, bestHits = lang, hits[lang]
		}
	}
	if bestHits > 0 {
		return best, nil
	}

	if len([]rune(strings.TrimSpace(message))) < 3 {
		return LanguageEnglish, nil
	}
	code, err := a.guess(message)
	if err != nil {
		return LanguageEnglish, nil
	}
	return mapGuessedLanguage(code), nil
}

// Analyze averages the emotion scores of every lexicon word in the message, looked up in
// the resolved language and the universal lexicon, rounded to two decimals.
func (a *Analyzer) Analyze(ctx context.Context, message, requested string) (Result, error) {
	lang, err := a.ResolveLanguage(ctx, message, requested)
	if err != nil {
		return Result{}, err
	}

	totals := make(map[string]float64, len(Emotions))
	for _, emotion := range Emotions {
		totals[emotion] = 0
	}

	var matched []string
	for _, word := range utils.Tokenize(message) {
		entries, err := a.lexicon.Lookup(ctx, word)
		if err != nil {
			return Result{}, fmt.Errorf("lexicon lookup %q: %w", word, err)
		}
		entry, ok := pick(entries, lang)
		if !ok {
			continue
		}
		matched = append(matched, word)
		for _, emotion := range Emotions {
			totals[emotion] += entry.Emotions[emotion]
		}
	}

	if len(matched) > 0 {
		for emotion, v := range totals {
			totals[emotion] = v / float64(len(matched))
		}
	}
	for emotion, v := range totals {
		totals[emotion] = math.Round(v*100) / 100
	}

	dominant := Dominant(totals)
	return Result{
		Emotions: totals,
		Emoji:    a.Emoji(dominant),
		Language: lang,
		Dominant: dominant,
		Matched:  matched,
	}, nil
}

// Emoji returns the emoji for an emotion, the neutral face when unmapped.
func (a *Analyzer) Emoji(emotion string) string {
	if e, ok := a.emojis[emotion]; ok {
		return e
	}
	return NeutralEmoji
}

// Neutral is the result used when analysis cannot run.
func Neutral(language string) Result {
	emotions := make(map[string]float64, len(Emotions))
	for _, emotion := range Emotions {
		emotions[emotion] = 0
	}
	return Result{Emotions: emotions, Emoji: NeutralEmoji, Language: language, Dominant: EmotionNeutral}
}

// Dominant returns the highest strictly positive emotion, earliest first on ties.
// The polarity scores map onto joy and sadness.
func Dominant(emotions map[string]float64) string {
	dominant, best := EmotionNeutral, 0.0
	for _, emotion := range Emotions {
		if score := emotions[emotion]; score > best {
			best = score
			dominant = emotion
		}
	}
	switch dominant {
	case "positive":
		return "joy"
	case "negative":
		return "sadness"
	}
	return dominant
}

// pick prefers the entry in lang and falls back to the universal lexicon.
func pick(entries []Entry, lang string) (Entry, bool) {
	for _, want := range []string{lang, LanguageUniversal} {
		for _, e := range entries {
			if e.Language == want {
				return e, true
			}
		}
	}
	return Entry{}, false
}

func hasLanguage(entries []Entry, lang string) bool {
	for _, e := range entries {
		if e.Language == lang {
			return true
		}
	}
	return false
}
