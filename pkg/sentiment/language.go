package sentiment

import (
	"strings"

	"github.com/endeveit/guesslanguage"
)

// Guesser returns an ISO 639-1 code for a text.
type Guesser func(text string) (string, error)

// GuessLanguage is the trigram based guesser used when the lexicon gives no signal.
func GuessLanguage(text string) (string, error) {
	return guesslanguage.Guess(text)
}

func mapGuessedLanguage(code string) string {
	switch strings.ToLower(code) {
	case "fr":
		return LanguageFrench
	case "ar":
		return LanguageArabic
	default:
		return LanguageEnglish
	}
}
