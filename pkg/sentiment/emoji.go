package sentiment

import (
	"encoding/json"
	"fmt"
	"os"
)

const NeutralEmoji = "😐"

func DefaultEmojis() map[string]string {
	return map[string]string{
		"anger":        "😣",
		"anticipation": "😮",
		"disgust":      "🤢",
		"fear":         "😨",
		"joy":          "😊",
		"sadness":      "😔",
		"surprise":     "😮",
		"trust":        "🤝",
		EmotionNeutral: NeutralEmoji,
	}
}

type emojiRecord struct {
	Emoji    string             `json:"emoji"`
	Emotions map[string]float64 `json:"emotions"`
}

// LoadEmojiFile reads a JSON array of {"emoji", "emotions"} records and maps each emoji to
// the first emotion flagged 1 on it, polarity scores ignored. Later records win.
func LoadEmojiFile(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read emoji file: %w", err)
	}

	var records []emojiRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode emoji file: %w", err)
	}

	emojis := make(map[string]string)
	for _, r := range records {
		if r.Emoji == "" || r.Emotions == nil {
			continue
		}
		for _, emotion := range Emotions {
			if emotion == "positive" || emotion == "negative" {
				continue
			}
			if r.Emotions[emotion] == 1 {
				emojis[emotion] = r.Emoji
				break
			}
		}
	}
	if _, ok := emojis[EmotionNeutral]; !ok {
		emojis[EmotionNeutral] = NeutralEmoji
	}
	return emojis, nil
}
