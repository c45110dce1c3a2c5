package journal

// Lexicons for the sentiment heuristic. Membership is checked per token, so
// list order and repetition don't matter.
var positiveWords = wordSet(
	"happy", "good", "great", "wonderful", "excellent", "amazing", "awesome",
	"love", "loved", "fantastic", "brilliant", "perfect", "beautiful", "grateful",
	"thankful", "blessed", "joy", "joyful", "excited", "proud", "success",
	"accomplished", "delighted", "pleased", "superb", "outstanding", "epic",
	"incredible",
)

var negativeWords = wordSet(
	"sad", "bad", "terrible", "awful", "horrible", "hate", "hated", "angry",
	"frustrated", "disappointed", "depressed", "miserable", "anxious", "worried",
	"stressed", "scared", "fear", "afraid", "failed", "failure", "waste", "lost",
	"struggle", "pain", "hurt", "annoyed", "upset", "useless", "stupid",
	"disgusting", "pathetic", "difficult", "crisis",
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// AnalyzeSentiment scores text in [-1, 1] by counting positive and negative
// lexicon hits: (p - n) / (p + n), or 0 when the text has no lexicon words.
// It is a pure function of the text; scoring the same text always yields the
// same value.
func AnalyzeSentiment(text string) float64 {
	var positive, negative int
	for _, word := range tokenize(text) {
		if _, ok := positiveWords[word]; ok {
			positive++
		}
		if _, ok := negativeWords[word]; ok {
			negative++
		}
	}

	total := positive + negative
	if total == 0 {
		return 0
	}

	score := float64(positive-negative) / float64(total)
	return clamp(score, -1, 1)
}

// tokenize splits text into lowercased maximal runs of letters, digits and
// underscores.
func tokenize(text string) []string {
	var tokens []string
	start := -1

	runes := []rune(text)
	for i, r := range runes {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, lower(runes[start:i]))
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, lower(runes[start:]))
	}

	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

func lower(runes []rune) string {
	out := make([]rune, len(runes))
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out[i] = r
	}
	return string(out)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
