package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

// Label thresholds on the VADER compound score.
const (
	positiveThreshold = 0.20
	negativeThreshold = -0.20
)

var analyzer = govader.NewSentimentIntensityAnalyzer()

func RemoveLinks(input string) string {
	linkPattern := regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text

	urlPattern := regexp.MustCompile(`https?://\S+|www\.\S+`)
	input = urlPattern.ReplaceAllString(input, "")

	return input
}

// ConvertMarkdownToText flattens any markdown the upstream left in the
// article body so VADER scores prose, not syntax.
func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := strings.Join(strings.Fields(string(output)), " ")

	return RemoveLinks(plainText)
}

// Analyze scores article text with VADER and maps the compound score to a
// positive/neutral/negative label. Used when the AI upstream cannot supply a
// sentiment (e.g. an unparseable model reply).
func Analyze(text string) (float64, string) {
	plainText := ConvertMarkdownToText(text)

	scores := analyzer.PolarityScores(plainText)
	score := scores.Compound

	var label string
	if score >= positiveThreshold {
		label = "positive"
	} else if score <= negativeThreshold {
		label = "negative"
	} else {
		label = "neutral"
	}

	return score, label
}
