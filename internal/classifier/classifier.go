package classifier

import (
	"regexp"
	"strings"

	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/models"
)

// UnknownConfidence is returned whenever no rule group matches.
const UnknownConfidence = 0.30

type Classifier interface {
	Classify(text string) (models.Intent, float64)
}

// ruleGroup is one ordered unit of the classifier: an intent, the keywords
// and patterns that vote for it, and the confidence it reports on a match.
type ruleGroup struct {
	intent   models.Intent
	weight   float64
	keywords *regexp.Regexp
	patterns []*regexp.Regexp
}

func (g *ruleGroup) matches(text string) bool {
	if g.keywords != nil && g.keywords.MatchString(text) {
		return true
	}
	for _, p := range g.patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// keywordSet compiles a list of plain keywords into a single case-insensitive
// word-boundary alternation.
func keywordSet(words ...string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// RuleClassifier resolves intents with ordered keyword and pattern groups.
// The first group that matches wins, so group order is the tie-breaker for
// overlapping vocabulary: the guard runs before everything, outlet words beat
// product words, product words beat arithmetic, and arithmetic beats bare
// price words. Identical input always yields the identical result.
type RuleClassifier struct {
	groups []ruleGroup
}

func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{groups: []ruleGroup{
		{
			// Injection-shaped and code-shaped input is answered politely and
			// never reaches the catalog path.
			intent: models.IntentOffTopic,
			weight: 0.80,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(?:drop|truncate|alter)\s+table\b`),
				regexp.MustCompile(`(?i)\bdelete\s+from\b`),
				regexp.MustCompile(`(?i)\binsert\s+into\b`),
				regexp.MustCompile(`(?i)\bselect\b.*\bfrom\b`),
				regexp.MustCompile(`(?i)\bunion\s+select\b`),
				regexp.MustCompile(`(?i)<\s*/?\s*script\b`),
				regexp.MustCompile(`(?i)\bjavascript\s*:`),
				regexp.MustCompile(`(?:;|')\s*--`),
				regexp.MustCompile(`(?i)\bexec\s*\(`),
			},
		},
		{
			intent: models.IntentOutletQuery,
			weight: 0.90,
			keywords: keywordSet(
				"outlet", "outlets", "store", "stores", "branch", "branches",
				"location", "locations", "address", "opening", "hours",
				"nearest", "nearby", "dine-in", "drive-thru", "drive thru",
				"delivery", "pickup", "wifi",
			),
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bwhere\s+(?:is|are|can)\b`),
				regexp.MustCompile(`(?i)\bwhat\s+time\b`),
				regexp.MustCompile(`(?i)\bopen\s+(?:now|today|until|till|late|on)\b`),
			},
		},
		{
			intent: models.IntentProductQuery,
			weight: 0.90,
			keywords: keywordSet(
				"tumbler", "tumblers", "mug", "mugs", "cup", "cups",
				"flask", "flasks", "bottle", "bottles", "drinkware",
				"merchandise", "product", "products", "item", "items",
				"collection", "ceramic", "stainless",
			),
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bwhat\s+do\s+you\s+sell\b`),
				regexp.MustCompile(`(?i)\bcorak\s+malaysia\b`),
				regexp.MustCompile(`(?i)\b(?:og|all-day|frozee|sundaze)\b`),
			},
		},
		{
			intent:   models.IntentCalculation,
			weight:   0.95,
			keywords: keywordSet("calculate", "calculation", "compute", "sst", "tax"),
			patterns: []*regexp.Regexp{
				// number, operator, number: "15.50 + 8.90", "5/0", "2*(3+4)"
				regexp.MustCompile(`\d(?:\.\d+)?\s*[\)\s]*[-+*/%]\s*\(*\s*-?\s*\d`),
				regexp.MustCompile(`(?i)\d(?:\.\d+)?\s*(?:%|percent|per\s+cent)\s+of\b`),
			},
		},
		{
			intent: models.IntentPriceQuery,
			weight: 0.90,
			keywords: keywordSet(
				"price", "prices", "pricing", "cost", "costs", "cheap",
				"cheapest", "expensive", "affordable", "budget", "promotion",
				"promotions", "promo", "sale", "discount", "discounts",
				"offer", "offers",
			),
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bhow\s+much\b`),
				regexp.MustCompile(`(?i)\b(?:under|below|above|over|between|within|less\s+than|more\s+than)\s+rm\s*\d`),
			},
		},
		{
			intent: models.IntentGreeting,
			weight: 0.85,
			keywords: keywordSet(
				"hi", "hello", "hey", "good morning", "good afternoon",
				"good evening", "selamat pagi", "selamat petang",
			),
		},
		{
			intent: models.IntentThanks,
			weight: 0.85,
			keywords: keywordSet(
				"thanks", "thank you", "thank u", "thx", "terima kasih", "appreciate",
			),
		},
		{
			intent: models.IntentFarewell,
			weight: 0.85,
			keywords: keywordSet(
				"bye", "goodbye", "see you", "see ya", "farewell",
				"good night", "take care",
			),
		},
	}}
}

func (c *RuleClassifier) Classify(text string) (models.Intent, float64) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return models.IntentUnknown, UnknownConfidence
	}
	for i := range c.groups {
		if c.groups[i].matches(trimmed) {
			return c.groups[i].intent, c.groups[i].weight
		}
	}
	return models.IntentUnknown, UnknownConfidence
}
