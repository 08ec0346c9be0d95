package agent

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/calc"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/extractor"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/models"
)

// countBucket folds a result count into the three cases the reply
// templates care about.
type countBucket int

const (
	bucketNone countBucket = iota
	bucketOne
	bucketMany
)

func bucketFor(n int) countBucket {
	switch {
	case n <= 0:
		return bucketNone
	case n == 1:
		return bucketOne
	default:
		return bucketMany
	}
}

// querySubtype is the flavour of question being answered; together with
// the count bucket it selects the reply template.
type querySubtype int

const (
	subtypeProductAll querySubtype = iota
	subtypeProductFiltered
	subtypeProductPriced
	subtypeProductPromo
	subtypeProductCheapest
	subtypeProductFollowUp
	subtypeOutletAll
	subtypeOutletLocation
	subtypeOutletService
)

type composerKey struct {
	bucket  countBucket
	subtype querySubtype
}

// productContext carries everything a product template may interpolate.
type productContext struct {
	products []models.Product
	total    int
	params   extractor.Params
}

type outletContext struct {
	outlets []models.Outlet
	total   int
	params  extractor.Params
}

// calcOutcome selects the calculation reply template.
type calcOutcome int

const (
	calcOK calcOutcome = iota
	calcPercentOK
	calcTaxAdd
	calcDivZero
	calcUnparseable
	calcOverflow
	calcEmpty
)

// Fixed replies for the conversational intents.
var fixedReplies = map[models.Intent]string{
	models.IntentGreeting: "Hello! Welcome to ZUS Coffee. I can help you browse our drinkware, " +
		"find an outlet, or work out a quick price. What can I get you today?",
	models.IntentThanks:   "You're most welcome! Anything else I can help you with?",
	models.IntentFarewell: "Thank you for stopping by ZUS Coffee. See you again soon!",
	models.IntentOffTopic: "That one's outside my menu. I can help with ZUS drinkware, " +
		"outlet locations and simple price calculations.",
	models.IntentUnknown: "I'm not quite sure what you're after. You can ask me about our drinkware " +
		"(\"tumblers under RM50\"), our outlets (\"outlets in Selangor\"), or a quick " +
		"calculation (\"20% of RM100\").",
}

const emptyReply = "Please type a message, for example \"show me tumblers under RM50\" " +
	"or \"outlets in Petaling Jaya\"."

const degradedReply = "Sorry, I'm temporarily unable to look that up. Please try again in a moment."

func money(v float64) string {
	return "RM" + calc.FormatAmount(v)
}

// rateString trims a percentage rate so 6.0 reads as "6" and 6.5 as "6.5".
func rateString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func countNoun(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// priceBoundPhrase renders the asked price range in the same wording the
// extractor parses, so a rendered reply can be fed straight back in.
func priceBoundPhrase(p extractor.Params) string {
	switch {
	case p.MinPrice != nil && p.MaxPrice != nil:
		return fmt.Sprintf("between %s and %s", money(*p.MinPrice), money(*p.MaxPrice))
	case p.MaxPrice != nil:
		return "under " + money(*p.MaxPrice)
	case p.MinPrice != nil:
		return "above " + money(*p.MinPrice)
	default:
		return ""
	}
}

func productPrice(p models.Product) string {
	if p.OnPromotion && p.SalePrice > 0 && p.SalePrice < p.Price {
		return fmt.Sprintf("%s (was %s)", money(p.SalePrice), money(p.Price))
	}
	return money(p.Price)
}

func productLine(i int, p models.Product) string {
	details := ""
	if p.Material != "" {
		details = " (" + p.Material + ")"
	}
	return fmt.Sprintf("%d. %s%s - %s", i+1, p.Name, details, productPrice(p))
}

func productList(header string, ps []models.Product) string {
	lines := make([]string, 0, len(ps)+1)
	lines = append(lines, header)
	for i, p := range ps {
		lines = append(lines, productLine(i, p))
	}
	return strings.Join(lines, "\n")
}

func outletBlock(i int, o models.Outlet) string {
	lines := []string{
		fmt.Sprintf("%d. %s", i+1, o.Name),
		"   " + o.Address,
	}
	if o.OpeningHours != "" {
		lines = append(lines, "   Hours: "+o.OpeningHours)
	}
	if len(o.Services) > 0 {
		lines = append(lines, "   Services: "+strings.Join(o.Services, ", "))
	}
	return strings.Join(lines, "\n")
}

func outletList(header string, os []models.Outlet) string {
	blocks := make([]string, 0, len(os)+1)
	blocks = append(blocks, header)
	for i, o := range os {
		blocks = append(blocks, outletBlock(i, o))
	}
	return strings.Join(blocks, "\n")
}

// productTemplates is the reply table for catalog answers. Every bucket and
// subtype combination resolves to exactly one template, so each reply shape
// can be exercised on its own.
var productTemplates = map[composerKey]func(productContext) string{
	{bucketNone, subtypeProductAll}: func(productContext) string {
		return "Our drinkware catalog is being restocked right now. Please check back soon!"
	},
	{bucketNone, subtypeProductFiltered}: func(c productContext) string {
		return "I couldn't find any drinkware matching that. Try another category, material or collection."
	},
	{bucketNone, subtypeProductPriced}: func(c productContext) string {
		return fmt.Sprintf("No products %s right now. Try widening the price range.", priceBoundPhrase(c.params))
	},
	{bucketNone, subtypeProductPromo}: func(productContext) string {
		return "No promotions are running at the moment. Check back soon!"
	},
	{bucketNone, subtypeProductCheapest}: func(productContext) string {
		return "I couldn't find any products to compare just now."
	},
	{bucketNone, subtypeProductFollowUp}: func(productContext) string {
		return "We weren't looking at any product yet. Ask me about tumblers, mugs, cups, flasks or bottles!"
	},

	{bucketOne, subtypeProductAll}: func(c productContext) string {
		return productList("We carry 1 product at the moment:", c.products)
	},
	{bucketOne, subtypeProductFiltered}: func(c productContext) string {
		return productList("We have 1 product that fits:", c.products)
	},
	{bucketOne, subtypeProductPriced}: func(c productContext) string {
		return productList(fmt.Sprintf("Just 1 product is %s:", priceBoundPhrase(c.params)), c.products)
	},
	{bucketOne, subtypeProductPromo}: func(c productContext) string {
		return productList("1 item is on promotion right now:", c.products)
	},
	{bucketOne, subtypeProductCheapest}: func(c productContext) string {
		p := c.products[0]
		return fmt.Sprintf("The most affordable option is %s at %s.", p.Name, productPrice(p))
	},
	{bucketOne, subtypeProductFollowUp}: func(c productContext) string {
		p := c.products[0]
		return fmt.Sprintf("%s is %s.", p.Name, productPrice(p))
	},

	{bucketMany, subtypeProductAll}: func(c productContext) string {
		return productList(fmt.Sprintf("We currently carry %s:", countNoun(c.total, "drinkware product", "drinkware products")), c.products)
	},
	{bucketMany, subtypeProductFiltered}: func(c productContext) string {
		return productList(fmt.Sprintf("Here are the %s that match:", countNoun(c.total, "product", "products")), c.products)
	},
	{bucketMany, subtypeProductPriced}: func(c productContext) string {
		return productList(fmt.Sprintf("I found %s %s:", countNoun(c.total, "product", "products"), priceBoundPhrase(c.params)), c.products)
	},
	{bucketMany, subtypeProductPromo}: func(c productContext) string {
		return productList(fmt.Sprintf("%s are on promotion right now:", countNoun(c.total, "item", "items")), c.products)
	},
	{bucketMany, subtypeProductCheapest}: func(c productContext) string {
		p := c.products[0]
		header := fmt.Sprintf("The most affordable option is %s at %s. Close behind:", p.Name, productPrice(p))
		return productList(header, c.products[1:])
	},
	{bucketMany, subtypeProductFollowUp}: func(c productContext) string {
		return productList("From the ones we just looked at:", c.products)
	},
}

// outletTemplates is the reply table for outlet answers.
var outletTemplates = map[composerKey]func(outletContext) string{
	{bucketNone, subtypeOutletAll}: func(outletContext) string {
		return "Our outlet directory is empty right now. Please check back soon!"
	},
	{bucketNone, subtypeOutletLocation}: func(c outletContext) string {
		return fmt.Sprintf("We don't have an outlet in %s yet. We do have stores across "+
			"Kuala Lumpur, Selangor, Penang, Johor and Perak.", c.params.Location)
	},
	{bucketNone, subtypeOutletService}: func(c outletContext) string {
		return fmt.Sprintf("No outlets offering %s found. Try asking for outlets by area instead.",
			strings.Join(c.params.Services, " and "))
	},

	{bucketOne, subtypeOutletAll}: func(c outletContext) string {
		return outletList("We have 1 outlet at the moment:", c.outlets)
	},
	{bucketOne, subtypeOutletLocation}: func(c outletContext) string {
		return outletList(fmt.Sprintf("We have 1 outlet in %s:", c.params.Location), c.outlets)
	},
	{bucketOne, subtypeOutletService}: func(c outletContext) string {
		return outletList(fmt.Sprintf("1 outlet offers %s:", strings.Join(c.params.Services, " and ")), c.outlets)
	},

	{bucketMany, subtypeOutletAll}: func(c outletContext) string {
		return outletList(fmt.Sprintf("We have %s across Malaysia:", countNoun(c.total, "outlet", "outlets")), c.outlets)
	},
	{bucketMany, subtypeOutletLocation}: func(c outletContext) string {
		return outletList(fmt.Sprintf("We have %s in %s:", countNoun(c.total, "outlet", "outlets"), c.params.Location), c.outlets)
	},
	{bucketMany, subtypeOutletService}: func(c outletContext) string {
		return outletList(fmt.Sprintf("%s offer %s:", countNoun(c.total, "outlet", "outlets"),
			strings.Join(c.params.Services, " and ")), c.outlets)
	},
}

// calcTemplates is the reply table for calculation answers.
var calcTemplates = map[calcOutcome]func(rc *models.CalcResult, pct *extractor.PercentOp) string{
	calcOK: func(rc *models.CalcResult, _ *extractor.PercentOp) string {
		return fmt.Sprintf("%s = %.2f", rc.Expression, rc.Value)
	},
	calcPercentOK: func(rc *models.CalcResult, pct *extractor.PercentOp) string {
		return fmt.Sprintf("%s%% of %s is %s.", rateString(pct.Rate), money(pct.Base), money(rc.Value))
	},
	calcTaxAdd: func(rc *models.CalcResult, pct *extractor.PercentOp) string {
		tax := rc.Value - pct.Base
		return fmt.Sprintf("%s plus %s%% SST comes to %s (%s tax).",
			money(pct.Base), rateString(pct.Rate), money(rc.Value), money(tax))
	},
	calcDivZero: func(*models.CalcResult, *extractor.PercentOp) string {
		return "I can't divide by zero. Mind checking that calculation?"
	},
	calcUnparseable: func(*models.CalcResult, *extractor.PercentOp) string {
		return "I couldn't work that one out. Try something like \"calculate 15.50 + 8.90\"."
	},
	calcOverflow: func(*models.CalcResult, *extractor.PercentOp) string {
		return "That result is too large for me to handle. Try smaller numbers."
	},
	calcEmpty: func(*models.CalcResult, *extractor.PercentOp) string {
		return "Tell me what to calculate, for example \"15.50 + 8.90\" or \"20% of RM50\"."
	},
}

// Composer turns handler results into reply text. MaxResults caps how many
// rows a single reply lists; the header still reports the full count.
type Composer struct {
	maxResults int
}

const DefaultMaxResults = 5

func NewComposer(maxResults int) *Composer {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Composer{maxResults: maxResults}
}

func (c *Composer) MaxResults() int {
	return c.maxResults
}

// RenderProducts picks the product template for the result count and
// subtype. Results beyond the cap are dropped from the listing and a
// trailing note says so.
func (c *Composer) RenderProducts(sub querySubtype, products []models.Product, params extractor.Params) (string, []models.Product) {
	total := len(products)
	shown := products
	if len(shown) > c.maxResults {
		shown = shown[:c.maxResults]
	}
	render, ok := productTemplates[composerKey{bucketFor(total), sub}]
	if !ok {
		render = productTemplates[composerKey{bucketFor(total), subtypeProductFiltered}]
	}
	msg := render(productContext{products: shown, total: total, params: params})
	if total > len(shown) {
		msg += fmt.Sprintf("\nShowing the first %d of %d.", len(shown), total)
	}
	return msg, shown
}

// RenderOutlets picks the outlet template the same way.
func (c *Composer) RenderOutlets(sub querySubtype, outlets []models.Outlet, params extractor.Params) (string, []models.Outlet) {
	total := len(outlets)
	shown := outlets
	if len(shown) > c.maxResults {
		shown = shown[:c.maxResults]
	}
	render, ok := outletTemplates[composerKey{bucketFor(total), sub}]
	if !ok {
		render = outletTemplates[composerKey{bucketFor(total), subtypeOutletAll}]
	}
	msg := render(outletContext{outlets: shown, total: total, params: params})
	if total > len(shown) {
		msg += fmt.Sprintf("\nShowing the first %d of %d.", len(shown), total)
	}
	return msg, shown
}

// RenderCalc picks the calculation template for the outcome.
func (c *Composer) RenderCalc(outcome calcOutcome, rc *models.CalcResult, pct *extractor.PercentOp) string {
	return calcTemplates[outcome](rc, pct)
}
