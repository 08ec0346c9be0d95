package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/models"
)

// DefaultSSTRate is the Malaysian sales and service tax applied when the
// message names SST without an explicit rate.
const DefaultSSTRate = 0.06

// PercentOp is a percentage request lifted out of the message text.
// AddTo distinguishes "RM50 with SST" (base plus tax) from "SST on RM50"
// and "20% of RM50" (the percentage amount alone).
type PercentOp struct {
	Rate  float64
	Base  float64
	AddTo bool
}

// Params holds everything the extractor could lift from one message.
// Pointer fields stay nil when the message does not mention them, so
// handlers can tell "no bound given" from "bound of zero".
type Params struct {
	MinPrice     *float64
	MaxPrice     *float64
	Quantity     *int
	Location     string
	Category     string
	Material     string
	Collection   string
	Services     []string
	OnPromotion  bool
	WantCheapest bool
	Expression   string
	Percent      *PercentOp
}

// HasPriceBound reports whether at least one price bound was mentioned.
func (p Params) HasPriceBound() bool {
	return p.MinPrice != nil || p.MaxPrice != nil
}

// HasProductFilter reports whether the message narrows the catalog at all.
func (p Params) HasProductFilter() bool {
	return p.HasPriceBound() || p.Category != "" || p.Material != "" ||
		p.Collection != "" || p.OnPromotion || p.WantCheapest
}

var (
	reBetween = regexp.MustCompile(`(?i)\b(?:between\s+|from\s+)?rm\s*(\d+(?:\.\d+)?)\s*(?:and|to|[-–])\s*rm\s*(\d+(?:\.\d+)?)`)
	reUnder   = regexp.MustCompile(`(?i)\b(?:under|below|within|less\s+than|cheaper\s+than|at\s+most|up\s+to|max(?:imum)?(?:\s+of)?)\s+rm\s*(\d+(?:\.\d+)?)`)
	reOver    = regexp.MustCompile(`(?i)\b(?:over|above|more\s+than|at\s+least|starting\s+(?:from|at)|min(?:imum)?(?:\s+of)?)\s+rm\s*(\d+(?:\.\d+)?)`)

	reRM       = regexp.MustCompile(`(?i)\brm\s*\d+(?:\.\d+)?`)
	reQuantity = regexp.MustCompile(`(?i)\b(\d+)\s*(?:x\s*)?(?:tumblers?|mugs?|cups?|flasks?|bottles?|items?|pieces?|pcs)\b`)

	reRateSST   = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*%\s*sst\s+(?:on|of|for|to)\s+(?:rm\s*)?(\d+(?:\.\d+)?)`)
	reWithSST   = regexp.MustCompile(`(?i)\b(?:rm\s*)?(\d+(?:\.\d+)?)\s+(?:with|plus|including|incl\.?)\s+(?:(\d+(?:\.\d+)?)\s*%\s*)?sst\b`)
	reSSTOn     = regexp.MustCompile(`(?i)\bsst\s+(?:on|of|for|to)\s+(?:rm\s*)?(\d+(?:\.\d+)?)`)
	rePercentOf = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:%|percent|per\s+cent)\s+of\s+(?:rm\s*)?(\d+(?:\.\d+)?)`)
	reRMMarker  = regexp.MustCompile(`(?i)\brm\s*`)
	reExprSpan  = regexp.MustCompile(`[\d.+\-*/%()\s]+`)
	reExprOp    = regexp.MustCompile(`\d[\s)]*[+\-*/%]`)
	reHasDigit  = regexp.MustCompile(`\d`)
	rePromo     = regexp.MustCompile(`(?i)\b(?:promo|promotions?|sale|discounts?|offers?)\b`)
	reCheapest  = regexp.MustCompile(`(?i)\b(?:cheapest|lowest\s+price|most\s+affordable)\b`)
)

// categoryRules map the nouns customers use onto catalog categories.
// Checked in order, first hit wins.
var categoryRules = []struct {
	re       *regexp.Regexp
	category string
}{
	{regexp.MustCompile(`(?i)\btumblers?\b`), "Tumbler"},
	{regexp.MustCompile(`(?i)\bmugs?\b`), "Mug"},
	{regexp.MustCompile(`(?i)\bcups?\b`), "Cup"},
	{regexp.MustCompile(`(?i)\bflasks?\b`), "Flask"},
	{regexp.MustCompile(`(?i)\bbottles?\b`), "Bottle"},
}

var materialRules = []struct {
	re       *regexp.Regexp
	material string
}{
	{regexp.MustCompile(`(?i)\bstainless(?:\s+steel)?\b|\bsteel\b`), "Stainless Steel"},
	{regexp.MustCompile(`(?i)\bceramic\b`), "Ceramic"},
	{regexp.MustCompile(`(?i)\bglass\b`), "Glass"},
	{regexp.MustCompile(`(?i)\bplastic\b|\bbpa[\s-]?free\b`), "BPA-Free Plastic"},
}

var collectionRules = []struct {
	re         *regexp.Regexp
	collection string
}{
	{regexp.MustCompile(`(?i)\bcorak(?:\s+malaysia)?\b`), "Corak Malaysia"},
	{regexp.MustCompile(`(?i)\ball[\s-]day\b`), "All-Day"},
	{regexp.MustCompile(`(?i)\bfrozee\b`), "Frozee"},
	{regexp.MustCompile(`(?i)\bsundaze\b`), "Sundaze"},
	{regexp.MustCompile(`(?i)\bog\b`), "OG"},
}

var serviceRules = []struct {
	re      *regexp.Regexp
	service string
}{
	{regexp.MustCompile(`(?i)\bdine[\s-]?in\b`), "Dine-In"},
	{regexp.MustCompile(`(?i)\bdrive[\s-]?(?:thru|through)\b`), "Drive-Thru"},
	{regexp.MustCompile(`(?i)\bdelivery\b`), "Delivery"},
	{regexp.MustCompile(`(?i)\bwi[\s-]?fi\b`), "WiFi"},
	{regexp.MustCompile(`(?i)\bpick[\s-]?up\b`), "Pickup"},
}

// locationRules list known places longest name first so "Johor Bahru" wins
// over "Johor" and shorthand like "KL" still resolves.
var locationRules = []struct {
	re      *regexp.Regexp
	display string
}{
	{regexp.MustCompile(`(?i)\bpetaling\s+jaya\b`), "Petaling Jaya"},
	{regexp.MustCompile(`(?i)\bsubang\s+jaya\b|\bsubang\b|\bss15\b`), "Subang Jaya"},
	{regexp.MustCompile(`(?i)\bshah\s+alam\b`), "Shah Alam"},
	{regexp.MustCompile(`(?i)\bsetia\s+(?:alam|city)\b`), "Shah Alam"},
	{regexp.MustCompile(`(?i)\bjohor\s+bahru\b|\bjb\b`), "Johor Bahru"},
	{regexp.MustCompile(`(?i)\bgeorge\s*town\b`), "George Town"},
	{regexp.MustCompile(`(?i)\bkuala\s+lumpur\b|\bklcc\b|\bkl\b`), "Kuala Lumpur"},
	{regexp.MustCompile(`(?i)\bmid\s+valley\b`), "Kuala Lumpur"},
	{regexp.MustCompile(`(?i)\bbangsar\b`), "Kuala Lumpur"},
	{regexp.MustCompile(`(?i)\bpuchong\b`), "Puchong"},
	{regexp.MustCompile(`(?i)\bcyberjaya\b`), "Cyberjaya"},
	{regexp.MustCompile(`(?i)\bputrajaya\b`), "Putrajaya"},
	{regexp.MustCompile(`(?i)\bselangor\b`), "Selangor"},
	{regexp.MustCompile(`(?i)\bpenang\b`), "Penang"},
	{regexp.MustCompile(`(?i)\bjohor\b`), "Johor"},
	{regexp.MustCompile(`(?i)\bipoh\b`), "Ipoh"},
	{regexp.MustCompile(`(?i)\bperak\b`), "Perak"},
	{regexp.MustCompile(`(?i)\bmelaka\b`), "Melaka"},
}

// Extractor lifts structured parameters out of free text. It never fails:
// anything it cannot read is simply left unset.
type Extractor struct {
	sstRate float64
}

func New(sstRate float64) *Extractor {
	if sstRate <= 0 {
		sstRate = DefaultSSTRate
	}
	return &Extractor{sstRate: sstRate}
}

// SSTRate returns the configured tax rate as a fraction, e.g. 0.06.
func (e *Extractor) SSTRate() float64 {
	return e.sstRate
}

// Extract parses text once and returns every parameter it recognises.
// The resolved intent only gates expression extraction; all other
// parameters are lifted regardless so handlers can pick what they need.
func (e *Extractor) Extract(text string, intent models.Intent) Params {
	var p Params

	e.extractPriceBounds(text, &p)
	extractQuantity(text, &p)
	extractPlaces(text, &p)
	e.extractArithmetic(text, intent, &p)

	p.OnPromotion = rePromo.MatchString(text)
	p.WantCheapest = reCheapest.MatchString(text)

	return p
}

func (e *Extractor) extractPriceBounds(text string, p *Params) {
	if m := reBetween.FindStringSubmatch(text); m != nil {
		lo, err1 := strconv.ParseFloat(m[1], 64)
		hi, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			if lo > hi {
				lo, hi = hi, lo
			}
			p.MinPrice = &lo
			p.MaxPrice = &hi
			return
		}
	}
	if m := reUnder.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.MaxPrice = &v
		}
	}
	if m := reOver.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.MinPrice = &v
		}
	}
}

func extractQuantity(text string, p *Params) {
	// Drop RM amounts first so "RM50 cup" cannot read as a quantity of 50.
	scrubbed := reRM.ReplaceAllString(text, " ")
	if m := reQuantity.FindStringSubmatch(scrubbed); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			p.Quantity = &n
		}
	}
}

func extractPlaces(text string, p *Params) {
	for _, r := range locationRules {
		if r.re.MatchString(text) {
			p.Location = r.display
			break
		}
	}
	for _, r := range categoryRules {
		if r.re.MatchString(text) {
			p.Category = r.category
			break
		}
	}
	for _, r := range materialRules {
		if r.re.MatchString(text) {
			p.Material = r.material
			break
		}
	}
	for _, r := range collectionRules {
		if r.re.MatchString(text) {
			p.Collection = r.collection
			break
		}
	}
	for _, r := range serviceRules {
		if r.re.MatchString(text) {
			p.Services = append(p.Services, r.service)
		}
	}
}

func (e *Extractor) extractArithmetic(text string, intent models.Intent, p *Params) {
	if m := reRateSST.FindStringSubmatch(text); m != nil {
		rate, err1 := strconv.ParseFloat(m[1], 64)
		base, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			p.Percent = &PercentOp{Rate: rate, Base: base}
			return
		}
	}
	if m := reWithSST.FindStringSubmatch(text); m != nil {
		if base, err := strconv.ParseFloat(m[1], 64); err == nil {
			rate := e.sstRate * 100
			if m[2] != "" {
				if r, err := strconv.ParseFloat(m[2], 64); err == nil {
					rate = r
				}
			}
			p.Percent = &PercentOp{Rate: rate, Base: base, AddTo: true}
			return
		}
	}
	if m := reSSTOn.FindStringSubmatch(text); m != nil {
		if base, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.Percent = &PercentOp{Rate: e.sstRate * 100, Base: base}
			return
		}
	}
	if m := rePercentOf.FindStringSubmatch(text); m != nil {
		rate, err1 := strconv.ParseFloat(m[1], 64)
		base, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			p.Percent = &PercentOp{Rate: rate, Base: base}
			return
		}
	}

	// Currency markers would trip the evaluator, so "RM50 + RM10" is
	// scrubbed down to "50 + 10" before the span scan.
	scrubbed := reRMMarker.ReplaceAllString(text, "")
	best := ""
	for _, span := range reExprSpan.FindAllString(scrubbed, -1) {
		span = strings.Trim(span, " \t\n.,")
		if !reHasDigit.MatchString(span) {
			continue
		}
		if !reExprOp.MatchString(span) && intent != models.IntentCalculation {
			continue
		}
		if len(span) > len(best) {
			best = span
		}
	}
	p.Expression = best
}
