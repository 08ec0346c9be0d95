package agent

import (
	"strings"
	"testing"

	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/extractor"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/models"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/storage"
)

// Every (bucket, subtype) pair must resolve to its own template so each
// reply shape can be checked in isolation.
func TestProductTemplateGridComplete(t *testing.T) {
	subtypes := []querySubtype{
		subtypeProductAll, subtypeProductFiltered, subtypeProductPriced,
		subtypeProductPromo, subtypeProductCheapest, subtypeProductFollowUp,
	}
	buckets := []countBucket{bucketNone, bucketOne, bucketMany}

	min, max := 30.0, 60.0
	params := extractor.Params{MinPrice: &min, MaxPrice: &max}
	byBucket := map[countBucket][]models.Product{
		bucketNone: nil,
		bucketOne:  storage.DefaultProducts()[:1],
		bucketMany: storage.DefaultProducts()[:3],
	}

	for _, sub := range subtypes {
		for _, bucket := range buckets {
			render, ok := productTemplates[composerKey{bucket, sub}]
			if !ok {
				t.Fatalf("no product template for bucket %d, subtype %d", bucket, sub)
			}
			products := byBucket[bucket]
			msg := render(productContext{products: products, total: len(products), params: params})
			if strings.TrimSpace(msg) == "" {
				t.Errorf("bucket %d, subtype %d rendered an empty reply", bucket, sub)
			}
		}
	}
}

func TestOutletTemplateGridComplete(t *testing.T) {
	subtypes := []querySubtype{subtypeOutletAll, subtypeOutletLocation, subtypeOutletService}
	buckets := []countBucket{bucketNone, bucketOne, bucketMany}

	params := extractor.Params{Location: "Selangor", Services: []string{"WiFi"}}
	byBucket := map[countBucket][]models.Outlet{
		bucketNone: nil,
		bucketOne:  storage.DefaultOutlets()[:1],
		bucketMany: storage.DefaultOutlets()[:3],
	}

	for _, sub := range subtypes {
		for _, bucket := range buckets {
			render, ok := outletTemplates[composerKey{bucket, sub}]
			if !ok {
				t.Fatalf("no outlet template for bucket %d, subtype %d", bucket, sub)
			}
			outlets := byBucket[bucket]
			msg := render(outletContext{outlets: outlets, total: len(outlets), params: params})
			if strings.TrimSpace(msg) == "" {
				t.Errorf("bucket %d, subtype %d rendered an empty reply", bucket, sub)
			}
		}
	}
}

func TestCalcTemplateGridComplete(t *testing.T) {
	rc := &models.CalcResult{Expression: "2 + 2", Value: 4}
	pct := &extractor.PercentOp{Rate: 6, Base: 50, AddTo: true}

	outcomes := []calcOutcome{
		calcOK, calcPercentOK, calcTaxAdd,
		calcDivZero, calcUnparseable, calcOverflow, calcEmpty,
	}
	seen := make(map[string]calcOutcome, len(outcomes))
	for _, outcome := range outcomes {
		render, ok := calcTemplates[outcome]
		if !ok {
			t.Fatalf("no calc template for outcome %d", outcome)
		}
		msg := render(rc, pct)
		if strings.TrimSpace(msg) == "" {
			t.Errorf("outcome %d rendered an empty reply", outcome)
		}
		if prev, dup := seen[msg]; dup {
			t.Errorf("outcomes %d and %d share the reply %q", prev, outcome, msg)
		}
		seen[msg] = outcome
	}
}

func TestRenderProductsCap(t *testing.T) {
	c := NewComposer(2)
	products := storage.DefaultProducts()[:5]

	msg, shown := c.RenderProducts(subtypeProductAll, products, extractor.Params{})
	if len(shown) != 2 {
		t.Fatalf("shown %d products, want 2", len(shown))
	}
	if !strings.Contains(msg, "5 drinkware products") {
		t.Errorf("header should report the full count: %q", msg)
	}
	if !strings.Contains(msg, "Showing the first 2 of 5.") {
		t.Errorf("missing truncation note: %q", msg)
	}
	if lines := strings.Split(msg, "\n"); len(lines) != 4 {
		t.Errorf("got %d lines, want header, two rows and the note", len(lines))
	}
}

func TestNewComposerDefaults(t *testing.T) {
	if got := NewComposer(0).MaxResults(); got != DefaultMaxResults {
		t.Errorf("MaxResults = %d, want %d", got, DefaultMaxResults)
	}
	if got := NewComposer(7).MaxResults(); got != 7 {
		t.Errorf("MaxResults = %d, want 7", got)
	}
}

func TestProductLineFormatting(t *testing.T) {
	promo := models.Product{
		Name: "ZUS OG Cup", Material: "Stainless Steel",
		Price: 55, SalePrice: 44, OnPromotion: true,
	}
	if got := productLine(0, promo); got != "1. ZUS OG Cup (Stainless Steel) - RM44.00 (was RM55.00)" {
		t.Errorf("promo line = %q", got)
	}

	plain := models.Product{Name: "ZUS Travel Flask", Price: 99}
	if got := productLine(1, plain); got != "2. ZUS Travel Flask - RM99.00" {
		t.Errorf("plain line = %q", got)
	}
}

func TestOutletBlockOptionalFields(t *testing.T) {
	full := models.Outlet{
		Name: "ZUS Coffee KLCC", Address: "Suria KLCC, Kuala Lumpur",
		OpeningHours: "8:00 AM - 10:00 PM", Services: []string{"Dine-In", "WiFi"},
	}
	want := "1. ZUS Coffee KLCC\n" +
		"   Suria KLCC, Kuala Lumpur\n" +
		"   Hours: 8:00 AM - 10:00 PM\n" +
		"   Services: Dine-In, WiFi"
	if got := outletBlock(0, full); got != want {
		t.Errorf("full block = %q, want %q", got, want)
	}

	bare := models.Outlet{Name: "ZUS Coffee Bangsar", Address: "Jalan Telawi 3, Kuala Lumpur"}
	got := outletBlock(1, bare)
	if strings.Contains(got, "Hours:") || strings.Contains(got, "Services:") {
		t.Errorf("bare block should skip blank fields: %q", got)
	}
}

func TestCountNoun(t *testing.T) {
	if got := countNoun(1, "outlet", "outlets"); got != "1 outlet" {
		t.Errorf("countNoun(1) = %q", got)
	}
	if got := countNoun(4, "outlet", "outlets"); got != "4 outlets" {
		t.Errorf("countNoun(4) = %q", got)
	}
}

func TestRateString(t *testing.T) {
	if got := rateString(6); got != "6" {
		t.Errorf("rateString(6) = %q", got)
	}
	if got := rateString(6.5); got != "6.5" {
		t.Errorf("rateString(6.5) = %q", got)
	}
}

// The phrases the composer renders must parse back to the bounds they
// describe, so a user can quote a reply verbatim.
func TestPriceBoundPhraseRoundTrip(t *testing.T) {
	e := extractor.New(0)
	min, max := 30.0, 60.0

	cases := []extractor.Params{
		{MaxPrice: &max},
		{MinPrice: &min},
		{MinPrice: &min, MaxPrice: &max},
	}
	for _, p := range cases {
		phrase := priceBoundPhrase(p)
		got := e.Extract("products "+phrase, models.IntentProductQuery)
		if (p.MinPrice == nil) != (got.MinPrice == nil) || (p.MaxPrice == nil) != (got.MaxPrice == nil) {
			t.Errorf("phrase %q parsed back as %+v", phrase, got)
			continue
		}
		if p.MinPrice != nil && *got.MinPrice != *p.MinPrice {
			t.Errorf("phrase %q lost the lower bound", phrase)
		}
		if p.MaxPrice != nil && *got.MaxPrice != *p.MaxPrice {
			t.Errorf("phrase %q lost the upper bound", phrase)
		}
	}
}
