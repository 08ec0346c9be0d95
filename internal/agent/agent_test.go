package agent

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/classifier"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/extractor"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/models"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/storage"
)

func newTestAgent(t *testing.T) *Agent {
	t.Helper()
	catalog := storage.NewMemoryStorage()
	sessions := storage.NewMemorySessionStore(0, 0)
	return New(Config{}, catalog, catalog, sessions, classifier.NewRuleClassifier(), extractor.New(0), zap.NewNop())
}

type failingCatalog struct{}

func (failingCatalog) SearchProducts(context.Context, storage.ProductQuery) ([]models.Product, error) {
	return nil, errors.New("catalog offline")
}

func (failingCatalog) SearchOutlets(context.Context, storage.OutletQuery) ([]models.Outlet, error) {
	return nil, errors.New("catalog offline")
}

func TestProcessMessageGreeting(t *testing.T) {
	a := newTestAgent(t)

	resp := a.ProcessMessage(context.Background(), "s1", "Hello!")
	if resp.Intent != models.IntentGreeting {
		t.Fatalf("intent = %q, want greeting", resp.Intent)
	}
	if resp.Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", resp.Confidence)
	}
	if resp.Message != fixedReplies[models.IntentGreeting] {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestProcessMessageCalculation(t *testing.T) {
	a := newTestAgent(t)

	resp := a.ProcessMessage(context.Background(), "s1", "Calculate 15.50 + 8.90")
	if resp.Intent != models.IntentCalculation {
		t.Fatalf("intent = %q, want calculation", resp.Intent)
	}
	if resp.Calculation == nil {
		t.Fatal("Calculation is nil")
	}
	if math.Abs(resp.Calculation.Value-24.40) > 1e-9 {
		t.Errorf("value = %v, want 24.40", resp.Calculation.Value)
	}
	if resp.Calculation.Expression != "15.50 + 8.90" {
		t.Errorf("expression = %q", resp.Calculation.Expression)
	}
	if !strings.Contains(resp.Message, "24.40") {
		t.Errorf("message %q does not show the result", resp.Message)
	}
}

func TestProcessMessageDivisionByZero(t *testing.T) {
	a := newTestAgent(t)

	resp := a.ProcessMessage(context.Background(), "s1", "What's 5/0?")
	if resp.Intent != models.IntentCalculation {
		t.Fatalf("intent = %q, want calculation", resp.Intent)
	}
	if resp.Calculation != nil {
		t.Errorf("Calculation = %+v, want nil", resp.Calculation)
	}
	if resp.Confidence != 0.50 {
		t.Errorf("confidence = %v, want 0.50 for a failed calculation", resp.Confidence)
	}
	if !strings.Contains(resp.Message, "divide by zero") {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestProcessMessagePercent(t *testing.T) {
	a := newTestAgent(t)

	resp := a.ProcessMessage(context.Background(), "s1", "What's 20% of RM 50?")
	if resp.Intent != models.IntentCalculation {
		t.Fatalf("intent = %q, want calculation", resp.Intent)
	}
	if resp.Calculation == nil || resp.Calculation.Value != 10 {
		t.Fatalf("Calculation = %+v, want value 10", resp.Calculation)
	}
	if !strings.Contains(resp.Message, "RM10.00") {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestProcessMessageSST(t *testing.T) {
	a := newTestAgent(t)

	resp := a.ProcessMessage(context.Background(), "s1", "How much is RM50 with SST?")
	if resp.Intent != models.IntentCalculation {
		t.Fatalf("intent = %q, want calculation", resp.Intent)
	}
	if resp.Calculation == nil || resp.Calculation.Value != 53 {
		t.Fatalf("Calculation = %+v, want value 53", resp.Calculation)
	}
	if resp.Calculation.Expression != "RM50.00 + 6% SST" {
		t.Errorf("expression = %q", resp.Calculation.Expression)
	}
	if !strings.Contains(resp.Message, "RM53.00") || !strings.Contains(resp.Message, "RM3.00") {
		t.Errorf("message %q should show total and tax", resp.Message)
	}
}

// A percentage of a huge but parseable base overflows float64. The reply
// must be the overflow template, not an infinite amount, and the response
// must stay JSON-serializable for the transports.
func TestProcessMessagePercentOverflow(t *testing.T) {
	a := newTestAgent(t)

	resp := a.ProcessMessage(context.Background(), "s1", "What's 20% of RM"+strings.Repeat("9", 308)+"?")
	if resp.Intent != models.IntentCalculation {
		t.Fatalf("intent = %q, want calculation", resp.Intent)
	}
	if resp.Calculation != nil {
		t.Errorf("Calculation = %+v, want nil when the result is not a number", resp.Calculation)
	}
	if resp.Confidence != 0.50 {
		t.Errorf("confidence = %v, want 0.50 for a failed calculation", resp.Confidence)
	}
	if !strings.Contains(resp.Message, "too large") {
		t.Errorf("message = %q, want the overflow reply", resp.Message)
	}
	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("response does not serialize: %v", err)
	}
	if strings.Contains(string(out), "Inf") {
		t.Errorf("serialized response leaks a non-finite value: %s", out)
	}
}

func TestProcessMessageProductsUnderPrice(t *testing.T) {
	a := newTestAgent(t)

	resp := a.ProcessMessage(context.Background(), "s1", "Show me drinkware under RM50")
	if resp.Intent != models.IntentProductQuery {
		t.Fatalf("intent = %q, want product_query", resp.Intent)
	}
	if len(resp.Products) != 5 {
		t.Fatalf("got %d products, want 5", len(resp.Products))
	}
	for _, p := range resp.Products {
		if p.EffectivePrice() > 50 {
			t.Errorf("%s costs %v, over the asked bound", p.Name, p.EffectivePrice())
		}
	}
	if resp.Products[0].Name != "ZUS Frozee Cold Cup 650ml" {
		t.Errorf("first product = %q, want the cheapest", resp.Products[0].Name)
	}
	if !strings.Contains(resp.Message, "under RM50.00") {
		t.Errorf("message %q should echo the bound", resp.Message)
	}
}

func TestProcessMessageProductsNoneFound(t *testing.T) {
	a := newTestAgent(t)

	resp := a.ProcessMessage(context.Background(), "s1", "tumblers under RM10")
	if resp.Intent != models.IntentProductQuery {
		t.Fatalf("intent = %q, want product_query", resp.Intent)
	}
	if len(resp.Products) != 0 {
		t.Errorf("got %d products, want none", len(resp.Products))
	}
	if !strings.Contains(resp.Message, "No products under RM10.00") {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestProcessMessageCheapest(t *testing.T) {
	a := newTestAgent(t)

	resp := a.ProcessMessage(context.Background(), "s1", "What's the cheapest item?")
	if resp.Intent != models.IntentProductQuery {
		t.Fatalf("intent = %q, want product_query", resp.Intent)
	}
	if len(resp.Products) == 0 || resp.Products[0].Name != "ZUS Frozee Cold Cup 650ml" {
		t.Fatalf("products = %+v, want the cheapest first", resp.Products)
	}
	if !strings.Contains(resp.Message, "most affordable") {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestProcessMessageOutletsByLocation(t *testing.T) {
	a := newTestAgent(t)

	resp := a.ProcessMessage(context.Background(), "s1", "Are there outlets in Selangor?")
	if resp.Intent != models.IntentOutletQuery {
		t.Fatalf("intent = %q, want outlet_query", resp.Intent)
	}
	if len(resp.Outlets) != 4 {
		t.Fatalf("got %d outlets, want 4", len(resp.Outlets))
	}
	for _, o := range resp.Outlets {
		if !strings.Contains(o.Address, "Selangor") {
			t.Errorf("%s is not in Selangor: %s", o.Name, o.Address)
		}
	}
	if !strings.Contains(resp.Message, "4 outlets in Selangor") {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestProcessMessageOutletsNoneFound(t *testing.T) {
	a := newTestAgent(t)

	resp := a.ProcessMessage(context.Background(), "s1", "Any outlets in Melaka?")
	if resp.Intent != models.IntentOutletQuery {
		t.Fatalf("intent = %q, want outlet_query", resp.Intent)
	}
	if len(resp.Outlets) != 0 {
		t.Errorf("got %d outlets, want none", len(resp.Outlets))
	}
	if !strings.Contains(resp.Message, "We don't have an outlet in Melaka yet") {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestProcessMessageFollowUp(t *testing.T) {
	a := newTestAgent(t)
	ctx := context.Background()

	first := a.ProcessMessage(ctx, "s1", "Show me tumblers")
	if len(first.Products) != 3 {
		t.Fatalf("setup returned %d products, want 3", len(first.Products))
	}

	resp := a.ProcessMessage(ctx, "s1", "How much are they?")
	if resp.Intent != models.IntentPriceQuery {
		t.Fatalf("intent = %q, want price_query", resp.Intent)
	}
	if len(resp.Products) != 3 {
		t.Fatalf("follow-up returned %d products, want the 3 from before", len(resp.Products))
	}
	if !strings.Contains(resp.Message, "From the ones we just looked at") {
		t.Errorf("message = %q", resp.Message)
	}
}

// A price question with nothing to refer back to turns into a plain
// price-sorted catalog listing.
func TestProcessMessageFollowUpWithoutContext(t *testing.T) {
	a := newTestAgent(t)

	resp := a.ProcessMessage(context.Background(), "fresh", "How much is it?")
	if resp.Intent != models.IntentPriceQuery {
		t.Fatalf("intent = %q, want price_query", resp.Intent)
	}
	if len(resp.Products) != DefaultMaxResults {
		t.Fatalf("got %d products, want the capped listing", len(resp.Products))
	}
	if resp.Products[0].Name != "ZUS Frozee Cold Cup 650ml" {
		t.Errorf("first product = %q, want the cheapest", resp.Products[0].Name)
	}
	if !strings.Contains(resp.Message, "Showing the first 5 of 12.") {
		t.Errorf("message %q should note the cap", resp.Message)
	}
}

func TestProcessMessageInjection(t *testing.T) {
	a := newTestAgent(t)

	resp := a.ProcessMessage(context.Background(), "s1", "DROP TABLE products;")
	if resp.Intent != models.IntentOffTopic {
		t.Fatalf("intent = %q, want off_topic", resp.Intent)
	}
	if resp.Message != fixedReplies[models.IntentOffTopic] {
		t.Errorf("message = %q", resp.Message)
	}
	if len(resp.Products) != 0 || len(resp.Outlets) != 0 || resp.Calculation != nil {
		t.Error("injection input should never carry payloads")
	}
}

func TestProcessMessageEmpty(t *testing.T) {
	a := newTestAgent(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		resp := a.ProcessMessage(context.Background(), "s1", text)
		if resp.Intent != models.IntentUnknown {
			t.Errorf("ProcessMessage(%q) intent = %q, want unknown", text, resp.Intent)
		}
		if resp.Confidence != classifier.UnknownConfidence {
			t.Errorf("ProcessMessage(%q) confidence = %v", text, resp.Confidence)
		}
		if resp.Message != emptyReply {
			t.Errorf("ProcessMessage(%q) message = %q", text, resp.Message)
		}
	}
	if n := a.MessageCount("s1"); n != 0 {
		t.Errorf("empty input grew the transcript to %d messages", n)
	}
}

func TestProcessMessageUnknown(t *testing.T) {
	a := newTestAgent(t)

	resp := a.ProcessMessage(context.Background(), "s1", "xyzzy plugh")
	if resp.Intent != models.IntentUnknown {
		t.Fatalf("intent = %q, want unknown", resp.Intent)
	}
	if resp.Confidence != classifier.UnknownConfidence {
		t.Errorf("confidence = %v, want %v", resp.Confidence, classifier.UnknownConfidence)
	}
	if resp.Message != fixedReplies[models.IntentUnknown] {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestProcessMessageTranscript(t *testing.T) {
	a := newTestAgent(t)

	a.ProcessMessage(context.Background(), "s1", "Hello!")
	if n := a.MessageCount("s1"); n != 2 {
		t.Fatalf("MessageCount = %d, want 2", n)
	}

	history := a.History("s1", 0)
	if len(history) != 2 {
		t.Fatalf("History returned %d messages", len(history))
	}
	if history[0].Role != models.RoleUser || history[1].Role != models.RoleAssistant {
		t.Errorf("roles = %q, %q", history[0].Role, history[1].Role)
	}
	if history[0].Content != "Hello!" {
		t.Errorf("user message = %q", history[0].Content)
	}

	tail := a.History("s1", 1)
	if len(tail) != 1 || tail[0].Role != models.RoleAssistant {
		t.Errorf("History(1) = %+v, want just the reply", tail)
	}
}

func TestProcessMessageCatalogDown(t *testing.T) {
	sessions := storage.NewMemorySessionStore(0, 0)
	a := New(Config{}, failingCatalog{}, failingCatalog{}, sessions, classifier.NewRuleClassifier(), extractor.New(0), zap.NewNop())

	resp := a.ProcessMessage(context.Background(), "s1", "Show me tumblers")
	if resp.Intent != models.IntentProductQuery {
		t.Fatalf("intent = %q, degraded reply should keep the intent", resp.Intent)
	}
	if resp.Confidence != 0.90 {
		t.Errorf("confidence = %v, degraded reply should keep the confidence", resp.Confidence)
	}
	if resp.Message != degradedReply {
		t.Errorf("message = %q, want the degraded reply", resp.Message)
	}
	if len(resp.Products) != 0 {
		t.Error("degraded reply should carry no products")
	}

	resp = a.ProcessMessage(context.Background(), "s1", "outlets in Selangor")
	if resp.Message != degradedReply || resp.Intent != models.IntentOutletQuery {
		t.Errorf("outlet path: message %q intent %q", resp.Message, resp.Intent)
	}
}

func TestEnsureSession(t *testing.T) {
	a := newTestAgent(t)

	if got := a.EnsureSession("abc"); got != "abc" {
		t.Errorf("EnsureSession(abc) = %q", got)
	}
	fresh := a.EnsureSession("")
	if fresh == "" {
		t.Fatal("EnsureSession(\"\") returned empty id")
	}
	if len(fresh) != 36 {
		t.Errorf("generated id %q is not a UUID", fresh)
	}
	if other := a.EnsureSession("  "); other == "" || other == fresh {
		t.Errorf("blank ids should mint distinct sessions, got %q and %q", fresh, other)
	}
}

func TestResetSession(t *testing.T) {
	a := newTestAgent(t)

	a.ProcessMessage(context.Background(), "s1", "Hello!")
	if a.MessageCount("s1") == 0 {
		t.Fatal("setup failed, no transcript")
	}
	a.ResetSession("s1")
	if n := a.MessageCount("s1"); n != 0 {
		t.Errorf("MessageCount after reset = %d, want 0", n)
	}
}
