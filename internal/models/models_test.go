package models

import "testing"

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name string
		p    Product
		want float64
	}{
		{"regular price", Product{Price: 79}, 79},
		{"sale price wins on promotion", Product{Price: 55, SalePrice: 44, OnPromotion: true}, 44},
		{"sale price ignored off promotion", Product{Price: 55, SalePrice: 44}, 55},
		{"zero sale price ignored", Product{Price: 55, OnPromotion: true}, 55},
		{"sale above list price ignored", Product{Price: 55, SalePrice: 60, OnPromotion: true}, 55},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.EffectivePrice(); got != tt.want {
				t.Errorf("EffectivePrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntentValid(t *testing.T) {
	for _, i := range []Intent{
		IntentGreeting, IntentProductQuery, IntentPriceQuery, IntentOutletQuery,
		IntentCalculation, IntentThanks, IntentFarewell, IntentOffTopic, IntentUnknown,
	} {
		if !i.Valid() {
			t.Errorf("%q should be valid", i)
		}
	}
	if Intent("order_pizza").Valid() {
		t.Error("unexpected intent accepted")
	}
	if Intent("").Valid() {
		t.Error("empty intent accepted")
	}
}
