package agent

import (
	"context"
	"errors"
	"math"

	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/calc"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/extractor"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/models"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/storage"
)

// answer is what a handler produces before the agent wraps it into the
// final response.
type answer struct {
	message  string
	products []models.Product
	outlets  []models.Outlet
	calc     *models.CalcResult
}

// handleProductQuery serves both the browse and the price flavour of
// catalog questions. A price question with no filters at all is treated as
// a follow-up about the products from the previous answer.
func (a *Agent) handleProductQuery(ctx context.Context, sessionID string, intent models.Intent, params extractor.Params) (answer, error) {
	if intent == models.IntentPriceQuery && !params.HasProductFilter() {
		if last := a.sessions.LastProducts(sessionID); len(last) > 0 {
			msg, shown := a.composer.RenderProducts(subtypeProductFollowUp, last, params)
			return answer{message: msg, products: shown}, nil
		}
	}

	query := storage.ProductQuery{
		MinPrice:    params.MinPrice,
		MaxPrice:    params.MaxPrice,
		Category:    params.Category,
		Material:    params.Material,
		Collection:  params.Collection,
		OnPromotion: params.OnPromotion,
		SortByPrice: params.WantCheapest || params.HasPriceBound() || intent == models.IntentPriceQuery,
	}
	results, err := a.products.SearchProducts(ctx, query)
	if err != nil {
		return answer{}, err
	}

	sub := subtypeProductAll
	switch {
	case params.WantCheapest:
		sub = subtypeProductCheapest
	case params.HasPriceBound():
		sub = subtypeProductPriced
	case params.OnPromotion:
		sub = subtypeProductPromo
	case params.HasProductFilter():
		sub = subtypeProductFiltered
	}

	msg, shown := a.composer.RenderProducts(sub, results, params)
	return answer{message: msg, products: shown}, nil
}

func (a *Agent) handleOutletQuery(ctx context.Context, params extractor.Params) (answer, error) {
	query := storage.OutletQuery{
		Location: params.Location,
		Services: params.Services,
	}
	results, err := a.outlets.SearchOutlets(ctx, query)
	if err != nil {
		return answer{}, err
	}

	sub := subtypeOutletAll
	switch {
	case params.Location != "":
		sub = subtypeOutletLocation
	case len(params.Services) > 0:
		sub = subtypeOutletService
	}

	msg, shown := a.composer.RenderOutlets(sub, results, params)
	return answer{message: msg, outlets: shown}, nil
}

// handleCalculation never fails: every evaluator error maps onto its own
// reply template, and the returned calc field is nil exactly when the
// calculation did not produce a number.
func (a *Agent) handleCalculation(params extractor.Params) answer {
	if pct := params.Percent; pct != nil {
		amount := pct.Base * pct.Rate / 100
		outcome := calcPercentOK
		value := amount
		expression := rateString(pct.Rate) + "% of " + money(pct.Base)
		if pct.AddTo {
			outcome = calcTaxAdd
			value = pct.Base + amount
			expression = money(pct.Base) + " + " + rateString(pct.Rate) + "% SST"
		}
		value = math.Round(value*100) / 100
		if math.IsInf(value, 0) || math.IsNaN(value) {
			return answer{message: a.composer.RenderCalc(calcOverflow, nil, nil)}
		}
		rc := &models.CalcResult{
			Expression: expression,
			Value:      value,
		}
		return answer{message: a.composer.RenderCalc(outcome, rc, pct), calc: rc}
	}

	if params.Expression == "" {
		return answer{message: a.composer.RenderCalc(calcEmpty, nil, nil)}
	}

	value, err := calc.Evaluate(params.Expression)
	if err != nil {
		outcome := calcUnparseable
		switch {
		case errors.Is(err, calc.ErrDivisionByZero):
			outcome = calcDivZero
		case errors.Is(err, calc.ErrNotFinite):
			outcome = calcOverflow
		}
		return answer{message: a.composer.RenderCalc(outcome, nil, nil)}
	}

	rc := &models.CalcResult{
		Expression: calc.Normalize(params.Expression),
		Value:      value,
	}
	return answer{message: a.composer.RenderCalc(calcOK, rc, nil)}
}
