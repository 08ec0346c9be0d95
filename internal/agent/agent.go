package agent

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/classifier"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/extractor"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/models"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/storage"
)

// Config carries the agent's behavioural knobs.
type Config struct {
	MaxResults int
}

// Agent is the conversation core: it classifies a message, extracts its
// parameters, runs the matching handler against the read-only catalog and
// composes the reply. Every input yields exactly one response.
type Agent struct {
	products   storage.ProductStore
	outlets    storage.OutletStore
	sessions   storage.SessionStore
	classifier classifier.Classifier
	extractor  *extractor.Extractor
	composer   *Composer
	logger     *zap.Logger
}

func New(cfg Config, products storage.ProductStore, outlets storage.OutletStore, sessions storage.SessionStore, clf classifier.Classifier, ext *extractor.Extractor, logger *zap.Logger) *Agent {
	return &Agent{
		products:   products,
		outlets:    outlets,
		sessions:   sessions,
		classifier: clf,
		extractor:  ext,
		composer:   NewComposer(cfg.MaxResults),
		logger:     logger,
	}
}

// EnsureSession returns id unchanged when the caller supplied one, or a
// fresh session id otherwise.
func (a *Agent) EnsureSession(id string) string {
	if strings.TrimSpace(id) == "" {
		return uuid.New().String()
	}
	return id
}

// ResetSession forgets everything about a conversation.
func (a *Agent) ResetSession(id string) {
	a.sessions.Delete(id)
}

// Session returns a snapshot of a conversation's state, including the
// intent of the last answer that carried products.
func (a *Agent) Session(id string) models.Session {
	return a.sessions.GetOrCreate(id)
}

// History returns the retained transcript for a session, newest last.
func (a *Agent) History(id string, limit int) []models.Message {
	return a.sessions.History(id, limit)
}

// MessageCount returns how many transcript entries a session holds.
func (a *Agent) MessageCount(id string) int {
	return a.sessions.Count(id)
}

// ActiveSessions reports how many sessions are currently live.
func (a *Agent) ActiveSessions() int {
	return a.sessions.ActiveSessions()
}

// ProcessMessage answers one user message. It always returns a response:
// classification and extraction cannot fail, handler errors degrade to an
// apology, and a panic anywhere below is caught here rather than leaking
// to a transport.
func (a *Agent) ProcessMessage(ctx context.Context, sessionID, text string) (resp models.Response) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("message processing panicked",
				zap.Any("panic", r),
				zap.String("session_id", sessionID))
			resp = models.Response{
				Message:    degradedReply,
				Intent:     models.IntentUnknown,
				Confidence: classifier.UnknownConfidence,
			}
		}
	}()

	if strings.TrimSpace(text) == "" {
		return models.Response{
			Message:    emptyReply,
			Intent:     models.IntentUnknown,
			Confidence: classifier.UnknownConfidence,
		}
	}

	intent, confidence := a.classifier.Classify(text)
	params := a.extractor.Extract(text, intent)

	a.sessions.Append(sessionID, models.Message{
		Role:    models.RoleUser,
		Content: text,
		Intent:  intent,
	})

	var ans answer
	var err error
	switch intent {
	case models.IntentProductQuery, models.IntentPriceQuery:
		ans, err = a.handleProductQuery(ctx, sessionID, intent, params)
	case models.IntentOutletQuery:
		ans, err = a.handleOutletQuery(ctx, params)
	case models.IntentCalculation:
		ans = a.handleCalculation(params)
		if ans.calc == nil {
			// The message looked like arithmetic but did not produce a
			// number, so the reported confidence drops accordingly.
			confidence = 0.50
		}
	case models.IntentGreeting, models.IntentThanks, models.IntentFarewell, models.IntentOffTopic:
		ans = answer{message: fixedReplies[intent]}
	default:
		ans = answer{message: fixedReplies[models.IntentUnknown]}
	}

	if err != nil {
		a.logger.Error("catalog lookup failed",
			zap.Error(err),
			zap.String("intent", string(intent)),
			zap.String("session_id", sessionID))
		ans = answer{message: degradedReply}
	}

	resp = models.Response{
		Message:     ans.message,
		Intent:      intent,
		Confidence:  confidence,
		Products:    ans.products,
		Outlets:     ans.outlets,
		Calculation: ans.calc,
	}

	a.sessions.Append(sessionID, models.Message{
		Role:    models.RoleAssistant,
		Content: resp.Message,
		Intent:  intent,
	})
	if len(ans.products) > 0 {
		a.sessions.SetContext(sessionID, intent, ans.products)
	}

	a.logger.Debug("message processed",
		zap.String("session_id", sessionID),
		zap.String("intent", string(intent)),
		zap.Float64("confidence", resp.Confidence),
		zap.Int("products", len(ans.products)),
		zap.Int("outlets", len(ans.outlets)))

	return resp
}
