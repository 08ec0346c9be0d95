package server

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/models"
	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/storage"
)

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Request body must be JSON with a message field",
		})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "empty_message",
			Message: "Message cannot be empty",
		})
	}

	sessionID := s.agent.EnsureSession(req.SessionID)
	resp := s.agent.ProcessMessage(c.UserContext(), sessionID, req.Message)
	messagesTotal.WithLabelValues(string(resp.Intent)).Inc()

	return c.JSON(s.chatResponse(resp, sessionID))
}

func (s *Server) handleProducts(c *fiber.Ctx) error {
	// A free-form query goes through the same extractor the chat path
	// uses; explicit query parameters override what it found.
	params := s.ext.Extract(c.Query("query"), models.IntentProductQuery)

	query := storage.ProductQuery{
		MinPrice:    params.MinPrice,
		MaxPrice:    params.MaxPrice,
		Category:    firstNonEmpty(c.Query("category"), params.Category),
		Material:    firstNonEmpty(c.Query("material"), params.Material),
		Collection:  firstNonEmpty(c.Query("collection"), params.Collection),
		OnPromotion: params.OnPromotion || c.QueryBool("promo"),
		SortByPrice: c.QueryBool("by_price") || params.HasPriceBound(),
	}
	if v := c.Query("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			query.MaxPrice = &f
		}
	}
	if v := c.Query("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			query.MinPrice = &f
		}
	}

	products, err := s.catalog.SearchProducts(c.UserContext(), query)
	if err != nil {
		s.logger.Error("product search failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
			Error:   "catalog_unavailable",
			Message: "Product catalog is temporarily unavailable",
		})
	}

	return c.JSON(models.ProductsResponse{Products: products, Total: len(products)})
}

func (s *Server) handleOutlets(c *fiber.Ctx) error {
	params := s.ext.Extract(c.Query("query"), models.IntentOutletQuery)

	query := storage.OutletQuery{
		Location: firstNonEmpty(c.Query("location"), params.Location),
		Services: params.Services,
	}
	if v := c.Query("service"); v != "" {
		query.Services = append(query.Services, v)
	}

	outlets, err := s.catalog.SearchOutlets(c.UserContext(), query)
	if err != nil {
		s.logger.Error("outlet search failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
			Error:   "catalog_unavailable",
			Message: "Outlet directory is temporarily unavailable",
		})
	}

	return c.JSON(models.OutletsResponse{Outlets: outlets, Total: len(outlets)})
}

func (s *Server) handleSession(c *fiber.Ctx) error {
	id := c.Params("id")
	messages := s.agent.History(id, s.cfg.HistoryLimit)
	if len(messages) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error:   "session_not_found",
			Message: "No active session with that id",
		})
	}

	sess := s.agent.Session(id)
	return c.JSON(models.SessionResponse{
		SessionID:    id,
		Messages:     messages,
		MessageCount: s.agent.MessageCount(id),
		LastIntent:   sess.LastIntent,
		CreatedAt:    sess.CreatedAt,
		LastActiveAt: sess.LastActiveAt,
	})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	resp := models.HealthResponse{
		Status:   "ok",
		Catalog:  "ok",
		Sessions: s.agent.ActiveSessions(),
	}
	if err := s.catalog.Ping(c.UserContext()); err != nil {
		resp.Status = "degraded"
		resp.Catalog = "unreachable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

func (s *Server) chatResponse(resp models.Response, sessionID string) models.ChatResponse {
	return models.ChatResponse{
		Message:      resp.Message,
		Intent:       resp.Intent,
		Confidence:   resp.Confidence,
		SessionID:    sessionID,
		MessageCount: s.agent.MessageCount(sessionID),
		Products:     resp.Products,
		Outlets:      resp.Outlets,
		Calculation:  resp.Calculation,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
