package main

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cygnus-aran/serverless-card-sub004/internal/config"
	"github.com/cygnus-aran/serverless-card-sub004/internal/mapper"
	"github.com/cygnus-aran/serverless-card-sub004/internal/provider"
	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
	"github.com/cygnus-aran/serverless-card-sub004/internal/void"
)

type server struct {
	cfg      config.Config
	logger   *zap.Logger
	registry *provider.Registry
	voids    *void.Service
}

func (s *server) routes(engine *gin.Engine, reg *prometheus.Registry) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "stage": s.cfg.Stage})
	})
	engine.GET("/metrics", gin.WrapH(
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	card := engine.Group("/card")
	card.POST("/token", s.handleTokens)
	card.POST("/charge", s.handleCharge)
	card.POST("/preauth", s.handlePreAuthorize)
	card.POST("/capture", s.handleCapture)
	card.POST("/reauth", s.handleReAuthorize)
	card.POST("/validate", s.handleValidateAccount)

	voids := engine.Group("/void")
	voids.POST("/sweep", s.handleSweep)
	voids.POST("/sweep/deferred", s.handleSweepDeferred)
	voids.POST("/event", s.handleVoidEvent)
}

// tokenEnvelope carries the processor selector alongside the token request.
type tokenEnvelope struct {
	ProcessorName types.ProcessorName `json:"processorName"`
	types.TokenRequest
}

func (s *server) handleTokens(c *gin.Context) {
	var req tokenEnvelope
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	adapter, ok := s.resolve(c, req.ProcessorName)
	if !ok {
		return
	}
	resp, err := adapter.Tokens(c.Request.Context(), req.TokenRequest)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *server) handleCharge(c *gin.Context) {
	var req types.ChargeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	adapter, ok := s.resolve(c, req.Processor.Name)
	if !ok {
		return
	}
	resp, err := adapter.Charge(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *server) handlePreAuthorize(c *gin.Context) {
	var req types.ChargeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	adapter, ok := s.resolve(c, req.Processor.Name)
	if !ok {
		return
	}
	resp, err := adapter.PreAuthorize(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *server) handleCapture(c *gin.Context) {
	var req types.CaptureInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	adapter, ok := s.resolve(c, req.Processor.Name)
	if !ok {
		return
	}
	resp, err := adapter.Capture(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// reAuthorizeEnvelope scopes a re-authorization to a prior transaction.
type reAuthorizeEnvelope struct {
	Amount      types.Amount            `json:"amount"`
	Authorizer  types.AuthorizerContext `json:"authorizerContext"`
	Processor   types.ProcessorInfo     `json:"processor"`
	Transaction types.Transaction       `json:"transaction"`
}

func (s *server) handleReAuthorize(c *gin.Context) {
	var req reAuthorizeEnvelope
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	adapter, ok := s.resolve(c, req.Processor.Name)
	if !ok {
		return
	}
	resp, err := adapter.ReAuthorize(c.Request.Context(), req.Amount, req.Authorizer, req.Transaction)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *server) handleValidateAccount(c *gin.Context) {
	var req types.ChargeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	adapter, ok := s.resolve(c, req.Processor.Name)
	if !ok {
		return
	}
	resp, err := adapter.ValidateAccount(c.Request.Context(), req.Authorizer, req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *server) handleSweep(c *gin.Context) {
	report, err := s.voids.Sweep(c.Request.Context())
	if err != nil {
		s.logger.Error("void sweep failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *server) handleSweepDeferred(c *gin.Context) {
	var req struct {
		CardType types.CardType `json:"cardType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.CardType != types.CardTypeCredit && req.CardType != types.CardTypeDebit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cardType must be credit or debit"})
		return
	}
	report, err := s.voids.SweepDeferred(c.Request.Context(), req.CardType)
	if err != nil {
		s.logger.Error("deferred void sweep failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *server) handleVoidEvent(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
		return
	}
	processed := s.voids.ProcessAutomaticVoid(c.Request.Context(), raw)
	status := http.StatusOK
	if !processed {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"processed": processed})
}

// resolve picks the adapter for the named processor, answering the request
// itself when routing is misconfigured.
func (s *server) resolve(c *gin.Context, processor types.ProcessorName) (provider.Adapter, bool) {
	adapter, err := s.registry.Resolve(processor)
	if err != nil {
		s.logger.Error("adapter resolution failed",
			zap.String("processor", string(processor)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return adapter, true
}

// fail renders a canonical error as the HTTP response.
func (s *server) fail(c *gin.Context, err error) {
	if ae, ok := mapper.AsAurusError(err); ok {
		c.JSON(statusFor(ae.Code), ae)
		return
	}
	s.logger.Error("unmapped operation failure", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// statusFor maps canonical codes to transport status. Declines stay 400 so
// callers distinguish them from infrastructure faults.
func statusFor(code string) int {
	switch code {
	case types.CodeTimeout:
		return http.StatusGatewayTimeout
	case types.CodeUnreachable:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}
