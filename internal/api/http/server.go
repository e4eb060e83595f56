// Package http 提供区块接入 HTTP API
//
// 路由：
//
//	POST /v1/blocks/validate                  验证区块（无副作用）
//	POST /v1/blocks                           验证并追加（需管理口令）
//	GET  /v1/blocks/:id                       区块查询
//	GET  /v1/accounts/:account/head           账户头区块
//	GET  /v1/accounts/:account/blocks/:height 账户指定高度区块
//	GET  /v1/accounts/:account/delegate       账户代表
//	GET  /v1/accounts/:account/delegators     委托给该账户的账户
//	GET  /v1/transactions/:id                 交易查询
//	GET  /v1/admin/read-only                  写门闸状态（需管理口令）
//	PUT  /v1/admin/read-only                  切换只读模式（需管理口令）
//	GET  /metrics                             Prometheus 指标
//	GET  /healthz                             存活检查
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/billy1624/champ/internal/api/http/handlers"
	"github.com/billy1624/champ/internal/api/http/middleware"
	apiconfig "github.com/billy1624/champ/internal/config/api"
	"github.com/billy1624/champ/internal/app/version"
	blockif "github.com/billy1624/champ/pkg/interfaces/block"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/crypto"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/log"
	"github.com/billy1624/champ/pkg/interfaces/infrastructure/writegate"
	ledgerif "github.com/billy1624/champ/pkg/interfaces/ledger"
)

// Dependencies HTTP 服务器依赖
type Dependencies struct {
	Options        *apiconfig.APIOptions
	Validator      blockif.BlockValidator
	Processor      blockif.BlockProcessor
	Store          ledgerif.Store
	IDCalculator   blockif.IDCalculator
	AddressManager crypto.AddressManager
	PasswordHasher crypto.PasswordHasher
	WriteGate      writegate.WriteGate  // 可选，为空时不注册维护接口
	Registry       *prometheus.Registry // 可选，为空时不暴露 /metrics
	Logger         log.Logger           // 可选
}

// Server HTTP服务器
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	listener   net.Listener
	options    *apiconfig.APIOptions
	logger     log.Logger
	serveErr   chan error
}

// NewServer 创建HTTP服务器并注册路由
func NewServer(deps Dependencies) (*Server, error) {
	if deps.Validator == nil {
		return nil, fmt.Errorf("blockValidator 不能为空")
	}
	if deps.Processor == nil {
		return nil, fmt.Errorf("blockProcessor 不能为空")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("ledgerStore 不能为空")
	}
	if deps.IDCalculator == nil {
		return nil, fmt.Errorf("idCalculator 不能为空")
	}
	if deps.AddressManager == nil {
		return nil, fmt.Errorf("addressManager 不能为空")
	}
	options := deps.Options
	if options == nil {
		options = apiconfig.New(nil).GetOptions()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(deps.Logger))
	if deps.Registry != nil {
		router.Use(middleware.NewMetrics(deps.Registry).Middleware())
	}
	if options.MaxBodyBytes > 0 {
		router.Use(limitBody(options.MaxBodyBytes))
	}

	s := &Server{
		router:   router,
		options:  options,
		logger:   deps.Logger,
		serveErr: make(chan error, 1),
	}
	s.setupRoutes(deps)
	return s, nil
}

// setupRoutes 注册所有API端点
func (s *Server) setupRoutes(deps Dependencies) {
	blockHandlers := handlers.NewBlockHandlers(deps.Validator, deps.Processor, deps.Store, deps.IDCalculator, deps.AddressManager, deps.Logger)
	accountHandlers := handlers.NewAccountHandlers(deps.Store, deps.IDCalculator, deps.AddressManager)
	transactionHandlers := handlers.NewTransactionHandlers(deps.Store, deps.IDCalculator, deps.AddressManager)
	healthHandler := handlers.NewHealthHandler(version.GetVersion(), deps.WriteGate)
	adminAuth := middleware.AdminAuth(deps.PasswordHasher, s.options.AdminPasswordHash)

	v1 := s.router.Group("/v1")

	blockGroup := v1.Group("/blocks")
	blockGroup.POST("/validate", blockHandlers.Validate)
	blockGroup.POST("", adminAuth, blockHandlers.Submit)
	blockGroup.GET("/:id", blockHandlers.GetBlock)

	accountGroup := v1.Group("/accounts/:account")
	accountGroup.GET("/head", accountHandlers.GetHead)
	accountGroup.GET("/blocks/:height", accountHandlers.GetBlockByHeight)
	accountGroup.GET("/delegate", accountHandlers.GetDelegate)
	accountGroup.GET("/delegators", accountHandlers.GetDelegators)

	v1.GET("/transactions/:id", transactionHandlers.GetTransaction)

	if deps.WriteGate != nil {
		adminHandlers := handlers.NewAdminHandlers(deps.WriteGate, deps.Logger)
		adminGroup := v1.Group("/admin", adminAuth)
		adminGroup.GET("/read-only", adminHandlers.GetReadOnly)
		adminGroup.PUT("/read-only", adminHandlers.SetReadOnly)
	}

	s.router.GET("/healthz", healthHandler.Health)
	if deps.Registry != nil {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{Registry: deps.Registry})))
	}
}

// Handler 返回路由处理器
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr 实际监听地址，未启动时返回配置地址
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.options.Listen
}

// Start 监听并在后台提供服务；端口占用等错误同步返回
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.options.Listen)
	if err != nil {
		return fmt.Errorf("HTTP 监听失败 %s: %w", s.options.Listen, err)
	}
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.options.ReadTimeout,
		ReadHeaderTimeout: s.options.ReadTimeout,
		WriteTimeout:      s.options.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		err := s.httpServer.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			if s.logger != nil {
				s.logger.Errorf("HTTP服务器异常退出: %v", err)
			}
			s.serveErr <- err
		}
		close(s.serveErr)
	}()

	if s.logger != nil {
		s.logger.Infof("HTTP服务器已启动，监听地址: %s", listener.Addr())
		if s.options.AdminPasswordHash == "" {
			s.logger.Warn("未配置 api.admin_password_hash，POST /v1/blocks 已禁用")
		}
	}
	return nil
}

// Stop 优雅关闭，等待进行中的请求完成
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if s.options.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.ShutdownTimeout)
		defer cancel()
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP服务器关闭失败: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("HTTP服务器已关闭")
	}
	return <-s.serveErr
}

// limitBody 限制请求体大小
func limitBody(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		}
		c.Next()
	}
}
