package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"resume-agent-go/internal/api/handler"
	"resume-agent-go/internal/api/router"
	"resume-agent-go/internal/config"
	"resume-agent-go/internal/extractor"
	"resume-agent-go/internal/logger"
	"resume-agent-go/internal/nlp"
	"resume-agent-go/internal/parser"
	"resume-agent-go/internal/processor"
	"resume-agent-go/internal/refdata"
	"resume-agent-go/internal/storage"
)

func main() {
	// .env 不存在不算错误，容器环境直接用真实环境变量
	_ = godotenv.Load()

	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	initLogger(cfg)
	logger.Info().Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化存储管理器失败")
	}
	defer storageManager.Close()
	if storageManager.MinIO == nil || storageManager.RabbitMQ == nil ||
		storageManager.MySQL == nil || storageManager.Redis == nil {
		logger.Fatal().Msg("存储组件不完整，服务无法启动")
	}

	fieldExtractor, err := buildExtractor(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化字段提取器失败")
	}

	// 启动上传事件消费者
	stopConsumer, err := startUploadConsumer(ctx, cfg, storageManager, fieldExtractor)
	if err != nil {
		logger.Fatal().Err(err).Msg("启动上传消费者失败")
	}
	defer close(stopConsumer)

	resumeHandler := handler.NewResumeHandler(cfg, storageManager, fieldExtractor)

	h := server.Default(server.WithHostPorts(cfg.Server.Address))
	hlog.SetLogger(hertzadapter.From(logger.Logger))
	router.RegisterRoutes(h, resumeHandler)

	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()
	logger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务已启动")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP服务器关闭失败")
	}
	logger.Info().Msg("优雅退出完成")
}

func initLogger(cfg *config.Config) {
	logConfig := logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	}
	if os.Getenv("ENV") == "production" && logConfig.Format == "" {
		logConfig.Level = "info"
		logConfig.Format = "json"
	}
	logger.Init(logConfig)

	logger.Logger = logger.Logger.With().
		Str("app", "resume-agent-go").
		Logger()
}

// buildExtractor 组装提取流水线：NLP标注客户端 + 参考数据
func buildExtractor(cfg *config.Config) (*extractor.Extractor, error) {
	recognizer, err := nlp.NewSpacyClient(
		cfg.NLP.Endpoint,
		cfg.NLP.GeneralModel,
		cfg.NLP.SkillModel,
		nlp.WithTimeout(time.Duration(cfg.NLP.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("创建NLP标注客户端失败: %w", err)
	}

	// 参考文件缺失按字段降级，不阻塞启动
	refs := refdata.Load(&cfg.RefData)
	return extractor.NewExtractor(recognizer, refs)
}

// startUploadConsumer 声明拓扑并启动简历上传事件消费者
func startUploadConsumer(ctx context.Context, cfg *config.Config, storageManager *storage.Storage, fieldExtractor *extractor.Extractor) (chan<- struct{}, error) {
	mq := storageManager.RabbitMQ
	if err := mq.EnsureExchange(cfg.RabbitMQ.ResumeEventsExchange, "direct", true); err != nil {
		return nil, err
	}
	if err := mq.EnsureQueue(cfg.RabbitMQ.RawResumeQueue, true); err != nil {
		return nil, err
	}
	if err := mq.BindQueue(cfg.RabbitMQ.RawResumeQueue, cfg.RabbitMQ.ResumeEventsExchange, cfg.RabbitMQ.UploadedRoutingKey); err != nil {
		return nil, err
	}

	pdfExtractor, err := parser.NewEinoPDFTextExtractor(ctx)
	if err != nil {
		return nil, fmt.Errorf("初始化PDF提取器失败: %w", err)
	}

	resumeProcessor, err := processor.NewResumeProcessor(
		pdfExtractor,
		fieldExtractor,
		storageManager.MinIO,
		storageManager.MySQL,
		storageManager.Redis,
		cfg.ActiveParserVersion,
	)
	if err != nil {
		return nil, fmt.Errorf("初始化简历处理器失败: %w", err)
	}

	prefetch := cfg.RabbitMQ.PrefetchCount
	if prefetch <= 0 {
		prefetch = 5
	}
	return mq.StartConsumer(cfg.RabbitMQ.RawResumeQueue, prefetch, func(body []byte) bool {
		return resumeProcessor.HandleUploadMessage(ctx, body)
	})
}
