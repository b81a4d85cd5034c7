package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/performance-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/performance-dashboard-api/infrastructure/integrator/legacy"
	"github.com/vfg2006/performance-dashboard-api/infrastructure/integrator/legacy/legacyclient"
	"github.com/vfg2006/performance-dashboard-api/infrastructure/rates"
	"github.com/vfg2006/performance-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/performance-dashboard-api/internal/api"
	"github.com/vfg2006/performance-dashboard-api/internal/config"
	"github.com/vfg2006/performance-dashboard-api/internal/scheduler"
	"github.com/vfg2006/performance-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/performance-dashboard-api/internal/usecases/converting"
	"github.com/vfg2006/performance-dashboard-api/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	currentEventRepo := repository.NewCurrentEventRepository(pgConn, cfg.Reporting.FetchTimeout)
	directoryRepo := repository.NewDirectoryRepository(pgConn, cfg.Reporting.FetchTimeout)

	authenticator := authenticating.NewService(userRepo, cfg)

	// Adaptador da loja legada (API HTTP do sistema antigo)
	legacyClient := legacyclient.NewClient(cfg)
	legacyIntegrator := legacy.New(cfg, legacyClient)

	// Tabela de taxas de câmbio com recarga automática em caso de edição
	ratesTable, err := rates.NewTable(cfg.Rates.Path, cfg.Rates.ReportingCurrency, nil)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar a tabela de taxas de câmbio")
	}

	stopWatching, err := ratesTable.Watch()
	if err != nil {
		logrus.WithError(err).Warn("Não foi possível observar o arquivo de taxas, seguindo sem recarga automática")
	} else {
		defer stopWatching()
	}

	normalizer := converting.NewNormalizer(ratesTable)

	// Fachada de relatórios com cache de resultados completos
	reportService := reporting.NewService(
		[]reporting.EventSource{legacyIntegrator, currentEventRepo},
		directoryRepo,
		normalizer,
		cfg.Reporting.MaxConcurrentFetches,
	)
	cachedReportService := reporting.NewCachedReporter(reportService, cfg.Reporting.CacheTTL)

	// Agendador de aquecimento do cache de relatórios
	reportWarmupService := scheduler.NewReportWarmupService(cachedReportService, cfg)
	if err := reportWarmupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de aquecimento de relatórios")
	} else {
		logrus.Info("Agendador de aquecimento de relatórios iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		cachedReportService,
		authenticator,
		reportWarmupService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
