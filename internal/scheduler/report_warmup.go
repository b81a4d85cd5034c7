package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/performance-dashboard-api/internal/config"
	"github.com/vfg2006/performance-dashboard-api/internal/usecases/reporting"
)

// ReportWarmupConfig representa a configuração do aquecimento de relatórios
type ReportWarmupConfig struct {
	CronSchedule string
	Enabled      bool
}

// ReportWarmupService agenda a montagem periódica do relatório do mês
// corrente para manter o cache quente: o painel abre com resposta imediata
// em vez de esperar as duas origens.
type ReportWarmupService struct {
	scheduler          *gocron.Scheduler
	config             ReportWarmupConfig
	reporter           reporting.Reporter
	warmupRunning      bool
	warmupMutex        sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
}

// NewReportWarmupService cria uma nova instância do serviço de aquecimento de relatórios
func NewReportWarmupService(reporter reporting.Reporter, appConfig *config.Config) *ReportWarmupService {
	warmupConfig := ReportWarmupConfig{
		CronSchedule: appConfig.ReportWarmup.CronSchedule,
		Enabled:      appConfig.ReportWarmup.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": warmupConfig.CronSchedule,
		"enabled":       warmupConfig.Enabled,
	}).Info("Configuração do agendador de aquecimento de relatórios carregada")

	return &ReportWarmupService{
		scheduler: scheduler,
		config:    warmupConfig,
		reporter:  reporter,
	}
}

// Start inicia o agendador
func (s *ReportWarmupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Aquecimento de relatórios desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de aquecimento de relatórios")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.warmupCurrentMonth(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar aquecimento de relatórios: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de aquecimento de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// warmupCurrentMonth monta o relatório do mês corrente com a data de hoje.
// Relatórios parciais não entram no cache, então uma origem fora do ar faz a
// próxima execução tentar de novo.
func (s *ReportWarmupService) warmupCurrentMonth(ctx context.Context) {
	s.warmupMutex.Lock()
	if s.warmupRunning {
		s.warmupMutex.Unlock()
		logrus.Info("Aquecimento de relatórios já em andamento, ignorando")
		return
	}
	s.warmupRunning = true
	s.warmupMutex.Unlock()

	startTime := time.Now()
	s.lastRunStartedAt = startTime

	defer func() {
		s.warmupMutex.Lock()
		s.warmupRunning = false
		s.warmupMutex.Unlock()
	}()

	now := time.Now()
	report, err := s.reporter.BuildReport(ctx, now, now.Month(), now.Year())
	if err != nil {
		logrus.WithError(err).Error("Erro ao aquecer relatório do mês corrente")
		return
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"partial":  report.Partial,
		"month":    int(now.Month()),
		"year":     now.Year(),
	}).Info("Aquecimento de relatórios concluído")

	s.lastRunCompletedAt = time.Now()
}

// TriggerManualWarmup inicia manualmente um aquecimento de relatórios
func (s *ReportWarmupService) TriggerManualWarmup() {
	s.warmupMutex.Lock()
	if s.warmupRunning {
		s.warmupMutex.Unlock()
		logrus.Info("Aquecimento de relatórios já em andamento, ignorando solicitação manual")
		return
	}
	s.warmupMutex.Unlock()

	logrus.Info("Iniciando aquecimento manual de relatórios")
	go s.warmupCurrentMonth(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *ReportWarmupService) GetStatus() map[string]any {
	return map[string]any{
		"warmup_enabled":        s.config.Enabled,
		"warmup_cron":           s.config.CronSchedule,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
	}
}
