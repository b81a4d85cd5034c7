// Package metrics expõe os contadores Prometheus do pipeline de agregação
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SourceFetches conta as buscas por origem/tipo e resultado
	SourceFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_source_fetches_total",
		Help: "Total de buscas nas origens, por origem, tipo de evento e status.",
	}, []string{"origin", "event_kind", "status"})

	// SourceFetchDuration mede a latência de cada busca em uma origem
	SourceFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_source_fetch_duration_seconds",
		Help:    "Duração das buscas nas origens, por origem.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
	}, []string{"origin"})

	// ReportsBuilt conta os relatórios montados, separando completos e parciais
	ReportsBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_reports_built_total",
		Help: "Total de relatórios montados, por status (complete|partial).",
	}, []string{"status"})

	// ReportCacheEvents conta acertos e faltas do cache de relatórios
	ReportCacheEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_report_cache_events_total",
		Help: "Eventos do cache de relatórios (hit|miss).",
	}, []string{"result"})

	// UnattributedEvents conta eventos que nenhuma cadeia de fallback resolveu
	UnattributedEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_unattributed_events_total",
		Help: "Total de eventos sem atribuição de funcionário.",
	})
)
