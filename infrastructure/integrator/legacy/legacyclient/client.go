package legacyclient

import (
	"net/http"
	"time"

	legacydomain "github.com/vfg2006/performance-dashboard-api/infrastructure/integrator/legacy/domain"
	"github.com/vfg2006/performance-dashboard-api/internal/config"
)

type Client interface {
	GetRecords(params legacydomain.GetRecordsParams) (RecordsConsultationResponse, error)
}

type LegacyClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient cria o cliente HTTP da loja legada. O timeout do cliente é o
// limite fixo por chamada do pipeline: estourou, a busca conta como origem
// indisponível em vez de travar o relatório inteiro.
func NewClient(cfg *config.Config) Client {
	timeout := cfg.Legacy.FetchTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &LegacyClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
	}
}
