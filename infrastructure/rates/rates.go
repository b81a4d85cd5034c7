// Package rates mantém a tabela de taxas de conversão para a moeda de
// relatório. A tabela é lida de um arquivo YAML e recarregada quando o
// arquivo muda, sem reiniciar o serviço.
package rates

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// rateFile é o formato do arquivo de taxas
type rateFile struct {
	ReportingCurrency string             `yaml:"reporting_currency"`
	Rates             map[string]float64 `yaml:"rates"`
}

// Table implementa converting.RateSource. Segura para leitura concorrente;
// a recarga troca o mapa inteiro sob escrita.
type Table struct {
	path      string
	mu        sync.RWMutex
	reporting string
	rates     map[string]float64
}

// NewTable carrega a tabela do arquivo. Se o arquivo não existir, a tabela
// sobe com o fallback estático informado: o painel precisa abrir mesmo sem o
// arquivo de taxas provisionado.
func NewTable(path, reportingCurrency string, fallback map[string]float64) (*Table, error) {
	table := &Table{
		path:      path,
		reporting: reportingCurrency,
		rates:     fallback,
	}

	if table.rates == nil {
		table.rates = map[string]float64{}
	}

	if path == "" {
		return table, nil
	}

	if err := table.Reload(); err != nil {
		if os.IsNotExist(err) {
			logrus.WithField("path", path).Warn("Arquivo de taxas não encontrado, usando tabela estática")
			return table, nil
		}
		return nil, err
	}

	return table, nil
}

// Rate retorna a taxa da moeda e se ela é conhecida. A moeda de relatório
// tem taxa fixa 1.
func (t *Table) Rate(currencyCode string) (float64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if currencyCode == t.reporting {
		return 1, true
	}

	rate, ok := t.rates[currencyCode]
	return rate, ok
}

// ReportingCurrency retorna o código da moeda de relatório
func (t *Table) ReportingCurrency() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.reporting
}

// Reload força uma releitura imediata do arquivo de taxas
func (t *Table) Reload() error {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return err
	}

	var file rateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("erro ao interpretar arquivo de taxas %s: %w", t.path, err)
	}

	t.mu.Lock()
	if file.ReportingCurrency != "" {
		t.reporting = file.ReportingCurrency
	}
	if file.Rates != nil {
		t.rates = file.Rates
	}
	t.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"path":       t.path,
		"currencies": len(file.Rates),
	}).Info("Tabela de taxas de conversão carregada")

	return nil
}

// Watch inicia uma goroutine que recarrega a tabela quando o arquivo muda.
// Em caso de erro na releitura, a tabela anterior continua valendo. A função
// retornada encerra o watcher.
func (t *Table) Watch() (stop func(), err error) {
	if t.path == "" {
		return func() {}, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("erro ao criar watcher de taxas: %w", err)
	}

	if err := watcher.Add(t.path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("erro ao observar arquivo de taxas %s: %w", t.path, err)
	}

	done := make(chan struct{})
	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					if err := t.Reload(); err != nil {
						logrus.WithError(err).Warn("Erro ao recarregar tabela de taxas, mantendo a anterior")
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logrus.WithError(err).Warn("Erro no watcher da tabela de taxas")
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }, nil
}
