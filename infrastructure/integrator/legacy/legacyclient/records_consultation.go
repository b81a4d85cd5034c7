package legacyclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"

	legacydomain "github.com/vfg2006/performance-dashboard-api/infrastructure/integrator/legacy/domain"
)

type RecordsConsultationResponse struct {
	Items []legacydomain.Record `json:"items"`
}

func (c *LegacyClient) GetRecords(params legacydomain.GetRecordsParams) (RecordsConsultationResponse, error) {
	var response RecordsConsultationResponse

	// Construir a URL da requisição.
	endpoint, err := url.Parse(c.config.Legacy.URL)
	if err != nil {
		return response, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "/records/period")

	// Adicionar parâmetros de consulta.
	query := endpoint.Query()
	query.Set("kind", params.Kind)
	query.Set("start", params.StartDate)
	query.Set("end", params.EndDate)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequest(http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return response, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Legacy.AccessToken)
	req.Header.Set("Accept", "application/json")

	// O timeout fixo por chamada está no httpClient; aqui não há retry: a
	// fachada trata falha como origem indisponível e segue.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return response, fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return response, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return response, nil
}
