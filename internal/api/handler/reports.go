package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/performance-dashboard-api/internal/domain"
	"github.com/vfg2006/performance-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/performance-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/performance-dashboard-api/pkg/log"
	"github.com/vfg2006/performance-dashboard-api/pkg/middleware"
	"github.com/vfg2006/performance-dashboard-api/pkg/utils"
)

// reportParams extrai a data de referência e o mês/ano selecionados da query.
// Tudo é opcional: a data de referência padrão é hoje e o mês/ano padrão é o
// da própria data de referência.
func reportParams(r *http.Request) (time.Time, time.Month, int, error) {
	referenceDate := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			return time.Time{}, 0, 0, errors.Wrap(err, "parâmetro date inválido")
		}
		referenceDate = *parsed
	}

	month := referenceDate.Month()
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			return time.Time{}, 0, 0, errors.New("parâmetro month inválido")
		}
		month = time.Month(parsed)
	}

	year := referenceDate.Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return time.Time{}, 0, 0, errors.New("parâmetro year inválido")
		}
		year = parsed
	}

	return referenceDate, month, year, nil
}

// PerformanceReport retorna o relatório de desempenho completo, com todas as
// janelas e linhas por departamento.
func PerformanceReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		referenceDate, month, year, err := reportParams(r)
		if err != nil {
			logger.WithFields(log.Fields{
				"query": r.URL.RawQuery,
				"error": err.Error(),
			}).Warn("reports: parâmetros de relatório inválidos")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"reference_date": referenceDate.Format(time.DateOnly),
			"month":          int(month),
			"year":           year,
		}).Info("reports: montando relatório de desempenho")

		report, err := service.BuildReport(r.Context(), referenceDate, month, year)
		if err != nil {
			if errors.Is(err, reporting.ErrInvalidReferenceParameters) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetros de referência inválidos", nil)
				return
			}

			logger.WithError(err).Error("reports: falha ao montar relatório")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar relatório", nil)
			return
		}

		if report.Partial {
			logger.WithField("failed_sources", len(report.FailedSources)).
				Warn("reports: relatório montado parcialmente")
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("reports: falha ao serializar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// MyPerformanceReport retorna o relatório restrito ao departamento do
// funcionário vinculado ao usuário logado.
func MyPerformanceReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		if userClaims.UserEmployeeID == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Usuário sem funcionário vinculado", nil)
			return
		}

		referenceDate, month, year, err := reportParams(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		report, err := service.BuildReportForEmployee(r.Context(), referenceDate, month, year, *userClaims.UserEmployeeID)
		if err != nil {
			if errors.Is(err, reporting.ErrDepartmentRequired) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Funcionário sem departamento definido", nil)
				return
			}

			logger.WithError(err).WithField("employee_id", *userClaims.UserEmployeeID).
				Error("reports: falha ao montar relatório do funcionário")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar relatório", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("reports: falha ao serializar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}
