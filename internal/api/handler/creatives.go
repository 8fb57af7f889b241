package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/creative-insights-api/internal/domain"
	"github.com/vfg2006/creative-insights-api/internal/usecases/creative"
	"github.com/vfg2006/creative-insights-api/pkg/apiErrors"
	"github.com/vfg2006/creative-insights-api/pkg/log"
	"github.com/vfg2006/creative-insights-api/pkg/utils"
)

type searchCreativesRequest struct {
	Platform       string   `json:"platform"`
	CampaignIDs    []string `json:"campaign_ids"`
	AdsetIDs       []string `json:"adset_ids"`
	Level          string   `json:"level"`
	CreativeType   string   `json:"creative_type"`
	Query          string   `json:"query"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	MinImpressions *int     `json:"min_impressions"`
	MaxImpressions *int     `json:"max_impressions"`
	MinSpend       *float64 `json:"min_spend"`
	MaxSpend       *float64 `json:"max_spend"`
	MinCTR         *float64 `json:"min_ctr"`
	MaxCTR         *float64 `json:"max_ctr"`
	Tags           []string `json:"tags"`
	SortBy         string   `json:"sort_by"`
	SortDirection  string   `json:"sort_direction"`
	Limit          int      `json:"limit"`
	Offset         int      `json:"offset"`
}

func (req *searchCreativesRequest) toFilters() (*domain.SearchFilters, error) {
	filters := &domain.SearchFilters{
		Platform:       req.Platform,
		CampaignIDs:    req.CampaignIDs,
		AdsetIDs:       req.AdsetIDs,
		Level:          domain.ReportingLevel(req.Level),
		CreativeType:   domain.CreativeType(req.CreativeType),
		Query:          req.Query,
		MinImpressions: req.MinImpressions,
		MaxImpressions: req.MaxImpressions,
		MinSpend:       req.MinSpend,
		MaxSpend:       req.MaxSpend,
		MinCTR:         req.MinCTR,
		MaxCTR:         req.MaxCTR,
		Tags:           req.Tags,
		SortBy:         domain.SortKey(req.SortBy),
		SortDirection:  domain.SortDirection(req.SortDirection),
		Limit:          req.Limit,
		Offset:         req.Offset,
	}

	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	filters.StartDate = startDate

	endDate, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	filters.EndDate = endDate

	return filters, nil
}

func SearchCreatives(service creative.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req searchCreativesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithError(err).Warn("creatives: invalid search request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "corpo da requisição inválido", nil)
			return
		}

		filters, err := req.toFilters()
		if err != nil {
			logger.WithError(err).Warn("creatives: invalid date filter")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "datas devem estar no formato YYYY-MM-DD", nil)
			return
		}

		logger.WithFields(log.Fields{
			"level":  filters.Level,
			"query":  filters.Query,
			"limit":  filters.Limit,
			"offset": filters.Offset,
		}).Info("creatives: searching creatives")

		result, err := service.Search(r.Context(), filters)
		if err != nil {
			logger.WithError(err).Error("creatives: search failed")

			if errors.Is(err, creative.ErrMixedReportingLevels) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"total":    result.Total,
			"returned": len(result.Creatives),
			"has_more": result.HasMore,
		}).Info("creatives: search completed")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("creatives: failed to encode search response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
		}
	})
}

// GetCurrentCreatives devolve o retrato corrente da coleção, já com as
// mídias mescladas pelo enriquecimento concluído até o momento.
func GetCurrentCreatives(service creative.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		result := service.CurrentResult()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("creatives: failed to encode current result response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
		}
	})
}

func LoadMoreCreatives(service creative.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		result, err := service.LoadMore(r.Context())
		if err != nil {
			logger.WithError(err).Error("creatives: load more failed")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"total":    result.Total,
			"returned": len(result.Creatives),
			"has_more": result.HasMore,
		}).Info("creatives: load more completed")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("creatives: failed to encode load more response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
		}
	})
}

type setQueryRequest struct {
	Query string `json:"query"`
}

// SetCreativeQuery agenda a regeneração da busca com debounce para o novo
// texto livre. Responde 202: a busca em si acontece depois do intervalo.
func SetCreativeQuery(service creative.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req setQueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithError(err).Warn("creatives: invalid query request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "corpo da requisição inválido", nil)
			return
		}

		service.SetQuery(req.Query)

		w.WriteHeader(http.StatusAccepted)
	})
}

type loadingStateResponse struct {
	AdID  string               `json:"ad_id"`
	Found bool                 `json:"found"`
	State *domain.LoadingState `json:"state,omitempty"`
}

func GetCreativeLoadingState(service creative.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		adID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if adID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "id do anúncio é obrigatório", nil)
			return
		}

		response := loadingStateResponse{AdID: adID}
		if state, ok := service.GetLoadingState(adID); ok {
			response.Found = true
			response.State = &state
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("creatives: failed to encode loading state response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
		}
	})
}

type enrichmentStatusResponse struct {
	InProgress bool `json:"in_progress"`
}

func GetEnrichmentStatus(service creative.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		response := enrichmentStatusResponse{InProgress: service.IsEnrichmentInProgress()}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("creatives: failed to encode enrichment status response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
		}
	})
}
