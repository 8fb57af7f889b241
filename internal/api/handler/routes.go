package handler

import (
	"net/http"

	"github.com/vfg2006/creative-insights-api/internal/api/handler/router"
	"github.com/vfg2006/creative-insights-api/internal/usecases/creative"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Creatives(service creative.Service) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/creatives",
			Method:  http.MethodGet,
			Handler: GetCurrentCreatives(service),
		},
		{
			Path:    "/v1/creatives/search",
			Method:  http.MethodPost,
			Handler: SearchCreatives(service),
		},
		{
			Path:    "/v1/creatives/load-more",
			Method:  http.MethodPost,
			Handler: LoadMoreCreatives(service),
		},
		{
			Path:    "/v1/creatives/query",
			Method:  http.MethodPost,
			Handler: SetCreativeQuery(service),
		},
		{
			Path:    "/v1/creatives/enrichment-status",
			Method:  http.MethodGet,
			Handler: GetEnrichmentStatus(service),
		},
		{
			Path:    "/v1/creatives/:id/loading-state",
			Method:  http.MethodGet,
			Handler: GetCreativeLoadingState(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
