package creative

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-insights-api/infrastructure/integrator/meta"
	"github.com/vfg2006/creative-insights-api/infrastructure/repository"
	"github.com/vfg2006/creative-insights-api/internal/config"
	"github.com/vfg2006/creative-insights-api/internal/domain"
)

const genericEnrichmentError = "falha ao buscar mídia fresca para o anúncio"

// Service é a fachada de busca e enriquecimento de criativos exposta à
// camada de apresentação.
type Service interface {
	Search(ctx context.Context, filters *domain.SearchFilters) (*domain.SearchResult, error)
	LoadMore(ctx context.Context) (*domain.SearchResult, error)
	CurrentResult() *domain.SearchResult
	SetQuery(query string)
	UpdateFilters(mutate func(*domain.SearchFilters))
	GetLoadingState(adID string) (domain.LoadingState, bool)
	IsEnrichmentInProgress() bool
	Close()
}

type service struct {
	cfg *config.Config

	insightRepo    repository.InsightRepository
	creativeRepo   repository.CreativeRepository
	entityNameRepo repository.EntityNameRepository
	adMetadataRepo repository.AdMetadataRepository
	mediaFetcher   meta.MediaFetcher

	debouncer *Debouncer

	// mu protege todo o estado de geração abaixo. A coleção e os loading
	// states só são mutados pelos handlers de conclusão, e só depois que a
	// checagem de staleness passa.
	mu            sync.Mutex
	generation    uint64
	filters       *domain.SearchFilters
	filtered      []*domain.EnrichedCreative
	surfaced      []*domain.EnrichedCreative
	total         int
	offset        int
	loadingStates map[string]domain.LoadingState
	pendingGroups int
	enriching     bool
}

func NewService(
	cfg *config.Config,
	insightRepo repository.InsightRepository,
	creativeRepo repository.CreativeRepository,
	entityNameRepo repository.EntityNameRepository,
	adMetadataRepo repository.AdMetadataRepository,
	mediaFetcher meta.MediaFetcher,
) Service {
	return &service{
		cfg:            cfg,
		insightRepo:    insightRepo,
		creativeRepo:   creativeRepo,
		entityNameRepo: entityNameRepo,
		adMetadataRepo: adMetadataRepo,
		mediaFetcher:   mediaFetcher,
		debouncer:      NewDebouncer(),
		loadingStates:  make(map[string]domain.LoadingState),
	}
}

// Search executa o pipeline completo: consulta o store, agrega, junta,
// filtra/ordena/pagina, instala o resultado como a geração corrente e
// dispara o enriquecimento em background para a janela retornada.
//
// Erros de store são terminais para a chamada; falhas de enriquecimento
// nunca chegam aqui.
func (s *service) Search(ctx context.Context, filters *domain.SearchFilters) (*domain.SearchResult, error) {
	filters = s.normalizeFilters(filters)

	// Passo 1: nova geração. Trabalho em voo de gerações anteriores vai
	// descartar seus resultados na checagem de conclusão.
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.filters = filters
	s.loadingStates = make(map[string]domain.LoadingState)
	s.pendingGroups = 0
	s.enriching = false
	s.mu.Unlock()

	enriched, err := s.buildCollection(ctx, filters)
	if err != nil {
		return nil, err
	}

	windowed := FilterSortPage(enriched, filters)

	s.mu.Lock()
	if gen != s.generation {
		// Uma busca mais nova já assumiu; não instalar nada. Os registros
		// nunca foram instalados, então nenhuma goroutine os muta.
		s.mu.Unlock()
		return windowed, nil
	}
	s.filtered = filterOnly(enriched, filters)
	s.surfaced = append([]*domain.EnrichedCreative(nil), windowed.Creatives...)
	s.total = windowed.Total
	s.offset = filters.Offset

	// Publicação segura: o chamador recebe cópias tiradas sob o mutex. Os
	// handlers de conclusão mutam apenas os registros vivos em s.surfaced;
	// a coleção mesclada é observada via CurrentResult.
	result := &domain.SearchResult{
		Creatives: snapshotRecords(s.surfaced),
		Total:     windowed.Total,
		HasMore:   windowed.HasMore,
	}
	s.mu.Unlock()

	s.enrich(gen, windowed.Creatives)

	return result, nil
}

// LoadMore avança a janela sobre o resultado já filtrado, acrescenta a nova
// fatia à coleção exposta e enriquece apenas a fatia nova, sob a MESMA
// geração da busca corrente.
func (s *service) LoadMore(ctx context.Context) (*domain.SearchResult, error) {
	s.mu.Lock()
	gen := s.generation
	filters := s.filters
	if filters == nil {
		s.mu.Unlock()
		return &domain.SearchResult{Creatives: []*domain.EnrichedCreative{}}, nil
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = s.cfg.Search.PageSize
	}
	nextOffset := s.offset + limit

	var appended []*domain.EnrichedCreative
	if nextOffset < len(s.filtered) {
		end := nextOffset + limit
		if end > len(s.filtered) {
			end = len(s.filtered)
		}
		appended = append(appended, s.filtered[nextOffset:end]...)
		s.surfaced = append(s.surfaced, appended...)
		s.offset = nextOffset
	}

	result := &domain.SearchResult{
		Creatives: snapshotRecords(s.surfaced),
		Total:     s.total,
		HasMore:   s.offset+limit < s.total,
	}
	s.mu.Unlock()

	if len(appended) > 0 {
		s.enrich(gen, appended)
	}

	return result, nil
}

// CurrentResult devolve um retrato da coleção exposta da geração corrente,
// com as mídias já mescladas pelo enriquecimento até aqui. É o único caminho
// de leitura da coleção viva: toda observação passa pelo mutex e recebe
// cópias.
func (s *service) CurrentResult() *domain.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filters == nil {
		return &domain.SearchResult{Creatives: []*domain.EnrichedCreative{}}
	}

	limit := s.filters.Limit
	if limit <= 0 {
		limit = s.cfg.Search.PageSize
	}

	return &domain.SearchResult{
		Creatives: snapshotRecords(s.surfaced),
		Total:     s.total,
		HasMore:   s.offset+limit < s.total,
	}
}

// SetQuery agenda uma regeneração da busca com o novo texto livre após o
// intervalo de debounce. Cada tecla reinicia o atraso e cancela a
// regeneração pendente anterior.
func (s *service) SetQuery(query string) {
	s.debouncer.Trigger(s.cfg.Search.QueryDebounce(), func() {
		s.mu.Lock()
		filters := s.filters.Clone()
		s.mu.Unlock()

		if filters == nil {
			filters = &domain.SearchFilters{}
		}
		filters.Query = query
		filters.Offset = 0

		if _, err := s.Search(context.Background(), filters); err != nil {
			logrus.WithError(err).Error("creatives: debounced search failed")
		}
	})
}

// UpdateFilters aplica uma mutação estrutural nos filtros correntes e
// regenera a busca na hora, sem debounce: mudar filtro não é digitação.
// O offset volta a zero, pois qualquer mudança de filtro recomeça a
// paginação.
func (s *service) UpdateFilters(mutate func(*domain.SearchFilters)) {
	s.mu.Lock()
	filters := s.filters.Clone()
	s.mu.Unlock()

	if filters == nil {
		filters = &domain.SearchFilters{}
	}
	if mutate != nil {
		mutate(filters)
	}
	filters.Offset = 0

	if _, err := s.Search(context.Background(), filters); err != nil {
		logrus.WithError(err).Error("creatives: filter regeneration failed")
	}
}

func (s *service) GetLoadingState(adID string) (domain.LoadingState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.loadingStates[adID]
	return state, ok
}

func (s *service) IsEnrichmentInProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enriching
}

// Close cancela qualquer regeneração pendente de texto livre.
func (s *service) Close() {
	s.debouncer.Stop()
}

// buildCollection executa a parte síncrona do pipeline sobre dados já
// disponíveis: store -> agregação -> join.
func (s *service) buildCollection(ctx context.Context, filters *domain.SearchFilters) ([]*domain.EnrichedCreative, error) {
	rows, err := s.insightRepo.GetByScope(
		ctx,
		filters.Platform,
		filters.Level,
		filters.CampaignIDs,
		filters.AdsetIDs,
		filters.StartDate,
		filters.EndDate,
	)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar as linhas de insight")
	}

	metrics, scopes, err := Aggregate(rows)
	if err != nil {
		return nil, err
	}

	entityIDs := make([]string, 0, len(metrics))
	nameIDs := make([]string, 0, len(metrics)*3)
	for entityID := range metrics {
		entityIDs = append(entityIDs, entityID)
		nameIDs = append(nameIDs, entityID)
		scope := scopes[entityID]
		if scope.CampaignID != "" {
			nameIDs = append(nameIDs, scope.CampaignID)
		}
		if scope.AdsetID != "" {
			nameIDs = append(nameIDs, scope.AdsetID)
		}
	}

	creatives, err := s.creativeRepo.GetByAdIDs(ctx, entityIDs)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar as mídias de criativo")
	}

	names, err := s.entityNameRepo.GetNames(ctx, nameIDs)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar os nomes das entidades")
	}

	statuses, err := s.adMetadataRepo.GetStatuses(ctx, entityIDs)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar os status dos anúncios")
	}

	scores, err := s.adMetadataRepo.GetAIScores(ctx, entityIDs)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar os scores dos anúncios")
	}

	tags, err := s.adMetadataRepo.GetTags(ctx, entityIDs)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar as tags dos anúncios")
	}

	creativeByID := make(map[string]*domain.CreativeMedia, len(creatives))
	for _, media := range creatives {
		creativeByID[media.AdID] = media
	}

	return JoinCreatives(JoinInputs{
		Metrics:   metrics,
		Scopes:    scopes,
		Creatives: creativeByID,
		Names:     names,
		Statuses:  statuses,
		AIScores:  scores,
		Tags:      tags,
	}), nil
}

// enrich agrupa os registros elegíveis por conta, marca todos como loading em
// uma única atualização e dispara uma busca de mídia por conta. Registros sem
// conta resolvível são pulados sem marcação alguma.
func (s *service) enrich(gen uint64, records []*domain.EnrichedCreative) {
	groups := make(map[string][]*domain.EnrichedCreative)
	for _, record := range records {
		if record.AccountID == "" {
			continue
		}
		groups[record.AccountID] = append(groups[record.AccountID], record)
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}

	if len(groups) == 0 {
		// Nenhum grupo elegível: a flag global nunca fica pendurada.
		s.enriching = false
		s.mu.Unlock()
		return
	}

	// Atualização em lote única: todos os registros elegíveis viram
	// loading de uma vez, sem updates parciais visíveis.
	for _, group := range groups {
		for _, record := range group {
			s.loadingStates[record.AdID()] = domain.LoadingState{IsLoading: true}
		}
	}
	s.pendingGroups += len(groups)
	s.enriching = true
	s.mu.Unlock()

	maxConcurrent := s.cfg.Search.MaxConcurrentFetches
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	semaphore := make(chan struct{}, maxConcurrent)

	for accountID, group := range groups {
		go func(accountID string, group []*domain.EnrichedCreative) {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			adIDs := make([]string, 0, len(group))
			for _, record := range group {
				adIDs = append(adIDs, record.AdID())
			}

			result, err := s.mediaFetcher.FetchFreshMedia(context.Background(), accountID, adIDs)
			if err != nil {
				s.settleGroupFailure(gen, group, err)
				return
			}

			s.settleGroup(gen, group, result)
		}(accountID, group)
	}
}

// settleGroup aplica o resultado de um grupo: mídia utilizável substitui o
// criativo do registro preservando o resto; erro reportado marca hasError;
// nada de nada apenas limpa o loading.
func (s *service) settleGroup(gen uint64, group []*domain.EnrichedCreative, result *meta.FreshMediaResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Checagem de staleness obrigatória em todo ponto de conclusão: uma
	// geração antiga nunca muta estado, nem para limpar loading.
	if gen != s.generation {
		return
	}

	for _, record := range group {
		adID := record.AdID()

		if fresh, ok := result.Creatives[adID]; ok && fresh.HasUsableMedia() {
			record.Creative = fresh
			s.loadingStates[adID] = domain.LoadingState{}
			continue
		}

		if message, ok := result.Errors[adID]; ok {
			s.loadingStates[adID] = domain.LoadingState{HasError: true, ErrorMessage: message}
			continue
		}

		s.loadingStates[adID] = domain.LoadingState{}
	}

	s.groupSettledLocked()
}

// settleGroupFailure marca todos os anúncios do grupo com erro quando a
// chamada inteira da conta falhou.
func (s *service) settleGroupFailure(gen uint64, group []*domain.EnrichedCreative, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return
	}

	message := genericEnrichmentError
	if err != nil && err.Error() != "" {
		message = err.Error()
	}

	for _, record := range group {
		s.loadingStates[record.AdID()] = domain.LoadingState{HasError: true, ErrorMessage: message}
	}

	s.groupSettledLocked()
}

func (s *service) groupSettledLocked() {
	s.pendingGroups--
	if s.pendingGroups <= 0 {
		s.pendingGroups = 0
		s.enriching = false
	}
}

func (s *service) normalizeFilters(filters *domain.SearchFilters) *domain.SearchFilters {
	if filters == nil {
		filters = &domain.SearchFilters{}
	}
	filters = filters.Clone()

	if filters.Level == "" {
		filters.Level = domain.ReportingLevelAd
	}
	if filters.Limit <= 0 {
		filters.Limit = s.cfg.Search.PageSize
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	return filters
}

// snapshotRecords copia os registros para publicação fora do mutex. Os
// handlers de conclusão seguem mutando os registros vivos; uma cópia entregue
// ao chamador nunca é escrita depois de publicada.
func snapshotRecords(records []*domain.EnrichedCreative) []*domain.EnrichedCreative {
	out := make([]*domain.EnrichedCreative, len(records))
	for i, record := range records {
		clone := *record
		out[i] = &clone
	}
	return out
}

// filterOnly devolve a lista filtrada e ordenada completa, sem janela, para
// servir as chamadas de LoadMore da mesma geração.
func filterOnly(creatives []*domain.EnrichedCreative, filters *domain.SearchFilters) []*domain.EnrichedCreative {
	full := filters.Clone()
	full.Offset = 0
	full.Limit = 0

	return FilterSortPage(creatives, full).Creatives
}
