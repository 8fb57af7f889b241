package creative

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/creative-insights-api/infrastructure/integrator/meta"
	metamocks "github.com/vfg2006/creative-insights-api/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/creative-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/creative-insights-api/internal/config"
	"github.com/vfg2006/creative-insights-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		Search: config.Search{
			PageSize:             24,
			QueryDebounceMS:      20,
			MaxConcurrentFetches: 5,
		},
	}
}

func newTestService(ctrl *gomock.Controller) (*service, *mocks.MockInsightRepository, *mocks.MockCreativeRepository, *mocks.MockEntityNameRepository, *mocks.MockAdMetadataRepository, *metamocks.MockMediaFetcher) {
	insightRepo := mocks.NewMockInsightRepository(ctrl)
	creativeRepo := mocks.NewMockCreativeRepository(ctrl)
	entityNameRepo := mocks.NewMockEntityNameRepository(ctrl)
	adMetadataRepo := mocks.NewMockAdMetadataRepository(ctrl)
	mediaFetcher := metamocks.NewMockMediaFetcher(ctrl)

	svc := NewService(testConfig(), insightRepo, creativeRepo, entityNameRepo, adMetadataRepo, mediaFetcher).(*service)

	return svc, insightRepo, creativeRepo, entityNameRepo, adMetadataRepo, mediaFetcher
}

func expectStoreReads(
	insightRepo *mocks.MockInsightRepository,
	creativeRepo *mocks.MockCreativeRepository,
	entityNameRepo *mocks.MockEntityNameRepository,
	adMetadataRepo *mocks.MockAdMetadataRepository,
	rows []*domain.InsightRow,
) {
	insightRepo.EXPECT().
		GetByScope(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(rows, nil).
		AnyTimes()
	creativeRepo.EXPECT().GetByAdIDs(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	entityNameRepo.EXPECT().GetNames(gomock.Any(), gomock.Any()).Return(map[string]string{}, nil).AnyTimes()
	adMetadataRepo.EXPECT().GetStatuses(gomock.Any(), gomock.Any()).Return(map[string]string{}, nil).AnyTimes()
	adMetadataRepo.EXPECT().GetAIScores(gomock.Any(), gomock.Any()).Return(map[string]float64{}, nil).AnyTimes()
	adMetadataRepo.EXPECT().GetTags(gomock.Any(), gomock.Any()).Return(map[string][]string{}, nil).AnyTimes()
}

func insightRowsForAds(adIDs ...string) []*domain.InsightRow {
	rows := make([]*domain.InsightRow, 0, len(adIDs))
	for i, adID := range adIDs {
		rows = append(rows, &domain.InsightRow{
			EntityID:    adID,
			CampaignID:  "c1",
			AdsetID:     "s1",
			AccountID:   "A",
			Level:       domain.ReportingLevelAd,
			Date:        time.Date(2025, 6, 1+i, 0, 0, 0, 0, time.UTC),
			Impressions: 1000,
			Clicks:      20,
			Spend:       float64(50 + i),
		})
	}
	return rows
}

func TestService_Search(t *testing.T) {
	t.Run("Erro de store é terminal para a busca", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, insightRepo, _, _, _, _ := newTestService(ctrl)

		insightRepo.EXPECT().
			GetByScope(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("conexão recusada"))

		_, err := svc.Search(context.Background(), &domain.SearchFilters{})
		assert.Error(t, err)
	})

	t.Run("Filtro de plataforma é repassado à consulta do store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, insightRepo, creativeRepo, entityNameRepo, adMetadataRepo, _ := newTestService(ctrl)

		insightRepo.EXPECT().
			GetByScope(gomock.Any(), "meta", domain.ReportingLevelAd, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)
		creativeRepo.EXPECT().GetByAdIDs(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
		entityNameRepo.EXPECT().GetNames(gomock.Any(), gomock.Any()).Return(map[string]string{}, nil).AnyTimes()
		adMetadataRepo.EXPECT().GetStatuses(gomock.Any(), gomock.Any()).Return(map[string]string{}, nil).AnyTimes()
		adMetadataRepo.EXPECT().GetAIScores(gomock.Any(), gomock.Any()).Return(map[string]float64{}, nil).AnyTimes()
		adMetadataRepo.EXPECT().GetTags(gomock.Any(), gomock.Any()).Return(map[string][]string{}, nil).AnyTimes()

		_, err := svc.Search(context.Background(), &domain.SearchFilters{Platform: "meta"})
		require.NoError(t, err)
	})

	t.Run("Busca sem linhas devolve resultado vazio e flag de enriquecimento falsa", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, insightRepo, creativeRepo, entityNameRepo, adMetadataRepo, _ := newTestService(ctrl)
		expectStoreReads(insightRepo, creativeRepo, entityNameRepo, adMetadataRepo, nil)

		result, err := svc.Search(context.Background(), &domain.SearchFilters{})
		require.NoError(t, err)

		assert.Empty(t, result.Creatives)
		assert.Equal(t, 0, result.Total)
		// Zero grupos elegíveis: a flag não pode ficar pendurada em true
		assert.False(t, svc.IsEnrichmentInProgress())
	})

	t.Run("Mídia fresca com imagem utilizável substitui o criativo e limpa o loading", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, insightRepo, creativeRepo, entityNameRepo, adMetadataRepo, mediaFetcher := newTestService(ctrl)
		expectStoreReads(insightRepo, creativeRepo, entityNameRepo, adMetadataRepo, insightRowsForAds("1"))

		mediaFetcher.EXPECT().
			FetchFreshMedia(gomock.Any(), "A", []string{"1"}).
			Return(&meta.FreshMediaResult{
				Creatives: map[string]*domain.CreativeMedia{
					"1": {AdID: "1", Type: domain.CreativeTypeImage, ImageURL: "x.png", FetchStatus: domain.FetchStatusCached},
				},
				Errors: map[string]string{},
			}, nil)

		result, err := svc.Search(context.Background(), &domain.SearchFilters{})
		require.NoError(t, err)
		require.Len(t, result.Creatives, 1)

		assert.Eventually(t, func() bool {
			state, ok := svc.GetLoadingState("1")
			return ok && !state.IsLoading && !state.HasError
		}, time.Second, 5*time.Millisecond)

		// A mescla aparece na coleção corrente, lida sob o mutex
		current := svc.CurrentResult()
		require.Len(t, current.Creatives, 1)
		assert.Equal(t, "x.png", current.Creatives[0].Creative.ImageURL)

		// O retrato publicado pela busca é uma cópia: o enriquecimento em
		// segundo plano nunca escreve nos registros já entregues
		assert.Equal(t, domain.CreativeTypeUnknown, result.Creatives[0].Creative.Type)
		assert.Empty(t, result.Creatives[0].Creative.ImageURL)
		assert.False(t, svc.IsEnrichmentInProgress())
	})

	t.Run("Falha do grupo inteiro marca todos os anúncios da conta com erro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, insightRepo, creativeRepo, entityNameRepo, adMetadataRepo, mediaFetcher := newTestService(ctrl)
		expectStoreReads(insightRepo, creativeRepo, entityNameRepo, adMetadataRepo, insightRowsForAds("1", "2"))

		mediaFetcher.EXPECT().
			FetchFreshMedia(gomock.Any(), "A", gomock.Any()).
			Return(nil, errors.New("api indisponível"))

		_, err := svc.Search(context.Background(), &domain.SearchFilters{})
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			s1, ok1 := svc.GetLoadingState("1")
			s2, ok2 := svc.GetLoadingState("2")
			return ok1 && ok2 && s1.HasError && s2.HasError && !s1.IsLoading && !s2.IsLoading
		}, time.Second, 5*time.Millisecond)

		state, _ := svc.GetLoadingState("1")
		assert.Equal(t, "api indisponível", state.ErrorMessage)
	})

	t.Run("Anúncio sem mídia e sem erro apenas limpa o loading", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, insightRepo, creativeRepo, entityNameRepo, adMetadataRepo, mediaFetcher := newTestService(ctrl)
		expectStoreReads(insightRepo, creativeRepo, entityNameRepo, adMetadataRepo, insightRowsForAds("1"))

		mediaFetcher.EXPECT().
			FetchFreshMedia(gomock.Any(), "A", gomock.Any()).
			Return(&meta.FreshMediaResult{
				Creatives: map[string]*domain.CreativeMedia{},
				Errors:    map[string]string{},
			}, nil)

		_, err := svc.Search(context.Background(), &domain.SearchFilters{})
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			state, ok := svc.GetLoadingState("1")
			return ok && !state.IsLoading && !state.HasError
		}, time.Second, 5*time.Millisecond)
	})
}

func TestService_GeracaoObsoleta(t *testing.T) {
	t.Run("Conclusão de geração antiga não muta estado algum", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, _, _, _, _ := newTestService(ctrl)

		record := &domain.EnrichedCreative{
			Creative:  domain.NewPlaceholderCreative("1"),
			AccountID: "A",
		}

		svc.mu.Lock()
		svc.generation = 1
		svc.loadingStates["1"] = domain.LoadingState{IsLoading: true}
		svc.pendingGroups = 1
		svc.enriching = true
		svc.mu.Unlock()

		// Uma busca mais nova assume e zera o estado transitório
		svc.mu.Lock()
		svc.generation = 2
		svc.loadingStates = map[string]domain.LoadingState{}
		svc.pendingGroups = 0
		svc.enriching = false
		svc.mu.Unlock()

		// A conclusão da geração 1 chega atrasada, com sucesso
		svc.settleGroup(1, []*domain.EnrichedCreative{record}, &meta.FreshMediaResult{
			Creatives: map[string]*domain.CreativeMedia{
				"1": {AdID: "1", ImageURL: "stale.png"},
			},
			Errors: map[string]string{},
		})

		// Nada pode ter sido escrito: nem criativo, nem loading state
		assert.Equal(t, domain.CreativeTypeUnknown, record.Creative.Type)
		assert.Empty(t, record.Creative.ImageURL)
		_, ok := svc.GetLoadingState("1")
		assert.False(t, ok)

		// Falha atrasada também é descartada em silêncio
		svc.settleGroupFailure(1, []*domain.EnrichedCreative{record}, errors.New("tarde demais"))
		_, ok = svc.GetLoadingState("1")
		assert.False(t, ok)
	})

	t.Run("Segunda busca antes da primeira resolver descarta o resultado antigo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, insightRepo, creativeRepo, entityNameRepo, adMetadataRepo, mediaFetcher := newTestService(ctrl)
		expectStoreReads(insightRepo, creativeRepo, entityNameRepo, adMetadataRepo, insightRowsForAds("1"))

		firstStarted := make(chan struct{})
		release := make(chan struct{})

		mediaFetcher.EXPECT().
			FetchFreshMedia(gomock.Any(), "A", gomock.Any()).
			DoAndReturn(func(ctx context.Context, accountID string, adIDs []string) (*meta.FreshMediaResult, error) {
				close(firstStarted)
				<-release
				return &meta.FreshMediaResult{
					Creatives: map[string]*domain.CreativeMedia{
						"1": {AdID: "1", ImageURL: "stale.png"},
					},
					Errors: map[string]string{},
				}, nil
			})

		mediaFetcher.EXPECT().
			FetchFreshMedia(gomock.Any(), "A", gomock.Any()).
			Return(&meta.FreshMediaResult{
				Creatives: map[string]*domain.CreativeMedia{
					"1": {AdID: "1", ImageURL: "fresh.png"},
				},
				Errors: map[string]string{},
			}, nil)

		first, err := svc.Search(context.Background(), &domain.SearchFilters{})
		require.NoError(t, err)
		<-firstStarted

		second, err := svc.Search(context.Background(), &domain.SearchFilters{})
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			current := svc.CurrentResult()
			return len(current.Creatives) == 1 && current.Creatives[0].Creative.ImageURL == "fresh.png"
		}, time.Second, 5*time.Millisecond)

		// Liberar a conclusão atrasada da geração 1
		close(release)

		// A coleção corrente nunca pode regredir para a mídia antiga
		assert.Never(t, func() bool {
			return svc.CurrentResult().Creatives[0].Creative.ImageURL == "stale.png"
		}, 100*time.Millisecond, 10*time.Millisecond)

		_ = first
		_ = second
	})
}

func TestService_LoadMore(t *testing.T) {
	t.Run("LoadMore acrescenta a próxima fatia e mantém o total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, insightRepo, creativeRepo, entityNameRepo, adMetadataRepo, mediaFetcher := newTestService(ctrl)
		expectStoreReads(insightRepo, creativeRepo, entityNameRepo, adMetadataRepo, insightRowsForAds("1", "2", "3"))

		mediaFetcher.EXPECT().
			FetchFreshMedia(gomock.Any(), "A", gomock.Any()).
			Return(&meta.FreshMediaResult{
				Creatives: map[string]*domain.CreativeMedia{},
				Errors:    map[string]string{},
			}, nil).
			AnyTimes()

		first, err := svc.Search(context.Background(), &domain.SearchFilters{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, first.Creatives, 2)
		assert.Equal(t, 3, first.Total)
		assert.True(t, first.HasMore)

		more, err := svc.LoadMore(context.Background())
		require.NoError(t, err)
		assert.Len(t, more.Creatives, 3)
		assert.Equal(t, 3, more.Total)
		assert.False(t, more.HasMore)
	})

	t.Run("LoadMore sem busca anterior devolve resultado vazio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, _, _, _, _ := newTestService(ctrl)

		result, err := svc.LoadMore(context.Background())
		require.NoError(t, err)
		assert.Empty(t, result.Creatives)
	})
}

func TestService_UpdateFilters(t *testing.T) {
	t.Run("Mudança estrutural de filtro regenera na hora e zera a paginação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, insightRepo, creativeRepo, entityNameRepo, adMetadataRepo, mediaFetcher := newTestService(ctrl)
		expectStoreReads(insightRepo, creativeRepo, entityNameRepo, adMetadataRepo, insightRowsForAds("1", "2", "3"))

		mediaFetcher.EXPECT().
			FetchFreshMedia(gomock.Any(), "A", gomock.Any()).
			Return(&meta.FreshMediaResult{
				Creatives: map[string]*domain.CreativeMedia{},
				Errors:    map[string]string{},
			}, nil).
			AnyTimes()

		first, err := svc.Search(context.Background(), &domain.SearchFilters{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, first.Total)

		// Linhas semeadas com spend 50, 51 e 52: o novo limiar deixa só a última
		svc.UpdateFilters(func(f *domain.SearchFilters) {
			f.MinSpend = floatPtr(51.5)
		})

		result, err := svc.LoadMore(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, result.Total)
		assert.Len(t, result.Creatives, 1)
		assert.False(t, result.HasMore)
	})
}

func TestService_SetQuery(t *testing.T) {
	t.Run("Teclas em sequência disparam uma única regeneração", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, insightRepo, creativeRepo, entityNameRepo, adMetadataRepo, _ := newTestService(ctrl)
		defer svc.Close()

		searches := make(chan struct{}, 10)
		insightRepo.EXPECT().
			GetByScope(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, platform string, level domain.ReportingLevel, campaignIDs, adsetIDs []string, start, end *time.Time) ([]*domain.InsightRow, error) {
				searches <- struct{}{}
				return nil, nil
			}).
			AnyTimes()
		creativeRepo.EXPECT().GetByAdIDs(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
		entityNameRepo.EXPECT().GetNames(gomock.Any(), gomock.Any()).Return(map[string]string{}, nil).AnyTimes()
		adMetadataRepo.EXPECT().GetStatuses(gomock.Any(), gomock.Any()).Return(map[string]string{}, nil).AnyTimes()
		adMetadataRepo.EXPECT().GetAIScores(gomock.Any(), gomock.Any()).Return(map[string]float64{}, nil).AnyTimes()
		adMetadataRepo.EXPECT().GetTags(gomock.Any(), gomock.Any()).Return(map[string][]string{}, nil).AnyTimes()

		svc.SetQuery("p")
		svc.SetQuery("pr")
		svc.SetQuery("promo")

		// Só a última consulta sobrevive ao debounce
		select {
		case <-searches:
		case <-time.After(time.Second):
			t.Fatal("regeneração com debounce nunca executou")
		}

		select {
		case <-searches:
			t.Fatal("mais de uma regeneração executou para a mesma rajada de teclas")
		case <-time.After(100 * time.Millisecond):
		}
	})
}
