package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/creative-insights-api/infrastructure/integrator/meta"
	metamocks "github.com/vfg2006/creative-insights-api/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/creative-insights-api/infrastructure/repository"
	"github.com/vfg2006/creative-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/creative-insights-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestCreativeMediaSyncService_syncStaleCreativeMedia(t *testing.T) {
	tests := []struct {
		name  string
		setup func(creativeRepo *mocks.MockCreativeRepository, mediaFetcher *metamocks.MockMediaFetcher)
	}{
		{
			name: "Mídia desatualizada é buscada por conta e persistida",
			setup: func(creativeRepo *mocks.MockCreativeRepository, mediaFetcher *metamocks.MockMediaFetcher) {
				creativeRepo.EXPECT().
					ListStaleMedia(gomock.Any(), 50).
					Return([]repository.StaleMediaRef{
						{AdID: "1", AccountID: "A"},
						{AdID: "2", AccountID: "A"},
					}, nil)

				mediaFetcher.EXPECT().
					FetchFreshMedia(gomock.Any(), "A", []string{"1", "2"}).
					Return(&meta.FreshMediaResult{
						Creatives: map[string]*domain.CreativeMedia{
							"1": {AdID: "1", Type: domain.CreativeTypeImage, ImageURL: "x.png", FetchStatus: domain.FetchStatusCached},
						},
						Errors: map[string]string{"2": "anúncio sem criativo na API do Meta"},
					}, nil)

				creativeRepo.EXPECT().
					SaveOrUpdateBatch(gomock.Any(), gomock.Len(1)).
					Return(nil)
			},
		},
		{
			name: "Falha ao persistir o lote da conta não derruba a execução",
			setup: func(creativeRepo *mocks.MockCreativeRepository, mediaFetcher *metamocks.MockMediaFetcher) {
				creativeRepo.EXPECT().
					ListStaleMedia(gomock.Any(), 50).
					Return([]repository.StaleMediaRef{{AdID: "1", AccountID: "A"}}, nil)

				mediaFetcher.EXPECT().
					FetchFreshMedia(gomock.Any(), "A", gomock.Any()).
					Return(&meta.FreshMediaResult{
						Creatives: map[string]*domain.CreativeMedia{
							"1": {AdID: "1", Type: domain.CreativeTypeImage, ImageURL: "x.png", FetchStatus: domain.FetchStatusCached},
						},
						Errors: map[string]string{},
					}, nil)

				creativeRepo.EXPECT().
					SaveOrUpdateBatch(gomock.Any(), gomock.Len(1)).
					Return(errors.New("deadlock detectado"))
			},
		},
		{
			name: "Erro ao listar mídia desatualizada encerra a execução sem chamadas à API",
			setup: func(creativeRepo *mocks.MockCreativeRepository, mediaFetcher *metamocks.MockMediaFetcher) {
				creativeRepo.EXPECT().
					ListStaleMedia(gomock.Any(), 50).
					Return(nil, errors.New("conexão recusada"))
			},
		},
		{
			name: "Falha da conta inteira não persiste nada",
			setup: func(creativeRepo *mocks.MockCreativeRepository, mediaFetcher *metamocks.MockMediaFetcher) {
				creativeRepo.EXPECT().
					ListStaleMedia(gomock.Any(), 50).
					Return([]repository.StaleMediaRef{{AdID: "1", AccountID: "A"}}, nil)

				mediaFetcher.EXPECT().
					FetchFreshMedia(gomock.Any(), "A", gomock.Any()).
					Return(nil, errors.New("api indisponível"))
			},
		},
		{
			name: "Criativo sem account_id é pulado",
			setup: func(creativeRepo *mocks.MockCreativeRepository, mediaFetcher *metamocks.MockMediaFetcher) {
				creativeRepo.EXPECT().
					ListStaleMedia(gomock.Any(), 50).
					Return([]repository.StaleMediaRef{{AdID: "1", AccountID: ""}}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			creativeRepo := mocks.NewMockCreativeRepository(ctrl)
			mediaFetcher := metamocks.NewMockMediaFetcher(ctrl)

			tt.setup(creativeRepo, mediaFetcher)

			service := &CreativeMediaSyncService{
				config: CreativeMediaSyncConfig{
					CronSchedule: "0 4 * * *",
					BatchSize:    50,
					SyncEnabled:  true,
				},
				creativeRepo: creativeRepo,
				mediaFetcher: mediaFetcher,
			}

			service.syncStaleCreativeMedia()

			assert.False(t, service.syncRunning)
			assert.False(t, service.lastSyncStartedAt.IsZero())
		})
	}
}
