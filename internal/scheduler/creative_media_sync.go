package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-insights-api/infrastructure/integrator/meta"
	"github.com/vfg2006/creative-insights-api/infrastructure/repository"
	"github.com/vfg2006/creative-insights-api/internal/config"
	"github.com/vfg2006/creative-insights-api/internal/domain"
)

// CreativeMediaSyncConfig representa a configuração do agendador de refresh de mídia
type CreativeMediaSyncConfig struct {
	CronSchedule string
	BatchSize    int
	SyncEnabled  bool
}

// CreativeMediaSyncService atualiza fora de pico a mídia cacheada dos
// criativos pendentes ou incompletos, direto da API do Meta.
type CreativeMediaSyncService struct {
	scheduler           *gocron.Scheduler
	config              CreativeMediaSyncConfig
	creativeRepo        repository.CreativeRepository
	mediaFetcher        meta.MediaFetcher
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewCreativeMediaSyncService cria uma nova instância do serviço de refresh de mídia
func NewCreativeMediaSyncService(
	creativeRepo repository.CreativeRepository,
	mediaFetcher meta.MediaFetcher,
	appConfig *config.Config,
) *CreativeMediaSyncService {
	syncConfig := CreativeMediaSyncConfig{
		CronSchedule: appConfig.CreativeMediaSync.CronSchedule,
		BatchSize:    appConfig.CreativeMediaSync.BatchSize,
		SyncEnabled:  appConfig.CreativeMediaSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"batch_size":    syncConfig.BatchSize,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de refresh de mídia carregada")

	return &CreativeMediaSyncService{
		scheduler:    scheduler,
		config:       syncConfig,
		creativeRepo: creativeRepo,
		mediaFetcher: mediaFetcher,
		syncRunning:  false,
	}
}

// Start inicia o agendador
func (s *CreativeMediaSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Refresh periódico de mídia de criativos desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de refresh de mídia de criativos")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncStaleCreativeMedia()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar refresh de mídia de criativos: %w", err)
	}

	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de refresh de mídia de criativos")
		s.scheduler.Stop()
	}()

	return nil
}

// syncStaleCreativeMedia busca o lote de criativos desatualizados e atualiza
// a mídia cacheada conta por conta.
func (s *CreativeMediaSyncService) syncStaleCreativeMedia() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Refresh de mídia de criativos já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	ctx := context.Background()

	refs, err := s.creativeRepo.ListStaleMedia(ctx, s.config.BatchSize)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar criativos com mídia desatualizada")
		return
	}

	if len(refs) == 0 {
		logrus.Info("Nenhum criativo com mídia desatualizada encontrado")
		return
	}

	// Agrupar por conta: a Graph API é consultada uma vez por conta
	groups := make(map[string][]string)
	for _, ref := range refs {
		if ref.AccountID == "" {
			logrus.WithField("ad_id", ref.AdID).Warn("Criativo sem account_id. Pulando.")
			continue
		}
		groups[ref.AccountID] = append(groups[ref.AccountID], ref.AdID)
	}

	refreshed := 0
	for accountID, adIDs := range groups {
		refreshed += s.refreshAccountMedia(ctx, accountID, adIDs)
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":  duration.String(),
		"accounts":  len(groups),
		"stale":     len(refs),
		"refreshed": refreshed,
	}).Info("Refresh de mídia de criativos concluído")

	s.lastSyncCompletedAt = time.Now()
}

// refreshAccountMedia atualiza a mídia dos anúncios de uma conta e devolve
// quantos registros foram persistidos.
func (s *CreativeMediaSyncService) refreshAccountMedia(ctx context.Context, accountID string, adIDs []string) int {
	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"ad_count":   len(adIDs),
	}).Info("Atualizando mídia de criativos para conta")

	result, err := s.mediaFetcher.FetchFreshMedia(ctx, accountID, adIDs)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("Erro ao buscar mídia fresca para conta")
		return 0
	}

	refreshed := make([]*domain.CreativeMedia, 0, len(result.Creatives))
	for _, creative := range result.Creatives {
		refreshed = append(refreshed, creative)
	}

	// Persistência transacional: o lote da conta persiste inteiro ou não
	// persiste
	saved := len(refreshed)
	if err := s.creativeRepo.SaveOrUpdateBatch(ctx, refreshed); err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("Erro ao salvar o lote de mídia atualizada da conta")
		saved = 0
	}

	for adID, message := range result.Errors {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"ad_id":      adID,
			"reason":     message,
		}).Warn("Criativo sem mídia utilizável no refresh")
	}

	return saved
}

// TriggerManualSync inicia manualmente um refresh de mídia de criativos
func (s *CreativeMediaSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Refresh de mídia de criativos já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando refresh manual de mídia de criativos")
	go s.syncStaleCreativeMedia()
}

// GetStatus retorna o status atual do agendador
func (s *CreativeMediaSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_batch_size":        s.config.BatchSize,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
