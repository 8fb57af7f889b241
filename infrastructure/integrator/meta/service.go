package meta

import (
	"context"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/creative-insights-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/creative-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/creative-insights-api/internal/config"
	"github.com/vfg2006/creative-insights-api/internal/domain"
)

// FreshMediaResult é o resultado de uma busca de mídia na Graph API para um
// conjunto de anúncios de uma mesma conta. Ids sem criativo utilizável vêm
// mapeados em Errors em vez de Creatives.
type FreshMediaResult struct {
	Creatives map[string]*domain.CreativeMedia
	Errors    map[string]string
}

// MediaFetcher busca mídia fresca de criativos direto na API do Meta.
type MediaFetcher interface {
	FetchFreshMedia(ctx context.Context, accountID string, adIDs []string) (*FreshMediaResult, error)
}

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// FetchFreshMedia busca os criativos dos anúncios informados. Uma falha da
// chamada à API derruba o grupo inteiro; anúncios individuais sem criativo
// retornam com erro próprio sem afetar os demais.
func (s *MetaIntegrator) FetchFreshMedia(ctx context.Context, accountID string, adIDs []string) (*FreshMediaResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ads, err := s.Client.GetAdCreativesByAccountID(accountID, adIDs)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"ad_count":   len(adIDs),
			"error":      err.Error(),
		}).Error("creatives: failed to get ad creatives from API")
		return nil, err
	}

	byAdID := make(map[string]*metadomain.AdWithCreative, len(ads))
	for i := range ads {
		byAdID[ads[i].ID] = &ads[i]
	}

	result := &FreshMediaResult{
		Creatives: make(map[string]*domain.CreativeMedia),
		Errors:    make(map[string]string),
	}

	for _, adID := range adIDs {
		ad, ok := byAdID[adID]
		if !ok || ad.Creative == nil {
			result.Errors[adID] = "anúncio sem criativo na API do Meta"
			continue
		}

		creative := FactoryCreativeMedia(adID, ad.Creative)
		if !creative.HasUsableMedia() {
			result.Errors[adID] = "criativo retornado sem mídia utilizável"
			continue
		}

		result.Creatives[adID] = creative
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"requested":  len(adIDs),
		"fetched":    len(result.Creatives),
		"failed":     len(result.Errors),
	}).Debug("creatives: successfully retrieved ad creatives")

	return result, nil
}

// FactoryCreativeMedia converte o criativo bruto da Graph API para o formato
// interno de mídia de criativo.
func FactoryCreativeMedia(adID string, raw *metadomain.AdCreative) *domain.CreativeMedia {
	creativeType := domain.CreativeTypeUnknown
	if mapped, ok := metadomain.MetaObjectTypeToCreativeType[raw.ObjectType]; ok {
		creativeType = domain.CreativeType(mapped)
	}

	creative := &domain.CreativeMedia{
		AdID:         adID,
		Type:         creativeType,
		LiveImageURL: raw.ImageURL,
		ThumbnailURL: raw.ThumbnailURL,
		LiveVideoURL: raw.VideoSourceURL,
		Title:        raw.Title,
		Body:         raw.Body,
		Description:  raw.LinkDescription,
		CallToAction: raw.CallToActionType,
		FetchStatus:  domain.FetchStatusCached,
	}

	creative.IsComplete = creative.BestImageURL() != "" || creative.BestVideoURL() != ""
	if !creative.IsComplete && creative.ThumbnailURL == "" {
		creative.FetchStatus = domain.FetchStatusEmpty
	}

	return creative
}
