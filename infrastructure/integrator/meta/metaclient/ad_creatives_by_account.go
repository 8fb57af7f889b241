package metaclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/creative-insights-api/infrastructure/integrator/meta/domain"
)

type ResponseAdCreatives struct {
	Data   []metadomain.AdWithCreative `json:"data"`
	Paging metadomain.Paging           `json:"paging"`
}

const adCreativeFields = "id,effective_status,creative{id,name,object_type,image_url,thumbnail_url,video_id,title,body,link_description,call_to_action_type}"

// GetAdCreativesByAccountID busca os criativos dos anúncios informados no edge
// /act_{id}/ads, seguindo os cursores de paginação até o fim.
func (c *MetaClient) GetAdCreativesByAccountID(accountID string, adIDs []string) ([]metadomain.AdWithCreative, error) {
	// Garantir que o token seja válido antes de fazer a requisição
	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	filtering, err := buildAdIDFiltering(adIDs)
	if err != nil {
		return nil, fmt.Errorf("erro ao montar o filtro de ads: %w", err)
	}

	baseURL := fmt.Sprintf("%s/act_%s/ads", c.Cfg.Meta.URL, accountID)

	ads := make([]metadomain.AdWithCreative, 0, len(adIDs))
	after := ""

	for {
		params := url.Values{}
		params.Add("fields", adCreativeFields)
		params.Add("limit", "50")
		params.Add("access_token", c.Cfg.Meta.AccessToken)
		if filtering != "" {
			params.Add("filtering", filtering)
		}
		if after != "" {
			params.Add("after", after)
		}

		page, err := c.fetchAdCreativesPage(baseURL + "?" + params.Encode())
		if err != nil {
			// Se o erro indica que o token foi renovado, tentar novamente
			if err.Error() == "token expirado e renovado, por favor tente novamente" {
				return c.GetAdCreativesByAccountID(accountID, adIDs)
			}
			return nil, err
		}

		ads = append(ads, page.Data...)

		if page.Paging.Next == "" || page.Paging.Cursors.After == "" {
			break
		}
		after = page.Paging.Cursors.After
	}

	return ads, nil
}

func (c *MetaClient) fetchAdCreativesPage(url string) (*ResponseAdCreatives, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := c.HandleResponse(resp)
	if err != nil {
		return nil, err
	}

	var response ResponseAdCreatives
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return &response, nil
}

// buildAdIDFiltering monta o parâmetro "filtering" da Graph API restringindo a
// busca aos ad ids informados.
func buildAdIDFiltering(adIDs []string) (string, error) {
	if len(adIDs) == 0 {
		return "", nil
	}

	filter := []map[string]interface{}{
		{
			"field":    "ad.id",
			"operator": "IN",
			"value":    adIDs,
		},
	}

	raw, err := json.Marshal(filter)
	if err != nil {
		return "", err
	}

	return string(raw), nil
}
