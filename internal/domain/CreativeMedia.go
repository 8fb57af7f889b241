package domain

type CreativeType string

const (
	CreativeTypeImage    CreativeType = "image"
	CreativeTypeVideo    CreativeType = "video"
	CreativeTypeCarousel CreativeType = "carousel"
	CreativeTypeDynamic  CreativeType = "dynamic"
	CreativeTypeUnknown  CreativeType = "unknown"
)

// FetchStatus distingue "ainda não buscado" de "busca concluída sem mídia".
type FetchStatus string

const (
	FetchStatusPending FetchStatus = "pending"
	FetchStatusCached  FetchStatus = "cached"
	FetchStatusEmpty   FetchStatus = "empty"
)

// CreativeMedia representa o registro de mídia/copy de um anúncio. Pode não
// existir ainda para uma entidade; nesse caso um placeholder é sintetizado.
type CreativeMedia struct {
	AdID            string       `json:"ad_id"`
	Type            CreativeType `json:"creative_type"`
	ImageURL        string       `json:"image_url"`
	LiveImageURL    string       `json:"live_image_url"`
	ThumbnailURL    string       `json:"thumbnail_url"`
	VideoURL        string       `json:"video_url"`
	LiveVideoURL    string       `json:"live_video_url"`
	Title           string       `json:"title"`
	Body            string       `json:"body"`
	Description     string       `json:"description"`
	CallToAction    string       `json:"call_to_action"`
	IsComplete      bool         `json:"is_complete"`
	FetchStatus     FetchStatus  `json:"fetch_status"`
}

// BestImageURL resolve a URL de imagem preferida: cacheada, depois ao vivo,
// depois thumbnail.
func (c *CreativeMedia) BestImageURL() string {
	if c.ImageURL != "" {
		return c.ImageURL
	}
	if c.LiveImageURL != "" {
		return c.LiveImageURL
	}
	return c.ThumbnailURL
}

// BestVideoURL resolve a URL de vídeo preferida: cacheada, depois ao vivo.
func (c *CreativeMedia) BestVideoURL() string {
	if c.VideoURL != "" {
		return c.VideoURL
	}
	return c.LiveVideoURL
}

// HasUsableMedia indica se existe ao menos uma referência de imagem ou vídeo.
func (c *CreativeMedia) HasUsableMedia() bool {
	if c == nil {
		return false
	}
	return c.BestImageURL() != "" || c.BestVideoURL() != ""
}

// NewPlaceholderCreative sintetiza o registro que representa "sem mídia
// ainda" para uma entidade. Nunca é persistido.
func NewPlaceholderCreative(adID string) *CreativeMedia {
	return &CreativeMedia{
		AdID:        adID,
		Type:        CreativeTypeUnknown,
		FetchStatus: FetchStatusPending,
	}
}
