package metadomain

// AdCreative é o formato bruto do criativo retornado pela Graph API.
type AdCreative struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ObjectType       string `json:"object_type"`
	ImageURL         string `json:"image_url"`
	ThumbnailURL     string `json:"thumbnail_url"`
	VideoID          string `json:"video_id"`
	Title            string `json:"title"`
	Body             string `json:"body"`
	LinkDescription  string `json:"link_description"`
	CallToActionType string `json:"call_to_action_type"`
	VideoSourceURL   string `json:"source"`
}

// AdWithCreative é um anúncio com o criativo expandido, como retornado pelo
// edge /act_{id}/ads.
type AdWithCreative struct {
	ID       string      `json:"id"`
	Status   string      `json:"effective_status"`
	Creative *AdCreative `json:"creative"`
}

// Mapeamento de "object_type" da Graph API -> tipo de criativo interno
var MetaObjectTypeToCreativeType = map[string]string{
	"PHOTO":   "image",
	"SHARE":   "image",
	"VIDEO":   "video",
	"ALBUM":   "carousel",
	"STORY":   "carousel",
	"DYNAMIC": "dynamic",
}
