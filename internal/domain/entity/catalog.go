package entity

// CatalogService is a priced, purchasable offering shown on the checkout pages.
type CatalogService struct {
	ID            string   `json:"id"`
	Icon          Icon     `json:"icon"`
	Title         string   `json:"title"`
	ShortDesc     string   `json:"short_desc"`
	Description   string   `json:"description"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"original_price,omitempty"`
	Duration      string   `json:"duration"`
	Category      string   `json:"category"`
	Features      []string `json:"features"`
	Popular       bool     `json:"popular"`
}

// PracticeArea is one of the firm's service lines. Its ID is what the
// assistant links to with [SERVICE:<id>].
type PracticeArea struct {
	ID       string            `json:"id"`
	Icon     Icon              `json:"icon"`
	Title    string            `json:"title"`
	Desc     string            `json:"desc"`
	Features []PracticeFeature `json:"features"`
	Timeline []TimelineStep    `json:"timeline"`
	FAQs     []FAQ             `json:"faqs"`
}

type PracticeFeature struct {
	Icon  Icon   `json:"icon"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

type TimelineStep struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type FAQ struct {
	Q string `json:"q"`
	A string `json:"a"`
}
