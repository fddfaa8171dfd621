package catalog

// Entities are the normalized, guaranteed-valid records derived from raw store
// documents. Timestamps are ISO-8601 strings; conversion from store-native
// values happens once, at the transform boundary.

// Image is a single catalog image. URL and Alt are always non-empty after
// transformation.
type Image struct {
	ID         string `json:"id,omitempty" bson:"id,omitempty"`
	URL        string `json:"url" bson:"url"`
	Alt        string `json:"alt" bson:"alt"`
	StorageRef string `json:"storageRef,omitempty" bson:"storageRef,omitempty"`
	IsMain     bool   `json:"isMain" bson:"isMain"`
	SortOrder  int    `json:"sortOrder" bson:"sortOrder"`
}

// Size is one available rug size.
type Size struct {
	Dimensions string `json:"dimensions" bson:"dimensions"`
	IsCustom   bool   `json:"isCustom" bson:"isCustom"`
}

// Specifications describes how a rug is made.
type Specifications struct {
	Materials      []string `json:"materials" bson:"materials"`
	WeaveType      string   `json:"weaveType" bson:"weaveType"`
	AvailableSizes []Size   `json:"availableSizes" bson:"availableSizes"`
	Origin         string   `json:"origin" bson:"origin"`
	CraftTime      string   `json:"craftTime" bson:"craftTime"`
}

// Price carries display pricing; StartingFrom is only meaningful when
// IsVisible is true.
type Price struct {
	IsVisible    bool    `json:"isVisible" bson:"isVisible"`
	StartingFrom float64 `json:"startingFrom" bson:"startingFrom"`
	Currency     string  `json:"currency" bson:"currency"`
}

// Product is a storefront product. Invariant: Images is never empty and
// exactly one entry has IsMain set, always the first.
type Product struct {
	ID             string         `json:"id" bson:"id"`
	Name           string         `json:"name" bson:"name"`
	Slug           string         `json:"slug" bson:"slug"`
	Description    string         `json:"description" bson:"description"`
	Story          string         `json:"story" bson:"story"`
	Images         []Image        `json:"images" bson:"images"`
	Specifications Specifications `json:"specifications" bson:"specifications"`
	Collections    []string       `json:"collections" bson:"collections"`
	Price          Price          `json:"price" bson:"price"`
	SEOTitle       string         `json:"seoTitle" bson:"seoTitle"`
	SEODescription string         `json:"seoDescription" bson:"seoDescription"`
	IsActive       bool           `json:"isActive" bson:"isActive"`
	IsFeatured     bool           `json:"isFeatured" bson:"isFeatured"`
	SortOrder      int            `json:"sortOrder" bson:"sortOrder"`
	CreatedAt      string         `json:"createdAt" bson:"createdAt"`
	UpdatedAt      string         `json:"updatedAt" bson:"updatedAt"`
}

// Collection groupings come in two flavours: by style and by space.
const (
	CollectionTypeStyle = "style"
	CollectionTypeSpace = "space"
)

type Collection struct {
	ID             string   `json:"id" bson:"id"`
	Name           string   `json:"name" bson:"name"`
	Slug           string   `json:"slug" bson:"slug"`
	Description    string   `json:"description" bson:"description"`
	Type           string   `json:"type" bson:"type"`
	HeroImage      Image    `json:"heroImage" bson:"heroImage"`
	SEOTitle       string   `json:"seoTitle" bson:"seoTitle"`
	SEODescription string   `json:"seoDescription" bson:"seoDescription"`
	IsActive       bool     `json:"isActive" bson:"isActive"`
	SortOrder      int      `json:"sortOrder" bson:"sortOrder"`
	ProductIDs     []string `json:"productIds" bson:"productIds"`
	CreatedAt      string   `json:"createdAt" bson:"createdAt"`
	UpdatedAt      string   `json:"updatedAt" bson:"updatedAt"`
}

type WeaveType struct {
	ID        string `json:"id" bson:"id"`
	Name      string `json:"name" bson:"name"`
	Slug      string `json:"slug" bson:"slug"`
	Image     Image  `json:"image" bson:"image"`
	IsActive  bool   `json:"isActive" bson:"isActive"`
	SortOrder int    `json:"sortOrder" bson:"sortOrder"`
	CreatedAt string `json:"createdAt" bson:"createdAt"`
	UpdatedAt string `json:"updatedAt" bson:"updatedAt"`
}

// RawDocument is one untyped document as returned by the store, paired with
// its identifier.
type RawDocument struct {
	ID     string
	Fields map[string]interface{}
}

// ProductFilter narrows product queries. Nil pointer fields are ignored.
type ProductFilter struct {
	Active     *bool
	Featured   *bool
	Collection string
	Search     string
	Limit      int64
}

// CollectionFilter narrows collection queries.
type CollectionFilter struct {
	Type   string
	Active *bool
	Limit  int64
}

// WeaveTypeFilter narrows weave type queries.
type WeaveTypeFilter struct {
	Active *bool
	Limit  int64
}

// HomepageData is the aggregate the homepage renders from. Sections that fail
// to load come back as empty slices rather than failing the whole call.
type HomepageData struct {
	FeaturedProducts []*Product    `json:"featuredProducts"`
	StyleCollections []*Collection `json:"styleCollections"`
	SpaceCollections []*Collection `json:"spaceCollections"`
	WeaveTypes       []*WeaveType  `json:"weaveTypes"`
}
