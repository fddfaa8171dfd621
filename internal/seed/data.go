package seed

// The sample catalog mirrors a small but complete storefront: two collection
// types, a handful of products spread across them, weave types, static pages,
// settings and a hero document.

type sampleCollection struct {
	Slug        string
	Name        string
	Type        string
	Description string
	PhotoQuery  string
	SortOrder   int
}

type sampleProduct struct {
	Slug        string
	Name        string
	Description string
	Story       string
	Collections []string
	Materials   []string
	WeaveType   string
	Sizes       []string
	Origin      string
	CraftTime   string
	PriceFrom   float64
	Featured    bool
	PhotoQuery  string
	SortOrder   int
}

type sampleWeaveType struct {
	Slug       string
	Name       string
	PhotoQuery string
	SortOrder  int
}

var sampleCollections = []sampleCollection{
	{Slug: "modern", Name: "Modern", Type: "style", Description: "Clean lines and quiet palettes for contemporary rooms.", PhotoQuery: "modern rug interior", SortOrder: 1},
	{Slug: "heritage", Name: "Heritage", Type: "style", Description: "Patterns carried through generations of weavers.", PhotoQuery: "traditional rug", SortOrder: 2},
	{Slug: "minimalist", Name: "Minimalist", Type: "style", Description: "Texture over ornament.", PhotoQuery: "minimalist rug", SortOrder: 3},
	{Slug: "living-room", Name: "Living Room", Type: "space", Description: "Anchor pieces for the busiest room in the house.", PhotoQuery: "living room rug", SortOrder: 1},
	{Slug: "bedroom", Name: "Bedroom", Type: "space", Description: "Soft underfoot for slow mornings.", PhotoQuery: "bedroom rug", SortOrder: 2},
}

var sampleProducts = []sampleProduct{
	{
		Slug: "arctic-waves", Name: "Arctic Waves",
		Description: "Undulating bands of ivory and glacier blue.",
		Story:       "Inspired by wind patterns on fresh snow, knotted over four months in Bhadohi.",
		Collections: []string{"modern", "living-room"},
		Materials:   []string{"Wool", "Bamboo Silk"},
		WeaveType:   "Hand-Knotted",
		Sizes:       []string{"6x9", "8x10", "9x12"},
		Origin:      "Bhadohi, India", CraftTime: "16 weeks",
		PriceFrom: 1850, Featured: true,
		PhotoQuery: "blue wool rug", SortOrder: 1,
	},
	{
		Slug: "desert-bloom", Name: "Desert Bloom",
		Description: "Terracotta fields scattered with faded botanical motifs.",
		Story:       "A revival of a 19th century garden pattern from the weaver's family archive.",
		Collections: []string{"heritage", "living-room"},
		Materials:   []string{"Wool"},
		WeaveType:   "Hand-Knotted",
		Sizes:       []string{"8x10", "9x12"},
		Origin:      "Jaipur, India", CraftTime: "20 weeks",
		PriceFrom: 2400, Featured: true,
		PhotoQuery: "terracotta rug", SortOrder: 2,
	},
	{
		Slug: "monsoon-lines", Name: "Monsoon Lines",
		Description: "Charcoal pinstripes on undyed grey wool.",
		Collections: []string{"minimalist", "bedroom"},
		Materials:   []string{"Wool", "Cotton"},
		WeaveType:   "Flatweave",
		Sizes:       []string{"5x8", "6x9", "8x10"},
		Origin:      "Panipat, India", CraftTime: "6 weeks",
		PriceFrom: 680,
		PhotoQuery: "grey flatweave rug", SortOrder: 3,
	},
	{
		Slug: "saffron-field", Name: "Saffron Field",
		Description: "A single saturated plane of hand-dyed saffron.",
		Collections: []string{"minimalist", "modern"},
		Materials:   []string{"Wool"},
		WeaveType:   "Hand-Tufted",
		Sizes:       []string{"6x9", "8x10"},
		Origin:      "Mirzapur, India", CraftTime: "4 weeks",
		PriceFrom: 540, Featured: true,
		PhotoQuery: "yellow rug", SortOrder: 4,
	},
	{
		Slug: "indigo-court", Name: "Indigo Court",
		Description: "Deep indigo ground under a silver trellis.",
		Collections: []string{"heritage", "bedroom"},
		Materials:   []string{"Wool", "Silk"},
		WeaveType:   "Hand-Knotted",
		Sizes:       []string{"8x10", "9x12", "10x14"},
		Origin:      "Agra, India", CraftTime: "24 weeks",
		PriceFrom: 3200,
		PhotoQuery: "indigo carpet", SortOrder: 5,
	},
}

var sampleWeaveTypes = []sampleWeaveType{
	{Slug: "hand-knotted", Name: "Hand-Knotted", PhotoQuery: "hand knotted carpet loom", SortOrder: 1},
	{Slug: "hand-tufted", Name: "Hand-Tufted", PhotoQuery: "rug tufting", SortOrder: 2},
	{Slug: "flatweave", Name: "Flatweave", PhotoQuery: "flatweave kilim", SortOrder: 3},
}

var samplePages = []map[string]interface{}{
	{
		"slug": "our-story", "title": "Our Story", "isActive": true,
		"sections": []interface{}{
			map[string]interface{}{"type": "text", "body": "Equza Living Co. partners directly with weaving families across northern India."},
			map[string]interface{}{"type": "text", "body": "Every rug is traceable to the loom it came from."},
		},
	},
	{
		"slug": "craftsmanship", "title": "Craftsmanship", "isActive": true,
		"sections": []interface{}{
			map[string]interface{}{"type": "text", "body": "From hand-carding wool to the final wash, a single rug passes through more than forty pairs of hands."},
		},
	},
}

var sampleSettings = map[string]interface{}{
	"siteName":     "Equza Living Co.",
	"contactEmail": "hello@equzalivingco.com",
	"contactPhone": "+91 98765 43210",
	"socialLinks": map[string]interface{}{
		"instagram": "https://instagram.com/equzalivingco",
		"pinterest": "https://pinterest.com/equzalivingco",
	},
}

var sampleHero = map[string]interface{}{
	"title":    "Crafted Calm for Modern Spaces",
	"subtitle": "Hand-woven rugs from master artisans",
	"ctaLabel": "Explore Collections",
	"ctaLink":  "/collections",
}
