package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/equza-living-co/go-services/pkg/logger"
	"github.com/equza-living-co/go-services/pkg/metrics"
)

// Transformer normalizes raw store documents into entities. It never panics
// outward and never returns a partially-invalid entity: a document that cannot
// be repaired yields nil instead.
//
// Now is injectable so the "absent timestamp means now" fallback stays
// deterministic in tests.
type Transformer struct {
	Now func() time.Time
}

func NewTransformer() *Transformer {
	return &Transformer{Now: time.Now}
}

// FallbackImageURL is substituted when an entity has no usable image.
const FallbackImageURL = "/images/fallback-rug.jpg"

const (
	fallbackAltProduct    = "Handcrafted rug"
	fallbackAltCollection = "Rug collection"
	fallbackAltWeaveType  = "Weave"
	defaultWeaveType      = "Hand-Knotted"
	defaultCurrency       = "USD"
)

// requiredString returns the trimmed value only when the raw field is a
// non-empty string; wrong types fail the requirement rather than coercing.
func requiredString(raw map[string]interface{}, key string) (string, bool) {
	s, ok := raw[key].(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// Product converts one raw product document. Returns nil when name or slug is
// missing, empty, or mistyped.
func (t *Transformer) Product(id string, raw map[string]interface{}) *Product {
	if raw == nil {
		return nil
	}
	name, ok := requiredString(raw, "name")
	if !ok {
		return nil
	}
	slug, ok := requiredString(raw, "slug")
	if !ok {
		return nil
	}

	p := &Product{
		ID:             id,
		Name:           name,
		Slug:           slug,
		Description:    cast.ToString(raw["description"]),
		Story:          cast.ToString(raw["story"]),
		Images:         t.Images(raw["images"], name, fallbackAltProduct),
		Specifications: t.specifications(raw["specifications"]),
		Collections:    toStringSlice(raw["collections"]),
		Price:          t.price(raw["price"]),
		SEOTitle:       cast.ToString(raw["seoTitle"]),
		SEODescription: cast.ToString(raw["seoDescription"]),
		IsActive:       cast.ToBool(raw["isActive"]),
		IsFeatured:     cast.ToBool(raw["isFeatured"]),
		SortOrder:      cast.ToInt(raw["sortOrder"]),
		CreatedAt:      t.Timestamp(raw["createdAt"]),
		UpdatedAt:      t.Timestamp(raw["updatedAt"]),
	}
	return p
}

// Collection converts one raw collection document. Invalid type values
// normalize to "style".
func (t *Transformer) Collection(id string, raw map[string]interface{}) *Collection {
	if raw == nil {
		return nil
	}
	name, ok := requiredString(raw, "name")
	if !ok {
		return nil
	}
	slug, ok := requiredString(raw, "slug")
	if !ok {
		return nil
	}

	typ := cast.ToString(raw["type"])
	if typ != CollectionTypeStyle && typ != CollectionTypeSpace {
		typ = CollectionTypeStyle
	}

	return &Collection{
		ID:             id,
		Name:           name,
		Slug:           slug,
		Description:    cast.ToString(raw["description"]),
		Type:           typ,
		HeroImage:      t.singleImage(raw["heroImage"], name, fallbackAltCollection),
		SEOTitle:       cast.ToString(raw["seoTitle"]),
		SEODescription: cast.ToString(raw["seoDescription"]),
		IsActive:       cast.ToBool(raw["isActive"]),
		SortOrder:      cast.ToInt(raw["sortOrder"]),
		ProductIDs:     toStringSlice(raw["productIds"]),
		CreatedAt:      t.Timestamp(raw["createdAt"]),
		UpdatedAt:      t.Timestamp(raw["updatedAt"]),
	}
}

// WeaveType converts one raw weave type document.
func (t *Transformer) WeaveType(id string, raw map[string]interface{}) *WeaveType {
	if raw == nil {
		return nil
	}
	name, ok := requiredString(raw, "name")
	if !ok {
		return nil
	}
	slug, ok := requiredString(raw, "slug")
	if !ok {
		return nil
	}

	return &WeaveType{
		ID:        id,
		Name:      name,
		Slug:      slug,
		Image:     t.singleImage(raw["image"], name, fallbackAltWeaveType),
		IsActive:  cast.ToBool(raw["isActive"]),
		SortOrder: cast.ToInt(raw["sortOrder"]),
		CreatedAt: t.Timestamp(raw["createdAt"]),
		UpdatedAt: t.Timestamp(raw["updatedAt"]),
	}
}

// Images repairs a raw image list:
//  1. map entries through the image transformer, discarding invalid ones
//  2. synthesize a fallback image when nothing valid remains
//  3. promote the first image when none is flagged main
//  4. demote all but the first flagged image when several are
//  5. stable-sort so the main image is first, ties by ascending sortOrder
func (t *Transformer) Images(raw interface{}, ownerName, fallbackSuffix string) []Image {
	var out []Image
	for _, entry := range toSlice(raw) {
		if img, ok := t.image(entry, ownerName); ok {
			out = append(out, img)
		}
	}
	if len(out) == 0 {
		return []Image{t.fallbackImage(ownerName, fallbackSuffix)}
	}

	mainSeen := false
	for i := range out {
		if out[i].IsMain {
			if mainSeen {
				out[i].IsMain = false
			}
			mainSeen = true
		}
	}
	if !mainSeen {
		out[0].IsMain = true
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsMain != out[j].IsMain {
			return out[i].IsMain
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}

// singleImage normalizes a single raw image value, substituting the fallback
// when the entry is absent or invalid.
func (t *Transformer) singleImage(raw interface{}, ownerName, fallbackSuffix string) Image {
	if img, ok := t.image(raw, ownerName); ok {
		return img
	}
	return t.fallbackImage(ownerName, fallbackSuffix)
}

func (t *Transformer) image(raw interface{}, ownerName string) (Image, bool) {
	m := toMap(raw)
	if m == nil {
		return Image{}, false
	}
	url, ok := requiredString(m, "url")
	if !ok {
		return Image{}, false
	}
	alt := strings.TrimSpace(cast.ToString(m["alt"]))
	if alt == "" {
		alt = ownerName
	}
	return Image{
		ID:         cast.ToString(m["id"]),
		URL:        url,
		Alt:        alt,
		StorageRef: cast.ToString(m["storageRef"]),
		IsMain:     cast.ToBool(m["isMain"]),
		SortOrder:  cast.ToInt(m["sortOrder"]),
	}, true
}

func (t *Transformer) fallbackImage(ownerName, suffix string) Image {
	return Image{
		URL:    FallbackImageURL,
		Alt:    ownerName + " - " + suffix,
		IsMain: true,
	}
}

func (t *Transformer) specifications(raw interface{}) Specifications {
	m := toMap(raw)
	spec := Specifications{
		Materials: []string{},
		WeaveType: defaultWeaveType,
	}
	if m == nil {
		return spec
	}
	if mats := toStringSlice(m["materials"]); len(mats) > 0 {
		spec.Materials = mats
	}
	if wt := strings.TrimSpace(cast.ToString(m["weaveType"])); wt != "" {
		spec.WeaveType = wt
	}
	for _, entry := range toSlice(m["availableSizes"]) {
		sm := toMap(entry)
		if sm == nil {
			continue
		}
		dims := strings.TrimSpace(cast.ToString(sm["dimensions"]))
		if dims == "" {
			continue
		}
		spec.AvailableSizes = append(spec.AvailableSizes, Size{
			Dimensions: dims,
			IsCustom:   cast.ToBool(sm["isCustom"]),
		})
	}
	spec.Origin = cast.ToString(m["origin"])
	spec.CraftTime = cast.ToString(m["craftTime"])
	return spec
}

func (t *Transformer) price(raw interface{}) Price {
	p := Price{IsVisible: false, StartingFrom: 0, Currency: defaultCurrency}
	m := toMap(raw)
	if m == nil {
		return p
	}
	p.IsVisible = cast.ToBool(m["isVisible"])
	if v := cast.ToFloat64(m["startingFrom"]); v > 0 {
		p.StartingFrom = v
	}
	if cur := strings.TrimSpace(cast.ToString(m["currency"])); cur != "" {
		p.Currency = cur
	}
	return p
}

// Timestamp normalizes store-native timestamps (Mongo datetimes, time.Time,
// or date strings) to an ISO-8601 string. Invalid or absent input yields the
// current time; it never fails.
func (t *Transformer) Timestamp(raw interface{}) string {
	switch v := raw.(type) {
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case *time.Time:
		if v != nil {
			return v.UTC().Format(time.RFC3339)
		}
	case primitive.DateTime:
		return v.Time().UTC().Format(time.RFC3339)
	case primitive.Timestamp:
		return time.Unix(int64(v.T), 0).UTC().Format(time.RFC3339)
	case string:
		if parsed, err := dateparse.ParseAny(v); err == nil {
			return parsed.UTC().Format(time.RFC3339)
		}
	}
	return t.Now().UTC().Format(time.RFC3339)
}

// Products maps the product transformer over a result set. A document that
// fails to transform (or panics the transformer) degrades the batch by one
// item; it never aborts the batch.
func (t *Transformer) Products(docs []RawDocument) []*Product {
	out := make([]*Product, 0, len(docs))
	for _, d := range docs {
		if p := transformOne(d, "product", t.Product); p != nil {
			out = append(out, p)
		}
	}
	return out
}

// Collections is the batch form of Collection.
func (t *Transformer) Collections(docs []RawDocument) []*Collection {
	out := make([]*Collection, 0, len(docs))
	for _, d := range docs {
		if c := transformOne(d, "collection", t.Collection); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// WeaveTypes is the batch form of WeaveType.
func (t *Transformer) WeaveTypes(docs []RawDocument) []*WeaveType {
	out := make([]*WeaveType, 0, len(docs))
	for _, d := range docs {
		if w := transformOne(d, "weaveType", t.WeaveType); w != nil {
			out = append(out, w)
		}
	}
	return out
}

func transformOne[T any](doc RawDocument, entity string, fn func(string, map[string]interface{}) *T) (result *T) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("transform %s %s panicked: %v", entity, doc.ID, r)
			metrics.DocumentsDropped.WithLabelValues(entity).Inc()
			result = nil
		}
	}()
	result = fn(doc.ID, doc.Fields)
	if result == nil {
		logger.Warnf("dropping malformed %s document %s", entity, doc.ID)
		metrics.DocumentsDropped.WithLabelValues(entity).Inc()
	}
	return result
}

// toMap tolerates both bson.M-style maps and decoded JSON maps.
func toMap(v interface{}) map[string]interface{} {
	switch m := v.(type) {
	case map[string]interface{}:
		return m
	case primitive.M:
		return map[string]interface{}(m)
	case primitive.D:
		return m.Map()
	}
	return nil
}

func toSlice(v interface{}) []interface{} {
	switch s := v.(type) {
	case []interface{}:
		return s
	case primitive.A:
		return []interface{}(s)
	case []string:
		out := make([]interface{}, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out
	}
	return nil
}

func toStringSlice(v interface{}) []string {
	var out []string
	for _, e := range toSlice(v) {
		if s := strings.TrimSpace(cast.ToString(e)); s != "" {
			out = append(out, s)
		}
	}
	if out == nil {
		return []string{}
	}
	return out
}
