package leads

import "time"

// LeadType identifies which public form produced a lead.
type LeadType string

const (
	TypeContact        LeadType = "contact"
	TypeTrade          LeadType = "trade"
	TypeCustomize      LeadType = "customize"
	TypeProductEnquiry LeadType = "product-enquiry"
)

func (t LeadType) Valid() bool {
	switch t {
	case TypeContact, TypeTrade, TypeCustomize, TypeProductEnquiry:
		return true
	}
	return false
}

// LeadStatus tracks a lead through the sales pipeline.
type LeadStatus string

const (
	StatusNew       LeadStatus = "new"
	StatusContacted LeadStatus = "contacted"
	StatusQualified LeadStatus = "qualified"
	StatusConverted LeadStatus = "converted"
	StatusClosed    LeadStatus = "closed"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusClosed:
		return true
	}
	return false
}

// LeadNote is an admin remark on a lead. Notes are append-only.
type LeadNote struct {
	ID        string    `bson:"id" json:"id"`
	Author    string    `bson:"author" json:"author"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Customization carries the details of a custom rug request.
type Customization struct {
	Size          string   `bson:"size,omitempty" json:"size,omitempty"`
	Material      string   `bson:"material,omitempty" json:"material,omitempty"`
	WeaveType     string   `bson:"weaveType,omitempty" json:"weaveType,omitempty"`
	ColorPalette  string   `bson:"colorPalette,omitempty" json:"colorPalette,omitempty"`
	ReferenceURLs []string `bson:"referenceUrls,omitempty" json:"referenceUrls,omitempty"`
}

// Lead is a submission from any public form. Unlike catalog documents, leads
// are written by this service, so the schema is trusted and typed.
type Lead struct {
	ID      string   `bson:"id" json:"id"`
	Type    LeadType `bson:"type" json:"type"`
	Name    string   `bson:"name" json:"name"`
	Email   string   `bson:"email" json:"email"`
	Phone   string   `bson:"phone,omitempty" json:"phone,omitempty"`
	Message string   `bson:"message,omitempty" json:"message,omitempty"`

	// product enquiries
	ProductID   string `bson:"productId,omitempty" json:"productId,omitempty"`
	ProductName string `bson:"productName,omitempty" json:"productName,omitempty"`

	// trade enquiries
	Company    string `bson:"company,omitempty" json:"company,omitempty"`
	Profession string `bson:"profession,omitempty" json:"profession,omitempty"`

	Customization *Customization `bson:"customization,omitempty" json:"customization,omitempty"`

	Status    LeadStatus `bson:"status" json:"status"`
	Notes     []LeadNote `bson:"notes" json:"notes"`
	Source    string     `bson:"source,omitempty" json:"source,omitempty"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// Filter narrows admin lead listings.
type Filter struct {
	Type   LeadType
	Status LeadStatus
	Limit  int64
}
