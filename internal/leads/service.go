package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/equza-living-co/go-services/pkg/metrics"
)

var (
	ErrNotFound      = errors.New("lead not found")
	ErrInvalidLead   = errors.New("invalid lead")
	ErrInvalidStatus = errors.New("invalid lead status")
)

// Repository persists leads. Implemented by Mongo and by an in-memory store.
type Repository interface {
	Insert(ctx context.Context, lead *Lead) error
	List(ctx context.Context, f Filter) ([]*Lead, error)
	GetByID(ctx context.Context, id string) (*Lead, error)
	SetStatus(ctx context.Context, id string, status LeadStatus, at time.Time) error
	AppendNote(ctx context.Context, id string, note LeadNote) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// ContactInput is a general contact form submission.
type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
	Source  string `json:"source"`
}

// CustomizeInput is a custom rug request.
type CustomizeInput struct {
	Name          string   `json:"name" binding:"required"`
	Email         string   `json:"email" binding:"required,email"`
	Phone         string   `json:"phone"`
	Message       string   `json:"message"`
	Size          string   `json:"size"`
	Material      string   `json:"material"`
	WeaveType     string   `json:"weaveType"`
	ColorPalette  string   `json:"colorPalette"`
	ReferenceURLs []string `json:"referenceUrls"`
	Source        string   `json:"source"`
}

// EnquiryInput asks about a specific product.
type EnquiryInput struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	ProductID   string `json:"productId" binding:"required"`
	ProductName string `json:"productName"`
	Source      string `json:"source"`
}

// TradeInput comes from the trade partnership form.
type TradeInput struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	Company    string `json:"company" binding:"required"`
	Profession string `json:"profession"`
	Source     string `json:"source"`
}

func (s *Service) CreateContact(ctx context.Context, in ContactInput) (*Lead, error) {
	lead := s.newLead(TypeContact, in.Name, in.Email)
	lead.Phone = strings.TrimSpace(in.Phone)
	lead.Message = strings.TrimSpace(in.Message)
	lead.Source = in.Source
	if lead.Message == "" {
		return nil, fmt.Errorf("contact lead: message required: %w", ErrInvalidLead)
	}
	return s.insert(ctx, lead)
}

func (s *Service) CreateCustomize(ctx context.Context, in CustomizeInput) (*Lead, error) {
	lead := s.newLead(TypeCustomize, in.Name, in.Email)
	lead.Phone = strings.TrimSpace(in.Phone)
	lead.Message = strings.TrimSpace(in.Message)
	lead.Source = in.Source
	lead.Customization = &Customization{
		Size:          strings.TrimSpace(in.Size),
		Material:      strings.TrimSpace(in.Material),
		WeaveType:     strings.TrimSpace(in.WeaveType),
		ColorPalette:  strings.TrimSpace(in.ColorPalette),
		ReferenceURLs: in.ReferenceURLs,
	}
	return s.insert(ctx, lead)
}

func (s *Service) CreateProductEnquiry(ctx context.Context, in EnquiryInput) (*Lead, error) {
	lead := s.newLead(TypeProductEnquiry, in.Name, in.Email)
	lead.Phone = strings.TrimSpace(in.Phone)
	lead.Message = strings.TrimSpace(in.Message)
	lead.ProductID = strings.TrimSpace(in.ProductID)
	lead.ProductName = strings.TrimSpace(in.ProductName)
	lead.Source = in.Source
	if lead.ProductID == "" {
		return nil, fmt.Errorf("enquiry lead: product id required: %w", ErrInvalidLead)
	}
	return s.insert(ctx, lead)
}

func (s *Service) CreateTrade(ctx context.Context, in TradeInput) (*Lead, error) {
	lead := s.newLead(TypeTrade, in.Name, in.Email)
	lead.Phone = strings.TrimSpace(in.Phone)
	lead.Message = strings.TrimSpace(in.Message)
	lead.Company = strings.TrimSpace(in.Company)
	lead.Profession = strings.TrimSpace(in.Profession)
	lead.Source = in.Source
	if lead.Company == "" {
		return nil, fmt.Errorf("trade lead: company required: %w", ErrInvalidLead)
	}
	return s.insert(ctx, lead)
}

func (s *Service) newLead(t LeadType, name, email string) *Lead {
	now := s.now()
	return &Lead{
		ID:        uuid.NewString(),
		Type:      t,
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(strings.ToLower(email)),
		Status:    StatusNew,
		Notes:     []LeadNote{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Service) insert(ctx context.Context, lead *Lead) (*Lead, error) {
	if lead.Name == "" || lead.Email == "" {
		return nil, fmt.Errorf("lead: name and email required: %w", ErrInvalidLead)
	}
	if err := s.repo.Insert(ctx, lead); err != nil {
		return nil, fmt.Errorf("insert %s lead: %w", lead.Type, err)
	}
	metrics.LeadsCreated.WithLabelValues(string(lead.Type)).Inc()
	return lead, nil
}

// List returns leads for the admin panel, newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]*Lead, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, fmt.Errorf("list leads: unknown type %q: %w", f.Type, ErrInvalidLead)
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("list leads: %w", ErrInvalidStatus)
	}
	out, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get lead %q: %w", id, err)
	}
	return lead, nil
}

// UpdateStatus moves a lead through the pipeline. Any valid status can be set
// directly; there is no enforced ordering between stages.
func (s *Service) UpdateStatus(ctx context.Context, id string, status LeadStatus) error {
	if !status.Valid() {
		return fmt.Errorf("update lead %q: %w", id, ErrInvalidStatus)
	}
	if err := s.repo.SetStatus(ctx, id, status, s.now()); err != nil {
		return fmt.Errorf("update lead %q: %w", id, err)
	}
	return nil
}

// AppendNote adds an admin note. Notes can never be edited or removed.
func (s *Service) AppendNote(ctx context.Context, id, author, text string) (*LeadNote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("note on lead %q: empty text: %w", id, ErrInvalidLead)
	}
	note := LeadNote{
		ID:        uuid.NewString(),
		Author:    author,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := s.repo.AppendNote(ctx, id, note); err != nil {
		return nil, fmt.Errorf("note on lead %q: %w", id, err)
	}
	return &note, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete lead %q: %w", id, err)
	}
	return nil
}
