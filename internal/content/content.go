// Package content serves the CMS-style documents behind the storefront: static
// pages, site-wide settings, and the homepage hero. Like the catalog, these
// documents come from a schema-less store and are normalized before use.
package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/equza-living-co/go-services/internal/catalog"
)

var ErrNotFound = errors.New("content not found")

// Page is a static storefront page (our-story, craftsmanship, legal pages).
type Page struct {
	ID        string                   `json:"id"`
	Slug      string                   `json:"slug"`
	Title     string                   `json:"title"`
	Sections  []map[string]interface{} `json:"sections"`
	IsActive  bool                     `json:"isActive"`
	UpdatedAt string                   `json:"updatedAt"`
}

// Settings holds the site-wide configuration editable from the admin panel.
type Settings struct {
	SiteName     string            `json:"siteName"`
	ContactEmail string            `json:"contactEmail"`
	ContactPhone string            `json:"contactPhone"`
	SocialLinks  map[string]string `json:"socialLinks"`
	Announcement string            `json:"announcement"`
}

// Hero is the homepage hero block with its repaired image list.
type Hero struct {
	Title    string          `json:"title"`
	Subtitle string          `json:"subtitle"`
	CTALabel string          `json:"ctaLabel"`
	CTALink  string          `json:"ctaLink"`
	Images   []catalog.Image `json:"images"`
}

// Repository reads and writes content documents keyed by slug. The settings
// and hero documents live under well-known slugs in the same collection.
type Repository interface {
	FindBySlug(ctx context.Context, slug string) (catalog.RawDocument, error)
	UpsertBySlug(ctx context.Context, slug string, fields map[string]interface{}) error
}

const (
	settingsSlug = "site-settings"
	heroSlug     = "homepage-hero"
)

type Service struct {
	repo Repository
	tr   *catalog.Transformer
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, tr: catalog.NewTransformer()}
}

// PageBySlug returns an active page. Reserved slugs holding settings and hero
// documents are not addressable as pages.
func (s *Service) PageBySlug(ctx context.Context, slug string) (*Page, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" || slug == settingsSlug || slug == heroSlug {
		return nil, ErrNotFound
	}
	doc, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find page %q: %w", slug, err)
	}
	page := s.page(doc)
	if page == nil || !page.IsActive {
		return nil, ErrNotFound
	}
	return page, nil
}

func (s *Service) page(doc catalog.RawDocument) *Page {
	title := strings.TrimSpace(cast.ToString(doc.Fields["title"]))
	if title == "" {
		return nil
	}
	sections := []map[string]interface{}{}
	if raw, ok := doc.Fields["sections"].([]interface{}); ok {
		for _, entry := range raw {
			if m := cast.ToStringMap(entry); len(m) > 0 {
				sections = append(sections, m)
			}
		}
	}
	active := true
	if v, ok := doc.Fields["isActive"]; ok {
		active = cast.ToBool(v)
	}
	return &Page{
		ID:        doc.ID,
		Slug:      cast.ToString(doc.Fields["slug"]),
		Title:     title,
		Sections:  sections,
		IsActive:  active,
		UpdatedAt: s.tr.Timestamp(doc.Fields["updatedAt"]),
	}
}

// SiteSettings returns the settings document, with sane defaults when the
// document is absent or partial.
func (s *Service) SiteSettings(ctx context.Context) (*Settings, error) {
	out := &Settings{SiteName: "Equza Living Co.", SocialLinks: map[string]string{}}
	doc, err := s.repo.FindBySlug(ctx, settingsSlug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return out, nil
		}
		return nil, fmt.Errorf("load site settings: %w", err)
	}
	if v := strings.TrimSpace(cast.ToString(doc.Fields["siteName"])); v != "" {
		out.SiteName = v
	}
	out.ContactEmail = cast.ToString(doc.Fields["contactEmail"])
	out.ContactPhone = cast.ToString(doc.Fields["contactPhone"])
	out.Announcement = cast.ToString(doc.Fields["announcement"])
	for k, v := range cast.ToStringMapString(doc.Fields["socialLinks"]) {
		out.SocialLinks[k] = v
	}
	return out, nil
}

// UpdateSiteSettings overwrites the settings document.
func (s *Service) UpdateSiteSettings(ctx context.Context, in Settings) error {
	fields := map[string]interface{}{
		"siteName":     in.SiteName,
		"contactEmail": in.ContactEmail,
		"contactPhone": in.ContactPhone,
		"announcement": in.Announcement,
		"socialLinks":  in.SocialLinks,
	}
	if err := s.repo.UpsertBySlug(ctx, settingsSlug, fields); err != nil {
		return fmt.Errorf("update site settings: %w", err)
	}
	return nil
}

// HomepageHero returns the hero block. Its image list goes through the same
// repair pass as catalog images, so the storefront always gets exactly one
// main image.
func (s *Service) HomepageHero(ctx context.Context) (*Hero, error) {
	doc, err := s.repo.FindBySlug(ctx, heroSlug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return &Hero{Images: s.tr.Images(nil, "Equza Living Co.", "Handcrafted rugs")}, nil
		}
		return nil, fmt.Errorf("load homepage hero: %w", err)
	}
	title := cast.ToString(doc.Fields["title"])
	return &Hero{
		Title:    title,
		Subtitle: cast.ToString(doc.Fields["subtitle"]),
		CTALabel: cast.ToString(doc.Fields["ctaLabel"]),
		CTALink:  cast.ToString(doc.Fields["ctaLink"]),
		Images:   s.tr.Images(doc.Fields["images"], title, "Handcrafted rugs"),
	}, nil
}

// UpdateHomepageHero overwrites the hero document.
func (s *Service) UpdateHomepageHero(ctx context.Context, fields map[string]interface{}) error {
	if err := s.repo.UpsertBySlug(ctx, heroSlug, fields); err != nil {
		return fmt.Errorf("update homepage hero: %w", err)
	}
	return nil
}

// UpsertPage creates or replaces a static page.
func (s *Service) UpsertPage(ctx context.Context, slug string, fields map[string]interface{}) error {
	slug = strings.TrimSpace(slug)
	if slug == "" || slug == settingsSlug || slug == heroSlug {
		return fmt.Errorf("upsert page: reserved or empty slug %q", slug)
	}
	if err := s.repo.UpsertBySlug(ctx, slug, fields); err != nil {
		return fmt.Errorf("upsert page %q: %w", slug, err)
	}
	return nil
}
