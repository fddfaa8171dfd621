package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/equza-living-co/go-services/internal/config"
)

func TestNewMediaStoreRequiresEndpoint(t *testing.T) {
	_, err := NewMediaStore(config.MinIOConfig{})
	assert.Error(t, err)
}

func TestObjectKeys(t *testing.T) {
	assert.Equal(t, "images/products/p1/main.jpg", ProductImageKey("p1", "main.jpg"))
	assert.Equal(t, "images/collections/c1/hero.jpg", CollectionImageKey("c1", "hero.jpg"))
	assert.Equal(t, "uploads/admin/banners/sale.png", AdminUploadKey("banners", "sale.png"))
}

func TestKeysResistPathTraversal(t *testing.T) {
	assert.Equal(t, "images/products/p1/passwd", ProductImageKey("p1", "../../etc/passwd"))
	assert.Equal(t, "uploads/admin/misc/x.png", AdminUploadKey("../..", "x.png"))
	assert.Equal(t, "images/products/p1/evil.png", ProductImageKey("p1", `..\..\evil.png`))
}
