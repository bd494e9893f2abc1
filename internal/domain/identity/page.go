package identity

import (
	"strings"

	"github.com/garagehub/backend/internal/domain/shared"
)

// Page is a named route/resource that permissions attach to
type Page struct {
	shared.BaseEntity
	Name     string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Path     string `gorm:"size:200;not null;uniqueIndex" json:"path"`
	Category string `gorm:"size:100" json:"category"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
}

// TableName returns the table name for GORM
func (Page) TableName() string {
	return "pages"
}

// NewPage creates a new active page
func NewPage(name, path, category string) (*Page, error) {
	name = strings.TrimSpace(name)
	path = strings.TrimSpace(path)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Page name cannot be empty")
	}
	if path == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Page path cannot be empty")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return &Page{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Path:       path,
		Category:   category,
		IsActive:   true,
	}, nil
}

// Deactivate marks the page inactive without removing grants
func (p *Page) Deactivate() {
	p.IsActive = false
	p.Touch()
}

// Activate marks the page active
func (p *Page) Activate() {
	p.IsActive = true
	p.Touch()
}
