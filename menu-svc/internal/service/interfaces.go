package service

import (
	"context"
	"io"

	"restaurant-ordering/menu-svc/internal/domain"
)

type MenuRepository interface {
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	ListMenuItems(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int) (int64, error)
	UpdateMenuItemImage(ctx context.Context, id int, imageURL string) error
	ToggleFeatured(ctx context.Context, id int) (*domain.MenuItem, error)
	ToggleInStock(ctx context.Context, id int) (*domain.MenuItem, error)
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, cat *domain.Category) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, cat *domain.Category) error
	DeleteCategory(ctx context.Context, id int) (int64, error)
	CountItemsInCategory(ctx context.Context, id int) (int, error)
	ReorderCategories(ctx context.Context, ids []int) error
}

type GalleryRepository interface {
	CreateImage(ctx context.Context, img *domain.GalleryImage) error
	ListImages(ctx context.Context, featuredOnly bool) ([]domain.GalleryImage, error)
	UpdateImage(ctx context.Context, img *domain.GalleryImage) error
	DeleteImage(ctx context.Context, id int) (int64, error)
	ToggleImageFeatured(ctx context.Context, id int) (*domain.GalleryImage, error)
}

type TeamRepository interface {
	CreateTeamMember(ctx context.Context, m *domain.TeamMember) error
	ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error)
	UpdateTeamMember(ctx context.Context, m *domain.TeamMember) error
	DeleteTeamMember(ctx context.Context, id int) (int64, error)
}

type SettingsRepository interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, update domain.SettingsUpdate) (*domain.Settings, error)
}

type MenuCache interface {
	GetMenu(ctx context.Context, key string) ([]domain.MenuItem, bool)
	SetMenu(ctx context.Context, key string, items []domain.MenuItem) error
	Invalidate(ctx context.Context) error
}

// ImageStore persists an uploaded image and returns its public URL.
type ImageStore interface {
	Save(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

type MenuServiceInterface interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	List(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error)
	Get(ctx context.Context, id int) (*domain.MenuItem, error)
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id int) error
	UploadImage(ctx context.Context, id int, filename, contentType string, body io.Reader) (string, error)
	ToggleFeatured(ctx context.Context, id int) (*domain.MenuItem, error)
	ToggleInStock(ctx context.Context, id int) (*domain.MenuItem, error)
}

type CategoryServiceInterface interface {
	Create(ctx context.Context, cat *domain.Category) error
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, cat *domain.Category) error
	Delete(ctx context.Context, id int) error
	Reorder(ctx context.Context, ids []int) error
}

type GalleryServiceInterface interface {
	Create(ctx context.Context, img *domain.GalleryImage) error
	Upload(ctx context.Context, title, filename, contentType string, body io.Reader) (*domain.GalleryImage, error)
	List(ctx context.Context, featuredOnly bool) ([]domain.GalleryImage, error)
	Update(ctx context.Context, img *domain.GalleryImage) error
	Delete(ctx context.Context, id int) error
	ToggleFeatured(ctx context.Context, id int) (*domain.GalleryImage, error)
}

type TeamServiceInterface interface {
	Create(ctx context.Context, m *domain.TeamMember) error
	List(ctx context.Context) ([]domain.TeamMember, error)
	Update(ctx context.Context, m *domain.TeamMember) error
	Delete(ctx context.Context, id int) error
}

type SettingsServiceInterface interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, update domain.SettingsUpdate) (*domain.Settings, error)
}

var (
	_ MenuServiceInterface     = (*MenuService)(nil)
	_ CategoryServiceInterface = (*CategoryService)(nil)
	_ GalleryServiceInterface  = (*GalleryService)(nil)
	_ TeamServiceInterface     = (*TeamService)(nil)
	_ SettingsServiceInterface = (*SettingsService)(nil)
)
