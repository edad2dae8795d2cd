package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"restaurant-ordering/menu-svc/internal/domain"
	"restaurant-ordering/validation"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound        = domain.ErrNotFound
	ErrConflict        = domain.ErrConflict
	ErrCategoryInUse   = errors.New("category still has menu items")
	ErrUnknownCategory = errors.New("category does not exist")
	ErrInvalidImage    = errors.New("only JPEG, PNG, GIF and WebP images are allowed")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func imageName(prefix, filename, contentType string) (string, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", ErrInvalidImage
	}
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, base)
	return prefix + "_" + base + ext, nil
}

type MenuService struct {
	repo       MenuRepository
	categories CategoryRepository
	cache      MenuCache
	images     ImageStore
	log        *logrus.Entry
}

func NewMenuService(repo MenuRepository, categories CategoryRepository, cache MenuCache, images ImageStore, log *logrus.Entry) *MenuService {
	return &MenuService{repo: repo, categories: categories, cache: cache, images: images, log: log}
}

func (s *MenuService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WithError(err).Warn("Failed to invalidate menu cache")
	}
}

func (s *MenuService) checkCategory(ctx context.Context, name string) error {
	cats, err := s.categories.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	for _, c := range cats {
		if c.Name == name {
			return nil
		}
	}
	return ErrUnknownCategory
}

func (s *MenuService) Create(ctx context.Context, item *domain.MenuItem) error {
	if err := validation.Struct(item); err != nil {
		return err
	}
	if err := s.checkCategory(ctx, item.Category); err != nil {
		return err
	}
	if err := s.repo.CreateMenuItem(ctx, item); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *MenuService) List(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error) {
	key := filter.CacheKey()
	if items, ok := s.cache.GetMenu(ctx, key); ok {
		return items, nil
	}
	items, err := s.repo.ListMenuItems(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	if err := s.cache.SetMenu(ctx, key, items); err != nil {
		s.log.WithError(err).Warn("Failed to cache menu listing")
	}
	return items, nil
}

func (s *MenuService) Get(ctx context.Context, id int) (*domain.MenuItem, error) {
	return s.repo.GetMenuItem(ctx, id)
}

func (s *MenuService) Update(ctx context.Context, item *domain.MenuItem) error {
	if err := validation.Struct(item); err != nil {
		return err
	}
	if err := s.checkCategory(ctx, item.Category); err != nil {
		return err
	}
	if err := s.repo.UpdateMenuItem(ctx, item); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *MenuService) Delete(ctx context.Context, id int) error {
	rows, err := s.repo.DeleteMenuItem(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *MenuService) UploadImage(ctx context.Context, id int, filename, contentType string, body io.Reader) (string, error) {
	name, err := imageName(fmt.Sprintf("menu_%d", id), filename, contentType)
	if err != nil {
		return "", err
	}
	if _, err := s.repo.GetMenuItem(ctx, id); err != nil {
		return "", err
	}
	url, err := s.images.Save(ctx, name, contentType, body)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	if err := s.repo.UpdateMenuItemImage(ctx, id, url); err != nil {
		return "", err
	}
	s.invalidate(ctx)
	return url, nil
}

func (s *MenuService) ToggleFeatured(ctx context.Context, id int) (*domain.MenuItem, error) {
	item, err := s.repo.ToggleFeatured(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return item, nil
}

func (s *MenuService) ToggleInStock(ctx context.Context, id int) (*domain.MenuItem, error) {
	item, err := s.repo.ToggleInStock(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return item, nil
}

type CategoryService struct {
	repo  CategoryRepository
	cache MenuCache
	log   *logrus.Entry
}

func NewCategoryService(repo CategoryRepository, cache MenuCache, log *logrus.Entry) *CategoryService {
	return &CategoryService{repo: repo, cache: cache, log: log}
}

func normalizeSlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

func (s *CategoryService) Create(ctx context.Context, cat *domain.Category) error {
	cat.Name = normalizeSlug(cat.Name)
	if err := validation.Struct(cat); err != nil {
		return err
	}
	return s.repo.CreateCategory(ctx, cat)
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

// Update renames cascade to menu items, so the menu cache is dropped.
func (s *CategoryService) Update(ctx context.Context, cat *domain.Category) error {
	cat.Name = normalizeSlug(cat.Name)
	if err := validation.Struct(cat); err != nil {
		return err
	}
	if err := s.repo.UpdateCategory(ctx, cat); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WithError(err).Warn("Failed to invalidate menu cache")
	}
	return nil
}

func (s *CategoryService) Delete(ctx context.Context, id int) error {
	n, err := s.repo.CountItemsInCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}
	rows, err := s.repo.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Reorder assigns order_index by position in ids.
func (s *CategoryService) Reorder(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return validation.Errors{"ids": "is required"}
	}
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return validation.Errors{"ids": "must not contain duplicates"}
		}
		seen[id] = true
	}
	return s.repo.ReorderCategories(ctx, ids)
}

type GalleryService struct {
	repo   GalleryRepository
	images ImageStore
}

func NewGalleryService(repo GalleryRepository, images ImageStore) *GalleryService {
	return &GalleryService{repo: repo, images: images}
}

func (s *GalleryService) Create(ctx context.Context, img *domain.GalleryImage) error {
	if err := validation.Struct(img); err != nil {
		return err
	}
	return s.repo.CreateImage(ctx, img)
}

func (s *GalleryService) Upload(ctx context.Context, title, filename, contentType string, body io.Reader) (*domain.GalleryImage, error) {
	name, err := imageName("gallery", filename, contentType)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		title = strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	}
	url, err := s.images.Save(ctx, name, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	img := &domain.GalleryImage{Title: title, URL: url}
	if err := s.Create(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *GalleryService) List(ctx context.Context, featuredOnly bool) ([]domain.GalleryImage, error) {
	return s.repo.ListImages(ctx, featuredOnly)
}

func (s *GalleryService) Update(ctx context.Context, img *domain.GalleryImage) error {
	if err := validation.Struct(img); err != nil {
		return err
	}
	return s.repo.UpdateImage(ctx, img)
}

func (s *GalleryService) Delete(ctx context.Context, id int) error {
	rows, err := s.repo.DeleteImage(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GalleryService) ToggleFeatured(ctx context.Context, id int) (*domain.GalleryImage, error) {
	return s.repo.ToggleImageFeatured(ctx, id)
}

type TeamService struct {
	repo TeamRepository
}

func NewTeamService(repo TeamRepository) *TeamService {
	return &TeamService{repo: repo}
}

func (s *TeamService) Create(ctx context.Context, m *domain.TeamMember) error {
	if err := validation.Struct(m); err != nil {
		return err
	}
	return s.repo.CreateTeamMember(ctx, m)
}

func (s *TeamService) List(ctx context.Context) ([]domain.TeamMember, error) {
	return s.repo.ListTeamMembers(ctx)
}

func (s *TeamService) Update(ctx context.Context, m *domain.TeamMember) error {
	if err := validation.Struct(m); err != nil {
		return err
	}
	return s.repo.UpdateTeamMember(ctx, m)
}

func (s *TeamService) Delete(ctx context.Context, id int) error {
	rows, err := s.repo.DeleteTeamMember(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

type SettingsService struct {
	repo SettingsRepository
}

func NewSettingsService(repo SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Get(ctx context.Context) (*domain.Settings, error) {
	return s.repo.GetSettings(ctx)
}

// Update applies only the non-nil fields of update. An empty update
// returns the stored row unchanged.
func (s *SettingsService) Update(ctx context.Context, update domain.SettingsUpdate) (*domain.Settings, error) {
	if err := validation.Struct(update); err != nil {
		return nil, err
	}
	if update.Empty() {
		return s.repo.GetSettings(ctx)
	}
	return s.repo.UpdateSettings(ctx, update)
}
