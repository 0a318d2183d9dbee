package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/reviewit/internal/model"
	"github.com/erazemk/reviewit/internal/store"
)

// CatalogService serves categories and items.
type CatalogService struct {
	DB *sqlx.DB
}

// ListCategories returns all categories with their item counts.
func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return store.ListCategories(ctx, s.DB)
}

// GetCategory returns one category.
func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	c, err := store.GetCategory(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

// ItemQuery holds the listing parameters for items.
type ItemQuery struct {
	Filter   model.ItemFilter
	Sort     string
	Page     int
	PageSize int
}

// ListItems filters, sorts and paginates items. Snippets are only resolved
// for the returned page.
func (s *CatalogService) ListItems(ctx context.Context, q ItemQuery) ([]model.ItemSummary, error) {
	items, err := store.ListItems(ctx, s.DB, q.Filter)
	if err != nil {
		return nil, err
	}

	model.SortItems(items, q.Sort)
	page := model.Paginate(items, q.Page, q.PageSize)

	ids := make([]int64, len(page))
	for i, item := range page {
		ids[i] = item.ID
	}
	newest, err := store.NewestReviewContent(ctx, s.DB, ids)
	if err != nil {
		return nil, err
	}
	for i := range page {
		if content, ok := newest[page[i].ID]; ok {
			page[i].MostPopularReviewSnippet = model.Snippet(&content)
		}
	}
	return page, nil
}

// GetItem returns an item's detail view.
func (s *CatalogService) GetItem(ctx context.Context, id int64) (*model.ItemDetail, error) {
	item, err := store.GetItem(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// CreateItem adds an item to an existing category on behalf of userID.
func (s *CatalogService) CreateItem(ctx context.Context, userID int64, name string, description, imageURL *string, categoryID int64) (*model.ItemDetail, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validation("Name is required.")
	}

	category, err := store.GetCategory(ctx, s.DB, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrInvalidCategory
	}

	return store.CreateItem(ctx, s.DB, name, trimmed(description), trimmed(imageURL), categoryID, userID)
}

// ItemImageURL is the path an uploaded item image is served from.
func ItemImageURL(itemID int64) string {
	return fmt.Sprintf("/api/items/%d/image", itemID)
}

// SetItemImage stores an already processed image. Only the item's creator
// may do so; everyone else gets ErrItemNotFound.
func (s *CatalogService) SetItemImage(ctx context.Context, userID, itemID int64, data []byte, mime string) (*model.ItemDetail, error) {
	item, err := store.GetItem(ctx, s.DB, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CreatedByUserID != userID {
		return nil, ErrItemNotFound
	}

	if err := store.SetItemImage(ctx, s.DB, itemID, data, mime, ItemImageURL(itemID)); err != nil {
		return nil, err
	}
	return store.GetItem(ctx, s.DB, itemID)
}

// ItemImage returns the stored image of an item.
func (s *CatalogService) ItemImage(ctx context.Context, itemID int64) ([]byte, string, error) {
	data, mime, err := store.GetItemImage(ctx, s.DB, itemID)
	if err != nil {
		return nil, "", err
	}
	if data == nil {
		return nil, "", notFound("Image not found.")
	}
	return data, mime, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
