package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/invenlab/inventory-api/internal/domain/catalog"
	"github.com/invenlab/inventory-api/internal/domain/entity"
	repo "github.com/invenlab/inventory-api/internal/domain/repository"
)

const (
	productImageFolder = "products"
	esTimeout          = 3 * time.Second
)

// CatalogService owns products and the query surface over them. The
// Elasticsearch mirror is best-effort: the relational store is the
// source of truth and index failures only warn.
type CatalogService struct {
	Products   repo.ProductRepository
	Categories repo.CategoryRepository
	Images     ImageStore
	Logger     *logrus.Logger

	ES              *elasticsearch.Client
	ESProductsIndex string
}

func NewCatalogService(products repo.ProductRepository, categories repo.CategoryRepository, images ImageStore, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *CatalogService {
	return &CatalogService{
		Products:        products,
		Categories:      categories,
		Images:          images,
		Logger:          logger,
		ES:              es,
		ESProductsIndex: esIndex,
	}
}

// List applies the catalog filter and returns one page plus its
// pagination metadata. The filter is normalized in place.
func (s *CatalogService) List(ctx context.Context, f *catalog.Filter) ([]*entity.Product, catalog.Metadata, error) {
	f.Normalize()
	items, total, err := s.Products.List(ctx, f)
	if err != nil {
		return nil, catalog.Metadata{}, err
	}
	return items, catalog.NewMetadata(f.PageNumber, f.PageSize, total), nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	ok, err := s.Categories.Exists(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return s.Products.ListByCategory(ctx, categoryID)
}

func (s *CatalogService) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	return s.Products.ListLowStock(ctx)
}

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Available   bool
	CategoryID  int64
}

func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*entity.Product, error) {
	ok, err := s.Categories.Exists(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCategoryNotFound
	}
	p := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Available:   in.Available,
		CategoryID:  in.CategoryID,
	}
	if err := s.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.indexProduct(ctx, p)
	return p, nil
}

func (s *CatalogService) Update(ctx context.Context, id int64, in ProductInput) (*entity.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.Categories.Exists(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCategoryNotFound
	}
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Stock = in.Stock
	p.Available = in.Available
	p.CategoryID = in.CategoryID
	if err := s.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	p, err = s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.indexProduct(ctx, p)
	return p, nil
}

// UpdateStock sets the stock level. Reaching zero disables the product;
// restocking never re-enables it, that stays an explicit edit.
func (s *CatalogService) UpdateStock(ctx context.Context, id int64, stock int) (*entity.Product, error) {
	if err := s.Products.UpdateStock(ctx, id, stock); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.indexProduct(ctx, p)
	return p, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Products.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if p.ImageURL != "" && s.Images != nil {
		if _, err := s.Images.Remove(ctx, p.ImageURL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("remove product image failed")
		}
	}
	s.removeFromIndex(ctx, id)
	return nil
}

// UploadImage stores the new image before the previous one is retired.
func (s *CatalogService) UploadImage(ctx context.Context, id int64, r io.Reader, filename, contentType string, size int64) (*entity.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := s.Images.Replace(ctx, r, filename, contentType, productImageFolder, size, p.ImageURL)
	if err != nil {
		return nil, err
	}
	if err := s.Products.SetImageURL(ctx, id, url); err != nil {
		return nil, err
	}
	p.ImageURL = url
	s.indexProduct(ctx, p)
	return p, nil
}

func (s *CatalogService) RemoveImage(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.ImageURL != "" {
		if _, err := s.Images.Remove(ctx, p.ImageURL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("remove product image failed")
		}
		if err := s.Products.SetImageURL(ctx, id, ""); err != nil {
			return nil, err
		}
		p.ImageURL = ""
		s.indexProduct(ctx, p)
	}
	return p, nil
}

func (s *CatalogService) indexProduct(ctx context.Context, p *entity.Product) {
	if s.ES == nil || s.ESProductsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":            p.ID,
		"name":          p.Name,
		"description":   p.Description,
		"price":         p.Price,
		"stock":         p.Stock,
		"available":     p.Available,
		"category_id":   p.CategoryID,
		"category_name": p.CategoryName,
		"created_at":    p.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":    p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESProductsIndex,
		DocumentID: strconv.FormatInt(p.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
}

func (s *CatalogService) removeFromIndex(ctx context.Context, id int64) {
	if s.ES == nil || s.ESProductsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESProductsIndex, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query over name and description in the
// Elasticsearch mirror. With no mirror configured it returns an empty
// result instead of failing.
func (s *CatalogService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESProductsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > catalog.MaxPageSize {
		size = catalog.DefaultPageSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESProductsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
