package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/shared"
	"github.com/tienda/backend/internal/domain/shared/valueobject"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_INPUT", "Category not found")
		}
		return nil, err
	}

	price, err := valueobject.NewMoneyFromString(req.SalePrice)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid sale price")
	}

	product, err := catalog.NewProduct(req.Name, price, req.Stock, req.CategoryID)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	product.ImageURL = req.ImageURL

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))

	return ToProductResponse(product), nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List retrieves products matching the filter, with the total count
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.SortBy != "" {
		domainFilter.OrderBy = filter.SortBy
		if filter.SortDesc {
			domainFilter.OrderDir = "desc"
		} else {
			domainFilter.OrderDir = "asc"
		}
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = *ToProductResponse(&products[i])
	}
	return responses, total, nil
}

// Update applies a partial update to a product. Nil fields are left
// untouched. Stock is not updatable here; use AdjustStock.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
		}
		product.Name = *req.Name
		product.Touch()
	}
	if req.Description != nil {
		product.Description = *req.Description
		product.Touch()
	}
	if req.SalePrice != nil {
		price, err := valueobject.NewMoneyFromString(*req.SalePrice)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid sale price")
		}
		if err := product.ChangePrice(price); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
		product.Touch()
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_INPUT", "Category not found")
			}
			return nil, err
		}
		product.CategoryID = *req.CategoryID
		product.Touch()
	}
	if req.Status != nil {
		switch catalog.ProductStatus(*req.Status) {
		case catalog.ProductStatusActive:
			if err := product.Activate(); err != nil {
				return nil, err
			}
		case catalog.ProductStatusInactive:
			if err := product.Deactivate(); err != nil {
				return nil, err
			}
		case catalog.ProductStatusDiscontinued:
			product.Discontinue()
		default:
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown status: "+*req.Status)
		}
	}

	if err := s.productRepo.UpdateDetails(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// AdjustStock adds delta to the product's stock counter. The adjustment is
// applied conditionally in the store, so concurrent adjustments can never
// drive stock negative.
func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*ProductResponse, error) {
	ok, err := s.productRepo.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Distinguish missing product from insufficient stock
		if _, err := s.productRepo.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, shared.ErrInsufficientStock
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock adjusted",
		zap.String("product_id", id.String()),
		zap.Int("delta", delta),
		zap.Int("stock", product.Stock))

	return ToProductResponse(product), nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}
