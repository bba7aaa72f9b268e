package handlers

import (
	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorsResponse struct {
	Errors []ValidationError `json:"errors"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ProductRequest struct {
	Name             string              `json:"name"`
	Slug             string              `json:"slug"`
	SKU              string              `json:"sku"`
	Description      string              `json:"description"`
	ShortDescription string              `json:"short_description"`
	Price            decimal.Decimal     `json:"price" swaggertype:"number"`
	SalePrice        decimal.NullDecimal `json:"sale_price" swaggertype:"number"`
	StockQuantity    int                 `json:"stock_quantity"`
	ManageStock      *bool               `json:"manage_stock"`
	Status           string              `json:"status"`
	Featured         bool                `json:"featured"`
	CategoryID       *string             `json:"category_id"`
	SubcategoryID    *string             `json:"subcategory_id"`
	Images           []string            `json:"images"`
	Gallery          []string            `json:"gallery"`
	MetaTitle        string              `json:"meta_title"`
	MetaDescription  string              `json:"meta_description"`
	Weight           *float64            `json:"weight"`
	Dimensions       *models.Dimensions  `json:"dimensions"`
}

// toProduct assumes req has been validated and normalized.
func (req ProductRequest) toProduct() models.Product {
	manageStock := true
	if req.ManageStock != nil {
		manageStock = *req.ManageStock
	}
	return models.Product{
		Name:             req.Name,
		Slug:             req.Slug,
		SKU:              req.SKU,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		SalePrice:        req.SalePrice,
		StockQuantity:    req.StockQuantity,
		ManageStock:      manageStock,
		Status:           models.ProductStatus(req.Status),
		Featured:         req.Featured,
		CategoryID:       emptyToNil(req.CategoryID),
		SubcategoryID:    emptyToNil(req.SubcategoryID),
		Images:           models.StringList(req.Images),
		Gallery:          models.StringList(req.Gallery),
		MetaTitle:        req.MetaTitle,
		MetaDescription:  req.MetaDescription,
		Weight:           req.Weight,
		Dimensions:       req.Dimensions,
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

type QuantityAdjustmentRequest struct {
	Delta int `json:"delta"` // can be positive or negative
}

type ImportProductsResult struct {
	ImportedProductsCount int               `json:"imported"`
	Errors                []ValidationError `json:"errors"`
}

type GroupRequest struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Position int    `json:"position"`
}

type CategoryRequest struct {
	GroupID     *string `json:"group_id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Position    int     `json:"position"`
}

type SubcategoryRequest struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Position   int    `json:"position"`
}

type SlideRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url"`
	Position int    `json:"position"`
	Active   *bool  `json:"active"`
}

type TranslationRequest struct {
	Value string `json:"value"`
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

type RoleRequest struct {
	Role string `json:"role"`
}

type ProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LoginResult struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int         `json:"expires_in"`
	User         models.User `json:"user"`
}

type UploadResult struct {
	URL string `json:"url"`
}
