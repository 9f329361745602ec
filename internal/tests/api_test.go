// internal/tests/api_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/shoplite/shoplite-backend/internal/config"
	"github.com/shoplite/shoplite-backend/internal/handlers"
	"github.com/shoplite/shoplite-backend/internal/middleware"
	"github.com/shoplite/shoplite-backend/internal/services"
	"github.com/shoplite/shoplite-backend/internal/store"
	"github.com/shoplite/shoplite-backend/internal/utils"
)

type APITestSuite struct {
	suite.Suite
	store  *store.Store
	router *gin.Engine
}

// SetupTest builds a fresh store and router per test. Rate limiting is left
// out so repeated auth calls across the suite cannot trip the per-IP limiter.
func (suite *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 2,
		},
		Payment: config.PaymentConfig{Currency: "usd"},
		Seed:    config.SeedConfig{Enabled: true, AdminPassword: "Admin1234!"},
	}
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	suite.store = store.New()
	require.NoError(suite.T(), store.Seed(suite.store, cfg.Seed.AdminPassword))

	storageService, err := services.NewStorageService(cfg)
	require.NoError(suite.T(), err)

	authHandler := handlers.NewAuthHandler(services.NewAuthService(suite.store, cfg))
	productHandler := handlers.NewProductHandler(services.NewProductService(suite.store), storageService)
	categoryHandler := handlers.NewCategoryHandler(services.NewCategoryService(suite.store))
	cartHandler := handlers.NewCartHandler(services.NewCartService(suite.store))
	orderHandler := handlers.NewOrderHandler(services.NewCheckoutService(suite.store, cfg))

	r := gin.New()
	v1 := r.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)
	auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)

	products := v1.Group("/products")
	products.GET("", productHandler.GetProducts)
	products.GET("/popular", productHandler.GetPopularProducts)
	products.GET("/:id", productHandler.GetProduct)
	adminProducts := products.Group("")
	adminProducts.Use(middleware.AuthRequired(), middleware.AdminRequired())
	adminProducts.POST("", productHandler.CreateProduct)
	adminProducts.DELETE("/:id", productHandler.DeleteProduct)

	categories := v1.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)

	cart := v1.Group("/cart")
	cart.Use(middleware.AuthRequired())
	cart.GET("", cartHandler.GetCart)
	cart.POST("/items", cartHandler.AddItem)
	cart.DELETE("", cartHandler.ClearCart)

	orders := v1.Group("/orders")
	orders.Use(middleware.AuthRequired())
	orders.POST("", orderHandler.Checkout)
	orders.GET("", orderHandler.GetOrders)

	suite.router = r
}

func (suite *APITestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (suite *APITestSuite) registerUser() string {
	w := suite.request("POST", "/v1/auth/register", "", map[string]interface{}{
		"username": "testshopper",
		"email":    "shopper@example.com",
		"password": "TestPass123!",
	})
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())

	response := suite.decode(w)
	data := response["data"].(map[string]interface{})
	return data["access_token"].(string)
}

func (suite *APITestSuite) loginAdmin() string {
	w := suite.request("POST", "/v1/auth/login", "", map[string]interface{}{
		"email":    "admin@shoplite.test",
		"password": "Admin1234!",
	})
	require.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())

	response := suite.decode(w)
	data := response["data"].(map[string]interface{})
	return data["access_token"].(string)
}

func (suite *APITestSuite) TestRegisterLoginAndProfile() {
	token := suite.registerUser()

	w := suite.request("GET", "/v1/auth/me", token, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	assert.True(suite.T(), response["success"].(bool))
	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), "testshopper", data["username"])

	// A second registration with the same email conflicts.
	w = suite.request("POST", "/v1/auth/register", "", map[string]interface{}{
		"username": "other",
		"email":    "shopper@example.com",
		"password": "TestPass123!",
	})
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *APITestSuite) TestProfileRequiresToken() {
	w := suite.request("GET", "/v1/auth/me", "", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	w = suite.request("GET", "/v1/auth/me", "garbage", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestProductListingPagination() {
	w := suite.request("GET", "/v1/products?sort=price_asc&page=1&limit=4", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	data := response["data"].([]interface{})
	assert.Len(suite.T(), data, 4)

	meta := response["meta"].(map[string]interface{})
	pagination := meta["pagination"].(map[string]interface{})
	assert.EqualValues(suite.T(), 10, pagination["total"])
	assert.EqualValues(suite.T(), 3, pagination["total_pages"])
	assert.Equal(suite.T(), "10", w.Header().Get("X-Total-Count"))

	first := data[0].(map[string]interface{})
	second := data[1].(map[string]interface{})
	assert.LessOrEqual(suite.T(), first["price"].(float64), second["price"].(float64))

	// A page far past the data is a valid, empty page rather than an error.
	w = suite.request("GET", "/v1/products?page=9223372036854775807&limit=4", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())
	response = suite.decode(w)
	assert.Empty(suite.T(), response["data"])
}

func (suite *APITestSuite) TestProductListingSearchAndPriceRange() {
	w := suite.request("GET", "/v1/products?search=kettle", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	data := response["data"].([]interface{})
	require.Len(suite.T(), data, 1)
	assert.Equal(suite.T(), "Pour-Over Kettle", data[0].(map[string]interface{})["name"])

	w = suite.request("GET", "/v1/products?min_price=80&max_price=100", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	response = suite.decode(w)
	data = response["data"].([]interface{})
	require.Len(suite.T(), data, 1)
	assert.Equal(suite.T(), "Mechanical Keyboard", data[0].(map[string]interface{})["name"])
}

func (suite *APITestSuite) TestProductListingRejectsBadQuery() {
	w := suite.request("GET", "/v1/products?sort=cheapest", "", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request("GET", "/v1/products?min_price=abc", "", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	// Conflicting bounds are a validation error, not an empty page.
	w = suite.request("GET", "/v1/products?min_price=50&max_price=10", "", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestAdminProductManagement() {
	customerToken := suite.registerUser()
	adminToken := suite.loginAdmin()

	body := map[string]interface{}{
		"name":        "Limited Poster",
		"description": "A numbered art print for the demo shop",
		"price":       25.0,
		"stock":       5,
	}

	// Customers cannot create products.
	w := suite.request("POST", "/v1/products", customerToken, body)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.request("POST", "/v1/products", adminToken, body)
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())

	response := suite.decode(w)
	created := response["data"].(map[string]interface{})
	productID := created["id"].(string)

	w = suite.request("GET", "/v1/products/"+productID, "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.request("DELETE", "/v1/products/"+productID, adminToken, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.request("GET", "/v1/products/"+productID, "", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *APITestSuite) TestCartAndCheckoutFlow() {
	token := suite.registerUser()

	// Pick a product from the listing.
	w := suite.request("GET", "/v1/products?search=earbuds", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	listing := suite.decode(w)["data"].([]interface{})
	require.NotEmpty(suite.T(), listing)
	productID := listing[0].(map[string]interface{})["id"].(string)
	price := listing[0].(map[string]interface{})["price"].(float64)

	w = suite.request("POST", "/v1/cart/items", token, map[string]interface{}{
		"product_id": productID,
		"quantity":   2,
	})
	require.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())

	data := suite.decode(w)["data"].(map[string]interface{})
	assert.InDelta(suite.T(), 2*price, data["subtotal"].(float64), 0.001)

	w = suite.request("POST", "/v1/orders", token, nil)
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())

	checkout := suite.decode(w)["data"].(map[string]interface{})
	order := checkout["order"].(map[string]interface{})
	assert.Equal(suite.T(), "paid", order["status"])

	// Cart is empty after checkout.
	w = suite.request("GET", "/v1/cart", token, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	cartData := suite.decode(w)["data"].(map[string]interface{})
	assert.EqualValues(suite.T(), 0, cartData["quantity"])

	// The order shows up in history.
	w = suite.request("GET", "/v1/orders", token, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	ordersData := suite.decode(w)["data"].(map[string]interface{})
	assert.Len(suite.T(), ordersData["orders"].([]interface{}), 1)
}

func (suite *APITestSuite) TestCheckoutWithEmptyCart() {
	token := suite.registerUser()

	w := suite.request("POST", "/v1/orders", token, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestCategoriesListing() {
	w := suite.request("GET", "/v1/categories", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	data := suite.decode(w)["data"].(map[string]interface{})
	categories := data["categories"].([]interface{})
	assert.Len(suite.T(), categories, 3)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
