package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-gateway/internal/adapter/http/middleware"
	"storefront-gateway/internal/core/domain"
	"storefront-gateway/internal/core/ports"
	"storefront-gateway/internal/core/ports/mocks"
	"storefront-gateway/internal/service"
	"storefront-gateway/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- Auth Handler Tests ---

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Login(gomock.Any(), "ignacio_tapia", "f7rWChmQS1JYfThT").
		Return(&domain.Credential{Token: "fake-token-for-ignacio_tapia", Role: domain.RoleMaintainer}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/auth/login",
		[]byte(`{"username":"ignacio_tapia","password":"f7rWChmQS1JYfThT"}`))
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "fake-token-for-ignacio_tapia", data["token"])
	assert.Equal(t, "maintainer", data["role"])
}

func TestLogin_PasswordNotSanitized(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Login(gomock.Any(), "ops", " a<b ").
		Return(nil, apperror.ErrInvalidCredentials())

	c, w := newContext(http.MethodPost, "/api/v1/auth/login",
		[]byte(`{"username":"ops","password":" a<b "}`))
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperror.CodeInvalidCredentials, decodeBody(t, w)["error_code"])
}

func TestLogin_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	c, w := newContext(http.MethodPost, "/api/v1/auth/login", []byte(`{}`))
	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, decodeBody(t, w)["error_code"])
}

// --- Catalog Handler Tests ---

func TestListProducts_PassesUpstreamKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCatalog := mocks.NewMockCatalogService(ctrl)
	h := NewCatalogHandler(mockCatalog)

	mockCatalog.EXPECT().ListProducts(gomock.Any()).Return([]domain.Product{
		{ID: 1, Name: "Martillo", UnitPrice: decimal.NewFromInt(5990), StockQuantity: 12},
	}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/catalog/products", nil)
	h.ListProducts(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	product := data[0].(map[string]interface{})
	assert.Equal(t, "Martillo", product["nombre"])
	assert.Equal(t, float64(5990), product["precio"])
	assert.Equal(t, float64(12), product["stock"])
}

func TestGetProduct_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCatalog := mocks.NewMockCatalogService(ctrl)
	h := NewCatalogHandler(mockCatalog)

	for _, id := range []string{"abc", "0", "-3"} {
		c, w := newContext(http.MethodGet, "/api/v1/catalog/products/"+id, nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		h.GetProduct(c)

		assert.Equal(t, http.StatusBadRequest, w.Code, id)
		assert.Equal(t, apperror.CodeValidation, decodeBody(t, w)["error_code"], id)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCatalog := mocks.NewMockCatalogService(ctrl)
	h := NewCatalogHandler(mockCatalog)

	mockCatalog.EXPECT().GetProduct(gomock.Any(), 99).Return(nil, apperror.ErrUpstreamNotFound("Product"))

	c, w := newContext(http.MethodGet, "/api/v1/catalog/products/99", nil)
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	h.GetProduct(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, apperror.CodeUpstreamNotFound, resp["error_code"])
	assert.Equal(t, "Product not found", resp["message"])
}

func TestListBranches_UpstreamFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCatalog := mocks.NewMockCatalogService(ctrl)
	h := NewCatalogHandler(mockCatalog)

	mockCatalog.EXPECT().ListBranches(gomock.Any()).
		Return(nil, apperror.ErrUpstreamFailed("branches", http.StatusServiceUnavailable, nil))

	c, w := newContext(http.MethodGet, "/api/v1/catalog/branches", nil)
	h.ListBranches(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, apperror.CodeUpstreamFailed, resp["error_code"])
	assert.Equal(t, float64(503), resp["upstream_status"])
}

func TestMarkProductSold_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCatalog := mocks.NewMockCatalogService(ctrl)
	h := NewCatalogHandler(mockCatalog)

	mockCatalog.EXPECT().MarkProductSold(gomock.Any(), 7).
		Return(&domain.Product{ID: 7, Name: "Taladro", UnitPrice: decimal.NewFromInt(45000), StockQuantity: 2}, nil)

	c, w := newContext(http.MethodPut, "/api/v1/catalog/products/7/sold", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	h.MarkProductSold(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["stock"])
}

func TestGetSeller_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCatalog := mocks.NewMockCatalogService(ctrl)
	h := NewCatalogHandler(mockCatalog)

	mockCatalog.EXPECT().GetSeller(gomock.Any(), 3).
		Return(&domain.Seller{ID: 3, Name: "Ana", Email: "ana@ferremas.cl", BranchID: 1}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/catalog/sellers/3", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	h.GetSeller(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "ana@ferremas.cl", data["correo"])
	assert.Equal(t, float64(1), data["sucursal_id"])
}

func TestCreateUpstreamOrder_Verbatim(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCatalog := mocks.NewMockCatalogService(ctrl)
	h := NewCatalogHandler(mockCatalog)

	mockCatalog.EXPECT().CreateUpstreamOrder(gomock.Any()).
		Return(domain.UpstreamOrderConfirmation(`{"pedido_id":42,"estado":"creado"}`), nil)

	c, w := newContext(http.MethodPost, "/api/v1/catalog/orders", nil)
	h.CreateUpstreamOrder(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(42), data["pedido_id"])
	assert.Equal(t, "creado", data["estado"])
}

// --- Order Handler Tests ---

const orderBody = `{"product_id":1,"quantity":2,"buyer_name":"Juan Perez","shipping_address":"Av. Siempre Viva 742","buyer_email":"juan@example.com","amount":15000}`

func TestPlaceOrder_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSettle := mocks.NewMockSettlementService(ctrl)
	h := NewOrderHandler(mockSettle)

	cred := &domain.Credential{Token: "tok"}
	ref := "pi_123"
	mockSettle.EXPECT().Settle(gomock.Any(), gomock.Any(), cred).
		DoAndReturn(func(_ context.Context, order domain.OrderRequest, _ *domain.Credential) (*domain.SettlementResult, error) {
			assert.Equal(t, 1, order.ProductID)
			assert.Equal(t, 2, order.Quantity)
			assert.True(t, order.Amount.Equal(decimal.NewFromInt(15000)))
			return &domain.SettlementResult{
				Message:          "Order and payment recorded successfully",
				ProductID:        order.ProductID,
				Quantity:         order.Quantity,
				BuyerName:        order.BuyerName,
				PaymentReference: &ref,
			}, nil
		})

	c, w := newContext(http.MethodPost, "/api/v1/orders", []byte(orderBody))
	c.Set(middleware.CtxCredential, cred)
	h.PlaceOrder(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "pi_123", data["payment_reference"])
	assert.Equal(t, "Juan Perez", data["buyer_name"])
}

func TestPlaceOrder_AnonymousPassesNilCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSettle := mocks.NewMockSettlementService(ctrl)
	h := NewOrderHandler(mockSettle)

	mockSettle.EXPECT().Settle(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(nil, apperror.ErrUnauthorized())

	c, w := newContext(http.MethodPost, "/api/v1/orders", []byte(orderBody))
	h.PlaceOrder(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperror.CodeUnauthorized, decodeBody(t, w)["error_code"])
}

func TestPlaceOrder_BuyerFieldsReachGatewayVerbatim(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockPaymentGateway(ctrl)
	settleSvc := service.NewSettlementService(gateway, "Storefront order payment", nil, zerolog.Nop())
	h := NewOrderHandler(settleSvc)

	gateway.EXPECT().CreateCharge(gomock.Any(), ports.ChargeRequest{
		AmountMinor:  1500000,
		Currency:     "CLP",
		ReceiptEmail: "o'brien@example.com",
		Description:  "Storefront order payment",
		Metadata: map[string]string{
			"buyer_name": "Pat O'Brien & Sons",
			"product_id": "1",
			"quantity":   "2",
		},
	}).Return("pi_obrien", nil)

	body := strings.Replace(orderBody, `"Juan Perez"`, `"  Pat O'Brien & Sons "`, 1)
	body = strings.Replace(body, "juan@example.com", "o'brien@example.com", 1)
	c, w := newContext(http.MethodPost, "/api/v1/orders", []byte(body))
	c.Set(middleware.CtxCredential, &domain.Credential{Token: "tok"})
	h.PlaceOrder(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Pat O'Brien & Sons", data["buyer_name"])
	assert.Equal(t, "pi_obrien", data["payment_reference"])
}

func TestPlaceOrder_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSettle := mocks.NewMockSettlementService(ctrl)
	h := NewOrderHandler(mockSettle)

	body := strings.Replace(orderBody, "juan@example.com", "not-an-email", 1)
	c, w := newContext(http.MethodPost, "/api/v1/orders", []byte(body))
	h.PlaceOrder(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, decodeBody(t, w)["error_code"])
}

func TestPlaceOrder_PaymentFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSettle := mocks.NewMockSettlementService(ctrl)
	h := NewOrderHandler(mockSettle)

	mockSettle.EXPECT().Settle(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrPaymentFailed(errors.New("Your card was declined.")))

	c, w := newContext(http.MethodPost, "/api/v1/orders", []byte(orderBody))
	c.Set(middleware.CtxCredential, &domain.Credential{Token: "tok"})
	h.PlaceOrder(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, apperror.CodePaymentFailed, resp["error_code"])
	assert.Contains(t, resp["message"], "Your card was declined.")
}

// --- Conversion Handler Tests ---

func TestConvert_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockConv := mocks.NewMockConversionService(ctrl)
	h := NewConversionHandler(mockConv)

	mockConv.EXPECT().Convert(gomock.Any(), decimal.RequireFromString("900"), "CLP", "USD").
		Return(&domain.ConversionQuote{
			SourceCurrency: "CLP",
			TargetCurrency: "USD",
			InputAmount:    decimal.NewFromInt(900),
			OutputAmount:   decimal.NewFromInt(1),
			AsOfDate:       "2026-10-17",
			RateTier:       domain.RateTierFixed,
		}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/conversion?amount=900&source_currency=CLP&target_currency=USD", nil)
	h.Convert(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"output_amount":1.00`)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "fixed", data["rate_tier"])
	assert.Equal(t, "2026-10-17", data["as_of_date"])
}

func TestConvert_InvalidAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockConv := mocks.NewMockConversionService(ctrl)
	h := NewConversionHandler(mockConv)

	c, w := newContext(http.MethodGet, "/api/v1/conversion?amount=lots&source_currency=CLP&target_currency=USD", nil)
	h.Convert(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, decodeBody(t, w)["error_code"])
}

func TestConvert_MissingParameter(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockConv := mocks.NewMockConversionService(ctrl)
	h := NewConversionHandler(mockConv)

	c, w := newContext(http.MethodGet, "/api/v1/conversion?amount=10&source_currency=CLP", nil)
	h.Convert(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, decodeBody(t, w)["error_code"])
}

func TestConvert_UnsupportedPair(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockConv := mocks.NewMockConversionService(ctrl)
	h := NewConversionHandler(mockConv)

	mockConv.EXPECT().Convert(gomock.Any(), gomock.Any(), "CLP", "EUR").
		Return(nil, apperror.ErrUnsupportedPair("CLP", "EUR"))

	c, w := newContext(http.MethodGet, "/api/v1/conversion?amount=10&source_currency=CLP&target_currency=EUR", nil)
	h.Convert(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeUnsupportedPair, decodeBody(t, w)["error_code"])
}

// --- Contact Handler Tests ---

func TestContact_EchoesRequest(t *testing.T) {
	h := NewContactHandler(zerolog.Nop())

	c, w := newContext(http.MethodPost, "/api/v1/contact",
		[]byte(`{"name":"Maria","email":"maria@example.com","message":"Need 20 bags of cement"}`))
	h.Submit(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, contactAck, data["message"])
	req := data["request"].(map[string]interface{})
	assert.Equal(t, "Maria", req["name"])
	assert.Equal(t, "Need 20 bags of cement", req["message"])
}

func TestContact_EchoIsNotEscaped(t *testing.T) {
	h := NewContactHandler(zerolog.Nop())

	c, w := newContext(http.MethodPost, "/api/v1/contact",
		[]byte(`{"name":" Pat O'Brien & Sons ","email":"o'brien@example.com","message":"Is 3/4\" <PVC> in stock?"}`))
	h.Submit(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	req := decodeBody(t, w)["data"].(map[string]interface{})["request"].(map[string]interface{})
	assert.Equal(t, "Pat O'Brien & Sons", req["name"])
	assert.Equal(t, "o'brien@example.com", req["email"])
	assert.Equal(t, `Is 3/4" <PVC> in stock?`, req["message"])
}

func TestContact_ValidationError(t *testing.T) {
	h := NewContactHandler(zerolog.Nop())

	c, w := newContext(http.MethodPost, "/api/v1/contact", []byte(`{"name":"Maria","message":"hi"}`))
	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, decodeBody(t, w)["error_code"])
}

// --- System Handler Tests ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(context.Context) error { return s.err }
func (s stubChecker) Name() string               { return s.name }

func TestRoot(t *testing.T) {
	c, w := newContext(http.MethodGet, "/", nil)
	Root("storefront-gateway", "1.2.3")(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "storefront-gateway", data["service"])
	assert.Equal(t, "1.2.3", data["version"])
	assert.Equal(t, "running", data["status"])
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/health", nil)
		HealthCheck(stubChecker{name: "redis"})(c)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody(t, w)
		assert.Equal(t, "healthy", resp["status"])
		assert.Equal(t, "healthy", resp["dependencies"].(map[string]interface{})["redis"])
	})

	t.Run("degraded", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/health", nil)
		HealthCheck(stubChecker{name: "redis"}, stubChecker{name: "postgresql", err: errors.New("refused")})(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		resp := decodeBody(t, w)
		assert.Equal(t, "degraded", resp["status"])
		assert.Equal(t, "unhealthy: refused", resp["dependencies"].(map[string]interface{})["postgresql"])
	})

	t.Run("no dependencies", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/health", nil)
		HealthCheck()(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
