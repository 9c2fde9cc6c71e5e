package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"shopgate/internal/logging"
	"shopgate/internal/server/assets"
	"shopgate/internal/server/auth"
	sc "shopgate/internal/server/config"
	"shopgate/internal/server/shared/db"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *sc.Config {
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	return cfg
}

func newTestServer(t *testing.T) (*httptest.Server, db.RepositoryManager, string) {
	t.Helper()

	cfg := testConfig()
	repos := db.NewInMemoryRepositoryManager()
	require.NoError(t, db.SeedDemoData(context.Background(), repos))

	h := NewHandler(cfg, repos, assets.NewPresigner(cfg), logging.NewDefault())
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)

	owner, err := repos.Owners().GetByEmail(context.Background(), db.DemoEmail)
	require.NoError(t, err)

	token, err := auth.GenerateToken(owner.ID, []byte(cfg.SecretKey), time.Hour)
	require.NoError(t, err)

	return srv, repos, token
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)

	return resp, out.Bytes()
}

func TestLoginAndProfileShapes(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/login", "", map[string]string{
		"email": db.DemoEmail, "password": db.DemoPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Token   string         `json:"token"`
		Account map[string]any `json:"account"`
	}
	require.NoError(t, json.Unmarshal(body, &login))
	require.NotEmpty(t, login.Token)
	require.Equal(t, db.DemoEmail, login.Account["email"])

	for _, shape := range []string{"", "?shape=owner", "?shape=bare"} {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/profile"+shape, login.Token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var payload map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(body, &payload))
		switch shape {
		case "?shape=owner":
			require.Contains(t, payload, "owner")
		case "?shape=bare":
			require.Contains(t, payload, "email")
		default:
			require.Contains(t, payload, "data")
		}
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/login", "", map[string]string{
		"email": db.DemoEmail, "password": "nope",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, string(body), "invalid email or password")
}

func TestRequestsWithoutTokenRejected(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/orders", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterThenLogin(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/register", "", map[string]string{
		"email": "new@shop.dev", "password": "hunter22", "shop_name": "New Shop",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// duplicate registration conflicts
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/register", "", map[string]string{
		"email": "new@shop.dev", "password": "hunter22", "shop_name": "New Shop",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Contains(t, string(body), "already registered")

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/login", "", map[string]string{
		"email": "new@shop.dev", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Account map[string]any `json:"account"`
	}
	require.NoError(t, json.Unmarshal(body, &login))
	require.Equal(t, "pending", login.Account["status"])
}

type orderPayload struct {
	OrderID        string `json:"order_id"`
	StorageID      string `json:"id"`
	Status         string `json:"status"`
	DeliveryMethod string `json:"delivery_method"`
	Tracking       struct {
		OutForDelivery bool `json:"is_out_for_delivery"`
	} `json:"tracking"`
}

func listTestOrders(t *testing.T, srv *httptest.Server, token string) []orderPayload {
	t.Helper()
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/orders", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var orders []orderPayload
	require.NoError(t, json.Unmarshal(body, &orders))
	require.NotEmpty(t, orders)
	return orders
}

func findOrder(t *testing.T, orders []orderPayload, status, method string, out bool) orderPayload {
	t.Helper()
	for _, o := range orders {
		if o.Status == status && o.DeliveryMethod == method && o.Tracking.OutForDelivery == out {
			return o
		}
	}
	t.Fatalf("no seeded order with status=%s method=%s out=%v", status, method, out)
	return orderPayload{}
}

type statusResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Order   json.RawMessage `json:"order"`
}

func putStatus(t *testing.T, srv *httptest.Server, token, id, status string) statusResult {
	t.Helper()
	resp, body := doJSON(t, http.MethodPut, srv.URL+"/orders/"+id+"/status", token,
		map[string]string{"status": status})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res statusResult
	require.NoError(t, json.Unmarshal(body, &res))
	return res
}

func TestAcceptPendingOrder(t *testing.T) {
	srv, _, token := newTestServer(t)

	pending := findOrder(t, listTestOrders(t, srv, token), "pending", "delivery", false)
	res := putStatus(t, srv, token, pending.StorageID, "shop_accepted")
	require.True(t, res.Success)

	var updated orderPayload
	require.NoError(t, json.Unmarshal(res.Order, &updated))
	require.Equal(t, "shop_accepted", updated.Status)
}

func TestInvalidTransitionRejected(t *testing.T) {
	srv, _, token := newTestServer(t)

	delivered := findOrder(t, listTestOrders(t, srv, token), "delivered", "delivery", true)
	res := putStatus(t, srv, token, delivered.StorageID, "pending")
	require.False(t, res.Success)
	require.NotEmpty(t, res.Message)
}

func TestSelfPickupRequiresVerifiedCode(t *testing.T) {
	srv, repos, token := newTestServer(t)

	unverified := findOrder(t, listTestOrders(t, srv, token), "shop_preparing", "self_pickup", false)
	res := putStatus(t, srv, token, unverified.StorageID, "delivered")
	require.False(t, res.Success)
	require.Contains(t, res.Message, "pickup code")

	// wrong code is reported with the backend's message verbatim
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/verify-pickup", token,
		map[string]string{"order_id": unverified.OrderID, "otp": "0000"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var verify statusResult
	require.NoError(t, json.Unmarshal(body, &verify))

	owner, err := repos.Owners().GetByEmail(context.Background(), db.DemoEmail)
	require.NoError(t, err)
	stored, err := repos.Orders().GetByID(context.Background(), owner.ID, unverified.StorageID)
	require.NoError(t, err)

	if stored.PickupCode == "0000" {
		require.True(t, verify.Success)
		return
	}
	require.False(t, verify.Success)
	require.Equal(t, "invalid pickup code", verify.Message)

	// correct code flips the tracking flag and unblocks delivery
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/verify-pickup", token,
		map[string]string{"order_id": unverified.OrderID, "otp": stored.PickupCode})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &verify))
	require.True(t, verify.Success)

	res = putStatus(t, srv, token, unverified.StorageID, "delivered")
	require.True(t, res.Success)
}

func TestOrderFetchByEitherIdentifier(t *testing.T) {
	srv, _, token := newTestServer(t)

	orders := listTestOrders(t, srv, token)
	first := orders[0]

	for _, id := range []string{first.StorageID, first.OrderID} {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/orders/"+id, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got orderPayload
		require.NoError(t, json.Unmarshal(body, &got))
		require.Equal(t, first.StorageID, got.StorageID)
	}
}

func TestProductCRUD(t *testing.T) {
	srv, _, token := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/products", token, map[string]any{
		"name": "Espresso cup", "price": 7.5, "stock": 12,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	id := created["id"].(string)
	require.NotEmpty(t, id)

	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/products/"+id, token, map[string]any{
		"name": "Espresso cup", "price": 8.0, "stock": 10,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/products/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/products/"+id, token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
