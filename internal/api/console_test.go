package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backoffice/internal/console"
	"backoffice/internal/database"
	"backoffice/internal/monitoring"
	"backoffice/internal/seed"
)

var now = time.Date(2026, 1, 14, 20, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))

func newTestAPI(t *testing.T) *ConsoleAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := database.NewMemoryStore()
	require.NoError(t, seed.Load(store, seed.Options{RandomSeed: 42, Now: now}, zap.NewNop()))

	svc, err := console.New(store, console.Options{
		Location: now.Location(),
		Clock:    func() time.Time { return now },
		Logger:   zap.NewNop(),
	})
	require.NoError(t, err)
	return NewConsoleAPI(svc, zap.NewNop(), monitoring.NewMonitor())
}

func do(a *ConsoleAPI, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestHealth(t *testing.T) {
	a := newTestAPI(t)
	w := do(a, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	decode(t, w, &response)
	assert.Equal(t, "ok", response["status"])
	assert.Contains(t, response, "uptime_seconds")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestListOutlets(t *testing.T) {
	a := newTestAPI(t)
	w := do(a, "GET", "/api/v1/outlets", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var outlets []map[string]interface{}
	decode(t, w, &outlets)
	require.Len(t, outlets, 3)
	for _, o := range outlets {
		assert.Contains(t, o, "id")
		assert.Contains(t, o, "name")
	}
}

func TestListOrders(t *testing.T) {
	a := newTestAPI(t)

	w := do(a, "GET", "/api/v1/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var all []map[string]interface{}
	decode(t, w, &all)
	assert.Len(t, all, 18)
	assert.Equal(t, "0", w.Header().Get("X-Active-Filters"))

	w = do(a, "GET", "/api/v1/orders?outlet=outlet-2&q=ORD", nil)
	assert.Equal(t, "2", w.Header().Get("X-Active-Filters"))

	w = do(a, "GET", "/api/v1/orders?outlet=outlet-2", nil)
	assert.Equal(t, "1", w.Header().Get("X-Active-Filters"))
	var scoped []map[string]interface{}
	decode(t, w, &scoped)
	assert.Len(t, scoped, 6)
	for _, o := range scoped {
		assert.Equal(t, "outlet-2", o["outlet"])
	}

	w = do(a, "GET", "/api/v1/orders?type=takeaway", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(a, "GET", "/api/v1/orders?bucket=someday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderStatusFlow(t *testing.T) {
	a := newTestAPI(t)
	created := do(a, "POST", "/api/v1/orders", map[string]any{
		"outlet":   "outlet-1",
		"table":    "T-2",
		"customer": "Rahul Sharma",
		"type":     "DINE_IN",
		"items":    []map[string]any{{"name": "Paneer Tikka", "quantity": 2, "price": 240}},
	})
	require.Equal(t, http.StatusCreated, created.Code)
	var order map[string]interface{}
	decode(t, created, &order)
	assert.Equal(t, "ORD-1019", order["id"])
	assert.Equal(t, "pending", order["status"])

	w := do(a, "GET", "/api/v1/orders/ORD-1019/transitions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var tr map[string]interface{}
	decode(t, w, &tr)
	assert.Equal(t, []interface{}{"accepted", "cancelled"}, tr["allowed"])

	w = do(a, "PATCH", "/api/v1/orders/ORD-1019/status", map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(a, "PATCH", "/api/v1/orders/ORD-1019/status", map[string]string{"status": "delivered"})
	assert.Equal(t, http.StatusConflict, w.Code)
	var conflict map[string]interface{}
	decode(t, w, &conflict)
	assert.Equal(t, "accepted", conflict["from"])
	assert.Equal(t, "delivered", conflict["to"])
	assert.Equal(t, []interface{}{"preparing", "cancelled"}, conflict["allowed"])

	w = do(a, "PATCH", "/api/v1/orders/ORD-1019/status", map[string]string{"status": "teleported"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(a, "PATCH", "/api/v1/orders/ORD-1019/status", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(a, "GET", "/api/v1/orders/ORD-1019/bill", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var bill map[string]interface{}
	decode(t, w, &bill)
	assert.Equal(t, 480.0, bill["subtotal"])
	assert.Equal(t, 24.0, bill["tax"])
	assert.Equal(t, 504.0, bill["total"])
}

func TestCreateOrderValidation(t *testing.T) {
	a := newTestAPI(t)
	w := do(a, "POST", "/api/v1/orders", map[string]any{
		"outlet":   "outlet-7",
		"customer": "X",
		"type":     "PACK",
		"items":    []map[string]any{{"name": "Fries", "quantity": 1, "price": 80}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	decode(t, w, &body)
	assert.Equal(t, "outlet", body["field"])
}

func TestNotFound(t *testing.T) {
	a := newTestAPI(t)
	for _, path := range []string{
		"/api/v1/orders/ORD-1",
		"/api/v1/orders/ORD-1/bill",
		"/api/v1/reservations/RSV-1",
		"/api/v1/customers/CUST-nobody",
	} {
		w := do(a, "GET", path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
	w := do(a, "POST", "/api/v1/reservations/RSV-1/confirm", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservationActions(t *testing.T) {
	a := newTestAPI(t)

	w := do(a, "POST", "/api/v1/reservations/RSV-1002/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var r map[string]interface{}
	decode(t, w, &r)
	assert.Equal(t, "CONFIRMED", r["status"])

	w = do(a, "POST", "/api/v1/reservations/RSV-1002/confirm", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	var conflict map[string]interface{}
	decode(t, w, &conflict)
	assert.Equal(t, "CONFIRMED", conflict["from"])
	assert.Equal(t, []interface{}{"SEATED", "CANCELLED"}, conflict["allowed"])

	w = do(a, "POST", "/api/v1/reservations/RSV-1002/seat", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(a, "POST", "/api/v1/reservations/RSV-1004/cancel", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(a, "GET", "/api/v1/reservations/counts", nil)
	var counts map[string]float64
	decode(t, w, &counts)
	assert.Equal(t, 1.0, counts["PENDING"])
	assert.Equal(t, 2.0, counts["SEATED"])
}

func TestListReservations(t *testing.T) {
	a := newTestAPI(t)

	w := do(a, "GET", "/api/v1/reservations?bucket=today&slot=dinner", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rs []map[string]interface{}
	decode(t, w, &rs)
	ids := make([]string, len(rs))
	for i, r := range rs {
		ids[i] = r["id"].(string)
	}
	assert.Equal(t, []string{"RSV-1002", "RSV-1003"}, ids)

	w = do(a, "GET", "/api/v1/reservations?status=waiting", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(a, "GET", "/api/v1/reservations?slot=brunch", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReservation(t *testing.T) {
	a := newTestAPI(t)
	w := do(a, "POST", "/api/v1/reservations", map[string]any{
		"customerName": "Kabir Rao",
		"guests":       2,
		"date":         "2026-01-18",
		"time":         "08:15 PM",
		"phone":        "",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var r map[string]interface{}
	decode(t, w, &r)
	assert.Equal(t, "RSV-1008", r["id"])
	assert.Equal(t, "PENDING", r["status"])
	assert.NotContains(t, r, "phone")

	w = do(a, "POST", "/api/v1/reservations", map[string]any{"customerName": "K", "guests": 2, "date": "2026-01-18", "time": "08:15 PM"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(a, "POST", "/api/v1/reservations", "not an object")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportReservations(t *testing.T) {
	a := newTestAPI(t)

	w := do(a, "GET", "/api/v1/reservations/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="reservations_2026-01-14_20-00.csv"`, w.Header().Get("Content-Disposition"))

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 8)
	assert.Equal(t, "Reservation ID", records[0][0])

	w = do(a, "GET", "/api/v1/reservations/export?q=nobody-at-all", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestExportOrdersAndCustomers(t *testing.T) {
	a := newTestAPI(t)

	w := do(a, "GET", "/api/v1/orders/export?outlet=outlet-3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 7)

	w = do(a, "GET", "/api/v1/customers/export?sort=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomersAndDashboard(t *testing.T) {
	a := newTestAPI(t)

	w := do(a, "GET", "/api/v1/customers?sort=most_spent", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var customers []map[string]interface{}
	decode(t, w, &customers)
	for i := 1; i < len(customers); i++ {
		assert.GreaterOrEqual(t, customers[i-1]["totalSpent"].(float64), customers[i]["totalSpent"].(float64))
	}
	for _, c := range customers {
		assert.GreaterOrEqual(t, c["totalOrders"].(float64), 2.0)
	}

	w = do(a, "GET", "/api/v1/customers/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary map[string]interface{}
	decode(t, w, &summary)
	assert.Equal(t, float64(len(customers)), summary["loyalCount"])

	w = do(a, "GET", "/api/v1/dashboard?outlet=outlet-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var d map[string]interface{}
	decode(t, w, &d)
	assert.Equal(t, 6.0, d["orders"])
	assert.Len(t, d["typeSplit"], 3)
}
