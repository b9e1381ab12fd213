package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) webhook(t *testing.T, secret string, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/subscription/webhook", strings.NewReader(
		`{"sessionId":"`+body["sessionId"]+`","status":"`+body["status"]+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", secret)
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestSubscriptionLifecycle(t *testing.T) {
	env := newTestEnv(t)

	_, token := env.newUser(t, "alice")

	rec := env.do(t, "GET", "/subscription/plans", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	plans := decodeBody(t, rec)["plans"].([]interface{})
	require.Len(t, plans, 2)

	rec = env.do(t, "GET", "/subscription/status", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["isActive"])

	// Open a checkout session.
	rec = env.do(t, "POST", "/subscription/checkout", token, map[string]string{"priceId": "price_m"})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	sessionID := body["sessionId"].(string)
	require.NotEmpty(t, sessionID)
	assert.Contains(t, body["url"], sessionID)

	// Pending sessions do not activate anything.
	rec = env.do(t, "GET", "/subscription/status", token, nil)
	assert.Equal(t, false, decodeBody(t, rec)["isActive"])

	// The provider settles the session through the webhook.
	wrec := env.webhook(t, "wrong-secret", map[string]string{"sessionId": sessionID, "status": "completed"})
	assert.Equal(t, http.StatusUnauthorized, wrec.Code)

	wrec = env.webhook(t, webhookSecret, map[string]string{"sessionId": sessionID, "status": "completed"})
	require.Equal(t, http.StatusOK, wrec.Code)

	rec = env.do(t, "GET", "/subscription/status", token, nil)
	status := decodeBody(t, rec)
	assert.Equal(t, true, status["isActive"])
	assert.Equal(t, "premium_monthly", status["planId"])
}

func TestPremiumLiftsQuota(t *testing.T) {
	env := newTestEnv(t)

	_, aliceToken := env.newUser(t, "alice")
	bobID, _ := env.newUser(t, "bob")

	rec := env.do(t, "POST", "/subscription/checkout", aliceToken, map[string]string{"priceId": "price_y"})
	require.Equal(t, http.StatusCreated, rec.Code)
	sessionID := decodeBody(t, rec)["sessionId"].(string)
	wrec := env.webhook(t, webhookSecret, map[string]string{"sessionId": sessionID, "status": "completed"})
	require.Equal(t, http.StatusOK, wrec.Code)

	// Well past the free cap, swipes keep landing.
	for i := 0; i < 15; i++ {
		project := env.newProject(t, bobID, "Project", time.Now())
		rec := env.do(t, "POST", "/swipes", aliceToken, map[string]string{
			"projectId": project.ID.String(), "direction": "skip",
		})
		require.Equal(t, http.StatusCreated, rec.Code, "swipe %d", i+1)
	}
}

func TestUnknownPriceRejected(t *testing.T) {
	env := newTestEnv(t)

	_, token := env.newUser(t, "alice")

	rec := env.do(t, "POST", "/subscription/checkout", token, map[string]string{"priceId": "price_bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
