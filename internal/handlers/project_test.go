package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	_, aliceToken := env.newUser(t, "alice")
	_, bobToken := env.newUser(t, "bob")

	categories := []string{"FinTech", "AI", "DevTools"}
	rec := env.do(t, "POST", "/projects/create", aliceToken, map[string]interface{}{
		"title":      "Budget Buddy",
		"teaser":     "personal finance for students",
		"categories": categories,
		"status":     "seeking_help",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["ok"])

	// An eligible viewer sees exactly what was submitted, category order
	// included.
	rec = env.do(t, "GET", "/feed", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeBody(t, rec)["items"].([]interface{})
	require.Len(t, items, 1)

	got := items[0].(map[string]interface{})
	assert.Equal(t, "Budget Buddy", got["title"])
	assert.Equal(t, "personal finance for students", got["teaser"])
	assert.Equal(t, "seeking_help", got["status"])
	assert.Equal(t, "alice", got["owner"].(map[string]interface{})["name"])

	gotCategories := got["categories"].([]interface{})
	require.Len(t, gotCategories, len(categories))
	for i, c := range categories {
		assert.Equal(t, c, gotCategories[i])
	}

	// And the same shape through the likes endpoint.
	rec = env.do(t, "POST", "/swipes", bobToken, map[string]string{
		"projectId": got["id"].(string), "direction": "like",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, "GET", "/likes", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	liked := decodeBody(t, rec)["items"].([]interface{})
	require.Len(t, liked, 1)
	likedItem := liked[0].(map[string]interface{})
	assert.Equal(t, "Budget Buddy", likedItem["title"])
	assert.NotEmpty(t, likedItem["liked_at"])
}

func TestCreateProjectValidation(t *testing.T) {
	env := newTestEnv(t)

	_, token := env.newUser(t, "alice")

	rec := env.do(t, "POST", "/projects/create", token, map[string]interface{}{
		"title": "No Status", "categories": []string{"AI"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, "POST", "/projects/create", token, map[string]interface{}{
		"title": "Bad Status", "categories": []string{"AI"}, "status": "in_arbeit",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, "POST", "/projects/create", "", map[string]interface{}{
		"title": "Anonymous", "categories": []string{"AI"}, "status": "open",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFeedExcludesOwnAndPaginatesWithoutDuplicates(t *testing.T) {
	env := newTestEnv(t)

	aliceID, aliceToken := env.newUser(t, "alice")
	bobID, _ := env.newUser(t, "bob")

	env.newProject(t, aliceID, "Mine", time.Now())
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		env.newProject(t, bobID, fmt.Sprintf("Bob %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	seen := map[string]bool{}
	for offset := 0; offset < 6; offset += 2 {
		rec := env.do(t, "GET", fmt.Sprintf("/feed?limit=2&offset=%d", offset), aliceToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		for _, raw := range decodeBody(t, rec)["items"].([]interface{}) {
			item := raw.(map[string]interface{})
			id := item["id"].(string)
			assert.False(t, seen[id], "project %s appeared twice across pages", id)
			seen[id] = true
			assert.NotEqual(t, "Mine", item["title"])
		}
	}

	assert.Len(t, seen, 5)
}
