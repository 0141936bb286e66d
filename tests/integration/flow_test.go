//go:build integration
// +build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "http://localhost:8080/api"

// TestCitizenReportFlow walks the happy path: a citizen registers,
// reports an issue, and sees it in their list. Requires the API server
// and its backing services to be running.
func TestCitizenReportFlow(t *testing.T) {
	client := &http.Client{}
	var accessToken string

	t.Run("Register", func(t *testing.T) {
		payload := map[string]interface{}{
			"first_name":       "Jane",
			"last_name":        "Moraa",
			"email":            "jane.moraa@example.com",
			"phone":            "0712345678",
			"password":         "password123",
			"confirm_password": "password123",
		}
		body, _ := json.Marshal(payload)
		resp, err := client.Post(baseURL+"/auth/register", "application/json", bytes.NewBuffer(body))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var result map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		accessToken, _ = result["access_token"].(string)
		require.NotEmpty(t, accessToken)
	})

	var issueID string

	t.Run("Report issue", func(t *testing.T) {
		payload := map[string]interface{}{
			"title":       "Burst water pipe",
			"description": "Water flooding the street near the market",
			"category":    "water",
			"longitude":   34.77,
			"latitude":    -0.68,
			"address":     "Market Road, Kisii",
		}
		body, _ := json.Marshal(payload)
		req, _ := http.NewRequest(http.MethodPost, baseURL+"/issues", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+accessToken)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var result map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		issue, _ := result["issue"].(map[string]interface{})
		require.NotNil(t, issue)
		issueID, _ = issue["id"].(string)
		require.NotEmpty(t, issueID)

		// Departments are seeded on boot, so water reports route to
		// Water & Sanitation even with no officers registered.
		status, _ := issue["status"].(string)
		assert.Contains(t, []string{"pending", "assigned"}, status)
	})

	t.Run("My issues", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, baseURL+"/issues/user/my-issues", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		issues, _ := result["issues"].([]interface{})
		assert.Len(t, issues, 1)
	})

	t.Run("Officer routes are forbidden", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, baseURL+"/issues/officer/assigned", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
