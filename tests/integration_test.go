package test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain sets up the test environment
func TestMain(m *testing.M) {
	TestSetup(m)
}

func TestDemoLifecycle(t *testing.T) {
	server := newDemoServer(t)

	demoID := createDemo(t, server, "Lifecycle Demo")

	t.Run("read after create", func(t *testing.T) {
		status, body := request(t, server, http.MethodGet, "/demo/read/"+demoID+"/", nil, "")
		require.Equal(t, http.StatusOK, status)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "Lifecycle Demo", data["name"])
		assert.Equal(t, "created", data["status"])
		assert.Equal(t, true, data["is_active"])
	})

	t.Run("status update", func(t *testing.T) {
		body, contentType := jsonBody(`{"status":"updating"}`)
		status, decoded := request(t, server, http.MethodPatch, "/demo/update/status/"+demoID+"/", body, contentType)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "updating", decoded["data"].(map[string]interface{})["status"])
	})

	t.Run("is_active toggle", func(t *testing.T) {
		body, contentType := jsonBody(`{"is_active":false}`)
		status, decoded := request(t, server, http.MethodPatch, "/demo/update/is-active/"+demoID+"/", body, contentType)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, false, decoded["data"].(map[string]interface{})["is_active"])
	})

	t.Run("soft delete then read is 404", func(t *testing.T) {
		status, decoded := request(t, server, http.MethodDelete, "/demo/delete/"+demoID+"/", nil, "")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, decoded["success"])

		status, decoded = request(t, server, http.MethodGet, "/demo/read/"+demoID+"/", nil, "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, false, decoded["success"])

		// And the deleted row is gone from lists too.
		body, data := listDemos(t, server, "")
		assert.Empty(t, data)
		assert.Equal(t, float64(0), body["pagination"].(map[string]interface{})["total_count"])
	})
}

func TestDemoLogoFlow(t *testing.T) {
	server := newDemoServer(t)

	demoID, logo := createDemoWithLogo(t, server, "Logo Demo")
	require.NotEmpty(t, logo)
	assert.Contains(t, logo, "/media/logo/demo_"+demoID)

	// The stored file is served statically.
	resp, err := http.Get(server.URL + logo)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListFilterEngine(t *testing.T) {
	server := newDemoServer(t)

	createDemo(t, server, "Alpha Widget")
	createDemo(t, server, "Beta Widget")
	gadgetID := createDemo(t, server, "Gamma Gadget")

	body, contentType := jsonBody(`{"is_active":false}`)
	status, _ := request(t, server, http.MethodPatch, "/demo/update/is-active/"+gadgetID+"/", body, contentType)
	require.Equal(t, http.StatusOK, status)

	filterQuery := func(filters string) string {
		return "filters=" + url.QueryEscape(filters)
	}

	t.Run("text filter", func(t *testing.T) {
		_, data := listDemos(t, server, filterQuery(`[{"column":"name","operator":"contains","value":"widget"}]`))
		assert.Len(t, data, 2)
	})

	t.Run("boolean filter", func(t *testing.T) {
		_, data := listDemos(t, server, filterQuery(`[{"column":"is_active","operator":"is","value":false}]`))
		require.Len(t, data, 1)
		assert.Equal(t, "Gamma Gadget", data[0].(map[string]interface{})["name"])
	})

	t.Run("or logic across rules", func(t *testing.T) {
		_, data := listDemos(t, server, filterQuery(
			`{"Filters":[{"column":"name","operator":"starts_with","value":"alpha"},{"column":"name","operator":"starts_with","value":"gamma"}],"logic":"OR"}`))
		assert.Len(t, data, 2)
	})

	t.Run("malformed filters matches no-filters", func(t *testing.T) {
		bodyAll, all := listDemos(t, server, "")
		bodyBroken, broken := listDemos(t, server, filterQuery(`[{"column": broken json`))
		assert.Equal(t, len(all), len(broken))
		assert.Equal(t,
			bodyAll["pagination"].(map[string]interface{})["total_count"],
			bodyBroken["pagination"].(map[string]interface{})["total_count"])
	})

	t.Run("nonexistent column is ignored", func(t *testing.T) {
		_, data := listDemos(t, server, filterQuery(`[{"column":"favorite_color","operator":"is","value":"red"}]`))
		assert.Len(t, data, 3)
	})

	t.Run("free text search", func(t *testing.T) {
		_, data := listDemos(t, server, "search=gadget")
		require.Len(t, data, 1)
		assert.Equal(t, "Gamma Gadget", data[0].(map[string]interface{})["name"])
	})

	t.Run("date window includes fresh rows", func(t *testing.T) {
		_, data := listDemos(t, server, filterQuery(`[{"column":"created_at","operator":"today"}]`))
		assert.Len(t, data, 3)
	})
}

func TestListPaginationInvariants(t *testing.T) {
	server := newDemoServer(t)

	for i := 0; i < 12; i++ {
		createDemo(t, server, fmt.Sprintf("Paged %02d", i))
	}

	seen := map[string]bool{}
	for offset := 0; offset < 12; offset += 5 {
		body, data := listDemos(t, server, fmt.Sprintf("limit=5&offset=%d&order_by=name", offset))
		pagination := body["pagination"].(map[string]interface{})
		assert.Equal(t, float64(12), pagination["total_count"])
		assert.Equal(t, float64(3), pagination["total_pages"])
		assert.Equal(t, float64(offset), pagination["offset"])

		for _, item := range data {
			id := item.(map[string]interface{})["demo_id"].(string)
			assert.False(t, seen[id], "row %s served twice", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, 12)
}

func TestUpdateDemoName(t *testing.T) {
	server := newDemoServer(t)
	demoID := createDemo(t, server, "Original Name")

	payload := multipartFields(t, map[string]string{"name": "Renamed"})
	status, body := request(t, server, http.MethodPatch, "/demo/update/"+demoID+"/", payload.reader, payload.contentType)
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Renamed", data["name"])
	assert.Equal(t, "updated", data["status"])
	assert.Equal(t, testUserID, data["updated_by"])
}
