package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bitechdev/DemoManage/pkg/api"
	"github.com/bitechdev/DemoManage/pkg/common/adapters/database"
	"github.com/bitechdev/DemoManage/pkg/logger"
	"github.com/bitechdev/DemoManage/pkg/media"
	"github.com/bitechdev/DemoManage/pkg/models"
	"github.com/bitechdev/DemoManage/pkg/repository"
	"github.com/bitechdev/DemoManage/pkg/service"
)

const basePath = "/demo-management/api/v1"

// testUserID is the acting user for all integration requests.
var testUserID = uuid.NewString()

// TestSetup initializes logging for the suite.
func TestSetup(m *testing.M) {
	logger.Init(true)
	os.Exit(m.Run())
}

// newDemoServer builds the full stack on in-memory sqlite and a
// throwaway media directory.
func newDemoServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Demo{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mediaRoot := t.TempDir()
	store, err := media.NewLogoStore(mediaRoot, "logo")
	if err != nil {
		t.Fatalf("media store: %v", err)
	}

	repo := repository.NewDemoRepository(database.NewGormAdapter(db))
	handler := api.NewHandler(service.NewDemoService(repo, store))
	server := httptest.NewServer(api.NewRouter(handler, mediaRoot))
	t.Cleanup(server.Close)
	return server
}

// request sends one HTTP request with the standard headers and decodes
// the JSON response body.
func request(t *testing.T, server *httptest.Server, method, path string, body io.Reader, contentType string) (int, map[string]interface{}) {
	t.Helper()

	req, err := http.NewRequest(method, server.URL+basePath+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("user-id", testUserID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, decoded
}

func jsonBody(payload string) (io.Reader, string) {
	return bytes.NewReader([]byte(payload)), "application/json"
}

// createDemo creates one demo through the API and returns its ID.
func createDemo(t *testing.T, server *httptest.Server, name string) string {
	t.Helper()

	payload := multipartFields(t, map[string]string{"name": name})
	status, body := request(t, server, http.MethodPost, "/demo/create/", payload.reader, payload.contentType)
	if status != http.StatusCreated {
		t.Fatalf("create demo %q: status %d body %v", name, status, body)
	}
	return body["data"].(map[string]interface{})["demo_id"].(string)
}

// createDemoWithLogo creates a demo with a small generated PNG logo.
func createDemoWithLogo(t *testing.T, server *httptest.Server, name string) (string, string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 50, B: 50, A: 255})
		}
	}
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("name", name); err != nil {
		t.Fatalf("write field: %v", err)
	}
	part, err := writer.CreateFormFile("logo", "logo.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(pngBuf.Bytes()); err != nil {
		t.Fatalf("write logo: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	status, body := request(t, server, http.MethodPost, "/demo/create/", &buf, writer.FormDataContentType())
	if status != http.StatusCreated {
		t.Fatalf("create demo with logo: status %d body %v", status, body)
	}
	data := body["data"].(map[string]interface{})
	logo, _ := data["logo"].(string)
	return data["demo_id"].(string), logo
}

type multipartPayload struct {
	reader      io.Reader
	contentType string
}

// multipartFields builds a multipart form body from plain fields.
func multipartFields(t *testing.T, fields map[string]string) multipartPayload {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return multipartPayload{reader: &buf, contentType: writer.FormDataContentType()}
}

// listDemos runs the list endpoint with a raw query string.
func listDemos(t *testing.T, server *httptest.Server, query string) (map[string]interface{}, []interface{}) {
	t.Helper()
	path := "/demos/"
	if query != "" {
		path = fmt.Sprintf("/demos/?%s", query)
	}
	status, body := request(t, server, http.MethodGet, path, nil, "")
	if status != http.StatusOK {
		t.Fatalf("list demos: status %d body %v", status, body)
	}
	return body, body["data"].([]interface{})
}
