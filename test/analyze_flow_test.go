package test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtse/marketing-engine/internal/auth"
	"github.com/mtse/marketing-engine/internal/config"
	"github.com/mtse/marketing-engine/internal/fetch"
	"github.com/mtse/marketing-engine/internal/httpx"
	"github.com/mtse/marketing-engine/internal/quota"
	"github.com/mtse/marketing-engine/internal/store"
)

const campaignCSV = "Ad Name,Impressions,Clicks,Amount_Spent,Sales\n" +
	"Spring Promo,1000,50,100,50\n" +
	"Summer Promo,1000,80,100,300\n"

func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{MaxUploadBytes: 1 << 20, PlatformName: "MTSE Analytics"}
	users := store.NewMemoryStore()
	authSvc := auth.NewService(users)
	meter := quota.NewMeter(users, prometheus.NewRegistry())
	client := fetch.NewHTTPClient(2 * time.Second)
	srv := httptest.NewServer(httpx.NewRouter(logger, cfg, users, authSvc, meter, client, prometheus.NewRegistry()))
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, base string) string {
	t.Helper()
	creds := `{"username":"alice","password":"pw"}`
	resp, err := http.Post(base+"/auth/register", "application/json", strings.NewReader(creds))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Post(base+"/auth/login", "application/json", strings.NewReader(creds))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out["token"]
}

func postMultipart(t *testing.T, url, token string, fields map[string]string, filename, content string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = io.Copy(fw, strings.NewReader(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestUploadAnalyzeReportFlow(t *testing.T) {
	srv := startServer(t)
	token := login(t, srv.URL)

	// analyze
	resp := postMultipart(t, srv.URL+"/analyze", token, nil, "q3.csv", campaignCSV)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Analysis struct {
			Classification  string   `json:"classification"`
			Recommendations []string `json:"recommendations"`
		} `json:"analysis"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "paid_ads", out.Analysis.Classification)
	assert.NotEmpty(t, out.Analysis.Recommendations)

	// pdf report
	resp = postMultipart(t, srv.URL+"/reports/pdf", token, nil, "q3.csv", campaignCSV)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	pdfBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))

	// csv re-export
	resp = postMultipart(t, srv.URL+"/reports/csv", token, nil, "q3.csv", campaignCSV)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "roas")
}

func TestAnalyzeByRemoteURL(t *testing.T) {
	fileSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(campaignCSV))
	}))
	defer fileSrv.Close()

	srv := startServer(t)
	token := login(t, srv.URL)

	resp := postMultipart(t, srv.URL+"/analyze", token, map[string]string{"url": fileSrv.URL + "/q3.csv"}, "", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Type string `json:"type"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "table", out.Type)
}
