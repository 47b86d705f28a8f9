package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HadleysDad/loot-api/internal/config"
)

const baseTable = `{
	"weapons": {
		"sword": {
			"Common": [
				{"name": "Rusty Sword", "rarity": "Common", "type": "sword", "drop": {"weight": 70}, "tags": ["melee", "starter"], "stats": {"attack": 10}},
				{"name": "Short Sword", "rarity": "Common", "type": "sword", "drop": {"weight": 50}, "tags": ["melee"], "stats": {"attack": 12}}
			],
			"Rare": [
				{"name": "Knight Sword", "rarity": "Rare", "type": "sword", "drop": {"weight": 20}, "tags": ["melee"], "stats": {"attack": 25}}
			],
			"Legendary": [
				{"name": "Dragonfang", "rarity": "Legendary", "type": "sword", "drop": {"weight": 2}, "tags": ["melee", "flaming"], "stats": {"attack": 60}}
			]
		}
	},
	"armor": {
		"shield": {
			"Common": [
				{"name": "Wooden Shield", "rarity": "Common", "type": "shield", "drop": {"weight": 40}, "tags": ["defense"], "stats": {"armor": 5}}
			]
		}
	}
}`

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	path := filepath.Join(t.TempDir(), "loot_table.json")
	require.NoError(t, os.WriteFile(path, []byte(baseTable), 0o644))

	cfg := config.Default()
	cfg.Server.MaxSimulations = 50000

	h, err := NewHandler(Options{
		Config:    cfg,
		TablePath: path,
		Logger:    log.New(io.Discard, "", 0),
	})
	require.NoError(t, err)
	return h
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func TestNewHandlerRequiresConfig(t *testing.T) {
	_, err := NewHandler(Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config is required")
}

func TestNewHandlerRejectsInvalidBaseTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	broken := `{"weapons": {"sword": {"Common": [{"name": "Nameless", "rarity": "Rare", "type": "sword", "drop": {"weight": 1}}]}}}`
	require.NoError(t, os.WriteFile(path, []byte(broken), 0o644))

	_, err := NewHandler(Options{
		Config:    config.Default(),
		TablePath: path,
		Logger:    log.New(io.Discard, "", 0),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation errors")
}

func TestHealthAndReadiness(t *testing.T) {
	h := newTestHandler(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, h, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code, "%s body: %s", path, rec.Body.String())

		body := decodeMap(t, rec)
		assert.Equal(t, true, body["ok"])
		assert.Equal(t, "loot-api", body["service"])
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"), "%s should carry a request id", path)
	}
}

func TestGetTable(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/loot/table", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeMap(t, rec)
	require.Contains(t, body, "loot_table")
	validation := body["validation"].(map[string]any)
	assert.Equal(t, true, validation["valid"])
}

func TestListItemsFilters(t *testing.T) {
	h := newTestHandler(t)

	cases := []struct {
		query string
		want  int
	}{
		{"", 5},
		{"?rarity=Common", 3},
		{"?category=armor", 1},
		{"?tag=melee", 4},
		{"?tags=melee,flaming", 1},
		{"?category=weapons&rarity=Common&tag=starter", 1},
		{"?rarity=Mythic", 0},
	}
	for _, tc := range cases {
		rec := doJSON(t, h, http.MethodGet, "/api/loot/items"+tc.query, nil)
		require.Equal(t, http.StatusOK, rec.Code, "query %q", tc.query)

		body := decodeMap(t, rec)
		assert.EqualValues(t, tc.want, body["count"], "query %q", tc.query)
		assert.NotNil(t, body["items"], "items must be a list even when empty, query %q", tc.query)
	}
}

func TestValidateEndpoint(t *testing.T) {
	h := newTestHandler(t)

	t.Run("posted broken table", func(t *testing.T) {
		broken := map[string]any{
			"weapons": map[string]any{
				"sword": map[string]any{
					"Common": []any{
						map[string]any{"name": "Cursed", "rarity": "Rare", "type": "sword", "drop": map[string]any{"weight": 0}},
					},
				},
			},
		}
		rec := doJSON(t, h, http.MethodPost, "/api/loot/validate", broken)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeMap(t, rec)
		assert.Equal(t, false, body["valid"])
		assert.NotEmpty(t, body["errors"])
	})

	t.Run("empty body validates the base table", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/loot/validate", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeMap(t, rec)
		assert.Equal(t, true, body["valid"])
	})
}

func TestPreviewRejectsUnknownProfile(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/loot/autocorrect/preview", map[string]any{"profile": "yolo"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeMap(t, rec)
	assert.Contains(t, body["error"], "yolo")
}

func TestPreviewDefaultsToSafeProfile(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/loot/autocorrect/preview", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeMap(t, rec)
	assert.Equal(t, "safe", body["profile"])
}

func TestApplyRefusesNonSafeProfiles(t *testing.T) {
	h := newTestHandler(t)

	for _, profile := range []string{"aggressive", "strict"} {
		rec := doJSON(t, h, http.MethodPost, "/api/loot/autocorrect/apply", map[string]any{"profile": profile})
		require.Equal(t, http.StatusBadRequest, rec.Code, "profile %q", profile)

		body := decodeMap(t, rec)
		assert.Contains(t, body["error"], "safe", "profile %q", profile)
	}
}

func TestApplyFixesPostedTable(t *testing.T) {
	h := newTestHandler(t)

	posted := map[string]any{
		"loot_table": map[string]any{
			"weapons": map[string]any{
				"sword": map[string]any{
					"Common": []any{
						map[string]any{"name": "Broken", "rarity": "Common", "type": "sword", "drop": map[string]any{"weight": 0}, "tags": []any{}},
						map[string]any{"name": "Bare", "rarity": "Common", "type": "sword", "drop": map[string]any{"weight": 3}},
					},
				},
			},
		},
		"profile": "safe",
	}
	rec := doJSON(t, h, http.MethodPost, "/api/loot/autocorrect/apply", posted)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	body := decodeMap(t, rec)
	assert.Equal(t, "safe", body["profile"])
	assert.EqualValues(t, 2, body["applied"])

	fixed := body["loot_table"].(map[string]any)
	common := fixed["weapons"].(map[string]any)["sword"].(map[string]any)["Common"].([]any)
	first := common[0].(map[string]any)
	weight := first["drop"].(map[string]any)["weight"]
	assert.EqualValues(t, 1, weight)

	second := common[1].(map[string]any)
	assert.Equal(t, []any{}, second["tags"])

	validation := body["validation"].(map[string]any)
	assert.Equal(t, true, validation["valid"])
}

func TestProfilesEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/loot/autocorrect/profiles", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeMap(t, rec)
	require.Len(t, body, 3)

	safe := body["safe"].(map[string]any)
	assert.Equal(t, true, safe["apply"])
	aggressive := body["aggressive"].(map[string]any)
	assert.Equal(t, false, aggressive["apply"])
}

func TestDropIsSeedDeterministic(t *testing.T) {
	h := newTestHandler(t)

	first := doJSON(t, h, http.MethodPost, "/api/loot/drop", map[string]any{"seed": 42})
	require.Equal(t, http.StatusOK, first.Code, "body: %s", first.Body.String())
	second := doJSON(t, h, http.MethodPost, "/api/loot/drop", map[string]any{"seed": 42})
	require.Equal(t, http.StatusOK, second.Code)

	a, b := decodeMap(t, first), decodeMap(t, second)
	assert.Equal(t, a["item"], b["item"])
	assert.EqualValues(t, 42, a["seed"])

	prob, ok := a["probability"].(float64)
	require.True(t, ok)
	assert.Greater(t, prob, 0.0)
	assert.LessOrEqual(t, prob, 100.0)
}

func TestDropGeneratesSeedWhenOmitted(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/loot/drop", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeMap(t, rec)
	require.Contains(t, body, "seed")
	assert.NotNil(t, body["item"])
}

func TestDropEmptyPool(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/loot/drop", map[string]any{"rarity": "Epic"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeMap(t, rec)
	assert.Contains(t, body["error"], "empty")
}

func TestDropRejectsOutOfRangeLuck(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/loot/drop", map[string]any{"luck": 2.0})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeMap(t, rec)
	assert.Contains(t, body["error"], "luck")
}

func TestSimulateDefaults(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/simulate", map[string]any{"seed": 7})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	body := decodeMap(t, rec)
	assert.EqualValues(t, 1000, body["simulations"])

	results := body["results"].(map[string]any)
	assert.EqualValues(t, 1000, results["draws"])
}

func TestSimulateEnforcesCap(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/simulate", map[string]any{"simulations": 60000})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeMap(t, rec)
	assert.Contains(t, body["error"], "maximum")
}

func TestSimulateRejectsInvalidPostedTable(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/simulate", map[string]any{
		"loot_table": map[string]any{
			"weapons": map[string]any{
				"sword": map[string]any{
					"Common": []any{
						map[string]any{"name": "Nameless", "rarity": "Rare", "type": "sword", "drop": map[string]any{"weight": 1}},
					},
				},
			},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeMap(t, rec)
	assert.Contains(t, body["error"], "validation")
	require.Contains(t, body, "validation")
}

func TestSimulateLuckEchoesLuck(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/simulate/luck", map[string]any{
		"simulations": 500,
		"seed":        3,
		"luck":        1.0,
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	body := decodeMap(t, rec)
	assert.EqualValues(t, 1.0, body["luck"])

	results := body["results"].(map[string]any)
	assert.EqualValues(t, 500, results["draws"])
}

func TestCompareReportsDeltas(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/simulate/compare", map[string]any{
		"simulations": 2000,
		"seed":        9,
		"luck":        1.0,
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	body := decodeMap(t, rec)
	comparison := body["comparison"].(map[string]any)
	assert.EqualValues(t, 2000, comparison["draws"])
	assert.EqualValues(t, 1.0, comparison["luck"])
	require.Contains(t, comparison, "rarity_delta")
	require.Contains(t, comparison, "base")
	require.Contains(t, comparison, "with_luck")
}

func TestBalanceReport(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/balance/report", map[string]any{
		"simulations": 1000,
		"seed":        1,
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	body := decodeMap(t, rec)
	assert.EqualValues(t, 1000, body["simulations"])

	report := body["report"].(map[string]any)
	assert.EqualValues(t, 1000, report["draws"])

	findings := body["findings"].(map[string]any)
	assert.Equal(t, "aggressive", findings["profile"])
}

func TestReweightRequiresTargets(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/balance/reweight", map[string]any{"simulations": 100})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeMap(t, rec)
	assert.Contains(t, body["error"], "target_rarity")
}

func TestReweightSuggestsMultipliers(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/balance/reweight", map[string]any{
		"simulations": 2000,
		"seed":        5,
		"target_rarity": map[string]any{
			"Common": 50, "Rare": 30, "Legendary": 20,
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	body := decodeMap(t, rec)
	multipliers := body["multipliers"].(map[string]any)
	assert.NotEmpty(t, multipliers)
	require.Contains(t, body, "observed")
}

func TestExportAppliesMultipliers(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/balance/export", map[string]any{
		"multipliers": map[string]any{"Common": 2.0},
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	body := decodeMap(t, rec)
	fixed := body["loot_table"].(map[string]any)
	common := fixed["weapons"].(map[string]any)["sword"].(map[string]any)["Common"].([]any)
	first := common[0].(map[string]any)
	weight := first["drop"].(map[string]any)["weight"]
	assert.EqualValues(t, 140, weight)

	validation := body["validation"].(map[string]any)
	assert.Equal(t, true, validation["valid"])
}

func TestExportRequiresMultipliers(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/balance/export", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeMap(t, rec)
	assert.Contains(t, body["error"], "multipliers")
}

func TestExportLeavesBaseTableAlone(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/balance/export", map[string]any{
		"multipliers": map[string]any{"Common": 10.0},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	after := doJSON(t, h, http.MethodGet, "/api/loot/table", nil)
	require.Equal(t, http.StatusOK, after.Code)

	body := decodeMap(t, after)
	base := body["loot_table"].(map[string]any)
	common := base["weapons"].(map[string]any)["sword"].(map[string]any)["Common"].([]any)
	first := common[0].(map[string]any)
	weight := first["drop"].(map[string]any)["weight"]
	assert.EqualValues(t, 70, weight)
}

func TestAdminRoutesPage(t *testing.T) {
	h := newTestHandler(t)

	jsonRec := doJSON(t, h, http.MethodGet, "/_/admin/routes.json", nil)
	require.Equal(t, http.StatusOK, jsonRec.Code)

	var routes []map[string]any
	require.NoError(t, json.Unmarshal(jsonRec.Body.Bytes(), &routes))
	assert.GreaterOrEqual(t, len(routes), 14)

	htmlRec := doJSON(t, h, http.MethodGet, "/_/admin", nil)
	require.Equal(t, http.StatusOK, htmlRec.Code)
	assert.Contains(t, htmlRec.Body.String(), "/api/loot/drop")
}
