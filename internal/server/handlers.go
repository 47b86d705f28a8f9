// Package server wires the loot-table engines to their HTTP surface.
// Handlers are thin: decode the request, call into the engines, encode
// the result. All mutation happens on deep copies returned in the
// response; the base table never changes after boot.
//
// @title           Loot Table API
// @version         1.0
// @description     Loot-table validation, auto-correction, weighted drops and balance simulation for game developers.
//
// @contact.name   HadleysDad
// @contact.url    https://github.com/HadleysDad/loot-api
//
// @BasePath  /
package server

import (
	"math"
	"net/http"
	"strings"

	"github.com/HadleysDad/loot-api/internal/drop"
	"github.com/HadleysDad/loot-api/internal/rules"
	"github.com/HadleysDad/loot-api/internal/simulate"
	"github.com/HadleysDad/loot-api/internal/table"

	"github.com/gorilla/mux"
)

func RegisterAPIRoutes(router *mux.Router, rr *RouteRegistry, app *App) {

	// ------------------------------------------------------------------
	// Loot table and validation
	// ------------------------------------------------------------------

	// @Summary Get the base loot table
	// @Description Returns the table loaded at boot together with its validation report
	// @Tags Loot
	// @Produce json
	// @Success 200 {object} TableResponse
	// @Router /api/loot/table [get]
	Handle(router, rr, "GET /api/loot/table", "Get the base loot table", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, TableResponse{
			LootTable:  app.BaseRaw,
			Validation: app.BaseRes,
		})
	})

	// @Summary List items
	// @Description Flattens the base table, optionally filtered by category, rarity, a single tag or a comma-separated tag list
	// @Tags Loot
	// @Produce json
	// @Param category query string false "Category name"
	// @Param rarity query string false "Rarity tier"
	// @Param tag query string false "Single tag"
	// @Param tags query string false "Comma-separated tags, all required"
	// @Success 200 {object} ItemsResponse
	// @Router /api/loot/items [get]
	Handle(router, rr, "GET /api/loot/items", "List items, with optional filters", "", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		tags := splitTags(q.Get("tags"))
		if tag := strings.TrimSpace(q.Get("tag")); tag != "" {
			tags = append(tags, tag)
		}
		items := selectItems(app.Base, q.Get("category"), q.Get("rarity"), tags)
		writeJSON(w, http.StatusOK, ItemsResponse{Count: len(items), Items: items})
	})

	// @Summary Validate a loot table
	// @Description Walks the posted table and reports every structural error and warning. An empty body validates the base table.
	// @Tags Loot
	// @Accept json
	// @Produce json
	// @Param loot_table body map[string]interface{} false "Raw loot table document"
	// @Success 200 {object} table.Result
	// @Failure 400 {object} map[string]string
	// @Router /api/loot/validate [post]
	Handle(router, rr, "POST /api/loot/validate", "Validate a loot table", `{"weapons":{"sword":{"Common":[{"name":"Rusty Sword","rarity":"Common","type":"sword","drop":{"weight":70},"tags":["starter"]}]}}}`, func(w http.ResponseWriter, r *http.Request) {
		var doc any
		if err := decodeJSON(r, &doc); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if doc == nil {
			doc = app.BaseRaw
		}
		writeJSON(w, http.StatusOK, table.Validate(doc))
	})

	// ------------------------------------------------------------------
	// Auto-correction
	// ------------------------------------------------------------------

	// @Summary Preview auto-corrections
	// @Description Runs the analyzer battery and returns the fixes the given profile would apply
	// @Tags Autocorrect
	// @Accept json
	// @Produce json
	// @Param request body PreviewRequest false "Table and profile; both optional"
	// @Success 200 {object} rules.Preview
	// @Failure 400 {object} map[string]string
	// @Router /api/loot/autocorrect/preview [post]
	Handle(router, rr, "POST /api/loot/autocorrect/preview", "Preview auto-corrections for a profile", `{"profile":"safe"}`, func(w http.ResponseWriter, r *http.Request) {
		var req PreviewRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if req.Profile == "" {
			req.Profile = string(rules.SeveritySafe)
		}
		doc, _, res := app.resolveTable(req.LootTable)
		p, err := rules.BuildPreview(doc, res, app.Config.Rules, req.Profile)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, p)
	})

	// @Summary Diff auto-corrections
	// @Description Projects the preview into a flat before/after change list
	// @Tags Autocorrect
	// @Accept json
	// @Produce json
	// @Param request body PreviewRequest false "Table and profile; both optional"
	// @Success 200 {object} rules.Diff
	// @Failure 400 {object} map[string]string
	// @Router /api/loot/autocorrect/diff [post]
	Handle(router, rr, "POST /api/loot/autocorrect/diff", "Diff auto-corrections for a profile", `{"profile":"aggressive"}`, func(w http.ResponseWriter, r *http.Request) {
		var req PreviewRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if req.Profile == "" {
			req.Profile = string(rules.SeveritySafe)
		}
		doc, _, res := app.resolveTable(req.LootTable)
		p, err := rules.BuildPreview(doc, res, app.Config.Rules, req.Profile)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, rules.BuildDiff(p))
	})

	// @Summary Apply safe auto-corrections
	// @Description Applies the safe fixes to a deep copy and returns the corrected table with its fresh validation report. Refuses any profile other than safe.
	// @Tags Autocorrect
	// @Accept json
	// @Produce json
	// @Param request body PreviewRequest false "Table and profile; both optional"
	// @Success 200 {object} ApplyResponse
	// @Failure 400 {object} map[string]string
	// @Router /api/loot/autocorrect/apply [post]
	Handle(router, rr, "POST /api/loot/autocorrect/apply", "Apply safe auto-corrections", `{"profile":"safe"}`, func(w http.ResponseWriter, r *http.Request) {
		var req PreviewRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if req.Profile == "" {
			req.Profile = string(rules.SeveritySafe)
		}
		sev, err := rules.LoadProfile(req.Profile)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		if sev != rules.SeveritySafe {
			writeErr(w, http.StatusBadRequest, "autocorrect apply accepts only the safe profile")
			return
		}
		doc, _, res := app.resolveTable(req.LootTable)
		p, err := rules.BuildPreview(doc, res, app.Config.Rules, req.Profile)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		fixed := rules.ApplySafe(doc, p)
		writeJSON(w, http.StatusOK, ApplyResponse{
			Profile:    req.Profile,
			Applied:    p.Summary.ApplicableFixes,
			LootTable:  fixed,
			Validation: table.Validate(fixed),
		})
	})

	// @Summary List auto-correct profiles
	// @Description Returns the capability record of every known profile
	// @Tags Autocorrect
	// @Produce json
	// @Success 200 {object} map[string]rules.Capabilities
	// @Router /api/loot/autocorrect/profiles [get]
	Handle(router, rr, "GET /api/loot/autocorrect/profiles", "List auto-correct profiles", "", func(w http.ResponseWriter, r *http.Request) {
		out := make(map[string]rules.Capabilities, len(rules.Profiles()))
		for _, p := range rules.Profiles() {
			out[string(p)] = p.Capabilities()
		}
		writeJSON(w, http.StatusOK, out)
	})

	// ------------------------------------------------------------------
	// Drops
	// ------------------------------------------------------------------

	// @Summary Roll one weighted drop
	// @Description Draws a single item from the (optionally filtered, optionally luck-adjusted) pool and reports its weight share
	// @Tags Loot
	// @Accept json
	// @Produce json
	// @Param request body DropRequest false "Filters, luck and seed; all optional"
	// @Success 200 {object} DropResponse
	// @Failure 400 {object} map[string]string
	// @Router /api/loot/drop [post]
	Handle(router, rr, "POST /api/loot/drop", "Roll one weighted drop", `{"rarity":"Rare","luck":0.5,"seed":42}`, func(w http.ResponseWriter, r *http.Request) {
		var req DropRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		_, typed, res := app.resolveTable(req.LootTable)
		if !res.Compatibility.CanSimulate {
			writeValidationErr(w, res)
			return
		}
		if err := validLuck(req.Luck); err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		seed, err := resolveSeed(req.Seed)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		items := selectItems(typed, req.Category, req.Rarity, req.Tags)
		if req.Luck > 0 {
			items = drop.ApplyLuck(items, req.Luck)
		}
		item, err := drop.Roll(items, drop.NewRNG(seed))
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, DropResponse{
			Item:        item,
			Probability: poolProbability(items, item),
			Seed:        seed,
		})
	})

	// ------------------------------------------------------------------
	// Simulation
	// ------------------------------------------------------------------

	// @Summary Simulate drops
	// @Description Runs n weighted draws and aggregates rarity, tag and item distributions
	// @Tags Simulation
	// @Accept json
	// @Produce json
	// @Param request body SimulateRequest false "Draw count, seed and tag filter; all optional"
	// @Success 200 {object} SimulateResponse
	// @Failure 400 {object} map[string]string
	// @Router /api/simulate [post]
	Handle(router, rr, "POST /api/simulate", "Simulate weighted drops", `{"simulations":1000,"seed":7}`, func(w http.ResponseWriter, r *http.Request) {
		var req SimulateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		_, typed, res := app.resolveTable(req.LootTable)
		if !res.Compatibility.CanSimulate {
			writeValidationErr(w, res)
			return
		}
		n, err := app.simCount(req.Simulations, 1000)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		seed, err := resolveSeed(req.Seed)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		draws, err := simulate.Run(selectItems(typed, "", "", req.Tags), drop.NewRNG(seed), n)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, SimulateResponse{
			Simulations: n,
			Seed:        seed,
			Results:     simulate.Aggregate(draws),
		})
	})

	// @Summary Simulate drops with luck
	// @Description Applies the luck transform to the pool before drawing
	// @Tags Simulation
	// @Accept json
	// @Produce json
	// @Param request body LuckSimulateRequest false "Draw count, luck, seed and tag filter"
	// @Success 200 {object} LuckSimulateResponse
	// @Failure 400 {object} map[string]string
	// @Router /api/simulate/luck [post]
	Handle(router, rr, "POST /api/simulate/luck", "Simulate drops under a luck modifier", `{"simulations":1000,"luck":0.5}`, func(w http.ResponseWriter, r *http.Request) {
		var req LuckSimulateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		_, typed, res := app.resolveTable(req.LootTable)
		if !res.Compatibility.CanSimulate {
			writeValidationErr(w, res)
			return
		}
		if err := validLuck(req.Luck); err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		n, err := app.simCount(req.Simulations, 1000)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		seed, err := resolveSeed(req.Seed)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		items := drop.ApplyLuck(selectItems(typed, "", "", req.Tags), req.Luck)
		draws, err := simulate.Run(items, drop.NewRNG(seed), n)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, LuckSimulateResponse{
			Simulations: n,
			Seed:        seed,
			Luck:        req.Luck,
			Results:     simulate.Aggregate(draws),
		})
	})

	// @Summary Compare base and luck distributions
	// @Description Runs paired simulations from the same seed, one raw and one luck-adjusted, and reports the per-rarity share deltas
	// @Tags Simulation
	// @Accept json
	// @Produce json
	// @Param request body CompareRequest false "Draw count, luck, seed and tag filter"
	// @Success 200 {object} CompareResponse
	// @Failure 400 {object} map[string]string
	// @Router /api/simulate/compare [post]
	Handle(router, rr, "POST /api/simulate/compare", "Compare base and luck-adjusted distributions", `{"simulations":10000,"luck":0.5}`, func(w http.ResponseWriter, r *http.Request) {
		var req CompareRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		_, typed, res := app.resolveTable(req.LootTable)
		if !res.Compatibility.CanSimulate {
			writeValidationErr(w, res)
			return
		}
		luck := 0.5
		if req.Luck != nil {
			luck = *req.Luck
		}
		if err := validLuck(luck); err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		n, err := app.simCount(req.Simulations, 10000)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		seed, err := resolveSeed(req.Seed)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		comparison, err := simulate.Compare(selectItems(typed, "", "", req.Tags), luck, seed, n)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, CompareResponse{Seed: seed, Comparison: comparison})
	})

	// ------------------------------------------------------------------
	// Balance
	// ------------------------------------------------------------------

	// @Summary Balance report
	// @Description Simulates the table and pairs the observed distributions with the aggressive analyzer findings
	// @Tags Balance
	// @Accept json
	// @Produce json
	// @Param request body BalanceRequest false "Draw count and seed; both optional"
	// @Success 200 {object} BalanceResponse
	// @Failure 400 {object} map[string]string
	// @Router /api/balance/report [post]
	Handle(router, rr, "POST /api/balance/report", "Simulate and report balance findings", `{"simulations":50000}`, func(w http.ResponseWriter, r *http.Request) {
		var req BalanceRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		doc, typed, res := app.resolveTable(req.LootTable)
		if !res.Compatibility.CanSimulate {
			writeValidationErr(w, res)
			return
		}
		n, err := app.simCount(req.Simulations, 50000)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		seed, err := resolveSeed(req.Seed)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		draws, err := simulate.Run(typed.Flatten(), drop.NewRNG(seed), n)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		p, err := rules.BuildPreview(doc, res, app.Config.Rules, string(rules.SeverityAggressive))
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, BalanceResponse{
			Simulations: n,
			Seed:        seed,
			Report:      simulate.Aggregate(draws),
			Findings:    rules.BuildDiff(p),
		})
	})

	// @Summary Suggest rarity reweighting
	// @Description Simulates the table and returns per-tier multipliers that would move the observed rarity shares toward the targets
	// @Tags Balance
	// @Accept json
	// @Produce json
	// @Param request body ReweightRequest true "Target rarity percentages"
	// @Success 200 {object} ReweightResponse
	// @Failure 400 {object} map[string]string
	// @Router /api/balance/reweight [post]
	Handle(router, rr, "POST /api/balance/reweight", "Suggest per-tier weight multipliers", `{"simulations":20000,"target_rarity":{"Common":50,"Uncommon":27,"Rare":15,"Epic":6,"Legendary":2}}`, func(w http.ResponseWriter, r *http.Request) {
		var req ReweightRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if len(req.TargetRarity) == 0 {
			writeErr(w, http.StatusBadRequest, "target_rarity is required")
			return
		}
		_, typed, res := app.resolveTable(req.LootTable)
		if !res.Compatibility.CanReweight {
			writeValidationErr(w, res)
			return
		}
		n, err := app.simCount(req.Simulations, 20000)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		seed, err := resolveSeed(req.Seed)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		draws, err := simulate.Run(typed.Flatten(), drop.NewRNG(seed), n)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		rep := simulate.Aggregate(draws)
		writeJSON(w, http.StatusOK, ReweightResponse{
			Simulations:  n,
			Seed:         seed,
			Observed:     rep.Rarity.Percent,
			TargetRarity: req.TargetRarity,
			Multipliers:  simulate.Multipliers(rep, req.TargetRarity),
		})
	})

	// @Summary Export a reweighted table
	// @Description Applies per-tier weight multipliers to a deep copy of the table and returns it with a fresh validation report
	// @Tags Balance
	// @Accept json
	// @Produce json
	// @Param request body ExportRequest true "Per-tier multipliers"
	// @Success 200 {object} ExportResponse
	// @Failure 400 {object} map[string]string
	// @Router /api/balance/export [post]
	Handle(router, rr, "POST /api/balance/export", "Export a table with multipliers applied", `{"multipliers":{"Common":1.0,"Rare":1.2,"Legendary":0.5}}`, func(w http.ResponseWriter, r *http.Request) {
		var req ExportRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if len(req.Multipliers) == 0 {
			writeErr(w, http.StatusBadRequest, "multipliers is required")
			return
		}
		doc, _, res := app.resolveTable(req.LootTable)
		if !res.Compatibility.CanExport {
			writeValidationErr(w, res)
			return
		}
		out := rules.ApplyMultipliers(doc, req.Multipliers)
		writeJSON(w, http.StatusOK, ExportResponse{
			Multipliers: req.Multipliers,
			LootTable:   out,
			Validation:  table.Validate(out),
		})
	})
}

func writeValidationErr(w http.ResponseWriter, res table.Result) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":      "loot table failed validation",
		"validation": res,
	})
}

// selectItems narrows the table down to the requested pool. An unknown
// category or an unmatched filter yields an empty pool; the caller
// turns that into an empty-pool error where it matters.
func selectItems(tbl table.Table, category, rarity string, tags []string) []table.Item {
	var items []table.Item
	if category != "" {
		items, _ = tbl.ItemsByCategory(category)
	} else {
		items = tbl.Flatten()
	}
	if rarity != "" {
		filtered := make([]table.Item, 0, len(items))
		for _, it := range items {
			if it.Rarity == rarity {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	if len(tags) > 0 {
		filtered := make([]table.Item, 0, len(items))
		for _, it := range items {
			if it.HasAllTags(tags) {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	if items == nil {
		items = []table.Item{}
	}
	return items
}

func splitTags(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// poolProbability is the picked item's share of the pool weight, as a
// percentage rounded to two decimals.
func poolProbability(items []table.Item, picked table.Item) float64 {
	total := 0
	for _, it := range items {
		if it.Drop.Weight > 0 {
			total += it.Drop.Weight
		}
	}
	if total == 0 {
		return 0
	}
	return round2(100 * float64(picked.Drop.Weight) / float64(total))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
