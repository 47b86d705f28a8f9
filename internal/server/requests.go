package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/HadleysDad/loot-api/internal/drop"
	"github.com/HadleysDad/loot-api/internal/rules"
	"github.com/HadleysDad/loot-api/internal/simulate"
	"github.com/HadleysDad/loot-api/internal/table"
)

// Request bodies. Every operating endpoint accepts an optional
// loot_table; when it is omitted the handler works on the base table.
// Numbers inside loot_table stay json.Number so the validator can tell
// 2 from 2.5.

type PreviewRequest struct {
	LootTable any    `json:"loot_table"`
	Profile   string `json:"profile"`
}

type DropRequest struct {
	LootTable any      `json:"loot_table"`
	Seed      *int64   `json:"seed"`
	Category  string   `json:"category"`
	Rarity    string   `json:"rarity"`
	Tags      []string `json:"tags"`
	Luck      float64  `json:"luck"`
}

type SimulateRequest struct {
	LootTable   any      `json:"loot_table"`
	Simulations int      `json:"simulations"`
	Seed        *int64   `json:"seed"`
	Tags        []string `json:"tags"`
}

type LuckSimulateRequest struct {
	LootTable   any      `json:"loot_table"`
	Simulations int      `json:"simulations"`
	Seed        *int64   `json:"seed"`
	Tags        []string `json:"tags"`
	Luck        float64  `json:"luck"`
}

type CompareRequest struct {
	LootTable   any      `json:"loot_table"`
	Simulations int      `json:"simulations"`
	Seed        *int64   `json:"seed"`
	Tags        []string `json:"tags"`
	Luck        *float64 `json:"luck"`
}

type BalanceRequest struct {
	LootTable   any    `json:"loot_table"`
	Simulations int    `json:"simulations"`
	Seed        *int64 `json:"seed"`
}

type ReweightRequest struct {
	LootTable    any                `json:"loot_table"`
	Simulations  int                `json:"simulations"`
	Seed         *int64             `json:"seed"`
	TargetRarity map[string]float64 `json:"target_rarity"`
}

type ExportRequest struct {
	LootTable   any                `json:"loot_table"`
	Multipliers map[string]float64 `json:"multipliers"`
}

// Response bodies.

type TableResponse struct {
	LootTable  any          `json:"loot_table"`
	Validation table.Result `json:"validation"`
}

type ItemsResponse struct {
	Count int          `json:"count"`
	Items []table.Item `json:"items"`
}

type ApplyResponse struct {
	Profile    string       `json:"profile"`
	Applied    int          `json:"applied"`
	LootTable  any          `json:"loot_table"`
	Validation table.Result `json:"validation"`
}

type DropResponse struct {
	Item        table.Item `json:"item"`
	Probability float64    `json:"probability"`
	Seed        int64      `json:"seed"`
}

type SimulateResponse struct {
	Simulations int             `json:"simulations"`
	Seed        int64           `json:"seed"`
	Results     simulate.Report `json:"results"`
}

type LuckSimulateResponse struct {
	Simulations int             `json:"simulations"`
	Seed        int64           `json:"seed"`
	Luck        float64         `json:"luck"`
	Results     simulate.Report `json:"results"`
}

type CompareResponse struct {
	Seed       int64               `json:"seed"`
	Comparison simulate.Comparison `json:"comparison"`
}

type BalanceResponse struct {
	Simulations int             `json:"simulations"`
	Seed        int64           `json:"seed"`
	Report      simulate.Report `json:"report"`
	Findings    rules.Diff      `json:"findings"`
}

type ReweightResponse struct {
	Simulations  int                `json:"simulations"`
	Seed         int64              `json:"seed"`
	Observed     map[string]float64 `json:"observed"`
	TargetRarity map[string]float64 `json:"target_rarity"`
	Multipliers  map[string]float64 `json:"multipliers"`
}

type ExportResponse struct {
	Multipliers map[string]float64 `json:"multipliers"`
	LootTable   any                `json:"loot_table"`
	Validation  table.Result       `json:"validation"`
}

// decodeJSON decodes a request body into dst. An empty body is not an
// error; the zero value stands for "all defaults". UseNumber keeps raw
// table weights distinguishable from floats.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// simCount applies the per-endpoint default and the configured cap.
func (app *App) simCount(n, def int) (int, error) {
	if n <= 0 {
		n = def
	}
	if max := app.Config.Server.MaxSimulations; max > 0 && n > max {
		return 0, fmt.Errorf("simulations exceeds the configured maximum of %d", max)
	}
	return n, nil
}

func validLuck(luck float64) error {
	if luck < 0 || luck > 1 {
		return errors.New("luck must be between 0 and 1")
	}
	return nil
}

// resolveSeed returns the caller's seed, or a fresh random one so the
// response can echo a value that replays the run.
func resolveSeed(seed *int64) (int64, error) {
	if seed != nil {
		return *seed, nil
	}
	return drop.NewSeed()
}
