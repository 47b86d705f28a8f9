package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/HadleysDad/loot-api/internal/config"
	"github.com/HadleysDad/loot-api/internal/drop"
	"github.com/HadleysDad/loot-api/internal/ops"
	"github.com/HadleysDad/loot-api/internal/rules"
	"github.com/HadleysDad/loot-api/internal/simulate"
	"github.com/HadleysDad/loot-api/internal/table"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "validate":
		if err := cmdValidate(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "validate failed:", err)
			os.Exit(1)
		}
	case "preview":
		if err := cmdPreview(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "preview failed:", err)
			os.Exit(1)
		}
	case "apply":
		if err := cmdApply(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "apply failed:", err)
			os.Exit(1)
		}
	case "simulate":
		if err := cmdSimulate(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "simulate failed:", err)
			os.Exit(1)
		}
	case "snapshot":
		if err := cmdSnapshot(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "snapshot failed:", err)
			os.Exit(1)
		}
	case "restore":
		if err := cmdRestore(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "restore failed:", err)
			os.Exit(1)
		}
	case "drill":
		if err := cmdDrill(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "drill failed:", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

func cmdValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	file := fs.String("file", "data/loot_table.json", "path to the loot table")
	format := fs.String("format", "text", "output format: text or json")
	if err := fs.Parse(args); err != nil {
		return err
	}

	doc, err := table.LoadFile(*file)
	if err != nil {
		return err
	}
	res := table.Validate(doc)

	if *format == "json" {
		if err := printJSON(res); err != nil {
			return err
		}
	} else {
		fmt.Println("valid:", res.Valid)
		fmt.Println("items:", res.Summary.TotalItems)
		for _, e := range res.Errors {
			fmt.Printf("error %s: %s\n", e.Path, e.Message)
		}
		for _, w := range res.Warnings {
			fmt.Printf("warning %s: %s\n", w.Path, w.Message)
		}
	}

	if !res.Valid {
		return fmt.Errorf("%s has %d validation errors", *file, len(res.Errors))
	}
	return nil
}

func cmdPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	file := fs.String("file", "data/loot_table.json", "path to the loot table")
	profile := fs.String("profile", "safe", "autocorrect profile: safe, aggressive or strict")
	configPath := fs.String("config", "loot-api.yml", "path to the YAML config file")
	format := fs.String("format", "text", "output format: text or json")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadRules(*configPath)
	if err != nil {
		return err
	}
	doc, err := table.LoadFile(*file)
	if err != nil {
		return err
	}
	p, err := rules.BuildPreview(doc, table.Validate(doc), cfg, *profile)
	if err != nil {
		return err
	}

	if *format == "json" {
		return printJSON(p)
	}
	fmt.Println("profile:", p.Profile)
	fmt.Println("would_apply:", p.WouldApply)
	fmt.Println("detected:", p.Summary.TotalDetectedIssues)
	fmt.Println("applicable:", p.Summary.ApplicableFixes)
	for _, f := range p.Fixes {
		fmt.Printf("%s %s: %s\n", f.Severity, f.Path, f.Action)
	}
	for _, w := range p.Warnings {
		fmt.Println("note:", w)
	}
	return nil
}

func cmdApply(args []string) error {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	file := fs.String("file", "data/loot_table.json", "path to the loot table")
	out := fs.String("out", "", "output path for the fixed table, stdout when empty")
	configPath := fs.String("config", "loot-api.yml", "path to the YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadRules(*configPath)
	if err != nil {
		return err
	}
	doc, err := table.LoadFile(*file)
	if err != nil {
		return err
	}
	p, err := rules.BuildPreview(doc, table.Validate(doc), cfg, "safe")
	if err != nil {
		return err
	}
	fixed := rules.ApplySafe(doc, p)
	after := table.Validate(fixed)

	b, err := json.MarshalIndent(fixed, "", "  ")
	if err != nil {
		return err
	}
	if *out == "" {
		fmt.Println(string(b))
		return nil
	}
	if err := os.WriteFile(*out, append(b, '\n'), 0o644); err != nil {
		return err
	}
	fmt.Println("applied:", p.Summary.ApplicableFixes)
	fmt.Println("valid:", after.Valid)
	fmt.Println(*out)
	return nil
}

func cmdSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	file := fs.String("file", "data/loot_table.json", "path to the loot table")
	n := fs.Int("n", 1000, "number of draws")
	seed := fs.Int64("seed", 0, "RNG seed, 0 draws a random one")
	luck := fs.Float64("luck", 0, "luck factor between 0 and 1")
	format := fs.String("format", "text", "output format: text or json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *n <= 0 {
		return fmt.Errorf("n must be positive")
	}
	if *luck < 0 || *luck > 1 {
		return fmt.Errorf("luck must be between 0 and 1")
	}

	doc, err := table.LoadFile(*file)
	if err != nil {
		return err
	}
	typed, res := table.Parse(doc)
	if !res.Valid {
		return fmt.Errorf("%s has %d validation errors", *file, len(res.Errors))
	}

	items := typed.Flatten()
	if *luck > 0 {
		items = drop.ApplyLuck(items, *luck)
	}

	s := *seed
	if s == 0 {
		s, err = drop.NewSeed()
		if err != nil {
			return err
		}
	}
	draws, err := simulate.Run(items, drop.NewRNG(s), *n)
	if err != nil {
		return err
	}
	rep := simulate.Aggregate(draws)

	if *format == "json" {
		return printJSON(map[string]any{
			"seed":    s,
			"luck":    *luck,
			"results": rep,
		})
	}
	fmt.Println("draws:", rep.Draws)
	fmt.Println("seed:", s)
	if *luck > 0 {
		fmt.Println("luck:", *luck)
	}
	for _, rarity := range rarityOrder(rep.Rarity.Counts) {
		fmt.Printf("%-10s %6.2f%% (%d)\n", rarity, rep.Rarity.Percent[rarity], rep.Rarity.Counts[rarity])
	}
	return nil
}

func cmdSnapshot(args []string) error {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	tables := fs.String("tables", "data", "path to the tables directory")
	out := fs.String("out", "", "output archive path (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		ts := time.Now().UTC().Format("20060102T150405Z")
		*out = filepath.Join("backups", "loot-tables-"+ts+".tar.gz")
	}

	n, err := ops.SnapshotTables(*tables, *out)
	if err != nil {
		return err
	}
	fmt.Println("tables:", n)
	fmt.Println(*out)
	return nil
}

func cmdRestore(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	archive := fs.String("archive", "", "input snapshot archive (.tar.gz)")
	target := fs.String("target-dir", "data-restored", "restore target directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}
	n, err := ops.RestoreTables(*archive, *target)
	if err != nil {
		return err
	}
	fmt.Println("tables:", n)
	return nil
}

func cmdDrill(args []string) error {
	fs := flag.NewFlagSet("drill", flag.ContinueOnError)
	tables := fs.String("tables", "data", "path to the tables directory")
	workDir := fs.String("work-dir", os.TempDir(), "temporary workspace for drill artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.MkdirAll(*workDir, 0o755); err != nil {
		return err
	}
	ts := time.Now().UTC().Format("20060102T150405Z")
	archive := filepath.Join(*workDir, "loot-drill-"+ts+".tar.gz")
	restoreDir := filepath.Join(*workDir, "loot-drill-restore-"+ts)

	if _, err := ops.SnapshotTables(*tables, archive); err != nil {
		return err
	}
	if _, err := ops.RestoreTables(archive, restoreDir); err != nil {
		return err
	}

	srcDigest, err := dirDigest(*tables)
	if err != nil {
		return err
	}
	restoreDigest, err := dirDigest(restoreDir)
	if err != nil {
		return err
	}
	if srcDigest != restoreDigest {
		return fmt.Errorf("digest mismatch after restore: src=%s restored=%s", srcDigest, restoreDigest)
	}

	checks, err := ops.VerifyTables(restoreDir)
	if err != nil {
		return err
	}
	invalid := 0
	for _, c := range checks {
		if !c.Valid {
			invalid++
			fmt.Printf("invalid %s: %s\n", c.Path, c.Reason)
		}
	}

	fmt.Println("snapshot:", archive)
	fmt.Println("restored:", restoreDir)
	fmt.Println("digest:", srcDigest)
	fmt.Println("tables:", len(checks))
	if invalid > 0 {
		return fmt.Errorf("%d tables failed validation after restore", invalid)
	}
	return nil
}

// loadRules resolves analyzer thresholds the same way the server does:
// config file first, environment override wholesale when present.
func loadRules(configPath string) (config.Rules, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return config.Rules{}, err
	}
	if config.HasRulesEnv() {
		return config.RulesFromEnv(), nil
	}
	return cfg.Rules, nil
}

// rarityOrder lists the drawn rarities, canonical tiers first, anything
// else sorted behind them.
func rarityOrder(counts map[string]int) []string {
	out := make([]string, 0, len(counts))
	for _, r := range table.Rarities {
		if counts[r] > 0 {
			out = append(out, r)
		}
	}
	var extra []string
	for r := range counts {
		if !table.IsCanonicalRarity(r) {
			extra = append(extra, r)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func dirDigest(root string) (string, error) {
	root = filepath.Clean(root)
	entries := []string{}
	if err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		entries = append(entries, filepath.ToSlash(rel))
		return nil
	}); err != nil {
		return "", err
	}
	sort.Strings(entries)

	h := sha256.New()
	for _, rel := range entries {
		_, _ = io.WriteString(h, rel)
		_, _ = io.WriteString(h, "\n")
		b, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			return "", err
		}
		if _, err := h.Write(b); err != nil {
			return "", err
		}
		_, _ = io.WriteString(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  loot-ops validate --file data/loot_table.json [--format json]")
	fmt.Println("  loot-ops preview  --file data/loot_table.json --profile safe")
	fmt.Println("  loot-ops apply    --file data/loot_table.json --out fixed.json")
	fmt.Println("  loot-ops simulate --file data/loot_table.json --n 10000 --seed 1 --luck 0.5")
	fmt.Println("  loot-ops snapshot --tables data --out backups/tables.tar.gz")
	fmt.Println("  loot-ops restore  --archive backups/tables.tar.gz --target-dir data-restored")
	fmt.Println("  loot-ops drill    --tables data --work-dir /tmp")
}
