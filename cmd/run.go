package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/yashogale30/rfp-responder/internal/catalog"
	"github.com/yashogale30/rfp-responder/internal/filtering"
	"github.com/yashogale30/rfp-responder/internal/logger"
	"github.com/yashogale30/rfp-responder/internal/matching"
	"github.com/yashogale30/rfp-responder/internal/pricing"
	"github.com/yashogale30/rfp-responder/internal/response"
	"github.com/yashogale30/rfp-responder/internal/scoring"
	"github.com/yashogale30/rfp-responder/internal/secrets"
	"github.com/yashogale30/rfp-responder/internal/selection"
	"github.com/yashogale30/rfp-responder/internal/tender"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes                 = "Yes"
	PromptNo                  = "No"
	PromptReportByIssuers     = "Report by issuers"
	PromptTendersToFile       = "Dump remaining tenders to file"
	PromptAppendToExcludeFile = "Append tender to exclude file"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Submit this response?",
	Items: []string{PromptYes, PromptNo, PromptReportByIssuers, PromptTendersToFile, PromptAppendToExcludeFile},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the rfp-responder main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("do-not-exclude-responded", "f", false, "do not exclude tenders if already responded")
	runCmd.Flags().BoolP("auto-aprove", "y", false, "do not ask for confirmation if a suitable tender is found")
	runCmd.Flags().StringP("exclude-file", "e", "", "special file with tenders to exclude. Default is unset.")

	viper.BindPFlag("exclude-file", runCmd.Flags().Lookup("exclude-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logg.Fatal("getting a config", zap.Error(err))
	}

	logg.Info("starting the rfp-responder", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	logg.Debug(fmt.Sprintf("starting with config: \n %s", logger.PrettyJSON(config)))

	if config == nil {
		logg.Fatal("config is required")
	}

	if config.CatalogFile == "" {
		logg.Fatal("product catalog path is required under catalog-file to match tender requirements")
	}

	cat, err := catalog.LoadFile(config.CatalogFile)
	if err != nil {
		logg.Fatal("loading the product catalog", zap.Error(err))
	}

	logg.Info("loaded the product catalog", zap.Int("count", cat.Len()))

	token, err := resolveToken(config)
	if err != nil {
		logg.Debug("proceeding without a portal token", zap.Error(err))
	}

	portal := tender.New(ctx, logg, token)

	if config.UserAgent != "" {
		portal.UserAgent = config.UserAgent
	}

	tenders, err := getTenders(portal, config, logg)
	if err != nil {
		logg.Fatal("getting available tenders", zap.Error(err))
	}

	if tenders.Len() == 0 {
		logg.Info("exiting", zap.String("reason", "no tenders found"))
		return
	}

	filterCfg, steps := prepareFilters(cmd, config)

	filtered, err := filtering.Run(ctx, filterCfg, filtering.Deps{Logger: logg}, steps, tenders)
	if err != nil {
		logg.Fatal("filtering failed", zap.Error(err))
	}
	tenders = filtered

	if tenders.Len() == 0 {
		logg.Info("exiting", zap.String("reason", "no tenders left after filters"))
		return
	}

	now := time.Now()

	selected, err := selection.SelectBest(tenders, now)
	if err != nil {
		if errors.Is(err, selection.ErrNoCandidates) {
			logg.Info("exiting", zap.String("reason", "no candidate tenders to select from"))
			return
		}
		logg.Fatal("selecting a tender", zap.Error(err))
	}

	logg.Info("selected a tender",
		zap.String("reference", selected.Reference),
		zap.String("title", selected.Title),
		zap.String("issued_by", selected.IssuedBy),
	)

	resp := respond(selected, cat, config, now, logg)

	fmt.Println(resp.RenderText())

	action := PromptYes
	for {
		var err error
		if cmd.Flag("auto-aprove").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logg.Fatal("exiting", zap.Error(err))
			}
		}

		if err := handleAction(action, logg, config, resp, tenders); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logg.Fatal("exiting", zap.Error(err))
		}
	}
}

// respond runs the scoring pipeline for a single selected tender.
func respond(t *tender.Tender, cat *catalog.Catalog, config *Config, now time.Time, logg *zap.Logger) *response.Response {
	opts := matching.DefaultOptions()
	if config.Matching != nil {
		if config.Matching.MinScore > 0 {
			opts.MinScore = config.Matching.MinScore
		}
		if config.Matching.MaxResults > 0 {
			opts.MaxResults = config.Matching.MaxResults
		}
	}

	matches := matching.Match(t.RequirementText(), cat.Products(), opts)
	logg.Info("matched catalog products", zap.Int("count", len(matches)))

	seed := now.UnixNano()
	multiplier := 1.0
	if config.Pricing != nil {
		if config.Pricing.Seed != 0 {
			seed = config.Pricing.Seed
		}
		if config.Pricing.QuantityMultiplier > 0 {
			multiplier = config.Pricing.QuantityMultiplier
		}
	}

	// Test detection reads the acceptance section, not the scope text.
	engine := pricing.NewEngine(cat, rand.New(rand.NewSource(seed)), multiplier)
	breakdown := engine.Price(matches, t.Sections.Testing)

	logg.Info("estimated the bid",
		zap.Float64("base_total", breakdown.BaseTotal),
		zap.Float64("margin_percent", breakdown.MarginPercent),
		zap.Float64("grand_total", breakdown.GrandTotal),
	)

	var deadline *time.Time
	if d, ok := t.Deadline(); ok {
		deadline = &d
	}

	score := scoring.Score(matches, breakdown.GrandTotal, deadline, now)

	logg.Info("scored the opportunity",
		zap.Float64("final_score", score.FinalScore),
		zap.String("grade", score.Grade),
	)

	return &response.Response{
		Tender:  t,
		Matches: matches,
		Pricing: breakdown,
		Score:   score,
	}
}

func handleAction(action string, logg *zap.Logger, config *Config, resp *response.Response, tenders *tender.Tenders) error {
	switch action {
	case PromptYes:
		filename, err := resp.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump response to file: %w", err)
		}
		logg.Info("saved the response", zap.String("filename", filename))

		if config.HistoryFile != "" {
			if err := appendToExcluded(config.HistoryFile, resp.Tender); err != nil {
				return fmt.Errorf("record response in history file: %w", err)
			}
			logg.Info("recorded the response", zap.String("filename", config.HistoryFile))
		}
		return errExit
	case PromptNo:
		logg.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportByIssuers:
		logg.Info(logger.PrettyJSON(tenders.ReportByIssuer()), zap.Int("tenders count", tenders.Len()))
		return nil
	case PromptTendersToFile:
		filename, err := tenders.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump tenders to file: %w", err)
		}
		logg.Info("dumping tenders to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		excludeFile := viper.GetString("exclude-file")
		if excludeFile == "" {
			excludeFile = config.ExcludeFile
		}
		if excludeFile == "" {
			return errors.New("exclude file is not configured")
		}

		if err := appendToExcluded(excludeFile, resp.Tender); err != nil {
			return err
		}

		logg.Info("appended to exclude file",
			zap.String("reference", resp.Tender.Reference),
			zap.String("filename", excludeFile),
		)
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// appendToExcluded adds a single tender to an exclude-format file,
// creating the file when it does not exist yet.
func appendToExcluded(path string, t *tender.Tender) error {
	excluded, err := tender.GetExcludedTendersFromFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		excluded = &tender.ExcludedTenders{}
	}

	single := &tender.Tenders{Items: []*tender.Tender{t}}
	excluded.Append(single.ToExcluded())

	return excluded.ToFile(path)
}

func resolveToken(config *Config) (string, error) {
	if config == nil {
		return "", errors.New("config is required")
	}

	tokenFile := strings.TrimSpace(config.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("token-file"))
	}

	if tokenFile == "" {
		return "", errors.New("portal token file is not configured")
	}

	return secrets.Load(secrets.Source{
		Name: "portal token",
		File: tokenFile,
	})
}

// getTenders returns a list of tenders that match the config.
func getTenders(portal *tender.Client, config *Config, logg *zap.Logger) (*tender.Tenders, error) {
	results, err := portal.Fetch(config.Source)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	logg.Info("getting tenders", zap.Int("count", results.Len()))
	return results, nil
}

func prepareFilters(cmd *cobra.Command, config *Config) (*filtering.Config, []filtering.Filter) {
	ignore := false
	if cmd != nil {
		flag := cmd.Flag("do-not-exclude-responded")
		if flag != nil && strings.EqualFold(flag.Value.String(), "true") {
			ignore = true
		}
	}

	excludeFile := viper.GetString("exclude-file")
	if excludeFile == "" {
		excludeFile = config.ExcludeFile
	}

	var issuers []string
	if config.Respond != nil && config.Respond.Exclude != nil {
		issuers = config.Respond.Exclude.Issuers
	}

	cfg := &filtering.Config{
		ExcludeFile: excludeFile,
		HistoryFile: config.HistoryFile,
		Issuers:     issuers,
	}

	steps := []filtering.Filter{
		filtering.NewRespondedHistory(ignore),
		filtering.NewIssuers(),
		filtering.NewExcludeFile(),
	}

	return cfg, steps
}
