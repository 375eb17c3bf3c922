// Fridgepick prints recipe recommendations for the signed in account.
//
// Usage:
//
//	fridgepick [flags] recommendations|refresh
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"fridgepick.pl/api/internal/client"
	"fridgepick.pl/api/internal/config"
	"fridgepick.pl/api/internal/logger"
	"fridgepick.pl/api/internal/recommend"
	"fridgepick.pl/api/internal/routes/recommendations"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Options struct {
	Category   string
	MaxMissing int
	Expiring   bool
	Tab        string
	NoWait     bool
	Tick       time.Duration
}

func parseOptions(flags *flag.FlagSet, args []string) (Options, []string, error) {
	var opts Options
	flags.StringVar(&opts.Category, "category", "", "meal category to keep (śniadanie, obiad, kolacja, przekąska, deser)")
	flags.IntVar(&opts.MaxMissing, "max-missing", recommend.MaxMissingIngredients, "maximum number of missing ingredients")
	flags.BoolVar(&opts.Expiring, "expiring", false, "list recipes using expiring products first")
	flags.StringVar(&opts.Tab, "tab", string(recommend.TabAll), "match level tab to print")
	flags.BoolVar(&opts.NoWait, "no-wait", false, "exit instead of counting down when rate limited")
	flags.DurationVar(&opts.Tick, "tick", time.Second, "countdown refresh interval")
	if err := flags.Parse(args); err != nil {
		return opts, nil, err
	}
	return opts, flags.Args(), nil
}

func (o Options) FilterState() (recommend.FilterState, recommend.Tab, error) {
	state := recommend.DefaultFilterState().
		WithMaxMissingIngredients(o.MaxMissing).
		WithPrioritizeExpiring(o.Expiring)
	if o.Category != "" {
		category, ok := recommend.ParseMealCategory(o.Category)
		if !ok {
			return state, "", fmt.Errorf("unknown category %q", o.Category)
		}
		state = state.WithMealCategory(&category)
	}
	tab, ok := recommend.ParseTab(o.Tab)
	if !ok {
		return state, "", fmt.Errorf("unknown tab %q", o.Tab)
	}
	return state, tab, nil
}

func printView(out io.Writer, view recommend.RecommendationsView, refreshes recommendations.Refreshes) {
	counts := view.Counts
	fmt.Fprintf(out, "wszystkie: %d | %s: %d | %s: %d | %s: %d | aktywne filtry: %d\n",
		counts.All,
		recommend.Ideal, counts.Ideal,
		recommend.NearIdeal, counts.NearIdeal,
		recommend.NeedsShopping, counts.NeedsShopping,
		view.ActiveFiltersCount)
	if view.Tab != recommend.TabAll {
		fmt.Fprintf(out, "zakładka %s: %d\n", view.Tab, counts.ForTab(view.Tab))
	}
	fmt.Fprintf(out, "pozostałe odświeżenia: %d\n", refreshes.Remaining)
	if len(view.Items) == 0 {
		fmt.Fprintln(out, "Brak przepisów spełniających kryteria.")
		return
	}
	for i, item := range view.Items {
		fmt.Fprintf(out, "%d. %s [%s, %.0f%%]\n", i+1, item.Recipe.Name, item.MatchLevel, item.MatchScore*100)
		if len(item.MissingIngredients) > 0 {
			fmt.Fprintf(out, "   brakuje: %v\n", item.MissingIngredients)
		}
		if len(item.UsingExpiringIngredients) > 0 {
			fmt.Fprintf(out, "   wykorzystuje: %v\n", item.UsingExpiringIngredients)
		}
		if item.Reason != "" {
			fmt.Fprintf(out, "   %s\n", item.Reason)
		}
	}
}

// Recommendations fetches the unfiltered set and narrows it locally.
func Recommendations(ctx context.Context, api *client.API, opts Options, out io.Writer) error {
	state, tab, err := opts.FilterState()
	if err != nil {
		return err
	}
	all := "all"
	maxMissing := recommend.MaxMissingIngredients
	prioritize := false
	fetched, err := api.Recommendations(ctx, client.RecommendationsInput{
		Tab:                recommend.TabAll,
		Category:           &all,
		MaxMissing:         &maxMissing,
		PrioritizeExpiring: &prioritize,
	})
	if err != nil {
		return err
	}
	printView(out, recommend.View(fetched.Items, state, tab), fetched.Refreshes)
	return nil
}

func Refresh(ctx context.Context, controller *recommend.RefreshController, opts Options, out io.Writer) error {
	if _, err := controller.Refresh(ctx); err != nil {
		return err
	}
	snap := controller.Snapshot()
	if snap.State != recommend.RateLimited {
		fmt.Fprintf(out, "Odświeżono rekomendacje: %d przepisów.\n", len(snap.Recommendations))
		return nil
	}
	if opts.NoWait {
		fmt.Fprintf(out, "Limit odświeżeń wyczerpany. Spróbuj ponownie za %s.\n", snap.Countdown())
		return nil
	}
	controller.Run(ctx, func(snap recommend.RefreshSnapshot) {
		if snap.State == recommend.RateLimited {
			fmt.Fprintf(out, "\rLimit odświeżeń wyczerpany. Ponowna próba za %s   ", snap.Countdown())
		}
	})
	if ctx.Err() != nil {
		fmt.Fprintln(out)
		return nil
	}
	fmt.Fprintln(out, "\nMożesz ponownie odświeżyć rekomendacje.")
	return nil
}

func run(ctx context.Context, args []string, out io.Writer, newAPI func() *client.API) error {
	flags := flag.NewFlagSet("fridgepick", flag.ContinueOnError)
	flags.SetOutput(out)
	opts, commands, err := parseOptions(flags, args)
	if err != nil {
		return err
	}
	if len(commands) != 1 {
		return errors.New("usage: fridgepick [flags] recommendations|refresh")
	}
	api := newAPI()
	switch commands[0] {
	case "recommendations":
		return Recommendations(ctx, api, opts, out)
	case "refresh":
		controller := recommend.NewRefreshController(api, recommend.WithTickInterval(opts.Tick))
		return Refresh(ctx, controller, opts, out)
	}
	return fmt.Errorf("unknown command %q", commands[0])
}

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})
	defer log.Sync()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = run(ctx, os.Args[1:], os.Stdout, func() *client.API {
		return client.NewAPI(cfg.APIURL, cfg.APIToken, log.Named("client"))
	})
	if err != nil {
		log.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
