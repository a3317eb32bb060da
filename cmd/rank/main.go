// Command rank fetches a channel's complete video set and prints it ranked
// by the recency/popularity score.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sk408/yt-fix/internal/config"
	"github.com/sk408/yt-fix/internal/models"
	"github.com/sk408/yt-fix/internal/ranking"
	"github.com/sk408/yt-fix/internal/service"
	"github.com/sk408/yt-fix/internal/service/quota"
	"github.com/sk408/yt-fix/internal/youtube"
	"github.com/sk408/yt-fix/pkg/format"
	"github.com/sk408/yt-fix/pkg/logger"
)

func main() {
	var (
		target        = flag.String("target", "", "channel ID, @handle, username, channel URL, or playlist ID/URL")
		strategy      = flag.String("strategy", string(models.StrategyUploadsPlaylist), "retrieval strategy: standard-search, uploads-playlist, or explicit-playlist")
		likeWeight    = flag.Float64("like-weight", ranking.DefaultLikeWeight, "weight of likes in the popularity term")
		viewWeight    = flag.Float64("view-weight", ranking.DefaultViewWeight, "weight of views in the popularity term")
		halfLife      = flag.Float64("half-life-days", ranking.DefaultHalfLifeDays, "days after which a video's score halves")
		top           = flag.Int("top", 25, "number of ranked videos to print (0 = all)")
		acceptPartial = flag.Bool("accept-partial", false, "rank whatever was recovered if the fetch fails mid-way")
	)
	flag.Parse()

	if *target == "" {
		fmt.Fprintln(os.Stderr, "usage: rank -target <channel or playlist> [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("failed to load config: %v", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fatal("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.YouTube.APIKey == "" {
		fatal("YouTube API key is not configured (YOUTUBE_API_KEY)")
	}

	ctx := context.Background()
	quotaManager := quota.NewManager(cfg.Quota.DailyLimit, cfg.Quota.ThresholdPercent, logger.Named("quota"))

	client, err := youtube.NewClient(ctx, cfg.YouTube.APIKey, quotaManager, youtube.ClientOptions{
		PageSize: int64(cfg.YouTube.PageSize),
		Logger:   logger.Named("youtube"),
	})
	if err != nil {
		fatal("failed to initialize YouTube client: %v", err)
	}

	fetcher := service.NewFetcher(client, service.FetcherOptions{
		MaxPages:     cfg.YouTube.MaxPages,
		RetryBackoff: cfg.YouTube.RetryBackoff,
		Logger:       logger.Named("fetcher"),
	})

	videos, err := fetcher.Fetch(ctx, models.FetchRequest{
		Target:   *target,
		Strategy: models.Strategy(*strategy),
	})
	if err != nil {
		var fetchErr *service.FetchError
		if errors.As(err, &fetchErr) && *acceptPartial {
			fmt.Fprintf(os.Stderr, "warning: fetch incomplete, ranking %d recovered videos (%v)\n",
				len(fetchErr.Partial), fetchErr.Unwrap())
			videos = fetchErr.Partial
		} else {
			fatal("fetch failed: %v", err)
		}
	}

	weights := ranking.Weights{
		LikeWeight:   *likeWeight,
		ViewWeight:   *viewWeight,
		HalfLifeDays: *halfLife,
	}
	ranked, diagnostics := ranking.NewEngine().Rank(videos, time.Now(), weights)

	if *top > 0 && len(ranked) > *top {
		ranked = ranked[:*top]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSCORE\tVIEWS\tLIKES\tPUBLISHED\tDURATION\tTITLE")
	for i, v := range ranked {
		fmt.Fprintf(w, "%d\t%.1f\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			*v.Score,
			format.Count(v.ViewCount),
			format.Count(v.LikeCount),
			v.PublishedAt.Format("2006-01-02"),
			format.Duration(v.Duration),
			v.Title,
		)
	}
	_ = w.Flush()

	for _, d := range diagnostics {
		fmt.Fprintf(os.Stderr, "skipped %s: %s\n", d.VideoID, d.Reason)
	}
	fmt.Fprintf(os.Stderr, "quota used this run: %d units\n", quotaManager.Used())
}

func fatal(formatStr string, args ...any) {
	fmt.Fprintf(os.Stderr, formatStr+"\n", args...)
	os.Exit(1)
}
