package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"counts-server/analytics"
	"counts-server/config"
	"counts-server/di"
	"counts-server/models"
	"counts-server/util"
)

// exportBucketChart renders the monthly averages chart to an HTML file,
// handy for eyeballing the pipeline against the fixtures.
func exportBucketChart(container *di.Container) {
	buckets, err := container.AnalyticsService.GetBucketAverages(analytics.BucketMonth, 0)
	if err != nil {
		log.Println("Error computing bucket averages:", err)
		return
	}

	f, err := os.Create("bucket_averages.html")
	if err != nil {
		log.Println("Failed to create HTML file:", err)
		return
	}
	defer f.Close()

	if err := util.PlotBucketAverages("Average hourly volume by month", buckets, f); err != nil {
		log.Println("Failed to render chart:", err)
		return
	}
	fmt.Println("Bucket averages chart generated: bucket_averages.html")
}

func printTopSites(container *di.Container) {
	opts := models.DefaultAnalysisOptions()
	opts.ExpansionProfileKey = config.DEFAULT_EXPANSION_PROFILE_KEY
	opts.NormalizationFactorKey = config.DEFAULT_NORMALIZATION_FACTOR_KEY

	summaries, err := container.AnalyticsService.GetTopSites(10, opts)
	if err != nil {
		log.Println("Error ranking sites:", err)
		return
	}
	util.PrintVolumeSummariesPartially(summaries)
}

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "prod"
	}
	container := di.NewContainer(env)

	// exportBucketChart(container)
	// printTopSites(container)

	fmt.Println("refreshing!")
	if err := container.CountsRefresherService.RefreshCountsData(); err != nil {
		log.Printf("initial refresh failed: %v", err)
	}
	fmt.Println("starting periodic job!")
	container.CountsRefresherService.StartPeriodicJob(config.COUNTS_REFRESHER_SERVICE_SCHEDULE_MINUTES * time.Minute)

	fmt.Println("starting server!")
	container.ActiveCountsHttpServer.Start()
}
