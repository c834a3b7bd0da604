package util

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"counts-server/models"
)

// PlotBucketAverages renders the bucket averages as an HTML bar chart.
func PlotBucketAverages(title string, buckets []models.TimeBucketAverage, w io.Writer) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Avg hourly volume",
		}),
	)

	labels := make([]string, 0, len(buckets))
	values := make([]opts.BarData, 0, len(buckets))
	for _, b := range buckets {
		labels = append(labels, b.Name)
		values = append(values, opts.BarData{Value: b.Value})
	}

	bar.SetXAxis(labels)
	bar.AddSeries("Average volume", values,
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Position: "top",
		}),
	)

	return bar.Render(w)
}
