// Package warehouse implements bqseed.Warehouse on top of BigQuery load jobs.
//
// A BigQuery handle owns one *bigquery.Client and, when staging is
// configured, one *storage.Client. Sources are either streamed straight into
// the load request (ReaderSource) or uploaded to gs://bucket/prefix/<file>
// first and loaded from that URI (GCSReference).
//
// # Example Usage
//
//	wh, err := warehouse.NewBigQuery(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer wh.Close()
//
//	job, err := wh.Load(ctx, src, cfg.Destination(m), cfg.Job, cfg.Labels)
//	result, err := job.Wait(ctx)
package warehouse
