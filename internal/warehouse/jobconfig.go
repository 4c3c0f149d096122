package warehouse

import (
	"strings"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"

	"github.com/henri-ngl/learning-dbt/internal/params"
	"github.com/henri-ngl/learning-dbt/pkg/bqseed"
)

// applyFileConfig copies the run's job configuration onto a load source.
func applyFileConfig(fc *bigquery.FileConfig, job bqseed.JobConfiguration) {
	fc.SourceFormat = bigquery.DataFormat(job.SourceFormat)
	fc.SkipLeadingRows = job.SkipLeadingRows
	fc.AutoDetect = job.Autodetect
}

// writeDisposition maps the configured disposition; the empty value leaves
// the field unset so the service default (WRITE_APPEND) applies.
func writeDisposition(wd bqseed.WriteDisposition) bigquery.TableWriteDisposition {
	switch wd {
	case bqseed.WriteAppend:
		return bigquery.WriteAppend
	case bqseed.WriteTruncate:
		return bigquery.WriteTruncate
	case bqseed.WriteEmpty:
		return bigquery.WriteEmpty
	}
	return ""
}

// newJobID builds a unique, readable job ID: bqseed_<table>_<uuid>.
func newJobID(table string) string {
	return bqseed.JobIDPrefix + table + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// jobLabels merges run labels with the per-file label. The file name is
// coerced into a legal label value. The input map is not modified.
func jobLabels(labels map[string]string, name string) map[string]string {
	merged := make(map[string]string, len(labels)+1)
	for k, v := range labels {
		merged[k] = v
	}
	merged[bqseed.FileLabelKey] = params.LabelValue(name)
	return merged
}
