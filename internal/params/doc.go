// Package params parses repeatable key=value CLI arguments.
//
// Two flags use it:
//   - --table name=table: ordered file-to-table mappings
//   - --label key=value: BigQuery job labels, validated by ValidateLabels
package params
