// Package export publishes a month's JoinedDataset into BigQuery, for ad-hoc analysis.
//
// Two routes: streaming inserts straight into the table, or (when a staging bucket is set)
// writing a newline-delimited JSON file into GCS and submitting a load job for it.
package export

import(
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/skypies/flightwx"
)

const DefaultBatchSize = 500

type Uploader struct {
	Project         string
	Dataset         string
	Table           string
	CredentialsFile string // blank: application default credentials
	StagingBucket   string // blank: use streaming inserts
	BatchSize       int
	Logger          *slog.Logger
}

// {{{ Rows, WriteNDJSON

// Rows flattens the dataset, stamping every row with the run ID.
func Rows(ds *flightwx.JoinedDataset, runID string) []*flightwx.JoinedRecordForBigQuery {
	out := make([]*flightwx.JoinedRecordForBigQuery, len(ds.Records))
	for i,r := range ds.Records {
		out[i] = r.ForBigQuery(runID, ds.Month)
	}
	return out
}

// WriteNDJSON writes one JSON object per line, the format BigQuery load jobs expect.
func WriteNDJSON(w io.Writer, rows []*flightwx.JoinedRecordForBigQuery) (int, error) {
	encoder := json.NewEncoder(w)
	for i,row := range rows {
		if err := encoder.Encode(row); err != nil { return i, err }
	}
	return len(rows), nil
}

// }}}
// {{{ Schema, isAlreadyExists, batches

func Schema() (bigquery.Schema, error) {
	return bigquery.InferSchema(flightwx.JoinedRecordForBigQuery{})
}

func isAlreadyExists(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusConflict
}

// batches returns [start,end) index pairs covering n items.
func batches(n, size int) [][2]int {
	if size <= 0 { size = DefaultBatchSize }
	out := [][2]int{}
	for s := 0; s < n; s += size {
		e := s + size
		if e > n { e = n }
		out = append(out, [2]int{s,e})
	}
	return out
}

// }}}

// {{{ u.options, u.logger

func (u Uploader)options() []option.ClientOption {
	if u.CredentialsFile == "" { return nil }
	return []option.ClientOption{option.WithCredentialsFile(u.CredentialsFile)}
}

func (u Uploader)logger() *slog.Logger {
	if u.Logger == nil { return slog.Default() }
	return u.Logger
}

// }}}
// {{{ u.ensureTable

// Creates the table if needed. Every run appends to it.
func (u Uploader)ensureTable(ctx context.Context, client *bigquery.Client) (*bigquery.Table, error) {
	schema,err := Schema()
	if err != nil { return nil, fmt.Errorf("inferring schema: %w", err) }

	table := client.Dataset(u.Dataset).Table(u.Table)
	if err := table.Create(ctx, &bigquery.TableMetadata{Schema: schema}); err != nil {
		if !isAlreadyExists(err) {
			return nil, fmt.Errorf("creating %s.%s: %w", u.Dataset, u.Table, err)
		}
	} else {
		u.logger().Info("created table", "dataset", u.Dataset, "table", u.Table)
	}
	return table, nil
}

// }}}
// {{{ u.Upload

// Upload sends the dataset into the table, and returns the run ID stamped on its rows.
func (u Uploader)Upload(ctx context.Context, ds *flightwx.JoinedDataset) (string, error) {
	tStart := time.Now()
	runID := uuid.NewString()
	rows := Rows(ds, runID)

	client,err := bigquery.NewClient(ctx, u.Project, u.options()...)
	if err != nil { return "", fmt.Errorf("creating bigquery client: %w", err) }
	defer client.Close()

	table,err := u.ensureTable(ctx, client)
	if err != nil { return "", err }

	if u.StagingBucket != "" {
		err = u.load(ctx, client, table, ds.Month, runID, rows)
	} else {
		err = u.insert(ctx, table, rows)
	}
	if err != nil { return "", err }

	u.logger().Info("export done", "run_id", runID, "rows", len(rows), "month", ds.Month.String(),
		"took", time.Since(tStart))
	return runID, nil
}

// }}}
// {{{ u.insert

func (u Uploader)insert(ctx context.Context, table *bigquery.Table, rows []*flightwx.JoinedRecordForBigQuery) error {
	inserter := table.Inserter()
	for _,b := range batches(len(rows), u.BatchSize) {
		if err := inserter.Put(ctx, rows[b[0]:b[1]]); err != nil {
			return fmt.Errorf("inserting rows [%d,%d): %w", b[0], b[1], err)
		}
	}
	return nil
}

// }}}
// {{{ u.load

// load stages the rows as a GCS file, then loads that file into the table.
func (u Uploader)load(ctx context.Context, client *bigquery.Client, table *bigquery.Table, ym flightwx.YearMonth, runID string, rows []*flightwx.JoinedRecordForBigQuery) error {
	gcsClient,err := storage.NewClient(ctx, u.options()...)
	if err != nil { return fmt.Errorf("creating storage client: %w", err) }
	defer gcsClient.Close()

	filename := fmt.Sprintf("flightwx-%s-%s.json", ym, runID)
	w := gcsClient.Bucket(u.StagingBucket).Object(filename).NewWriter(ctx)
	w.ContentType = "application/json"
	if _,err := WriteNDJSON(w, rows); err != nil {
		w.Close()
		return fmt.Errorf("writing gs://%s/%s: %w", u.StagingBucket, filename, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing gs://%s/%s: %w", u.StagingBucket, filename, err)
	}
	u.logger().Info("staged load file", "bucket", u.StagingBucket, "object", filename, "rows", len(rows))

	gcsSrc := bigquery.NewGCSReference(fmt.Sprintf("gs://%s/%s", u.StagingBucket, filename))
	gcsSrc.SourceFormat = bigquery.JSON

	loader := table.LoaderFrom(gcsSrc)
	loader.WriteDisposition = bigquery.WriteAppend

	job,err := loader.Run(ctx)
	if err != nil { return fmt.Errorf("submitting load job: %w", err) }

	status,err := job.Wait(ctx)
	if err != nil { return fmt.Errorf("waiting for load job: %w", err) }
	if err := status.Err(); err != nil {
		for i,innerErr := range status.Errors {
			u.logger().Error("load job error", "i", i, "err", innerErr)
		}
		return fmt.Errorf("load job: %w", err)
	}
	return nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
