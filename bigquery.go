package flightwx

import(
	"math"

	"cloud.google.com/go/bigquery"
)

// JoinedRecordForBigQuery is a flattened JoinedRecord, designed for import into BigQuery for
// ad-hoc analysis. The Date is kept in the same format as BQ's DATE() function. The json
// tags match, so the same struct feeds streaming inserts and newline-delimited load files.
type JoinedRecordForBigQuery struct {
	RunID        string `bigquery:"run_id" json:"run_id"`
	Month        string `bigquery:"month" json:"month"`

	Date         string `bigquery:"date" json:"date"`
	CarrierCode  string `bigquery:"carrier" json:"carrier"`
	Airline      string `bigquery:"airline" json:"airline"`
	AirportID    string `bigquery:"airport_id" json:"airport_id"`
	Airport      string `bigquery:"airport" json:"airport"`
	City         string `bigquery:"city" json:"city"`
	MetricType   string `bigquery:"metric_type" json:"metric_type"`
	Minutes      bigquery.NullFloat64 `bigquery:"minutes" json:"minutes"`

	AirportFlightCount int64 `bigquery:"airport_flight_count" json:"airport_flight_count"`
	AirlineFlightCount int64 `bigquery:"airline_flight_count" json:"airline_flight_count"`

	StationFile   string  `bigquery:"station_file" json:"station_file"`
	StationDistKM float64 `bigquery:"station_dist_km" json:"station_dist_km"`
}

func (jr JoinedRecord)ForBigQuery(runID string, ym YearMonth) *JoinedRecordForBigQuery {
	return &JoinedRecordForBigQuery{
		RunID: runID,
		Month: ym.String(),
		Date: jr.Date,
		CarrierCode: jr.CarrierCode,
		Airline: jr.AirlineName,
		AirportID: jr.AirportID,
		Airport: jr.AirportName,
		City: jr.City,
		MetricType: string(jr.MetricType),
		Minutes: bigquery.NullFloat64{Float64:jr.Minutes, Valid:!math.IsNaN(jr.Minutes)},
		AirportFlightCount: int64(jr.AirportFlightCount),
		AirlineFlightCount: int64(jr.AirlineFlightCount),
		StationFile: jr.Station.StationFile,
		StationDistKM: jr.Station.DistKM,
	}
}
