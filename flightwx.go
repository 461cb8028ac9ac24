// This package contains the types for the flight/weather dataset, and the pure functions that
// reshape, filter and join them. No I/O; the loaders live in bts/ and gsod/.
package flightwx

const(
	// An airport or airline is 'significant' if it averages more than this many flights
	// per hour, across every day in the dataset. Never change these values without
	// rebuilding the dataset.
	MinFlightsPerHour = 2
	HoursPerDay = 24
)
