package booking

// Config holds runtime knobs for the booking service.
type Config struct {
	Terms        []string
	RecentLimit  int
	HistoryLimit int
}
