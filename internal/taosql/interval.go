package taosql

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
)

// Interval is a validated downsampling interval: a positive integer count
// and a unit among s, m, h, d.
type Interval struct {
	Count int
	Unit  byte
}

var unitDurations = map[byte]time.Duration{
	's': time.Second,
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
}

// ParseInterval validates value against the interval grammar <int><s|m|h|d>.
func ParseInterval(value string) (Interval, error) {
	value = strings.TrimSpace(value)
	if len(value) < 2 {
		return Interval{}, invalidInterval(value)
	}
	unit := value[len(value)-1]
	if _, ok := unitDurations[unit]; !ok {
		return Interval{}, invalidInterval(value)
	}
	count, err := strconv.Atoi(value[:len(value)-1])
	if err != nil || count <= 0 {
		return Interval{}, invalidInterval(value)
	}
	return Interval{Count: count, Unit: unit}, nil
}

func invalidInterval(value string) error {
	return database.NewError(database.KindInvalidInterval,
		"interval %q does not match <integer><s|m|h|d>", value)
}

// Duration converts the interval to a wall-clock duration.
func (i Interval) Duration() time.Duration {
	return time.Duration(i.Count) * unitDurations[i.Unit]
}

// String renders the interval in TDengine INTERVAL() syntax, e.g. "1h".
func (i Interval) String() string {
	return fmt.Sprintf("%d%c", i.Count, i.Unit)
}

// IntervalFor picks a downsampling interval that divides span into roughly
// targetBuckets buckets, snapped to a conventional ladder. Used when the
// dashboard caller does not choose an interval explicitly.
func IntervalFor(span time.Duration, targetBuckets int) Interval {
	if targetBuckets <= 0 {
		targetBuckets = 60
	}
	ladder := []Interval{
		{1, 's'}, {5, 's'}, {10, 's'}, {30, 's'},
		{1, 'm'}, {5, 'm'}, {15, 'm'}, {30, 'm'},
		{1, 'h'}, {3, 'h'}, {6, 'h'}, {12, 'h'},
		{1, 'd'}, {7, 'd'},
	}
	want := span / time.Duration(targetBuckets)
	for _, step := range ladder {
		if step.Duration() >= want {
			return step
		}
	}
	return ladder[len(ladder)-1]
}

// Buckets reports how many buckets the interval produces over span,
// rounding up.
func (i Interval) Buckets(span time.Duration) int {
	d := i.Duration()
	if d <= 0 || span <= 0 {
		return 0
	}
	return int((span + d - 1) / d)
}
