package tool

import (
	"context"
	"fmt"
	"time"
)

// Clock reports the current UTC date and time in a handful of formats.
//
// The clock source is injectable for tests; the zero value and NewClock
// both use the wall clock.
type Clock struct {
	now func() time.Time
}

func NewClock() *Clock { return &Clock{} }

func (c *Clock) Name() string { return "datetime" }

func (c *Clock) Description() string {
	return "Gets the current date and time. " +
		"Can return in different formats: " +
		"'iso' (ISO 8601 format), " +
		"'human' (human-readable), " +
		"'timestamp' (Unix timestamp), " +
		"or 'full' (detailed information)"
}

func (c *Clock) Parameters() []Parameter {
	return []Parameter{
		{
			Name:        "format",
			Type:        "string",
			Description: "Output format: iso, human, timestamp, or full",
			Required:    false,
			Enum:        []string{"iso", "human", "timestamp", "full"},
		},
	}
}

func (c *Clock) Execute(ctx context.Context, args map[string]any) (Result, error) {
	format := "human"
	if v, ok := args["format"].(string); ok && v != "" {
		format = v
	}

	nowFn := c.now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()

	var output string
	switch format {
	case "iso":
		output = now.Format(time.RFC3339)
	case "timestamp":
		output = fmt.Sprintf("%d", now.Unix())
	case "full":
		output = fmt.Sprintf(
			"Date: %s\nTime: %s UTC\nWeekday: %s\nTimestamp: %d\nISO: %s",
			now.Format("2006-01-02"),
			now.Format("15:04:05"),
			now.Weekday(),
			now.Unix(),
			now.Format(time.RFC3339),
		)
	case "human":
		output = now.Format("Monday, January 2, 2006 at 3:04 PM UTC")
	default:
		return Result{Success: false, Error: fmt.Sprintf("unknown format %q", format)}, nil
	}

	return Result{Success: true, Output: output}, nil
}
