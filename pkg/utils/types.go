package utils

import (
	"encoding/json"
	"fmt"
	"time"
)

/**************************************************************************************************
** TPhoto represents a single candidate photo discovered on disk. The prefix is the grouping
** key extracted from the filename (leading digits and underscores by default).
**************************************************************************************************/
type TPhoto struct {
	Path   string `json:"path"`   // Absolute or root-relative path on disk
	Name   string `json:"name"`   // Base filename including extension
	Prefix string `json:"prefix"` // Grouping key derived from the filename
}

/**************************************************************************************************
** TPhotoGroup represents an ordered run of photos sharing the same filename prefix.
** The photo order is fixed at construction time and is never changed afterwards; every
** downstream stage relies on it.
**************************************************************************************************/
type TPhotoGroup struct {
	Key    string   `json:"key"`    // Shared prefix of the group
	Photos []TPhoto `json:"photos"` // Photos in listing order
}

/**************************************************************************************************
** TPhase represents one ordered stage of a work session with its own elapsed-time budget.
** Offset is idle time inserted before the phase's first photo; Budget is the elapsed time the
** phase's photos are spread across. Both are expressed in seconds and are never negative.
**************************************************************************************************/
type TPhase struct {
	Name   string        `json:"name"`   // Phase label, numeric prefix and date stripped
	Dir    string        `json:"dir"`    // Directory the phase listing came from
	Groups []TPhotoGroup `json:"groups"` // Ordered photo groups of this phase
	Budget float64       `json:"budget"` // Total elapsed seconds allotted to this phase
	Offset float64       `json:"offset"` // Idle seconds before the phase's first photo
}

/**************************************************************************************************
** TSession represents one independent work session: a dated folder whose phases share a single
** running clock. Sessions never share state with each other.
**************************************************************************************************/
type TSession struct {
	Name   string    `json:"name"`   // Session folder name
	Dir    string    `json:"dir"`    // Session directory path
	Date   time.Time `json:"date"`   // Nominal date the session starts on
	Phases []TPhase  `json:"phases"` // Phases in processing order
}

/**************************************************************************************************
** TStampRecord is the immutable output unit: one photo bound to its assigned timestamp and
** location. Records are only ever created, never mutated.
**************************************************************************************************/
type TStampRecord struct {
	Photo     TPhoto    `json:"photo"`     // The photo being stamped
	Timestamp time.Time `json:"timestamp"` // Assigned capture timestamp
	Location  string    `json:"location"`  // Assigned location text, may contain newlines
}

/**************************************************************************************************
** TReportEntry records a single recoverable failure with the item it affected.
**************************************************************************************************/
type TReportEntry struct {
	Item   string `json:"item"`   // Photo path, pair description or session folder
	Reason string `json:"reason"` // Human-readable cause
}

/**************************************************************************************************
** TRunReport aggregates everything that went wrong during a run without stopping it. It is
** surfaced at the end of every run, even a fully successful one.
**************************************************************************************************/
type TRunReport struct {
	RunID           string         `json:"run_id"`           // Unique identifier of the run
	Stamped         int            `json:"stamped"`          // Photos successfully dispatched
	ScoreFallbacks  []TReportEntry `json:"score_fallbacks"`  // Pairs that used the default distance
	RenderFailures  []TReportEntry `json:"render_failures"`  // Photos the renderer could not produce
	SkippedSessions []TReportEntry `json:"skipped_sessions"` // Sessions that could not be sequenced
}

/**************************************************************************************************
** HasFailures reports whether any recoverable failure was recorded.
**
** @return bool - True if at least one failure entry exists
**************************************************************************************************/
func (r *TRunReport) HasFailures() bool {
	return len(r.ScoreFallbacks) > 0 || len(r.RenderFailures) > 0 || len(r.SkippedSessions) > 0
}

/**************************************************************************************************
** Merge folds another report into this one, keeping this report's RunID. Used to combine
** per-session reports into the run-wide report.
**
** @param other - Report to fold in
**************************************************************************************************/
func (r *TRunReport) Merge(other TRunReport) {
	r.Stamped += other.Stamped
	r.ScoreFallbacks = append(r.ScoreFallbacks, other.ScoreFallbacks...)
	r.RenderFailures = append(r.RenderFailures, other.RenderFailures...)
	r.SkippedSessions = append(r.SkippedSessions, other.SkippedSessions...)
}

/**************************************************************************************************
** TSeconds is a duration in whole or fractional seconds that accepts two JSON spellings:
** a plain number (seconds) or a clock string ("HH:MM:SS"). The original report configs used
** clock strings for every duration, so both must keep working.
**************************************************************************************************/
type TSeconds float64

func (s *TSeconds) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*s = TSeconds(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("duration must be a number of seconds or a HH:MM:SS string: %w", err)
	}
	secs, err := TimeToSeconds(str)
	if err != nil {
		return err
	}
	*s = TSeconds(secs)
	return nil
}

/**************************************************************************************************
** TConfig is the flat JSON configuration file (config.json by default). Durations and offsets
** are keyed by phase label; DefaultDuration covers phases without an explicit entry. A phase
** with neither is a fatal configuration error.
**************************************************************************************************/
type TConfig struct {
	FolderPath      string              `json:"folder_path"`                // Root folder containing session folders
	StartTime       string              `json:"start_time"`                 // Clock start as HH:MM:SS
	Date            string              `json:"date,omitempty"`             // Optional nominal date DD.MM.YYYY, overrides folder names
	Locale          string              `json:"locale,omitempty"`           // Stamp locale, "ru" (default) or "en"
	Locations       []string            `json:"locations"`                  // Location texts to pick from, must not be empty
	Durations       map[string]TSeconds `json:"durations,omitempty"`        // Phase label -> budget
	Offsets         map[string]TSeconds `json:"offsets,omitempty"`          // Phase label -> idle time before the phase
	DefaultDuration *TSeconds           `json:"default_duration,omitempty"` // Budget for phases without an entry
	DefaultOffset   *TSeconds           `json:"default_offset,omitempty"`   // Offset for phases without an entry
	JitterFraction  float64             `json:"jitter_fraction,omitempty"`  // Max jitter as a fraction of the mean gap
	MinDelta        float64             `json:"min_delta,omitempty"`        // Minimum seconds between consecutive photos
	DefaultDistance *float64            `json:"default_distance,omitempty"` // Score substituted when a photo cannot be decoded
	GroupPattern    string              `json:"group_pattern,omitempty"`    // Override for the filename grouping regex
	Extensions      []string            `json:"extensions,omitempty"`       // Override for the photo extension whitelist
	Rotate          *bool               `json:"rotate,omitempty"`           // Rotate landscape photos before stamping
	PickOne         bool                `json:"pick_one,omitempty"`         // Keep only the best photo of each group
}

/**************************************************************************************************
** Validate checks the parts of the configuration that every run depends on. Phase budget
** coverage can only be checked once phases are discovered, so it is not validated here.
**
** @return error - First validation problem found, nil when the config is usable
**************************************************************************************************/
func (c *TConfig) Validate() error {
	if c.FolderPath == "" {
		return fmt.Errorf("folder_path is not set")
	}
	if _, err := TimeToSeconds(c.StartTime); err != nil {
		return fmt.Errorf("invalid start_time %q: %w", c.StartTime, err)
	}
	if len(RemoveEmptyStrings(c.Locations)) == 0 {
		return fmt.Errorf("locations must contain at least one non-empty entry")
	}
	if c.Date != "" {
		if _, err := time.Parse(DateLayout, c.Date); err != nil {
			return fmt.Errorf("invalid date %q, expected DD.MM.YYYY: %w", c.Date, err)
		}
	}
	if c.JitterFraction < 0 || c.JitterFraction >= 1 {
		return fmt.Errorf("jitter_fraction must be in [0, 1), got %v", c.JitterFraction)
	}
	if c.MinDelta < 0 {
		return fmt.Errorf("min_delta must not be negative, got %v", c.MinDelta)
	}
	for label, d := range c.Durations {
		if d < 0 {
			return fmt.Errorf("duration for phase %q must not be negative", label)
		}
	}
	for label, o := range c.Offsets {
		if o < 0 {
			return fmt.Errorf("offset for phase %q must not be negative", label)
		}
	}
	return nil
}

/**************************************************************************************************
** DurationFor resolves the budget for a phase label, falling back to the default when the
** label has no explicit entry.
**
** @param label - Phase label to look up
** @return float64 - Budget in seconds
** @return bool - False when neither an entry nor a default exists
**************************************************************************************************/
func (c *TConfig) DurationFor(label string) (float64, bool) {
	if d, ok := c.Durations[label]; ok {
		return float64(d), true
	}
	if c.DefaultDuration != nil {
		return float64(*c.DefaultDuration), true
	}
	return 0, false
}

/**************************************************************************************************
** OffsetFor resolves the pre-phase idle time for a phase label. A missing entry and a missing
** default both mean zero offset; offsets are optional everywhere.
**
** @param label - Phase label to look up
** @return float64 - Offset in seconds
**************************************************************************************************/
func (c *TConfig) OffsetFor(label string) float64 {
	if o, ok := c.Offsets[label]; ok {
		return float64(o)
	}
	if c.DefaultOffset != nil {
		return float64(*c.DefaultOffset)
	}
	return 0
}

/**************************************************************************************************
** FallbackDistance returns the dissimilarity score substituted for pairs that could not be
** decoded. Defaults to a mid-range value so a broken photo still earns a plausible gap.
**
** @return float64 - Score in [0, 1]
**************************************************************************************************/
func (c *TConfig) FallbackDistance() float64 {
	if c.DefaultDistance != nil {
		return *c.DefaultDistance
	}
	return DefaultDistance
}

/**************************************************************************************************
** ImageExtensions returns the photo extension whitelist candidate listings are filtered by,
** falling back to the default set when the config does not narrow it.
**
** @return []string - Lowercase extensions including the leading dot
**************************************************************************************************/
func (c *TConfig) ImageExtensions() []string {
	if len(c.Extensions) > 0 {
		return c.Extensions
	}
	return DefaultImageExtensions
}

/**************************************************************************************************
** RotateEnabled reports whether landscape photos should be rotated before stamping.
** Enabled unless the config explicitly turns it off.
**
** @return bool - True when rotation should run
**************************************************************************************************/
func (c *TConfig) RotateEnabled() bool {
	if c.Rotate != nil {
		return *c.Rotate
	}
	return true
}
