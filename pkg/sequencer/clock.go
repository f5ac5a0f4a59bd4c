package sequencer

import (
	"time"

	"github.com/AlenaYashkina/photo-reports/pkg/utils"
)

/**************************************************************************************************
** Clock is the running wall clock of one session: a nominal date plus seconds since midnight.
** It is a value type and is threaded explicitly through sequencing; advancing returns a new
** Clock, so no hidden clock state exists anywhere.
**
** Rollover rule: a seconds value at or past 86400 carries into the date, repeatedly, so a
** budget longer than a day walks the date forward as many days as needed. Seconds keep their
** fractional part internally; only rendering truncates to whole seconds.
**************************************************************************************************/
type Clock struct {
	Date time.Time // Midnight of the nominal date
	Sec  float64   // Seconds since midnight on Date
}

/**************************************************************************************************
** NewClock creates a clock at the given seconds-of-day on the given date. The date's time
** components are discarded; only its calendar day matters.
**
** @param date - Nominal date of the session
** @param sec - Seconds since midnight to start at
** @return Clock - Normalized clock
**************************************************************************************************/
func NewClock(date time.Time, sec float64) Clock {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return Clock{Date: midnight, Sec: sec}.normalized()
}

/**************************************************************************************************
** Advance returns the clock moved forward by the given number of seconds, with the rollover
** rule applied. Negative amounts are not part of the contract; time only moves forward.
**
** @param seconds - Seconds to move forward
** @return Clock - New clock position
**************************************************************************************************/
func (c Clock) Advance(seconds float64) Clock {
	c.Sec += seconds
	return c.normalized()
}

/**************************************************************************************************
** Time renders the clock as a concrete timestamp, truncated to whole seconds.
**
** @return time.Time - Date plus seconds-of-day
**************************************************************************************************/
func (c Clock) Time() time.Time {
	return c.Date.Add(time.Duration(int64(c.Sec)) * time.Second)
}

func (c Clock) normalized() Clock {
	for c.Sec >= utils.SecondsPerDay {
		c.Date = c.Date.AddDate(0, 0, 1)
		c.Sec -= utils.SecondsPerDay
	}
	return c
}
