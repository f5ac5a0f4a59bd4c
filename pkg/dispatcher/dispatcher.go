package dispatcher

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/AlenaYashkina/photo-reports/pkg/utils"
	"github.com/sirupsen/logrus"
)

/**************************************************************************************************
** Supported stamp locales. Russian is the default and matches the reports this tool was built
** for; English is the fallback for everything else.
**************************************************************************************************/
const (
	LocaleRU      = "ru"
	LocaleEN      = "en"
	DefaultLocale = LocaleRU
)

/**************************************************************************************************
** Russian month abbreviations as they appear on a stamp, indexed by time.Month - 1. May is the
** genitive "мая", not the nominative "май".
**************************************************************************************************/
var russianMonths = [12]string{
	"янв", "фев", "мар", "апр", "мая", "июн",
	"июл", "авг", "сен", "окт", "ноя", "дек",
}

/**************************************************************************************************
** Renderer is the collaborator that burns a text block into a copy of a photo. Target previews
** the output path without rendering anything, for dry runs and plan output.
**************************************************************************************************/
type Renderer interface {
	Render(rec utils.TStampRecord, text []string) error
	Target(path string) string
}

/**************************************************************************************************
** Dispatcher hands finished stamp records to the renderer. It owns the per-photo location pick
** and the locale formatting; the renderer only ever sees ready-to-draw text lines.
**************************************************************************************************/
type Dispatcher struct {
	renderer  Renderer
	locations []string
	locale    string
	rng       *rand.Rand
	dryRun    bool
	logger    *logrus.Logger
}

/**************************************************************************************************
** New creates a dispatcher. An empty locale means Russian; an unsupported locale falls back to
** English with a single warning for the whole run.
**
** @param renderer - Rendering collaborator
** @param locations - Non-empty list of location texts to pick from
** @param locale - Stamp locale, "ru" or "en"
** @param rng - Seeded random source for location picks
** @param dryRun - When true, log intended outputs and render nothing
** @param logger - Logger instance
** @return *Dispatcher - Configured dispatcher
**************************************************************************************************/
func New(renderer Renderer, locations []string, locale string, rng *rand.Rand, dryRun bool, logger *logrus.Logger) *Dispatcher {
	switch locale {
	case "":
		locale = DefaultLocale
	case LocaleRU, LocaleEN:
	default:
		logger.Warnf("⚠️  Unsupported locale %q, stamps will use %q", locale, LocaleEN)
		locale = LocaleEN
	}
	return &Dispatcher{
		renderer:  renderer,
		locations: locations,
		locale:    locale,
		rng:       rng,
		dryRun:    dryRun,
		logger:    logger,
	}
}

/**************************************************************************************************
** Dispatch assigns each record a location, formats its stamp text and hands it to the renderer.
** Location picks are written back into the records so callers can display them afterwards.
** A render failure is reported and skipped; the remaining records still go through. Dry runs
** count every record as stamped without touching any file.
**
** @param records - Sequenced records to stamp
** @return utils.TRunReport - Stamped count and render failures
**************************************************************************************************/
func (d *Dispatcher) Dispatch(records []utils.TStampRecord) utils.TRunReport {
	report := utils.TRunReport{}

	for i := range records {
		rec := &records[i]
		rec.Location = d.locations[d.rng.Intn(len(d.locations))]

		if d.dryRun {
			d.logger.Infof("Would stamp %s -> %s", rec.Photo.Name, d.renderer.Target(rec.Photo.Path))
			report.Stamped++
			continue
		}

		if err := d.renderer.Render(*rec, d.StampText(*rec)); err != nil {
			d.logger.Warnf("⚠️  Could not stamp %s: %v", rec.Photo.Path, err)
			report.RenderFailures = append(report.RenderFailures, utils.TReportEntry{
				Item:   rec.Photo.Path,
				Reason: fmt.Sprintf("%s: %v", utils.REASON_RENDER_FAILURE, err),
			})
			continue
		}
		report.Stamped++
	}

	return report
}

/**************************************************************************************************
** StampText builds the text block for one record: the formatted timestamp first, then the
** location split on newlines so multi-line addresses come out as separate lines.
**
** @param rec - Record carrying timestamp and location
** @return []string - Lines to draw, top to bottom
**************************************************************************************************/
func (d *Dispatcher) StampText(rec utils.TStampRecord) []string {
	return append([]string{FormatStamp(rec.Timestamp, d.locale)}, strings.Split(rec.Location, "\n")...)
}

/**************************************************************************************************
** FormatStamp renders a timestamp the way it appears on a stamp. Any locale other than "ru"
** formats as English.
**
** @param t - Timestamp to format
** @param locale - Stamp locale
** @return string - Formatted timestamp line
**************************************************************************************************/
func FormatStamp(t time.Time, locale string) string {
	if locale == LocaleRU {
		return fmt.Sprintf("%02d %s. %d г. %s",
			t.Day(), russianMonths[t.Month()-1], t.Year(), t.Format(utils.ClockLayout))
	}
	return t.Format("02 Jan 2006 15:04:05")
}
