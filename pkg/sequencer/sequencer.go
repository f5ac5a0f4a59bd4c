package sequencer

import (
	"fmt"
	"math/rand"

	"github.com/AlenaYashkina/photo-reports/pkg/allocator"
	"github.com/AlenaYashkina/photo-reports/pkg/utils"
	"github.com/sirupsen/logrus"
)

/**************************************************************************************************
** PairScorer supplies dissimilarity scores for consecutive photo pairs. The image estimator
** implements it in production; tests substitute fixed scores.
**************************************************************************************************/
type PairScorer interface {
	PairScores(paths []string) ([]float64, []int)
}

/**************************************************************************************************
** Sequencer walks a session's phases in order and assigns every photo a timestamp. It owns the
** only clock of the run; phases and groups advance it, nothing ever rewinds it, and it never
** resets mid-session. Randomness comes exclusively from the seeded source handed in, so a run
** is reproducible from its seed.
**************************************************************************************************/
type Sequencer struct {
	scorer     PairScorer
	jitterFrac float64
	minDelta   float64
	rng        *rand.Rand
	logger     *logrus.Logger
}

/**************************************************************************************************
** New creates a sequencer.
**
** @param scorer - Pair score supplier
** @param jitterFrac - Max jitter as a fraction of the mean gap, in [0, 1); zero disables jitter
** @param minDelta - Minimum seconds between consecutive photos in a group
** @param rng - Seeded random source for jitter
** @param logger - Logger instance
** @return *Sequencer - Configured sequencer
**************************************************************************************************/
func New(scorer PairScorer, jitterFrac, minDelta float64, rng *rand.Rand, logger *logrus.Logger) *Sequencer {
	return &Sequencer{
		scorer:     scorer,
		jitterFrac: jitterFrac,
		minDelta:   minDelta,
		rng:        rng,
		logger:     logger,
	}
}

/**************************************************************************************************
** Run sequences one session. The clock starts at the session date plus the configured start
** seconds and carries across phases and groups: a phase offset advances it silently, a group
** advances it by exactly the group's budget, and the next phase picks up where the previous
** one ended. Every photo of the session yields exactly one record; scoring fallbacks are
** reported but never change the record count.
**
** @param session - Session with discovered phases and groups
** @param startSec - Seconds-of-day the session clock starts at
** @return []utils.TStampRecord - One record per photo, in processing order
** @return utils.TRunReport - Recoverable failures of this session
**************************************************************************************************/
func (s *Sequencer) Run(session utils.TSession, startSec float64) ([]utils.TStampRecord, utils.TRunReport) {
	clock := NewClock(session.Date, startSec)
	records := make([]utils.TStampRecord, 0)
	report := utils.TRunReport{}

	for _, phase := range session.Phases {
		if phase.Offset > 0 {
			clock = clock.Advance(phase.Offset)
		}

		s.logger.Debugf("Phase %s: %d group(s), budget %s, offset %s",
			phase.Name, len(phase.Groups),
			utils.SecondsToClock(int(phase.Budget)), utils.SecondsToClock(int(phase.Offset)))

		budgets := splitBudget(phase.Budget, phase.Groups)
		for gi, group := range phase.Groups {
			var groupRecords []utils.TStampRecord
			groupRecords, clock = s.sequenceGroup(group, budgets[gi], clock, &report)
			records = append(records, groupRecords...)
		}
	}

	return records, report
}

/**************************************************************************************************
** splitBudget divides a phase budget among the phase's groups in proportion to their pair
** counts, so every consecutive pair of the phase competes for the same budget regardless of
** which group it sits in. Groups of one photo take no share. The last sharing group absorbs
** the floating-point remainder, keeping the phase total exact.
**
** @param budget - Phase budget in seconds
** @param groups - The phase's groups
** @return []float64 - Budget share per group, summing to the phase budget when any group
**                     has pairs, all zero otherwise
**************************************************************************************************/
func splitBudget(budget float64, groups []utils.TPhotoGroup) []float64 {
	shares := make([]float64, len(groups))

	totalPairs := 0
	for _, group := range groups {
		if len(group.Photos) > 1 {
			totalPairs += len(group.Photos) - 1
		}
	}
	if totalPairs == 0 || budget == 0 {
		return shares
	}

	used := 0.0
	last := -1
	for i, group := range groups {
		pairs := len(group.Photos) - 1
		if pairs <= 0 {
			continue
		}
		shares[i] = float64(pairs) / float64(totalPairs) * budget
		used += shares[i]
		last = i
	}
	shares[last] += budget - used
	return shares
}

/**************************************************************************************************
** sequenceGroup assigns timestamps inside one group. The first photo sits at the current
** clock; every later photo sits at the group start plus the accumulated allocator gaps, with
** optional jitter on interior photos. The first and last photos are never jittered, so the
** clock leaves the group at exactly group start plus group budget and budgets stay exact
** across the whole session.
**
** @param group - Group to sequence
** @param budget - Elapsed seconds this group spans
** @param clock - Clock at the group's first photo
** @param report - Session report collecting scoring fallbacks
** @return []utils.TStampRecord - One record per photo of the group
** @return Clock - Clock after the group
**************************************************************************************************/
func (s *Sequencer) sequenceGroup(group utils.TPhotoGroup, budget float64, clock Clock, report *utils.TRunReport) ([]utils.TStampRecord, Clock) {
	count := len(group.Photos)
	records := make([]utils.TStampRecord, 0, count)
	if count == 0 {
		return records, clock
	}

	records = append(records, utils.TStampRecord{Photo: group.Photos[0], Timestamp: clock.Time()})
	if count == 1 {
		return records, clock
	}

	paths := make([]string, count)
	for i, photo := range group.Photos {
		paths[i] = photo.Path
	}

	scores, fallbacks := s.scorer.PairScores(paths)
	for _, pair := range fallbacks {
		report.ScoreFallbacks = append(report.ScoreFallbacks, utils.TReportEntry{
			Item:   fmt.Sprintf("%s ~ %s", paths[pair], paths[pair+1]),
			Reason: utils.REASON_DECODE_FALLBACK,
		})
	}

	deltas, err := allocator.AllocateChecked(scores, budget, s.minDelta)
	if err != nil {
		/******************************************************************************************
		** Unreachable with a validated config and a sane scorer. Degrade to collapsed gaps
		** rather than losing the group's photos.
		******************************************************************************************/
		s.logger.Errorf("Allocation failed for group %s: %v", group.Key, err)
		deltas = make([]float64, count-1)
	}

	/**********************************************************************************************
	** Cumulative offsets from the group start. base[i] is photo i's nominal position;
	** assigned[i] is its position after jitter and clamping.
	**********************************************************************************************/
	base := make([]float64, count)
	for i := 1; i < count; i++ {
		base[i] = base[i-1] + deltas[i-1]
	}

	assigned := make([]float64, count)
	meanDelta := budget / float64(count-1)
	for i := 1; i < count; i++ {
		offset := base[i]
		if s.jitterFrac > 0 && i < count-1 {
			offset += (s.rng.Float64()*2 - 1) * s.jitterFrac * meanDelta
			if offset < assigned[i-1] {
				offset = assigned[i-1]
			}
			if offset > base[i+1] {
				offset = base[i+1]
			}
		}
		assigned[i] = offset
		records = append(records, utils.TStampRecord{
			Photo:     group.Photos[i],
			Timestamp: clock.Advance(offset).Time(),
		})
	}

	if s.logger.Level == logrus.DebugLevel {
		for i, record := range records {
			s.logger.WithFields(logrus.Fields{
				"Name": record.Photo.Name,
				"Time": record.Timestamp.Format("2006-01-02 15:04:05"),
			}).Debugf("\tPhoto %d/%d", i+1, count)
		}
	}

	return records, clock.Advance(base[count-1])
}
