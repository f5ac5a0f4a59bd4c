package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/AlenaYashkina/photo-reports/pkg/grouper"
	"github.com/AlenaYashkina/photo-reports/pkg/utils"
	"github.com/sirupsen/logrus"
)

var dateRe = regexp.MustCompile(utils.DatePattern)

/**************************************************************************************************
** Scanner turns the folder tree under the configured root into sessions ready for sequencing.
** Every immediate subdirectory of the root is one session. A session folder with dated phase
** subfolders is a structured session; a folder holding photos directly is a leaf session with
** a single phase.
**************************************************************************************************/
type Scanner struct {
	cfg    *utils.TConfig
	logger *logrus.Logger
}

/**************************************************************************************************
** NewScanner creates a scanner for the configured root.
**
** @param cfg - Validated run configuration
** @param logger - Logger instance
** @return *Scanner - Configured scanner
**************************************************************************************************/
func NewScanner(cfg *utils.TConfig, logger *logrus.Logger) *Scanner {
	return &Scanner{cfg: cfg, logger: logger}
}

/**************************************************************************************************
** Scan discovers every session under the root with its phases, groups and budgets resolved.
** Sessions without a usable date or without any candidate photo are skipped and reported, not
** fatal. An unreadable directory or a discovered phase without a budget is fatal: the run
** cannot claim a complete report over work it could not enumerate or time.
**
** @return []utils.TSession - Sessions in numeric folder order
** @return utils.TRunReport - Skipped sessions of this scan
** @return error - Unreadable directory or missing phase budget
**************************************************************************************************/
func (s *Scanner) Scan() ([]utils.TSession, utils.TRunReport, error) {
	report := utils.TRunReport{}

	names, err := listDirNames(s.cfg.FolderPath)
	if err != nil {
		return nil, report, fmt.Errorf("could not list root %s: %w", s.cfg.FolderPath, err)
	}

	sessions := make([]utils.TSession, 0, len(names))
	for _, name := range names {
		session, skipReason, err := s.buildSession(name)
		if err != nil {
			return nil, report, err
		}
		if skipReason != "" {
			s.logger.Warnf("⚠️  Skipping session %s: %s", name, skipReason)
			report.SkippedSessions = append(report.SkippedSessions, utils.TReportEntry{
				Item:   name,
				Reason: skipReason,
			})
			continue
		}
		sessions = append(sessions, session)
	}
	return sessions, report, nil
}

/**************************************************************************************************
** buildSession assembles one session folder. The returned skip reason is non-empty when the
** session cannot be sequenced but the run should continue without it.
**************************************************************************************************/
func (s *Scanner) buildSession(name string) (utils.TSession, string, error) {
	dir := filepath.Join(s.cfg.FolderPath, name)
	session := utils.TSession{Name: name, Dir: dir}

	subdirs, err := listDirNames(dir)
	if err != nil {
		return session, "", fmt.Errorf("could not list session %s: %w", dir, err)
	}

	if len(subdirs) == 0 {
		return s.buildLeafSession(session)
	}
	return s.buildStructuredSession(session, subdirs)
}

/**************************************************************************************************
** buildLeafSession handles a session folder holding photos directly: one phase, named by the
** folder label, dated by the folder name.
**************************************************************************************************/
func (s *Scanner) buildLeafSession(session utils.TSession) (utils.TSession, string, error) {
	date, ok := s.sessionDate(session.Name)
	if !ok {
		return session, utils.REASON_NO_DATE, nil
	}
	session.Date = date

	candidates, err := ListCandidates(session.Dir, s.cfg.ImageExtensions())
	if err != nil {
		return session, "", err
	}
	if len(candidates) == 0 {
		return session, utils.REASON_NO_PHOTOS, nil
	}

	phase, err := s.buildPhase(PhaseLabel(session.Name), session.Dir, candidates)
	if err != nil {
		return session, "", err
	}
	session.Phases = []utils.TPhase{phase}
	return session, "", nil
}

/**************************************************************************************************
** buildStructuredSession handles a session folder whose subfolders are the phases. The date
** comes from the session folder name or, failing that, the first phase folder name. Within
** the second phase folder, "1_" photos belong to that phase and "2_" photos are carried to
** the front of the third phase's listing; with only two phase folders there is nowhere to
** carry them, so the listing stays whole.
**************************************************************************************************/
func (s *Scanner) buildStructuredSession(session utils.TSession, subdirs []string) (utils.TSession, string, error) {
	date, ok := s.sessionDate(session.Name)
	if !ok {
		date, ok = s.sessionDate(subdirs[0])
	}
	if !ok {
		return session, utils.REASON_NO_DATE, nil
	}
	session.Date = date

	listings := make([][]string, len(subdirs))
	for i, sub := range subdirs {
		candidates, err := ListCandidates(filepath.Join(session.Dir, sub), s.cfg.ImageExtensions())
		if err != nil {
			return session, "", err
		}
		listings[i] = candidates
	}

	if len(subdirs) > 2 && len(listings[1]) > 0 {
		before, during := grouper.SplitBeforeDuring(listings[1])
		listings[1] = before
		listings[2] = append(during, listings[2]...)
	}

	session.Phases = make([]utils.TPhase, 0, len(subdirs))
	for i, sub := range subdirs {
		if len(listings[i]) == 0 {
			s.logger.Debugf("Phase folder %s holds no candidates, skipping", sub)
			continue
		}
		phase, err := s.buildPhase(PhaseLabel(sub), filepath.Join(session.Dir, sub), listings[i])
		if err != nil {
			return session, "", err
		}
		session.Phases = append(session.Phases, phase)
	}
	if len(session.Phases) == 0 {
		return session, utils.REASON_NO_PHOTOS, nil
	}
	return session, "", nil
}

/**************************************************************************************************
** buildPhase resolves one phase's groups and budget. In pick-one mode the per-prefix
** representatives are merged into a single run, so the phase budget spreads across them. A
** phase without a configured duration and without a default is a fatal configuration error.
**************************************************************************************************/
func (s *Scanner) buildPhase(label, dir string, listing []string) (utils.TPhase, error) {
	budget, ok := s.cfg.DurationFor(label)
	if !ok {
		return utils.TPhase{}, fmt.Errorf("%s %q (folder %s)", utils.REASON_NO_BUDGET, label, dir)
	}

	groups, err := grouper.GroupByPrefix(listing, s.cfg.GroupPattern)
	if err != nil {
		return utils.TPhase{}, err
	}
	if s.cfg.PickOne {
		groups = grouper.MergeGroups(grouper.SelectRepresentatives(groups))
	}

	return utils.TPhase{
		Name:   label,
		Dir:    dir,
		Groups: groups,
		Budget: budget,
		Offset: s.cfg.OffsetFor(label),
	}, nil
}

/**************************************************************************************************
** sessionDate resolves the nominal date for a folder name. A configured date overrides
** whatever the folder says; otherwise the first DD.MM.YYYY substring wins.
**************************************************************************************************/
func (s *Scanner) sessionDate(name string) (time.Time, bool) {
	if s.cfg.Date != "" {
		if date, err := time.Parse(utils.DateLayout, s.cfg.Date); err == nil {
			return date, true
		}
	}
	if match := dateRe.FindString(name); match != "" {
		if date, err := time.Parse(utils.DateLayout, match); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}

/**************************************************************************************************
** ListCandidates lists the stampable photos of one directory, non-recursively: whitelisted
** extensions only, previously produced stamped copies excluded, sorted in numeric prefix
** order so "2_" comes before "10_". The grouper receives this listing untouched.
**
** @param dir - Directory to list
** @param extensions - Lowercase extension whitelist including the leading dot
** @return []string - Full paths of candidate photos
** @return error - Unreadable directory
**************************************************************************************************/
func ListCandidates(dir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not list %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !utils.Contains(extensions, strings.ToLower(filepath.Ext(name))) {
			continue
		}
		if strings.Contains(strings.ToLower(name), utils.StampedMarker) {
			continue
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return utils.NumericPrefixLess(names[i], names[j]) })

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

/**************************************************************************************************
** PhaseLabel derives the configuration key for a folder name: the date substring and the
** leading numeric ordering prefix are stripped. A folder whose name is nothing but prefix
** and date keeps its full name as the label.
**
** @param folderName - Phase or session folder base name
** @return string - Label used for budget and offset lookup
**************************************************************************************************/
func PhaseLabel(folderName string) string {
	label := dateRe.ReplaceAllString(folderName, "")
	label = strings.TrimLeft(label, "0123456789_. ")
	label = strings.TrimSpace(label)
	if label == "" {
		return folderName
	}
	return label
}

/**************************************************************************************************
** listDirNames returns the names of a directory's immediate subdirectories in numeric prefix
** order.
**************************************************************************************************/
func listDirNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool { return utils.NumericPrefixLess(names[i], names[j]) })
	return names, nil
}
