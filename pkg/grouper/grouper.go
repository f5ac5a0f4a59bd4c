package grouper

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/AlenaYashkina/photo-reports/pkg/utils"
)

/**************************************************************************************************
** GroupByPrefix partitions a sorted candidate listing into ordered photo groups. The group key
** is the filename prefix matched by the pattern (leading digits and underscores by default)
** with trailing underscores stripped. A name the pattern does not match forms its own group
** keyed by the full filename; a listing the pattern matches nowhere at all carries no grouping
** convention and collapses into one implicit group under the empty key.
**
** Order is part of the contract: groups appear in order of their first photo in the listing,
** photos keep listing order inside their group, and the same listing always produces the same
** groups. Nothing downstream ever reorders them.
**
** @param paths - Candidate photo paths, already sorted by the caller
** @param pattern - Grouping regex, empty selects the default prefix pattern
** @return []utils.TPhotoGroup - Ordered groups covering every input path exactly once
** @return error - Invalid pattern
**************************************************************************************************/
func GroupByPrefix(paths []string, pattern string) ([]utils.TPhotoGroup, error) {
	if pattern == "" {
		pattern = utils.DefaultGroupPattern
	}
	re, err := utils.RegexCompile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid group pattern %q: %w", pattern, err)
	}

	photos := make([]utils.TPhoto, len(paths))
	matched := false
	for i, path := range paths {
		name := filepath.Base(path)
		prefix, ok := extractPrefix(name, re)
		if ok {
			matched = true
		}
		photos[i] = utils.TPhoto{Path: path, Name: name, Prefix: prefix}
	}

	if !matched && len(photos) > 0 {
		for i := range photos {
			photos[i].Prefix = ""
		}
		return []utils.TPhotoGroup{{Key: "", Photos: photos}}, nil
	}

	groups := make([]utils.TPhotoGroup, 0, len(photos))
	index := make(map[string]int, len(photos))
	for _, photo := range photos {
		if gi, ok := index[photo.Prefix]; ok {
			groups[gi].Photos = append(groups[gi].Photos, photo)
			continue
		}
		index[photo.Prefix] = len(groups)
		groups = append(groups, utils.TPhotoGroup{Key: photo.Prefix, Photos: []utils.TPhoto{photo}})
	}

	return groups, nil
}

/**************************************************************************************************
** extractPrefix derives the group key for one filename. Prefers the first capture group when
** the pattern has one, falls back to the full match. The second return is false when the
** pattern does not match the name at all; the full filename then stands in as the key.
**************************************************************************************************/
func extractPrefix(name string, re *regexp.Regexp) (string, bool) {
	match := re.FindStringSubmatch(name)
	if match == nil {
		return name, false
	}
	prefix := match[0]
	if len(match) > 1 {
		prefix = match[1]
	}
	return strings.TrimRight(prefix, "_"), true
}

/**************************************************************************************************
** SelectRepresentatives reduces every group to its single best photo, where best means the
** longest base filename. A burst sharing one prefix, like "5_2.jpg" and "5_2_final.jpg",
** keeps only the longer-named final frame. Group order is preserved; ties keep the earlier
** photo.
**
** @param groups - Groups to reduce
** @return []utils.TPhotoGroup - Same groups, each holding exactly one photo
**************************************************************************************************/
func SelectRepresentatives(groups []utils.TPhotoGroup) []utils.TPhotoGroup {
	result := make([]utils.TPhotoGroup, len(groups))
	for i, group := range groups {
		best := group.Photos[0]
		for _, photo := range group.Photos[1:] {
			if len(photo.Name) > len(best.Name) {
				best = photo
			}
		}
		result[i] = utils.TPhotoGroup{Key: group.Key, Photos: []utils.TPhoto{best}}
	}
	return result
}

/**************************************************************************************************
** MergeGroups folds all groups into a single group holding every photo in group order, under
** the implicit empty key. Photos keep their own prefixes. The pick-one mode runs its
** representatives through this so a phase sequences them as one consecutive run.
**
** @param groups - Groups to merge, in phase order
** @return []utils.TPhotoGroup - One group holding every photo, or the input unchanged when it
**                               already holds at most one group
**************************************************************************************************/
func MergeGroups(groups []utils.TPhotoGroup) []utils.TPhotoGroup {
	if len(groups) <= 1 {
		return groups
	}

	total := 0
	for _, group := range groups {
		total += len(group.Photos)
	}
	merged := utils.TPhotoGroup{Photos: make([]utils.TPhoto, 0, total)}
	for _, group := range groups {
		merged.Photos = append(merged.Photos, group.Photos...)
	}
	return []utils.TPhotoGroup{merged}
}

/**************************************************************************************************
** SplitBeforeDuring separates the second folder of a structured session into the photo(s)
** taken before work started and the photos that belong to the work period. Names starting
** with "1_" are before-photos, names starting with "2_" are work photos. A name with neither
** marker becomes the before-photo when none exists yet, otherwise it joins the work photos.
**
** @param paths - Candidate photo paths of the folder, in listing order
** @return before - Photos taken before work started
** @return during - Photos belonging to the work period
**************************************************************************************************/
func SplitBeforeDuring(paths []string) (before, during []string) {
	for _, path := range paths {
		name := filepath.Base(path)
		switch {
		case strings.HasPrefix(name, "1_"):
			before = append(before, path)
		case strings.HasPrefix(name, "2_"):
			during = append(during, path)
		case len(before) == 0:
			before = append(before, path)
		default:
			during = append(during, path)
		}
	}
	return before, during
}
