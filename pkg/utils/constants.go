package utils

import "strings"

/**************************************************************************************************
** DateLayout is the date format used in folder names and in the config file (DD.MM.YYYY).
** ClockLayout is the time-of-day format used for start_time and duration strings.
**************************************************************************************************/
const DateLayout = "02.01.2006"
const ClockLayout = "15:04:05"

/**************************************************************************************************
** StampedMarker tags every file this tool produces. Files carrying the marker are never
** candidates for stamping and are the only files the cleanup pass is allowed to remove.
**************************************************************************************************/
const StampedMarker = "_stamped"

/**************************************************************************************************
** DefaultGroupPattern is the filename prefix regex used to group photos: the leading run of
** digits and underscores, with trailing underscores stripped afterwards. DatePattern extracts
** the session date from folder names.
**************************************************************************************************/
const DefaultGroupPattern = `^([0-9_]+)`
const DatePattern = `\d{2}\.\d{2}\.\d{4}`

/**************************************************************************************************
** SecondsPerDay is the clock rollover threshold: any seconds-of-day value at or past it
** carries into the next date.
**************************************************************************************************/
const SecondsPerDay = 86400.0

/**************************************************************************************************
** DefaultDistance is the dissimilarity score substituted when a photo of a pair cannot be
** decoded. Mid-range, so a broken photo neither collapses nor dominates the allocation.
**************************************************************************************************/
const DefaultDistance = 0.5

/**************************************************************************************************
** DefaultImageExtensions lists the file extensions considered stampable photos.
**************************************************************************************************/
var DefaultImageExtensions = []string{".jpg", ".jpeg", ".png"}
var DefaultImageExtensionsString = strings.Join(DefaultImageExtensions, ",")

/**************************************************************************************************
** Reason messages
**************************************************************************************************/
var REASON_DECODE_FALLBACK = "photo could not be decoded, default distance used"
var REASON_RENDER_FAILURE = "stamped copy could not be produced"
var REASON_NO_DATE = "no date in folder name and no date configured"
var REASON_NO_PHOTOS = "session contains no candidate photos"
var REASON_NO_BUDGET = "no duration configured for phase"
