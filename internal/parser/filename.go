// Package parser turns free-form release strings into structured metadata.
package parser

import (
	"regexp"
	"strings"

	"github.com/amaumene/gostremioagg/internal/models"
	"github.com/cehbz/torrentname"
	"github.com/samber/lo"
)

var (
	resolutionRegex = regexp.MustCompile(`(?i)\b(4k|2160p|1440p|1080p|720p|576p|480p)\b`)
	codecRegex      = regexp.MustCompile(`(?i)(h\.?264|h\.?265|x\.?264|x\.?265|AV1|HEVC|AVC|XviD)`)
	sourceRegex     = regexp.MustCompile(`(?i)(BluRay|BDRip|BRRip|WEB[-. ]?DL|WEBRip|WEB|HDRip|DVDRip|HDTV|REMUX)`)
	groupRegex      = regexp.MustCompile(`-([A-Za-z0-9]+)(?:\.[A-Za-z0-9]{2,4})?$`)

	// suffixes of hyphenated source tags, e.g. WEB-DL
	notGroups = []string{"DL", "RIP", "HD", "SD"}
)

// audioRules is ordered; more specific tags come first so that "DDP5.1"
// is not also reported as "DD".
var audioRules = []struct {
	tag   string
	regex *regexp.Regexp
}{
	{"Atmos", regexp.MustCompile(`(?i)\batmos\b`)},
	{"TrueHD", regexp.MustCompile(`(?i)\btrue[-. ]?hd\b`)},
	{"DTS-HD MA", regexp.MustCompile(`(?i)\bdts[-. ]?hd[-. ]?ma\b`)},
	{"DTS", regexp.MustCompile(`(?i)\bdts\b`)},
	{"DD+", regexp.MustCompile(`(?i)\b(ddp|dd\+|e-?ac-?3)`)},
	{"DD", regexp.MustCompile(`(?i)\b(dd|ac-?3)(\b|[0-9])`)},
	{"AAC", regexp.MustCompile(`(?i)\baac`)},
	{"FLAC", regexp.MustCompile(`(?i)\bflac\b`)},
	{"Opus", regexp.MustCompile(`(?i)\bopus\b`)},
}

var languageRules = []struct {
	language string
	regex    *regexp.Regexp
}{
	{"Multi", regexp.MustCompile(`(?i)\bmulti\b`)},
	{"Dual Audio", regexp.MustCompile(`(?i)\bdual[-. ]?audio\b`)},
	{"English", regexp.MustCompile(`(?i)\b(eng|english)\b`)},
	{"French", regexp.MustCompile(`(?i)\b(french|vff|vfq|vf2|truefrench)\b`)},
	{"German", regexp.MustCompile(`(?i)\b(ger|german)\b`)},
	{"Italian", regexp.MustCompile(`(?i)\b(ita|italian)\b`)},
	{"Spanish", regexp.MustCompile(`(?i)\b(spa|spanish|castellano|latino)\b`)},
	{"Portuguese", regexp.MustCompile(`(?i)\b(por|portuguese)\b`)},
	{"Russian", regexp.MustCompile(`(?i)\b(rus|russian)\b`)},
	{"Japanese", regexp.MustCompile(`(?i)\b(jpn|japanese)\b`)},
	{"Korean", regexp.MustCompile(`(?i)\b(kor|korean)\b`)},
	{"Hindi", regexp.MustCompile(`(?i)\b(hin|hindi)\b`)},
}

// ParseFilename decomposes a release name. It never fails: fields that cannot
// be recognised are left at their zero value.
func ParseFilename(name string) models.ParsedFilename {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ParsedFilename{}
	}

	var result models.ParsedFilename
	if info := torrentname.Parse(name); info != nil {
		result = models.ParsedFilename{
			Title:      info.Title,
			Year:       info.Year,
			Resolution: info.Resolution,
			Source:     info.Source,
			Codec:      info.Codec,
			Season:     info.Season,
			Episode:    info.Episode,
			Complete:   info.IsComplete,
			Confidence: float64(info.Confidence),
		}
	}

	if result.Resolution == "" {
		result.Resolution = firstMatch(resolutionRegex, name)
	}
	if result.Codec == "" {
		result.Codec = firstMatch(codecRegex, name)
	}
	if result.Source == "" {
		result.Source = firstMatch(sourceRegex, name)
	}

	result.Audio = matchAudio(name)
	result.Languages = matchLanguages(name)
	result.ReleaseGroup = matchReleaseGroup(name)

	return result
}

func firstMatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return ""
}

func matchAudio(name string) []string {
	var tags []string
	for _, rule := range audioRules {
		if !rule.regex.MatchString(name) {
			continue
		}
		if rule.tag == "DD" && lo.Contains(tags, "DD+") {
			continue
		}
		tags = append(tags, rule.tag)
	}
	return tags
}

func matchLanguages(name string) []string {
	var languages []string
	for _, rule := range languageRules {
		if rule.regex.MatchString(name) {
			languages = append(languages, rule.language)
		}
	}
	return languages
}

func matchReleaseGroup(name string) string {
	group := firstMatch(groupRegex, name)
	if lo.Contains(notGroups, strings.ToUpper(group)) {
		return ""
	}
	return group
}
