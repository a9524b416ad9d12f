package scoring

import (
	"strings"

	"github.com/daniela/resume-optimizer/internal/db"
)

// GapSeverity maps a missing skill's importance to a gap severity.
func GapSeverity(importance string) string {
	switch importance {
	case db.ImportanceCritical, db.ImportanceHigh:
		return db.SeverityCritical
	case db.ImportanceMedium:
		return db.SeverityModerate
	default:
		return db.SeverityMinor
	}
}

// MatchReport summarizes how a resume version's skills line up with a job's
// requirements.
type MatchReport struct {
	Matched  []db.JobSkillRequirement
	Missing  []db.JobSkillRequirement
	ATSScore int
}

// MatchSkills compares a version's skills with a job's requirements and
// computes the ATS score. Skill names are compared case-insensitively.
// Keyword hits are counted as occurrences of required skill names in the raw
// resume text.
func MatchSkills(resumeSkills []db.ResumeSkill, requirements []db.JobSkillRequirement, contentRaw string) MatchReport {
	have := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		have[strings.ToLower(s.SkillName)] = true
	}

	var report MatchReport
	required := 0
	matched := 0
	lowerContent := strings.ToLower(contentRaw)
	keywordHits := 0

	for _, req := range requirements {
		name := strings.ToLower(req.SkillName)
		if req.Required {
			required++
		}
		if have[name] {
			report.Matched = append(report.Matched, req)
			if req.Required {
				matched++
			}
		} else {
			report.Missing = append(report.Missing, req)
		}
		if name != "" && strings.Contains(lowerContent, name) {
			keywordHits++
		}
	}

	report.ATSScore = ATSScore(matched, required, keywordHits)
	return report
}

// Gaps derives skill-gap rows from a match report. Severity follows the
// importance of the missing requirement.
func Gaps(report MatchReport) []db.SkillGap {
	gaps := make([]db.SkillGap, 0, len(report.Missing))
	for _, m := range report.Missing {
		gaps = append(gaps, db.SkillGap{
			JobID:    m.JobID,
			SkillID:  m.SkillID,
			Severity: GapSeverity(m.Importance),
		})
	}
	return gaps
}
