// Package scoring computes resume quality scores against job requirements.
package scoring

// Weighting for the ATS score: the skill-match ratio is worth up to 70
// points, keyword hits up to 30, and the total never exceeds 100.
const (
	skillWeight   = 70
	keywordWeight = 30
	maxScore      = 100
)

// ATSScore computes the applicant-tracking-system readiness score for a
// resume version against a job description.
//
// matchedSkills/requiredSkills contribute a ratio scaled to skillWeight;
// keywordHits contribute one point each, capped at keywordWeight. A job with
// no required skills yields the full skill component (nothing was missing).
func ATSScore(matchedSkills, requiredSkills, keywordHits int) int {
	skillPoints := skillWeight
	if requiredSkills > 0 {
		if matchedSkills > requiredSkills {
			matchedSkills = requiredSkills
		}
		if matchedSkills < 0 {
			matchedSkills = 0
		}
		skillPoints = matchedSkills * skillWeight / requiredSkills
	}

	keywordPoints := keywordHits
	if keywordPoints < 0 {
		keywordPoints = 0
	}
	if keywordPoints > keywordWeight {
		keywordPoints = keywordWeight
	}

	total := skillPoints + keywordPoints
	if total > maxScore {
		total = maxScore
	}
	return total
}
