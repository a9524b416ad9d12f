package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/daniela/resume-optimizer/internal/db"
)

func TestGapSeverity(t *testing.T) {
	assert.Equal(t, db.SeverityCritical, GapSeverity(db.ImportanceCritical))
	assert.Equal(t, db.SeverityCritical, GapSeverity(db.ImportanceHigh))
	assert.Equal(t, db.SeverityModerate, GapSeverity(db.ImportanceMedium))
	assert.Equal(t, db.SeverityMinor, GapSeverity(db.ImportanceLow))
	assert.Equal(t, db.SeverityMinor, GapSeverity(""))
}

func TestMatchSkills(t *testing.T) {
	jobID := uuid.New()
	goID := uuid.New()
	k8sID := uuid.New()
	sqlID := uuid.New()

	requirements := []db.JobSkillRequirement{
		{JobID: jobID, SkillID: goID, SkillName: "Go", Importance: db.ImportanceCritical, Required: true},
		{JobID: jobID, SkillID: k8sID, SkillName: "Kubernetes", Importance: db.ImportanceMedium, Required: true},
		{JobID: jobID, SkillID: sqlID, SkillName: "SQL", Importance: db.ImportanceLow, Required: false},
	}
	resumeSkills := []db.ResumeSkill{
		{SkillName: "go", Proficiency: db.ProficiencyAdvanced},
		{SkillName: "SQL", Proficiency: db.ProficiencyIntermediate},
	}

	report := MatchSkills(resumeSkills, requirements, "Built Go services backed by SQL.")

	assert.Len(t, report.Matched, 2)
	assert.Len(t, report.Missing, 1)
	assert.Equal(t, "Kubernetes", report.Missing[0].SkillName)
	// 1 of 2 required matched → 35; keywords "go" and "sql" present → +2
	assert.Equal(t, 37, report.ATSScore)
}

func TestMatchSkills_EmptyResume(t *testing.T) {
	jobID := uuid.New()
	requirements := []db.JobSkillRequirement{
		{JobID: jobID, SkillID: uuid.New(), SkillName: "Go", Importance: db.ImportanceCritical, Required: true},
	}

	report := MatchSkills(nil, requirements, "")

	assert.Empty(t, report.Matched)
	assert.Len(t, report.Missing, 1)
	assert.Equal(t, 0, report.ATSScore)
}

func TestGaps(t *testing.T) {
	jobID := uuid.New()
	report := MatchReport{
		Missing: []db.JobSkillRequirement{
			{JobID: jobID, SkillID: uuid.New(), SkillName: "Go", Importance: db.ImportanceCritical},
			{JobID: jobID, SkillID: uuid.New(), SkillName: "SQL", Importance: db.ImportanceLow},
		},
	}

	gaps := Gaps(report)

	assert.Len(t, gaps, 2)
	assert.Equal(t, db.SeverityCritical, gaps[0].Severity)
	assert.Equal(t, db.SeverityMinor, gaps[1].Severity)
}
