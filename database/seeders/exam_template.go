package seeders

import (
	"errors"

	"praxisnote.app/configs/configslog"
	"praxisnote.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// examCatalog is the mental-status exam form, in display order. The select
// options double as the severity vocabulary the trend radar scores against,
// so renaming an option here changes scoring.
func examCatalog() []models.ExamTemplate {
	rows := []models.ExamTemplate{
		{Section: "General", FieldKey: "evaluator", Label: "Evaluator", Type: models.ExamFieldText},
		{Section: "General", FieldKey: "setting", Label: "Context / setting", Type: models.ExamFieldText},

		{Section: "Appearance & Behavior", FieldKey: "grooming", Label: "Grooming / presentation", Type: models.ExamFieldSelect,
			Options: "adequate|neglected|excessive|not assessable"},
		{Section: "Appearance & Behavior", FieldKey: "attitude", Label: "Attitude toward interview", Type: models.ExamFieldSelect,
			Options: "cooperative|resistant|hostile|withdrawn|ambivalent|not assessable"},
		{Section: "Appearance & Behavior", FieldKey: "eye_contact", Label: "Eye contact", Type: models.ExamFieldSelect,
			Options: "adequate|avoidant|intense|intermittent|not assessable"},
		{Section: "Appearance & Behavior", FieldKey: "motor", Label: "Psychomotor activity", Type: models.ExamFieldSelect,
			Options: "normal|agitated|retarded|tremor|tics|catatonic|not assessable"},
		{Section: "Appearance & Behavior", FieldKey: "speech", Label: "Speech", Type: models.ExamFieldSelect,
			Options: "normal|rapid|slow|low volume|pressured|monotone|dysarthric|not assessable"},
		{Section: "Appearance & Behavior", FieldKey: "appearance_notes", Label: "Additional observations", Type: models.ExamFieldText},

		{Section: "Mood & Affect", FieldKey: "mood", Label: "Mood (reported)", Type: models.ExamFieldSelect,
			Options: "euthymic|anxious|depressed|irritable|euphoric|labile|not assessable"},
		{Section: "Mood & Affect", FieldKey: "affect", Label: "Affect (range)", Type: models.ExamFieldSelect,
			Options: "full|restricted|blunted|flat|labile|incongruent|not assessable"},
		{Section: "Mood & Affect", FieldKey: "congruence", Label: "Congruence with content", Type: models.ExamFieldSelect,
			Options: "congruent|partially congruent|incongruent|not assessable"},
		{Section: "Mood & Affect", FieldKey: "mood_notes", Label: "Notes (mood/affect)", Type: models.ExamFieldText},

		{Section: "Thought", FieldKey: "thought_form", Label: "Thought form / process", Type: models.ExamFieldSelect,
			Options: "logical and coherent|tangential|circumstantial|disorganized|blocking|flight of ideas|perseveration|not assessable"},
		{Section: "Thought", FieldKey: "delusions", Label: "Delusions / odd beliefs", Type: models.ExamFieldChoice, Options: "no|yes"},
		{Section: "Thought", FieldKey: "obsessions", Label: "Obsessions / ruminations", Type: models.ExamFieldChoice, Options: "no|yes"},
		{Section: "Thought", FieldKey: "suicidal_ideation", Label: "Suicidal ideation", Type: models.ExamFieldChoice, Options: "no|yes"},
		{Section: "Thought", FieldKey: "suicidal_plan", Label: "Suicidal plan (if any)", Type: models.ExamFieldChoice, Options: "no|yes|not applicable"},
		{Section: "Thought", FieldKey: "homicidal_ideation", Label: "Homicidal ideation", Type: models.ExamFieldChoice, Options: "no|yes"},
		{Section: "Thought", FieldKey: "thought_content", Label: "Thought content (summary)", Type: models.ExamFieldText},

		{Section: "Perception", FieldKey: "hallucinations", Label: "Hallucinations", Type: models.ExamFieldChoice, Options: "no|yes"},
		{Section: "Perception", FieldKey: "hallucinations_type", Label: "Type (if any)", Type: models.ExamFieldSelect,
			Options: "not applicable|auditory|visual|tactile|olfactory|gustatory|mixed"},
		{Section: "Perception", FieldKey: "depersonalization", Label: "Depersonalization / derealization", Type: models.ExamFieldChoice, Options: "no|yes"},
		{Section: "Perception", FieldKey: "perception_notes", Label: "Notes (perception)", Type: models.ExamFieldText},

		{Section: "Cognition", FieldKey: "orientation", Label: "Orientation", Type: models.ExamFieldSelect,
			Options: "oriented x3|partially oriented|disoriented|not assessable"},
		{Section: "Cognition", FieldKey: "attention", Label: "Attention / concentration", Type: models.ExamFieldSelect,
			Options: "adequate|distractible|hypervigilant|markedly impaired|not assessable"},
		{Section: "Cognition", FieldKey: "memory", Label: "Memory", Type: models.ExamFieldSelect,
			Options: "intact|mild impairment|moderate impairment|severe impairment|not assessable"},
		{Section: "Cognition", FieldKey: "abstraction", Label: "Abstract thinking", Type: models.ExamFieldSelect,
			Options: "adequate|concrete|not assessable"},
		{Section: "Cognition", FieldKey: "cognition_notes", Label: "Notes (cognition)", Type: models.ExamFieldText},

		{Section: "Insight & Judgment", FieldKey: "insight", Label: "Insight", Type: models.ExamFieldSelect,
			Options: "adequate|partial|poor|absent|not assessable"},
		{Section: "Insight & Judgment", FieldKey: "judgment", Label: "Judgment", Type: models.ExamFieldSelect,
			Options: "intact|fair|impaired|severely impaired|not assessable"},
		{Section: "Insight & Judgment", FieldKey: "insight_notes", Label: "Notes (insight/judgment)", Type: models.ExamFieldText},

		{Section: "Risk Assessment", FieldKey: "risk_level", Label: "Current risk level", Type: models.ExamFieldSelect,
			Options: "none|low|moderate|high|not assessable"},
		{Section: "Risk Assessment", FieldKey: "risk_factors", Label: "Risk factors", Type: models.ExamFieldText},
		{Section: "Risk Assessment", FieldKey: "protective_factors", Label: "Protective factors", Type: models.ExamFieldText},
		{Section: "Risk Assessment", FieldKey: "safety_plan", Label: "Safety plan / agreements", Type: models.ExamFieldText},

		{Section: "Impression & Plan", FieldKey: "impression", Label: "Impression / summary", Type: models.ExamFieldText},
		{Section: "Impression & Plan", FieldKey: "plan", Label: "Plan / recommendations", Type: models.ExamFieldText},
	}
	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

// SeedExamTemplates inserts any catalog field not yet present. Existing rows
// are left untouched so local edits survive reseeding.
func SeedExamTemplates(db *gorm.DB) error {
	var createdCount int64
	var errorOccurred bool

	configslog.SLog.Info("Seeding exam form catalog...")

	for _, field := range examCatalog() {
		var existing models.ExamTemplate
		result := db.Where("field_key = ?", field.FieldKey).First(&existing)

		if result.Error == nil {
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Failed to check exam template field",
				zap.String("field_key", field.FieldKey),
				zap.Error(result.Error),
			)
			errorOccurred = true
			continue
		}

		if err := db.Create(&field).Error; err != nil {
			configslog.Log.Error("Failed to create exam template field",
				zap.String("field_key", field.FieldKey),
				zap.Error(err),
			)
			errorOccurred = true
			continue
		}
		createdCount++
	}

	if createdCount > 0 {
		configslog.SLog.Infof("Seeded %d exam form fields.", createdCount)
	} else if !errorOccurred {
		configslog.SLog.Info("Exam form catalog already present, nothing to seed.")
	}

	if errorOccurred {
		return errors.New("at least one exam template field failed to seed")
	}
	return nil
}
