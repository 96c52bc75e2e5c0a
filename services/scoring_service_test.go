package services

import (
	"database/sql/driver"
	"regexp"
	"testing"

	"hackathon-portal-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCriteria() *models.JudgingCriteria {
	return &models.JudgingCriteria{
		Year:  2025,
		Event: models.DefaultEvent,
		Criteria: models.CriteriaMap{
			"innovation":   {Weight: 0.3},
			"impact":       {Weight: 0.4},
			"presentation": {Weight: 0.3},
		},
	}
}

func TestValidateScoreDataAcceptsExactKeySet(t *testing.T) {
	set := sampleCriteria()
	data := models.FloatMap{"innovation": 8, "impact": 9, "presentation": 7}

	require.NoError(t, validateScoreData(set, data))
	assert.InDelta(t, 8.1, set.WeightedTotal(data), 1e-9)
}

func TestValidateScoreDataReportsInvalidAndMissingKeys(t *testing.T) {
	set := sampleCriteria()
	data := models.FloatMap{"innovation": 8, "wow": 5}

	err := validateScoreData(set, data)
	require.Error(t, err)

	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, svcErr.Kind)
	assert.Equal(t, []string{"wow"}, svcErr.Details["invalidCriteria"])
	assert.Equal(t, []string{"impact", "presentation"}, svcErr.Details["missingCriteria"])
}

func TestValidateScoreDataRejectsOutOfRangeValueNamingCriterion(t *testing.T) {
	set := sampleCriteria()

	for _, tc := range []struct {
		name  string
		data  models.FloatMap
		wrong string
	}{
		{"above max", models.FloatMap{"innovation": 10.5, "impact": 9, "presentation": 7}, "innovation"},
		{"below min", models.FloatMap{"innovation": 8, "impact": -1, "presentation": 7}, "impact"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := validateScoreData(set, tc.data)
			require.Error(t, err)

			svcErr, ok := AsServiceError(err)
			require.True(t, ok)
			assert.Equal(t, KindValidation, svcErr.Kind)
			assert.Equal(t, tc.wrong, svcErr.Details["criterion"])
		})
	}
}

func TestValidateScoreDataBoundaryValuesAreAccepted(t *testing.T) {
	set := sampleCriteria()
	data := models.FloatMap{"innovation": 0, "impact": 10, "presentation": 5}

	require.NoError(t, validateScoreData(set, data))
}

func judgeRow(judgeID, userID int64) [][]driver.Value {
	return [][]driver.Value{{judgeID, userID, []byte(`["all"]`), "abc12345", false}}
}

var judgeColumns = []string{"judge_id", "user_id", "tracks", "access_code", "access_code_used"}

func TestSubmitPersistsWeightedTotal(t *testing.T) {
	criteriaJSON := []byte(`{"innovation":{"weight":0.3},"impact":{"weight":0.4},"presentation":{"weight":0.3}}`)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `judges` WHERE user_id = "),
			args:    []driver.Value{int64(7)},
			columns: judgeColumns,
			rows:    judgeRow(3, 7),
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `projects` WHERE project_id = "),
			args:    []driver.Value{int64(42)},
			columns: []string{"project_id", "name", "year", "event"},
			rows:    [][]driver.Value{{int64(42), "Cool Hack", int64(2025), models.DefaultEvent}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `judging_criteria` WHERE year = "),
			args:    []driver.Value{int64(2025), models.DefaultEvent},
			columns: []string{"criteria_id", "year", "event", "criteria"},
			rows:    [][]driver.Value{{int64(1), int64(2025), models.DefaultEvent, criteriaJSON}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `scores`"),
			args:    []driver.Value{int64(3), int64(42)},
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `scores`"),
			result:  scriptedResult{lastInsertID: 11, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewScoringService(db, NewCriteriaService(db), NewJudgeService(db))
	actor := Actor{UserID: 7, Role: models.RoleUser}

	result, err := svc.Submit(actor, 42, models.FloatMap{"innovation": 8, "impact": 9, "presentation": 7})
	require.NoError(t, err)
	assert.InDelta(t, 8.1, result.TotalScore, 1e-9)
	assert.Equal(t, 11, result.Score.ScoreID)
	assert.Equal(t, 3, result.Score.JudgeID)

	require.NoError(t, state.verifyComplete())
}

func TestSubmitSecondScoreIsConflictWithoutInsert(t *testing.T) {
	criteriaJSON := []byte(`{"innovation":{"weight":1}}`)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `judges` WHERE user_id = "),
			args:    []driver.Value{int64(7)},
			columns: judgeColumns,
			rows:    judgeRow(3, 7),
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `projects` WHERE project_id = "),
			args:    []driver.Value{int64(42)},
			columns: []string{"project_id", "year", "event"},
			rows:    [][]driver.Value{{int64(42), int64(2025), models.DefaultEvent}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `judging_criteria` WHERE year = "),
			args:    []driver.Value{int64(2025), models.DefaultEvent},
			columns: []string{"criteria_id", "year", "event", "criteria"},
			rows:    [][]driver.Value{{int64(1), int64(2025), models.DefaultEvent, criteriaJSON}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `scores`"),
			args:    []driver.Value{int64(3), int64(42)},
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(1)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewScoringService(db, NewCriteriaService(db), NewJudgeService(db))

	_, err := svc.Submit(Actor{UserID: 7}, 42, models.FloatMap{"innovation": 5})
	require.Error(t, err)

	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, KindConflict, svcErr.Kind)
	assert.Equal(t, "ALREADY_SUBMITTED", svcErr.Details["reason"])

	require.NoError(t, state.verifyComplete())
}

func TestSubmitWithoutJudgeIsForbidden(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `judges` WHERE user_id = "),
			args:    []driver.Value{int64(7)},
			columns: judgeColumns,
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewScoringService(db, NewCriteriaService(db), NewJudgeService(db))

	_, err := svc.Submit(Actor{UserID: 7}, 42, models.FloatMap{"innovation": 5})
	require.Error(t, err)

	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, KindForbidden, svcErr.Kind)

	require.NoError(t, state.verifyComplete())
}

func TestSubmitMissingCriteriaSetIsNotFound(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `judges` WHERE user_id = "),
			args:    []driver.Value{int64(7)},
			columns: judgeColumns,
			rows:    judgeRow(3, 7),
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `projects` WHERE project_id = "),
			args:    []driver.Value{int64(42)},
			columns: []string{"project_id", "year", "event"},
			rows:    [][]driver.Value{{int64(42), int64(2031), models.DefaultEvent}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `judging_criteria` WHERE year = "),
			args:    []driver.Value{int64(2031), models.DefaultEvent},
			columns: []string{"criteria_id", "year", "event", "criteria"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewScoringService(db, NewCriteriaService(db), NewJudgeService(db))

	_, err := svc.Submit(Actor{UserID: 7}, 42, models.FloatMap{"innovation": 5})
	require.Error(t, err)

	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, svcErr.Kind)
	assert.Equal(t, "CRITERIA_NOT_SET", svcErr.Details["reason"])

	require.NoError(t, state.verifyComplete())
}

func TestUpdateRecomputesTotalOnSameRow(t *testing.T) {
	criteriaJSON := []byte(`{"innovation":{"weight":0.3},"impact":{"weight":0.4},"presentation":{"weight":0.3}}`)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `judges` WHERE user_id = "),
			args:    []driver.Value{int64(7)},
			columns: judgeColumns,
			rows:    judgeRow(3, 7),
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `scores` WHERE score_id = "),
			args:    []driver.Value{int64(11)},
			columns: []string{"score_id", "judge_id", "project_id", "score_data", "total_score"},
			rows:    [][]driver.Value{{int64(11), int64(3), int64(42), []byte(`{"innovation":8,"impact":9,"presentation":7}`), 8.1}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `projects` WHERE project_id = "),
			args:    []driver.Value{int64(42)},
			columns: []string{"project_id", "year", "event"},
			rows:    [][]driver.Value{{int64(42), int64(2025), models.DefaultEvent}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `judging_criteria` WHERE year = "),
			args:    []driver.Value{int64(2025), models.DefaultEvent},
			columns: []string{"criteria_id", "year", "event", "criteria"},
			rows:    [][]driver.Value{{int64(1), int64(2025), models.DefaultEvent, criteriaJSON}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `scores` SET "),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewScoringService(db, NewCriteriaService(db), NewJudgeService(db))

	result, err := svc.Update(Actor{UserID: 7}, 11, models.FloatMap{"innovation": 10, "impact": 10, "presentation": 10})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, result.TotalScore, 1e-9)
	assert.Equal(t, 11, result.Score.ScoreID)

	require.NoError(t, state.verifyComplete())
}

func TestUpdateForeignScoreIsForbidden(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `judges` WHERE user_id = "),
			args:    []driver.Value{int64(7)},
			columns: judgeColumns,
			rows:    judgeRow(3, 7),
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `scores` WHERE score_id = "),
			args:    []driver.Value{int64(11)},
			columns: []string{"score_id", "judge_id", "project_id"},
			rows:    [][]driver.Value{{int64(11), int64(99), int64(42)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewScoringService(db, NewCriteriaService(db), NewJudgeService(db))

	_, err := svc.Update(Actor{UserID: 7}, 11, models.FloatMap{"innovation": 5})
	require.Error(t, err)

	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, KindForbidden, svcErr.Kind)

	require.NoError(t, state.verifyComplete())
}
