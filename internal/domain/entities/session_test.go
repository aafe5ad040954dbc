package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursor_Advance(t *testing.T) {
	tests := []struct {
		name          string
		start         Cursor
		questionCount int
		symptomCount  int
		wantMove      CursorMove
		wantSymptom   int
		wantQuestion  int
	}{
		{
			name:          "Next question within symptom",
			start:         Cursor{},
			questionCount: 3,
			symptomCount:  2,
			wantMove:      MoveNextQuestion,
			wantSymptom:   0,
			wantQuestion:  1,
		},
		{
			name:          "Last question rolls to next symptom",
			start:         Cursor{symptomIndex: 0, questionIndex: 2},
			questionCount: 3,
			symptomCount:  2,
			wantMove:      MoveNextSymptom,
			wantSymptom:   1,
			wantQuestion:  0,
		},
		{
			name:          "Last question of last symptom completes",
			start:         Cursor{symptomIndex: 1, questionIndex: 2},
			questionCount: 3,
			symptomCount:  2,
			wantMove:      MoveComplete,
			wantSymptom:   1,
			wantQuestion:  2,
		},
		{
			name:          "Single question single symptom completes immediately",
			start:         Cursor{},
			questionCount: 1,
			symptomCount:  1,
			wantMove:      MoveComplete,
			wantSymptom:   0,
			wantQuestion:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, move := tt.start.Advance(tt.questionCount, tt.symptomCount)
			assert.Equal(t, tt.wantMove, move)
			assert.Equal(t, tt.wantSymptom, got.SymptomIndex())
			assert.Equal(t, tt.wantQuestion, got.QuestionIndex())
		})
	}
}

// Walking a ragged symptom/question structure must visit every question
// exactly once and never index past either dimension.
func TestCursor_FullTraversal(t *testing.T) {
	questionCounts := []int{3, 1, 2}
	symptomCount := len(questionCounts)

	cursor := NewCursor()
	visited := 0
	for {
		assert.Less(t, cursor.SymptomIndex(), symptomCount)
		assert.Less(t, cursor.QuestionIndex(), questionCounts[cursor.SymptomIndex()])
		visited++

		next, move := cursor.Advance(questionCounts[cursor.SymptomIndex()], symptomCount)
		if move == MoveComplete {
			break
		}
		cursor = next
	}

	assert.Equal(t, 6, visited)
}

func TestCursor_SkipSymptom(t *testing.T) {
	cursor := Cursor{symptomIndex: 0, questionIndex: 1}

	next, move := cursor.SkipSymptom(2)
	assert.Equal(t, MoveNextSymptom, move)
	assert.Equal(t, 1, next.SymptomIndex())
	assert.Equal(t, 0, next.QuestionIndex())

	_, move = next.SkipSymptom(2)
	assert.Equal(t, MoveComplete, move)
}

func TestNewSession(t *testing.T) {
	record := &IntakeRecord{SessionID: "session-1"}
	session := NewSession("conn-1", record)

	assert.Equal(t, StageGreeting, session.Stage)
	assert.Equal(t, "session-1", session.SessionID)
	assert.Equal(t, 0, session.Cursor.SymptomIndex())
	assert.Equal(t, 0, session.Cursor.QuestionIndex())
	assert.False(t, session.LastActivity.IsZero())
}

func TestSymptomRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rule    SymptomRule
		wantErr bool
	}{
		{
			name: "Valid rule",
			rule: SymptomRule{Symptom: "chest pain", FollowUpQuestions: []string{"When did it start?"}},
		},
		{
			name:    "Empty symptom name",
			rule:    SymptomRule{Symptom: "  ", FollowUpQuestions: []string{"Q"}},
			wantErr: true,
		},
		{
			name:    "No questions",
			rule:    SymptomRule{Symptom: "fatigue"},
			wantErr: true,
		},
		{
			name:    "Blank question",
			rule:    SymptomRule{Symptom: "fatigue", FollowUpQuestions: []string{"Q", " "}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
