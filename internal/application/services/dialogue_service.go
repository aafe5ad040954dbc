package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
	"github.com/tricoghealth/intake-assistant/internal/domain/providers"
	"github.com/tricoghealth/intake-assistant/internal/domain/repositories"
)

// emailPattern accepts anything of the shape local@domain.tld with no
// whitespace. Deliverability is not checked here.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// TurnResult is the outcome of processing one user message. Completed is
// non-nil on exactly one turn per conversation, the turn whose answer
// finished the last follow-up question.
type TurnResult struct {
	Reply     string
	Completed *entities.IntakeRecord
}

// DialogueService drives the staged intake conversation. Each session moves
// through greeting, email, gender and symptom collection, then a follow-up
// question traversal over the identified symptoms, and finally completion.
// The durable record is written before any in-memory state advances, so a
// failed write leaves the conversation able to retry the same turn.
type DialogueService struct {
	intakes    repositories.IntakeRepository
	catalog    *Catalog
	classifier providers.SymptomClassifier
}

// NewDialogueService creates a new dialogue service
func NewDialogueService(
	intakes repositories.IntakeRepository,
	catalog *Catalog,
	classifier providers.SymptomClassifier,
) *DialogueService {
	return &DialogueService{
		intakes:    intakes,
		catalog:    catalog,
		classifier: classifier,
	}
}

// StartConversation creates a fresh intake record and session for a new
// connection and returns the session along with the welcome message.
func (s *DialogueService) StartConversation(ctx context.Context, connectionID string) (*entities.Session, string, error) {
	sessionID := uuid.New().String()
	record, err := s.intakes.Create(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	session := entities.NewSession(connectionID, record)
	log.Info().Str("session_id", sessionID).Str("connection_id", connectionID).Msg("Conversation started")
	return session, replyWelcome, nil
}

// ProcessMessage advances the conversation by one user turn. It never
// returns an error to the caller for recoverable turn failures; those
// produce an apologetic reply with the session state unchanged.
func (s *DialogueService) ProcessMessage(ctx context.Context, session *entities.Session, text string) *TurnResult {
	session.Touch()
	text = strings.TrimSpace(text)

	switch session.Stage {
	case entities.StageGreeting:
		return s.handleName(ctx, session, text)
	case entities.StageCollectingEmail:
		return s.handleEmail(ctx, session, text)
	case entities.StageCollectingGender:
		return s.handleGender(ctx, session, text)
	case entities.StageCollectingSymptoms:
		return s.handleSymptoms(ctx, session, text)
	case entities.StageAnsweringFollowUps:
		return s.handleFollowUpAnswer(ctx, session, text)
	case entities.StageCompleted:
		return &TurnResult{Reply: replyPostCompletion}
	default:
		return &TurnResult{Reply: replyGenericError}
	}
}

func (s *DialogueService) handleName(ctx context.Context, session *entities.Session, text string) *TurnResult {
	record, err := s.intakes.Update(ctx, session.SessionID, entities.IntakeUpdate{Name: &text})
	if err != nil {
		log.Error().Err(err).Str("session_id", session.SessionID).Msg("Failed to store patient name")
		return &TurnResult{Reply: replyGenericError}
	}

	session.Record = record
	session.Stage = entities.StageCollectingEmail
	return &TurnResult{Reply: buildAskEmailReply(text)}
}

func (s *DialogueService) handleEmail(ctx context.Context, session *entities.Session, text string) *TurnResult {
	if !emailPattern.MatchString(text) {
		return &TurnResult{Reply: replyInvalidEmail}
	}

	record, err := s.intakes.Update(ctx, session.SessionID, entities.IntakeUpdate{Email: &text})
	if err != nil {
		log.Error().Err(err).Str("session_id", session.SessionID).Msg("Failed to store patient email")
		return &TurnResult{Reply: replyGenericError}
	}

	session.Record = record
	session.Stage = entities.StageCollectingGender
	return &TurnResult{Reply: replyAskGender}
}

func (s *DialogueService) handleGender(ctx context.Context, session *entities.Session, text string) *TurnResult {
	record, err := s.intakes.Update(ctx, session.SessionID, entities.IntakeUpdate{Gender: &text})
	if err != nil {
		log.Error().Err(err).Str("session_id", session.SessionID).Msg("Failed to store patient gender")
		return &TurnResult{Reply: replyGenericError}
	}

	session.Record = record
	session.Stage = entities.StageCollectingSymptoms
	return &TurnResult{Reply: replyAskSymptoms}
}

func (s *DialogueService) handleSymptoms(ctx context.Context, session *entities.Session, text string) *TurnResult {
	identified, err := s.classifier.IdentifySymptoms(ctx, text, s.catalog.Names())
	if err != nil {
		log.Error().Err(err).Str("session_id", session.SessionID).Msg("Symptom classification failed")
		return &TurnResult{Reply: replySymptomError}
	}

	symptoms := s.catalog.Filter(identified)
	if len(symptoms) == 0 {
		return &TurnResult{Reply: replySymptomsUnclear}
	}

	rule, ok := s.catalog.Lookup(symptoms[0])
	if !ok {
		// Filter guarantees catalog membership; treat a miss as a turn failure.
		log.Error().Str("symptom", symptoms[0]).Msg("Catalog lookup failed for filtered symptom")
		return &TurnResult{Reply: replySymptomError}
	}

	record, err := s.intakes.Update(ctx, session.SessionID, entities.IntakeUpdate{Symptoms: symptoms})
	if err != nil {
		log.Error().Err(err).Str("session_id", session.SessionID).Msg("Failed to store symptoms")
		return &TurnResult{Reply: replySymptomError}
	}

	session.Record = record
	session.Stage = entities.StageAnsweringFollowUps
	session.Cursor = entities.NewCursor()

	log.Info().
		Str("session_id", session.SessionID).
		Strs("symptoms", symptoms).
		Msg("Symptoms identified, starting follow-up questions")

	return &TurnResult{Reply: buildFirstQuestionReply(symptoms, symptoms[0], rule.FollowUpQuestions[0])}
}

func (s *DialogueService) handleFollowUpAnswer(ctx context.Context, session *entities.Session, text string) *TurnResult {
	symptoms := session.Record.Symptoms
	currentSymptom := symptoms[session.Cursor.SymptomIndex()]

	rule, ok := s.catalog.Lookup(currentSymptom)
	if !ok {
		// The rule disappeared mid-traversal. Skip the symptom rather than
		// trapping the patient on a question that no longer exists.
		return s.skipSymptom(ctx, session)
	}

	question := rule.FollowUpQuestions[session.Cursor.QuestionIndex()]
	responses := session.Record.CloneResponses()
	responses[currentSymptom] = append(responses[currentSymptom], entities.QuestionAnswer{
		Question: question,
		Answer:   text,
	})

	cursor, move := session.Cursor.Advance(len(rule.FollowUpQuestions), len(symptoms))

	// On the final answer the appended pair and the status flip travel in
	// one update, so a store failure leaves no partial turn behind and a
	// retry cannot duplicate the answer.
	update := entities.IntakeUpdate{Responses: responses}
	if move == entities.MoveComplete {
		status := entities.IntakeStatusCompleted
		update.Status = &status
	}

	record, err := s.intakes.Update(ctx, session.SessionID, update)
	if err != nil {
		log.Error().Err(err).Str("session_id", session.SessionID).Msg("Failed to store follow-up answer")
		return &TurnResult{Reply: replyGenericError}
	}
	session.Record = record

	switch move {
	case entities.MoveNextQuestion:
		session.Cursor = cursor
		return &TurnResult{Reply: rule.FollowUpQuestions[cursor.QuestionIndex()]}
	case entities.MoveNextSymptom:
		session.Cursor = cursor
		nextSymptom := symptoms[cursor.SymptomIndex()]
		nextRule, ok := s.catalog.Lookup(nextSymptom)
		if !ok {
			return s.skipSymptom(ctx, session)
		}
		return &TurnResult{Reply: buildNextSymptomReply(nextSymptom, nextRule.FollowUpQuestions[0])}
	default:
		session.Stage = entities.StageCompleted

		log.Info().
			Str("session_id", session.SessionID).
			Strs("symptoms", record.Symptoms).
			Msg("Intake completed")

		return &TurnResult{
			Reply:     buildClosingReply(record.Symptoms),
			Completed: record,
		}
	}
}

// skipSymptom advances past the cursor's current symptom after a missing
// catalog entry, landing on the next answerable question or completing the
// intake if none remain.
func (s *DialogueService) skipSymptom(ctx context.Context, session *entities.Session) *TurnResult {
	symptoms := session.Record.Symptoms
	for {
		cursor, move := session.Cursor.SkipSymptom(len(symptoms))
		if move == entities.MoveComplete {
			return s.complete(ctx, session)
		}

		session.Cursor = cursor
		nextSymptom := symptoms[cursor.SymptomIndex()]
		nextRule, ok := s.catalog.Lookup(nextSymptom)
		if !ok {
			continue
		}
		reply := replySkippingSymptom + "\n\n" + buildNextSymptomReply(nextSymptom, nextRule.FollowUpQuestions[0])
		return &TurnResult{Reply: reply}
	}
}

// complete marks the record completed and hands back a snapshot for the
// completion pipeline. The status write is the completion point: if it
// fails, the session stays in the follow-up stage and no snapshot is
// emitted, so dispatch cannot happen twice.
func (s *DialogueService) complete(ctx context.Context, session *entities.Session) *TurnResult {
	status := entities.IntakeStatusCompleted
	record, err := s.intakes.Update(ctx, session.SessionID, entities.IntakeUpdate{Status: &status})
	if err != nil {
		log.Error().Err(err).Str("session_id", session.SessionID).Msg("Failed to mark intake completed")
		return &TurnResult{Reply: replyGenericError}
	}

	session.Record = record
	session.Stage = entities.StageCompleted

	log.Info().
		Str("session_id", session.SessionID).
		Strs("symptoms", record.Symptoms).
		Msg("Intake completed")

	return &TurnResult{
		Reply:     buildClosingReply(record.Symptoms),
		Completed: record,
	}
}
