package services

import (
	"fmt"
	"strings"

	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
)

// Reply texts for the intake conversation. Builders return the assembled
// message for replies that interpolate patient input or symptom data.

const (
	replyWelcome = "Hello! I'm your Tricog Health digital assistant. I'm here to help collect information about your symptoms before your consultation with our cardiologist. Let's start with some basic information. What is your name?"

	replyInvalidEmail = "Please provide a valid email address."

	replyAskGender = "Thank you! Could you please tell me your gender (Male/Female/Other)?"

	replyAskSymptoms = `Thank you for providing your information! Now, I need to understand your symptoms to help our cardiologist prepare for your consultation.

Please describe the main symptoms you're experiencing. For example, you might mention things like:
- Chest pain
- Shortness of breath
- Fatigue
- Palpitations (heart racing)
- Dizziness

What symptoms are bothering you?`

	replySymptomsUnclear = "I couldn't identify any specific cardiac symptoms from your message. Could you please be more specific? For example, you might say 'I have chest pain' or 'I feel short of breath'."

	replySymptomError = "I encountered an error processing your symptoms. Could you please describe them again?"

	replySkippingSymptom = "I encountered an error. Let me move to the next symptom."

	replyGenericError = "I'm sorry, I encountered an error. Please try again or contact support if the problem persists."

	replyPostCompletion = "Thank you for your response."
)

func buildAskEmailReply(name string) string {
	return fmt.Sprintf("Nice to meet you, %s! Now, could you please provide your email address?", name)
}

func buildFirstQuestionReply(symptoms []string, firstSymptom, question string) string {
	return fmt.Sprintf(`Thank you for sharing that. I've identified that you're experiencing: %s.

Now I need to ask some specific questions about your %s:

%s`, strings.Join(symptoms, ", "), firstSymptom, question)
}

func buildNextSymptomReply(symptom, question string) string {
	return fmt.Sprintf(`Now let's talk about your %s:

%s`, symptom, question)
}

func buildClosingReply(symptoms []string) string {
	return fmt.Sprintf(`Thank you for providing all the information about your symptoms. I have collected detailed information about your %s.

Our cardiologist will receive this information and will be better prepared for your consultation. I'm now scheduling an appointment for you and will send the details to our medical team.

You should receive a calendar invitation shortly. Is there anything else you'd like to add about your symptoms?`, strings.Join(symptoms, ", "))
}

// buildDoctorSummary formats the completed intake for the on-call doctor's
// Telegram chat.
func buildDoctorSummary(record *entities.IntakeRecord) string {
	var b strings.Builder
	b.WriteString("🏥 *New Patient Consultation Request*\n\n")
	b.WriteString("👤 *Patient Information:*\n")
	fmt.Fprintf(&b, "Name: %s\n", record.Name)
	fmt.Fprintf(&b, "Email: %s\n", record.Email)
	fmt.Fprintf(&b, "Gender: %s\n\n", record.Gender)
	b.WriteString("🩺 *Reported Symptoms:*\n")
	b.WriteString(strings.Join(record.Symptoms, ", "))
	b.WriteString("\n\n📋 *Detailed Responses:*\n")

	sections := make([]string, 0, len(record.Symptoms))
	for _, symptom := range record.Symptoms {
		pairs, ok := record.Responses[symptom]
		if !ok {
			continue
		}
		lines := make([]string, 0, len(pairs))
		for _, pair := range pairs {
			lines = append(lines, fmt.Sprintf("❓ %s\n💬 %s", pair.Question, pair.Answer))
		}
		sections = append(sections, fmt.Sprintf("*%s:*\n%s", strings.ToUpper(symptom), strings.Join(lines, "\n")))
	}
	b.WriteString(strings.Join(sections, "\n\n"))

	b.WriteString("\n\n📅 *Appointment:* Scheduled for next available slot\n")
	fmt.Fprintf(&b, "🆔 *Session ID:* %s", record.SessionID)
	return b.String()
}
