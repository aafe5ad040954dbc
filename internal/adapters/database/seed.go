package database

import "github.com/tricoghealth/intake-assistant/internal/domain/entities"

// DefaultSymptomRules returns the built-in cardiac symptom catalog. Each
// rule carries the follow-up questions asked one at a time during the
// intake conversation.
func DefaultSymptomRules() []*entities.SymptomRule {
	return []*entities.SymptomRule{
		{
			Symptom: "chest pain",
			FollowUpQuestions: []string{
				"When did the chest pain start?",
				"Is the pain constant or does it come and go?",
				"Does the pain get worse with activity or exercise?",
				"Can you describe the type of pain (sharp, dull, burning, pressure)?",
				"Does the pain radiate to your arm, neck, jaw, or back?",
				"On a scale of 1-10, how would you rate the pain intensity?",
			},
		},
		{
			Symptom: "shortness of breath",
			FollowUpQuestions: []string{
				"How long have you been experiencing shortness of breath?",
				"Does it occur during rest or only with activity?",
				"Do you have any other symptoms like cough or wheezing?",
				"Does lying flat make the breathing worse?",
				"Have you noticed any swelling in your legs or feet?",
				"Do you wake up at night feeling short of breath?",
			},
		},
		{
			Symptom: "fatigue",
			FollowUpQuestions: []string{
				"How long have you been feeling unusually tired?",
				"Is the fatigue constant or does it come and go?",
				"Does the fatigue interfere with your daily activities?",
				"Do you feel tired even after resting or sleeping?",
				"Have you noticed any changes in your appetite or weight?",
				"Are you experiencing any dizziness or lightheadedness?",
			},
		},
		{
			Symptom: "palpitations",
			FollowUpQuestions: []string{
				"When do you notice your heart racing or pounding?",
				"How long do the palpitation episodes last?",
				"Do you feel dizzy or lightheaded during these episodes?",
				"Are the palpitations triggered by specific activities or emotions?",
				"Do you experience any chest discomfort with the palpitations?",
				"Have you had any fainting episodes?",
			},
		},
		{
			Symptom: "dizziness",
			FollowUpQuestions: []string{
				"When did the dizziness start?",
				"Does the dizziness occur when you stand up quickly?",
				"Do you feel like the room is spinning (vertigo)?",
				"Are you taking any new medications?",
				"Have you experienced any recent changes in hearing?",
				"Do you feel nauseous with the dizziness?",
			},
		},
	}
}
