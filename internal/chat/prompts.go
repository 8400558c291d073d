package chat

import (
	"fmt"
	"strings"
)

const emailAssessmentTemplate = "The email you pasted in chat is %s."

const callAssessmentTemplate = "The call record you attached indicates %s."

// Reasoning prompts take, in order: the user's message, the wrapped
// assessment sentence and the raw verdict. Indentation and the space after
// "answer." are sent upstream as written.

const emailReasoningPrompt = `
            Analyze the following email and the assessment: Only provide reasoning do not change the assessment answer. 

            Email content: %[1]s

            Assessment: %[2]s

            Please provide:
            1. A detailed explanation of why this email is considered %[3]s. List specific elements or characteristics of the email that support this classification.
            2. Suggestions for further actions or considerations based on this analysis. Include both immediate steps and general best practices for dealing with such emails.

            Format your response in a clear section: "Reasoning". Give in one sentence.
            `

const callReasoningPrompt = `
            Analyze the following call record and the assessment: Only provide reasoning do not change the assessment answer. 

            Call content: %[1]s

            Assessment: %[2]s

            Please provide:
            1. A detailed explanation of why this call record is considered %[3]s. List specific elements or characteristics of the call record that support this classification.
            2. Suggestions for further actions or considerations based on this analysis. Include both immediate steps and general best practices for handling such calls.

            Format your response in a clear section: "Reasoning". Give in one sentence.
            `

const generalAdvicePrompt = "Provide a brief and concise response to the following request: %s"

func combinedMessage(topicLabel, message string) string {
	return fmt.Sprintf("Topic: %s. User message: %s", topicLabel, message)
}

var markupStripper = strings.NewReplacer("#", "", "*", "")

// Sanitize removes the '#' and '*' formatting characters the upstream model
// emits and leaves everything else in place.
func Sanitize(s string) string {
	return markupStripper.Replace(s)
}
