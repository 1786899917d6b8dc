// Package strategist holds the prompts and reply handling for the civic
// drafting assistant.
package strategist

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one message of a drafting conversation.
type Turn struct {
	Role string
	Text string
}

var ssnPattern = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)

// MaskSSN replaces anything shaped like a social security number.
func MaskSSN(text string) string {
	return ssnPattern.ReplaceAllString(text, "XXX-XX-XXXX")
}

// SystemInstruction is the interview prompt for a constituent at location.
func SystemInstruction(location string) string {
	return fmt.Sprintf(`ROLE: You are the Civic Bridge Lead Strategist and Educator.

CONTEXT:
The user is a constituent located in: "%s".
Use this location to infer the relevant jurisdiction (City, County, State, Federal) and likely local concerns if applicable.

OPERATIONAL LOGIC (The Discovery Phase):
1. Zero-Assumption Intake: Do not assume the user's specific stance. Analyze their input to identify the core issue.
2. Evidence Analysis (IF IMAGE/PDF PROVIDED):
   - Analyze the visual content (e.g., infrastructure damage, document text, protest).
   - Use Google Search to find relevant legislation, news, or trends related to the image topic in their location.
   - Explicitly ACKNOWLEDGE the evidence in your response (e.g., "I see the photo of the [subject]...").
   - Ask: "How does this specific situation impact you personally, and how would you like to use this evidence in your letter?"
3. Discovery Interview (NO EVIDENCE): Ask 2-3 targeted, professional questions to extract the user's "Lived Reality" and desired outcome.
4. Research Agent: Use Google Search to verify bill details or trends.
5. Suggestions: Provide 3 short, relevant, first-person follow-up options (max 5 words each).
   - One suggestion SHOULD be specific to their location if possible (e.g., "Fix [City] Roads", "Support [State] Bill").
   - Others can be general (e.g., "I have evidence", "Start Drafting").

OUTPUT FORMAT:
Return JSON ONLY. Do not use markdown blocks.
{
  "response": "The text of your response...",
  "suggestions": ["Option 1", "Option 2", "Option 3"]
}

CONSTRAINTS:
- Remain strictly factual, non-partisan, and polite.
- Response under 150 words.
- ABSOLUTELY NO MARKDOWN. RETURN RAW JSON STRING.
`, location)
}

// InterviewPrompt renders prior turns plus the new (already masked) message.
func InterviewPrompt(history []Turn, message string) string {
	var b strings.Builder
	for _, t := range history {
		speaker := "Strategist"
		if t.Role == RoleUser {
			speaker = "User"
		}
		b.WriteString(speaker)
		b.WriteString(": ")
		b.WriteString(t.Text)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(message)
	return b.String()
}

// SignatureBlock is the sender block placed under the letter.
func SignatureBlock(location, name string) string {
	return location + "\n" + TitleCase(name)
}

// DraftPrompt asks for a formal letter to repName built from the transcript.
func DraftPrompt(history []Turn, repName, signature string) string {
	lines := make([]string, len(history))
	for i, t := range history {
		lines[i] = t.Role + ": " + t.Text
	}

	return fmt.Sprintf(`ROLE: You are a professional Legislative aide.
TASK: Based on the interview transcript below, compose a formal, constitutionally grounded legislative letter to The Honorable %s.

SIGNATURE BLOCK / USER INFO:
%s

Transcript:
%s

FORMATTING RULES:
- Use standard formal letter format (Sender Info -> Date -> Recipient Info -> Salutation).
- Tone: Professional, firm, respectful, and urgent.
- Structure:
  1. Clear statement of the issue.
  2. Personal impact (The "Lived Reality" derived from the interview).
  3. Reference to specific legislation or trends (if discussed).
  4. Clear Call to Action.
  5. Formal Closing.
- Output ONLY the letter content. Do not add markdown like `+"```"+` or conversational filler.
`, repName, signature, strings.Join(lines, "\n"))
}

// RefinePrompt asks for a grammar and tone pass that keeps formatting.
func RefinePrompt(draft string) string {
	return "Review the following legislative letter for grammar, spelling, and tone. " +
		"It should be respectful, firm, and professional. " +
		"Return ONLY the improved version of the text, preserving the formatting.\n\n" + draft
}

// TitleCase lowercases name and capitalises the first letter of every
// space separated word.
func TitleCase(name string) string {
	words := strings.Split(strings.ToLower(name), " ")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// FirstName returns the first word of name, capitalised.
func FirstName(name string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(name), " ")
	return capitalize(strings.ToLower(first))
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	r := []rune(w)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
