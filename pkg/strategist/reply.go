package strategist

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	ReplyEmpty        = "I'm listening. Please continue."
	ReplyUnparseable  = "I have analyzed your input. Let's discuss the details so I can draft your letter."
	ReplyUnavailable  = "I apologize, but I am having trouble accessing legislative databases right now. Please tell me more about your situation."
	DraftFailed       = "Draft generation failed. Please try again."
	DraftStarted      = "Understood. I'm compiling your statement into a formal legislative letter now. Please check the Drafting Canvas."
	NeedMoreContext   = "Please provide a bit more detail in the chat before generating a draft."
	AttachmentOnly    = "📄 [Attached Evidence]"
	GenerateDraftChip = "✨ Generate Draft"

	// rawReplyLimit is the longest unparseable reply shown verbatim.
	rawReplyLimit = 500
)

var (
	DefaultSuggestions     = []string{"I'm ready to draft", "I have more details", "Explain the law"}
	UnparseableSuggestions = []string{"Start Drafting", "Tell me more"}
	UnavailableSuggestions = []string{"Skip to draft", "Try again"}
	OpeningSuggestions     = []string{"I'm concerned about traffic", "Funding for local schools", "Public safety issues"}
)

// Reply is the assistant's answer plus follow-up chips.
type Reply struct {
	Text        string   `json:"text"`
	Suggestions []string `json:"suggestions"`
	// Fallback is true when Text is canned rather than model output.
	Fallback bool `json:"-"`
}

type rawReply struct {
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions"`
}

// ParseReply extracts the JSON object from a model answer. Markdown fences and
// text around the outermost braces are ignored. An empty answer counts as
// the model being unavailable.
func ParseReply(raw string) Reply {
	if strings.TrimSpace(raw) == "" {
		return Unavailable()
	}

	text := strings.ReplaceAll(raw, "```json\n", "")
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first != -1 && last != -1 && first < last {
		text = text[first : last+1]
	}

	var parsed rawReply
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		reply := Reply{Text: ReplyUnparseable, Suggestions: clone(UnparseableSuggestions), Fallback: true}
		if len(text) < rawReplyLimit {
			reply.Text = text
		}
		return reply
	}

	reply := Reply{Text: parsed.Response, Suggestions: parsed.Suggestions}
	if reply.Text == "" {
		reply.Text = ReplyEmpty
		reply.Fallback = true
	}
	if reply.Suggestions == nil {
		reply.Suggestions = clone(DefaultSuggestions)
	}
	return reply
}

// Unavailable is the reply used when the model could not be reached.
func Unavailable() Reply {
	return Reply{Text: ReplyUnavailable, Suggestions: clone(UnavailableSuggestions), Fallback: true}
}

// WantsDraft reports whether a chat message asks for the letter.
func WantsDraft(text string) bool {
	return text == GenerateDraftChip || strings.Contains(strings.ToLower(text), "generate draft")
}

// GuestWelcome asks a guest for the name used in the signature.
func GuestWelcome(repName string) string {
	return fmt.Sprintf("Welcome! I am your Civic Strategist. To generate an official letter for %s, "+
		"I first need your full name for the signature line. Please type it below.", repName)
}

// MemberWelcome greets a signed-in constituent.
func MemberWelcome(userName, repRole, repName string) string {
	first, _, _ := strings.Cut(userName, " ")
	return fmt.Sprintf("Hello, %s. I am your Civic Strategist. I'm here to help you articulate your message to %s %s. "+
		"To ensure we write an effective letter, could you please describe the specific issue you are facing "+
		"and how it impacts you personally?", first, repRole, surnameOf(repName))
}

// NameReceived thanks a guest once their name is known.
func NameReceived(name string) string {
	return fmt.Sprintf("Thank you, %s. Now, could you please describe the specific issue you are facing "+
		"and how it impacts you personally?", FirstName(name))
}

// surnameOf returns the second word of a "First Last" name.
func surnameOf(name string) string {
	parts := strings.Split(name, " ")
	if len(parts) < 2 {
		return name
	}
	return parts[1]
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
