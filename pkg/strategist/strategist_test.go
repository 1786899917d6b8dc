package strategist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReply(t *testing.T) {
	long := strings.Repeat("a", 600)

	tests := []struct {
		name         string
		raw          string
		wantText     string
		wantSuggests []string
		wantFallback bool
	}{
		{
			name:         "plain json",
			raw:          `{"response":"Tell me about the potholes.","suggestions":["Fix Austin Roads","I have evidence","Start Drafting"]}`,
			wantText:     "Tell me about the potholes.",
			wantSuggests: []string{"Fix Austin Roads", "I have evidence", "Start Drafting"},
		},
		{
			name:         "fenced json with chatter",
			raw:          "Sure!\n```json\n{\"response\":\"Noted.\",\"suggestions\":[\"Go on\"]}\n```\nHope that helps",
			wantText:     "Noted.",
			wantSuggests: []string{"Go on"},
		},
		{
			name:         "missing fields",
			raw:          `{"other":1}`,
			wantText:     ReplyEmpty,
			wantSuggests: DefaultSuggestions,
			wantFallback: true,
		},
		{
			name:         "short non json is shown verbatim",
			raw:          "I could not format that, sorry.",
			wantText:     "I could not format that, sorry.",
			wantSuggests: UnparseableSuggestions,
			wantFallback: true,
		},
		{
			name:         "long non json is replaced",
			raw:          long,
			wantText:     ReplyUnparseable,
			wantSuggests: UnparseableSuggestions,
			wantFallback: true,
		},
		{
			name:         "broken json between braces",
			raw:          `{"response": "unterminated}`,
			wantText:     `{"response": "unterminated}`,
			wantSuggests: UnparseableSuggestions,
			wantFallback: true,
		},
		{
			name:         "empty answer",
			raw:          "  \n",
			wantText:     ReplyUnavailable,
			wantSuggests: UnavailableSuggestions,
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseReply(tt.raw)
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantSuggests, got.Suggestions)
			assert.Equal(t, tt.wantFallback, got.Fallback)
		})
	}
}

func TestParseReplyDoesNotAliasDefaults(t *testing.T) {
	got := ParseReply(`{"response":"ok"}`)
	got.Suggestions[0] = "changed"
	assert.Equal(t, "I'm ready to draft", DefaultSuggestions[0])
}

func TestMaskSSN(t *testing.T) {
	assert.Equal(t, "my ssn is XXX-XX-XXXX ok", MaskSSN("my ssn is 123-45-6789 ok"))
	assert.Equal(t, "call 512-555-0100", MaskSSN("call 512-555-0100"))
	assert.Equal(t, "XXX-XX-XXXX and XXX-XX-XXXX", MaskSSN("111-22-3333 and 444-55-6666"))
}

func TestInterviewPrompt(t *testing.T) {
	history := []Turn{
		{Role: RoleModel, Text: "Hello."},
		{Role: RoleUser, Text: "Roads are bad."},
	}
	assert.Equal(t, "Strategist: Hello.\nUser: Roads are bad.\nUser: Very bad.", InterviewPrompt(history, "Very bad."))
}

func TestDraftPrompt(t *testing.T) {
	history := []Turn{{Role: RoleUser, Text: "Fix the bridge."}}
	p := DraftPrompt(history, "Ted Cruz", SignatureBlock("Austin, TX", "jane q public"))

	assert.Contains(t, p, "The Honorable Ted Cruz.")
	assert.Contains(t, p, "Austin, TX\nJane Q Public")
	assert.Contains(t, p, "user: Fix the bridge.")
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Jane Doe", TitleCase("jANE doe"))
	assert.Equal(t, "Jane", FirstName("jane doe"))
	assert.Equal(t, "Émile", FirstName("émile zola"))
	assert.Equal(t, "", FirstName(""))
}

func TestWantsDraft(t *testing.T) {
	assert.True(t, WantsDraft(GenerateDraftChip))
	assert.True(t, WantsDraft("ok please Generate Draft now"))
	assert.False(t, WantsDraft("draft it"))
}

func TestWelcomes(t *testing.T) {
	assert.Equal(t,
		"Welcome! I am your Civic Strategist. To generate an official letter for Ted Cruz, I first need your full name for the signature line. Please type it below.",
		GuestWelcome("Ted Cruz"))

	msg := MemberWelcome("Jane Doe", "U.S. Senator", "Ted Cruz")
	assert.True(t, strings.HasPrefix(msg, "Hello, Jane. I am your Civic Strategist."))
	assert.Contains(t, msg, "to U.S. Senator Cruz.")

	assert.Equal(t,
		"Thank you, Jane. Now, could you please describe the specific issue you are facing and how it impacts you personally?",
		NameReceived("JANE doe"))
}
