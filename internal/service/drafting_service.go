package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/entity"
	"civic-bridge-be/internal/metrics"
	"civic-bridge-be/internal/pkg/logger"
	"civic-bridge-be/internal/repository/memory"
	"civic-bridge-be/internal/repository/specification"
	"civic-bridge-be/internal/repository/unitofwork"
	"civic-bridge-be/pkg/legislators"
	"civic-bridge-be/pkg/letter"
	"civic-bridge-be/pkg/llm"
	"civic-bridge-be/pkg/strategist"

	"github.com/google/uuid"
)

const (
	// minDraftMessages is the shortest conversation a letter is drafted from.
	minDraftMessages = 3
	// draftChipAfter is the message count after which the draft chip is offered.
	draftChipAfter = 7

	defaultLocation = "United States"
	defaultTopic    = "Constituent concern"
	topicLimit      = 80
	excerptLimit    = 160
)

type DraftingOptions struct {
	DraftModel        string
	MaxAttachmentSize int
	WebformFallback   string
	Timeout           time.Duration
}

// Document is a rendered PDF ready to be sent to the client.
type Document struct {
	FileName string
	Content  []byte
}

type IDraftingService interface {
	Start(ctx context.Context, caller Caller, req *dto.StartDraftRequest) (*dto.DraftSessionResponse, error)
	Get(ctx context.Context, caller Caller, sessionID uuid.UUID) (*dto.DraftSessionResponse, error)
	SendMessage(ctx context.Context, caller Caller, sessionID uuid.UUID, req *dto.SendMessageRequest) (*dto.ChatTurnResponse, error)
	GenerateDraft(ctx context.Context, caller Caller, sessionID uuid.UUID) (*dto.DraftResponse, error)
	UpdateDraft(ctx context.Context, caller Caller, sessionID uuid.UUID, req *dto.UpdateDraftRequest) (*dto.DraftResponse, error)
	Refine(ctx context.Context, caller Caller, sessionID uuid.UUID) (*dto.DraftResponse, error)
	RenderLetter(ctx context.Context, caller Caller, sessionID uuid.UUID) (*Document, error)
	RenderLabel(ctx context.Context, caller Caller, sessionID uuid.UUID) (*Document, error)
	Complete(ctx context.Context, caller Caller, sessionID uuid.UUID) (*dto.ContactRecordResponse, error)
	SubmitWebform(ctx context.Context, caller Caller, sessionID uuid.UUID) (*dto.WebformResponse, error)
}

type draftingService struct {
	sessions        *memory.DraftSessionRepository
	representatives IRepresentativeService
	uowFactory      unitofwork.RepositoryFactory
	llmProvider     llm.LLMProvider
	logger          logger.ILogger
	opts            DraftingOptions
	now             func() time.Time
}

func NewDraftingService(
	sessions *memory.DraftSessionRepository,
	representatives IRepresentativeService,
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
	opts DraftingOptions,
) IDraftingService {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &draftingService{
		sessions:        sessions,
		representatives: representatives,
		uowFactory:      uowFactory,
		llmProvider:     llmProvider,
		logger:          log,
		opts:            opts,
		now:             time.Now,
	}
}

func (s *draftingService) Start(ctx context.Context, caller Caller, req *dto.StartDraftRequest) (*dto.DraftSessionResponse, error) {
	if !caller.IsGuest() && !caller.IsAuthenticated() {
		return nil, ErrAddressRequired
	}

	rep, err := s.representatives.Resolve(ctx, caller, req.RepresentativeId)
	if err != nil {
		return nil, err
	}
	if err := s.representatives.CheckContactable(ctx, caller, rep.ID); err != nil {
		return nil, err
	}

	location, err := s.representatives.AddressOf(ctx, caller)
	if errors.Is(err, ErrAddressRequired) {
		location = defaultLocation
	} else if err != nil {
		return nil, err
	}

	kind, ownerID := caller.owner()
	now := s.now()
	session := &entity.DraftSession{
		Id:             uuid.New(),
		OwnerKind:      kind,
		OwnerId:        ownerID,
		Location:       location,
		Representative: *rep,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if caller.IsGuest() {
		session.AwaitingName = true
		session.Messages = []entity.ChatMessage{modelMessage(strategist.GuestWelcome(rep.Name), now)}
		session.Suggestions = []string{}
	} else {
		user, err := s.uowFactory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByID{ID: caller.UserID})
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
		session.SenderName = user.FullName
		session.Messages = []entity.ChatMessage{modelMessage(strategist.MemberWelcome(user.FullName, rep.Role, rep.Name), now)}
		session.Suggestions = append([]string(nil), strategist.OpeningSuggestions...)
	}

	s.sessions.Save(session)
	s.logger.Info("DRAFTING", "Drafting session started", map[string]interface{}{
		"session_id":        session.Id,
		"representative_id": rep.ID,
		"owner_kind":        kind,
	})

	return s.toResponse(ctx, caller, session)
}

func (s *draftingService) Get(ctx context.Context, caller Caller, sessionID uuid.UUID) (*dto.DraftSessionResponse, error) {
	session, err := s.load(caller, sessionID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, caller, session)
}

func (s *draftingService) SendMessage(ctx context.Context, caller Caller, sessionID uuid.UUID, req *dto.SendMessageRequest) (*dto.ChatTurnResponse, error) {
	session, err := s.load(caller, sessionID)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Text)
	attachment, err := s.decodeAttachment(req.Attachment)
	if err != nil {
		return nil, err
	}
	if text == "" && (attachment == nil || session.AwaitingName) {
		return nil, ErrEmptyMessage
	}

	if !session.AwaitingName && strategist.WantsDraft(text) {
		return s.draftFromChat(ctx, session)
	}

	now := s.now()
	masked := strategist.MaskSSN(text)
	userText := masked
	if userText == "" {
		userText = strategist.AttachmentOnly
	}

	prior := session.Turns()
	priorCount := len(session.Messages)
	session.Messages = append(session.Messages, entity.ChatMessage{
		Id:         uuid.New(),
		Role:       strategist.RoleUser,
		Text:       userText,
		Timestamp:  now,
		Attachment: attachment,
	})
	if attachment != nil {
		session.Evidence = attachment
	}

	var reply strategist.Reply
	if session.AwaitingName {
		session.SenderName = text
		session.AwaitingName = false
		reply = strategist.Reply{
			Text:        strategist.NameReceived(text),
			Suggestions: append([]string(nil), strategist.OpeningSuggestions...),
		}
	} else {
		reply = s.interview(ctx, session, prior, userText, attachment)
		if priorCount >= draftChipAfter {
			reply.Suggestions = append([]string{strategist.GenerateDraftChip}, reply.Suggestions...)
		}
	}

	answer := modelMessage(reply.Text, s.now())
	session.Messages = append(session.Messages, answer)
	session.Suggestions = reply.Suggestions
	session.UpdatedAt = s.now()
	s.sessions.Save(session)

	return &dto.ChatTurnResponse{
		Reply:       toChatMessageResponse(answer),
		Suggestions: reply.Suggestions,
	}, nil
}

func (s *draftingService) interview(ctx context.Context, session *entity.DraftSession, prior []strategist.Turn, message string, attachment *entity.Attachment) strategist.Reply {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	msg := llm.Message{
		Role:    llm.RoleUser,
		Content: strategist.InterviewPrompt(prior, message),
	}
	if attachment != nil {
		msg.Attachments = []llm.Attachment{{MimeType: attachment.MimeType, Data: attachment.Data}}
	}

	raw, err := s.llmProvider.Chat(ctx, []llm.Message{msg},
		llm.WithSystemInstruction(strategist.SystemInstruction(session.Location)),
		llm.WithGoogleSearch(),
	)
	if err != nil {
		s.logger.Warn("DRAFTING", "Interview model call failed", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
		metrics.RecordAIFallback("interview_unavailable")
		return strategist.Unavailable()
	}

	reply := strategist.ParseReply(raw)
	if reply.Fallback {
		metrics.RecordAIFallback("interview_unparseable")
	}
	return reply
}

// draftFromChat answers a chat message that asked for the letter.
func (s *draftingService) draftFromChat(ctx context.Context, session *entity.DraftSession) (*dto.ChatTurnResponse, error) {
	if err := s.compose(ctx, session); err != nil {
		return nil, err
	}
	s.sessions.Save(session)

	started := session.Messages[len(session.Messages)-1]
	return &dto.ChatTurnResponse{
		Reply:        toChatMessageResponse(started),
		Suggestions:  session.Suggestions,
		DraftStarted: true,
		Draft:        session.Draft,
	}, nil
}

func (s *draftingService) GenerateDraft(ctx context.Context, caller Caller, sessionID uuid.UUID) (*dto.DraftResponse, error) {
	session, err := s.load(caller, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.compose(ctx, session); err != nil {
		return nil, err
	}
	s.sessions.Save(session)
	return &dto.DraftResponse{Draft: session.Draft}, nil
}

// compose writes the letter from the conversation. The first draft of a
// session is announced in the chat; regenerations are not.
func (s *draftingService) compose(ctx context.Context, session *entity.DraftSession) error {
	if session.AwaitingName || len(session.Messages) < minDraftMessages {
		return ErrNotEnoughContext
	}

	transcript := session.Turns()
	if session.Draft == "" {
		session.Messages = append(session.Messages, modelMessage(strategist.DraftStarted, s.now()))
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	signature := strategist.SignatureBlock(session.Location, session.SenderName)
	prompt := strategist.DraftPrompt(transcript, session.Representative.Name, signature)

	var opts []llm.Option
	if s.opts.DraftModel != "" {
		opts = append(opts, llm.WithModel(s.opts.DraftModel))
	}

	draft, err := s.llmProvider.Generate(ctx, prompt, opts...)
	draft = strings.TrimSpace(draft)
	if err != nil || draft == "" {
		fields := map[string]interface{}{"session_id": session.Id}
		if err != nil {
			fields["error"] = err.Error()
		}
		s.logger.Warn("DRAFTING", "Draft generation failed", fields)
		metrics.RecordAIFallback("draft")
		draft = strategist.DraftFailed
	}

	session.Draft = draft
	session.UpdatedAt = s.now()
	return nil
}

func (s *draftingService) UpdateDraft(ctx context.Context, caller Caller, sessionID uuid.UUID, req *dto.UpdateDraftRequest) (*dto.DraftResponse, error) {
	session, err := s.load(caller, sessionID)
	if err != nil {
		return nil, err
	}
	session.Draft = req.Draft
	session.UpdatedAt = s.now()
	s.sessions.Save(session)
	return &dto.DraftResponse{Draft: session.Draft}, nil
}

// Refine runs a grammar and tone pass. On failure the draft is unchanged.
func (s *draftingService) Refine(ctx context.Context, caller Caller, sessionID uuid.UUID) (*dto.DraftResponse, error) {
	session, err := s.load(caller, sessionID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(session.Draft) == "" {
		return nil, ErrNoDraft
	}

	callCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	refined, err := s.llmProvider.Generate(callCtx, strategist.RefinePrompt(session.Draft))
	refined = strings.TrimSpace(refined)
	if err != nil || refined == "" {
		metrics.RecordAIFallback("refine")
		return &dto.DraftResponse{Draft: session.Draft}, nil
	}

	session.Draft = refined
	session.UpdatedAt = s.now()
	s.sessions.Save(session)
	return &dto.DraftResponse{Draft: session.Draft}, nil
}

func (s *draftingService) RenderLetter(ctx context.Context, caller Caller, sessionID uuid.UUID) (*Document, error) {
	session, err := s.load(caller, sessionID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(session.Draft) == "" {
		return nil, ErrNoDraft
	}
	return s.renderLetter(session)
}

func (s *draftingService) renderLetter(session *entity.DraftSession) (*Document, error) {
	l := letter.Letter{
		Body:       session.Draft,
		SenderName: strategist.TitleCase(session.SenderName),
		Date:       s.now(),
	}
	if ev := session.Evidence; ev != nil {
		l.Evidence = &letter.Evidence{MimeType: ev.MimeType, Data: ev.Data}
	}

	var buf bytes.Buffer
	if err := letter.Render(&buf, l); err != nil {
		return nil, err
	}
	metrics.RecordDocumentRendered("letter")
	return &Document{FileName: letter.FileName(session.Representative.Name), Content: buf.Bytes()}, nil
}

func (s *draftingService) RenderLabel(ctx context.Context, caller Caller, sessionID uuid.UUID) (*Document, error) {
	session, err := s.load(caller, sessionID)
	if err != nil {
		return nil, err
	}

	rep := session.Representative
	var buf bytes.Buffer
	if err := letter.RenderLabel(&buf, letter.Recipient{Name: rep.Name, Role: rep.Role, Address: rep.MailingAddress}); err != nil {
		return nil, err
	}
	metrics.RecordDocumentRendered("label")
	return &Document{FileName: letter.LabelFileName(rep.Name), Content: buf.Bytes()}, nil
}

// Complete records that the downloaded letter is on its way. Members get a
// copy of the letter in their archive.
func (s *draftingService) Complete(ctx context.Context, caller Caller, sessionID uuid.UUID) (*dto.ContactRecordResponse, error) {
	contact, err := s.record(ctx, caller, sessionID, entity.ContactMethodPDF)
	if err != nil {
		return nil, err
	}
	if caller.IsAuthenticated() {
		s.archive(ctx, caller, sessionID, contact.ReferenceId)
	}
	return contact, nil
}

// archive failures are logged; the letter has already been recorded.
func (s *draftingService) archive(ctx context.Context, caller Caller, sessionID uuid.UUID, referenceID string) {
	session, err := s.load(caller, sessionID)
	if err != nil {
		return
	}
	doc, err := s.renderLetter(session)
	if err != nil {
		s.logger.Warn("DRAFTING", "Failed to render archived letter", map[string]interface{}{"error": err.Error()})
		return
	}

	archived := &entity.ArchivedDocument{
		Id:        uuid.New(),
		UserId:    caller.UserID,
		Title:     strings.TrimSuffix(doc.FileName, ".pdf"),
		SizeBytes: int64(len(doc.Content)),
		Type:      entity.DocumentTypePDF,
		Metadata: map[string]interface{}{
			"representative_id": session.Representative.ID,
			"reference_id":      referenceID,
			"file_name":         doc.FileName,
		},
		CreatedAt: s.now(),
	}
	if err := s.uowFactory.NewUnitOfWork(ctx).ArchivedDocumentRepository().Create(ctx, archived); err != nil {
		s.logger.Warn("DRAFTING", "Failed to archive letter", map[string]interface{}{"error": err.Error()})
	}
}

func (s *draftingService) SubmitWebform(ctx context.Context, caller Caller, sessionID uuid.UUID) (*dto.WebformResponse, error) {
	if !caller.IsAuthenticated() {
		return nil, ErrWebformRequiresAccount
	}

	contact, err := s.record(ctx, caller, sessionID, entity.ContactMethodWebform)
	if err != nil {
		return nil, err
	}

	session, err := s.load(caller, sessionID)
	if err != nil {
		return nil, err
	}

	contactURL := session.Representative.ContactURL
	if contactURL == "" {
		contactURL = s.opts.WebformFallback
	}
	return &dto.WebformResponse{ContactURL: contactURL, Draft: session.Draft, Contact: *contact}, nil
}

func (s *draftingService) record(ctx context.Context, caller Caller, sessionID uuid.UUID, method entity.ContactMethod) (*dto.ContactRecordResponse, error) {
	session, err := s.load(caller, sessionID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(session.Draft) == "" {
		return nil, ErrNoDraft
	}
	if session.ContactRecorded {
		return nil, ErrAlreadySent
	}

	contact, err := s.representatives.RecordContact(ctx, caller, session.Representative.ID, ContactDetails{
		Method:  method,
		Topic:   topicOf(session),
		Excerpt: truncate(session.Draft, excerptLimit),
	})
	if err != nil {
		return nil, err
	}

	session.ContactRecorded = true
	session.UpdatedAt = s.now()
	s.sessions.Save(session)
	return contact, nil
}

func (s *draftingService) load(caller Caller, sessionID uuid.UUID) (*entity.DraftSession, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	kind, ownerID := caller.owner()
	if ownerID == "" || !session.OwnedBy(kind, ownerID) {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *draftingService) decodeAttachment(p *dto.AttachmentPayload) (*entity.Attachment, error) {
	if p == nil {
		return nil, nil
	}
	if !strings.HasPrefix(p.MimeType, "image/") && p.MimeType != "application/pdf" {
		return nil, ErrUnsupportedAttachment
	}
	if base64.StdEncoding.DecodedLen(len(p.Data)) > s.opts.MaxAttachmentSize+3 {
		return nil, ErrAttachmentTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(p.Data)
	if err != nil {
		return nil, fmt.Errorf("decode attachment: %w", err)
	}
	if len(data) > s.opts.MaxAttachmentSize {
		return nil, ErrAttachmentTooLarge
	}
	return &entity.Attachment{MimeType: p.MimeType, Data: data}, nil
}

func (s *draftingService) toResponse(ctx context.Context, caller Caller, session *entity.DraftSession) (*dto.DraftSessionResponse, error) {
	annotated, err := s.representatives.Annotate(ctx, caller, []legislators.Representative{session.Representative})
	if err != nil {
		return nil, err
	}

	messages := make([]dto.ChatMessageResponse, len(session.Messages))
	for i, m := range session.Messages {
		messages[i] = toChatMessageResponse(m)
	}

	return &dto.DraftSessionResponse{
		Id:             session.Id.String(),
		Representative: annotated[0],
		Location:       session.Location,
		SenderName:     session.SenderName,
		CollectingName: session.AwaitingName,
		Messages:       messages,
		Suggestions:    session.Suggestions,
		Draft:          session.Draft,
		CanDraft:       !session.AwaitingName && len(session.Messages) >= minDraftMessages,
	}, nil
}

func modelMessage(text string, at time.Time) entity.ChatMessage {
	return entity.ChatMessage{Id: uuid.New(), Role: strategist.RoleModel, Text: text, Timestamp: at}
}

func toChatMessageResponse(m entity.ChatMessage) dto.ChatMessageResponse {
	res := dto.ChatMessageResponse{
		Id:        m.Id.String(),
		Role:      m.Role,
		Text:      m.Text,
		Timestamp: m.Timestamp,
	}
	if m.Attachment != nil {
		res.HasAttachment = true
		res.MimeType = m.Attachment.MimeType
	}
	return res
}

// topicOf is the first thing the constituent said about their issue. A
// guest's first message is their name and is skipped.
func topicOf(session *entity.DraftSession) string {
	skipped := session.OwnerKind != entity.OwnerGuest
	for _, m := range session.Messages {
		if m.Role != strategist.RoleUser {
			continue
		}
		if !skipped {
			skipped = true
			continue
		}
		if m.Text == strategist.AttachmentOnly {
			continue
		}
		return truncate(m.Text, topicLimit)
	}
	return defaultTopic
}

func truncate(text string, limit int) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	r := []rune(text)
	return strings.TrimSpace(string(r[:limit])) + "..."
}
